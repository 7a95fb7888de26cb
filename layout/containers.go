package layout

import "math"

// Padding insets its child.
type Padding struct {
	Top, Right, Bottom, Left float64
	Child                    Element
}

func (p *Padding) Slots() []*Element { return []*Element{&p.Child} }

func (p *Padding) inner(available Size) Size {
	return Size{Width: available.Width - p.Left - p.Right, Height: available.Height - p.Top - p.Bottom}
}

func (p *Padding) Measure(env *Env, available Size) SpacePlan {
	inner := p.inner(available)
	if inner.IsNegative() {
		return WrapPlan()
	}
	m := orEmpty(p.Child).Measure(env, inner)
	if m.IsWrap() {
		return m
	}
	return m.WithSize(Size{Width: m.Width + p.Left + p.Right, Height: m.Height + p.Top + p.Bottom})
}

func (p *Padding) Draw(env *Env, available Size) {
	inner := p.inner(available)
	if inner.IsNegative() {
		return
	}
	env.DrawAt(orEmpty(p.Child), Position{X: p.Left, Y: p.Top}, inner)
}

// Constrained bounds the size of its child. Zero maximums are unbounded.
type Constrained struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
	Child                Element
}

func (c *Constrained) Slots() []*Element { return []*Element{&c.Child} }

func (c *Constrained) inner(available Size) Size {
	s := available
	if c.MaxWidth > 0 {
		s.Width = math.Min(s.Width, c.MaxWidth)
	}
	if c.MaxHeight > 0 {
		s.Height = math.Min(s.Height, c.MaxHeight)
	}
	return s
}

func (c *Constrained) Measure(env *Env, available Size) SpacePlan {
	inner := c.inner(available)
	// The minimum must fit both the space and the maximum.
	if c.MinWidth > inner.Width+Epsilon || c.MinHeight > inner.Height+Epsilon {
		return WrapPlan()
	}
	m := orEmpty(c.Child).Measure(env, inner)
	if m.IsWrap() {
		return m
	}
	return m.WithSize(Size{
		Width:  math.Min(math.Max(m.Width, c.MinWidth), inner.Width),
		Height: math.Min(math.Max(m.Height, c.MinHeight), inner.Height),
	})
}

func (c *Constrained) Draw(env *Env, available Size) {
	orEmpty(c.Child).Draw(env, c.inner(available))
}

// Alignment positions a smaller child inside the space it is given.
type Alignment struct {
	Horizontal HorizontalAlignment
	Vertical   VerticalAlignment
	Direction  Direction
	Child      Element
}

func (a *Alignment) Slots() []*Element        { return []*Element{&a.Child} }
func (a *Alignment) SetDirection(d Direction) { a.Direction = d }

func (a *Alignment) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(a.Child).Measure(env, available)
}

func (a *Alignment) Draw(env *Env, available Size) {
	child := orEmpty(a.Child)
	m := child.Measure(env, available)
	if m.IsWrap() {
		return
	}
	at := Position{
		X: a.Horizontal.Offset(available.Width, m.Width, a.Direction),
		Y: a.Vertical.Offset(available.Height, m.Height),
	}
	env.DrawAt(child, at, m.Size())
}

// Background paints the area its child is drawn in.
type Background struct {
	Color Color
	Child Element
}

func (b *Background) Slots() []*Element { return []*Element{&b.Child} }

func (b *Background) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(b.Child).Measure(env, available)
}

func (b *Background) Draw(env *Env, available Size) {
	env.Canvas.DrawRectangle(Origin, available, b.Color)
	orEmpty(b.Child).Draw(env, available)
}

// Border strokes the edges of the area its child is drawn in.
type Border struct {
	Width float64
	Color Color
	Child Element
}

func (b *Border) Slots() []*Element { return []*Element{&b.Child} }

func (b *Border) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(b.Child).Measure(env, available)
}

func (b *Border) Draw(env *Env, available Size) {
	orEmpty(b.Child).Draw(env, available)
	drawFrame(env.Canvas, available, b.Width, b.Color)
}

func drawFrame(c Canvas, s Size, w float64, col Color) {
	if w <= 0 {
		return
	}
	half := w / 2
	c.DrawRectangle(Position{X: -half, Y: -half}, Size{Width: s.Width + w, Height: w}, col)
	c.DrawRectangle(Position{X: -half, Y: s.Height - half}, Size{Width: s.Width + w, Height: w}, col)
	c.DrawRectangle(Position{X: -half, Y: -half}, Size{Width: w, Height: s.Height + w}, col)
	c.DrawRectangle(Position{X: s.Width - half, Y: -half}, Size{Width: w, Height: s.Height + w}, col)
}

// Layers stacks elements on top of each other. Only the primary layer
// drives pagination; the others are stamped on every page.
type Layers struct {
	Below   []Element
	Primary Element
	Above   []Element
}

func (l *Layers) Slots() []*Element {
	out := make([]*Element, 0, len(l.Below)+len(l.Above)+1)
	for i := range l.Below {
		out = append(out, &l.Below[i])
	}
	out = append(out, &l.Primary)
	for i := range l.Above {
		out = append(out, &l.Above[i])
	}
	return out
}

func (l *Layers) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(l.Primary).Measure(env, available)
}

func (l *Layers) Draw(env *Env, available Size) {
	for _, e := range l.Below {
		orEmpty(e).Draw(env, available)
	}
	orEmpty(l.Primary).Draw(env, available)
	for _, e := range l.Above {
		orEmpty(e).Draw(env, available)
	}
}

// ShowEntire refuses to split its child across pages.
type ShowEntire struct {
	Child Element
}

func (s *ShowEntire) Slots() []*Element { return []*Element{&s.Child} }

func (s *ShowEntire) Measure(env *Env, available Size) SpacePlan {
	m := orEmpty(s.Child).Measure(env, available)
	if m.IsPartial() {
		return WrapPlan()
	}
	return m
}

func (s *ShowEntire) Draw(env *Env, available Size) { orEmpty(s.Child).Draw(env, available) }

// DefaultStyle sets the text style inherited by its descendants.
type DefaultStyle struct {
	Style TextStyle
	Child Element
}

func (d *DefaultStyle) Slots() []*Element { return []*Element{&d.Child} }

func (d *DefaultStyle) ScopeTextStyle(parent TextStyle) TextStyle {
	return d.Style.Inherit(parent)
}

func (d *DefaultStyle) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(d.Child).Measure(env, available)
}

func (d *DefaultStyle) Draw(env *Env, available Size) { orEmpty(d.Child).Draw(env, available) }

// ContentDirection sets the reading direction of its descendants.
type ContentDirection struct {
	Direction Direction
	Child     Element
}

func (c *ContentDirection) Slots() []*Element { return []*Element{&c.Child} }

func (c *ContentDirection) ScopeDirection(Direction) Direction { return c.Direction }

func (c *ContentDirection) Measure(env *Env, available Size) SpacePlan {
	return orEmpty(c.Child).Measure(env, available)
}

func (c *ContentDirection) Draw(env *Env, available Size) { orEmpty(c.Child).Draw(env, available) }
