package layout

import (
	"image"
)

// Box is a solid rectangle of fixed size. A zero Color draws nothing, which
// makes Box usable as a spacer.
type Box struct {
	Width  float64
	Height float64
	Color  Color
}

func (b *Box) Cacheable() bool { return true }

func (b *Box) Measure(_ *Env, available Size) SpacePlan {
	if !(Size{Width: b.Width, Height: b.Height}).Fits(available) {
		return WrapPlan()
	}
	return Full(b.Width, b.Height)
}

func (b *Box) Draw(env *Env, _ Size) {
	if b.Color.IsZero() {
		return
	}
	env.Canvas.DrawRectangle(Origin, Size{Width: b.Width, Height: b.Height}, b.Color)
}

// LineKind is the orientation of a Line.
type LineKind int

const (
	Horizontal LineKind = iota
	Vertical
)

// Line is a rule spanning the available width (horizontal) or height
// (vertical).
type Line struct {
	Kind      LineKind
	Thickness float64
	Color     Color
}

func (l *Line) Cacheable() bool { return true }

func (l *Line) Measure(_ *Env, available Size) SpacePlan {
	switch {
	case l.Kind == Vertical && available.Width+Epsilon >= l.Thickness:
		return Full(l.Thickness, 0)
	case l.Kind == Horizontal && available.Height+Epsilon >= l.Thickness:
		return Full(0, l.Thickness)
	default:
		return WrapPlan()
	}
}

func (l *Line) Draw(env *Env, available Size) {
	if l.Kind == Vertical {
		env.Canvas.DrawRectangle(Position{X: -l.Thickness / 2}, Size{Width: l.Thickness, Height: available.Height}, l.Color)
		return
	}
	env.Canvas.DrawRectangle(Position{Y: -l.Thickness / 2}, Size{Width: available.Width, Height: l.Thickness}, l.Color)
}

// Image draws a decoded image preserving its aspect ratio. The image takes
// Width points, or the full available width when Width is zero.
type Image struct {
	Source image.Image
	Width  float64
}

func (i *Image) Cacheable() bool { return true }

func (i *Image) size(available Size) Size {
	w := i.Width
	if w <= 0 || w > available.Width {
		w = available.Width
	}
	if i.Source == nil {
		return Size{Width: w}
	}
	b := i.Source.Bounds()
	if b.Dx() == 0 {
		return Size{Width: w}
	}
	return Size{Width: w, Height: w * float64(b.Dy()) / float64(b.Dx())}
}

func (i *Image) Measure(_ *Env, available Size) SpacePlan {
	if available.IsNegative() {
		return WrapPlan()
	}
	s := i.size(available)
	if s.Height > available.Height+Epsilon {
		return WrapPlan()
	}
	return Full(s.Width, s.Height)
}

func (i *Image) Draw(env *Env, available Size) {
	if i.Source == nil {
		return
	}
	env.Canvas.DrawImage(i.Source, i.size(available))
}

// PageBreak ends the current page once.
type PageBreak struct {
	rendered bool
}

func (p *PageBreak) ResetState(hard bool) {
	if hard {
		p.rendered = false
	}
}

func (p *PageBreak) Measure(*Env, Size) SpacePlan {
	if p.rendered {
		return Full(0, 0)
	}
	return Partial(0, 0)
}

func (p *PageBreak) Draw(*Env, Size) { p.rendered = true }

// ShowOnce draws its child on the first page it appears on and never again
// during the same pass.
type ShowOnce struct {
	Child Element

	rendered bool
}

func (s *ShowOnce) Slots() []*Element { return []*Element{&s.Child} }

func (s *ShowOnce) ResetState(hard bool) {
	if hard {
		s.rendered = false
	}
}

func (s *ShowOnce) Measure(env *Env, available Size) SpacePlan {
	if s.Child == nil || s.rendered {
		return Full(0, 0)
	}
	return s.Child.Measure(env, available)
}

func (s *ShowOnce) Draw(env *Env, available Size) {
	if s.Child == nil || s.rendered {
		return
	}
	if s.Child.Measure(env, available).IsFull() {
		s.rendered = true
	}
	s.Child.Draw(env, available)
}

// SkipOnce hides its child on the first page it appears on.
type SkipOnce struct {
	Child Element

	skipped bool
}

func (s *SkipOnce) Slots() []*Element { return []*Element{&s.Child} }

func (s *SkipOnce) ResetState(hard bool) {
	if hard {
		s.skipped = false
	}
}

func (s *SkipOnce) Measure(env *Env, available Size) SpacePlan {
	if s.Child == nil || !s.skipped {
		return Full(0, 0)
	}
	return s.Child.Measure(env, available)
}

func (s *SkipOnce) Draw(env *Env, available Size) {
	if s.Child == nil {
		return
	}
	if s.skipped {
		s.Child.Draw(env, available)
	}
	s.skipped = true
}

// DefaultPlaceholderHeight is the height of a Placeholder that sets none.
const DefaultPlaceholderHeight = 48.0

// Placeholder stands in for content that does not exist yet: a grey box as
// wide as the space offered, with an optional centered label.
type Placeholder struct {
	Label  string
	Height float64
}

func (p *Placeholder) Cacheable() bool { return true }

func (p *Placeholder) height() float64 {
	if p.Height > 0 {
		return p.Height
	}
	return DefaultPlaceholderHeight
}

func (p *Placeholder) Measure(_ *Env, available Size) SpacePlan {
	if available.IsNegative() || p.height() > available.Height+Epsilon {
		return WrapPlan()
	}
	return Full(available.Width, p.height())
}

func (p *Placeholder) Draw(env *Env, available Size) {
	size := Size{Width: available.Width, Height: p.height()}
	env.Canvas.DrawRectangle(Origin, size, LightGrey)
	if p.Label == "" || env.Typesetter == nil {
		return
	}
	style := TextStyle{Color: Grey}.Resolved()
	metrics := env.Typesetter.FontMetrics(style)
	width := env.Typesetter.TextWidth(style, p.Label)
	at := Position{
		X: AlignCenter.Offset(size.Width, width, LeftToRight),
		Y: AlignMiddle.Offset(size.Height, metrics.Height()) + metrics.Ascent,
	}
	env.Canvas.DrawText(p.Label, at, style)
}
