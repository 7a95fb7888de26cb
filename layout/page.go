package layout

import "math"

// Decoration repeats Before and After around Content on every page Content
// occupies. Both decorations must fit entirely.
type Decoration struct {
	Before  Element
	Content Element
	After   Element
}

func (d *Decoration) Slots() []*Element { return []*Element{&d.Before, &d.Content, &d.After} }

type decorationPlan struct {
	before, content, after SpacePlan
	result                 SpacePlan
}

func (d *Decoration) plan(env *Env, available Size) decorationPlan {
	var p decorationPlan
	p.before = orEmpty(d.Before).Measure(env, available)
	p.after = orEmpty(d.After).Measure(env, available)
	if !p.before.IsFull() || !p.after.IsFull() {
		p.result = WrapPlan()
		return p
	}

	space := Size{Width: available.Width, Height: available.Height - p.before.Height - p.after.Height}
	if space.IsNegative() {
		p.result = WrapPlan()
		return p
	}
	p.content = orEmpty(d.Content).Measure(env, space)
	if p.content.IsWrap() {
		p.result = WrapPlan()
		return p
	}

	width := math.Max(p.before.Width, math.Max(p.content.Width, p.after.Width))
	height := p.before.Height + p.content.Height + p.after.Height
	if !(Size{Width: width, Height: height}).Fits(available) {
		p.result = WrapPlan()
		return p
	}
	p.result = SpacePlan{Type: p.content.Type, Width: width, Height: height}
	return p
}

func (d *Decoration) Measure(env *Env, available Size) SpacePlan {
	return d.plan(env, available).result
}

func (d *Decoration) Draw(env *Env, available Size) {
	p := d.plan(env, available)
	if p.result.IsWrap() {
		return
	}
	w := available.Width
	env.DrawAt(orEmpty(d.Before), Origin, Size{Width: w, Height: p.before.Height})
	env.DrawAt(orEmpty(d.Content), Position{Y: p.before.Height}, Size{Width: w, Height: p.content.Height})
	env.DrawAt(orEmpty(d.After), Position{Y: p.before.Height + p.content.Height}, Size{Width: w, Height: p.after.Height})
}

// Margins are page insets in points.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Page is the root of a document part. It fixes the page size and stamps
// the header and footer on every page; the content flows in between.
type Page struct {
	Size       Size
	Margins    Margins
	Background Color

	Header  Element
	Content Element
	Footer  Element
}

func (p *Page) Slots() []*Element { return []*Element{&p.Header, &p.Content, &p.Footer} }

type pagePlan struct {
	header, footer, content SpacePlan
	inner                   Size
	contentSpace            Size
	result                  SpacePlan
}

func (p *Page) plan(env *Env, available Size) pagePlan {
	var pp pagePlan
	if !p.Size.Fits(available) {
		pp.result = WrapPlan()
		return pp
	}
	pp.inner = Size{
		Width:  p.Size.Width - p.Margins.Left - p.Margins.Right,
		Height: p.Size.Height - p.Margins.Top - p.Margins.Bottom,
	}
	if pp.inner.IsNegative() {
		pp.result = WrapPlan()
		return pp
	}
	pp.header = orEmpty(p.Header).Measure(env, pp.inner)
	pp.footer = orEmpty(p.Footer).Measure(env, pp.inner)
	if !pp.header.IsFull() || !pp.footer.IsFull() {
		pp.result = WrapPlan()
		return pp
	}
	pp.contentSpace = Size{Width: pp.inner.Width, Height: pp.inner.Height - pp.header.Height - pp.footer.Height}
	if pp.contentSpace.IsNegative() {
		pp.result = WrapPlan()
		return pp
	}
	pp.content = orEmpty(p.Content).Measure(env, pp.contentSpace)
	if pp.content.IsWrap() {
		pp.result = WrapPlan()
		return pp
	}
	pp.result = SpacePlan{Type: pp.content.Type, Width: p.Size.Width, Height: p.Size.Height}
	return pp
}

func (p *Page) Measure(env *Env, available Size) SpacePlan {
	return p.plan(env, available).result
}

func (p *Page) Draw(env *Env, available Size) {
	pp := p.plan(env, available)
	if pp.result.IsWrap() {
		return
	}
	if !p.Background.IsZero() {
		env.Canvas.DrawRectangle(Origin, p.Size, p.Background)
	}
	origin := Position{X: p.Margins.Left, Y: p.Margins.Top}
	env.DrawAt(orEmpty(p.Header), origin, Size{Width: pp.inner.Width, Height: pp.header.Height})
	env.DrawAt(orEmpty(p.Content), origin.Add(Position{Y: pp.header.Height}), pp.contentSpace)
	env.DrawAt(orEmpty(p.Footer), origin.Add(Position{Y: pp.inner.Height - pp.footer.Height}), Size{Width: pp.inner.Width, Height: pp.footer.Height})
}
