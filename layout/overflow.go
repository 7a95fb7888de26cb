package layout

import "sort"

var overflowColor = Color{R: 244, G: 67, B: 54, A: 96}

// overflowProxy records the last measurement of the element it wraps. It is
// only present while an overflow is being diagnosed.
type overflowProxy struct {
	child Element

	measured  bool
	available Size
	plan      SpacePlan
}

func (p *overflowProxy) Slots() []*Element { return []*Element{&p.child} }
func (p *overflowProxy) Name() string      { return Describe(p.child) }
func (p *overflowProxy) unwrap() Element   { return p.child }

func (p *overflowProxy) Measure(env *Env, available Size) SpacePlan {
	p.plan = p.child.Measure(env, available)
	p.available = available
	p.measured = true
	return p.plan
}

func (p *overflowProxy) Draw(env *Env, available Size) { p.child.Draw(env, available) }

// OverflowMarker replaces the element found responsible for a layout
// overflow. When its child does not fit it consumes the offered space,
// paints it red and remembers the page, so pagination can continue.
type OverflowMarker struct {
	Child Element
	// Path names the elements from the root down to the marked one.
	Path []string

	pages map[int]bool
}

func (m *OverflowMarker) Slots() []*Element { return []*Element{&m.Child} }

func (m *OverflowMarker) ResetState(hard bool) {
	if hard {
		m.pages = nil
	}
}

// Pages lists the pages the marker was visible on, in order.
func (m *OverflowMarker) Pages() []int {
	out := make([]int, 0, len(m.pages))
	for p := range m.pages {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

func (m *OverflowMarker) Measure(env *Env, available Size) SpacePlan {
	plan := orEmpty(m.Child).Measure(env, available)
	if !plan.IsWrap() {
		return plan
	}
	return Full(available.Width, available.Height)
}

func (m *OverflowMarker) Draw(env *Env, available Size) {
	child := orEmpty(m.Child)
	if !child.Measure(env, available).IsWrap() {
		child.Draw(env, available)
		return
	}
	if m.pages == nil {
		m.pages = make(map[int]bool)
	}
	m.pages[env.Pages.CurrentPage+1] = true
	env.Canvas.DrawRectangle(Origin, available, overflowColor)
	drawFrame(env.Canvas, available, 2, Red)
}

// Diagnose measures root under instrumentation and replaces the deepest
// element that wraps while none of its children do with an OverflowMarker.
// It returns the inserted marker, or nil when the root does not wrap.
func Diagnose(env *Env, root *Element, available Size) *OverflowMarker {
	RemoveProxies(root)
	Rewrite(root, func(e Element) Element { return &overflowProxy{child: e} })
	defer RemoveProxies(root)

	top, ok := (*root).(*overflowProxy)
	if !ok || !top.Measure(env, available).IsWrap() {
		return nil
	}

	culprit := top
	path := []string{Describe(top.child)}
descend:
	for {
		for _, slot := range children(culprit.child) {
			p, ok := (*slot).(*overflowProxy)
			if ok && p.measured && p.plan.IsWrap() {
				culprit = p
				path = append(path, Describe(p.child))
				continue descend
			}
		}
		break
	}

	if _, already := culprit.child.(*OverflowMarker); already {
		return nil
	}
	marker := &OverflowMarker{Child: culprit.child, Path: path}
	culprit.child = marker
	return marker
}

// Markers returns every overflow marker in the tree.
func Markers(root Element) []*OverflowMarker {
	var out []*OverflowMarker
	Walk(root, func(e Element) {
		if m, ok := e.(*OverflowMarker); ok {
			out = append(out, m)
		}
	})
	return out
}

// overflowPageMarker frames every page that shows an overflow marker.
type overflowPageMarker struct {
	child Element
	pages map[int]bool
}

// MarkOverflowPages wraps root so the given pages get a red frame. The
// wrapper is not removed by RemoveProxies.
func MarkOverflowPages(root Element, pages []int) Element {
	set := make(map[int]bool, len(pages))
	for _, p := range pages {
		set[p] = true
	}
	return &overflowPageMarker{child: root, pages: set}
}

func (p *overflowPageMarker) Slots() []*Element { return []*Element{&p.child} }

func (p *overflowPageMarker) Measure(env *Env, available Size) SpacePlan {
	return p.child.Measure(env, available)
}

func (p *overflowPageMarker) Draw(env *Env, available Size) {
	p.child.Draw(env, available)
	if p.pages[env.Pages.CurrentPage+1] {
		drawFrame(env.Canvas, available, 6, Red)
	}
}
