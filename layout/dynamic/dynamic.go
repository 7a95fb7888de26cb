// Package dynamic hosts caller code that decides what to render from the
// space and page it is offered.
package dynamic

import (
	"github.com/ByLCY/folio/layout"
)

// Context is what a component sees when it composes content.
type Context struct {
	AvailableSize layout.Size
	PageNumber    int
	TotalPages    int
	TextStyle     layout.TextStyle
	Direction     layout.Direction

	env *layout.Env
}

// Element is a detached subtree together with the size it needs on an
// unbounded page.
type Element struct {
	layout.Element
	Size layout.Size
}

// CreateElement prepares e with the inherited style and direction and
// measures it against an unbounded page. Components use it to decide how
// much content still fits.
func (c *Context) CreateElement(e layout.Element) Element {
	prepare(e, c.TextStyle, c.Direction)
	plan := e.Measure(c.env, layout.MaxSize)
	return Element{Element: e, Size: plan.Size()}
}

// Result is the content composed for one page.
type Result struct {
	Content layout.Element
	// HasMoreContent asks for another page after this one.
	HasMoreContent bool
}

// Component composes page-sized content from a state it may advance.
type Component[S any] interface {
	Compose(ctx *Context, state *S) Result
}

// ComponentFunc adapts a function to Component.
type ComponentFunc[S any] func(ctx *Context, state *S) Result

func (f ComponentFunc[S]) Compose(ctx *Context, state *S) Result { return f(ctx, state) }

// Cloner is implemented by states holding references that must not be
// shared between a snapshot and the live state.
type Cloner[S any] interface {
	Clone() S
}

// Host runs a component. Measuring composes against a copy of the state, so
// measurement never advances the component; only Draw commits the state it
// composed with.
type Host[S any] struct {
	Component Component[S]

	initial   S
	state     S
	style     layout.TextStyle
	direction layout.Direction
}

// NewHost returns a host starting from initial.
func NewHost[S any](c Component[S], initial S) *Host[S] {
	return &Host[S]{Component: c, initial: clone(initial), state: clone(initial)}
}

func clone[S any](s S) S {
	if c, ok := any(s).(Cloner[S]); ok {
		return c.Clone()
	}
	if c, ok := any(&s).(Cloner[S]); ok {
		return c.Clone()
	}
	return s
}

// State returns a copy of the committed state.
func (h *Host[S]) State() S { return clone(h.state) }

func (h *Host[S]) InheritTextStyle(parent layout.TextStyle) { h.style = parent }
func (h *Host[S]) SetDirection(d layout.Direction)         { h.direction = d }

func (h *Host[S]) ResetState(hard bool) {
	if hard {
		h.state = clone(h.initial)
	}
}

func (h *Host[S]) compose(env *layout.Env, available layout.Size, commit bool) Result {
	ctx := &Context{
		AvailableSize: available,
		PageNumber:    env.Pages.CurrentPage + 1,
		TotalPages:    env.Pages.DocumentLength,
		TextStyle:     h.style.Resolved(),
		Direction:     h.direction,
		env:           env,
	}
	state := clone(h.state)
	result := h.Component.Compose(ctx, &state)
	if commit {
		h.state = state
	}
	if result.Content == nil {
		result.Content = layout.Empty{}
	}
	prepare(result.Content, ctx.TextStyle, h.direction)
	return result
}

func prepare(e layout.Element, style layout.TextStyle, d layout.Direction) {
	layout.ApplyTextStyle(e, style)
	layout.ApplyDirection(e, d)
	layout.ResetState(e, true)
}

func (h *Host[S]) Measure(env *layout.Env, available layout.Size) layout.SpacePlan {
	result := h.compose(env, available, false)
	plan := result.Content.Measure(env, available)
	if plan.IsWrap() {
		return plan
	}
	if plan.IsPartial() {
		layout.Abort(layout.NewLayoutError(layout.CodeDynamicOverflow,
			"dynamic component generated content that does not fit on a single page (%s in %.2f x %.2f)",
			plan, available.Width, available.Height))
	}
	if result.HasMoreContent {
		return layout.Partial(plan.Width, plan.Height)
	}
	return layout.Full(plan.Width, plan.Height)
}

func (h *Host[S]) Draw(env *layout.Env, available layout.Size) {
	result := h.compose(env, available, true)
	result.Content.Draw(env, available)
}
