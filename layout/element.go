package layout

import (
	"fmt"
	"strings"
)

// Element is a node of the content tree.
//
// Measure may be called any number of times and must not change observable
// state. Draw is called once per page for the content placed on that page
// and advances render-scoped state by exactly what was drawn. Both receive
// the render environment explicitly; elements never hold on to it.
type Element interface {
	Measure(env *Env, available Size) SpacePlan
	Draw(env *Env, available Size)
}

// Env is the scoped handle threaded through one render pass.
type Env struct {
	Canvas     Canvas
	Pages      *PageContext
	Typesetter Typesetter
	// StrictGlyphs aborts drawing when a font cannot render a rune.
	StrictGlyphs bool
}

// NewEnv returns an environment drawing to c with a fresh page context.
func NewEnv(c Canvas, ts Typesetter) *Env {
	return &Env{Canvas: c, Pages: NewPageContext(), Typesetter: ts}
}

// DrawAt draws child at offset, restoring the translation afterwards.
func (e *Env) DrawAt(child Element, at Position, available Size) {
	if child == nil {
		return
	}
	if at == Origin {
		child.Draw(e, available)
		return
	}
	e.Canvas.Translate(at)
	child.Draw(e, available)
	e.Canvas.Translate(at.Reverse())
}

// Parent is implemented by elements with children. Slots exposes the child
// fields themselves so tree passes can splice proxies in and out.
type Parent interface {
	Slots() []*Element
}

// Cacheable marks elements whose Measure and Draw are pure functions of
// their state and the offered space.
type Cacheable interface {
	Cacheable() bool
}

// StateResetter is implemented by elements with render-scoped state. A soft
// reset precedes a diagnostic re-measure of the same page; a hard reset
// precedes a full pass.
type StateResetter interface {
	ResetState(hard bool)
}

// TextStyleReceiver accepts the text style inherited from its ancestors.
type TextStyleReceiver interface {
	InheritTextStyle(parent TextStyle)
}

// TextStyleScope changes the style inherited by descendants.
type TextStyleScope interface {
	ScopeTextStyle(parent TextStyle) TextStyle
}

// DirectionReceiver accepts the content direction of its ancestors.
type DirectionReceiver interface {
	SetDirection(d Direction)
}

// DirectionScope changes the direction inherited by descendants.
type DirectionScope interface {
	ScopeDirection(parent Direction) Direction
}

func children(e Element) []*Element {
	if p, ok := e.(Parent); ok {
		return p.Slots()
	}
	return nil
}

// Walk visits e and its descendants, children first.
func Walk(e Element, fn func(Element)) {
	if e == nil {
		return
	}
	for _, slot := range children(e) {
		Walk(*slot, fn)
	}
	fn(e)
}

// Rewrite replaces every node of the tree rooted at *root with fn's result,
// children first.
func Rewrite(root *Element, fn func(Element) Element) {
	if root == nil || *root == nil {
		return
	}
	for _, slot := range children(*root) {
		Rewrite(slot, fn)
	}
	*root = fn(*root)
}

// ResetState delivers a reset to every stateful node under e.
func ResetState(e Element, hard bool) {
	Walk(e, func(x Element) {
		if r, ok := x.(StateResetter); ok {
			r.ResetState(hard)
		}
	})
}

// ApplyTextStyle pushes inherited text styles down the tree.
func ApplyTextStyle(e Element, inherited TextStyle) {
	if e == nil {
		return
	}
	if r, ok := e.(TextStyleReceiver); ok {
		r.InheritTextStyle(inherited)
	}
	if s, ok := e.(TextStyleScope); ok {
		inherited = s.ScopeTextStyle(inherited)
	}
	for _, slot := range children(e) {
		ApplyTextStyle(*slot, inherited)
	}
}

// ApplyDirection pushes the content direction down the tree.
func ApplyDirection(e Element, d Direction) {
	if e == nil {
		return
	}
	if s, ok := e.(DirectionScope); ok {
		d = s.ScopeDirection(d)
	}
	if r, ok := e.(DirectionReceiver); ok {
		r.SetDirection(d)
	}
	for _, slot := range children(e) {
		ApplyDirection(*slot, d)
	}
}

// Describe names an element for diagnostics.
func Describe(e Element) string {
	if e == nil {
		return "<nil>"
	}
	if n, ok := e.(interface{ Name() string }); ok {
		return n.Name()
	}
	name := fmt.Sprintf("%T", e)
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// Empty renders nothing and occupies no space.
type Empty struct{}

func (Empty) Measure(*Env, Size) SpacePlan { return Full(0, 0) }
func (Empty) Draw(*Env, Size)              {}

// orEmpty substitutes Empty for a missing child.
func orEmpty(e Element) Element {
	if e == nil {
		return Empty{}
	}
	return e
}
