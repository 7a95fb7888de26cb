// Package layouttest provides deterministic fixtures for layout tests: a
// monospace typesetter and a splittable mock element.
package layouttest

import (
	"github.com/ByLCY/folio/layout"
)

// Monospace measures every rune as Advance em wide. Ascent and descent are
// 0.8 and 0.2 em, so a 10pt line is 10pt tall.
type Monospace struct {
	Advance float64
	// Missing lists runes the fake font cannot draw.
	Missing map[rune]bool
}

// NewMonospace returns a typesetter with half-em advances.
func NewMonospace() *Monospace {
	return &Monospace{Advance: 0.5}
}

func (m *Monospace) TextWidth(style layout.TextStyle, text string) float64 {
	return float64(len([]rune(text))) * style.FontSize * m.Advance
}

func (m *Monospace) FontMetrics(style layout.TextStyle) layout.FontMetrics {
	size := style.FontSize
	return layout.FontMetrics{
		Ascent:             0.8 * size,
		Descent:            0.2 * size,
		UnderlinePosition:  0.1 * size,
		UnderlineThickness: 0.05 * size,
		StrikeoutPosition:  0.3 * size,
	}
}

func (m *Monospace) HasGlyph(_ layout.TextStyle, r rune) bool {
	return !m.Missing[r]
}

// Env returns an environment drawing to c (Discard when nil) with a fresh
// page context and a Monospace typesetter.
func Env(c layout.Canvas) *layout.Env {
	if c == nil {
		c = layout.Discard
	}
	return layout.NewEnv(c, NewMonospace())
}

// Mock is a block of Width x Height points that splits vertically across
// pages. Each draw paints a rectangle of the drawn size and writes ID at the
// top-left corner, which lets recorded output be matched back to mocks.
type Mock struct {
	ID     string
	Width  float64
	Height float64
	Color  layout.Color

	offset float64
}

// NewMock returns a mock of the given total size.
func NewMock(id string, width, height float64) *Mock {
	return &Mock{ID: id, Width: width, Height: height, Color: layout.LightGrey}
}

func (m *Mock) Name() string { return "Mock(" + m.ID + ")" }

func (m *Mock) ResetState(hard bool) {
	if hard {
		m.offset = 0
	}
}

func (m *Mock) Measure(_ *layout.Env, available layout.Size) layout.SpacePlan {
	if m.Width > available.Width+layout.Epsilon {
		return layout.WrapPlan()
	}
	remaining := m.Height - m.offset
	if remaining <= available.Height+layout.Epsilon {
		return layout.Full(m.Width, remaining)
	}
	if available.Height < layout.Epsilon {
		return layout.WrapPlan()
	}
	return layout.Partial(m.Width, available.Height)
}

func (m *Mock) Draw(env *layout.Env, available layout.Size) {
	plan := m.Measure(env, available)
	if plan.IsWrap() {
		return
	}
	env.Canvas.DrawRectangle(layout.Origin, plan.Size(), m.Color)
	env.Canvas.DrawText(m.ID, layout.Origin, layout.DefaultTextStyle)
	m.offset += plan.Height
	if plan.IsFull() {
		m.offset = 0
	}
}
