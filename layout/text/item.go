// Package text breaks paragraphs of styled runs into lines.
//
// A paragraph (Block) is an ordered list of inline items. Each item measures
// how much of itself fits in the remaining width of a line, starting from a
// character cursor, and reports where the next line should resume.
package text

import "github.com/ByLCY/folio/layout"

// Request asks an item to measure itself from StartIndex on a line that has
// AvailableWidth points left.
type Request struct {
	StartIndex     int
	AvailableWidth float64
	// IsFirstOnLine is set when nothing was placed on the line yet.
	IsFirstOnLine bool
}

// Measurement is the fitted part of an item.
type Measurement struct {
	Width      float64
	Ascent     float64
	Descent    float64
	LineHeight float64 // factor applied to Ascent+Descent

	StartIndex int
	EndIndex   int
	// NextIndex is where the next line resumes; consumed trailing spaces are
	// skipped.
	NextIndex  int
	TotalIndex int

	// LineBreak forces the line to end after this item.
	LineBreak bool
}

// Height is the natural height of the measured fragment.
func (m Measurement) Height() float64 { return m.Ascent + m.Descent }

// Done reports whether the item has nothing left after this fragment.
func (m Measurement) Done() bool {
	return m.EndIndex >= m.TotalIndex || m.NextIndex >= m.TotalIndex
}

// DrawRequest positions a fragment. The canvas origin is on the line's
// baseline at the fragment's left edge.
type DrawRequest struct {
	StartIndex int
	EndIndex   int
	Width      float64
	// LineAscent and LineDescent are the extents of the whole line.
	LineAscent  float64
	LineDescent float64
}

// Item is one inline piece of a paragraph.
type Item interface {
	// Measure returns false when nothing of the item fits.
	Measure(env *layout.Env, req Request) (Measurement, bool)
	Draw(env *layout.Env, req DrawRequest)
}

type styled interface {
	inheritStyle(parent layout.TextStyle)
}
