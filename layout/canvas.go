package layout

import "image"

// Canvas is the drawing surface the layout engine emits primitives to.
// Coordinates are points relative to the current translation, y pointing
// down. Backends that fail record the error and report it through Err; the
// driver checks it after each page.
type Canvas interface {
	BeginDocument()
	EndDocument()
	BeginPage(size Size)
	EndPage()

	Translate(offset Position)

	DrawRectangle(at Position, size Size, c Color)
	// DrawText paints text with its baseline starting at at.
	DrawText(text string, at Position, style TextStyle)
	DrawImage(img image.Image, size Size)
	DrawHyperlink(url string, size Size)
	DrawSectionLink(section string, size Size)
	DrawSection(section string)

	Err() error
}

// FontMetrics describes vertical font extents in points. Ascent and Descent
// are both positive distances from the baseline.
type FontMetrics struct {
	Ascent             float64
	Descent            float64
	UnderlinePosition  float64 // below the baseline
	UnderlineThickness float64
	StrikeoutPosition  float64 // above the baseline
}

// Height is the natural line height of the font.
func (m FontMetrics) Height() float64 { return m.Ascent + m.Descent }

// Typesetter measures shaped text. Implementations may cache internally but
// must be deterministic for a given style and string.
type Typesetter interface {
	TextWidth(style TextStyle, text string) float64
	FontMetrics(style TextStyle) FontMetrics
	HasGlyph(style TextStyle, r rune) bool
}

// Discard is a canvas that drops every primitive. The driver uses it for the
// first pass.
var Discard Canvas = discardCanvas{}

type discardCanvas struct{}

func (discardCanvas) BeginDocument()                        {}
func (discardCanvas) EndDocument()                          {}
func (discardCanvas) BeginPage(Size)                        {}
func (discardCanvas) EndPage()                              {}
func (discardCanvas) Translate(Position)                    {}
func (discardCanvas) DrawRectangle(Position, Size, Color)   {}
func (discardCanvas) DrawText(string, Position, TextStyle)  {}
func (discardCanvas) DrawImage(image.Image, Size)           {}
func (discardCanvas) DrawHyperlink(string, Size)            {}
func (discardCanvas) DrawSectionLink(string, Size)          {}
func (discardCanvas) DrawSection(string)                    {}
func (discardCanvas) Err() error                            { return nil }
