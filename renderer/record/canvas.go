package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// Canvas records primitives in absolute page coordinates.
type Canvas struct {
	Meta renderer.Meta

	result *Result
	page   *Page
	offset layout.Position
	err    error
}

var _ renderer.Renderer = (*Canvas)(nil)

// New returns an empty recording canvas.
func New() *Canvas { return &Canvas{} }

func (c *Canvas) fail(format string, args ...any) {
	if c.err == nil {
		c.err = fmt.Errorf(format, args...)
	}
}

// open reports whether a page is ready for drawing.
func (c *Canvas) open(op string) bool {
	if c.page == nil {
		c.fail("record: %s outside of a page", op)
		return false
	}
	return true
}

func (c *Canvas) BeginDocument() {
	c.result = &Result{Meta: c.Meta}
	c.page = nil
	c.offset = layout.Origin
	c.err = nil
}

func (c *Canvas) EndDocument() {
	if c.page != nil {
		c.fail("record: document ended with page %d open", c.page.Number)
	}
}

func (c *Canvas) BeginPage(size layout.Size) {
	if c.result == nil {
		c.fail("record: page started before document")
		return
	}
	if c.page != nil {
		c.fail("record: page %d is still open", c.page.Number)
	}
	c.page = &Page{Number: len(c.result.Pages) + 1, Width: size.Width, Height: size.Height}
	c.offset = layout.Origin
}

func (c *Canvas) EndPage() {
	if !c.open("EndPage") {
		return
	}
	c.result.Pages = append(c.result.Pages, *c.page)
	c.page = nil
}

func (c *Canvas) Translate(offset layout.Position) { c.offset = c.offset.Add(offset) }

func (c *Canvas) at(p layout.Position) layout.Position { return c.offset.Add(p) }

func (c *Canvas) DrawRectangle(at layout.Position, size layout.Size, col layout.Color) {
	if !c.open("DrawRectangle") {
		return
	}
	p := c.at(at)
	c.page.Rects = append(c.page.Rects, Rect{X: p.X, Y: p.Y, Width: size.Width, Height: size.Height, FillColor: col})
}

func (c *Canvas) DrawText(text string, at layout.Position, style layout.TextStyle) {
	if !c.open("DrawText") {
		return
	}
	p := c.at(at)
	c.page.Texts = append(c.page.Texts, TextBox{
		Content:  text,
		X:        p.X,
		Y:        p.Y,
		Font:     style.FontFamily,
		FontSize: style.FontSize,
		Weight:   int(style.Weight),
		Italic:   style.Italic.Enabled(),
		Color:    style.Color,
	})
}

func (c *Canvas) DrawImage(img image.Image, size layout.Size) {
	if !c.open("DrawImage") {
		return
	}
	if img == nil {
		c.fail("record: nil image")
		return
	}
	b := img.Bounds()
	c.page.Images = append(c.page.Images, ImageBox{
		X: c.offset.X, Y: c.offset.Y, Width: size.Width, Height: size.Height,
		PixelsWide: b.Dx(), PixelsHigh: b.Dy(),
	})
}

func (c *Canvas) DrawHyperlink(url string, size layout.Size) {
	if !c.open("DrawHyperlink") {
		return
	}
	c.page.Links = append(c.page.Links, Link{X: c.offset.X, Y: c.offset.Y, Width: size.Width, Height: size.Height, URL: url})
}

func (c *Canvas) DrawSectionLink(section string, size layout.Size) {
	if !c.open("DrawSectionLink") {
		return
	}
	c.page.Links = append(c.page.Links, Link{X: c.offset.X, Y: c.offset.Y, Width: size.Width, Height: size.Height, Section: section})
}

func (c *Canvas) DrawSection(section string) {
	if !c.open("DrawSection") {
		return
	}
	c.page.Anchors = append(c.page.Anchors, Anchor{Name: section, X: c.offset.X, Y: c.offset.Y})
}

func (c *Canvas) Err() error { return c.err }

// Result returns what has been recorded so far.
func (c *Canvas) Result() *Result {
	if c.result == nil {
		return &Result{Meta: c.Meta}
	}
	return c.result
}

// Bytes 将记录结果输出为缩进的 JSON。
func (c *Canvas) Bytes() ([]byte, error) {
	if c.err != nil {
		return nil, c.err
	}
	return json.MarshalIndent(c.Result(), "", "  ")
}

// WriteJSON 将记录结果输出为 JSON 文件，便于调试或可视化。
func WriteJSON(res *Result, path string) error {
	if res == nil {
		return errors.New("record: nil result")
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
