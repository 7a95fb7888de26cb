// Package canvasrenderer draws layout output to PDF via github.com/tdewolff/canvas.
package canvasrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"golang.org/x/image/font/sfnt"

	"github.com/ByLCY/folio/fonts"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// Renderer is both the PDF canvas and the typesetter measuring text with the
// same fonts. Layout coordinates are points; tdewolff/canvas works in
// millimeters, so every coordinate crosses toMm on the way out.
//
// DrawHyperlink, DrawSectionLink and DrawSection do nothing: the PDF writer
// has no annotation support, so the output carries no clickable links or
// named destinations. renderer/record keeps them.
type Renderer struct {
	opts Options

	fontMu sync.Mutex
	faces  map[string]*fontEntry

	buf    bytes.Buffer
	writer *pdf.PDF
	page   *canvas.Canvas
	ctx    *canvas.Context
	offset layout.Position
	pages  int
	err    error
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Typesetter = (*Renderer)(nil)
)

// Options configures the canvas renderer.
type Options struct {
	// BaseDir resolves relative font paths.
	BaseDir string
	Fonts   []FontResource
	Meta    renderer.Meta
}

// FontResource registers a font file for a family and style. Styles not
// registered fall back to the family's regular face, then to the embedded
// Go fonts.
type FontResource struct {
	Family string
	Bold   bool
	Italic bool
	// Src is a file path or "embed:<name>" (see fonts.Names).
	Src   string
	Bytes []byte
}

type fontEntry struct {
	name   string
	family *canvas.FontFamily
	style  canvas.FontStyle
	glyphs *sfnt.Font
	faces  map[float64]*canvas.FontFace
}

// NewRenderer creates a renderer with the embedded fonts only.
func NewRenderer() *Renderer { return NewRendererWithOptions(Options{}) }

// NewRendererWithOptions creates a renderer with injected fonts.
func NewRendererWithOptions(opts Options) *Renderer {
	return &Renderer{opts: opts, faces: map[string]*fontEntry{}}
}

func (r *Renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Renderer) Err() error { return r.err }

func (r *Renderer) BeginDocument() {
	r.buf.Reset()
	r.writer = nil
	r.page, r.ctx = nil, nil
	r.pages = 0
	r.err = nil
}

func (r *Renderer) EndDocument() {
	if r.writer == nil {
		r.fail(fmt.Errorf("缺少可渲染的页面"))
		return
	}
	if err := r.writer.Close(); err != nil {
		r.fail(fmt.Errorf("写入 PDF 失败: %w", err))
	}
}

func (r *Renderer) BeginPage(size layout.Size) {
	w, h := toMm(size.Width), toMm(size.Height)
	if r.writer == nil {
		r.writer = pdf.New(&r.buf, w, h, nil)
		m := r.opts.Meta
		r.writer.SetInfo(m.Title, m.Subject, strings.Join(m.Keywords, ", "), m.Author, m.Creator)
	} else {
		r.writer.NewPage(w, h)
	}
	r.page = canvas.New(w, h)
	r.ctx = canvas.NewContext(r.page)
	r.ctx.SetCoordSystem(canvas.CartesianIV) // 使坐标与布局保持左上角为原点
	r.offset = layout.Origin
	r.pages++
}

func (r *Renderer) EndPage() {
	if r.page == nil {
		return
	}
	r.page.RenderTo(r.writer)
	r.page, r.ctx = nil, nil
}

// Bytes returns the PDF written by the last document.
func (r *Renderer) Bytes() ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.buf.Bytes(), nil
}

func (r *Renderer) Translate(offset layout.Position) { r.offset = r.offset.Add(offset) }

func (r *Renderer) at(p layout.Position) (float64, float64) {
	abs := r.offset.Add(p)
	return toMm(abs.X), toMm(abs.Y)
}

func (r *Renderer) DrawRectangle(at layout.Position, size layout.Size, col layout.Color) {
	if r.ctx == nil || col.IsZero() {
		return
	}
	x, y := r.at(at)
	r.ctx.SetFillColor(toColor(col))
	r.ctx.SetStrokeColor(color.RGBA{})
	r.ctx.DrawPath(x, y, canvas.Rectangle(toMm(size.Width), toMm(size.Height)))
}

func (r *Renderer) DrawText(text string, at layout.Position, style layout.TextStyle) {
	if r.ctx == nil {
		return
	}
	entry := r.entry(style)
	face := entry.family.Face(style.FontSize, toColor(style.Color), entry.style, canvas.FontNormal)
	x, y := r.at(at)
	r.ctx.DrawText(x, y, canvas.NewTextLine(face, text, canvas.Left))
}

func (r *Renderer) DrawImage(img image.Image, size layout.Size) {
	if r.ctx == nil || img == nil || size.Width <= 0 {
		return
	}
	dpmm := float64(img.Bounds().Dx()) / toMm(size.Width)
	if dpmm <= 0 {
		dpmm = 1
	}
	x, y := r.at(layout.Origin)
	r.ctx.DrawImage(x, y, img, canvas.DPMM(dpmm))
}

// The PDF backend has no annotation support; links and anchors are kept
// only by the recording renderer.
func (r *Renderer) DrawHyperlink(string, layout.Size)   {}
func (r *Renderer) DrawSectionLink(string, layout.Size) {}
func (r *Renderer) DrawSection(string)                  {}

// TextWidth 实现 layout.Typesetter，返回 pt。
func (r *Renderer) TextWidth(style layout.TextStyle, text string) float64 {
	return toPt(r.face(style).TextWidth(text))
}

func (r *Renderer) FontMetrics(style layout.TextStyle) layout.FontMetrics {
	m := r.face(style).Metrics()
	size := style.FontSize
	return layout.FontMetrics{
		Ascent:             toPt(m.Ascent),
		Descent:            toPt(m.Descent),
		UnderlinePosition:  0.1 * size,
		UnderlineThickness: 0.05 * size,
		StrikeoutPosition:  toPt(m.XHeight) / 2,
	}
}

func (r *Renderer) HasGlyph(style layout.TextStyle, c rune) bool {
	entry := r.entry(style)
	if entry.glyphs == nil {
		return true
	}
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	var buf sfnt.Buffer
	idx, err := entry.glyphs.GlyphIndex(&buf, c)
	return err == nil && idx != 0
}

func (r *Renderer) face(style layout.TextStyle) *canvas.FontFace {
	entry := r.entry(style)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if f, ok := entry.faces[style.FontSize]; ok {
		return f
	}
	f := entry.family.Face(style.FontSize, canvas.Black, entry.style, canvas.FontNormal)
	entry.faces[style.FontSize] = f
	return f
}

func bold(style layout.TextStyle) bool { return style.Weight >= layout.WeightSemiBold }

func fontCacheKey(style layout.TextStyle) string {
	return style.FontFamily + "|" + strconv.FormatBool(bold(style)) + "|" + strconv.FormatBool(style.Italic.Enabled())
}

// entry resolves the font for style, loading it on first use. A font that
// cannot be loaded is reported through Err and replaced by Go Regular.
func (r *Renderer) entry(style layout.TextStyle) *fontEntry {
	key := fontCacheKey(style)
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	if e, ok := r.faces[key]; ok {
		return e
	}
	name, data, err := r.fontBytes(style)
	if err == nil {
		var e *fontEntry
		if e, err = newFontEntry(name, data, style); err == nil {
			r.faces[key] = e
			return e
		}
	}
	r.fail(fmt.Errorf("加载字体 %s 失败: %w", style.FontFamily, err))
	e, ferr := newFontEntry("Go-Regular", mustEmbedded("Go-Regular"), layout.TextStyle{})
	if ferr != nil {
		panic(ferr)
	}
	r.faces[key] = e
	return e
}

func newFontEntry(name string, data []byte, style layout.TextStyle) (*fontEntry, error) {
	st := canvas.FontRegular
	if bold(style) {
		st = canvas.FontBold
	}
	if style.Italic.Enabled() {
		st |= canvas.FontItalic
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, st); err != nil {
		return nil, err
	}
	glyphs, _ := sfnt.Parse(data)
	return &fontEntry{name: name, family: family, style: st, glyphs: glyphs, faces: map[float64]*canvas.FontFace{}}, nil
}

func (r *Renderer) fontBytes(style layout.TextStyle) (string, []byte, error) {
	var fallback *FontResource
	for i := range r.opts.Fonts {
		f := &r.opts.Fonts[i]
		if !strings.EqualFold(f.Family, style.FontFamily) {
			continue
		}
		if f.Bold == bold(style) && f.Italic == style.Italic.Enabled() {
			data, err := r.load(f)
			return f.Family, data, err
		}
		if !f.Bold && !f.Italic {
			fallback = f
		}
	}
	if fallback != nil {
		data, err := r.load(fallback)
		return fallback.Family, data, err
	}
	name := fonts.Resolve(style.FontFamily, int(style.Weight), style.Italic.Enabled())
	data, err := fonts.Load(name)
	return name, data, err
}

func (r *Renderer) load(f *FontResource) ([]byte, error) {
	if len(f.Bytes) > 0 {
		return f.Bytes, nil
	}
	if strings.HasPrefix(f.Src, "embed:") {
		return fonts.Load(f.Src)
	}
	if f.Src == "" {
		return nil, fmt.Errorf("字体 %s 缺少 src", f.Family)
	}
	path := f.Src
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.opts.BaseDir, path)
	}
	return os.ReadFile(path)
}

func mustEmbedded(name string) []byte {
	data, err := fonts.Load(name)
	if err != nil {
		panic(err)
	}
	return data
}

func toColor(c layout.Color) color.Color {
	return canvas.RGBA(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
}

// toPt 将毫米(mm)转换为点(pt)。
func toPt(mm float64) float64 { return mm * layout.MmToPt }

// toMm 将点(pt)转换为毫米(mm)。
func toMm(pt float64) float64 { return pt * layout.PtToMm }
