package text_test

import (
	"strings"
	"testing"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/layout/layouttest"
	"github.com/ByLCY/folio/layout/text"
	"github.com/ByLCY/folio/renderer/record"
)

// With the monospace fixture a 10pt rune is 5pt wide and a line is 12pt
// tall at the default 1.2 line height.
var small = layout.TextStyle{FontSize: 10}

func drawOnce(t *testing.T, e layout.Element, available layout.Size) record.Page {
	t.Helper()
	c := record.New()
	c.BeginDocument()
	c.BeginPage(available)
	e.Draw(layouttest.Env(c), available)
	c.EndPage()
	c.EndDocument()
	if err := c.Err(); err != nil {
		t.Fatalf("record canvas failed: %v", err)
	}
	return c.Result().Pages[0]
}

func TestWordsMoveToTheNextLine(t *testing.T) {
	block := text.Text("hello world", small)
	env := layouttest.Env(nil)
	if got := block.Measure(env, layout.Size{Width: 40, Height: 100}); got != layout.Full(25, 24) {
		t.Fatalf("plan = %v", got)
	}
	if got := block.Measure(env, layout.MaxSize); got != layout.Full(55, 12) {
		t.Fatalf("single line plan = %v", got)
	}

	p := drawOnce(t, block, layout.Size{Width: 40, Height: 100})
	if got := strings.Join(p.Text(), "|"); got != "hello|world" {
		t.Fatalf("lines = %q", got)
	}
	first, _ := p.FindText("hello")
	second, _ := p.FindText("world")
	if first.Y != 9 || second.Y != 21 {
		t.Fatalf("baselines at %g and %g, want 9 and 21", first.Y, second.Y)
	}
}

func TestWrapAnywhere(t *testing.T) {
	style := small
	style.WrapAnywhere = layout.On
	p := drawOnce(t, text.Text("abcdefgh", style), layout.Size{Width: 20, Height: 100})
	if got := strings.Join(p.Text(), "|"); got != "abcd|efgh" {
		t.Fatalf("lines = %q", got)
	}
}

func TestLongWordMovesBeforeBreaking(t *testing.T) {
	block := text.NewBlock(text.NewSpan("ab ", small), text.NewSpan("abcdefghij", small))
	p := drawOnce(t, block, layout.Size{Width: 30, Height: 100})
	if got := strings.Join(p.Text(), "|"); got != "ab|abcdef|ghij" {
		t.Fatalf("lines = %q", got)
	}
}

func TestLineBreaks(t *testing.T) {
	block := text.Text("a\n\nb", small)
	if got := block.Measure(layouttest.Env(nil), layout.MaxSize); got != layout.Full(5, 36) {
		t.Fatalf("plan = %v", got)
	}
}

func TestEmptyAndTooNarrow(t *testing.T) {
	env := layouttest.Env(nil)
	if got := text.NewBlock().Measure(env, layout.Size{}); got != layout.Full(0, 0) {
		t.Fatalf("empty paragraph plan = %v", got)
	}
	if got := text.Text("abc", small).Measure(env, layout.Size{Width: 4, Height: 100}); !got.IsWrap() {
		t.Fatalf("a single rune wider than the space should wrap, got %v", got)
	}
	if got := text.Text("abc", small).Measure(env, layout.Size{Width: 100, Height: 5}); !got.IsWrap() {
		t.Fatalf("a line taller than the space should wrap, got %v", got)
	}
}

func TestBlockSplitsAcrossPages(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "l" + string(rune('0'+i))
	}
	root := &layout.Page{
		Size:    layout.Size{Width: 100, Height: 50},
		Content: text.Text(strings.Join(lines, "\n"), small),
	}
	c := record.New()
	rep, err := document.Generate(c, layouttest.NewMonospace(), root, document.DefaultSettings())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rep.Pages != 3 {
		t.Fatalf("expected 3 pages, got %d", rep.Pages)
	}
	want := []string{"l0|l1|l2|l3", "l4|l5|l6|l7", "l8|l9"}
	for i, p := range c.Result().Pages {
		if got := strings.Join(p.Text(), "|"); got != want[i] {
			t.Fatalf("page %d lines = %q, want %q", i+1, got, want[i])
		}
	}
}

func TestAlignmentAndDirection(t *testing.T) {
	block := text.Text("ab", small)
	block.Alignment = layout.AlignRight
	p := drawOnce(t, block, layout.Size{Width: 100, Height: 20})
	if x := p.Texts[0].X; x != 90 {
		t.Fatalf("right aligned text at x=%g", x)
	}

	block = text.Text("ab", small)
	block.SetDirection(layout.RightToLeft)
	p = drawOnce(t, block, layout.Size{Width: 100, Height: 20})
	if x := p.Texts[0].X; x != 90 {
		t.Fatalf("start aligned rtl text at x=%g", x)
	}
}

func TestStyleInheritance(t *testing.T) {
	span := text.NewSpan("x", layout.TextStyle{Weight: layout.WeightBold})
	layout.ApplyTextStyle(text.NewBlock(span), layout.TextStyle{FontSize: 20, Color: layout.Red})
	got := span.ResolvedStyle()
	if got.FontSize != 20 || got.Color != layout.Red || got.Weight != layout.WeightBold {
		t.Fatalf("resolved style = %+v", got)
	}
	if got.FontFamily != layout.DefaultTextStyle.FontFamily {
		t.Fatalf("unset fields should fall back to the default style, got %q", got.FontFamily)
	}
}

func TestSpanNormalizesText(t *testing.T) {
	if got := text.NewSpan("e\u0301", small).Text(); got != "\u00e9" {
		t.Fatalf("text = %q, want NFC", got)
	}
}

func TestLinksAndDecorations(t *testing.T) {
	link := text.NewSpan("go", small)
	link.URL = "https://go.dev"
	under := small
	under.Underline = layout.On
	block := text.NewBlock(link, text.NewSpan(" under", under))

	p := drawOnce(t, block, layout.Size{Width: 100, Height: 20})
	if len(p.Links) != 1 || p.Links[0].URL != "https://go.dev" || p.Links[0].Width != 10 {
		t.Fatalf("links = %+v", p.Links)
	}
	if len(p.Rects) != 1 || p.Rects[0].Width != 30 {
		t.Fatalf("underline should span the second run, got %+v", p.Rects)
	}
}

func TestPageNumberPlaceholder(t *testing.T) {
	block := text.NewBlock(text.NewPageNumber(text.TotalPages(), small))
	p := drawOnce(t, block, layout.Size{Width: 100, Height: 20})
	if got := p.Text(); len(got) != 1 || got[0] != "123" {
		t.Fatalf("unknown total should print a placeholder, got %v", got)
	}
	if got := text.DefaultPageNumberFormatter(7, true); got != "7" {
		t.Fatalf("formatted = %q", got)
	}
}

func TestPageNumbersResolveForwardReferences(t *testing.T) {
	root := &layout.Page{
		Size: layout.Size{Width: 100, Height: 100},
		Content: layout.NewColumn(0,
			text.NewBlock(
				text.NewPageNumber(text.SectionStart("end"), small),
				text.NewSpan("/", small),
				text.NewPageNumber(text.TotalPages(), small),
			),
			layouttest.NewMock("body", 10, 150),
			&layout.Section{Name: "end", Child: layouttest.NewMock("E", 10, 10)},
		),
		Footer: text.NewBlock(text.NewPageNumber(text.CurrentPage(), small)),
	}
	c := record.New()
	rep, err := document.Generate(c, layouttest.NewMonospace(), root, document.DefaultSettings())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rep.Pages != 2 {
		t.Fatalf("expected 2 pages, got %d", rep.Pages)
	}
	pages := c.Result().Pages
	if got := strings.Join(pages[0].Text(), ""); got != "2/2body1" {
		t.Fatalf("page 1 = %q", got)
	}
	if got := strings.Join(pages[1].Text(), ""); got != "bodyE2" {
		t.Fatalf("page 2 = %q", got)
	}
	if len(rep.Sections) != 1 || rep.Sections[0].PageStart != 2 {
		t.Fatalf("sections = %+v", rep.Sections)
	}
	if a := pages[1].Anchors; len(a) != 1 || a[0].Name != "0:end" {
		t.Fatalf("anchors = %+v", a)
	}
}

func TestMissingGlyphFailsWhenChecked(t *testing.T) {
	ts := layouttest.NewMonospace()
	ts.Missing = map[rune]bool{'x': true}
	root := func() layout.Element {
		return &layout.Page{Size: layout.Size{Width: 100, Height: 100}, Content: text.Text("box", small)}
	}

	s := document.DefaultSettings()
	if _, err := document.Generate(record.New(), ts, root(), s); err != nil {
		t.Fatalf("glyphs are not checked by default: %v", err)
	}
	s.CheckGlyphs = true
	_, err := document.Generate(record.New(), ts, root(), s)
	if !layout.Is(err, layout.CodeMissingGlyph) {
		t.Fatalf("expected a missing glyph error, got %v", err)
	}
}

func TestTrailingSpaceBetweenSpansHasNoWidth(t *testing.T) {
	block := text.NewBlock(text.NewSpan("ab ", small), text.NewSpan("cd", small))
	if got := block.Measure(layouttest.Env(nil), layout.MaxSize); got != layout.Full(20, 12) {
		t.Fatalf("plan = %v", got)
	}
	p := drawOnce(t, block, layout.Size{Width: 100, Height: 20})
	if cd, ok := p.FindText("cd"); !ok || cd.X != 10 {
		t.Fatalf("second span should follow the first without a gap, got %+v", p.Texts)
	}
}
