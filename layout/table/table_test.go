package table_test

import (
	"testing"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/layout/layouttest"
	"github.com/ByLCY/folio/layout/table"
	"github.com/ByLCY/folio/renderer/record"
)

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

// filled paints the whole cell so its drawn area shows up as a rectangle.
func filled(height float64) layout.Element {
	return &layout.Background{Color: layout.Red, Child: &layout.Box{Height: height}}
}

func TestAutomaticPlacement(t *testing.T) {
	b := &table.Builder{}
	b.RelativeColumn(1).RelativeColumn(1).RelativeColumn(1)
	first := b.Cell(nil)
	wide := b.Cell(nil).Span(1, 2)
	fixed := b.Cell(nil).At(2, 3)
	next := b.Cell(nil)
	pinned := b.Cell(nil)
	pinned.Column = 1
	if _, err := b.Build(); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	want := []struct {
		cell        *table.Cell
		row, column int
	}{
		{first, 1, 1},
		{wide, 1, 2},
		{fixed, 2, 3},
		{next, 3, 1},
		{pinned, 4, 1},
	}
	for i, w := range want {
		if w.cell.Row != w.row || w.cell.Column != w.column {
			t.Fatalf("cell %d placed at (%d, %d), want (%d, %d)", i+1, w.cell.Row, w.cell.Column, w.row, w.column)
		}
	}
}

func TestInvalidDeclarations(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *table.Builder)
	}{
		{"no columns", func(b *table.Builder) { b.Cell(nil) }},
		{"overlap", func(b *table.Builder) {
			b.RelativeColumn(1)
			b.Cell(nil).At(1, 1).Span(2, 1)
			b.Cell(nil).At(2, 1)
		}},
		{"past last column", func(b *table.Builder) {
			b.RelativeColumn(1).RelativeColumn(1).RelativeColumn(1)
			b.Cell(nil).At(1, 3).Span(1, 2)
		}},
		{"span wider than table", func(b *table.Builder) {
			b.RelativeColumn(1)
			b.Cell(nil).Span(1, 2)
		}},
		{"negative span", func(b *table.Builder) {
			b.RelativeColumn(1)
			b.Cell(nil).Span(-1, 1)
		}},
		{"overlapping header", func(b *table.Builder) {
			b.RelativeColumn(1)
			b.HeaderCell(nil).At(1, 1)
			b.HeaderCell(nil).At(1, 1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &table.Builder{}
			tt.build(b)
			_, err := b.Build()
			if !layout.Is(err, layout.CodeInvalidTable) {
				t.Fatalf("expected an invalid table error, got %v", err)
			}
		})
	}
}

func TestColumnWidthsAndRowHeights(t *testing.T) {
	b := &table.Builder{}
	b.ConstantColumn(20).RelativeColumn(1).RelativeColumn(3)
	b.Cell(filled(10))
	b.Cell(filled(30))
	b.Cell(filled(10))
	b.Cell(filled(5))
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	env := layouttest.Env(nil)
	if got := tbl.Measure(env, layout.Size{Width: 100, Height: 100}); got != layout.Full(100, 35) {
		t.Fatalf("plan = %v", got)
	}

	p := drawOnce(t, tbl, layout.Size{Width: 100, Height: 100})
	want := []record.Rect{
		{X: 0, Y: 0, Width: 20, Height: 30},
		{X: 20, Y: 0, Width: 20, Height: 30},
		{X: 40, Y: 0, Width: 60, Height: 30},
		{X: 0, Y: 30, Width: 20, Height: 5},
	}
	if len(p.Rects) != len(want) {
		t.Fatalf("expected %d cells, got %d", len(want), len(p.Rects))
	}
	for i, w := range want {
		w.FillColor = layout.Red
		if p.Rects[i] != w {
			t.Fatalf("cell %d drawn as %+v, want %+v", i+1, p.Rects[i], w)
		}
	}
}

func TestRowSpan(t *testing.T) {
	b := &table.Builder{}
	b.RelativeColumn(1).RelativeColumn(1)
	b.Cell(filled(10)).Span(2, 1)
	b.Cell(filled(15))
	b.Cell(filled(15))
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	p := drawOnce(t, tbl, layout.Size{Width: 100, Height: 100})
	if r := p.Rects[0]; r.Height != 30 {
		t.Fatalf("spanning cell should cover both rows, got height %g", r.Height)
	}
	if r := p.Rects[2]; r.X != 50 || r.Y != 15 {
		t.Fatalf("third cell should sit next to the span in row 2, got (%g, %g)", r.X, r.Y)
	}
}

func TestExtendLastCellsToBottom(t *testing.T) {
	build := func(extend bool) layout.Element {
		b := &table.Builder{ExtendLastCellsToBottom: extend}
		b.RelativeColumn(1).RelativeColumn(1)
		b.Cell(filled(10))
		b.Cell(filled(30))
		b.Cell(filled(10))
		tbl, err := b.Build()
		if err != nil {
			t.Fatalf("build failed: %v", err)
		}
		return tbl
	}
	size := layout.Size{Width: 100, Height: 100}

	p := drawOnce(t, build(false), size)
	if h := p.Rects[1].Height; h != 30 {
		t.Fatalf("without extension the second column ends with its row, got %g", h)
	}
	p = drawOnce(t, build(true), size)
	if h := p.Rects[1].Height; h != 40 {
		t.Fatalf("last cell of the second column should reach the bottom, got %g", h)
	}
	if r := p.Rects[2]; r.Y != 30 || r.Height != 10 {
		t.Fatalf("row 2 cell drawn as %+v", r)
	}
}

func TestHeaderAndFooterRepeatOnEveryPage(t *testing.T) {
	b := &table.Builder{}
	b.RelativeColumn(1)
	b.HeaderCell(layouttest.NewMock("H", 10, 10))
	for _, id := range []string{"r0", "r1", "r2", "r3", "r4"} {
		b.Cell(layouttest.NewMock(id, 10, 30))
	}
	b.FooterCell(layouttest.NewMock("F", 10, 10))
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	c := record.New()
	root := &layout.Page{Size: layout.Size{Width: 100, Height: 100}, Content: tbl}
	rep, err := document.Generate(c, layouttest.NewMonospace(), root, document.DefaultSettings())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if rep.Pages != 2 {
		t.Fatalf("expected 2 pages, got %d", rep.Pages)
	}

	footerY := []float64{90, 80}
	for i, p := range c.Result().Pages {
		texts := p.Text()
		if texts[0] != "H" || texts[len(texts)-1] != "F" {
			t.Fatalf("page %d should be framed by header and footer, got %v", p.Number, texts)
		}
		f, _ := p.FindText("F")
		if f.Y != footerY[i] {
			t.Fatalf("page %d footer at y=%g, want %g", p.Number, f.Y, footerY[i])
		}
	}
	if _, ok := c.Result().Pages[1].FindText("r2"); !ok {
		t.Fatalf("the split row should continue on page 2")
	}
}

func TestSpanningCellBesideLastColumn(t *testing.T) {
	b := &table.Builder{}
	b.ConstantColumn(200).ConstantColumn(150).ConstantColumn(100)
	b.Cell(filled(10)).At(1, 1).Span(1, 2)
	b.Cell(filled(10)).At(1, 3)
	tbl, err := b.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	size := layout.Size{Width: 450, Height: 100}
	if got := tbl.Measure(layouttest.Env(nil), size); got != layout.Full(450, 10) {
		t.Fatalf("plan = %v", got)
	}
	p := drawOnce(t, tbl, size)
	want := []record.Rect{
		{X: 0, Y: 0, Width: 350, Height: 10, FillColor: layout.Red},
		{X: 350, Y: 0, Width: 100, Height: 10, FillColor: layout.Red},
	}
	if len(p.Rects) != len(want) {
		t.Fatalf("expected %d cells, got %+v", len(want), p.Rects)
	}
	for i, w := range want {
		if p.Rects[i] != w {
			t.Fatalf("cell %d drawn as %+v, want %+v", i+1, p.Rects[i], w)
		}
	}

	b.Cell(filled(10)).At(1, 2)
	if _, err := b.Build(); !layout.Is(err, layout.CodeInvalidTable) {
		t.Fatalf("a cell inside the span should be rejected, got %v", err)
	}
}
