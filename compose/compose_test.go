package compose

import (
	"math"
	"strings"
	"testing"

	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/layout/layouttest"
	"github.com/ByLCY/folio/renderer/record"
)

// render 是测试辅助：构建 DSL 并用等宽排版器渲染到记录画布。
func render(t *testing.T, src string, data any) (*Result, *record.Result) {
	t.Helper()
	res, err := Parse("test.folio", strings.NewReader(src), Options{Data: data})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	c := record.New()
	if _, err := document.GenerateMerged(c, layouttest.NewMonospace(), res.Parts, res.Strategy, document.DefaultSettings()); err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	return res, c.Result()
}

func buildErr(t *testing.T, src string) error {
	t.Helper()
	_, err := Parse("test.folio", strings.NewReader(src), Options{})
	if err == nil {
		t.Fatalf("expected build error")
	}
	return err
}

var invoiceData = map[string]any{
	"user": map[string]any{"name": "Ada"},
	"items": []any{
		map[string]any{"name": "pen", "qty": 2},
		map[string]any{"name": "ink", "qty": 5},
	},
}

const invoiceDSL = `
doc Invoice v1 {
  meta {
    title: "Invoice"
    author: "Ada"
    numbering: separate
  }
  resources {
    font Body { src: "embed:Go-Regular"; style: "regular" }
    color Accent = #0F62FE
    style Base { size: 10pt }
    style Heading extends Base { weight: bold; color: Accent }
  }
  page A5 landscape margin 10mm {
    header { text Heading { "Hello, ${user.name}!" } }
    content {
      each item in items {
        text { "${item.name} x${item.qty}" }
      }
    }
  }
  page A5 {
    content { "second part" }
  }
}
`

func TestBuildInvoice(t *testing.T) {
	res, out := render(t, invoiceDSL, invoiceData)
	if res.Meta.Title != "Invoice" || res.Meta.Author != "Ada" || res.Meta.Creator != "folio" {
		t.Fatalf("unexpected meta: %+v", res.Meta)
	}
	if res.Strategy != document.Separate {
		t.Fatalf("expected separate numbering, got %v", res.Strategy)
	}
	if len(res.Fonts) != 1 || res.Fonts[0].Family != "Body" || res.Fonts[0].Bold {
		t.Fatalf("unexpected fonts: %+v", res.Fonts)
	}
	if len(res.Parts) != 2 || len(out.Pages) != 2 {
		t.Fatalf("expected 2 parts on 2 pages, got %d parts %d pages", len(res.Parts), len(out.Pages))
	}

	first := out.Pages[0]
	heading, ok := first.FindText("Hello, Ada!")
	if !ok {
		t.Fatalf("heading missing: %v", first.Text())
	}
	if heading.FontSize != 10 || heading.Weight != int(layout.WeightBold) || heading.Color.Hex() != "#0F62FE" {
		t.Fatalf("heading style not applied: %+v", heading)
	}
	for _, want := range []string{"pen x2", "ink x5"} {
		if _, ok := first.FindText(want); !ok {
			t.Fatalf("expected %q on first page, got %v", want, first.Text())
		}
	}
	if _, ok := out.Pages[1].FindText("second part"); !ok {
		t.Fatalf("second part missing: %v", out.Pages[1].Text())
	}
}

func TestPageGeometry(t *testing.T) {
	res, err := Parse("test.folio", strings.NewReader(`doc T v1 {
  page A4 landscape margin 10mm 20mm {
    background: #EEEEEE
  }
}`), Options{})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	page, ok := res.Parts[0].(*layout.Page)
	if !ok {
		t.Fatalf("expected *layout.Page, got %T", res.Parts[0])
	}
	if math.Abs(page.Size.Width-297*layout.MmToPt) > 1e-6 || math.Abs(page.Size.Height-210*layout.MmToPt) > 1e-6 {
		t.Fatalf("unexpected landscape size: %+v", page.Size)
	}
	if math.Abs(page.Margins.Top-10*layout.MmToPt) > 1e-6 || math.Abs(page.Margins.Left-20*layout.MmToPt) > 1e-6 {
		t.Fatalf("unexpected margins: %+v", page.Margins)
	}
	if page.Background.Hex() != "#EEEEEE" {
		t.Fatalf("unexpected background: %s", page.Background.Hex())
	}
}

func TestPageNumbersInFooter(t *testing.T) {
	_, out := render(t, `doc Numbers v1 {
  page A5 margin 10mm {
    footer {
      text {
        "Page "; pagenumber current; " of "; pagenumber total
      }
    }
    content {
      text { "first" }
      pagebreak
      text { "second" }
    }
  }
}`, nil)
	if len(out.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(out.Pages))
	}
	first, second := out.Pages[0], out.Pages[1]
	if _, ok := first.FindText("first"); !ok {
		t.Fatalf("first page: %v", first.Text())
	}
	if _, ok := second.FindText("second"); !ok {
		t.Fatalf("second page: %v", second.Text())
	}
	if got := strings.Join(first.Text(), "|"); !strings.Contains(got, "Page|1| of|2") {
		t.Fatalf("first footer = %s", got)
	}
	if got := strings.Join(second.Text(), "|"); !strings.Contains(got, "Page|2| of|2") {
		t.Fatalf("second footer = %s", got)
	}
}

func TestTableWithHeaderAndLoop(t *testing.T) {
	_, out := render(t, `doc T v1 {
  page A4 {
    table {
      columns { constant 40mm; relative 1 }
      header { cell { "Item" }; cell { "Qty" } }
      each item in items {
        cell { "${item.name}" }
        cell { "${item.qty}" }
      }
    }
  }
}`, invoiceData)
	got := strings.Join(out.Pages[0].Text(), ",")
	if got != "Item,Qty,pen,2,ink,5" {
		t.Fatalf("unexpected table text: %s", got)
	}
	pen, _ := out.Pages[0].FindText("pen")
	qty, _ := out.Pages[0].FindText("2")
	if qty.X-pen.X < 40*layout.MmToPt-1e-6 {
		t.Fatalf("second column should start after the constant column: %v vs %v", pen.X, qty.X)
	}
}

func TestOverlappingCellsFail(t *testing.T) {
	err := buildErr(t, `doc T v1 {
  page A4 {
    table {
      columns { relative 1; relative 1 }
      cell row 1 column 1 { "a" }
      cell row 1 column 1 { "b" }
    }
  }
}`)
	if !layout.Is(err, layout.CodeInvalidTable) {
		t.Fatalf("expected INVALID_TABLE, got %v", err)
	}
}

func TestStyleCycle(t *testing.T) {
	err := buildErr(t, `doc T v1 {
  resources {
    style A extends B { size: 10pt }
    style B extends A { size: 12pt }
  }
  page A4 { "x" }
}`)
	if !layout.Is(err, layout.CodeInvalidStyle) || !strings.Contains(err.Error(), "循环") {
		t.Fatalf("expected style cycle error, got %v", err)
	}
}

func TestUnknownStyleAndCommand(t *testing.T) {
	err := buildErr(t, `doc T v1 {
  page A4 { text Missing { "x" } }
}`)
	if !layout.Is(err, layout.CodeInvalidStyle) {
		t.Fatalf("expected INVALID_STYLE, got %v", err)
	}

	err = buildErr(t, `doc T v1 {
  page A4 {
    wobble { "x" }
  }
}`)
	if !layout.Is(err, layout.CodeInvalidDSL) || !strings.Contains(err.Error(), "test.folio:3") {
		t.Fatalf("expected INVALID_DSL with position, got %v", err)
	}
}

func TestMissingPages(t *testing.T) {
	err := buildErr(t, `doc T v1 { meta { title: "x" } }`)
	if !layout.Is(err, layout.CodeInvalidDSL) {
		t.Fatalf("expected INVALID_DSL, got %v", err)
	}
}

func TestSectionsAndLinks(t *testing.T) {
	_, out := render(t, `doc T v1 {
  page A5 {
    text { sectionlink intro { "see intro" } }
    pagebreak
    section intro { text { "Intro" } }
    text { "On page "; pagenumber section-start intro }
  }
}`, nil)
	if len(out.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(out.Pages))
	}
	if len(out.Pages[0].Links) != 1 || out.Pages[0].Links[0].Section == "" {
		t.Fatalf("expected a section link on page 1: %+v", out.Pages[0].Links)
	}
	if len(out.Pages[1].Anchors) == 0 || out.Pages[1].Anchors[0].Name != out.Pages[0].Links[0].Section {
		t.Fatalf("anchor should match the link target: %+v", out.Pages[1].Anchors)
	}
	if _, ok := out.Pages[1].FindText("2"); !ok {
		t.Fatalf("section start should resolve to 2: %v", out.Pages[1].Text())
	}
}

func TestConditionals(t *testing.T) {
	_, out := render(t, `doc T v1 {
  page A5 {
    if flags.paid { "PAID" }
    unless flags.paid { "DUE" }
    if flags.missing { "never" }
  }
}`, map[string]any{"flags": map[string]any{"paid": true}})
	if got := strings.Join(out.Pages[0].Text(), ","); got != "PAID" {
		t.Fatalf("unexpected conditional output: %s", got)
	}
}

func TestRomanFormatter(t *testing.T) {
	f := romanFormatter(false)
	cases := map[int]string{1: "i", 4: "iv", 9: "ix", 14: "xiv", 2024: "mmxxiv"}
	for n, want := range cases {
		if got := f(n, true); got != want {
			t.Fatalf("roman(%d) = %q, want %q", n, got, want)
		}
	}
	if got := romanFormatter(true)(12, true); got != "XII" {
		t.Fatalf("upper roman = %q", got)
	}
	if got := f(0, false); got == "" {
		t.Fatalf("unknown numbers need a placeholder")
	}
}

func TestParseArgsToggles(t *testing.T) {
	doc := `doc T v1 { page A4 { text italic bold size 14pt { "x" } } }`
	res, err := Parse("test.folio", strings.NewReader(doc), Options{})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	page := res.Parts[0].(*layout.Page)
	ds, ok := page.Content.(*layout.DefaultStyle)
	if !ok {
		t.Fatalf("expected styled text, got %T", page.Content)
	}
	if ds.Style.Italic != layout.On || ds.Style.Weight != layout.WeightBold || ds.Style.FontSize != 14 {
		t.Fatalf("unexpected style: %+v", ds.Style)
	}
}

func TestPlaceholder(t *testing.T) {
	_, out := render(t, `doc T v1 { page A6 { placeholder "logo" height 20pt } }`, nil)
	p := out.Pages[0]
	if len(p.Rects) != 1 || p.Rects[0].Height != 20 || p.Rects[0].FillColor != layout.LightGrey {
		t.Fatalf("unexpected placeholder box: %+v", p.Rects)
	}
	if _, ok := p.FindText("logo"); !ok {
		t.Fatalf("placeholder label missing: %v", p.Text())
	}
}
