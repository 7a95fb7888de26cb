package dsl_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ByLCY/folio/dsl"
)

const sampleDSL = `
doc Invoice v1 {
  meta {
    title: "Invoice"
    numbering: separate
    keywords: [
      "finance"
      "internal"
    ]
  }

  resources {
    font Body {
      src: "fonts/Inter-Regular.ttf"
    }

    color Accent = #0F62FE
    style Heading extends Base { size: 18pt; weight: bold }
  }

  page A4 portrait margin 18mm {
    header { text Heading { "Hello, ${user.name}!" } }
    content {
      each item in data.items {
        text size 12pt color #333 { "${item.name}" }
      }
      table {
        columns { constant 50mm; relative 1 }
        cell row 1 column 2 { text { "x" } }
      }
    }
  }

  page A5 landscape {
    content { pagebreak }
  }
}
`

func TestParseDocument(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if doc.Name != "Invoice" {
		t.Fatalf("expected document name Invoice, got %s", doc.Name)
	}
	if doc.Version != "v1" {
		t.Fatalf("expected version v1, got %s", doc.Version)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}
	kinds := []string{}
	for _, s := range doc.Sections {
		kinds = append(kinds, s.Kind())
	}
	if got := strings.Join(kinds, ","); got != "meta,resources,page,page" {
		t.Fatalf("unexpected section kinds: %s", got)
	}

	meta := doc.Sections[0].Meta
	title := meta.Block.Statements[0].Assignment
	if title == nil || title.Key != "title" {
		t.Fatalf("expected title assignment, got %+v", meta.Block.Statements[0])
	}
	if got := string(*title.Value.String); got != "Invoice" {
		t.Fatalf("expected title Invoice, got %s", got)
	}
	numbering := meta.Block.Statements[1].Assignment
	if numbering == nil || numbering.Value.Expr == nil || numbering.Value.Expr.Parts[0].Value != "separate" {
		t.Fatalf("expected numbering expression, got %+v", meta.Block.Statements[1])
	}
	keywords := meta.Block.Statements[2].Assignment
	if keywords == nil || keywords.Value.Array == nil || len(keywords.Value.Array.Values) != 2 {
		t.Fatalf("expected 2 keywords, got %+v", keywords)
	}
}

func TestParsePages(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	pages := doc.Pages()
	if len(pages) != 2 {
		t.Fatalf("expected 2 page sections, got %d", len(pages))
	}
	page := pages[0]
	if page.Spec.Size != "A4" {
		t.Fatalf("expected page size A4, got %s", page.Spec.Size)
	}
	if len(page.Spec.Params) != 3 {
		t.Fatalf("expected 3 page params, got %d", len(page.Spec.Params))
	}
	if page.Spec.Params[0].Value != "portrait" || page.Spec.Params[2].Value != "18mm" || !page.Spec.Params[2].IsNumber() {
		t.Fatalf("unexpected page params: %+v", page.Spec.Params)
	}
	if pages[1].Spec.Size != "A5" || pages[1].Spec.Params[0].Value != "landscape" {
		t.Fatalf("unexpected second page: %+v", pages[1].Spec)
	}

	header := page.Block.Statements[0].Command
	if header == nil || header.Name != "header" {
		t.Fatalf("expected header command, got %+v", page.Block.Statements[0])
	}
	textCmd := header.Block.Statements[0].Command
	if textCmd == nil || textCmd.Name != "text" || textCmd.Args[0].Value != "Heading" {
		t.Fatalf("unexpected header text: %+v", textCmd)
	}
	if got := string(textCmd.Block.Statements[0].Text.Value); !strings.Contains(got, "${user.name}") {
		t.Fatalf("expected interpolation in text literal, got %s", got)
	}

	content := page.Block.Statements[1].Command
	each := content.Block.Statements[0].Command
	if each == nil || each.Name != "each" {
		t.Fatalf("expected each command, got %+v", content.Block.Statements[0])
	}
	if len(each.Args) != 3 || each.Args[2].Value != "data.items" || !each.Args[2].IsWord() {
		t.Fatalf("each should capture a dotted path argument, got %+v", each.Args)
	}

	table := content.Block.Statements[1].Command
	columns := table.Block.Statements[0].Command
	if columns == nil || columns.Name != "columns" || len(columns.Block.Statements) != 2 {
		t.Fatalf("expected two column declarations, got %+v", columns)
	}
	cell := table.Block.Statements[1].Command
	if got := tokensToString(cell.Args); got != "row 1 column 2" {
		t.Fatalf("unexpected cell args: %s", got)
	}
}

func TestParseStyleResource(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	res := doc.Sections[1].Resources
	style := res.Block.Statements[2].Command
	if style == nil || style.Name != "style" {
		t.Fatalf("expected style command, got %+v", res.Block.Statements[2])
	}
	if got := tokensToString(style.Args); got != "Heading extends Base" {
		t.Fatalf("unexpected style args: %s", got)
	}
	if len(style.Block.Statements) != 2 || style.Block.Statements[1].Assignment.Key != "weight" {
		t.Fatalf("expected two style properties, got %+v", style.Block.Statements)
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := dsl.Parse("broken.folio", strings.NewReader("doc X v1 {\n  page A4 {\n"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken.folio") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestValueAccessors(t *testing.T) {
	doc, err := dsl.ParseString(sampleDSL)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	meta := doc.Blocks("meta")
	if len(meta) != 1 {
		t.Fatalf("expected one meta block, got %d", len(meta))
	}
	if got := meta[0].Lookup("numbering"); got != "separate" {
		t.Fatalf("numbering = %q", got)
	}
	if got := meta[0].Lookup("missing"); got != "" {
		t.Fatalf("missing key should be empty, got %q", got)
	}
	keywords := meta[0].Statements[2].Assignment.Value.List()
	if strings.Join(keywords, ",") != "finance,internal" {
		t.Fatalf("keywords = %v", keywords)
	}
	if got := len(doc.Blocks("page")); got != 2 {
		t.Fatalf("expected 2 page blocks, got %d", got)
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := dsl.ParseString("doc X v1 {\n  page A4 {\n    : text\n  }\n}\n")
	var se *dsl.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected a syntax error, got %v", err)
	}
	if se.Pos.Line != 3 {
		t.Fatalf("error should point at line 3, got %s", se.Pos)
	}
}

func tokensToString(parts []*dsl.Lexeme) string {
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		values = append(values, p.Value)
	}
	return strings.Join(values, " ")
}
