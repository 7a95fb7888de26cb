// Package compose 将 DSL 文档构建为可分页的元素树。每个 page 段落成为合并文档中的一个部分。
package compose

import (
	"io"
	"strings"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/document"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/renderer"
)

// Options configures a build.
type Options struct {
	// Data is bound to ${path} references, each loops and if conditions.
	Data any
	// BaseDir resolves relative image and font paths.
	BaseDir string
}

// FontDecl is a font declared in the resources section.
type FontDecl struct {
	Family string
	Src    string
	Bold   bool
	Italic bool
}

// Result is a built document, ready for document.GenerateMerged.
type Result struct {
	Name     string
	Parts    []layout.Element
	Strategy document.Strategy
	Meta     renderer.Meta
	Fonts    []FontDecl
}

// Parse reads DSL source and builds it.
func Parse(filename string, r io.Reader, opts Options) (*Result, error) {
	doc, err := dsl.Parse(filename, r)
	if err != nil {
		return nil, layout.WrapComposeError(layout.CodeInvalidDSL, err, "解析 %s 失败", filename)
	}
	return Build(doc, opts)
}

// Build 根据 DSL AST 生成每个 page 段落的元素树。
func Build(doc *dsl.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, layout.NewComposeError(layout.CodeInvalidDSL, "文档为空")
	}
	res, err := collectResources(doc, opts.BaseDir)
	if err != nil {
		return nil, err
	}
	meta, strategy, err := collectMeta(doc)
	if err != nil {
		return nil, err
	}
	pages := doc.Pages()
	if len(pages) == 0 {
		return nil, layout.NewComposeError(layout.CodeInvalidDSL, "文档中缺少 page 段落")
	}

	b := &builder{res: res, scope: binding.NewScope(opts.Data)}
	out := &Result{Name: doc.Name, Strategy: strategy, Meta: meta, Fonts: res.fonts}
	for _, p := range pages {
		part, err := b.page(p)
		if err != nil {
			return nil, err
		}
		out.Parts = append(out.Parts, part)
	}
	return out, nil
}

func collectMeta(doc *dsl.Document) (renderer.Meta, document.Strategy, error) {
	meta := renderer.Meta{Creator: "folio"}
	strategy := document.Continuous
	for _, block := range doc.Blocks("meta") {
		for _, stmt := range block.Statements {
			if stmt.Assignment == nil {
				continue
			}
			value := stmt.Assignment.Value
			switch strings.ToLower(stmt.Assignment.Key) {
			case "title":
				meta.Title = value.Text()
			case "author":
				meta.Author = value.Text()
			case "subject":
				meta.Subject = value.Text()
			case "creator":
				meta.Creator = value.Text()
			case "keywords":
				meta.Keywords = value.List()
			case "numbering":
				switch v := strings.ToLower(value.Text()); v {
				case "continuous":
					strategy = document.Continuous
				case "separate":
					strategy = document.Separate
				default:
					return meta, strategy, layout.NewComposeError(layout.CodeInvalidDSL,
						"numbering 只支持 continuous 或 separate，实际为 %q", v)
				}
			}
		}
	}
	return meta, strategy, nil
}
