package compose

import (
	"strings"

	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
)

// pagePresets 以毫米记录纸张尺寸（纵向）。
var pagePresets = map[string][2]float64{
	"A3":     {297, 420},
	"A4":     {210, 297},
	"A5":     {148, 210},
	"A6":     {105, 148},
	"LETTER": {215.9, 279.4},
	"LEGAL":  {215.9, 355.6},
}

const defaultMarginMM = 20

func resolvePageSize(spec dsl.PageSpec) (layout.Size, error) {
	base, ok := pagePresets[strings.ToUpper(spec.Size)]
	if !ok {
		return layout.Size{}, layout.NewComposeError(layout.CodeInvalidDSL, "暂不支持的纸张尺寸：%s", spec.Size)
	}
	width := base[0] * layout.MmToPt
	height := base[1] * layout.MmToPt
	for _, token := range spec.Params {
		if token.Value == "landscape" {
			width, height = height, width
		}
	}
	return layout.Size{Width: width, Height: height}, nil
}

// resolveMargin 读取 margin 后最多四个长度，按 CSS 简写规则展开。
func resolveMargin(params []*dsl.Lexeme) (layout.Margins, error) {
	d := defaultMarginMM * layout.MmToPt
	margin := layout.Margins{Top: d, Right: d, Bottom: d, Left: d}
	for i := 0; i < len(params); i++ {
		if params[i].Value != "margin" {
			continue
		}
		var vals []float64
		for j := i + 1; j < len(params) && len(vals) < 4 && params[j].IsNumber(); j++ {
			v, err := points(params[j].Value)
			if err != nil {
				return margin, layout.WrapComposeError(layout.CodeInvalidDSL, err, "%s: margin", params[j].Pos)
			}
			vals = append(vals, v)
		}
		switch len(vals) {
		case 0:
			return margin, layout.NewComposeError(layout.CodeInvalidDSL, "%s: margin 缺少长度", params[i].Pos)
		case 1:
			v := vals[0]
			margin = layout.Margins{Top: v, Right: v, Bottom: v, Left: v}
		case 2:
			margin = layout.Margins{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
		case 3:
			margin = layout.Margins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
		case 4:
			margin = layout.Margins{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
		}
	}
	return margin, nil
}

// page 构建一个 page 段落：header/footer/content 子块以及 background 赋值，
// 其余语句直接进入正文。
func (b *builder) page(p *dsl.PageSection) (layout.Element, error) {
	size, err := resolvePageSize(p.Spec)
	if err != nil {
		return nil, err
	}
	margins, err := resolveMargin(p.Spec.Params)
	if err != nil {
		return nil, err
	}
	page := &layout.Page{Size: size, Margins: margins}
	if p.Block == nil {
		return page, nil
	}

	var content []layout.Element
	for _, stmt := range p.Block.Statements {
		switch {
		case stmt.Assignment != nil:
			if stmt.Assignment.Key != "background" {
				return nil, layout.NewComposeError(layout.CodeInvalidDSL, "%s: page 不支持属性 %s", p.Pos, stmt.Assignment.Key)
			}
			c, err := b.res.color(stmt.Assignment.Value.Text())
			if err != nil {
				return nil, layout.WrapComposeError(layout.CodeInvalidStyle, err, "%s: page background", p.Pos)
			}
			page.Background = c
		case stmt.Command != nil && stmt.Command.Name == "header":
			if page.Header, err = b.content(stmt.Command.Block); err != nil {
				return nil, err
			}
		case stmt.Command != nil && stmt.Command.Name == "footer":
			if page.Footer, err = b.content(stmt.Command.Block); err != nil {
				return nil, err
			}
		case stmt.Command != nil && stmt.Command.Name == "content":
			items, err := b.block(stmt.Command.Block)
			if err != nil {
				return nil, err
			}
			content = append(content, items...)
		default:
			items, err := b.statement(stmt)
			if err != nil {
				return nil, err
			}
			content = append(content, items...)
		}
	}
	page.Content = stack(content, 0)
	return page, nil
}
