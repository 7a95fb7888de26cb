package compose

import (
	"strings"

	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/layout/text"
)

func (b *builder) literal(s string) layout.Element {
	return text.Text(b.scope.Interpolate(s), layout.TextStyle{})
}

// text 构建段落。块内可以混排字符串、span、pagenumber、br、link、sectionlink 与 inline。
func (b *builder) text(cmd *dsl.Command) (layout.Element, error) {
	if cmd.Block == nil {
		return nil, invalid(cmd, "text 语句缺少文本块")
	}
	a := parseArgs(cmd.Args, textKeys, b.scope)
	style, err := b.res.textStyle(a.words, a.attrs)
	if err != nil {
		return nil, invalidStyle(cmd, err)
	}

	block := &text.Block{}
	if v, ok := a.attrs["align"]; ok {
		if block.Alignment, ok = parseHorizontal(v); !ok {
			return nil, invalid(cmd, "无法解析对齐方式 %q", v)
		}
	}
	if err := b.inlines(block, cmd.Block, layout.TextStyle{}); err != nil {
		return nil, err
	}
	if len(block.Items) == 0 {
		return nil, invalid(cmd, "text 语句缺少文本内容")
	}
	if style == (layout.TextStyle{}) {
		return block, nil
	}
	return &layout.DefaultStyle{Style: style, Child: block}, nil
}

func (b *builder) inlines(block *text.Block, body *dsl.Block, style layout.TextStyle) error {
	if body == nil {
		return nil
	}
	for _, stmt := range body.Statements {
		if stmt.Text != nil {
			block.Add(b.scope.Interpolate(string(stmt.Text.Value)), style)
			continue
		}
		cmd := stmt.Command
		if cmd == nil {
			return layout.NewComposeError(layout.CodeInvalidDSL, "text 内不支持属性赋值 %s", stmt.Assignment.Key)
		}
		if err := b.inline(block, cmd, style); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) inline(block *text.Block, cmd *dsl.Command, style layout.TextStyle) error {
	switch cmd.Name {
	case "each":
		_, err := b.each(cmd, func(body *dsl.Block) ([]layout.Element, error) {
			return nil, b.inlines(block, body, style)
		})
		return err
	case "if", "unless":
		_, err := b.conditional(cmd, func(body *dsl.Block) ([]layout.Element, error) {
			return nil, b.inlines(block, body, style)
		})
		return err
	case "br":
		block.Items = append(block.Items, &text.LineBreak{Style: style})
		return nil
	case "inline":
		el, err := b.content(cmd.Block)
		if err != nil {
			return err
		}
		block.Items = append(block.Items, &text.Inline{Element: el})
		return nil
	case "pagenumber":
		return b.pageNumber(block, cmd, style)
	}

	a := parseArgs(cmd.Args, textKeys, b.scope)
	var target string
	if cmd.Name == "link" || cmd.Name == "sectionlink" {
		if target = a.word(0); target == "" {
			return invalid(cmd, "缺少链接目标")
		}
		a.words = a.words[1:]
	} else if cmd.Name != "span" {
		return invalid(cmd, "text 内不支持该命令")
	}
	own, err := b.res.textStyle(a.words, a.attrs)
	if err != nil {
		return invalidStyle(cmd, err)
	}
	start := len(block.Items)
	if err := b.inlines(block, cmd.Block, own.Inherit(style)); err != nil {
		return err
	}
	for _, it := range block.Items[start:] {
		span, ok := it.(*text.Span)
		if !ok {
			continue
		}
		switch cmd.Name {
		case "link":
			span.URL = target
		case "sectionlink":
			span.SectionLink = target
		}
	}
	return nil
}

// pageNumber 解析 pagenumber KIND [SECTION] [format roman|decimal]。
func (b *builder) pageNumber(block *text.Block, cmd *dsl.Command, style layout.TextStyle) error {
	known := keys("format")
	for k := range textKeys {
		known[k] = true
	}
	a := parseArgs(cmd.Args, known, b.scope)
	kind, name := a.word(0), a.word(1)
	var source text.PageNumberSource
	switch kind {
	case "", "current":
		source = text.CurrentPage()
	case "total":
		source = text.TotalPages()
	case "section-start", "section-end", "section-length", "within":
		if name == "" {
			return invalid(cmd, "%s 需要 section 名称", kind)
		}
		switch kind {
		case "section-start":
			source = text.SectionStart(name)
		case "section-end":
			source = text.SectionEnd(name)
		case "section-length":
			source = text.SectionLength(name)
		default:
			source = text.PageWithinSection(name)
		}
	default:
		return invalid(cmd, "未知的页码类型 %q", kind)
	}

	own, err := b.res.styleFromProps(withoutKey(a.attrs, "format"))
	if err != nil {
		return invalidStyle(cmd, err)
	}
	pn := text.NewPageNumber(source, own.Inherit(style))
	switch a.attrs["format"] {
	case "", "decimal":
	case "roman":
		pn.Format = romanFormatter(false)
	case "ROMAN":
		pn.Format = romanFormatter(true)
	default:
		return invalid(cmd, "未知的页码格式 %q", a.attrs["format"])
	}
	block.Items = append(block.Items, pn)
	return nil
}

func withoutKey(m map[string]string, key string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func romanFormatter(upper bool) text.PageNumberFormatter {
	return func(n int, ok bool) string {
		if !ok || n <= 0 {
			n = 888
		}
		var sb strings.Builder
		for _, r := range romanNumerals {
			for n >= r.value {
				sb.WriteString(r.symbol)
				n -= r.value
			}
		}
		if upper {
			return strings.ToUpper(sb.String())
		}
		return sb.String()
	}
}
