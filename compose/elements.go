package compose

import (
	"strconv"

	"github.com/ByLCY/folio/binding"
	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
)

type builder struct {
	res   *resources
	scope *binding.Scope
}

func stack(items []layout.Element, spacing float64) layout.Element {
	switch len(items) {
	case 0:
		return layout.Empty{}
	case 1:
		if spacing == 0 {
			return items[0]
		}
	}
	return layout.NewColumn(spacing, items...)
}

func invalid(cmd *dsl.Command, format string, args ...any) error {
	return layout.NewComposeError(layout.CodeInvalidDSL, "%s: %s: "+format, append([]any{cmd.Pos, cmd.Name}, args...)...)
}

func invalidStyle(cmd *dsl.Command, err error) error {
	return layout.WrapComposeError(layout.CodeInvalidStyle, err, "%s: %s", cmd.Pos, cmd.Name)
}

// block 构建块内所有语句，按出现顺序返回。
func (b *builder) block(block *dsl.Block) ([]layout.Element, error) {
	if block == nil {
		return nil, nil
	}
	var out []layout.Element
	for _, stmt := range block.Statements {
		items, err := b.statement(stmt)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// content 构建块并将多个子元素纵向排列。
func (b *builder) content(block *dsl.Block) (layout.Element, error) {
	items, err := b.block(block)
	if err != nil {
		return nil, err
	}
	return stack(items, 0), nil
}

func (b *builder) statement(stmt *dsl.Statement) ([]layout.Element, error) {
	switch {
	case stmt.Text != nil:
		// 裸字符串等同于 text 语句
		return []layout.Element{b.literal(string(stmt.Text.Value))}, nil
	case stmt.Command != nil:
		return b.command(stmt.Command)
	case stmt.Assignment != nil:
		return nil, layout.NewComposeError(layout.CodeInvalidDSL, "此处不支持属性赋值 %s", stmt.Assignment.Key)
	}
	return nil, nil
}

// command 处理一条命令。each 与 if 可能产生零个或多个元素。
func (b *builder) command(cmd *dsl.Command) ([]layout.Element, error) {
	switch cmd.Name {
	case "each":
		return b.each(cmd, b.block)
	case "if", "unless":
		return b.conditional(cmd, b.block)
	}
	el, err := b.element(cmd)
	if err != nil {
		return nil, err
	}
	return []layout.Element{el}, nil
}

func (b *builder) element(cmd *dsl.Command) (layout.Element, error) {
	switch cmd.Name {
	case "text":
		return b.text(cmd)
	case "table":
		return b.table(cmd)
	case "column":
		return b.column(cmd)
	case "row":
		return b.row(cmd)
	case "grid":
		return b.grid(cmd)
	case "layers":
		return b.layers(cmd)
	case "padding":
		return b.padding(cmd)
	case "border":
		return b.border(cmd)
	case "background":
		return b.background(cmd)
	case "box", "spacer":
		return b.box(cmd)
	case "line":
		return b.line(cmd)
	case "placeholder":
		a := parseArgs(cmd.Args, keys("height"), b.scope)
		height, err := a.length("height", 0)
		if err != nil {
			return nil, invalid(cmd, "%v", err)
		}
		return &layout.Placeholder{Label: a.word(0), Height: height}, nil
	case "image":
		return b.image(cmd)
	case "pagebreak":
		return &layout.PageBreak{}, nil
	case "align":
		return b.align(cmd)
	case "constrain":
		return b.constrain(cmd)
	case "direction":
		return b.direction(cmd)
	case "style":
		return b.defaultStyle(cmd)
	}

	child, err := b.content(cmd.Block)
	if err != nil {
		return nil, err
	}
	a := parseArgs(cmd.Args, nil, b.scope)
	switch cmd.Name {
	case "showonce":
		return &layout.ShowOnce{Child: child}, nil
	case "skiponce":
		return &layout.SkipOnce{Child: child}, nil
	case "showentire":
		return &layout.ShowEntire{Child: child}, nil
	case "section":
		if a.word(0) == "" {
			return nil, invalid(cmd, "缺少名称")
		}
		return &layout.Section{Name: a.word(0), Child: child}, nil
	case "sectionlink":
		if a.word(0) == "" {
			return nil, invalid(cmd, "缺少目标名称")
		}
		return &layout.SectionLink{Section: a.word(0), Child: child}, nil
	case "link":
		if a.word(0) == "" {
			return nil, invalid(cmd, "缺少 URL")
		}
		return &layout.Hyperlink{URL: a.word(0), Child: child}, nil
	}
	return nil, invalid(cmd, "未知的命令")
}

// each 对列表中的每一项以 VAR 绑定后重复构建块。
func (b *builder) each(cmd *dsl.Command, build func(*dsl.Block) ([]layout.Element, error)) ([]layout.Element, error) {
	if len(cmd.Args) != 3 || cmd.Args[1].Value != "in" {
		return nil, invalid(cmd, "语法应为 each NAME in PATH")
	}
	name, path := cmd.Args[0].Value, cmd.Args[2].Value
	value, ok := b.scope.Resolve(path)
	if !ok {
		return nil, invalid(cmd, "数据路径 %s 不存在", path)
	}
	items, ok := binding.Items(value)
	if !ok {
		return nil, invalid(cmd, "数据路径 %s 不是列表", path)
	}

	outer := b.scope
	defer func() { b.scope = outer }()
	var out []layout.Element
	for i, item := range items {
		b.scope = outer.With(name, item).With(name+"_index", i+1)
		els, err := build(cmd.Block)
		if err != nil {
			return nil, err
		}
		out = append(out, els...)
	}
	return out, nil
}

func (b *builder) conditional(cmd *dsl.Command, build func(*dsl.Block) ([]layout.Element, error)) ([]layout.Element, error) {
	if len(cmd.Args) != 1 {
		return nil, invalid(cmd, "需要一个数据路径")
	}
	value, _ := b.scope.Resolve(cmd.Args[0].Value)
	if binding.Truthy(value) == (cmd.Name == "unless") {
		return nil, nil
	}
	return build(cmd.Block)
}

func (b *builder) column(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("spacing"), b.scope)
	spacing, err := a.length("spacing", 0)
	if err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	items, err := b.block(cmd.Block)
	if err != nil {
		return nil, err
	}
	return layout.NewColumn(spacing, items...), nil
}

func (b *builder) row(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("spacing"), b.scope)
	spacing, err := a.length("spacing", 0)
	if err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	row := layout.NewRow(spacing)
	if cmd.Block == nil {
		return row, nil
	}
	for _, stmt := range cmd.Block.Statements {
		item := stmt.Command
		if item == nil {
			return nil, invalid(cmd, "row 只能包含 relative、constant 或 auto")
		}
		if item.Name == "each" || item.Name == "if" || item.Name == "unless" {
			return nil, invalid(item, "row 内不支持数据循环，请在外层使用 column")
		}
		child, err := b.content(item.Block)
		if err != nil {
			return nil, err
		}
		ia := parseArgs(item.Args, nil, b.scope)
		switch item.Name {
		case "relative":
			weight := 1.0
			if w := ia.word(0); w != "" {
				if weight, err = strconv.ParseFloat(w, 64); err != nil || weight <= 0 {
					return nil, invalid(item, "权重无法解析：%q", w)
				}
			}
			row.Items = append(row.Items, layout.RelativeItem(weight, child))
		case "constant":
			width, err := points(ia.word(0))
			if err != nil {
				return nil, invalid(item, "%v", err)
			}
			row.Items = append(row.Items, layout.ConstantItem(width, child))
		case "auto":
			row.Items = append(row.Items, layout.AutoItem(child))
		default:
			return nil, invalid(item, "row 只能包含 relative、constant 或 auto")
		}
	}
	return row, nil
}

func (b *builder) grid(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("columns", "spacing", "hspacing", "vspacing", "align"), b.scope)
	g := layout.Grid{}
	var err error
	if g.Columns, err = a.integer("columns", layout.DefaultGridColumns); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	spacing, err := a.length("spacing", 0)
	if err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	if g.HorizontalSpacing, err = a.length("hspacing", spacing); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	if g.VerticalSpacing, err = a.length("vspacing", spacing); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	if v, ok := a.attrs["align"]; ok {
		if g.Alignment, ok = parseHorizontal(v); !ok {
			return nil, invalid(cmd, "无法解析对齐方式 %q", v)
		}
	}
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			item := stmt.Command
			if item == nil || item.Name != "item" {
				return nil, invalid(cmd, "grid 只能包含 item")
			}
			ia := parseArgs(item.Args, keys("span"), b.scope)
			span, err := ia.integer("span", 1)
			if err != nil {
				return nil, invalid(item, "%v", err)
			}
			child, err := b.content(item.Block)
			if err != nil {
				return nil, err
			}
			g.Items = append(g.Items, layout.GridItem{Span: span, Child: child})
		}
	}
	return g.Build(), nil
}

func (b *builder) layers(cmd *dsl.Command) (layout.Element, error) {
	l := &layout.Layers{}
	primary := 0
	if cmd.Block != nil {
		for _, stmt := range cmd.Block.Statements {
			layer := stmt.Command
			if layer == nil {
				return nil, invalid(cmd, "layers 只能包含 below、primary 或 above")
			}
			child, err := b.content(layer.Block)
			if err != nil {
				return nil, err
			}
			switch layer.Name {
			case "below":
				l.Below = append(l.Below, child)
			case "primary":
				l.Primary = child
				primary++
			case "above":
				l.Above = append(l.Above, child)
			default:
				return nil, invalid(layer, "layers 只能包含 below、primary 或 above")
			}
		}
	}
	if primary != 1 {
		return nil, invalid(cmd, "需要且只能有一个 primary 层，实际为 %d", primary)
	}
	return l, nil
}

func (b *builder) padding(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("top", "right", "bottom", "left", "horizontal", "vertical"), b.scope)
	var all float64
	if w := a.word(0); w != "" {
		var err error
		if all, err = points(w); err != nil {
			return nil, invalid(cmd, "%v", err)
		}
	}
	horizontal, err := a.length("horizontal", all)
	if err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	vertical, err := a.length("vertical", all)
	if err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	p := &layout.Padding{}
	for _, side := range []struct {
		key string
		def float64
		dst *float64
	}{
		{"top", vertical, &p.Top},
		{"right", horizontal, &p.Right},
		{"bottom", vertical, &p.Bottom},
		{"left", horizontal, &p.Left},
	} {
		if *side.dst, err = a.length(side.key, side.def); err != nil {
			return nil, invalid(cmd, "%v", err)
		}
	}
	if p.Child, err = b.content(cmd.Block); err != nil {
		return nil, err
	}
	return p, nil
}

func (b *builder) border(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("width", "color"), b.scope)
	border := &layout.Border{Width: 1, Color: layout.Black}
	var err error
	for _, w := range a.words {
		if l, perr := points(w); perr == nil {
			border.Width = l
			continue
		}
		if border.Color, err = b.res.color(w); err != nil {
			return nil, invalidStyle(cmd, err)
		}
	}
	if border.Width, err = a.length("width", border.Width); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	if v, ok := a.attrs["color"]; ok {
		if border.Color, err = b.res.color(v); err != nil {
			return nil, invalidStyle(cmd, err)
		}
	}
	if border.Child, err = b.content(cmd.Block); err != nil {
		return nil, err
	}
	return border, nil
}

func (b *builder) background(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, nil, b.scope)
	c, err := b.res.color(a.word(0))
	if err != nil {
		return nil, invalidStyle(cmd, err)
	}
	child, err := b.content(cmd.Block)
	if err != nil {
		return nil, err
	}
	return &layout.Background{Color: c, Child: child}, nil
}

// box 与 spacer 都是固定尺寸的矩形；spacer N 只占高度。
func (b *builder) box(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("width", "height", "color"), b.scope)
	box := &layout.Box{}
	var err error
	if cmd.Name == "spacer" && a.word(0) != "" {
		if box.Height, err = points(a.word(0)); err != nil {
			return nil, invalid(cmd, "%v", err)
		}
	}
	if box.Width, err = a.length("width", box.Width); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	if box.Height, err = a.length("height", box.Height); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	if v, ok := a.attrs["color"]; ok {
		if box.Color, err = b.res.color(v); err != nil {
			return nil, invalidStyle(cmd, err)
		}
	}
	return box, nil
}

func (b *builder) line(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("thickness", "color"), b.scope)
	l := &layout.Line{Kind: layout.Horizontal, Color: layout.Black}
	if a.has("vertical") {
		l.Kind = layout.Vertical
	}
	var err error
	if l.Thickness, err = a.length("thickness", 1); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	if v, ok := a.attrs["color"]; ok {
		if l.Color, err = b.res.color(v); err != nil {
			return nil, invalidStyle(cmd, err)
		}
	}
	return l, nil
}

func (b *builder) image(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("width"), b.scope)
	if len(cmd.Args) == 0 {
		return nil, invalid(cmd, "缺少图片名称或路径")
	}
	img := &layout.Image{}
	if cmd.Args[0].Type == "String" {
		src, err := b.res.loadImage(a.word(0))
		if err != nil {
			return nil, layout.WrapComposeError(layout.CodeInvalidDSL, err, "%s: image", cmd.Pos)
		}
		img.Source = src
	} else {
		src, ok := b.res.images[a.word(0)]
		if !ok {
			return nil, invalid(cmd, "图片资源 %s 未定义", a.word(0))
		}
		img.Source = src
	}
	var err error
	if img.Width, err = a.length("width", 0); err != nil {
		return nil, invalid(cmd, "%v", err)
	}
	return img, nil
}

func (b *builder) align(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, nil, b.scope)
	al := &layout.Alignment{}
	for _, w := range a.words {
		if h, ok := parseHorizontal(w); ok {
			al.Horizontal = h
			continue
		}
		if v, ok := parseVertical(w); ok {
			al.Vertical = v
			continue
		}
		return nil, invalid(cmd, "无法解析对齐方式 %q", w)
	}
	var err error
	if al.Child, err = b.content(cmd.Block); err != nil {
		return nil, err
	}
	return al, nil
}

func (b *builder) constrain(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("width", "height", "min-width", "max-width", "min-height", "max-height"), b.scope)
	c := &layout.Constrained{}
	var err error
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"min-width", &c.MinWidth},
		{"max-width", &c.MaxWidth},
		{"min-height", &c.MinHeight},
		{"max-height", &c.MaxHeight},
	} {
		if *f.dst, err = a.length(f.key, 0); err != nil {
			return nil, invalid(cmd, "%v", err)
		}
	}
	if _, ok := a.attrs["width"]; ok {
		w, err := a.length("width", 0)
		if err != nil {
			return nil, invalid(cmd, "%v", err)
		}
		c.MinWidth, c.MaxWidth = w, w
	}
	if _, ok := a.attrs["height"]; ok {
		h, err := a.length("height", 0)
		if err != nil {
			return nil, invalid(cmd, "%v", err)
		}
		c.MinHeight, c.MaxHeight = h, h
	}
	if c.MaxWidth > 0 && c.MinWidth > c.MaxWidth || c.MaxHeight > 0 && c.MinHeight > c.MaxHeight {
		return nil, invalid(cmd, "最小尺寸大于最大尺寸")
	}
	if c.Child, err = b.content(cmd.Block); err != nil {
		return nil, err
	}
	return c, nil
}

func (b *builder) direction(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, nil, b.scope)
	d := &layout.ContentDirection{}
	switch a.word(0) {
	case "ltr":
		d.Direction = layout.LeftToRight
	case "rtl":
		d.Direction = layout.RightToLeft
	default:
		return nil, invalid(cmd, "方向只支持 ltr 或 rtl")
	}
	var err error
	if d.Child, err = b.content(cmd.Block); err != nil {
		return nil, err
	}
	return d, nil
}

func (b *builder) defaultStyle(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, textKeys, b.scope)
	style, err := b.res.textStyle(a.words, a.attrs)
	if err != nil {
		return nil, invalidStyle(cmd, err)
	}
	child, err := b.content(cmd.Block)
	if err != nil {
		return nil, err
	}
	return &layout.DefaultStyle{Style: style, Child: child}, nil
}
