package compose

import (
	"strconv"

	"github.com/ByLCY/folio/dsl"
	"github.com/ByLCY/folio/layout"
	"github.com/ByLCY/folio/layout/table"
)

// table 解析 columns、header、footer 与 cell 声明；单元格位置交给 table.Builder 校验。
func (b *builder) table(cmd *dsl.Command) (layout.Element, error) {
	a := parseArgs(cmd.Args, keys("extend"), b.scope)
	tb := &table.Builder{ExtendLastCellsToBottom: a.has("extend")}
	if v, ok := a.attrs["extend"]; ok {
		extend, err := parseBool(v)
		if err != nil {
			return nil, invalid(cmd, "%v", err)
		}
		tb.ExtendLastCellsToBottom = extend
	}
	if cmd.Block == nil {
		return nil, invalid(cmd, "table 缺少内容块")
	}

	for _, stmt := range cmd.Block.Statements {
		sub := stmt.Command
		if sub == nil {
			return nil, invalid(cmd, "table 只能包含 columns、header、footer 与 cell")
		}
		var err error
		switch sub.Name {
		case "columns":
			err = b.tableColumns(tb, sub)
		case "header":
			tb.Header, err = b.cells(tb.Header, sub.Block)
		case "footer":
			tb.Footer, err = b.cells(tb.Footer, sub.Block)
		default:
			tb.Cells, err = b.cells(tb.Cells, &dsl.Block{Statements: []*dsl.Statement{stmt}})
		}
		if err != nil {
			return nil, err
		}
	}

	el, err := tb.Build()
	if err != nil {
		return nil, layout.WrapComposeError(layout.CodeInvalidTable, err, "%s: table", cmd.Pos)
	}
	return el, nil
}

func (b *builder) tableColumns(tb *table.Builder, cmd *dsl.Command) error {
	if cmd.Block == nil {
		return invalid(cmd, "columns 缺少内容块")
	}
	for _, stmt := range cmd.Block.Statements {
		col := stmt.Command
		if col == nil || len(col.Args) == 0 {
			return invalid(cmd, "列声明应为 constant LENGTH 或 relative WEIGHT")
		}
		switch col.Name {
		case "constant":
			w, err := points(col.Args[0].Value)
			if err != nil {
				return invalid(col, "%v", err)
			}
			tb.ConstantColumn(w)
		case "relative":
			weight, err := strconv.ParseFloat(col.Args[0].Value, 64)
			if err != nil || weight <= 0 {
				return invalid(col, "权重无法解析：%q", col.Args[0].Value)
			}
			tb.RelativeColumn(weight)
		default:
			return invalid(col, "列声明应为 constant LENGTH 或 relative WEIGHT")
		}
	}
	return nil
}

// cells 收集 cell 语句，each 与 if 会展开为多个单元格。
func (b *builder) cells(out []*table.Cell, body *dsl.Block) ([]*table.Cell, error) {
	if body == nil {
		return out, nil
	}
	for _, stmt := range body.Statements {
		cmd := stmt.Command
		if cmd == nil {
			return nil, layout.NewComposeError(layout.CodeInvalidDSL, "表格中只能声明 cell")
		}
		collect := func(inner *dsl.Block) ([]layout.Element, error) {
			var err error
			out, err = b.cells(out, inner)
			return nil, err
		}
		var err error
		switch cmd.Name {
		case "each":
			_, err = b.each(cmd, collect)
		case "if", "unless":
			_, err = b.conditional(cmd, collect)
		case "cell":
			var c *table.Cell
			if c, err = b.cell(cmd); err == nil {
				out = append(out, c)
			}
		default:
			err = invalid(cmd, "表格中只能声明 cell")
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (b *builder) cell(cmd *dsl.Command) (*table.Cell, error) {
	a := parseArgs(cmd.Args, keys("row", "column", "rowspan", "colspan"), b.scope)
	child, err := b.content(cmd.Block)
	if err != nil {
		return nil, err
	}
	c := table.NewCell(child)
	for _, f := range []struct {
		key string
		def int
		dst *int
	}{
		{"row", 0, &c.Row},
		{"column", 0, &c.Column},
		{"rowspan", 1, &c.RowSpan},
		{"colspan", 1, &c.ColumnSpan},
	} {
		if *f.dst, err = a.integer(f.key, f.def); err != nil {
			return nil, invalid(cmd, "%v", err)
		}
	}
	return c, nil
}
