package table

import "github.com/ByLCY/folio/layout"

// Builder collects the declaration of a table: its columns, content cells
// and optional header and footer cells. Header and footer reuse the content
// columns and repeat on every page the table occupies.
type Builder struct {
	Columns                 []Column
	Header                  []*Cell
	Cells                   []*Cell
	Footer                  []*Cell
	ExtendLastCellsToBottom bool
}

// ConstantColumn appends a column of fixed width.
func (b *Builder) ConstantColumn(width float64) *Builder {
	b.Columns = append(b.Columns, ConstantColumn(width))
	return b
}

// RelativeColumn appends a column sharing the remaining width by weight.
func (b *Builder) RelativeColumn(weight float64) *Builder {
	b.Columns = append(b.Columns, RelativeColumn(weight))
	return b
}

// Cell appends an automatically placed content cell.
func (b *Builder) Cell(child layout.Element) *Cell {
	c := NewCell(child)
	b.Cells = append(b.Cells, c)
	return c
}

// HeaderCell appends an automatically placed header cell.
func (b *Builder) HeaderCell(child layout.Element) *Cell {
	c := NewCell(child)
	b.Header = append(b.Header, c)
	return c
}

// FooterCell appends an automatically placed footer cell.
func (b *Builder) FooterCell(child layout.Element) *Cell {
	c := NewCell(child)
	b.Footer = append(b.Footer, c)
	return c
}

// At places the cell at a 1-based row and column.
func (c *Cell) At(row, column int) *Cell {
	c.Row, c.Column = row, column
	return c
}

// Span sets the row and column span of the cell.
func (c *Cell) Span(rows, columns int) *Cell {
	c.RowSpan, c.ColumnSpan = rows, columns
	return c
}

// Build validates cell positions and returns the table element. Invalid
// declarations fail here with a ComposeError, before any measurement.
func (b *Builder) Build() (layout.Element, error) {
	for _, cells := range [][]*Cell{b.Header, b.Cells, b.Footer} {
		for _, c := range cells {
			if c.Child == nil {
				c.Child = layout.Empty{}
			}
		}
	}
	header, err := newTable(b.Columns, b.Header, false)
	if err != nil {
		return nil, err
	}
	content, err := newTable(b.Columns, b.Cells, b.ExtendLastCellsToBottom)
	if err != nil {
		return nil, err
	}
	footer, err := newTable(b.Columns, b.Footer, false)
	if err != nil {
		return nil, err
	}
	if len(b.Header) == 0 && len(b.Footer) == 0 {
		return content, nil
	}
	return &layout.Decoration{Before: header, Content: content, After: footer}, nil
}
