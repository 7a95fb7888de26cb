package table

import (
	"github.com/ByLCY/folio/layout"
)

// Column declares a column of constant width or relative weight.
type Column struct {
	Constant float64
	Relative float64
}

func ConstantColumn(width float64) Column  { return Column{Constant: width} }
func RelativeColumn(weight float64) Column { return Column{Relative: weight} }

// widths resolves columns against the table width. Relative columns share
// what constant columns leave over.
func widths(columns []Column, total float64) []float64 {
	out := make([]float64, len(columns))
	var constant, relative float64
	for _, c := range columns {
		constant += c.Constant
		relative += c.Relative
	}
	free := max(0, total-constant)
	for i, c := range columns {
		out[i] = c.Constant
		if relative > 0 {
			out[i] += free * c.Relative / relative
		}
	}
	return out
}

// Cell is a table cell. Row and Column are 1-based; zero means the cell is
// placed automatically.
type Cell struct {
	Row, Column         int
	RowSpan, ColumnSpan int
	Child               layout.Element

	rendered bool
}

// NewCell returns an automatically placed 1x1 cell.
func NewCell(child layout.Element) *Cell {
	return &Cell{RowSpan: 1, ColumnSpan: 1, Child: child}
}

func (c *Cell) lastRow() int    { return c.Row + c.RowSpan - 1 }
func (c *Cell) lastColumn() int { return c.Column + c.ColumnSpan - 1 }

func (c *Cell) overlaps(o *Cell) bool {
	return c.Row <= o.lastRow() && o.Row <= c.lastRow() &&
		c.Column <= o.lastColumn() && o.Column <= c.lastColumn()
}

type slot struct{ row, column int }

type grid struct {
	columns  int
	occupied map[slot]bool
}

func (g *grid) free(row, column, rowSpan, columnSpan int) bool {
	if column < 1 || column+columnSpan-1 > g.columns {
		return false
	}
	for r := row; r < row+rowSpan; r++ {
		for c := column; c < column+columnSpan; c++ {
			if g.occupied[slot{r, c}] {
				return false
			}
		}
	}
	return true
}

func (g *grid) occupy(cell *Cell) {
	for r := cell.Row; r <= cell.lastRow(); r++ {
		for c := cell.Column; c <= cell.lastColumn(); c++ {
			g.occupied[slot{r, c}] = true
		}
	}
}

// planPositions assigns a row and column to every automatically placed
// cell. Explicit positions are kept as declared; overlaps among them are
// left for validatePositions to report.
//
// Placement follows a cursor that moves row-major:
//   - a cell with both row and column is placed as is;
//   - a cell with only a column goes to the cursor row, or the next row when
//     that column lies left of the cursor;
//   - a cell with only a row takes the first free columns of that row;
//   - any other cell takes the first free slot at or after the cursor.
func planPositions(cells []*Cell, columns int) error {
	g := &grid{columns: columns, occupied: make(map[slot]bool)}
	row, column := 1, 1

	for i, cell := range cells {
		if cell.RowSpan == 0 {
			cell.RowSpan = 1
		}
		if cell.ColumnSpan == 0 {
			cell.ColumnSpan = 1
		}
		if cell.RowSpan < 0 || cell.ColumnSpan < 0 || cell.Row < 0 || cell.Column < 0 {
			return layout.NewComposeError(layout.CodeInvalidTable,
				"cell %d has a negative position or span", i+1)
		}
		if cell.ColumnSpan > columns {
			return layout.NewComposeError(layout.CodeInvalidTable,
				"cell %d spans %d columns but the table has %d", i+1, cell.ColumnSpan, columns)
		}

		switch {
		case cell.Row > 0 && cell.Column > 0:
		case cell.Column > 0:
			if cell.Column < column {
				row++
			}
			cell.Row = row
		case cell.Row > 0:
			cell.Column = 1
			for c := 1; c <= columns; c++ {
				if g.free(cell.Row, c, cell.RowSpan, cell.ColumnSpan) {
					cell.Column = c
					break
				}
			}
		default:
			for !g.free(row, column, cell.RowSpan, cell.ColumnSpan) {
				column++
				if column+cell.ColumnSpan-1 > columns {
					row++
					column = 1
				}
			}
			cell.Row, cell.Column = row, column
		}

		g.occupy(cell)
		row, column = cell.Row, cell.Column+cell.ColumnSpan
		if column > columns {
			row++
			column = 1
		}
	}
	return nil
}

// validatePositions rejects cells outside the declared columns and cells
// sharing a grid slot.
func validatePositions(cells []*Cell, columns int) error {
	for i, cell := range cells {
		if cell.lastColumn() > columns {
			return layout.NewComposeError(layout.CodeInvalidTable,
				"cell %d at row %d, column %d spans past the last column (%d)", i+1, cell.Row, cell.Column, columns)
		}
		for j := 0; j < i; j++ {
			if cell.overlaps(cells[j]) {
				return layout.NewComposeError(layout.CodeInvalidTable,
					"cell %d at row %d, column %d overlaps cell %d at row %d, column %d",
					i+1, cell.Row, cell.Column, j+1, cells[j].Row, cells[j].Column)
			}
		}
	}
	return nil
}
