// Package table lays out a grid of cells with row and column spans.
package table

import (
	"math"
	"sort"

	"github.com/ByLCY/folio/layout"
)

// Table renders one set of cells on shared columns. Rows split across pages
// cell by cell.
type Table struct {
	Columns []Column
	Cells   []*Cell
	// ExtendLastCellsToBottom stretches the last cell of every column down
	// to the bottom of the table on the page where the table ends.
	ExtendLastCellsToBottom bool
	Direction               layout.Direction

	rows int
}

func newTable(columns []Column, cells []*Cell, extend bool) (*Table, error) {
	if len(columns) == 0 {
		return nil, layout.NewComposeError(layout.CodeInvalidTable, "table should have at least one column")
	}
	if err := planPositions(cells, len(columns)); err != nil {
		return nil, err
	}
	if err := validatePositions(cells, len(columns)); err != nil {
		return nil, err
	}
	sorted := append([]*Cell(nil), cells...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Row != sorted[j].Row {
			return sorted[i].Row < sorted[j].Row
		}
		return sorted[i].Column < sorted[j].Column
	})
	t := &Table{Columns: columns, Cells: sorted, ExtendLastCellsToBottom: extend}
	for _, c := range sorted {
		t.rows = max(t.rows, c.lastRow())
	}
	return t, nil
}

func (t *Table) Slots() []*layout.Element {
	out := make([]*layout.Element, len(t.Cells))
	for i, c := range t.Cells {
		out[i] = &c.Child
	}
	return out
}

func (t *Table) SetDirection(d layout.Direction) { t.Direction = d }

func (t *Table) ResetState(hard bool) {
	if !hard {
		return
	}
	for _, c := range t.Cells {
		c.rendered = false
	}
}

type command struct {
	cell   *Cell
	plan   layout.SpacePlan
	offset layout.Position
	size   layout.Size
}

type tablePlan struct {
	commands []command
	width    float64
	height   float64
	done     bool
}

func (t *Table) offsets(ws []float64) []float64 {
	out := make([]float64, len(ws)+1)
	for i, w := range ws {
		out[i+1] = out[i] + w
	}
	return out
}

func (t *Table) plan(env *layout.Env, available layout.Size) (tablePlan, bool) {
	ws := widths(t.Columns, available.Width)
	offsets := t.offsets(ws)
	total := offsets[len(offsets)-1]
	if total > available.Width+layout.Epsilon {
		return tablePlan{}, false
	}

	// bottom[r] is the lowest edge of anything ending in row r on this page.
	bottom := make([]float64, t.rows+1)
	maxRow := t.rows
	lastRow := 0
	var commands []command

	for _, cell := range t.Cells {
		if cell.rendered {
			continue
		}
		if cell.Row > maxRow {
			break
		}
		for r := lastRow + 1; r <= cell.Row-1 && r <= t.rows; r++ {
			bottom[r] = math.Max(bottom[r], bottom[r-1])
		}
		lastRow = max(lastRow, cell.Row-1)

		top := bottom[cell.Row-1]
		space := layout.Size{
			Width:  offsets[cell.lastColumn()] - offsets[cell.Column-1],
			Height: available.Height - top,
		}
		if space.Height < -layout.Epsilon {
			maxRow = min(maxRow, cell.Row-1)
			continue
		}
		space.Height = math.Max(0, space.Height)

		m := cell.Child.Measure(env, space)
		if m.IsWrap() {
			maxRow = min(maxRow, cell.Row-1)
			continue
		}
		if m.IsPartial() {
			maxRow = min(maxRow, cell.lastRow())
		}
		end := cell.lastRow()
		bottom[end] = math.Max(bottom[end], top+m.Height)

		x := offsets[cell.Column-1]
		if t.Direction == layout.RightToLeft {
			x = total - x - space.Width
		}
		commands = append(commands, command{
			cell:   cell,
			plan:   m,
			offset: layout.Position{X: x, Y: top},
			size:   space,
		})
	}

	for r := 1; r <= maxRow; r++ {
		bottom[r] = math.Max(bottom[r], bottom[r-1])
	}

	// Cells starting past the last renderable row wait for the next page;
	// cells reaching past it are cut at its bottom.
	var kept []command
	for _, cmd := range commands {
		if cmd.cell.Row > maxRow {
			continue
		}
		last := min(cmd.cell.lastRow(), maxRow)
		height := bottom[last] - cmd.offset.Y
		if cmd.cell.lastRow() > maxRow {
			m := cmd.cell.Child.Measure(env, layout.Size{Width: cmd.size.Width, Height: height})
			if m.IsWrap() {
				continue
			}
			cmd.plan = m
		}
		cmd.size.Height = height
		kept = append(kept, cmd)
	}

	done := true
	for _, c := range t.Cells {
		if c.rendered {
			continue
		}
		found := false
		for _, cmd := range kept {
			if cmd.cell == c {
				found = cmd.plan.IsFull()
				break
			}
		}
		if !found {
			done = false
			break
		}
	}

	var height float64
	if maxRow > 0 {
		height = bottom[maxRow]
	}
	if done && t.ExtendLastCellsToBottom {
		extendToBottom(kept, len(t.Columns), height)
	}
	return tablePlan{commands: kept, width: total, height: math.Min(height, available.Height), done: done}, true
}

// extendToBottom stretches, per column, the lowest cell down to height.
func extendToBottom(commands []command, columns int, height float64) {
	for col := 1; col <= columns; col++ {
		lowest := -1
		for i, cmd := range commands {
			if cmd.cell.Column > col || cmd.cell.lastColumn() < col {
				continue
			}
			if lowest < 0 || cmd.cell.lastRow() > commands[lowest].cell.lastRow() {
				lowest = i
			}
		}
		if lowest >= 0 {
			cmd := &commands[lowest]
			cmd.size.Height = math.Max(cmd.size.Height, height-cmd.offset.Y)
		}
	}
}

func (t *Table) remaining() bool {
	for _, c := range t.Cells {
		if !c.rendered {
			return true
		}
	}
	return false
}

func (t *Table) Measure(env *layout.Env, available layout.Size) layout.SpacePlan {
	if !t.remaining() {
		return layout.Full(0, 0)
	}
	p, ok := t.plan(env, available)
	if !ok || len(p.commands) == 0 {
		return layout.WrapPlan()
	}
	if p.done {
		return layout.Full(p.width, p.height)
	}
	return layout.Partial(p.width, p.height)
}

func (t *Table) Draw(env *layout.Env, available layout.Size) {
	if !t.remaining() {
		return
	}
	p, ok := t.plan(env, available)
	if !ok {
		return
	}
	for _, cmd := range p.commands {
		env.DrawAt(cmd.cell.Child, cmd.offset, cmd.size)
		if cmd.plan.IsFull() {
			cmd.cell.rendered = true
		}
	}
	if !t.remaining() {
		for _, c := range t.Cells {
			c.rendered = false
		}
	}
}
