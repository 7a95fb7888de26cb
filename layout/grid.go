package layout

// DefaultGridColumns is the column count of a grid that does not set one.
const DefaultGridColumns = 12

// GridItem is a child of a grid occupying Span columns.
type GridItem struct {
	Span  int
	Child Element
}

// Grid lays items out left to right on a fixed column count, starting a new
// row whenever the next item does not fit the current one.
type Grid struct {
	Columns           int
	HorizontalSpacing float64
	VerticalSpacing   float64
	Alignment         HorizontalAlignment
	Items             []GridItem
}

// Build turns the grid into a column of rows.
func (g Grid) Build() *Column {
	columns := g.Columns
	if columns <= 0 {
		columns = DefaultGridColumns
	}

	col := NewColumn(g.VerticalSpacing)
	var (
		current []GridItem
		used    int
	)
	flush := func() {
		if len(current) == 0 {
			return
		}
		col.Items = append(col.Items, g.row(current, columns-used))
		current, used = nil, 0
	}
	for _, it := range g.Items {
		span := min(max(it.Span, 1), columns)
		if used+span > columns {
			flush()
		}
		current = append(current, GridItem{Span: span, Child: it.Child})
		used += span
	}
	flush()
	return col
}

func (g Grid) row(items []GridItem, free int) *Row {
	row := NewRow(g.HorizontalSpacing)
	var lead, trail int
	switch g.Alignment {
	case AlignCenter:
		lead = free / 2
		trail = free - lead
	case AlignRight, AlignEnd:
		lead = free
	default:
		trail = free
	}
	if lead > 0 {
		row.Items = append(row.Items, RelativeItem(float64(lead), Empty{}))
	}
	for _, it := range items {
		row.Items = append(row.Items, RelativeItem(float64(it.Span), it.Child))
	}
	if trail > 0 {
		row.Items = append(row.Items, RelativeItem(float64(trail), Empty{}))
	}
	return row
}
