package layout

import "math"

// RowItemKind selects how a row item's width is computed.
type RowItemKind int

const (
	// RowConstant items take a fixed width.
	RowConstant RowItemKind = iota
	// RowRelative items share the width left after constant and auto items.
	RowRelative
	// RowAuto items take the width their content needs on one line.
	RowAuto
)

// RowItem is one cell of a Row.
type RowItem struct {
	Kind  RowItemKind
	Size  float64 // width for RowConstant, weight for RowRelative
	Child Element

	rendered bool
	// width of an auto item, fixed from the first page the row draws on
	// until every item has finished.
	autoWidth float64
	resolved  bool
}

func ConstantItem(width float64, child Element) *RowItem {
	return &RowItem{Kind: RowConstant, Size: width, Child: child}
}

func RelativeItem(weight float64, child Element) *RowItem {
	return &RowItem{Kind: RowRelative, Size: weight, Child: child}
}

func AutoItem(child Element) *RowItem {
	return &RowItem{Kind: RowAuto, Child: child}
}

// Row places items side by side. Items that finish early are not drawn
// again while their siblings continue on later pages.
type Row struct {
	Items     []*RowItem
	Spacing   float64
	Direction Direction
}

// NewRow builds a row with the given spacing between items.
func NewRow(spacing float64, items ...*RowItem) *Row {
	return &Row{Items: items, Spacing: spacing}
}

func (r *Row) Slots() []*Element {
	out := make([]*Element, len(r.Items))
	for i, it := range r.Items {
		out[i] = &it.Child
	}
	return out
}

func (r *Row) SetDirection(d Direction) { r.Direction = d }

func (r *Row) ResetState(hard bool) {
	if !hard {
		return
	}
	r.release()
}

func (r *Row) release() {
	for _, it := range r.Items {
		it.rendered = false
		it.resolved = false
	}
}

// widths resolves every item width against the available width. ok is false
// when fixed widths alone exceed it.
func (r *Row) widths(env *Env, available Size) (widths []float64, ok bool) {
	widths = make([]float64, len(r.Items))
	used := r.Spacing * float64(max(0, len(r.Items)-1))
	var weights float64
	for i, it := range r.Items {
		switch it.Kind {
		case RowConstant:
			widths[i] = it.Size
		case RowAuto:
			if it.resolved {
				widths[i] = it.autoWidth
				break
			}
			// Auto widths do not depend on the space offered to the row,
			// so a later page with less height keeps the same columns.
			m := orEmpty(it.Child).Measure(env, MaxSize)
			if !m.IsWrap() {
				widths[i] = m.Width
			}
		case RowRelative:
			weights += it.Size
			continue
		}
		used += widths[i]
	}
	if used > available.Width+Epsilon {
		return nil, false
	}
	free := available.Width - used
	for i, it := range r.Items {
		if it.Kind == RowRelative && weights > 0 {
			widths[i] = free * it.Size / weights
		}
	}
	return widths, true
}

func (r *Row) Measure(env *Env, available Size) SpacePlan {
	if len(r.Items) == 0 {
		return Full(0, 0)
	}
	widths, ok := r.widths(env, available)
	if !ok {
		return WrapPlan()
	}

	var (
		height float64
		width  float64
		types  []SpacePlanType
	)
	for i, it := range r.Items {
		width += widths[i]
		if it.rendered {
			continue
		}
		m := orEmpty(it.Child).Measure(env, Size{Width: widths[i], Height: available.Height})
		types = append(types, m.Type)
		height = math.Max(height, m.Height)
	}
	width += r.Spacing * float64(len(r.Items)-1)

	switch combine(types...) {
	case Wrap:
		return WrapPlan()
	case PartialRender:
		return Partial(math.Min(width, available.Width), height)
	default:
		return Full(math.Min(width, available.Width), height)
	}
}

func (r *Row) Draw(env *Env, available Size) {
	widths, ok := r.widths(env, available)
	if !ok {
		return
	}
	plan := r.Measure(env, available)
	if plan.IsWrap() {
		return
	}

	for i, it := range r.Items {
		if it.Kind == RowAuto && !it.resolved {
			it.autoWidth, it.resolved = widths[i], true
		}
	}

	total := plan.Width
	var x float64
	for i, it := range r.Items {
		w := widths[i]
		offset := x
		x += w + r.Spacing
		if it.rendered {
			continue
		}
		if r.Direction == RightToLeft {
			offset = total - offset - w
		}
		child := orEmpty(it.Child)
		space := Size{Width: w, Height: plan.Height}
		m := child.Measure(env, space)
		env.DrawAt(child, Position{X: offset}, space)
		if m.IsFull() {
			it.rendered = true
		}
	}

	for _, it := range r.Items {
		if !it.rendered {
			return
		}
	}
	r.release()
}
