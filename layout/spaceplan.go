package layout

import "fmt"

// SpacePlanType tags the outcome of measuring an element.
type SpacePlanType int

const (
	// Wrap means nothing can be rendered in the offered space.
	Wrap SpacePlanType = iota
	// PartialRender means some content fits and more remains for later pages.
	PartialRender
	// FullRender means all remaining content fits.
	FullRender
)

func (t SpacePlanType) String() string {
	switch t {
	case Wrap:
		return "wrap"
	case PartialRender:
		return "partial"
	case FullRender:
		return "full"
	default:
		return fmt.Sprintf("SpacePlanType(%d)", int(t))
	}
}

// SpacePlan is the result of Measure. Width and Height are meaningful only
// for PartialRender and FullRender.
type SpacePlan struct {
	Type   SpacePlanType
	Width  float64
	Height float64
}

func WrapPlan() SpacePlan { return SpacePlan{Type: Wrap} }

func Partial(width, height float64) SpacePlan {
	return SpacePlan{Type: PartialRender, Width: width, Height: height}
}

func Full(width, height float64) SpacePlan {
	return SpacePlan{Type: FullRender, Width: width, Height: height}
}

// Size returns the planned size.
func (p SpacePlan) Size() Size { return Size{Width: p.Width, Height: p.Height} }

// WithSize keeps the plan type and replaces its size.
func (p SpacePlan) WithSize(s Size) SpacePlan {
	if p.Type == Wrap {
		return p
	}
	return SpacePlan{Type: p.Type, Width: s.Width, Height: s.Height}
}

func (p SpacePlan) IsWrap() bool    { return p.Type == Wrap }
func (p SpacePlan) IsPartial() bool { return p.Type == PartialRender }
func (p SpacePlan) IsFull() bool    { return p.Type == FullRender }

func (p SpacePlan) String() string {
	if p.Type == Wrap {
		return "wrap"
	}
	return fmt.Sprintf("%s(%.2f x %.2f)", p.Type, p.Width, p.Height)
}

// combine folds child plan types into a parent plan type. Any wrapping child
// makes the parent wrap; any partial child makes it partial.
func combine(types ...SpacePlanType) SpacePlanType {
	result := FullRender
	for _, t := range types {
		if t == Wrap {
			return Wrap
		}
		if t == PartialRender {
			result = PartialRender
		}
	}
	return result
}
