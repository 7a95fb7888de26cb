package layout

import "math"

// Column stacks items top to bottom. It remembers the first item not yet
// fully drawn so later pages continue where the previous one stopped.
type Column struct {
	Items   []Element
	Spacing float64

	current int
}

// NewColumn builds a column with the given spacing between items.
func NewColumn(spacing float64, items ...Element) *Column {
	return &Column{Items: items, Spacing: spacing}
}

func (c *Column) Slots() []*Element {
	out := make([]*Element, len(c.Items))
	for i := range c.Items {
		out[i] = &c.Items[i]
	}
	return out
}

func (c *Column) ResetState(hard bool) {
	if hard {
		c.current = 0
	}
}

type columnCommand struct {
	item   Element
	plan   SpacePlan
	offset float64
}

func (c *Column) plan(env *Env, available Size) ([]columnCommand, SpacePlan) {
	var (
		commands []columnCommand
		top      float64
		width    float64
	)
	for i := c.current; i < len(c.Items); i++ {
		if len(commands) > 0 {
			top += c.Spacing
		}
		space := Size{Width: available.Width, Height: available.Height - top}
		if space.Height < -Epsilon {
			break
		}
		space.Height = math.Max(0, space.Height)

		item := orEmpty(c.Items[i])
		m := item.Measure(env, space)
		if m.IsWrap() {
			break
		}
		commands = append(commands, columnCommand{item: item, plan: m, offset: top})
		width = math.Max(width, m.Width)
		top += m.Height
		if m.IsPartial() {
			break
		}
	}

	if c.current >= len(c.Items) {
		return nil, Full(0, 0)
	}
	if len(commands) == 0 {
		return nil, WrapPlan()
	}

	last := commands[len(commands)-1]
	height := math.Min(last.offset+last.plan.Height, available.Height)
	done := last.plan.IsFull() && c.current+len(commands) == len(c.Items)
	if done {
		return commands, Full(width, height)
	}
	return commands, Partial(width, height)
}

func (c *Column) Measure(env *Env, available Size) SpacePlan {
	_, plan := c.plan(env, available)
	return plan
}

func (c *Column) Draw(env *Env, available Size) {
	commands, _ := c.plan(env, available)
	for _, cmd := range commands {
		env.DrawAt(cmd.item, Position{Y: cmd.offset}, Size{Width: available.Width, Height: cmd.plan.Height})
		if cmd.plan.IsFull() {
			c.current++
		}
	}
	if c.current >= len(c.Items) {
		c.current = 0
	}
}
