package text

import (
	"math"
	"strings"

	"github.com/ByLCY/folio/layout"
)

// Block is a paragraph. It keeps a cursor (item index plus character index)
// so a paragraph split across pages resumes where the last page stopped.
type Block struct {
	Items     []Item
	Alignment layout.HorizontalAlignment
	Direction layout.Direction

	item int
	char int
}

// NewBlock returns a paragraph of the given items.
func NewBlock(items ...Item) *Block {
	return &Block{Items: items}
}

// Text builds a single-style paragraph. Embedded newlines become line
// breaks.
func Text(s string, style layout.TextStyle) *Block {
	b := &Block{}
	b.Add(s, style)
	return b
}

// Add appends text in the given style, splitting it at newlines.
func (b *Block) Add(s string, style layout.TextStyle) *Block {
	for i, part := range strings.Split(s, "\n") {
		if i > 0 {
			b.Items = append(b.Items, &LineBreak{Style: style})
		}
		if part != "" {
			b.Items = append(b.Items, NewSpan(part, style))
		}
	}
	return b
}

func (b *Block) Slots() []*layout.Element {
	var out []*layout.Element
	for _, it := range b.Items {
		if in, ok := it.(*Inline); ok {
			out = append(out, &in.Element)
		}
	}
	return out
}

// Cacheable holds for paragraphs that depend on nothing but their text.
func (b *Block) Cacheable() bool {
	for _, it := range b.Items {
		switch it.(type) {
		case *Span, *LineBreak:
		default:
			return false
		}
	}
	return true
}

func (b *Block) InheritTextStyle(parent layout.TextStyle) {
	for _, it := range b.Items {
		if s, ok := it.(styled); ok {
			s.inheritStyle(parent)
		}
	}
}

func (b *Block) SetDirection(d layout.Direction) { b.Direction = d }

func (b *Block) ResetState(hard bool) {
	if hard {
		b.item, b.char = 0, 0
	}
}

type fragment struct {
	item Item
	m    Measurement
}

type line struct {
	fragments []fragment
	width     float64
	ascent    float64
	descent   float64
	height    float64
}

func newLine(fragments []fragment) line {
	l := line{fragments: fragments}
	for _, f := range fragments {
		l.width += f.m.Width
		l.ascent = math.Max(l.ascent, f.m.Ascent)
		l.descent = math.Max(l.descent, f.m.Descent)
		l.height = math.Max(l.height, f.m.Height()*f.m.LineHeight)
	}
	return l
}

// baseline is the distance from the top of the line to its baseline. Extra
// leading is split evenly above and below the glyphs.
func (l line) baseline() float64 {
	return (l.height-(l.ascent+l.descent))/2 + l.ascent
}

type cursor struct {
	item int
	char int
}

// nextLine fills one line of the given width starting at c.
func (b *Block) nextLine(env *layout.Env, width float64, c cursor) (line, cursor) {
	var fragments []fragment
	var used float64
	for c.item < len(b.Items) {
		it := b.Items[c.item]
		m, ok := it.Measure(env, Request{
			StartIndex:     c.char,
			AvailableWidth: width - used,
			IsFirstOnLine:  len(fragments) == 0,
		})
		if !ok {
			break
		}
		fragments = append(fragments, fragment{item: it, m: m})
		used += m.Width
		if !m.Done() {
			c.char = m.NextIndex
			break
		}
		c.item++
		c.char = 0
		if m.LineBreak {
			break
		}
	}
	return newLine(fragments), c
}

func (b *Block) layout(env *layout.Env, available layout.Size) ([]line, cursor, bool) {
	var (
		lines  []line
		height float64
	)
	c := cursor{item: b.item, char: b.char}
	for c.item < len(b.Items) {
		l, next := b.nextLine(env, available.Width, c)
		if len(l.fragments) == 0 {
			break
		}
		if height+l.height > available.Height+layout.Epsilon {
			break
		}
		height += l.height
		lines = append(lines, l)
		c = next
	}
	return lines, c, c.item >= len(b.Items)
}

func (b *Block) Measure(env *layout.Env, available layout.Size) layout.SpacePlan {
	if len(b.Items) == 0 {
		return layout.Full(0, 0)
	}
	lines, _, done := b.layout(env, available)
	if len(lines) == 0 {
		return layout.WrapPlan()
	}
	var width, height float64
	for _, l := range lines {
		width = math.Max(width, l.width)
		height += l.height
	}
	width = math.Min(width, available.Width)
	height = math.Min(height, available.Height)
	if done {
		return layout.Full(width, height)
	}
	return layout.Partial(width, height)
}

func (b *Block) Draw(env *layout.Env, available layout.Size) {
	lines, next, done := b.layout(env, available)
	var top float64
	for _, l := range lines {
		x := b.Alignment.Offset(available.Width, l.width, b.Direction)
		y := top + l.baseline()
		for _, f := range l.fragments {
			at := layout.Position{X: x, Y: y}
			env.Canvas.Translate(at)
			f.item.Draw(env, DrawRequest{
				StartIndex:  f.m.StartIndex,
				EndIndex:    f.m.EndIndex,
				Width:       f.m.Width,
				LineAscent:  l.ascent,
				LineDescent: l.descent,
			})
			env.Canvas.Translate(at.Reverse())
			x += f.m.Width
		}
		top += l.height
	}
	if done {
		b.item, b.char = 0, 0
		return
	}
	b.item, b.char = next.item, next.char
}
