package text

import (
	"strconv"

	"github.com/ByLCY/folio/layout"
)

// PageNumberSource reads a page number from the page context. ok is false
// while the number is not known yet, which is the case for forward
// references during the first pass.
type PageNumberSource func(pages *layout.PageContext) (n int, ok bool)

// PageNumberFormatter renders a page number. It receives ok=false when the
// number is unknown and must still return a placeholder of similar width.
type PageNumberFormatter func(n int, ok bool) string

// DefaultPageNumberFormatter prints the number in decimal and "123" while it
// is unknown.
func DefaultPageNumberFormatter(n int, ok bool) string {
	if !ok {
		return "123"
	}
	return strconv.Itoa(n)
}

func CurrentPage() PageNumberSource {
	return func(p *layout.PageContext) (int, bool) { return p.CurrentPage + 1, true }
}

func TotalPages() PageNumberSource {
	return func(p *layout.PageContext) (int, bool) { return p.DocumentLength, p.DocumentLength > 0 }
}

func SectionStart(name string) PageNumberSource {
	return func(p *layout.PageContext) (int, bool) {
		loc, ok := p.Section(name)
		return loc.PageStart, ok
	}
}

func SectionEnd(name string) PageNumberSource {
	return func(p *layout.PageContext) (int, bool) {
		loc, ok := p.Section(name)
		return loc.PageEnd, ok
	}
}

func SectionLength(name string) PageNumberSource {
	return func(p *layout.PageContext) (int, bool) {
		loc, ok := p.Section(name)
		return loc.Length(), ok
	}
}

// PageWithinSection numbers pages relative to the first page of a section.
func PageWithinSection(name string) PageNumberSource {
	return func(p *layout.PageContext) (int, bool) {
		loc, ok := p.Section(name)
		if !ok {
			return 0, false
		}
		return p.CurrentPage + 1 - loc.PageStart + 1, true
	}
}

// PageNumber is a number resolved from the page context every time it is
// measured. It is never split across lines.
type PageNumber struct {
	Source PageNumberSource
	Format PageNumberFormatter
	Style  layout.TextStyle

	span *Span
}

func NewPageNumber(source PageNumberSource, style layout.TextStyle) *PageNumber {
	return &PageNumber{Source: source, Style: style}
}

func (p *PageNumber) inheritStyle(parent layout.TextStyle) {
	if p.span == nil {
		p.span = NewSpan("", p.Style)
	}
	p.span.Style = p.Style
	p.span.inheritStyle(parent)
}

func (p *PageNumber) spanFor(text string) *Span {
	if p.span == nil {
		p.span = NewSpan(text, p.Style)
		return p.span
	}
	p.span.SetText(text)
	return p.span
}

func (p *PageNumber) text(pages *layout.PageContext) string {
	format := p.Format
	if format == nil {
		format = DefaultPageNumberFormatter
	}
	n, ok := p.Source(pages)
	return format(n, ok)
}

func (p *PageNumber) Measure(env *layout.Env, req Request) (Measurement, bool) {
	span := p.spanFor(p.text(env.Pages))
	m, ok := span.Measure(env, Request{StartIndex: 0, AvailableWidth: layout.Infinity, IsFirstOnLine: true})
	if !ok || m.Width > req.AvailableWidth+layout.Epsilon {
		return Measurement{}, false
	}
	return m, true
}

func (p *PageNumber) Draw(env *layout.Env, req DrawRequest) {
	p.spanFor(p.text(env.Pages)).Draw(env, req)
}

// Inline embeds an element in a line. The element must fit entirely.
type Inline struct {
	Element layout.Element
}

func (i *Inline) Measure(env *layout.Env, req Request) (Measurement, bool) {
	if i.Element == nil {
		return Measurement{StartIndex: 0, EndIndex: 1, NextIndex: 1, TotalIndex: 1, LineHeight: 1}, true
	}
	plan := i.Element.Measure(env, layout.Size{Width: req.AvailableWidth, Height: layout.Infinity})
	if !plan.IsFull() {
		return Measurement{}, false
	}
	return Measurement{
		Width:      plan.Width,
		Ascent:     plan.Height,
		LineHeight: 1,
		StartIndex: 0,
		EndIndex:   1,
		NextIndex:  1,
		TotalIndex: 1,
	}, true
}

func (i *Inline) Draw(env *layout.Env, req DrawRequest) {
	if i.Element == nil {
		return
	}
	plan := i.Element.Measure(env, layout.Size{Width: req.Width, Height: layout.Infinity})
	env.DrawAt(i.Element, layout.Position{Y: -plan.Height}, plan.Size())
}

// LineBreak ends the current line. Consecutive breaks produce empty lines
// of the style's height.
type LineBreak struct {
	Style layout.TextStyle

	resolved layout.TextStyle
	styled   bool
}

func (l *LineBreak) inheritStyle(parent layout.TextStyle) {
	l.resolved = l.Style.Inherit(parent).Resolved()
	l.styled = true
}

func (l *LineBreak) Measure(env *layout.Env, _ Request) (Measurement, bool) {
	style := l.resolved
	if !l.styled {
		style = l.Style.Resolved()
	}
	metrics := env.Typesetter.FontMetrics(style)
	return Measurement{
		Ascent:     metrics.Ascent,
		Descent:    metrics.Descent,
		LineHeight: style.LineHeight,
		StartIndex: 0,
		EndIndex:   1,
		NextIndex:  1,
		TotalIndex: 1,
		LineBreak:  true,
	}, true
}

func (*LineBreak) Draw(*layout.Env, DrawRequest) {}
