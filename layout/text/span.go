package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/ByLCY/folio/layout"
)

const space = ' '

type cacheKey struct {
	start int
	width float64
}

type cached struct {
	m  Measurement
	ok bool
}

// Span is a run of text sharing one style. It may carry a hyperlink or a
// link to a named section.
type Span struct {
	Style       layout.TextStyle
	URL         string
	SectionLink string

	text     string
	runes    []rune
	resolved layout.TextStyle
	styled   bool
	cache    map[cacheKey]cached
}

// NewSpan returns a span of text. Text is normalized to NFC so composed and
// decomposed input break and measure the same way.
func NewSpan(text string, style layout.TextStyle) *Span {
	s := &Span{Style: style}
	s.SetText(text)
	return s
}

// Text returns the normalized text of the span.
func (s *Span) Text() string { return s.text }

// SetText replaces the text and drops cached measurements.
func (s *Span) SetText(text string) {
	text = norm.NFC.String(text)
	if text == s.text && s.runes != nil {
		return
	}
	s.text = text
	s.runes = []rune(text)
	s.cache = nil
}

func (s *Span) inheritStyle(parent layout.TextStyle) {
	s.resolved = s.Style.Inherit(parent).Resolved()
	s.styled = true
	s.cache = nil
}

// ResolvedStyle is the style after inheritance.
func (s *Span) ResolvedStyle() layout.TextStyle {
	if !s.styled {
		return s.Style.Resolved()
	}
	return s.resolved
}

func (s *Span) Measure(env *layout.Env, req Request) (Measurement, bool) {
	key := cacheKey{start: req.StartIndex, width: req.AvailableWidth}
	if !req.IsFirstOnLine {
		// first-on-line changes leading space handling; keep the two apart
		key.start = -1 - req.StartIndex
	}
	if c, ok := s.cache[key]; ok {
		return c.m, c.ok
	}
	m, ok := s.measure(env, req)
	if s.cache == nil {
		s.cache = make(map[cacheKey]cached)
	}
	s.cache[key] = cached{m: m, ok: ok}
	return m, ok
}

func (s *Span) measure(env *layout.Env, req Request) (Measurement, bool) {
	style := s.ResolvedStyle()
	metrics := env.Typesetter.FontMetrics(style)
	total := len(s.runes)
	result := Measurement{
		Ascent:     metrics.Ascent,
		Descent:    metrics.Descent,
		LineHeight: style.LineHeight,
		TotalIndex: total,
	}

	start := req.StartIndex
	if req.IsFirstOnLine {
		for start < total && s.runes[start] == space {
			start++
		}
	}
	if start >= total {
		result.StartIndex, result.EndIndex, result.NextIndex = total, total, total
		return result, true
	}

	rest := s.runes[start:]
	length := s.fitting(env, style, rest, req.AvailableWidth+layout.Epsilon)
	if length <= 0 {
		return Measurement{}, false
	}
	if length < len(rest) && rest[length] == space {
		length++
	}

	if length < len(rest) && !style.WrapAnywhere.Enabled() {
		last := lastIndex(rest[:length], space)
		if last <= 0 {
			// no word boundary on the line: break mid-word only when the
			// word could not fit on any line
			if !req.IsFirstOnLine {
				return Measurement{}, false
			}
		} else {
			length = last
		}
	}

	end := start + length
	next := end
	for next < total && s.runes[next] == space {
		next++
	}

	// Trailing whitespace has no width, so a space ending one span does not
	// separate it from the next span on the same line.
	fragment := strings.TrimRightFunc(string(rest[:length]), unicode.IsSpace)
	result.Width = env.Typesetter.TextWidth(style, fragment)
	result.StartIndex = start
	result.EndIndex = end
	result.NextIndex = next
	return result, true
}

// fitting returns the longest prefix of rs no wider than width.
func (s *Span) fitting(env *layout.Env, style layout.TextStyle, rs []rune, width float64) int {
	lo, hi := 0, len(rs)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if env.Typesetter.TextWidth(style, string(rs[:mid])) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func lastIndex(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}

func (s *Span) Draw(env *layout.Env, req DrawRequest) {
	style := s.ResolvedStyle()
	text := string(s.runes[req.StartIndex:req.EndIndex])
	drawRun(env, style, text, req, s.URL, s.SectionLink)
}

func drawRun(env *layout.Env, style layout.TextStyle, text string, req DrawRequest, url, section string) {
	if env.StrictGlyphs {
		for _, r := range text {
			if unicode.IsSpace(r) || unicode.IsControl(r) {
				continue
			}
			if !env.Typesetter.HasGlyph(style, r) {
				layout.Abort(layout.NewDrawingError(layout.CodeMissingGlyph, nil,
					"font %q cannot render %q (U+%04X)", style.FontFamily, r, r))
			}
		}
	}

	metrics := env.Typesetter.FontMetrics(style)
	top := layout.Position{Y: -req.LineAscent}
	area := layout.Size{Width: req.Width, Height: req.LineAscent + req.LineDescent}

	if !style.BackgroundColor.IsZero() {
		env.Canvas.DrawRectangle(top, area, style.BackgroundColor)
	}
	if url != "" || section != "" {
		env.Canvas.Translate(top)
		if url != "" {
			env.Canvas.DrawHyperlink(url, area)
		} else {
			env.Canvas.DrawSectionLink(env.Pages.LocationName(section), area)
		}
		env.Canvas.Translate(top.Reverse())
	}

	env.Canvas.DrawText(strings.TrimRightFunc(text, unicode.IsSpace), layout.Origin, style)

	thickness := metrics.UnderlineThickness
	if thickness <= 0 {
		thickness = style.FontSize / 18
	}
	if style.Underline.Enabled() {
		env.Canvas.DrawRectangle(layout.Position{Y: metrics.UnderlinePosition - thickness/2},
			layout.Size{Width: req.Width, Height: thickness}, style.Color)
	}
	if style.Strikethrough.Enabled() {
		env.Canvas.DrawRectangle(layout.Position{Y: -metrics.StrikeoutPosition - thickness/2},
			layout.Size{Width: req.Width, Height: thickness}, style.Color)
	}
}
