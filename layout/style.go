package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// Color 采用 0-255 的 RGBA 数值；A 为 0 表示未设置（透明）。
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

var (
	Black       = RGB(0, 0, 0)
	White       = RGB(255, 255, 255)
	Grey        = RGB(158, 158, 158)
	LightGrey   = RGB(224, 224, 224)
	Red         = RGB(244, 67, 54)
	Transparent = Color{}
)

// RGBA implements color.Color with premultiplied alpha.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A) * 0x101
	r = uint32(c.R) * 0x101 * a / 0xffff
	g = uint32(c.G) * 0x101 * a / 0xffff
	b = uint32(c.B) * 0x101 * a / 0xffff
	return
}

func (c Color) IsZero() bool { return c.A == 0 }

// Hex formats the color as #RRGGBB, or #RRGGBBAA when translucent.
func (c Color) Hex() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseHexColor parses #RGB, #RRGGBB and #RRGGBBAA.
func ParseHexColor(v string) (Color, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", v)
	}
	if len(s) == 6 {
		s += "FF"
	}
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", v, err)
	}
	return Color{R: uint8(n >> 24), G: uint8(n >> 16), B: uint8(n >> 8), A: uint8(n)}, nil
}

// FontWeight follows the CSS numeric scale. Zero inherits.
type FontWeight int

const (
	WeightThin     FontWeight = 100
	WeightLight    FontWeight = 300
	WeightNormal   FontWeight = 400
	WeightMedium   FontWeight = 500
	WeightSemiBold FontWeight = 600
	WeightBold     FontWeight = 700
	WeightBlack    FontWeight = 900
)

// Toggle is a tri-state flag. The zero value inherits from the parent style.
type Toggle int8

const (
	Inherit Toggle = iota
	On
	Off
)

func (t Toggle) Enabled() bool { return t == On }

// Bool converts b into an explicit toggle.
func Bool(b bool) Toggle {
	if b {
		return On
	}
	return Off
}

// TextStyle describes how a run of text is shaped and painted. Zero-valued
// fields are unset and resolved through Inherit.
type TextStyle struct {
	FontFamily      string
	FontSize        float64
	LineHeight      float64 // factor of the natural font height
	Weight          FontWeight
	Italic          Toggle
	Color           Color
	BackgroundColor Color
	Underline       Toggle
	Strikethrough   Toggle
	WrapAnywhere    Toggle
}

// DefaultTextStyle is the root of every inheritance chain.
var DefaultTextStyle = TextStyle{
	FontFamily:    "sans",
	FontSize:      12,
	LineHeight:    1.2,
	Weight:        WeightNormal,
	Italic:        Off,
	Color:         Black,
	Underline:     Off,
	Strikethrough: Off,
	WrapAnywhere:  Off,
}

// Inherit fills every unset field of s from parent.
func (s TextStyle) Inherit(parent TextStyle) TextStyle {
	if s.FontFamily == "" {
		s.FontFamily = parent.FontFamily
	}
	if s.FontSize == 0 {
		s.FontSize = parent.FontSize
	}
	if s.LineHeight == 0 {
		s.LineHeight = parent.LineHeight
	}
	if s.Weight == 0 {
		s.Weight = parent.Weight
	}
	if s.Italic == Inherit {
		s.Italic = parent.Italic
	}
	if s.Color.IsZero() {
		s.Color = parent.Color
	}
	if s.BackgroundColor.IsZero() {
		s.BackgroundColor = parent.BackgroundColor
	}
	if s.Underline == Inherit {
		s.Underline = parent.Underline
	}
	if s.Strikethrough == Inherit {
		s.Strikethrough = parent.Strikethrough
	}
	if s.WrapAnywhere == Inherit {
		s.WrapAnywhere = parent.WrapAnywhere
	}
	return s
}

// Resolved inherits from DefaultTextStyle, so every field is set.
func (s TextStyle) Resolved() TextStyle { return s.Inherit(DefaultTextStyle) }

// Key identifies the font face selected by the style.
func (s TextStyle) Key() string {
	return fmt.Sprintf("%s|%.2f|%d|%t", s.FontFamily, s.FontSize, s.Weight, s.Italic.Enabled())
}

// HorizontalAlignment positions content inside a wider box.
type HorizontalAlignment int

const (
	AlignStart HorizontalAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignEnd
)

// VerticalAlignment positions content inside a taller box.
type VerticalAlignment int

const (
	AlignTop VerticalAlignment = iota
	AlignMiddle
	AlignBottom
)

// Direction is the reading order of content.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Offset returns the x offset of a box of width used inside width total.
func (a HorizontalAlignment) Offset(total, used float64, dir Direction) float64 {
	free := total - used
	if free <= 0 {
		return 0
	}
	switch a {
	case AlignLeft:
		return 0
	case AlignCenter:
		return free / 2
	case AlignRight:
		return free
	case AlignEnd:
		if dir == RightToLeft {
			return 0
		}
		return free
	default:
		if dir == RightToLeft {
			return free
		}
		return 0
	}
}

// Offset returns the y offset of a box of height used inside height total.
func (a VerticalAlignment) Offset(total, used float64) float64 {
	free := total - used
	if free <= 0 {
		return 0
	}
	switch a {
	case AlignMiddle:
		return free / 2
	case AlignBottom:
		return free
	default:
		return 0
	}
}
