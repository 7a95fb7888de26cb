package layout

import "math"

// Epsilon absorbs floating-point drift accumulated by nested measurement.
const Epsilon = 0.001

// Infinity stands in for an unbounded axis. It is finite so that offsets and
// sums computed against it stay finite.
const Infinity = 14_400.0

// Size is a width/height pair in points.
type Size struct {
	Width  float64
	Height float64
}

// Zero is the empty size.
var Zero = Size{}

// MaxSize is the size offered to the root element on every page attempt.
var MaxSize = Size{Width: Infinity, Height: Infinity}

// Fits reports whether s fits inside available, modulo Epsilon.
func (s Size) Fits(available Size) bool {
	return s.Width <= available.Width+Epsilon && s.Height <= available.Height+Epsilon
}

// Equal compares sizes within Epsilon.
func (s Size) Equal(o Size) bool {
	return math.Abs(s.Width-o.Width) < Epsilon && math.Abs(s.Height-o.Height) < Epsilon
}

// IsNegative reports whether either axis dropped below zero.
func (s Size) IsNegative() bool {
	return s.Width < -Epsilon || s.Height < -Epsilon
}

// Shrink subtracts dw and dh, clamping at zero.
func (s Size) Shrink(dw, dh float64) Size {
	return Size{Width: math.Max(0, s.Width-dw), Height: math.Max(0, s.Height-dh)}
}

// Position is an x/y offset in points. Y grows downwards.
type Position struct {
	X float64
	Y float64
}

// Origin is the zero position.
var Origin = Position{}

func (p Position) Add(o Position) Position { return Position{X: p.X + o.X, Y: p.Y + o.Y} }
func (p Position) Reverse() Position       { return Position{X: -p.X, Y: -p.Y} }
