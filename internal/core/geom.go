// Package core provides fundamental types and utilities shared by the
// simulation and the terminal shell. It contains no external dependencies
// (especially no Bubble Tea) to keep game logic pure and testable.
package core

// Rect is an axis-aligned bounding box in playfield coordinates.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Inset returns the rectangle shrunk by m on every side.
// A negative m grows it. Width and height never drop below zero.
func (r Rect) Inset(m float64) Rect {
	out := Rect{X: r.X + m, Y: r.Y + m, W: r.W - 2*m, H: r.H - 2*m}
	if out.W < 0 {
		out.X += out.W / 2
		out.W = 0
	}
	if out.H < 0 {
		out.Y += out.H / 2
		out.H = 0
	}
	return out
}

// Intersects returns true if this rectangle overlaps with another.
// Touching edges do not count as overlap.
func (r Rect) Intersects(other Rect) bool {
	// No overlap if one rect is completely to the left, right, above, or below
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
