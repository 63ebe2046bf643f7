// Package core provides fundamental types and utilities for the sandbox.
// It contains no external dependencies (especially no Bubble Tea) so the
// world, physics and generation code stays pure and testable.
package core

// Point is an integer cell coordinate.
type Point struct {
	X, Y int
}

// Pt is shorthand for constructing a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Rect represents an axis-aligned box of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge (exclusive).
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge (exclusive).
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Intersects returns true if this rectangle overlaps with another.
// Uses standard AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Union returns the smallest rectangle covering both r and other.
// An empty rectangle does not contribute.
func (r Rect) Union(other Rect) Rect {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	x0 := Min(r.X, other.X)
	y0 := Min(r.Y, other.Y)
	x1 := Max(r.Right(), other.Right())
	y1 := Max(r.Bottom(), other.Bottom())
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// Expand grows the rectangle by dx columns and dy rows on every side.
func (r Rect) Expand(dx, dy int) Rect {
	return NewRect(r.X-dx, r.Y-dy, r.W+2*dx, r.H+2*dy)
}

// Clip restricts the rectangle to [0, w) x [0, h).
func (r Rect) Clip(w, h int) Rect {
	x0 := Clamp(r.X, 0, w)
	y0 := Clamp(r.Y, 0, h)
	x1 := Clamp(r.Right(), 0, w)
	y1 := Clamp(r.Bottom(), 0, h)
	return NewRect(x0, y0, x1-x0, y1-y0)
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// ClampedRange returns the indices between low and high clipped to
// [0, extent). The half-open interval is [min(low,high), max(low,high)).
// When low > high the indices come out in descending order, so a caller
// walking from a position toward a smaller index gets the nearest cell first.
// Direction is decided on the raw arguments, before clamping.
func ClampedRange(low, high, extent int) []int {
	descending := low > high
	if descending {
		low, high = high, low
	}
	low = Max(0, low)
	high = Min(extent, high)
	if high <= low {
		return nil
	}

	out := make([]int, 0, high-low)
	if descending {
		for i := high - 1; i >= low; i-- {
			out = append(out, i)
		}
		return out
	}
	for i := low; i < high; i++ {
		out = append(out, i)
	}
	return out
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
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

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Sign returns -1, 0, or 1.
func Sign(x float64) int {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
