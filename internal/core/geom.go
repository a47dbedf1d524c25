// Package core holds the drawing primitives shared by scenes and the platform
// layer. It has no terminal dependencies so scenes can be tested headless.
package core

import "math"

// Rect is an axis-aligned cell rectangle.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Scaled returns a rectangle of the same center with both sides multiplied by
// factor. Sides round to the nearest cell and never go below one cell.
func (r Rect) Scaled(factor float64) Rect {
	cx, cy := r.Center()
	w := Max(1, int(math.Round(float64(r.W)*factor)))
	h := Max(1, int(math.Round(float64(r.H)*factor)))
	return NewRect(cx-w/2, cy-h/2, w, h)
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
