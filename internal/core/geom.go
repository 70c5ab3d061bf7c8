// Package core provides fundamental types shared by scenes and the platform.
// It contains no external dependencies (especially no Bubble Tea) to keep
// scene logic pure and testable.
package core

import "math"

// Rect is a rectangle of whole terminal cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// CellRect snaps a continuous box to the cells it covers.
// Edges are rounded to the nearest cell; a box with any positive extent
// covers at least one cell on that axis.
func CellRect(left, top, width, height float64) Rect {
	x := int(math.Round(left))
	y := int(math.Round(top))
	w := int(math.Round(left+width)) - x
	h := int(math.Round(top+height)) - y
	if width > 0 && w < 1 {
		w = 1
	}
	if height > 0 && h < 1 {
		h = 1
	}
	return Rect{X: x, Y: y, W: max(w, 0), H: max(h, 0)}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
