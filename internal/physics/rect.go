package physics

// Rect is an axis-aligned box stored as its center and full size.
// Edges are derived, so Right()-Left() == Size.X and Bottom()-Top() == Size.Y
// always hold. Y grows downward, matching screen rows.
type Rect struct {
	Center Vector2D
	Size   Vector2D
}

// NewRect creates a rectangle from its top-left corner and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{
		Center: Vector2D{X: x + w/2, Y: y + h/2},
		Size:   Vector2D{X: w, Y: h},
	}
}

// NewRectCentered creates a rectangle from its center and dimensions.
func NewRectCentered(cx, cy, w, h float64) Rect {
	return Rect{
		Center: Vector2D{X: cx, Y: cy},
		Size:   Vector2D{X: w, Y: h},
	}
}

// RectFromEdges creates a rectangle from its edges.
// The result has negative size when right < left or bottom < top.
func RectFromEdges(left, top, right, bottom float64) Rect {
	return Rect{
		Center: Vector2D{X: (left + right) / 2, Y: (top + bottom) / 2},
		Size:   Vector2D{X: right - left, Y: bottom - top},
	}
}

// Left returns the x-coordinate of the left edge.
func (r Rect) Left() float64 { return r.Center.X - r.Size.X/2 }

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 { return r.Center.X + r.Size.X/2 }

// Top returns the y-coordinate of the top edge.
func (r Rect) Top() float64 { return r.Center.Y - r.Size.Y/2 }

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Center.Y + r.Size.Y/2 }

// Width returns the full width.
func (r Rect) Width() float64 { return r.Size.X }

// Height returns the full height.
func (r Rect) Height() float64 { return r.Size.Y }

// Area returns width * height.
func (r Rect) Area() float64 { return r.Size.X * r.Size.Y }

// SetLeft moves the rectangle so its left edge is at x.
func (r *Rect) SetLeft(x float64) *Rect {
	r.Center.X = x + r.Size.X/2
	return r
}

// SetRight moves the rectangle so its right edge is at x.
func (r *Rect) SetRight(x float64) *Rect {
	r.Center.X = x - r.Size.X/2
	return r
}

// SetTop moves the rectangle so its top edge is at y.
func (r *Rect) SetTop(y float64) *Rect {
	r.Center.Y = y + r.Size.Y/2
	return r
}

// SetBottom moves the rectangle so its bottom edge is at y.
func (r *Rect) SetBottom(y float64) *Rect {
	r.Center.Y = y - r.Size.Y/2
	return r
}

// SetWidth resizes horizontally around the center.
func (r *Rect) SetWidth(w float64) *Rect {
	r.Size.X = w
	return r
}

// SetHeight resizes vertically around the center.
func (r *Rect) SetHeight(h float64) *Rect {
	r.Size.Y = h
	return r
}

// SetSize resizes around the center.
func (r *Rect) SetSize(w, h float64) *Rect {
	r.Size.Set(w, h)
	return r
}

// Clone returns an independent copy.
func (r Rect) Clone() Rect {
	return r
}

// Overlap returns the intersection of r and o.
// The result is degenerate (non-positive width or height) when the rectangles
// are disjoint or only touch; check Intersects before treating it as a contact.
func (r Rect) Overlap(o Rect) Rect {
	return RectFromEdges(
		max(r.Left(), o.Left()),
		max(r.Top(), o.Top()),
		min(r.Right(), o.Right()),
		min(r.Bottom(), o.Bottom()),
	)
}

// Intersects reports whether r and o overlap with strictly positive area.
// Rectangles sharing only an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	ov := r.Overlap(o)
	return ov.Size.X > 0 && ov.Size.Y > 0
}

// Distance returns the per-axis signed translation that would bring r into
// contact with o. An axis on which the two already overlap yields zero.
func (r Rect) Distance(o Rect) Vector2D {
	var d Vector2D
	switch {
	case r.Right() < o.Left():
		d.X = o.Left() - r.Right()
	case r.Left() > o.Right():
		d.X = o.Right() - r.Left()
	}
	switch {
	case r.Bottom() < o.Top():
		d.Y = o.Top() - r.Bottom()
	case r.Top() > o.Bottom():
		d.Y = o.Bottom() - r.Top()
	}
	return d
}

// Inset returns r shrunk by margin on every side.
// Insetting the world by half a body's size yields the region its center may
// occupy while the whole body stays inside.
func (r Rect) Inset(margin Vector2D) Rect {
	return Rect{
		Center: r.Center,
		Size:   Vector2D{X: r.Size.X - 2*margin.X, Y: r.Size.Y - 2*margin.Y},
	}
}

// Contains reports whether p lies inside r.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Vector2D) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely within r (edges inclusive).
func (r Rect) ContainsRect(o Rect) bool {
	return o.Left() >= r.Left() && o.Right() <= r.Right() &&
		o.Top() >= r.Top() && o.Bottom() <= r.Bottom()
}

// pointRect is a zero-size rectangle at p.
func pointRect(p Vector2D) Rect {
	return Rect{Center: p}
}
