// Package geom provides the shared geometry primitives for treemap
// layout and label placement: rectangles, edge padding, placement
// anchors, and the data-to-pixel coordinate transform.
//
// All rectangles use a y-up data coordinate space anchored at the
// lower-left corner, matching the layout engine. Renderers that draw
// into y-down spaces (SVG, terminal grids) flip at draw time.
package geom

// Rect is an axis-aligned rectangle anchored at its lower-left corner
// (X, Y) with extents DX and DY. Extents are always >= 0.
type Rect struct {
	X, Y, DX, DY float64
}

// Area returns the rectangle's area.
func (r Rect) Area() float64 { return r.DX * r.DY }

// MaxX returns the right edge of the rectangle.
func (r Rect) MaxX() float64 { return r.X + r.DX }

// MaxY returns the top edge of the rectangle.
func (r Rect) MaxY() float64 { return r.Y + r.DY }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return r.X + r.DX/2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return r.Y + r.DY/2 }

// Shrink insets the rectangle by the given padding. The result can
// have negative extents; callers are expected to reject that as a
// configuration error before packing into it.
func (r Rect) Shrink(p Pad) Rect {
	return Rect{
		X:  r.X + p.Left,
		Y:  r.Y + p.Bottom,
		DX: r.DX - p.Left - p.Right,
		DY: r.DY - p.Top - p.Bottom,
	}
}

// Contains reports whether o lies entirely within r, allowing tol of
// floating-point slack on each edge.
func (r Rect) Contains(o Rect, tol float64) bool {
	return o.X >= r.X-tol &&
		o.Y >= r.Y-tol &&
		o.MaxX() <= r.MaxX()+tol &&
		o.MaxY() <= r.MaxY()+tol
}

// Overlaps reports whether r and o share interior area beyond tol.
// Rectangles that merely touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect, tol float64) bool {
	return r.X < o.MaxX()-tol &&
		o.X < r.MaxX()-tol &&
		r.Y < o.MaxY()-tol &&
		o.Y < r.MaxY()-tol
}
