// Package squarify implements the squarified treemap algorithm of
// Bruls, Huizing, and Van Wijk:
//
//	http://www.win.tue.nl/~vanwijk/stm.pdf
//
// [Pack] partitions a rectangle into sub-rectangles proportional to a
// list of weights while keeping aspect ratios close to one. Weights
// must be positive, normalized with [Normalize], and sorted in
// descending order; the output preserves the input order. [PackPadded]
// additionally insets every produced rectangle by one data unit per
// side, leaving uniform gaps between siblings.
package squarify

import "github.com/matzehuels/mosaic/pkg/geom"

// Normalize scales sizes so their sum equals dx*dy, the area of the
// target box. A zero total yields all-zero sizes.
func Normalize(sizes []float64, dx, dy float64) []float64 {
	var total float64
	for _, s := range sizes {
		total += s
	}
	out := make([]float64, len(sizes))
	if total == 0 {
		return out
	}
	scale := dx * dy / total
	for i, s := range sizes {
		out[i] = s * scale
	}
	return out
}

// Pack partitions the box at (x, y) with extents (dx, dy) into one
// rectangle per size. Sizes must be normalized to the box area and
// sorted in descending order; rectangles are returned in input order
// and tile the box exactly.
func Pack(sizes []float64, x, y, dx, dy float64) []geom.Rect {
	if len(sizes) == 0 {
		return nil
	}
	if len(sizes) == 1 {
		return layout(sizes, x, y, dx, dy)
	}

	// Grow the current row while doing so does not worsen the row's
	// worst aspect ratio.
	i := 1
	for i < len(sizes) && worst(sizes[:i], x, y, dx, dy) >= worst(sizes[:i+1], x, y, dx, dy) {
		i++
	}
	current, remaining := sizes[:i], sizes[i:]

	lx, ly, ldx, ldy := leftover(current, x, y, dx, dy)
	return append(layout(current, x, y, dx, dy), Pack(remaining, lx, ly, ldx, ldy)...)
}

// PackPadded is the padded variant of [Pack]: every rectangle large
// enough on an axis is inset by one unit from each of those edges,
// reserving uniform gaps while preserving proportionality of the
// remaining area.
func PackPadded(sizes []float64, x, y, dx, dy float64) []geom.Rect {
	rects := Pack(sizes, x, y, dx, dy)
	for i := range rects {
		rects[i] = padRect(rects[i])
	}
	return rects
}

func padRect(r geom.Rect) geom.Rect {
	if r.DX > 2 {
		r.X++
		r.DX -= 2
	}
	if r.DY > 2 {
		r.Y++
		r.DY -= 2
	}
	return r
}

// layout places sizes in a single row along the box's shorter axis.
func layout(sizes []float64, x, y, dx, dy float64) []geom.Rect {
	if dx >= dy {
		return layoutRow(sizes, x, y, dy)
	}
	return layoutCol(sizes, x, y, dx)
}

// layoutRow stacks sizes vertically in a column of shared width at
// the left edge of the box.
func layoutRow(sizes []float64, x, y, dy float64) []geom.Rect {
	var covered float64
	for _, s := range sizes {
		covered += s
	}
	width := covered / dy

	rects := make([]geom.Rect, 0, len(sizes))
	for _, s := range sizes {
		rects = append(rects, geom.Rect{X: x, Y: y, DX: width, DY: s / width})
		y += s / width
	}
	return rects
}

// layoutCol lines sizes up horizontally in a row of shared height at
// the bottom edge of the box.
func layoutCol(sizes []float64, x, y, dx float64) []geom.Rect {
	var covered float64
	for _, s := range sizes {
		covered += s
	}
	height := covered / dx

	rects := make([]geom.Rect, 0, len(sizes))
	for _, s := range sizes {
		rects = append(rects, geom.Rect{X: x, Y: y, DX: s / height, DY: height})
		x += s / height
	}
	return rects
}

// leftover returns the part of the box not consumed by the row.
func leftover(sizes []float64, x, y, dx, dy float64) (float64, float64, float64, float64) {
	var covered float64
	for _, s := range sizes {
		covered += s
	}
	if dx >= dy {
		width := covered / dy
		return x + width, y, dx - width, dy
	}
	height := covered / dx
	return x, y + height, dx, dy - height
}

// worst returns the worst (largest) aspect ratio the row would have.
func worst(sizes []float64, x, y, dx, dy float64) float64 {
	max := 0.0
	for _, r := range layout(sizes, x, y, dx, dy) {
		ratio := r.DX / r.DY
		if r.DY/r.DX > ratio {
			ratio = r.DY / r.DX
		}
		if ratio > max {
			max = ratio
		}
	}
	return max
}
