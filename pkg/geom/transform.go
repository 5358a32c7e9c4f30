package geom

// Transform converts distances between data coordinates and pixels.
// ScaleX and ScaleY are pixels per data unit on each axis.
type Transform struct {
	ScaleX, ScaleY float64
}

// ToPixels converts a data-space width and height to pixels.
func (t Transform) ToPixels(dx, dy float64) (float64, float64) {
	return dx * t.ScaleX, dy * t.ScaleY
}

// ToData converts a pixel-space width and height to data units.
// A zero scale maps to zero rather than dividing by it.
func (t Transform) ToData(px, py float64) (float64, float64) {
	var dx, dy float64
	if t.ScaleX != 0 {
		dx = px / t.ScaleX
	}
	if t.ScaleY != 0 {
		dy = py / t.ScaleY
	}
	return dx, dy
}

// PointsToPixels converts a distance in typographic points (1/72 inch)
// to pixels at the given dpi.
func PointsToPixels(points, dpi float64) float64 {
	return points / 72 * dpi
}

// PixelsToPoints converts a pixel distance to typographic points at
// the given dpi.
func PixelsToPoints(pixels, dpi float64) float64 {
	if dpi == 0 {
		return 0
	}
	return pixels / dpi * 72
}
