package textfit

// DefaultLineSpacing is the line height multiplier used when a Font
// does not set one.
const DefaultLineSpacing = 1.2

// Font describes the face and base size used to measure and draw a
// label.
type Font struct {
	Family      string  // face family name; "" picks the provider default
	Size        float64 // base size in points
	LineSpacing float64 // line height multiplier; <= 0 means DefaultLineSpacing
	Rotation    float64 // rotation in degrees; reflow requires 0
}

func (f Font) lineSpacing() float64 {
	if f.LineSpacing <= 0 {
		return DefaultLineSpacing
	}
	return f.LineSpacing
}

// Metrics measures a single line of text at a given point size and
// dpi, returning the rendered width and height in pixels.
//
// Implementations must be reentrant for the engine to be safely
// invoked concurrently across independent texts and boxes.
type Metrics interface {
	Measure(text string, font Font, dpi float64) (width, height float64, err error)
}

// Constraint clamps computed font sizes to [Min, Max] points. A zero
// field leaves that bound unset. The minimum is applied last, so it
// wins over a smaller maximum.
type Constraint struct {
	Min, Max float64
}

// Clamp applies the constraint to a size.
func (c Constraint) Clamp(size float64) float64 {
	if c.Max > 0 && size > c.Max {
		size = c.Max
	}
	if c.Min > 0 && size < c.Min {
		size = c.Min
	}
	return size
}
