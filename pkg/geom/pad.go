package geom

import (
	"github.com/matzehuels/mosaic/pkg/errors"
)

// Pad is the per-edge padding applied between a parent rectangle and
// its children, in data coordinates. All fields are >= 0 after
// normalization.
type Pad struct {
	Left, Right, Top, Bottom float64
}

// PadUniform returns a Pad with the same value on all four edges.
func PadUniform(v float64) Pad {
	return Pad{Left: v, Right: v, Top: v, Bottom: v}
}

// PadXY returns a Pad with x applied left/right and y applied top/bottom.
func PadXY(x, y float64) Pad {
	return Pad{Left: x, Right: x, Top: y, Bottom: y}
}

// ParsePad normalizes a padding specification into a Pad. Accepted
// shapes mirror the configuration surface:
//
//	[v]          uniform padding on all edges
//	[x, y]       horizontal and vertical padding
//	[l, r, t, b] explicit per-edge padding
//
// Any other length, or any negative value, is a validation error.
func ParsePad(values []float64) (Pad, error) {
	var p Pad
	switch len(values) {
	case 1:
		p = PadUniform(values[0])
	case 2:
		p = PadXY(values[0], values[1])
	case 4:
		p = Pad{Left: values[0], Right: values[1], Top: values[2], Bottom: values[3]}
	default:
		return Pad{}, errors.New(errors.ErrCodeInvalidPad,
			"pad must be one, two or four numbers, got %d", len(values))
	}
	if err := p.Validate(); err != nil {
		return Pad{}, err
	}
	return p, nil
}

// Validate rejects negative padding on any edge.
func (p Pad) Validate() error {
	for _, e := range []struct {
		name string
		v    float64
	}{
		{"left", p.Left},
		{"right", p.Right},
		{"top", p.Top},
		{"bottom", p.Bottom},
	} {
		if e.v < 0 {
			return errors.New(errors.ErrCodeInvalidPad,
				"pad %s must be >= 0, got %v", e.name, e.v)
		}
	}
	return nil
}

// IsZero reports whether the padding is zero on all edges.
func (p Pad) IsZero() bool {
	return p.Left == 0 && p.Right == 0 && p.Top == 0 && p.Bottom == 0
}
