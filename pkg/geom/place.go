package geom

import (
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
)

// HAlign is a horizontal alignment of a label within its tile.
type HAlign string

// VAlign is a vertical alignment of a label within its tile.
type VAlign string

// Alignment values produced by ParsePlace.
const (
	Left    HAlign = "left"
	HCenter HAlign = "center"
	Right   HAlign = "right"

	Bottom  VAlign = "bottom"
	VCenter VAlign = "center"
	Top     VAlign = "top"
)

// Place is one of the nine named label anchors: center plus the four
// corner and four edge positions.
type Place struct {
	H HAlign
	V VAlign
}

// Center is the default label placement.
var Center = Place{H: HCenter, V: VCenter}

// placeNames lists all accepted anchor spellings, used for error messages.
const placeNames = `"center" ("centre" accepted), "center left", "center right", ` +
	`"bottom left", "bottom center", "bottom right", ` +
	`"top left", "top center", "top right", ` +
	`or the short forms "c", "cl", "cr", "bl", "bc", "br", "tl", "tc", "tr"`

var (
	hAligns = map[string]HAlign{"l": Left, "c": HCenter, "r": Right,
		"left": Left, "center": HCenter, "centre": HCenter, "right": Right}
	vAligns = map[string]VAlign{"b": Bottom, "c": VCenter, "t": Top,
		"bottom": Bottom, "center": VCenter, "centre": VCenter, "top": Top}
)

// ParsePlace parses a placement anchor. It accepts the long forms
// ("center", "top left", ...), British spelling of centre, and the
// two-letter short codes where the first letter is the vertical
// alignment and the second the horizontal ("tl", "br", ...).
func ParsePlace(s string) (Place, error) {
	switch s {
	case "c", "center", "centre":
		return Center, nil
	}

	var vs, hs string
	if fields := strings.Fields(s); len(fields) == 2 {
		vs, hs = fields[0], fields[1]
	} else if len(s) == 2 {
		vs, hs = s[:1], s[1:]
	} else {
		return Place{}, errors.New(errors.ErrCodeInvalidPlace,
			"invalid place %q; accepted values are %s", s, placeNames)
	}

	v, okV := vAligns[vs]
	h, okH := hAligns[hs]
	if !okV || !okH {
		return Place{}, errors.New(errors.ErrCodeInvalidPlace,
			"invalid place %q; accepted values are %s", s, placeNames)
	}
	return Place{H: h, V: v}, nil
}

// String returns the canonical long form of the anchor.
func (p Place) String() string {
	if p == Center || (p.H == "" && p.V == "") {
		return "center"
	}
	return string(p.V) + " " + string(p.H)
}

// Position returns the anchor point for a label inside r. The offsets
// inset edge-aligned anchors from the tile border and are ignored for
// centered axes.
func (p Place) Position(r Rect, offX, offY float64) (x, y float64) {
	switch p.H {
	case Left:
		x = r.X + offX
	case Right:
		x = r.MaxX() - offX
	default:
		x = r.CenterX()
	}
	switch p.V {
	case Bottom:
		y = r.Y + offY
	case Top:
		y = r.MaxY() - offY
	default:
		y = r.CenterY()
	}
	return x, y
}
