package styles

import (
	"bytes"
	"encoding/xml"
)

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

// anchorFor maps a horizontal alignment to the SVG text-anchor value.
func anchorFor(halign string) string {
	switch halign {
	case "left":
		return "start"
	case "right":
		return "end"
	default:
		return "middle"
	}
}

// firstBaseline returns the y coordinate of the first line's baseline
// for a block of n lines anchored vertically at y. The ascent is
// approximated as a fixed ratio of the font size, which is close
// enough for the faces the renderer measures with.
func firstBaseline(y, sizePx, lineHeight float64, n int, valign string) float64 {
	ascent := sizePx * 0.8
	block := lineHeight*float64(n-1) + sizePx
	switch valign {
	case "top":
		return y + ascent
	case "bottom":
		return y - block + ascent
	default:
		return y - block/2 + ascent
	}
}
