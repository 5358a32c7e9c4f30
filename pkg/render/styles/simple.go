package styles

import (
	"bytes"
	"fmt"
)

const (
	defaultLeafFill    = "#4c78a8"
	defaultGroupStroke = "#333"
	defaultTextColor   = "#111"
)

// Simple is a clean, flat style: solid leaf tiles, outlined group
// frames, plain text labels.
type Simple struct{}

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderTile(buf *bytes.Buffer, t Tile) {
	fill := t.Fill
	stroke := t.Stroke
	if t.Leaf {
		if fill == "" {
			fill = defaultLeafFill
		}
		if stroke == "" {
			stroke = "white"
		}
		fmt.Fprintf(buf,
			`  <rect id="tile-%s" class="tile" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1"/>`+"\n",
			EscapeXML(t.ID), t.X, t.Y, t.W, t.H, fill, stroke)
		return
	}
	if fill == "" {
		fill = "none"
	}
	if stroke == "" {
		stroke = defaultGroupStroke
	}
	fmt.Fprintf(buf,
		`  <rect id="tile-%s" class="tile group" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		EscapeXML(t.ID), t.X, t.Y, t.W, t.H, fill, stroke)
}

func (Simple) RenderLabel(buf *bytes.Buffer, t Tile, l Label) {
	if len(l.Lines) == 0 {
		return
	}
	color := l.Color
	if color == "" {
		color = defaultTextColor
	}
	baseline := firstBaseline(l.Y, l.SizePx, l.LineHeight, len(l.Lines), l.VAlign)
	rotate := ""
	if l.Rotation != 0 {
		// SVG rotates clockwise for positive angles.
		rotate = fmt.Sprintf(` transform="rotate(%.1f %.2f %.2f)"`, -l.Rotation, l.X, l.Y)
	}
	fmt.Fprintf(buf,
		`  <text class="tile-text" data-tile="%s" x="%.2f" y="%.2f" font-size="%.2f" text-anchor="%s" fill="%s" font-family="sans-serif"%s>`,
		EscapeXML(t.ID), l.X, baseline, l.SizePx, anchorFor(l.HAlign), color, rotate)
	if len(l.Lines) == 1 {
		buf.WriteString(EscapeXML(l.Lines[0]))
	} else {
		for i, line := range l.Lines {
			if i == 0 {
				fmt.Fprintf(buf, `<tspan x="%.2f">%s</tspan>`, l.X, EscapeXML(line))
			} else {
				fmt.Fprintf(buf, `<tspan x="%.2f" dy="%.2f">%s</tspan>`, l.X, l.LineHeight, EscapeXML(line))
			}
		}
	}
	buf.WriteString("</text>\n")
}
