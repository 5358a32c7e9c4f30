package styles

import (
	"bytes"
	"fmt"
)

// Mono is a grayscale print style: white tiles, black outlines, no
// color fills. Useful for documents where color carries no meaning.
type Mono struct{}

func (Mono) RenderDefs(buf *bytes.Buffer) {}

func (Mono) RenderTile(buf *bytes.Buffer, t Tile) {
	width := 1.0
	if !t.Leaf {
		width = 2.0
	}
	fmt.Fprintf(buf,
		`  <rect id="tile-%s" class="tile" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white" stroke="black" stroke-width="%.1f"/>`+"\n",
		EscapeXML(t.ID), t.X, t.Y, t.W, t.H, width)
}

func (Mono) RenderLabel(buf *bytes.Buffer, t Tile, l Label) {
	l.Color = "black"
	Simple{}.RenderLabel(buf, t, l)
}
