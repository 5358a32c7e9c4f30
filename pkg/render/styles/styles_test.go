package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestEscapeXML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a < b", "a &lt; b"},
		{"a & b", "a &amp; b"},
		{"Caffè", "Caffè"},
	}
	for _, tt := range tests {
		if got := EscapeXML(tt.in); got != tt.want {
			t.Errorf("EscapeXML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAnchorFor(t *testing.T) {
	tests := []struct {
		halign string
		want   string
	}{
		{"left", "start"},
		{"right", "end"},
		{"center", "middle"},
		{"", "middle"},
	}
	for _, tt := range tests {
		if got := anchorFor(tt.halign); got != tt.want {
			t.Errorf("anchorFor(%q) = %q, want %q", tt.halign, got, tt.want)
		}
	}
}

func TestFirstBaseline(t *testing.T) {
	// One line, size 10, anchored at y=100.
	if got := firstBaseline(100, 10, 12, 1, "top"); got != 108 {
		t.Errorf("top baseline = %g, want 108", got)
	}
	if got := firstBaseline(100, 10, 12, 1, "bottom"); got != 98 {
		t.Errorf("bottom baseline = %g, want 98", got)
	}
	if got := firstBaseline(100, 10, 12, 1, "center"); got != 103 {
		t.Errorf("center baseline = %g, want 103", got)
	}

	// Three lines occupy 2*lineHeight + size = 34.
	if got := firstBaseline(100, 10, 12, 3, "bottom"); got != 100-34+8 {
		t.Errorf("multi-line bottom baseline = %g, want 74", got)
	}
}

func TestCategoricalColors(t *testing.T) {
	colors := CategoricalColors([]string{"a", "b", "a", "", "#ff0000", "c"})

	if colors["a"] != Palette[0] {
		t.Errorf("colors[a] = %q, want %q", colors["a"], Palette[0])
	}
	if colors["b"] != Palette[1] {
		t.Errorf("colors[b] = %q, want %q", colors["b"], Palette[1])
	}
	// Literal colors map to themselves and do not consume a palette slot.
	if colors["#ff0000"] != "#ff0000" {
		t.Errorf("colors[#ff0000] = %q", colors["#ff0000"])
	}
	if colors["c"] != Palette[2] {
		t.Errorf("colors[c] = %q, want %q", colors["c"], Palette[2])
	}
	if _, ok := colors[""]; ok {
		t.Error("empty value should not be assigned a color")
	}
}

func TestNumericColors(t *testing.T) {
	ramp := NumericColors([]float64{0, 5, 10})

	if got := ramp(0); got != "#dbe9f6" {
		t.Errorf("ramp(0) = %q, want low endpoint", got)
	}
	if got := ramp(10); got != "#08306b" {
		t.Errorf("ramp(10) = %q, want high endpoint", got)
	}
	mid := ramp(5)
	if mid == ramp(0) || mid == ramp(10) {
		t.Errorf("ramp(5) = %q, want an intermediate color", mid)
	}

	// A constant series maps everything to the high end.
	flat := NumericColors([]float64{3, 3})
	if got := flat(3); got != "#08306b" {
		t.Errorf("flat ramp = %q, want high endpoint", got)
	}
}

func TestResolveFills(t *testing.T) {
	// All-numeric values use the sequential ramp.
	numeric := ResolveFills([]string{"1", "2", "3"})
	if numeric["1"] != "#dbe9f6" || numeric["3"] != "#08306b" {
		t.Errorf("numeric fills = %v", numeric)
	}

	// Any non-numeric value switches to categorical assignment.
	cat := ResolveFills([]string{"1", "west"})
	if cat["1"] != Palette[0] || cat["west"] != Palette[1] {
		t.Errorf("categorical fills = %v", cat)
	}
}

func TestSimpleRenderTile(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderTile(&buf, Tile{ID: "North/Oslo", X: 1, Y: 2, W: 30, H: 40, Leaf: true, Fill: "#abc"})
	out := buf.String()

	if !strings.Contains(out, `id="tile-North/Oslo"`) {
		t.Errorf("tile id missing: %s", out)
	}
	if !strings.Contains(out, `fill="#abc"`) {
		t.Errorf("fill missing: %s", out)
	}

	buf.Reset()
	Simple{}.RenderTile(&buf, Tile{ID: "North", Leaf: false})
	if !strings.Contains(buf.String(), `fill="none"`) {
		t.Errorf("group frame should default to no fill: %s", buf.String())
	}
}

func TestSimpleRenderLabel(t *testing.T) {
	tile := Tile{ID: "North"}

	var buf bytes.Buffer
	Simple{}.RenderLabel(&buf, tile, Label{
		Lines: []string{"Hello"}, SizePx: 12, LineHeight: 14.4, X: 50, Y: 20,
		HAlign: "center", VAlign: "top",
	})
	out := buf.String()
	if !strings.Contains(out, ">Hello</text>") {
		t.Errorf("single line should render without tspans: %s", out)
	}
	if !strings.Contains(out, `text-anchor="middle"`) {
		t.Errorf("anchor missing: %s", out)
	}

	buf.Reset()
	Simple{}.RenderLabel(&buf, tile, Label{
		Lines: []string{"Hello", "World"}, SizePx: 12, LineHeight: 14.4, X: 50, Y: 20,
	})
	if got := strings.Count(buf.String(), "<tspan"); got != 2 {
		t.Errorf("tspan count = %d, want 2", got)
	}
	if !strings.Contains(buf.String(), `dy="14.40"`) {
		t.Errorf("line advance missing: %s", buf.String())
	}

	buf.Reset()
	Simple{}.RenderLabel(&buf, tile, Label{})
	if buf.Len() != 0 {
		t.Errorf("empty label should render nothing: %s", buf.String())
	}
}
