package render

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/textfit"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// charMetrics measures every rune as a square of the font size so test
// expectations can be computed by hand.
type charMetrics struct{}

func (charMetrics) Measure(text string, font textfit.Font, dpi float64) (float64, float64, error) {
	n := float64(utf8.RuneCountInString(text))
	return n * font.Size, font.Size, nil
}

func laidOutTree(t *testing.T) *treemap.Tree {
	t.Helper()
	items := []treemap.Item{
		{Levels: []string{"North", "Oslo"}, Area: 700, Fill: "blue"},
		{Levels: []string{"North", "Bergen"}, Area: 300, Fill: "green"},
		{Levels: []string{"South", "Rome"}, Area: 2800, Fill: "red"},
	}
	tree, err := treemap.Build(items, []string{"region", "city"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	err = treemap.Layout(tree, treemap.LayoutOptions{
		Box: geom.Rect{DX: 100, DY: 100},
	})
	if err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	return tree
}

func TestRenderSVG(t *testing.T) {
	tree := laidOutTree(t)

	out, err := RenderSVG(tree, WithMetrics(charMetrics{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	svg := string(out)

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("output does not start with an svg element: %.80s", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output does not end with </svg>")
	}
	if !strings.Contains(svg, `width="960" height="960"`) {
		t.Errorf("default size missing from output: %.200s", svg)
	}
	for _, id := range []string{"North/Oslo", "North/Bergen", "South/Rome"} {
		if !strings.Contains(svg, `id="tile-`+id+`"`) {
			t.Errorf("leaf tile %q missing", id)
		}
	}
	// Region frames are not drawn unless requested.
	if strings.Contains(svg, `id="tile-North"`) {
		t.Error("unrequested group frame was drawn")
	}
}

func TestRenderSVGLevelFrames(t *testing.T) {
	tree := laidOutTree(t)

	out, err := RenderSVG(tree,
		WithMetrics(charMetrics{}),
		WithLevelFrames("region",
			TileOptions{Stroke: "#000"},
			LabelOptions{Show: true, Place: geom.Place{H: geom.Left, V: geom.Top}, XMax: 1, YMax: 1}),
	)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	svg := string(out)

	if !strings.Contains(svg, `id="tile-North"`) || !strings.Contains(svg, `id="tile-South"`) {
		t.Error("requested group frames missing")
	}
	if !strings.Contains(svg, `stroke="#000"`) {
		t.Error("frame stroke override missing")
	}
	if !strings.Contains(svg, `data-tile="North"`) {
		t.Error("group label missing")
	}
	// Frames draw after leaf tiles so their outlines stay on top.
	if strings.Index(svg, `id="tile-North"`) < strings.Index(svg, `id="tile-North/Oslo"`) {
		t.Error("group frame drawn before its leaf tiles")
	}
}

func TestRenderSVGTopOrigin(t *testing.T) {
	tree := laidOutTree(t)

	flipped, err := RenderSVG(tree, WithMetrics(charMetrics{}), WithSize(100, 100))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	top, err := RenderSVG(tree, WithMetrics(charMetrics{}), WithSize(100, 100), WithTop())
	if err != nil {
		t.Fatalf("RenderSVG(top) error = %v", err)
	}
	if string(flipped) == string(top) {
		t.Error("WithTop should change tile y coordinates")
	}
	// With the layout's own y-up origin, a tile at data y=0 lands at the
	// bottom of the image without WithTop and at the top with it.
	if !strings.Contains(string(top), `y="0.00"`) {
		t.Error("expected a tile anchored at y=0 with WithTop")
	}
}

func TestRenderSVGNoLabels(t *testing.T) {
	tree := laidOutTree(t)

	lo := DefaultLabelOptions()
	lo.Show = false
	out, err := RenderSVG(tree, WithMetrics(charMetrics{}), WithLeafLabels(lo))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if strings.Contains(string(out), "<text") {
		t.Error("labels drawn despite Show=false")
	}
}

func TestRenderSVGEmptyTree(t *testing.T) {
	_, err := RenderSVG(nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderSVG(nil) error = %v, want INVALID_INPUT", err)
	}
	_, err = RenderSVG(&treemap.Tree{})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RenderSVG(empty) error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderSVGRotatedReflow(t *testing.T) {
	tree := laidOutTree(t)

	lo := DefaultLabelOptions()
	lo.Reflow = true
	lo.Rotation = 90
	_, err := RenderSVG(tree, WithMetrics(charMetrics{}), WithLeafLabels(lo))
	if !errors.Is(err, errors.ErrCodeUnsupportedReflow) {
		t.Errorf("RenderSVG() error = %v, want UNSUPPORTED_REFLOW", err)
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	items := []treemap.Item{
		{Area: 1, Label: `<b>"bold"</b>`},
		{Area: 1, Label: "plain"},
	}
	tree, err := treemap.Build(items, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if err := treemap.Layout(tree, treemap.LayoutOptions{Box: geom.Rect{DX: 100, DY: 100}}); err != nil {
		t.Fatalf("Layout() error = %v", err)
	}
	out, err := RenderSVG(tree, WithMetrics(charMetrics{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	svg := string(out)
	if strings.Contains(svg, "<b>") {
		t.Error("label markup not escaped")
	}
	if !strings.Contains(svg, "&lt;b&gt;") {
		t.Error("escaped label text missing")
	}
}

func TestRenderJSON(t *testing.T) {
	tree := laidOutTree(t)

	out, err := RenderJSON(tree, 100, 100)
	if err != nil {
		t.Fatalf("RenderJSON() error = %v", err)
	}

	var doc Document
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if doc.NormX != 100 || doc.NormY != 100 {
		t.Errorf("extents = %gx%g, want 100x100", doc.NormX, doc.NormY)
	}
	if len(doc.Levels) != 2 {
		t.Fatalf("len(Levels) = %d, want 2", len(doc.Levels))
	}
	if doc.Levels[0].Name != "region" || doc.Levels[1].Name != "city" {
		t.Errorf("level names = %q, %q", doc.Levels[0].Name, doc.Levels[1].Name)
	}

	var oslo *TileJSON
	for i := range doc.Levels[1].Tiles {
		if doc.Levels[1].Tiles[i].ID == "North/Oslo" {
			oslo = &doc.Levels[1].Tiles[i]
		}
	}
	if oslo == nil {
		t.Fatal("North/Oslo tile missing")
	}
	if oslo.Area != 700 {
		t.Errorf("Area = %g, want 700", oslo.Area)
	}
	if len(oslo.Path) != 2 || oslo.Path[0] != "North" {
		t.Errorf("Path = %v", oslo.Path)
	}
	if oslo.DX <= 0 || oslo.DY <= 0 {
		t.Errorf("tile has no extent: %+v", oslo)
	}
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"svg", "SVG", "png", "pdf", "json"} {
		if _, err := ParseFormat(s); err != nil {
			t.Errorf("ParseFormat(%q) error = %v", s, err)
		}
	}
	_, err := ParseFormat("gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range []string{"", "simple", "mono", "Mono"} {
		if _, err := ParseStyle(s); err != nil {
			t.Errorf("ParseStyle(%q) error = %v", s, err)
		}
	}
	_, err := ParseStyle("neon")
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("ParseStyle(neon) error = %v, want INVALID_STYLE", err)
	}
}
