package treemap

import (
	"math"
	"testing"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
)

func cityItems() []Item {
	return []Item{
		{Levels: []string{"North", "Oslo"}, Area: 700, Fill: "blue"},
		{Levels: []string{"North", "Bergen"}, Area: 300},
		{Levels: []string{"South", "Rome"}, Area: 2800},
		{Levels: []string{"South", "Naples"}, Area: 960},
		{Levels: []string{"North", "Oslo"}, Area: 50, Fill: "red"},
	}
}

func TestBuild(t *testing.T) {
	tree, err := Build(cityItems(), []string{"region", "city"})
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	if tree.Depth() != 2 {
		t.Fatalf("Depth() = %d, want 2", tree.Depth())
	}
	if tree.Levels[0].Name != "region" || tree.Levels[1].Name != "city" {
		t.Errorf("level names = %q, %q", tree.Levels[0].Name, tree.Levels[1].Name)
	}

	regions := tree.Levels[0].Groups
	if len(regions) != 2 {
		t.Fatalf("region count = %d, want 2", len(regions))
	}
	// First-appearance order.
	if regions[0].Name() != "North" || regions[1].Name() != "South" {
		t.Errorf("region order = %q, %q, want North, South", regions[0].Name(), regions[1].Name())
	}
	// Areas are summed across rows, including the duplicate Oslo row.
	if regions[0].Area != 1050 {
		t.Errorf("North area = %v, want 1050", regions[0].Area)
	}
	if regions[1].Area != 3760 {
		t.Errorf("South area = %v, want 3760", regions[1].Area)
	}

	cities := tree.Leaf().Groups
	if len(cities) != 4 {
		t.Fatalf("city count = %d, want 4", len(cities))
	}
	oslo := cities[0]
	if oslo.Area != 750 {
		t.Errorf("Oslo area = %v, want 750 (duplicate rows merged)", oslo.Area)
	}
	// The first row's fill wins for a merged group.
	if oslo.Fill != "blue" {
		t.Errorf("Oslo fill = %q, want blue", oslo.Fill)
	}
}

func TestBuildLevelMismatch(t *testing.T) {
	items := []Item{{Levels: []string{"only one"}, Area: 1}}
	_, err := Build(items, []string{"a", "b"})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Build() error = %v, want INVALID_INPUT", err)
	}
}

func TestBuildFlat(t *testing.T) {
	items := []Item{
		{Area: 3, Label: "a"},
		{Area: 1, Label: "b"},
	}
	tree, err := Build(items, nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if tree.Depth() != 1 {
		t.Fatalf("flat Depth() = %d, want 1", tree.Depth())
	}
	groups := tree.Leaf().Groups
	if len(groups) != 2 {
		t.Fatalf("flat group count = %d, want 2", len(groups))
	}
	// Flat rows never merge, even with equal labels.
	if groups[0].Key() == groups[1].Key() {
		t.Error("flat groups should have distinct keys")
	}
}

func TestGroupKeys(t *testing.T) {
	g := &Group{Path: []string{"South", "Rome"}, Label: "Roma"}

	if g.Name() != "Rome" {
		t.Errorf("Name() = %q, want Rome", g.Name())
	}
	if g.ID() != "South/Rome" {
		t.Errorf("ID() = %q, want South/Rome", g.ID())
	}
	if g.DisplayLabel() != "Roma" {
		t.Errorf("DisplayLabel() = %q, want explicit label", g.DisplayLabel())
	}

	parent := &Group{Path: []string{"South"}}
	if g.ParentKey() != parent.Key() {
		t.Errorf("ParentKey() = %q, want %q", g.ParentKey(), parent.Key())
	}
	if parent.ParentKey() != "" {
		t.Errorf("root ParentKey() = %q, want empty", parent.ParentKey())
	}
	if parent.DisplayLabel() != "South" {
		t.Errorf("DisplayLabel() fallback = %q, want South", parent.DisplayLabel())
	}
}

func TestLayout(t *testing.T) {
	tree, err := Build(cityItems(), []string{"region", "city"})
	if err != nil {
		t.Fatal(err)
	}
	box := geom.Rect{DX: 100, DY: 100}
	if err := Layout(tree, LayoutOptions{Box: box}); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	// Root groups tile the box proportionally to their weight.
	var covered float64
	for _, g := range tree.Levels[0].Groups {
		if !box.Contains(g.Rect, 1e-6) {
			t.Errorf("root group %s escapes the box: %+v", g.ID(), g.Rect)
		}
		covered += g.Rect.Area()
	}
	if math.Abs(covered-box.Area()) > 1e-6 {
		t.Errorf("root coverage = %v, want %v", covered, box.Area())
	}

	total := 1050.0 + 3760.0
	north := tree.Levels[0].Groups[0]
	wantArea := 1050.0 / total * box.Area()
	if math.Abs(north.Rect.Area()-wantArea) > 1e-6 {
		t.Errorf("North area = %v, want %v", north.Rect.Area(), wantArea)
	}

	// Children stay inside their parent.
	byKey := map[string]*Group{}
	for _, g := range tree.Levels[0].Groups {
		byKey[g.Key()] = g
	}
	for _, g := range tree.Leaf().Groups {
		parent := byKey[g.ParentKey()]
		if parent == nil {
			t.Fatalf("no parent for %s", g.ID())
		}
		if !parent.Rect.Contains(g.Rect, 1e-6) {
			t.Errorf("child %s (%+v) escapes parent %+v", g.ID(), g.Rect, parent.Rect)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	layoutOnce := func() []geom.Rect {
		tree, err := Build(cityItems(), []string{"region", "city"})
		if err != nil {
			t.Fatal(err)
		}
		if err := Layout(tree, LayoutOptions{Box: geom.Rect{DX: 100, DY: 60}}); err != nil {
			t.Fatal(err)
		}
		var rects []geom.Rect
		for _, g := range tree.Leaf().Groups {
			rects = append(rects, g.Rect)
		}
		return rects
	}

	a, b := layoutOnce(), layoutOnce()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("layout not deterministic at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestLayoutPad(t *testing.T) {
	tree, err := Build(cityItems(), []string{"region", "city"})
	if err != nil {
		t.Fatal(err)
	}
	pad := geom.PadUniform(2)
	if err := Layout(tree, LayoutOptions{Box: geom.Rect{DX: 100, DY: 100}, Pad: pad}); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	byKey := map[string]*Group{}
	for _, g := range tree.Levels[0].Groups {
		byKey[g.Key()] = g
	}
	for _, g := range tree.Leaf().Groups {
		inner := byKey[g.ParentKey()].Rect.Shrink(pad)
		if !inner.Contains(g.Rect, 1e-6) {
			t.Errorf("child %s not inside the padded parent box", g.ID())
		}
	}
}

func TestLayoutPerLevelPad(t *testing.T) {
	tree, err := Build(cityItems(), []string{"region", "city"})
	if err != nil {
		t.Fatal(err)
	}
	opts := LayoutOptions{
		Box:  geom.Rect{DX: 100, DY: 100},
		Pad:  geom.PadUniform(10),
		Pads: map[string]geom.Pad{"city": geom.PadUniform(1)},
	}
	if err := Layout(tree, opts); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	// The override applies: children are allowed within 1 unit of the
	// parent edge, closer than the 10-unit default would permit.
	byKey := map[string]*Group{}
	for _, g := range tree.Levels[0].Groups {
		byKey[g.Key()] = g
	}
	closest := math.Inf(1)
	for _, g := range tree.Leaf().Groups {
		parent := byKey[g.ParentKey()]
		if d := g.Rect.X - parent.Rect.X; d < closest {
			closest = d
		}
	}
	if closest > 5 {
		t.Errorf("closest child offset = %v, want the 1-unit override to apply", closest)
	}
}

func TestLayoutErrors(t *testing.T) {
	tree, err := Build(cityItems(), []string{"region", "city"})
	if err != nil {
		t.Fatal(err)
	}

	err = Layout(tree, LayoutOptions{Box: geom.Rect{DX: -5, DY: 100}})
	if !errors.Is(err, errors.ErrCodeInvalidBox) {
		t.Errorf("negative-width box error = %v, want INVALID_BOX", err)
	}

	err = Layout(tree, LayoutOptions{
		Box: geom.Rect{DX: 100, DY: 100},
		Pad: geom.Pad{Left: -1},
	})
	if !errors.Is(err, errors.ErrCodeInvalidPad) {
		t.Errorf("negative pad error = %v, want INVALID_PAD", err)
	}

	// A pad larger than the smallest parent leaves a negative inner box.
	err = Layout(tree, LayoutOptions{
		Box: geom.Rect{DX: 100, DY: 100},
		Pad: geom.PadUniform(40),
	})
	if !errors.Is(err, errors.ErrCodeInvalidPad) {
		t.Errorf("oversized pad error = %v, want INVALID_PAD", err)
	}
}

func TestLayoutSplit(t *testing.T) {
	tree, err := Build(cityItems(), []string{"region", "city"})
	if err != nil {
		t.Fatal(err)
	}
	if err := Layout(tree, LayoutOptions{Box: geom.Rect{DX: 100, DY: 100}, Split: true}); err != nil {
		t.Fatalf("Layout() error: %v", err)
	}

	regions := tree.Levels[0].Groups
	if math.Abs(regions[0].Rect.Area()-regions[1].Rect.Area()) > 1e-6 {
		t.Errorf("split areas differ: %v vs %v",
			regions[0].Rect.Area(), regions[1].Rect.Area())
	}
	// The padded packer leaves a gap between the slices.
	if regions[0].Rect.Overlaps(regions[1].Rect, 1e-9) {
		t.Error("split slices should not overlap")
	}
}
