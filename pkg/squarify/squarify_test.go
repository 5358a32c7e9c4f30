package squarify

import (
	"math"
	"sort"
	"testing"

	"github.com/matzehuels/mosaic/pkg/geom"
)

const tol = 1e-9

// rectEq compares rectangles componentwise within tol.
func rectEq(a, b geom.Rect) bool {
	return math.Abs(a.X-b.X) <= tol &&
		math.Abs(a.Y-b.Y) <= tol &&
		math.Abs(a.DX-b.DX) <= tol &&
		math.Abs(a.DY-b.DY) <= tol
}

func TestNormalize(t *testing.T) {
	got := Normalize([]float64{3, 1}, 10, 10)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if math.Abs(got[0]-75) > tol || math.Abs(got[1]-25) > tol {
		t.Errorf("Normalize = %v, want [75 25]", got)
	}

	var total float64
	for _, v := range got {
		total += v
	}
	if math.Abs(total-100) > tol {
		t.Errorf("normalized sum = %v, want box area 100", total)
	}
}

func TestNormalizeZeroTotal(t *testing.T) {
	got := Normalize([]float64{0, 0}, 10, 10)
	for i, v := range got {
		if v != 0 {
			t.Errorf("Normalize zero total [%d] = %v, want 0", i, v)
		}
	}
}

func TestPackEmpty(t *testing.T) {
	if got := Pack(nil, 0, 0, 10, 10); got != nil {
		t.Errorf("Pack(nil) = %v, want nil", got)
	}
}

func TestPackSingle(t *testing.T) {
	rects := Pack([]float64{100}, 0, 0, 10, 10)
	if len(rects) != 1 {
		t.Fatalf("len = %d, want 1", len(rects))
	}
	want := geom.Rect{X: 0, Y: 0, DX: 10, DY: 10}
	if !rectEq(rects[0], want) {
		t.Errorf("single rect = %+v, want %+v", rects[0], want)
	}
}

// Worked example from the Bruls et al. paper: weights 6,6,4,3,2,2,1 in
// a 6x4 box.
func TestPackPaperExample(t *testing.T) {
	sizes := []float64{6, 6, 4, 3, 2, 2, 1}
	rects := Pack(Normalize(sizes, 6, 4), 0, 0, 6, 4)

	if len(rects) != len(sizes) {
		t.Fatalf("len = %d, want %d", len(rects), len(sizes))
	}

	assertTiling(t, rects, geom.Rect{DX: 6, DY: 4})

	// Areas stay proportional to the weights.
	for i, r := range rects {
		if math.Abs(r.Area()-sizes[i]) > tol {
			t.Errorf("rect %d area = %v, want %v", i, r.Area(), sizes[i])
		}
	}

	// The first row holds the two 6s in a column of width 3.
	if math.Abs(rects[0].DX-3) > tol || math.Abs(rects[0].DY-2) > tol {
		t.Errorf("first rect = %+v, want 3x2", rects[0])
	}
	if math.Abs(rects[1].DX-3) > tol || math.Abs(rects[1].DY-2) > tol {
		t.Errorf("second rect = %+v, want 3x2", rects[1])
	}
}

func TestPackPreservesOrder(t *testing.T) {
	sizes := Normalize([]float64{5, 4, 3, 2, 1}, 10, 10)
	rects := Pack(sizes, 0, 0, 10, 10)

	for i, r := range rects {
		if math.Abs(r.Area()-sizes[i]) > tol {
			t.Errorf("rect %d area = %v, want %v (order not preserved)", i, r.Area(), sizes[i])
		}
	}
}

func TestPackTallBox(t *testing.T) {
	// A portrait box starts with a horizontal row at the bottom.
	sizes := Normalize([]float64{1, 1}, 4, 10)
	rects := Pack(sizes, 0, 0, 4, 10)

	assertTiling(t, rects, geom.Rect{DX: 4, DY: 10})
	if math.Abs(rects[0].Y-rects[1].Y) > tol {
		t.Errorf("tall box should place the first row side by side, got %+v", rects)
	}
}

func TestPackOffsetOrigin(t *testing.T) {
	box := geom.Rect{X: 5, Y: 7, DX: 8, DY: 6}
	sizes := Normalize([]float64{3, 2, 1}, box.DX, box.DY)
	rects := Pack(sizes, box.X, box.Y, box.DX, box.DY)

	assertTiling(t, rects, box)
}

func TestPackPadded(t *testing.T) {
	sizes := Normalize([]float64{1, 1, 1, 1}, 100, 100)
	padded := PackPadded(sizes, 0, 0, 100, 100)
	plain := Pack(sizes, 0, 0, 100, 100)

	for i := range padded {
		if math.Abs(padded[i].DX-(plain[i].DX-2)) > tol {
			t.Errorf("rect %d DX = %v, want %v", i, padded[i].DX, plain[i].DX-2)
		}
		if math.Abs(padded[i].DY-(plain[i].DY-2)) > tol {
			t.Errorf("rect %d DY = %v, want %v", i, padded[i].DY, plain[i].DY-2)
		}
		if math.Abs(padded[i].X-(plain[i].X+1)) > tol {
			t.Errorf("rect %d X = %v, want %v", i, padded[i].X, plain[i].X+1)
		}
	}

	// No two padded rects touch.
	for i := range padded {
		for j := i + 1; j < len(padded); j++ {
			if padded[i].Overlaps(padded[j], tol) {
				t.Errorf("padded rects %d and %d overlap", i, j)
			}
		}
	}
}

func TestPackPaddedTinyRects(t *testing.T) {
	// Rects with an extent of 2 or less keep that axis untouched.
	sizes := Normalize([]float64{1, 1}, 3, 1)
	rects := PackPadded(sizes, 0, 0, 3, 1)

	for i, r := range rects {
		if r.DY != 1 {
			t.Errorf("rect %d DY = %v, want 1 (no vertical inset)", i, r.DY)
		}
	}
}

// assertTiling checks that rects stay inside box, cover its area, and
// do not overlap each other.
func assertTiling(t *testing.T, rects []geom.Rect, box geom.Rect) {
	t.Helper()

	var covered float64
	for i, r := range rects {
		if !box.Contains(r, 1e-6) {
			t.Errorf("rect %d (%+v) escapes box %+v", i, r, box)
		}
		covered += r.Area()
		for j := i + 1; j < len(rects); j++ {
			if r.Overlaps(rects[j], 1e-6) {
				t.Errorf("rects %d and %d overlap", i, j)
			}
		}
	}
	if math.Abs(covered-box.Area()) > 1e-6 {
		t.Errorf("covered area = %v, want %v", covered, box.Area())
	}
}

func TestWorstImprovesWithinRow(t *testing.T) {
	// Sanity check on the row-growing criterion: a square box with two
	// equal weights prefers the pair in one row over a lone stripe.
	sizes := Normalize([]float64{1, 1}, 10, 10)
	sort.Sort(sort.Reverse(sort.Float64Slice(sizes)))

	lone := worst(sizes[:1], 0, 0, 10, 10)
	pair := worst(sizes, 0, 0, 10, 10)
	if pair > lone {
		t.Errorf("pair ratio %v should not be worse than lone stripe %v", pair, lone)
	}
}
