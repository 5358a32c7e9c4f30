package treemap

import (
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/squarify"
)

// LayoutOptions configures a layout pass.
type LayoutOptions struct {
	// Box is the root rectangle, in data coordinates.
	Box geom.Rect

	// Split forces equal weights for the root-level groups and packs
	// them with uniform gaps, so the top slices come out the same size
	// while deeper levels stay area-proportional.
	Split bool

	// Pads maps a level name to the padding applied between that
	// level's groups and their parent rectangles. Levels without an
	// entry fall back to Pad.
	Pads map[string]geom.Pad

	// Pad is the default padding for levels without a Pads entry.
	Pad geom.Pad
}

// Layout assigns an absolute rectangle to every group of the tree.
//
// Root-level weights are normalized to the box area. For every deeper
// level, the direct children of each parent are sorted by weight
// descending (stable), the parent rectangle is shrunk by the level's
// padding, and the children are packed into what remains. Padding is
// applied uniformly to every parent of a level.
//
// A box or padding that fails validation, or a padding that leaves a
// parent with negative extents, aborts the pass before any rectangle
// of that level is written.
func Layout(t *Tree, opts LayoutOptions) error {
	if err := errors.ValidateBox(opts.Box.DX, opts.Box.DY); err != nil {
		return err
	}
	if err := opts.Pad.Validate(); err != nil {
		return err
	}
	for name, p := range opts.Pads {
		if err := p.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPad, err, "level %q", name)
		}
	}

	for li := range t.Levels {
		if li == 0 {
			packRoot(t.Levels[0].Groups, opts.Box, opts.Split)
			continue
		}
		if err := packLevel(t, li, opts); err != nil {
			return err
		}
	}
	return nil
}

// packRoot lays out the root-level groups inside box. With split set,
// every group gets the same weight regardless of its true area and the
// padded packer leaves gaps between the slices.
func packRoot(groups []*Group, box geom.Rect, split bool) {
	sorted := sortedByArea(groups)
	sizes := make([]float64, len(sorted))
	for i, g := range sorted {
		if split {
			sizes[i] = 1
		} else {
			sizes[i] = g.Area
		}
	}
	sizes = squarify.Normalize(sizes, box.DX, box.DY)

	var rects []geom.Rect
	if split {
		rects = squarify.PackPadded(sizes, box.X, box.Y, box.DX, box.DY)
	} else {
		rects = squarify.Pack(sizes, box.X, box.Y, box.DX, box.DY)
	}
	for i, g := range sorted {
		g.Rect = rects[i]
	}
}

// packLevel lays out level li by packing each parent's direct children
// into the parent rectangle shrunk by the level's padding.
func packLevel(t *Tree, li int, opts LayoutOptions) error {
	level := &t.Levels[li]
	parents := t.Levels[li-1].Groups

	pad, ok := opts.Pads[level.Name]
	if !ok {
		pad = opts.Pad
	}

	children := make(map[string][]*Group, len(parents))
	for _, g := range level.Groups {
		pk := g.ParentKey()
		children[pk] = append(children[pk], g)
	}

	for _, parent := range parents {
		kids := children[parent.Key()]
		if len(kids) == 0 {
			continue
		}

		inner := parent.Rect.Shrink(pad)
		if inner.DX < 0 || inner.DY < 0 {
			return errors.New(errors.ErrCodeInvalidPad,
				"pad for level %q leaves a negative box inside group %q (%gx%g)",
				level.Name, parent.ID(), inner.DX, inner.DY)
		}

		sorted := sortedByArea(kids)
		sizes := make([]float64, len(sorted))
		for i, g := range sorted {
			sizes[i] = g.Area
		}
		sizes = squarify.Normalize(sizes, inner.DX, inner.DY)

		rects := squarify.Pack(sizes, inner.X, inner.Y, inner.DX, inner.DY)
		for i, g := range sorted {
			g.Rect = rects[i]
		}
	}
	return nil
}
