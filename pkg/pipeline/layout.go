package pipeline

import (
	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout aggregates items into a hierarchy and assigns every
// group its tile rectangle. This is the unified entry point for
// producing serializable layout data; the tree visualization reuses
// the same aggregation without needing the rectangles.
func GenerateLayout(items []treemap.Item, opts Options) (*treemap.Tree, error) {
	tree, err := treemap.Build(items, opts.Levels)
	if err != nil {
		return nil, err
	}

	pad, err := opts.padFor(nil)
	if err != nil {
		return nil, err
	}
	pads, err := levelPads(opts)
	if err != nil {
		return nil, err
	}

	layoutOpts := treemap.LayoutOptions{
		Box:   geom.Rect{DX: opts.Width, DY: opts.Height},
		Split: opts.Split,
		Pad:   pad,
		Pads:  pads,
	}
	if err := treemap.Layout(tree, layoutOpts); err != nil {
		return nil, err
	}
	return tree, nil
}

// levelPads collects per-level padding overrides from the frame
// configuration.
func levelPads(opts Options) (map[string]geom.Pad, error) {
	if len(opts.LevelFrames) == 0 {
		return nil, nil
	}
	pads := make(map[string]geom.Pad, len(opts.LevelFrames))
	for name, frame := range opts.LevelFrames {
		if frame.Pad == nil {
			continue
		}
		p, err := geom.ParsePad(frame.Pad)
		if err != nil {
			return nil, err
		}
		pads[name] = p
	}
	return pads, nil
}
