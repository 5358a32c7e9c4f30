// Package styles defines the visual appearance of rendered treemaps.
// A Style turns positioned tiles and fitted labels into SVG fragments;
// the renderer owns geometry and text fitting and calls into the style
// for every element it draws.
package styles

import "bytes"

// Style defines the visual appearance for treemap rendering.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, patterns, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderTile writes the SVG for a single tile rectangle.
	RenderTile(buf *bytes.Buffer, t Tile)
	// RenderLabel writes the SVG for a tile's fitted label text.
	RenderLabel(buf *bytes.Buffer, t Tile, l Label)
}

// Tile contains all data needed to render a single tile. Coordinates
// are in pixels with the origin at the top-left.
type Tile struct {
	ID         string  // group identifier (level path)
	Label      string  // display text
	X, Y, W, H float64 // position and dimensions
	Level      int     // hierarchy depth, 0 = root
	Leaf       bool    // whether this tile belongs to the innermost level
	Fill       string  // resolved fill color ("" for the style default)
	Stroke     string  // resolved stroke color ("" for the style default)
}

// Label is a fitted label ready to draw: the wrapped lines, the pixel
// font size the fit produced, and the anchor the placement policy
// chose.
type Label struct {
	Lines      []string
	SizePx     float64 // font size in pixels
	LineHeight float64 // baseline-to-baseline distance in pixels
	X, Y       float64 // anchor point in pixels
	Rotation   float64 // degrees counterclockwise around the anchor
	HAlign     string  // left | center | right
	VAlign     string  // bottom | center | top
	Color      string  // text color ("" for the style default)
}
