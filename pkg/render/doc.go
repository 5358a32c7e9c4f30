// Package render turns laid-out treemaps into output documents.
//
// # Overview
//
// This package contains the rendering pipeline that transforms a
// laid-out hierarchy into visual outputs. It provides:
//
//   - SVG treemap rendering with fitted labels ([RenderSVG])
//   - JSON serialization of the layout ([RenderJSON])
//   - Generic format conversion (SVG to PDF/PNG)
//   - Node-link hierarchy diagrams (in [tree] subpackage)
//
// # SVG Rendering
//
// [RenderSVG] draws tiles level by level: leaf tiles are filled from
// the data's fill column, non-leaf levels are drawn as outline frames
// when enabled with [WithLevelFrames]. Labels are fitted to their
// tiles with [textfit.Engine] and placed per level.
//
//	svg, err := render.RenderSVG(tree,
//		render.WithExtents(100, 100),
//		render.WithLeafLabels(render.DefaultLabelOptions()))
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats
// using the external rsvg-convert tool (from librsvg). These are used
// by both treemap and node-link renderers.
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Node-Link Diagrams
//
// The [tree] subpackage renders the aggregated hierarchy as a
// directed tree using Graphviz. Groups appear as boxes connected by
// parent-child arrows.
//
//	dot := tree.ToDOT(t, tree.Options{})
//	svg, err := tree.RenderSVG(dot)
//
// [tree]: github.com/matzehuels/mosaic/pkg/render/tree
// [textfit.Engine]: github.com/matzehuels/mosaic/pkg/textfit
package render
