// Package tree renders the aggregated hierarchy as a node-link
// diagram. This is a structural companion to the treemap itself:
// the same groups, drawn as a tree instead of nested tiles.
package tree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Options configures node-link rendering.
type Options struct {
	// Detailed includes the aggregated area in node labels.
	// When false, only the group name is shown.
	Detailed bool
}

// ToDOT converts a hierarchy to Graphviz DOT format. The resulting DOT
// string can be rendered with [RenderSVG].
func ToDOT(t *treemap.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, level := range t.Levels {
		for _, g := range level.Groups {
			fmt.Fprintf(&buf, "  %q [label=%q];\n", g.ID(), fmtLabel(g, opts.Detailed))
		}
	}

	buf.WriteString("\n")
	byKey := make(map[string]*treemap.Group)
	for _, level := range t.Levels {
		for _, g := range level.Groups {
			byKey[g.Key()] = g
			if parent, ok := byKey[g.ParentKey()]; ok {
				fmt.Fprintf(&buf, "  %q -> %q;\n", parent.ID(), g.ID())
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *treemap.Group, detailed bool) string {
	if !detailed {
		return g.DisplayLabel()
	}
	return fmt.Sprintf("%s\narea: %g", g.DisplayLabel(), g.Area)
}

// RenderSVG renders a DOT graph to SVG using Graphviz. The returned
// bytes can be converted further with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's point-based svg element so the
// document scales like the treemap renderer's output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
