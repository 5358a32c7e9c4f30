package pipeline

import (
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/render"
	"github.com/matzehuels/mosaic/pkg/render/tree"
	"github.com/matzehuels/mosaic/pkg/textfit"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// Render generates output artifacts in the requested formats.
func Render(t *treemap.Tree, opts Options) (map[string][]byte, error) {
	if opts.IsTree() {
		return renderTree(t, opts)
	}
	return renderTreemap(t, opts)
}

// renderTreemap generates treemap outputs. SVG is rendered once and
// reused for the raster and PDF conversions.
func renderTreemap(t *treemap.Tree, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)

	var svg []byte
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		svgOpts, err := buildSVGOptions(opts)
		if err != nil {
			return nil, err
		}
		svg, err = render.RenderSVG(t, svgOpts...)
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = render.RenderJSON(t, opts.Width, opts.Height)
		case FormatSVG:
			data, err = needSVG()
		case FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(data, opts.Scale)
			}
		case FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderTree generates node-link outputs for the aggregated hierarchy.
func renderTree(t *treemap.Tree, opts Options) (map[string][]byte, error) {
	dot := tree.ToDOT(t, tree.Options{})

	artifacts := make(map[string][]byte)
	var svg []byte
	needSVG := func() ([]byte, error) {
		if svg != nil {
			return svg, nil
		}
		var err error
		svg, err = tree.RenderSVG(dot)
		return svg, err
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = needSVG()
		case FormatPNG:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPNG(data, opts.Scale)
			}
		case FormatPDF:
			if data, err = needSVG(); err == nil {
				data, err = render.ToPDF(data)
			}
		case FormatJSON:
			data, err = render.RenderJSON(t, opts.Width, opts.Height)
		}

		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// buildSVGOptions assembles renderer options from the pipeline
// configuration.
func buildSVGOptions(opts Options) ([]render.SVGOption, error) {
	style, err := render.ParseStyle(opts.Style)
	if err != nil {
		return nil, err
	}

	svgOpts := []render.SVGOption{
		render.WithStyle(style),
		render.WithExtents(opts.Width, opts.Height),
		render.WithSize(opts.PixelWidth, opts.PixelHeight),
		render.WithDPI(opts.DPI),
		render.WithFont(textfit.Font{Family: opts.Font, Size: opts.FontSize}),
	}
	if opts.Top {
		svgOpts = append(svgOpts, render.WithTop())
	}
	if opts.Metrics != nil {
		svgOpts = append(svgOpts, render.WithMetrics(opts.Metrics))
	}

	leaf, err := labelOptions(opts.Text)
	if err != nil {
		return nil, err
	}
	svgOpts = append(svgOpts, render.WithLeafLabels(leaf))

	for name, frame := range opts.LevelFrames {
		lo, err := labelOptions(frame.Text)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "level %q", name)
		}
		if frame.Text == nil {
			lo.Show = false
		}
		to := render.TileOptions{Fill: frame.Fill, Stroke: frame.Stroke}
		svgOpts = append(svgOpts, render.WithLevelFrames(name, to, lo))
	}

	return svgOpts, nil
}

// labelOptions converts a level's text configuration to renderer label
// options. A nil configuration keeps the defaults.
func labelOptions(t *TextOptions) (render.LabelOptions, error) {
	lo := render.DefaultLabelOptions()
	if t == nil {
		return lo, nil
	}

	lo.Show = !t.Hide
	lo.Reflow = t.Reflow
	lo.Grow = t.Grow
	lo.Rotation = t.Rotation
	lo.MinFontSize = t.MinFontsize
	lo.MaxFontSize = t.MaxFontsize
	lo.Color = t.Color

	if t.Place != "" {
		place, err := geom.ParsePlace(t.Place)
		if err != nil {
			return render.LabelOptions{}, err
		}
		lo.Place = place
	}
	if t.XMax > 0 {
		lo.XMax = t.XMax
	}
	if t.YMax > 0 {
		lo.YMax = t.YMax
	}
	if t.PadX > 0 {
		lo.PadX = t.PadX
	}
	if t.PadY > 0 {
		lo.PadY = t.PadY
	}
	return lo, nil
}
