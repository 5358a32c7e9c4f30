package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
// Flag values are merged on top of an optional TOML settings file, so the
// file can carry per-level frame styling that has no flag equivalent.
type renderOpts struct {
	output      string    // output file path (or base path for multiple formats)
	settings    string    // TOML settings file
	area        string    // weight column
	areaConst   float64   // constant weight per row instead of a column
	labels      string    // label column
	fill        string    // fill column
	levels      string    // comma-separated hierarchy columns, root first
	width       float64   // layout box width in data units
	height      float64   // layout box height in data units
	pad         []float64 // tile padding: scalar, (x,y), or (l,r,t,b)
	split       bool      // equal-weight root slices
	vizType     string    // visualization type: "treemap" or "tree"
	style       string    // visual style: "simple" or "mono"
	font        string    // label font family
	fontSize    float64   // base font size in points
	dpi         float64   // raster resolution
	top         bool      // origin at the top-left instead of bottom-left
	scale       float64   // PNG raster scale
	pixelWidth  float64   // output width in pixels
	noLabels    bool      // suppress leaf labels
	reflow      bool      // allow multi-line label wrapping
	grow        bool      // allow labels to grow beyond the base size
	place       string    // label placement inside the tile
	rotation    float64   // label rotation in degrees
	minFontsize float64   // lower clamp for fitted sizes
	maxFontsize float64   // upper clamp for fitted sizes
	noCache     bool      // disable the pipeline cache
	refresh     bool      // recompute even when cached
}

// renderCommand creates the render command for generating treemap outputs.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a CSV file as a treemap",
		Long: `Render reads a CSV file, aggregates the rows into a hierarchy, computes a
squarified treemap layout, and writes the result in one or more formats.

The weight of each tile comes from --area (a numeric column) or --area-const
(the same constant for every row). The hierarchy comes from --levels, a
comma-separated list of columns ordered root first.

Per-level frame styling (stroke, padding, label settings for inner levels)
cannot be expressed as flags; use a TOML settings file via --settings.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) > 0 {
				input = args[0]
			}
			popts, err := buildOptions(cmd, input, &opts, parseFormats(formatsStr))
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd, opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()
			return runRender(cmd.Context(), runner, popts, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.settings, "settings", "s", "", "TOML settings file")
	cmd.Flags().StringVar(&opts.area, "area", "", "column holding tile weights")
	cmd.Flags().Float64Var(&opts.areaConst, "area-const", 0, "constant weight per row instead of a column")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "column holding tile labels")
	cmd.Flags().StringVar(&opts.fill, "fill", "", "column holding tile fill values")
	cmd.Flags().StringVar(&opts.levels, "levels", "", "hierarchy columns, root first (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "layout box width in data units")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "layout box height in data units")
	cmd.Flags().Float64SliceVar(&opts.pad, "pad", nil, "tile padding: scalar, x,y or l,r,t,b")
	cmd.Flags().BoolVar(&opts.split, "split", false, "give every root group an equal share")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", "", "visualization type: treemap (default), tree")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().StringVar(&opts.style, "style", "", "visual style: simple (default), mono")
	cmd.Flags().StringVar(&opts.font, "font", "", "label font family")
	cmd.Flags().Float64Var(&opts.fontSize, "fontsize", 0, "base label font size in points")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "raster resolution in dots per inch")
	cmd.Flags().BoolVar(&opts.top, "top", false, "place the origin at the top-left")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG raster scale factor")
	cmd.Flags().Float64Var(&opts.pixelWidth, "pixel-width", 0, "output width in pixels")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "suppress leaf labels")
	cmd.Flags().BoolVar(&opts.reflow, "reflow", false, "allow labels to wrap onto multiple lines")
	cmd.Flags().BoolVar(&opts.grow, "grow", false, "allow labels to grow beyond the base size")
	cmd.Flags().StringVar(&opts.place, "place", "", "label placement: center, top left, bottom right, ...")
	cmd.Flags().Float64Var(&opts.rotation, "rotation", 0, "label rotation in degrees")
	cmd.Flags().Float64Var(&opts.minFontsize, "min-fontsize", 0, "lower clamp for fitted label sizes")
	cmd.Flags().Float64Var(&opts.maxFontsize, "max-fontsize", 0, "upper clamp for fitted label sizes")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute all stages even when cached")
	cmd.Flags().String("redis", "", "Redis address for a shared cache (host:port)")

	return cmd
}

// buildOptions merges the settings file, flags, and the positional input
// into pipeline options. Flags that were set explicitly win over the file.
func buildOptions(cmd *cobra.Command, input string, opts *renderOpts, formats []string) (pipeline.Options, error) {
	popts := pipeline.Options{}
	if opts.settings != "" {
		loaded, err := loadSettings(opts.settings)
		if err != nil {
			return popts, err
		}
		popts = loaded
	}

	if input != "" {
		popts.Input = input
	}
	if popts.Input == "" {
		return popts, fmt.Errorf("an input file is required (argument or settings file)")
	}

	setString := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	setFloat := func(name string, dst *float64, v float64) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v bool) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}

	setString("area", &popts.Area, opts.area)
	setFloat("area-const", &popts.AreaConst, opts.areaConst)
	setString("labels", &popts.Labels, opts.labels)
	setString("fill", &popts.Fill, opts.fill)
	if cmd.Flags().Changed("levels") {
		popts.Levels = parseList(opts.levels)
	}
	setFloat("width", &popts.Width, opts.width)
	setFloat("height", &popts.Height, opts.height)
	if cmd.Flags().Changed("pad") {
		popts.Pad = opts.pad
	}
	setBool("split", &popts.Split, opts.split)
	setString("type", &popts.VizType, opts.vizType)
	setString("style", &popts.Style, opts.style)
	setString("font", &popts.Font, opts.font)
	setFloat("fontsize", &popts.FontSize, opts.fontSize)
	setFloat("dpi", &popts.DPI, opts.dpi)
	setBool("top", &popts.Top, opts.top)
	setFloat("scale", &popts.Scale, opts.scale)
	setFloat("pixel-width", &popts.PixelWidth, opts.pixelWidth)
	if cmd.Flags().Changed("format") || len(popts.Formats) == 0 {
		popts.Formats = formats
	}
	popts.Refresh = opts.refresh

	if t := textFromFlags(cmd, opts); t != nil {
		if popts.Text == nil {
			popts.Text = t
		} else {
			mergeText(popts.Text, cmd, opts)
		}
	}
	return popts, nil
}

// textFromFlags builds leaf label settings when any label flag was given.
func textFromFlags(cmd *cobra.Command, opts *renderOpts) *pipeline.TextOptions {
	if !anyChanged(cmd, "no-labels", "reflow", "grow", "place", "rotation", "min-fontsize", "max-fontsize") {
		return nil
	}
	t := &pipeline.TextOptions{}
	mergeText(t, cmd, opts)
	return t
}

// mergeText overrides individual text settings from explicitly-set flags.
func mergeText(t *pipeline.TextOptions, cmd *cobra.Command, opts *renderOpts) {
	if cmd.Flags().Changed("no-labels") {
		t.Hide = opts.noLabels
	}
	if cmd.Flags().Changed("reflow") {
		t.Reflow = opts.reflow
	}
	if cmd.Flags().Changed("grow") {
		t.Grow = opts.grow
	}
	if cmd.Flags().Changed("place") {
		t.Place = opts.place
	}
	if cmd.Flags().Changed("rotation") {
		t.Rotation = opts.rotation
	}
	if cmd.Flags().Changed("min-fontsize") {
		t.MinFontsize = opts.minFontsize
	}
	if cmd.Flags().Changed("max-fontsize") {
		t.MaxFontsize = opts.maxFontsize
	}
}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, name := range names {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// runRender executes the pipeline and writes every artifact to disk.
func runRender(ctx context.Context, runner *pipeline.Runner, popts pipeline.Options, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	popts.Logger = logger

	prog := newProgress(logger)
	spin := newSpinner(ctx, fmt.Sprintf("Rendering %s", popts.Input))
	spin.start()
	result, err := runner.Execute(ctx, popts)
	spin.stop()
	if err != nil {
		printError("Render failed: %v", err)
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d format(s)", len(result.Artifacts)))

	base := basePath(opts.output, popts.Input)
	single := len(result.Artifacts) == 1 && opts.output != "" && filepath.Ext(opts.output) != ""

	printSuccess("Rendered %s", popts.Input)
	for _, format := range popts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if single {
			path = opts.output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.RowCount, result.Stats.GroupCount, result.CacheInfo.RenderHit)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, ...), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	switch strings.TrimPrefix(ext, ".") {
	case pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON:
		return strings.TrimSuffix(output, ext)
	}
	return output
}
