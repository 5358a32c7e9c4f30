// Package pipeline provides the core rendering pipeline for Mosaic.
//
// This package implements the complete load → layout → render pipeline
// that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and
// avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read the tabular input and select the weight, label, fill,
//     and hierarchy columns
//  2. Layout: Aggregate rows into a hierarchy and compute a tile
//     rectangle for every group
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "cities.csv",
//	    Area:    "population",
//	    Levels:  []string{"region", "city"},
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	items, err := runner.Load(ctx, opts)
//
//	// Layout with existing items
//	tree, err := runner.GenerateLayout(ctx, items, opts)
//
//	// Render with existing tree
//	artifacts, err := runner.Render(ctx, tree, opts)
package pipeline

import (
	"encoding/json"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/mosaic/pkg/cache"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
	"github.com/matzehuels/mosaic/pkg/render"
	"github.com/matzehuels/mosaic/pkg/textfit"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultWidth is the default layout box width in data units.
	DefaultWidth = 100.0

	// DefaultHeight is the default layout box height in data units.
	DefaultHeight = 100.0

	// DefaultPixelWidth is the default output width in pixels.
	DefaultPixelWidth = 960.0

	// DefaultScale is the default raster scale factor for PNG output.
	DefaultScale = 2.0

	// DefaultVizType is the default visualization type.
	DefaultVizType = VizTypeTreemap

	// DefaultStyle is the default visual style.
	DefaultStyle = "simple"
)

// Visualization type constants.
const (
	VizTypeTreemap = "treemap"
	VizTypeTree    = "tree"
)

// Format constants for output formats.
const (
	FormatSVG  = string(render.FormatSVG)
	FormatPNG  = string(render.FormatPNG)
	FormatPDF  = string(render.FormatPDF)
	FormatJSON = string(render.FormatJSON)
)

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTreemap: true,
	VizTypeTree:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// TextOptions configures label fitting for one level.
// This struct supports JSON serialization for API requests.
type TextOptions struct {
	Hide        bool    `json:"hide,omitempty"`
	Reflow      bool    `json:"reflow,omitempty"`
	Grow        bool    `json:"grow,omitempty"`
	Place       string  `json:"place,omitempty"`
	Rotation    float64 `json:"rotation,omitempty"`
	MinFontsize float64 `json:"min_fontsize,omitempty"`
	MaxFontsize float64 `json:"max_fontsize,omitempty"`
	XMax        float64 `json:"xmax,omitempty"`
	YMax        float64 `json:"ymax,omitempty"`
	PadX        float64 `json:"padx,omitempty"`
	PadY        float64 `json:"pady,omitempty"`
	Color       string  `json:"color,omitempty"`
}

// FrameOptions configures how a non-leaf level is drawn.
type FrameOptions struct {
	Fill   string       `json:"fill,omitempty"`
	Stroke string       `json:"stroke,omitempty"`
	Pad    []float64    `json:"pad,omitempty"` // overrides the global pad for this level
	Text   *TextOptions `json:"text,omitempty"`
}

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input     string   `json:"input,omitempty"` // CSV file path
	Data      string   `json:"data,omitempty"`  // raw CSV content (API requests)
	Area      string   `json:"area,omitempty"`  // weight column
	AreaConst float64  `json:"area_const,omitempty"`
	Labels    string   `json:"labels,omitempty"`
	Fill      string   `json:"fill,omitempty"`
	Levels    []string `json:"levels,omitempty"` // hierarchy columns, root first

	// Layout options
	Width  float64   `json:"width,omitempty"`  // layout box width in data units
	Height float64   `json:"height,omitempty"` // layout box height in data units
	Split  bool      `json:"split,omitempty"`  // equal-weight root slices
	Pad    []float64 `json:"pad,omitempty"`    // scalar, (x,y), or (l,r,t,b)

	// Render options
	VizType     string                  `json:"viz_type,omitempty"`
	Formats     []string                `json:"formats,omitempty"`
	Style       string                  `json:"style,omitempty"`
	Font        string                  `json:"font,omitempty"` // font family for labels
	FontSize    float64                 `json:"font_size,omitempty"`
	DPI         float64                 `json:"dpi,omitempty"`
	Top         bool                    `json:"top,omitempty"` // origin at the top-left instead of bottom-left
	PixelWidth  float64                 `json:"pixel_width,omitempty"`
	PixelHeight float64                 `json:"pixel_height,omitempty"`
	Scale       float64                 `json:"scale,omitempty"` // PNG raster scale
	Text        *TextOptions            `json:"text,omitempty"`  // leaf label settings
	LevelFrames map[string]FrameOptions `json:"level_frames,omitempty"`
	Refresh     bool                    `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger  *log.Logger     `json:"-"`
	Metrics textfit.Metrics `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid viz_type: %q (must be one of: treemap, tree)", vizType)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := render.ParseFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for loading the dataset.
func (o *Options) ValidateForLoad() error {
	if o.Input == "" && o.Data == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input file or inline data is required")
	}
	if o.Area == "" && o.AreaConst == 0 {
		return errors.New(errors.ErrCodeInvalidArea,
			"area must be given as a column name or a constant")
	}
	if o.AreaConst < 0 {
		return errors.New(errors.ErrCodeInvalidArea,
			"constant area must be positive, got %g", o.AreaConst)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errors.ValidateBox(o.Width, o.Height); err != nil {
		return err
	}
	if _, err := o.padFor(nil); err != nil {
		return err
	}
	for name, f := range o.LevelFrames {
		if f.Pad != nil {
			if _, err := geom.ParsePad(f.Pad); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPad, err, "level %q", name)
			}
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.DPI == 0 {
		o.DPI = textfit.DefaultDPI
	}
	if o.PixelWidth == 0 {
		o.PixelWidth = DefaultPixelWidth
	}
	if o.PixelHeight == 0 {
		o.PixelHeight = o.PixelWidth * o.Height / o.Width
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := render.ParseStyle(o.Style); err != nil {
		return err
	}
	if err := validateText(o.Text); err != nil {
		return err
	}
	for name, f := range o.LevelFrames {
		if err := validateText(f.Text); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "level %q", name)
		}
	}
	return nil
}

// validateText checks one level's text configuration. Reflow with a
// rotated font has no defined wrapping behavior and is rejected up
// front rather than at fit time.
func validateText(t *TextOptions) error {
	if t == nil {
		return nil
	}
	if t.Reflow && t.Rotation != 0 {
		return errors.New(errors.ErrCodeUnsupportedReflow,
			"reflow is not supported together with rotated text")
	}
	if t.Place != "" {
		if _, err := geom.ParsePlace(t.Place); err != nil {
			return err
		}
	}
	if err := errors.ValidateFontRange(t.MinFontsize, t.MaxFontsize); err != nil {
		return err
	}
	if err := errors.ValidateShrink("xmax", orOne(t.XMax)); err != nil {
		return err
	}
	return errors.ValidateShrink("ymax", orOne(t.YMax))
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}

// IsTreemap returns true if this is a treemap visualization.
func (o *Options) IsTreemap() bool {
	return o.VizType == "" || o.VizType == VizTypeTreemap
}

// IsTree returns true if this is a node-link tree visualization.
func (o *Options) IsTree() bool {
	return o.VizType == VizTypeTree
}

// padFor resolves the padding for one level: the level's own override
// when present, otherwise the global pad. A nil frame selects the
// global pad.
func (o *Options) padFor(frame *FrameOptions) (geom.Pad, error) {
	if frame != nil && frame.Pad != nil {
		return geom.ParsePad(frame.Pad)
	}
	if o.Pad == nil {
		return geom.Pad{}, nil
	}
	return geom.ParsePad(o.Pad)
}

// Columns returns every column name the load stage reads, for cache
// keying.
func (o *Options) Columns() []string {
	cols := make([]string, 0, len(o.Levels)+3)
	cols = append(cols, o.Area, o.Labels, o.Fill)
	cols = append(cols, o.Levels...)
	return cols
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:  o.Width,
		Height: o.Height,
		Split:  o.Split,
		Pad:    o.Pad,
		Levels: o.Levels,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Font:   o.Font,
		DPI:    o.DPI,
		Top:    o.Top,
		Config: o.renderConfigHash(),
	}
}

// renderConfigHash digests the render options that have no dedicated
// ArtifactKeyOpts field, so cached artifacts never leak across label
// or frame configurations.
func (o *Options) renderConfigHash() string {
	cfg := struct {
		Text        *TextOptions
		LevelFrames map[string]FrameOptions
		PixelWidth  float64
		PixelHeight float64
		Scale       float64
		FontSize    float64
		VizType     string
	}{o.Text, o.LevelFrames, o.PixelWidth, o.PixelHeight, o.Scale, o.FontSize, o.VizType}
	data, _ := json.Marshal(cfg)
	return cache.Hash(data)
}
