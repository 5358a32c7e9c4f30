package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// settingsFile mirrors pipeline.Options in TOML form. It exists so the
// settings file can use conventional TOML keys and nested [frames.<level>]
// tables for per-level styling.
type settingsFile struct {
	Input     string   `toml:"input"`
	Area      string   `toml:"area"`
	AreaConst float64  `toml:"area_const"`
	Labels    string   `toml:"labels"`
	Fill      string   `toml:"fill"`
	Levels    []string `toml:"levels"`

	Width  float64   `toml:"width"`
	Height float64   `toml:"height"`
	Split  bool      `toml:"split"`
	Pad    []float64 `toml:"pad"`

	Type        string  `toml:"type"`
	Formats     []string `toml:"formats"`
	Style       string  `toml:"style"`
	Font        string  `toml:"font"`
	FontSize    float64 `toml:"fontsize"`
	DPI         float64 `toml:"dpi"`
	Top         bool    `toml:"top"`
	PixelWidth  float64 `toml:"pixel_width"`
	PixelHeight float64 `toml:"pixel_height"`
	Scale       float64 `toml:"scale"`

	Text   *textSettings            `toml:"text"`
	Frames map[string]frameSettings `toml:"frames"`
}

// textSettings configures label fitting for one level.
type textSettings struct {
	Hide        bool    `toml:"hide"`
	Reflow      bool    `toml:"reflow"`
	Grow        bool    `toml:"grow"`
	Place       string  `toml:"place"`
	Rotation    float64 `toml:"rotation"`
	MinFontsize float64 `toml:"min_fontsize"`
	MaxFontsize float64 `toml:"max_fontsize"`
	XMax        float64 `toml:"xmax"`
	YMax        float64 `toml:"ymax"`
	PadX        float64 `toml:"padx"`
	PadY        float64 `toml:"pady"`
	Color       string  `toml:"color"`
}

// frameSettings configures how a non-leaf level is drawn.
type frameSettings struct {
	Fill   string        `toml:"fill"`
	Stroke string        `toml:"stroke"`
	Pad    []float64     `toml:"pad"`
	Text   *textSettings `toml:"text"`
}

// loadSettings reads a TOML settings file and converts it to pipeline options.
func loadSettings(path string) (pipeline.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return pipeline.Options{}, fmt.Errorf("read settings: %w", err)
	}
	return parseSettings(data)
}

func parseSettings(data []byte) (pipeline.Options, error) {
	var sf settingsFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return pipeline.Options{}, fmt.Errorf("parse settings: %w", err)
	}

	opts := pipeline.Options{
		Input:       sf.Input,
		Area:        sf.Area,
		AreaConst:   sf.AreaConst,
		Labels:      sf.Labels,
		Fill:        sf.Fill,
		Levels:      sf.Levels,
		Width:       sf.Width,
		Height:      sf.Height,
		Split:       sf.Split,
		Pad:         sf.Pad,
		VizType:     sf.Type,
		Formats:     sf.Formats,
		Style:       sf.Style,
		Font:        sf.Font,
		FontSize:    sf.FontSize,
		DPI:         sf.DPI,
		Top:         sf.Top,
		PixelWidth:  sf.PixelWidth,
		PixelHeight: sf.PixelHeight,
		Scale:       sf.Scale,
		Text:        sf.Text.toOptions(),
	}

	if len(sf.Frames) > 0 {
		opts.LevelFrames = make(map[string]pipeline.FrameOptions, len(sf.Frames))
		for name, f := range sf.Frames {
			opts.LevelFrames[name] = pipeline.FrameOptions{
				Fill:   f.Fill,
				Stroke: f.Stroke,
				Pad:    f.Pad,
				Text:   f.Text.toOptions(),
			}
		}
	}
	return opts, nil
}

func (t *textSettings) toOptions() *pipeline.TextOptions {
	if t == nil {
		return nil
	}
	return &pipeline.TextOptions{
		Hide:        t.Hide,
		Reflow:      t.Reflow,
		Grow:        t.Grow,
		Place:       t.Place,
		Rotation:    t.Rotation,
		MinFontsize: t.MinFontsize,
		MaxFontsize: t.MaxFontsize,
		XMax:        t.XMax,
		YMax:        t.YMax,
		PadX:        t.PadX,
		PadY:        t.PadY,
		Color:       t.Color,
	}
}
