package cli

import (
	"testing"
)

func TestParseSettings(t *testing.T) {
	data := []byte(`
input = "cities.csv"
area = "population"
labels = "city"
levels = ["region", "city"]
width = 120
height = 80
split = true
pad = [2, 1]
formats = ["svg", "png"]
style = "mono"
top = true

[text]
reflow = true
place = "top left"
max_fontsize = 24

[frames.region]
stroke = "#222222"
pad = [4]

[frames.region.text]
hide = true
`)

	opts, err := parseSettings(data)
	if err != nil {
		t.Fatalf("parseSettings() error: %v", err)
	}

	if opts.Input != "cities.csv" || opts.Area != "population" {
		t.Errorf("load options = %q/%q, want cities.csv/population", opts.Input, opts.Area)
	}
	if len(opts.Levels) != 2 || opts.Levels[0] != "region" {
		t.Errorf("Levels = %v, want [region city]", opts.Levels)
	}
	if opts.Width != 120 || opts.Height != 80 || !opts.Split {
		t.Errorf("layout options not parsed: %+v", opts)
	}
	if len(opts.Pad) != 2 || opts.Pad[0] != 2 || opts.Pad[1] != 1 {
		t.Errorf("Pad = %v, want [2 1]", opts.Pad)
	}
	if len(opts.Formats) != 2 || opts.Style != "mono" || !opts.Top {
		t.Errorf("render options not parsed: %+v", opts)
	}

	if opts.Text == nil {
		t.Fatal("Text should be set")
	}
	if !opts.Text.Reflow || opts.Text.Place != "top left" || opts.Text.MaxFontsize != 24 {
		t.Errorf("Text = %+v", opts.Text)
	}

	frame, ok := opts.LevelFrames["region"]
	if !ok {
		t.Fatal("frames.region should be set")
	}
	if frame.Stroke != "#222222" {
		t.Errorf("frame.Stroke = %q, want #222222", frame.Stroke)
	}
	if len(frame.Pad) != 1 || frame.Pad[0] != 4 {
		t.Errorf("frame.Pad = %v, want [4]", frame.Pad)
	}
	if frame.Text == nil || !frame.Text.Hide {
		t.Errorf("frame.Text = %+v, want Hide", frame.Text)
	}
}

func TestParseSettingsEmpty(t *testing.T) {
	opts, err := parseSettings(nil)
	if err != nil {
		t.Fatalf("parseSettings(nil) error: %v", err)
	}
	if opts.Text != nil || opts.LevelFrames != nil {
		t.Errorf("empty settings should produce zero options, got %+v", opts)
	}
}

func TestParseSettingsInvalid(t *testing.T) {
	if _, err := parseSettings([]byte("width = [not valid")); err == nil {
		t.Error("parseSettings should fail on malformed TOML")
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	if _, err := loadSettings("/nonexistent/settings.toml"); err == nil {
		t.Error("loadSettings should fail for a missing file")
	}
}
