package pipeline

import (
	"bytes"
	"os"

	"github.com/matzehuels/mosaic/pkg/dataset"
	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// =============================================================================
// Load Stage
// =============================================================================

// Load reads the tabular input and builds one treemap item per row.
// Inline data takes precedence over the input path so API callers can
// post CSV content directly.
func Load(opts Options) ([]treemap.Item, error) {
	raw, err := RawInput(opts)
	if err != nil {
		return nil, err
	}
	return parseItems(raw, opts)
}

// RawInput returns the raw CSV bytes of the configured source. The
// runner also uses it to key the dataset cache by content.
func RawInput(opts Options) ([]byte, error) {
	if opts.Data != "" {
		return []byte(opts.Data), nil
	}
	raw, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input file %q", opts.Input)
		}
		return nil, err
	}
	return raw, nil
}

// parseItems parses CSV bytes and selects the configured columns.
func parseItems(raw []byte, opts Options) ([]treemap.Item, error) {
	table, err := dataset.ReadCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return table.Items(dataset.Select{
		Area:      opts.Area,
		AreaConst: opts.AreaConst,
		Labels:    opts.Labels,
		Fill:      opts.Fill,
		Levels:    opts.Levels,
	})
}

// sourceDescription names the load source for logging and hooks.
func sourceDescription(opts Options) string {
	if opts.Data != "" {
		return "inline data"
	}
	return opts.Input
}
