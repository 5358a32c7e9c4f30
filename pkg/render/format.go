package render

import (
	"strings"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/render/styles"
)

// Format is an output format for rendered treemaps.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
	FormatJSON Format = "json"
)

// ParseFormat validates an output format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatSVG, FormatPNG, FormatPDF, FormatJSON:
		return f, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (supported: svg, png, pdf, json)", s)
	}
}

// ParseStyle resolves a style name to its implementation.
func ParseStyle(s string) (styles.Style, error) {
	switch strings.ToLower(s) {
	case "", "simple":
		return styles.Simple{}, nil
	case "mono":
		return styles.Mono{}, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidStyle,
			"unknown style %q (supported: simple, mono)", s)
	}
}
