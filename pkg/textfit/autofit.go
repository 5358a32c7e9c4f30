// Package textfit computes the largest legible font size, and
// optionally the best line wrap, for a label inside a pixel box.
//
// The engine is a pure function of its inputs: it always works from
// the original unwrapped text, so repeated calls with an unchanged box
// return identical results, and callers re-invoke it whenever the box
// or constraints change. Font measurement is delegated to an injected
// [Metrics] provider so the search is unit-testable without a real
// rendering backend.
package textfit

import (
	"math"
	"unicode/utf8"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/geom"
)

// minFontSize is the fallback size for degenerate input (empty text or
// a zero-area measurement).
const minFontSize = 1.0

// DefaultDPI is the measurement resolution used when the engine does
// not set one.
const DefaultDPI = 100.0

// Fit is the result of a fitting pass: the chosen font size in points
// and the text lines to draw, top line first. Unwrapped results carry
// a single line.
type Fit struct {
	FontSize float64
	Lines    []string
}

// Engine searches for the font size and wrap that best fill a box.
type Engine struct {
	Metrics Metrics
	DPI     float64 // measurement dpi; <= 0 means DefaultDPI
}

// candidate is one trial wrap of the text into a specific line count.
type candidate struct {
	size    float64  // font size fitting both box dimensions, points
	lines   []string // the wrapped lines
	edgeGap float64  // smallest horizontal slack among the lines, px
}

func (e *Engine) dpi() float64 {
	if e.DPI <= 0 {
		return DefaultDPI
	}
	return e.DPI
}

// Fit computes the optimal font size for text inside a width x height
// pixel box, starting from font's base size.
//
// The unwrapped text is measured first and scaled to the box. With
// reflow set, every line count from two up to the token count is
// tried: grow picks the wrap with the largest font size, otherwise
// the wrap hugging the box edges tightest wins (ties go to fewer
// lines). The final result is the larger of the wrapped and unwrapped
// sizes, both clamped to c.
//
// Empty text fits at size 1 without any layout. Requesting reflow for
// rotated text is unsupported and fails eagerly. Measurement errors
// from the Metrics provider are propagated unchanged.
func (e *Engine) Fit(text string, width, height float64, font Font, c Constraint, reflow, grow bool) (Fit, error) {
	if err := errors.ValidateBox(width, height); err != nil {
		return Fit{}, err
	}
	if reflow && font.Rotation != 0 {
		return Fit{}, errors.New(errors.ErrCodeUnsupportedReflow,
			"reflow only supports horizontal text, got rotation %v", font.Rotation)
	}
	if text == "" {
		return Fit{FontSize: minFontSize}, nil
	}

	w, h, err := e.Metrics.Measure(text, font, e.dpi())
	if err != nil {
		return Fit{}, err
	}

	size := minFontSize
	if w > 0 && h > 0 {
		size = font.Size * math.Min(width/w, height/h)
	}
	size = c.Clamp(size)

	result := Fit{FontSize: size, Lines: []string{text}}
	if !reflow {
		return result, nil
	}

	best, found, err := e.bestWrap(text, width, height, font, grow)
	if err != nil {
		return Fit{}, err
	}
	if found {
		if wrapped := c.Clamp(best.size); result.FontSize < wrapped {
			result.FontSize = wrapped
			result.Lines = best.lines
		}
	}
	return result, nil
}

// bestWrap scans all line counts and keeps the preferred candidate.
// Scanning ascends, and only strictly better candidates replace the
// current best, so ties resolve to the smallest line count.
func (e *Engine) bestWrap(text string, width, height float64, font Font, grow bool) (candidate, bool, error) {
	tokens := Split(text)

	var best candidate
	found := false
	for n := 2; n <= len(tokens); n++ {
		cand, err := e.wrapCandidate(text, tokens, n, width, height, font)
		if err != nil {
			return candidate{}, false, err
		}
		switch {
		case !found:
			best, found = cand, true
		case grow && cand.size > best.size:
			best = cand
		case !grow && cand.edgeGap < best.edgeGap:
			best = cand
		}
	}
	return best, found, nil
}

// wrapCandidate wraps text towards n lines and scores the result.
func (e *Engine) wrapCandidate(text string, tokens []string, n int, width, height float64, font Font) (candidate, error) {
	longest := 0
	for _, tok := range tokens {
		if l := utf8.RuneCountInString(tok); l > longest {
			longest = l
		}
	}
	wrapLen := utf8.RuneCountInString(text) / n
	if wrapLen < longest {
		wrapLen = longest
	}
	lines := Wrap(text, wrapLen)

	dpi := e.dpi()
	ls := font.lineSpacing()
	nl := float64(len(lines))

	// Cumulative height of nl lines including inter-line spacing.
	hSize := geom.PixelsToPoints(height/(nl*ls-ls+1), dpi)

	// The widest line at the base size governs the width-constrained
	// size.
	wSize := math.Inf(1)
	for _, line := range lines {
		w, _, err := e.Metrics.Measure(line, font, dpi)
		if err != nil {
			return candidate{}, err
		}
		if w <= 0 {
			continue
		}
		if s := font.Size * width / w; s < wSize {
			wSize = s
		}
	}

	size := math.Min(hSize, wSize)

	sized := font
	sized.Size = size
	gap := math.Inf(1)
	for _, line := range lines {
		w, _, err := e.Metrics.Measure(line, sized, dpi)
		if err != nil {
			return candidate{}, err
		}
		if g := math.Abs(w - width); g < gap {
			gap = g
		}
	}

	return candidate{size: size, lines: lines, edgeGap: gap}, nil
}
