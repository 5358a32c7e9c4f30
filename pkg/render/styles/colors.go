package styles

import (
	"fmt"
	"strconv"
)

// Palette is the default categorical color cycle.
var Palette = []string{
	"#4c78a8", "#f58518", "#54a24b", "#e45756", "#72b7b2",
	"#eeca3b", "#b279a2", "#ff9da6", "#9d755d", "#bab0ac",
}

// CategoricalColors assigns a palette color to each distinct value in
// first-appearance order. Values that already look like colors (a "#"
// prefix) map to themselves.
func CategoricalColors(values []string) map[string]string {
	colors := make(map[string]string)
	next := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := colors[v]; ok {
			continue
		}
		if v[0] == '#' {
			colors[v] = v
			continue
		}
		colors[v] = Palette[next%len(Palette)]
		next++
	}
	return colors
}

// ramp endpoints, a light-to-dark blue scale.
var (
	rampLow  = [3]int{0xdb, 0xe9, 0xf6}
	rampHigh = [3]int{0x08, 0x30, 0x6b}
)

// NumericColors maps values onto a sequential color ramp spanning the
// observed range. A constant series maps everything to the high end.
func NumericColors(values []float64) func(float64) string {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return func(v float64) string {
		t := 1.0
		if hi > lo {
			t = (v - lo) / (hi - lo)
		}
		var c [3]int
		for i := range c {
			c[i] = rampLow[i] + int(t*float64(rampHigh[i]-rampLow[i]))
		}
		return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
	}
}

// ResolveFills turns the raw fill values of one level into concrete
// colors. If every value parses as a number the sequential ramp is
// used, otherwise values are treated as categories.
func ResolveFills(values []string) map[string]string {
	nums := make([]float64, 0, len(values))
	numeric := len(values) > 0
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			numeric = false
			break
		}
		nums = append(nums, f)
	}
	if !numeric {
		return CategoricalColors(values)
	}
	ramp := NumericColors(nums)
	colors := make(map[string]string, len(values))
	for i, v := range values {
		colors[v] = ramp(nums[i])
	}
	return colors
}
