package errors

// ValidateBox validates the dimensions of a layout box.
// Both dimensions must be finite numbers >= 0; negative extents are
// rejected before any layout work begins.
func ValidateBox(width, height float64) error {
	if width < 0 {
		return New(ErrCodeInvalidBox, "box width must be >= 0, got %v", width)
	}
	if height < 0 {
		return New(ErrCodeInvalidBox, "box height must be >= 0, got %v", height)
	}
	return nil
}

// ValidateFontRange validates a min/max font size constraint.
// A zero value means the bound is unset.
func ValidateFontRange(min, max float64) error {
	if min < 0 {
		return New(ErrCodeInvalidInput, "min_fontsize must be >= 0, got %v", min)
	}
	if max < 0 {
		return New(ErrCodeInvalidInput, "max_fontsize must be >= 0, got %v", max)
	}
	if min > 0 && max > 0 && min > max {
		return New(ErrCodeInvalidInput, "min_fontsize (%v) must not exceed max_fontsize (%v)", min, max)
	}
	return nil
}

// ValidateShrink validates a per-axis text box shrink factor (xmax/ymax).
// Factors must lie in [0, 1].
func ValidateShrink(name string, v float64) error {
	if v < 0 || v > 1 {
		return New(ErrCodeInvalidInput, "%s must be in [0, 1], got %v", name, v)
	}
	return nil
}
