package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// ValidateSize validates container dimensions requested by a caller.
//
// Width must be a positive finite number. Height may be zero, which callers
// interpret as "use the default height", but never negative or non-finite.
func ValidateSize(width, height float64) error {
	if math.IsNaN(width) || math.IsInf(width, 0) {
		return New(ErrCodeInvalidSize, "width must be finite, got %v", width)
	}
	if math.IsNaN(height) || math.IsInf(height, 0) {
		return New(ErrCodeInvalidSize, "height must be finite, got %v", height)
	}
	if width <= 0 {
		return New(ErrCodeInvalidSize, "width must be positive, got %v", width)
	}
	if height < 0 {
		return New(ErrCodeInvalidSize, "height must not be negative, got %v", height)
	}
	return nil
}

// ValidatePath validates a local file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateFormats checks every requested output format against the allowed set.
func ValidateFormats(formats []string, allowed map[string]bool) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !allowed[f] {
			names := make([]string, 0, len(allowed))
			for name := range allowed {
				names = append(names, name)
			}
			slices.Sort(names)
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", f, strings.Join(names, ", "))
		}
	}
	return nil
}
