package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateRings checks that a ring list is usable for layout: at least one
// ring, no empty names, no duplicates.
func ValidateRings(rings []string) error {
	if len(rings) == 0 {
		return New(ErrCodeInvalidRings, "ring list cannot be empty")
	}
	seen := make(map[string]bool, len(rings))
	for i, r := range rings {
		if strings.TrimSpace(r) == "" {
			return New(ErrCodeInvalidRings, "ring %d has an empty name", i)
		}
		if seen[r] {
			return New(ErrCodeInvalidRings, "duplicate ring %q", r)
		}
		seen[r] = true
	}
	return nil
}

// ValidateViewport rejects negative or non-finite viewport dimensions.
// A zero dimension is valid: it means there is nothing to draw yet.
func ValidateViewport(width, height float64) error {
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return New(ErrCodeInvalidViewport, "viewport dimensions must be finite")
		}
		if v < 0 {
			return New(ErrCodeInvalidViewport, "viewport dimensions cannot be negative (%gx%g)", width, height)
		}
	}
	return nil
}

// ValidatePath validates a local file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
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

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
