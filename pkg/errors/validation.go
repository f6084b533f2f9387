package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateID validates a report, block, or chart identifier.
// Identifiers are opaque strings, but they travel through URLs, cache keys,
// and document-store queries, so the rules are intentionally conservative:
//   - No empty ids
//   - No control characters or null bytes
//   - No path separators or traversal sequences
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "id cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidInput, "id too long (max 128 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "id contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(id, pattern) {
			return New(ErrCodeInvalidInput, "id contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// aspectRatioRegex matches "W:H" aspect ratio strings with numeric components.
var aspectRatioRegex = regexp.MustCompile(`^\s*\d+(\.\d+)?\s*:\s*\d+(\.\d+)?\s*$`)

// ValidateAspectRatioString validates the textual form of an aspect ratio
// before parsing. The numeric components must still be checked for zero by
// the parser.
func ValidateAspectRatioString(s string) error {
	if s == "" {
		return New(ErrCodeInvalidAspectRatio, "aspect ratio cannot be empty")
	}
	if !aspectRatioRegex.MatchString(s) {
		return New(ErrCodeInvalidAspectRatio, "invalid aspect ratio %q: want W:H", s)
	}
	return nil
}

// ValidateDimensions validates a width/height pair supplied to the layout
// engine. Non-positive width is always fatal; height may be zero when the
// engine is expected to determine it.
func ValidateDimensions(widthPx, heightPx float64) error {
	if widthPx <= 0 {
		return New(ErrCodeInvalidDimensions, "width must be positive, got %.2f", widthPx)
	}
	if heightPx < 0 {
		return New(ErrCodeInvalidDimensions, "height must be non-negative, got %.2f", heightPx)
	}
	return nil
}

// ValidateFontRange validates a floor/ceiling font size pair.
func ValidateFontRange(floorPx, ceilingPx float64) error {
	if floorPx <= 0 {
		return New(ErrCodeInvalidInput, "floor font size must be positive, got %.2f", floorPx)
	}
	if ceilingPx < floorPx {
		return New(ErrCodeInvalidInput,
			"ceiling font size %.2f is below floor %.2f", ceilingPx, floorPx)
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
