package errors

import (
	"math"
	"slices"
	"strings"
	"unicode"
)

// Width limits for chart containers. Anything below MinWidth renders nothing
// useful; anything above MaxWidth is almost certainly a typo and would
// allocate a huge raster.
const (
	MinWidth = 1
	MaxWidth = 4096
)

// ValidateWidth checks a container width in pixels.
func ValidateWidth(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return New(ErrCodeInvalidWidth, "width must be a finite number")
	}
	if w < MinWidth || w > MaxWidth {
		return New(ErrCodeInvalidWidth, "width %g out of range [%d, %d]", w, MinWidth, MaxWidth)
	}
	return nil
}

// ValidateLabel checks a category label from an external source.
//
// Labels are drawn verbatim, so the rules only guard against input that would
// corrupt the output:
//   - No empty labels
//   - No control characters
//   - Maximum length of 128 characters
func ValidateLabel(label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidStats, "category label cannot be empty")
	}
	if len(label) > 128 {
		return New(ErrCodeInvalidStats, "category label too long (max 128 characters)")
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidStats, "category label %q contains control characters", label)
		}
	}
	return nil
}

// ValidateCount checks a single category or severity count.
func ValidateCount(name string, v float64) error {
	if v < 0 {
		return New(ErrCodeInvalidStats, "count for %q is negative: %g", name, v)
	}
	if v != math.Trunc(v) {
		return New(ErrCodeInvalidStats, "count for %q is not an integer: %g", name, v)
	}
	if v > math.MaxInt32 {
		return New(ErrCodeInvalidStats, "count for %q is too large: %g", name, v)
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed, reporting kind in the
// message ("chart", "format", ...).
func ValidateOneOf(code Code, kind, value string, allowed []string) error {
	if value == "" {
		return New(code, "%s cannot be empty", kind)
	}
	if !slices.Contains(allowed, value) {
		return New(code, "unknown %s %q (want one of: %s)", kind, value, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateURI validates a backend connection string such as a MongoDB or
// Redis URI. Only the scheme is checked; the driver parses the rest.
func ValidateURI(raw string, schemes ...string) error {
	if raw == "" {
		return New(ErrCodeInvalidInput, "URI cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(raw, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URI must use one of the schemes: %s", strings.Join(schemes, ", "))
}

// ValidatePath validates an output file name for safety. It rejects null
// bytes, control characters and parent-directory traversal.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if slices.Contains(strings.Split(strings.ReplaceAll(path, "\\", "/"), "/"), "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
