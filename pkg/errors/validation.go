package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFilePath validates a user-supplied file path for safety.
// It prevents injection of control characters and ensures reasonable length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//
// Absolute paths are allowed; the CLI and API accept paths anywhere on the
// local filesystem.
func ValidateFilePath(path string) error {
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

// paletteNameRegex matches valid palette names: lowercase alphanumerics
// separated by single dashes, like "gameboy-pocket".
var paletteNameRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidatePaletteName validates a palette identifier.
// It checks syntax only; whether the palette actually exists is decided by
// the palette registry.
func ValidatePaletteName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPalette, "palette name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidPalette, "palette name too long (max 64 characters)")
	}

	if !paletteNameRegex.MatchString(name) {
		return New(ErrCodeInvalidPalette, "invalid palette name: %q", name)
	}

	return nil
}

// hexColorRegex matches CSS-style hex colors: #RGB or #RRGGBB.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a hex color string like "#1a2b3c" or "#fff".
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidConfig, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidConfig, "invalid hex color: %q (expected #RGB or #RRGGBB)", s)
	}

	return nil
}

// ValidateImageFormat validates an output format name against the set of
// formats the encoder supports.
func ValidateImageFormat(format string, supported []string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}

	lower := strings.ToLower(format)
	for _, s := range supported {
		if lower == s {
			return nil
		}
	}

	return New(ErrCodeInvalidFormat, "unsupported format: %q (supported: %s)",
		format, strings.Join(supported, ", "))
}
