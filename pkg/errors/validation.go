package errors

import (
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLabelLength is the longest node label accepted by [ValidateLabel].
const MaxLabelLength = 256

// ValidateLabel checks that a node label is usable as a unique display name.
//
// The rules are:
//   - No empty labels
//   - No control characters (labels end up on a terminal or in DOT output)
//   - Valid UTF-8
//   - At most MaxLabelLength runes
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "label cannot be empty")
	}
	if !utf8.ValidString(label) {
		return New(ErrCodeInvalidLabel, "label is not valid UTF-8")
	}
	if utf8.RuneCountInString(label) > MaxLabelLength {
		return New(ErrCodeInvalidLabel, "label too long (max %d characters)", MaxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "label contains control characters")
		}
	}
	return nil
}

// ValidateConfigPath checks that path names a config file with a supported
// extension and returns the normalized extension (".toml" or ".yaml").
func ValidateConfigPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", New(ErrCodeInvalidInput, "config path cannot be empty")
	}
	if strings.ContainsRune(path, '\x00') {
		return "", New(ErrCodeInvalidInput, "config path contains a null byte")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return ".toml", nil
	case ".yaml", ".yml":
		return ".yaml", nil
	default:
		return "", New(ErrCodeInvalidFormat, "unsupported config format %q (want .toml, .yaml or .yml)", ext)
	}
}
