package sanitizer

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// UnsafeNameChars lists characters stripped from folder and file names.
const UnsafeNameChars = `\/:*?"<>|`

// MaxNameLength is the maximum length of a sanitized name, in runes.
const MaxNameLength = 200

// FolderName strips path-unsafe characters, trims surrounding whitespace and
// caps the result at MaxNameLength runes. The remaining text is NFC normalized
// so that visually identical labels produce identical folder names.
//
// FolderName is idempotent. An empty result must be treated as invalid input
// by the caller.
func FolderName(s string) string {
	s = RemoveControlChars(s)
	s = RemoveChars(s, UnsafeNameChars)
	s = norm.NFC.String(s)
	s = strings.TrimSpace(s)
	s = MaxLength(s, MaxNameLength)
	// Truncation may expose trailing whitespace.
	return strings.TrimSpace(s)
}

// SanitizeFilename reduces an uploaded file name to its base name and then
// applies FolderName. Returns "file" when nothing usable is left.
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	if filename == "." || filename == ".." || filename == "/" {
		filename = ""
	}

	safe := FolderName(strings.ReplaceAll(filename, "\x00", ""))
	if safe == "" {
		return "file"
	}
	return safe
}
