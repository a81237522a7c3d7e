package scopes

import (
	"slices"
	"strings"
)

const (
	// Separator is used between scopes in a scope list string.
	Separator = " "

	// Wildcard matches every scope, or every sub-scope when used as a suffix.
	Wildcard = "*"

	// Delimiter separates hierarchical scope parts (e.g., "files.preview").
	Delimiter = "."
)

// Join converts a slice of scopes back to a space-separated string.
func Join(scopes []string) string {
	return strings.Join(scopes, Separator)
}

// Matches reports whether scope satisfies pattern.
//
//   - "preview" matches "preview"
//   - "*" matches any scope
//   - "files.*" matches any scope starting with "files."
func Matches(scope, pattern string) bool {
	if scope == pattern || pattern == Wildcard {
		return true
	}

	if prefix, ok := strings.CutSuffix(pattern, Delimiter+Wildcard); ok {
		return strings.HasPrefix(scope, prefix+Delimiter)
	}

	return false
}

// HasScope reports whether any granted scope matches scope.
//
//	scopes.HasScope([]string{"files.*"}, "files.preview") // true
func HasScope(granted []string, scope string) bool {
	for _, g := range granted {
		if Matches(scope, g) {
			return true
		}
	}
	return false
}

// Validate returns ErrScopeNotAllowed unless every scope matches one of the
// allowed patterns.
func Validate(scopes, allowed []string) error {
	for _, s := range scopes {
		if s == "" || strings.ContainsAny(s, Separator+",") {
			return ErrInvalidScope
		}
		if !HasScope(allowed, s) {
			return ErrScopeNotAllowed
		}
	}
	return nil
}

// Normalize removes duplicates and sorts the scopes. Returns nil for empty input.
func Normalize(scopes []string) []string {
	if len(scopes) == 0 {
		return nil
	}
	out := slices.Clone(scopes)
	slices.Sort(out)
	return slices.Compact(out)
}
