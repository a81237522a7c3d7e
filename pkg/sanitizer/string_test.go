package sanitizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/drivecase/pkg/sanitizer"
)

func TestMaxLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{name: "shorter", input: "abc", maxLen: 5, expected: "abc"},
		{name: "exact", input: "abcde", maxLen: 5, expected: "abcde"},
		{name: "longer", input: "abcdef", maxLen: 3, expected: "abc"},
		{name: "runes not bytes", input: "日本語テキスト", maxLen: 3, expected: "日本語"},
		{name: "zero", input: "abc", maxLen: 0, expected: ""},
		{name: "negative", input: "abc", maxLen: -1, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, sanitizer.MaxLength(tt.input, tt.maxLen))
		})
	}
}

func TestRemoveChars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hll wrld", sanitizer.RemoveChars("hello world", "eo"))
	assert.Equal(t, "unchanged", sanitizer.RemoveChars("unchanged", ""))
	assert.Equal(t, "", sanitizer.RemoveChars("aaa", "a"))
}

func TestRemoveControlChars(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "line1\nline2\tend", sanitizer.RemoveControlChars("line1\n\x00line2\t\x07end"))
	assert.Equal(t, "plain", sanitizer.RemoveControlChars("plain"))
}

func TestSingleLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "looks good to me", sanitizer.SingleLine("looks\ngood\r\n  to\tme "))
	assert.Equal(t, "", sanitizer.SingleLine(" \n\t "))
}

func TestCompose(t *testing.T) {
	t.Parallel()

	clean := sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.Trim, strings.ToLower)
	assert.Equal(t, "mixed case", clean("  MIXED\x00 Case "))
	assert.Equal(t, "x", sanitizer.Apply(" x ", sanitizer.Trim))
	assert.Equal(t, " x ", sanitizer.Apply(" x "))
}
