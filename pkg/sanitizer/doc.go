// Package sanitizer provides small, composable helpers for cleaning user
// supplied strings before they reach the storage provider.
//
// The central helper is FolderName, which turns an arbitrary label into a
// name that is safe to use for a Drive folder or file:
//
//	name := sanitizer.FolderName(`  Case: 2024/03 "Acme"  `) // "Case 202403 Acme"
//	if name == "" {
//	    // callers treat an empty result as a validation error
//	}
//
// Helpers can be chained with Apply and Compose:
//
//	clean := sanitizer.Compose(sanitizer.Trim, sanitizer.RemoveControlChars)
//	safe := clean(" input\x00 ")
//
// Every function is pure and safe for concurrent use.
package sanitizer
