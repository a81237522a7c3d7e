// Package scopes works with permission scope lists carried in tokens.
//
// A scope is an opaque string such as "preview" or "files.list". A list is
// written space separated. Patterns support a global wildcard "*" and a
// hierarchy wildcard such as "files.*" that matches every "files." scope.
//
//	if !scopes.HasScope(claims.Scope, "preview") {
//		return handler.ErrForbidden
//	}
//
// Validate checks requested scopes against an allow list before they are
// put into a token; Normalize makes the stored list deterministic.
package scopes
