package portal

import "github.com/dmitrymomot/drivecase/pkg/scopes"

// RequireDebtor is the strict gate of the dedicated portal routes: only
// debtor tokens pass.
func RequireDebtor(c *Claims) error {
	if c == nil {
		return ErrUnauthorized
	}
	if c.Role != RoleDebtor {
		return ErrForbidden
	}
	return nil
}

// RequireRoleOrScope is the gate of the shared preview and list routes.
// Reviewers always pass; debtors need scope in their token.
func RequireRoleOrScope(c *Claims, scope string) error {
	if c == nil {
		return ErrUnauthorized
	}
	switch c.Role {
	case RoleReviewer:
		return nil
	case RoleDebtor:
		if scopes.HasScope(c.Scope, scope) {
			return nil
		}
	}
	return ErrForbidden
}
