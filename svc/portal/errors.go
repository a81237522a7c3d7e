package portal

import "errors"

var (
	ErrUnauthorized  = errors.New("portal: invalid or expired token")
	ErrForbidden     = errors.New("portal: token does not grant this action")
	ErrMissingSecret = errors.New("portal: signing secret is not configured")
	ErrInvalidRole   = errors.New("portal: unknown role")
	ErrMissingRootID = errors.New("portal: missing root id")
	ErrNoClaims      = errors.New("portal: no token claims in context")
)
