package portal

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/drivecase/pkg/jwt"
)

// TokenQueryParam is the query parameter portal links carry the token in.
const TokenQueryParam = "token"

// Extractor reads the token from "Authorization: Bearer" or, when the header
// is absent, from ?token=.
var Extractor = jwt.FirstTokenExtractor(jwt.BearerTokenExtractor, jwt.QueryTokenExtractor(TokenQueryParam))

// PortalMiddleware verifies portal tokens and stores their *Claims in the
// request context. Failures go to onError, which should answer 401.
func (s *Service) PortalMiddleware(onError jwt.ErrorHandlerFunc) func(http.Handler) http.Handler {
	return jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
		Extractor: Extractor,
		Verify: func(_ context.Context, token string) (any, error) {
			return s.VerifyPortal(token)
		},
		ErrorHandler: onError,
	})
}

// AccessMiddleware verifies access tokens signed with the reviewer secret.
func (s *Service) AccessMiddleware(onError jwt.ErrorHandlerFunc) func(http.Handler) http.Handler {
	return jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
		Extractor: Extractor,
		Verify: func(_ context.Context, token string) (any, error) {
			return s.VerifyAccess(token)
		},
		ErrorHandler: onError,
	})
}

// ClaimsFromContext returns the claims stored by one of the middlewares.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	return jwt.GetClaims[*Claims](ctx)
}
