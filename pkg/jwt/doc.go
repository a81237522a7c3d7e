// Package jwt provides HS256 JSON Web Token signing and verification along
// with HTTP middleware and context helpers.
//
// A Service signs any JSON-serialisable claims value and verifies tokens
// with a constant-time signature check followed by temporal claim
// validation. StandardClaims mirrors the RFC 7519 registered fields; claims
// types that embed it get expiry and not-before checks against the service
// clock, which can be replaced with WithClock.
//
// # Usage
//
//	import "github.com/dmitrymomot/drivecase/pkg/jwt"
//
//	svc, err := jwt.NewFromString(secret)
//	if err != nil {
//		return err
//	}
//
//	token, err := svc.Generate(jwt.StandardClaims{
//		Subject:   "debtor",
//		ExpiresAt: time.Now().Add(72 * time.Hour).Unix(),
//	})
//
// # Middleware
//
// MiddlewareWithConfig extracts a token, verifies it and stores the token
// and claims in the request context. Extractors can be chained so a header
// token wins over a query parameter:
//
//	r.Use(jwt.MiddlewareWithConfig(jwt.MiddlewareConfig{
//		Extractor: jwt.FirstTokenExtractor(
//			jwt.BearerTokenExtractor,
//			jwt.QueryTokenExtractor("token"),
//		),
//		Verify: func(ctx context.Context, token string) (any, error) {
//			return tokens.VerifyPortal(token)
//		},
//	}))
//
// Handlers read the claims back with GetClaims:
//
//	claims, ok := jwt.GetClaims[*portal.Claims](r.Context())
//
// # Errors
//
// ErrMissingToken, ErrInvalidToken, ErrExpiredToken and ErrInvalidSignature
// are returned as sentinel values and can be matched with errors.Is.
package jwt
