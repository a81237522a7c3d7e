package jwt

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// TokenExtractorFunc defines a function that extracts a token from an HTTP request.
type TokenExtractorFunc func(r *http.Request) (string, error)

// VerifyFunc turns a raw token into claims. It replaces the default map based
// parsing when callers need typed claims or extra checks.
type VerifyFunc func(ctx context.Context, token string) (any, error)

// SkipFunc defines a function that determines whether to skip JWT validation for a request.
type SkipFunc func(r *http.Request) bool

// ErrorHandlerFunc writes the response for a request whose token was missing or rejected.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

// MiddlewareConfig configures JWT middleware behavior.
type MiddlewareConfig struct {
	Service      *Service           // JWT service for token validation, used when Verify is nil
	Extractor    TokenExtractorFunc // Token extraction strategy (defaults to Bearer)
	Verify       VerifyFunc         // Optional custom verification producing typed claims
	Skip         SkipFunc           // Optional request filter to bypass validation
	ErrorHandler ErrorHandlerFunc   // Optional error writer (defaults to plain 401)
}

// Middleware creates JWT middleware with default Bearer token extraction.
// Validates tokens and injects claims into request context for downstream handlers.
func Middleware(service *Service) func(next http.Handler) http.Handler {
	return MiddlewareWithConfig(MiddlewareConfig{
		Service:   service,
		Extractor: BearerTokenExtractor,
	})
}

// MiddlewareWithConfig creates JWT middleware with custom configuration.
// Extraction and verification errors are passed to the error handler; the
// claims produced by Verify (or a map[string]any when only Service is set) are
// stored with SetClaims.
func MiddlewareWithConfig(config MiddlewareConfig) func(next http.Handler) http.Handler {
	if config.Extractor == nil {
		config.Extractor = BearerTokenExtractor
	}
	if config.ErrorHandler == nil {
		config.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
		}
	}
	if config.Verify == nil {
		service := config.Service
		config.Verify = func(_ context.Context, token string) (any, error) {
			if service == nil {
				return nil, ErrMissingSigningKey
			}
			// Parse to map[string]any for maximum flexibility
			claims := make(map[string]any)
			if err := service.Parse(token, &claims); err != nil {
				return nil, err
			}
			return claims, nil
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.Skip != nil && config.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			tokenString, err := config.Extractor(r)
			if err != nil {
				config.ErrorHandler(w, r, err)
				return
			}

			claims, err := config.Verify(r.Context(), tokenString)
			if err != nil {
				config.ErrorHandler(w, r, err)
				return
			}

			ctx := r.Context()
			ctx = SetToken(ctx, tokenString)
			ctx = SetClaims(ctx, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerTokenExtractor extracts JWT tokens from "Authorization: Bearer <token>" headers.
// This is the most common JWT transport method per RFC 6750.
func BearerTokenExtractor(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
		return "", ErrInvalidToken
	}

	return token, nil
}

// QueryTokenExtractor creates a token extractor for URL query parameters.
// Generally discouraged due to token exposure in logs and referrer headers,
// but required for links opened directly in a browser.
func QueryTokenExtractor(paramName string) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		token := r.URL.Query().Get(paramName)
		if token == "" {
			return "", ErrMissingToken
		}
		return token, nil
	}
}

// FirstTokenExtractor tries each extractor in order and returns the first token
// found. A malformed token stops the search; only ErrMissingToken falls through.
func FirstTokenExtractor(extractors ...TokenExtractorFunc) TokenExtractorFunc {
	return func(r *http.Request) (string, error) {
		for _, extract := range extractors {
			token, err := extract(r)
			if err == nil {
				return token, nil
			}
			if !errors.Is(err, ErrMissingToken) {
				return "", err
			}
		}
		return "", ErrMissingToken
	}
}
