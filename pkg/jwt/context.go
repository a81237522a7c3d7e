package jwt

import "context"

type (
	tokenKey  struct{}
	claimsKey struct{}
)

// SetToken stores the raw token string in ctx.
func SetToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// SetClaims stores parsed claims in ctx. Read them back with GetClaims
// using the same type that was stored.
func SetClaims(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetToken returns the raw token of the current request.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}

// GetClaims returns the claims stored with SetClaims when they have type T.
func GetClaims[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey{}).(T)
	return claims, ok
}
