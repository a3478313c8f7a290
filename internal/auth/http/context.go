// Package http provides HTTP middleware for terminal authentication.
package http

import (
	"context"
)

// tokenKey is a context key type for storing the presented terminal token.
type tokenKey struct{}

// WithToken stores the presented terminal token in the context.
// Called by the authentication middleware after extracting the bearer token.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// GetToken retrieves the presented terminal token from the context.
// Returns (token, true) if a token is present, or ("", false) if none was set.
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok
}
