// Package auth provides authentication context helpers.
//
// This package is designed to be imported by the middleware, handler and
// api packages without causing import cycles.
package auth

import (
	"context"
	"net/http"

	"github.com/Meerdlawar/SweetDive/internal/domain"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// WithSession stores the authenticated user and their backend token in the
// context. Called by the auth middleware after loading the session.
func WithSession(ctx context.Context, user *domain.User, token string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// WithToken stores only the backend token, for calls made before a user is
// known (session revalidation).
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// GetUser retrieves the authenticated user from the context.
// Returns nil if no user is authenticated.
func GetUser(ctx context.Context) *domain.User {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}

// GetUserFromRequest retrieves the authenticated user from the request context.
func GetUserFromRequest(r *http.Request) *domain.User {
	return GetUser(r.Context())
}

// GetToken retrieves the backend token from the context, or "" when the
// request is unauthenticated.
func GetToken(ctx context.Context) string {
	token, ok := ctx.Value(tokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}
