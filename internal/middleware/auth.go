// Package middleware provides HTTP middlewares for authentication and logging.
package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenParser verifies a bearer token and returns the subject it was
// issued for.
type TokenParser interface {
	Parse(tokenString string) (string, error)
}

// BearerAuth is a middleware that enforces bearer-token authentication.
//
// It extracts the token from the Authorization header, verifies it, and
// stores the token subject (the user's email) in the request context so it
// can be used downstream as the authenticated identity.
func BearerAuth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}
			subject, err := parser.Parse(tokenString)
			if err != nil {
				http.Error(w, "could not validate credentials", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserEmailFromContext extracts the authenticated user's email from the
// request context. Returns an empty string if not found.
func GetUserEmailFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

// WithUserEmail returns a copy of ctx carrying email as the authenticated
// identity. Intended for tests.
func WithUserEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey, email)
}
