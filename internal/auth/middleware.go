package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

type ownerContextKey struct{}

// Owner returns the authenticated owner identity resolved by Middleware.
func Owner(ctx context.Context) (uuid.UUID, bool) {
	owner, ok := ctx.Value(ownerContextKey{}).(uuid.UUID)
	return owner, ok
}

// WithOwner puts an owner identity on a huma request context. Middleware uses
// it on every authenticated request; tests use it to stand in for a login.
func WithOwner(ctx huma.Context, owner uuid.UUID) huma.Context {
	return huma.WithValue(ctx, ownerContextKey{}, owner)
}

// Middleware validates the Authorization bearer token and resolves the owner
// identity into the request context. Paths in skipPaths pass through
// unauthenticated.
func Middleware(api huma.API, secret []byte, skipPaths []string) func(huma.Context, func(huma.Context)) {
	skip := make(map[string]bool, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = true
	}

	return func(ctx huma.Context, next func(huma.Context)) {
		if skip[ctx.URL().Path] {
			next(ctx)
			return
		}

		authHeader := ctx.Header("Authorization")
		if authHeader == "" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid Authorization header format")
			return
		}

		owner, err := VerifyToken(secret, parts[1])
		if err != nil {
			huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next(WithOwner(ctx, owner))
	}
}
