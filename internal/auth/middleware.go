package auth

import (
	"context"
	"net/http"
	"strings"

	"DealBoard/pkg/kit"
)

type ctxKey struct{}

// RequireToken guards mutating endpoints: a valid bearer token must be
// present, and its claims are attached to the request context.
func RequireToken(jwt *TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			tokenStr, ok := strings.CutPrefix(authz, "Bearer ")
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing bearer token", nil)
				return
			}

			claims, err := jwt.Parse(tokenStr)
			if err != nil {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(Claims)
	return c, ok
}
