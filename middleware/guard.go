package middleware

import (
	"context"
	"net/http"

	"github.com/gourmoire/authkit"
)

type identityContextKey struct{}

// IdentityFromContext returns the authenticated identity attached by
// RequireAuth or OptionalAuth.
func IdentityFromContext(ctx context.Context) (*authkit.Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(*authkit.Identity)
	return id, ok
}

// RequireAuth gates a handler on a valid, unrevoked access credential. On
// success the identity is attached to the request context; on failure the
// request terminates with the JSON failure envelope and the mapped status.
func RequireAuth(engine *authkit.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, aerr := engine.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if aerr != nil {
				WriteError(w, aerr)
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches an identity when the request carries a valid access
// credential and otherwise passes the request through unauthenticated. It
// never writes a response.
func OptionalAuth(engine *authkit.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity := engine.AuthenticateOptional(r.Header.Get("Authorization")); identity != nil {
				ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}
