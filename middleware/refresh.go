package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gourmoire/authkit"
	"github.com/gourmoire/authkit/token"
)

type refreshContextKey struct{}

type refreshContextValue struct {
	claims     *token.Claims
	credential string
}

// RefreshClaimsFromContext returns the validated refresh claims attached by
// RequireRefreshToken.
func RefreshClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	v, ok := ctx.Value(refreshContextKey{}).(*refreshContextValue)
	if !ok {
		return nil, false
	}
	return v.claims, true
}

// RefreshTokenFromContext returns the raw refresh credential attached by
// RequireRefreshToken. Handlers read it from the context because the request
// body has already been consumed.
func RefreshTokenFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(refreshContextKey{}).(*refreshContextValue)
	if !ok {
		return "", false
	}
	return v.credential, true
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RequireRefreshToken gates the refresh endpoint. It reads the JSON body
// {"refreshToken": ...}, verifies the credential's structure, signature,
// type, and expiry, and attaches the claims and raw credential to the
// request context. Revocation checks happen inside the handler's call to
// Engine.Refresh.
func RequireRefreshToken(engine *authkit.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body refreshRequest
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
				WriteError(w, &authkit.Error{
					Code:    authkit.CodeTokenInvalid,
					Message: "Refresh token is required",
					Status:  http.StatusBadRequest,
				})
				return
			}

			claims, aerr := engine.CheckRefresh(body.RefreshToken)
			if aerr != nil {
				WriteError(w, aerr)
				return
			}

			ctx := context.WithValue(r.Context(), refreshContextKey{}, &refreshContextValue{
				claims:     claims,
				credential: body.RefreshToken,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
