package authkit

import (
	"context"
	"net/http"

	"github.com/gourmoire/authkit/revocation"
	"github.com/gourmoire/authkit/token"
)

// Engine is the credential subsystem: issuance, verification, rotation, and
// revocation. All methods are safe for concurrent use; the Engine holds no
// mutable state after Build.
type Engine struct {
	tokens      *token.Manager
	revocations *revocation.Store
	users       UserProvider
}

// Authenticate is the per-request session gate. It extracts the bearer
// credential from the Authorization header value, verifies it as an access
// credential, then consults the revocation store for a blacklist entry and a
// per-user logout watermark. The pipeline is terminal on first failure.
func (e *Engine) Authenticate(ctx context.Context, authorizationHeader string) (*Identity, *Error) {
	if authorizationHeader == "" {
		return nil, &Error{
			Code:    CodeUnauthorized,
			Message: "Authorization header is required",
			Status:  http.StatusUnauthorized,
		}
	}

	credential, ok := token.ExtractBearer(authorizationHeader)
	if !ok {
		return nil, &Error{
			Code:    CodeUnauthorized,
			Message: "Invalid authorization header format. Use: Bearer <token>",
			Status:  http.StatusUnauthorized,
		}
	}

	claims, verr := e.tokens.Verify(credential, token.TypeAccess)
	if verr != nil {
		return nil, fromVerifyError(verr)
	}

	revoked, err := e.revocations.IsBlacklisted(ctx, credential)
	if err != nil {
		return nil, internalError(CodeUnauthorized, "Internal server error")
	}
	if revoked {
		return nil, &Error{
			Code:    CodeTokenInvalid,
			Message: "Token has been revoked",
			Status:  http.StatusForbidden,
		}
	}

	if aerr := e.checkLogoutWatermark(ctx, claims); aerr != nil {
		return nil, aerr
	}

	return &Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Token:    credential,
	}, nil
}

// AuthenticateOptional never rejects: any missing or invalid credential
// yields a nil Identity and the request proceeds unauthenticated. It verifies
// the credential only; revocation state is not consulted on this path.
func (e *Engine) AuthenticateOptional(authorizationHeader string) *Identity {
	credential, ok := token.ExtractBearer(authorizationHeader)
	if !ok {
		return nil
	}
	claims, verr := e.tokens.Verify(credential, token.TypeAccess)
	if verr != nil {
		return nil
	}
	return &Identity{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Token:    credential,
	}
}

// CheckRefresh verifies a refresh credential's structure, signature, type,
// and expiry. Revocation checks happen later, inside Refresh.
func (e *Engine) CheckRefresh(credential string) (*token.Claims, *Error) {
	claims, verr := e.tokens.Verify(credential, token.TypeRefresh)
	if verr != nil {
		return nil, fromVerifyError(verr)
	}
	return claims, nil
}

// checkLogoutWatermark rejects any credential issued before the subject's
// recorded global logout, regardless of the credential's own expiry. The
// watermark is in milliseconds; claim issue times are in seconds.
func (e *Engine) checkLogoutWatermark(ctx context.Context, claims *token.Claims) *Error {
	watermark, ok, err := e.revocations.LogoutWatermark(ctx, claims.UserID)
	if err != nil {
		return internalError(CodeUnauthorized, "Internal server error")
	}
	if ok && claims.IssuedAt*1000 < watermark {
		return &Error{
			Code:    CodeTokenInvalid,
			Message: "Token has been invalidated",
			Status:  http.StatusForbidden,
		}
	}
	return nil
}

// fromVerifyError maps a verification failure onto the HTTP surface: expiry
// is 401, everything else 403.
func fromVerifyError(verr *token.VerifyError) *Error {
	status := http.StatusForbidden
	if verr.Code == token.CodeExpired {
		status = http.StatusUnauthorized
	}
	return &Error{
		Code:    Code(verr.Code),
		Message: verr.Message,
		Status:  status,
	}
}

func internalError(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}
