package authkit

import (
	"context"
	"net/http"
	"time"

	"github.com/gourmoire/authkit/revocation"
)

// Logout revokes the presented access credential, optionally a refresh
// credential supplied alongside it, and writes the subject's logout
// watermark. The watermark invalidates every access credential issued before
// this instant, not only the one presented.
//
// The three writes are ordered and not atomic as a group: a failure aborts
// with an error and earlier writes are not rolled back. A partial state only
// strengthens revocation once the watermark lands, and every record expires
// on its own TTL.
func (e *Engine) Logout(ctx context.Context, identity *Identity, refreshToken string) *Error {
	if identity == nil {
		return &Error{
			Code:    CodeUnauthorized,
			Message: "Authentication required",
			Status:  http.StatusUnauthorized,
		}
	}

	if err := e.revocations.BlacklistToken(ctx, identity.Token, revocation.AccessBlacklistTTL); err != nil {
		return internalError(CodeUnauthorized, "Internal server error during logout")
	}

	if refreshToken != "" {
		if err := e.revocations.BlacklistToken(ctx, refreshToken, revocation.RefreshBlacklistTTL); err != nil {
			return internalError(CodeUnauthorized, "Internal server error during logout")
		}
	}

	if err := e.revocations.SetLogoutWatermark(ctx, identity.ID, time.Now()); err != nil {
		return internalError(CodeUnauthorized, "Internal server error during logout")
	}

	return nil
}
