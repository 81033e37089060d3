package authkit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gourmoire/authkit/revocation"
	"github.com/gourmoire/authkit/token"
)

// rememberMeThreshold separates the two refresh lifetime policies: a refresh
// credential living longer than the normal 7 days must have been minted with
// rememberMe. The flag is fixed at mint time and re-derived here on every
// rotation, so it propagates forward without being stored anywhere.
const rememberMeThreshold = int64(token.RefreshLifetime / time.Second)

// Refresh rotates a credential pair. The presented refresh credential is
// verified, checked against the blacklist and the subject's logout watermark,
// and the subject is re-read from the system of record. On success a new pair
// is minted from the current user record, the consumed refresh credential is
// blacklisted for its maximum possible remaining lifetime, and a bookkeeping
// record for the new refresh credential is written.
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (*RefreshResult, *Error) {
	claims, aerr := e.CheckRefresh(refreshToken)
	if aerr != nil {
		return nil, aerr
	}

	revoked, err := e.revocations.IsBlacklisted(ctx, refreshToken)
	if err != nil {
		return nil, internalError(CodeTokenInvalid, "Internal server error during token refresh")
	}
	if revoked {
		return nil, &Error{
			Code:    CodeTokenInvalid,
			Message: "Refresh token has been revoked",
			Status:  http.StatusForbidden,
		}
	}

	if aerr := e.checkLogoutWatermark(ctx, claims); aerr != nil {
		return nil, aerr
	}

	user, err := e.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, &Error{
				Code:    CodeUserNotFound,
				Message: "User not found",
				Status:  http.StatusNotFound,
			}
		}
		return nil, internalError(CodeTokenInvalid, "Internal server error during token refresh")
	}

	rememberMe := claims.Lifetime() > rememberMeThreshold

	subject := token.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	newAccess, err := e.tokens.IssueAccess(subject, rememberMe)
	if err != nil {
		return nil, internalError(CodeTokenInvalid, "Internal server error during token refresh")
	}
	newRefresh, err := e.tokens.IssueRefresh(subject, rememberMe)
	if err != nil {
		return nil, internalError(CodeTokenInvalid, "Internal server error during token refresh")
	}

	// Rotation: the consumed credential must never be usable again, even
	// though it is still unexpired and validly signed.
	if err := e.revocations.BlacklistToken(ctx, refreshToken, revocation.RefreshBlacklistTTL); err != nil {
		return nil, internalError(CodeTokenInvalid, "Internal server error during token refresh")
	}

	ttl := token.Lifetime(token.TypeRefresh, rememberMe)
	if err := e.revocations.SaveRefreshToken(ctx, user.ID, newRefresh, time.Now(), ttl); err != nil {
		return nil, internalError(CodeTokenInvalid, "Internal server error during token refresh")
	}

	return &RefreshResult{
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
		ExpiresIn:    token.LifetimeSeconds(rememberMe),
	}, nil
}
