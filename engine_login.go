package authkit

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gourmoire/authkit/token"
)

// Login verifies the username/password pair against the system of record,
// mints an access/refresh credential pair, and persists a bookkeeping record
// for the refresh credential. rememberMe selects the long-lifetime policy for
// both credentials.
func (e *Engine) Login(ctx context.Context, username, password string, rememberMe bool) (*LoginResult, *Error) {
	user, err := e.users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrUserNotFound) {
			return nil, &Error{
				Code:    CodeInvalidCredentials,
				Message: "Invalid username or password",
				Status:  http.StatusUnauthorized,
			}
		}
		return nil, internalError(CodeUnauthorized, "Internal server error during login")
	}

	subject := token.Subject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	}

	accessToken, err := e.tokens.IssueAccess(subject, rememberMe)
	if err != nil {
		return nil, internalError(CodeUnauthorized, "Internal server error during login")
	}
	refreshToken, err := e.tokens.IssueRefresh(subject, rememberMe)
	if err != nil {
		return nil, internalError(CodeUnauthorized, "Internal server error during login")
	}

	ttl := token.Lifetime(token.TypeRefresh, rememberMe)
	if err := e.revocations.SaveRefreshToken(ctx, user.ID, refreshToken, time.Now(), ttl); err != nil {
		return nil, internalError(CodeUnauthorized, "Internal server error during login")
	}

	return &LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    token.LifetimeSeconds(rememberMe),
	}, nil
}
