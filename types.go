package authkit

import (
	"context"
	"time"
)

// User is an account record in the collaborating system of record.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserProvider is the interface callers implement to connect authkit to their
// user database. Authenticate returns ErrInvalidCredentials on a bad pair and
// FindByID returns ErrUserNotFound for an absent subject; any other error is
// treated as a backend failure.
type UserProvider interface {
	Authenticate(ctx context.Context, username, password string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
}

// Identity is the authenticated request context produced by the session gate.
// It is the single canonical shape: ID, display name, contact identifier, and
// the exact credential string the request presented.
type Identity struct {
	ID       string
	Username string
	Email    string
	Token    string
}

// LoginResult carries the freshly minted credential pair plus the subject it
// was minted for.
type LoginResult struct {
	User         *User
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RefreshResult carries the rotated credential pair.
type RefreshResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}
