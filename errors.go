package authkit

import "errors"

// Code is the stable failure classification reported to clients. Values are
// part of the wire contract.
type Code string

const (
	// CodeInvalidCredentials marks a rejected username/password pair.
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	// CodeTokenExpired marks credentials past their expiry.
	CodeTokenExpired Code = "TOKEN_EXPIRED"
	// CodeTokenInvalid covers structural, signature, type, and revocation
	// failures.
	CodeTokenInvalid Code = "TOKEN_INVALID"
	// CodeUserNotFound marks a subject missing from the system of record.
	CodeUserNotFound Code = "USER_NOT_FOUND"
	// CodeUnauthorized marks missing or malformed authentication.
	CodeUnauthorized Code = "UNAUTHORIZED"
)

var (
	// ErrInvalidCredentials is returned by UserProvider implementations when
	// the presented username/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by UserProvider implementations when the
	// subject does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// Error is an authentication failure with its stable code, client-facing
// message, and HTTP status. Engine operations return *Error so call sites can
// branch on the two result variants explicitly instead of probing response
// shapes.
type Error struct {
	Code    Code
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Message
}
