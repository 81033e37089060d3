package token

// Code classifies verification failures. The string values are stable and
// reported to clients unchanged.
type Code string

const (
	// CodeInvalid covers structural, signature, and type-tag failures.
	CodeInvalid Code = "TOKEN_INVALID"
	// CodeExpired is returned only when structure, signature, and type all
	// checked out but the credential's expiry has passed.
	CodeExpired Code = "TOKEN_EXPIRED"
)

// VerifyError is the failure variant of a verification result. A nil
// *VerifyError from Manager.Verify means the claims are valid; a non-nil one
// carries the stable code and a client-facing message.
type VerifyError struct {
	Code    Code
	Message string
}

func (e *VerifyError) Error() string {
	return e.Message
}
