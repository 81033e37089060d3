package token

import (
	"encoding/base64"

	"github.com/golang-jwt/jwt/v5"
)

// hs256 is the only signing method this subsystem ever uses. Its Verify
// recomputes the MAC and compares with hmac.Equal, so callers get a
// constant-time comparison without handling raw key material here.
var hs256 = jwt.SigningMethodHS256

// Sign computes the HMAC-SHA256 signature of data under secret and returns it
// base64url-encoded without padding. The output is deterministic: identical
// inputs always produce an identical signature.
func Sign(data, secret string) (string, error) {
	sig, err := hs256.Sign(data, []byte(secret))
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(sig), nil
}

// VerifySignature reports whether signature is the base64url-encoded
// HMAC-SHA256 of data under secret. Undecodable signatures simply fail.
func VerifySignature(data, signature, secret string) bool {
	sig, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return hs256.Verify(data, sig, []byte(secret)) == nil
}
