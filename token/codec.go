package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
)

// Type tags a credential as belonging to the access or refresh class. The tag
// is fixed at mint time and round-trips unchanged through encode/decode.
type Type string

const (
	// TypeAccess marks short-lived credentials presented on every request.
	TypeAccess Type = "access"
	// TypeRefresh marks long-lived credentials presented only to the refresh
	// endpoint.
	TypeRefresh Type = "refresh"
)

// Claims is the credential payload. Field names are part of the wire contract
// and must not change.
type Claims struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
	Type      Type   `json:"type"`
}

// Lifetime returns exp-iat.
func (c *Claims) Lifetime() int64 {
	return c.ExpiresAt - c.IssuedAt
}

type header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// encodedHeader is identical across every credential this system issues.
var encodedHeader = func() string {
	b, err := json.Marshal(header{Alg: "HS256", Typ: "JWT"})
	if err != nil {
		panic(err)
	}
	return encodeSegment(b)
}()

// ErrMalformed is returned by Split when a credential does not have exactly
// three dot-separated segments.
var ErrMalformed = errors.New("token: malformed credential")

func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

func decodeSegment(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// SigningString serializes claims into the unsigned "header.payload" prefix of
// a credential.
func SigningString(c Claims) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return encodedHeader + "." + encodeSegment(payload), nil
}

// Split structurally parses a credential into its unsigned prefix and
// signature segment. It performs no signature verification and attaches no
// semantics to either part.
func Split(credential string) (signingString, signature string, err error) {
	parts := strings.Split(credential, ".")
	if len(parts) != 3 {
		return "", "", ErrMalformed
	}
	return parts[0] + "." + parts[1], parts[2], nil
}

// DecodeClaims reverses the payload segment of a credential back into Claims.
func DecodeClaims(payloadSegment string) (*Claims, error) {
	raw, err := decodeSegment(payloadSegment)
	if err != nil {
		return nil, err
	}
	var c Claims
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// payloadSegment extracts the middle segment of an already Split-validated
// credential.
func payloadSegment(signingString string) string {
	if i := strings.IndexByte(signingString, '.'); i >= 0 {
		return signingString[i+1:]
	}
	return signingString
}
