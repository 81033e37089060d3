package token

import (
	"errors"
	"strings"
	"time"
)

// Credential lifetimes. Remember-me trades a longer window for fewer logins;
// the refresh blacklist TTLs in the revocation package must cover the longest
// lifetime of each class.
const (
	AccessLifetime           = 24 * time.Hour
	AccessLifetimeRemembered = 30 * 24 * time.Hour

	RefreshLifetime           = 7 * 24 * time.Hour
	RefreshLifetimeRemembered = 90 * 24 * time.Hour
)

// Config carries the secret pair for a Manager. The two secrets must differ:
// cross-class verification relies on the signature check failing when a
// refresh credential is presented as an access credential and vice versa.
type Config struct {
	AccessSecret  string
	RefreshSecret string
}

// Manager mints and verifies both credential classes. It holds only the two
// secrets and is safe for concurrent use.
type Manager struct {
	accessSecret  string
	refreshSecret string
}

// Subject is the identity slice embedded into every credential.
type Subject struct {
	UserID   string
	Username string
	Email    string
}

// NewManager validates the secret pair and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token: both access and refresh secrets are required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("token: access and refresh secrets must differ")
	}
	return &Manager{
		accessSecret:  cfg.AccessSecret,
		refreshSecret: cfg.RefreshSecret,
	}, nil
}

// Lifetime returns the policy lifetime for a credential class.
func Lifetime(typ Type, rememberMe bool) time.Duration {
	switch {
	case typ == TypeAccess && rememberMe:
		return AccessLifetimeRemembered
	case typ == TypeAccess:
		return AccessLifetime
	case rememberMe:
		return RefreshLifetimeRemembered
	default:
		return RefreshLifetime
	}
}

// LifetimeSeconds mirrors the access-credential lifetime policy as an integer
// second count, reported to clients as expiresIn.
func LifetimeSeconds(rememberMe bool) int64 {
	return int64(Lifetime(TypeAccess, rememberMe) / time.Second)
}

// IssueAccess mints an access credential for s.
func (m *Manager) IssueAccess(s Subject, rememberMe bool) (string, error) {
	return m.issue(s, TypeAccess, m.accessSecret, rememberMe)
}

// IssueRefresh mints a refresh credential for s.
func (m *Manager) IssueRefresh(s Subject, rememberMe bool) (string, error) {
	return m.issue(s, TypeRefresh, m.refreshSecret, rememberMe)
}

func (m *Manager) issue(s Subject, typ Type, secret string, rememberMe bool) (string, error) {
	now := time.Now().Unix()
	claims := Claims{
		UserID:    s.UserID,
		Username:  s.Username,
		Email:     s.Email,
		IssuedAt:  now,
		ExpiresAt: now + int64(Lifetime(typ, rememberMe)/time.Second),
		Type:      typ,
	}

	signingString, err := SigningString(claims)
	if err != nil {
		return "", err
	}
	sig, err := Sign(signingString, secret)
	if err != nil {
		return "", err
	}
	return signingString + "." + sig, nil
}

// Verify checks credential against the expected class and returns its claims.
// Checks run in a fixed order: segment structure, signature under the
// class-specific secret, payload decode, type tag, expiry. The signature check
// runs before the type tag is read, so a credential of the wrong class fails
// as a signature mismatch when the secrets differ.
func (m *Manager) Verify(credential string, typ Type) (*Claims, *VerifyError) {
	secret := m.accessSecret
	if typ == TypeRefresh {
		secret = m.refreshSecret
	}

	signingString, signature, err := Split(credential)
	if err != nil {
		return nil, &VerifyError{
			Code:    CodeInvalid,
			Message: "Invalid " + string(typ) + " token format",
		}
	}

	if !VerifySignature(signingString, signature, secret) {
		return nil, &VerifyError{
			Code:    CodeInvalid,
			Message: "Invalid " + string(typ) + " token signature",
		}
	}

	claims, err := DecodeClaims(payloadSegment(signingString))
	if err != nil {
		// A credential that carries a valid signature over an undecodable
		// payload still collapses to the generic invalid result.
		return nil, &VerifyError{
			Code:    CodeInvalid,
			Message: "Invalid " + string(typ) + " token",
		}
	}

	if claims.Type != typ {
		return nil, &VerifyError{
			Code:    CodeInvalid,
			Message: "Invalid token type",
		}
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, &VerifyError{
			Code:    CodeExpired,
			Message: typeLabel(typ) + " token has expired",
		}
	}

	return claims, nil
}

// ExtractBearer pulls the credential out of an Authorization header value.
// The header must be exactly two space-separated fields with a literal
// "Bearer" scheme; anything else yields ok=false.
func ExtractBearer(headerValue string) (string, bool) {
	if headerValue == "" {
		return "", false
	}
	parts := strings.Split(headerValue, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func typeLabel(typ Type) string {
	if typ == TypeRefresh {
		return "Refresh"
	}
	return "Access"
}
