package token

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
)

func TestEncodedHeaderIsCanonical(t *testing.T) {
	raw, err := base64.RawURLEncoding.DecodeString(encodedHeader)
	if err != nil {
		t.Fatalf("header segment not base64url: %v", err)
	}
	if string(raw) != `{"alg":"HS256","typ":"JWT"}` {
		t.Fatalf("unexpected header bytes: %s", raw)
	}
}

func TestSigningStringHasNoPadding(t *testing.T) {
	s, err := SigningString(Claims{
		UserID:    "u1",
		Username:  "alice",
		Email:     "a@example.com",
		IssuedAt:  1700000000,
		ExpiresAt: 1700086400,
		Type:      TypeAccess,
	})
	if err != nil {
		t.Fatalf("SigningString failed: %v", err)
	}
	if strings.ContainsAny(s, "=+/") {
		t.Fatalf("signing string contains non-url-safe or padding characters: %q", s)
	}
	if strings.Count(s, ".") != 1 {
		t.Fatalf("expected exactly one separator, got %q", s)
	}
}

func TestSplitRequiresThreeSegments(t *testing.T) {
	if _, _, err := Split("a.b"); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if _, _, err := Split("a.b.c.d"); err != ErrMalformed {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}

	signingString, sig, err := Split("a.b.c")
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if signingString != "a.b" || sig != "c" {
		t.Fatalf("unexpected split: %q / %q", signingString, sig)
	}
}

func TestDecodeClaimsRoundTrip(t *testing.T) {
	in := Claims{
		UserID:    "u1",
		Username:  "alice",
		Email:     "",
		IssuedAt:  1700000000,
		ExpiresAt: 1700604800,
		Type:      TypeRefresh,
	}
	s, err := SigningString(in)
	if err != nil {
		t.Fatalf("SigningString failed: %v", err)
	}

	out, err := DecodeClaims(payloadSegment(s))
	if err != nil {
		t.Fatalf("DecodeClaims failed: %v", err)
	}
	if *out != in {
		t.Fatalf("round-trip mismatch: in=%+v out=%+v", in, *out)
	}
}

func TestClaimsWireFieldNames(t *testing.T) {
	b, err := json.Marshal(Claims{UserID: "u1", Username: "alice", Type: TypeAccess})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, field := range []string{`"userId"`, `"username"`, `"email"`, `"iat"`, `"exp"`, `"type"`} {
		if !strings.Contains(string(b), field) {
			t.Fatalf("payload JSON missing %s: %s", field, b)
		}
	}
}

func TestDecodeClaimsRejectsGarbage(t *testing.T) {
	if _, err := DecodeClaims("!!!"); err == nil {
		t.Fatal("expected invalid base64 to fail")
	}
	notJSON := base64.RawURLEncoding.EncodeToString([]byte("not json"))
	if _, err := DecodeClaims(notJSON); err == nil {
		t.Fatal("expected invalid JSON to fail")
	}
}
