package revocation

import (
	"context"
	"strconv"
	"time"

	"github.com/gourmoire/authkit/token"
)

const (
	blacklistPrefix = "blacklist:"
	logoutPrefix    = "user_logout:"
	refreshPrefix   = "refresh_token:"

	// blacklistSentinel is the value stored under blacklist keys. Presence is
	// the signal; the value itself is never inspected.
	blacklistSentinel = "true"
)

// Blacklist TTLs equal the maximum possible remaining lifetime of each
// credential class, so entries expire no earlier than the credentials they
// revoke. The watermark shares the refresh horizon.
const (
	AccessBlacklistTTL  = token.AccessLifetime
	RefreshBlacklistTTL = token.RefreshLifetimeRemembered
	WatermarkTTL        = token.RefreshLifetimeRemembered
)

// Store reads and writes the revocation key families on a KV backend.
type Store struct {
	kv KV
}

// NewStore returns a Store backed by kv.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// BlacklistToken marks the exact credential string as unusable for ttl.
func (s *Store) BlacklistToken(ctx context.Context, credential string, ttl time.Duration) error {
	return s.kv.Set(ctx, blacklistPrefix+credential, blacklistSentinel, ttl)
}

// IsBlacklisted reports whether credential has a live blacklist entry.
func (s *Store) IsBlacklisted(ctx context.Context, credential string) (bool, error) {
	_, ok, err := s.kv.Get(ctx, blacklistPrefix+credential)
	return ok, err
}

// SetLogoutWatermark records a global logout for userID at the given instant,
// stored as unix milliseconds. Overwrites any previous watermark:
// last-writer-wins.
func (s *Store) SetLogoutWatermark(ctx context.Context, userID string, at time.Time) error {
	value := strconv.FormatInt(at.UnixMilli(), 10)
	return s.kv.Set(ctx, logoutPrefix+userID, value, WatermarkTTL)
}

// LogoutWatermark returns the unix-millisecond logout watermark for userID,
// or ok=false when none is recorded. An unparseable value is treated as
// absent rather than locking the user out.
func (s *Store) LogoutWatermark(ctx context.Context, userID string) (int64, bool, error) {
	value, ok, err := s.kv.Get(ctx, logoutPrefix+userID)
	if err != nil || !ok {
		return 0, false, err
	}
	ms, parseErr := strconv.ParseInt(value, 10, 64)
	if parseErr != nil {
		return 0, false, nil
	}
	return ms, true, nil
}

// SaveRefreshToken persists a bookkeeping record for a freshly minted refresh
// credential, keyed by subject and mint instant. The record is write-only:
// the verification path never reads it.
func (s *Store) SaveRefreshToken(ctx context.Context, userID, credential string, mintedAt time.Time, ttl time.Duration) error {
	key := refreshPrefix + userID + ":" + strconv.FormatInt(mintedAt.UnixMilli(), 10)
	return s.kv.Set(ctx, key, credential, ttl)
}
