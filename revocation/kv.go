package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrUnavailable wraps transport-level failures of the backing store. Callers
// surface it as a generic internal error; this package never retries.
var ErrUnavailable = errors.New("revocation store unavailable")

// KV is the capability this package needs from its backing store: string keys
// with per-key TTLs and atomic single-key reads and writes. Any store that can
// do that can replace Redis here.
type KV interface {
	// Get returns the value at key, or ok=false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set writes value at key with the given time-to-live.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// RedisKV implements KV on a go-redis client.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps client as a KV.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return value, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (r *RedisKV) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
