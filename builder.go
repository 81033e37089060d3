package authkit

import (
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/gourmoire/authkit/revocation"
	"github.com/gourmoire/authkit/token"
)

// Builder assembles an Engine. Configure it during initialization and call
// Build exactly once.
type Builder struct {
	config Config
	kv     revocation.KV
	users  UserProvider

	built bool
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// WithConfig sets the signing secret pair.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRedis uses client as the revocation store backend.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.kv = revocation.NewRedisKV(client)
	return b
}

// WithKV uses any TTL-capable key-value store as the revocation backend.
// Overrides WithRedis.
func (b *Builder) WithKV(kv revocation.KV) *Builder {
	b.kv = kv
	return b
}

// WithUserProvider connects the system of record.
func (b *Builder) WithUserProvider(users UserProvider) *Builder {
	b.users = users
	return b
}

// Build validates the wiring and returns a ready Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	if b.kv == nil {
		return nil, errors.New("revocation store backend required")
	}
	if b.users == nil {
		return nil, errors.New("user provider required")
	}

	tokens, err := token.NewManager(token.Config{
		AccessSecret:  b.config.AccessSecret,
		RefreshSecret: b.config.RefreshSecret,
	})
	if err != nil {
		return nil, err
	}

	b.built = true

	return &Engine{
		tokens:      tokens,
		revocations: revocation.NewStore(b.kv),
		users:       b.users,
	}, nil
}
