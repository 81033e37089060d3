// Package userstore provides an in-memory system of record implementing
// authkit.UserProvider, used by the bundled service and by tests. Production
// deployments substitute their own database-backed provider.
package userstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gourmoire/authkit"
	"github.com/gourmoire/authkit/password"
)

// ErrDuplicateUsername is returned by Create when the username is taken.
var ErrDuplicateUsername = errors.New("userstore: username already exists")

// Memory is a thread-safe in-memory user store.
type Memory struct {
	hasher *password.Hasher

	mu     sync.RWMutex
	byID   map[string]*authkit.User
	byName map[string]*authkit.User
}

// NewMemory returns an empty store using hasher for password storage.
func NewMemory(hasher *password.Hasher) *Memory {
	return &Memory{
		hasher: hasher,
		byID:   make(map[string]*authkit.User),
		byName: make(map[string]*authkit.User),
	}
}

// Create adds a user with a fresh ID and a hashed password. Usernames are
// unique; creating a duplicate fails.
func (m *Memory) Create(username, email, plaintext string) (*authkit.User, error) {
	hash, err := m.hasher.Hash(plaintext)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[username]; exists {
		return nil, ErrDuplicateUsername
	}

	user := &authkit.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	m.byID[user.ID] = user
	m.byName[user.Username] = user

	u := *user
	return &u, nil
}

// Delete removes a user by ID. Deleting an absent user is a no-op.
func (m *Memory) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := m.byID[id]; ok {
		delete(m.byName, user.Username)
		delete(m.byID, id)
	}
}

// Authenticate implements authkit.UserProvider.
func (m *Memory) Authenticate(_ context.Context, username, plaintext string) (*authkit.User, error) {
	m.mu.RLock()
	user, ok := m.byName[username]
	m.mu.RUnlock()

	if !ok {
		return nil, authkit.ErrInvalidCredentials
	}
	if !m.hasher.Compare(user.PasswordHash, plaintext) {
		return nil, authkit.ErrInvalidCredentials
	}

	u := *user
	return &u, nil
}

// FindByID implements authkit.UserProvider.
func (m *Memory) FindByID(_ context.Context, id string) (*authkit.User, error) {
	m.mu.RLock()
	user, ok := m.byID[id]
	m.mu.RUnlock()

	if !ok {
		return nil, authkit.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// FindByUsername implements authkit.UserProvider.
func (m *Memory) FindByUsername(_ context.Context, username string) (*authkit.User, error) {
	m.mu.RLock()
	user, ok := m.byName[username]
	m.mu.RUnlock()

	if !ok {
		return nil, authkit.ErrUserNotFound
	}
	u := *user
	return &u, nil
}
