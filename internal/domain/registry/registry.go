// Package registry is the process-wide directory mapping username to
// its (account.Store, gatekeeper.Gatekeeper) pair, with atomic
// uniqueness enforcement on creation.
package registry

import (
	"errors"
	"sync"

	"bank-core/internal/domain/account"
	"bank-core/internal/domain/gatekeeper"
)

// ErrUserAlreadyExists is returned by CreateUser when username is
// already registered.
var ErrUserAlreadyExists = errors.New("registry: user already exists")

// ErrUserDoesNotExist is returned by Resolve when username has no
// registered entry.
var ErrUserDoesNotExist = errors.New("registry: user does not exist")

// Entry is one user's pair of handles. Both fields are always
// non-nil — the Registry never exposes a half-created entry.
type Entry struct {
	Store      *account.Store
	Gatekeeper *gatekeeper.Gatekeeper
}

// Registry is a read-mostly, rare-write directory: lookups happen on
// every operation, creations only once per user. A single RWMutex
// matches that access pattern.
type Registry struct {
	capacity int

	mu      sync.RWMutex
	entries map[string]*Entry
}

// New returns an empty Registry whose Gatekeepers all admit up to
// capacity concurrent operations per user.
func New(capacity int) *Registry {
	return &Registry{
		capacity: capacity,
		entries:  make(map[string]*Entry),
	}
}

// CreateUser registers username with a fresh, empty Store and
// Gatekeeper. Among any set of concurrent CreateUser calls for the same
// username, exactly one succeeds; the rest observe ErrUserAlreadyExists.
// On success, both handles are fully addressable before CreateUser
// returns; on failure, neither is registered.
func (r *Registry) CreateUser(username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[username]; exists {
		return ErrUserAlreadyExists
	}

	r.entries[username] = &Entry{
		Store:      account.New(),
		Gatekeeper: gatekeeper.New(r.capacity),
	}
	return nil
}

// Resolve returns username's handles, or ErrUserDoesNotExist if
// username was never created.
func (r *Registry) Resolve(username string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[username]
	if !exists {
		return nil, ErrUserDoesNotExist
	}
	return entry, nil
}

// Exists reports whether username is registered, without returning the
// entry or an error.
func (r *Registry) Exists(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.entries[username]
	return exists
}
