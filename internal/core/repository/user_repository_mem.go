package repository

import (
	"context"
	"sync"

	"github.com/authwindow/auth-service/internal/core/domain"
)

// MemoryUserRepository implements domain.UserRepository with an
// in-process map. It is the reference store: single-process, nothing
// survives a restart.
//
// Locking policy: one RWMutex over the whole store. Coarse by choice —
// registration volume does not justify per-key sharding, and the
// single writer lock is what makes the existence-check+insert atomic.
// Sharding by key hash would be an internal optimization; the
// UserRepository contract would not change.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byEmail map[string]domain.Account
	byID    map[string]domain.Account
}

// NewMemoryUserRepository creates an empty in-memory user directory.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byEmail: make(map[string]domain.Account),
		byID:    make(map[string]domain.Account),
	}
}

// InsertIfAbsent stores the account keyed by its email. The check and
// the insert happen under the same write lock, so concurrent inserts
// for one email cannot both succeed. The insert is all-or-nothing: a
// caller cancelled mid-registration never leaves a partial record.
func (r *MemoryUserRepository) InsertIfAbsent(_ context.Context, account domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return domain.ErrDuplicateEmail
	}
	r.byEmail[account.Email] = account
	r.byID[account.ID] = account
	return nil
}

// GetByEmail returns a copy of the account matching the given email.
// Returns (nil, nil) when no account is found.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return &account, nil
}

// GetByID returns a copy of the account with the given identifier.
// Returns (nil, nil) when no account is found.
func (r *MemoryUserRepository) GetByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &account, nil
}
