package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateEmail is returned by InsertIfAbsent when the email is
// already registered. Exactly one of two concurrent inserts for the
// same email observes it.
var ErrDuplicateEmail = errors.New("email already registered")

// Account is a registered user record. The email is the identity key
// and is immutable once inserted; PasswordHash is an opaque salted
// record owned by the security layer and must never leave the core.
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines the data-access contract for the user
// directory. Implementations live in internal/core/repository (Core
// layer). The Logic layer depends on this interface only — never on
// SQL, pgx, or the in-memory store directly.
type UserRepository interface {
	// InsertIfAbsent stores the account keyed by its email. The
	// existence check and insert are atomic: concurrent inserts for
	// the same email cannot both succeed, the loser gets
	// ErrDuplicateEmail.
	InsertIfAbsent(ctx context.Context, account Account) error

	// GetByEmail returns the account matching the given email.
	// Returns (nil, nil) when no account is found.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// GetByID returns the account with the given identifier.
	// Returns (nil, nil) when no account is found.
	GetByID(ctx context.Context, id string) (*Account, error)
}
