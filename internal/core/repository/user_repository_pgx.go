package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/authwindow/auth-service/internal/core/domain"
)

// PgxUserRepository implements domain.UserRepository using pgxpool.
// It is the durable variant of the user directory, selected when
// DATABASE_URL is configured. The unique index on users.email carries
// the insert-if-absent invariant: concurrent inserts race in the
// database and exactly one loses with a unique violation.
type PgxUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgxUserRepository creates a new PgxUserRepository.
func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{pool: pool}
}

// InsertIfAbsent inserts the account, mapping a unique violation on
// the email index to domain.ErrDuplicateEmail.
func (r *PgxUserRepository) InsertIfAbsent(ctx context.Context, account domain.Account) error {
	query := `INSERT INTO users (id, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query,
		account.ID, account.Username, account.Email, account.PasswordHash, account.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByEmail returns the account matching the given email.
// Returns (nil, nil) when no account is found.
func (r *PgxUserRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`
	return r.queryOne(ctx, query, email)
}

// GetByID returns the account with the given identifier.
// Returns (nil, nil) when no account is found.
func (r *PgxUserRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *PgxUserRepository) queryOne(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID, &account.Username, &account.Email, &account.PasswordHash, &account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
