package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Account is a registered user row
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AccountRepository persists accounts in SQLite
type AccountRepository struct {
	db *DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account. Returns ErrDuplicate when the email is
// already registered.
func (r *AccountRepository) Create(ctx context.Context, acct *Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		acct.ID,
		acct.Name,
		acct.Email,
		acct.PasswordHash,
	)

	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// GetByEmail retrieves an account by its email address
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM accounts
		WHERE email = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// Get retrieves an account by ID
func (r *AccountRepository) Get(ctx context.Context, id string) (*Account, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM accounts
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *AccountRepository) scanOne(row *sql.Row) (*Account, error) {
	var acct Account
	err := row.Scan(
		&acct.ID,
		&acct.Name,
		&acct.Email,
		&acct.PasswordHash,
		&acct.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &acct, nil
}
