package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Blob is a stored binary payload referenced from window content
type Blob struct {
	ID          string
	AccountID   string
	ContentType string
	Data        []byte
}

// BlobRepository persists binary payloads in SQLite
type BlobRepository struct {
	db *DB
}

// NewBlobRepository creates a new BlobRepository
func NewBlobRepository(db *DB) *BlobRepository {
	return &BlobRepository{db: db}
}

// Put stores a blob under the given id
func (r *BlobRepository) Put(ctx context.Context, blob *Blob) error {
	query := `
		INSERT INTO blobs (id, account_id, content_type, data)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, blob.ID, blob.AccountID, blob.ContentType, blob.Data)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to store blob: %w", err)
	}

	return nil
}

// Get retrieves a blob by ID
func (r *BlobRepository) Get(ctx context.Context, id string) (*Blob, error) {
	query := `
		SELECT id, account_id, content_type, data
		FROM blobs
		WHERE id = ?
	`

	var blob Blob
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&blob.ID,
		&blob.AccountID,
		&blob.ContentType,
		&blob.Data,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob: %w", err)
	}

	return &blob, nil
}
