// Package blob stores imported binary payloads and serves them back by
// handle. Handles are URL paths so stored content drops straight into
// window markup.
package blob

import (
	"context"

	"github.com/GriffinCanCode/GridBoard/internal/shared/id"
	"github.com/GriffinCanCode/GridBoard/internal/storage/sqlite"
)

// HandlePrefix is the URL path prefix for stored blobs
const HandlePrefix = "/blobs/"

// Store persists blobs through the SQLite repository
type Store struct {
	repo *sqlite.BlobRepository
}

// NewStore creates a blob store
func NewStore(repo *sqlite.BlobRepository) *Store {
	return &Store{repo: repo}
}

// For binds the store to one account for imports
func (s *Store) For(accountID string) *AccountStore {
	return &AccountStore{repo: s.repo, accountID: accountID}
}

// Get retrieves a blob by the id portion of its handle
func (s *Store) Get(ctx context.Context, blobID string) (*sqlite.Blob, error) {
	return s.repo.Get(ctx, blobID)
}

// AccountStore writes blobs on behalf of one account. It satisfies the
// classifier's blob sink.
type AccountStore struct {
	repo      *sqlite.BlobRepository
	accountID string
}

// Put stores a payload and returns its serving handle
func (a *AccountStore) Put(contentType string, data []byte) (string, error) {
	blobID := id.NewBlobID().String()
	err := a.repo.Put(context.Background(), &sqlite.Blob{
		ID:          blobID,
		AccountID:   a.accountID,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return "", err
	}
	return HandlePrefix + blobID, nil
}
