package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountRepository_Create(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	acct := &Account{
		ID:           "a1",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "$2a$10$hash",
	}
	require.NoError(t, repo.Create(ctx, acct))

	retrieved, err := repo.Get(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "Alice", retrieved.Name)
	require.Equal(t, "alice@example.com", retrieved.Email)
	require.Equal(t, "$2a$10$hash", retrieved.PasswordHash)
	require.False(t, retrieved.CreatedAt.IsZero())
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Account{
		ID: "a1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h",
	}))

	err := repo.Create(ctx, &Account{
		ID: "a2", Name: "Impostor", Email: "alice@example.com", PasswordHash: "h",
	})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestAccountRepository_GetByEmail(t *testing.T) {
	db := NewTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &Account{
		ID: "a1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h",
	}))

	retrieved, err := repo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "a1", retrieved.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestBlobRepository_RoundTrip(t *testing.T) {
	db := NewTestDB(t)
	accounts := NewAccountRepository(db)
	blobs := NewBlobRepository(db)
	ctx := context.Background()

	require.NoError(t, accounts.Create(ctx, &Account{
		ID: "a1", Name: "Alice", Email: "alice@example.com", PasswordHash: "h",
	}))

	payload := []byte("%PDF-1.4 fake")
	require.NoError(t, blobs.Put(ctx, &Blob{
		ID: "b1", AccountID: "a1", ContentType: "application/pdf", Data: payload,
	}))

	blob, err := blobs.Get(ctx, "b1")
	require.NoError(t, err)
	require.Equal(t, "application/pdf", blob.ContentType)
	require.Equal(t, payload, blob.Data)

	_, err = blobs.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
