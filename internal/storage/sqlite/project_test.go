package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

func seedAccount(t *testing.T, db *DB, id string) {
	t.Helper()
	require.NoError(t, NewAccountRepository(db).Create(context.Background(), &Account{
		ID: id, Name: "User " + id, Email: id + "@example.com", PasswordHash: "h",
	}))
}

func TestProjectRepository_ReplaceAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedAccount(t, db, "a1")

	records := []types.ProjectRecord{
		{ID: "p1", Name: "Research", Windows: []types.Window{
			{ID: "w1", X: 0, Y: 0, W: 2, H: 2, Content: "<p>hi</p>", Background: "bg-white/80", ContentType: types.ContentText},
		}},
		{ID: "p2", Name: "Moodboard", Windows: []types.Window{}},
	}
	require.NoError(t, repo.ReplaceAll(ctx, "a1", records))

	listed, err := repo.ListByAccount(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Equal(t, "p1", listed[0].ID)
	require.Equal(t, "p2", listed[1].ID)
	require.Len(t, listed[0].Windows, 1)
	require.Equal(t, "<p>hi</p>", listed[0].Windows[0].Content)
}

func TestProjectRepository_ReplaceDropsStale(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedAccount(t, db, "a1")

	require.NoError(t, repo.ReplaceAll(ctx, "a1", []types.ProjectRecord{
		{ID: "p1", Name: "Old"},
		{ID: "p2", Name: "Stale"},
	}))
	require.NoError(t, repo.ReplaceAll(ctx, "a1", []types.ProjectRecord{
		{ID: "p3", Name: "Fresh"},
	}))

	listed, err := repo.ListByAccount(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, "Fresh", listed[0].Name)
}

func TestProjectRepository_AccountIsolation(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()
	seedAccount(t, db, "a1")
	seedAccount(t, db, "a2")

	require.NoError(t, repo.ReplaceAll(ctx, "a1", []types.ProjectRecord{{ID: "p1", Name: "Mine"}}))
	require.NoError(t, repo.ReplaceAll(ctx, "a2", []types.ProjectRecord{{ID: "p1", Name: "Theirs"}}))

	mine, err := repo.ListByAccount(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Mine", mine[0].Name)

	theirs, err := repo.ListByAccount(ctx, "a2")
	require.NoError(t, err)
	require.Equal(t, "Theirs", theirs[0].Name)
}

func TestProjectRepository_EmptyAccount(t *testing.T) {
	db := NewTestDB(t)
	repo := NewProjectRepository(db)
	seedAccount(t, db, "a1")

	listed, err := repo.ListByAccount(context.Background(), "a1")
	require.NoError(t, err)
	require.Empty(t, listed)
}
