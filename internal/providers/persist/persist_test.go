package persist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/GriffinCanCode/GridBoard/internal/providers/auth"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
	"github.com/GriffinCanCode/GridBoard/internal/storage/sqlite"
)

func newLocalFixture(t *testing.T) (*Local, string) {
	t.Helper()
	db := sqlite.NewTestDB(t)
	authSvc := auth.NewService(sqlite.NewAccountRepository(db), time.Hour, bcrypt.MinCost)

	ctx := context.Background()
	_, err := authSvc.Register(ctx, "Alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	session, err := authSvc.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)

	return NewLocal(authSvc, sqlite.NewProjectRepository(db)), session.Token
}

func TestLocalRoundTrip(t *testing.T) {
	local, token := newLocalFixture(t)
	ctx := context.Background()

	snapshot := []types.ProjectRecord{
		{ID: "p1", Name: "Research", Windows: []types.Window{
			{ID: "w1", W: 2, H: 2, Content: "<p>hi</p>", ContentType: types.ContentText},
		}},
	}
	saved, err := local.ReplaceProjects(ctx, token, snapshot)
	require.NoError(t, err)
	require.Len(t, saved, 1)

	profile, err := local.FetchProfile(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "Alice", profile.Name)
	require.Len(t, profile.Projects, 1)
	require.Equal(t, "Research", profile.Projects[0].Name)
}

func TestLocalRejectsBadToken(t *testing.T) {
	local, _ := newLocalFixture(t)
	ctx := context.Background()

	_, err := local.FetchProfile(ctx, "bogus")
	require.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = local.ReplaceProjects(ctx, "bogus", nil)
	require.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestRemoteFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/user", r.URL.Path)
		require.Equal(t, "tok-123", r.Header.Get("x-auth-token"))

		data, _ := sonic.Marshal(types.Profile{
			ID:   "a1",
			Name: "Alice",
			Projects: []types.ProjectRecord{
				{ID: "p1", Name: "Research"},
			},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	profile, err := remote.FetchProfile(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Equal(t, "Alice", profile.Name)
	require.Len(t, profile.Projects, 1)
}

func TestRemoteReplaceProjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/user-data", r.URL.Path)

		var received []types.ProjectRecord
		require.NoError(t, sonic.ConfigDefault.NewDecoder(r.Body).Decode(&received))
		require.Len(t, received, 1)

		w.Header().Set("Content-Type", "application/json")
		data, _ := sonic.Marshal(received)
		w.Write(data)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	saved, err := remote.ReplaceProjects(context.Background(), "tok-123", []types.ProjectRecord{
		{ID: "p1", Name: "Research"},
	})
	require.NoError(t, err)
	require.Len(t, saved, 1)
	require.Equal(t, "p1", saved[0].ID)
}

func TestRemoteFetchRetriesTransientFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		data, _ := sonic.Marshal(types.Profile{ID: "a1", Name: "Alice"})
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	profile, err := remote.FetchProfile(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Equal(t, "Alice", profile.Name)
	require.Equal(t, int32(2), hits.Load())
}

func TestRemoteSaveNeverRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	_, err := remote.ReplaceProjects(context.Background(), "tok-123", nil)
	require.Error(t, err)
	require.Equal(t, int32(1), hits.Load())
}

func TestRemoteErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	remote := NewRemote(srv.URL)
	_, err := remote.FetchProfile(context.Background(), "expired")
	require.Error(t, err)
}
