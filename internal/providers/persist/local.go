package persist

import (
	"context"

	"github.com/GriffinCanCode/GridBoard/internal/providers/auth"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
	"github.com/GriffinCanCode/GridBoard/internal/storage/sqlite"
)

// Local serves profile and project persistence straight from SQLite.
// It is the default client when no remote store is configured and the
// store behind the persistence API's own handlers.
type Local struct {
	auth     *auth.Service
	projects *sqlite.ProjectRepository
}

// NewLocal creates a SQLite-backed persistence client
func NewLocal(authSvc *auth.Service, projects *sqlite.ProjectRepository) *Local {
	return &Local{auth: authSvc, projects: projects}
}

// FetchProfile loads the account and its projects for a valid token
func (l *Local) FetchProfile(ctx context.Context, token string) (*types.Profile, error) {
	acct, err := l.auth.Account(ctx, token)
	if err != nil {
		return nil, err
	}

	records, err := l.projects.ListByAccount(ctx, acct.ID)
	if err != nil {
		return nil, err
	}

	return &types.Profile{
		ID:       acct.ID,
		Name:     acct.Name,
		Email:    acct.Email,
		Projects: records,
	}, nil
}

// ReplaceProjects swaps the account's project set for the snapshot
func (l *Local) ReplaceProjects(ctx context.Context, token string, projects []types.ProjectRecord) ([]types.ProjectRecord, error) {
	accountID, err := l.auth.Verify(token)
	if err != nil {
		return nil, err
	}

	if err := l.projects.ReplaceAll(ctx, accountID, projects); err != nil {
		return nil, err
	}

	return l.projects.ListByAccount(ctx, accountID)
}
