// Package persist provides the durable-store clients behind workspace
// hydration and sync: a remote HTTP client and a local SQLite adapter.
package persist

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

const authHeader = "x-auth-token"

// Remote talks to the persistence API over HTTP. Profile fetches retry
// with backoff; project writes never retry, the sync debounce cycle is
// the retry mechanism and a replay could clobber newer state.
type Remote struct {
	fetch *resty.Client
	save  *resty.Client
}

// NewRemote creates a remote persistence client for the given base URL
func NewRemote(baseURL string) *Remote {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	fetch := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "GridBoard/1.0")
	// StandardClient wraps the retry loop in a RoundTripper; handing over
	// the inner transport would skip it.
	fetch.SetTransport(retryClient.StandardClient().Transport)
	fetch.JSONMarshal = sonic.Marshal
	fetch.JSONUnmarshal = sonic.Unmarshal

	save := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "GridBoard/1.0")
	save.JSONMarshal = sonic.Marshal
	save.JSONUnmarshal = sonic.Unmarshal

	return &Remote{fetch: fetch, save: save}
}

// FetchProfile loads the authenticated user's profile
func (r *Remote) FetchProfile(ctx context.Context, token string) (*types.Profile, error) {
	var profile types.Profile
	resp, err := r.fetch.R().
		SetContext(ctx).
		SetHeader(authHeader, token).
		SetResult(&profile).
		Get("/user")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("profile fetch returned %s", resp.Status())
	}
	return &profile, nil
}

// ReplaceProjects writes the full project snapshot and returns the
// stored state
func (r *Remote) ReplaceProjects(ctx context.Context, token string, projects []types.ProjectRecord) ([]types.ProjectRecord, error) {
	var saved []types.ProjectRecord
	resp, err := r.save.R().
		SetContext(ctx).
		SetHeader(authHeader, token).
		SetBody(projects).
		SetResult(&saved).
		Put("/user-data")
	if err != nil {
		return nil, fmt.Errorf("failed to save projects: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("project save returned %s", resp.Status())
	}
	return saved, nil
}
