package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/GridBoard/internal/domain/board"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// DefaultDebounce is the quiet period before a persist fires
const DefaultDebounce = 2 * time.Second

// syncTimeout bounds a single persist dispatch
const syncTimeout = 30 * time.Second

// PersistenceClient is the external durable store collaborator
type PersistenceClient interface {
	FetchProfile(ctx context.Context, token string) (*types.Profile, error)
	ReplaceProjects(ctx context.Context, token string, projects []types.ProjectRecord) ([]types.ProjectRecord, error)
}

// Coordinator debounces and dispatches model persists
type Coordinator struct {
	store     *board.Manager
	client    PersistenceClient
	token     string
	delay     time.Duration
	logger    *logging.Logger
	metrics   *monitoring.Metrics
	backup    *Backup
	backupKey string

	mu      sync.Mutex
	timer   *time.Timer // Pending debounce timer; protected by mu
	enabled bool        // Set after hydration; protected by mu
	closed  bool        // Protected by mu
}

// NewCoordinator creates a sync coordinator for one user's board
func NewCoordinator(store *board.Manager, client PersistenceClient, token string, delay time.Duration, logger *logging.Logger) *Coordinator {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Coordinator{
		store:  store,
		client: client,
		token:  token,
		delay:  delay,
		logger: logger,
	}
}

// WithMetrics adds sync metrics
func (c *Coordinator) WithMetrics(metrics *monitoring.Metrics) *Coordinator {
	c.metrics = metrics
	return c
}

// WithBackup adds a local compressed snapshot written alongside each
// persist, keyed by the given name (normally the user id)
func (c *Coordinator) WithBackup(backup *Backup, key string) *Coordinator {
	c.backup = backup
	c.backupKey = key
	return c
}

// Hydrate loads the persisted model into the store and then enables
// mutation-triggered syncing. Must be called before the workspace
// accepts mutations.
func (c *Coordinator) Hydrate(ctx context.Context) error {
	profile, err := c.client.FetchProfile(ctx, c.token)
	if err != nil {
		return fmt.Errorf("failed to hydrate workspace: %w", err)
	}

	c.store.Hydrate(profile.Projects)

	c.mu.Lock()
	c.enabled = true
	c.mu.Unlock()

	c.store.Subscribe(c.onMutation)

	c.logger.Info("workspace hydrated",
		zap.Int("projects", len(profile.Projects)),
	)
	return nil
}

// onMutation restarts the debounce timer. Any mutation before the timer
// fires coalesces into the same persist.
func (c *Coordinator) onMutation(board.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.enabled || c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.delay, c.fire)
}

// fire runs on timer expiry and dispatches one persist
func (c *Coordinator) fire() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()
	c.Flush(ctx)
}

// Flush persists the current snapshot immediately. Failures are logged
// and swallowed; the next debounce cycle self-corrects.
func (c *Coordinator) Flush(ctx context.Context) {
	snapshot := c.store.Snapshot()
	start := time.Now()

	_, err := c.client.ReplaceProjects(ctx, c.token, snapshot)
	if c.metrics != nil {
		c.metrics.RecordSync(time.Since(start), err)
	}
	if err != nil {
		c.logger.Warn("sync dispatch failed",
			zap.Int("projects", len(snapshot)),
			zap.Error(err),
		)
	}

	if c.backup != nil {
		if err := c.backup.Write(c.backupKey, snapshot); err != nil {
			c.logger.Warn("local backup failed", zap.Error(err))
		}
	}
}

// Pending reports whether a debounced persist is scheduled
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// Close cancels any pending timer and stops future syncs. Called on
// session teardown so nothing syncs after the owning session is gone.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}
