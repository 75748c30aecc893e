package session

import (
	"context"
	"sync"

	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// Manager tracks the live workspace for each authenticated user
type Manager struct {
	mu         sync.RWMutex
	workspaces map[string]*Workspace
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// NewManager creates an empty workspace registry
func NewManager(logger *logging.Logger) *Manager {
	return &Manager{
		workspaces: make(map[string]*Workspace),
		logger:     logger,
	}
}

// WithMetrics attaches metrics collection
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// Get returns the workspace for a user if one is open
func (m *Manager) Get(userID string) (*Workspace, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ws, ok := m.workspaces[userID]
	return ws, ok
}

// GetOrCreate returns the user's workspace, building one with the
// supplied constructor on first access. The constructor runs outside
// the registry lock; if two callers race, the loser's workspace is
// closed and the winner's is returned.
func (m *Manager) GetOrCreate(userID string, build func() (*Workspace, error)) (*Workspace, error) {
	m.mu.RLock()
	ws, ok := m.workspaces[userID]
	m.mu.RUnlock()
	if ok {
		return ws, nil
	}

	fresh, err := build()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if existing, ok := m.workspaces[userID]; ok {
		m.mu.Unlock()
		fresh.Close()
		return existing, nil
	}
	m.workspaces[userID] = fresh
	count := len(m.workspaces)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.WorkspacesActive.Set(float64(count))
	}
	m.logger.Info("Workspace opened",
		zap.String("user_id", userID),
		zap.Int("active", count))
	return fresh, nil
}

// Remove closes and unregisters a user's workspace
func (m *Manager) Remove(userID string) bool {
	m.mu.Lock()
	ws, ok := m.workspaces[userID]
	if ok {
		delete(m.workspaces, userID)
	}
	count := len(m.workspaces)
	m.mu.Unlock()

	if !ok {
		return false
	}

	ws.Close()
	if m.metrics != nil {
		m.metrics.WorkspacesActive.Set(float64(count))
	}
	m.logger.Info("Workspace closed",
		zap.String("user_id", userID),
		zap.Int("active", count))
	return true
}

// Count returns the number of open workspaces
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workspaces)
}

// CloseAll flushes pending syncs and tears down every workspace. Used
// on shutdown so edits inside the debounce window are not lost.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	workspaces := m.workspaces
	m.workspaces = make(map[string]*Workspace)
	m.mu.Unlock()

	for _, ws := range workspaces {
		if ws.Coordinator != nil && ws.Coordinator.Pending() {
			ws.Coordinator.Flush(ctx)
		}
		ws.Close()
	}
	if m.metrics != nil {
		m.metrics.WorkspacesActive.Set(0)
	}
}
