package board

import (
	"strings"
	"sync"

	"github.com/GriffinCanCode/GridBoard/internal/domain/layout"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/GridBoard/internal/shared/id"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// DefaultProjectName is assigned to newly created projects
const DefaultProjectName = "Untitled"

// Default cell span for new windows
const (
	defaultWindowW = 2
	defaultWindowH = 2
)

// EventKind identifies a board mutation
type EventKind string

const (
	EventProjectAdded     EventKind = "project_added"
	EventProjectClosed    EventKind = "project_closed"
	EventProjectRenamed   EventKind = "project_renamed"
	EventProjectActivated EventKind = "project_activated"
	EventWindowAdded      EventKind = "window_added"
	EventWindowRemoved    EventKind = "window_removed"
	EventWindowContent    EventKind = "window_content"
	EventWindowStyle      EventKind = "window_style"
	EventLayoutApplied    EventKind = "layout_applied"
	EventHydrated         EventKind = "hydrated"
)

// Event describes one committed mutation
type Event struct {
	Kind      EventKind `json:"kind"`
	ProjectID string    `json:"project_id"`
	WindowID  string    `json:"window_id,omitempty"`
}

// Observer receives mutation events after they commit. Observers must not
// mutate the board synchronously from the callback.
type Observer func(Event)

// Manager orchestrates the project/window model
type Manager struct {
	mu         sync.RWMutex
	projects   []types.Project           // Ordered; protected by mu
	windows    map[string][]types.Window // Keyed by project id; protected by mu
	activeID   string                    // Protected by mu
	observers  []Observer                // Protected by mu
	reconciler *layout.Reconciler
	metrics    *monitoring.Metrics
	logger     *logging.Logger
}

// NewManager creates a board manager seeded with one empty project
func NewManager(logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	m := &Manager{
		windows:    make(map[string][]types.Window),
		reconciler: layout.NewReconciler(logger),
		logger:     logger,
	}
	seed := types.Project{ID: id.NewProjectID().String(), Name: DefaultProjectName}
	m.projects = []types.Project{seed}
	m.windows[seed.ID] = nil
	m.activeID = seed.ID
	return m
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	if metrics != nil {
		metrics.ProjectsActive.Add(float64(len(m.projects)))
	}
	return m
}

// Subscribe registers an observer for the mutation stream
func (m *Manager) Subscribe(obs Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, obs)
}

// AddProject creates a project with a fresh id and default name and makes
// it active
func (m *Manager) AddProject() types.Project {
	project := types.Project{ID: id.NewProjectID().String(), Name: DefaultProjectName}

	m.mu.Lock()
	m.projects = append(m.projects, project)
	m.windows[project.ID] = nil
	m.activeID = project.ID
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ProjectsActive.Inc()
	}
	m.notify(Event{Kind: EventProjectAdded, ProjectID: project.ID})
	return project
}

// SwitchActive makes the given project active; no-op if it does not exist
func (m *Manager) SwitchActive(projectID string) bool {
	m.mu.Lock()
	if _, ok := m.windows[projectID]; !ok {
		m.mu.Unlock()
		return false
	}
	m.activeID = projectID
	m.mu.Unlock()

	m.notify(Event{Kind: EventProjectActivated, ProjectID: projectID})
	return true
}

// CloseProject removes a project and its windows. Refuses to close the
// last remaining project. If the closed project was active, an arbitrary
// remaining project becomes active.
func (m *Manager) CloseProject(projectID string) bool {
	m.mu.Lock()
	if len(m.projects) <= 1 {
		m.mu.Unlock()
		return false
	}
	idx := -1
	for i, p := range m.projects {
		if p.ID == projectID {
			idx = i
			break
		}
	}
	if idx == -1 {
		m.mu.Unlock()
		return false
	}

	removedWindows := len(m.windows[projectID])
	m.projects = append(m.projects[:idx], m.projects[idx+1:]...)
	delete(m.windows, projectID)
	if m.activeID == projectID {
		m.activeID = m.projects[0].ID
	}
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ProjectsActive.Dec()
		m.metrics.WindowsActive.Sub(float64(removedWindows))
	}
	m.notify(Event{Kind: EventProjectClosed, ProjectID: projectID})
	return true
}

// RenameProject updates a project name; ignored when the name is empty,
// whitespace, or unchanged
func (m *Manager) RenameProject(projectID, newName string) bool {
	if strings.TrimSpace(newName) == "" {
		return false
	}

	m.mu.Lock()
	changed := false
	for i, p := range m.projects {
		if p.ID == projectID {
			if p.Name != newName {
				m.projects[i].Name = newName
				changed = true
			}
			break
		}
	}
	m.mu.Unlock()

	if changed {
		m.notify(Event{Kind: EventProjectRenamed, ProjectID: projectID})
	}
	return changed
}

// AddWindow places a new window in the first free grid cell of the
// project and appends it. Returns false for an unknown project.
func (m *Manager) AddWindow(projectID, content string, contentType types.ContentType, background string) (types.Window, bool) {
	if background == "" {
		background = types.DefaultBackground
	}

	m.mu.Lock()
	current, ok := m.windows[projectID]
	if !ok {
		m.mu.Unlock()
		return types.Window{}, false
	}
	x, y := layout.Allocate(current)
	window := types.Window{
		ID:          id.NewWindowID().String(),
		X:           x,
		Y:           y,
		W:           defaultWindowW,
		H:           defaultWindowH,
		Content:     content,
		ContentType: contentType,
		Background:  background,
	}
	m.windows[projectID] = append(current, window)
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.WindowsActive.Inc()
	}
	m.notify(Event{Kind: EventWindowAdded, ProjectID: projectID, WindowID: window.ID})
	return window, true
}

// RemoveWindow removes a window by id; no-op if absent
func (m *Manager) RemoveWindow(projectID, windowID string) bool {
	m.mu.Lock()
	current, ok := m.windows[projectID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	removed := false
	for i, w := range current {
		if w.ID == windowID {
			m.windows[projectID] = append(current[:i], current[i+1:]...)
			removed = true
			break
		}
	}
	m.mu.Unlock()

	if removed {
		if m.metrics != nil {
			m.metrics.WindowsActive.Dec()
		}
		m.notify(Event{Kind: EventWindowRemoved, ProjectID: projectID, WindowID: windowID})
	}
	return removed
}

// UpdateWindowContent replaces a window's content only
func (m *Manager) UpdateWindowContent(projectID, windowID, content string) bool {
	return m.updateWindow(projectID, windowID, EventWindowContent, func(w *types.Window) {
		w.Content = content
	})
}

// UpdateWindowStyle replaces a window's background token
func (m *Manager) UpdateWindowStyle(projectID, windowID, style string) bool {
	return m.updateWindow(projectID, windowID, EventWindowStyle, func(w *types.Window) {
		w.Background = style
	})
}

// ApplyLayoutFeedback reconciles drag/resize feedback into the project's
// window list. Returns false for an unknown project.
func (m *Manager) ApplyLayoutFeedback(projectID string, feedback []types.LayoutItem) bool {
	m.mu.Lock()
	current, ok := m.windows[projectID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	m.windows[projectID] = m.reconciler.Reconcile(projectID, current, feedback)
	m.mu.Unlock()

	m.notify(Event{Kind: EventLayoutApplied, ProjectID: projectID})
	return true
}

// Project retrieves a project by id
func (m *Manager) Project(projectID string) (types.Project, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.projects {
		if p.ID == projectID {
			return p, true
		}
	}
	return types.Project{}, false
}

// Projects returns all projects in creation order
func (m *Manager) Projects() []types.Project {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Project, len(m.projects))
	copy(out, m.projects)
	return out
}

// Windows returns a copy of a project's window list
func (m *Manager) Windows(projectID string) []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	current := m.windows[projectID]
	out := make([]types.Window, len(current))
	copy(out, current)
	return out
}

// Window retrieves a single window by id
func (m *Manager) Window(projectID, windowID string) (types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, w := range m.windows[projectID] {
		if w.ID == windowID {
			return w, true
		}
	}
	return types.Window{}, false
}

// ActiveProjectID returns the currently active project id
func (m *Manager) ActiveProjectID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeID
}

// Stats returns board statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, list := range m.windows {
		total += len(list)
	}
	active := m.activeID
	return types.Stats{
		TotalProjects:   len(m.projects),
		TotalWindows:    total,
		ActiveProjectID: &active,
	}
}

// Snapshot captures the full model in creation order for persistence
func (m *Manager) Snapshot() []types.ProjectRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := make([]types.ProjectRecord, len(m.projects))
	for i, p := range m.projects {
		windows := make([]types.Window, len(m.windows[p.ID]))
		copy(windows, m.windows[p.ID])
		records[i] = types.ProjectRecord{ID: p.ID, Name: p.Name, Windows: windows}
	}
	return records
}

// Hydrate replaces the whole model from persisted records. An empty
// record set seeds a fresh default project so the at-least-one-project
// invariant holds.
func (m *Manager) Hydrate(records []types.ProjectRecord) {
	m.mu.Lock()
	m.projects = m.projects[:0]
	m.windows = make(map[string][]types.Window, len(records))
	for _, rec := range records {
		m.projects = append(m.projects, types.Project{ID: rec.ID, Name: rec.Name})
		windows := make([]types.Window, len(rec.Windows))
		copy(windows, rec.Windows)
		m.windows[rec.ID] = windows
	}
	if len(m.projects) == 0 {
		seed := types.Project{ID: id.NewProjectID().String(), Name: DefaultProjectName}
		m.projects = []types.Project{seed}
		m.windows[seed.ID] = nil
	}
	m.activeID = m.projects[0].ID
	m.mu.Unlock()

	m.notify(Event{Kind: EventHydrated})
}

// updateWindow applies fn to one window under lock and emits kind
func (m *Manager) updateWindow(projectID, windowID string, kind EventKind, fn func(*types.Window)) bool {
	m.mu.Lock()
	updated := false
	for i := range m.windows[projectID] {
		if m.windows[projectID][i].ID == windowID {
			fn(&m.windows[projectID][i])
			updated = true
			break
		}
	}
	m.mu.Unlock()

	if updated {
		m.notify(Event{Kind: kind, ProjectID: projectID, WindowID: windowID})
	}
	return updated
}

// notify fans a committed mutation out to observers
func (m *Manager) notify(event Event) {
	if m.metrics != nil {
		m.metrics.RecordMutation(string(event.Kind))
	}

	m.mu.RLock()
	observers := make([]Observer, len(m.observers))
	copy(observers, m.observers)
	m.mu.RUnlock()

	for _, obs := range observers {
		obs(event)
	}
}
