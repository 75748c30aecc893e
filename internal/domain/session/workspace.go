package session

import (
	"sync"

	"github.com/GriffinCanCode/GridBoard/internal/domain/board"
	"github.com/GriffinCanCode/GridBoard/internal/domain/format"
	"github.com/GriffinCanCode/GridBoard/internal/domain/history"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// Selection describes the edit position for a formatting action: the
// serialized content split around the selected text
type Selection struct {
	Before string `json:"before"`
	Text   string `json:"text"`
	After  string `json:"after"`
}

// Workspace is one user's live editing session: the board model, the
// preview/undo state, and the sync coordinator.
//
// The history stack belongs exclusively to the workspace's preview
// session and resets whenever the previewed window changes.
type Workspace struct {
	UserID      string
	Board       *board.Manager
	Coordinator *Coordinator

	mu             sync.Mutex
	previewProject string
	previewWindow  string
	edits          *history.Stack
}

// NewWorkspace creates a workspace around an existing board and coordinator
func NewWorkspace(userID string, b *board.Manager, c *Coordinator) *Workspace {
	return &Workspace{
		UserID:      userID,
		Board:       b,
		Coordinator: c,
		edits:       history.NewStack(),
	}
}

// OpenPreview selects a window for editing. Any previous preview session
// is discarded; history restarts with the window's current content as
// the base snapshot so the first edit is undoable.
func (w *Workspace) OpenPreview(projectID, windowID string) (types.Window, bool) {
	window, ok := w.Board.Window(projectID, windowID)
	if !ok {
		return types.Window{}, false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.previewProject = projectID
	w.previewWindow = windowID
	w.edits.Reset()
	w.edits.Push(window.Content)
	return window, true
}

// ClosePreview ends the preview session and discards its history
func (w *Workspace) ClosePreview() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.previewProject = ""
	w.previewWindow = ""
	w.edits.Reset()
}

// PreviewWindowID returns the currently previewed window id, if any
func (w *Workspace) PreviewWindowID() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.previewWindow, w.previewWindow != ""
}

// Edit applies one discrete content edit to the previewed window and
// records exactly one history snapshot
func (w *Workspace) Edit(content string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.previewWindow == "" {
		return false
	}
	if !w.Board.UpdateWindowContent(w.previewProject, w.previewWindow, content) {
		return false
	}
	w.edits.Push(content)
	return true
}

// Format applies a formatting action to the selection and commits the
// resulting content as one edit
func (w *Workspace) Format(sel Selection, kind format.Kind, param string) (string, bool) {
	content := sel.Before + format.Apply(sel.Text, kind, param) + sel.After
	if !w.Edit(content) {
		return "", false
	}
	return content, true
}

// Undo steps the preview session back one edit. No-op at the boundary.
func (w *Workspace) Undo() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.previewWindow == "" {
		return "", false
	}
	snapshot, ok := w.edits.Undo()
	if !ok {
		return "", false
	}
	w.Board.UpdateWindowContent(w.previewProject, w.previewWindow, snapshot)
	return snapshot, true
}

// Redo steps the preview session forward one edit. No-op at the boundary.
func (w *Workspace) Redo() (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.previewWindow == "" {
		return "", false
	}
	snapshot, ok := w.edits.Redo()
	if !ok {
		return "", false
	}
	w.Board.UpdateWindowContent(w.previewProject, w.previewWindow, snapshot)
	return snapshot, true
}

// Close tears the workspace down, cancelling any pending sync
func (w *Workspace) Close() {
	w.ClosePreview()
	if w.Coordinator != nil {
		w.Coordinator.Close()
	}
}
