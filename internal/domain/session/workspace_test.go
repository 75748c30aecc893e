package session

import (
	"testing"

	"github.com/GriffinCanCode/GridBoard/internal/domain/board"
	"github.com/GriffinCanCode/GridBoard/internal/domain/format"
	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

func newTestWorkspace(t *testing.T) (*Workspace, string, string) {
	t.Helper()
	store := board.NewManager(logging.NewNop())
	projectID := store.ActiveProjectID()
	win, ok := store.AddWindow(projectID, "<p>draft</p>", types.ContentText, "")
	if !ok {
		t.Fatal("AddWindow() failed")
	}
	ws := NewWorkspace("user-1", store, nil)
	return ws, projectID, win.ID
}

func TestOpenPreviewUnknownWindow(t *testing.T) {
	ws, projectID, _ := newTestWorkspace(t)
	if _, ok := ws.OpenPreview(projectID, "missing"); ok {
		t.Fatal("expected open to fail for unknown window")
	}
	if _, ok := ws.PreviewWindowID(); ok {
		t.Fatal("no preview should be active")
	}
}

func TestEditRequiresPreview(t *testing.T) {
	ws, _, _ := newTestWorkspace(t)
	if ws.Edit("<p>x</p>") {
		t.Fatal("edit should fail without an open preview")
	}
}

func TestEditUndoRedo(t *testing.T) {
	ws, projectID, windowID := newTestWorkspace(t)
	if _, ok := ws.OpenPreview(projectID, windowID); !ok {
		t.Fatal("OpenPreview() failed")
	}

	ws.Edit("<p>first</p>")
	ws.Edit("<p>second</p>")

	content, ok := ws.Undo()
	if !ok || content != "<p>first</p>" {
		t.Fatalf("Undo() = %q, %v", content, ok)
	}
	win, _ := ws.Board.Window(projectID, windowID)
	if win.Content != "<p>first</p>" {
		t.Fatalf("store content = %q after undo", win.Content)
	}

	content, ok = ws.Redo()
	if !ok || content != "<p>second</p>" {
		t.Fatalf("Redo() = %q, %v", content, ok)
	}
}

func TestUndoStopsAtBaseSnapshot(t *testing.T) {
	ws, projectID, windowID := newTestWorkspace(t)
	ws.OpenPreview(projectID, windowID)
	ws.Edit("<p>changed</p>")

	content, ok := ws.Undo()
	if !ok || content != "<p>draft</p>" {
		t.Fatalf("Undo() = %q, %v, want base snapshot", content, ok)
	}
	if _, ok := ws.Undo(); ok {
		t.Fatal("undo past the base snapshot should be a no-op")
	}
	win, _ := ws.Board.Window(projectID, windowID)
	if win.Content != "<p>draft</p>" {
		t.Fatalf("content drifted to %q", win.Content)
	}
}

func TestEditTruncatesRedoBranch(t *testing.T) {
	ws, projectID, windowID := newTestWorkspace(t)
	ws.OpenPreview(projectID, windowID)
	ws.Edit("<p>a</p>")
	ws.Edit("<p>b</p>")
	ws.Undo()
	ws.Edit("<p>c</p>")

	if _, ok := ws.Redo(); ok {
		t.Fatal("redo branch should be gone after a fresh edit")
	}
}

func TestReopenResetsHistory(t *testing.T) {
	ws, projectID, windowID := newTestWorkspace(t)
	ws.OpenPreview(projectID, windowID)
	ws.Edit("<p>edited</p>")

	ws.OpenPreview(projectID, windowID)
	if _, ok := ws.Undo(); ok {
		t.Fatal("history should reset on reopen")
	}
}

func TestFormatCommitsOneEdit(t *testing.T) {
	ws, projectID, windowID := newTestWorkspace(t)
	ws.OpenPreview(projectID, windowID)

	sel := Selection{Before: "<p>", Text: "bold me", After: "</p>"}
	content, ok := ws.Format(sel, format.Bold, "")
	if !ok {
		t.Fatal("Format() failed")
	}
	if content != "<p><strong>bold me</strong></p>" {
		t.Fatalf("Format() = %q", content)
	}

	undone, ok := ws.Undo()
	if !ok || undone != "<p>draft</p>" {
		t.Fatalf("Undo() = %q, %v, format should be one step", undone, ok)
	}
}

func TestClosePreviewDropsState(t *testing.T) {
	ws, projectID, windowID := newTestWorkspace(t)
	ws.OpenPreview(projectID, windowID)
	ws.Edit("<p>x</p>")
	ws.ClosePreview()

	if _, ok := ws.PreviewWindowID(); ok {
		t.Fatal("preview should be closed")
	}
	if _, ok := ws.Undo(); ok {
		t.Fatal("undo should fail after close")
	}
}

func TestRegistryLifecycle(t *testing.T) {
	m := NewManager(logging.NewNop())

	ws, err := m.GetOrCreate("alice", func() (*Workspace, error) {
		return NewWorkspace("alice", board.NewManager(logging.NewNop()), nil), nil
	})
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	again, err := m.GetOrCreate("alice", func() (*Workspace, error) {
		t.Fatal("builder should not run for an existing workspace")
		return nil, nil
	})
	if err != nil || again != ws {
		t.Fatal("expected the same workspace back")
	}
	if m.Count() != 1 {
		t.Fatalf("Count() = %d", m.Count())
	}

	if !m.Remove("alice") {
		t.Fatal("Remove() should succeed")
	}
	if m.Remove("alice") {
		t.Fatal("second Remove() should fail")
	}
	if m.Count() != 0 {
		t.Fatalf("Count() = %d after remove", m.Count())
	}
}
