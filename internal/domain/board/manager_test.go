package board

import (
	"testing"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

func TestNewManagerSeedsOneProject(t *testing.T) {
	m := NewManager(nil)

	projects := m.Projects()
	if len(projects) != 1 {
		t.Fatalf("Expected 1 seeded project, got %d", len(projects))
	}
	if projects[0].Name != DefaultProjectName {
		t.Errorf("Expected default name, got %s", projects[0].Name)
	}
	if m.ActiveProjectID() != projects[0].ID {
		t.Error("Seeded project should be active")
	}
}

func TestAddProjectBecomesActive(t *testing.T) {
	m := NewManager(nil)

	p := m.AddProject()

	if m.ActiveProjectID() != p.ID {
		t.Error("New project should become active")
	}
	if len(m.Projects()) != 2 {
		t.Errorf("Expected 2 projects, got %d", len(m.Projects()))
	}
}

func TestCloseLastProjectIsNoop(t *testing.T) {
	m := NewManager(nil)
	only := m.Projects()[0]

	if m.CloseProject(only.ID) {
		t.Error("Closing the last project should be refused")
	}
	if len(m.Projects()) != 1 {
		t.Errorf("Project count should stay at 1, got %d", len(m.Projects()))
	}
}

func TestCloseActiveProjectActivatesAnother(t *testing.T) {
	m := NewManager(nil)
	first := m.Projects()[0]
	second := m.AddProject()

	if !m.CloseProject(second.ID) {
		t.Fatal("Close should succeed with two projects")
	}
	if m.ActiveProjectID() != first.ID {
		t.Error("Remaining project should become active")
	}
	if len(m.Windows(second.ID)) != 0 {
		t.Error("Closed project's windows should be gone")
	}
}

func TestCloseUnknownProject(t *testing.T) {
	m := NewManager(nil)
	m.AddProject()

	if m.CloseProject("proj_MISSING") {
		t.Error("Closing an unknown project should be a no-op")
	}
}

func TestSwitchActiveUnknownIsNoop(t *testing.T) {
	m := NewManager(nil)
	active := m.ActiveProjectID()

	if m.SwitchActive("proj_MISSING") {
		t.Error("Switching to unknown project should be a no-op")
	}
	if m.ActiveProjectID() != active {
		t.Error("Active project should be unchanged")
	}
}

func TestRenameProject(t *testing.T) {
	m := NewManager(nil)
	p := m.Projects()[0]

	if !m.RenameProject(p.ID, "Research") {
		t.Fatal("Rename should succeed")
	}
	updated, _ := m.Project(p.ID)
	if updated.Name != "Research" {
		t.Errorf("Expected 'Research', got '%s'", updated.Name)
	}

	if m.RenameProject(p.ID, "  ") {
		t.Error("Blank rename should be ignored")
	}
	if m.RenameProject(p.ID, "Research") {
		t.Error("Unchanged rename should be ignored")
	}
}

func TestAddWindowUsesAllocator(t *testing.T) {
	m := NewManager(nil)
	p := m.Projects()[0]

	w1, _ := m.AddWindow(p.ID, "", types.ContentUnset, "")
	w2, _ := m.AddWindow(p.ID, "", types.ContentUnset, "")
	w3, _ := m.AddWindow(p.ID, "", types.ContentUnset, "")

	if w1.X != 0 || w1.Y != 0 {
		t.Errorf("First window should land at (0,0), got (%d,%d)", w1.X, w1.Y)
	}
	if w2.X != 1 || w2.Y != 0 {
		t.Errorf("Second window should land at (1,0), got (%d,%d)", w2.X, w2.Y)
	}
	if w3.X != 2 || w3.Y != 0 {
		t.Errorf("Third window should land at (2,0), got (%d,%d)", w3.X, w3.Y)
	}
	if w1.Background != types.DefaultBackground {
		t.Errorf("Expected default background, got %s", w1.Background)
	}
	if w1.W != 2 || w1.H != 2 {
		t.Errorf("New windows should span 2x2 cells, got %dx%d", w1.W, w1.H)
	}
}

func TestAddWindowUnknownProject(t *testing.T) {
	m := NewManager(nil)

	if _, ok := m.AddWindow("proj_MISSING", "x", types.ContentText, ""); ok {
		t.Error("Adding a window to an unknown project should fail")
	}
}

func TestRemoveWindow(t *testing.T) {
	m := NewManager(nil)
	p := m.Projects()[0]
	w, _ := m.AddWindow(p.ID, "", types.ContentUnset, "")

	if !m.RemoveWindow(p.ID, w.ID) {
		t.Fatal("Remove should succeed")
	}
	if len(m.Windows(p.ID)) != 0 {
		t.Error("Window should be gone")
	}
	if m.RemoveWindow(p.ID, w.ID) {
		t.Error("Removing an absent window should be a no-op")
	}
}

func TestUpdateWindowContentAndStyle(t *testing.T) {
	m := NewManager(nil)
	p := m.Projects()[0]
	w, _ := m.AddWindow(p.ID, "<p>old</p>", types.ContentText, "")

	if !m.UpdateWindowContent(p.ID, w.ID, "<p>new</p>") {
		t.Fatal("Content update should succeed")
	}
	if !m.UpdateWindowStyle(p.ID, w.ID, "bg-green-100/80") {
		t.Fatal("Style update should succeed")
	}

	updated, _ := m.Window(p.ID, w.ID)
	if updated.Content != "<p>new</p>" {
		t.Errorf("Expected new content, got %s", updated.Content)
	}
	if updated.Background != "bg-green-100/80" {
		t.Errorf("Expected new background, got %s", updated.Background)
	}
	if updated.ContentType != types.ContentText {
		t.Error("Content type should be untouched by content update")
	}
}

func TestApplyLayoutFeedback(t *testing.T) {
	m := NewManager(nil)
	p := m.Projects()[0]
	w1, _ := m.AddWindow(p.ID, "", types.ContentUnset, "")
	w2, _ := m.AddWindow(p.ID, "", types.ContentUnset, "")

	ok := m.ApplyLayoutFeedback(p.ID, []types.LayoutItem{
		{ID: w2.ID, X: 3, Y: 1, W: 1, H: 1},
	})
	if !ok {
		t.Fatal("Layout feedback should apply")
	}

	moved, _ := m.Window(p.ID, w2.ID)
	if moved.X != 3 || moved.Y != 1 || moved.W != 1 || moved.H != 1 {
		t.Errorf("Window 2 should be at (3,1) 1x1, got (%d,%d) %dx%d", moved.X, moved.Y, moved.W, moved.H)
	}
	same, _ := m.Window(p.ID, w1.ID)
	if same != w1 {
		t.Error("Window 1 should be unchanged")
	}
}

func TestObserverReceivesEvents(t *testing.T) {
	m := NewManager(nil)
	var events []Event
	m.Subscribe(func(e Event) { events = append(events, e) })

	p := m.AddProject()
	w, _ := m.AddWindow(p.ID, "", types.ContentUnset, "")
	m.UpdateWindowContent(p.ID, w.ID, "x")
	m.RemoveWindow(p.ID, w.ID)

	kinds := []EventKind{EventProjectAdded, EventWindowAdded, EventWindowContent, EventWindowRemoved}
	if len(events) != len(kinds) {
		t.Fatalf("Expected %d events, got %d", len(kinds), len(events))
	}
	for i, k := range kinds {
		if events[i].Kind != k {
			t.Errorf("Event %d: expected %s, got %s", i, k, events[i].Kind)
		}
	}
}

func TestSnapshotHydrateRoundTrip(t *testing.T) {
	m := NewManager(nil)
	p := m.Projects()[0]
	m.RenameProject(p.ID, "Board A")
	m.AddWindow(p.ID, "<p>hi</p>", types.ContentText, "")

	snapshot := m.Snapshot()

	m2 := NewManager(nil)
	m2.Hydrate(snapshot)

	if len(m2.Projects()) != 1 {
		t.Fatalf("Expected 1 project after hydrate, got %d", len(m2.Projects()))
	}
	restored, _ := m2.Project(p.ID)
	if restored.Name != "Board A" {
		t.Errorf("Expected restored name, got %s", restored.Name)
	}
	if len(m2.Windows(p.ID)) != 1 {
		t.Errorf("Expected 1 restored window, got %d", len(m2.Windows(p.ID)))
	}
	if m2.ActiveProjectID() != p.ID {
		t.Error("First hydrated project should be active")
	}
}

func TestHydrateEmptySeedsDefault(t *testing.T) {
	m := NewManager(nil)
	m.Hydrate(nil)

	if len(m.Projects()) != 1 {
		t.Fatalf("Empty hydrate should reseed one project, got %d", len(m.Projects()))
	}
	if m.ActiveProjectID() == "" {
		t.Error("A project should be active after empty hydrate")
	}
}
