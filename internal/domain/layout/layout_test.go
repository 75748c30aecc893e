package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

func win(id string, x, y int) types.Window {
	return types.Window{ID: id, X: x, Y: y, W: 1, H: 1}
}

func TestAllocateEmpty(t *testing.T) {
	x, y := Allocate(nil)
	if x != 0 || y != 0 {
		t.Errorf("Expected (0,0) for empty board, got (%d,%d)", x, y)
	}
}

func TestAllocateSkipsOccupied(t *testing.T) {
	windows := []types.Window{win("1", 0, 0), win("2", 1, 0)}

	x, y := Allocate(windows)
	if x != 2 || y != 0 {
		t.Errorf("Expected (2,0), got (%d,%d)", x, y)
	}
}

func TestAllocateWrapsToNextRow(t *testing.T) {
	windows := []types.Window{
		win("1", 0, 0), win("2", 1, 0), win("3", 2, 0), win("4", 3, 0),
	}

	x, y := Allocate(windows)
	if x != 0 || y != 1 {
		t.Errorf("Expected (0,1) after full row, got (%d,%d)", x, y)
	}
}

func TestAllocateNeverReturnsOccupied(t *testing.T) {
	// Fill a scattered set of cells and check the invariant on every step
	var windows []types.Window
	for i := 0; i < 50; i++ {
		x, y := Allocate(windows)
		for _, w := range windows {
			if w.X == x && w.Y == y {
				t.Fatalf("Allocate returned occupied cell (%d,%d)", x, y)
			}
		}
		windows = append(windows, win(fmt.Sprintf("%d", i), x, y))
	}
}

func TestReconcileMovesMatched(t *testing.T) {
	r := NewReconciler(nil)
	windows := []types.Window{win("1", 0, 0), win("2", 1, 0)}
	feedback := []types.LayoutItem{{ID: "2", X: 3, Y: 1, W: 1, H: 1}}

	result := r.Reconcile("proj", windows, feedback)

	if result[0] != windows[0] {
		t.Errorf("Window 1 should be unchanged, got %+v", result[0])
	}
	if result[1].X != 3 || result[1].Y != 1 {
		t.Errorf("Window 2 should move to (3,1), got (%d,%d)", result[1].X, result[1].Y)
	}
}

func TestReconcileEmptyFeedbackIsIdentity(t *testing.T) {
	r := NewReconciler(nil)
	windows := []types.Window{win("1", 0, 0), win("2", 2, 1)}

	result := r.Reconcile("proj", windows, nil)

	if !reflect.DeepEqual(result, windows) {
		t.Errorf("Empty feedback should return windows unchanged")
	}
}

func TestReconcileIdempotent(t *testing.T) {
	r := NewReconciler(nil)
	windows := []types.Window{win("1", 0, 0), win("2", 1, 0)}
	feedback := []types.LayoutItem{
		{ID: "1", X: 2, Y: 2, W: 2, H: 1},
		{ID: "2", X: 0, Y: 3, W: 1, H: 2},
	}

	once := r.Reconcile("proj", windows, feedback)
	twice := r.Reconcile("proj", once, feedback)

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("Reconcile should be idempotent")
	}
}

func TestReconcileEmptyWindowsGuard(t *testing.T) {
	r := NewReconciler(nil)
	feedback := []types.LayoutItem{{ID: "ghost", X: 1, Y: 1, W: 1, H: 1}}

	result := r.Reconcile("closed-proj", nil, feedback)
	if len(result) != 0 {
		t.Errorf("Feedback for empty project should not create windows")
	}
}

func TestReconcileNeverAddsOrRemoves(t *testing.T) {
	r := NewReconciler(nil)
	windows := []types.Window{win("1", 0, 0)}
	feedback := []types.LayoutItem{
		{ID: "1", X: 1, Y: 1, W: 1, H: 1},
		{ID: "unknown", X: 2, Y: 2, W: 1, H: 1},
	}

	result := r.Reconcile("proj", windows, feedback)
	if len(result) != 1 {
		t.Errorf("Expected 1 window, got %d", len(result))
	}
}
