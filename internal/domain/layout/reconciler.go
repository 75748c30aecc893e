package layout

import (
	"go.uber.org/zap"

	"github.com/GriffinCanCode/GridBoard/internal/infrastructure/logging"
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

// Reconciler merges layout-engine feedback into canonical window lists
type Reconciler struct {
	logger *logging.Logger
}

// NewReconciler creates a reconciler
func NewReconciler(logger *logging.Logger) *Reconciler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Reconciler{logger: logger}
}

// Reconcile overwrites each window's position and size with the matching
// feedback entry; windows absent from feedback are returned unchanged.
// An empty window list means feedback raced with project closure: the
// list is returned as-is and a diagnostic is logged.
func (r *Reconciler) Reconcile(projectID string, windows []types.Window, feedback []types.LayoutItem) []types.Window {
	if len(windows) == 0 {
		r.logger.Warn("layout feedback for project with no windows",
			zap.String("project_id", projectID),
			zap.Int("feedback_items", len(feedback)),
		)
		return windows
	}

	byID := make(map[string]types.LayoutItem, len(feedback))
	for _, item := range feedback {
		byID[item.ID] = item
	}

	result := make([]types.Window, len(windows))
	for i, w := range windows {
		if item, ok := byID[w.ID]; ok {
			w.X, w.Y, w.W, w.H = item.X, item.Y, item.W, item.H
		}
		result[i] = w
	}
	return result
}
