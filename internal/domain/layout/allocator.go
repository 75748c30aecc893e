package layout

import (
	"github.com/GriffinCanCode/GridBoard/internal/shared/types"
)

const (
	// Cols is the column count at the largest breakpoint
	Cols = 4
	// MaxRows bounds the placement scan
	MaxRows = 1000
)

type cell struct {
	x, y int
}

// Allocate returns the first free grid cell for a new window, scanning
// row by row from the origin. Occupancy is judged by top-left coordinates
// only. Falls back to (0, 0) if the scan bound is exhausted; callers treat
// that as soft degradation, not an error.
func Allocate(windows []types.Window) (int, int) {
	occupied := make(map[cell]struct{}, len(windows))
	for _, w := range windows {
		occupied[cell{w.X, w.Y}] = struct{}{}
	}

	for y := 0; y < MaxRows; y++ {
		for x := 0; x < Cols; x++ {
			if _, taken := occupied[cell{x, y}]; !taken {
				return x, y
			}
		}
	}
	return 0, 0
}
