// Package layout owns grid geometry: placing new windows into free cells
// and merging drag/resize feedback from the layout engine back into the
// canonical window lists.
//
// Placement scans a bounded grid (4 columns, 1000 rows) and is the only
// point that enforces non-overlap; windows may overlap freely once the
// user drags them. Reconciliation only repositions, it never adds or
// removes windows, and applying the same feedback twice is idempotent.
package layout
