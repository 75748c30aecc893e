// Package history implements the linear undo/redo log for preview edit
// sessions.
//
// The stack holds serialized content snapshots with a cursor. Pushing
// after an undo truncates the redone-away branch (standard linear
// history). The stack is scoped to one previewed window; switching the
// preview resets it.
package history

// Stack is a linear undo/redo log over content snapshots.
// Not safe for concurrent use; a stack belongs to exactly one preview
// session, which applies edits serially.
type Stack struct {
	snapshots []string
	cursor    int
}

// NewStack creates an empty history stack
func NewStack() *Stack {
	return &Stack{cursor: -1}
}

// Push records a snapshot after a discrete user edit, discarding any
// entries beyond the cursor.
func (s *Stack) Push(snapshot string) {
	s.snapshots = append(s.snapshots[:s.cursor+1], snapshot)
	s.cursor++
}

// Undo moves the cursor back one entry and returns the snapshot there.
// Returns false when already at the start.
func (s *Stack) Undo() (string, bool) {
	if s.cursor <= 0 {
		return "", false
	}
	s.cursor--
	return s.snapshots[s.cursor], true
}

// Redo moves the cursor forward one entry and returns the snapshot there.
// Returns false when already at the end.
func (s *Stack) Redo() (string, bool) {
	if s.cursor >= len(s.snapshots)-1 {
		return "", false
	}
	s.cursor++
	return s.snapshots[s.cursor], true
}

// Reset clears the stack. Called whenever the previewed window changes.
func (s *Stack) Reset() {
	s.snapshots = s.snapshots[:0]
	s.cursor = -1
}

// Len returns the number of recorded snapshots
func (s *Stack) Len() int {
	return len(s.snapshots)
}

// Cursor returns the current cursor index (-1 when empty)
func (s *Stack) Cursor() int {
	return s.cursor
}
