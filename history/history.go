// Package history implements a linear undo/redo stack with a single cursor.
//
// Pushing after an undo discards the redo branch. A push equal to the
// entry under the cursor is dropped, so reopening a panel without editing
// anything leaves no trace.
package history

// History is an undo/redo stack of snapshots.
//
// History is not safe for concurrent use; callers serialize access.
type History[T any] struct {
	entries []T
	cursor  int
	equal   func(a, b T) bool
}

// New creates an empty history. equal decides which pushes are no-ops;
// nil treats every push as distinct.
func New[T any](equal func(a, b T) bool) *History[T] {
	if equal == nil {
		equal = func(T, T) bool { return false }
	}
	return &History[T]{cursor: -1, equal: equal}
}

// Push records v after the cursor, discarding any entries beyond it.
// It reports whether v was recorded.
func (h *History[T]) Push(v T) bool {
	if h.cursor >= 0 && h.equal(h.entries[h.cursor], v) {
		return false
	}
	clear(h.entries[h.cursor+1:])
	h.entries = append(h.entries[:h.cursor+1], v)
	h.cursor = len(h.entries) - 1
	return true
}

// Undo moves the cursor back and returns the entry there. At the oldest
// entry it does nothing and returns false.
func (h *History[T]) Undo() (T, bool) {
	if !h.CanUndo() {
		var zero T
		return zero, false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

// Redo moves the cursor forward and returns the entry there. At the
// newest entry it does nothing and returns false.
func (h *History[T]) Redo() (T, bool) {
	if !h.CanRedo() {
		var zero T
		return zero, false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Current returns the entry under the cursor.
func (h *History[T]) Current() (T, bool) {
	if h.cursor < 0 {
		var zero T
		return zero, false
	}
	return h.entries[h.cursor], true
}

// CanUndo reports whether Undo would move the cursor.
func (h *History[T]) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would move the cursor.
func (h *History[T]) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of entries, including any redo branch.
func (h *History[T]) Len() int { return len(h.entries) }

// Cursor returns the index of the current entry, or -1 when empty.
func (h *History[T]) Cursor() int { return h.cursor }

// Reset empties the history.
func (h *History[T]) Reset() {
	clear(h.entries)
	h.entries = h.entries[:0]
	h.cursor = -1
}
