// Package scene defines the edit state: the immutable record that the
// compositor renders and the history engine snapshots.
//
// A State is a value. Editing produces a new State with [State.Clone] and
// never mutates one that has been published. The active tool is UI-only
// and is ignored by [State.Equal].
package scene
