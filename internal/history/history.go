// Package history keeps bounded undo and redo stacks of whole-collection
// snapshots.
package history

import (
	"errors"

	"wireterm/internal/grid"
)

// DefaultLimit is the undo capacity used when New is given a non-positive limit.
const DefaultLimit = 20

var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Manager holds the stacks. The most recent entry of each stack is last.
// While an undo or redo installs its state the manager is replaying and
// Snapshot does nothing.
type Manager struct {
	limit     int
	undo      []grid.Collection
	redo      []grid.Collection
	replaying bool
}

func New(limit int) *Manager {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Manager{limit: limit}
}

func (m *Manager) Limit() int { return m.limit }

// Snapshot records current as the state to return to on the next undo and
// drops the redo path. The oldest entries beyond the limit are discarded.
func (m *Manager) Snapshot(current grid.Collection) {
	if m.replaying {
		return
	}
	m.undo = append(m.undo, current.Clone())
	if over := len(m.undo) - m.limit; over > 0 {
		m.undo = append(m.undo[:0:0], m.undo[over:]...)
	}
	m.redo = nil
}

// Track snapshots current and then applies mutate to it, returning the result.
func (m *Manager) Track(current grid.Collection, mutate func(grid.Collection) grid.Collection) grid.Collection {
	m.Snapshot(current)
	return mutate(current)
}

// Undo moves current onto the redo stack and installs the most recent undo
// entry through install.
func (m *Manager) Undo(current grid.Collection, install func(grid.Collection)) error {
	if len(m.undo) == 0 {
		return ErrNothingToUndo
	}
	prev := m.undo[len(m.undo)-1]
	m.undo = m.undo[:len(m.undo)-1]
	m.redo = append(m.redo, current.Clone())
	m.replay(prev, install)
	return nil
}

// Redo is the inverse of Undo.
func (m *Manager) Redo(current grid.Collection, install func(grid.Collection)) error {
	if len(m.redo) == 0 {
		return ErrNothingToRedo
	}
	next := m.redo[len(m.redo)-1]
	m.redo = m.redo[:len(m.redo)-1]
	m.undo = append(m.undo, current.Clone())
	m.replay(next, install)
	return nil
}

func (m *Manager) replay(state grid.Collection, install func(grid.Collection)) {
	m.replaying = true
	defer func() { m.replaying = false }()
	install(state)
}

func (m *Manager) Replaying() bool { return m.replaying }

func (m *Manager) CanUndo() bool { return len(m.undo) > 0 }
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }
func (m *Manager) UndoLen() int  { return len(m.undo) }
func (m *Manager) RedoLen() int  { return len(m.redo) }

// Clear empties both stacks, as after loading a different design.
func (m *Manager) Clear() {
	m.undo = nil
	m.redo = nil
}
