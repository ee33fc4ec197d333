package main

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"wireterm/internal/canvas"
)

func (m *model) undo() tea.Cmd {
	if err := m.canvas.Undo(); err != nil {
		if errors.Is(err, canvas.ErrNothingToUndo) {
			return m.notify("Nothing to undo")
		}
		return m.fail(err)
	}
	m.dropStaleSelection()
	return m.notify("Undone")
}

func (m *model) redo() tea.Cmd {
	if err := m.canvas.Redo(); err != nil {
		if errors.Is(err, canvas.ErrNothingToRedo) {
			return m.notify("Nothing to redo")
		}
		return m.fail(err)
	}
	m.dropStaleSelection()
	return m.notify("Redone")
}

// dropStaleSelection clears the selection when its object no longer exists.
func (m *model) dropStaleSelection() {
	if _, ok := m.canvas.Find(m.selected); !ok {
		m.selected = ""
	}
}
