package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"wireterm/internal/canvas"
	"wireterm/internal/storage"
)

func newModel(cfg *Config, c *canvas.Canvas, log *slog.Logger) model {
	ed := textarea.New()
	ed.ShowLineNumbers = false
	ed.CharLimit = 0
	ed.SetWidth(60)
	ed.SetHeight(12)

	name := textinput.New()
	name.CharLimit = 64
	name.Width = 30

	return model{
		width:     80,
		height:    24,
		mode:      ModeNormal,
		canvas:    c,
		editor:    ed,
		nameInput: name,
		config:    cfg,
		store:     &storage.Store{Path: cfg.AutosaveFile},
		library:   &storage.Designs{Dir: cfg.DesignsDir()},
		clipboard: systemClipboard{},
		log:       log,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.startNotice())
}

// startNotice shows any notice set before the program started.
func (m model) startNotice() tea.Cmd {
	if m.notice == "" {
		return nil
	}
	return expireNotice(m.noticeGen, m.config.NoticeDuration)
}

func expireNotice(gen int, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg { return noticeExpiredMsg{gen: gen} })
}

// notify shows a transient message in the status line.
func (m *model) notify(msg string) tea.Cmd {
	m.notice = msg
	m.noticeIsErr = false
	m.noticeGen++
	return expireNotice(m.noticeGen, m.config.NoticeDuration)
}

func (m *model) fail(err error) tea.Cmd {
	cmd := m.notify(errorText(err))
	m.noticeIsErr = true
	return cmd
}

func errorText(err error) string {
	switch {
	case errors.Is(err, canvas.ErrEmptyCanvas):
		return "Canvas is already empty"
	case errors.Is(err, canvas.ErrEmptyImport):
		return "Nothing to import"
	case errors.Is(err, canvas.ErrLastLayer):
		return "Cannot delete the last layer"
	default:
		return err.Error()
	}
}

// scheduleAutosave restarts the debounce timer; only the newest timer saves.
func (m *model) scheduleAutosave() tea.Cmd {
	if !m.config.Autosave || m.config.AutosaveFile == "" {
		return nil
	}
	m.saveGen++
	gen := m.saveGen
	return tea.Tick(m.config.AutosaveDelay, func(time.Time) tea.Msg { return autosaveMsg{gen: gen} })
}

// autosave writes the session. Failures are logged and otherwise ignored.
func (m *model) autosave() {
	if err := m.store.Save(stateOf(m.canvas)); err != nil {
		m.log.Warn("autosave failed", "path", m.store.Path, "err", err)
		return
	}
	m.log.Debug("autosaved", "path", m.store.Path, "objects", m.canvas.Len())
}

// restoreSession loads the last autosave into the canvas, if there is one.
func (m *model) restoreSession() {
	st, err := m.store.Load()
	switch {
	case errors.Is(err, storage.ErrNoSession):
		return
	case err != nil:
		m.log.Warn("restore session failed", "err", err)
		return
	}
	applyState(m.canvas, st)
	m.savedRevision = m.canvas.Revision()
	if m.canvas.Len() > 0 {
		m.notify("Restored previous session")
	}
}

func (m *model) unsaved() bool {
	return m.canvas.Revision() != m.savedRevision
}
