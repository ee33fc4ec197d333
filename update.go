package main

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"wireterm/internal/canvas"
	"wireterm/internal/export"
	"wireterm/internal/storage"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.canvas.Revision()
	cmd := m.handle(msg)
	if m.canvas.Revision() != before {
		cmd = tea.Batch(cmd, m.scheduleAutosave())
	}
	return m, cmd
}

func (m *model) handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.editor.SetWidth(clamp(msg.Width-8, 20, 100))
		m.editor.SetHeight(clamp(msg.Height-10, 4, 30))
		m.ensureCursorInBounds()
		return nil
	case noticeExpiredMsg:
		if msg.gen == m.noticeGen {
			m.notice = ""
			m.noticeIsErr = false
		}
		return nil
	case autosaveMsg:
		if msg.gen == m.saveGen {
			m.autosave()
		}
		return nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		return m.handleKey(msg)
	}

	// cursor blink and other widget messages
	var cmd tea.Cmd
	switch m.mode {
	case ModeEditing, ModeImport:
		m.editor, cmd = m.editor.Update(msg)
	case ModeSaveAs, ModeLayerName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	}
	return cmd
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.mode {
	case ModePalette:
		return m.handlePaletteKey(msg.String())
	case ModeEditing, ModeImport:
		return m.handleEditorKey(msg)
	case ModeMove:
		return m.handleMoveKey(msg.String())
	case ModeExport:
		return m.handleExportKey(msg.String())
	case ModeSaveAs, ModeLayerName:
		return m.handleNameKey(msg)
	case ModeOpen:
		return m.handleOpenKey(msg.String())
	case ModeConfirm:
		return m.handleConfirmKey(msg.String())
	default:
		return m.handleNormalKey(msg.String())
	}
}

func (m *model) handleNormalKey(key string) tea.Cmd {
	if m.help {
		switch key {
		case "?", "esc", "q", "enter":
			m.help = false
		}
		return nil
	}
	if isMoveKey(key) {
		m.handleNavigation(key)
		return nil
	}

	switch key {
	case "?":
		m.help = true
	case "z":
		m.zPanMode = !m.zPanMode
		if m.zPanMode {
			return m.notify("Pan mode: hjkl scrolls the view")
		}
		return m.notify("Pan mode off")
	case "esc":
		m.selected = ""
		m.zPanMode = false
	case "tab":
		m.selectNext()
	case "p":
		m.openPalette()
	case "t":
		obj := m.canvas.AddText(m.cursorX, m.cursorY)
		m.selected = obj.ID
		return m.notify("Added text")
	case "e", "enter":
		return m.startEdit()
	case "m":
		return m.startMove()
	case "d", "delete", "backspace":
		return m.onTarget(func(id string) (string, error) {
			m.selected = ""
			return "Deleted", m.canvas.Delete(id)
		})
	case "D":
		return m.onTarget(func(id string) (string, error) {
			dup, err := m.canvas.Duplicate(id)
			if err == nil {
				m.selected = dup.ID
			}
			return "Duplicated", err
		})
	case "]":
		return m.onTarget(func(id string) (string, error) { return "Raised", m.canvas.Raise(id) })
	case "[":
		return m.onTarget(func(id string) (string, error) { return "Lowered", m.canvas.Lower(id) })
	case "}":
		return m.onTarget(func(id string) (string, error) { return "Brought to front", m.canvas.BringToFront(id) })
	case "{":
		return m.onTarget(func(id string) (string, error) { return "Sent to back", m.canvas.SendToBack(id) })
	case "u":
		return m.undo()
	case "U", "ctrl+r":
		return m.redo()
	case "i":
		m.startImport("")
	case "I":
		return m.importClipboard()
	case "x":
		m.mode = ModeExport
	case "s":
		return m.save()
	case "S":
		m.promptName(ModeSaveAs, m.designName)
	case "o":
		return m.openDesigns()
	case "M":
		m.canvas.SetMode(m.canvas.Mode().Toggle())
		return m.notify("Template mode: " + m.canvas.Mode().String())
	case "L":
		l := m.canvas.CycleLayer()
		return m.notify("Active layer: " + l.Name)
	case "N":
		l := m.canvas.AddLayer("")
		return m.notify("Added " + l.Name)
	case "v":
		l := m.canvas.ActiveLayer()
		visible, err := m.canvas.ToggleLayer(l.ID)
		if err != nil {
			return m.fail(err)
		}
		if !visible {
			m.dropHiddenSelection()
			return m.notify(l.Name + " hidden")
		}
		return m.notify(l.Name + " shown")
	case "R":
		m.promptName(ModeLayerName, m.canvas.ActiveLayer().Name)
	case "X":
		return m.confirm(ConfirmDeleteLayer, m.canvas.ActiveLayer().ID)
	case "C":
		return m.confirm(ConfirmClear, "")
	case "q":
		return m.confirm(ConfirmQuit, "")
	}
	return nil
}

// target is the selected object, or else the topmost object under the cursor.
func (m *model) target() (string, bool) {
	if _, ok := m.canvas.Find(m.selected); ok && m.selected != "" {
		return m.selected, true
	}
	if obj, ok := m.canvas.Pick(m.cursorX, m.cursorY); ok {
		m.selected = obj.ID
		return obj.ID, true
	}
	return "", false
}

func (m *model) onTarget(fn func(id string) (string, error)) tea.Cmd {
	id, ok := m.target()
	if !ok {
		return m.notify("Nothing selected")
	}
	done, err := fn(id)
	if err != nil {
		return m.fail(err)
	}
	return m.notify(done)
}

// selectNext cycles the selection through visible objects, bottom to top.
func (m *model) selectNext() {
	var ids []string
	for _, o := range m.canvas.Objects().VisibleOn(m.canvas.Layers()) {
		ids = append(ids, o.ID)
	}
	if len(ids) == 0 {
		m.selected = ""
		return
	}
	next := 0
	for i, id := range ids {
		if id == m.selected {
			next = (i + 1) % len(ids)
		}
	}
	m.selected = ids[next]
	if obj, ok := m.canvas.Find(m.selected); ok {
		m.cursorX, m.cursorY = obj.X, obj.Y
		m.ensureCursorInBounds()
	}
}

func (m *model) dropHiddenSelection() {
	if m.selected == "" {
		return
	}
	for _, o := range m.canvas.Objects().VisibleOn(m.canvas.Layers()) {
		if o.ID == m.selected {
			return
		}
	}
	m.selected = ""
}

func (m *model) openPalette() {
	m.palette = m.palette[:0]
	for _, g := range m.canvas.Registry().Grouped() {
		m.palette = append(m.palette, g.Templates...)
	}
	m.paletteIndex = clamp(m.paletteIndex, 0, len(m.palette)-1)
	m.mode = ModePalette
}

func (m *model) handlePaletteKey(key string) tea.Cmd {
	switch key {
	case "esc", "p", "q":
		m.mode = ModeNormal
	case "j", "down", "ctrl+n":
		m.paletteIndex = (m.paletteIndex + 1) % len(m.palette)
	case "k", "up", "ctrl+p":
		m.paletteIndex = (m.paletteIndex - 1 + len(m.palette)) % len(m.palette)
	case "g", "home":
		m.paletteIndex = 0
	case "G", "end":
		m.paletteIndex = len(m.palette) - 1
	case "tab", "M":
		m.canvas.SetMode(m.canvas.Mode().Toggle())
		m.paletteIndex = 0
		m.openPalette()
	case "enter":
		d := m.palette[m.paletteIndex]
		m.mode = ModeNormal
		obj, err := m.canvas.Place(d.Key, m.cursorX, m.cursorY)
		if err != nil {
			return m.fail(err)
		}
		m.selected = obj.ID
		return m.notify("Placed " + d.Label)
	}
	return nil
}

func (m *model) startEdit() tea.Cmd {
	id, ok := m.target()
	if !ok {
		return m.notify("Nothing selected")
	}
	obj, _ := m.canvas.Find(id)
	m.editingID = id
	m.editor.SetValue(obj.Data.Text())
	m.mode = ModeEditing
	return m.editor.Focus()
}

func (m *model) startImport(text string) {
	m.editor.SetValue(text)
	m.mode = ModeImport
	m.editor.Focus()
}

func (m *model) importText(text string) tea.Cmd {
	obj, err := m.canvas.Import(text)
	if err != nil {
		return m.fail(err)
	}
	m.selected = obj.ID
	m.cursorX, m.cursorY = obj.X, obj.Y
	m.ensureCursorInBounds()
	return m.notify("Imported wireframe")
}

func (m *model) importClipboard() tea.Cmd {
	text, err := m.clipboard.ReadText()
	if err != nil {
		m.log.Warn("clipboard read failed", "err", err)
		return m.fail(fmt.Errorf("clipboard: %w", err))
	}
	return m.importText(cleanClipboardText(text))
}

func (m *model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.editor.Blur()
		m.mode = ModeNormal
		m.editingID = ""
		return nil
	case "ctrl+s", "ctrl+d":
		value := m.editor.Value()
		m.editor.Blur()
		mode := m.mode
		m.mode = ModeNormal
		if mode == ModeImport {
			return m.importText(value)
		}
		id := m.editingID
		m.editingID = ""
		if err := m.canvas.SetText(id, value); err != nil {
			return m.fail(err)
		}
		return m.notify("Text updated")
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}

func (m *model) startMove() tea.Cmd {
	id, ok := m.target()
	if !ok {
		return m.notify("Nothing selected")
	}
	m.canvas.BeginGesture()
	m.dragID = id
	m.mode = ModeMove
	return m.notify("Move: hjkl to move, Enter to place, Esc to cancel")
}

func (m *model) handleMoveKey(key string) tea.Cmd {
	switch {
	case isMoveKey(key):
		dx, dy, speed := direction(key)
		obj, ok := m.canvas.Find(m.dragID)
		if !ok {
			break
		}
		x, y := max(obj.X+dx*speed, 0), max(obj.Y+dy*speed, 0)
		if err := m.canvas.Drag(m.dragID, x, y); err != nil {
			return m.fail(err)
		}
		m.cursorX, m.cursorY = x, y
		m.ensureCursorInBounds()
	case key == "enter" || key == "m":
		m.canvas.EndGesture(true)
		m.dragID = ""
		m.mode = ModeNormal
		return m.notify("Moved")
	case key == "esc":
		m.canvas.EndGesture(false)
		m.dragID = ""
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) handleExportKey(key string) tea.Cmd {
	n := len(export.Formats())
	switch key {
	case "esc", "x", "q":
		m.mode = ModeNormal
	case "tab", "right", "l", "f":
		m.exportIndex = (m.exportIndex + 1) % n
	case "shift+tab", "left", "h", "F":
		m.exportIndex = (m.exportIndex - 1 + n) % n
	case "c":
		return m.copyExport()
	case "w":
		return m.exportToFile()
	}
	return nil
}

func (m *model) promptName(mode Mode, value string) {
	m.nameInput.SetValue(value)
	m.nameInput.CursorEnd()
	m.nameInput.Focus()
	m.mode = mode
}

func (m *model) handleNameKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.nameInput.Blur()
		m.mode = ModeNormal
		return nil
	case "enter":
		value := m.nameInput.Value()
		m.nameInput.Blur()
		mode := m.mode
		m.mode = ModeNormal
		if mode == ModeLayerName {
			if err := m.canvas.RenameLayer(m.canvas.ActiveLayer().ID, value); err != nil {
				return m.fail(err)
			}
			return m.notify("Layer renamed")
		}
		return m.saveDesign(value)
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return cmd
}

// save writes to the design file or named design already in use, and asks
// for a name otherwise.
func (m *model) save() tea.Cmd {
	switch {
	case m.filename != "":
		st := stateOf(m.canvas)
		st.SavedAt = time.Now()
		if err := storage.WriteFile(m.filename, st); err != nil {
			m.log.Error("save failed", "path", m.filename, "err", err)
			return m.fail(err)
		}
		m.savedRevision = m.canvas.Revision()
		m.log.Info("design saved", "path", m.filename)
		return m.notify("Saved " + m.filename)
	case m.designName != "":
		return m.saveDesign(m.designName)
	default:
		m.promptName(ModeSaveAs, "")
		return nil
	}
}

func (m *model) saveDesign(name string) tea.Cmd {
	if err := m.library.SaveDesign(name, stateOf(m.canvas)); err != nil {
		m.log.Error("save design failed", "name", name, "err", err)
		return m.fail(err)
	}
	m.designName = name
	m.filename = ""
	m.savedRevision = m.canvas.Revision()
	m.log.Info("design saved", "name", name, "dir", m.library.Dir)
	return m.notify("Saved design " + name)
}

func (m *model) openDesigns() tea.Cmd {
	names, err := m.library.ListDesigns()
	if err != nil {
		return m.fail(err)
	}
	if len(names) == 0 {
		return m.notify("No saved designs")
	}
	m.designs = names
	m.designIndex = clamp(m.designIndex, 0, len(names)-1)
	m.mode = ModeOpen
	return nil
}

func (m *model) handleOpenKey(key string) tea.Cmd {
	switch key {
	case "esc", "q", "o":
		m.mode = ModeNormal
	case "j", "down":
		m.designIndex = (m.designIndex + 1) % len(m.designs)
	case "k", "up":
		m.designIndex = (m.designIndex - 1 + len(m.designs)) % len(m.designs)
	case "d", "delete":
		return m.confirm(ConfirmDeleteDesign, m.designs[m.designIndex])
	case "enter":
		name := m.designs[m.designIndex]
		st, err := m.library.LoadDesign(name)
		if err != nil {
			return m.fail(err)
		}
		applyState(m.canvas, st)
		m.designName, m.filename, m.selected = name, "", ""
		m.savedRevision = m.canvas.Revision()
		m.mode = ModeNormal
		return m.notify("Opened " + name)
	}
	return nil
}

// confirm asks before a destructive action unless confirmations are off.
func (m *model) confirm(action ConfirmAction, target string) tea.Cmd {
	m.confirmAction, m.confirmTarget = action, target
	if !m.config.Confirmations {
		return m.runConfirmed()
	}
	m.mode = ModeConfirm
	return nil
}

func (m *model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmQuit:
		if m.unsaved() {
			return "Quit with unsaved changes?"
		}
		return "Quit wireterm?"
	case ConfirmClear:
		return "Clear the whole canvas?"
	case ConfirmDeleteLayer:
		return fmt.Sprintf("Delete %s and its objects?", m.canvas.ActiveLayer().Name)
	case ConfirmDeleteDesign:
		return fmt.Sprintf("Delete design %q?", m.confirmTarget)
	}
	return "Are you sure?"
}

func (m *model) handleConfirmKey(key string) tea.Cmd {
	switch key {
	case "y", "Y", "enter":
		return m.runConfirmed()
	case "n", "N", "esc", "q":
		if m.confirmAction == ConfirmDeleteDesign {
			m.mode = ModeOpen
		} else {
			m.mode = ModeNormal
		}
	}
	return nil
}

func (m *model) runConfirmed() tea.Cmd {
	m.mode = ModeNormal
	switch m.confirmAction {
	case ConfirmQuit:
		return m.quit()
	case ConfirmClear:
		if err := m.canvas.Clear(); err != nil {
			return m.fail(err)
		}
		m.selected = ""
		return m.notify("Canvas cleared")
	case ConfirmDeleteLayer:
		name := m.canvas.ActiveLayer().Name
		if err := m.canvas.DeleteLayer(m.confirmTarget); err != nil {
			return m.fail(err)
		}
		m.dropStaleSelection()
		return m.notify("Deleted " + name)
	case ConfirmDeleteDesign:
		if err := m.library.DeleteDesign(m.confirmTarget); err != nil {
			return m.fail(err)
		}
		if m.designName == m.confirmTarget {
			m.designName = ""
		}
		cmd := m.notify("Deleted design " + m.confirmTarget)
		if names, err := m.library.ListDesigns(); err == nil && len(names) > 0 {
			m.designs = names
			m.designIndex = clamp(m.designIndex, 0, len(names)-1)
			m.mode = ModeOpen
		}
		return cmd
	}
	return nil
}

func (m *model) quit() tea.Cmd {
	m.canvas.EndGesture(false)
	if m.config.Autosave && m.config.AutosaveFile != "" {
		m.autosave()
	}
	return tea.Quit
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.mode != ModeNormal || m.help {
		return nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.panY = max(m.panY-1, 0)
		return nil
	case tea.MouseButtonWheelDown:
		m.panY = clamp(m.panY+1, 0, max(m.canvas.Rows()-m.viewHeight(), 0))
		return nil
	}

	wx, wy := m.worldCoordsAt(msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if msg.Y >= m.viewHeight() {
			return nil
		}
		m.cursorX = clamp(wx, 0, m.canvas.Cols()-1)
		m.cursorY = clamp(wy, 0, m.canvas.Rows()-1)
		obj, ok := m.canvas.Pick(wx, wy)
		if !ok {
			m.selected = ""
			return nil
		}
		m.selected = obj.ID
		m.dragID = obj.ID
		m.dragOffX, m.dragOffY = wx-obj.X, wy-obj.Y
		m.canvas.BeginGesture()
	case msg.Action == tea.MouseActionMotion && m.dragID != "":
		err := m.canvas.Drag(m.dragID, wx-m.dragOffX, wy-m.dragOffY)
		if errors.Is(err, canvas.ErrNotFound) {
			m.dragID = ""
		}
	case msg.Action == tea.MouseActionRelease && m.dragID != "":
		m.canvas.EndGesture(true)
		m.dragID = ""
	}
	return nil
}
