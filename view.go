package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"wireterm/internal/export"
)

var (
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f6bd60")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c0c0c0")).Background(lipgloss.Color("#303030"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#84a59d")).Background(lipgloss.Color("#303030"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#e63946")).Background(lipgloss.Color("#303030"))
	modalStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#8b9dc3")).Padding(0, 1)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	activeStyle   = lipgloss.NewStyle().Reverse(true)
)

func (m Mode) String() string {
	switch m {
	case ModePalette:
		return "PALETTE"
	case ModeEditing:
		return "EDIT"
	case ModeImport:
		return "IMPORT"
	case ModeMove:
		return "MOVE"
	case ModeExport:
		return "EXPORT"
	case ModeSaveAs:
		return "SAVE"
	case ModeLayerName:
		return "LAYER"
	case ModeOpen:
		return "OPEN"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "NORMAL"
	}
}

func (m model) View() string {
	w, h := m.viewWidth(), m.viewHeight()
	base := m.canvasView(w, h) + "\n" + m.statusLine(w)
	if box := m.modal(w, h); box != "" {
		return overlayCenter(base, box, w, h+statusLines)
	}
	return base
}

type cellClass int

const (
	plainCell cellClass = iota
	selectedCell
	cursorCell
)

// canvasView draws the visible window of the canvas, highlighting the
// selected object and the cursor.
func (m model) canvasView(w, h int) string {
	buf := m.canvas.Render()
	sel, hasSel := m.canvas.Find(m.selected)
	if m.selected == "" {
		hasSel = false
	}

	rows := make([]string, h)
	for vy := 0; vy < h; vy++ {
		y := vy + m.panY
		if y >= buf.Rows() {
			continue
		}
		line := []rune(buf[y])
		var b strings.Builder
		var run []rune
		class := plainCell
		flush := func() {
			if len(run) == 0 {
				return
			}
			switch class {
			case selectedCell:
				b.WriteString(selectedStyle.Render(string(run)))
			case cursorCell:
				b.WriteString(cursorStyle.Render(string(run)))
			default:
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for vx := 0; vx < w; vx++ {
			x := vx + m.panX
			if x >= len(line) {
				break
			}
			c := plainCell
			switch {
			case x == m.cursorX && y == m.cursorY && m.mode != ModeMove:
				c = cursorCell
			case hasSel && sel.Contains(x, y):
				c = selectedCell
			}
			if c != class {
				flush()
				class = c
			}
			run = append(run, line[x])
		}
		flush()
		rows[vy] = b.String()
	}
	return strings.Join(rows, "\n")
}

func (m model) statusLine(w int) string {
	layer := m.canvas.ActiveLayer()
	layerName := layer.Name
	if !layer.Visible {
		layerName += " (hidden)"
	}
	name := m.exportBaseName()
	if m.unsaved() {
		name += "*"
	}
	left := fmt.Sprintf(" %s │ %s │ %s │ %s │ %d,%d ", m.mode, m.canvas.Registry().Name(), layerName, name, m.cursorX, m.cursorY)
	if m.zPanMode {
		left += "│ PAN "
	}
	right := " ? help "
	style := statusStyle
	if m.notice != "" {
		right = " " + m.notice + " "
		style = noticeStyle
		if m.noticeIsErr {
			style = errorStyle
		}
	}

	lw, rw := runewidth.StringWidth(left), runewidth.StringWidth(right)
	if lw+rw > w {
		return statusStyle.Render(runewidth.Truncate(left+right, w, "…"))
	}
	return statusStyle.Render(left+strings.Repeat(" ", w-lw-rw)) + style.Render(right)
}

// modal renders the box drawn over the canvas for the current mode, or "".
func (m model) modal(w, h int) string {
	if m.help {
		return modalStyle.Render(helpText)
	}
	var body string
	switch m.mode {
	case ModePalette:
		body = m.paletteView(h - 4)
	case ModeEditing:
		body = titleStyle.Render("Edit text") + "\n" + m.editor.View() + "\n" + hintStyle.Render("ctrl+s save · esc cancel")
	case ModeImport:
		body = titleStyle.Render("Paste ASCII art to import") + "\n" + m.editor.View() + "\n" + hintStyle.Render("ctrl+s import · esc cancel")
	case ModeExport:
		body = m.exportView(w-6, h-8)
	case ModeSaveAs:
		body = titleStyle.Render("Save design as") + "\n" + m.nameInput.View() + "\n" + hintStyle.Render("enter save · esc cancel")
	case ModeLayerName:
		body = titleStyle.Render("Rename layer") + "\n" + m.nameInput.View() + "\n" + hintStyle.Render("enter rename · esc cancel")
	case ModeOpen:
		body = m.openView(h - 4)
	case ModeConfirm:
		body = titleStyle.Render(m.confirmPrompt()) + "\n" + hintStyle.Render("y yes · n no")
	default:
		return ""
	}
	return modalStyle.Render(body)
}

// window returns the [start, end) range of n items showing at most size,
// keeping index in view.
func window(n, index, size int) (int, int) {
	size = max(size, 1)
	start := 0
	if index >= size {
		start = index - size + 1
	}
	return start, min(start+size, n)
}

func (m model) paletteView(height int) string {
	var lines []string
	indexOf := make(map[int]int) // palette index -> line
	i := 0
	for _, g := range m.canvas.Registry().Grouped() {
		header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(g.Category.Color)).Render(g.Category.Label)
		lines = append(lines, header)
		for _, d := range g.Templates {
			entry := fmt.Sprintf("  %s %s", d.Icon, d.Label)
			entry = runewidth.FillRight(runewidth.Truncate(entry, paletteWidth, "…"), paletteWidth)
			if i == m.paletteIndex {
				entry = activeStyle.Render(entry)
			}
			indexOf[i] = len(lines)
			lines = append(lines, entry)
			i++
		}
	}
	start, end := window(len(lines), indexOf[m.paletteIndex], height-2)
	title := titleStyle.Render(fmt.Sprintf("%s templates", strings.ToUpper(m.canvas.Registry().Name())))
	hint := hintStyle.Render("enter place · tab switch · esc close")
	return title + "\n" + strings.Join(lines[start:end], "\n") + "\n" + hint
}

func (m model) exportView(width, height int) string {
	var tabs []string
	current := m.exportFormat()
	for _, f := range export.Formats() {
		label := " " + f.Label + " "
		if f.Name == current.Name {
			label = activeStyle.Render(label)
		}
		tabs = append(tabs, label)
	}
	preview := strings.Split(m.exportPreview(), "\n")
	if len(preview) > max(height, 1) {
		preview = append(preview[:max(height-1, 0)], "…")
	}
	for i, l := range preview {
		preview[i] = runewidth.Truncate(l, max(width, 10), "…")
	}
	hint := hintStyle.Render("tab format · c copy · w write to " + m.config.GetSavePath(current.Filename(m.exportBaseName())) + " · esc close")
	return strings.Join(tabs, "") + "\n\n" + strings.Join(preview, "\n") + "\n\n" + hint
}

func (m model) openView(height int) string {
	start, end := window(len(m.designs), m.designIndex, height-2)
	var lines []string
	for i := start; i < end; i++ {
		entry := "  " + m.designs[i]
		if i == m.designIndex {
			entry = activeStyle.Render("> " + m.designs[i])
		}
		lines = append(lines, entry)
	}
	return titleStyle.Render("Open design") + "\n" + strings.Join(lines, "\n") + "\n" + hintStyle.Render("enter open · d delete · esc close")
}

const helpText = `wireterm keys

  hjkl / arrows   move cursor (shift or HJK: fast)
  z               toggle pan mode
  tab / esc       next object / clear selection
  mouse           click to select, drag to move

  p        template palette       M  switch ui/diagram
  t        add text               e  edit text
  i        import ASCII art       I  import from clipboard
  m        move selected          d  delete
  D        duplicate              u  undo   U  redo
  ] [      raise / lower          } {  front / back

  L  next layer   N  new layer   v  show/hide layer
  R  rename layer X  delete layer

  x  export   s  save   S  save as   o  open
  C  clear canvas        q  quit     ?  close help`
