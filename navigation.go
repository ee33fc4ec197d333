package main

// The cursor lives in canvas coordinates. The viewport shows the canvas from
// (panX, panY) and follows the cursor unless pan mode is on.

func (m *model) handleNavigation(key string) {
	dx, dy, speed := direction(key)
	if m.zPanMode {
		m.panX = clamp(m.panX+dx*speed, 0, max(m.canvas.Cols()-m.viewWidth(), 0))
		m.panY = clamp(m.panY+dy*speed, 0, max(m.canvas.Rows()-m.viewHeight(), 0))
		m.cursorX = clamp(m.cursorX, m.panX, m.panX+m.viewWidth()-1)
		m.cursorY = clamp(m.cursorY, m.panY, m.panY+m.viewHeight()-1)
		m.ensureCursorInBounds()
		return
	}
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
}

// direction maps a movement key to a unit step and its speed.
func direction(key string) (dx, dy, speed int) {
	speed = 1
	switch key {
	case "shift+left", "shift+right", "shift+up", "shift+down", "H", "J", "K":
		speed = fastMoveSpeed
	}
	switch key {
	case "h", "left", "H", "shift+left":
		dx = -1
	case "l", "right", "shift+right":
		dx = 1
	case "k", "up", "K", "shift+up":
		dy = -1
	case "j", "down", "J", "shift+down":
		dy = 1
	}
	return dx, dy, speed
}

func isMoveKey(key string) bool {
	dx, dy, _ := direction(key)
	return dx != 0 || dy != 0
}

func (m *model) ensureCursorInBounds() {
	m.cursorX = clamp(m.cursorX, 0, m.canvas.Cols()-1)
	m.cursorY = clamp(m.cursorY, 0, m.canvas.Rows()-1)
	m.scrollToCursor()
}

func (m *model) scrollToCursor() {
	w, h := m.viewWidth(), m.viewHeight()
	if m.cursorX < m.panX {
		m.panX = m.cursorX
	} else if m.cursorX >= m.panX+w {
		m.panX = m.cursorX - w + 1
	}
	if m.cursorY < m.panY {
		m.panY = m.cursorY
	} else if m.cursorY >= m.panY+h {
		m.panY = m.cursorY - h + 1
	}
	m.panX = max(m.panX, 0)
	m.panY = max(m.panY, 0)
}

func (m *model) viewWidth() int { return max(m.width, 1) }

func (m *model) viewHeight() int { return max(m.height-statusLines, 1) }

// worldCoordsAt converts a screen cell to canvas coordinates.
func (m *model) worldCoordsAt(x, y int) (int, int) {
	return x + m.panX, y + m.panY
}
