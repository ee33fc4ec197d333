package main

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"wireterm/internal/canvas"
	"wireterm/internal/storage"
	"wireterm/internal/templates"
)

type model struct {
	width    int
	height   int
	cursorX  int
	cursorY  int
	panX     int
	panY     int
	zPanMode bool
	mode     Mode
	help     bool

	canvas   *canvas.Canvas
	selected string

	palette      []templates.Descriptor
	paletteIndex int

	editor    textarea.Model
	editingID string
	nameInput textinput.Model

	exportIndex int

	designs     []string
	designIndex int

	confirmAction ConfirmAction
	confirmTarget string

	// design file given on the command line, or the named design last saved
	filename   string
	designName string

	// mouse drag state
	dragID   string
	dragOffX int
	dragOffY int

	notice      string
	noticeIsErr bool
	noticeGen   int

	saveGen       int
	savedRevision uint64

	config    *Config
	store     *storage.Store
	library   *storage.Designs
	clipboard clipboardIO
	log       *slog.Logger
}

type noticeExpiredMsg struct{ gen int }

type autosaveMsg struct{ gen int }
