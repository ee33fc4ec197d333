package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"wireterm/internal/canvas"
	"wireterm/internal/export"
	"wireterm/internal/grid"
	"wireterm/internal/storage"
	"wireterm/internal/templates"
)

// stateOf captures a canvas for saving.
func stateOf(c *canvas.Canvas) storage.State {
	return storage.State{
		Objects: c.Objects().Clone(),
		Layers:  c.Layers(),
		Mode:    c.Mode().String(),
	}
}

// applyState loads st into c, keeping c's mode when st names none.
func applyState(c *canvas.Canvas, st storage.State) {
	if st.Mode != "" {
		if mode, err := templates.ParseMode(st.Mode); err == nil {
			c.SetMode(mode)
		}
	}
	c.Load(st.Objects, st.Layers)
}

// renderState composites a saved design at the configured canvas size.
func renderState(cfg *Config, st storage.State) grid.Buffer {
	c := canvas.New(canvas.WithSize(cfg.Cols, cfg.Rows))
	applyState(c, st)
	return c.Render()
}

// writeExport encodes buf in format to path, or to w when path is empty.
func writeExport(w io.Writer, path string, format export.Format, buf grid.Buffer) error {
	if path == "" {
		if err := format.Write(w, buf); err != nil {
			return err
		}
		if format.Name != "png" {
			fmt.Fprintln(w)
		}
		return nil
	}
	var data bytes.Buffer
	if err := format.Write(&data, buf); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data.Bytes(), 0o644)
}

func (m *model) exportFormat() export.Format {
	formats := export.Formats()
	return formats[m.exportIndex%len(formats)]
}

// exportBaseName names export files after the open design.
func (m *model) exportBaseName() string {
	switch {
	case m.filename != "":
		return strings.TrimSuffix(filepath.Base(m.filename), filepath.Ext(m.filename))
	case m.designName != "":
		return m.designName
	default:
		return defaultBaseName
	}
}

// exportToFile writes the current canvas in the selected format into the
// save directory.
func (m *model) exportToFile() tea.Cmd {
	format := m.exportFormat()
	path := m.config.GetSavePath(format.Filename(m.exportBaseName()))
	if err := writeExport(nil, path, format, m.canvas.Render()); err != nil {
		m.log.Error("export failed", "format", format.Name, "path", path, "err", err)
		return m.fail(fmt.Errorf("export %s: %w", format.Label, err))
	}
	m.log.Info("exported", "format", format.Name, "path", path)
	return m.notify("Exported to " + path)
}

// copyExport puts the selected text format on the clipboard.
func (m *model) copyExport() tea.Cmd {
	format := m.exportFormat()
	if format.Name == "png" {
		return m.fail(fmt.Errorf("%s cannot be copied; press w to write it", format.Label))
	}
	var text bytes.Buffer
	if err := format.Write(&text, m.canvas.Render()); err != nil {
		return m.fail(err)
	}
	if err := m.clipboard.WriteText(text.String()); err != nil {
		m.log.Warn("clipboard write failed", "err", err)
		return m.fail(fmt.Errorf("failed to copy: %w", err))
	}
	return m.notify("Copied to clipboard!")
}

// exportPreview is the text shown in the export modal.
func (m *model) exportPreview() string {
	format := m.exportFormat()
	buf := m.canvas.Render()
	switch format.Name {
	case "png":
		lines := export.Trim(buf)
		cols := 0
		for _, l := range lines {
			cols = max(cols, len([]rune(l)))
		}
		return fmt.Sprintf("PNG image, %d x %d cells at %gx%g px", cols, len(lines), export.CellWidth, export.CellHeight)
	default:
		var out bytes.Buffer
		if err := format.Write(&out, buf); err != nil {
			return err.Error()
		}
		return out.String()
	}
}
