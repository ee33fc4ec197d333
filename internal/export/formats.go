package export

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"wireterm/internal/grid"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Format is one downloadable representation of a buffer.
type Format struct {
	Name      string
	Label     string
	Extension string
	MIME      string
	write     func(io.Writer, grid.Buffer) error
}

// Write encodes buf to w in this format.
func (f Format) Write(w io.Writer, buf grid.Buffer) error {
	return f.write(w, buf)
}

// Filename gives base the format's extension, replacing any existing one.
func (f Format) Filename(base string) string {
	return strings.TrimSuffix(base, filepath.Ext(base)) + "." + f.Extension
}

func textWriter(fn func(grid.Buffer) string) func(io.Writer, grid.Buffer) error {
	return func(w io.Writer, buf grid.Buffer) error {
		_, err := io.WriteString(w, fn(buf))
		return err
	}
}

var formats = []Format{
	{Name: "markdown", Label: "Markdown", Extension: "md", MIME: "text/markdown", write: textWriter(ToMarkdown)},
	{Name: "text", Label: "Plain Text", Extension: "txt", MIME: "text/plain", write: textWriter(ToText)},
	{Name: "html", Label: "HTML", Extension: "html", MIME: "text/html", write: textWriter(ToHTML)},
	{Name: "png", Label: "PNG Image", Extension: "png", MIME: "image/png", write: func(w io.Writer, buf grid.Buffer) error {
		return PNG(w, Trim(buf))
	}},
}

// Formats lists the supported formats, markdown first.
func Formats() []Format {
	return append([]Format(nil), formats...)
}

// Lookup finds a format by name or extension.
func Lookup(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "."))
	for _, f := range formats {
		if f.Name == name || f.Extension == name {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ForPath picks the format matching the extension of path.
func ForPath(path string) (Format, error) {
	return Lookup(filepath.Ext(path))
}
