// Package grid holds the character-grid model of a wireframe: placed objects,
// their stacking order, and the compositor that flattens them into a buffer.
package grid

import (
	"strings"
	"unicode/utf8"
)

// Content is a block of text lines with a declared bounding box. Lines may be
// shorter than W; missing cells are not drawn.
type Content struct {
	Lines []string `json:"lines" yaml:"lines"`
	W     int      `json:"w" yaml:"w"`
	H     int      `json:"h" yaml:"h"`
}

// NewContent sizes a block from its lines: W is the longest line, H the line count.
func NewContent(lines []string) Content {
	if len(lines) == 0 {
		lines = []string{""}
	}
	w := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > w {
			w = n
		}
	}
	if w < 1 {
		w = 1
	}
	return Content{Lines: lines, W: w, H: len(lines)}
}

// ContentFromText splits text on newlines and sizes it with NewContent.
func ContentFromText(text string) Content {
	return NewContent(strings.Split(text, "\n"))
}

func (c Content) Clone() Content {
	lines := make([]string, len(c.Lines))
	copy(lines, c.Lines)
	return Content{Lines: lines, W: c.W, H: c.H}
}

func (c Content) Text() string {
	return strings.Join(c.Lines, "\n")
}

func (c Content) Equal(other Content) bool {
	if c.W != other.W || c.H != other.H || len(c.Lines) != len(other.Lines) {
		return false
	}
	for i := range c.Lines {
		if c.Lines[i] != other.Lines[i] {
			return false
		}
	}
	return true
}

// Object is one placed template instance. Data is owned by the object.
type Object struct {
	ID      string  `json:"id" yaml:"id"`
	Type    string  `json:"type" yaml:"type"`
	X       int     `json:"x" yaml:"x"`
	Y       int     `json:"y" yaml:"y"`
	Data    Content `json:"data" yaml:"data"`
	LayerID string  `json:"layerId,omitempty" yaml:"layerId,omitempty"`
	Mode    string  `json:"mode,omitempty" yaml:"mode,omitempty"`
}

func (o Object) Clone() Object {
	o.Data = o.Data.Clone()
	return o
}

// Contains reports whether (col, row) falls inside the declared bounding box.
func (o Object) Contains(col, row int) bool {
	return col >= o.X && col < o.X+o.Data.W &&
		row >= o.Y && row < o.Y+o.Data.H
}

func (o Object) Layer() string {
	if o.LayerID == "" {
		return DefaultLayerID
	}
	return o.LayerID
}

func (o Object) Equal(other Object) bool {
	return o.ID == other.ID && o.Type == other.Type &&
		o.X == other.X && o.Y == other.Y &&
		o.LayerID == other.LayerID && o.Mode == other.Mode &&
		o.Data.Equal(other.Data)
}
