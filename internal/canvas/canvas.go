// Package canvas is the editable wireframe document: an ordered collection
// of placed objects with layers, undo history and rendering. Every edit that
// changes the collection records the prior state first.
package canvas

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"wireterm/internal/export"
	"wireterm/internal/grid"
	"wireterm/internal/history"
	"wireterm/internal/logging"
	"wireterm/internal/templates"
)

// Default canvas size in cells.
const (
	DefaultCols = 100
	DefaultRows = 50
)

// Object types that do not come from a registry.
const (
	TypeText     = "text"
	TypeImported = "imported"
)

// DefaultText is the content of a freshly added text object.
const DefaultText = "Edit me"

// Where pasted art lands.
const (
	ImportX = 2
	ImportY = 2
)

// DuplicateOffset is how far a copy is shifted right and down.
const DuplicateOffset = 2

var (
	ErrNotFound      = errors.New("object not found")
	ErrEmptyCanvas   = errors.New("canvas is already empty")
	ErrEmptyImport   = errors.New("nothing to import")
	ErrNoGesture     = errors.New("no gesture in progress")
	ErrLayerNotFound = errors.New("layer not found")
	ErrLastLayer     = errors.New("cannot delete the last layer")

	ErrNothingToUndo = history.ErrNothingToUndo
	ErrNothingToRedo = history.ErrNothingToRedo
)

type Canvas struct {
	objects grid.Collection
	layers  []grid.Layer
	active  string
	// highest numeric layer id handed out; ids are never reused
	lastLayer int
	// deleted layers, recreated when undo brings back their objects
	removed map[string]grid.Layer
	mode    templates.Mode

	cols, rows int
	history    *history.Manager

	// pre-drag state while a gesture is open
	gesture  grid.Collection
	dragging bool

	revision uint64
	newID    func() string
	log      *slog.Logger
}

type Option func(*Canvas)

func WithSize(cols, rows int) Option {
	return func(c *Canvas) { c.cols, c.rows = cols, rows }
}

func WithHistoryLimit(n int) Option {
	return func(c *Canvas) { c.history = history.New(n) }
}

func WithMode(m templates.Mode) Option {
	return func(c *Canvas) { c.mode = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Canvas) {
		if l != nil {
			c.log = l
		}
	}
}

// WithIDs replaces the id generator, which defaults to random UUIDs.
func WithIDs(next func() string) Option {
	return func(c *Canvas) { c.newID = next }
}

func New(opts ...Option) *Canvas {
	c := &Canvas{
		layers:  grid.DefaultLayers(),
		active:  grid.DefaultLayerID,
		removed: make(map[string]grid.Layer),
		cols:    DefaultCols,
		rows:    DefaultRows,
		history: history.New(history.DefaultLimit),
		newID:   uuid.NewString,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Canvas) Cols() int { return c.cols }
func (c *Canvas) Rows() int { return c.rows }

// Objects returns the collection bottom to top. Callers must not modify it.
func (c *Canvas) Objects() grid.Collection { return c.objects }

func (c *Canvas) Len() int { return len(c.objects) }

func (c *Canvas) Find(id string) (grid.Object, bool) { return c.objects.Find(id) }

func (c *Canvas) Mode() templates.Mode { return c.mode }

// SetMode selects the registry used by Place.
func (c *Canvas) SetMode(m templates.Mode) {
	c.mode = m
	c.log.Debug("mode changed", "mode", m.String())
}

func (c *Canvas) Registry() *templates.Registry { return templates.For(c.mode) }

// Revision increases on every change to the document, including undo and
// redo. Autosave compares revisions to detect unsaved work.
func (c *Canvas) Revision() uint64 { return c.revision }

func (c *Canvas) History() *history.Manager { return c.history }

func (c *Canvas) CanUndo() bool { return c.history.CanUndo() }
func (c *Canvas) CanRedo() bool { return c.history.CanRedo() }

func (c *Canvas) touch() { c.revision++ }

// mutate records the current collection and replaces it with fn's result.
func (c *Canvas) mutate(op string, fn func(grid.Collection) grid.Collection) {
	c.objects = c.history.Track(c.objects, fn)
	c.touch()
	c.log.Debug("canvas edited", "op", op, "objects", len(c.objects))
}

func (c *Canvas) install(objects grid.Collection) {
	c.objects = objects
	c.restoreLayers()
	c.touch()
}

func (c *Canvas) newObject(typ string, x, y int, data grid.Content) grid.Object {
	return grid.Object{
		ID:      c.newID(),
		Type:    typ,
		X:       x,
		Y:       y,
		Data:    data,
		LayerID: c.active,
	}
}

// Place generates template key from the active registry and puts it on top
// at (col, row).
func (c *Canvas) Place(key string, col, row int, opts ...templates.Option) (grid.Object, error) {
	data, err := c.Registry().Generate(key, opts...)
	if err != nil {
		c.log.Warn("place failed", "key", key, "err", err)
		return grid.Object{}, err
	}
	obj := c.newObject(key, col, row, data)
	obj.Mode = c.mode.String()
	c.mutate("place", func(cur grid.Collection) grid.Collection { return cur.Append(obj) })
	return obj, nil
}

// AddText places an editable text object.
func (c *Canvas) AddText(col, row int) grid.Object {
	obj := c.newObject(TypeText, col, row, grid.ContentFromText(DefaultText))
	c.mutate("add text", func(cur grid.Collection) grid.Collection { return cur.Append(obj) })
	return obj
}

// SetText replaces an object's content with text. Whitespace-only text is
// ignored and records nothing.
func (c *Canvas) SetText(id, text string) error {
	if c.objects.IndexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	data := grid.ContentFromText(normalizeNewlines(text))
	c.mutate("set text", func(cur grid.Collection) grid.Collection { return cur.SetData(id, data) })
	return nil
}

// Import wraps pasted art into an object at the import position.
func (c *Canvas) Import(text string) (grid.Object, error) {
	data, err := ParseImport(text)
	if err != nil {
		return grid.Object{}, err
	}
	obj := c.newObject(TypeImported, ImportX, ImportY, data)
	c.mutate("import", func(cur grid.Collection) grid.Collection { return cur.Append(obj) })
	return obj, nil
}

// Insert appends ready-made content, such as a blueprint, at (col, row).
func (c *Canvas) Insert(typ string, col, row int, data grid.Content) grid.Object {
	obj := c.newObject(typ, col, row, data.Clone())
	c.mutate("insert", func(cur grid.Collection) grid.Collection { return cur.Append(obj) })
	return obj
}

func (c *Canvas) Delete(id string) error {
	if c.objects.IndexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.mutate("delete", func(cur grid.Collection) grid.Collection { return cur.Remove(id) })
	return nil
}

// Clear removes every object. Clearing an empty canvas is an error and
// leaves history untouched.
func (c *Canvas) Clear() error {
	if len(c.objects) == 0 {
		return ErrEmptyCanvas
	}
	c.mutate("clear", func(grid.Collection) grid.Collection { return grid.Collection{} })
	return nil
}

// Duplicate copies an object, offset down and right, onto the top of the stack.
func (c *Canvas) Duplicate(id string) (grid.Object, error) {
	src, ok := c.objects.Find(id)
	if !ok {
		return grid.Object{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	dup := src.Clone()
	dup.ID = c.newID()
	dup.X += DuplicateOffset
	dup.Y += DuplicateOffset
	c.mutate("duplicate", func(cur grid.Collection) grid.Collection { return cur.Append(dup) })
	return dup, nil
}

// Move puts an object at (x, y), clamped to the top-left corner.
func (c *Canvas) Move(id string, x, y int) error {
	obj, ok := c.objects.Find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if obj.X == max(x, 0) && obj.Y == max(y, 0) {
		return nil
	}
	c.mutate("move", func(cur grid.Collection) grid.Collection { return cur.MoveTo(id, x, y) })
	return nil
}

// Raise swaps an object with the one above it.
func (c *Canvas) Raise(id string) error {
	return c.restack("raise", id, grid.Collection.Raise, len(c.objects)-1)
}

// Lower swaps an object with the one below it.
func (c *Canvas) Lower(id string) error {
	return c.restack("lower", id, grid.Collection.Lower, 0)
}

func (c *Canvas) BringToFront(id string) error {
	return c.restack("bring to front", id, grid.Collection.BringToFront, len(c.objects)-1)
}

func (c *Canvas) SendToBack(id string) error {
	return c.restack("send to back", id, grid.Collection.SendToBack, 0)
}

// restack applies fn unless the object already sits at index limit.
func (c *Canvas) restack(op, id string, fn func(grid.Collection, string) grid.Collection, limit int) error {
	i := c.objects.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if i == limit {
		return nil
	}
	c.mutate(op, func(cur grid.Collection) grid.Collection { return fn(cur, id) })
	return nil
}

// BeginGesture opens a drag. Drags inside it are not recorded individually;
// EndGesture records the whole gesture as one edit.
func (c *Canvas) BeginGesture() {
	if c.dragging {
		return
	}
	c.gesture = c.objects
	c.dragging = true
}

func (c *Canvas) Dragging() bool { return c.dragging }

// Drag moves an object during a gesture without recording history.
func (c *Canvas) Drag(id string, x, y int) error {
	if !c.dragging {
		return ErrNoGesture
	}
	if c.objects.IndexOf(id) < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.objects = c.objects.MoveTo(id, x, y)
	c.touch()
	return nil
}

// EndGesture closes a drag. With commit the pre-drag state becomes one undo
// entry if anything moved; without it the pre-drag state is restored.
func (c *Canvas) EndGesture(commit bool) {
	if !c.dragging {
		return
	}
	before := c.gesture
	c.gesture, c.dragging = nil, false
	switch {
	case before.Equal(c.objects):
	case commit:
		c.history.Snapshot(before)
		c.log.Debug("canvas edited", "op", "drag", "objects", len(c.objects))
	default:
		c.install(before)
	}
}

func (c *Canvas) Undo() error {
	c.EndGesture(false)
	if err := c.history.Undo(c.objects, c.install); err != nil {
		return err
	}
	c.log.Debug("undo", "undo", c.history.UndoLen(), "redo", c.history.RedoLen())
	return nil
}

func (c *Canvas) Redo() error {
	c.EndGesture(false)
	if err := c.history.Redo(c.objects, c.install); err != nil {
		return err
	}
	c.log.Debug("redo", "undo", c.history.UndoLen(), "redo", c.history.RedoLen())
	return nil
}

func (c *Canvas) visible() grid.Collection { return c.objects.VisibleOn(c.layers) }

// Render composites the objects on visible layers.
func (c *Canvas) Render() grid.Buffer {
	return grid.Render(c.visible(), c.cols, c.rows)
}

// Pick returns the topmost visible object whose box contains the cell.
func (c *Canvas) Pick(col, row int) (grid.Object, bool) {
	return grid.Pick(c.visible(), col, row)
}

func (c *Canvas) Markdown() string { return export.ToMarkdown(c.Render()) }

// Load replaces the document, as when restoring a session. It records no
// history and clears both stacks. Objects without an id get one.
func (c *Canvas) Load(objects grid.Collection, layers []grid.Layer) {
	c.EndGesture(false)
	loaded := objects.Clone()
	for i := range loaded {
		if loaded[i].ID == "" {
			loaded[i].ID = c.newID()
		}
	}
	c.objects = loaded
	if len(layers) == 0 {
		layers = grid.DefaultLayers()
	}
	c.layers = append([]grid.Layer(nil), layers...)
	c.active = c.layers[0].ID
	c.removed = make(map[string]grid.Layer)
	c.lastLayer = 0
	c.restoreLayers()
	c.noteLayerIDs()
	c.history.Clear()
	c.touch()
	c.log.Info("design loaded", "objects", len(loaded), "layers", len(c.layers))
}
