package canvas

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireterm/internal/grid"
	"wireterm/internal/templates"
)

func counter() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("obj_%d", n)
	}
}

func newCanvas(opts ...Option) *Canvas {
	return New(append([]Option{WithIDs(counter())}, opts...)...)
}

func TestPlaceBoxRenders(t *testing.T) {
	c := newCanvas()
	obj, err := c.Place("box", 2, 3, templates.Size(20, 6))
	require.NoError(t, err)
	assert.Equal(t, "box", obj.Type)
	assert.Equal(t, "ui", obj.Mode)
	assert.Equal(t, grid.DefaultLayerID, obj.LayerID)

	buf := c.Render()
	require.Len(t, buf, DefaultRows)
	assert.Equal(t, "  ┌──────────────────┐"+strings.Repeat(" ", DefaultCols-22), buf[3])
	assert.Equal(t, "  └──────────────────┘"+strings.Repeat(" ", DefaultCols-22), buf[8])
	assert.Equal(t, strings.Repeat(" ", DefaultCols), buf[9])
}

func TestPlaceUnknownKey(t *testing.T) {
	c := newCanvas()
	_, err := c.Place("diamond", 0, 0)
	assert.ErrorIs(t, err, templates.ErrUnknownTemplate)
	assert.Zero(t, c.Len())
	assert.False(t, c.CanUndo())

	c.SetMode(templates.DiagramMode)
	obj, err := c.Place("diamond", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "diagram", obj.Mode)
}

func TestImport(t *testing.T) {
	c := newCanvas()
	obj, err := c.Import("```\nA\nBB\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "BB"}, obj.Data.Lines)
	assert.Equal(t, 2, obj.Data.W)
	assert.Equal(t, 2, obj.Data.H)
	assert.Equal(t, ImportX, obj.X)
	assert.Equal(t, ImportY, obj.Y)
	assert.Equal(t, TypeImported, obj.Type)

	_, err = c.Import("  \n ")
	assert.ErrorIs(t, err, ErrEmptyImport)
}

func TestParseImport(t *testing.T) {
	data, err := ParseImport("```\r\nx\r\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, data.Lines)

	data, err = ParseImport("no fence\n  here")
	require.NoError(t, err)
	assert.Equal(t, []string{"no fence", "  here"}, data.Lines)
	assert.Equal(t, 8, data.W)
}

func TestDuplicateIsolated(t *testing.T) {
	c := newCanvas()
	orig, err := c.Place("button", 1, 1, templates.Text("Go"))
	require.NoError(t, err)
	dup, err := c.Duplicate(orig.ID)
	require.NoError(t, err)
	assert.NotEqual(t, orig.ID, dup.ID)
	assert.Equal(t, orig.X+DuplicateOffset, dup.X)
	assert.Equal(t, orig.Y+DuplicateOffset, dup.Y)

	require.NoError(t, c.SetText(dup.ID, "changed"))
	got, _ := c.Find(orig.ID)
	assert.Equal(t, []string{"┌────┐", "│ Go │", "└────┘"}, got.Data.Lines)
	assert.Equal(t, c.Objects()[1].ID, dup.ID, "duplicate lands on top")
}

func TestSetText(t *testing.T) {
	c := newCanvas()
	obj := c.AddText(0, 0)
	assert.Equal(t, []string{DefaultText}, obj.Data.Lines)

	require.NoError(t, c.SetText(obj.ID, "one\nthree"))
	got, _ := c.Find(obj.ID)
	assert.Equal(t, 5, got.Data.W)
	assert.Equal(t, 2, got.Data.H)

	depth := c.History().UndoLen()
	require.NoError(t, c.SetText(obj.ID, "   "))
	assert.Equal(t, depth, c.History().UndoLen())
	assert.ErrorIs(t, c.SetText("nope", "x"), ErrNotFound)
}

func TestClear(t *testing.T) {
	c := newCanvas()
	assert.ErrorIs(t, c.Clear(), ErrEmptyCanvas)
	assert.False(t, c.CanUndo())

	c.AddText(0, 0)
	require.NoError(t, c.Clear())
	assert.Zero(t, c.Len())
	require.NoError(t, c.Undo())
	assert.Equal(t, 1, c.Len())
}

func TestMoveClamps(t *testing.T) {
	c := newCanvas()
	obj := c.AddText(5, 5)
	require.NoError(t, c.Move(obj.ID, -3, 7))
	got, _ := c.Find(obj.ID)
	assert.Equal(t, 0, got.X)
	assert.Equal(t, 7, got.Y)

	depth := c.History().UndoLen()
	require.NoError(t, c.Move(obj.ID, -1, 7))
	assert.Equal(t, depth, c.History().UndoLen(), "no-op move records nothing")
}

func TestStacking(t *testing.T) {
	c := newCanvas()
	a := c.AddText(0, 0)
	b := c.AddText(0, 0)
	z := c.AddText(0, 0)
	ids := func() []string {
		var out []string
		for _, o := range c.Objects() {
			out = append(out, o.ID)
		}
		return out
	}

	require.NoError(t, c.Raise(a.ID))
	assert.Equal(t, []string{b.ID, a.ID, z.ID}, ids())
	require.NoError(t, c.BringToFront(a.ID))
	assert.Equal(t, []string{b.ID, z.ID, a.ID}, ids())
	require.NoError(t, c.SendToBack(a.ID))
	assert.Equal(t, []string{a.ID, b.ID, z.ID}, ids())
	require.NoError(t, c.Lower(z.ID))
	assert.Equal(t, []string{a.ID, z.ID, b.ID}, ids())

	depth := c.History().UndoLen()
	require.NoError(t, c.Lower(a.ID))
	require.NoError(t, c.Raise(b.ID))
	assert.Equal(t, depth, c.History().UndoLen())

	picked, ok := c.Pick(0, 0)
	require.True(t, ok)
	assert.Equal(t, b.ID, picked.ID)
	assert.ErrorIs(t, c.Raise("missing"), ErrNotFound)
}

func TestGesture(t *testing.T) {
	c := newCanvas()
	obj := c.AddText(0, 0)
	depth := c.History().UndoLen()

	assert.ErrorIs(t, c.Drag(obj.ID, 1, 1), ErrNoGesture)

	c.BeginGesture()
	for i := 1; i <= 5; i++ {
		require.NoError(t, c.Drag(obj.ID, i, i))
	}
	c.EndGesture(true)
	assert.Equal(t, depth+1, c.History().UndoLen())
	got, _ := c.Find(obj.ID)
	assert.Equal(t, 5, got.X)

	require.NoError(t, c.Undo())
	got, _ = c.Find(obj.ID)
	assert.Equal(t, 0, got.X, "one undo reverts the whole drag")

	c.BeginGesture()
	require.NoError(t, c.Drag(obj.ID, 9, 9))
	c.EndGesture(false)
	got, _ = c.Find(obj.ID)
	assert.Equal(t, 0, got.X)

	c.BeginGesture()
	c.EndGesture(true)
	assert.Equal(t, depth, c.History().UndoLen(), "a click without movement records nothing")
}

func TestUndoRedo(t *testing.T) {
	c := newCanvas()
	assert.ErrorIs(t, c.Undo(), ErrNothingToUndo)
	assert.ErrorIs(t, c.Redo(), ErrNothingToRedo)

	c.AddText(0, 0)
	s1 := c.Objects().Clone()
	c.AddText(3, 3)
	s2 := c.Objects().Clone()

	rev := c.Revision()
	require.NoError(t, c.Undo())
	assert.True(t, s1.Equal(c.Objects()))
	assert.Greater(t, c.Revision(), rev)
	require.NoError(t, c.Redo())
	assert.True(t, s2.Equal(c.Objects()))
}

func TestHistoryLimit(t *testing.T) {
	c := newCanvas(WithHistoryLimit(3))
	for i := 0; i < 8; i++ {
		c.AddText(i, 0)
	}
	assert.Equal(t, 3, c.History().UndoLen())
}

func TestLoad(t *testing.T) {
	c := newCanvas()
	c.AddText(0, 0)
	c.Load(grid.Collection{{Type: "imported", Data: grid.NewContent([]string{"x"})}}, nil)
	require.Equal(t, 1, c.Len())
	assert.NotEmpty(t, c.Objects()[0].ID)
	assert.False(t, c.CanUndo())
	assert.Equal(t, grid.DefaultLayers(), c.Layers())
}

func TestMarkdown(t *testing.T) {
	c := newCanvas(WithSize(20, 10))
	_, err := c.Place("button", 4, 2, templates.Text("OK"))
	require.NoError(t, err)
	assert.Equal(t, "```\n┌────┐\n│ OK │\n└────┘\n```", c.Markdown())
}

func TestLayers(t *testing.T) {
	c := newCanvas(WithSize(10, 2))
	bottom := c.AddText(0, 0)

	l2 := c.AddLayer("")
	assert.Equal(t, "2", l2.ID)
	assert.Equal(t, "Layer 2", l2.Name)
	assert.Equal(t, l2.ID, c.ActiveLayer().ID)
	top := c.AddText(0, 0)
	assert.Equal(t, l2.ID, top.LayerID)

	picked, _ := c.Pick(0, 0)
	assert.Equal(t, top.ID, picked.ID)

	visible, err := c.ToggleLayer(l2.ID)
	require.NoError(t, err)
	assert.False(t, visible)
	picked, _ = c.Pick(0, 0)
	assert.Equal(t, bottom.ID, picked.ID, "hidden layers do not hit-test")
	assert.True(t, strings.HasPrefix(c.Render()[0], DefaultText))

	require.NoError(t, c.RenameLayer(l2.ID, "  Overlay "))
	assert.Equal(t, "Overlay", c.Layers()[1].Name)
	require.NoError(t, c.RenameLayer(l2.ID, " "))
	assert.Equal(t, "Overlay", c.Layers()[1].Name)

	assert.Equal(t, grid.DefaultLayerID, c.CycleLayer().ID)
	assert.Equal(t, l2.ID, c.CycleLayer().ID)

	require.NoError(t, c.DeleteLayer(l2.ID))
	assert.Len(t, c.Layers(), 1)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, grid.DefaultLayerID, c.ActiveLayer().ID)
	require.NoError(t, c.Undo())
	assert.Equal(t, 2, c.Len(), "deleted objects come back with undo")
	require.Len(t, c.Layers(), 2)
	assert.Equal(t, grid.Layer{ID: l2.ID, Name: "Overlay", Visible: false}, c.Layers()[1])

	require.NoError(t, c.DeleteLayer(l2.ID))
	assert.ErrorIs(t, c.DeleteLayer(grid.DefaultLayerID), ErrLastLayer)
	assert.ErrorIs(t, c.SetActiveLayer("9"), ErrLayerNotFound)
	_, err = c.ToggleLayer("9")
	assert.ErrorIs(t, err, ErrLayerNotFound)
}

func TestDeletedLayerIDsAreNotReused(t *testing.T) {
	c := newCanvas(WithSize(20, 5))
	extra := c.AddLayer("Extra")
	box, err := c.Place("box", 0, 0)
	require.NoError(t, err)
	require.NoError(t, c.DeleteLayer(extra.ID))
	require.NoError(t, c.Undo())

	restored, ok := c.Find(box.ID)
	require.True(t, ok)
	assert.Equal(t, extra.ID, restored.LayerID)
	require.Len(t, c.Layers(), 2)
	assert.Equal(t, "Extra", c.Layers()[1].Name)

	require.NoError(t, c.DeleteLayer(extra.ID))
	fresh := c.AddLayer("Fresh")
	assert.NotEqual(t, extra.ID, fresh.ID)

	require.NoError(t, c.Undo())
	_, err = c.ToggleLayer(fresh.ID)
	require.NoError(t, err)
	_, ok = c.Pick(0, 0)
	assert.True(t, ok, "hiding a new layer leaves restored objects visible")
}

func TestLoadSeedsLayerIDs(t *testing.T) {
	c := newCanvas()
	c.Load(grid.Collection{{ID: "a", LayerID: "7", Data: grid.NewContent([]string{"a"})}},
		[]grid.Layer{{ID: "1", Name: "Base", Visible: true}, {ID: "4", Name: "Top", Visible: true}})
	require.Len(t, c.Layers(), 3, "objects on unknown layers get one")
	assert.Equal(t, "Layer 7", c.Layers()[2].Name)
	assert.Equal(t, "8", c.AddLayer("").ID)
}

func TestInsertBlueprint(t *testing.T) {
	c := newCanvas()
	obj := c.Insert("blueprint", 1, 1, templates.GridLayout(1, 1, 2, 1))
	assert.Equal(t, []string{"┌──┐", "│  │", "└──┘"}, obj.Data.Lines)
	assert.True(t, c.CanUndo())
}
