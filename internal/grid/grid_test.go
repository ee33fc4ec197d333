package grid

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obj(id string, x, y int, lines ...string) Object {
	return Object{ID: id, Type: "test", X: x, Y: y, Data: NewContent(lines)}
}

func TestCreateBuffer(t *testing.T) {
	buf := CreateBuffer(5, 3)
	require.Len(t, buf, 3)
	for _, row := range buf {
		assert.Equal(t, "     ", row)
	}
	assert.Equal(t, 5, buf.Cols())
	assert.Empty(t, CreateBuffer(-1, -1))
}

func TestRender(t *testing.T) {
	t.Run("last write wins including spaces", func(t *testing.T) {
		a := obj("a", 0, 0, "AAA")
		b := obj("b", 1, 0, " ")
		buf := Render([]Object{a, b}, 4, 1)
		assert.Equal(t, "A A ", buf[0])
	})

	t.Run("ragged lines leave lower cells alone", func(t *testing.T) {
		under := obj("under", 0, 0, "xxxx", "xxxx")
		over := Object{ID: "over", X: 0, Y: 0, Data: Content{Lines: []string{"/", "\\\\"}, W: 4, H: 2}}
		buf := Render([]Object{under, over}, 4, 2)
		assert.Equal(t, "/xxx", buf[0])
		assert.Equal(t, "\\\\xx", buf[1])
	})

	t.Run("clips outside bounds", func(t *testing.T) {
		o := obj("o", 3, 1, "abcdef", "ghijkl", "mnopqr")
		buf := Render([]Object{o}, 5, 3)
		require.Len(t, buf, 3)
		assert.Equal(t, "     ", buf[0])
		assert.Equal(t, "   ab", buf[1])
		assert.Equal(t, "   gh", buf[2])
	})

	t.Run("negative offsets clip the leading cells", func(t *testing.T) {
		o := obj("o", -2, -1, "skip", "abcd")
		buf := Render([]Object{o}, 3, 2)
		assert.Equal(t, "cd ", buf[0])
		assert.Equal(t, "   ", buf[1])
	})

	t.Run("multi-byte glyphs occupy one cell each", func(t *testing.T) {
		o := obj("o", 1, 0, "┌─┐")
		buf := Render([]Object{o}, 5, 1)
		assert.Equal(t, " ┌─┐ ", buf[0])
		assert.Equal(t, 5, utf8.RuneCountInString(buf[0]))
	})
}

func TestPick(t *testing.T) {
	a := obj("a", 0, 0, "aaaa", "aaaa")
	b := obj("b", 2, 1, "bb", "bb")
	objects := []Object{a, b}

	got, ok := Pick(objects, 2, 1)
	require.True(t, ok)
	assert.Equal(t, "b", got.ID)

	got, ok = Pick(objects, 0, 0)
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = Pick(objects, 10, 10)
	assert.False(t, ok)

	// declared box, not the drawn glyph
	diamond := Object{ID: "d", Data: Content{Lines: []string{" /"}, W: 6, H: 3}}
	got, ok = Pick([]Object{diamond}, 5, 2)
	require.True(t, ok)
	assert.Equal(t, "d", got.ID)
}

func TestCollection(t *testing.T) {
	base := Collection{obj("a", 0, 0, "a"), obj("b", 0, 0, "b"), obj("c", 0, 0, "c")}
	ids := func(c Collection) string {
		var parts []string
		for _, o := range c {
			parts = append(parts, o.ID)
		}
		return strings.Join(parts, "")
	}

	assert.Equal(t, "bca", ids(base.BringToFront("a")))
	assert.Equal(t, "cab", ids(base.SendToBack("c")))
	assert.Equal(t, "bac", ids(base.Raise("a")))
	assert.Equal(t, "abc", ids(base.Raise("c")))
	assert.Equal(t, "acb", ids(base.Lower("c")))
	assert.Equal(t, "abc", ids(base.Lower("a")))
	assert.Equal(t, "ac", ids(base.Remove("b")))
	assert.Equal(t, "abc", ids(base.Remove("zz")))
	assert.Equal(t, "abc", ids(base), "receiver must not change")

	moved := base.MoveTo("b", -3, 4)
	got, _ := moved.Find("b")
	assert.Equal(t, 0, got.X)
	assert.Equal(t, 4, got.Y)
	orig, _ := base.Find("b")
	assert.Equal(t, 0, orig.Y)
}

func TestCloneIsolatesLines(t *testing.T) {
	original := obj("a", 0, 0, "hello")
	dup := original.Clone()
	dup.Data.Lines[0] = "bye"
	assert.Equal(t, "hello", original.Data.Lines[0])

	c := Collection{original}
	snap := c.Clone()
	c[0].Data.Lines[0] = "changed"
	assert.Equal(t, "hello", snap[0].Data.Lines[0])
}

func TestVisibleOn(t *testing.T) {
	c := Collection{
		obj("a", 0, 0, "a"),
		{ID: "b", LayerID: "2", Data: NewContent([]string{"b"})},
	}
	layers := []Layer{{ID: "1", Visible: true}, {ID: "2", Visible: false}}
	visible := c.VisibleOn(layers)
	require.Len(t, visible, 1)
	assert.Equal(t, "a", visible[0].ID)
	assert.Len(t, c.OnLayer("2"), 1)
}

func TestNewContent(t *testing.T) {
	c := NewContent([]string{"A", "BB"})
	assert.Equal(t, 2, c.W)
	assert.Equal(t, 2, c.H)

	empty := NewContent(nil)
	assert.Equal(t, []string{""}, empty.Lines)
	assert.Equal(t, 1, empty.W)
	assert.Equal(t, 1, empty.H)
}

func TestRenderProperties(t *testing.T) {
	const cols, rows = 40, 20
	properties := gopter.NewProperties(nil)

	properties.Property("render is deterministic and keeps its dimensions", prop.ForAll(
		func(x, y int, lines []string) bool {
			objects := []Object{obj("p", x, y, lines...), obj("q", y, x, lines...)}
			first := Render(objects, cols, rows)
			second := Render(objects, cols, rows)
			if len(first) != rows {
				return false
			}
			for i := range first {
				if first[i] != second[i] || utf8.RuneCountInString(first[i]) != cols {
					return false
				}
			}
			return true
		},
		gen.IntRange(-50, 80),
		gen.IntRange(-50, 80),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.Property("pick agrees with the topmost stamp", prop.ForAll(
		func(x, y, col, row int) bool {
			bottom := obj("bottom", 0, 0, strings.Repeat("b", cols))
			top := obj("top", x, y, "tt", "tt")
			got, ok := Pick([]Object{bottom, top}, col, row)
			inTop := col >= x && col < x+2 && row >= y && row < y+2
			switch {
			case inTop:
				return ok && got.ID == "top"
			case row == 0 && col >= 0 && col < cols:
				return ok && got.ID == "bottom"
			default:
				return !ok
			}
		},
		gen.IntRange(0, 10),
		gen.IntRange(0, 10),
		gen.IntRange(-2, 12),
		gen.IntRange(-2, 12),
	))

	properties.TestingRun(t)
}
