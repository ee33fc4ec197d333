package templates

import (
	"testing"
	"unicode/utf8"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireterm/internal/grid"
)

func TestDefaultsHaveMatchingHeight(t *testing.T) {
	for _, reg := range []*Registry{UI, Diagram} {
		for _, d := range reg.Descriptors() {
			t.Run(reg.Name()+"/"+d.Key, func(t *testing.T) {
				c, err := reg.Generate(d.Key)
				require.NoError(t, err)
				assert.Equal(t, c.H, len(c.Lines))
				assert.Positive(t, c.W)
				assert.True(t, c.Equal(d.Generate(Params{})), "generator is deterministic")
			})
		}
	}
}

func TestGenerateUnknown(t *testing.T) {
	_, err := UI.Generate("spaceship")
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	_, err = Diagram.Generate("modal")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestRegistryOrder(t *testing.T) {
	keys := UI.Keys()
	require.Len(t, keys, 28)
	assert.Equal(t, "button", keys[0])
	assert.Equal(t, "image", keys[len(keys)-1])

	keys = Diagram.Keys()
	require.Len(t, keys, 22)
	assert.Equal(t, "box", keys[0])
	assert.Equal(t, "entity", keys[len(keys)-1])
}

func TestUIBox(t *testing.T) {
	c, err := UI.Generate("box")
	require.NoError(t, err)
	assert.Equal(t, 20, c.W)
	assert.Equal(t, 6, c.H)
	assert.Equal(t, "┌──────────────────┐", c.Lines[0])
	assert.Equal(t, "│                  │", c.Lines[1])
	assert.Equal(t, "└──────────────────┘", c.Lines[5])
}

func TestButtonSizesToText(t *testing.T) {
	c, err := UI.Generate("button", Text("OK"))
	require.NoError(t, err)
	assert.Equal(t, []string{"┌────┐", "│ OK │", "└────┘"}, c.Lines)
	assert.Equal(t, 6, c.W)
}

func TestCaptionsTruncate(t *testing.T) {
	c, err := Diagram.Generate("box", Text("a very long caption indeed"), Width(10))
	require.NoError(t, err)
	assert.Equal(t, "│ a very │", c.Lines[2])

	c, err = Diagram.Generate("entity", Text("Customer"), Items("id", "customer_name"), Width(10))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"┌────────┐",
		"│ Custom │",
		"├────────┤",
		"│ id     │",
		"│ custom │",
		"└────────┘",
	}, c.Lines)

	long := Text("a caption far wider than the box")
	for _, key := range []string{"input", "card", "modal", "dropdown"} {
		c, err := UI.Generate(key, long, Width(12))
		require.NoError(t, err)
		for _, line := range c.Lines {
			assert.LessOrEqual(t, utf8.RuneCountInString(line), c.W, key)
		}
	}
	c, _ = UI.Generate("card", long, Width(12))
	assert.Equal(t, "║ a captio ║", c.Lines[1])
}

func TestExplicitZeroIsHonoured(t *testing.T) {
	c, err := UI.Generate("progress", Percent(0), Width(12))
	require.NoError(t, err)
	assert.Equal(t, "[░░░░░░░░░░]", c.Lines[0])

	c, err = UI.Generate("progress", Percent(250), Width(6))
	require.NoError(t, err)
	assert.Equal(t, "[████]", c.Lines[0])
}

func TestToggledStates(t *testing.T) {
	c, _ := UI.Generate("checkbox", Text("Remember"), On(true))
	assert.Equal(t, "[x] Remember", c.Lines[0])

	c, _ = UI.Generate("toggle", On(true))
	assert.Equal(t, "[===●] Feature", c.Lines[0])
}

func TestNumber(t *testing.T) {
	c, _ := Diagram.Generate("number", Text("3"))
	assert.Equal(t, "③", c.Lines[0])
	c, _ = Diagram.Generate("number", Text("42"))
	assert.Equal(t, "(42)", c.Lines[0])
	c, _ = Diagram.Generate("number", Text("x"))
	assert.Equal(t, "(x)", c.Lines[0])
}

func TestRaggedConnector(t *testing.T) {
	c, _ := Diagram.Generate("arrow_right", Width(6))
	assert.Equal(t, "────→", c.Lines[0])
	assert.Equal(t, 6, c.W)
}

func TestSwimlaneWithoutLanes(t *testing.T) {
	c, err := Diagram.Generate("swimlane", Items())
	require.NoError(t, err)
	assert.Equal(t, c.H, len(c.Lines))
}

func TestDegenerateSizesDoNotPanic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any size generates", prop.ForAll(
		func(w, h int) bool {
			for _, reg := range []*Registry{UI, Diagram} {
				for _, key := range reg.Keys() {
					c, err := reg.Generate(key, Size(w, h), Count(h))
					if err != nil || len(c.Lines) == 0 {
						return false
					}
				}
			}
			return true
		},
		gen.IntRange(-3, 80),
		gen.IntRange(-3, 40),
	))

	properties.TestingRun(t)
}

func TestGrouped(t *testing.T) {
	groups := Diagram.Grouped()
	require.Len(t, groups, 4)
	assert.Equal(t, "shapes", groups[0].Category.Key)
	assert.Len(t, groups[0].Templates, 6)

	total := 0
	for _, g := range UI.Grouped() {
		total += len(g.Templates)
	}
	assert.Equal(t, len(UI.Keys()), total)
}

func TestModes(t *testing.T) {
	for in, want := range map[string]Mode{"": UIMode, "web": UIMode, "UI": UIMode, "diagram": DiagramMode} {
		got, err := ParseMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseMode("sketch")
	assert.Error(t, err)

	assert.Same(t, Diagram, For(DiagramMode))
	assert.Same(t, UI, For(UIMode))
	assert.Equal(t, DiagramMode, UIMode.Toggle())
	assert.Equal(t, "diagram", DiagramMode.String())
}

func TestBlueprints(t *testing.T) {
	t.Run("flowchart", func(t *testing.T) {
		c := Flowchart("Start", "Valid?", "End")
		assert.Equal(t, "    ╭─────────╮", c.Lines[0])
		assert.Equal(t, "    │ Start     │", c.Lines[1])
		assert.Equal(t, "         ▼", c.Lines[4])
		assert.Equal(t, "     ╱ Valid?  ╲", c.Lines[6])
		assert.Equal(t, len(c.Lines), c.H)
	})

	t.Run("tree", func(t *testing.T) {
		c := Tree("root", map[string][]string{
			"root": {"a", "b"},
			"a":    {"a1"},
			"b":    {"root"},
		})
		assert.Equal(t, []string{
			"root",
			"├── a",
			"│   └── a1",
			"└── b",
			"    └── root",
		}, c.Lines)
	})

	t.Run("grid", func(t *testing.T) {
		c := GridLayout(2, 1, 3, 1)
		assert.Equal(t, []string{"┌───┬───┐", "│   │   │", "└───┴───┘"}, c.Lines)
	})

	t.Run("form", func(t *testing.T) {
		c := Form("Login", []string{"User"}, 30)
		for _, line := range c.Lines {
			assert.Equal(t, 30, utf8.RuneCountInString(line), line)
		}
		assert.Equal(t, "│ User:                      │", c.Lines[3])
	})
}

func TestGeneratedContentRenders(t *testing.T) {
	c, _ := UI.Generate("box", Size(4, 3))
	buf := grid.Render([]grid.Object{{ID: "b", Data: c}}, 5, 3)
	assert.Equal(t, []string{"┌──┐ ", "│  │ ", "└──┘ "}, buf.Lines())
}
