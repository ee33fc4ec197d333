package templates

import (
	"fmt"
	"strconv"
	"strings"

	"wireterm/internal/grid"
)

// Diagram is the registry of flowchart, ERD and annotation shapes.
var Diagram = newRegistry("diagram",
	[]Category{
		{Key: "shapes", Label: "Shapes", Color: "#3b82f6"},
		{Key: "connectors", Label: "Connectors", Color: "#10b981"},
		{Key: "annotations", Label: "Annotations", Color: "#f59e0b"},
		{Key: "containers", Label: "Containers", Color: "#8b5cf6"},
	},
	Descriptor{Key: "box", Label: "Box", Category: "shapes", Icon: "□", Generate: captionBox},
	Descriptor{Key: "diamond", Label: "Diamond", Category: "shapes", Icon: "◇", Generate: diamond},
	Descriptor{Key: "circle", Label: "Circle", Category: "shapes", Icon: "○", Generate: circle},
	Descriptor{Key: "process", Label: "Process", Category: "shapes", Icon: "▭", Generate: process},
	Descriptor{Key: "data", Label: "Data", Category: "shapes", Icon: "◈", Generate: data},
	Descriptor{Key: "cylinder", Label: "Database", Category: "shapes", Icon: "⬭", Generate: cylinder},
	Descriptor{Key: "arrow_right", Label: "Arrow →", Category: "connectors", Icon: "→", Generate: arrowRight},
	Descriptor{Key: "arrow_left", Label: "Arrow ←", Category: "connectors", Icon: "←", Generate: arrowLeft},
	Descriptor{Key: "arrow_both", Label: "Arrow ↔", Category: "connectors", Icon: "↔", Generate: arrowBoth},
	Descriptor{Key: "arrow_down", Label: "Arrow ↓", Category: "connectors", Icon: "↓", Generate: arrowDown},
	Descriptor{Key: "arrow_up", Label: "Arrow ↑", Category: "connectors", Icon: "↑", Generate: arrowUp},
	Descriptor{Key: "dashed_line", Label: "Dashed", Category: "connectors", Icon: "╌", Generate: connector("╌")},
	Descriptor{Key: "double_line", Label: "Double", Category: "connectors", Icon: "═", Generate: connector("═")},
	Descriptor{Key: "wavy_arrow", Label: "Wavy →", Category: "connectors", Icon: "↝", Generate: wavyArrow},
	Descriptor{Key: "label", Label: "Label", Category: "annotations", Icon: "T", Generate: label("Label")},
	Descriptor{Key: "comment", Label: "Comment", Category: "annotations", Icon: "💭", Generate: comment},
	Descriptor{Key: "note", Label: "Note", Category: "annotations", Icon: "ⓘ", Generate: note},
	Descriptor{Key: "number", Label: "Number", Category: "annotations", Icon: "①", Generate: number},
	Descriptor{Key: "dotted_box", Label: "Dotted Box", Category: "containers", Icon: "┆", Generate: dottedBox},
	Descriptor{Key: "swimlane", Label: "Swimlane", Category: "containers", Icon: "═", Generate: swimlane},
	Descriptor{Key: "cloud", Label: "Cloud", Category: "containers", Icon: "☁", Generate: cloud},
	Descriptor{Key: "entity", Label: "Entity", Category: "containers", Icon: "▣", Generate: entity},
)

// captionBox is a rectangle with one centered caption row.
func captionBox(p Params) grid.Content {
	text := p.Text("Process")
	w, h := p.Width(20), p.Height(5)
	caption := fit(text, w-4)
	midLine := floorDiv(h, 2) - 1
	lines := []string{hbar("┌", "─", "┐", w)}
	for i := 0; i < h-2; i++ {
		if i == midLine {
			lines = append(lines, "│ "+caption+" │")
		} else {
			lines = append(lines, hbar("│", " ", "│", w))
		}
	}
	lines = append(lines, hbar("└", "─", "┘", w))
	return block(lines, w, h)
}

// diamond leaves the cells outside its slanted edges undrawn.
func diamond(p Params) grid.Content {
	text := p.Text("Decision")
	w := p.Width(20)
	half := floorDiv(w, 2)
	var lines []string
	for i := 0; i < half-1; i++ {
		lines = append(lines, rep(" ", half-i-1)+"╱"+rep(" ", i*2)+"╲")
	}
	lines = append(lines, "╱ "+padEnd(cut(text, w-6), w-4)+" ╲")
	for i := half - 2; i >= 0; i-- {
		lines = append(lines, rep(" ", half-i-1)+"╲"+rep(" ", i*2)+"╱")
	}
	return sized(lines, w)
}

func circle(p Params) grid.Content {
	text := p.Text("State")
	size := p.Width(9)
	radius := floorDiv(size, 2)
	caption := cut(text, size-4)
	lines := []string{rep(" ", radius-1) + "╭─╮"}
	for i := 0; i < size-4; i++ {
		lines = append(lines, rep(" ", radius-2)+"│   │")
	}
	if mid := len(lines) / 2; mid > 0 {
		spaces := floorDiv(size-4-runeLen(caption), 2)
		lines[mid] = rep(" ", radius-2) + "│" + rep(" ", spaces) + caption +
			rep(" ", size-4-spaces-runeLen(caption)) + "│"
	}
	lines = append(lines, rep(" ", radius-1)+"╰─╯")
	return sized(lines, size)
}

func process(p Params) grid.Content {
	text := p.Text("Process")
	w, h := p.Width(20), p.Height(3)
	return block([]string{
		hbar("┌", "─", "┐", w),
		"│ " + fit(text, w-4) + " │",
		hbar("└", "─", "┘", w),
	}, w, h)
}

func data(p Params) grid.Content {
	text := p.Text("Data")
	w, h := p.Width(20), p.Height(3)
	return block([]string{
		" ╱" + rep("─", w-4) + "╲ ",
		"│  " + fit(text, w-6) + "  │",
		" ╲" + rep("─", w-4) + "╱ ",
	}, w, h)
}

func cylinder(p Params) grid.Content {
	text := p.Text("Database")
	w, h := p.Width(20), p.Height(6)
	caption := fit(text, w-4)
	blank := "│ " + rep(" ", w-4) + " │"
	lines := []string{" ╭" + rep("─", w-4) + "╮ ", blank}
	midLine := floorDiv(h-2, 2)
	for i := 0; i < h-4; i++ {
		if i == midLine {
			lines = append(lines, "│ "+caption+" │")
		} else {
			lines = append(lines, blank)
		}
	}
	lines = append(lines, blank, " ╰"+rep("─", w-4)+"╯ ")
	return block(lines, w, h)
}

// Horizontal connectors declare their full length; the right-pointing arrow
// draws one cell short of it.

func arrowRight(p Params) grid.Content {
	n := p.Width(10)
	return block([]string{rep("─", n-2) + "→"}, n, 1)
}

func arrowLeft(p Params) grid.Content {
	n := p.Width(10)
	return block([]string{"←" + rep("─", n-2)}, n, 1)
}

func arrowBoth(p Params) grid.Content {
	n := p.Width(10)
	return block([]string{"←" + rep("─", n-4) + "→"}, n, 1)
}

func arrowUp(p Params) grid.Content {
	h := p.Height(5)
	lines := []string{"↑"}
	for i := 0; i < h-1; i++ {
		lines = append(lines, "│")
	}
	return block(lines, 1, h)
}

func connector(glyph string) Generator {
	return func(p Params) grid.Content {
		n := p.Width(10)
		return block([]string{rep(glyph, n)}, n, 1)
	}
}

func wavyArrow(p Params) grid.Content {
	n := p.Width(10)
	return block([]string{rep("∼", n-2) + "→"}, n, 1)
}

func comment(p Params) grid.Content {
	text := p.Text("Comment")
	w := p.Width(20)
	return block([]string{
		"╭─" + rep("─", w-5) + "─╮",
		"│ " + fit(text, w-6) + " │",
		"╰─" + rep("─", w-7) + "◜─╯",
		"   ╰",
	}, w, 4)
}

func note(p Params) grid.Content {
	text := p.Text("Note")
	w := p.Width(20)
	return block([]string{
		hbar("┌", "─", "┐", w),
		"│ⓘ " + cut(fit(text, w-4), w-5) + " │",
		hbar("└", "─", "┘", w),
	}, w, 3)
}

var circledNumbers = []string{"①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧", "⑨", "⑩"}

// number draws a circled numeral for 1-10 and "(n)" otherwise.
func number(p Params) grid.Content {
	num := p.Text("1")
	if n, ok := leadingInt(num); ok && n >= 1 && n <= len(circledNumbers) {
		return block([]string{circledNumbers[n-1]}, 1, 1)
	}
	return block([]string{fmt.Sprintf("(%s)", num)}, 1, 1)
}

func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}

func dottedBox(p Params) grid.Content {
	title := p.Text("Group")
	w, h := p.Width(30), p.Height(10)
	caption := cut(title, w-6)
	lines := []string{"┌┈" + caption + rep("┈", w-runeLen(caption)-3) + "┐"}
	for i := 0; i < h-2; i++ {
		lines = append(lines, hbar("┆", " ", "┆", w))
	}
	lines = append(lines, hbar("└", "┈", "┘", w))
	return block(lines, w, h)
}

func swimlane(p Params) grid.Content {
	labels := p.Items("Lane 1", "Lane 2")
	if len(labels) == 0 {
		labels = []string{""}
	}
	w, h := p.Width(60), p.Height(15)
	laneW := floorDiv(w, len(labels))
	lane := func(fill string) func(string) string {
		return func(string) string { return rep(fill, laneW-1) }
	}
	lines := []string{
		"╔" + joinMap(labels, "╦", lane("═")) + "╗",
		"║" + joinMap(labels, "║", func(l string) string { return padEnd(" "+l, laneW-1) }) + "║",
		"╠" + joinMap(labels, "╬", lane("═")) + "╣",
	}
	for i := 0; i < h-4; i++ {
		lines = append(lines, "║"+joinMap(labels, "║", lane(" "))+"║")
	}
	lines = append(lines, "╚"+joinMap(labels, "╩", lane("═"))+"╝")
	return block(lines, w, h)
}

// cloud has a fixed outline; only the caption width follows the parameter.
func cloud(p Params) grid.Content {
	text := p.Text("Cloud")
	w := p.Width(20)
	return block([]string{
		"    ╭─────╮",
		"  ╭─╯     ╰─╮",
		" ╱ " + fit(text, w-8) + " ╲",
		"╰─╮         ╭─╯",
		"  ╰─────────╯",
	}, w, 5)
}

func entity(p Params) grid.Content {
	name := p.Text("Entity")
	attrs := p.Items("id", "name")
	w := p.Width(20)
	lines := []string{
		hbar("┌", "─", "┐", w),
		"│ " + fit(name, w-4) + " │",
		hbar("├", "─", "┤", w),
	}
	for _, attr := range attrs {
		lines = append(lines, "│ "+fit(attr, w-4)+" │")
	}
	lines = append(lines, hbar("└", "─", "┘", w))
	return sized(lines, w)
}
