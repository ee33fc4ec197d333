package templates

import (
	"strings"

	"wireterm/internal/grid"
)

// Blueprints compose whole diagrams in one block. They sit outside the
// registries and take positional arguments.

// Flowchart stacks steps top to bottom joined by arrows. The first and last
// steps are rounded terminals, steps containing "?" or "decision" are
// diamonds, everything else is a process box.
func Flowchart(steps ...string) grid.Content {
	if len(steps) == 0 {
		steps = []string{"Start", "Process", "Decision", "End"}
	}
	var lines []string
	for i, step := range steps {
		if i > 0 {
			lines = append(lines, "         │", "         ▼")
		}
		switch {
		case strings.Contains(step, "?") || strings.Contains(strings.ToLower(step), "decision"):
			lines = append(lines,
				"       ╱   ╲",
				"     ╱ "+fit(step, 7)+" ╲",
				"     ╲       ╱",
				"       ╲   ╱",
			)
		case i == 0 || i == len(steps)-1:
			lines = append(lines,
				"    ╭─────────╮",
				"    │ "+fit(step, 9)+" │",
				"    ╰─────────╯",
			)
		default:
			lines = append(lines,
				"    ┌─────────┐",
				"    │ "+fit(step, 9)+" │",
				"    └─────────┘",
			)
		}
	}
	return grid.NewContent(lines)
}

// Tree draws root and its descendants using box-drawing branch guides.
// Cycles in children are cut at the first repeated node.
func Tree(root string, children map[string][]string) grid.Content {
	lines := []string{root}
	seen := map[string]bool{root: true}
	var walk func(node, prefix string, last bool)
	walk = func(node, prefix string, last bool) {
		branch, indent := "├── ", "│   "
		if last {
			branch, indent = "└── ", "    "
		}
		lines = append(lines, prefix+branch+node)
		if seen[node] {
			return
		}
		seen[node] = true
		kids := children[node]
		for i, kid := range kids {
			walk(kid, prefix+indent, i == len(kids)-1)
		}
	}
	kids := children[root]
	for i, kid := range kids {
		walk(kid, "", i == len(kids)-1)
	}
	return grid.NewContent(lines)
}

// GridLayout draws a cols x rows table of empty cells.
func GridLayout(cols, rows, cellW, cellH int) grid.Content {
	cols, rows = max(cols, 1), max(rows, 1)
	span := rep("─", cellW)
	edge := func(left, mid, right string) string {
		return left + rep(span+mid, cols-1) + span + right
	}
	var lines []string
	for r := 0; r < rows; r++ {
		if r == 0 {
			lines = append(lines, edge("┌", "┬", "┐"))
		} else {
			lines = append(lines, edge("├", "┼", "┤"))
		}
		for i := 0; i < cellH; i++ {
			lines = append(lines, "│"+rep(rep(" ", cellW)+"│", cols))
		}
	}
	lines = append(lines, edge("└", "┴", "┘"))
	return grid.NewContent(lines)
}

// Form draws a titled panel with one labelled input per field and a
// Submit/Cancel button row.
func Form(title string, fields []string, width int) grid.Content {
	lines := []string{
		hbar("┌", "─", "┐", width),
		"│ " + padEnd(title, width-4) + " │",
		hbar("├", "─", "┤", width),
	}
	for _, field := range fields {
		lines = append(lines,
			padEnd("│ "+field+":", width-1)+"│",
			"│ ┌"+rep("─", width-6)+"┐ │",
			"│ │"+rep(" ", width-6)+"│ │",
			"│ └"+rep("─", width-6)+"┘ │",
			hbar("│", " ", "│", width),
		)
	}
	buttons := []string{"┌────────┐  ┌────────┐", "│ Submit │  │ Cancel │", "└────────┘  └────────┘"}
	for _, b := range buttons {
		lines = append(lines, "│  "+padEnd(b, width-4)+"│")
	}
	lines = append(lines, hbar("└", "─", "┘", width))
	return grid.NewContent(lines)
}
