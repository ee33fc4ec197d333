package templates

import (
	"strings"

	"wireterm/internal/grid"
)

// UI is the registry of general-purpose interface components.
var UI = newRegistry("ui",
	[]Category{
		{Key: "basics", Label: "Basics", Color: "#8b9dc3"},
		{Key: "ui", Label: "UI Elements", Color: "#dda15e"},
		{Key: "layout", Label: "Layout", Color: "#6b9080"},
		{Key: "draw", Label: "Draw", Color: "#b5838d"},
	},
	Descriptor{Key: "button", Label: "Button", Category: "ui", Icon: "▣", Generate: button},
	Descriptor{Key: "input", Label: "Input", Category: "ui", Icon: "▭", Generate: input},
	Descriptor{Key: "card", Label: "Card", Category: "ui", Icon: "☐", Generate: card},
	Descriptor{Key: "table", Label: "Table", Category: "ui", Icon: "▦", Generate: table},
	Descriptor{Key: "modal", Label: "Modal", Category: "ui", Icon: "❐", Generate: modal},
	Descriptor{Key: "tabs", Label: "Tabs", Category: "ui", Icon: "⊞", Generate: tabs},
	Descriptor{Key: "checkbox", Label: "Checkbox", Category: "ui", Icon: "☑", Generate: checkbox},
	Descriptor{Key: "radio", Label: "Radio", Category: "ui", Icon: "◉", Generate: radio},
	Descriptor{Key: "dropdown", Label: "Dropdown", Category: "ui", Icon: "▾", Generate: dropdown},
	Descriptor{Key: "textarea", Label: "Textarea", Category: "ui", Icon: "▤", Generate: textarea},
	Descriptor{Key: "nav", Label: "Navbar", Category: "layout", Icon: "☰", Generate: navbar},
	Descriptor{Key: "sidebar", Label: "Sidebar", Category: "layout", Icon: "▮", Generate: sidebar},
	Descriptor{Key: "header", Label: "Header", Category: "layout", Icon: "▬", Generate: header},
	Descriptor{Key: "breadcrumb", Label: "Breadcrumb", Category: "layout", Icon: "»", Generate: breadcrumb},
	Descriptor{Key: "pagination", Label: "Pagination", Category: "ui", Icon: "…", Generate: pagination},
	Descriptor{Key: "avatar", Label: "Avatar", Category: "ui", Icon: "◯", Generate: avatar},
	Descriptor{Key: "badge", Label: "Badge", Category: "ui", Icon: "◆", Generate: badge},
	Descriptor{Key: "divider", Label: "Divider", Category: "draw", Icon: "─", Generate: rule("─")},
	Descriptor{Key: "hline", Label: "H-Line", Category: "draw", Icon: "━", Generate: rule("━")},
	Descriptor{Key: "arrow_right", Label: "Arrow →", Category: "draw", Icon: "→", Generate: uiArrowRight},
	Descriptor{Key: "arrow_down", Label: "Arrow ↓", Category: "draw", Icon: "↓", Generate: arrowDown},
	Descriptor{Key: "box", Label: "Box", Category: "draw", Icon: "□", Generate: box},
	Descriptor{Key: "text", Label: "Text", Category: "basics", Icon: "T", Generate: label("Label text")},
	Descriptor{Key: "heading", Label: "Heading", Category: "basics", Icon: "H", Generate: heading},
	Descriptor{Key: "paragraph", Label: "Paragraph", Category: "basics", Icon: "¶", Generate: paragraph},
	Descriptor{Key: "toggle", Label: "Toggle", Category: "ui", Icon: "⊘", Generate: toggle},
	Descriptor{Key: "progress", Label: "Progress", Category: "ui", Icon: "▰", Generate: progress},
	Descriptor{Key: "image", Label: "Image", Category: "ui", Icon: "🖼", Generate: image},
)

func button(p Params) grid.Content {
	text := p.Text("Button")
	w := runeLen(text) + 4
	return block([]string{
		hbar("┌", "─", "┐", w),
		"│ " + text + " │",
		hbar("└", "─", "┘", w),
	}, w, 3)
}

func input(p Params) grid.Content {
	placeholder := p.Text("Enter text...")
	w := p.Width(30)
	return block([]string{
		hbar("┌", "─", "┐", w),
		"│ " + fit(placeholder, w-4) + " │",
		hbar("└", "─", "┘", w),
	}, w, 3)
}

func card(p Params) grid.Content {
	title := p.Text("Card Title")
	w, h := p.Width(30), p.Height(10)
	lines := []string{
		hbar("╔", "═", "╗", w),
		"║ " + fit(title, w-4) + " ║",
		hbar("╠", "═", "╣", w),
	}
	for i := 0; i < h-4; i++ {
		lines = append(lines, hbar("║", " ", "║", w))
	}
	lines = append(lines, hbar("╚", "═", "╝", w))
	return block(lines, w, h)
}

func table(p Params) grid.Content {
	const colW = 16
	cols := p.Items("Name", "Email", "Role")
	rows := p.Count(3)
	border := func(left, mid, right string) string {
		return left + joinMap(cols, mid, func(string) string { return rep("─", colW) }) + right
	}
	lines := []string{
		border("┌", "┬", "┐"),
		"│" + joinMap(cols, "│", func(c string) string { return padEnd(" "+c, colW) }) + "│",
		border("├", "┼", "┤"),
	}
	for r := 0; r < rows; r++ {
		lines = append(lines, "│"+joinMap(cols, "│", func(string) string { return rep(" ", colW) })+"│")
	}
	lines = append(lines, border("└", "┴", "┘"))
	return block(lines, len(cols)*(colW+1)+1, rows+4)
}

func modal(p Params) grid.Content {
	title := p.Text("Dialog")
	w, h := p.Width(40), p.Height(14)
	lines := []string{
		hbar("╔", "═", "╗", w),
		"║ " + fit(title, w-8) + " [X] ║",
		hbar("╠", "═", "╣", w),
	}
	for i := 0; i < h-6; i++ {
		lines = append(lines, hbar("║", " ", "║", w))
	}
	lines = append(lines,
		hbar("╠", "═", "╣", w),
		"║"+rep(" ", w-24)+"[ Cancel ] [ OK ] ║",
		hbar("╚", "═", "╝", w),
	)
	return block(lines, w, h)
}

func tabs(p Params) grid.Content {
	labels := p.Items("Tab 1", "Tab 2", "Tab 3")
	var top, mid strings.Builder
	for i, l := range labels {
		if i == 0 {
			top.WriteString("┌")
		} else {
			top.WriteString("┬")
		}
		top.WriteString(rep("─", runeLen(l)+2))
		mid.WriteString("│ " + l + " ")
	}
	top.WriteString("┐")
	mid.WriteString("│")
	w := runeLen(top.String())
	return block([]string{top.String(), mid.String(), hbar("┴", "─", "┘", w)}, w, 3)
}

func checkbox(p Params) grid.Content {
	text := p.Text("Option")
	mark := " "
	if p.On(false) {
		mark = "x"
	}
	return block([]string{"[" + mark + "] " + text}, runeLen(text)+4, 1)
}

func radio(p Params) grid.Content {
	text := p.Text("Option")
	mark := " "
	if p.On(false) {
		mark = "●"
	}
	return block([]string{"(" + mark + ") " + text}, runeLen(text)+4, 1)
}

func dropdown(p Params) grid.Content {
	text := p.Text("Select option")
	w := p.Width(28)
	return block([]string{
		hbar("┌", "─", "┐", w),
		"│ " + fit(text, w-6) + " ▾ │",
		hbar("└", "─", "┘", w),
	}, w, 3)
}

func textarea(p Params) grid.Content {
	w, h := p.Width(30), p.Height(6)
	return frame(w, h, "┌", "┐", "└", "┘", "─", "│")
}

func box(p Params) grid.Content {
	w, h := p.Width(20), p.Height(6)
	return frame(w, h, "┌", "┐", "└", "┘", "─", "│")
}

// frame draws an empty rectangle of w x h cells.
func frame(w, h int, tl, tr, bl, br, horiz, vert string) grid.Content {
	lines := []string{hbar(tl, horiz, tr, w)}
	for i := 0; i < h-2; i++ {
		lines = append(lines, hbar(vert, " ", vert, w))
	}
	lines = append(lines, hbar(bl, horiz, br, w))
	return block(lines, w, h)
}

func navbar(p Params) grid.Content {
	brand := p.Text("Logo")
	links := strings.Join(p.Items("Home", "About", "Contact"), "   ")
	w := p.Width(70)
	pad := w - 4 - runeLen(brand) - runeLen(links)
	return block([]string{
		hbar("┌", "─", "┐", w),
		"│ " + brand + rep(" ", max(pad, 2)) + links + " │",
		hbar("└", "─", "┘", w),
	}, w, 3)
}

func sidebar(p Params) grid.Content {
	items := p.Items("Dashboard", "Users", "Settings", "Reports")
	w, h := p.Width(22), p.Height(20)
	lines := []string{
		hbar("┌", "─", "┐", w),
		"│ " + padEnd("≡ Menu", w-4) + " │",
		hbar("├", "─", "┤", w),
	}
	for _, item := range items {
		lines = append(lines, "│ "+padEnd(item, w-4)+" │")
	}
	for i := 0; i < h-3-len(items)-1; i++ {
		lines = append(lines, hbar("│", " ", "│", w))
	}
	lines = append(lines, hbar("└", "─", "┘", w))
	return block(lines, w, h)
}

func header(p Params) grid.Content {
	title := p.Text("Page Title")
	subtitle := p.Subtitle("Description text here")
	w := p.Width(60)
	return block([]string{
		rep("═", w),
		" " + title,
		" " + subtitle,
		rep("═", w),
	}, w, 4)
}

func breadcrumb(p Params) grid.Content {
	return single(strings.Join(p.Items("Home", "Products", "Detail"), " > "))
}

func pagination(Params) grid.Content {
	return single("< [1] [2] [3] ... [10] >")
}

func avatar(p Params) grid.Content {
	name := p.Text("JD")
	return block([]string{"┌──┐", "│" + padEnd(cut(name, 2), 2) + "│", "└──┘"}, 4, 3)
}

func badge(p Params) grid.Content {
	text := p.Text("NEW")
	return block([]string{"(" + text + ")"}, runeLen(text)+2, 1)
}

// rule draws a horizontal line of the given glyph.
func rule(glyph string) Generator {
	return func(p Params) grid.Content {
		w := p.Width(40)
		return block([]string{rep(glyph, w)}, w, 1)
	}
}

func uiArrowRight(p Params) grid.Content {
	w := p.Width(10)
	return block([]string{rep("─", w-1) + "→"}, w, 1)
}

func arrowDown(p Params) grid.Content {
	h := p.Height(5)
	var lines []string
	for i := 0; i < h-1; i++ {
		lines = append(lines, "│")
	}
	lines = append(lines, "↓")
	return block(lines, 1, h)
}

func label(def string) Generator {
	return func(p Params) grid.Content {
		return single(p.Text(def))
	}
}

func heading(p Params) grid.Content {
	text := p.Text("Heading")
	return block([]string{"# " + text}, runeLen(text)+2, 1)
}

func paragraph(p Params) grid.Content {
	w := p.Width(40)
	return block([]string{
		fit("Lorem ipsum dolor sit amet,", w),
		fit("consectetur adipiscing elit.", w),
		fit("Sed do eiusmod tempor.", w),
	}, w, 3)
}

func toggle(p Params) grid.Content {
	text := p.Text("Feature")
	sw := "[●===]"
	if p.On(false) {
		sw = "[===●]"
	}
	return block([]string{sw + " " + text}, runeLen(text)+7, 1)
}

func progress(p Params) grid.Content {
	pct := min(max(p.Percent(60), 0), 100)
	w := p.Width(30)
	filled := max(roundHalfUp(float64((w-2)*pct)/100), 0)
	empty := w - 2 - filled
	return block([]string{"[" + rep("█", filled) + rep("░", empty) + "]"}, w, 1)
}

func image(p Params) grid.Content {
	w, h := p.Width(20), p.Height(8)
	inner := w - 2
	midY := floorDiv(h-2, 2)
	lines := []string{hbar("┌", "─", "┐", w)}
	for i := 0; i < h-2; i++ {
		switch {
		case i == midY:
			const txt = "[image]"
			pad := inner - runeLen(txt)
			left := floorDiv(pad, 2)
			lines = append(lines, "│"+rep(" ", left)+txt+rep(" ", pad-left)+"│")
		case i == midY-1 || i == midY+1:
			slash := "\\"
			if i == midY-1 {
				slash = "/"
			}
			mid := floorDiv(inner, 2)
			lines = append(lines, "│"+rep(" ", mid-1)+slash+rep(" ", inner-mid)+"│")
		default:
			lines = append(lines, hbar("│", " ", "│", w))
		}
	}
	lines = append(lines, hbar("└", "─", "┘", w))
	return block(lines, w, h)
}
