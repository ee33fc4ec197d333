package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlayCenter draws box centered over base, both w x h cells. Extra
// vertical space goes below the box.
func overlayCenter(base, box string, w, h int) string {
	bgLines := fitLines(strings.Split(base, "\n"), w, h)
	fgW, fgH := lipgloss.Size(box)
	fgW = min(fgW, w)
	x, y := max((w-fgW)/2, 0), max((h-fgH)/2, 0)
	for i, fgLine := range strings.Split(box, "\n") {
		if y+i >= h {
			break
		}
		bgLines[y+i] = spliceLine(bgLines[y+i], fgLine, x, fgW, w)
	}
	return strings.Join(bgLines, "\n")
}

// spliceLine replaces cells [x, x+fgW) of bg with fg, keeping the styles on
// either side.
func spliceLine(bg, fg string, x, fgW, w int) string {
	left := ansi.Cut(bg, 0, x)
	if n := ansi.StringWidth(left); n < x {
		left += strings.Repeat(" ", x-n)
	}
	if n := ansi.StringWidth(fg); n < fgW {
		fg += strings.Repeat(" ", fgW-n)
	} else if n > fgW {
		fg = ansi.Cut(fg, 0, fgW)
	}
	return padCells(left+fg+ansi.Cut(bg, x+fgW, w), w)
}

// fitLines returns exactly h lines, each padded or cut to w cells.
func fitLines(lines []string, w, h int) []string {
	out := make([]string, h)
	for i := range out {
		if i < len(lines) {
			out[i] = padCells(lines[i], w)
		} else {
			out[i] = strings.Repeat(" ", w)
		}
	}
	return out
}

func padCells(s string, w int) string {
	n := ansi.StringWidth(s)
	switch {
	case n < w:
		return s + strings.Repeat(" ", w-n)
	case n > w:
		return ansi.Cut(s, 0, w)
	}
	return s
}
