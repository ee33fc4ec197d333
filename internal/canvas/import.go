package canvas

import (
	"strings"

	"wireterm/internal/grid"
)

const fence = "```"

// ParseImport turns pasted art into content. One leading and one trailing
// fence marker are stripped, so a markdown export imports back as its art.
// Blank input is rejected.
func ParseImport(text string) (grid.Content, error) {
	if strings.TrimSpace(text) == "" {
		return grid.Content{}, ErrEmptyImport
	}
	text = normalizeNewlines(text)
	if strings.HasPrefix(text, fence) {
		text = strings.TrimPrefix(strings.TrimPrefix(text, fence), "\n")
	}
	if strings.HasSuffix(text, fence) {
		text = strings.TrimSuffix(strings.TrimSuffix(text, fence), "\n")
	}
	return grid.ContentFromText(text), nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
