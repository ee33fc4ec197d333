// Package export flattens a rendered buffer into portable documents:
// fenced markdown, plain text, a standalone HTML page or a PNG image.
package export

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"wireterm/internal/grid"
)

// Trim drops blank rows from the top and bottom of buf, removes the
// indentation shared by every non-blank row and strips trailing whitespace.
// Blank rows between content rows are kept.
func Trim(buf grid.Buffer) []string {
	lines := buf.Lines()
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}

	indent := -1
	for _, line := range lines {
		if blank(line) {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	if indent < 0 {
		indent = 0
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimRightFunc(dropRunes(line, indent), unicode.IsSpace)
	}
	return out
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func dropRunes(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[i:]
		}
		n--
	}
	return ""
}

// ToMarkdown wraps the trimmed buffer in a fence with no language tag. An
// all-blank buffer yields an empty fence.
func ToMarkdown(buf grid.Buffer) string {
	return "```\n" + strings.Join(Trim(buf), "\n") + "\n```"
}

func ToText(buf grid.Buffer) string {
	return strings.Join(Trim(buf), "\n")
}

const htmlPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body {
      font-family: monospace;
      background: #0f0f12;
      color: #e4e4e7;
      padding: 2rem;
      margin: 0;
    }
    pre {
      font-size: 17.5px;
      line-height: 1.2;
      letter-spacing: 0.05em;
    }
  </style>
</head>
<body>
  <pre>%s</pre>
</body>
</html>`

// ToHTML embeds the trimmed buffer, escaped, in a self-contained page.
func ToHTML(buf grid.Buffer) string {
	return fmt.Sprintf(htmlPage, "ASCII Wireframe", html.EscapeString(ToText(buf)))
}
