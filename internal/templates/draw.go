package templates

import (
	"math"
	"strings"
	"unicode/utf8"

	"wireterm/internal/grid"
)

// Generators never fail on degenerate sizes: negative repeat counts draw
// nothing and truncation past the end of a string is a no-op.

func rep(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// padEnd right-pads s with spaces to n cells. Longer strings are kept whole.
func padEnd(s string, n int) string {
	return s + rep(" ", n-runeLen(s))
}

// cut keeps at most n leading runes of s.
func cut(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// fit truncates then pads s to exactly n cells.
func fit(s string, n int) string {
	return padEnd(cut(s, n), n)
}

func floorDiv(a, b int) int {
	return int(math.Floor(float64(a) / float64(b)))
}

// roundHalfUp matches the rounding used for progress fills.
func roundHalfUp(f float64) int {
	return int(math.Floor(f + 0.5))
}

func hbar(left, fill, right string, width int) string {
	return left + rep(fill, width-2) + right
}

func block(lines []string, w, h int) grid.Content {
	return grid.Content{Lines: lines, W: w, H: h}
}

// sized reports the block with its height taken from the lines.
func sized(lines []string, w int) grid.Content {
	return grid.Content{Lines: lines, W: w, H: len(lines)}
}

func single(line string) grid.Content {
	return grid.Content{Lines: []string{line}, W: runeLen(line), H: 1}
}

func joinMap(items []string, sep string, fn func(string) string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fn(item)
	}
	return strings.Join(parts, sep)
}
