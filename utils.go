package main

import (
	"html"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"
)

// clipboardIO is the system clipboard as the editor sees it.
type clipboardIO interface {
	ReadText() (string, error)
	WriteText(text string) error
}

type systemClipboard struct{}

// ReadText prefers the plain-text flavour on macOS, where rich text is
// often on the pasteboard alongside it.
func (systemClipboard) ReadText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func (systemClipboard) WriteText(text string) error {
	return clipboard.WriteAll(text)
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") ||
			strings.Contains(text, "<div") || strings.Contains(text, "<pre"))
}

// extractTextFromRTF keeps the visible text of an RTF document. \par and
// \line become newlines; \'hh escapes become their byte.
func extractTextFromRTF(rtf string) string {
	var out strings.Builder
	out.Grow(len(rtf))
	src := []byte(rtf)
	for i := 0; i < len(src); i++ {
		b := src[i]
		switch {
		case b == '{' || b == '}':
			continue
		case b == '\\' && i+1 < len(src):
			next := src[i+1]
			switch {
			case next == '\'' && i+3 < len(src):
				if val, err := strconv.ParseUint(string(src[i+2:i+4]), 16, 8); err == nil {
					out.WriteByte(byte(val))
					i += 3
					continue
				}
				i++
			case next == '\\' || next == '{' || next == '}':
				out.WriteByte(next)
				i++
			case next == '~':
				out.WriteByte(' ')
				i++
			case isASCIILetter(next):
				start := i + 1
				end := start
				for end < len(src) && isASCIILetter(src[end]) {
					end++
				}
				word := string(src[start:end])
				for end < len(src) && (src[end] == '-' || isDigit(src[end])) {
					end++
				}
				if end < len(src) && src[end] == ' ' {
					end++
				}
				switch word {
				case "par", "line":
					out.WriteByte('\n')
				case "tab":
					out.WriteByte('\t')
				}
				i = end - 1
			default:
				i++
			}
		case b == '\\':
			continue
		case b == '\n' || b == '\r':
			// raw newlines in RTF source are not content
		default:
			out.WriteByte(b)
		}
	}
	return out.String()
}

func isASCIILetter(b byte) bool { return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' }
func isDigit(b byte) bool       { return b >= '0' && b <= '9' }

// extractTextFromHTML drops tags and decodes entities.
func extractTextFromHTML(doc string) string {
	var out strings.Builder
	out.Grow(len(doc))
	inTag := false
	for _, r := range doc {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			out.WriteRune(r)
		}
	}
	return html.UnescapeString(out.String())
}

// cleanClipboardText turns whatever the clipboard held into plain text with
// \n line endings and no control characters other than tabs.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	switch {
	case isRTF(text):
		text = extractTextFromRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var out strings.Builder
	out.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || r >= 32 && r != 127 {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
