package grid

import "strings"

// Buffer is the flattened canvas: one string per row, every row the same
// number of cells.
type Buffer []string

// CreateBuffer returns rows lines of cols spaces.
func CreateBuffer(cols, rows int) Buffer {
	cols = max(cols, 0)
	rows = max(rows, 0)
	blank := strings.Repeat(" ", cols)
	buf := make(Buffer, rows)
	for i := range buf {
		buf[i] = blank
	}
	return buf
}

func (b Buffer) Lines() []string {
	out := make([]string, len(b))
	copy(out, b)
	return out
}

func (b Buffer) String() string {
	return strings.Join(b, "\n")
}

// Cols is the width of the buffer in cells.
func (b Buffer) Cols() int {
	if len(b) == 0 {
		return 0
	}
	return len([]rune(b[0]))
}

func (b Buffer) Rows() int {
	return len(b)
}

// Cell returns the character at (col, row), or a space outside the buffer.
func (b Buffer) Cell(col, row int) rune {
	if row < 0 || row >= len(b) || col < 0 {
		return ' '
	}
	line := []rune(b[row])
	if col >= len(line) {
		return ' '
	}
	return line[col]
}
