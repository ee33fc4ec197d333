package grid

// Render stamps objects onto a blank cols x rows buffer in collection order.
// Later objects overwrite earlier ones cell by cell, spaces included; cells
// outside the buffer are dropped.
func Render(objects []Object, cols, rows int) Buffer {
	cols = max(cols, 0)
	rows = max(rows, 0)

	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = make([]rune, cols)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, obj := range objects {
		stamp(canvas, obj)
	}

	buf := make(Buffer, rows)
	for i, row := range canvas {
		buf[i] = string(row)
	}
	return buf
}

func stamp(canvas [][]rune, obj Object) {
	for dy, line := range obj.Data.Lines {
		gy := obj.Y + dy
		if gy < 0 || gy >= len(canvas) {
			continue
		}
		row := canvas[gy]
		dx := 0
		for _, r := range line {
			gx := obj.X + dx
			if gx >= 0 && gx < len(row) {
				row[gx] = r
			}
			dx++
		}
	}
}

// Pick returns the topmost object whose bounding box contains (col, row).
func Pick(objects []Object, col, row int) (Object, bool) {
	if i := PickIndex(objects, col, row); i >= 0 {
		return objects[i], true
	}
	return Object{}, false
}

// PickIndex is Pick returning the stack index, or -1.
func PickIndex(objects []Object, col, row int) int {
	for i := len(objects) - 1; i >= 0; i-- {
		if objects[i].Contains(col, row) {
			return i
		}
	}
	return -1
}
