package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"unicode/utf8"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Pixel size of one grid cell in PNG output.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

const (
	pngPadding  = 2 // cells of margin around the drawing
	pngFontSize = 12.0
)

var ErrNothingToExport = errors.New("nothing to export")

// PNG draws the trimmed buffer in black Go Mono on white, one glyph per
// cell, and encodes it to w.
func PNG(w io.Writer, lines []string) error {
	cols := 0
	for _, line := range lines {
		cols = max(cols, utf8.RuneCountInString(line))
	}
	if cols == 0 {
		return ErrNothingToExport
	}

	width := int(float64(cols+2*pngPadding) * CellWidth)
	height := int(float64(len(lines)+2*pngPadding) * CellHeight)
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)

	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttf, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	// Baseline sits a little above the bottom of each cell.
	baseline := CellHeight - 4
	for row, line := range lines {
		y := float64(row+pngPadding)*CellHeight + baseline
		col := 0
		for _, r := range line {
			if r != ' ' {
				dc.DrawString(string(r), float64(col+pngPadding)*CellWidth, y)
			}
			col++
		}
	}
	return dc.EncodePNG(w)
}
