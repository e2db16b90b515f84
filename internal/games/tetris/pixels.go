package tetris

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

// Background is the fill for empty cells in pixel output.
var Background = color.RGBA{R: 0x12, G: 0x12, B: 0x1a, A: 0xff}

var palette = map[Color]color.RGBA{
	ColorCyan:   {R: 0x00, G: 0xf0, B: 0xf0, A: 0xff},
	ColorBlue:   {R: 0x00, G: 0x00, B: 0xf0, A: 0xff},
	ColorOrange: {R: 0xf0, G: 0xa0, B: 0x00, A: 0xff},
	ColorYellow: {R: 0xf0, G: 0xf0, B: 0x00, A: 0xff},
	ColorGreen:  {R: 0x00, G: 0xf0, B: 0x00, A: 0xff},
	ColorPurple: {R: 0xa0, G: 0x00, B: 0xf0, A: 0xff},
	ColorRed:    {R: 0xf0, G: 0x00, B: 0x00, A: 0xff},
}

// RGBA returns the pixel color for a cell color. Unknown colors map to the
// background.
func RGBA(c Color) color.RGBA {
	if rgba, ok := palette[c]; ok {
		return rgba
	}
	return Background
}

// RenderImage draws the board with the current piece, one cellSize square
// per cell. Empty cells are left as background.
func RenderImage(s Snapshot, cellSize int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Cols()*cellSize, s.Rows()*cellSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: Background}, image.Point{}, draw.Src)

	for r, row := range s.Composite() {
		for c, cell := range row {
			if !cell.Filled {
				continue
			}
			rect := image.Rect(c*cellSize, r*cellSize, (c+1)*cellSize, (r+1)*cellSize)
			draw.Draw(img, rect, &image.Uniform{C: RGBA(cell.Color)}, image.Point{}, draw.Src)
		}
	}
	return img
}

// WritePNG encodes RenderImage output as PNG.
func WritePNG(w io.Writer, s Snapshot, cellSize int) error {
	if err := png.Encode(w, RenderImage(s, cellSize)); err != nil {
		return fmt.Errorf("tetris: cannot encode png: %w", err)
	}
	return nil
}
