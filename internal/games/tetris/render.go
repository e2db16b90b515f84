package tetris

import (
	"fmt"

	"github.com/soliskit/tetris/internal/core"
)

const (
	cellWidth  = 2 // terminal columns per board cell
	hudWidth   = 16
	hudSpacing = 2
)

// ScreenColor maps a piece color onto the terminal palette.
func ScreenColor(c Color) core.Color {
	switch c {
	case ColorCyan:
		return core.ColorCyan
	case ColorBlue:
		return core.ColorBlue
	case ColorOrange:
		return core.ColorOrange
	case ColorYellow:
		return core.ColorYellow
	case ColorGreen:
		return core.ColorGreen
	case ColorPurple:
		return core.ColorMagenta
	case ColorRed:
		return core.ColorRed
	default:
		return core.ColorDefault
	}
}

// Render draws the current state onto dst.
func (e *Engine) Render(dst *core.Screen) {
	RenderSnapshot(dst, e.Snapshot())
}

// RenderSnapshot draws the board, the HUD and any overlay onto dst.
func RenderSnapshot(dst *core.Screen, s Snapshot) {
	dst.Clear()

	boardW := s.Cols()*cellWidth + 2
	boardH := s.Rows() + 2
	totalW := boardW + hudSpacing + hudWidth
	if dst.Width() < totalW || dst.Height() < boardH {
		dst.DrawTextCentered(dst.Height()/2, "Window too small", core.ColorYellow)
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("need %dx%d", totalW, boardH), core.ColorDim)
		return
	}

	area := dst.Bounds().Center(totalW, boardH)
	board := core.NewRect(area.X, area.Y, boardW, boardH)

	dst.DrawBoxColored(board, core.ColorGray)
	for r, row := range s.Composite() {
		for c, cell := range row {
			x := board.X + 1 + c*cellWidth
			y := board.Y + 1 + r
			if cell.Filled {
				color := ScreenColor(cell.Color)
				dst.SetColored(x, y, '█', color)
				dst.SetColored(x+1, y, '█', color)
			} else {
				dst.SetColored(x, y, ' ', core.ColorDim)
				dst.SetColored(x+1, y, '.', core.ColorDim)
			}
		}
	}

	renderHUD(dst, s, board.Right()+hudSpacing, board.Y)

	switch s.State {
	case StatePaused:
		renderOverlay(dst, board, "PAUSED", "P to resume")
	case StateGameOver:
		renderOverlay(dst, board, "GAME OVER", "N new  C continue")
	}
}

func renderHUD(dst *core.Screen, s Snapshot, x, y int) {
	dst.DrawTextColored(x, y, "TETRIS", core.ColorBrightWhite)
	dst.DrawText(x, y+2, fmt.Sprintf("Score %d", s.Score))
	dst.DrawText(x, y+3, fmt.Sprintf("Level %d", s.Level))
	dst.DrawText(x, y+4, fmt.Sprintf("Lines %d", s.Lines))
	dst.DrawTextColored(x, y+5, fmt.Sprintf("Best  %d", s.HighScore), core.ColorYellow)

	dst.DrawText(x, y+7, "Next")
	renderPreview(dst, s.Next, x, y+8)

	holdColor := core.ColorDefault
	if !s.CanHold {
		holdColor = core.ColorDim
	}
	dst.DrawTextColored(x, y+13, "Hold", holdColor)
	renderPreview(dst, s.Held, x, y+14)
}

// renderPreview draws a piece's shape without its board position.
func renderPreview(dst *core.Screen, p *Piece, x, y int) {
	if p == nil {
		dst.DrawTextColored(x, y, "--", core.ColorDim)
		return
	}
	color := ScreenColor(p.Color)
	p.Shape.each(func(r, c int) {
		dst.SetColored(x+c*cellWidth, y+r, '█', color)
		dst.SetColored(x+c*cellWidth+1, y+r, '█', color)
	})
}

// renderOverlay draws a boxed two-line message over the board.
func renderOverlay(dst *core.Screen, board core.Rect, line1, line2 string) {
	w := core.Max(len(line1), len(line2)) + 4
	box := board.Center(w, 5)
	dst.Fill(box, ' ', core.ColorDefault)
	dst.DrawBoxColored(box, core.ColorBrightWhite)
	dst.DrawTextColored(box.X+(w-len(line1))/2, box.Y+1, line1, core.ColorBrightWhite)
	dst.DrawText(box.X+(w-len(line2))/2, box.Y+3, line2)
}
