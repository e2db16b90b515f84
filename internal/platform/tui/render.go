package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/soliskit/tetris/internal/core"
)

// palette holds the terminal color for each screen color. ColorDefault is
// absent and renders unstyled.
var palette = map[core.Color]lipgloss.TerminalColor{
	core.ColorRed:         lipgloss.Color("1"),
	core.ColorGreen:       lipgloss.Color("2"),
	core.ColorYellow:      lipgloss.Color("3"),
	core.ColorBlue:        lipgloss.Color("4"),
	core.ColorMagenta:     lipgloss.Color("5"),
	core.ColorCyan:        lipgloss.Color("6"),
	core.ColorWhite:       lipgloss.Color("7"),
	core.ColorBrightWhite: lipgloss.Color("15"),
	core.ColorOrange:      lipgloss.Color("208"),
	core.ColorGray:        lipgloss.Color("245"),
	core.ColorDim:         lipgloss.Color("238"),
}

func cellStyle(c core.Color) lipgloss.Style {
	fg, ok := palette[c]
	if !ok {
		return lipgloss.NewStyle()
	}
	style := lipgloss.NewStyle().Foreground(fg)
	if c == core.ColorBrightWhite {
		style = style.Bold(true)
	}
	return style
}

// RenderScreen turns a screen buffer into styled terminal text. Each run
// of same-colored cells on a row is styled once.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	var sb, span strings.Builder
	current := core.ColorDefault

	flush := func() {
		if span.Len() > 0 {
			sb.WriteString(cellStyle(current).Render(span.String()))
			span.Reset()
		}
	}

	for x, w := 0, s.Width(); x < w; x++ {
		cell := s.GetCell(x, y)
		if cell.Color != current {
			flush()
			current = cell.Color
		}
		span.WriteRune(cell.Rune)
	}
	flush()
	return sb.String()
}
