package core

import (
	"strings"
	"testing"
)

// runeAt is a shorthand for reading only the rune of a cell.
func runeAt(s *Screen, x, y int) rune {
	return s.GetCell(x, y).Rune
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("NewScreen(12, 4) size = %dx%d", s.Width(), s.Height())
	}
	if s.Bounds() != NewRect(0, 0, 12, 4) {
		t.Errorf("Bounds() = %+v", s.Bounds())
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 12; x++ {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("cell (%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative size should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen String() = %q", s.String())
	}
}

func TestScreenSetColoredClips(t *testing.T) {
	s := NewScreen(5, 3)
	s.SetColored(2, 1, '█', ColorCyan)

	if got := s.GetCell(2, 1); got.Rune != '█' || got.Color != ColorCyan {
		t.Errorf("GetCell(2, 1) = %+v", got)
	}

	// Out of bounds writes are dropped and reads return a blank.
	for _, p := range [][2]int{{-1, 0}, {5, 0}, {0, -1}, {0, 3}} {
		s.SetColored(p[0], p[1], 'X', ColorRed)
		if got := s.GetCell(p[0], p[1]); got != blankCell {
			t.Errorf("GetCell(%d, %d) = %+v, expected blank", p[0], p[1], got)
		}
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("out of bounds write leaked onto the screen")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(4, 2)
	s.Fill(s.Bounds(), '#', ColorRed)
	s.Clear()

	if s.String() != "    \n    " {
		t.Errorf("after Clear String() = %q", s.String())
	}
	if s.GetCell(3, 1).Color != ColorDefault {
		t.Error("Clear should reset colors")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(10, 2)
	s.DrawText(7, 0, "Score")
	s.DrawTextColored(0, 1, "Best", ColorYellow)

	if got := strings.Split(s.String(), "\n")[0]; got != "       Sco" {
		t.Errorf("clipped row = %q", got)
	}
	if s.GetCell(7, 0).Color != ColorDefault {
		t.Error("DrawText should be uncolored")
	}
	if c := s.GetCell(3, 1); c.Rune != 't' || c.Color != ColorYellow {
		t.Errorf("GetCell(3, 1) = %+v", c)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	tests := []struct {
		width int
		text  string
		wantX int
	}{
		{20, "PAUSED", 7},
		{21, "PAUSED", 7},
		{10, "██", 4}, // counted in runes, not bytes
	}

	for _, tc := range tests {
		s := NewScreen(tc.width, 3)
		s.DrawTextCentered(1, tc.text, ColorBrightWhite)

		first := []rune(tc.text)[0]
		if c := s.GetCell(tc.wantX, 1); c.Rune != first || c.Color != ColorBrightWhite {
			t.Errorf("width %d %q: cell %d = %+v", tc.width, tc.text, tc.wantX, c)
		}
		if runeAt(s, tc.wantX-1, 1) != ' ' {
			t.Errorf("width %d %q: text starts before %d", tc.width, tc.text, tc.wantX)
		}
	}
}

func TestScreenFill(t *testing.T) {
	s := NewScreen(8, 6)
	s.Fill(NewRect(2, 1, 3, 2), '.', ColorDim)

	want := []string{
		"        ",
		"  ...   ",
		"  ...   ",
		"        ",
		"        ",
		"        ",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("Fill result:\n%s", got)
	}
	if s.GetCell(4, 2).Color != ColorDim {
		t.Error("Fill should apply the color")
	}

	// Partly off screen rectangles are clipped.
	s.Fill(NewRect(6, 4, 5, 5), '#', ColorRed)
	if runeAt(s, 7, 5) != '#' || runeAt(s, 5, 5) != ' ' {
		t.Error("clipped Fill painted the wrong cells")
	}
}

func TestScreenDrawBoxColored(t *testing.T) {
	s := NewScreen(6, 4)
	s.DrawBoxColored(NewRect(0, 0, 5, 3), ColorGray)

	want := []string{
		"┌───┐ ",
		"│   │ ",
		"└───┘ ",
		"      ",
	}
	if got := s.String(); got != strings.Join(want, "\n") {
		t.Errorf("box:\n%s", got)
	}
	if s.GetCell(4, 2).Color != ColorGray {
		t.Error("box should carry its color")
	}
}

func TestScreenDrawBoxTooSmall(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawBoxColored(NewRect(1, 1, 1, 3), ColorGray)
	s.DrawBoxColored(NewRect(1, 1, 3, 1), ColorGray)

	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Errorf("degenerate box drew something:\n%s", s.String())
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")

	// Same size keeps the buffer.
	s.Resize(4, 2)
	if runeAt(s, 0, 0) != 'a' {
		t.Error("Resize to the same size should keep content")
	}

	s.Resize(6, 3)
	if s.Width() != 6 || s.Height() != 3 {
		t.Fatalf("after Resize size = %dx%d", s.Width(), s.Height())
	}
	if runeAt(s, 0, 0) != ' ' {
		t.Error("Resize to a new size should blank the screen")
	}
	s.SetColored(5, 2, 'z', ColorGreen)
	if runeAt(s, 5, 2) != 'z' {
		t.Error("resized screen should accept writes at the new edge")
	}
}
