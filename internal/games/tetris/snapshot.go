package tetris

import "time"

// Snapshot is a read-only copy of the engine state for renderers and tests.
type Snapshot struct {
	State     State
	Board     [][]Cell
	Current   *Piece
	Next      *Piece
	Held      *Piece
	CanHold   bool
	Score     int
	Level     int
	HighScore int
	Lines     int
	Pieces    int
	Interval  time.Duration
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:     e.state,
		Board:     e.board.Cells(),
		Current:   e.current.Clone(),
		Next:      e.next.Clone(),
		Held:      e.held.Clone(),
		CanHold:   e.canHold,
		Score:     e.score,
		Level:     e.level,
		HighScore: e.highScore,
		Lines:     e.lines,
		Pieces:    e.pieces,
		Interval:  e.timer.Interval,
	}
}

// Rows returns the board height.
func (s Snapshot) Rows() int { return len(s.Board) }

// Cols returns the board width.
func (s Snapshot) Cols() int {
	if len(s.Board) == 0 {
		return 0
	}
	return len(s.Board[0])
}

// Composite returns the board with the current piece drawn in, as seen by
// a renderer. The piece is omitted once the game is over.
func (s Snapshot) Composite() [][]Cell {
	out := make([][]Cell, len(s.Board))
	for r, row := range s.Board {
		out[r] = append([]Cell(nil), row...)
	}
	if s.Current == nil || s.State == StateGameOver {
		return out
	}
	p := s.Current
	p.Shape.each(func(r, c int) {
		row, col := p.Position.Row+r, p.Position.Column+c
		if row >= 0 && row < len(out) && col >= 0 && col < len(out[row]) {
			out[row][col] = Cell{Filled: true, Color: p.Color}
		}
	})
	return out
}
