// Package tetris implements the falling-block puzzle engine: the board,
// pieces and their factory, the gravity timer, scoring, and the persisted
// session record. Platforms drive it through the command methods on Engine
// and read it through Snapshot.
package tetris

// Color is a piece color tag as stored in the session record.
type Color string

const (
	ColorNone   Color = ""
	ColorCyan   Color = "cyan"
	ColorBlue   Color = "blue"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorPurple Color = "purple"
	ColorRed    Color = "red"
)

// Known reports whether c is one of the seven piece colors.
func (c Color) Known() bool {
	switch c {
	case ColorCyan, ColorBlue, ColorOrange, ColorYellow, ColorGreen, ColorPurple, ColorRed:
		return true
	}
	return false
}

// Cell is a single board position. Cells are values and are replaced
// wholesale, never modified through a shared reference.
type Cell struct {
	Filled bool
	Color  Color
}

// Board is a fixed-size grid of cells. The row count and column count never
// change after creation.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewBoard creates an empty board.
func NewBoard(rows, cols int) *Board {
	b := &Board{rows: rows, cols: cols, cells: make([][]Cell, rows)}
	for r := range b.cells {
		b.cells[r] = make([]Cell, cols)
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// InBounds reports whether (row, col) lies on the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.rows && col >= 0 && col < b.cols
}

// Cell returns the cell at (row, col), or an empty cell when out of bounds.
func (b *Board) Cell(row, col int) Cell {
	if !b.InBounds(row, col) {
		return Cell{}
	}
	return b.cells[row][col]
}

// IsOccupied reports whether (row, col) is in bounds and filled.
func (b *Board) IsOccupied(row, col int) bool {
	return b.InBounds(row, col) && b.cells[row][col].Filled
}

// Blocks reports whether a piece cell may not be placed at (row, col):
// the position is off the board or already filled. Every fit check goes
// through this predicate.
func (b *Board) Blocks(row, col int) bool {
	return !b.InBounds(row, col) || b.cells[row][col].Filled
}

// Lock writes every filled shape cell of p that lies on the board.
// It does not clear rows.
func (b *Board) Lock(p *Piece) {
	p.Shape.each(func(r, c int) {
		row, col := p.Position.Row+r, p.Position.Column+c
		if b.InBounds(row, col) {
			b.cells[row][col] = Cell{Filled: true, Color: p.Color}
		}
	})
}

// ClearFullRows removes every completely filled row, scanning top to
// bottom, and prepends the same number of empty rows. It returns how many
// rows were removed.
func (b *Board) ClearFullRows() int {
	kept := make([][]Cell, 0, b.rows)
	for _, row := range b.cells {
		if !rowFull(row) {
			kept = append(kept, row)
		}
	}

	cleared := b.rows - len(kept)
	if cleared == 0 {
		return 0
	}

	fresh := make([][]Cell, cleared, b.rows)
	for i := range fresh {
		fresh[i] = make([]Cell, b.cols)
	}
	b.cells = append(fresh, kept...)
	return cleared
}

func rowFull(row []Cell) bool {
	for _, c := range row {
		if !c.Filled {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	return &Board{rows: b.rows, cols: b.cols, cells: b.Cells()}
}

// Cells returns a deep copy of the grid, indexed [row][column].
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.rows)
	for r, row := range b.cells {
		out[r] = append([]Cell(nil), row...)
	}
	return out
}
