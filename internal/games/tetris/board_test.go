package tetris

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fill marks the given columns of row as filled.
func fill(b *Board, row int, cols ...int) {
	for _, c := range cols {
		b.cells[row][c] = Cell{Filled: true, Color: ColorRed}
	}
}

func span(from, to int) []int {
	var cols []int
	for c := from; c <= to; c++ {
		cols = append(cols, c)
	}
	return cols
}

func TestNewBoard(t *testing.T) {
	b := NewBoard(20, 10)

	assert.Equal(t, 20, b.Rows())
	assert.Equal(t, 10, b.Cols())
	for r := 0; r < 20; r++ {
		for c := 0; c < 10; c++ {
			assert.False(t, b.IsOccupied(r, c), "cell (%d,%d) should be empty", r, c)
		}
	}
}

func TestBoardBlocks(t *testing.T) {
	b := NewBoard(20, 10)
	fill(b, 5, 5)

	tests := []struct {
		name     string
		row, col int
		occupied bool
		blocks   bool
	}{
		{"empty", 0, 0, false, false},
		{"filled", 5, 5, true, true},
		{"above", -1, 0, false, true},
		{"below", 20, 0, false, true},
		{"left", 0, -1, false, true},
		{"right", 0, 10, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.occupied, b.IsOccupied(tt.row, tt.col), "IsOccupied")
			assert.Equal(t, tt.blocks, b.Blocks(tt.row, tt.col), "Blocks")
		})
	}
}

func TestBoardLock(t *testing.T) {
	b := NewBoard(20, 10)
	fill(b, 19, span(0, 7)...)

	// Completes row 19 but Lock must not clear it.
	b.Lock(&Piece{Shape: Shape{{1, 1}, {1, 1}}, Color: ColorYellow, Position: Position{Row: 18, Column: 8}})

	assert.Equal(t, Cell{Filled: true, Color: ColorYellow}, b.Cell(18, 8))
	assert.Equal(t, Cell{Filled: true, Color: ColorYellow}, b.Cell(19, 9))
	assert.True(t, rowFull(b.cells[19]))
	assert.Equal(t, 20, b.Rows())
}

func TestBoardLockSkipsOutOfBounds(t *testing.T) {
	b := NewBoard(4, 4)
	b.Lock(&Piece{Shape: Shape{{1, 1}, {1, 1}}, Color: ColorRed, Position: Position{Row: 3, Column: 3}})

	assert.True(t, b.IsOccupied(3, 3))
	assert.Len(t, b.cells, 4)
	for _, row := range b.cells {
		assert.Len(t, row, 4)
	}
}

func TestClearFullRows(t *testing.T) {
	for k := 0; k <= 4; k++ {
		t.Run(fmt.Sprintf("%d rows", k), func(t *testing.T) {
			b := NewBoard(20, 10)
			// Marker row above the full ones.
			fill(b, 19-k, 3)
			for r := 20 - k; r < 20; r++ {
				fill(b, r, span(0, 9)...)
			}

			cleared := b.ClearFullRows()

			require.Equal(t, k, cleared)
			assert.Equal(t, 20, b.Rows())
			assert.Len(t, b.cells, 20)
			// The marker row slides down to the bottom.
			assert.True(t, b.IsOccupied(19, 3))
			for r := 0; r < 19; r++ {
				for c := 0; c < 10; c++ {
					assert.False(t, b.IsOccupied(r, c), "cell (%d,%d)", r, c)
				}
			}
		})
	}
}

func TestClearFullRowsPreservesOrder(t *testing.T) {
	b := NewBoard(6, 4)
	fill(b, 1, 0)
	fill(b, 2, span(0, 3)...)
	fill(b, 3, 1)
	fill(b, 4, span(0, 3)...)
	fill(b, 5, 2)

	require.Equal(t, 2, b.ClearFullRows())

	assert.True(t, b.IsOccupied(3, 0))
	assert.True(t, b.IsOccupied(4, 1))
	assert.True(t, b.IsOccupied(5, 2))
	for c := 0; c < 4; c++ {
		assert.False(t, b.IsOccupied(0, c))
		assert.False(t, b.IsOccupied(1, c))
		assert.False(t, b.IsOccupied(2, c))
	}
}

func TestBoardCellsIsACopy(t *testing.T) {
	b := NewBoard(4, 4)
	cells := b.Cells()
	cells[0][0] = Cell{Filled: true, Color: ColorRed}

	assert.False(t, b.IsOccupied(0, 0))

	c := b.Clone()
	fill(c, 1, 1)
	assert.False(t, b.IsOccupied(1, 1))
}
