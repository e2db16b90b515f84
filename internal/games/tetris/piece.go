package tetris

// Shape is a piece matrix: 0 is empty, any other value is filled.
type Shape [][]int

// Rows returns the matrix height.
func (s Shape) Rows() int { return len(s) }

// Cols returns the matrix width.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i, row := range s {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Rotated returns a new shape turned 90 degrees clockwise.
// An r x c matrix becomes c x r.
func (s Shape) Rotated() Shape {
	rows, cols := s.Rows(), s.Cols()
	out := make(Shape, cols)
	for i := range out {
		out[i] = make([]int, rows)
		for j := range out[i] {
			out[i][j] = s[rows-1-j][i]
		}
	}
	return out
}

// FilledCount returns the number of nonzero cells.
func (s Shape) FilledCount() int {
	n := 0
	s.each(func(int, int) { n++ })
	return n
}

// each calls fn with the matrix coordinates of every filled cell.
func (s Shape) each(fn func(r, c int)) {
	for r, row := range s {
		for c, v := range row {
			if v != 0 {
				fn(r, c)
			}
		}
	}
}

// Position is the board offset of a shape's top-left corner.
type Position struct {
	Row    int
	Column int
}

// Piece is a shape with a color, a board position and a rotation count.
type Piece struct {
	Shape     Shape
	Color     Color
	Position  Position
	Rotations int // 0..3, cosmetic
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	c := *p
	c.Shape = p.Shape.Clone()
	return &c
}

// FitsWithin reports whether the piece can occupy its current position.
func (p *Piece) FitsWithin(b *Board) bool {
	return fits(p.Shape, p.Position, b)
}

// FitsAt reports whether the piece could occupy pos.
func (p *Piece) FitsAt(b *Board, pos Position) bool {
	return fits(p.Shape, pos, b)
}

// Rotate turns the piece clockwise in place if the rotated shape fits at
// the unchanged position. It reports whether the rotation was applied.
func (p *Piece) Rotate(b *Board) bool {
	candidate := p.Shape.Rotated()
	if !fits(candidate, p.Position, b) {
		return false
	}
	p.Shape = candidate
	p.Rotations = (p.Rotations + 1) % 4
	return true
}

func fits(s Shape, pos Position, b *Board) bool {
	ok := true
	s.each(func(r, c int) {
		if ok && b.Blocks(pos.Row+r, pos.Column+c) {
			ok = false
		}
	})
	return ok
}
