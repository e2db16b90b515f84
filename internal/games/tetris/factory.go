package tetris

import "math/rand"

// pieceKind pairs one of the seven shapes with its color.
type pieceKind struct {
	name  string
	shape Shape
	color Color
}

// kinds holds the seven pieces in their spawn orientation. Each shape's
// filled cells carry the piece's 1-based index.
var kinds = []pieceKind{
	{"I", Shape{
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}, ColorCyan},
	{"J", Shape{
		{2, 0, 0},
		{2, 2, 2},
		{0, 0, 0},
	}, ColorBlue},
	{"L", Shape{
		{0, 0, 3},
		{3, 3, 3},
		{0, 0, 0},
	}, ColorOrange},
	{"O", Shape{
		{4, 4},
		{4, 4},
	}, ColorYellow},
	{"S", Shape{
		{0, 5, 5},
		{5, 5, 0},
		{0, 0, 0},
	}, ColorGreen},
	{"T", Shape{
		{0, 6, 0},
		{6, 6, 6},
		{0, 0, 0},
	}, ColorPurple},
	{"Z", Shape{
		{7, 7, 0},
		{0, 7, 7},
		{0, 0, 0},
	}, ColorRed},
}

// Factory generates pieces uniformly at random at a fixed spawn position.
// It keeps no history between calls.
type Factory struct {
	rng   *rand.Rand
	spawn Position
}

// NewFactory creates a factory drawing from rng.
func NewFactory(rng *rand.Rand, spawn Position) *Factory {
	return &Factory{rng: rng, spawn: spawn}
}

// Generate returns a new piece at the spawn position with zero rotations.
func (f *Factory) Generate() *Piece {
	k := kinds[f.rng.Intn(len(kinds))]
	return &Piece{
		Shape:    k.shape.Clone(),
		Color:    k.color,
		Position: f.spawn,
	}
}
