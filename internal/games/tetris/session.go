package tetris

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/soliskit/tetris/internal/config"
)

// Storage keys.
const (
	SessionKey   = "savedGameSession"
	HighScoreKey = "highScore"
)

// ErrMalformedSession is wrapped by every session decoding failure.
var ErrMalformedSession = errors.New("tetris: malformed session")

// MaxScore bounds a restored score and statistics. It leaves room for
// decades of line clears before an int could overflow.
const MaxScore = 1_000_000_000

// SessionRecord is the persisted form of a game in progress.
type SessionRecord struct {
	GameBoard        [][]CellRecord `json:"gameBoard"`
	Score            int            `json:"score"`
	Level            int            `json:"level"`
	CurrentTetromino *PieceRecord   `json:"currentTetromino"`
	NextTetromino    *PieceRecord   `json:"nextTetromino"`
	HeldTetromino    *PieceRecord   `json:"heldTetromino"`
	CanHoldTetromino bool           `json:"canHoldTetromino"`
	LinesCleared     int            `json:"linesCleared,omitempty"`
	PiecesLocked     int            `json:"piecesLocked,omitempty"`
}

// CellRecord is a persisted board cell. Color is null for empty cells.
type CellRecord struct {
	IsFilled bool    `json:"isFilled"`
	Color    *string `json:"color"`
}

// PieceRecord is a persisted piece.
type PieceRecord struct {
	Shape     [][]int        `json:"shape"`
	Color     string         `json:"color"`
	Position  PositionRecord `json:"position"`
	Rotations int            `json:"rotations"`
}

// PositionRecord is a persisted piece position.
type PositionRecord struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// record captures the engine state for persistence.
func (e *Engine) record() *SessionRecord {
	rec := &SessionRecord{
		GameBoard:        make([][]CellRecord, e.board.Rows()),
		Score:            e.score,
		Level:            e.level,
		CurrentTetromino: pieceRecord(e.current),
		NextTetromino:    pieceRecord(e.next),
		HeldTetromino:    pieceRecord(e.held),
		CanHoldTetromino: e.canHold,
		LinesCleared:     e.lines,
		PiecesLocked:     e.pieces,
	}
	for r, row := range e.board.cells {
		rec.GameBoard[r] = make([]CellRecord, len(row))
		for c, cell := range row {
			if cell.Filled {
				color := string(cell.Color)
				rec.GameBoard[r][c] = CellRecord{IsFilled: true, Color: &color}
			}
		}
	}
	return rec
}

func pieceRecord(p *Piece) *PieceRecord {
	if p == nil {
		return nil
	}
	return &PieceRecord{
		Shape:     p.Shape.Clone(),
		Color:     string(p.Color),
		Position:  PositionRecord{Row: p.Position.Row, Column: p.Position.Column},
		Rotations: p.Rotations,
	}
}

// restored is a validated session ready to be installed in an engine.
type restored struct {
	board   *Board
	current *Piece
	next    *Piece
	held    *Piece
	canHold bool
	score   int
	level   int
	lines   int
	pieces  int
}

// Validate reports whether the record could be restored on a board
// configured by cfg.
func (r *SessionRecord) Validate(cfg config.TetrisConfig) error {
	_, err := r.restore(cfg)
	return err
}

// restore validates the record against cfg and rebuilds the game state.
// The stored level is ignored; it is recomputed from the score.
func (r *SessionRecord) restore(cfg config.TetrisConfig) (*restored, error) {
	rows, cols := cfg.Board.Rows, cfg.Board.Columns
	if len(r.GameBoard) != rows {
		return nil, fmt.Errorf("%w: board has %d rows, want %d", ErrMalformedSession, len(r.GameBoard), rows)
	}

	board := NewBoard(rows, cols)
	for i, row := range r.GameBoard {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: board row %d has %d columns, want %d", ErrMalformedSession, i, len(row), cols)
		}
		for j, cell := range row {
			if !cell.IsFilled {
				continue
			}
			if cell.Color == nil || !Color(*cell.Color).Known() {
				return nil, fmt.Errorf("%w: filled cell (%d,%d) has no valid color", ErrMalformedSession, i, j)
			}
			board.cells[i][j] = Cell{Filled: true, Color: Color(*cell.Color)}
		}
	}

	if r.Score < 0 || r.Score > MaxScore {
		return nil, fmt.Errorf("%w: score %d outside [0, %d]", ErrMalformedSession, r.Score, MaxScore)
	}
	if r.LinesCleared < 0 || r.PiecesLocked < 0 || r.LinesCleared > MaxScore || r.PiecesLocked > MaxScore {
		return nil, fmt.Errorf("%w: statistics out of range", ErrMalformedSession)
	}

	current, err := r.CurrentTetromino.piece("currentTetromino")
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: currentTetromino is missing", ErrMalformedSession)
	}
	if !current.FitsWithin(board) {
		return nil, fmt.Errorf("%w: currentTetromino overlaps the board", ErrMalformedSession)
	}

	next, err := r.NextTetromino.piece("nextTetromino")
	if err != nil {
		return nil, err
	}
	if next == nil {
		return nil, fmt.Errorf("%w: nextTetromino is missing", ErrMalformedSession)
	}

	held, err := r.HeldTetromino.piece("heldTetromino")
	if err != nil {
		return nil, err
	}

	return &restored{
		board:   board,
		current: current,
		next:    next,
		held:    held,
		canHold: r.CanHoldTetromino,
		score:   r.Score,
		level:   r.Score/cfg.Scoring.PointsPerLevel + 1,
		lines:   r.LinesCleared,
		pieces:  r.PiecesLocked,
	}, nil
}

// piece validates a persisted piece. A nil record yields a nil piece.
func (p *PieceRecord) piece(field string) (*Piece, error) {
	if p == nil {
		return nil, nil
	}
	if len(p.Shape) == 0 || len(p.Shape[0]) == 0 {
		return nil, fmt.Errorf("%w: %s has an empty shape", ErrMalformedSession, field)
	}

	width := len(p.Shape[0])
	filled := 0
	for _, row := range p.Shape {
		if len(row) != width {
			return nil, fmt.Errorf("%w: %s shape is not rectangular", ErrMalformedSession, field)
		}
		for _, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("%w: %s shape has negative value %d", ErrMalformedSession, field, v)
			}
			if v != 0 {
				filled++
			}
		}
	}
	if filled == 0 {
		return nil, fmt.Errorf("%w: %s shape has no filled cells", ErrMalformedSession, field)
	}

	color := Color(p.Color)
	if !color.Known() {
		return nil, fmt.Errorf("%w: %s has unknown color %q", ErrMalformedSession, field, p.Color)
	}

	rotations := p.Rotations % 4
	if rotations < 0 {
		rotations += 4
	}

	return &Piece{
		Shape:     Shape(p.Shape).Clone(),
		Color:     color,
		Position:  Position{Row: p.Position.Row, Column: p.Position.Column},
		Rotations: rotations,
	}, nil
}

// MarshalSession encodes a record as JSON.
func MarshalSession(r *SessionRecord) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("tetris: cannot encode session: %w", err)
	}
	return data, nil
}

// UnmarshalSession decodes a JSON record. Syntax and type errors wrap
// ErrMalformedSession.
func UnmarshalSession(data []byte) (*SessionRecord, error) {
	var r SessionRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSession, err)
	}
	return &r, nil
}

// SessionStore persists the saved session and the high score.
type SessionStore interface {
	// LoadSession returns nil without error when no session is saved.
	LoadSession() (*SessionRecord, error)
	SaveSession(r *SessionRecord) error
	ClearSession() error
	// LoadHighScore returns 0 without error when none is stored.
	LoadHighScore() (int, error)
	SaveHighScore(score int) error
}

// KV is a byte-blob key/value store.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

// KVSessionStore keeps sessions in a KV under fixed keys, optionally
// prefixed with a namespace so several players can share one store.
type KVSessionStore struct {
	kv        KV
	namespace string
}

// NewKVSessionStore creates a session store over kv. An empty namespace
// uses the bare keys.
func NewKVSessionStore(kv KV, namespace string) *KVSessionStore {
	return &KVSessionStore{kv: kv, namespace: namespace}
}

func (s *KVSessionStore) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + "/" + name
}

func (s *KVSessionStore) LoadSession() (*SessionRecord, error) {
	data, ok, err := s.kv.Get(s.key(SessionKey))
	if err != nil || !ok {
		return nil, err
	}
	return UnmarshalSession(data)
}

func (s *KVSessionStore) SaveSession(r *SessionRecord) error {
	data, err := MarshalSession(r)
	if err != nil {
		return err
	}
	return s.kv.Put(s.key(SessionKey), data)
}

func (s *KVSessionStore) ClearSession() error {
	return s.kv.Delete(s.key(SessionKey))
}

func (s *KVSessionStore) LoadHighScore() (int, error) {
	data, ok, err := s.kv.Get(s.key(HighScoreKey))
	if err != nil || !ok {
		return 0, err
	}
	score, err := strconv.Atoi(string(data))
	if err != nil || score < 0 {
		return 0, fmt.Errorf("tetris: invalid stored high score %q", data)
	}
	return score, nil
}

func (s *KVSessionStore) SaveHighScore(score int) error {
	return s.kv.Put(s.key(HighScoreKey), []byte(strconv.Itoa(score)))
}
