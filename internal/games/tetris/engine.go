package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/soliskit/tetris/internal/config"
	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/storage"
)

// State is the run state of the engine.
type State int

const (
	StateGameOver State = iota
	StatePaused
	StatePlaying
)

func (s State) String() string {
	switch s {
	case StateGameOver:
		return "game_over"
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Engine owns the authoritative game state. It is not safe for concurrent
// use; hosts deliver commands and ticks one at a time.
type Engine struct {
	cfg     config.TetrisConfig
	rng     *rand.Rand
	factory *Factory
	store   SessionStore
	logger  *log.Logger

	board   *Board
	current *Piece
	next    *Piece
	held    *Piece
	canHold bool

	score     int
	level     int
	highScore int
	lines     int
	pieces    int

	state State
	timer Timer
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the session store. The default keeps sessions in memory.
func WithStore(s SessionStore) Option {
	return func(e *Engine) { e.store = s }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithSeed seeds piece generation. Zero keeps the time-based default.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithRand sets the random source used for piece generation.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// New creates an engine in the GameOver state with an empty board and the
// stored high score loaded.
func New(cfg config.TetrisConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, level: 1, state: StateGameOver}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.store == nil {
		e.store = NewKVSessionStore(storage.NewMemory(), "")
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.factory = NewFactory(e.rng, Position{Row: cfg.Spawn.Row, Column: cfg.Spawn.Column})
	e.board = NewBoard(cfg.Board.Rows, cfg.Board.Columns)
	e.current = e.factory.Generate()
	e.next = e.factory.Generate()

	high, err := e.store.LoadHighScore()
	if err != nil {
		e.logger.Warn("cannot load high score", "err", err)
	}
	e.highScore = high

	return e, nil
}

// Config returns the configuration the engine was built with.
func (e *Engine) Config() config.TetrisConfig { return e.cfg }

// State returns the run state.
func (e *Engine) State() State { return e.state }

// Timer returns a copy of the gravity timer.
func (e *Engine) Timer() Timer { return e.timer }

// NewGame resets everything except the high score and starts playing.
// It is valid in any state.
func (e *Engine) NewGame() {
	e.board = NewBoard(e.cfg.Board.Rows, e.cfg.Board.Columns)
	e.current = e.factory.Generate()
	e.next = e.factory.Generate()
	e.held = nil
	e.canHold = true
	e.score = 0
	e.level = 1
	e.lines = 0
	e.pieces = 0
	e.state = StatePlaying

	if !e.current.FitsWithin(e.board) {
		e.gameOver()
		return
	}
	e.timer.Start(e.dropInterval(false))
	e.logger.Debug("new game")
}

// ContinueGame restores the saved session and starts playing.
// It does nothing when no session is saved or the saved one is malformed.
func (e *Engine) ContinueGame() {
	rec, err := e.store.LoadSession()
	if err != nil {
		e.logger.Warn("cannot load session", "err", err)
		return
	}
	if rec == nil {
		return
	}

	st, err := rec.restore(e.cfg)
	if err != nil {
		e.logger.Warn("ignoring saved session", "err", err)
		return
	}

	e.board = st.board
	e.current = st.current
	e.next = st.next
	e.held = st.held
	e.canHold = st.canHold
	e.score = st.score
	e.level = st.level
	e.lines = st.lines
	e.pieces = st.pieces
	e.raiseHighScore()
	e.state = StatePlaying
	e.timer.Start(e.dropInterval(false))
	e.logger.Debug("session restored", "score", e.score, "level", e.level)
}

// Pause stops the timer and saves the session. Only valid while playing.
func (e *Engine) Pause() {
	if e.state != StatePlaying {
		return
	}
	e.timer.Stop()
	e.saveSession()
	e.state = StatePaused
}

// Resume restarts the timer. Only valid while paused.
func (e *Engine) Resume() {
	if e.state != StatePaused {
		return
	}
	e.state = StatePlaying
	e.timer.Start(e.dropInterval(false))
}

// TogglePause pauses while playing and resumes while paused.
func (e *Engine) TogglePause() {
	switch e.state {
	case StatePlaying:
		e.Pause()
	case StatePaused:
		e.Resume()
	}
}

// MoveLeft shifts the current piece one column left if it fits there.
func (e *Engine) MoveLeft() { e.shift(-1) }

// MoveRight shifts the current piece one column right if it fits there.
func (e *Engine) MoveRight() { e.shift(1) }

func (e *Engine) shift(dc int) {
	if e.state != StatePlaying {
		return
	}
	target := Position{Row: e.current.Position.Row, Column: e.current.Position.Column + dc}
	if e.current.FitsAt(e.board, target) {
		e.current.Position = target
	}
}

// Rotate turns the current piece clockwise if the result fits.
func (e *Engine) Rotate() {
	if e.state != StatePlaying {
		return
	}
	e.current.Rotate(e.board)
}

// Hold sets the current piece aside, once per piece. With an empty slot
// the next piece comes into play; otherwise the held piece is swapped in
// at the current piece's position.
func (e *Engine) Hold() {
	if e.state != StatePlaying || !e.canHold {
		return
	}

	if e.held == nil {
		e.held = e.current
		e.advance()
		e.canHold = false
		return
	}

	pos := e.current.Position
	if e.cfg.Rules.StrictHoldSwap && !e.held.FitsAt(e.board, pos) {
		return
	}
	incoming := e.held
	incoming.Position = pos
	e.held = e.current
	e.current = incoming
	e.canHold = false
}

// Drop moves the current piece down one row and arms the quick timer.
func (e *Engine) Drop() {
	if e.state != StatePlaying {
		return
	}
	e.step(true)
}

// Tick delivers a gravity timer callback. Callbacks for a cancelled timer
// generation are ignored.
func (e *Engine) Tick(generation uint64) {
	if e.state != StatePlaying || !e.timer.Running || generation != e.timer.Generation {
		return
	}
	e.step(false)
}

// Dispatch applies a platform action.
func (e *Engine) Dispatch(a core.Action) {
	switch a {
	case core.ActionMoveLeft:
		e.MoveLeft()
	case core.ActionMoveRight:
		e.MoveRight()
	case core.ActionRotate:
		e.Rotate()
	case core.ActionDrop:
		e.Drop()
	case core.ActionHold:
		e.Hold()
	case core.ActionPause:
		e.TogglePause()
	case core.ActionResume:
		e.Resume()
	case core.ActionNewGame:
		e.NewGame()
	case core.ActionContinue:
		e.ContinueGame()
	}
}

// step moves the piece down one row or locks it, then rearms the timer.
func (e *Engine) step(soft bool) {
	down := Position{Row: e.current.Position.Row + 1, Column: e.current.Position.Column}
	if e.current.FitsAt(e.board, down) {
		e.current.Position = down
	} else {
		e.lock()
	}

	if e.state == StatePlaying {
		e.timer.Start(e.dropInterval(soft))
	}
}

// lock commits the current piece, clears rows, scores, and brings in the
// next piece.
func (e *Engine) lock() {
	e.board.Lock(e.current)
	e.pieces++

	cleared := e.board.ClearFullRows()
	if cleared > 0 {
		e.lines += cleared
		e.score += e.lineScore(cleared)
		e.level = e.score/e.cfg.Scoring.PointsPerLevel + 1
		e.logger.Debug("line clear", "rows", cleared, "score", e.score, "level", e.level)
		e.raiseHighScore()
	}

	e.advance()
	e.canHold = true

	// Saved after the next piece is in play so a restore resumes there.
	// A game over has already cleared the session.
	if e.state == StatePlaying {
		e.saveSession()
	}
}

// raiseHighScore records the current score as the high score when it is
// higher.
func (e *Engine) raiseHighScore() {
	if e.score <= e.highScore {
		return
	}
	e.highScore = e.score
	if err := e.store.SaveHighScore(e.highScore); err != nil {
		e.logger.Warn("cannot save high score", "err", err)
	}
}

// lineScore returns the points for clearing n rows at once. Counts past
// the end of the table score as the last entry.
func (e *Engine) lineScore(n int) int {
	table := e.cfg.Scoring.LineScores
	if n >= len(table) {
		n = len(table) - 1
	}
	return table[n]
}

// advance brings the next piece into play and ends the game if it does not
// fit. Hold eligibility is left to the caller.
func (e *Engine) advance() {
	e.current = e.next
	e.next = e.factory.Generate()
	if !e.current.FitsWithin(e.board) {
		e.gameOver()
	}
}

// gameOver ends the run. A finished game cannot be continued, so the saved
// session is discarded.
func (e *Engine) gameOver() {
	e.state = StateGameOver
	e.timer.Stop()
	if err := e.store.ClearSession(); err != nil {
		e.logger.Warn("cannot clear session", "err", err)
	}
	e.logger.Debug("game over", "score", e.score, "lines", e.lines)
}

// dropInterval returns the gravity interval for the next step.
func (e *Engine) dropInterval(soft bool) time.Duration {
	if soft {
		return e.cfg.QuickDropInterval()
	}
	return e.cfg.StandardDropInterval() / time.Duration(e.level)
}

func (e *Engine) saveSession() {
	if err := e.store.SaveSession(e.record()); err != nil {
		e.logger.Warn("cannot save session", "err", err)
	}
}
