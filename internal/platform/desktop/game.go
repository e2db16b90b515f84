// Package desktop runs the game in an Ebitengine window using the pixel
// renderer colors.
package desktop

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/games/tetris"
	"github.com/soliskit/tetris/internal/storage"
)

const (
	defaultCellSize = 24
	minCellSize     = 8
	maxCellSize     = 64
	margin          = 16
	hudWidth        = 160
	previewCells    = 4
)

var (
	gridColor    = color.RGBA{R: 0x2a, G: 0x2a, B: 0x36, A: 0xff}
	borderColor  = color.RGBA{R: 0x80, G: 0x80, B: 0x90, A: 0xff}
	overlayColor = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xa0}
)

// keyBindings maps window keys to engine actions.
var keyBindings = []struct {
	key    ebiten.Key
	action core.Action
}{
	{ebiten.KeyArrowLeft, core.ActionMoveLeft},
	{ebiten.KeyA, core.ActionMoveLeft},
	{ebiten.KeyArrowRight, core.ActionMoveRight},
	{ebiten.KeyD, core.ActionMoveRight},
	{ebiten.KeyArrowUp, core.ActionRotate},
	{ebiten.KeyW, core.ActionRotate},
	{ebiten.KeyArrowDown, core.ActionDrop},
	{ebiten.KeyS, core.ActionDrop},
	{ebiten.KeySpace, core.ActionHold},
	{ebiten.KeyZ, core.ActionHold},
	{ebiten.KeyP, core.ActionPause},
	{ebiten.KeyN, core.ActionNewGame},
	{ebiten.KeyC, core.ActionContinue},
	{ebiten.KeyEscape, core.ActionQuit},
	{ebiten.KeyQ, core.ActionQuit},
}

// pressedActions returns the actions whose keys were just pressed, in
// binding order without duplicates.
func pressedActions(justPressed func(ebiten.Key) bool) []core.Action {
	var actions []core.Action
	seen := make(map[core.Action]bool)
	for _, b := range keyBindings {
		if seen[b.action] || !justPressed(b.key) {
			continue
		}
		seen[b.action] = true
		actions = append(actions, b.action)
	}
	return actions
}

// Options configures a desktop game.
type Options struct {
	// CellSize is the side of one board cell in pixels.
	CellSize int

	// Store records finished games. Nil disables score history.
	Store *storage.Store

	// Player is recorded on score rows.
	Player string

	Logger *log.Logger
}

// Game implements ebiten.Game around an engine. Gravity is driven by a
// tetris.Clock advanced one frame per Update.
type Game struct {
	engine   *tetris.Engine
	clock    tetris.Clock
	opts     Options
	logger   *log.Logger
	runID    string
	recorded bool

	// justPressed reports key presses for this frame.
	justPressed func(ebiten.Key) bool
	// frame is the time advanced per Update.
	frame time.Duration
}

// NewGame wraps engine. The engine's current state is kept, so callers
// start a game or continue a session before running.
func NewGame(engine *tetris.Engine, opts Options) *Game {
	if opts.CellSize <= 0 {
		opts.CellSize = defaultCellSize
	}
	opts.CellSize = core.Clamp(opts.CellSize, minCellSize, maxCellSize)
	if opts.Player == "" {
		opts.Player = "local"
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		engine:      engine,
		opts:        opts,
		logger:      logger,
		justPressed: inpututil.IsKeyJustPressed,
		frame:       time.Second / time.Duration(ebiten.DefaultTPS),
	}
	if engine.State() == tetris.StatePlaying {
		g.startRun()
	}
	return g
}

func (g *Game) startRun() {
	g.runID = uuid.NewString()
	g.recorded = false
	g.logger.Info("run started", "run", g.runID, "player", g.opts.Player)
}

// Update applies this frame's input and advances gravity.
func (g *Game) Update() error {
	for _, action := range pressedActions(g.justPressed) {
		if action == core.ActionQuit {
			// Pausing saves the session for a later continue.
			g.engine.Pause()
			return ebiten.Termination
		}

		g.engine.Dispatch(action)
		if (action == core.ActionNewGame || action == core.ActionContinue) &&
			g.engine.State() == tetris.StatePlaying {
			g.startRun()
		}
	}

	g.clock.Advance(g.engine, g.frame)
	g.recordGameOver()
	return nil
}

// recordGameOver saves the finished run once.
func (g *Game) recordGameOver() {
	if g.engine.State() != tetris.StateGameOver || g.runID == "" || g.recorded {
		return
	}
	g.recorded = true

	snap := g.engine.Snapshot()
	g.logger.Info("run finished", "run", g.runID, "score", snap.Score, "lines", snap.Lines)
	if snap.Score == 0 || g.opts.Store == nil {
		return
	}
	_, err := g.opts.Store.SaveScore(storage.ScoreEntry{
		RunID:  g.runID,
		Player: g.opts.Player,
		Score:  snap.Score,
		Level:  snap.Level,
		Lines:  snap.Lines,
	})
	if err != nil {
		g.logger.Warn("cannot save score", "err", err)
	}
}

// Draw renders the board, the HUD and any state overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(tetris.Background)
	snap := g.engine.Snapshot()
	cs := float32(g.opts.CellSize)

	bx, by := float32(margin), float32(margin)
	bw, bh := cs*float32(snap.Cols()), cs*float32(snap.Rows())

	for r, row := range snap.Composite() {
		for c, cell := range row {
			x, y := bx+float32(c)*cs, by+float32(r)*cs
			if cell.Filled {
				vector.DrawFilledRect(screen, x, y, cs-1, cs-1, tetris.RGBA(cell.Color), false)
			} else {
				vector.StrokeRect(screen, x, y, cs, cs, 1, gridColor, false)
			}
		}
	}
	vector.StrokeRect(screen, bx-1, by-1, bw+2, bh+2, 2, borderColor, false)

	hx := int(bx+bw) + margin
	hy := margin
	ebitenutil.DebugPrintAt(screen, "TETRIS", hx, hy)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score %d", snap.Score), hx, hy+24)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Level %d", snap.Level), hx, hy+40)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Lines %d", snap.Lines), hx, hy+56)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Best  %d", snap.HighScore), hx, hy+72)

	preview := cs / 2
	ebitenutil.DebugPrintAt(screen, "Next", hx, hy+100)
	drawPreview(screen, snap.Next, float32(hx), float32(hy+118), preview)
	holdY := hy + 118 + int(preview)*previewCells + 12
	ebitenutil.DebugPrintAt(screen, "Hold", hx, holdY)
	drawPreview(screen, snap.Held, float32(hx), float32(holdY+18), preview)

	switch snap.State {
	case tetris.StatePaused:
		g.drawOverlay(screen, bx, by, bw, bh, "PAUSED", "P to resume")
	case tetris.StateGameOver:
		g.drawOverlay(screen, bx, by, bw, bh, "GAME OVER", "N new  C continue")
	}
}

func (g *Game) drawOverlay(screen *ebiten.Image, x, y, w, h float32, title, hint string) {
	vector.DrawFilledRect(screen, x, y, w, h, overlayColor, false)
	cx, cy := int(x+w/2), int(y+h/2)
	// The debug font is 6 pixels wide.
	ebitenutil.DebugPrintAt(screen, title, cx-len(title)*3, cy-16)
	ebitenutil.DebugPrintAt(screen, hint, cx-len(hint)*3, cy+4)
}

func drawPreview(screen *ebiten.Image, p *tetris.Piece, x, y, size float32) {
	if p == nil {
		return
	}
	for r, row := range p.Shape {
		for c, v := range row {
			if v == 0 {
				continue
			}
			vector.DrawFilledRect(screen, x+float32(c)*size, y+float32(r)*size, size-1, size-1, tetris.RGBA(p.Color), false)
		}
	}
}

// Layout returns a fixed logical size fitting the board and HUD.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.Size()
}

// Size returns the logical screen size in pixels.
func (g *Game) Size() (int, int) {
	cfg := g.engine.Config()
	w := margin + cfg.Board.Columns*g.opts.CellSize + margin + hudWidth
	h := margin + cfg.Board.Rows*g.opts.CellSize + margin
	return w, h
}

// Run opens a window and plays until it is closed or the player quits.
func Run(engine *tetris.Engine, opts Options) error {
	g := NewGame(engine, opts)
	w, h := g.Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Tetris")

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return fmt.Errorf("desktop: %w", err)
	}
	// Closing the window skips Update, so save the session here too.
	engine.Pause()
	return nil
}
