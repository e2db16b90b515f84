package desktop

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soliskit/tetris/internal/config"
	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/games/tetris"
	"github.com/soliskit/tetris/internal/storage"
)

func pressed(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := make(map[ebiten.Key]bool)
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func newTestGame(t *testing.T, kv tetris.KV) *Game {
	t.Helper()
	engine, err := tetris.New(config.DefaultTetrisConfig(),
		tetris.WithStore(tetris.NewKVSessionStore(kv, "")),
		tetris.WithSeed(42),
	)
	require.NoError(t, err)
	g := NewGame(engine, Options{})
	g.justPressed = pressed()
	return g
}

func TestPressedActions(t *testing.T) {
	assert.Empty(t, pressedActions(pressed()))
	assert.Equal(t, []core.Action{core.ActionMoveLeft}, pressedActions(pressed(ebiten.KeyArrowLeft, ebiten.KeyA)))
	assert.Equal(t,
		[]core.Action{core.ActionRotate, core.ActionHold},
		pressedActions(pressed(ebiten.KeySpace, ebiten.KeyW)))
	assert.Equal(t, []core.Action{core.ActionQuit}, pressedActions(pressed(ebiten.KeyEscape)))
}

func TestUpdateDispatchesKeys(t *testing.T) {
	g := newTestGame(t, storage.NewMemory())
	require.Equal(t, tetris.StateGameOver, g.engine.State())

	g.justPressed = pressed(ebiten.KeyN)
	require.NoError(t, g.Update())
	assert.Equal(t, tetris.StatePlaying, g.engine.State())
	assert.NotEmpty(t, g.runID)

	g.justPressed = pressed(ebiten.KeyP)
	require.NoError(t, g.Update())
	assert.Equal(t, tetris.StatePaused, g.engine.State())
}

func TestUpdateAdvancesGravity(t *testing.T) {
	g := newTestGame(t, storage.NewMemory())
	g.engine.NewGame()
	row := g.engine.Snapshot().Current.Position.Row

	interval := g.engine.Timer().Interval
	frames := int(interval/g.frame) + 1
	for i := 0; i < frames; i++ {
		require.NoError(t, g.Update())
	}

	assert.Equal(t, row+1, g.engine.Snapshot().Current.Position.Row)
}

func TestQuitPausesAndTerminates(t *testing.T) {
	kv := storage.NewMemory()
	g := newTestGame(t, kv)
	g.engine.NewGame()

	g.justPressed = pressed(ebiten.KeyQ)
	assert.ErrorIs(t, g.Update(), ebiten.Termination)
	assert.Equal(t, tetris.StatePaused, g.engine.State())

	rec, err := tetris.NewKVSessionStore(kv, "").LoadSession()
	require.NoError(t, err)
	assert.NotNil(t, rec)
}

func TestSize(t *testing.T) {
	g := newTestGame(t, storage.NewMemory())
	w, h := g.Layout(0, 0)

	assert.Equal(t, margin+10*defaultCellSize+margin+hudWidth, w)
	assert.Equal(t, margin+20*defaultCellSize+margin, h)
	assert.Equal(t, time.Second/60, g.frame)
}

func TestCellSizeClamped(t *testing.T) {
	engine, err := tetris.New(config.DefaultTetrisConfig())
	require.NoError(t, err)

	assert.Equal(t, defaultCellSize, NewGame(engine, Options{}).opts.CellSize)
	assert.Equal(t, maxCellSize, NewGame(engine, Options{CellSize: 500}).opts.CellSize)
	assert.Equal(t, minCellSize, NewGame(engine, Options{CellSize: 2}).opts.CellSize)
}
