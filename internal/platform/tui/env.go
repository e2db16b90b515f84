package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/soliskit/tetris/internal/config"
	"github.com/soliskit/tetris/internal/games/tetris"
	"github.com/soliskit/tetris/internal/storage"
)

// Env holds what every screen of a player's session needs.
type Env struct {
	Config config.TetrisConfig

	// Store records finished games. Nil disables score history.
	Store *storage.Store

	// KV backs the saved session and high score. It is usually Store,
	// or an in-memory store when the database is unavailable.
	KV tetris.KV

	// Player names score rows and namespaces the saved session.
	// Empty for the local player.
	Player string

	// Seed for piece generation. Zero is time based.
	Seed int64

	// ScreenshotDir is where ctrl+s writes. Empty disables screenshots.
	ScreenshotDir string

	Logger *log.Logger
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return log.New(io.Discard)
	}
	return e.Logger
}

func (e Env) kv() tetris.KV {
	if e.KV != nil {
		return e.KV
	}
	if e.Store != nil {
		return e.Store
	}
	return storage.NewMemory()
}

// SessionStore returns the player's saved-session store.
func (e Env) SessionStore() *tetris.KVSessionStore {
	return tetris.NewKVSessionStore(e.kv(), e.Player)
}

// NewEngine builds an engine bound to the player's session store.
func (e Env) NewEngine() (*tetris.Engine, error) {
	logger := e.logger()
	if e.Player != "" {
		logger = logger.With("player", e.Player)
	}
	return tetris.New(e.Config,
		tetris.WithStore(e.SessionStore()),
		tetris.WithLogger(logger),
		tetris.WithSeed(e.Seed),
	)
}

// PlayerName returns the name recorded on score rows, "local" when no
// player is set.
func (e Env) PlayerName() string {
	if e.Player == "" {
		return "local"
	}
	return e.Player
}
