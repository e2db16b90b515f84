// Package tui provides the Bubble Tea front end: the title menu, the game
// screen, the scoreboard and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/soliskit/tetris/internal/games/tetris"
)

// GravityMsg delivers a gravity tick to the engine that scheduled it.
type GravityMsg struct {
	Generation uint64
	engine     *tetris.Engine
}

// gravityCmd schedules the engine's next gravity tick. It returns nil when
// the timer is stopped.
func gravityCmd(e *tetris.Engine) tea.Cmd {
	t := e.Timer()
	if !t.Running {
		return nil
	}
	return tea.Tick(t.Interval, func(time.Time) tea.Msg {
		return GravityMsg{Generation: t.Generation, engine: e}
	})
}
