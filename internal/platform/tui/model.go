package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/games/tetris"
	"github.com/soliskit/tetris/internal/storage"
)

const helpHeight = 1

var (
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// GameModel is the Bubble Tea model for the game screen.
type GameModel struct {
	env    Env
	engine *tetris.Engine
	screen *core.Screen
	keys   *KeyMapper
	help   help.Model

	runID      string
	lastState  tetris.State
	scoreSaved bool
	status     string

	embedded   bool // inside a SessionModel; back returns to its menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the game screen and applies the start action
// (ActionNewGame, ActionContinue or ActionNone).
func NewGameModel(env Env, engine *tetris.Engine, cfg core.RuntimeConfig, start core.Action) GameModel {
	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		env:       env,
		engine:    engine,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH-helpHeight),
		keys:      NewKeyMapper(),
		help:      h,
		lastState: engine.State(),
	}
	m.dispatch(start)
	return m
}

// Init starts the gravity timer loop.
func (m GameModel) Init() tea.Cmd {
	return gravityCmd(m.engine)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height-helpHeight)
		m.help.Width = msg.Width
		return m, nil

	case GravityMsg:
		if msg.engine != m.engine {
			return m, nil
		}
		if msg.Generation != m.engine.Timer().Generation {
			return m, nil // stale; the restarted timer has its own chain
		}
		m.engine.Tick(msg.Generation)
		m.recordGameOver()
		// tea.Tick fires once, so a live timer needs its next tick
		// whether or not the step restarted it.
		return m, gravityCmd(m.engine)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		// Pausing saves the session so it can be continued later.
		m.engine.Pause()
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		m.engine.Pause()
		m.backToMenu = true
		if m.embedded {
			return m, nil
		}
		return m, tea.Quit
	}

	gen := m.engine.Timer().Generation
	m.status = ""
	m.dispatch(action)
	return m.afterEngine(gen)
}

// dispatch applies an action and starts a new run when a game begins.
func (m *GameModel) dispatch(action core.Action) {
	if action == core.ActionNone {
		return
	}
	m.engine.Dispatch(action)

	if (action == core.ActionNewGame || action == core.ActionContinue) &&
		m.engine.State() == tetris.StatePlaying {
		m.runID = uuid.NewString()
		m.scoreSaved = false
		m.lastState = tetris.StatePlaying
		m.env.logger().Info("run started", "run", m.runID, "player", m.env.PlayerName(), "action", action)
	}
	m.recordGameOver()
}

// afterEngine records a finished game and schedules the next gravity tick
// when the engine restarted its timer.
func (m GameModel) afterEngine(prevGen uint64) (tea.Model, tea.Cmd) {
	m.recordGameOver()

	t := m.engine.Timer()
	if t.Running && t.Generation != prevGen {
		return m, gravityCmd(m.engine)
	}
	return m, nil
}

// recordGameOver saves the score once when a run ends.
func (m *GameModel) recordGameOver() {
	state := m.engine.State()
	defer func() { m.lastState = state }()

	if state != tetris.StateGameOver || m.lastState == tetris.StateGameOver || m.scoreSaved {
		return
	}
	m.scoreSaved = true

	snap := m.engine.Snapshot()
	m.env.logger().Info("run finished", "run", m.runID, "score", snap.Score, "lines", snap.Lines)
	if snap.Score == 0 || m.env.Store == nil {
		return
	}

	_, err := m.env.Store.SaveScore(storage.ScoreEntry{
		RunID:  m.runID,
		Player: m.env.PlayerName(),
		Score:  snap.Score,
		Level:  snap.Level,
		Lines:  snap.Lines,
	})
	if err != nil {
		m.env.logger().Warn("cannot save score", "err", err)
	}
}

// saveScreenshot writes the current screen as text and the board as PNG.
func (m *GameModel) saveScreenshot() {
	dir := m.env.ScreenshotDir
	if dir == "" {
		m.status = "screenshots disabled"
		return
	}

	m.engine.Render(m.screen)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.status = fmt.Sprintf("screenshot failed: %v", err)
		return
	}

	base := filepath.Join(dir, "tetris_"+time.Now().Format("20060102_150405"))
	if err := os.WriteFile(base+".txt", []byte(m.screen.String()), 0o600); err != nil {
		m.status = fmt.Sprintf("screenshot failed: %v", err)
		return
	}

	f, err := os.Create(base + ".png")
	if err != nil {
		m.status = fmt.Sprintf("screenshot failed: %v", err)
		return
	}
	defer f.Close()
	if err := tetris.WritePNG(f, m.engine.Snapshot(), 16); err != nil {
		m.status = fmt.Sprintf("screenshot failed: %v", err)
		return
	}
	m.status = "saved " + base + ".{txt,png}"
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.engine.Render(m.screen)

	footer := helpStyle.Render(m.help.View(m.keys.Keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Engine returns the engine driven by this model.
func (m GameModel) Engine() *tetris.Engine {
	return m.engine
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in its own Bubble Tea program.
func Run(env Env, cfg core.RuntimeConfig, start core.Action) error {
	engine, err := env.NewEngine()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		NewGameModel(env, engine, cfg, start),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
