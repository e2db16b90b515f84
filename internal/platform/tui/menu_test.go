package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/soliskit/tetris/internal/core"
	"github.com/soliskit/tetris/internal/storage"
)

func menuUpdate(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, expected MenuModel", next)
	}
	return mm, cmd
}

func TestMenuWithoutSession(t *testing.T) {
	m := NewMenuModel(testEnv(t), testRuntime)

	if !m.items[1].Disabled {
		t.Error("Continue should be disabled without a saved session")
	}
	if !m.items[2].Disabled {
		t.Error("High Scores should be disabled without a database")
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}

	// Down skips the disabled entries.
	m, _ = menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.items[m.cursor].Choice != ChoiceQuit {
		t.Errorf("cursor on %v, expected Quit", m.items[m.cursor].Choice)
	}

	// Shortcuts for disabled entries do nothing.
	m, cmd := menuUpdate(t, m, runeKey("c"))
	if m.Selected() != ChoiceNone || cmd != nil {
		t.Error("continue should be ignored without a session")
	}
}

func TestMenuWithSession(t *testing.T) {
	env := testEnv(t)
	game := newTestGame(t, env, core.ActionNewGame)
	game.Engine().Pause()

	m := NewMenuModel(env, testRuntime)
	if m.items[1].Disabled {
		t.Fatal("Continue should be enabled with a saved session")
	}
	if m.items[m.cursor].Choice != ChoiceContinue {
		t.Errorf("cursor on %v, expected Continue", m.items[m.cursor].Choice)
	}

	m, cmd := menuUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != ChoiceContinue {
		t.Errorf("Selected() = %v, expected Continue", m.Selected())
	}
	if cmd == nil {
		t.Error("a selection should end the menu program")
	}
}

func TestMenuShowsHighScore(t *testing.T) {
	env := testEnv(t)
	if err := env.SessionStore().SaveHighScore(1234); err != nil {
		t.Fatalf("SaveHighScore failed: %v", err)
	}

	m := NewMenuModel(env, testRuntime)
	view := m.View()
	if !strings.Contains(view, "T E T R I S") {
		t.Error("View should contain the title")
	}
	if !strings.Contains(view, "Best: 1234") {
		t.Error("View should show the stored high score")
	}
}

func TestMenuQuit(t *testing.T) {
	m := NewMenuModel(testEnv(t), testRuntime)
	m, cmd := menuUpdate(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q should quit the menu")
	}
	if m.View() != "" {
		t.Error("View should be empty while quitting")
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(testEnv(t), testRuntime)
	m, _ = menuUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cfg := m.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("Config() = %+v, expected 100x40", cfg)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, expected %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q, expected unchanged text", got)
	}
}

func TestSessionModelFlow(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer store.Close()

	env := testEnv(t)
	env.KV = nil
	env.Store = store
	env.Player = "bob"

	var model tea.Model = NewSessionModel(env, testRuntime)
	step := func(msg tea.Msg) tea.Cmd {
		t.Helper()
		var cmd tea.Cmd
		model, cmd = model.Update(msg)
		return cmd
	}
	screen := func() sessionScreen { return model.(SessionModel).screen }

	if model.(SessionModel).ID() == "" {
		t.Fatal("session should have an ID")
	}

	if cmd := step(runeKey("n")); cmd == nil {
		t.Error("starting a game should schedule gravity")
	}
	if screen() != screenGame {
		t.Fatalf("screen = %v, expected game", screen())
	}
	if !strings.Contains(model.View(), "TETRIS") {
		t.Error("game view should be shown")
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if screen() != screenMenu {
		t.Fatalf("screen = %v, expected menu", screen())
	}
	menu := model.(SessionModel).menu
	if menu.items[1].Disabled {
		t.Error("leaving a game should leave a session to continue")
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if screen() != screenScoreboard {
		t.Fatalf("screen = %v, expected scoreboard", screen())
	}

	step(tea.KeyMsg{Type: tea.KeyEsc})
	if screen() != screenMenu {
		t.Fatalf("screen = %v, expected menu", screen())
	}

	if cmd := step(runeKey("q")); cmd == nil {
		t.Error("quitting should end the program")
	}
	if model.View() != "" {
		t.Error("View should be empty after quitting")
	}
}
