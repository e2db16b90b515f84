package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/soliskit/tetris/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionMoveLeft, false},
		{"a", runeKey("a"), core.ActionMoveLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionMoveRight, false},
		{"d", runeKey("d"), core.ActionMoveRight, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDrop, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionHold, false},
		{"z", runeKey("z"), core.ActionHold, false},
		{"p", runeKey("p"), core.ActionPause, false},
		{"n", runeKey("n"), core.ActionNewGame, false},
		{"c", runeKey("c"), core.ActionContinue, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("y"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("MapKey(%q) action = %v, expected %v", tt.msg.String(), action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tt.msg.String(), quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg    tea.KeyMsg
		action MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("n"), MenuActionNewGame},
		{runeKey("c"), MenuActionContinue},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.action {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.action)
		}
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp should not be empty")
	}
	for i, group := range km.FullHelp() {
		if len(group) == 0 {
			t.Errorf("FullHelp group %d is empty", i)
		}
	}
}
