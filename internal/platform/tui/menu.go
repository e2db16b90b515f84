package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/soliskit/tetris/internal/core"
)

// MenuChoice is an entry on the title menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoiceNewGame
	ChoiceContinue
	ChoiceScoreboard
	ChoiceQuit
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Choice   MenuChoice
	Title    string
	Disabled bool
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	highScore int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  MenuChoice
}

// NewMenuModel creates a new menu model. Continue is disabled when the
// player has no saved session.
func NewMenuModel(env Env, cfg core.RuntimeConfig) MenuModel {
	sessions := env.SessionStore()

	hasSession := false
	if rec, err := sessions.LoadSession(); err == nil && rec != nil {
		hasSession = rec.Validate(env.Config) == nil
	}
	high, err := sessions.LoadHighScore()
	if err != nil {
		env.logger().Warn("cannot load high score", "err", err)
	}

	items := []MenuItem{
		{Choice: ChoiceNewGame, Title: "New Game"},
		{Choice: ChoiceContinue, Title: "Continue", Disabled: !hasSession},
		{Choice: ChoiceScoreboard, Title: "High Scores", Disabled: env.Store == nil},
		{Choice: ChoiceQuit, Title: "Quit"},
	}

	cursor := 0
	if hasSession {
		cursor = 1
	}

	return MenuModel{
		items:     items,
		cursor:    cursor,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		highScore: high,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.moveCursor(-1)

	case MenuActionDown:
		m.moveCursor(1)

	case MenuActionSelect:
		return m.choose(m.items[m.cursor])

	case MenuActionNewGame:
		return m.choose(m.items[0])

	case MenuActionContinue:
		return m.choose(m.items[1])

	case MenuActionScoreboard:
		return m.choose(m.items[2])
	}

	return m, nil
}

// moveCursor steps over disabled items.
func (m *MenuModel) moveCursor(delta int) {
	for i := m.cursor + delta; i >= 0 && i < len(m.items); i += delta {
		if !m.items[i].Disabled {
			m.cursor = i
			return
		}
	}
}

func (m MenuModel) choose(item MenuItem) (tea.Model, tea.Cmd) {
	if item.Disabled {
		return m, nil
	}
	if item.Choice == ChoiceQuit {
		m.quitting = true
		return m, tea.Quit
	}
	m.selected = item.Choice
	return m, tea.Quit // Exit menu to start the selection
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(strings.Repeat("\n", core.Max(1, (m.height-14)/2)))
	b.WriteString(titleStyle.Render(centerText("T E T R I S", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", m.highScore), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := centerText(cursor+item.Title, m.width)
		switch {
		case item.Disabled:
			b.WriteString(disabledStyle.Render(line))
		case i == m.cursor:
			b.WriteString(selectedStyle.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  N/C: New/Continue  |  Tab: Scores  |  Q: Quit"
	b.WriteString(helpStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen entry, or ChoiceNone.
func (m MenuModel) Selected() MenuChoice {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(env Env, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(env, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}

	return MenuResult{Choice: m.Selected(), Config: m.Config()}, nil
}
