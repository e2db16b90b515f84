package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/soliskit/tetris/internal/storage"
)

const (
	minWidthForSidebar = 90
	sidebarWidth       = 24
	maxScores          = 100
	dateLayout         = "Jan 02 15:04"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
)

// scoreScope selects whose games the scoreboard lists.
type scoreScope int

const (
	scopeAll scoreScope = iota
	scopeMine
)

func (s scoreScope) label(player string) string {
	if s == scopeMine {
		return "HIGH SCORES - " + strings.ToUpper(player)
	}
	return "HIGH SCORES"
}

// ScoreboardKeyMap is the scoreboard's key bindings.
type ScoreboardKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Filter}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Filter: key.NewBinding(key.WithKeys("tab", "m"), key.WithHelp("tab", "mine/all")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists the finished-game history, either for everyone or
// for the current player.
type ScoreboardModel struct {
	store  *storage.Store
	player string
	scope  scoreScope

	scores []storage.ScoreEntry
	stats  *storage.Stats
	err    error

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing every player's games.
// A nil store shows an empty board.
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		player: player,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.keys.Filter.SetEnabled(player != "")
	m.table = newScoreTable(height)
	m.reload()
	return m
}

func newScoreTable(height int) table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 5},
			{Title: "Player", Width: 12},
			{Title: "Score", Width: 8},
			{Title: "Level", Width: 5},
			{Title: "Lines", Width: 5},
			{Title: "Date", Width: 12},
		}),
		table.WithFocused(true),
		// title, borders and help
		table.WithHeight(max(3, height-8)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// filter returns the player to query for, "" meaning everyone.
func (m ScoreboardModel) filter() string {
	if m.scope == scopeMine {
		return m.player
	}
	return ""
}

// reload queries the store for the current scope and refills the table.
func (m *ScoreboardModel) reload() {
	m.scores, m.stats, m.err = nil, nil, nil
	if m.store != nil {
		m.scores, m.err = m.store.PlayerScores(m.filter(), maxScores)
		if m.err == nil {
			m.stats, m.err = m.store.PlayerStats(m.filter())
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, e := range m.scores {
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			e.Player,
			strconv.Itoa(e.Score),
			strconv.Itoa(e.Level),
			strconv.Itoa(e.Lines),
			e.CreatedAt.Format(dateLayout),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Filter):
			if m.scope == scopeAll {
				m.scope = scopeMine
			} else {
				m.scope = scopeAll
			}
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(3, m.height-8))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := titleStyle.MarginBottom(1).Render(centerText(m.scope.label(m.player), m.width))

	body := panelStyle.Render(m.tableView())
	if m.width >= minWidthForSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(), "  ", body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		body,
		helpStyle.Render(m.help.View(m.keys)),
	)
}

func (m ScoreboardModel) sidebarView() string {
	var s strings.Builder
	s.WriteString("Stats\n")
	s.WriteString(strings.Repeat("-", sidebarWidth-4) + "\n")

	if m.stats == nil || m.stats.GamesCount == 0 {
		s.WriteString(disabledStyle.Render("no games yet"))
	} else {
		fmt.Fprintf(&s, "Games  %d\n", m.stats.GamesCount)
		fmt.Fprintf(&s, "Best   %d\n", m.stats.HighScore)
		fmt.Fprintf(&s, "Avg    %.0f\n", m.stats.AvgScore)
		fmt.Fprintf(&s, "Lines  %d", m.stats.TotalLines)
		if !m.stats.LastPlayed.IsZero() {
			fmt.Fprintf(&s, "\nLast   %s", m.stats.LastPlayed.Format(dateLayout))
		}
	}
	return panelStyle.Width(sidebarWidth).Render(s.String())
}

func (m ScoreboardModel) tableView() string {
	switch {
	case m.err != nil:
		return emptyStyle.Render("Scores unavailable:\n" + m.err.Error())
	case len(m.scores) == 0 && m.scope == scopeMine:
		return emptyStyle.Render("You have no finished games yet.")
	case len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nFinish a game to set a high score!")
	}
	return m.table.View()
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard shows the scoreboard in its own program and reports
// whether the user went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, player string, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, player, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
