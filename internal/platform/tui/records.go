package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/games/sprint"
	"github.com/vovakirdan/blockfall/internal/storage"
)

const maxRecords = 100

// RecordsTab selects which runs the records table lists.
type RecordsTab int

const (
	TabBest RecordsTab = iota
	TabRecent
)

func (t RecordsTab) String() string {
	if t == TabRecent {
		return "Recent"
	}
	return "Best"
}

// RecordsKeyMap defines the key bindings for the records screen.
type RecordsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.Quit},
	}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "best/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordsModel is the Bubble Tea model for the records screen.
type RecordsModel struct {
	gameID   string
	title    string
	store    *storage.Store
	tab      RecordsTab
	runs     []storage.Run
	stats    *storage.GameStats
	err      error
	table    table.Model
	help     help.Model
	keys     RecordsKeyMap
	width    int
	height   int
	quitting bool
}

// NewRecordsModel creates a records screen for one game.
func NewRecordsModel(store *storage.Store, gameID, title string, width, height int) RecordsModel {
	h := help.New()
	h.ShowAll = false

	m := RecordsModel{
		gameID: gameID,
		title:  title,
		store:  store,
		keys:   DefaultRecordsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Time", Width: 9},
		{Title: "PPS", Width: 6},
		{Title: "KPP", Width: 6},
		{Title: "Pieces", Width: 7},
		{Title: "Holds", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 13},
	}

	height := m.height - 9
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// load reads the runs for the current tab.
func (m *RecordsModel) load() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.store != nil {
		if m.tab == TabRecent {
			m.runs, m.err = m.store.RecentRuns(m.gameID, maxRecords)
		} else {
			m.runs, m.err = m.store.BestRuns(m.gameID, maxRecords)
		}
		if m.err == nil {
			m.stats, m.err = m.store.GetGameStats(m.gameID)
		}
	}
	m.table.SetRows(RecordRows(m.runs))
	m.table.GotoTop()
}

// RecordRows formats runs as table rows, ranked in the given order.
func RecordRows(runs []storage.Run) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			sprint.FormatTime(r.ElapsedMs),
			fmt.Sprintf("%.2f", r.PPS()),
			fmt.Sprintf("%.2f", r.KPP()),
			fmt.Sprintf("%d", r.Pieces),
			fmt.Sprintf("%d", r.Holds),
			player,
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// RunDetail formats every stored field of one run, one per line.
func RunDetail(r storage.Run) string {
	player := r.Player
	if player == "" {
		player = "-"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Run     %s\n", r.RunID)
	fmt.Fprintf(&b, "Game    %s\n", r.GameID)
	fmt.Fprintf(&b, "Player  %s\n", player)
	fmt.Fprintf(&b, "Time    %s\n", sprint.FormatTime(r.ElapsedMs))
	fmt.Fprintf(&b, "Lines   %d\n", r.Lines)
	fmt.Fprintf(&b, "Pieces  %d (%.2f PPS)\n", r.Pieces, r.PPS())
	fmt.Fprintf(&b, "Inputs  %d (%.2f KPP)\n", r.Inputs, r.KPP())
	fmt.Fprintf(&b, "Holds   %d\n", r.Holds)
	fmt.Fprintf(&b, "Date    %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return b.String()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % 2
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(RecordRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records screen.
func (m RecordsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("RECORDS - %s", m.title), m.width)))
	b.WriteString("\n\n")

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, 2)
	for i, t := range []RecordsTab{TabBest, TabRecent} {
		if t == m.tab {
			tabs[i] = activeTabStyle.Render(t.String())
		} else {
			tabs[i] = tabStyle.Render(t.String())
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	statsStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	b.WriteString(statsStyle.Render(StatsLine(m.stats)))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or a placeholder.
func (m RecordsModel) renderTableContent() string {
	placeholder := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return placeholder.Render("Could not load records:\n" + m.err.Error())
	}
	if len(m.runs) == 0 {
		return placeholder.Render("No runs recorded yet.\nClear 40 lines to set a time!")
	}
	return m.table.View()
}

// StatsLine summarizes aggregate stats for a game.
func StatsLine(s *storage.GameStats) string {
	if s == nil || s.RunsCount == 0 {
		return "No runs"
	}
	return fmt.Sprintf("Runs %d  Best %s  Avg %s  Pieces %d  Last %s",
		s.RunsCount,
		sprint.FormatTime(s.BestMs),
		sprint.FormatTime(int64(s.AvgMs)),
		s.TotalPieces,
		s.LastPlayed.Local().Format("Jan 02 15:04"),
	)
}

// RunRecords runs the records screen.
func RunRecords(store *storage.Store, gameID, title string, width, height int) error {
	p := tea.NewProgram(
		NewRecordsModel(store, gameID, title, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
