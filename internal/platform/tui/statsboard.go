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

	"github.com/vovakirdan/tui-craft/internal/registry"
	"github.com/vovakirdan/tui-craft/internal/storage"
)

const (
	maxSessions = 100 // Max sessions to load per tab
	dateLayout  = "Jan 02 15:04"
)

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// StatsKeyMap defines the key bindings for the stats board.
type StatsKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Next, k.Prev, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("up/down", "scroll")),
		Next:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev tab")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc/b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardTab is one page of the stats board. An empty mode covers every mode.
type boardTab struct {
	mode  string
	title string
}

// StatsboardModel is the Bubble Tea model for the session stats screen.
type StatsboardModel struct {
	tabs      []boardTab
	tab       int
	store     *storage.Store
	sessions  []storage.SessionRecord
	totals    storage.ModeStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewStatsboardModel creates a stats board with an "All" tab followed by
// one tab per registered mode.
func NewStatsboardModel(store *storage.Store, width, height int) StatsboardModel {
	tabs := []boardTab{{title: "All"}}
	for _, mi := range registry.List() {
		tabs = append(tabs, boardTab{mode: mi.ID, title: mi.Title})
	}

	m := StatsboardModel{
		tabs:   tabs,
		store:  store,
		help:   help.New(),
		keys:   DefaultStatsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.load()
	return m
}

// columns sizes the table to the terminal. The seed column absorbs the slack.
func (m StatsboardModel) columns() []table.Column {
	cols := []table.Column{
		{Title: "Mode", Width: 10},
		{Title: "Seed", Width: 20},
		{Title: "Ticks", Width: 7},
		{Title: "Dug", Width: 5},
		{Title: "Built", Width: 5},
		{Title: "Picked", Width: 6},
		{Title: "Date", Width: len(dateLayout)},
	}
	if m.currentTab().mode != "" {
		cols = cols[1:]
	}

	used := 0
	for _, c := range cols {
		used += c.Width + 2 // Cell padding
	}
	if spare := m.width - 6 - used; spare < 0 {
		for i := range cols {
			if cols[i].Title == "Seed" {
				cols[i].Width = max(cols[i].Width+spare, 6)
			}
		}
	}
	return cols
}

func (m StatsboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)), // Title, tabs, totals, help and borders
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

func (m StatsboardModel) currentTab() boardTab {
	return m.tabs[m.tab]
}

// load reads the sessions and totals of the current tab.
func (m *StatsboardModel) load() {
	m.sessions, m.totals, m.loadErr = nil, storage.ModeStats{}, nil
	if m.store != nil {
		mode := m.currentTab().mode
		m.sessions, m.loadErr = m.store.RecentSessions(mode, maxSessions)
		if m.loadErr == nil {
			m.totals, m.loadErr = m.sumTotals(mode)
		}
	}

	// Columns change between the All tab and a mode tab; clear rows first
	// so the table never renders rows wider than its columns.
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

// sumTotals aggregates the stored totals of one mode, or of all of them.
func (m *StatsboardModel) sumTotals(mode string) (storage.ModeStats, error) {
	if mode != "" {
		st, err := m.store.GetModeStats(mode)
		if err != nil || st == nil {
			return storage.ModeStats{Mode: mode}, err
		}
		return *st, nil
	}

	all, err := m.store.GetAllModeStats()
	if err != nil {
		return storage.ModeStats{}, err
	}
	var sum storage.ModeStats
	for _, st := range all {
		sum.Sessions += st.Sessions
		sum.Ticks += st.Ticks
		sum.Dug += st.Dug
		sum.Built += st.Built
		sum.Picked += st.Picked
		if st.LastPlayed.After(sum.LastPlayed) {
			sum.LastPlayed = st.LastPlayed
		}
	}
	return sum, nil
}

func (m StatsboardModel) rows() []table.Row {
	withMode := m.currentTab().mode == ""
	rows := make([]table.Row, 0, len(m.sessions))
	for _, s := range m.sessions {
		row := table.Row{
			strconv.FormatInt(s.Seed, 10),
			strconv.Itoa(s.Stats.Ticks),
			strconv.Itoa(s.Stats.Dug),
			strconv.Itoa(s.Stats.Built),
			strconv.Itoa(s.Stats.Picked),
			s.CreatedAt.Format(dateLayout),
		}
		if withMode {
			row = append(table.Row{s.Mode}, row...)
		}
		rows = append(rows, row)
	}
	return rows
}

// Init initializes the stats board model.
func (m StatsboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats board.
func (m StatsboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.switchTab(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.table.SetRows(m.rows())
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *StatsboardModel) switchTab(delta int) {
	m.tab = (m.tab + delta + len(m.tabs)) % len(m.tabs)
	m.load()
}

// View renders the stats board.
func (m StatsboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(boardTitleStyle.Render("SESSIONS"))
	b.WriteString("\n\n")
	b.WriteString(m.tabLine())
	b.WriteString("\n")
	b.WriteString(boardMutedStyle.Render(m.totalsLine()))
	b.WriteString("\n")

	var body string
	switch {
	case m.loadErr != nil:
		body = fmt.Sprintf("Could not read sessions: %v", m.loadErr)
	case len(m.sessions) == 0:
		body = boardMutedStyle.Italic(true).Render("No sessions recorded yet.\nDig something to get on the board!")
	default:
		body = m.table.View()
	}
	b.WriteString(boardFrameStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// tabLine renders the tab strip, collapsing to "< current >" when it does
// not fit the terminal.
func (m StatsboardModel) tabLine() string {
	rendered := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tab {
			rendered[i] = boardActiveTab.Render(t.title)
		} else {
			rendered[i] = boardTabStyle.Render(t.title)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if lipgloss.Width(line) > m.width {
		line = boardActiveTab.Render(fmt.Sprintf("< %s >", m.currentTab().title))
	}
	return line
}

func (m StatsboardModel) totalsLine() string {
	t := m.totals
	if t.Sessions == 0 {
		return "no sessions"
	}
	return fmt.Sprintf("%d sessions  %d ticks  dug %d  built %d  picked %d  last %s",
		t.Sessions, t.Ticks, t.Dug, t.Built, t.Picked, t.LastPlayed.Format(dateLayout))
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsboardModel) IsQuitting() bool {
	return m.quitting
}

// RunStatsboard runs the stats board screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunStatsboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewStatsboardModel(store, width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(StatsboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
