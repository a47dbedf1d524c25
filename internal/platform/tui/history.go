package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/opendan/opendan/internal/storage"
)

// History layout constants
const (
	maxHistory = 100 // Max sessions to load
	allScenes  = "all"
)

// HistoryKeyMap defines the key bindings for the history browser.
type HistoryKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextScene, k.PrevScene, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing recorded sessions.
type HistoryModel struct {
	scenes   []string // "all" followed by every recorded scene
	cursor   int
	store    *storage.Store
	sessions []storage.SessionRecord
	summary  *storage.Summary
	err      error
	table    table.Model
	help     help.Model
	keys     HistoryKeyMap
	width    int
	height   int
	quitting bool
}

// NewHistoryModel creates a history browser over store.
func NewHistoryModel(store *storage.Store, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		scenes: []string{allScenes},
		store:  store,
		keys:   DefaultHistoryKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}

	if store != nil {
		scenes, err := store.Scenes()
		if err != nil {
			m.err = err
		}
		m.scenes = append(m.scenes, scenes...)
	}

	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a table sized to the window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "When", Width: 12},
		{Title: "Scene", Width: 8},
		{Title: "Cap", Width: 6},
		{Title: "Ticks", Width: 8},
		{Title: "FPS", Width: 7},
		{Title: "Skipped", Width: 8},
		{Title: "Sat", Width: 4},
		{Title: "Wall", Width: 8},
	}

	height := m.height - 9 // title, summary, tabs, help and borders
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

// selectedScene returns the scene filter; empty means all scenes.
func (m *HistoryModel) selectedScene() string {
	if m.scenes[m.cursor] == allScenes {
		return ""
	}
	return m.scenes[m.cursor]
}

// load fetches sessions and the summary for the selected scene.
func (m *HistoryModel) load() {
	m.sessions = nil
	m.summary = nil
	if m.store != nil {
		scene := m.selectedScene()
		sessions, err := m.store.RecentSessions(scene, maxHistory)
		if err != nil {
			m.err = err
		} else {
			m.sessions = sessions
		}
		if scene != "" {
			if sum, err := m.store.Summarize(scene); err == nil {
				m.summary = &sum
			}
		}
	}
	m.table.SetRows(HistoryRows(m.sessions))
	m.table.GotoTop()
}

// HistoryRows formats session records as table rows.
func HistoryRows(sessions []storage.SessionRecord) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		rows[i] = table.Row{
			s.CreatedAt.Format("Jan 02 15:04"),
			s.Scene,
			FormatCap(s.RenderCapHz),
			fmt.Sprintf("%d", s.Ticks),
			fmt.Sprintf("%.1f", s.FPS()),
			fmt.Sprintf("%d", s.FramesSkipped),
			fmt.Sprintf("%d", s.SaturatedFrames),
			fmt.Sprintf("%.1fs", s.WallSeconds),
		}
	}
	return rows
}

// FormatCap renders a render cap for display; zero is unlimited.
func FormatCap(hz float64) string {
	if hz <= 0 {
		return "∞"
	}
	return fmt.Sprintf("%.0f", hz)
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history browser.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			m.cursor = (m.cursor + 1) % len(m.scenes)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			m.cursor = (m.cursor - 1 + len(m.scenes)) % len(m.scenes)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(HistoryRows(m.sessions))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history browser.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render("SESSION HISTORY"))
	b.WriteString("\n\n")

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.summary != nil {
		b.WriteString(dim.Render(fmt.Sprintf("%d sessions  %d ticks  %.1fs  avg %.1f fps",
			m.summary.Sessions, m.summary.Ticks, m.summary.WallSeconds, m.summary.AvgFPS)))
	}
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(dim.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTabs renders the scene filter tabs.
func (m HistoryModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.scenes))
	for i, s := range m.scenes {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(s)
		} else {
			tabs[i] = tabStyle.Render(s)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.sessions) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No sessions recorded yet.\nPlay a song to record one!")
	}

	return m.table.View()
}

// Sessions returns the records currently shown.
func (m HistoryModel) Sessions() []storage.SessionRecord {
	return m.sessions
}

// Scene returns the selected scene tab.
func (m HistoryModel) Scene() string {
	return m.scenes[m.cursor]
}

// RunHistory runs the history browser until the user quits.
func RunHistory(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
