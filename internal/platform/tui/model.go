package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opendan/opendan/internal/input"
)

// Model is the Bubble Tea model hosting one shell session.
// Key presses are queued for the next simulation tick; poll messages drive
// the host loop at the configured poll rate.
type Model struct {
	host       *Host
	keys       *KeyMap
	help       help.Model
	poll       time.Duration
	fullscreen bool
	quitting   bool
}

// NewModel creates a Bubble Tea model for a host.
func NewModel(host *Host) Model {
	settings := host.Settings()
	return Model{
		host:       host,
		keys:       NewKeyMap(settings),
		help:       help.New(),
		poll:       settings.PollInterval(),
		fullscreen: settings.Fullscreen,
	}
}

// Init starts the poll loop, entering the alternate screen when fullscreen
// is configured.
func (m Model) Init() tea.Cmd {
	if m.fullscreen {
		return tea.Batch(tea.EnterAltScreen, pollCmd(m.poll))
	}
	return pollCmd(m.poll)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The last row holds the help line.
		m.host.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case PollMsg:
		return m.handlePoll()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ev, ok := m.keys.Map(msg, m.host.Lanes())
	if !ok {
		return m, nil
	}

	switch ev.Action {
	case input.ActionQuit:
		m.host.Close()
		m.quitting = true
		return m, tea.Quit
	case input.ActionFullscreen:
		m.fullscreen = !m.fullscreen
		if m.fullscreen {
			return m, tea.EnterAltScreen
		}
		return m, tea.ExitAltScreen
	}

	m.host.Push(ev)
	return m, nil
}

// handlePoll runs one host-loop iteration.
func (m Model) handlePoll() (tea.Model, tea.Cmd) {
	if _, done := m.host.Poll(); done {
		m.quitting = true
		return m, tea.Quit
	}
	return m, pollCmd(m.poll)
}

// View returns the last frame the host rendered followed by the help line.
// The help line is left empty during play so lanes own the screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.host.Lanes() > 0 {
		return m.host.View() + "\n"
	}
	return m.host.View() + "\n" + m.help.View(m.keys)
}

// Fullscreen reports whether the alternate screen is active.
func (m Model) Fullscreen() bool {
	return m.fullscreen
}

// Host returns the session host.
func (m Model) Host() *Host {
	return m.host
}

// Run starts the Bubble Tea program for host and blocks until it exits.
// The host is closed on return so the last session is always recorded.
func Run(host *Host, opts ...tea.ProgramOption) error {
	defer host.Close()

	p := tea.NewProgram(NewModel(host), opts...)
	_, err := p.Run()
	return err
}
