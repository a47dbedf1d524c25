package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/input"
)

// KeyMap translates Bubble Tea key messages to input events.
// Lane keys come from the settings layout for the active lane count and take
// precedence over navigation keys, so a layout may bind "k" or "enter".
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Confirm    key.Binding
	Back       key.Binding
	Fullscreen key.Binding
	Quit       key.Binding

	settings config.Settings
	layouts  map[int]map[string]int // lanes -> key -> lane index
}

// NewKeyMap creates a key map with default navigation bindings and lane
// layouts from settings.
func NewKeyMap(settings config.Settings) *KeyMap {
	return &KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Fullscreen: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "fullscreen"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		settings: settings,
		layouts:  make(map[int]map[string]int),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Confirm, k.Back, k.Fullscreen, k.Quit},
	}
}

// layout returns the key -> lane lookup for a lane count, built on first use.
func (k *KeyMap) layout(lanes int) map[string]int {
	if l, ok := k.layouts[lanes]; ok {
		return l
	}
	l := make(map[string]int, lanes)
	for i, name := range k.settings.KeysForLanes(lanes) {
		// First lane wins when a layout binds one key twice.
		if _, dup := l[name]; !dup {
			l[name] = i
		}
	}
	k.layouts[lanes] = l
	return l
}

// Map translates a key for a scene with the given lane count (0 outside play).
// Quit and fullscreen are checked first so a layout can never shadow them.
func (k *KeyMap) Map(msg tea.KeyMsg, lanes int) (input.Event, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return input.Press(input.ActionQuit), true
	case key.Matches(msg, k.Fullscreen):
		return input.Press(input.ActionFullscreen), true
	}

	if lanes > 0 {
		if lane, ok := k.layout(lanes)[config.NormalizeKey(msg.String())]; ok {
			return input.Lane(lane), true
		}
	}

	switch {
	case key.Matches(msg, k.Back):
		return input.Press(input.ActionBack), true
	case key.Matches(msg, k.Up):
		return input.Press(input.ActionUp), true
	case key.Matches(msg, k.Down):
		return input.Press(input.ActionDown), true
	case key.Matches(msg, k.Confirm):
		return input.Press(input.ActionConfirm), true
	}

	return input.Event{}, false
}
