package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/core"
	"github.com/opendan/opendan/internal/input"
)

// DefaultMenuLanes are listed when the settings carry no layouts.
var DefaultMenuLanes = []int{4, 5, 6, 7, 8}

// MenuEntry is one selectable line of the main menu.
type MenuEntry struct {
	Label  string
	Target string // scene ID; empty for quit
	Lanes  int
}

// MainMenu is the title mode: pick a lane count to play or quit.
type MainMenu struct {
	nav      *Navigator
	settings config.Settings
	entries  []MenuEntry
	selected int
	elapsed  float64
}

// NewMainMenu creates the menu with one play entry per configured lane count
// plus a quit entry.
func NewMainMenu(nav *Navigator, settings config.Settings) *MainMenu {
	lanes := settings.LaneCounts()
	if len(lanes) == 0 {
		lanes = DefaultMenuLanes
	}

	entries := make([]MenuEntry, 0, len(lanes)+1)
	for _, n := range lanes {
		entries = append(entries, MenuEntry{
			Label:  fmt.Sprintf("Play %dK", n),
			Target: PlayID(n),
			Lanes:  n,
		})
	}
	entries = append(entries, MenuEntry{Label: "Quit"})

	return &MainMenu{nav: nav, settings: settings, entries: entries}
}

// ID returns the menu scene ID.
func (m *MainMenu) ID() string {
	return MenuID
}

// OnEnter resets the title animation. The selection is kept so returning
// from a song lands on the same entry.
func (m *MainMenu) OnEnter() {
	m.elapsed = 0
}

// OnExit does nothing.
func (m *MainMenu) OnExit() {}

// Tick advances the title animation clock.
func (m *MainMenu) Tick(dt float64) {
	m.elapsed += dt
}

// Entries returns the menu entries.
func (m *MainMenu) Entries() []MenuEntry {
	return m.entries
}

// Selected returns the index of the highlighted entry.
func (m *MainMenu) Selected() int {
	return m.selected
}

// HandleInput moves the cursor, confirms an entry or quits on back.
func (m *MainMenu) HandleInput(ev input.Event) {
	switch ev.Action {
	case input.ActionUp:
		m.selected = (m.selected - 1 + len(m.entries)) % len(m.entries)
	case input.ActionDown:
		m.selected = (m.selected + 1) % len(m.entries)
	case input.ActionConfirm:
		entry := m.entries[m.selected]
		if entry.Target == "" {
			m.nav.Quit()
			return
		}
		m.nav.Goto(entry.Target)
	case input.ActionBack, input.ActionQuit:
		m.nav.Quit()
	}
}

// RenderCapHz runs the menu at the menu cap.
func (m *MainMenu) RenderCapHz(s config.Settings) float64 {
	return s.MenuCap()
}

// Render draws the title, the framed entries and the key layout of the
// highlighted entry.
func (m *MainMenu) Render(dst *core.Screen, alpha float64) {
	h := dst.Height()

	titleY := core.Max(1, h/4)
	titleColor := core.ColorBrightCyan
	// Title breathes once every two seconds.
	if math.Mod(m.elapsed, 2) >= 1 {
		titleColor = core.ColorCyan
	}
	dst.DrawTextCenteredColored(titleY, "O P E N D A N", titleColor)
	dst.DrawTextCenteredColored(titleY+1, "rhythm shell", core.ColorGray)

	startY := titleY + 3
	boxW := 0
	for _, e := range m.entries {
		boxW = core.Max(boxW, len([]rune(e.Label))+8)
	}
	dst.DrawBoxColored(core.NewRect((dst.Width()-boxW)/2, startY-1, boxW, len(m.entries)+2), core.ColorGray)

	for i, e := range m.entries {
		label := "  " + e.Label + "  "
		color := core.ColorWhite
		if i == m.selected {
			label = "> " + e.Label + " <"
			color = core.ColorYellow
		}
		dst.DrawTextCenteredColored(startY+i, label, color)
	}

	entry := m.entries[m.selected]
	if entry.Lanes > 0 {
		keys := m.settings.KeysForLanes(entry.Lanes)
		dst.DrawTextCenteredColored(startY+len(m.entries)+2, "keys: "+strings.Join(keys, " "), core.ColorGray)
	}
}
