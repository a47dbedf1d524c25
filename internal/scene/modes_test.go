package scene

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/core"
	"github.com/opendan/opendan/internal/input"
)

func TestMainMenuEntries(t *testing.T) {
	menu := NewMainMenu(NewNavigator(), config.DefaultSettings())

	entries := menu.Entries()
	require.Len(t, entries, 6)
	for i, lanes := range []int{4, 5, 6, 7, 8} {
		assert.Equal(t, PlayID(lanes), entries[i].Target)
		assert.Equal(t, lanes, entries[i].Lanes)
	}
	assert.Equal(t, "Quit", entries[5].Label)
	assert.Empty(t, entries[5].Target)
}

func TestMainMenuWithoutLayouts(t *testing.T) {
	menu := NewMainMenu(NewNavigator(), config.Settings{})
	assert.Len(t, menu.Entries(), len(DefaultMenuLanes)+1)
}

func TestMainMenuNavigation(t *testing.T) {
	nav := NewNavigator()
	menu := NewMainMenu(nav, config.DefaultSettings())

	menu.HandleInput(input.Press(input.ActionUp))
	assert.Equal(t, 5, menu.Selected(), "up from the top wraps to quit")
	menu.HandleInput(input.Press(input.ActionDown))
	menu.HandleInput(input.Press(input.ActionDown))
	assert.Equal(t, 1, menu.Selected())

	menu.HandleInput(input.Press(input.ActionConfirm))
	req, ok := nav.Take()
	require.True(t, ok)
	assert.Equal(t, Request{ID: "play-5"}, req)

	// Lane presses mean nothing in the menu.
	menu.HandleInput(input.Lane(0))
	assert.False(t, nav.Pending())
}

func TestMainMenuQuit(t *testing.T) {
	nav := NewNavigator()
	menu := NewMainMenu(nav, config.DefaultSettings())

	menu.HandleInput(input.Press(input.ActionBack))
	req, _ := nav.Take()
	assert.True(t, req.Quit)

	menu.HandleInput(input.Press(input.ActionUp))
	menu.HandleInput(input.Press(input.ActionConfirm))
	req, _ = nav.Take()
	assert.True(t, req.Quit, "confirming the quit entry quits")
}

func TestMainMenuRender(t *testing.T) {
	menu := NewMainMenu(NewNavigator(), config.DefaultSettings())
	screen := core.NewScreen(60, 20)

	menu.Render(screen, 0)
	out := screen.String()

	assert.Contains(t, out, "O P E N D A N")
	assert.Contains(t, out, "> Play 4K <")
	assert.Contains(t, out, "keys: d f j k")

	lines := strings.Split(out, "\n")
	top, bottom, keys := -1, -1, -1
	for i, line := range lines {
		switch {
		case strings.Contains(line, "┌"):
			top = i
		case strings.Contains(line, "└"):
			bottom = i
		case strings.Contains(line, "keys:"):
			keys = i
		}
	}
	assert.Equal(t, len(menu.Entries())+1, bottom-top, "entries are framed")
	assert.Greater(t, keys, bottom, "key layout sits below the frame")
}

func TestInGameSongTime(t *testing.T) {
	g := NewInGame(NewNavigator(), config.DefaultSettings(), 4)
	g.OnEnter()

	for i := 0; i < 4; i++ {
		g.Tick(0.25)
	}
	assert.Equal(t, 1.0, g.SongTime())

	g.OnEnter()
	assert.Equal(t, 0.0, g.SongTime(), "re-entering restarts the song")
}

func TestInGameLaneFlash(t *testing.T) {
	g := NewInGame(NewNavigator(), config.DefaultSettings(), 4)
	g.OnEnter()

	g.HandleInput(input.Lane(2))
	g.HandleInput(input.Lane(9)) // out of range: ignored
	g.HandleInput(input.Lane(-1))

	assert.True(t, g.Lit(2))
	assert.False(t, g.Lit(1))
	assert.Equal(t, 1, g.Presses(2))
	assert.Equal(t, 0, g.Presses(9))

	for i := 0; i < 100; i++ {
		g.Tick(0.001)
	}
	assert.True(t, g.Lit(2), "still lit before FlashDuration")
	g.Tick(0.02)
	g.Tick(0.001)
	assert.False(t, g.Lit(2))
}

func TestInGameBack(t *testing.T) {
	nav := NewNavigator()
	g := NewInGame(nav, config.DefaultSettings(), 5)

	g.HandleInput(input.Press(input.ActionBack))
	req, ok := nav.Take()
	require.True(t, ok)
	assert.Equal(t, Request{ID: MenuID}, req)
}

func TestInGameKeysFromSettings(t *testing.T) {
	s := config.DefaultSettings()
	require.NoError(t, s.SetKeysForLanes(4, []string{"z", "x", ".", "/"}))

	g := NewInGame(NewNavigator(), s, 4)
	assert.Equal(t, []string{"z", "x", ".", "/"}, g.Keys())
	assert.Equal(t, "play-4", g.ID())
}

func TestInGameRender(t *testing.T) {
	g := NewInGame(NewNavigator(), config.DefaultSettings(), 5)
	g.OnEnter()
	g.HandleInput(input.Lane(0))

	screen := core.NewScreen(60, 24)
	g.Render(screen, 0)
	out := screen.String()

	assert.Contains(t, out, "5K")
	assert.True(t, strings.ContainsRune(out, QuadChar), "pulsing quad drawn")
	assert.True(t, strings.ContainsRune(out, LaneFlashChar), "pressed lane lit")
	assert.True(t, strings.ContainsRune(out, '␣'), "space key label")

	// Tiny screens are skipped without panicking.
	g.Render(core.NewScreen(0, 0), 0)
	g.Render(core.NewScreen(5, 2), 0)
}

func TestPulseScale(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0.5},
		{0.25, 0.75},
		{0.5, 0.5},
		{0.75, 0.25},
		{1.25, 0.75},
		{10.75, 0.25},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, PulseScale(tt.t), 1e-9, "PulseScale(%v)", tt.t)
	}
}
