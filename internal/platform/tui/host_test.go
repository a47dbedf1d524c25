package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/input"
	"github.com/opendan/opendan/internal/scene"
	"github.com/opendan/opendan/internal/storage"
	"github.com/opendan/opendan/internal/timing"
)

func newTestHost(t *testing.T, store *storage.Store) (*Host, *timing.ManualClock) {
	t.Helper()
	clock := timing.NewManualClock(0)
	host, err := NewHost(HostConfig{
		Settings: config.DefaultSettings(),
		Clock:    clock,
		Store:    store,
		User:     "tester",
		Width:    60,
		Height:   20,
	})
	require.NoError(t, err)
	return host, clock
}

// step advances the clock by 10ms and polls once.
func step(h *Host, clock *timing.ManualClock) (timing.FrameResult, bool) {
	clock.Advance(0.01)
	return h.Poll()
}

func TestHostStartsInMenu(t *testing.T) {
	host, clock := newTestHost(t, nil)

	assert.Equal(t, scene.MenuID, host.Current().ID())
	assert.Equal(t, timing.DefaultMenuRenderCapHz, host.Loop().Config().RenderCapHz)
	assert.Equal(t, 0, host.Lanes())

	res, done := step(host, clock)
	assert.False(t, done)
	assert.True(t, res.Rendered)
	assert.Contains(t, host.View(), "O P E N D A N")
}

func TestHostUnknownStartScene(t *testing.T) {
	_, err := NewHost(HostConfig{Settings: config.DefaultSettings(), Start: "nowhere"})
	assert.Error(t, err)
}

func TestHostMenuToPlayAndBack(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	host, clock := newTestHost(t, store)

	host.Push(input.Press(input.ActionConfirm))
	step(host, clock)

	require.Equal(t, "play-4", host.Current().ID())
	assert.Equal(t, 4, host.Lanes())
	assert.Equal(t, timing.Uncapped, host.Loop().Config().RenderCapHz, "in-game cap is unlimited by default")

	host.Push(input.Lane(1))
	step(host, clock)
	game := host.Current().(*scene.InGame)
	assert.True(t, game.Lit(1))
	assert.Greater(t, game.SongTime(), 0.0)

	host.Push(input.Press(input.ActionBack))
	step(host, clock)
	assert.Equal(t, scene.MenuID, host.Current().ID())

	records, err := store.RecentSessions("", 10)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "play-4", records[0].Scene)
	assert.Equal(t, 4, records[0].Lanes)
	assert.Equal(t, "tester", records[0].User)
	assert.Positive(t, records[0].Ticks)
	assert.Equal(t, scene.MenuID, records[1].Scene)
}

func TestHostQuitClosesSession(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	host, clock := newTestHost(t, store)

	host.Push(input.Press(input.ActionBack))
	_, done := step(host, clock)
	assert.True(t, done)
	assert.True(t, host.Closed())
	assert.Nil(t, host.Current())

	// Polling or closing again is harmless and records nothing more.
	_, done = host.Poll()
	assert.True(t, done)
	host.Close()

	records, _ := store.RecentSessions("", 10)
	assert.Len(t, records, 1)
}

func TestHostSwapResetsDebt(t *testing.T) {
	host, clock := newTestHost(t, nil)

	host.Push(input.Press(input.ActionConfirm))
	clock.Advance(5) // long stall with a pending swap
	res, _ := host.Poll()
	require.True(t, res.Saturated)

	assert.Equal(t, "play-4", host.Current().ID())
	assert.Equal(t, 0.0, host.Loop().Scheduler().Accumulator(), "debt from the menu is discarded")
}

func TestHostSaturationWarningRateLimited(t *testing.T) {
	var buf bytes.Buffer
	clock := timing.NewManualClock(0)
	host, err := NewHost(HostConfig{
		Settings: config.DefaultSettings(),
		Clock:    clock,
		Logger:   log.New(&buf),
		Width:    40,
		Height:   10,
	})
	require.NoError(t, err)

	clock.Advance(1.0)
	host.Poll()
	clock.Advance(0.5)
	host.Poll()
	clock.Advance(0.6)
	host.Poll()

	assert.Equal(t, 2, strings.Count(buf.String(), "simulation falling behind"))
}

func TestHostResize(t *testing.T) {
	host, clock := newTestHost(t, nil)

	host.Resize(30, 12)
	step(host, clock)

	assert.Equal(t, 30, host.Screen().Width())
	assert.Len(t, strings.Split(host.View(), "\n"), 12)
}

func TestModelKeysReachHost(t *testing.T) {
	host, clock := newTestHost(t, nil)
	m := NewModel(host)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	m = next.(Model)

	clock.Advance(0.01)
	next, cmd = m.Update(PollMsg{})
	assert.NotNil(t, cmd, "poll reschedules itself")
	m = next.(Model)
	assert.Equal(t, "play-4", host.Current().ID())

	next, _ = m.Update(runeKey('f'))
	m = next.(Model)
	clock.Advance(0.01)
	m.Update(PollMsg{})
	assert.True(t, host.Current().(*scene.InGame).Lit(1))
}

func TestModelFullscreenToggle(t *testing.T) {
	host, _ := newTestHost(t, nil)
	m := NewModel(host)
	assert.False(t, m.Fullscreen())

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.NotNil(t, cmd)
	assert.True(t, next.(Model).Fullscreen())

	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})
	assert.False(t, next.(Model).Fullscreen())
}

func TestModelQuit(t *testing.T) {
	host, _ := newTestHost(t, nil)
	m := NewModel(host)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd)
	assert.True(t, host.Closed())
	assert.Empty(t, next.View())
}

func TestModelHelpLine(t *testing.T) {
	host, clock := newTestHost(t, nil)
	m := NewModel(host)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = next.(Model)
	assert.Equal(t, 23, host.Screen().Height())

	clock.Advance(0.01)
	next, _ = m.Update(PollMsg{})
	m = next.(Model)
	assert.Contains(t, m.View(), "select")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	clock.Advance(0.01)
	next, _ = m.Update(PollMsg{})
	m = next.(Model)
	require.Equal(t, "play-4", host.Current().ID())
	assert.NotContains(t, m.View(), "select")
}
