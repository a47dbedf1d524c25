// Package tui provides the Bubble Tea integration for the shell.
// It handles the terminal UI loop, input mapping, scene orchestration and
// the SSH server.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/core"
	"github.com/opendan/opendan/internal/input"
	"github.com/opendan/opendan/internal/registry"
	"github.com/opendan/opendan/internal/scene"
	"github.com/opendan/opendan/internal/storage"
	"github.com/opendan/opendan/internal/timing"
)

// saturationWarnInterval limits "falling behind" warnings, in wall seconds.
const saturationWarnInterval = 1.0

// HostConfig configures one shell session.
type HostConfig struct {
	Settings config.Settings
	Clock    timing.Clock   // defaults to a new system clock
	Store    *storage.Store // optional; nil disables session records
	Logger   *log.Logger    // optional
	User     string
	Width    int
	Height   int
	Start    string // first scene ID; defaults to the menu
}

// Host owns everything one session needs: the timing loop, the scene
// manager, the input queue and the screen. It has no terminal dependencies,
// so it can be driven headless or from a Bubble Tea program.
//
// Host is not safe for concurrent use.
type Host struct {
	settings config.Settings
	loop     *timing.Loop
	registry *registry.Registry
	manager  *scene.Manager
	nav      *scene.Navigator
	queue    *input.Queue
	screen   *core.Screen
	store    *storage.Store
	logger   *log.Logger
	user     string

	frame    string       // last rendered frame
	entered  timing.Stats // loop counters when the current scene became active
	lastWarn float64
	warned   bool
	closed   bool
}

// NewHost builds a session and activates the start scene.
func NewHost(cfg HostConfig) (*Host, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = timing.NewSystemClock()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	settings := cfg.Settings.Normalize()
	h := &Host{
		settings: settings,
		loop:     timing.NewLoop(clock, settings.TimingConfig(settings.MenuCap())),
		nav:      scene.NewNavigator(),
		queue:    input.NewQueue(input.DefaultQueueLimit),
		screen:   core.NewScreen(cfg.Width, cfg.Height),
		store:    cfg.Store,
		logger:   logger,
		user:     cfg.User,
	}
	h.manager = scene.NewManager(logger)
	h.registry = h.buildRegistry()

	start := cfg.Start
	if start == "" {
		start = scene.MenuID
	}
	first, err := h.registry.Create(start)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot start session: %w", err)
	}
	h.activate(first)
	return h, nil
}

// buildRegistry registers the menu and one play scene per supported lane count.
func (h *Host) buildRegistry() *registry.Registry {
	r := registry.New()
	r.Register(scene.MenuID, func() scene.Scene {
		return scene.NewMainMenu(h.nav, h.settings)
	})
	for lanes := config.MinLanes; lanes <= config.MaxLanes; lanes++ {
		n := lanes
		r.Register(scene.PlayID(n), func() scene.Scene {
			return scene.NewInGame(h.nav, h.settings, n)
		})
	}
	return r
}

// Poll runs one host-loop iteration and applies any transition the scenes
// requested during it. It reports whether the session has ended.
func (h *Host) Poll() (timing.FrameResult, bool) {
	if h.closed {
		return timing.FrameResult{}, true
	}

	res := h.loop.Frame(h.simulate, h.render)
	if res.Saturated {
		h.warnSaturated(res)
	}

	if req, ok := h.nav.Take(); ok {
		if req.Quit {
			h.Close()
			return res, true
		}
		h.switchTo(req.ID)
	}
	return res, false
}

func (h *Host) simulate(dt float64) {
	h.queue.Drain(h.manager.HandleInput)
	h.manager.Tick(dt)
}

func (h *Host) render(alpha float64) {
	h.manager.Render(h.screen, alpha)
	h.frame = RenderScreen(h.screen)
}

func (h *Host) warnSaturated(res timing.FrameResult) {
	if h.warned && res.Now-h.lastWarn < saturationWarnInterval {
		return
	}
	h.warned = true
	h.lastWarn = res.Now
	h.logger.Warn("simulation falling behind",
		"scene", h.manager.Current().ID(),
		"behind", fmt.Sprintf("%.3fs", res.Behind),
		"ticks", res.Ticks,
	)
}

func (h *Host) switchTo(id string) {
	next, err := h.registry.Create(id)
	if err != nil {
		h.logger.Error("scene transition failed", "to", id, "error", err)
		return
	}
	h.recordSession()
	h.activate(next)
}

// activate swaps in next and re-baselines the loop with the scene's render cap.
// Pending input and catch-up debt from the previous scene are discarded.
func (h *Host) activate(next scene.Scene) {
	h.manager.Set(next)
	h.loop.SetRenderCap(h.manager.RenderCapHz(h.settings))
	h.queue.Clear()
	h.entered = h.loop.Stats()
	h.logger.Debug("scene active", "scene", next.ID(), "render_cap_hz", h.loop.Config().RenderCapHz)
}

// recordSession logs and stores the counters of the active scene.
func (h *Host) recordSession() {
	cur := h.manager.Current()
	if cur == nil {
		return
	}

	rec := h.sessionRecord(cur)
	h.logger.Info("session",
		"scene", rec.Scene,
		"ticks", rec.Ticks,
		"frames", rec.FramesRendered,
		"skipped", rec.FramesSkipped,
		"saturated", rec.SaturatedFrames,
		"fps", fmt.Sprintf("%.1f", rec.FPS()),
	)

	if h.store == nil {
		return
	}
	if _, err := h.store.SaveSession(rec); err != nil {
		h.logger.Warn("could not save session record", "error", err)
	}
}

func (h *Host) sessionRecord(cur scene.Scene) storage.SessionRecord {
	now := h.loop.Stats()
	rec := storage.SessionRecord{
		Scene:           cur.ID(),
		User:            h.user,
		RenderCapHz:     h.loop.Config().RenderCapHz,
		Ticks:           int64(now.Ticks - h.entered.Ticks),
		FramesRendered:  int64(now.FramesRendered - h.entered.FramesRendered),
		FramesSkipped:   int64(now.FramesSkipped - h.entered.FramesSkipped),
		SaturatedFrames: int64(now.SaturatedFrames - h.entered.SaturatedFrames),
		SongSeconds:     now.SimulatedSeconds - h.entered.SimulatedSeconds,
		WallSeconds:     now.WallSeconds - h.entered.WallSeconds,
	}
	if lanes, err := scene.ParsePlayID(cur.ID()); err == nil {
		rec.Lanes = lanes
	}
	return rec
}

// Push queues an input event for the next simulation tick.
func (h *Host) Push(ev input.Event) {
	h.queue.Push(ev)
}

// Resize changes the screen size. The next render uses the new size.
func (h *Host) Resize(width, height int) {
	h.screen.Resize(width, height)
}

// Lanes returns the lane count of the active play scene, or 0 outside play.
func (h *Host) Lanes() int {
	if g, ok := h.manager.Current().(*scene.InGame); ok {
		return g.Lanes()
	}
	return 0
}

// Current returns the active scene.
func (h *Host) Current() scene.Scene {
	return h.manager.Current()
}

// Settings returns the normalized settings of the session.
func (h *Host) Settings() config.Settings {
	return h.settings
}

// Loop exposes the timing loop.
func (h *Host) Loop() *timing.Loop {
	return h.loop
}

// Screen exposes the screen buffer.
func (h *Host) Screen() *core.Screen {
	return h.screen
}

// View returns the last rendered frame.
func (h *Host) View() string {
	return h.frame
}

// Closed reports whether the session has ended.
func (h *Host) Closed() bool {
	return h.closed
}

// Close records the active scene's session and exits it. Safe to call twice.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.recordSession()
	h.manager.Close()
	h.queue.Clear()
	h.closed = true
}
