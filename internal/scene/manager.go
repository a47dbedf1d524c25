package scene

import (
	"github.com/charmbracelet/log"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/core"
	"github.com/opendan/opendan/internal/input"
)

// Manager holds the active scene and performs lifecycle-correct swaps.
// It is driven from the host loop goroutine only.
type Manager struct {
	current Scene
	logger  *log.Logger
}

// NewManager creates a manager with no active scene.
// A nil logger disables swap logging.
func NewManager(logger *log.Logger) *Manager {
	return &Manager{logger: logger}
}

// Set makes next the active scene. Setting the scene that is already active
// is a no-op and returns false. Otherwise the old scene's OnExit runs before
// next's OnEnter, and Set returns true.
func (m *Manager) Set(next Scene) bool {
	if next == nil || next == m.current {
		return false
	}

	prev := m.current
	if prev != nil {
		prev.OnExit()
	}
	m.current = next
	next.OnEnter()

	if m.logger != nil {
		from := "none"
		if prev != nil {
			from = prev.ID()
		}
		m.logger.Debug("scene swap", "from", from, "to", next.ID())
	}
	return true
}

// Current returns the active scene, or nil.
func (m *Manager) Current() Scene {
	return m.current
}

// Tick advances the active scene by one fixed step.
func (m *Manager) Tick(dt float64) {
	if m.current != nil {
		m.current.Tick(dt)
	}
}

// Render draws the active scene into dst after clearing it.
func (m *Manager) Render(dst *core.Screen, alpha float64) {
	dst.Clear()
	if m.current != nil {
		m.current.Render(dst, alpha)
	}
}

// HandleInput forwards an event to the active scene when it accepts input.
func (m *Manager) HandleInput(ev input.Event) {
	if h, ok := m.current.(InputHandler); ok {
		h.HandleInput(ev)
	}
}

// RenderCapHz returns the render cap the active scene asks for.
// Scenes without a preference run at the in-game cap.
func (m *Manager) RenderCapHz(s config.Settings) float64 {
	if c, ok := m.current.(RenderCapper); ok {
		return c.RenderCapHz(s)
	}
	return s.IngameCap()
}

// Close exits the active scene, leaving the manager empty.
func (m *Manager) Close() {
	if m.current != nil {
		m.current.OnExit()
		m.current = nil
	}
}
