package scene

import (
	"fmt"
	"math"
	"strings"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/core"
	"github.com/opendan/opendan/internal/input"
)

// FlashDuration is how long a lane stays lit after a press, in seconds.
const FlashDuration = 0.12

// Visual characters for rendering
const (
	LaneChar      = '│'
	LaneFlashChar = '█'
	QuadChar      = '▓'
	HitLineChar   = '═'
)

// PulseScale returns the demo quad scale at song time t:
// 0.5 + 0.25*sin(2π·(t mod 1)), so it cycles once per second in [0.25, 0.75].
func PulseScale(t float64) float64 {
	return 0.5 + 0.25*math.Sin(2*math.Pi*math.Mod(t, 1))
}

// InGame is the play mode. It advances song time by the fixed step, lights
// lanes when their keys are pressed, and draws a pulsing quad.
type InGame struct {
	nav      *Navigator
	lanes    int
	keys     []string
	songTime float64
	flash    []float64 // remaining lit time per lane
	presses  []int
}

// NewInGame creates the play mode for a lane count using the settings layout.
func NewInGame(nav *Navigator, settings config.Settings, lanes int) *InGame {
	return &InGame{
		nav:     nav,
		lanes:   lanes,
		keys:    settings.KeysForLanes(lanes),
		flash:   make([]float64, lanes),
		presses: make([]int, lanes),
	}
}

// ID returns the play scene ID for this lane count.
func (g *InGame) ID() string {
	return PlayID(g.lanes)
}

// OnEnter starts the song from zero.
func (g *InGame) OnEnter() {
	g.songTime = 0
	for i := range g.flash {
		g.flash[i] = 0
		g.presses[i] = 0
	}
}

// OnExit does nothing; the host records the session.
func (g *InGame) OnExit() {}

// Tick advances song time and fades lane flashes.
func (g *InGame) Tick(dt float64) {
	g.songTime += dt
	for i := range g.flash {
		if g.flash[i] > 0 {
			g.flash[i] = math.Max(0, g.flash[i]-dt)
		}
	}
}

// HandleInput lights pressed lanes; back returns to the menu.
func (g *InGame) HandleInput(ev input.Event) {
	switch ev.Action {
	case input.ActionLanePress:
		if ev.Lane >= 0 && ev.Lane < g.lanes {
			g.flash[ev.Lane] = FlashDuration
			g.presses[ev.Lane]++
		}
	case input.ActionBack:
		g.nav.Goto(MenuID)
	case input.ActionQuit:
		g.nav.Quit()
	}
}

// RenderCapHz runs play at the in-game cap.
func (g *InGame) RenderCapHz(s config.Settings) float64 {
	return s.IngameCap()
}

// Lanes returns the lane count.
func (g *InGame) Lanes() int {
	return g.lanes
}

// Keys returns the key names bound to the lanes.
func (g *InGame) Keys() []string {
	return g.keys
}

// SongTime returns the simulated song position in seconds.
func (g *InGame) SongTime() float64 {
	return g.songTime
}

// Lit reports whether a lane is currently flashing.
func (g *InGame) Lit(lane int) bool {
	return lane >= 0 && lane < g.lanes && g.flash[lane] > 0
}

// Presses returns how many times a lane was pressed since entering.
func (g *InGame) Presses(lane int) int {
	if lane < 0 || lane >= g.lanes {
		return 0
	}
	return g.presses[lane]
}

// LaneWidth is the cell width of one lane column.
const LaneWidth = 5

// Render draws the playfield: lane columns with their keys, the hit line and
// the pulsing quad above it.
func (g *InGame) Render(dst *core.Screen, alpha float64) {
	w, h := dst.Width(), dst.Height()
	if w == 0 || h < 4 {
		return
	}

	fieldW := g.lanes * LaneWidth
	left := (w - fieldW) / 2
	top := 1
	hitY := h - 3

	t := g.songTime

	for lane := 0; lane < g.lanes; lane++ {
		x := left + lane*LaneWidth
		color := core.LaneColor(lane)
		dst.DrawVLine(x, top, hitY-top, LaneChar, core.ColorGray)
		if g.Lit(lane) {
			dst.DrawRectColored(core.NewRect(x+1, hitY-2, LaneWidth-1, 2), LaneFlashChar, color)
		}
		label := strings.ToUpper(g.keys[lane])
		if label == "SPACE" {
			label = "␣"
		}
		dst.DrawTextColored(x+(LaneWidth-len([]rune(label)))/2+1, hitY+1, label, color)
	}
	dst.DrawVLine(left+fieldW, top, hitY-top, LaneChar, core.ColorGray)
	dst.DrawHLine(left, hitY, fieldW+1, HitLineChar, core.ColorWhite)

	// Demo quad, centered over the field.
	area := core.NewRect(left+1, top, fieldW-1, hitY-top-2)
	if !area.Empty() {
		dst.DrawRectColored(area.Scaled(PulseScale(t)), QuadChar, core.ColorMagenta)
	}

	dst.DrawTextColored(1, 0, fmt.Sprintf("%dK  %6.2fs", g.lanes, t), core.ColorWhite)
	dst.DrawTextCenteredColored(h-1, "esc menu", core.ColorGray)
}
