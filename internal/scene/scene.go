// Package scene implements the shell's modes and the manager that swaps them.
//
// Scenes contain pure logic with no terminal dependencies. The host feeds them
// fixed simulation ticks, queued input and a screen buffer to draw into.
package scene

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/opendan/opendan/internal/config"
	"github.com/opendan/opendan/internal/core"
	"github.com/opendan/opendan/internal/input"
)

// MenuID identifies the main menu.
const MenuID = "menu"

const playPrefix = "play-"

// Scene is the capability every mode implements.
type Scene interface {
	// ID returns a unique identifier (e.g. "menu", "play-4").
	// Used for navigation and session records.
	ID() string

	// OnEnter is called when the scene becomes active.
	OnEnter()

	// OnExit is called when another scene replaces this one.
	OnExit()

	// Tick advances the simulation by one fixed step of dt seconds.
	Tick(dt float64)

	// Render draws the current state. The screen is pre-cleared.
	// alpha is the fraction of a fixed step left unsimulated, in [0, 1].
	Render(dst *core.Screen, alpha float64)
}

// InputHandler is implemented by scenes that react to input.
// Events are delivered at the start of a simulation tick.
type InputHandler interface {
	HandleInput(ev input.Event)
}

// RenderCapper is implemented by scenes that pick their own render cap.
// The returned value is in Hz; timing.Uncapped means unlimited.
type RenderCapper interface {
	RenderCapHz(s config.Settings) float64
}

// PlayID returns the scene ID of the in-game mode for a lane count.
func PlayID(lanes int) string {
	return playPrefix + strconv.Itoa(lanes)
}

// ParsePlayID extracts the lane count from an in-game scene ID.
func ParsePlayID(id string) (int, error) {
	if !strings.HasPrefix(id, playPrefix) {
		return 0, fmt.Errorf("scene: %q is not a play scene", id)
	}
	lanes, err := strconv.Atoi(strings.TrimPrefix(id, playPrefix))
	if err != nil {
		return 0, fmt.Errorf("scene: bad lane count in %q: %w", id, err)
	}
	if lanes < config.MinLanes || lanes > config.MaxLanes {
		return 0, fmt.Errorf("scene: %w: %d", config.ErrLaneCount, lanes)
	}
	return lanes, nil
}
