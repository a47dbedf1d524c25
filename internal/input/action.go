// Package input defines the semantic input the shell understands and the
// queue that carries it from the terminal into simulation ticks.
package input

import "fmt"

// Action is a semantic input, abstracted from the physical key that produced it.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow - menu navigation
	ActionDown           // Down arrow - menu navigation
	ActionConfirm        // Enter - confirm selection
	ActionBack           // Escape - leave the current mode
	ActionFullscreen     // Alt+Enter - toggle fullscreen
	ActionQuit           // Ctrl+C - exit immediately
	ActionLanePress      // a key bound to a note lane
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionFullscreen:
		return "Fullscreen"
	case ActionQuit:
		return "Quit"
	case ActionLanePress:
		return "LanePress"
	default:
		return "Unknown"
	}
}

// Event is one input occurrence. Lane is meaningful only for ActionLanePress
// and is zero-based.
type Event struct {
	Action Action
	Lane   int
}

// Press builds a non-lane event.
func Press(a Action) Event {
	return Event{Action: a, Lane: -1}
}

// Lane builds a lane press event.
func Lane(lane int) Event {
	return Event{Action: ActionLanePress, Lane: lane}
}

func (e Event) String() string {
	if e.Action == ActionLanePress {
		return fmt.Sprintf("LanePress(%d)", e.Lane)
	}
	return e.Action.String()
}
