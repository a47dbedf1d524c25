package scene

// Request is a pending transition.
type Request struct {
	ID   string // scene to activate; empty with Quit set
	Quit bool
}

// Navigator collects transition requests made by scenes during a tick.
// The host applies them between frames, so a swap never happens in the
// middle of an advance. Only the last request of a frame is kept, except that
// a quit request is never overridden.
type Navigator struct {
	pending Request
	has     bool
}

// NewNavigator creates an empty navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Goto requests a switch to the scene with the given ID.
func (n *Navigator) Goto(id string) {
	if n.has && n.pending.Quit {
		return
	}
	n.pending = Request{ID: id}
	n.has = true
}

// Quit requests that the shell exit.
func (n *Navigator) Quit() {
	n.pending = Request{Quit: true}
	n.has = true
}

// Take returns and clears the pending request.
func (n *Navigator) Take() (Request, bool) {
	if !n.has {
		return Request{}, false
	}
	req := n.pending
	n.pending = Request{}
	n.has = false
	return req, true
}

// Pending reports whether a request is waiting.
func (n *Navigator) Pending() bool {
	return n.has
}
