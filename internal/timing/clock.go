// Package timing drives the host loop: a fixed-step simulation scheduler and a
// render frame-rate limiter fed from a monotonic clock.
//
// The package has no terminal or UI dependencies. Time is expressed as float64
// seconds so that simulation code can use dt directly in its arithmetic.
package timing

import (
	"math"
	"time"
)

// Clock is a source of monotonic elapsed time in seconds.
// Readings must be non-negative and never decrease.
type Clock interface {
	Seconds() float64
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() float64

// Seconds calls f.
func (f ClockFunc) Seconds() float64 {
	return f()
}

// SystemClock reports seconds elapsed since it was created.
// Go's time.Now carries a monotonic reading, so wall clock changes do not leak in.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock starting at zero.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Seconds returns the elapsed time since construction.
func (c *SystemClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock is a clock advanced explicitly by the caller.
// Used by tests and by headless runs that need deterministic time.
type ManualClock struct {
	now float64
}

// NewManualClock creates a manual clock at the given reading.
func NewManualClock(start float64) *ManualClock {
	return &ManualClock{now: start}
}

// Seconds returns the current reading.
func (c *ManualClock) Seconds() float64 {
	return c.now
}

// Set moves the clock to an absolute reading. Tests use it to inject anomalies.
func (c *ManualClock) Set(now float64) {
	c.now = now
}

// Advance moves the clock forward by d seconds.
func (c *ManualClock) Advance(d float64) {
	c.now += d
}

// finite reports whether v is a usable time value.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
