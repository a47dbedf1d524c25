package timing

import "math"

// Defaults for the host loop.
const (
	DefaultFixedTickHz        = 1000.0 // rhythm logic runs at 1 kHz
	DefaultMaxTicksPerAdvance = 10     // catch-up bound per frame
	DefaultMenuRenderCapHz    = 60.0

	// RenderEpsilon keeps a frame that is due within clock noise from being skipped.
	RenderEpsilon = 0.0002

	// MinRenderCapHz and MaxRenderCapHz bound user supplied caps.
	MinRenderCapHz = 1.0
	MaxRenderCapHz = 2000.0
)

// Uncapped is the RenderCapHz value meaning "render every iteration".
const Uncapped = 0.0

// Config describes the scheduler and limiter rates.
type Config struct {
	FixedTickHz        float64 // simulation ticks per second
	RenderCapHz        float64 // render cap; Uncapped (0) renders every iteration
	MaxTicksPerAdvance int     // safety bound on ticks emitted by one Advance
}

// DefaultConfig returns the in-game defaults: 1000 Hz ticks, uncapped rendering.
func DefaultConfig() Config {
	return Config{
		FixedTickHz:        DefaultFixedTickHz,
		RenderCapHz:        Uncapped,
		MaxTicksPerAdvance: DefaultMaxTicksPerAdvance,
	}
}

// Normalize returns a copy with invalid values replaced.
// A non-positive or non-finite tick rate falls back to the default, a
// non-positive bound falls back to the default, and a render cap that is not
// a positive finite rate with a representable interval becomes Uncapped.
func (c Config) Normalize() Config {
	if !finite(c.FixedTickHz) || c.FixedTickHz <= 0 || !positiveInterval(c.FixedTickHz) {
		c.FixedTickHz = DefaultFixedTickHz
	}
	if c.MaxTicksPerAdvance <= 0 {
		c.MaxTicksPerAdvance = DefaultMaxTicksPerAdvance
	}
	c.RenderCapHz = NormalizeCap(c.RenderCapHz)
	return c
}

// FixedStep returns the simulation step in seconds.
func (c Config) FixedStep() float64 {
	return 1.0 / c.Normalize().FixedTickHz
}

// RenderInterval returns the render interval in seconds, or 0 when uncapped.
func (c Config) RenderInterval() float64 {
	return intervalFor(c.RenderCapHz)
}

// Capped reports whether rendering is throttled.
func (c Config) Capped() bool {
	return c.RenderInterval() > 0
}

// NormalizeCap maps degenerate caps to Uncapped.
func NormalizeCap(hz float64) float64 {
	if !finite(hz) || hz <= 0 || !positiveInterval(hz) {
		return Uncapped
	}
	return hz
}

// ClampCap applies the command-line rule for user caps: values <= 0 mean
// unlimited, anything else is clamped to [MinRenderCapHz, MaxRenderCapHz].
func ClampCap(hz float64) float64 {
	if !finite(hz) || hz <= 0 {
		return Uncapped
	}
	return math.Max(MinRenderCapHz, math.Min(MaxRenderCapHz, hz))
}

func intervalFor(hz float64) float64 {
	hz = NormalizeCap(hz)
	if hz == Uncapped {
		return 0
	}
	return 1.0 / hz
}

// positiveInterval rejects rates so large that 1/hz underflows to zero.
func positiveInterval(hz float64) bool {
	iv := 1.0 / hz
	return iv > 0 && finite(iv)
}
