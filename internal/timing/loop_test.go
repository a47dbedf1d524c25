package timing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{"defaults untouched", DefaultConfig(), DefaultConfig()},
		{"zero tick rate", Config{FixedTickHz: 0, RenderCapHz: 60, MaxTicksPerAdvance: 5}, Config{FixedTickHz: 1000, RenderCapHz: 60, MaxTicksPerAdvance: 5}},
		{"nan tick rate", Config{FixedTickHz: math.NaN(), MaxTicksPerAdvance: 3}, Config{FixedTickHz: 1000, MaxTicksPerAdvance: 3}},
		{"negative cap", Config{FixedTickHz: 240, RenderCapHz: -60, MaxTicksPerAdvance: 10}, Config{FixedTickHz: 240, RenderCapHz: Uncapped, MaxTicksPerAdvance: 10}},
		{"infinite cap", Config{FixedTickHz: 240, RenderCapHz: math.Inf(1), MaxTicksPerAdvance: 10}, Config{FixedTickHz: 240, RenderCapHz: Uncapped, MaxTicksPerAdvance: 10}},
		{"zero bound", Config{FixedTickHz: 120, RenderCapHz: 30}, Config{FixedTickHz: 120, RenderCapHz: 30, MaxTicksPerAdvance: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestConfigIntervals(t *testing.T) {
	cfg := Config{FixedTickHz: 1000, RenderCapHz: 60, MaxTicksPerAdvance: 10}

	assert.Equal(t, 0.001, cfg.FixedStep())
	assert.InDelta(t, 1.0/60, cfg.RenderInterval(), 1e-12)
	assert.True(t, cfg.Capped())

	cfg.RenderCapHz = Uncapped
	assert.Equal(t, 0.0, cfg.RenderInterval())
	assert.False(t, cfg.Capped())
}

func TestClampCap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, Uncapped},
		{-10, Uncapped},
		{math.NaN(), Uncapped},
		{0.5, MinRenderCapHz},
		{144, 144},
		{5000, MaxRenderCapHz},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampCap(tt.in), "ClampCap(%v)", tt.in)
	}
}

func TestLoopFrame(t *testing.T) {
	clock := NewManualClock(0)
	loop := NewLoop(clock, DefaultConfig())

	ticks, renders := 0, 0
	simulate := func(float64) { ticks++ }
	render := func(float64) { renders++ }

	clock.Advance(0.0055)
	res := loop.Frame(simulate, render)

	assert.Equal(t, 5, res.Ticks)
	assert.True(t, res.Rendered)
	assert.False(t, res.Saturated)
	assert.InDelta(t, 0.0055, res.Elapsed, 1e-12)
	assert.Equal(t, 5, ticks)
	assert.Equal(t, 1, renders)

	// No time passed: nothing simulated, uncapped render still happens.
	res = loop.Frame(simulate, render)
	assert.Equal(t, 0, res.Ticks)
	assert.True(t, res.Rendered)
}

func TestLoopStallFallsBehind(t *testing.T) {
	clock := NewManualClock(10)
	loop := NewLoop(clock, DefaultConfig())

	clock.Advance(1.0)
	res := loop.Frame(nil, nil)

	assert.Equal(t, 10, res.Ticks)
	assert.True(t, res.Saturated)
	assert.InDelta(t, 0.989, res.Behind, 1e-9)

	stats := loop.Stats()
	assert.Equal(t, uint64(10), stats.Ticks)
	assert.Equal(t, uint64(1), stats.SaturatedFrames)
	assert.InDelta(t, 0.010, stats.SimulatedSeconds, 1e-12)
	assert.InDelta(t, 1.0, stats.WallSeconds, 1e-12)
}

func TestLoopClockAnomalies(t *testing.T) {
	clock := NewManualClock(5)
	loop := NewLoop(clock, DefaultConfig())

	clock.Set(4)
	res := loop.Frame(func(float64) { t.Fatal("simulate on backwards clock") }, nil)
	assert.Equal(t, 0, res.Ticks)
	assert.Equal(t, 0.0, res.Elapsed)

	// Elapsed is measured from the new baseline.
	clock.Set(4.0025)
	res = loop.Frame(nil, nil)
	assert.Equal(t, 2, res.Ticks)

	assert.Equal(t, uint64(1), loop.Stats().ClockAnomalies)
}

func TestLoopIgnoresNonFiniteClock(t *testing.T) {
	reading := 0.0
	loop := NewLoop(ClockFunc(func() float64 { return reading }), DefaultConfig())

	reading = math.NaN()
	res := loop.Frame(func(float64) { t.Fatal("simulate on NaN clock") }, func(float64) { t.Fatal("render on NaN clock") })
	assert.False(t, res.Rendered)

	reading = 0.003
	res = loop.Frame(nil, nil)
	assert.Equal(t, 3, res.Ticks)
	assert.Equal(t, uint64(1), loop.Stats().ClockAnomalies)
}

func TestLoopResetDiscardsDebt(t *testing.T) {
	clock := NewManualClock(0)
	loop := NewLoop(clock, Config{FixedTickHz: 1000, RenderCapHz: 60, MaxTicksPerAdvance: 10})

	clock.Advance(2)
	loop.Frame(nil, nil)
	require.True(t, loop.Scheduler().Saturated())

	loop.Reset()
	assert.Equal(t, 0.0, loop.Scheduler().Accumulator())
	assert.Equal(t, 2.0, loop.Limiter().NextRenderTime())

	res := loop.Frame(nil, nil)
	assert.Equal(t, 0, res.Ticks)
	assert.True(t, res.Rendered)
}

func TestLoopSetRenderCap(t *testing.T) {
	clock := NewManualClock(0)
	loop := NewLoop(clock, DefaultConfig())

	loop.SetRenderCap(DefaultMenuRenderCapHz)
	assert.True(t, loop.Limiter().Capped())
	assert.Equal(t, DefaultMenuRenderCapHz, loop.Config().RenderCapHz)

	rendered := 0
	for i := 0; i < 100; i++ {
		clock.Advance(0.001)
		if loop.Frame(nil, nil).Rendered {
			rendered++
		}
	}
	// 0.1s at 60 Hz plus the render due right after the reset.
	assert.InDelta(t, 7, rendered, 1)

	loop.SetRenderCap(-1)
	assert.False(t, loop.Limiter().Capped())

	stats := loop.Stats()
	assert.Equal(t, uint64(100), stats.FramesRendered+stats.FramesSkipped)
}
