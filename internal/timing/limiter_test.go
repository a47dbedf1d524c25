package timing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimiterUncappedAlwaysRenders(t *testing.T) {
	for _, capHz := range []float64{0, -30, math.NaN(), math.Inf(1)} {
		l := NewFrameRateLimiter(capHz)
		assert.False(t, l.Capped(), "cap %v", capHz)

		for _, now := range []float64{0, 0, 0.0001, 5, 3, math.NaN()} {
			assert.True(t, l.ShouldRenderNow(now), "cap %v now %v", capHz, now)
		}
		assert.Equal(t, 0.0, l.NextRenderTime())
	}
}

func TestLimiterCappedSequence(t *testing.T) {
	l := NewFrameRateLimiter(60)
	l.Reset(0)

	assert.InDelta(t, 1.0/60, l.Interval(), 1e-12)
	assert.True(t, l.ShouldRenderNow(0.0))
	assert.False(t, l.ShouldRenderNow(0.01))
	assert.True(t, l.ShouldRenderNow(0.02))
	assert.InDelta(t, 2.0/60, l.NextRenderTime(), 1e-9)
}

func TestLimiterSkipDoesNotMoveCursor(t *testing.T) {
	l := NewFrameRateLimiter(60)
	l.Reset(0)
	l.ShouldRenderNow(0)
	before := l.NextRenderTime()

	for _, now := range []float64{0.001, 0.005, 0.0164} {
		assert.False(t, l.ShouldRenderNow(now))
		assert.Equal(t, before, l.NextRenderTime())
	}
}

func TestLimiterDriftCorrection(t *testing.T) {
	l := NewFrameRateLimiter(60)
	l.Reset(0)

	renders := 0
	if l.ShouldRenderNow(1.0) {
		renders++
	}
	// Immediately polling again at the same instant must not flush queued frames.
	for i := 0; i < 60; i++ {
		if l.ShouldRenderNow(1.0) {
			renders++
		}
	}

	assert.Equal(t, 1, renders)
	assert.Greater(t, l.NextRenderTime(), 1.0)
	assert.LessOrEqual(t, l.NextRenderTime(), 1.0+l.Interval()+1e-9)
}

func TestLimiterEpsilonTolerance(t *testing.T) {
	l := NewFrameRateLimiter(60)
	l.Reset(0)
	l.ShouldRenderNow(0)

	// 0.0001s early is inside the tolerance window.
	early := 1.0/60 - 0.0001
	assert.True(t, l.ShouldRenderNow(early))
	assert.InDelta(t, 2.0/60, l.NextRenderTime(), 1e-9)

	// The consumed slot is not rendered twice.
	assert.False(t, l.ShouldRenderNow(1.0/60+0.0001))
}

func TestLimiterCursorNeverFallsBehind(t *testing.T) {
	l := NewFrameRateLimiter(144)
	l.Reset(0)

	now := 0.0
	steps := []float64{0.001, 0.0003, 0.02, 0.5, 0.00001, 0.007, 3.25, 0.0069}
	for i := 0; i < 200; i++ {
		now += steps[i%len(steps)]
		l.ShouldRenderNow(now)
		assert.GreaterOrEqual(t, l.NextRenderTime(), now-RenderEpsilon)
	}
}

func TestLimiterIgnoresNonFiniteNow(t *testing.T) {
	l := NewFrameRateLimiter(60)
	l.Reset(1)

	assert.False(t, l.ShouldRenderNow(math.NaN()))
	assert.False(t, l.ShouldRenderNow(math.Inf(1)))
	assert.Equal(t, 1.0, l.NextRenderTime())

	l.Reset(math.NaN())
	assert.Equal(t, 1.0, l.NextRenderTime())
}

func TestLimiterSetCap(t *testing.T) {
	l := NewFrameRateLimiter(0)
	l.SetCap(30)
	l.Reset(2)

	assert.True(t, l.Capped())
	assert.True(t, l.ShouldRenderNow(2))
	assert.False(t, l.ShouldRenderNow(2.02))
	assert.True(t, l.ShouldRenderNow(2.034))

	l.SetCap(-1)
	assert.False(t, l.Capped())
	assert.True(t, l.ShouldRenderNow(2.035))
}
