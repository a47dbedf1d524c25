package timing

import "math"

// FrameRateLimiter decides whether a render should happen on a loop iteration.
//
// It keeps a cursor with the next scheduled render time. A render is allowed
// once the clock reaches the cursor (within RenderEpsilon); the cursor then
// jumps forward by whole intervals past now, so frames missed during a stall
// collapse into a single render instead of a burst.
type FrameRateLimiter struct {
	interval       float64 // 0 means uncapped
	nextRenderTime float64
}

// NewFrameRateLimiter creates a limiter for the given cap in Hz.
// Degenerate caps (<= 0, non-finite) produce an uncapped limiter.
func NewFrameRateLimiter(capHz float64) *FrameRateLimiter {
	return &FrameRateLimiter{interval: intervalFor(capHz)}
}

// ShouldRenderNow reports whether the caller should render at time now.
func (l *FrameRateLimiter) ShouldRenderNow(now float64) bool {
	if l.interval == 0 {
		return true
	}
	if !finite(now) {
		return false
	}
	if now+RenderEpsilon < l.nextRenderTime {
		return false
	}

	if l.nextRenderTime > now {
		// Due within epsilon: consume this slot so the next call does not render again.
		l.nextRenderTime += l.interval
		return true
	}

	// Skip every boundary at or before now in one step.
	missed := math.Floor((now-l.nextRenderTime)/l.interval) + 1
	l.nextRenderTime += missed * l.interval
	for l.nextRenderTime <= now {
		l.nextRenderTime += l.interval
	}
	return true
}

// Reset re-baselines the cursor so the next render is due at now.
func (l *FrameRateLimiter) Reset(now float64) {
	if !finite(now) {
		return
	}
	l.nextRenderTime = now
}

// SetCap replaces the cap. The cursor is left alone; callers normally Reset
// right after switching modes.
func (l *FrameRateLimiter) SetCap(capHz float64) {
	l.interval = intervalFor(capHz)
}

// Capped reports whether renders are throttled.
func (l *FrameRateLimiter) Capped() bool {
	return l.interval > 0
}

// Interval returns the render interval in seconds (0 when uncapped).
func (l *FrameRateLimiter) Interval() float64 {
	return l.interval
}

// NextRenderTime returns the cursor.
func (l *FrameRateLimiter) NextRenderTime() float64 {
	return l.nextRenderTime
}
