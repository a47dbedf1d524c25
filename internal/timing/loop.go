package timing

// FrameResult describes what one host-loop iteration did.
type FrameResult struct {
	Now       float64 // clock reading used for this iteration
	Elapsed   float64 // seconds fed to the scheduler
	Ticks     int     // simulate callbacks invoked
	Rendered  bool    // render callback invoked
	Saturated bool    // tick bound hit with time still owed
	Behind    float64 // seconds owed beyond the current partial step
}

// Stats accumulates counters over the lifetime of a Loop.
type Stats struct {
	Ticks            uint64
	FramesRendered   uint64
	FramesSkipped    uint64
	SaturatedFrames  uint64
	ClockAnomalies   uint64
	SimulatedSeconds float64
	WallSeconds      float64
}

// Loop owns the clock, scheduler and limiter for a single host loop.
// It is not safe for concurrent use; one goroutine drives it.
type Loop struct {
	clock     Clock
	cfg       Config
	scheduler *FixedStepScheduler
	limiter   *FrameRateLimiter

	start float64
	last  float64
	stats Stats
}

// NewLoop creates a loop sampling clock, with cfg normalized.
// The first Frame measures elapsed time from the construction reading.
func NewLoop(clock Clock, cfg Config) *Loop {
	cfg = cfg.Normalize()
	l := &Loop{
		clock:     clock,
		cfg:       cfg,
		scheduler: NewFixedStepScheduler(cfg),
		limiter:   NewFrameRateLimiter(cfg.RenderCapHz),
	}
	now := clock.Seconds()
	if !finite(now) {
		now = 0
	}
	l.start = now
	l.last = now
	l.limiter.Reset(now)
	return l
}

// Frame runs one iteration: sample the clock once, emit fixed ticks through
// simulate, then call render if the limiter allows it. Either callback may be nil.
func (l *Loop) Frame(simulate func(dt float64), render func(alpha float64)) FrameResult {
	now := l.clock.Seconds()
	if !finite(now) {
		l.stats.ClockAnomalies++
		return FrameResult{Now: l.last}
	}

	elapsed := now - l.last
	if elapsed < 0 {
		// Clock went backwards: take the new reading as baseline and do not tick.
		l.stats.ClockAnomalies++
		elapsed = 0
	}
	l.last = now

	res := FrameResult{Now: now, Elapsed: elapsed}
	res.Ticks = l.scheduler.Advance(elapsed, simulate)
	res.Saturated = l.scheduler.Saturated()
	res.Behind = l.scheduler.Behind()

	if l.limiter.ShouldRenderNow(now) {
		if render != nil {
			render(l.scheduler.Alpha())
		}
		res.Rendered = true
	}

	l.record(res)
	return res
}

func (l *Loop) record(res FrameResult) {
	l.stats.Ticks += uint64(res.Ticks)
	l.stats.SimulatedSeconds += float64(res.Ticks) * l.scheduler.FixedStep()
	if res.Rendered {
		l.stats.FramesRendered++
	} else {
		l.stats.FramesSkipped++
	}
	if res.Saturated {
		l.stats.SaturatedFrames++
	}
	l.stats.WallSeconds = l.last - l.start
}

// Reset drops any catch-up debt and re-baselines the limiter to the current
// reading. Called when entering a new mode.
func (l *Loop) Reset() {
	l.scheduler.Reset()
	now := l.clock.Seconds()
	if !finite(now) {
		return
	}
	l.last = now
	l.limiter.Reset(now)
}

// SetRenderCap switches the render cap and resets the loop.
func (l *Loop) SetRenderCap(hz float64) {
	l.cfg.RenderCapHz = NormalizeCap(hz)
	l.limiter.SetCap(l.cfg.RenderCapHz)
	l.Reset()
}

// Config returns the normalized configuration in effect.
func (l *Loop) Config() Config {
	return l.cfg
}

// Scheduler exposes the fixed-step scheduler.
func (l *Loop) Scheduler() *FixedStepScheduler {
	return l.scheduler
}

// Limiter exposes the frame-rate limiter.
func (l *Loop) Limiter() *FrameRateLimiter {
	return l.limiter
}

// Stats returns a snapshot of the loop counters.
func (l *Loop) Stats() Stats {
	return l.stats
}
