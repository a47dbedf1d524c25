package timing

// FixedStepScheduler converts variable frame time into fixed simulation ticks.
//
// Elapsed time is accumulated and drained in fixedStep slices. At most
// maxTicks slices are drained per Advance; the rest stays in the accumulator
// and is paid back on later calls, so a stall makes the simulation fall
// behind real time instead of freezing the caller.
type FixedStepScheduler struct {
	fixedStep   float64
	maxTicks    int
	accumulator float64
	saturated   bool
}

// NewFixedStepScheduler creates a scheduler from cfg (normalized first).
func NewFixedStepScheduler(cfg Config) *FixedStepScheduler {
	cfg = cfg.Normalize()
	return &FixedStepScheduler{
		fixedStep: 1.0 / cfg.FixedTickHz,
		maxTicks:  cfg.MaxTicksPerAdvance,
	}
}

// Advance adds elapsed seconds and invokes simulate once per whole step,
// up to the per-call bound. It returns the number of ticks emitted.
//
// Zero, negative and non-finite elapsed values emit nothing and leave the
// accumulator untouched.
func (s *FixedStepScheduler) Advance(elapsed float64, simulate func(dt float64)) int {
	s.saturated = false
	if !finite(elapsed) || elapsed <= 0 {
		return 0
	}

	s.accumulator += elapsed

	ticks := 0
	for s.accumulator >= s.fixedStep && ticks < s.maxTicks {
		if simulate != nil {
			simulate(s.fixedStep)
		}
		s.accumulator -= s.fixedStep
		ticks++
	}

	// Floating point drift can leave a hair below zero after many subtractions.
	if s.accumulator < 0 {
		s.accumulator = 0
	}

	s.saturated = s.accumulator >= s.fixedStep
	return ticks
}

// Accumulator returns the unsimulated time in seconds.
func (s *FixedStepScheduler) Accumulator() float64 {
	return s.accumulator
}

// FixedStep returns the tick size in seconds.
func (s *FixedStepScheduler) FixedStep() float64 {
	return s.fixedStep
}

// MaxTicksPerAdvance returns the per-call tick bound.
func (s *FixedStepScheduler) MaxTicksPerAdvance() int {
	return s.maxTicks
}

// Saturated reports whether the last Advance stopped at the tick bound with
// at least one whole step still pending.
func (s *FixedStepScheduler) Saturated() bool {
	return s.saturated
}

// Behind returns how much simulated time is owed beyond the current partial step.
func (s *FixedStepScheduler) Behind() float64 {
	if s.accumulator < s.fixedStep {
		return 0
	}
	return s.accumulator - s.fixedStep
}

// Alpha returns the fraction of a step sitting in the accumulator, in [0, 1].
// Renderers may use it to interpolate between the last two simulated states.
func (s *FixedStepScheduler) Alpha() float64 {
	a := s.accumulator / s.fixedStep
	if a > 1 {
		return 1
	}
	return a
}

// Reset discards accumulated time, including any catch-up debt.
func (s *FixedStepScheduler) Reset() {
	s.accumulator = 0
	s.saturated = false
}
