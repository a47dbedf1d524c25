// Package config provides the persisted player settings: key layouts per
// lane count, frame-rate caps per mode, and the host loop timing knobs.
package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/opendan/opendan/internal/timing"
)

// Lane count limits accepted by the shell.
const (
	MinLanes = 1
	MaxLanes = 10
)

// DefaultPollHz is how often the host loop samples the clock.
const DefaultPollHz = 500.0

// ErrLayoutLength is returned when a key layout does not match its lane count.
var ErrLayoutLength = errors.New("config: key layout length does not match lane count")

// ErrLaneCount is returned for lane counts outside [MinLanes, MaxLanes].
var ErrLaneCount = errors.New("config: lane count out of range")

// Settings is the on-disk settings document.
type Settings struct {
	KeyLayouts   map[int][]string `yaml:"key_layouts"`
	IngameFPSCap *float64         `yaml:"ingame_fps_cap"` // nil = unlimited
	MenuFPSCap   *float64         `yaml:"menu_fps_cap"`   // nil = unlimited
	Fullscreen   bool             `yaml:"fullscreen"`
	Timing       TimingSettings   `yaml:"timing"`
}

// TimingSettings holds the host loop rates.
type TimingSettings struct {
	FixedTickHz        float64 `yaml:"fixed_tick_hz"`
	MaxTicksPerAdvance int     `yaml:"max_ticks_per_advance"`
	PollHz             float64 `yaml:"poll_hz"`
}

// fallbackPool is the left-to-right key row used for lane counts without a layout.
var fallbackPool = []string{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";"}

// KeysForLanes returns the key layout for the given lane count. When no
// layout is stored, a home-row layout is generated and padded with space.
func (s Settings) KeysForLanes(lanes int) []string {
	if keys, ok := s.KeyLayouts[lanes]; ok && len(keys) == lanes {
		out := make([]string, len(keys))
		copy(out, keys)
		return out
	}
	return GenerateLayout(lanes)
}

// SetKeysForLanes stores a layout. The number of keys must equal lanes.
func (s *Settings) SetKeysForLanes(lanes int, keys []string) error {
	if lanes < MinLanes || lanes > MaxLanes {
		return fmt.Errorf("%w: %d", ErrLaneCount, lanes)
	}
	if len(keys) != lanes {
		return fmt.Errorf("%w: expected %d keys, got %d", ErrLayoutLength, lanes, len(keys))
	}
	if s.KeyLayouts == nil {
		s.KeyLayouts = make(map[int][]string)
	}
	layout := make([]string, len(keys))
	for i, k := range keys {
		layout[i] = NormalizeKey(k)
	}
	s.KeyLayouts[lanes] = layout
	return nil
}

// LaneCounts returns the lane counts that have a stored layout, ascending.
func (s Settings) LaneCounts() []int {
	counts := make([]int, 0, len(s.KeyLayouts))
	for n := range s.KeyLayouts {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	return counts
}

// GenerateLayout builds the fallback layout for a lane count.
func GenerateLayout(lanes int) []string {
	if lanes <= 0 {
		return nil
	}
	out := make([]string, 0, lanes)
	for i := 0; i < lanes; i++ {
		if i < len(fallbackPool) {
			out = append(out, fallbackPool[i])
		} else {
			out = append(out, "space")
		}
	}
	return out
}

// NormalizeKey maps a key name to the canonical lowercase form stored in
// settings. A literal space becomes "space".
func NormalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	return strings.ToLower(strings.TrimSpace(k))
}

// IngameCap returns the in-game render cap in Hz (timing.Uncapped when unlimited).
func (s Settings) IngameCap() float64 {
	return capValue(s.IngameFPSCap)
}

// MenuCap returns the menu render cap in Hz (timing.Uncapped when unlimited).
func (s Settings) MenuCap() float64 {
	return capValue(s.MenuFPSCap)
}

// SetIngameCap applies the command-line rule: hz <= 0 means unlimited,
// anything else is clamped to the supported range.
func (s *Settings) SetIngameCap(hz float64) {
	s.IngameFPSCap = capPointer(timing.ClampCap(hz))
}

// TimingConfig builds the loop configuration for a render cap.
func (s Settings) TimingConfig(capHz float64) timing.Config {
	return timing.Config{
		FixedTickHz:        s.Timing.FixedTickHz,
		RenderCapHz:        capHz,
		MaxTicksPerAdvance: s.Timing.MaxTicksPerAdvance,
	}.Normalize()
}

// PollInterval returns the host loop sampling period.
func (s Settings) PollInterval() time.Duration {
	hz := s.Timing.PollHz
	if !validPollHz(hz) {
		hz = DefaultPollHz
	}
	return time.Duration(float64(time.Second) / hz)
}

// validPollHz rejects rates that do not yield a positive whole-nanosecond period.
func validPollHz(hz float64) bool {
	if math.IsNaN(hz) || math.IsInf(hz, 0) || hz <= 0 {
		return false
	}
	return float64(time.Second)/hz >= 1
}

// Normalize repairs values a hand-edited file may get wrong: out-of-range
// caps, missing timing values, and layouts whose length does not match
// their lane count (those are dropped so the fallback layout is used).
func (s Settings) Normalize() Settings {
	if s.IngameFPSCap != nil {
		s.IngameFPSCap = capPointer(timing.ClampCap(*s.IngameFPSCap))
	}
	if s.MenuFPSCap != nil {
		s.MenuFPSCap = capPointer(timing.ClampCap(*s.MenuFPSCap))
	}

	t := timing.Config{
		FixedTickHz:        s.Timing.FixedTickHz,
		MaxTicksPerAdvance: s.Timing.MaxTicksPerAdvance,
	}.Normalize()
	s.Timing.FixedTickHz = t.FixedTickHz
	s.Timing.MaxTicksPerAdvance = t.MaxTicksPerAdvance
	if !validPollHz(s.Timing.PollHz) {
		s.Timing.PollHz = DefaultPollHz
	}

	layouts := make(map[int][]string, len(s.KeyLayouts))
	for lanes, keys := range s.KeyLayouts {
		if lanes < MinLanes || lanes > MaxLanes || len(keys) != lanes {
			continue
		}
		layout := make([]string, len(keys))
		for i, k := range keys {
			layout[i] = NormalizeKey(k)
		}
		layouts[lanes] = layout
	}
	s.KeyLayouts = layouts
	return s
}

func capValue(p *float64) float64 {
	if p == nil {
		return timing.Uncapped
	}
	return timing.NormalizeCap(*p)
}

func capPointer(hz float64) *float64 {
	if hz == timing.Uncapped {
		return nil
	}
	return &hz
}
