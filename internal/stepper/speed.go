package stepper

import (
	"sync/atomic"
	"time"
)

// Speed is the external speed knob. A higher value means a shorter delay:
// delay = max - value milliseconds. It is read on every paced step, so
// changes apply to a run in progress.
type Speed struct {
	max   int64
	value atomic.Int64
}

// NewSpeed returns a knob with range [0, max] set to value.
func NewSpeed(max, value int) *Speed {
	if max < 0 {
		max = 0
	}
	s := &Speed{max: int64(max)}
	s.Set(value)
	return s
}

// Max returns the top of the knob range.
func (s *Speed) Max() int {
	return int(s.max)
}

// Value returns the current knob reading.
func (s *Speed) Value() int {
	return int(s.value.Load())
}

// Set moves the knob to v, clamped to [0, max].
func (s *Speed) Set(v int) {
	s.value.Store(s.clamp(int64(v)))
}

// Add moves the knob by delta and returns the new reading.
func (s *Speed) Add(delta int) int {
	for {
		old := s.value.Load()
		next := s.clamp(old + int64(delta))
		if s.value.CompareAndSwap(old, next) {
			return int(next)
		}
	}
}

// Delay returns the per-step delay for the current reading.
func (s *Speed) Delay() time.Duration {
	ms := s.max - s.value.Load()
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

func (s *Speed) clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	if v > s.max {
		return s.max
	}
	return v
}
