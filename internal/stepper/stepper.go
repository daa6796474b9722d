// Package stepper is the pacing primitive between a sorting algorithm and its
// observers. Algorithms yield Steps; the Emitter records each step's focus
// index for observers and suspends the caller for the delay set by the speed
// knob before handing control back.
package stepper

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"
)

// NoFocus is the focus index when no algorithm is running.
const NoFocus = -1

// Kind describes what an algorithm did before yielding a step.
type Kind int

const (
	KindCompare Kind = iota
	KindSwap
	KindShift
	KindWrite
	KindPlace
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindCompare:
		return "compare"
	case KindSwap:
		return "swap"
	case KindShift:
		return "shift"
	case KindWrite:
		return "write"
	case KindPlace:
		return "place"
	default:
		return "unknown"
	}
}

// Step is one unit of observable algorithm progress.
type Step struct {
	Kind  Kind
	Focus int
	// Paced is false for visual-only steps, which move the focus index
	// without suspending.
	Paced bool
}

// Paced returns a step that suspends for the current delay.
func Paced(kind Kind, focus int) Step {
	return Step{Kind: kind, Focus: focus, Paced: true}
}

// Visual returns a step that only moves the focus index.
func Visual(kind Kind, focus int) Step {
	return Step{Kind: kind, Focus: focus}
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the real-time SleepFunc. A zero duration yields the processor
// once instead of waiting.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		runtime.Gosched()
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoSleep never waits. Tests use it to drive algorithms to completion
// synchronously.
func NoSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// DelaySource supplies the delay applied after each paced step.
type DelaySource interface {
	Delay() time.Duration
}

// Emitter records the focus index and paces an algorithm.
type Emitter struct {
	delay   DelaySource
	sleep   SleepFunc
	focus   atomic.Int64
	emitted atomic.Int64
	paced   atomic.Int64
}

// NewEmitter returns an Emitter that waits delay.Delay() after every paced
// step. A nil sleep uses Sleep.
func NewEmitter(delay DelaySource, sleep SleepFunc) *Emitter {
	if sleep == nil {
		sleep = Sleep
	}
	e := &Emitter{delay: delay, sleep: sleep}
	e.focus.Store(NoFocus)
	return e
}

// Step records s.Focus as the focus index and, for paced steps, suspends the
// caller for the current delay. It returns ctx.Err() if ctx is done.
func (e *Emitter) Step(ctx context.Context, s Step) error {
	e.focus.Store(int64(s.Focus))
	e.emitted.Add(1)

	if !s.Paced {
		return ctx.Err()
	}
	e.paced.Add(1)

	var d time.Duration
	if e.delay != nil {
		d = e.delay.Delay()
	}
	if d < 0 {
		d = 0
	}
	return e.sleep(ctx, d)
}

// Focus returns the most recently recorded focus index, or NoFocus.
func (e *Emitter) Focus() int {
	return int(e.focus.Load())
}

// Clear sets the focus index back to NoFocus.
func (e *Emitter) Clear() {
	e.focus.Store(NoFocus)
}

// Emitted returns the number of steps recorded, paced or not.
func (e *Emitter) Emitted() int64 {
	return e.emitted.Load()
}

// PacedSteps returns the number of paced steps recorded.
func (e *Emitter) PacedSteps() int64 {
	return e.paced.Load()
}

// ResetCounters zeroes the step counters.
func (e *Emitter) ResetCounters() {
	e.emitted.Store(0)
	e.paced.Store(0)
}
