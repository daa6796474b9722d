package loop

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/thruflo/sortviz/internal/dataset"
	"github.com/thruflo/sortviz/internal/logging"
	"github.com/thruflo/sortviz/internal/sorting"
	"github.com/thruflo/sortviz/internal/stepper"
)

// State is the controller's run state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// ExitReason indicates why a run stopped.
type ExitReason int

const (
	ExitReasonUnknown   ExitReason = iota
	ExitReasonCompleted            // Algorithm ran to exhaustion
	ExitReasonCancelled            // Cancel was called or the context ended
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonCompleted:
		return "completed"
	case ExitReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Output is the side-channel opened for the duration of a run, such as the
// tone generator.
type Output interface {
	Start() error
	Stop() error
}

// Result describes a finished run.
type Result struct {
	Reason     ExitReason
	Algorithm  string
	Size       int
	Steps      int64
	PacedSteps int64
	Counts     dataset.Counts
	Elapsed    time.Duration
	Sorted     bool
	Error      error
}

// Frame is what an observer reads on each poll.
type Frame struct {
	Values    []int
	Focus     int
	Running   bool
	Elapsed   time.Duration
	Algorithm string
	Counts    dataset.Counts
	Steps     int64
}

// Options holds the dependencies of a Controller. Zero values get defaults.
type Options struct {
	Registry *sorting.Registry
	Speed    *stepper.Speed
	Sleep    stepper.SleepFunc
	Output   Output
	Clock    func() time.Time
	Rand     *rand.Rand
	Logger   *logging.Logger
	Dataset  *dataset.Dataset
}

// Controller runs sorting algorithms against a dataset one at a time.
type Controller struct {
	registry *sorting.Registry
	speed    *stepper.Speed
	emitter  *stepper.Emitter
	output   Output
	clock    func() time.Time
	logger   *logging.Logger
	data     *dataset.Dataset

	mu        sync.Mutex
	state     State
	rng       *rand.Rand
	algorithm string
	startedAt time.Time
	elapsed   time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
	last      *Result
}

// New creates a Controller. The dataset starts empty unless opts.Dataset is
// set; call Reset to fill it.
func New(opts Options) *Controller {
	if opts.Registry == nil {
		opts.Registry = sorting.Default()
	}
	if opts.Speed == nil {
		opts.Speed = stepper.NewSpeed(100, 100)
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Dataset == nil {
		opts.Dataset = dataset.New()
	}

	return &Controller{
		registry: opts.Registry,
		speed:    opts.Speed,
		emitter:  stepper.NewEmitter(opts.Speed, opts.Sleep),
		output:   opts.Output,
		clock:    opts.Clock,
		logger:   opts.Logger.With("component", "loop"),
		data:     opts.Dataset,
		rng:      opts.Rand,
	}
}

// Speed returns the speed knob shared with the emitter.
func (c *Controller) Speed() *stepper.Speed {
	return c.speed
}

// Registry returns the algorithm registry.
func (c *Controller) Registry() *sorting.Registry {
	return c.registry
}

// Dataset returns the dataset. Callers other than the running algorithm
// must only read from it.
func (c *Controller) Dataset() *dataset.Dataset {
	return c.data
}

// State returns the current run state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Running reports whether a run is in flight.
func (c *Controller) Running() bool {
	return c.State() == StateRunning
}

// transition moves from one state to another. It must be called with mu
// held and reports false if the controller is not in from.
func (c *Controller) transition(from, to State) bool {
	if c.state != from {
		return false
	}
	c.state = to
	return true
}

// Reset refills the dataset with a fresh random permutation of 1..n. It is
// refused while running, returning false and leaving everything untouched.
func (c *Controller) Reset(n int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning {
		c.logger.Debug("reset ignored", "state", c.state, "size", n)
		return false, nil
	}

	if err := c.data.Reset(n, c.rng); err != nil {
		return false, err
	}
	c.elapsed = 0
	c.startedAt = time.Time{}
	c.emitter.Clear()
	c.emitter.ResetCounters()

	c.logger.Debug("dataset reset", "size", n)
	return true, nil
}

// Start resolves name and begins sorting on a new goroutine. It returns
// false without error if a run is already in flight. The run stops early if
// ctx ends or Cancel is called.
// Output.Start runs outside the lock so Frame keeps answering while an
// audio device opens.
func (c *Controller) Start(ctx context.Context, name string) (bool, error) {
	c.mu.Lock()

	if c.state == StateRunning {
		c.logger.Debug("start ignored", "state", c.state, "algorithm", name)
		c.mu.Unlock()
		return false, nil
	}

	alg, err := c.registry.Lookup(name)
	if err != nil {
		c.mu.Unlock()
		return false, err
	}

	if !c.transition(StateIdle, StateRunning) {
		c.mu.Unlock()
		return false, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	c.algorithm = alg.Title
	c.startedAt = c.clock()
	c.elapsed = 0
	c.cancel = cancel
	c.done = done
	c.emitter.ResetCounters()
	size := c.data.Len()
	c.mu.Unlock()

	if c.output != nil {
		if err := c.output.Start(); err != nil {
			c.logger.Warn("output start failed", "error", err)
		}
	}

	c.logger.Info("run started",
		"algorithm", alg.Key,
		"size", size,
		"delay", c.speed.Delay())

	go c.drive(runCtx, alg, done)
	return true, nil
}

// drive pulls steps from the algorithm and paces them until the sequence is
// exhausted or the context ends.
func (c *Controller) drive(ctx context.Context, alg sorting.Algorithm, done chan struct{}) {
	var err error
	for step := range alg.Sort(c.data) {
		if err = c.emitter.Step(ctx, step); err != nil {
			break
		}
	}
	c.finish(alg, err, done)
}

func (c *Controller) finish(alg sorting.Algorithm, err error, done chan struct{}) {
	if c.output != nil {
		if stopErr := c.output.Stop(); stopErr != nil {
			c.logger.Warn("output stop failed", "error", stopErr)
		}
	}
	c.emitter.Clear()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.elapsed = c.clock().Sub(c.startedAt)
	result := Result{
		Reason:     ExitReasonCompleted,
		Algorithm:  alg.Title,
		Size:       c.data.Len(),
		Steps:      c.emitter.Emitted(),
		PacedSteps: c.emitter.PacedSteps(),
		Counts:     c.data.Counts(),
		Elapsed:    c.elapsed,
		Sorted:     c.data.IsSorted(),
	}
	if err != nil {
		result.Reason = ExitReasonCancelled
		if !errors.Is(err, context.Canceled) {
			result.Error = err
		}
	}
	c.last = &result

	c.cancel()
	c.cancel = nil
	c.transition(StateRunning, StateIdle)
	close(done)

	c.logger.Info("run finished",
		"algorithm", alg.Key,
		"reason", result.Reason,
		"steps", result.Steps,
		"elapsed", result.Elapsed,
		"sorted", result.Sorted)
}

// Cancel stops the current run at its next suspension point. It returns
// false if nothing was running.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning || c.cancel == nil {
		return false
	}
	c.cancel()
	c.logger.Info("run cancel requested", "algorithm", c.algorithm)
	return true
}

// Wait blocks until the current run, if any, has finished.
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel closed when the current run finishes, or nil if no
// run has started.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// Elapsed is the time since start while running, the run's duration once it
// has finished, and zero after a reset.
func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsedLocked()
}

func (c *Controller) elapsedLocked() time.Duration {
	if c.state == StateRunning {
		return c.clock().Sub(c.startedAt)
	}
	return c.elapsed
}

// LastResult returns the result of the most recent finished run.
func (c *Controller) LastResult() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.last == nil {
		return Result{}, false
	}
	return *c.last, true
}

// Frame returns a consistent view for observers.
func (c *Controller) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Frame{
		Values:    c.data.Snapshot(),
		Focus:     c.emitter.Focus(),
		Running:   c.state == StateRunning,
		Elapsed:   c.elapsedLocked(),
		Algorithm: c.algorithm,
		Counts:    c.data.Counts(),
		Steps:     c.emitter.Emitted(),
	}
}
