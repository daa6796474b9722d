package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/thruflo/sortviz/internal/logging"
	"github.com/thruflo/sortviz/internal/loop"
	"github.com/thruflo/sortviz/internal/sorting"
	"github.com/thruflo/sortviz/internal/stepper"
	"github.com/thruflo/sortviz/internal/tone"
)

// Controller is the run controller the TUI drives and observes.
type Controller interface {
	Frame() loop.Frame
	Start(ctx context.Context, name string) (bool, error)
	Reset(n int) (bool, error)
	Cancel() bool
	Speed() *stepper.Speed
	Registry() *sorting.Registry
}

// Sound is the tone output steered from the render loop.
type Sound interface {
	Track(index, value, n int, running bool)
	Mode() tone.Mode
	CycleMode() tone.Mode
}

// Options configures a TUI. Zero values get defaults.
type Options struct {
	Algorithm string
	Size      int
	MaxSize   int
	FPS       int
	SpeedStep int
	SizeStep  int
	Autostart bool
	Logger    *logging.Logger
}

// Default option values.
const (
	DefaultFPS       = 60
	DefaultMaxSize   = 1000
	DefaultSpeedStep = 5
	DefaultSizeStep  = 10
)

// TUI manages the terminal user interface.
type TUI struct {
	terminal  *Terminal
	keyReader *KeyReader
	ctrl      Controller
	sound     Sound
	view      *ChartView
	logger    *logging.Logger

	fps       int
	maxSize   int
	speedStep int
	sizeStep  int
	autostart bool

	mu         sync.Mutex
	algorithm  string
	size       int
	notice     string
	width      int
	height     int
	running    bool
	wasRunning bool
}

// NewTUI creates a new TUI instance drawing to out. A nil sound keeps the
// session silent.
func NewTUI(out io.Writer, ctrl Controller, sound Sound, opts Options) *TUI {
	if sound == nil {
		sound = tone.NewGenerator(tone.NopBackend{}, nil, tone.ModeOff)
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	if opts.SpeedStep <= 0 {
		opts.SpeedStep = DefaultSpeedStep
	}
	if opts.SizeStep <= 0 {
		opts.SizeStep = DefaultSizeStep
	}
	if opts.Size <= 0 {
		opts.Size = len(ctrl.Frame().Values)
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	algorithm := opts.Algorithm
	if alg, err := ctrl.Registry().Lookup(algorithm); err == nil {
		algorithm = alg.Key
	} else {
		algorithm = ctrl.Registry().Next("", 0)
	}

	return &TUI{
		terminal:  NewTerminal(out),
		ctrl:      ctrl,
		sound:     sound,
		view:      &ChartView{},
		logger:    opts.Logger.With("component", "tui"),
		fps:       opts.FPS,
		maxSize:   opts.MaxSize,
		speedStep: opts.SpeedStep,
		sizeStep:  opts.SizeStep,
		autostart: opts.Autostart,
		algorithm: algorithm,
		size:      min(opts.Size, opts.MaxSize),
		width:     80,
		height:    24,
	}
}

// Algorithm returns the key of the selected algorithm.
func (t *TUI) Algorithm() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.algorithm
}

// Size returns the size the next reset will use.
func (t *TUI) Size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// Notice returns the message shown in the header, if any.
func (t *TUI) Notice() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notice
}

func (t *TUI) setNotice(format string, args ...any) {
	t.mu.Lock()
	t.notice = fmt.Sprintf(format, args...)
	t.mu.Unlock()
}

// Apply performs a user action and reports whether the session should end.
func (t *TUI) Apply(ctx context.Context, action Action) (quit bool) {
	if action != ActionNone {
		t.logger.Debug("action", "action", action)
	}

	switch action {
	case ActionStart:
		name := t.Algorithm()
		started, err := t.ctrl.Start(ctx, name)
		switch {
		case err != nil:
			t.setNotice("start failed: %v", err)
		case !started:
			t.setNotice("already running")
		default:
			t.setNotice("")
		}

	case ActionReset:
		ok, err := t.ctrl.Reset(t.Size())
		switch {
		case err != nil:
			t.setNotice("reset failed: %v", err)
		case !ok:
			t.setNotice("reset ignored while running")
		default:
			t.setNotice("")
		}

	case ActionCancel:
		if !t.ctrl.Cancel() {
			t.setNotice("nothing to cancel")
		}

	case ActionFaster:
		t.ctrl.Speed().Add(t.speedStep)

	case ActionSlower:
		t.ctrl.Speed().Add(-t.speedStep)

	case ActionPrevAlgorithm, ActionNextAlgorithm:
		delta := 1
		if action == ActionPrevAlgorithm {
			delta = -1
		}
		t.mu.Lock()
		t.algorithm = t.ctrl.Registry().Next(t.algorithm, delta)
		t.mu.Unlock()

	case ActionCycleSound:
		t.sound.CycleMode()

	case ActionSizeDown, ActionSizeUp:
		t.mu.Lock()
		if action == ActionSizeDown {
			t.size = max(1, t.size-t.sizeStep)
		} else {
			t.size = min(t.maxSize, t.size+t.sizeStep)
		}
		t.mu.Unlock()

	case ActionQuit:
		return true
	}
	return false
}

// State assembles the view state for the given frame.
func (t *TUI) State(frame loop.Frame) ViewState {
	speed := t.ctrl.Speed()

	t.mu.Lock()
	algorithm := t.algorithm
	size := t.size
	notice := t.notice
	t.mu.Unlock()

	selected := algorithm
	if alg, err := t.ctrl.Registry().Lookup(algorithm); err == nil {
		selected = alg.Title
	}

	return ViewState{
		Frame:    frame,
		Selected: selected,
		Size:     size,
		Speed:    speed.Value(),
		MaxSpeed: speed.Max(),
		Delay:    speed.Delay(),
		Sound:    t.sound.Mode(),
		Notice:   notice,
	}
}

// Render polls the controller once, steers the tone from the frame and
// returns the screen lines at the given size.
func (t *TUI) Render(width, height int) []string {
	frame := t.ctrl.Frame()

	value := 0
	if frame.Focus >= 0 && frame.Focus < len(frame.Values) {
		value = frame.Values[frame.Focus]
	}
	t.sound.Track(frame.Focus, value, len(frame.Values), frame.Running)

	t.mu.Lock()
	finished := t.wasRunning && !frame.Running
	t.wasRunning = frame.Running
	t.mu.Unlock()
	if finished {
		t.terminal.RingBell()
	}

	return t.view.Render(t.State(frame), width, height)
}

// Update redraws the screen. It is a no-op unless Run is active.
func (t *TUI) Update() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	if width, height, err := t.terminal.Size(); err == nil {
		t.width = width
		t.height = height
	}
	width, height := t.width, t.height
	t.mu.Unlock()

	t.terminal.DrawFrame(t.Render(width, height))
}

// Run starts the TUI event loop. It redraws at the configured frame rate
// and returns when the context is cancelled or the user quits.
func (t *TUI) Run(ctx context.Context) error {
	if err := t.terminal.EnterRaw(); err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer t.terminal.ExitRaw()

	t.terminal.EnterAltScreen()
	defer t.terminal.ExitAltScreen()
	t.terminal.HideCursor()
	defer t.terminal.ShowCursor()
	t.terminal.Clear()

	t.mu.Lock()
	t.running = true
	t.mu.Unlock()
	defer func() {
		t.mu.Lock()
		t.running = false
		t.mu.Unlock()
	}()

	t.keyReader = NewKeyReader(t.terminal)

	if t.autostart {
		t.Apply(ctx, ActionStart)
	}
	t.Update()

	keyCh := make(chan KeyEvent, 10)
	keyErr := make(chan error, 1)

	go func() {
		for {
			ev, err := t.keyReader.ReadKey()
			if err != nil {
				keyErr <- err
				return
			}
			select {
			case keyCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(t.fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-keyErr:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read key: %w", err)

		case ev := <-keyCh:
			if t.Apply(ctx, ParseAction(ev)) {
				return nil
			}
			t.Update()

		case <-ticker.C:
			t.Update()
		}
	}
}
