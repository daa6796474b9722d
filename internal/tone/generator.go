package tone

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Stream is a playing audio stream pulled from a Reader.
type Stream interface {
	Play()
	Pause()
	Close() error
}

// Backend opens audio streams.
type Backend interface {
	Open(r io.Reader) (Stream, error)
}

// Generator voices the focus of a running sort. It implements the run
// controller's output side-channel (Start/Stop) and is polled by the
// renderer through Track on every frame.
type Generator struct {
	backend Backend
	osc     *Oscillator
	mode    atomic.Int32

	mu      sync.Mutex
	stream  Stream
	started bool
}

// NewGenerator returns a generator voicing osc through backend.
func NewGenerator(backend Backend, osc *Oscillator, mode Mode) *Generator {
	if backend == nil {
		backend = NopBackend{}
	}
	if osc == nil {
		osc = NewOscillator(DefaultSampleRate)
	}
	g := &Generator{backend: backend, osc: osc}
	g.mode.Store(int32(mode))
	return g
}

// Mode returns what the pitch follows.
func (g *Generator) Mode() Mode {
	return Mode(g.mode.Load())
}

// SetMode changes what the pitch follows.
func (g *Generator) SetMode(m Mode) {
	g.mode.Store(int32(m))
	if m == ModeOff {
		g.osc.SetGate(false)
	}
}

// CycleMode advances to the next mode and returns it.
func (g *Generator) CycleMode() Mode {
	next := g.Mode().Next()
	g.SetMode(next)
	return next
}

// Start opens the audio stream on first use and starts playback. The
// oscillator stays gated until Track sees a running sort.
func (g *Generator) Start() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started {
		return nil
	}
	if g.stream == nil {
		stream, err := g.backend.Open(g.osc)
		if err != nil {
			return fmt.Errorf("failed to open audio stream: %w", err)
		}
		g.stream = stream
	}
	g.stream.Play()
	g.started = true
	return nil
}

// Stop silences the output and pauses playback.
func (g *Generator) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.osc.SetGate(false)
	if !g.started {
		return nil
	}
	g.stream.Pause()
	g.started = false
	return nil
}

// Started reports whether playback is on.
func (g *Generator) Started() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.started
}

// Track sets the pitch for the focused index and value in an array of n
// elements. The tone sounds only while running with a valid focus.
func (g *Generator) Track(index, value, n int, running bool) {
	mode := g.Mode()
	if !running || mode == ModeOff || index < 0 || n <= 0 {
		g.osc.SetGate(false)
		return
	}
	g.osc.SetFrequency(Frequency(mode, index, value, n))
	g.osc.SetGate(true)
}

// Close releases the audio stream.
func (g *Generator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.osc.SetGate(false)
	g.started = false
	if g.stream == nil {
		return nil
	}
	err := g.stream.Close()
	g.stream = nil
	return err
}

// NopBackend discards audio. It is used when sound is disabled and in tests.
type NopBackend struct{}

// Open returns a stream that never reads r.
func (NopBackend) Open(io.Reader) (Stream, error) {
	return &NopStream{}, nil
}

// NopStream records playback state without producing sound.
type NopStream struct {
	mu      sync.Mutex
	playing bool
	closed  bool
}

func (s *NopStream) Play() {
	s.mu.Lock()
	s.playing = true
	s.mu.Unlock()
}

func (s *NopStream) Pause() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

func (s *NopStream) Close() error {
	s.mu.Lock()
	s.playing = false
	s.closed = true
	s.mu.Unlock()
	return nil
}

// Playing reports whether Play was called more recently than Pause.
func (s *NopStream) Playing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}
