package tone

import (
	"encoding/binary"
	"math"
	"sync/atomic"
)

const (
	DefaultSampleRate = 44100
	ChannelCount      = 2
	bytesPerSample    = 4 // float32
	bytesPerFrame     = ChannelCount * bytesPerSample

	// squareLevel keeps a full-scale square wave from clipping when mixed.
	squareLevel = 0.25
)

// Oscillator is an endless square-wave PCM stream in interleaved stereo
// float32 little-endian. Frequency, volume and gate may be changed from any
// goroutine while a backend is reading.
type Oscillator struct {
	sampleRate float64
	freq       atomic.Uint64 // math.Float64bits
	volume     atomic.Uint64 // math.Float64bits
	gate       atomic.Bool

	// phase is only touched by the reading goroutine.
	phase float64
}

// NewOscillator returns a silent oscillator at MinFreq and full volume.
func NewOscillator(sampleRate int) *Oscillator {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	o := &Oscillator{sampleRate: float64(sampleRate)}
	o.SetFrequency(MinFreq)
	o.SetVolume(1)
	return o
}

// SetFrequency sets the pitch in hertz.
func (o *Oscillator) SetFrequency(hz float64) {
	if hz < 0 {
		hz = 0
	}
	o.freq.Store(math.Float64bits(hz))
}

// Frequency returns the pitch in hertz.
func (o *Oscillator) Frequency() float64 {
	return math.Float64frombits(o.freq.Load())
}

// SetVolume sets the output gain, clamped to [0, 1].
func (o *Oscillator) SetVolume(v float64) {
	v = math.Max(0, math.Min(1, v))
	o.volume.Store(math.Float64bits(v))
}

// Volume returns the output gain.
func (o *Oscillator) Volume() float64 {
	return math.Float64frombits(o.volume.Load())
}

// SetGate opens (true) or closes (false) the output. A closed gate emits
// silence but keeps the stream flowing.
func (o *Oscillator) SetGate(open bool) {
	o.gate.Store(open)
}

// Gate reports whether the output is open.
func (o *Oscillator) Gate() bool {
	return o.gate.Load()
}

// Read fills p with whole frames and never returns an error.
func (o *Oscillator) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	freq := o.Frequency()
	level := float32(0)
	if o.Gate() {
		level = float32(squareLevel * o.Volume())
	}
	step := freq / o.sampleRate

	for f := 0; f < frames; f++ {
		sample := level
		if o.phase >= 0.5 {
			sample = -level
		}
		bits := math.Float32bits(sample)
		off := f * bytesPerFrame
		for c := 0; c < ChannelCount; c++ {
			binary.LittleEndian.PutUint32(p[off+c*bytesPerSample:], bits)
		}

		o.phase += step
		o.phase -= math.Floor(o.phase)
	}
	return frames * bytesPerFrame, nil
}
