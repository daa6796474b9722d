// Package otobackend plays tone streams on the system audio device through
// oto. It is kept apart from package tone so that headless builds do not
// link the platform audio libraries.
package otobackend

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/thruflo/sortviz/internal/tone"
)

// Backend plays streams on the system audio device. The device context is
// created on the first Open; a process may only hold one.
type Backend struct {
	sampleRate int
	buffer     time.Duration
	volume     float64

	once sync.Once
	ctx  *oto.Context
	err  error
}

var _ tone.Backend = (*Backend)(nil)

// New returns a backend for the given sample rate, device buffer length and
// player volume in [0, 1].
func New(sampleRate int, buffer time.Duration, volume float64) *Backend {
	if sampleRate <= 0 {
		sampleRate = tone.DefaultSampleRate
	}
	return &Backend{sampleRate: sampleRate, buffer: buffer, volume: volume}
}

// Open starts a player pulling PCM from r.
func (b *Backend) Open(r io.Reader) (tone.Stream, error) {
	b.once.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   b.sampleRate,
			ChannelCount: tone.ChannelCount,
			Format:       oto.FormatFloat32LE,
			BufferSize:   b.buffer,
		})
		if err != nil {
			b.err = fmt.Errorf("failed to open audio device: %w", err)
			return
		}
		<-ready
		b.ctx = ctx
	})
	if b.err != nil {
		return nil, b.err
	}

	player := b.ctx.NewPlayer(r)
	player.SetVolume(b.volume)
	return player, nil
}
