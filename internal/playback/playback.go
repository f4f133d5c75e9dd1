// Package playback plays finished sounds on the default audio device.
package playback

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// ErrRateMismatch indicates a player requested at a different sample rate
// than the already open audio device.
var ErrRateMismatch = errors.New("audio device already open at another sample rate")

const (
	bytesPerSample = 4
	pollInterval   = 20 * time.Millisecond
)

// The audio device can only be opened once per process.
var (
	deviceMu   sync.Mutex
	deviceCtx  *oto.Context
	deviceRate int
)

// Player plays mono float samples.
type Player struct {
	ctx *oto.Context
}

// NewPlayer opens the audio device at sampleRate, or reuses it if it is
// already open at that rate.
func NewPlayer(sampleRate int) (*Player, error) {
	deviceMu.Lock()
	defer deviceMu.Unlock()

	if deviceCtx != nil {
		if deviceRate != sampleRate {
			return nil, fmt.Errorf("%w: open at %d Hz, requested %d Hz", ErrRateMismatch, deviceRate, sampleRate)
		}
		return &Player{ctx: deviceCtx}, nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	deviceCtx = ctx
	deviceRate = sampleRate
	return &Player{ctx: ctx}, nil
}

// Play plays samples and blocks until playback finishes or ctx is done.
func (p *Player) Play(ctx context.Context, samples []float64) error {
	pl := p.ctx.NewPlayer(bytes.NewReader(EncodeFloat32LE(samples)))
	defer func() { _ = pl.Close() }()

	pl.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			pl.Pause()
			return ctx.Err()
		case <-ticker.C:
			if !pl.IsPlaying() {
				return nil
			}
		}
	}
}

// EncodeFloat32LE converts samples to little-endian float32 PCM, clipping
// to [-1, 1].
func EncodeFloat32LE(samples []float64) []byte {
	out := make([]byte, len(samples)*bytesPerSample)
	for i, v := range samples {
		v = math.Max(-1, math.Min(1, v))
		binary.LittleEndian.PutUint32(out[i*bytesPerSample:], math.Float32bits(float32(v)))
	}
	return out
}
