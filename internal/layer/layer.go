// Package layer builds a single explosion by summing several noise layers,
// each time-scaled, faded and low-passed according to its index.
package layer

import (
	"context"
	"fmt"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/engine"
	"github.com/tphakala/go-audio-explosion/internal/filter"
	"github.com/tphakala/go-audio-explosion/internal/source"
)

// Layer shaping constants.
const (
	// MaxLayers is the largest supported layer count.
	MaxLayers = 10

	// maxPasses caps both the fade-out and the low-pass repetitions.
	maxPasses = 3

	// speedPerIndex is the playback-rate step between successive layers.
	speedPerIndex = 2
)

// Compositor builds explosions from a source generator.
type Compositor struct {
	src      *source.Generator
	headroom float64
}

// NewCompositor creates a compositor. headroom is the renormalization
// multiplier, normally buffer.DefaultHeadroom.
func NewCompositor(src *source.Generator, headroom float64) *Compositor {
	return &Compositor{
		src:      src,
		headroom: headroom,
	}
}

// ClampLayers forces n into [1, MaxLayers].
func ClampLayers(n int) int {
	return min(max(n, 1), MaxLayers)
}

// BuildLayer generates layer index of total. Higher indices run faster (and
// so sound higher), fade out harder and sit under a lower cutoff.
func (c *Compositor) BuildLayer(seconds float64, index, total int) (*buffer.Buffer, error) {
	if index < 0 || index >= total {
		return nil, fmt.Errorf("%w: layer %d of %d", buffer.ErrInvalidArgument, index, total)
	}

	b, err := c.src.Generate(secondsToSamples(seconds))
	if err != nil {
		return nil, err
	}

	if index > 0 {
		if err := engine.ChangeSpeedInPlace(b, float64(index*speedPerIndex)); err != nil {
			return nil, fmt.Errorf("layer %d: %w", index, err)
		}
	}

	fades := min(index+1, maxPasses)
	for range fades {
		if err := filter.FadeOut(b, b.Len()); err != nil {
			return nil, err
		}
	}

	alphaStart := float64(index+1) / float64(total)
	alphaEnd := float64(index) / float64(total)
	passes := max(maxPasses-index, 1)
	for range passes {
		if err := filter.SlidingLowPassInPlace(b, alphaStart, alphaEnd); err != nil {
			return nil, fmt.Errorf("layer %d: %w", index, err)
		}
		buffer.Renormalize(b, c.headroom)
	}

	return b, nil
}

// Compose builds layers layers of the given duration, sums them and
// renormalizes the result. The layer count is clamped with ClampLayers.
// ctx is checked between layers.
func (c *Compositor) Compose(ctx context.Context, seconds float64, layers int) (*buffer.Buffer, error) {
	layers = ClampLayers(layers)

	built := make([]*buffer.Buffer, 0, layers)
	for i := range layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := c.BuildLayer(seconds, i, layers)
		if err != nil {
			return nil, err
		}
		built = append(built, b)
	}

	out := built[0]
	for _, b := range built[1:] {
		buffer.Accumulate(out, b)
	}
	buffer.Renormalize(out, c.headroom)
	return out, nil
}

func secondsToSamples(seconds float64) int {
	return int(seconds * buffer.SampleRate)
}
