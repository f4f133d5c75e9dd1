// Package reverb synthesizes a reverb tail by repeatedly deriving delayed,
// filtered echoes from a progressively attenuated copy of the dry signal.
package reverb

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/filter"
)

// tailMultiplier is the output length relative to the dry signal.
const tailMultiplier = 2

// Reflection describes one family of reflections.
type Reflection struct {
	// AlphaStart and AlphaEnd are the sliding low-pass coefficients applied
	// to each echo.
	AlphaStart float64
	AlphaEnd   float64

	// GainMin and GainRange define the per-iteration attenuation of the
	// echo source, drawn uniformly from [GainMin, GainMin+GainRange).
	GainMin   float64
	GainRange float64

	// MaxDelay is the largest random delay in samples.
	MaxDelay int
}

// Config holds the reverb tunables.
type Config struct {
	Early Reflection
	Late  Reflection
}

// DefaultConfig returns the tuned defaults: bright early reflections within
// 300 ms and duller late reflections spread over 2 s.
func DefaultConfig() Config {
	return Config{
		Early: Reflection{
			AlphaStart: 0.5,
			AlphaEnd:   0.5,
			GainMin:    0.03,
			GainRange:  0.03,
			MaxDelay:   3 * buffer.SampleRate / 10,
		},
		Late: Reflection{
			AlphaStart: 0.5,
			AlphaEnd:   0.2,
			GainMin:    0.03,
			GainRange:  0.01,
			MaxDelay:   2 * buffer.SampleRate,
		},
	}
}

// ProgressFunc receives the completed fraction of the reverb in [0, 1].
type ProgressFunc func(fraction float64)

// Engine applies the reverb. An Engine is not safe for concurrent use.
type Engine struct {
	rng    *rand.Rand
	config Config
}

// New creates a reverb engine drawing gains and delays from rng.
func New(rng *rand.Rand, config Config) *Engine {
	return &Engine{
		rng:    rng,
		config: config,
	}
}

// Apply returns a buffer twice as long as dry holding the dry signal plus
// early and late reflections. ctx is checked before each reflection and
// progress, when non-nil, is called after each one. A dry signal shorter
// than two samples is returned silence-padded without reflections.
func (e *Engine) Apply(ctx context.Context, dry *buffer.Buffer, early, late int, progress ProgressFunc) (*buffer.Buffer, error) {
	if early < 0 || late < 0 {
		return nil, fmt.Errorf("%w: reflection counts must be non-negative (early=%d, late=%d)",
			buffer.ErrInvalidArgument, early, late)
	}

	out, err := buffer.New(dry.Len() * tailMultiplier)
	if err != nil {
		return nil, err
	}
	copy(out.Samples(), dry.Samples())

	total := early + late
	if total == 0 {
		return out, nil
	}
	// Too short to filter: nothing to echo, the padded dry signal is the result.
	if dry.Len() < filter.MinLowPassSamples {
		if progress != nil {
			progress(1)
		}
		return out, nil
	}

	echo := out.Copy()
	done := 0
	for _, pass := range []struct {
		refl  Reflection
		count int
	}{
		{e.config.Early, early},
		{e.config.Late, late},
	} {
		for range pass.count {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := e.reflect(out, echo, pass.refl); err != nil {
				return nil, err
			}
			done++
			if progress != nil {
				progress(float64(done) / float64(total))
			}
		}
	}

	return out, nil
}

// reflect derives one filtered, delayed echo into out and attenuates the
// echo source for the next iteration.
func (e *Engine) reflect(out, echo *buffer.Buffer, r Reflection) error {
	filtered, err := filter.SlidingLowPass(echo, r.AlphaStart, r.AlphaEnd)
	if err != nil {
		return err
	}

	gain := e.rng.Float64()*r.GainRange + r.GainMin
	buffer.Amplify(echo, gain)

	buffer.Delay(filtered, e.randomDelay(r.MaxDelay))
	buffer.Accumulate(out, filtered)
	return nil
}

// randomDelay draws a delay uniformly from [0, maxDelay].
func (e *Engine) randomDelay(maxDelay int) int {
	if maxDelay <= 0 {
		return 0
	}
	return e.rng.Intn(maxDelay + 1)
}
