package explosion

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/filter"
	"github.com/tphakala/go-audio-explosion/internal/layer"
	"github.com/tphakala/go-audio-explosion/internal/reverb"
	"github.com/tphakala/go-audio-explosion/internal/source"
)

// Synthesizer renders explosions for one configuration. Each Synthesizer
// owns its random stream, so successive Generate calls produce different
// explosions. A Synthesizer is not safe for concurrent use; run several
// Synthesizers to render in parallel.
type Synthesizer struct {
	params     Params
	tuning     Tuning
	seed       int64
	rng        *rand.Rand
	compositor *layer.Compositor
	reverb     *reverb.Engine
	progress   ProgressSink
	log        logrus.FieldLogger
}

// New creates a synthesizer from config.
func New(config *Config) (*Synthesizer, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidArgument)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	tuning := config.tuning()
	rng := rand.New(rand.NewSource(seed))
	src := source.NewGenerator(rng, config.Params.Input, tuning.NoiseGain)

	return &Synthesizer{
		params:     config.Params.Normalized(),
		tuning:     tuning,
		seed:       seed,
		rng:        rng,
		compositor: layer.NewCompositor(src, tuning.Headroom),
		reverb:     reverb.New(rng, tuning.reverbConfig()),
		progress:   config.Progress,
		log:        log,
	}, nil
}

// Params returns the normalized parameters.
func (s *Synthesizer) Params() Params {
	return s.params
}

// Seed returns the seed of the random stream.
func (s *Synthesizer) Seed() int64 {
	return s.seed
}

// Generate renders one explosion. ctx is checked between stages, layers,
// pre-explosions and reverb reflections; on cancellation every intermediate
// buffer is dropped and the returned error satisfies errors.Is(err, ctx.Err()).
func (s *Synthesizer) Generate(ctx context.Context) (*Sound, error) {
	p := &s.params
	start := time.Now()

	s.log.WithFields(logrus.Fields{
		"duration":       p.Duration,
		"layers":         p.Layers,
		"pre_explosions": p.PreExplosions,
		"speed":          p.FinalSpeedFactor,
		"reverb":         p.Reverb,
		"input":          len(p.Input) > 0,
		"seed":           s.seed,
	}).Debug("synthesis started")

	pre, err := s.preExplosions(ctx)
	if err != nil {
		return nil, fmt.Errorf("pre-explosions: %w", err)
	}
	s.milestone(progressPreExplosions)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("main explosion: %w", err)
	}
	body, err := s.compositor.Compose(ctx, p.Duration, p.Layers)
	if err != nil {
		return nil, fmt.Errorf("main explosion: %w", err)
	}
	s.milestone(progressMainExplosion)

	if pre != nil {
		buffer.Accumulate(body, pre)
		buffer.Renormalize(body, s.tuning.Headroom)
	}
	s.milestone(progressCombined)

	finish := buildFinishingPipeline(p, &s.tuning, s.reverb, s.progress, s.log)
	out, err := finish.Run(ctx, body)
	if err != nil {
		return nil, err
	}

	s.report(progressDone)

	s.log.WithFields(logrus.Fields{
		"samples": out.Len(),
		"elapsed": time.Since(start),
	}).Debug("synthesis finished")

	return &Sound{
		Samples:    out.Samples(),
		SampleRate: SampleRate,
	}, nil
}

// preExplosions renders the quieter explosions preceding the main one,
// randomly offset within PreExplosionDelay and darkened by a constant
// low-pass. It returns nil when no pre-explosions are configured.
func (s *Synthesizer) preExplosions(ctx context.Context) (*buffer.Buffer, error) {
	p := &s.params
	if p.PreExplosions == 0 {
		return nil, nil
	}

	pe, err := buffer.New(secondsToSamples(p.Duration))
	if err != nil {
		return nil, err
	}

	maxOffset := secondsToSamples(p.PreExplosionDelay)
	for i := range p.PreExplosions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		exp, err := s.compositor.Compose(ctx, p.Duration/preExplosionDivisor, p.Layers)
		if err != nil {
			return nil, err
		}

		offset := 0
		if maxOffset > 0 {
			offset = s.rng.Intn(maxOffset + 1)
		}
		buffer.Delay(exp, offset)
		buffer.Accumulate(pe, exp)
		buffer.Renormalize(pe, s.tuning.Headroom)

		s.log.WithFields(logrus.Fields{
			"index":  i,
			"offset": offset,
		}).Debug("pre-explosion added")
	}

	for range p.PreExplosionLowPassIters {
		if err := filter.SlidingLowPassInPlace(pe, p.PreExplosionLowPassFactor, p.PreExplosionLowPassFactor); err != nil {
			return nil, err
		}
	}
	buffer.Renormalize(pe, s.tuning.Headroom)

	return pe, nil
}

// milestone reports fraction only when reverb is disabled.
func (s *Synthesizer) milestone(fraction float64) {
	if !s.params.Reverb {
		s.report(fraction)
	}
}

func (s *Synthesizer) report(fraction float64) {
	if s.progress != nil {
		s.progress.Report(fraction)
	}
}
