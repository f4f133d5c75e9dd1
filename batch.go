package explosion

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// GenerateBatch renders n variants of config. Variant i is seeded with
// config.Seed+i when config.Seed is non-zero, so a seeded batch is
// reproducible regardless of parallelism. When parallel is true variants are
// rendered concurrently, at most GOMAXPROCS at a time.
//
// config.Progress receives the fraction of finished variants and, when
// parallel is true, may be called from several goroutines at once.
func GenerateBatch(ctx context.Context, config *Config, n int, parallel bool) ([]*Sound, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidArgument)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: batch size must be at least 1", ErrInvalidArgument)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	base := config.Seed
	if base == 0 {
		base = time.Now().UnixNano()
	}

	synths := make([]*Synthesizer, n)
	for i := range synths {
		cfg := *config
		cfg.Seed = base + int64(i)
		cfg.Progress = nil
		s, err := New(&cfg)
		if err != nil {
			return nil, err
		}
		synths[i] = s
	}

	output := make([]*Sound, n)
	var finished atomic.Int64
	render := func(ctx context.Context, i int) error {
		sound, err := synths[i].Generate(ctx)
		if err != nil {
			return fmt.Errorf("variant %d: %w", i, err)
		}
		output[i] = sound
		if config.Progress != nil {
			config.Progress.Report(float64(finished.Add(1)) / float64(n))
		}
		return nil
	}

	// Sequential processing
	if !parallel || n == 1 {
		for i := range synths {
			if err := render(ctx, i); err != nil {
				return nil, err
			}
		}
		return output, nil
	}

	// Parallel processing: the first failure cancels the remaining variants
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range synths {
		g.Go(func() error {
			return render(gctx, i)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return output, nil
}
