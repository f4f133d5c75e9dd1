// Command explodomatica renders explosion sound effects to WAV files.
//
// Usage:
//
//	explodomatica boom.wav
//	explodomatica -preset distant -seed 42 rumble.wav
//	explodomatica -duration 2 -layers 6 -reverb=false -play pop.wav
//	explodomatica -input thunder.ogg -speed 0.8 thunder-boom.wav
//	explodomatica -count 8 -mutate variants.wav          # variants-1.wav ... variants-8.wav
//
// Explicit flags override the values of the selected preset.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"

	explosion "github.com/tphakala/go-audio-explosion"
	"github.com/tphakala/go-audio-explosion/internal/analysis"
	"github.com/tphakala/go-audio-explosion/internal/audiofile"
	"github.com/tphakala/go-audio-explosion/internal/playback"
)

const (
	// pollInterval is how often the progress bar is redrawn.
	pollInterval = 100 * time.Millisecond

	// progressBarWidth is the number of cells in the progress bar.
	progressBarWidth = 40
)

func main() {
	if err := run(); err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return
		case errors.Is(err, errUsage):
			os.Exit(2)
		default:
			logrus.Fatal(err)
		}
	}
}

func run() error {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if err != nil {
		return err
	}

	log := newLogger(os.Stderr, opts.verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	params, err := opts.resolveParams()
	if err != nil {
		return err
	}

	if opts.input != "" {
		clip, samples, err := audiofile.DefaultRegistry().Load(opts.input)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"file":        opts.input,
			"sample_rate": clip.SampleRate,
			"channels":    clip.Channels,
			"frames":      clip.Frames(),
		}).Info("Loaded input file")
		params.Input = samples
	}

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.mutate {
		params = explosion.Mutate(params, rand.New(rand.NewSource(seed)))
	}

	if opts.savePreset != "" {
		if err := savePresetFile(opts.savePreset, params); err != nil {
			return err
		}
		log.WithField("file", opts.savePreset).Info("Saved preset")
	}

	cfg := &explosion.Config{
		Params: params,
		Seed:   seed,
		Logger: log,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"duration":       params.Duration,
		"layers":         params.Normalized().Layers,
		"pre_explosions": params.PreExplosions,
		"speed":          params.FinalSpeedFactor,
		"reverb":         params.Reverb,
		"seed":           seed,
		"count":          opts.count,
	}).Info("Generating explosion")

	bar := newProgressBar(os.Stderr, progressBarWidth, term.IsTerminal(int(os.Stderr.Fd())))
	start := time.Now()

	var sounds []*explosion.Sound
	if opts.count == 1 {
		sound, err := renderWithJob(ctx, cfg, bar)
		if err != nil {
			return err
		}
		sounds = []*explosion.Sound{sound}
	} else {
		cfg.Progress = bar
		sounds, err = explosion.GenerateBatch(ctx, cfg, opts.count, opts.parallel)
		bar.Finish()
		if err != nil {
			return err
		}
	}

	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("Synthesis complete")

	for i, sound := range sounds {
		path := variantPath(opts.output, i, len(sounds))
		if err := audiofile.SaveWAV(path, sound.Samples, sound.SampleRate); err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"file":     path,
			"duration": sound.Duration().Round(time.Millisecond),
		}).Info("Saved output")

		if opts.report {
			printReport(os.Stdout, path, analysis.Analyze(sound.Samples, sound.SampleRate))
		}
	}

	if opts.play {
		player, err := playback.NewPlayer(explosion.SampleRate)
		if err != nil {
			return err
		}
		for _, sound := range sounds {
			if err := player.Play(ctx, sound.Samples); err != nil {
				return fmt.Errorf("playback: %w", err)
			}
		}
	}

	return nil
}

// renderWithJob runs a single synthesis in the background and redraws the
// progress bar while it runs.
func renderWithJob(ctx context.Context, cfg *explosion.Config, bar *progressBar) (*explosion.Sound, error) {
	job, err := explosion.Start(ctx, cfg)
	if err != nil {
		return nil, err
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-job.Done():
			bar.Report(job.Progress())
			bar.Finish()
			return job.Wait()
		case <-ticker.C:
			bar.Report(job.Progress())
		}
	}
}
