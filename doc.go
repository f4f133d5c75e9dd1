// Package explosion procedurally synthesizes explosion sound effects in pure Go.
//
// An explosion is built by chaining noise generation, fade-outs, sliding
// low-pass filters, time scaling, layering and a synthetic reverb into a
// single mono buffer at 44.1 kHz.
//
// # Synthesis
//
// Each explosion is the sum of several noise layers. Layer i is played 2*i
// times faster, faded out up to three times and passed through a low-pass
// filter whose cutoff drops over time, so later layers add short high-pitched
// crackle while the first layer carries the long low rumble. Optional
// pre-explosions (half-length explosions at random offsets, darkened by an
// extra low-pass) precede the main blast. The combined sound is slowed down
// or sped up, trimmed of trailing silence and finally given a reverb tail
// built from randomly delayed, filtered and attenuated echoes.
//
// # Quick Start
//
// For a one-shot explosion with the default parameters:
//
//	sound, err := explosion.Generate(ctx, explosion.DefaultParams())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For reproducible output, progress reporting and logging:
//
//	var progress explosion.Progress
//	s, err := explosion.New(&explosion.Config{
//	    Params:   explosion.DefaultParams(),
//	    Seed:     42,
//	    Progress: &progress,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sound, err := s.Generate(ctx)
//
// To keep an interactive surface responsive, run the synthesis as a Job and
// poll its progress:
//
//	job, err := explosion.Start(ctx, &explosion.Config{Params: p})
//	...
//	fmt.Printf("%.0f%%\n", job.Progress()*100)
//	sound, err := job.Wait()
//
// # Cancellation
//
// Synthesis checks its context between stages, layers, pre-explosions and
// reverb reflections. A cancelled run drops every intermediate buffer and
// returns an error wrapping the context error.
//
// # Presets
//
// Built-in presets are available through [Preset]; parameter sets can be
// stored as JSON with [SavePreset] and [LoadPreset].
package explosion
