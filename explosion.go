package explosion

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/layer"
	"github.com/tphakala/go-audio-explosion/internal/reverb"
	"github.com/tphakala/go-audio-explosion/internal/source"
)

// Common errors.
var (
	// ErrInvalidArgument indicates invalid parameters or tuning.
	ErrInvalidArgument = buffer.ErrInvalidArgument

	// ErrResourceExhausted indicates a synthesis that would exceed MaxSamples.
	ErrResourceExhausted = buffer.ErrResourceExhausted

	// ErrJobRunning is returned by Job.Result while the job is still running.
	ErrJobRunning = errors.New("synthesis job still running")
)

// Params describes one explosion.
type Params struct {
	// Duration is the length of the main explosion in seconds, before the
	// final speed change and reverb tail.
	Duration float64 `json:"duration"`

	// Layers is the number of noise layers per explosion, clamped to
	// [1, MaxLayers].
	Layers int `json:"layers"`

	// PreExplosions is the number of shorter explosions preceding the main
	// one (the "ka-" in "ka-BOOM").
	PreExplosions int `json:"pre_explosions"`

	// PreExplosionDelay is the largest random offset of a pre-explosion in
	// seconds.
	PreExplosionDelay float64 `json:"pre_explosion_delay"`

	// PreExplosionLowPassFactor is the constant low-pass coefficient applied
	// to the pre-explosions. Lower values darken them.
	PreExplosionLowPassFactor float64 `json:"pre_explosion_lowpass_factor"`

	// PreExplosionLowPassIters is how many times the pre-explosion low-pass
	// runs.
	PreExplosionLowPassIters int `json:"pre_explosion_lowpass_iters"`

	// FinalSpeedFactor speeds up (>1) or slows down (<1) the finished sound.
	FinalSpeedFactor float64 `json:"final_speed_factor"`

	// Reverb enables the synthetic reverb tail.
	Reverb bool `json:"reverb"`

	// EarlyReflections and LateReflections are the reverb iteration counts.
	EarlyReflections int `json:"early_reflections"`
	LateReflections  int `json:"late_reflections"`

	// Input, when non-empty, replaces generated noise as the source
	// material. Samples must be mono at SampleRate. Input is never modified.
	Input []float64 `json:"-"`
}

// Normalized returns a copy of p with Layers clamped to [1, MaxLayers].
func (p Params) Normalized() Params {
	p.Layers = layer.ClampLayers(p.Layers)
	return p
}

// Validate checks if the parameters describe a synthesizable explosion.
func (p *Params) Validate() error {
	if !finite(p.Duration) || p.Duration < MinDuration {
		return fmt.Errorf("%w: duration must be at least %v seconds", ErrInvalidArgument, MinDuration)
	}

	if p.PreExplosions < 0 {
		return fmt.Errorf("%w: pre-explosion count must be non-negative", ErrInvalidArgument)
	}

	if !finite(p.PreExplosionDelay) || p.PreExplosionDelay < 0 {
		return fmt.Errorf("%w: pre-explosion delay must be non-negative", ErrInvalidArgument)
	}

	if p.PreExplosionLowPassIters < 0 {
		return fmt.Errorf("%w: pre-explosion low-pass iterations must be non-negative", ErrInvalidArgument)
	}

	if p.PreExplosions > 0 && p.PreExplosionLowPassIters > 0 &&
		(!finite(p.PreExplosionLowPassFactor) || p.PreExplosionLowPassFactor <= 0 || p.PreExplosionLowPassFactor > maxLowPassFactor) {
		return fmt.Errorf("%w: pre-explosion low-pass factor must be in (0, %v]", ErrInvalidArgument, maxLowPassFactor)
	}

	if !finite(p.FinalSpeedFactor) || p.FinalSpeedFactor <= 0 {
		return fmt.Errorf("%w: final speed factor must be positive", ErrInvalidArgument)
	}

	if p.EarlyReflections < 0 || p.LateReflections < 0 {
		return fmt.Errorf("%w: reflection counts must be non-negative", ErrInvalidArgument)
	}

	if n := float64(secondsToSamples(p.Duration)) / p.FinalSpeedFactor; n < 1 {
		return fmt.Errorf("%w: final speed factor %v leaves no samples", ErrInvalidArgument, p.FinalSpeedFactor)
	}

	if n := p.PeakSamples(); n > MaxSamples {
		return fmt.Errorf("%w: synthesis needs %d samples (max %d)", ErrResourceExhausted, n, MaxSamples)
	}

	return nil
}

// PeakSamples estimates the largest buffer the synthesis allocates.
func (p *Params) PeakSamples() int {
	n := float64(secondsToSamples(p.Duration))
	if p.FinalSpeedFactor > 0 && p.FinalSpeedFactor < 1 {
		n /= p.FinalSpeedFactor
	}
	if p.Reverb {
		n *= reverbLengthMultiplier
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Reflection tunes one family of reverb reflections.
type Reflection struct {
	// AlphaStart and AlphaEnd are the sliding low-pass coefficients applied
	// to each echo.
	AlphaStart float64 `json:"alpha_start"`
	AlphaEnd   float64 `json:"alpha_end"`

	// GainMin and GainRange bound the random per-iteration attenuation of
	// the echo source.
	GainMin   float64 `json:"gain_min"`
	GainRange float64 `json:"gain_range"`

	// MaxDelay is the largest random echo delay.
	MaxDelay time.Duration `json:"max_delay"`
}

// Tuning holds the empirically tuned synthesis constants.
type Tuning struct {
	// Headroom is the renormalization multiplier applied to the peak.
	Headroom float64 `json:"headroom"`

	// NoiseGain attenuates generated noise.
	NoiseGain float64 `json:"noise_gain"`

	// SilenceThreshold is the magnitude below which trailing samples are
	// trimmed.
	SilenceThreshold float64 `json:"silence_threshold"`

	// Early and Late tune the reverb reflections.
	Early Reflection `json:"early"`
	Late  Reflection `json:"late"`
}

// DefaultTuning returns the tuned defaults.
func DefaultTuning() Tuning {
	rc := reverb.DefaultConfig()
	return Tuning{
		Headroom:         buffer.DefaultHeadroom,
		NoiseGain:        source.DefaultNoiseGain,
		SilenceThreshold: buffer.DefaultSilenceThreshold,
		Early:            reflectionFromEngine(rc.Early),
		Late:             reflectionFromEngine(rc.Late),
	}
}

// Validate checks if the tuning is usable.
func (t *Tuning) Validate() error {
	if !finite(t.Headroom) || t.Headroom < 1 {
		return fmt.Errorf("%w: headroom must be at least 1", ErrInvalidArgument)
	}

	if !finite(t.NoiseGain) || t.NoiseGain <= 0 || t.NoiseGain > 1 {
		return fmt.Errorf("%w: noise gain must be in (0, 1]", ErrInvalidArgument)
	}

	if !finite(t.SilenceThreshold) || t.SilenceThreshold < 0 {
		return fmt.Errorf("%w: silence threshold must be non-negative", ErrInvalidArgument)
	}

	if err := t.Early.validate(); err != nil {
		return fmt.Errorf("early reflections: %w", err)
	}

	if err := t.Late.validate(); err != nil {
		return fmt.Errorf("late reflections: %w", err)
	}

	return nil
}

func (r *Reflection) validate() error {
	if !finite(r.AlphaStart) || !finite(r.AlphaEnd) ||
		r.AlphaStart < 0 || r.AlphaStart > 1 || r.AlphaEnd < 0 || r.AlphaEnd > 1 {
		return fmt.Errorf("%w: low-pass coefficients must be in [0, 1]", ErrInvalidArgument)
	}

	if !finite(r.GainMin) || !finite(r.GainRange) || r.GainMin < 0 || r.GainRange < 0 || r.GainMin+r.GainRange > 1 {
		return fmt.Errorf("%w: gain range must lie within [0, 1]", ErrInvalidArgument)
	}

	if r.MaxDelay < 0 {
		return fmt.Errorf("%w: max delay must be non-negative", ErrInvalidArgument)
	}

	return nil
}

func (t *Tuning) reverbConfig() reverb.Config {
	return reverb.Config{
		Early: t.Early.engine(),
		Late:  t.Late.engine(),
	}
}

func (r Reflection) engine() reverb.Reflection {
	return reverb.Reflection{
		AlphaStart: r.AlphaStart,
		AlphaEnd:   r.AlphaEnd,
		GainMin:    r.GainMin,
		GainRange:  r.GainRange,
		MaxDelay:   int(r.MaxDelay * SampleRate / time.Second),
	}
}

func reflectionFromEngine(r reverb.Reflection) Reflection {
	return Reflection{
		AlphaStart: r.AlphaStart,
		AlphaEnd:   r.AlphaEnd,
		GainMin:    r.GainMin,
		GainRange:  r.GainRange,
		MaxDelay:   time.Duration(r.MaxDelay) * time.Second / SampleRate,
	}
}

// Config configures a Synthesizer.
type Config struct {
	// Params describes the explosion.
	Params Params

	// Seed seeds the random stream. Zero selects a time-derived seed, so
	// only non-zero seeds give reproducible output.
	Seed int64

	// Tuning overrides the tuned constants. The zero value selects
	// DefaultTuning.
	Tuning Tuning

	// Progress, when non-nil, receives completion fractions in [0, 1].
	Progress ProgressSink

	// Logger receives stage diagnostics. Nil selects the logrus standard
	// logger.
	Logger logrus.FieldLogger
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Params.Validate(); err != nil {
		return err
	}

	tuning := c.tuning()
	return tuning.Validate()
}

func (c *Config) tuning() Tuning {
	if c.Tuning == (Tuning{}) {
		return DefaultTuning()
	}
	return c.Tuning
}

// Sound is a finished explosion.
type Sound struct {
	// Samples holds mono samples. Dry output peaks below full scale; reverb
	// output is not renormalized and may exceed [-1, 1], which
	// audiofile.WriteWAV clips.
	Samples []float64

	// SampleRate is the sample rate in Hz.
	SampleRate int
}

// Len returns the number of samples.
func (s *Sound) Len() int {
	return len(s.Samples)
}

// Duration returns the playing time of the sound.
func (s *Sound) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(len(s.Samples)) * time.Second / time.Duration(s.SampleRate)
}

func secondsToSamples(seconds float64) int {
	return int(seconds * SampleRate)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
