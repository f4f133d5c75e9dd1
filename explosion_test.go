package explosion

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dryParams returns a short, reverb-free configuration that renders fast.
func dryParams() Params {
	p := DefaultParams()
	p.Duration = 0.5
	p.Layers = 2
	p.FinalSpeedFactor = 1
	p.Reverb = false
	return p
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(p *Params)
		wantErr error
	}{
		{"defaults", func(*Params) {}, nil},
		{"zero duration", func(p *Params) { p.Duration = 0 }, ErrInvalidArgument},
		{"NaN duration", func(p *Params) { p.Duration = math.NaN() }, ErrInvalidArgument},
		{"negative pre-explosions", func(p *Params) { p.PreExplosions = -1 }, ErrInvalidArgument},
		{"negative pre-delay", func(p *Params) { p.PreExplosionDelay = -0.1 }, ErrInvalidArgument},
		{"negative lp iterations", func(p *Params) { p.PreExplosionLowPassIters = -2 }, ErrInvalidArgument},
		{"zero lp factor", func(p *Params) { p.PreExplosionLowPassFactor = 0 }, ErrInvalidArgument},
		{"lp factor unused without pre-explosions", func(p *Params) {
			p.PreExplosions = 0
			p.PreExplosionLowPassFactor = 0
		}, nil},
		{"zero speed", func(p *Params) { p.FinalSpeedFactor = 0 }, ErrInvalidArgument},
		{"infinite speed", func(p *Params) { p.FinalSpeedFactor = math.Inf(1) }, ErrInvalidArgument},
		{"speed leaves no samples", func(p *Params) {
			p.Duration = MinDuration
			p.FinalSpeedFactor = 1000
		}, ErrInvalidArgument},
		{"negative early", func(p *Params) { p.EarlyReflections = -1 }, ErrInvalidArgument},
		{"negative late", func(p *Params) { p.LateReflections = -1 }, ErrInvalidArgument},
		{"layers are clamped, not rejected", func(p *Params) { p.Layers = 0 }, nil},
		{"too long", func(p *Params) { p.Duration = 30 * 60 }, ErrResourceExhausted},
		{"slow speed exhausts", func(p *Params) {
			p.Duration = 600
			p.FinalSpeedFactor = 0.1
		}, ErrResourceExhausted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)

			err := p.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParams_Normalized(t *testing.T) {
	tests := []struct {
		layers, want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{4, 4},
		{MaxLayers, MaxLayers},
		{MaxLayers + 5, MaxLayers},
	}

	for _, tt := range tests {
		p := DefaultParams()
		p.Layers = tt.layers
		n := p.Normalized()
		assert.Equal(t, tt.want, n.Layers, "layers=%d", tt.layers)
		assert.Equal(t, tt.layers, p.Layers, "Normalized must not modify the receiver")
	}
}

func TestParams_PeakSamples(t *testing.T) {
	p := DefaultParams()
	p.Duration = 1
	p.FinalSpeedFactor = 0.5
	p.Reverb = true
	assert.Equal(t, 4*SampleRate, p.PeakSamples())

	p.FinalSpeedFactor = 2
	p.Reverb = false
	assert.Equal(t, SampleRate, p.PeakSamples())
}

func TestDefaultTuning(t *testing.T) {
	tuning := DefaultTuning()
	require.NoError(t, tuning.Validate())

	assert.InDelta(t, 1.05, tuning.Headroom, 1e-12)
	assert.InDelta(t, 0.70, tuning.NoiseGain, 1e-12)
	assert.Equal(t, 300*time.Millisecond, tuning.Early.MaxDelay)
	assert.Equal(t, 2*time.Second, tuning.Late.MaxDelay)

	rc := tuning.reverbConfig()
	assert.Equal(t, 13230, rc.Early.MaxDelay)
	assert.Equal(t, 88200, rc.Late.MaxDelay)
}

func TestTuning_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(t *Tuning)
	}{
		{"headroom below one", func(t *Tuning) { t.Headroom = 0.9 }},
		{"zero noise gain", func(t *Tuning) { t.NoiseGain = 0 }},
		{"negative threshold", func(t *Tuning) { t.SilenceThreshold = -1 }},
		{"alpha above one", func(t *Tuning) { t.Early.AlphaStart = 1.5 }},
		{"gain above one", func(t *Tuning) { t.Late.GainMin = 0.99 }},
		{"negative delay", func(t *Tuning) { t.Late.MaxDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tuning := DefaultTuning()
			tt.modify(&tuning)
			assert.ErrorIs(t, tuning.Validate(), ErrInvalidArgument)
		})
	}
}

func TestConfig_ZeroTuningSelectsDefaults(t *testing.T) {
	cfg := Config{Params: dryParams()}
	assert.Equal(t, DefaultTuning(), cfg.tuning())
	require.NoError(t, cfg.Validate())

	cfg.Tuning = DefaultTuning()
	cfg.Tuning.Headroom = 0.5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidArgument)
}

func TestSound_Duration(t *testing.T) {
	s := &Sound{Samples: make([]float64, SampleRate/2), SampleRate: SampleRate}
	assert.Equal(t, 500*time.Millisecond, s.Duration())
	assert.Equal(t, SampleRate/2, s.Len())

	assert.Zero(t, (&Sound{Samples: make([]float64, 10)}).Duration())
}
