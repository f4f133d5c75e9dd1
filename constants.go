package explosion

import (
	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/layer"
)

// Audio format constants.
const (
	// SampleRate is the fixed output sample rate in Hz.
	SampleRate = buffer.SampleRate

	// MaxSamples is the largest buffer any stage may allocate.
	MaxSamples = buffer.MaxSamples

	// MaxLayers is the largest effective layer count. Larger values are
	// clamped by Params.Normalized.
	MaxLayers = layer.MaxLayers
)

// Default parameter values.
const (
	defaultDuration          = 4.0
	defaultLayers            = 4
	defaultPreExplosions     = 1
	defaultPreExplosionDelay = 0.25
	defaultPreLowPassFactor  = 0.8
	defaultPreLowPassIters   = 1
	defaultFinalSpeedFactor  = 0.45
	defaultEarlyReflections  = 10
	defaultLateReflections   = 50
)

// Parameter limits.
const (
	// MinDuration keeps the shortest layer of a half-length pre-explosion
	// long enough to filter.
	MinDuration = 0.01

	// maxLowPassFactor is the largest pre-explosion low-pass factor.
	maxLowPassFactor = 1.0

	// preExplosionDivisor is the length of a pre-explosion relative to the
	// main explosion.
	preExplosionDivisor = 2.0

	// reverbLengthMultiplier is the output length growth caused by reverb.
	reverbLengthMultiplier = 2
)

// Progress milestones reported when reverb is disabled. With reverb enabled
// the reverb engine reports its own fine-grained progress instead.
const (
	progressPreExplosions = 0.33
	progressMainExplosion = 0.5
	progressCombined      = 0.8
	progressFinished      = 0.9
	progressDone          = 1.0
)
