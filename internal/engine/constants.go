package engine

import "github.com/tphakala/go-audio-explosion/internal/buffer"

// Linear interpolation constants
const (
	// spanEpsilon is the source-position span below which interpolation
	// returns the average of the two neighbours instead of dividing.
	spanEpsilon = 0.01 * 1.0 / float64(buffer.SampleRate)

	// halfDivisor averages two neighbours.
	halfDivisor = 2.0
)
