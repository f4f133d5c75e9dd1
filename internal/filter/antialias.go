package filter

import (
	"fmt"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/mathutil"
)

// Anti-aliasing design.
const (
	// AntiAliasAttenuation is the stopband rejection in dB.
	AntiAliasAttenuation = 80.0

	// antiAliasTransition is the transition width relative to the target
	// Nyquist frequency. The stopband starts at the target Nyquist.
	antiAliasTransition = 0.1
)

// AntiAlias low-passes b so that resampling it by ratio (target rate over
// source rate, in (0, 1)) does not fold content above the target Nyquist
// frequency back into the audible band. It returns a new buffer of the same
// length.
func AntiAlias(b *buffer.Buffer, ratio float64) (*buffer.Buffer, error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, fmt.Errorf("%w: anti-alias ratio %v outside (0, 1)", buffer.ErrInvalidArgument, ratio)
	}

	nyquist := maxCutoff * ratio
	transition := nyquist * antiAliasTransition
	taps := mathutil.EstimateTaps(AntiAliasAttenuation, transition)

	kernel, err := DesignLowPass(taps, nyquist-transition/2, AntiAliasAttenuation)
	if err != nil {
		return nil, err
	}
	return buffer.Wrap(ConvolveSame(b.Samples(), kernel)), nil
}
