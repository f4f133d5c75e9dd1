package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/mathutil"
	"github.com/tphakala/go-audio-explosion/internal/simdops"
)

// maxCutoff is the Nyquist frequency in cycles per sample.
const maxCutoff = 0.5

// KaiserWindow returns a Kaiser window of length samples with shape beta.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return nil
	}
	w := make([]float64, length)
	if length == 1 {
		w[0] = 1
		return w
	}

	mid := float64(length-1) / 2
	norm := 1 / mathutil.BesselI0(beta)
	for n := range w {
		x := (float64(n) - mid) / mid
		w[n] = mathutil.BesselI0(beta*math.Sqrt(1-x*x)) * norm
	}
	return w
}

// DesignLowPass returns a unity DC gain, Kaiser-windowed sinc low-pass.
// numTaps must be odd and at least mathutil.MinTaps; cutoff is the -6 dB
// point in cycles per sample.
func DesignLowPass(numTaps int, cutoff, attenuation float64) ([]float64, error) {
	if numTaps < mathutil.MinTaps || numTaps > mathutil.MaxTaps || numTaps%2 == 0 {
		return nil, fmt.Errorf("%w: tap count %d must be odd and in [%d, %d]",
			buffer.ErrInvalidArgument, numTaps, mathutil.MinTaps, mathutil.MaxTaps)
	}
	if cutoff <= 0 || cutoff >= maxCutoff {
		return nil, fmt.Errorf("%w: cutoff %v outside (0, %v)", buffer.ErrInvalidArgument, cutoff, maxCutoff)
	}

	h := KaiserWindow(numTaps, mathutil.KaiserBeta(attenuation))
	mid := numTaps / 2
	for n := range h {
		x := float64(n - mid)
		if x == 0 {
			h[n] *= 2 * cutoff
			continue
		}
		h[n] *= math.Sin(2*math.Pi*cutoff*x) / (math.Pi * x)
	}

	ops := simdops.Float64Ops()
	ops.Scale(h, h, 1/ops.Sum(h))
	return h, nil
}
