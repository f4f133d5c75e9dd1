package buffer

import (
	"math"

	"github.com/tphakala/go-audio-explosion/internal/simdops"
	"gonum.org/v1/gonum/floats"
)

// Default tunables for buffer operations.
const (
	// DefaultHeadroom is the divisor multiplier used by Renormalize,
	// leaving ~5% below full scale.
	DefaultHeadroom = 1.05

	// DefaultSilenceThreshold is the magnitude below which trailing samples
	// are considered silent.
	DefaultSilenceThreshold = 0.00001

	clipLevel = 1.0
)

// Accumulate replaces a's contents with the elementwise sum of a and b.
// The result has the length of the longer buffer; the shorter contributes
// zero beyond its own length.
func Accumulate(a, b *Buffer) {
	if b.Len() > a.Len() {
		a.grow(b.Len())
	}
	if b.Len() == 0 {
		return
	}
	simdops.Float64Ops().AddInPlace(a.samples[:b.Len()], b.samples)
}

// Peak returns the maximum absolute sample value, or 0 for an empty buffer.
func Peak(b *Buffer) float64 {
	if b.Len() == 0 {
		return 0
	}
	return floats.Norm(b.samples, math.Inf(1))
}

// Renormalize divides every sample by headroom*peak so the peak sits at
// 1/headroom. A silent buffer is left unchanged.
func Renormalize(b *Buffer, headroom float64) {
	peak := Peak(b)
	if peak == 0 || math.IsNaN(peak) || math.IsInf(peak, 0) {
		return
	}
	simdops.Float64Ops().Scale(b.samples, b.samples, 1.0/(headroom*peak))
}

// Amplify scales the buffer by gain and clips the result to [-1, 1].
func Amplify(b *Buffer, gain float64) {
	simdops.Float64Ops().Scale(b.samples, b.samples, gain)
	for i, v := range b.samples {
		if v > clipLevel {
			b.samples[i] = clipLevel
		} else if v < -clipLevel {
			b.samples[i] = -clipLevel
		}
	}
}

// Delay shifts samples forward by d positions, filling the front with
// silence. The length is unchanged, so the last d samples fall off the end.
// It writes from the end backward so no unread source position is overwritten.
func Delay(b *Buffer, d int) {
	if d <= 0 {
		return
	}
	n := len(b.samples)
	if d >= n {
		clear(b.samples)
		return
	}
	for i := n - 1; i >= d; i-- {
		b.samples[i] = b.samples[i-d]
	}
	clear(b.samples[:d])
}

// TrimTrailingSilence shrinks the logical length while the last sample's
// magnitude is below threshold. Storage is not released.
func TrimTrailingSilence(b *Buffer, threshold float64) {
	n := len(b.samples)
	for n > 0 && math.Abs(b.samples[n-1]) < threshold {
		n--
	}
	b.Truncate(n)
}
