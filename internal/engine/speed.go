// Package engine implements the playback-rate change used for layer pitch,
// the final speed factor and input sample-rate conversion.
package engine

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/filter"
)

// ChangeSpeed resamples the buffer by linear interpolation so that it plays
// factor times faster. The output has floor(Len/factor) samples; factor > 1
// shortens (raises pitch), factor < 1 lengthens.
//
// The first and last output samples are pinned to the first and last input
// samples.
func ChangeSpeed(in *buffer.Buffer, factor float64) (*buffer.Buffer, error) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: speed factor must be positive, got %v", buffer.ErrInvalidArgument, factor)
	}

	srcLen := in.Len()
	scaled := float64(srcLen) / factor
	if scaled > buffer.MaxSamples {
		return nil, fmt.Errorf("%w: speed factor %v yields %.0f samples", buffer.ErrResourceExhausted, factor, scaled)
	}
	outLen := int(scaled)
	if outLen == 0 {
		return nil, fmt.Errorf("%w: speed factor %v leaves no samples from %d", buffer.ErrInvalidArgument, factor, srcLen)
	}

	return buffer.Wrap(resample(in.Samples(), outLen)), nil
}

// resample linearly interpolates src onto outLen points, pinning both ends.
func resample(src []float64, outLen int) []float64 {
	srcLen := len(src)
	out := make([]float64, outLen)
	out[0] = src[0]

	last := srcLen - 1
	for i := 1; i < outLen-1; i++ {
		pos := float64(i) / float64(outLen) * float64(srcLen)
		sp1 := int(pos)
		if sp1 > last {
			sp1 = last
		}
		sp2 := sp1 + 1
		if sp2 > last {
			sp2 = last
		}
		out[i] = interpolate(pos, float64(sp1), src[sp1], float64(sp2), src[sp2])
	}
	out[outLen-1] = src[last]

	return out
}

// ChangeSpeedInPlace is ChangeSpeed replacing the buffer's contents.
func ChangeSpeedInPlace(b *buffer.Buffer, factor float64) error {
	out, err := ChangeSpeed(b, factor)
	if err != nil {
		return err
	}
	b.Replace(out.Samples())
	return nil
}

// interpolate returns the y on the line through (x1,y1) and (x2,y2) at x.
// Near-zero spans return the midpoint rather than dividing.
func interpolate(x, x1, y1, x2, y2 float64) float64 {
	if math.Abs(x2-x1) < spanEpsilon {
		return (y1 + y2) / halfDivisor
	}
	return (x-x1)*(y2-y1)/(x2-x1) + y1
}

// ConvertRate resamples a buffer recorded at fromRate to the package
// sample rate. Higher source rates are band-limited first with
// filter.AntiAlias so their content above 22.05 kHz does not alias.
func ConvertRate(in *buffer.Buffer, fromRate int) (*buffer.Buffer, error) {
	if fromRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", buffer.ErrInvalidArgument, fromRate)
	}
	if fromRate == buffer.SampleRate {
		return in, nil
	}

	outLen64 := int64(in.Len()) * buffer.SampleRate / int64(fromRate)
	if outLen64 > buffer.MaxSamples {
		return nil, fmt.Errorf("%w: converting %d samples at %d Hz", buffer.ErrResourceExhausted, in.Len(), fromRate)
	}
	if outLen64 == 0 {
		return nil, fmt.Errorf("%w: %d samples at %d Hz is too short to convert", buffer.ErrInvalidArgument, in.Len(), fromRate)
	}

	src := in
	if fromRate > buffer.SampleRate {
		filtered, err := filter.AntiAlias(in, float64(buffer.SampleRate)/float64(fromRate))
		if err != nil {
			return nil, err
		}
		src = filtered
	}
	return buffer.Wrap(resample(src.Samples(), int(outLen64))), nil
}
