package filter

import (
	"fmt"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
)

// MinLowPassSamples is the shortest buffer the recurrence accepts.
const MinLowPassSamples = 2

// SlidingLowPass runs a one-pole IIR low-pass whose coefficient moves
// linearly from alphaStart to alphaEnd across the buffer and is squared
// before use:
//
//	out[0] = in[0]
//	a      = ((i/N)*(alphaEnd-alphaStart) + alphaStart)^2
//	out[i] = out[i-1] + a*(in[i]-out[i-1])
//
// The input is left untouched and a new buffer of the same length is returned.
func SlidingLowPass(in *buffer.Buffer, alphaStart, alphaEnd float64) (*buffer.Buffer, error) {
	n := in.Len()
	if n < MinLowPassSamples {
		return nil, fmt.Errorf("%w: low-pass needs at least %d samples, got %d",
			buffer.ErrInvalidArgument, MinLowPassSamples, n)
	}

	src := in.Samples()
	out := make([]float64, n)
	out[0] = src[0]

	span := alphaEnd - alphaStart
	invN := 1.0 / float64(n)
	for i := 1; i < n; i++ {
		alpha := float64(i)*invN*span + alphaStart
		alpha *= alpha
		out[i] = out[i-1] + alpha*(src[i]-out[i-1])
	}

	return buffer.Wrap(out), nil
}

// SlidingLowPassInPlace is SlidingLowPass replacing the buffer's contents.
func SlidingLowPassInPlace(b *buffer.Buffer, alphaStart, alphaEnd float64) error {
	out, err := SlidingLowPass(b, alphaStart, alphaEnd)
	if err != nil {
		return err
	}
	b.Replace(out.Samples())
	return nil
}
