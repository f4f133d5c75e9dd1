// Package filter implements the envelope and filtering stages: a linear
// fade-out and a one-pole low-pass whose coefficient slides across the buffer.
package filter

import (
	"fmt"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/simdops"
)

// FadeOut multiplies sample i of the first n samples by 1 - i/n.
// Samples at or beyond n are untouched.
func FadeOut(b *buffer.Buffer, n int) error {
	if n < 0 || n > b.Len() {
		return fmt.Errorf("%w: fade length %d outside buffer of %d samples",
			buffer.ErrInvalidArgument, n, b.Len())
	}
	if n == 0 {
		return nil
	}

	envelope := make([]float64, n)
	invN := 1.0 / float64(n)
	for i := range envelope {
		envelope[i] = 1.0 - float64(i)*invN
	}

	simdops.Float64Ops().MulInPlace(b.Samples()[:n], envelope)
	return nil
}
