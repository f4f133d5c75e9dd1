// Package source produces the raw material every explosion layer starts from:
// white noise, or a zero-padded copy of externally supplied samples.
package source

import (
	"math/rand"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
)

// DefaultNoiseGain attenuates generated noise to leave headroom for layering.
const DefaultNoiseGain = 0.70

// Generator creates source buffers.
type Generator struct {
	rng   *rand.Rand
	input []float64
	gain  float64
}

// NewGenerator creates a generator drawing noise from rng. When input is
// non-empty it is used instead of noise. The generator does not copy input
// and never modifies it.
func NewGenerator(rng *rand.Rand, input []float64, gain float64) *Generator {
	return &Generator{
		rng:   rng,
		input: input,
		gain:  gain,
	}
}

// HasInput reports whether the generator copies supplied samples instead of
// synthesizing noise.
func (g *Generator) HasInput() bool {
	return len(g.input) > 0
}

// Generate returns a buffer of exactly n samples.
func (g *Generator) Generate(n int) (*buffer.Buffer, error) {
	b, err := buffer.New(n)
	if err != nil {
		return nil, err
	}

	if g.HasInput() {
		copy(b.Samples(), g.input)
		return b, nil
	}

	s := b.Samples()
	for i := range s {
		s[i] = 2.0*g.rng.Float64() - 1.0
	}
	buffer.Amplify(b, g.gain)
	return b, nil
}
