package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/testutil"
)

func TestGenerate_Noise(t *testing.T) {
	g := NewGenerator(testutil.NewRand(), nil, DefaultNoiseGain)
	require.False(t, g.HasInput())

	b, err := g.Generate(44100)
	require.NoError(t, err)
	assert.Equal(t, 44100, b.Len())

	testutil.AssertAllInRange(t, b.Samples(), -DefaultNoiseGain, DefaultNoiseGain)
	// Uniform noise scaled by 0.7 has a peak close to 0.7 over 44100 draws.
	assert.Greater(t, buffer.Peak(b), 0.69)

	mean := 0.0
	for _, v := range b.Samples() {
		mean += v
	}
	mean /= float64(b.Len())
	assert.InDelta(t, 0.0, mean, 0.01)
}

func TestGenerate_SeededIsDeterministic(t *testing.T) {
	a, err := NewGenerator(testutil.NewRand(), nil, DefaultNoiseGain).Generate(1000)
	require.NoError(t, err)
	b, err := NewGenerator(testutil.NewRand(), nil, DefaultNoiseGain).Generate(1000)
	require.NoError(t, err)

	assert.Equal(t, a.Samples(), b.Samples())
}

func TestGenerate_ConsecutiveDrawsDiffer(t *testing.T) {
	g := NewGenerator(testutil.NewRand(), nil, DefaultNoiseGain)
	a, err := g.Generate(100)
	require.NoError(t, err)
	b, err := g.Generate(100)
	require.NoError(t, err)

	assert.NotEqual(t, a.Samples(), b.Samples())
}

func TestGenerate_InputShorterIsZeroPadded(t *testing.T) {
	input := []float64{0.1, 0.2, 0.3}
	g := NewGenerator(testutil.NewRand(), input, DefaultNoiseGain)
	require.True(t, g.HasInput())

	b, err := g.Generate(6)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0, 0, 0}, b.Samples())
}

func TestGenerate_InputLongerIsCut(t *testing.T) {
	input := []float64{0.1, 0.2, 0.3, 0.4}
	g := NewGenerator(testutil.NewRand(), input, DefaultNoiseGain)

	b, err := g.Generate(2)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.2}, b.Samples())

	b.Samples()[0] = 9
	assert.InDelta(t, 0.1, input[0], 0, "generated buffer must not alias input")
}

func TestGenerate_InvalidLength(t *testing.T) {
	g := NewGenerator(testutil.NewRand(), nil, DefaultNoiseGain)
	_, err := g.Generate(-1)
	require.ErrorIs(t, err, buffer.ErrInvalidArgument)
}
