package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/testutil"
)

func ones(n int) *buffer.Buffer {
	s := make([]float64, n)
	for i := range s {
		s[i] = 1
	}
	return buffer.Wrap(s)
}

func TestFadeOut_Boundaries(t *testing.T) {
	for _, n := range []int{1, 2, 10, 1000} {
		b := ones(n + 5)
		require.NoError(t, FadeOut(b, n))

		assert.InDelta(t, 1.0, b.At(0), 0, "sample 0 must be unscaled (n=%d)", n)
		assert.InDelta(t, 1.0/float64(n), b.At(n-1), testutil.DefaultTolerance,
			"sample n-1 must be scaled by 1/n (n=%d)", n)
		for i := n; i < b.Len(); i++ {
			assert.InDelta(t, 1.0, b.At(i), 0, "sample %d past the fade must be untouched", i)
		}
	}
}

func TestFadeOut_Envelope(t *testing.T) {
	b := ones(500)
	require.NoError(t, FadeOut(b, b.Len()))

	testutil.AssertMonotonicDecreasing(t, b.Samples())
	testutil.AssertAllInRange(t, b.Samples(), 0, 1)
}

func TestFadeOut_RepeatedPassesCompound(t *testing.T) {
	b := ones(100)
	require.NoError(t, FadeOut(b, 100))
	require.NoError(t, FadeOut(b, 100))

	assert.InDelta(t, 0.5*0.5, b.At(50), testutil.DefaultTolerance)
}

func TestFadeOut_Errors(t *testing.T) {
	b := ones(10)
	require.ErrorIs(t, FadeOut(b, 11), buffer.ErrInvalidArgument)
	require.ErrorIs(t, FadeOut(b, -1), buffer.ErrInvalidArgument)
	require.NoError(t, FadeOut(b, 0))
	assert.InDelta(t, 1.0, b.At(9), 0)
}

func TestSlidingLowPass_Recurrence(t *testing.T) {
	in := buffer.FromSamples([]float64{1, 0, 0, 1})
	out, err := SlidingLowPass(in, 0.5, 0.5)
	require.NoError(t, err)

	// Constant alpha 0.5 squared is 0.25.
	want := []float64{1, 0.75, 0.5625, 0.671875}
	assert.InDeltaSlice(t, want, out.Samples(), testutil.DefaultTolerance)
	assert.Equal(t, []float64{1, 0, 0, 1}, in.Samples(), "input must be untouched")
}

func TestSlidingLowPass_SlidingCoefficient(t *testing.T) {
	in := buffer.FromSamples([]float64{0, 1, 1, 1})
	out, err := SlidingLowPass(in, 0, 1)
	require.NoError(t, err)

	// alpha(i) = (i/4)^2 -> 1/16, 1/4, 9/16
	o1 := 1.0 / 16
	o2 := o1 + 0.25*(1-o1)
	o3 := o2 + 9.0/16*(1-o2)
	assert.InDeltaSlice(t, []float64{0, o1, o2, o3}, out.Samples(), testutil.DefaultTolerance)
}

func TestSlidingLowPass_UnityPassesThrough(t *testing.T) {
	noise := testutil.Noise(256)
	out, err := SlidingLowPass(buffer.FromSamples(noise), 1, 1)
	require.NoError(t, err)

	assert.InDeltaSlice(t, noise, out.Samples(), testutil.DefaultTolerance)
}

func TestSlidingLowPass_ReducesVariation(t *testing.T) {
	noise := testutil.Noise(8192)
	out, err := SlidingLowPass(buffer.FromSamples(noise), 0.3, 0.1)
	require.NoError(t, err)

	diff := func(s []float64) float64 {
		total := 0.0
		for i := 1; i < len(s); i++ {
			d := s[i] - s[i-1]
			total += d * d
		}
		return total
	}
	assert.Less(t, diff(out.Samples()), diff(noise)*0.1)
	testutil.AssertNoNaNOrInf(t, out.Samples())
}

func TestSlidingLowPass_TooShort(t *testing.T) {
	_, err := SlidingLowPass(buffer.FromSamples([]float64{1}), 0.5, 0.5)
	require.ErrorIs(t, err, buffer.ErrInvalidArgument)

	_, err = SlidingLowPass(buffer.FromSamples(nil), 0.5, 0.5)
	require.ErrorIs(t, err, buffer.ErrInvalidArgument)
}

func TestSlidingLowPassInPlace(t *testing.T) {
	b := buffer.FromSamples([]float64{1, 0, 0, 1})
	require.NoError(t, SlidingLowPassInPlace(b, 0.5, 0.5))
	assert.InDelta(t, 0.75, b.At(1), testutil.DefaultTolerance)

	short := buffer.FromSamples([]float64{1})
	require.Error(t, SlidingLowPassInPlace(short, 0.5, 0.5))
	assert.Equal(t, []float64{1}, short.Samples(), "failed pass must leave buffer intact")
}
