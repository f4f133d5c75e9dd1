package filter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-explosion/internal/analysis"
	"github.com/tphakala/go-audio-explosion/internal/buffer"
	"github.com/tphakala/go-audio-explosion/internal/mathutil"
	"github.com/tphakala/go-audio-explosion/internal/testutil"
)

func TestKaiserWindow_Shape(t *testing.T) {
	w := KaiserWindow(65, 8)
	require.Len(t, w, 65)

	assert.InDelta(t, 1.0, w[32], testutil.DefaultTolerance, "peak must be 1 at the centre")
	for i := range 32 {
		assert.InDelta(t, w[i], w[64-i], 1e-12, "window must be symmetric at %d", i)
		assert.Less(t, w[i], w[i+1], "window must rise towards the centre at %d", i)
	}

	assert.Nil(t, KaiserWindow(0, 8))
	assert.Equal(t, []float64{1}, KaiserWindow(1, 8))
}

func TestDesignLowPass_Errors(t *testing.T) {
	tests := []struct {
		name   string
		taps   int
		cutoff float64
	}{
		{"even taps", 64, 0.2},
		{"too few taps", 1, 0.2},
		{"too many taps", mathutil.MaxTaps + 2, 0.2},
		{"zero cutoff", 63, 0},
		{"cutoff at nyquist", 63, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DesignLowPass(tt.taps, tt.cutoff, 80)
			require.ErrorIs(t, err, buffer.ErrInvalidArgument)
		})
	}
}

func TestDesignLowPass_UnityDCAndSymmetry(t *testing.T) {
	h, err := DesignLowPass(101, 0.2, 80)
	require.NoError(t, err)

	sum := 0.0
	for _, v := range h {
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	for i := range 50 {
		assert.InDelta(t, h[i], h[100-i], 1e-12, "kernel must be symmetric at %d", i)
	}
}

func naiveConvolveSame(signal, kernel []float64) []float64 {
	half := len(kernel) / 2
	out := make([]float64, len(signal))
	for n := range out {
		for k, v := range kernel {
			idx := n + k - half
			if idx >= 0 && idx < len(signal) {
				out[n] += signal[idx] * v
			}
		}
	}
	return out
}

func TestConvolveSame_MatchesDirect(t *testing.T) {
	signal := testutil.Noise(3000)
	for _, taps := range []int{31, minKernelForFFT + 1, 1023} {
		kernel, err := DesignLowPass(taps, 0.1, 60)
		require.NoError(t, err)

		// Break the symmetry so alignment mistakes show up.
		kernel[0] += 0.01

		got := ConvolveSame(signal, kernel)
		want := naiveConvolveSame(signal, kernel)
		require.Len(t, got, len(signal))
		for i := range want {
			if !assert.InDelta(t, want[i], got[i], 1e-9, "taps=%d sample %d", taps, i) {
				break
			}
		}
	}
}

func TestConvolveSame_Empty(t *testing.T) {
	assert.Empty(t, ConvolveSame(nil, []float64{1}))
	assert.Equal(t, []float64{0, 0}, ConvolveSame([]float64{1, 2}, nil))
}

func TestAntiAlias(t *testing.T) {
	const n = 8192
	ratio := 0.5

	// 0.4 cycles/sample lies above the 0.25 target Nyquist.
	high := buffer.FromSamples(testutil.Sine(n, 0.4, 1, 1))
	out, err := AntiAlias(high, ratio)
	require.NoError(t, err)
	require.Equal(t, n, out.Len())
	interior := out.Samples()[1000 : n-1000]
	assert.Less(t, analysis.RMS(interior), 1e-3)

	// 0.05 cycles/sample is well inside the passband.
	low := buffer.FromSamples(testutil.Sine(n, 0.05, 1, 1))
	out, err = AntiAlias(low, ratio)
	require.NoError(t, err)
	interior = out.Samples()[1000 : n-1000]
	testutil.AssertRelativeError(t, 1/math.Sqrt2, analysis.RMS(interior), 0.01)

	for _, bad := range []float64{0, 1, 1.5, -0.5} {
		_, err := AntiAlias(high, bad)
		assert.ErrorIs(t, err, buffer.ErrInvalidArgument, "ratio %v", bad)
	}
}
