package simdops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScale(t *testing.T) {
	ops := Float64Ops()
	a := []float64{1, -2, 0.5, 4, 8, -16, 0, 3}
	dst := make([]float64, len(a))

	ops.Scale(dst, a, 0.5)

	for i := range a {
		assert.InDelta(t, a[i]*0.5, dst[i], 1e-12, "index %d", i)
	}
}

func TestScale_InPlace(t *testing.T) {
	ops := Float64Ops()
	a := []float64{1, 2, 3, 4, 5}

	ops.Scale(a, a, 2)

	assert.InDeltaSlice(t, []float64{2, 4, 6, 8, 10}, a, 1e-12)
}

func TestSum(t *testing.T) {
	ops := Float64Ops()
	a := make([]float64, 37)
	want := 0.0
	for i := range a {
		a[i] = float64(i) * 0.25
		want += a[i]
	}

	assert.InDelta(t, want, ops.Sum(a), 1e-9)
}

func TestAddInPlace(t *testing.T) {
	ops := Float64Ops()
	dst := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}
	src := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}

	ops.AddInPlace(dst, src)

	assert.InDeltaSlice(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, dst, 1e-12)
}

func TestMulInPlace(t *testing.T) {
	ops := Float64Ops()
	dst := []float64{2, 2, 2, 2, 2, 2}
	src := []float64{1, 0.5, 0, -1, 3, 0.25}

	ops.MulInPlace(dst, src)

	assert.InDeltaSlice(t, []float64{2, 1, 0, -2, 6, 0.5}, dst, 1e-12)
}

func TestConvolveValid(t *testing.T) {
	ops := Float64Ops()
	signal := []float64{1, 2, 3, 4, 5, 6}
	kernel := []float64{1, 0, -1}
	dst := make([]float64, len(signal)-len(kernel)+1)

	ops.ConvolveValid(dst, signal, kernel)

	// Correlation, not flipped: signal[n] - signal[n+2].
	assert.InDeltaSlice(t, []float64{-2, -2, -2, -2}, dst, 1e-12)
}

func TestComplexMul(t *testing.T) {
	ops := Float64Ops()
	a := []complex128{1 + 2i, 3, -1i, 0.5 + 0.5i, 2}
	b := []complex128{1 - 2i, 1i, 1i, 2, 0}
	dst := make([]complex128, len(a))

	ops.ComplexMul(dst, a, b)

	want := []complex128{5, 3i, 1, 1 + 1i, 0}
	for i := range want {
		assert.InDelta(t, real(want[i]), real(dst[i]), 1e-12, "real %d", i)
		assert.InDelta(t, imag(want[i]), imag(dst[i]), 1e-12, "imag %d", i)
	}
}
