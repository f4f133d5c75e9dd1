// Package simdops collects the vectorized float64 kernels used by the
// synthesis stages behind a single table of function pointers.
//
// Scale, Sum, ConvolveValid and ComplexMul come from github.com/tphakala/simd,
// block add and multiply from github.com/cwbudde/algo-vecmath. Both dispatch to AVX2/SSE/NEON code
// paths at runtime and fall back to pure Go.
package simdops

import (
	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
)

// Ops provides vectorized operations on float64 slices.
//
// All binary kernels expect slices of equal length; callers slice to the
// common length before calling.
type Ops struct {
	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64

	// AddInPlace adds src into dst: dst[i] += src[i]
	AddInPlace func(dst, src []float64)

	// MulInPlace multiplies dst by src: dst[i] *= src[i]
	MulInPlace func(dst, src []float64)

	// ConvolveValid correlates signal with kernel over the positions where
	// they fully overlap: dst[n] = sum(signal[n+k] * kernel[k]).
	// len(dst) must be len(signal) - len(kernel) + 1.
	ConvolveValid func(dst, signal, kernel []float64)

	// ComplexMul multiplies elementwise: dst[i] = a[i] * b[i]
	ComplexMul func(dst, a, b []complex128)
}

var ops64 = Ops{
	Scale:      f64.Scale,
	Sum:        f64.Sum,
	AddInPlace: vecmath.AddBlockInPlace,
	MulInPlace: vecmath.MulBlockInPlace,

	ConvolveValid: f64.ConvolveValid,
	ComplexMul:    c128.Mul,
}

// Float64Ops returns the float64 operations table.
func Float64Ops() *Ops {
	return &ops64
}
