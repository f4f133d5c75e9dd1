package filter

import (
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/tphakala/go-audio-explosion/internal/simdops"
)

const (
	// minKernelForFFT is the kernel length from which overlap-save beats
	// direct convolution.
	minKernelForFFT = 400

	// minFFTBlock is the smallest overlap-save block.
	minFFTBlock = 512
)

// ConvolveSame filters signal with an odd-length symmetric kernel and returns
// an output of the same length, aligned with the input. The signal is
// treated as zero outside its bounds.
func ConvolveSame(signal, kernel []float64) []float64 {
	out := make([]float64, len(signal))
	if len(signal) == 0 || len(kernel) == 0 {
		return out
	}

	half := len(kernel) / 2
	padded := make([]float64, len(signal)+len(kernel)-1)
	copy(padded[half:], signal)

	convolveValid(out, padded, kernel)
	return out
}

// convolveValid computes dst[n] = sum(signal[n+k] * kernel[k]), switching to
// FFT overlap-save for long kernels.
func convolveValid(dst, signal, kernel []float64) {
	if len(kernel) < minKernelForFFT {
		simdops.Float64Ops().ConvolveValid(dst, signal, kernel)
		return
	}
	newOverlapSave(kernel).convolve(dst, signal)
}

// overlapSave convolves long signals block by block in the frequency domain.
type overlapSave struct {
	fft       *fourier.FFT
	size      int
	step      int
	kernelLen int
	kernel    []complex128
	scale     float64

	block   []float64
	spec    []complex128
	product []complex128
	time    []float64
}

func newOverlapSave(kernel []float64) *overlapSave {
	size := minFFTBlock
	for size < 2*len(kernel) {
		size *= 2
	}
	fft := fourier.NewFFT(size)

	// Circular convolution flips the kernel; pre-flip it so the result is
	// the same correlation the direct path computes.
	flipped := make([]float64, size)
	for i, v := range kernel {
		flipped[len(kernel)-1-i] = v
	}

	bins := size/2 + 1
	return &overlapSave{
		fft:       fft,
		size:      size,
		step:      size - len(kernel) + 1,
		kernelLen: len(kernel),
		kernel:    fft.Coefficients(nil, flipped),
		scale:     1 / float64(size),
		block:     make([]float64, size),
		spec:      make([]complex128, bins),
		product:   make([]complex128, bins),
		time:      make([]float64, size),
	}
}

func (c *overlapSave) convolve(dst, signal []float64) {
	outLen := len(signal) - c.kernelLen + 1
	if outLen <= 0 {
		return
	}

	ops := simdops.Float64Ops()
	skip := c.kernelLen - 1
	for pos := 0; pos < outLen; pos += c.step {
		clear(c.block)
		copy(c.block, signal[pos:min(pos+c.size, len(signal))])

		c.spec = c.fft.Coefficients(c.spec, c.block)
		ops.ComplexMul(c.product, c.spec, c.kernel)
		c.time = c.fft.Sequence(c.time, c.product)
		ops.Scale(c.time, c.time, c.scale)

		n := min(c.step, outLen-pos)
		copy(dst[pos:pos+n], c.time[skip:skip+n])
	}
}
