// Package analysis computes summary measurements of a rendered sound.
package analysis

import (
	"math"

	"github.com/tphakala/go-audio-explosion/internal/simdops"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

// Analysis constants
const (
	// maxFFTSize bounds the window used for the spectral centroid; longer
	// sounds are measured over their first maxFFTSize samples.
	maxFFTSize = 1 << 16

	// minFFTSize is the shortest input the spectrum is computed for.
	minFFTSize = 2

	// silenceDB is reported for the level of a silent signal.
	silenceDB = -math.MaxFloat64

	dbScale = 20.0
)

// Report summarizes a mono signal.
type Report struct {
	Samples          int     `json:"samples"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Peak             float64 `json:"peak"`
	PeakDBFS         float64 `json:"peak_dbfs"`
	RMS              float64 `json:"rms"`
	RMSDBFS          float64 `json:"rms_dbfs"`
	SpectralCentroid float64 `json:"spectral_centroid_hz"`
}

// Analyze measures s sampled at sampleRate.
func Analyze(s []float64, sampleRate int) Report {
	r := Report{
		Samples:  len(s),
		PeakDBFS: silenceDB,
		RMSDBFS:  silenceDB,
	}
	if len(s) == 0 || sampleRate <= 0 {
		return r
	}

	r.DurationSeconds = float64(len(s)) / float64(sampleRate)
	r.Peak = floats.Norm(s, math.Inf(1))
	r.RMS = RMS(s)
	if r.Peak > 0 {
		r.PeakDBFS = dbScale * math.Log10(r.Peak)
	}
	if r.RMS > 0 {
		r.RMSDBFS = dbScale * math.Log10(r.RMS)
	}
	r.SpectralCentroid = SpectralCentroid(s, sampleRate)
	return r
}

// RMS returns the root-mean-square level of s.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, 2) / math.Sqrt(float64(len(s)))
}

// SpectralCentroid returns the magnitude-weighted mean frequency of s in Hz,
// a single-number measure of brightness. Silent input yields 0.
func SpectralCentroid(s []float64, sampleRate int) float64 {
	n := min(len(s), maxFFTSize)
	if n < minFFTSize {
		return 0
	}

	fft := fourier.NewFFT(n)
	coeffs := fft.Coefficients(nil, s[:n])

	mags := make([]float64, len(coeffs))
	weighted := make([]float64, len(coeffs))
	for k, c := range coeffs {
		mags[k] = math.Hypot(real(c), imag(c))
		weighted[k] = mags[k] * fft.Freq(k) * float64(sampleRate)
	}

	ops := simdops.Float64Ops()
	total := ops.Sum(mags)
	if total == 0 {
		return 0
	}
	return ops.Sum(weighted) / total
}
