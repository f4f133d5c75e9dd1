// Package mathutil holds the special functions behind Kaiser window filter
// design.
package mathutil

import "math"

// Polynomial approximations of I0 from Abramowitz & Stegun 9.8.1 and 9.8.2.
const (
	i0Split = 3.75

	i0Small1 = 3.5156229
	i0Small2 = 3.0899424
	i0Small3 = 1.2067492
	i0Small4 = 0.2659732
	i0Small5 = 0.360768e-1
	i0Small6 = 0.45813e-2

	i0Large0 = 0.39894228
	i0Large1 = 0.1328592e-1
	i0Large2 = 0.225319e-2
	i0Large3 = -0.157565e-2
	i0Large4 = 0.916281e-2
	i0Large5 = -0.2057706e-1
	i0Large6 = 0.2635537e-1
	i0Large7 = -0.1647633e-1
	i0Large8 = 0.392377e-2
)

// Kaiser design formulas (Kaiser & Schafer).
const (
	betaHighAtt    = 50.0
	betaMediumAtt  = 21.0
	betaHighSlope  = 0.1102
	betaHighOffset = 8.7
	betaMedCoeff   = 0.5842
	betaMedPower   = 0.4
	betaMedLinear  = 0.07886

	tapsAttOffset = 8.0
	tapsSlope     = 2.285

	// MinTaps and MaxTaps bound EstimateTaps.
	MinTaps = 3
	MaxTaps = 8191
)

// BesselI0 returns the modified Bessel function of the first kind, order
// zero. Relative error is below 2e-7.
func BesselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < i0Split {
		t := x / i0Split
		t *= t
		return 1 + t*(i0Small1+t*(i0Small2+t*(i0Small3+t*(i0Small4+t*(i0Small5+t*i0Small6)))))
	}

	t := i0Split / ax
	p := i0Large0 + t*(i0Large1+t*(i0Large2+t*(i0Large3+t*(i0Large4+t*(i0Large5+
		t*(i0Large6+t*(i0Large7+t*i0Large8)))))))
	return math.Exp(ax) * p / math.Sqrt(ax)
}

// KaiserBeta returns the window shape parameter giving attenuation dB of
// stopband rejection.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > betaHighAtt:
		return betaHighSlope * (attenuation - betaHighOffset)
	case attenuation >= betaMediumAtt:
		d := attenuation - betaMediumAtt
		return betaMedCoeff*math.Pow(d, betaMedPower) + betaMedLinear*d
	default:
		return 0
	}
}

// EstimateTaps returns the odd FIR length reaching attenuation dB with the
// given transition width (cycles per sample), clamped to [MinTaps, MaxTaps].
func EstimateTaps(attenuation, transition float64) int {
	if transition <= 0 {
		return MaxTaps
	}

	n := int(math.Ceil((attenuation - tapsAttOffset) / (tapsSlope * 2 * math.Pi * transition)))
	if n%2 == 0 {
		n++
	}
	return min(max(n, MinTaps), MaxTaps)
}
