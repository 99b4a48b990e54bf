package stats

import "math"

// zLimit bounds probit output and short-circuits the CDF series. Beyond
// |z| = 6.5 the normal tail mass is below 4e-11, far under the accuracy of
// the rational approximation, and the Maclaurin series stops converging in
// double precision.
const zLimit = 6.5

// seriesEpsilon terminates the CDF series once a term's magnitude drops
// below it.
const seriesEpsilon = 1e-23

// invSqrt2Pi is 1/sqrt(2*pi), the normal density normalizing constant.
var invSqrt2Pi = 1.0 / math.Sqrt(2.0*math.Pi)

// Abramowitz & Stegun 26.2.23 rational approximation coefficients for the
// inverse normal CDF. Absolute error < 4.5e-4 over the open unit interval.
var (
	probitC = [3]float64{2.515517, 0.802853, 0.010328}
	probitD = [3]float64{1.432788, 0.189269, 0.001308}
)

// Probit returns z such that CDF(z) = p, using the Abramowitz-Stegun
// rational approximation. It is monotonically increasing with
// Probit(0.5) = 0. Inputs at or beyond the unit interval clamp to
// -zLimit / +zLimit instead of diverging.
func Probit(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	if p <= 0 {
		return -zLimit
	}
	if p >= 1 {
		return zLimit
	}
	if p == 0.5 {
		return 0
	}

	// The approximation is stated for the lower tail; mirror the upper tail.
	tail := p
	sign := -1.0
	if p > 0.5 {
		tail = 1 - p
		sign = 1.0
	}

	t := math.Sqrt(-2 * math.Log(tail))
	num := probitC[0] + t*(probitC[1]+t*probitC[2])
	den := 1 + t*(probitD[0]+t*(probitD[1]+t*probitD[2]))
	z := sign * (t - num/den)

	if z > zLimit {
		return zLimit
	}
	if z < -zLimit {
		return -zLimit
	}
	return z
}

// CDF returns the standard normal cumulative distribution at z via the
// Maclaurin series
//
//	Phi(z) = 1/2 + phi(z) * sum_k z^(2k+1) / (1*3*5*...*(2k+1))
//
// summing terms until their magnitude falls below seriesEpsilon. For
// |z| > zLimit the series is bypassed and the saturated tail value is
// returned directly.
func CDF(z float64) float64 {
	if math.IsNaN(z) {
		return math.NaN()
	}
	if z > zLimit {
		return 1
	}
	if z < -zLimit {
		return 0
	}

	term := z
	sum := z
	zSq := z * z
	for k := 1; math.Abs(term) > seriesEpsilon; k++ {
		term *= zSq / float64(2*k+1)
		sum += term
	}

	p := 0.5 + invSqrt2Pi*math.Exp(-zSq/2)*sum
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
