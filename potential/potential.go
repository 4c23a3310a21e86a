// Package potential defines the one-dimensional potential energy functions
// consumed by the grid, fem and shooting packages, together with a small
// library of analytic potentials and sampling helpers.
//
// Every potential is a plain Func closure; there is no type hierarchy.
// Units follow the ħ = m = 1 convention used across the module.
package potential

import (
	"math"
)

// Func is a real potential V(x). It must be finite on the whole domain it is
// evaluated on.
type Func func(x float64) float64

// Zero returns V(x) = 0. Combined with the Dirichlet walls of a grid or domain
// it models a particle in an infinite square well.
func Zero() Func {
	return func(float64) float64 { return 0 }
}

// Harmonic returns V(x) = ω²x²/2, whose levels are E_n = ω(n + 1/2).
func Harmonic(omega float64) Func {
	k := omega * omega / 2

	return func(x float64) float64 { return k * x * x }
}

// FiniteWell returns a square well of the given depth centred on 0:
// -depth for |x| < width/2 and 0 elsewhere.
func FiniteWell(depth, width float64) Func {
	half := width / 2

	return func(x float64) float64 {
		if math.Abs(x) < half {
			return -depth
		}

		return 0
	}
}

// DoubleWell returns V(x) = b(x² − a²)², with minima at ±a separated by a
// barrier of height b·a⁴.
func DoubleWell(a, b float64) Func {
	a2 := a * a

	return func(x float64) float64 {
		d := x*x - a2

		return b * d * d
	}
}

// Linear returns V(x) = slope·x.
func Linear(slope float64) Func {
	return func(x float64) float64 { return slope * x }
}

// Morse returns V(x) = d(1 − e^{−a(x−x0)})², with levels
// E_n = a√(2d)(n+½) − a²(n+½)²/2 for n below a√(2d)/a² − ½.
func Morse(d, a, x0 float64) Func {
	return func(x float64) float64 {
		e := 1 - math.Exp(-a*(x-x0))

		return d * e * e
	}
}

// Min returns the smallest value of v sampled on xs.
// It returns +Inf for an empty xs.
func Min(v Func, xs []float64) float64 {
	low := math.Inf(1)
	for _, x := range xs {
		if y := v(x); y < low {
			low = y
		}
	}

	return low
}

// Max returns the largest value of v sampled on xs.
// It returns -Inf for an empty xs.
func Max(v Func, xs []float64) float64 {
	high := math.Inf(-1)
	for _, x := range xs {
		if y := v(x); y > high {
			high = y
		}
	}

	return high
}
