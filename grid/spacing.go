// SPDX-License-Identifier: MIT

package grid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced points from min to max inclusive.
// It panics if n < 2, as floats.Span does.
func Linspace(min, max float64, n int) []float64 {
	return floats.Span(make([]float64, n), min, max)
}

// Chebyshev returns n points from min to max inclusive, clustered towards
// both ends: x_i = c - r·cos(iπ/(n-1)). The endpoints are exact.
// It panics if n < 2.
func Chebyshev(min, max float64, n int) []float64 {
	if n < 2 {
		panic("grid: Chebyshev: n must be >= 2")
	}
	c, r := (min+max)/2, (max-min)/2
	out := make([]float64, n)
	for i := range out {
		out[i] = c - r*math.Cos(float64(i)*math.Pi/float64(n-1))
	}
	out[0], out[n-1] = min, max

	return out
}
