// SPDX-License-Identifier: MIT

// Package grid assembles the finite-element operators of a one-dimensional,
// possibly non-uniform grid with piecewise-linear (hat) basis functions.
//
// All matrices are restricted to interior points: row/column i corresponds to
// grid point i+1, the two boundary points being held at zero (homogeneous
// Dirichlet conditions). Every operator is symmetric tridiagonal and returned
// as gonum band storage (mat.SymBandDense, k = 1).
//
// A Grid is immutable after construction. Matrices are recomputed on every
// call, so repeated calls return bit-identical results.
package grid

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/schrodinger/matrix"
	"github.com/katalvlaran/schrodinger/potential"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
)

// MinPoints is the smallest grid with one interior degree of freedom.
const MinPoints = 3

var (
	// ErrUnsorted is returned by New when the points are not non-decreasing.
	ErrUnsorted = errors.New("grid: points must be sorted")

	// ErrTooFewPoints is returned by New for grids without interior points.
	ErrTooFewPoints = errors.New("grid: at least 3 points are required")
)

// Grid is an ordered set of sample points x_0 <= x_1 <= ... <= x_{n-1}.
type Grid struct {
	points []float64
	opts   Options
}

// New copies points into a new Grid.
//
// Errors:
//   - ErrTooFewPoints when len(points) < MinPoints.
//   - ErrUnsorted when any adjacent difference is negative.
func New(points []float64, opts ...Option) (*Grid, error) {
	if len(points) < MinPoints {
		return nil, fmt.Errorf("New: %d points: %w", len(points), ErrTooFewPoints)
	}
	for i := 1; i < len(points); i++ {
		if points[i]-points[i-1] < 0 {
			return nil, fmt.Errorf("New: x[%d]=%g < x[%d]=%g: %w",
				i, points[i], i-1, points[i-1], ErrUnsorted)
		}
	}

	own := make([]float64, len(points))
	copy(own, points)

	return &Grid{points: own, opts: gatherOptions(opts...)}, nil
}

// Len returns the number of grid points.
func (g *Grid) Len() int { return len(g.points) }

// Interior returns the number of interior points, i.e. the matrix dimension.
func (g *Grid) Interior() int { return len(g.points) - 2 }

// Points returns a copy of the grid points.
func (g *Grid) Points() []float64 {
	out := make([]float64, len(g.points))
	copy(out, g.points)

	return out
}

// Mass returns the interior mass matrix M_ij = ∫ φ_i φ_j dx:
// diagonal (x_{s+1} - x_{s-1})/3, off-diagonal (x_{s+1} - x_s)/6.
func (g *Grid) Mass() *mat.SymBandDense {
	x := g.points

	return g.assemble(
		func(s int) float64 { return (x[s+1] - x[s-1]) / 3 },
		func(s int) float64 { return (x[s+1] - x[s]) / 6 },
	)
}

// Laplacian returns the interior matrix of the second-derivative operator
// L_ij = -∫ φ_i' φ_j' dx: diagonal 1/(x_{s-1}-x_s) + 1/(x_s-x_{s+1}),
// off-diagonal 1/(x_{s+1}-x_s).
func (g *Grid) Laplacian() *mat.SymBandDense {
	x := g.points

	return g.assemble(
		func(s int) float64 { return 1/(x[s-1]-x[s]) + 1/(x[s]-x[s+1]) },
		func(s int) float64 { return 1 / (x[s+1] - x[s]) },
	)
}

// Potential returns the interior potential matrix V_ij = ∫ v φ_i φ_j dx.
// Each entry is integrated over the shared support of the two hat functions
// with fixed-order Gauss–Legendre quadrature (WithQuadratureNodes).
func (g *Grid) Potential(v potential.Func) *mat.SymBandDense {
	x := g.points
	nodes := g.opts.quadNodes

	integrate := func(f func(float64) float64, a, b float64) float64 {
		if b == a {
			return 0
		}

		return quad.Fixed(f, a, b, nodes, quad.Legendre{}, 0)
	}

	diag := func(s int) float64 {
		left := integrate(func(t float64) float64 {
			r := g.rampUp(t, s)

			return v(t) * r * r
		}, x[s-1], x[s])
		right := integrate(func(t float64) float64 {
			r := g.rampDown(t, s)

			return v(t) * r * r
		}, x[s], x[s+1])

		return left + right
	}
	off := func(s int) float64 {
		return integrate(func(t float64) float64 {
			return v(t) * g.rampUp(t, s+1) * g.rampDown(t, s)
		}, x[s], x[s+1])
	}

	return g.assemble(diag, off)
}

// rampUp is the ascending half of the hat function centred on site s,
// rising from 0 at x_{s-1} to 1 at x_s.
func (g *Grid) rampUp(t float64, s int) float64 {
	return (t - g.points[s-1]) / (g.points[s] - g.points[s-1])
}

// rampDown is the descending half of the hat function centred on site s,
// falling from 1 at x_s to 0 at x_{s+1}.
func (g *Grid) rampDown(t float64, s int) float64 {
	return (g.points[s+1] - t) / (g.points[s+1] - g.points[s])
}

// assemble accumulates diagonal entries for sites 1..n-2 and off-diagonal
// entries for site pairs (s, s+1), s in 1..n-3, then compresses them.
func (g *Grid) assemble(diag, off func(site int) float64) *mat.SymBandDense {
	n := len(g.points)
	b, err := matrix.NewBuilder(n-2, matrix.WithNoValidateNaNInf())
	if err != nil {
		// unreachable: New guarantees n >= MinPoints
		panic(err)
	}
	for site := 1; site < n-1; site++ {
		if err := b.Add(site-1, site-1, diag(site)); err != nil {
			// unreachable: indices lie in [0, n-2) and values are not validated
			panic(err)
		}
	}
	for site := 1; site < n-2; site++ {
		if err := b.AddSym(site-1, site, off(site)); err != nil {
			panic(err)
		}
	}

	band, err := b.SymBand()
	if err != nil {
		// unreachable: off-diagonal entries are written mirrored
		panic(err)
	}

	return band
}
