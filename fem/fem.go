// Package fem solves the one-dimensional time-independent Schrödinger
// equation with the finite element method.
//
// Description:
//
//	With piecewise-linear hat functions on the grid points and ψ = 0 at both
//	ends, the equation −½ψ″ + Vψ = Eψ (ħ = m = 1) becomes the generalized
//	symmetric eigenproblem
//
//	    H·c = E·M·c,   H = −L/2 + V,
//
//	where M, L and V are the interior mass, Laplacian and potential matrices
//	assembled by package grid.
//
// Algorithm Outline:
//  1. Build the grid and its M, L, V band matrices.
//  2. Form H = V − L/2 in band storage.
//  3. Solve H·c = E·M·c (Cholesky reduction + symmetric eigensolver).
//  4. Keep the nStates lowest pairs, pad each state with the boundary zeros,
//     normalize with the trapezoidal rule and align its sign.
//
// Complexity:
//
//	Assembly O(n), eigensolve O(n³) time and O(n²) memory for n grid points.
package fem

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/schrodinger/grid"
	"github.com/katalvlaran/schrodinger/matrix"
	"github.com/katalvlaran/schrodinger/matrix/ops"
	"github.com/katalvlaran/schrodinger/potential"
	"github.com/katalvlaran/schrodinger/wavefunc"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidStates is returned when fewer than one state is requested.
var ErrInvalidStates = errors.New("fem: number of states must be >= 1")

const opSolve = "fem: Solve"

// Options configures Solve.
type Options struct {
	Backend         ops.Backend
	QuadratureNodes int
}

// DefaultOptions returns the default solver configuration.
func DefaultOptions() Options {
	return Options{
		Backend:         ops.BackendGonum,
		QuadratureNodes: grid.DefaultQuadratureNodes,
	}
}

// Solve returns the nStates lowest eigenpairs of −½d²/dx² + v on points.
// opts may be nil for DefaultOptions.
//
// Errors:
//   - ErrInvalidStates when nStates < 1.
//   - grid.ErrUnsorted / grid.ErrTooFewPoints from grid construction.
//   - wavefunc.ErrInsufficientDimension when nStates > len(points) − 2.
//   - matrix.ErrNaNInf when v is not finite somewhere on the grid.
//   - matrix.ErrNotPositiveDefinite / matrix.ErrEigenFailed from the eigensolve.
func Solve(v potential.Func, points []float64, nStates int, opts *Options) (*wavefunc.Spectrum, error) {
	o := DefaultOptions()
	if opts != nil {
		o.Backend = opts.Backend
		if opts.QuadratureNodes > 0 {
			o.QuadratureNodes = opts.QuadratureNodes
		}
	}
	if nStates < 1 {
		return nil, fmt.Errorf("%s: nStates=%d: %w", opSolve, nStates, ErrInvalidStates)
	}

	g, err := grid.New(points, grid.WithQuadratureNodes(o.QuadratureNodes))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	interior := g.Interior()
	if nStates > interior {
		return nil, fmt.Errorf("%s: %d states on %d interior points: %w",
			opSolve, nStates, interior, wavefunc.ErrInsufficientDimension)
	}

	h, err := Hamiltonian(g, v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}
	energies, vectors, err := ops.GeneralizedSym(h, g.Mass(), o.Backend)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSolve, err)
	}

	xs := g.Points()
	states := mat.NewDense(nStates, len(xs), nil)
	psi := make([]float64, len(xs))
	for k := 0; k < nStates; k++ {
		psi[0], psi[len(xs)-1] = 0, 0
		for i := 0; i < interior; i++ {
			psi[i+1] = vectors.At(i, k)
		}
		if err := wavefunc.Normalize(psi, xs); err != nil {
			return nil, fmt.Errorf("%s: state %d: %w", opSolve, k, err)
		}
		wavefunc.AlignSign(psi)
		states.SetRow(k, psi)
	}

	return &wavefunc.Spectrum{
		Points:   xs,
		Energies: append([]float64(nil), energies[:nStates]...),
		States:   states,
	}, nil
}

// Hamiltonian returns H = V − L/2 on the interior points of g.
func Hamiltonian(g *grid.Grid, v potential.Func) (*mat.SymBandDense, error) {
	h, err := matrix.AddScaled(g.Potential(v), -0.5, g.Laplacian())
	if err != nil {
		return nil, fmt.Errorf("Hamiltonian: %w", err)
	}

	return h, nil
}
