// Package schrodinger computes bound states of the one-dimensional
// time-independent Schrödinger equation
//
//	−½ψ″(x) + V(x)ψ(x) = Eψ(x),   ψ(x_0) = ψ(x_{N−1}) = 0,
//
// in units ħ = m = 1, with two independent engines.
//
// What is inside?
//
//	• fem/        piecewise-linear finite elements on arbitrary (non-uniform)
//	              grids, reduced to a generalized symmetric eigenproblem
//	• shooting/   adaptive ODE integration, energy scan and Brent refinement
//	• grid/       mass, Laplacian and potential matrices of a grid
//	• matrix/     triplet builder, band helpers, validators and sentinel errors
//	• matrix/ops  symmetric eigensolvers (gonum, Jacobi) and H·x = λ·M·x
//	• ode/        Dormand–Prince 5(4) integrator
//	• roots/      sign-change scoping and Brent's method
//	• potential/  built-in potentials and their YAML description
//	• wavefunc/   the shared Spectrum type and normalization conventions
//	• timing/     zap-based execution-time logging
//	• config/     YAML problem files
//
// Both engines return a *wavefunc.Spectrum: energies in ascending order and
// states sampled on every grid point, normalized to ∫ψ² dx = 1 with the
// trapezoidal rule and signed so the first significant sample is positive.
// The two results are therefore directly comparable.
//
// Quick example:
//
//	points := grid.Linspace(-6, 6, 401)
//	sol, err := fem.Solve(potential.Harmonic(1), points, 4, nil)
//	// sol.Energies ≈ [0.5 1.5 2.5 3.5]
//
// The cmd/schrodinger command wraps both engines behind a YAML configuration.
package schrodinger
