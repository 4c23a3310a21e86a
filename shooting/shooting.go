// Package shooting solves the one-dimensional time-independent Schrödinger
// equation with the shooting method.
//
// Description:
//
//	For a trial energy E the equation ψ″ = 2(V − E)ψ (ħ = m = 1) is integrated
//	from the left end of the domain with ψ(x_0) = 0, ψ′(x_0) = ε. E is an
//	eigenvalue exactly when the solution also vanishes at the right end, so
//	eigenvalues are the roots of E ↦ ψ_E(x_{N−1}).
//
// Algorithm Outline:
//  1. Start at the minimum of V on the domain (below every eigenvalue).
//  2. Scan E upward in fixed steps until ψ_E(x_{N−1}) changes sign, refine
//     the bracket with Brent, record the energy and continue past it.
//  3. Re-integrate at each energy, sampling ψ on every domain point, and
//     normalize with the trapezoidal rule.
//
// Two eigenvalues closer than the scan step produce no sign change and are
// both missed; lower the step with WithEnergyStep for near-degenerate levels.
package shooting

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/schrodinger/ode"
	"github.com/katalvlaran/schrodinger/potential"
	"github.com/katalvlaran/schrodinger/roots"
	"github.com/katalvlaran/schrodinger/wavefunc"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrBadDomain is returned for a domain with fewer than two points,
	// decreasing points or zero length.
	ErrBadDomain = errors.New("shooting: domain must be increasing with positive length")

	// ErrInvalidStates is returned when fewer than one state is requested.
	ErrInvalidStates = errors.New("shooting: number of states must be >= 1")
)

// RHS returns the derivative of state = (ψ, ψ′) at x: (ψ′, 2(V(x) − E)ψ).
func RHS(state [2]float64, x float64, v potential.Func, energy float64) [2]float64 {
	return [2]float64{state[1], 2 * (v(x) - energy) * state[0]}
}

// RightBoundary integrates from domain[0] with ψ = 0, ψ′ = ε at the given
// energy and returns ψ at the last domain point.
func RightBoundary(energy float64, domain []float64, v potential.Func, opts ...Option) (float64, error) {
	if err := validateDomain(domain); err != nil {
		return 0, fmt.Errorf("RightBoundary: %w", err)
	}
	o := gatherOptions(opts...)

	psi, err := rightBoundary(o, energy, domain, v)
	if err != nil {
		return 0, fmt.Errorf("RightBoundary: E=%g: %w", energy, err)
	}

	return psi, nil
}

// SolveEnergies returns the solsNb lowest eigenvalues at or above energy0,
// in ascending order.
//
// Errors:
//   - ErrBadDomain, ErrInvalidStates for invalid inputs.
//   - wavefunc.ErrInsufficientDimension when the scan passes the energy
//     ceiling before solsNb energies are found. The energies returned with it
//     all lie at or below the ceiling.
//   - ode errors from the boundary evaluation.
func SolveEnergies(energy0 float64, domain []float64, v potential.Func, solsNb int, opts ...Option) ([]float64, error) {
	if err := validateDomain(domain); err != nil {
		return nil, fmt.Errorf("SolveEnergies: %w", err)
	}
	if solsNb < 1 {
		return nil, fmt.Errorf("SolveEnergies: solsNb=%d: %w", solsNb, ErrInvalidStates)
	}
	if math.IsNaN(energy0) || math.IsInf(energy0, 0) {
		return nil, fmt.Errorf("SolveEnergies: energy0=%g: %w", energy0, ErrBadDomain)
	}
	o := gatherOptions(opts...)

	ceiling := o.ceiling
	if math.IsNaN(ceiling) {
		ceiling = energyCeiling(v, domain, solsNb)
	}

	f := func(e float64) (float64, error) { return rightBoundary(o, e, domain, v) }
	insufficient := func(n int) error {
		return fmt.Errorf("SolveEnergies: %d of %d energies below %g: %w",
			n, solsNb, ceiling, wavefunc.ErrInsufficientDimension)
	}

	energies := make([]float64, 0, solsNb)
	e := energy0
	for len(energies) < solsNb {
		if e > ceiling {
			return energies, insufficient(len(energies))
		}
		iters := scanBudget(e, ceiling, o)
		root, found, err := roots.Scope(f, e,
			roots.WithStep(o.energyStep),
			roots.WithMaxIters(iters),
			roots.WithDirection(roots.Upward),
			roots.WithTolerance(o.energyTol),
		)
		if err != nil {
			return energies, fmt.Errorf("SolveEnergies: %w", err)
		}
		if !found {
			e += float64(iters) * o.energyStep
			continue
		}
		if root > ceiling {
			return energies, insufficient(len(energies))
		}
		if n := len(energies); n > 0 && math.Abs(root-energies[n-1]) <= o.dedup {
			e = math.Max(root, energies[n-1]) + o.dedup + o.energyTol
			continue
		}
		energies = append(energies, root)
		e = root + o.dedup + o.energyTol
	}

	return energies, nil
}

// scanBudget returns how many energy steps one scan from e may take without
// passing ceiling by more than a single step. It is at least 1.
func scanBudget(e, ceiling float64, o Options) int {
	n := math.Ceil((ceiling - e) / o.energyStep)
	if n < 1 {
		return 1
	}
	if n > float64(o.scanIters) {
		return o.scanIters
	}

	return int(n)
}

// Solve returns the nStates lowest eigenpairs of −½d²/dx² + v on domain, each
// state sampled on every domain point and normalized with the trapezoidal rule.
func Solve(v potential.Func, domain []float64, nStates int, opts ...Option) (*wavefunc.Spectrum, error) {
	if err := validateDomain(domain); err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}
	if nStates < 1 {
		return nil, fmt.Errorf("Solve: nStates=%d: %w", nStates, ErrInvalidStates)
	}
	o := gatherOptions(opts...)

	energies, err := SolveEnergies(potential.Min(v, domain), domain, v, nStates, opts...)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w", err)
	}

	xs := append([]float64(nil), domain...)
	states := mat.NewDense(nStates, len(xs), nil)
	for k, e := range energies {
		psi, err := sampleState(o, e, xs, v)
		if err != nil {
			return nil, fmt.Errorf("Solve: state %d: %w", k, err)
		}
		if err := wavefunc.Normalize(psi, xs); err != nil {
			return nil, fmt.Errorf("Solve: state %d: %w", k, err)
		}
		wavefunc.AlignSign(psi)
		states.SetRow(k, psi)
	}

	return &wavefunc.Spectrum{Points: xs, Energies: energies, States: states}, nil
}

func rightBoundary(o Options, energy float64, domain []float64, v potential.Func) (float64, error) {
	a, b := domain[0], domain[len(domain)-1]
	y, _, err := ode.Final(system(v, energy), a, b, []float64{0, o.slope}, odeConfig(o, b-a))
	if err != nil {
		return 0, err
	}

	return y[0], nil
}

func sampleState(o Options, energy float64, xs []float64, v potential.Func) ([]float64, error) {
	ys, _, err := ode.Solve(system(v, energy), xs, []float64{0, o.slope}, odeConfig(o, xs[len(xs)-1]-xs[0]))
	if err != nil {
		return nil, err
	}
	psi := make([]float64, len(xs))
	for i, y := range ys {
		psi[i] = y[0]
	}

	return psi, nil
}

// system adapts RHS to the ode package.
func system(v potential.Func, energy float64) ode.Func {
	return func(x float64, y, dy []float64) {
		d := RHS([2]float64{y[0], y[1]}, x, v, energy)
		dy[0], dy[1] = d[0], d[1]
	}
}

func odeConfig(o Options, length float64) *ode.Config {
	return &ode.Config{
		RelTol:      o.relTol,
		AbsTol:      o.absTol,
		InitialStep: length * initialStepFraction,
		MaxStep:     length * maxStepFraction,
	}
}

// energyCeiling bounds the solsNb-th eigenvalue from above by the box level
// (solsNb+1)²π²/(2L²) lifted by the potential maximum.
func energyCeiling(v potential.Func, domain []float64, solsNb int) float64 {
	l := domain[len(domain)-1] - domain[0]
	n := float64(solsNb + 1)

	return potential.Max(v, domain) + n*n*math.Pi*math.Pi/(2*l*l) + 1
}

func validateDomain(domain []float64) error {
	if len(domain) < 2 {
		return fmt.Errorf("%d points: %w", len(domain), ErrBadDomain)
	}
	for i := 1; i < len(domain); i++ {
		if domain[i] < domain[i-1] {
			return fmt.Errorf("domain[%d] < domain[%d]: %w", i, i-1, ErrBadDomain)
		}
	}
	if !(domain[len(domain)-1] > domain[0]) {
		return fmt.Errorf("zero length: %w", ErrBadDomain)
	}

	return nil
}
