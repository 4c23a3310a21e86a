package shooting_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/schrodinger/fem"
	"github.com/katalvlaran/schrodinger/grid"
	"github.com/katalvlaran/schrodinger/potential"
	"github.com/katalvlaran/schrodinger/shooting"
	"github.com/katalvlaran/schrodinger/wavefunc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestRHS(t *testing.T) {
	d := shooting.RHS([2]float64{2, 3}, 1, potential.Harmonic(1), 1.5)
	assert.Equal(t, [2]float64{3, -4}, d)

	// free particle at E = 0 has zero curvature
	d = shooting.RHS([2]float64{5, -1}, 0.3, potential.Zero(), 0)
	assert.Equal(t, [2]float64{-1, 0}, d)
}

// TestRightBoundary compares with ψ(x) = ε·sin(kx)/k, k = √(2E), in a box.
func TestRightBoundary(t *testing.T) {
	domain := grid.Linspace(0, math.Pi, 11)

	psi, err := shooting.RightBoundary(0.125, domain, potential.Zero())
	require.NoError(t, err)
	assert.InDelta(t, 2*shooting.DefaultSlope, psi, 1e-12)

	psi, err = shooting.RightBoundary(0.5, domain, potential.Zero())
	require.NoError(t, err)
	assert.InDelta(t, 0, psi, 1e-12)

	psi, err = shooting.RightBoundary(0.125, domain, potential.Zero(), shooting.WithSlope(1))
	require.NoError(t, err)
	assert.InDelta(t, 2, psi, 1e-8)

	_, err = shooting.RightBoundary(1, []float64{0}, potential.Zero())
	assert.ErrorIs(t, err, shooting.ErrBadDomain)
}

func TestSolveEnergies_Box(t *testing.T) {
	domain := grid.Linspace(0, math.Pi, 101)
	energies, err := shooting.SolveEnergies(0, domain, potential.Zero(), 4)
	require.NoError(t, err)
	require.Len(t, energies, 4)
	for n, e := range energies {
		k := float64(n + 1)
		assert.InDelta(t, k*k/2, e, 1e-8, "level %d", n)
	}
}

func TestSolveEnergies_Ceiling(t *testing.T) {
	domain := grid.Linspace(0, math.Pi, 11)
	energies, err := shooting.SolveEnergies(0, domain, potential.Zero(), 3, shooting.WithEnergyCeiling(1))
	assert.ErrorIs(t, err, wavefunc.ErrInsufficientDimension)
	require.Len(t, energies, 1)
	assert.InDelta(t, 0.5, energies[0], 1e-8)

	// a level one step past the ceiling is still rejected
	energies, err = shooting.SolveEnergies(0, domain, potential.Zero(), 3,
		shooting.WithEnergyCeiling(1.995), shooting.WithEnergyStep(0.01))
	assert.ErrorIs(t, err, wavefunc.ErrInsufficientDimension)
	require.Len(t, energies, 1)

	energies, err = shooting.SolveEnergies(0, domain, potential.Zero(), 3, shooting.WithEnergyCeiling(2.5))
	assert.ErrorIs(t, err, wavefunc.ErrInsufficientDimension)
	require.Len(t, energies, 2)
	for _, e := range energies {
		assert.LessOrEqual(t, e, 2.5)
	}
}

func TestSolve_Harmonic(t *testing.T) {
	domain := grid.Linspace(-6, 6, 401)
	sol, err := shooting.Solve(potential.Harmonic(1), domain, 4)
	require.NoError(t, err)
	require.Equal(t, 4, sol.Len())

	for n, e := range sol.Energies {
		assert.InEpsilon(t, float64(n)+0.5, e, 1e-2, "level %d", n)

		area, err := wavefunc.Area(sol.State(n), domain)
		require.NoError(t, err)
		assert.InDelta(t, 1, area, 1e-4)
	}
	assert.False(t, floats.HasNaN(sol.State(0)))
}

// TestSolve_AgreesWithFEM runs both engines on the same grid.
func TestSolve_AgreesWithFEM(t *testing.T) {
	points := grid.Linspace(-6, 6, 401)
	v := potential.Harmonic(1)

	ref, err := fem.Solve(v, points, 3, nil)
	require.NoError(t, err)
	got, err := shooting.Solve(v, points, 3)
	require.NoError(t, err)

	assert.InDeltaSlice(t, ref.Energies, got.Energies, 1e-2)
	for n := 0; n < 3; n++ {
		diff := make([]float64, len(points))
		floats.SubTo(diff, ref.State(n), got.State(n))
		assert.Less(t, floats.Norm(diff, math.Inf(1)), 5e-3, "state %d", n)
	}
}

func TestSolve_Errors(t *testing.T) {
	v := potential.Harmonic(1)

	_, err := shooting.Solve(v, []float64{1, 0}, 1)
	assert.ErrorIs(t, err, shooting.ErrBadDomain)

	_, err = shooting.Solve(v, []float64{1, 1, 1}, 1)
	assert.ErrorIs(t, err, shooting.ErrBadDomain)

	_, err = shooting.Solve(v, []float64{0, 1}, 0)
	assert.ErrorIs(t, err, shooting.ErrInvalidStates)

	_, err = shooting.SolveEnergies(math.NaN(), []float64{0, 1}, v, 1)
	assert.ErrorIs(t, err, shooting.ErrBadDomain)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { shooting.WithSlope(0) })
	assert.Panics(t, func() { shooting.WithTolerances(0, 1) })
	assert.Panics(t, func() { shooting.WithEnergyStep(-1) })
	assert.Panics(t, func() { shooting.WithScanIters(0) })
	assert.Panics(t, func() { shooting.WithEnergyCeiling(math.Inf(1)) })
	assert.Panics(t, func() { shooting.WithDedupTolerance(-1) })
	assert.Panics(t, func() { shooting.WithEnergyTolerance(0) })
}

func ExampleSolveEnergies() {
	domain := grid.Linspace(0, math.Pi, 51)
	energies, _ := shooting.SolveEnergies(0, domain, potential.Zero(), 3)
	for _, e := range energies {
		fmt.Printf("%.4f\n", e)
	}
	// Output:
	// 0.5000
	// 2.0000
	// 4.5000
}

func BenchmarkSolve_Harmonic(b *testing.B) {
	domain := grid.Linspace(-5, 5, 201)
	v := potential.Harmonic(1)
	for i := 0; i < b.N; i++ {
		_, _ = shooting.Solve(v, domain, 3)
	}
}
