// Package wavefunc holds the result type shared by the fem and shooting
// solvers and the normalization conventions that make their states comparable.
//
// Conventions:
//   - States are real and sampled on every point of the grid/domain.
//   - ∫ψ² dx = 1 under the trapezoidal rule on those points.
//   - The first sample whose magnitude exceeds a small fraction of the peak is
//     positive (the shooting solver starts with ψ'(x_0) > 0).
package wavefunc

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrInsufficientDimension is returned when more eigenstates are requested
	// than the discretization (FEM) or the energy search ceiling (shooting) can
	// provide.
	ErrInsufficientDimension = errors.New("wavefunc: requested states exceed available dimension")

	// ErrZeroNorm is returned by Normalize for a state with zero area.
	ErrZeroNorm = errors.New("wavefunc: state has zero norm")

	// ErrLength is returned when a state and its points differ in length.
	ErrLength = errors.New("wavefunc: state and points length mismatch")
)

// signThreshold is the fraction of the peak magnitude a sample must exceed to
// fix the sign of a state.
const signThreshold = 1e-3

// Spectrum is an ascending list of eigenpairs sampled on Points.
// Row i of States is the state of Energies[i].
type Spectrum struct {
	Points   []float64
	Energies []float64
	States   *mat.Dense
}

// Len returns the number of eigenpairs.
func (s *Spectrum) Len() int { return len(s.Energies) }

// State returns a copy of the i-th state.
func (s *Spectrum) State(i int) []float64 {
	return mat.Row(nil, i, s.States)
}

// Area returns the trapezoidal integral of psi² over xs.
func Area(psi, xs []float64) (float64, error) {
	if len(psi) != len(xs) {
		return 0, fmt.Errorf("Area: %d vs %d: %w", len(psi), len(xs), ErrLength)
	}
	if len(xs) < 2 {
		return 0, nil
	}
	sq := make([]float64, len(psi))
	floats.MulTo(sq, psi, psi)

	return integrate.Trapezoidal(xs, sq), nil
}

// Normalize scales psi in place so that its trapezoidal area is 1.
func Normalize(psi, xs []float64) error {
	area, err := Area(psi, xs)
	if err != nil {
		return fmt.Errorf("Normalize: %w", err)
	}
	if area == 0 || math.IsNaN(area) || math.IsInf(area, 0) {
		return fmt.Errorf("Normalize: area=%g: %w", area, ErrZeroNorm)
	}
	floats.Scale(1/math.Sqrt(area), psi)

	return nil
}

// AlignSign flips psi in place so that its first significant sample is positive.
func AlignSign(psi []float64) {
	if len(psi) == 0 {
		return
	}
	peak := math.Max(math.Abs(floats.Max(psi)), math.Abs(floats.Min(psi)))
	for _, v := range psi {
		if math.Abs(v) > signThreshold*peak {
			if v < 0 {
				floats.Scale(-1, psi)
			}

			return
		}
	}
}
