package ops

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/schrodinger/matrix"
	"gonum.org/v1/gonum/mat"
)

// GeneralizedSym solves H·x = λ·M·x for symmetric H and symmetric positive
// definite M. Eigenvalues are returned in ascending order; eigenvectors are
// the columns of the returned matrix, M-orthonormal (xᵢᵀ·M·xⱼ = δᵢⱼ).
//
// Algorithm Outline:
//  1. Factorize M = L·Lᵀ (Cholesky).
//  2. Form the standard symmetric problem C = L⁻¹·H·L⁻ᵀ.
//  3. Solve C·y = λ·y with the selected backend.
//  4. Recover x = L⁻ᵀ·y.
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch on shape problems.
//   - matrix.ErrNaNInf when H or M holds a NaN or infinite entry.
//   - matrix.ErrNotPositiveDefinite when the Cholesky factorization fails.
//   - matrix.ErrEigenFailed from the backend.
//
// Complexity: O(n³) time, O(n²) memory.
func GeneralizedSym(h, m mat.Symmetric, backend Backend) ([]float64, *mat.Dense, error) {
	if h == nil || m == nil {
		return nil, nil, fmt.Errorf("GeneralizedSym: %w", matrix.ErrNilMatrix)
	}
	n := h.SymmetricDim()
	if m.SymmetricDim() != n {
		return nil, nil, fmt.Errorf("GeneralizedSym: %d vs %d: %w", n, m.SymmetricDim(), matrix.ErrDimensionMismatch)
	}

	if err := matrix.ValidateFinite(h); err != nil {
		return nil, nil, fmt.Errorf("GeneralizedSym: H: %w", err)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, nil, fmt.Errorf("GeneralizedSym: M: %w", err)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(m); !ok {
		return nil, nil, fmt.Errorf("GeneralizedSym: %w", matrix.ErrNotPositiveDefinite)
	}
	var l, linv mat.TriDense
	chol.LTo(&l)
	if err := linv.InverseTri(&l); err != nil {
		// ill-conditioning is reported but the inverse is still usable
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, nil, fmt.Errorf("GeneralizedSym: %v: %w", err, matrix.ErrNotPositiveDefinite)
		}
	}

	var tmp, c mat.Dense
	tmp.Mul(&linv, h)
	c.Mul(&tmp, linv.T())

	// symmetrize away round-off before the symmetric solve
	cs := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cs.SetSym(i, j, 0.5*(c.At(i, j)+c.At(j, i)))
		}
	}

	values, y, err := SymEigen(cs, backend)
	if err != nil {
		return nil, nil, fmt.Errorf("GeneralizedSym: %w", err)
	}

	var x mat.Dense
	x.Mul(linv.T(), y)

	return values, &x, nil
}
