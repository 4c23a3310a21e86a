// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across matrix and
// matrix/ops. Algorithms return these sentinels (optionally wrapped with an
// operation tag) and tests check them via errors.Is. Panics are reserved for
// invalid option values (programmer error).

package matrix

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for easy grepping. Facades wrap
// with an operation tag via matrixErrorf; callers still match with errors.Is.

var (
	// ErrBadShape is returned when a requested dimension is not positive.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals a matrix expected to be symmetric violated symmetry
	// within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf entry where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNotPositiveDefinite is returned when a Cholesky factorization of a
	// matrix required to be symmetric positive definite fails.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrEigenFailed indicates that an eigen routine failed to converge.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)

// Operation tags used when wrapping sentinels.
const (
	opBuild     = "Build"
	opAddScaled = "AddScaled"
	opFinite    = "ValidateFinite"
)

// matrixErrorf wraps err with an operation tag, preserving the sentinel via %w.
// Call only with err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
