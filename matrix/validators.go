// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Reject non-finite entries before a factorization turns them into an
//     opaque convergence failure.
//   - Return sentinel errors wrapped with the validator tag so call sites can
//     match with errors.Is.
//
// Performance:
//   - O(r·c) over At and allocation-free; band storage answers off-band
//     entries with zero, so the cost is dominated by the scan itself.

package matrix

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ValidateFinite checks that a is non-nil and every entry of a is finite.
func ValidateFinite(a mat.Matrix) error {
	if a == nil {
		return matrixErrorf(opFinite, ErrNilMatrix)
	}
	r, c := a.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := a.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return matrixErrorf(opFinite, fmt.Errorf("(%d,%d)=%g: %w", i, j, v, ErrNaNInf))
			}
		}
	}

	return nil
}
