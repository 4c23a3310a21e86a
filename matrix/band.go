// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// AddScaled returns the symmetric band matrix a + alpha·b.
// The result has the larger of the two bandwidths; operands are not mutated.
//
// Errors:
//   - ErrNilMatrix when either operand is nil.
//   - ErrDimensionMismatch when the dimensions differ.
//
// Complexity:
//   - Time O(n·k), Space O(n·k).
func AddScaled(a *mat.SymBandDense, alpha float64, b *mat.SymBandDense) (*mat.SymBandDense, error) {
	if a == nil || b == nil {
		return nil, matrixErrorf(opAddScaled, ErrNilMatrix)
	}
	na, ka := a.SymBand()
	nb, kb := b.SymBand()
	if na != nb {
		return nil, matrixErrorf(opAddScaled, fmt.Errorf("%d vs %d: %w", na, nb, ErrDimensionMismatch))
	}

	k := ka
	if kb > k {
		k = kb
	}
	out := mat.NewSymBandDense(na, k, nil)
	for i := 0; i < na; i++ {
		for j := i; j < na && j <= i+k; j++ {
			var v float64
			if j-i <= ka {
				v += a.At(i, j)
			}
			if j-i <= kb {
				v += alpha * b.At(i, j)
			}
			out.SetSymBand(i, j, v)
		}
	}

	return out, nil
}
