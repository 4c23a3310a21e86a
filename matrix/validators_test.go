// SPDX-License-Identifier: MIT
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/schrodinger/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func nan() float64 { return math.NaN() }

func TestValidateFinite(t *testing.T) {
	tests := []struct {
		name string
		m    mat.Matrix
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"finite", mat.NewDense(2, 2, []float64{1, 2, 3, 4}), nil},
		{"inf", mat.NewDense(1, 2, []float64{1, math.Inf(1)}), matrix.ErrNaNInf},
		{"nan band", mat.NewSymBandDense(2, 1, []float64{1, nan(), 2, 0}), matrix.ErrNaNInf},
		{"empty band", mat.NewSymBandDense(3, 0, []float64{1, 2, 3}), nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateFinite(tc.m)
			if tc.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAddScaled(t *testing.T) {
	a := mat.NewSymBandDense(3, 0, []float64{1, 2, 3})
	b := mat.NewSymBandDense(3, 1, []float64{
		2, 1,
		2, 1,
		2, 0,
	})

	sum, err := matrix.AddScaled(a, -0.5, b)
	require.NoError(t, err)
	_, k := sum.SymBand()
	assert.Equal(t, 1, k)

	want := mat.NewDense(3, 3, []float64{
		0, -0.5, 0,
		-0.5, 1, -0.5,
		0, -0.5, 2,
	})
	assert.True(t, mat.EqualApprox(want, sum, 1e-15), "got %v", mat.Formatted(sum))

	_, err = matrix.AddScaled(a, 1, mat.NewSymBandDense(2, 0, nil))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.AddScaled(nil, 1, a)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
