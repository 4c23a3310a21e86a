package roots_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/katalvlaran/schrodinger/roots"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadratic(x float64) float64 { return x*x - 1 }

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// TestScope_SignFlip checks sign(f(x0)) != sign(f(root)) for starts across [−1, 1],
// both roots included.
func TestScope_SignFlip(t *testing.T) {
	f := roots.Plain(quadratic)
	for i := 0; i < 10; i++ {
		x0 := -1 + float64(i)*2/9
		t.Run(fmt.Sprintf("x0=%.3f", x0), func(t *testing.T) {
			root, found, err := roots.Scope(f, x0)
			require.NoError(t, err)
			require.True(t, found)
			assert.NotEqual(t, sign(quadratic(x0)), sign(quadratic(root)))
			assert.InDelta(t, 1, math.Abs(root), 1e-9)
		})
	}
}

func TestScope_ZeroAtStart(t *testing.T) {
	for _, x0 := range []float64{-1, 1} {
		root, found, err := roots.Scope(roots.Plain(quadratic), x0)
		require.NoError(t, err)
		assert.True(t, found)
		assert.NotZero(t, quadratic(root))
		assert.InDelta(t, x0, root, 1e-11)
	}

	// upward from a root only looks above it
	root, found, err := roots.Scope(roots.Plain(quadratic), 1, roots.WithDirection(roots.Upward))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Greater(t, root, 1.0)

	// identically zero: no point with a sign exists
	_, found, err = roots.Scope(roots.Plain(func(float64) float64 { return 0 }), 0.5, roots.WithMaxIters(10))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestScope_Directions(t *testing.T) {
	f := roots.Plain(quadratic)
	step := roots.WithStep(1e-2)

	root, found, err := roots.Scope(f, 0.005, step, roots.WithDirection(roots.Upward))
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 1, root, 1e-9)

	root, found, err = roots.Scope(f, 0.005, step, roots.WithDirection(roots.Downward))
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, -1, root, 1e-9)

	// outward finds the nearer root first
	root, found, err = roots.Scope(f, 0.3, step)
	require.NoError(t, err)
	require.True(t, found)
	assert.InDelta(t, 1, root, 1e-9)
}

func TestScope_NotFound(t *testing.T) {
	f := roots.Plain(func(x float64) float64 { return x*x + 1 })
	root, found, err := roots.Scope(f, 0.25, roots.WithMaxIters(50))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, 0.25, root)

	// out of reach with the iteration budget
	_, found, err = roots.Scope(roots.Plain(quadratic), 0, roots.WithMaxIters(10))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestScope_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	f := func(x float64) (float64, error) {
		calls++
		if calls > 3 {
			return 0, boom
		}
		return quadratic(x), nil
	}
	_, found, err := roots.Scope(f, 0)
	assert.ErrorIs(t, err, boom)
	assert.False(t, found)
}

func TestBrent(t *testing.T) {
	f := roots.Plain(func(x float64) float64 { return x*x - 2 })
	br, err := roots.Brent(f, 1, 2, -1, 2, 1e-14, 100)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, br.B, 1e-13)
	assert.True(t, br.FA == 0 || br.FB == 0 || (br.FA > 0) != (br.FB > 0))

	_, err = roots.Brent(f, 2, 3, 2, 7, 1e-12, 100)
	assert.ErrorIs(t, err, roots.ErrNoBracket)

	br, err = roots.Brent(f, math.Sqrt2, 3, 0, 7, 1e-12, 100)
	require.NoError(t, err)
	assert.Equal(t, math.Sqrt2, br.B)

	_, err = roots.Brent(roots.Plain(math.Cos), 0, 3, 1, math.Cos(3), 1e-15, 1)
	assert.ErrorIs(t, err, roots.ErrNoConvergence)
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { roots.WithStep(0) })
	assert.Panics(t, func() { roots.WithMaxIters(0) })
	assert.Panics(t, func() { roots.WithTolerance(-1) })
	assert.Panics(t, func() { roots.WithDirection(roots.Direction(7)) })
	assert.Equal(t, "upward", roots.Upward.String())
}

func ExampleScope() {
	f := roots.Plain(func(x float64) float64 { return x*x - 1 })
	root, found, _ := roots.Scope(f, 0.5)
	fmt.Printf("%.6f %v\n", root, found)
	// Output: 1.000000 true
}
