// Package roots locates a sign change of a scalar function by scanning from a
// starting point in fixed steps and refines it with Brent's method.
//
// Scope never fails for lack of a root: it reports found=false and the
// starting point. Errors come only from the scanned function itself.
package roots

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoBracket is returned by Brent when f(a) and f(b) have the same sign.
	ErrNoBracket = errors.New("roots: interval does not bracket a root")

	// ErrNoConvergence is returned by Brent when maxIter iterations are exhausted.
	ErrNoConvergence = errors.New("roots: refinement did not converge")
)

// Func is a scalar function that may fail (e.g. an ODE integration).
type Func func(x float64) (float64, error)

// Plain adapts an error-free function to Func.
func Plain(f func(float64) float64) Func {
	return func(x float64) (float64, error) { return f(x), nil }
}

// Bracket is an interval whose ends have function values of opposite sign
// (or one of them zero). B is the current best estimate of the root.
type Bracket struct {
	A, B   float64
	FA, FB float64
}

// Scope scans from x0 in steps of the configured size until the sign of f
// differs from sign(f(x0)), then refines the bracket with Brent.
//
// The returned root is the end of the refined bracket whose sign differs from
// f(x0), so sign(f(root)) != sign(f(x0)) always holds when found is true.
// When f(x0) == 0 the root is x0 itself; Scope then returns the nearest point
// in the scan direction at which f is non-zero, starting tol away from x0.
// When no sign change occurs within the iteration budget it returns
// (x0, false, nil).
func Scope(f Func, x0 float64, opts ...Option) (float64, bool, error) {
	o := gatherOptions(opts...)

	f0, err := f(x0)
	if err != nil {
		return x0, false, fmt.Errorf("Scope: f(%g): %w", x0, err)
	}
	if f0 == 0 {
		return offRoot(f, x0, o)
	}

	sides := o.sides()
	prev := make([]Bracket, len(sides))
	for i := range prev {
		prev[i] = Bracket{A: x0, FA: f0}
	}

	for k := 1; k <= o.maxIters; k++ {
		for i, sign := range sides {
			x := x0 + sign*float64(k)*o.step
			fx, err := f(x)
			if err != nil {
				return x0, false, fmt.Errorf("Scope: f(%g): %w", x, err)
			}
			if fx == 0 {
				return x, true, nil
			}
			if !differ(fx, f0) {
				prev[i].A, prev[i].FA = x, fx
				continue
			}

			br, err := Brent(f, prev[i].A, x, prev[i].FA, fx, o.tol, o.brentIters)
			if err != nil {
				return x0, false, fmt.Errorf("Scope: %w", err)
			}
			if differ(br.FB, f0) {
				return br.B, true, nil
			}

			return br.A, true, nil
		}
	}

	return x0, false, nil
}

// offRoot walks away from the root x0 with doubling offsets until f is
// non-zero, never further than the scan reach.
func offRoot(f Func, x0 float64, o Options) (float64, bool, error) {
	reach := float64(o.maxIters) * o.step
	for d := o.tol; d <= reach; d *= 2 {
		for _, sign := range o.sides() {
			x := x0 + sign*d
			fx, err := f(x)
			if err != nil {
				return x0, false, fmt.Errorf("Scope: f(%g): %w", x, err)
			}
			if fx != 0 {
				return x, true, nil
			}
		}
	}

	return x0, false, nil
}

// differ reports whether fx is zero or has a sign opposite to f0 (f0 != 0).
func differ(fx, f0 float64) bool {
	return fx == 0 || (fx > 0) != (f0 > 0)
}

// Brent refines the bracket [a, b] with known values fa = f(a), fb = f(b)
// using inverse quadratic interpolation, secant and bisection steps until the
// bracket is narrower than tol. The result's B is the best estimate and
// [A, B] (in either order) still brackets the root.
//
// Complexity: at most maxIter evaluations of f.
func Brent(f Func, a, b, fa, fb, tol float64, maxIter int) (Bracket, error) {
	if fa == 0 {
		return Bracket{A: a, B: a, FA: fa, FB: fa}, nil
	}
	if fb == 0 {
		return Bracket{A: b, B: b, FA: fb, FB: fb}, nil
	}
	if (fa > 0) == (fb > 0) {
		return Bracket{}, fmt.Errorf("Brent: f(%g)=%g, f(%g)=%g: %w", a, fa, b, fb, ErrNoBracket)
	}

	c, fc := b, fb
	var d, e float64
	for iter := 0; iter < maxIter; iter++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol1 := 2*epsilon*math.Abs(b) + 0.5*tol
		xm := 0.5 * (c - b)
		if math.Abs(xm) <= tol1 || fb == 0 {
			return Bracket{A: c, B: b, FA: fc, FB: fb}, nil
		}

		if math.Abs(e) >= tol1 && math.Abs(fa) > math.Abs(fb) {
			var p, q float64
			s := fb / fa
			if a == c {
				// secant
				p = 2 * xm * s
				q = 1 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol1*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}

		a, fa = b, fb
		if math.Abs(d) > tol1 {
			b += d
		} else {
			b += math.Copysign(tol1, xm)
		}
		var err error
		if fb, err = f(b); err != nil {
			return Bracket{}, fmt.Errorf("Brent: f(%g): %w", b, err)
		}
	}

	return Bracket{A: c, B: b, FA: fc, FB: fb}, fmt.Errorf("Brent: %d iterations: %w", maxIter, ErrNoConvergence)
}

// epsilon is the float64 machine epsilon.
const epsilon = 2.220446049250313e-16
