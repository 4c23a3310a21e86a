// Package ode integrates systems of first-order ordinary differential
// equations y' = f(x, y) with the adaptive Dormand–Prince 5(4) method.
//
// The integrator advances in the positive x direction only. Results can be
// sampled on an arbitrary increasing set of points (Solve) or taken at the
// end of an interval (Final). Step size is controlled with a mixed
// absolute/relative error norm and carried across sample points.
package ode

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrStepTooSmall is returned when the controller needs a step below MinStep.
	ErrStepTooSmall = errors.New("ode: step size below minimum")

	// ErrMaxSteps is returned when MaxSteps accepted+rejected steps are exceeded.
	ErrMaxSteps = errors.New("ode: maximum number of steps exceeded")

	// ErrNonFinite is returned when the solution becomes NaN or ±Inf.
	ErrNonFinite = errors.New("ode: non-finite solution")

	// ErrBadInput is returned for unsorted sample points or an empty state.
	ErrBadInput = errors.New("ode: invalid input")
)

// Func evaluates the derivative dy = f(x, y). It must not retain y or dy.
type Func func(x float64, y, dy []float64)

// Defaults for Config fields left at zero.
const (
	DefaultRelTol   = 1e-8
	DefaultAbsTol   = 1e-10
	DefaultMaxSteps = 1_000_000

	// defaultInitialFraction sets the first step to this fraction of the span.
	defaultInitialFraction = 1e-3
)

// step controller constants
const (
	safety    = 0.9
	minFactor = 0.2
	maxFactor = 5.0
)

// Config controls tolerances and step limits. Zero fields take defaults.
type Config struct {
	// RelTol and AbsTol define the per-component error scale
	// AbsTol + RelTol·max(|y|, |y_new|).
	RelTol, AbsTol float64

	// InitialStep is the first trial step; 0 means span·1e-3.
	InitialStep float64

	// MaxStep caps the step size; 0 means unbounded.
	MaxStep float64

	// MinStep aborts with ErrStepTooSmall; 0 means 1e-14 relative to the span.
	MinStep float64

	// MaxSteps aborts with ErrMaxSteps; 0 means DefaultMaxSteps.
	MaxSteps int
}

// Stats reports the work done by one Solve or Final call.
type Stats struct {
	Steps       int // accepted steps
	Rejected    int // rejected steps
	Evaluations int // calls to f
}

// Solve integrates f from xs[0] with y(xs[0]) = y0 and returns the solution at
// every point of xs. xs must be non-decreasing. cfg may be nil.
func Solve(f Func, xs, y0 []float64, cfg *Config) ([][]float64, Stats, error) {
	if len(xs) == 0 || len(y0) == 0 {
		return nil, Stats{}, fmt.Errorf("Solve: empty input: %w", ErrBadInput)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return nil, Stats{}, fmt.Errorf("Solve: xs[%d] < xs[%d]: %w", i, i-1, ErrBadInput)
		}
	}

	s := newStepper(f, len(y0), xs[0], xs[len(xs)-1], cfg)
	y := append([]float64(nil), y0...)
	out := make([][]float64, len(xs))
	out[0] = append([]float64(nil), y...)

	h := s.initial
	var err error
	for i := 1; i < len(xs); i++ {
		if h, err = s.advance(xs[i-1], xs[i], y, h); err != nil {
			return nil, s.stats, fmt.Errorf("Solve: x=%g: %w", xs[i-1], err)
		}
		out[i] = append([]float64(nil), y...)
	}

	return out, s.stats, nil
}

// Final integrates f from a to b (a <= b) with y(a) = y0 and returns y(b).
func Final(f Func, a, b float64, y0 []float64, cfg *Config) ([]float64, Stats, error) {
	if len(y0) == 0 || b < a {
		return nil, Stats{}, fmt.Errorf("Final: [%g, %g]: %w", a, b, ErrBadInput)
	}
	s := newStepper(f, len(y0), a, b, cfg)
	y := append([]float64(nil), y0...)
	if _, err := s.advance(a, b, y, s.initial); err != nil {
		return nil, s.stats, fmt.Errorf("Final: %w", err)
	}

	return y, s.stats, nil
}

// Dormand–Prince 5(4) tableau.
var (
	dpC = [7]float64{0, 1.0 / 5, 3.0 / 10, 4.0 / 5, 8.0 / 9, 1, 1}
	dpA = [7][6]float64{
		{},
		{1.0 / 5},
		{3.0 / 40, 9.0 / 40},
		{44.0 / 45, -56.0 / 15, 32.0 / 9},
		{19372.0 / 6561, -25360.0 / 2187, 64448.0 / 6561, -212.0 / 729},
		{9017.0 / 3168, -355.0 / 33, 46732.0 / 5247, 49.0 / 176, -5103.0 / 18656},
		{35.0 / 384, 0, 500.0 / 1113, 125.0 / 192, -2187.0 / 6784, 11.0 / 84},
	}
	// dpE holds the 5th minus 4th order weights.
	dpE = [7]float64{
		71.0 / 57600, 0, -71.0 / 16695, 71.0 / 1920, -17253.0 / 339200, 22.0 / 525, -1.0 / 40,
	}
)

// stepper holds the work buffers of one integration.
type stepper struct {
	f       Func
	rtol    float64
	atol    float64
	maxStep float64
	minStep float64
	maxIter int
	initial float64

	k    [7][]float64
	ytmp []float64
	ynew []float64
	fsal bool

	stats Stats
}

func newStepper(f Func, n int, a, b float64, cfg *Config) *stepper {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	span := b - a
	s := &stepper{
		f:       f,
		rtol:    c.RelTol,
		atol:    c.AbsTol,
		maxStep: c.MaxStep,
		minStep: c.MinStep,
		maxIter: c.MaxSteps,
		initial: c.InitialStep,
		ytmp:    make([]float64, n),
		ynew:    make([]float64, n),
	}
	if s.rtol <= 0 {
		s.rtol = DefaultRelTol
	}
	if s.atol <= 0 {
		s.atol = DefaultAbsTol
	}
	if s.maxStep <= 0 {
		s.maxStep = math.Inf(1)
	}
	if s.minStep <= 0 {
		s.minStep = 1e-14 * math.Max(span, math.Max(math.Abs(a), math.Abs(b)))
	}
	if s.maxIter <= 0 {
		s.maxIter = DefaultMaxSteps
	}
	if s.initial <= 0 {
		s.initial = span * defaultInitialFraction
		if s.initial == 0 {
			s.initial = 1e-6
		}
	}
	s.initial = math.Min(s.initial, s.maxStep)
	for i := range s.k {
		s.k[i] = make([]float64, n)
	}

	return s
}

// advance integrates y in place from x to xEnd starting with trial step h and
// returns the step proposed for the next interval.
func (s *stepper) advance(x, xEnd float64, y []float64, h float64) (float64, error) {
	if xEnd == x {
		return h, nil
	}
	if !s.fsal {
		s.f(x, y, s.k[0])
		s.stats.Evaluations++
		s.fsal = true
	}

	for x < xEnd {
		if s.stats.Steps+s.stats.Rejected >= s.maxIter {
			return h, ErrMaxSteps
		}
		h = math.Min(h, s.maxStep)
		hStep, clipped := h, false
		if x+hStep >= xEnd {
			hStep, clipped = xEnd-x, true
		}
		if hStep < s.minStep && !clipped {
			return h, fmt.Errorf("h=%g at x=%g: %w", hStep, x, ErrStepTooSmall)
		}

		errNorm := s.trial(x, hStep, y)
		if math.IsNaN(errNorm) {
			return h, fmt.Errorf("x=%g: %w", x, ErrNonFinite)
		}
		factor := maxFactor
		if errNorm > 0 {
			factor = math.Min(maxFactor, math.Max(minFactor, safety*math.Pow(errNorm, -0.2)))
		}

		if errNorm <= 1 {
			if clipped {
				x = xEnd
			} else {
				x += hStep
			}
			copy(y, s.ynew)
			for _, v := range y {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return h, fmt.Errorf("x=%g: %w", x, ErrNonFinite)
				}
			}
			s.k[0], s.k[6] = s.k[6], s.k[0]
			s.stats.Steps++

			next := hStep * factor
			if clipped && next < h {
				next = h
			}
			h = next
		} else {
			s.stats.Rejected++
			h = hStep * math.Min(factor, 1)
		}
	}

	return h, nil
}

// trial computes one Dormand–Prince step of size h from (x, y) into s.ynew and
// returns the scaled RMS error estimate. s.k[0] must hold f(x, y); on return
// s.k[6] holds f(x+h, ynew).
func (s *stepper) trial(x, h float64, y []float64) float64 {
	for stage := 1; stage < 7; stage++ {
		copy(s.ytmp, y)
		for j := 0; j < stage; j++ {
			if a := dpA[stage][j]; a != 0 {
				floats.AddScaled(s.ytmp, h*a, s.k[j])
			}
		}
		if stage == 6 {
			copy(s.ynew, s.ytmp)
		}
		s.f(x+dpC[stage]*h, s.ytmp, s.k[stage])
		s.stats.Evaluations++
	}

	var sum float64
	for i := range y {
		var e float64
		for j := 0; j < 7; j++ {
			e += dpE[j] * s.k[j][i]
		}
		e *= h
		sc := s.atol + s.rtol*math.Max(math.Abs(y[i]), math.Abs(s.ynew[i]))
		sum += (e / sc) * (e / sc)
	}

	return math.Sqrt(sum / float64(len(y)))
}
