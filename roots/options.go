package roots

import "fmt"

// Direction selects which side of x0 Scope explores.
type Direction int

const (
	// Outward alternates x0+kδ and x0−kδ.
	Outward Direction = iota
	// Upward explores x0+kδ only.
	Upward
	// Downward explores x0−kδ only.
	Downward
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Outward:
		return "outward"
	case Upward:
		return "upward"
	case Downward:
		return "downward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Defaults for Scope.
const (
	// DefaultStep is the scan step δ.
	DefaultStep = 1e-3

	// DefaultMaxIters is the number of steps taken on each explored side.
	DefaultMaxIters = 1000

	// DefaultTolerance is the bracket width Brent refines to.
	DefaultTolerance = 1e-12

	// DefaultBrentIters bounds the refinement.
	DefaultBrentIters = 200
)

// Option configures Scope.
type Option func(*Options)

// Options holds the resolved Scope configuration.
type Options struct {
	step       float64
	maxIters   int
	dir        Direction
	tol        float64
	brentIters int
}

// WithStep sets the scan step δ. Panics if step <= 0.
func WithStep(step float64) Option {
	if !(step > 0) {
		panic("roots: WithStep requires step > 0")
	}
	return func(o *Options) { o.step = step }
}

// WithMaxIters sets the number of steps per explored side. Panics if n < 1.
func WithMaxIters(n int) Option {
	if n < 1 {
		panic("roots: WithMaxIters requires n >= 1")
	}
	return func(o *Options) { o.maxIters = n }
}

// WithDirection selects the explored side(s). Panics on an unknown direction.
func WithDirection(d Direction) Option {
	if d < Outward || d > Downward {
		panic("roots: WithDirection: unknown direction")
	}
	return func(o *Options) { o.dir = d }
}

// WithTolerance sets the refinement tolerance. Panics if tol <= 0.
func WithTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("roots: WithTolerance requires tol > 0")
	}
	return func(o *Options) { o.tol = tol }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		step:       DefaultStep,
		maxIters:   DefaultMaxIters,
		dir:        Outward,
		tol:        DefaultTolerance,
		brentIters: DefaultBrentIters,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// sides returns the step signs explored on each iteration.
func (o Options) sides() []float64 {
	switch o.dir {
	case Upward:
		return []float64{1}
	case Downward:
		return []float64{-1}
	default:
		return []float64{1, -1}
	}
}
