package shooting

import "math"

// Defaults for the shooting solver.
const (
	// DefaultSolutions is the number of energies SolveEnergies callers
	// usually ask for.
	DefaultSolutions = 6

	// DefaultSlope is the initial derivative ψ′(x_0).
	DefaultSlope = 1e-6

	// DefaultRelTol is the relative tolerance of the ODE integration.
	DefaultRelTol = 1e-10

	// absTolFactor scales the slope into the default absolute tolerance.
	absTolFactor = 1e-10

	// DefaultEnergyStep is the energy scan step.
	DefaultEnergyStep = 1e-2

	// DefaultScanIters is the number of energy steps per scan call.
	DefaultScanIters = 500

	// DefaultDedupTolerance is the distance below which two energies are one.
	DefaultDedupTolerance = 1e-6

	// DefaultEnergyTolerance is the bracket width energies are refined to.
	DefaultEnergyTolerance = 1e-12

	// initialStepFraction and maxStepFraction scale ODE steps with the domain length.
	initialStepFraction = 1e-3
	maxStepFraction     = 1.0 / 50
)

// Option configures the shooting solver.
type Option func(*Options)

// Options holds the resolved shooting configuration.
type Options struct {
	slope      float64
	relTol     float64
	absTol     float64 // 0 means slope·1e-10
	energyStep float64
	scanIters  int
	ceiling    float64 // NaN means derived from the potential
	dedup      float64
	energyTol  float64
}

// WithSlope sets the initial derivative ψ′(x_0). Panics if slope <= 0.
func WithSlope(slope float64) Option {
	if !(slope > 0) {
		panic("shooting: WithSlope requires slope > 0")
	}
	return func(o *Options) { o.slope = slope }
}

// WithTolerances sets the relative and absolute ODE tolerances.
// Panics if either is not positive.
func WithTolerances(rel, abs float64) Option {
	if !(rel > 0) || !(abs > 0) {
		panic("shooting: WithTolerances requires positive tolerances")
	}
	return func(o *Options) {
		o.relTol = rel
		o.absTol = abs
	}
}

// WithEnergyStep sets the energy scan step. Panics if step <= 0.
func WithEnergyStep(step float64) Option {
	if !(step > 0) {
		panic("shooting: WithEnergyStep requires step > 0")
	}
	return func(o *Options) { o.energyStep = step }
}

// WithScanIters sets the energy steps per scan call. Panics if n < 1.
func WithScanIters(n int) Option {
	if n < 1 {
		panic("shooting: WithScanIters requires n >= 1")
	}
	return func(o *Options) { o.scanIters = n }
}

// WithEnergyCeiling sets the energy above which the search gives up.
// Panics on NaN or ±Inf.
func WithEnergyCeiling(e float64) Option {
	if math.IsNaN(e) || math.IsInf(e, 0) {
		panic("shooting: WithEnergyCeiling requires a finite energy")
	}
	return func(o *Options) { o.ceiling = e }
}

// WithDedupTolerance sets the distance below which two energies are merged.
// Panics if tol < 0.
func WithDedupTolerance(tol float64) Option {
	if tol < 0 || math.IsNaN(tol) {
		panic("shooting: WithDedupTolerance requires tol >= 0")
	}
	return func(o *Options) { o.dedup = tol }
}

// WithEnergyTolerance sets the width energies are refined to. Panics if tol <= 0.
func WithEnergyTolerance(tol float64) Option {
	if !(tol > 0) {
		panic("shooting: WithEnergyTolerance requires tol > 0")
	}
	return func(o *Options) { o.energyTol = tol }
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		slope:      DefaultSlope,
		relTol:     DefaultRelTol,
		energyStep: DefaultEnergyStep,
		scanIters:  DefaultScanIters,
		ceiling:    math.NaN(),
		dedup:      DefaultDedupTolerance,
		energyTol:  DefaultEnergyTolerance,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.absTol == 0 {
		o.absTol = o.slope * absTolFactor
	}

	return o
}
