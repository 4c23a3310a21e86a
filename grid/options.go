// SPDX-License-Identifier: MIT

package grid

// DefaultQuadratureNodes is the Gauss–Legendre order used for potential
// matrix entries. 16 nodes integrate polynomials up to degree 31 exactly and
// reach double precision for smooth potentials on typical element widths.
const DefaultQuadratureNodes = 16

const panicQuadratureNodes = "grid: WithQuadratureNodes: n must be >= 1"

// Option configures a Grid.
type Option func(*Options)

// Options stores the effective Grid configuration.
type Options struct {
	quadNodes int // >= 1; DefaultQuadratureNodes
}

// WithQuadratureNodes sets the Gauss–Legendre order for Potential.
// Panics when n < 1.
func WithQuadratureNodes(n int) Option {
	if n < 1 {
		panic(panicQuadratureNodes)
	}

	return func(o *Options) { o.quadNodes = n }
}

func gatherOptions(user ...Option) Options {
	o := Options{quadNodes: DefaultQuadratureNodes}
	for _, set := range user {
		set(&o)
	}

	return o
}
