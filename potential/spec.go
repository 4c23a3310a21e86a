package potential

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a built-in potential in configuration files.
type Kind string

// Supported kinds.
const (
	KindZero       Kind = "zero"
	KindHarmonic   Kind = "harmonic"
	KindFiniteWell Kind = "finite_well"
	KindDoubleWell Kind = "double_well"
	KindLinear     Kind = "linear"
	KindMorse      Kind = "morse"
)

var (
	// ErrUnknownKind is returned by FromSpec for an unsupported Kind.
	ErrUnknownKind = errors.New("potential: unknown kind")

	// ErrBadParameter is returned by FromSpec when a parameter is out of range.
	ErrBadParameter = errors.New("potential: invalid parameter")
)

// Spec describes a built-in potential by kind and parameters.
// Parameters not used by a kind are ignored.
type Spec struct {
	Kind   Kind    `yaml:"kind" json:"kind"`
	Omega  float64 `yaml:"omega,omitempty" json:"omega,omitempty"`
	Depth  float64 `yaml:"depth,omitempty" json:"depth,omitempty"`
	Width  float64 `yaml:"width,omitempty" json:"width,omitempty"`
	A      float64 `yaml:"a,omitempty" json:"a,omitempty"`
	B      float64 `yaml:"b,omitempty" json:"b,omitempty"`
	Slope  float64 `yaml:"slope,omitempty" json:"slope,omitempty"`
	Center float64 `yaml:"center,omitempty" json:"center,omitempty"`
}

// FromSpec builds the Func described by s.
func FromSpec(s Spec) (Func, error) {
	switch Kind(strings.ToLower(string(s.Kind))) {
	case KindZero:
		return Zero(), nil
	case KindHarmonic:
		if s.Omega <= 0 {
			return nil, fmt.Errorf("harmonic: omega %g must be > 0: %w", s.Omega, ErrBadParameter)
		}
		return Harmonic(s.Omega), nil
	case KindFiniteWell:
		if s.Width <= 0 {
			return nil, fmt.Errorf("finite_well: width %g must be > 0: %w", s.Width, ErrBadParameter)
		}
		return FiniteWell(s.Depth, s.Width), nil
	case KindDoubleWell:
		if s.B <= 0 {
			return nil, fmt.Errorf("double_well: b %g must be > 0: %w", s.B, ErrBadParameter)
		}
		return DoubleWell(s.A, s.B), nil
	case KindLinear:
		return Linear(s.Slope), nil
	case KindMorse:
		if s.Depth <= 0 || s.A <= 0 {
			return nil, fmt.Errorf("morse: depth and a must be > 0: %w", ErrBadParameter)
		}
		return Morse(s.Depth, s.A, s.Center), nil
	default:
		return nil, fmt.Errorf("%q: %w", s.Kind, ErrUnknownKind)
	}
}
