// Package config describes a bound-state problem in YAML: the grid, the
// potential, the number of states and the solver settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/katalvlaran/schrodinger/fem"
	"github.com/katalvlaran/schrodinger/grid"
	"github.com/katalvlaran/schrodinger/matrix/ops"
	"github.com/katalvlaran/schrodinger/potential"
	"github.com/katalvlaran/schrodinger/shooting"
	"gopkg.in/yaml.v3"
)

// Method selects the solver.
type Method string

// Supported methods.
const (
	MethodFEM      Method = "fem"
	MethodShooting Method = "shooting"
	MethodCompare  Method = "compare"
)

// Spacing selects how grid points are distributed.
type Spacing string

// Supported spacings.
const (
	SpacingUniform   Spacing = "uniform"
	SpacingChebyshev Spacing = "chebyshev"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the top-level problem description.
type Config struct {
	// Method is the solver used when the CLI command does not choose one.
	Method Method `json:"method" yaml:"method"`

	// States is the number of eigenpairs to compute.
	States int `json:"states" yaml:"states"`

	Grid      GridConfig     `json:"grid" yaml:"grid"`
	Potential potential.Spec `json:"potential" yaml:"potential"`
	FEM       FEMConfig      `json:"fem" yaml:"fem"`
	Shooting  ShootingConfig `json:"shooting" yaml:"shooting"`
	Logging   LoggingConfig  `json:"logging" yaml:"logging"`
}

// GridConfig describes the grid (FEM) or domain (shooting) points.
type GridConfig struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Points  int     `json:"points" yaml:"points"`
	Spacing Spacing `json:"spacing" yaml:"spacing"`
}

// FEMConfig holds finite-element settings.
type FEMConfig struct {
	// Backend is "gonum" (default) or "jacobi".
	Backend string `json:"backend" yaml:"backend"`

	// QuadratureNodes is the Gauss–Legendre order for the potential matrix.
	QuadratureNodes int `json:"quadrature_nodes" yaml:"quadrature_nodes"`
}

// ShootingConfig holds shooting settings. Zero values keep the solver defaults.
type ShootingConfig struct {
	Slope          float64 `json:"slope,omitempty" yaml:"slope,omitempty"`
	RelTol         float64 `json:"rel_tol,omitempty" yaml:"rel_tol,omitempty"`
	AbsTol         float64 `json:"abs_tol,omitempty" yaml:"abs_tol,omitempty"`
	EnergyStep     float64 `json:"energy_step,omitempty" yaml:"energy_step,omitempty"`
	ScanIters      int     `json:"scan_iters,omitempty" yaml:"scan_iters,omitempty"`
	DedupTolerance float64 `json:"dedup_tolerance,omitempty" yaml:"dedup_tolerance,omitempty"`

	// EnergyCeiling overrides the derived search ceiling when set.
	EnergyCeiling *float64 `json:"energy_ceiling,omitempty" yaml:"energy_ceiling,omitempty"`
}

// LoggingConfig configures the CLI logger.
type LoggingConfig struct {
	// Level is "info" (default) or "debug".
	Level string `json:"level" yaml:"level"`
}

// Default returns the harmonic oscillator on [−6, 6] with 401 points.
func Default() *Config {
	return &Config{
		Method: MethodFEM,
		States: shooting.DefaultSolutions,
		Grid: GridConfig{
			Min:     -6,
			Max:     6,
			Points:  401,
			Spacing: SpacingUniform,
		},
		Potential: potential.Spec{Kind: potential.KindHarmonic, Omega: 1},
		FEM: FEMConfig{
			Backend:         ops.BackendGonum.String(),
			QuadratureNodes: grid.DefaultQuadratureNodes,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadFromFile reads a YAML file layered over Default.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML layered over Default. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Method {
	case MethodFEM, MethodShooting, MethodCompare:
	default:
		return fmt.Errorf("method %q (valid: fem, shooting, compare): %w", c.Method, ErrInvalid)
	}
	if c.States < 1 {
		return fmt.Errorf("states must be >= 1, got %d: %w", c.States, ErrInvalid)
	}
	if !(c.Grid.Max > c.Grid.Min) {
		return fmt.Errorf("grid max %g must exceed min %g: %w", c.Grid.Max, c.Grid.Min, ErrInvalid)
	}
	if c.Grid.Points < grid.MinPoints {
		return fmt.Errorf("grid points must be >= %d, got %d: %w", grid.MinPoints, c.Grid.Points, ErrInvalid)
	}
	switch c.Grid.Spacing {
	case "", SpacingUniform, SpacingChebyshev:
	default:
		return fmt.Errorf("spacing %q (valid: uniform, chebyshev): %w", c.Grid.Spacing, ErrInvalid)
	}
	if _, err := potential.FromSpec(c.Potential); err != nil {
		return fmt.Errorf("potential: %w: %w", err, ErrInvalid)
	}
	if _, err := ops.ParseBackend(c.FEM.Backend); err != nil {
		return fmt.Errorf("fem: %w: %w", err, ErrInvalid)
	}
	if c.FEM.QuadratureNodes < 0 {
		return fmt.Errorf("fem quadrature_nodes must be >= 0, got %d: %w", c.FEM.QuadratureNodes, ErrInvalid)
	}

	s := c.Shooting
	if s.Slope < 0 || s.RelTol < 0 || s.AbsTol < 0 || s.EnergyStep < 0 || s.ScanIters < 0 || s.DedupTolerance < 0 {
		return fmt.Errorf("shooting settings must be non-negative: %w", ErrInvalid)
	}
	if s.EnergyCeiling != nil && (math.IsNaN(*s.EnergyCeiling) || math.IsInf(*s.EnergyCeiling, 0)) {
		return fmt.Errorf("shooting energy_ceiling must be finite: %w", ErrInvalid)
	}
	if (s.RelTol > 0) != (s.AbsTol > 0) {
		return fmt.Errorf("shooting rel_tol and abs_tol must be set together: %w", ErrInvalid)
	}

	switch c.Logging.Level {
	case "", "info", "debug":
	default:
		return fmt.Errorf("log level %q (valid: info, debug): %w", c.Logging.Level, ErrInvalid)
	}

	return nil
}

// Points returns the grid points described by c.Grid.
func (c *Config) Points() []float64 {
	if c.Grid.Spacing == SpacingChebyshev {
		return grid.Chebyshev(c.Grid.Min, c.Grid.Max, c.Grid.Points)
	}

	return grid.Linspace(c.Grid.Min, c.Grid.Max, c.Grid.Points)
}

// PotentialFunc builds the configured potential.
func (c *Config) PotentialFunc() (potential.Func, error) {
	return potential.FromSpec(c.Potential)
}

// FEMOptions converts c.FEM into solver options.
func (c *Config) FEMOptions() (*fem.Options, error) {
	backend, err := ops.ParseBackend(c.FEM.Backend)
	if err != nil {
		return nil, err
	}
	opts := fem.DefaultOptions()
	opts.Backend = backend
	if c.FEM.QuadratureNodes > 0 {
		opts.QuadratureNodes = c.FEM.QuadratureNodes
	}

	return &opts, nil
}

// ShootingOptions converts the non-zero fields of c.Shooting into options.
func (c *Config) ShootingOptions() []shooting.Option {
	s := c.Shooting
	var opts []shooting.Option
	if s.Slope > 0 {
		opts = append(opts, shooting.WithSlope(s.Slope))
	}
	if s.RelTol > 0 && s.AbsTol > 0 {
		opts = append(opts, shooting.WithTolerances(s.RelTol, s.AbsTol))
	}
	if s.EnergyStep > 0 {
		opts = append(opts, shooting.WithEnergyStep(s.EnergyStep))
	}
	if s.ScanIters > 0 {
		opts = append(opts, shooting.WithScanIters(s.ScanIters))
	}
	if s.DedupTolerance > 0 {
		opts = append(opts, shooting.WithDedupTolerance(s.DedupTolerance))
	}
	if s.EnergyCeiling != nil {
		opts = append(opts, shooting.WithEnergyCeiling(*s.EnergyCeiling))
	}

	return opts
}
