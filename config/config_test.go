package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/schrodinger/config"
	"github.com/katalvlaran/schrodinger/matrix/ops"
	"github.com/katalvlaran/schrodinger/potential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
method: shooting
states: 3
grid:
  min: 0
  max: 3.141592653589793
  points: 101
  spacing: chebyshev
potential:
  kind: zero
fem:
  backend: jacobi
shooting:
  energy_step: 0.05
  energy_ceiling: 20
logging:
  level: debug
`

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "problem.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := config.LoadFromFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, config.MethodShooting, cfg.Method)
	assert.Equal(t, 3, cfg.States)
	assert.Equal(t, config.SpacingChebyshev, cfg.Grid.Spacing)
	assert.Equal(t, potential.KindZero, cfg.Potential.Kind)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// unspecified fields keep their defaults
	assert.Equal(t, config.Default().FEM.QuadratureNodes, cfg.FEM.QuadratureNodes)

	pts := cfg.Points()
	require.Len(t, pts, 101)
	assert.Equal(t, 0.0, pts[0])
	assert.InDelta(t, 3.141592653589793, pts[100], 1e-15)

	opts, err := cfg.FEMOptions()
	require.NoError(t, err)
	assert.Equal(t, ops.BackendJacobi, opts.Backend)

	assert.Len(t, cfg.ShootingOptions(), 2)

	v, err := cfg.PotentialFunc()
	require.NoError(t, err)
	assert.Equal(t, 0.0, v(1.3))
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := config.LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())
	assert.Empty(t, cfg.ShootingOptions())

	_, err = config.Parse([]byte("grid: [1, 2"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("unknown_field: 1"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	ceiling := 5.0
	tests := []struct {
		name   string
		mutate func(c *config.Config)
		ok     bool
	}{
		{"default", func(*config.Config) {}, true},
		{"compare", func(c *config.Config) { c.Method = config.MethodCompare }, true},
		{"ceiling", func(c *config.Config) { c.Shooting.EnergyCeiling = &ceiling }, true},
		{"bad method", func(c *config.Config) { c.Method = "monte-carlo" }, false},
		{"no states", func(c *config.Config) { c.States = 0 }, false},
		{"empty range", func(c *config.Config) { c.Grid.Max = c.Grid.Min }, false},
		{"few points", func(c *config.Config) { c.Grid.Points = 2 }, false},
		{"bad spacing", func(c *config.Config) { c.Grid.Spacing = "log" }, false},
		{"bad potential", func(c *config.Config) { c.Potential.Kind = "coulomb" }, false},
		{"bad omega", func(c *config.Config) { c.Potential.Omega = -1 }, false},
		{"bad backend", func(c *config.Config) { c.FEM.Backend = "lapack" }, false},
		{"negative step", func(c *config.Config) { c.Shooting.EnergyStep = -1 }, false},
		{"half tolerances", func(c *config.Config) { c.Shooting.RelTol = 1e-8 }, false},
		{"bad level", func(c *config.Config) { c.Logging.Level = "trace" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}
