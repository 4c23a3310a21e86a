package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/schrodinger/config"
	"github.com/katalvlaran/schrodinger/wavefunc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()

	return out.String(), err
}

func TestFEMCmd_JSON(t *testing.T) {
	out, err := run(t, "fem", "--json", "--states", "2", "--points", "101", "--wavefunctions")
	require.NoError(t, err)

	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, config.MethodFEM, res.Method)
	require.Len(t, res.Energies, 2)
	assert.InEpsilon(t, 0.5, res.Energies[0], 1e-2)
	assert.InEpsilon(t, 1.5, res.Energies[1], 1e-2)
	require.Len(t, res.States, 2)
	assert.Len(t, res.Points, 101)
	assert.Len(t, res.States[0], 101)
}

func TestShootingCmd_Table(t *testing.T) {
	out, err := run(t, "shooting", "--states", "2", "--points", "101")
	require.NoError(t, err)
	assert.Contains(t, out, "method: shooting")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "0 "))
	assert.True(t, strings.HasPrefix(lines[3], "1 "))
}

func TestCompareCmd(t *testing.T) {
	out, err := run(t, "compare", "--json", "--states", "2", "--points", "201")
	require.NoError(t, err)

	var cmp comparison
	require.NoError(t, json.Unmarshal([]byte(out), &cmp))
	require.Len(t, cmp.EnergyDiff, 2)
	for n := range cmp.EnergyDiff {
		assert.Less(t, maxAbs(cmp.EnergyDiff[n:n+1]), 1e-2)
		assert.Less(t, cmp.StateDiff[n], 1e-2)
	}

	out, err = run(t, "compare", "--states", "1", "--points", "101")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "n"))
	assert.Contains(t, out, "shooting")
}

func TestSolveCmd_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.yaml")
	yaml := `
method: shooting
states: 3
grid:
  min: 0
  max: 3.141592653589793
  points: 51
potential:
  kind: zero
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	out, err := run(t, "solve", "--config", path, "--json")
	require.NoError(t, err)

	var res result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, config.MethodShooting, res.Method)
	assert.InDeltaSlice(t, []float64{0.5, 2, 4.5}, res.Energies, 1e-6)
	assert.Empty(t, res.States)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "fem", "--states=-1")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = run(t, "fem", "--states", "4", "--points", "5")
	assert.ErrorIs(t, err, wavefunc.ErrInsufficientDimension)

	_, err = run(t, "fem", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = run(t, "fem", "extra")
	assert.Error(t, err)
}

func TestVersionCmd(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"`+version+`"}`, out)

	out, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, version)
}

func TestMaxAbs(t *testing.T) {
	assert.Equal(t, 0.0, maxAbs(nil))
	assert.Equal(t, 3.0, maxAbs([]float64{1, -3, 2}))
}
