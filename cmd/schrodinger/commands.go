package main

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/katalvlaran/schrodinger/config"
	"github.com/katalvlaran/schrodinger/fem"
	"github.com/katalvlaran/schrodinger/shooting"
	"github.com/katalvlaran/schrodinger/timing"
	"github.com/katalvlaran/schrodinger/wavefunc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

func newFEMCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fem",
		Short: "Solve with the finite element method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sol, err := a.solveFEM()
			if err != nil {
				return err
			}
			return a.report(cmd, config.MethodFEM, sol)
		},
	}
}

func newShootingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shooting",
		Short: "Solve with the shooting method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sol, err := a.solveShooting()
			if err != nil {
				return err
			}
			return a.report(cmd, config.MethodShooting, sol)
		},
	}
}

func newCompareCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Solve with both methods and report their differences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.compare(cmd)
		},
	}
}

func newSolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Solve with the method named in the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch a.cfg.Method {
			case config.MethodShooting:
				sol, err := a.solveShooting()
				if err != nil {
					return err
				}
				return a.report(cmd, config.MethodShooting, sol)
			case config.MethodCompare:
				return a.compare(cmd)
			default:
				sol, err := a.solveFEM()
				if err != nil {
					return err
				}
				return a.report(cmd, config.MethodFEM, sol)
			}
		},
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(a.out).Encode(map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(a.out, "schrodinger version %s\n", version)
			return err
		},
	}
}

func (a *app) solveFEM() (*wavefunc.Spectrum, error) {
	v, err := a.cfg.PotentialFunc()
	if err != nil {
		return nil, err
	}
	opts, err := a.cfg.FEMOptions()
	if err != nil {
		return nil, err
	}
	points := a.cfg.Points()
	a.log.Debug("fem solve",
		zap.Stringer("backend", opts.Backend),
		zap.Int("quadrature_nodes", opts.QuadratureNodes))

	return timing.Track(a.log, "fem.Solve", func() (*wavefunc.Spectrum, error) {
		return fem.Solve(v, points, a.cfg.States, opts)
	})
}

func (a *app) solveShooting() (*wavefunc.Spectrum, error) {
	v, err := a.cfg.PotentialFunc()
	if err != nil {
		return nil, err
	}
	points := a.cfg.Points()
	opts := a.cfg.ShootingOptions()
	a.log.Debug("shooting solve", zap.Int("options", len(opts)))

	return timing.Track(a.log, "shooting.Solve", func() (*wavefunc.Spectrum, error) {
		return shooting.Solve(v, points, a.cfg.States, opts...)
	})
}

func (a *app) compare(cmd *cobra.Command) error {
	ref, err := a.solveFEM()
	if err != nil {
		return err
	}
	got, err := a.solveShooting()
	if err != nil {
		return err
	}

	cmp := comparison{
		FEM:      newResult(config.MethodFEM, ref, false),
		Shooting: newResult(config.MethodShooting, got, false),
	}
	diff := make([]float64, len(ref.Points))
	for n := 0; n < ref.Len(); n++ {
		floats.SubTo(diff, ref.State(n), got.State(n))
		cmp.EnergyDiff = append(cmp.EnergyDiff, got.Energies[n]-ref.Energies[n])
		cmp.StateDiff = append(cmp.StateDiff, floats.Norm(diff, 2)/math.Sqrt(float64(len(diff))))
	}
	a.log.Info("comparison finished",
		zap.Float64("max_energy_diff", maxAbs(cmp.EnergyDiff)),
		zap.Float64("max_state_diff", maxAbs(cmp.StateDiff)))

	jsonOut, _ := cmd.Flags().GetBool("json")
	if jsonOut {
		return writeJSON(a.out, cmp)
	}

	return writeComparison(a.out, cmp)
}

func (a *app) report(cmd *cobra.Command, method config.Method, sol *wavefunc.Spectrum) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	withStates, _ := cmd.Flags().GetBool("wavefunctions")
	res := newResult(method, sol, withStates)
	if jsonOut {
		return writeJSON(a.out, res)
	}

	return writeTable(a.out, res)
}
