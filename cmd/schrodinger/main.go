// Command schrodinger computes bound states of the one-dimensional
// time-independent Schrödinger equation with the finite element or the
// shooting method.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/katalvlaran/schrodinger/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "0.1.0-dev"

// app carries state shared by subcommands.
type app struct {
	out io.Writer
	log *zap.Logger
	cfg *config.Config
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{out: out}

	rootCmd := &cobra.Command{
		Use:   "schrodinger",
		Short: "Bound states of the 1-D Schrödinger equation",
		Long: `schrodinger computes the lowest eigenenergies and eigenstates of
−½ψ″ + V(x)ψ = Eψ on a finite interval with ψ = 0 at both ends.

Two engines are available:
  fem       piecewise-linear finite elements and a generalized eigensolve
  shooting  ODE integration with an energy scan and Brent refinement

The problem (grid, potential, states) is read from a YAML file given with
--config; without it a harmonic oscillator on [−6, 6] is solved.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "", "YAML problem description")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().Int("states", 0, "Number of states (overrides config)")
	rootCmd.PersistentFlags().Int("points", 0, "Number of grid points (overrides config)")
	rootCmd.PersistentFlags().Bool("wavefunctions", false, "Include sampled states in JSON output")

	rootCmd.AddCommand(
		newFEMCmd(a),
		newShootingCmd(a),
		newCompareCmd(a),
		newSolveCmd(a),
		newVersionCmd(a),
	)

	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFromFile(path); err != nil {
			return err
		}
	}
	if states, _ := cmd.Flags().GetInt("states"); states != 0 {
		cfg.States = states
	}
	if points, _ := cmd.Flags().GetInt("points"); points != 0 {
		cfg.Grid.Points = points
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose || cfg.Logging.Level == "debug" {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.log = log
	a.log.Debug("configuration loaded",
		zap.String("path", path),
		zap.String("potential", string(cfg.Potential.Kind)),
		zap.Int("states", cfg.States),
		zap.Int("points", cfg.Grid.Points))

	return nil
}
