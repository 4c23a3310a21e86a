package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/katalvlaran/schrodinger/config"
	"github.com/katalvlaran/schrodinger/wavefunc"
)

// result is the serialized form of a spectrum.
type result struct {
	Method   config.Method `json:"method"`
	Energies []float64     `json:"energies"`
	Points   []float64     `json:"points,omitempty"`
	States   [][]float64   `json:"states,omitempty"`
}

// comparison holds both spectra and their per-level differences.
// StateDiff is the RMS pointwise difference of the states.
type comparison struct {
	FEM        result    `json:"fem"`
	Shooting   result    `json:"shooting"`
	EnergyDiff []float64 `json:"energy_diff"`
	StateDiff  []float64 `json:"state_diff"`
}

func newResult(method config.Method, sol *wavefunc.Spectrum, withStates bool) result {
	res := result{
		Method:   method,
		Energies: append([]float64(nil), sol.Energies...),
	}
	if withStates {
		res.Points = append([]float64(nil), sol.Points...)
		for i := 0; i < sol.Len(); i++ {
			res.States = append(res.States, sol.State(i))
		}
	}

	return res
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func writeTable(w io.Writer, res result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "method: %s\n", res.Method)
	fmt.Fprintln(tw, "n\tenergy")
	for n, e := range res.Energies {
		fmt.Fprintf(tw, "%d\t%.10f\n", n, e)
	}

	return tw.Flush()
}

func writeComparison(w io.Writer, cmp comparison) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "n\tfem\tshooting\tΔE\tψ rms diff")
	for n := range cmp.FEM.Energies {
		fmt.Fprintf(tw, "%d\t%.10f\t%.10f\t%.3e\t%.3e\n",
			n, cmp.FEM.Energies[n], cmp.Shooting.Energies[n], cmp.EnergyDiff[n], cmp.StateDiff[n])
	}

	return tw.Flush()
}

func maxAbs(xs []float64) float64 {
	var m float64
	for _, x := range xs {
		m = math.Max(m, math.Abs(x))
	}

	return m
}
