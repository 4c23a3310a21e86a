// SPDX-License-Identifier: MIT
// Package matrix - triplet builder for sparse symmetric assembly.
//
// Purpose:
//   - Accumulate (row, col, value) triplets while a kernel walks its elements,
//     then compress once into gonum band storage. Random access into the
//     compressed form during assembly is never needed.
//
// Policy & Contracts:
//   - Duplicated (i, j) triplets are summed (finite-element style accumulation).
//   - Compression validates symmetry within Options.eps and sizes the band to
//     the widest stored off-diagonal.
//
// Determinism:
//   - Triplets are coalesced in (row, col) order, independent of insertion order
//     of distinct cells. Duplicates of one cell are summed in insertion order.

package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// triplet is one accumulated contribution a[i,j] += v.
type triplet struct {
	i, j int
	v    float64
}

// Builder accumulates triplets for an n×n matrix.
type Builder struct {
	n    int
	data []triplet
	opts Options
}

// NewBuilder returns an empty Builder for an n×n matrix.
// Implementation:
//   - Stage 1: validate n > 0.
//   - Stage 2: resolve options.
//
// Errors:
//   - ErrBadShape when n <= 0.
//
// Complexity:
//   - Time O(1), Space O(1).
func NewBuilder(n int, opts ...Option) (*Builder, error) {
	if n <= 0 {
		return nil, matrixErrorf(opBuild, fmt.Errorf("n=%d: %w", n, ErrBadShape))
	}

	return &Builder{n: n, opts: gatherOptions(opts...)}, nil
}

// Dim returns the matrix dimension.
func (b *Builder) Dim() int { return b.n }

// Len returns the number of accumulated triplets, duplicates included.
func (b *Builder) Len() int { return len(b.data) }

// Add accumulates a[i,j] += v.
//
// Errors:
//   - ErrOutOfRange for an index outside [0, n).
//   - ErrNaNInf for a non-finite v when validation is enabled.
func (b *Builder) Add(i, j int, v float64) error {
	if i < 0 || i >= b.n || j < 0 || j >= b.n {
		return fmt.Errorf("Add(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if b.opts.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return fmt.Errorf("Add(%d,%d): %w", i, j, ErrNaNInf)
	}
	b.data = append(b.data, triplet{i: i, j: j, v: v})

	return nil
}

// AddSym accumulates a[i,j] += v and, for i != j, a[j,i] += v.
func (b *Builder) AddSym(i, j int, v float64) error {
	if err := b.Add(i, j, v); err != nil {
		return err
	}
	if i == j {
		return nil
	}

	return b.Add(j, i, v)
}

// coalesce returns the triplets sorted by (row, col) with duplicates summed.
func (b *Builder) coalesce() []triplet {
	sorted := make([]triplet, len(b.data))
	copy(sorted, b.data)
	sort.SliceStable(sorted, func(x, y int) bool {
		if sorted[x].i != sorted[y].i {
			return sorted[x].i < sorted[y].i
		}

		return sorted[x].j < sorted[y].j
	})

	out := sorted[:0]
	for _, t := range sorted {
		if last := len(out) - 1; last >= 0 && out[last].i == t.i && out[last].j == t.j {
			out[last].v += t.v
			continue
		}
		out = append(out, t)
	}

	return out
}

// SymBand compresses the accumulated triplets into a symmetric band matrix.
// Implementation:
//   - Stage 1: coalesce duplicates in (row, col) order.
//   - Stage 2: check every stored (i,j) against (j,i) within eps; a missing
//     mirror counts as zero.
//   - Stage 3: allocate band storage with k = max |i-j| and fill the upper band.
//
// Errors:
//   - ErrAsymmetry when a mirrored pair differs by more than eps.
//
// Complexity:
//   - Time O(T log T) for T triplets, Space O(T + n·k).
func (b *Builder) SymBand() (*mat.SymBandDense, error) {
	cells := b.coalesce()

	index := make(map[[2]int]float64, len(cells))
	for _, c := range cells {
		index[[2]int{c.i, c.j}] = c.v
	}

	k := 0
	for _, c := range cells {
		if mirror := index[[2]int{c.j, c.i}]; math.Abs(mirror-c.v) > b.opts.eps {
			return nil, matrixErrorf(opBuild, fmt.Errorf("(%d,%d)=%g vs (%d,%d)=%g: %w",
				c.i, c.j, c.v, c.j, c.i, mirror, ErrAsymmetry))
		}
		if d := c.j - c.i; d > k {
			k = d
		}
	}

	band := mat.NewSymBandDense(b.n, k, nil)
	for _, c := range cells {
		if c.j >= c.i {
			band.SetSymBand(c.i, c.j, c.v)
		}
	}

	return band, nil
}
