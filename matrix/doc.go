// Package matrix provides the sparse assembly layer shared by the solvers.
//
// The matrix package provides:
//
//   - Builder, a triplet (row, col, value) accumulator that compresses into
//     gonum symmetric band storage (mat.SymBandDense) once assembly is done.
//   - ValidateFinite, the NaN/Inf guard applied before factorizations.
//   - Band arithmetic (AddScaled) for combining operators without densifying.
//
// Spectral routines live in the ops subpackage.
//
// Finite-element operators on a 1-D grid are tridiagonal; band storage keeps
// them at O(n) memory until a dense eigen backend needs them.
package matrix
