// Package ops provides spectral routines over gonum matrices: a symmetric
// eigensolver with two interchangeable backends and the generalized symmetric
// problem H·x = λ·M·x used by the finite-element solver.
package ops

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/katalvlaran/schrodinger/matrix"
	"gonum.org/v1/gonum/mat"
)

// Backend selects the symmetric eigensolver.
type Backend int

const (
	// BackendGonum uses gonum's LAPACK-based mat.EigenSym.
	BackendGonum Backend = iota

	// BackendJacobi uses cyclic Jacobi rotations. Slower (O(n³) per sweep) but
	// accurate to high relative precision for small eigenvalues.
	BackendJacobi
)

// String implements fmt.Stringer.
func (b Backend) String() string {
	switch b {
	case BackendGonum:
		return "gonum"
	case BackendJacobi:
		return "jacobi"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ErrUnknownBackend is returned by ParseBackend for an unrecognized name.
var ErrUnknownBackend = errors.New("ops: unknown eigen backend")

// ParseBackend maps "gonum" or "jacobi" (case-insensitive) to a Backend.
// The empty string selects BackendGonum.
func ParseBackend(name string) (Backend, error) {
	switch strings.ToLower(name) {
	case "", "gonum":
		return BackendGonum, nil
	case "jacobi":
		return BackendJacobi, nil
	default:
		return BackendGonum, fmt.Errorf("ParseBackend: %q: %w", name, ErrUnknownBackend)
	}
}

// Jacobi defaults.
const (
	DefaultJacobiTol       = 1e-14
	DefaultJacobiMaxSweeps = 100
)

// thetaLimit bounds |θ| before θ² would lose all precision.
const thetaLimit = 1e150

// SymEigen returns all eigenvalues of a in ascending order and the matching
// orthonormal eigenvectors as the columns of a dense matrix.
func SymEigen(a mat.Symmetric, backend Backend) ([]float64, *mat.Dense, error) {
	if err := matrix.ValidateFinite(a); err != nil {
		return nil, nil, fmt.Errorf("SymEigen(%s): %w", backend, err)
	}
	switch backend {
	case BackendGonum:
		var es mat.EigenSym
		if ok := es.Factorize(a, true); !ok {
			return nil, nil, fmt.Errorf("SymEigen(%s): %w", backend, matrix.ErrEigenFailed)
		}
		var vecs mat.Dense
		es.VectorsTo(&vecs)

		return es.Values(nil), &vecs, nil
	case BackendJacobi:
		return Jacobi(a, DefaultJacobiTol, DefaultJacobiMaxSweeps)
	default:
		return nil, nil, fmt.Errorf("SymEigen: unknown backend %d: %w", int(backend), matrix.ErrEigenFailed)
	}
}

// Jacobi performs cyclic Jacobi eigenvalue decomposition of a symmetric matrix.
// It returns eigenvalues in ascending order and eigenvectors as columns.
// tol is the convergence threshold on the off-diagonal Frobenius norm relative
// to the full norm; maxSweeps caps the number of cyclic sweeps.
// Returns matrix.ErrEigenFailed if the sweeps are exhausted.
// Complexity: O(n³) time per sweep; Memory: O(n²).
func Jacobi(a mat.Symmetric, tol float64, maxSweeps int) ([]float64, *mat.Dense, error) {
	// Stage 1: Prepare working copy A and accumulator V = I
	n := a.SymmetricDim()
	A := make([][]float64, n)
	V := make([][]float64, n)
	var norm float64
	for i := 0; i < n; i++ {
		A[i] = make([]float64, n)
		V[i] = make([]float64, n)
		V[i][i] = 1
		for j := 0; j < n; j++ {
			A[i][j] = a.At(i, j)
			norm += A[i][j] * A[i][j]
		}
	}
	norm = math.Sqrt(norm)

	// Stage 2: Sweep all (p, q) pairs until the off-diagonal mass vanishes
	var (
		sweep          int
		p, q, k        int
		apq, theta, t  float64
		c, s, akp, akq float64
		converged      bool
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		if offNorm(A) <= tol*norm {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = A[p][q]
				if apq == 0 {
					continue
				}
				// rotation angle: cot 2φ = (a_qq - a_pp) / 2a_pq
				theta = (A[q][q] - A[p][p]) / (2 * apq)
				if math.Abs(theta) > thetaLimit {
					t = 1 / (2 * theta)
				} else {
					t = math.Copysign(1/(math.Abs(theta)+math.Sqrt(theta*theta+1)), theta)
				}
				c = 1 / math.Sqrt(t*t+1)
				s = t * c

				// A ← A·J (columns p, q)
				for k = 0; k < n; k++ {
					akp, akq = A[k][p], A[k][q]
					A[k][p] = c*akp - s*akq
					A[k][q] = s*akp + c*akq
				}
				// A ← Jᵀ·A (rows p, q)
				for k = 0; k < n; k++ {
					akp, akq = A[p][k], A[q][k]
					A[p][k] = c*akp - s*akq
					A[q][k] = s*akp + c*akq
				}
				A[p][q], A[q][p] = 0, 0

				// V ← V·J
				for k = 0; k < n; k++ {
					akp, akq = V[k][p], V[k][q]
					V[k][p] = c*akp - s*akq
					V[k][q] = s*akp + c*akq
				}
			}
		}
	}
	if !converged && offNorm(A) > tol*norm {
		return nil, nil, fmt.Errorf("Jacobi: %d sweeps: %w", maxSweeps, matrix.ErrEigenFailed)
	}

	// Stage 3: Sort eigenpairs ascending
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return A[order[x]][order[x]] < A[order[y]][order[y]] })

	values := make([]float64, n)
	vectors := mat.NewDense(n, n, nil)
	for col, src := range order {
		values[col] = A[src][src]
		for row := 0; row < n; row++ {
			vectors.Set(row, col, V[row][src])
		}
	}

	return values, vectors, nil
}

// offNorm returns the Frobenius norm of the strictly off-diagonal part.
func offNorm(A [][]float64) float64 {
	var sum float64
	for i := range A {
		for j := range A[i] {
			if i != j {
				sum += A[i][j] * A[i][j]
			}
		}
	}

	return math.Sqrt(sum)
}
