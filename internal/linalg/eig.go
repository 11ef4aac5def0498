package linalg

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Eig truncates through the symmetric eigendecomposition of the smaller
// Gram matrix (m·mᵀ or mᵀ·m). It is cheaper than SVD for strongly
// rectangular unfoldings but loses accuracy on ill-conditioned inputs:
// singular values below roughly sqrt(ε)·σ_max cannot be resolved and are
// treated as zero.
type Eig struct{}

// Name returns "eig".
func (Eig) Name() string { return "eig" }

// Truncate implements Truncator.
func (Eig) Truncate(m *mat.Dense, delta float64, rmax int) (*Truncation, error) {
	rows, cols := m.Dims()
	if !finite(m) {
		return nil, &ConvergenceError{Op: "eigen", Rows: rows, Cols: cols}
	}

	// Gram of the smaller side: eigenvectors are left singular vectors when
	// rows <= cols, right singular vectors otherwise.
	leftVectors := rows <= cols
	var gram mat.SymDense
	n := rows
	if leftVectors {
		gram.SymOuterK(1, m)
	} else {
		gram.SymOuterK(1, m.T())
		n = cols
	}

	var f mat.EigenSym
	if ok := f.Factorize(&gram, true); !ok {
		return nil, &ConvergenceError{Op: "eigen", Rows: rows, Cols: cols}
	}
	lambda := f.Values(nil)
	var vecs mat.Dense
	f.VectorsTo(&vecs)

	order := descendingOrder(lambda)
	s := make([]float64, n)
	floor := 0.0
	if len(order) > 0 {
		// Gram entries carry round-off of order (rows+cols)·ε·λ_max.
		floor = noiseFloor(math.Abs(lambda[order[0]]), rows, cols)
	}
	for i, o := range order {
		if l := lambda[o]; l > floor {
			s[i] = math.Sqrt(l)
		}
	}
	k := TruncationRank(s, delta, rmax)
	basis := pickColumns(&vecs, order[:k])

	var left, right *mat.Dense
	if leftVectors {
		left = basis
		right = Mul(basis.T(), m)
	} else {
		// m·V_k spans the kept left singular subspace; orthonormalize it
		// instead of dividing by possibly tiny singular values.
		var r *mat.Dense
		left, r = QR(Mul(m, basis))
		right = Mul(r, basis.T())
	}

	return &Truncation{
		Left:      left,
		Right:     right,
		Values:    s,
		Rank:      k,
		Discarded: tailNorm(s, k),
	}, nil
}
