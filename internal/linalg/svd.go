package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// SVD truncates through a thin singular value decomposition of the matrix
// itself. It is backward stable and the default backend. Singular values at
// or below σ_max·(rows+cols)·8ε are round-off and count as zero.
type SVD struct{}

// Name returns "svd".
func (SVD) Name() string { return "svd" }

// Truncate implements Truncator.
func (SVD) Truncate(m *mat.Dense, delta float64, rmax int) (*Truncation, error) {
	rows, cols := m.Dims()
	if !finite(m) {
		return nil, &ConvergenceError{Op: "svd", Rows: rows, Cols: cols}
	}

	var f mat.SVD
	if ok := f.Factorize(m, mat.SVDThin); !ok {
		return nil, &ConvergenceError{Op: "svd", Rows: rows, Cols: cols}
	}
	raw := f.Values(nil)
	var u, v mat.Dense
	f.UTo(&u)
	f.VTo(&v)

	order := descendingOrder(raw)
	s := make([]float64, len(raw))
	floor := 0.0
	if len(order) > 0 {
		floor = noiseFloor(raw[order[0]], rows, cols)
	}
	for i, o := range order {
		if v := raw[o]; v > floor {
			s[i] = v
		}
	}
	k := TruncationRank(s, delta, rmax)

	left := pickColumns(&u, order[:k])
	vk := pickColumns(&v, order[:k])
	right := mat.DenseCopyOf(vk.T())
	for i := 0; i < k; i++ {
		row := right.RawRowView(i)
		for j := range row {
			row[j] *= s[i]
		}
	}

	return &Truncation{
		Left:      left,
		Right:     right,
		Values:    s,
		Rank:      k,
		Discarded: tailNorm(s, k),
	}, nil
}
