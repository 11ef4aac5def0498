package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// QR returns the thin factorization m = q·r with k = min(rows, cols):
// q is rows×k with orthonormal columns and r is k×cols upper trapezoidal.
//
// The factorization is exact; it never truncates. For wide inputs the
// leading square block is factored and r = qᵀ·m.
func QR(m *mat.Dense) (q, r *mat.Dense) {
	rows, cols := m.Dims()

	var f mat.QR
	if rows >= cols {
		f.Factorize(m)
		var qf, rf mat.Dense
		f.QTo(&qf)
		f.RTo(&rf)
		q = mat.DenseCopyOf(qf.Slice(0, rows, 0, cols))
		r = mat.DenseCopyOf(rf.Slice(0, cols, 0, cols))
		return q, r
	}

	f.Factorize(m.Slice(0, rows, 0, rows))
	q = new(mat.Dense)
	f.QTo(q)
	r = new(mat.Dense)
	r.Mul(q.T(), m)
	return q, r
}

// LQ returns the thin factorization m = l·q with k = min(rows, cols):
// l is rows×k lower trapezoidal and q is k×cols with orthonormal rows.
// It is computed as the transpose of QR(mᵀ).
func LQ(m *mat.Dense) (l, q *mat.Dense) {
	qt, rt := QR(mat.DenseCopyOf(m.T()))
	return mat.DenseCopyOf(rt.T()), mat.DenseCopyOf(qt.T())
}

// Mul returns a·b as a new contiguous matrix.
func Mul(a, b mat.Matrix) *mat.Dense {
	var c mat.Dense
	c.Mul(a, b)
	return &c
}
