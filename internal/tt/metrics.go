package tt

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/linalg"
)

// Dot returns the Frobenius inner product of a and b.
func Dot(a, b *Tensor) (float64, error) {
	if !a.shape.Equal(b.shape) {
		return 0, shapeErrorf("dot", "shape mismatch %v vs %v", a.shape, b.shape)
	}
	x, y := a.decompressed(), b.decompressed()

	w := mat.NewDense(1, 1, []float64{1}) // (ra, rb)
	for k := 0; k < x.Dim(); k++ {
		p, q := x.cores[k], y.cores[k]
		pa, n, pb := p.Dim(0), p.Dim(1), p.Dim(2)
		qa, qb := q.Dim(0), q.Dim(2)

		// Y = wᵀ·P viewed as (qa·n, pb); w' = Yᵀ·Q viewed as (qa·n, qb).
		yv := linalg.Mul(w.T(), mustMatrix(p, pa, n*pb))
		yv = mat.NewDense(qa*n, pb, yv.RawMatrix().Data)
		w = linalg.Mul(yv.T(), mustMatrix(q, qa*n, qb))
	}
	return w.At(0, 0), nil
}

// Norm returns the Frobenius norm of t. It is computed by orthogonalizing a
// copy, which avoids the cancellation of sqrt(Dot(t, t)) for small values.
func Norm(t *Tensor) float64 {
	c := t.decompressed()
	c.sweepLeft(c.Dim() - 1)
	return c.cores[c.Dim()-1].Norm()
}

// Distance returns ‖a-b‖.
func Distance(a, b *Tensor) (float64, error) {
	d, err := Sub(a, b)
	if err != nil {
		return 0, err
	}
	return Norm(d), nil
}

// RelativeError returns ‖gt-approx‖/‖gt‖. It is meant for verification; no
// algorithm in this package calls it.
func RelativeError(gt, approx *Tensor) (float64, error) {
	dist, err := Distance(gt, approx)
	if err != nil {
		return 0, err
	}
	norm := Norm(gt)
	if norm == 0 {
		if dist == 0 {
			return 0, nil
		}
		return math.Inf(1), nil
	}
	return dist / norm, nil
}
