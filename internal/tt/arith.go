package tt

import (
	"github.com/born-ml/ttcore/internal/tensor"
)

// Add returns a+b. Tucker factors are absorbed first; the result is a plain
// TT tensor whose bond ranks are the sums of the operands' ranks.
func Add(a, b *Tensor) (*Tensor, error) {
	if !a.shape.Equal(b.shape) {
		return nil, shapeErrorf("add", "shape mismatch %v vs %v", a.shape, b.shape)
	}
	x, y := a.decompressed(), b.decompressed()
	n := x.Dim()

	if n == 1 {
		sum := x.cores[0].Clone()
		data := sum.Data()
		for i, v := range y.cores[0].Data() {
			data[i] += v
		}
		return New([]*tensor.Array{sum}, nil)
	}

	cores := make([]*tensor.Array, n)
	for k := 0; k < n; k++ {
		cores[k] = blockCore(x.cores[k], y.cores[k], k == 0, k == n-1)
	}
	return New(cores, nil)
}

// blockCore stacks two cores with the same mode size: block-diagonal in the
// interior, concatenated along the free bond at the ends.
func blockCore(p, q *tensor.Array, first, last bool) *tensor.Array {
	pa, n, pb := p.Dim(0), p.Dim(1), p.Dim(2)
	qa, qb := q.Dim(0), q.Dim(2)

	ra, rb := pa+qa, pb+qb
	qOffA, qOffB := pa, pb
	if first {
		ra, qOffA = 1, 0
	}
	if last {
		rb, qOffB = 1, 0
	}

	out := tensor.Zeros(tensor.Shape{ra, n, rb})
	dst := out.Data()
	place := func(src []float64, sa, sb, offA, offB int) {
		for a := 0; a < sa; a++ {
			for j := 0; j < n; j++ {
				row := src[(a*n+j)*sb : (a*n+j+1)*sb]
				base := ((a+offA)*n + j) * rb
				copy(dst[base+offB:base+offB+sb], row)
			}
		}
	}
	place(p.Data(), pa, pb, 0, 0)
	place(q.Data(), qa, qb, qOffA, qOffB)
	return out
}

// Scale returns alpha·t. Factors are kept.
func Scale(t *Tensor, alpha float64) *Tensor {
	c := t.Clone()
	c.cores[0].Scale(alpha)
	return c
}

// Sub returns a-b.
func Sub(a, b *Tensor) (*Tensor, error) {
	return Add(a, Scale(b, -1))
}
