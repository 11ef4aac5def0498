package tt

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/linalg"
	"github.com/born-ml/ttcore/internal/parallel"
	"github.com/born-ml/ttcore/internal/tensor"
)

// DecompressTucker absorbs every Tucker factor into its core, leaving a
// plain TT chain that represents the same array.
func (t *Tensor) DecompressTucker() {
	for i := range t.cores {
		t.decompress(i)
	}
}

// decompress replaces core i (r0, n, r1) by the back-projected core
// (r0, shape[i], r1) and drops the factor.
func (t *Tensor) decompress(i int) {
	u := t.factors[i]
	if u == nil {
		return
	}
	core := t.cores[i]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
	size, _ := u.Dims()

	out := tensor.Zeros(tensor.Shape{r0, size, r1})
	src, dst := core.Data(), out.Data()
	for a := 0; a < r0; a++ {
		slice := mat.NewDense(n, r1, src[a*n*r1:(a+1)*n*r1])
		proj := mat.NewDense(size, r1, dst[a*size*r1:(a+1)*size*r1])
		proj.Mul(u, slice)
	}
	t.cores[i] = out
	t.factors[i] = nil
}

// decompressed returns a plain TT copy of t.
func (t *Tensor) decompressed() *Tensor {
	c := t.Clone()
	c.DecompressTucker()
	return c
}

// slice returns the r0×r1 matrix of core k at original-mode position x,
// applying the Tucker factor when present.
func (t *Tensor) slice(k, x int) []float64 {
	core := t.cores[k]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
	data := core.Data()
	out := make([]float64, r0*r1)

	u := t.factors[k]
	if u == nil {
		for a := 0; a < r0; a++ {
			copy(out[a*r1:(a+1)*r1], data[(a*n+x)*r1:(a*n+x+1)*r1])
		}
		return out
	}
	for a := 0; a < r0; a++ {
		row := out[a*r1 : (a+1)*r1]
		for j := 0; j < n; j++ {
			w := u.At(x, j)
			if w == 0 {
				continue
			}
			src := data[(a*n+j)*r1 : (a*n+j+1)*r1]
			for b := range row {
				row[b] += w * src[b]
			}
		}
	}
	return out
}

// At returns the entry at the multi-index idx: the product of the core
// slices selected by each index component.
func (t *Tensor) At(idx ...int) (float64, error) {
	if len(idx) != t.Dim() {
		return 0, shapeErrorf("at", "index has %d components, tensor has %d dimensions", len(idx), t.Dim())
	}
	for k, x := range idx {
		if x < 0 || x >= t.shape[k] {
			return 0, &DimensionError{Op: "at", Index: x, Len: t.shape[k]}
		}
	}

	v := []float64{1}
	for k, x := range idx {
		s := t.slice(k, x)
		r1 := t.cores[k].Dim(2)
		next := make([]float64, r1)
		for a, va := range v {
			if va == 0 {
				continue
			}
			row := s[a*r1 : (a+1)*r1]
			for b := range next {
				next[b] += va * row[b]
			}
		}
		v = next
	}
	return v[0], nil
}

// Gather evaluates many entries. Entries are computed concurrently; the
// tensor is only read.
func (t *Tensor) Gather(indices [][]int) ([]float64, error) {
	out := make([]float64, len(indices))
	err := parallel.ForErr(len(indices), func(i int) error {
		v, err := t.At(indices[i]...)
		out[i] = v
		return err
	}, parallel.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Full reconstructs the dense array. Memory grows with the product of the
// mode sizes; use it on small tensors only.
func (t *Tensor) Full() (*tensor.Array, error) {
	c := t.decompressed()

	first := c.cores[0]
	x, err := first.Matrix(first.Dim(1), first.Dim(2))
	if err != nil {
		return nil, err
	}
	rows := first.Dim(1)
	for k := 1; k < c.Dim(); k++ {
		core := c.cores[k]
		r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
		m, err := core.Matrix(r0, n*r1)
		if err != nil {
			return nil, err
		}
		prod := linalg.Mul(x, m)
		rows *= n
		x = mat.NewDense(rows, r1, prod.RawMatrix().Data)
	}
	return tensor.FromData(t.shape.Clone(), x.RawMatrix().Data)
}
