package tt

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/linalg"
	"github.com/born-ml/ttcore/internal/tensor"
)

// Orthogonalize canonicalizes the chain around pivot: cores left of the
// pivot become left-orthonormal and cores right of it right-orthonormal.
// The represented array is unchanged; the pivot core carries the norm.
func (t *Tensor) Orthogonalize(pivot int) error {
	if pivot < 0 || pivot >= t.Dim() {
		return &DimensionError{Op: "orthogonalize", Index: pivot, Len: t.Dim()}
	}
	if err := t.checkBonds("orthogonalize"); err != nil {
		return err
	}
	t.sweepLeft(pivot)
	t.sweepRight(pivot)
	return nil
}

// OrthogonalizeLeft makes cores 0..upto-1 left-orthonormal: the unfolding
// (r[i-1]·n[i], r[i]) of each has orthonormal columns.
func (t *Tensor) OrthogonalizeLeft(upto int) error {
	if upto < 0 || upto >= t.Dim() {
		return &DimensionError{Op: "orthogonalize left", Index: upto, Len: t.Dim()}
	}
	if err := t.checkBonds("orthogonalize left"); err != nil {
		return err
	}
	t.sweepLeft(upto)
	return nil
}

// OrthogonalizeRight makes cores downto+1..N-1 right-orthonormal: the
// unfolding (r[i-1], n[i]·r[i]) of each has orthonormal rows.
func (t *Tensor) OrthogonalizeRight(downto int) error {
	if downto < 0 || downto >= t.Dim() {
		return &DimensionError{Op: "orthogonalize right", Index: downto, Len: t.Dim()}
	}
	if err := t.checkBonds("orthogonalize right"); err != nil {
		return err
	}
	t.sweepRight(downto)
	return nil
}

// LeftOrthogonalizeCore performs one left sweep step on the window
// (mu, mu+1).
func (t *Tensor) LeftOrthogonalizeCore(mu int) error {
	if mu < 0 || mu >= t.Dim()-1 {
		return &DimensionError{Op: "left orthogonalize core", Index: mu, Len: t.Dim() - 1}
	}
	if err := t.checkBonds("left orthogonalize core"); err != nil {
		return err
	}
	t.leftStep(mu)
	return nil
}

// RightOrthogonalizeCore performs one right sweep step on the window
// (mu-1, mu).
func (t *Tensor) RightOrthogonalizeCore(mu int) error {
	if mu < 1 || mu >= t.Dim() {
		return &DimensionError{Op: "right orthogonalize core", Index: mu, Len: t.Dim()}
	}
	if err := t.checkBonds("right orthogonalize core"); err != nil {
		return err
	}
	t.rightStep(mu)
	return nil
}

func (t *Tensor) sweepLeft(upto int) {
	for mu := 0; mu < upto; mu++ {
		t.leftStep(mu)
	}
}

func (t *Tensor) sweepRight(downto int) {
	for mu := t.Dim() - 1; mu > downto; mu-- {
		t.rightStep(mu)
	}
}

// moveCenter shifts the orthogonality center from one core to another,
// assuming the chain is already canonical around from.
func (t *Tensor) moveCenter(from, to int) {
	for mu := from; mu < to; mu++ {
		t.leftStep(mu)
	}
	for mu := from; mu > to; mu-- {
		t.rightStep(mu)
	}
}

// leftStep factors core mu = Q·R over its left unfolding, keeps Q as core
// mu and contracts R into core mu+1. The bond becomes min(r0·n, r1).
func (t *Tensor) leftStep(mu int) {
	core := t.cores[mu]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)

	q, r := linalg.QR(mustMatrix(core, r0*n, r1))
	_, k := q.Dims()
	t.cores[mu] = mustArray(q, tensor.Shape{r0, n, k})
	t.absorbLeft(mu+1, r)
}

// rightStep factors core mu = L·Q over its right unfolding, keeps Q as core
// mu and contracts L into core mu-1.
func (t *Tensor) rightStep(mu int) {
	core := t.cores[mu]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)

	l, q := linalg.LQ(mustMatrix(core, r0, n*r1))
	k, _ := q.Dims()
	t.cores[mu] = mustArray(q, tensor.Shape{k, n, r1})
	t.absorbRight(mu-1, l)
}

// absorbLeft replaces core mu by m·core, m being (k, r[mu-1]).
func (t *Tensor) absorbLeft(mu int, m *mat.Dense) {
	core := t.cores[mu]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
	k, _ := m.Dims()
	t.cores[mu] = mustArray(linalg.Mul(m, mustMatrix(core, r0, n*r1)), tensor.Shape{k, n, r1})
}

// absorbRight replaces core mu by core·m, m being (r[mu], k).
func (t *Tensor) absorbRight(mu int, m *mat.Dense) {
	core := t.cores[mu]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
	_, k := m.Dims()
	t.cores[mu] = mustArray(linalg.Mul(mustMatrix(core, r0*n, r1), m), tensor.Shape{r0, n, k})
}

// mustMatrix views a core as a matrix. Sizes are computed from the core's
// own shape, so a failure is a programming error.
func mustMatrix(a *tensor.Array, rows, cols int) *mat.Dense {
	m, err := a.Matrix(rows, cols)
	if err != nil {
		panic(fmt.Sprintf("tt: %v", err))
	}
	return m
}

func mustArray(m mat.Matrix, shape tensor.Shape) *tensor.Array {
	a, err := tensor.FromMatrix(m, shape)
	if err != nil {
		panic(fmt.Sprintf("tt: %v", err))
	}
	return a
}
