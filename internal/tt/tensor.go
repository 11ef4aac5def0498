package tt

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/tensor"
)

// Tensor is an N-dimensional array held as a chain of TT-cores with
// optional per-dimension Tucker factors.
type Tensor struct {
	cores   []*tensor.Array // core i: (r[i-1], n[i], r[i])
	factors []*mat.Dense    // factors[i] == nil: dimension i has no Tucker factor
	shape   tensor.Shape
}

// New builds a tensor from its cores and optional Tucker factors.
//
// factors may be nil, or hold one entry per core where a nil entry means
// the dimension is uncompressed. The tensor takes ownership of every core
// and factor; callers must not modify them afterwards. Factor columns are
// assumed orthonormal and are not checked.
func New(cores []*tensor.Array, factors []*mat.Dense) (*Tensor, error) {
	const op = "new"
	if len(cores) == 0 {
		return nil, shapeErrorf(op, "at least one core is required")
	}
	if factors != nil && len(factors) != len(cores) {
		return nil, shapeErrorf(op, "%d factors for %d cores", len(factors), len(cores))
	}

	t := &Tensor{
		cores:   make([]*tensor.Array, len(cores)),
		factors: make([]*mat.Dense, len(cores)),
		shape:   make(tensor.Shape, len(cores)),
	}
	for i, c := range cores {
		if err := checkCore(op, i, c); err != nil {
			return nil, err
		}
		t.cores[i] = c
		t.shape[i] = c.Dim(1)
	}
	for i, u := range factors {
		if u == nil {
			continue
		}
		if err := checkFactor(op, i, u, t.cores[i]); err != nil {
			return nil, err
		}
		t.factors[i] = u
		t.shape[i], _ = u.Dims()
	}
	if err := t.checkBonds(op); err != nil {
		return nil, err
	}
	return t, nil
}

func checkCore(op string, i int, c *tensor.Array) error {
	if c == nil {
		return shapeErrorf(op, "core %d is nil", i)
	}
	if c.NDim() != 3 {
		return shapeErrorf(op, "core %d has %d axes, want 3", i, c.NDim())
	}
	if err := c.Shape().Validate(); err != nil {
		return shapeErrorf(op, "core %d: %v", i, err)
	}
	return nil
}

func checkFactor(op string, i int, u *mat.Dense, core *tensor.Array) error {
	if u == nil {
		return shapeErrorf(op, "factor %d is nil", i)
	}
	rows, cols := u.Dims()
	if cols != core.Dim(1) {
		return shapeErrorf(op, "factor %d has %d columns, core %d mode is %d", i, cols, i, core.Dim(1))
	}
	if cols > rows {
		return shapeErrorf(op, "factor %d: Tucker rank %d exceeds mode size %d", i, cols, rows)
	}
	return nil
}

// checkBonds verifies boundary ranks and that adjacent cores share their
// bond size.
func (t *Tensor) checkBonds(op string) error {
	n := len(t.cores)
	if r := t.cores[0].Dim(0); r != 1 {
		return shapeErrorf(op, "left boundary rank is %d, want 1", r)
	}
	if r := t.cores[n-1].Dim(2); r != 1 {
		return shapeErrorf(op, "right boundary rank is %d, want 1", r)
	}
	for i := 0; i < n-1; i++ {
		if l, r := t.cores[i].Dim(2), t.cores[i+1].Dim(0); l != r {
			return shapeErrorf(op, "bond %d: core %d has right rank %d, core %d has left rank %d", i, i, l, i+1, r)
		}
	}
	return nil
}

// Dim returns the number of dimensions N.
func (t *Tensor) Dim() int {
	return len(t.cores)
}

// Shape returns the size along each dimension.
func (t *Tensor) Shape() tensor.Shape {
	return t.shape.Clone()
}

// Numel returns the number of entries of the represented array.
func (t *Tensor) Numel() int {
	return t.shape.NumElements()
}

// Size returns the number of stored parameters (cores and factors).
func (t *Tensor) Size() int {
	n := 0
	for i, c := range t.cores {
		n += c.NumElements()
		if u := t.factors[i]; u != nil {
			r, k := u.Dims()
			n += r * k
		}
	}
	return n
}

// Core returns core i. The returned array is owned by the tensor.
func (t *Tensor) Core(i int) (*tensor.Array, error) {
	if i < 0 || i >= t.Dim() {
		return nil, &DimensionError{Op: "core", Index: i, Len: t.Dim()}
	}
	return t.cores[i], nil
}

// Cores returns the core list. The slice is a copy; the cores are shared.
func (t *Tensor) Cores() []*tensor.Array {
	return append([]*tensor.Array(nil), t.cores...)
}

// SetCore replaces core i. Only the core's own shape is checked: bond and
// mode consistency with the rest of the chain is verified by the next
// sweep, so a chain may be rebuilt one core at a time.
func (t *Tensor) SetCore(i int, core *tensor.Array) error {
	if i < 0 || i >= t.Dim() {
		return &DimensionError{Op: "set core", Index: i, Len: t.Dim()}
	}
	if err := checkCore("set core", i, core); err != nil {
		return err
	}
	if u := t.factors[i]; u != nil {
		if err := checkFactor("set core", i, u, core); err != nil {
			return err
		}
	} else {
		t.shape[i] = core.Dim(1)
	}
	t.cores[i] = core
	return nil
}

// Factor returns the Tucker factor of dimension i, if any.
func (t *Tensor) Factor(i int) (*mat.Dense, bool) {
	if i < 0 || i >= t.Dim() || t.factors[i] == nil {
		return nil, false
	}
	return t.factors[i], true
}

// HasFactor reports whether dimension i carries a Tucker factor.
func (t *Tensor) HasFactor(i int) bool {
	_, ok := t.Factor(i)
	return ok
}

// SetFactor attaches a Tucker factor to dimension i. u must be non-nil,
// with as many columns as core i's middle axis and orthonormal columns.
// Use RemoveFactor to detach a factor.
func (t *Tensor) SetFactor(i int, u *mat.Dense) error {
	if i < 0 || i >= t.Dim() {
		return &DimensionError{Op: "set factor", Index: i, Len: t.Dim()}
	}
	if err := checkFactor("set factor", i, u, t.cores[i]); err != nil {
		return err
	}
	t.factors[i] = u
	t.shape[i], _ = u.Dims()
	return nil
}

// RemoveFactor absorbs the Tucker factor of dimension i into its core.
func (t *Tensor) RemoveFactor(i int) error {
	if i < 0 || i >= t.Dim() {
		return &DimensionError{Op: "remove factor", Index: i, Len: t.Dim()}
	}
	t.decompress(i)
	return nil
}

// RanksTT returns the internal bond ranks r[0..N-2].
func (t *Tensor) RanksTT() []int {
	ranks := make([]int, t.Dim()-1)
	for i := range ranks {
		ranks[i] = t.cores[i].Dim(2)
	}
	return ranks
}

// RanksTucker returns n[i] for every dimension: the Tucker rank where a
// factor is attached, the mode size otherwise.
func (t *Tensor) RanksTucker() []int {
	ranks := make([]int, t.Dim())
	for i, c := range t.cores {
		ranks[i] = c.Dim(1)
	}
	return ranks
}

// Clone returns a deep copy sharing no memory with t.
func (t *Tensor) Clone() *Tensor {
	c := &Tensor{
		cores:   make([]*tensor.Array, len(t.cores)),
		factors: make([]*mat.Dense, len(t.cores)),
		shape:   t.shape.Clone(),
	}
	for i, core := range t.cores {
		c.cores[i] = core.Clone()
		if u := t.factors[i]; u != nil {
			c.factors[i] = mat.DenseCopyOf(u)
		}
	}
	return c
}

// String returns a short description of the format and ranks.
func (t *Tensor) String() string {
	var b strings.Builder
	kind := "TT"
	for i := range t.factors {
		if t.factors[i] != nil {
			kind = "TT-Tucker"
			break
		}
	}
	fmt.Fprintf(&b, "%dD %s tensor:\n", t.Dim(), kind)
	fmt.Fprintf(&b, "  shape:        %v\n", []int(t.shape))
	fmt.Fprintf(&b, "  tucker ranks: %v\n", t.RanksTucker())
	fmt.Fprintf(&b, "  tt ranks:     %v\n", t.RanksTT())
	fmt.Fprintf(&b, "  parameters:   %d (%d entries)", t.Size(), t.Numel())
	return b.String()
}
