package tt

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/linalg"
	"github.com/born-ml/ttcore/internal/tensor"
)

// randomShape draws dims in [dmin, dmax) dimensions with sizes in [lo, hi).
func randomShape(rng *rand.Rand, lo, hi, dmin, dmax int) tensor.Shape {
	n := dmin + rng.Intn(dmax-dmin)
	shape := make(tensor.Shape, n)
	for i := range shape {
		shape[i] = lo + rng.Intn(hi-lo)
	}
	return shape
}

func mustRandom(t *testing.T, shape tensor.Shape, cfg RandomConfig) *Tensor {
	t.Helper()
	x, err := Random(shape, cfg)
	require.NoError(t, err)
	return x
}

func relErr(t *testing.T, gt, approx *Tensor) float64 {
	t.Helper()
	e, err := RelativeError(gt, approx)
	require.NoError(t, err)
	return e
}

// denseRelErr compares two tensors through their dense reconstructions.
func denseRelErr(t *testing.T, gt, approx *Tensor) float64 {
	t.Helper()
	a, err := gt.Full()
	require.NoError(t, err)
	b, err := approx.Full()
	require.NoError(t, err)
	d, err := tensor.Distance(a, b)
	require.NoError(t, err)
	return d / a.Norm()
}

func assertLeftOrthonormal(t *testing.T, core *tensor.Array) {
	t.Helper()
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
	m, err := core.Matrix(r0*n, r1)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(linalg.Mul(m.T(), m), identity(r1), 1e-10),
		"core %v is not left-orthonormal", core.Shape())
}

func assertRightOrthonormal(t *testing.T, core *tensor.Array) {
	t.Helper()
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
	m, err := core.Matrix(r0, n*r1)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(linalg.Mul(m, m.T()), identity(r0), 1e-10),
		"core %v is not right-orthonormal", core.Shape())
}

func identity(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func maxRank(ranks []int) int {
	m := 0
	for _, r := range ranks {
		m = max(m, r)
	}
	return m
}
