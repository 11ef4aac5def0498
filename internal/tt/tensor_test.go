package tt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/tensor"
)

func TestNew(t *testing.T) {
	cores := []*tensor.Array{
		tensor.Full(tensor.Shape{1, 3, 2}, 1),
		tensor.Full(tensor.Shape{2, 4, 1}, 1),
	}
	x, err := New(cores, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, x.Dim())
	assert.Equal(t, tensor.Shape{3, 4}, x.Shape())
	assert.Equal(t, []int{2}, x.RanksTT())
	assert.Equal(t, []int{3, 4}, x.RanksTucker())
	assert.Equal(t, 12, x.Numel())
	assert.Equal(t, 14, x.Size())
	assert.False(t, x.HasFactor(0))

	v, err := x.At(2, 3)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		cores   []*tensor.Array
		factors []*mat.Dense
	}{
		{"no cores", nil, nil},
		{"not 3d", []*tensor.Array{tensor.Zeros(tensor.Shape{1, 3})}, nil},
		{"left boundary", []*tensor.Array{tensor.Zeros(tensor.Shape{2, 3, 1})}, nil},
		{"right boundary", []*tensor.Array{tensor.Zeros(tensor.Shape{1, 3, 2})}, nil},
		{"bond mismatch", []*tensor.Array{
			tensor.Zeros(tensor.Shape{1, 3, 2}),
			tensor.Zeros(tensor.Shape{3, 3, 1}),
		}, nil},
		{"factor count", []*tensor.Array{tensor.Zeros(tensor.Shape{1, 3, 1})},
			[]*mat.Dense{nil, nil}},
		{"factor columns", []*tensor.Array{tensor.Zeros(tensor.Shape{1, 3, 1})},
			[]*mat.Dense{mat.NewDense(5, 2, nil)}},
		{"tucker rank above mode size", []*tensor.Array{tensor.Zeros(tensor.Shape{1, 3, 1})},
			[]*mat.Dense{mat.NewDense(2, 3, nil)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cores, tt.factors)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrShape), "got %v", err)

			var se *ShapeError
			assert.True(t, errors.As(err, &se))
		})
	}
}

func TestTensor_Factors(t *testing.T) {
	x := mustRandom(t, tensor.Shape{6, 5, 4}, RandomConfig{RanksTT: []int{3}, RanksTucker: []int{2, 0, 4}, Seed: 1})

	assert.Equal(t, tensor.Shape{6, 5, 4}, x.Shape())
	assert.Equal(t, []int{2, 5, 4}, x.RanksTucker())
	assert.True(t, x.HasFactor(0))
	assert.False(t, x.HasFactor(1))
	assert.True(t, x.HasFactor(2))

	u, ok := x.Factor(0)
	require.True(t, ok)
	assert.True(t, mat.EqualApprox(mulT(u), identity(2), 1e-12))

	_, ok = x.Factor(7)
	assert.False(t, ok)
}

func TestTensor_SetFactor(t *testing.T) {
	x := mustRandom(t, tensor.Shape{5, 4}, RandomConfig{RanksTT: []int{2}, Seed: 4})
	full, err := x.Full()
	require.NoError(t, err)

	err = x.SetFactor(0, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShape), "got %v", err)
	assert.False(t, x.HasFactor(0))

	err = x.SetFactor(0, mat.NewDense(5, 3, nil))
	assert.True(t, errors.Is(err, ErrShape), "columns must match the core mode")

	err = x.SetFactor(2, identity(5))
	assert.True(t, errors.Is(err, ErrDimension))

	// An identity factor leaves the represented values unchanged.
	require.NoError(t, x.SetFactor(0, identity(5)))
	assert.True(t, x.HasFactor(0))
	got, err := x.Full()
	require.NoError(t, err)
	assert.InDeltaSlice(t, full.Data(), got.Data(), 1e-12)

	require.NoError(t, x.RemoveFactor(0))
	assert.False(t, x.HasFactor(0))
	assert.Equal(t, tensor.Shape{5, 4}, x.Shape())
}

func mulT(u *mat.Dense) *mat.Dense {
	var g mat.Dense
	g.Mul(u.T(), u)
	return &g
}

func TestTensor_Clone(t *testing.T) {
	x := mustRandom(t, tensor.Shape{3, 4, 5}, RandomConfig{RanksTT: []int{2}, RanksTucker: []int{2}, Seed: 2})
	c := x.Clone()

	c.cores[1].Scale(0)
	c.factors[0].Set(0, 0, 42)

	assert.NotZero(t, x.cores[1].Norm())
	assert.NotEqual(t, 42.0, x.factors[0].At(0, 0))
}

func TestTensor_SetCore(t *testing.T) {
	x := mustRandom(t, tensor.Shape{3, 4, 5}, RandomConfig{RanksTT: []int{2}, Seed: 3})

	err := x.SetCore(1, tensor.Zeros(tensor.Shape{3, 4, 2}))
	require.NoError(t, err, "bond consistency is checked by the sweeps")

	err = x.Orthogonalize(1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrShape))

	err = x.SetCore(5, tensor.Zeros(tensor.Shape{1, 1, 1}))
	assert.True(t, errors.Is(err, ErrDimension))

	err = x.SetCore(0, tensor.Zeros(tensor.Shape{3, 4}))
	assert.True(t, errors.Is(err, ErrShape))
}

func TestTensor_AtAndGather(t *testing.T) {
	x := mustRandom(t, tensor.Shape{3, 4, 2, 5}, RandomConfig{RanksTT: []int{3}, RanksTucker: []int{2, 0, 0, 3}, Seed: 4})
	full, err := x.Full()
	require.NoError(t, err)

	shape := x.Shape()
	indices := make([][]int, 0, shape.NumElements())
	for off := 0; off < shape.NumElements(); off++ {
		indices = append(indices, shape.Unravel(off))
	}

	values, err := x.Gather(indices)
	require.NoError(t, err)
	for i, idx := range indices {
		want, err := full.At(idx...)
		require.NoError(t, err)
		assert.InDelta(t, want, values[i], 1e-10, "index %v", idx)
	}
}

func TestTensor_AtErrors(t *testing.T) {
	x := mustRandom(t, tensor.Shape{3, 4}, RandomConfig{RanksTT: []int{2}, Seed: 5})

	_, err := x.At(1)
	assert.True(t, errors.Is(err, ErrShape))

	_, err = x.At(1, 4)
	assert.True(t, errors.Is(err, ErrDimension))

	_, err = x.Gather([][]int{{0, 0}, {3, 0}})
	assert.True(t, errors.Is(err, ErrDimension))
}

func TestTensor_DecompressTucker(t *testing.T) {
	x := mustRandom(t, tensor.Shape{5, 6, 7}, RandomConfig{RanksTT: []int{3}, RanksTucker: []int{3}, Seed: 6})
	y := x.Clone()
	y.DecompressTucker()

	for i := 0; i < y.Dim(); i++ {
		assert.False(t, y.HasFactor(i))
	}
	assert.Equal(t, []int{5, 6, 7}, y.RanksTucker())
	assert.Less(t, denseRelErr(t, x, y), 1e-12)

	z := x.Clone()
	require.NoError(t, z.RemoveFactor(1))
	assert.True(t, z.HasFactor(0))
	assert.False(t, z.HasFactor(1))
	assert.Less(t, denseRelErr(t, x, z), 1e-12)
}

func TestTensor_String(t *testing.T) {
	x := mustRandom(t, tensor.Shape{3, 4}, RandomConfig{RanksTT: []int{2}, RanksTucker: []int{2}, Seed: 7})
	s := x.String()
	assert.Contains(t, s, "2D TT-Tucker tensor")
	assert.Contains(t, s, "[3 4]")
}
