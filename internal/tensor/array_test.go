package tensor

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestShape(t *testing.T) {
	s := Shape{2, 3, 4}

	assert.Equal(t, 24, s.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, []int{12, 4, 1}, s.ComputeStrides())
	assert.True(t, s.Equal(Shape{2, 3, 4}))
	assert.False(t, s.Equal(Shape{2, 3}))
	assert.False(t, s.Equal(Shape{2, 3, 5}))

	c := s.Clone()
	c[0] = 9
	assert.Equal(t, 2, s[0])

	require.NoError(t, s.Validate())
	assert.Error(t, Shape{2, 0}.Validate())
	assert.Error(t, Shape{-1}.Validate())
}

func TestShape_Unravel(t *testing.T) {
	s := Shape{2, 3, 4}
	strides := s.ComputeStrides()
	for off := 0; off < s.NumElements(); off++ {
		idx := s.Unravel(off)
		got, err := s.offset(strides, idx)
		require.NoError(t, err)
		assert.Equal(t, off, got)
	}
	assert.Equal(t, []int{1, 2, 3}, s.Unravel(23))
}

func TestArray_AtSet(t *testing.T) {
	a := Zeros(Shape{2, 3})
	require.NoError(t, a.Set(5, 1, 2))

	v, err := a.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	assert.Equal(t, 5.0, a.Data()[5])

	_, err = a.At(2, 0)
	assert.Error(t, err)
	_, err = a.At(0)
	assert.Error(t, err)
	assert.Error(t, a.Set(1, 0, 3))
}

func TestArray_FromData(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}
	a, err := FromData(Shape{3, 2}, data)
	require.NoError(t, err)

	assert.Equal(t, 2, a.NDim())
	assert.Equal(t, 3, a.Dim(0))
	assert.Equal(t, []int{2, 1}, a.Strides())
	data[0] = 10
	assert.Equal(t, 10.0, a.Data()[0], "FromData shares memory")

	_, err = FromData(Shape{4, 2}, data)
	assert.Error(t, err)
	_, err = FromData(Shape{0, 2}, nil)
	assert.Error(t, err)
}

func TestArray_Views(t *testing.T) {
	a, err := FromData(Shape{2, 3, 2}, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	require.NoError(t, err)

	left, err := a.Matrix(6, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, left.At(2, 1))

	right, err := a.Matrix(2, 6)
	require.NoError(t, err)
	assert.Equal(t, 7.0, right.At(1, 0))

	right.Set(0, 0, -1)
	assert.Equal(t, -1.0, a.Data()[0], "matrix view shares memory")

	_, err = a.Matrix(5, 2)
	assert.Error(t, err)

	r, err := a.Reshape(Shape{4, 3})
	require.NoError(t, err)
	v, err := r.At(3, 2)
	require.NoError(t, err)
	assert.Equal(t, 12.0, v)

	_, err = a.Reshape(Shape{5})
	assert.Error(t, err)
}

func TestArray_FromMatrix(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	a, err := FromMatrix(m, Shape{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, a.Data())

	// Submatrix views have a stride wider than their column count.
	sub := m.Slice(0, 2, 1, 3)
	b, err := FromMatrix(sub, Shape{4})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 5, 6}, b.Data())

	c, err := FromMatrix(m.T(), Shape{3, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, c.Data())

	_, err = FromMatrix(m, Shape{7})
	assert.Error(t, err)
}

func TestArray_CloneNormScale(t *testing.T) {
	a := Full(Shape{2, 2}, 3)
	c := a.Clone()
	c.Scale(2)

	assert.Equal(t, 6.0, a.Norm())
	assert.Equal(t, 12.0, c.Norm())

	d, err := Distance(a, c)
	require.NoError(t, err)
	assert.Equal(t, 6.0, d)

	_, err = Distance(a, Zeros(Shape{4}))
	assert.Error(t, err)
}

func TestRandn(t *testing.T) {
	a := Randn(Shape{100, 50}, rand.New(rand.NewSource(1)))
	b := Randn(Shape{100, 50}, rand.New(rand.NewSource(1)))
	assert.Equal(t, a.Data(), b.Data())

	mean := 0.0
	for _, v := range a.Data() {
		mean += v
	}
	mean /= float64(a.NumElements())
	assert.Less(t, math.Abs(mean), 0.1)
	assert.InDelta(t, math.Sqrt(float64(a.NumElements())), a.Norm(), 10)

	u := Rand(Shape{1000}, rand.New(rand.NewSource(2)))
	for _, v := range u.Data() {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestZeros_PanicsOnInvalidShape(t *testing.T) {
	assert.Panics(t, func() { Zeros(Shape{3, 0}) })
}
