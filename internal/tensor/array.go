package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Array is a dense row-major float64 array of arbitrary rank.
//
// TT-cores, Tucker factors and decompressed tensors are all stored as Arrays.
// Reshape and Matrix return views that share the backing slice, so the
// left/right unfoldings of a core cost nothing.
type Array struct {
	shape  Shape
	stride []int
	data   []float64
}

// NewArray allocates a zero-filled array with the given shape.
func NewArray(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &Array{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   make([]float64, shape.NumElements()),
	}, nil
}

// FromData wraps data (row-major) as an array. The slice is not copied.
func FromData(shape Shape, data []float64) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	return &Array{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   data,
	}, nil
}

// FromMatrix copies m into a new array of the given shape.
// The shape must hold exactly rows*cols elements of m.
func FromMatrix(m mat.Matrix, shape Shape) (*Array, error) {
	r, c := m.Dims()
	if r*c != shape.NumElements() {
		return nil, fmt.Errorf("matrix %dx%d does not fit shape %v", r, c, shape)
	}
	data := make([]float64, 0, r*c)
	if d, ok := m.(*mat.Dense); ok {
		raw := d.RawMatrix()
		for i := 0; i < r; i++ {
			data = append(data, raw.Data[i*raw.Stride:i*raw.Stride+c]...)
		}
		return FromData(shape, data)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data = append(data, m.At(i, j))
		}
	}
	return FromData(shape, data)
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the array's row-major strides.
func (a *Array) Strides() []int {
	return a.stride
}

// NDim returns the number of axes.
func (a *Array) NDim() int {
	return len(a.shape)
}

// Dim returns the size of axis i.
func (a *Array) Dim(i int) int {
	return a.shape[i]
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return len(a.data)
}

// Data returns the backing slice.
// WARNING: Direct access to underlying memory. Views share it.
func (a *Array) Data() []float64 {
	return a.data
}

// At returns the element at idx.
func (a *Array) At(idx ...int) (float64, error) {
	off, err := a.shape.offset(a.stride, idx)
	if err != nil {
		return 0, err
	}
	return a.data[off], nil
}

// Set assigns v at idx.
func (a *Array) Set(v float64, idx ...int) error {
	off, err := a.shape.offset(a.stride, idx)
	if err != nil {
		return err
	}
	a.data[off] = v
	return nil
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	return &Array{
		shape:  a.shape.Clone(),
		stride: append([]int(nil), a.stride...),
		data:   data,
	}
}

// Reshape returns a view with a new shape over the same data.
func (a *Array) Reshape(shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("reshape: %w", err)
	}
	if shape.NumElements() != len(a.data) {
		return nil, fmt.Errorf("reshape: cannot view %v as %v", a.shape, shape)
	}
	return &Array{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		data:   a.data,
	}, nil
}

// Matrix returns a rows×cols gonum view over the array data.
// Writes through the view modify the array.
func (a *Array) Matrix(rows, cols int) (*mat.Dense, error) {
	if rows <= 0 || cols <= 0 || rows*cols != len(a.data) {
		return nil, fmt.Errorf("matrix view %dx%d incompatible with shape %v", rows, cols, a.shape)
	}
	return mat.NewDense(rows, cols, a.data), nil
}

// Norm returns the Frobenius norm.
func (a *Array) Norm() float64 {
	return floats.Norm(a.data, 2)
}

// Scale multiplies every element by alpha in place.
func (a *Array) Scale(alpha float64) {
	floats.Scale(alpha, a.data)
}

// Distance returns the Frobenius norm of a-b.
func Distance(a, b *Array) (float64, error) {
	if !a.shape.Equal(b.shape) {
		return 0, fmt.Errorf("distance: shape mismatch %v vs %v", a.shape, b.shape)
	}
	return floats.Distance(a.data, b.data, 2), nil
}
