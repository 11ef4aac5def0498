// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/tensor"
)

// Shape represents the dimensions of an array.
// Example: Shape{2, 3, 4} represents a 3D array with dimensions 2×3×4.
type Shape = tensor.Shape

// Array is a dense row-major float64 array.
type Array = tensor.Array

// NewArray allocates a zero-filled array.
func NewArray(shape Shape) (*Array, error) {
	return tensor.NewArray(shape)
}

// FromData wraps row-major data as an array without copying.
func FromData(shape Shape, data []float64) (*Array, error) {
	return tensor.FromData(shape, data)
}

// FromMatrix copies a gonum matrix into an array of the given shape.
func FromMatrix(m mat.Matrix, shape Shape) (*Array, error) {
	return tensor.FromMatrix(m, shape)
}

// Zeros creates an array filled with zeros. Panics on an invalid shape.
func Zeros(shape Shape) *Array {
	return tensor.Zeros(shape)
}

// Full creates an array filled with value.
func Full(shape Shape, value float64) *Array {
	return tensor.Full(shape, value)
}

// Randn creates an array with N(0, 1) values drawn from rng.
func Randn(shape Shape, rng *rand.Rand) *Array {
	return tensor.Randn(shape, rng)
}

// Rand creates an array with values uniform in [0, 1) drawn from rng.
func Rand(shape Shape, rng *rand.Rand) *Array {
	return tensor.Rand(shape, rng)
}

// Distance returns the Frobenius norm of a-b.
func Distance(a, b *Array) (float64, error) {
	return tensor.Distance(a, b)
}
