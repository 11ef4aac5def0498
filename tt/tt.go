// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tt

import (
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/serialization"
	"github.com/born-ml/ttcore/internal/tensor"
	"github.com/born-ml/ttcore/internal/tt"
)

// Tensor is an N-dimensional array held as a TT chain with optional Tucker
// factors. Orthogonalization and rounding are methods on it.
type Tensor = tt.Tensor

// RoundConfig controls TT rounding.
type RoundConfig = tt.RoundConfig

// TuckerConfig controls Tucker rounding.
type TuckerConfig = tt.TuckerConfig

// RandomConfig controls Random.
type RandomConfig = tt.RandomConfig

// Algorithm selects the truncation backend.
type Algorithm = tt.Algorithm

// Truncation backends.
const (
	SVD = tt.SVD
	Eig = tt.Eig
)

// Error types.
type (
	DimensionError   = tt.DimensionError
	ShapeError       = tt.ShapeError
	ConvergenceError = tt.ConvergenceError
)

// Sentinel errors.
var (
	ErrDimension       = tt.ErrDimension
	ErrShape           = tt.ErrShape
	ErrInvalidArgument = tt.ErrInvalidArgument
	ErrConvergence     = tt.ErrConvergence
)

// New builds a tensor from its cores (shape (r[i-1], n[i], r[i]), boundary
// ranks 1) and optional Tucker factors (nil, or one entry per core where
// nil means no factor). The tensor takes ownership of its arguments.
func New(cores []*tensor.Array, factors []*mat.Dense) (*Tensor, error) {
	return tt.New(cores, factors)
}

// Random builds a tensor with Gaussian cores and orthonormal factors.
func Random(shape tensor.Shape, cfg RandomConfig) (*Tensor, error) {
	return tt.Random(shape, cfg)
}

// FromFull decomposes a dense array with TT-SVD.
func FromFull(a *tensor.Array, cfg RoundConfig) (*Tensor, error) {
	return tt.FromFull(a, cfg)
}

// DefaultRoundConfig returns a near-lossless SVD configuration.
func DefaultRoundConfig() RoundConfig {
	return tt.DefaultRoundConfig()
}

// ParseAlgorithm converts "svd" or "eig" to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	return tt.ParseAlgorithm(s)
}

// Add returns a+b.
func Add(a, b *Tensor) (*Tensor, error) {
	return tt.Add(a, b)
}

// Sub returns a-b.
func Sub(a, b *Tensor) (*Tensor, error) {
	return tt.Sub(a, b)
}

// Scale returns alpha·t.
func Scale(t *Tensor, alpha float64) *Tensor {
	return tt.Scale(t, alpha)
}

// Dot returns the Frobenius inner product.
func Dot(a, b *Tensor) (float64, error) {
	return tt.Dot(a, b)
}

// Norm returns the Frobenius norm.
func Norm(t *Tensor) float64 {
	return tt.Norm(t)
}

// Distance returns ‖a-b‖.
func Distance(a, b *Tensor) (float64, error) {
	return tt.Distance(a, b)
}

// RelativeError returns ‖gt-approx‖/‖gt‖.
func RelativeError(gt, approx *Tensor) (float64, error) {
	return tt.RelativeError(gt, approx)
}

// WeightMask returns the 0/1 tensor of shape [symbols]*n that is 1 where the
// indices sum to weight.
func WeightMask(n, weight, symbols int) (*Tensor, error) {
	return tt.WeightMask(n, weight, symbols)
}

// AcceptedInputs lists the multi-indices where a 0/1 tensor equals 1.
func AcceptedInputs(t *Tensor) [][]int {
	return tt.AcceptedInputs(t)
}

// Sum returns the sum of all entries.
func Sum(t *Tensor) float64 {
	return tt.Sum(t)
}

// Save writes t to a SafeTensors file.
func Save(path string, t *Tensor, metadata map[string]string) error {
	return serialization.Save(path, t, metadata)
}

// Load reads a tensor written by Save and returns it with its metadata.
func Load(path string) (*Tensor, map[string]string, error) {
	return serialization.Load(path)
}
