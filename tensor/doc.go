// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense float64 arrays used by ttcore.
//
// # Overview
//
// An Array is a row-major N-dimensional array. TT-cores are 3-D Arrays of
// shape (r0, n, r1) and dense reconstructions of decomposed tensors are
// returned as Arrays too. Matrix views share memory with the array, so an
// unfolding of a core can be handed to gonum without copying.
//
// # Basic Usage
//
//	import "github.com/born-ml/ttcore/tensor"
//
//	a := tensor.Zeros(tensor.Shape{2, 3, 4})
//	_ = a.Set(1.5, 0, 2, 3)
//	m, _ := a.Matrix(6, 4) // left unfolding, shares memory
package tensor
