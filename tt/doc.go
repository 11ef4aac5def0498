// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tt provides Tensor Train (TT) and Tucker decompositions of
// N-dimensional arrays.
//
// A Tensor is a chain of 3-D TT-cores with an optional orthonormal Tucker
// factor per dimension. The package orthogonalizes chains around any core
// and compresses them: TT rounding truncates the bonds between cores,
// Tucker rounding truncates the factors. Both take a relative error target
// eps and an optional rank cap.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/ttcore/tensor"
//	    "github.com/born-ml/ttcore/tt"
//	)
//
//	func main() {
//	    x, _ := tt.Random(tensor.Shape{32, 32, 32, 32}, tt.RandomConfig{RanksTT: []int{8}, Seed: 1})
//	    y, _ := tt.Add(x, x)
//
//	    // Back to rank 8, error within 1e-8.
//	    ranks, err := y.RoundTT(tt.RoundConfig{Eps: 1e-8})
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(ranks)
//
//	    _ = tt.Save("y.safetensors", y, nil)
//	}
//
// # Errors
//
// Operations report DimensionError for indices out of range and ShapeError
// for inconsistent cores or arguments. Match them with errors.Is against
// ErrDimension and ErrShape, or errors.As for the details.
package tt
