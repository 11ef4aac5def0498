// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"math/rand"
	"testing"

	"github.com/born-ml/ttcore/tensor"
)

// TestArrayAPI verifies the Array alias exposes the expected API.
func TestArrayAPI(t *testing.T) {
	a, err := tensor.NewArray(tensor.Shape{2, 3})
	if err != nil {
		t.Fatalf("NewArray failed: %v", err)
	}
	if !a.Shape().Equal(tensor.Shape{2, 3}) {
		t.Errorf("Shape() = %v, want [2 3]", a.Shape())
	}
	if err := a.Set(4, 1, 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := a.Norm(); got != 4 {
		t.Errorf("Norm() = %v, want 4", got)
	}

	m, err := a.Matrix(3, 2)
	if err != nil {
		t.Fatalf("Matrix failed: %v", err)
	}
	if got := m.At(2, 1); got != 4 {
		t.Errorf("Matrix view At(2, 1) = %v, want 4", got)
	}
}

// TestCreation verifies the constructors.
func TestCreation(t *testing.T) {
	if got := tensor.Full(tensor.Shape{2, 2}, 3).Norm(); got != 6 {
		t.Errorf("Full norm = %v, want 6", got)
	}

	rng := rand.New(rand.NewSource(1))
	a := tensor.Randn(tensor.Shape{4, 4}, rng)
	b, err := tensor.FromData(tensor.Shape{16}, a.Data())
	if err != nil {
		t.Fatalf("FromData failed: %v", err)
	}
	if d, err := tensor.Distance(a, tensor.Zeros(tensor.Shape{4, 4})); err != nil || d != b.Norm() {
		t.Errorf("Distance = %v, %v; want %v", d, err, b.Norm())
	}

	if _, err := tensor.FromData(tensor.Shape{3}, []float64{1}); err == nil {
		t.Error("FromData should reject a length mismatch")
	}
}
