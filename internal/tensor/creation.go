package tensor

import "math/rand"

// Zeros creates an array filled with zeros.
// Panics on an invalid shape.
func Zeros(shape Shape) *Array {
	a, err := NewArray(shape)
	if err != nil {
		panic(err)
	}
	return a
}

// Full creates an array filled with a specific value.
func Full(shape Shape, value float64) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = value
	}
	return a
}

// Randn creates an array with values drawn from N(0, 1) using rng.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	core := tensor.Randn(tensor.Shape{3, 4, 3}, rng)
func Randn(shape Shape, rng *rand.Rand) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = rng.NormFloat64()
	}
	return a
}

// Rand creates an array with values uniformly distributed in [0, 1).
func Rand(shape Shape, rng *rand.Rand) *Array {
	a := Zeros(shape)
	for i := range a.data {
		a.data[i] = rng.Float64()
	}
	return a
}
