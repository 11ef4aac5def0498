package tt

import (
	"fmt"
	"math"

	"github.com/born-ml/ttcore/internal/tensor"
)

// WeightMask returns the n-dimensional 0/1 tensor of shape [symbols]*n that
// is 1 exactly where the indices sum to weight.
//
// The chain is the automaton that tracks the running sum: every internal
// bond has weight+1 states, so its TT ranks are known without any
// decomposition.
func WeightMask(n, weight, symbols int) (*Tensor, error) {
	const op = "weight mask"
	if n < 1 {
		return nil, fmt.Errorf("%s: %w: need at least one dimension, got %d", op, ErrInvalidArgument, n)
	}
	if weight < 0 {
		return nil, fmt.Errorf("%s: %w: weight must be >= 0, got %d", op, ErrInvalidArgument, weight)
	}
	if symbols < 1 {
		return nil, fmt.Errorf("%s: %w: need at least one symbol, got %d", op, ErrInvalidArgument, symbols)
	}

	states := weight + 1
	cores := make([]*tensor.Array, n)
	for i := range cores {
		r0, r1 := states, states
		if i == 0 {
			r0 = 1
		}
		if i == n-1 {
			r1 = 1
		}
		core := tensor.Zeros(tensor.Shape{r0, symbols, r1})
		data := core.Data()
		for s := 0; s < r0; s++ {
			for j := 0; j < symbols; j++ {
				next := s + j
				switch {
				case i == n-1 && next == weight:
					data[(s*symbols+j)*r1] = 1
				case i < n-1 && next < states:
					data[(s*symbols+j)*r1+next] = 1
				}
			}
		}
		cores[i] = core
	}
	return New(cores, nil)
}

// AcceptedInputs lists, in lexicographic order, the multi-indices where a
// 0/1 tensor equals 1. Entries above 1/2 count as 1, so round-off from
// compression does not matter.
//
// The search walks the index tree from the first dimension and prunes a
// prefix as soon as none of its completions can be 1: with every core right
// of the prefix right-orthonormal, the squared norm of the prefix vector is
// the sum of squares over all completions.
func AcceptedInputs(t *Tensor) [][]int {
	c := t.decompressed()
	c.sweepRight(0)

	var out [][]int
	idx := make([]int, c.Dim())
	var walk func(k int, v []float64)
	walk = func(k int, v []float64) {
		if k == c.Dim() {
			if v[0] > 0.5 {
				out = append(out, append([]int(nil), idx...))
			}
			return
		}
		core := c.cores[k]
		r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
		data := core.Data()
		for x := 0; x < n; x++ {
			next := make([]float64, r1)
			for a := 0; a < r0; a++ {
				if v[a] == 0 {
					continue
				}
				row := data[(a*n+x)*r1 : (a*n+x+1)*r1]
				for b := range next {
					next[b] += v[a] * row[b]
				}
			}
			if k < c.Dim()-1 && squaredNorm(next) < 0.5 {
				continue
			}
			idx[k] = x
			walk(k+1, next)
		}
	}
	walk(0, []float64{1})
	return out
}

func squaredNorm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return sum
}

// Sum returns the sum of all entries of t, its inner product with the
// all-ones tensor.
func Sum(t *Tensor) float64 {
	cores := make([]*tensor.Array, t.Dim())
	for i, n := range t.shape {
		cores[i] = tensor.Full(tensor.Shape{1, n, 1}, 1)
	}
	ones, err := New(cores, nil)
	if err != nil {
		return math.NaN()
	}
	s, err := Dot(t, ones)
	if err != nil {
		return math.NaN()
	}
	return s
}
