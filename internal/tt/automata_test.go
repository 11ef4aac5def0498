package tt

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ttcore/internal/tensor"
)

// allIndices enumerates every multi-index of shape in row-major order.
func allIndices(shape tensor.Shape) [][]int {
	out := make([][]int, shape.NumElements())
	for i := range out {
		out[i] = shape.Unravel(i)
	}
	return out
}

func TestWeightMask(t *testing.T) {
	for n := 1; n < 5; n++ {
		for k := 0; k <= n; k++ {
			x, err := WeightMask(n, k, 2)
			require.NoError(t, err)

			idx := allIndices(x.Shape())
			got, err := x.Gather(idx)
			require.NoError(t, err)
			for i, ix := range idx {
				sum := 0
				for _, v := range ix {
					sum += v
				}
				want := 0.0
				if sum == k {
					want = 1
				}
				assert.InDelta(t, want, got[i], 1e-12, "n=%d k=%d index %v", n, k, ix)
			}
		}
	}
}

func TestWeightMask_ExactRanks(t *testing.T) {
	const n, weight, symbols = 6, 4, 3

	x, err := WeightMask(n, weight, symbols)
	require.NoError(t, err)
	gt := x.Clone()

	// A running sum s after i+1 symbols is a live state when it is both
	// reachable and still able to reach weight.
	want := make([]int, n-1)
	for i := range want {
		for s := 0; s <= weight; s++ {
			if s <= (i+1)*(symbols-1) && weight-s <= (n-i-1)*(symbols-1) {
				want[i]++
			}
		}
	}

	for _, alg := range []Algorithm{SVD, Eig} {
		y := gt.Clone()
		ranks, err := y.RoundTT(RoundConfig{Eps: 1e-10, Algorithm: alg})
		require.NoError(t, err)
		assert.Equal(t, want, ranks, alg.String())
		assert.Less(t, relErr(t, gt, y), 1e-7, alg.String())
	}
}

func TestWeightMask_Invalid(t *testing.T) {
	for _, args := range [][3]int{{0, 1, 2}, {3, -1, 2}, {3, 1, 0}} {
		_, err := WeightMask(args[0], args[1], args[2])
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidArgument), "%v: %v", args, err)
	}
}

func TestAcceptedInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	shape := tensor.Shape{1, 2, 3, 4}

	for iter := 0; iter < 10; iter++ {
		data := make([]float64, shape.NumElements())
		ones := 0
		for i := range data {
			if rng.Intn(2) == 1 {
				data[i] = 1
				ones++
			}
		}
		a, err := tensor.FromData(shape, data)
		require.NoError(t, err)
		x, err := FromFull(a, DefaultRoundConfig())
		require.NoError(t, err)

		idx := AcceptedInputs(x)
		assert.Len(t, idx, int(math.Round(Sum(x))))
		assert.Len(t, idx, ones)

		got, err := x.Gather(idx)
		require.NoError(t, err)
		for i, v := range got {
			assert.InDelta(t, 1.0, v, 1e-7, "index %v", idx[i])
		}
	}
}

func TestAcceptedInputs_WeightMask(t *testing.T) {
	x, err := WeightMask(4, 2, 3)
	require.NoError(t, err)
	// Attach a factor so the search has to see through it.
	require.NoError(t, x.SetFactor(1, identity(3)))

	idx := AcceptedInputs(x)
	assert.Len(t, idx, int(math.Round(Sum(x))))
	for _, ix := range idx {
		assert.Equal(t, 2, ix[0]+ix[1]+ix[2]+ix[3], "index %v", ix)
	}
	// Lexicographic order.
	assert.Equal(t, []int{0, 0, 0, 2}, idx[0])
	assert.Equal(t, []int{2, 0, 0, 0}, idx[len(idx)-1])
}

func TestSum(t *testing.T) {
	x := mustRandom(t, tensor.Shape{3, 4, 5}, RandomConfig{RanksTT: []int{2}, RanksTucker: []int{2, 0, 3}, Seed: 12})
	full, err := x.Full()
	require.NoError(t, err)

	want := 0.0
	for _, v := range full.Data() {
		want += v
	}
	assert.InDelta(t, want, Sum(x), 1e-10*(1+math.Abs(want)))

	one, err := WeightMask(1, 0, 1)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, Sum(one), 1e-15)
}
