package tt

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/linalg"
	"github.com/born-ml/ttcore/internal/tensor"
)

// RandomConfig controls Random.
type RandomConfig struct {
	// RanksTT holds the N-1 bond ranks. A single value applies to every bond.
	RanksTT []int
	// RanksTucker holds one Tucker rank per dimension (or a single value for
	// all). Zero leaves the dimension without a factor.
	RanksTucker []int
	// Seed seeds the generator; Random is deterministic for a given seed.
	Seed int64
}

// Random builds a tensor with N(0, 1) cores and, where requested, random
// Tucker factors with orthonormal columns.
func Random(shape tensor.Shape, cfg RandomConfig) (*Tensor, error) {
	const op = "random"
	if len(shape) == 0 {
		return nil, shapeErrorf(op, "shape must have at least one dimension")
	}
	if err := shape.Validate(); err != nil {
		return nil, shapeErrorf(op, "%v", err)
	}
	n := len(shape)

	ranks, err := broadcastRanks(op, "tt", cfg.RanksTT, n-1, 1)
	if err != nil {
		return nil, err
	}
	tucker, err := broadcastRanks(op, "tucker", cfg.RanksTucker, n, 0)
	if err != nil {
		return nil, err
	}
	for i, r := range ranks {
		if r < 1 {
			return nil, shapeErrorf(op, "bond %d has rank %d, want >= 1", i, r)
		}
	}
	for i, r := range tucker {
		if r < 0 {
			return nil, shapeErrorf(op, "dimension %d has Tucker rank %d", i, r)
		}
		if r > shape[i] {
			return nil, shapeErrorf(op, "Tucker rank %d exceeds mode size %d of dimension %d", r, shape[i], i)
		}
	}

	//nolint:gosec // G404: reproducible test data, not security sensitive
	rng := rand.New(rand.NewSource(cfg.Seed))
	cores := make([]*tensor.Array, n)
	factors := make([]*mat.Dense, n)
	for i := 0; i < n; i++ {
		left, right := 1, 1
		if i > 0 {
			left = ranks[i-1]
		}
		if i < n-1 {
			right = ranks[i]
		}
		mode := shape[i]
		if tucker[i] > 0 {
			mode = tucker[i]
			factors[i] = randomOrthonormal(rng, shape[i], mode)
		}
		cores[i] = tensor.Randn(tensor.Shape{left, mode, right}, rng)
	}
	return New(cores, factors)
}

// broadcastRanks expands a single rank to want entries. Empty input yields
// fill everywhere.
func broadcastRanks(op, name string, ranks []int, want, fill int) ([]int, error) {
	out := make([]int, want)
	switch len(ranks) {
	case 0:
		for i := range out {
			out[i] = fill
		}
	case 1:
		for i := range out {
			out[i] = ranks[0]
		}
	case want:
		copy(out, ranks)
	default:
		return nil, shapeErrorf(op, "got %d %s ranks, want 1 or %d", len(ranks), name, want)
	}
	return out, nil
}

func randomOrthonormal(rng *rand.Rand, rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	q, _ := linalg.QR(mat.NewDense(rows, cols, data))
	return q
}

// FromFull decomposes a dense array with the TT-SVD algorithm: successive
// truncated factorizations of the unfoldings, each with budget
// eps·‖a‖/sqrt(N-1). cfg.Rank caps every bond.
func FromFull(a *tensor.Array, cfg RoundConfig) (*Tensor, error) {
	const op = "from full"
	if err := cfg.validate(op); err != nil {
		return nil, err
	}
	tr, err := cfg.Algorithm.truncator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	shape := a.Shape()
	n := len(shape)
	if n == 0 {
		return nil, shapeErrorf(op, "array must have at least one dimension")
	}
	if n == 1 {
		core, err := coreFromData(1, shape[0], 1, append([]float64(nil), a.Data()...))
		if err != nil {
			return nil, err
		}
		return New([]*tensor.Array{core}, nil)
	}

	delta := cfg.Eps / math.Sqrt(float64(n-1)) * a.Norm()
	log := logger(cfg.Logger)
	cores := make([]*tensor.Array, n)

	rest := mat.NewDense(1, a.NumElements(), append([]float64(nil), a.Data()...))
	left := 1
	for mu := 0; mu < n-1; mu++ {
		cols := rest.RawMatrix().Cols / shape[mu]
		m := mat.NewDense(left*shape[mu], cols, rest.RawMatrix().Data)
		res, err := tr.Truncate(m, delta, cfg.Rank)
		if err != nil {
			return nil, fmt.Errorf("%s: bond %d: %w", op, mu, err)
		}
		log.Debug("truncated bond", "bond", mu, "rank", res.Rank, "discarded", res.Discarded)

		cores[mu] = mustArray(res.Left, tensor.Shape{left, shape[mu], res.Rank})
		rest = mat.DenseCopyOf(res.Right)
		left = res.Rank
	}
	cores[n-1] = mustArray(rest, tensor.Shape{left, shape[n-1], 1})
	return New(cores, nil)
}

func coreFromData(r0, n, r1 int, data []float64) (*tensor.Array, error) {
	a, err := tensor.FromData(tensor.Shape{r0, n, r1}, data)
	if err != nil {
		return nil, shapeErrorf("core", "%v", err)
	}
	return a, nil
}
