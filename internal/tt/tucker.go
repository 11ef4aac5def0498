package tt

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/ttcore/internal/linalg"
)

// TuckerConfig controls Tucker rounding.
type TuckerConfig struct {
	Eps       float64      // Target relative error over all selected dimensions.
	Rank      int          // Cap on every Tucker rank; 0 means no cap.
	Dims      []int        // Dimensions to compress; nil selects all.
	Algorithm Algorithm    // Truncation backend.
	Logger    *slog.Logger // Receives one Debug record per dimension; nil discards.
}

// RoundTucker compresses the Tucker factor of each selected dimension,
// creating one where the dimension has none, and returns the Tucker ranks
// of all dimensions.
//
// Each dimension gets an independent budget eps·‖T‖/sqrt(len(Dims)). The
// chain is canonicalized around the dimension being truncated, so the mode
// unfolding of that single core carries the singular values of the whole
// tensor's unfolding.
func (t *Tensor) RoundTucker(cfg TuckerConfig) ([]int, error) {
	const op = "round tucker"
	rc := RoundConfig{Eps: cfg.Eps, Rank: cfg.Rank}
	if err := rc.validate(op); err != nil {
		return nil, err
	}
	tr, err := cfg.Algorithm.truncator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	dims, err := t.selectDims(op, cfg.Dims)
	if err != nil {
		return nil, err
	}
	if cfg.Rank > 0 {
		for _, mu := range dims {
			if cfg.Rank > t.shape[mu] {
				return nil, shapeErrorf(op, "Tucker rank %d exceeds mode size %d of dimension %d", cfg.Rank, t.shape[mu], mu)
			}
		}
	}
	if err := t.checkBonds(op); err != nil {
		return nil, err
	}

	center := dims[0]
	t.sweepLeft(center)
	t.sweepRight(center)
	norm := t.cores[center].Norm()
	delta := cfg.Eps / math.Sqrt(float64(len(dims))) * norm
	log := logger(cfg.Logger)

	for _, mu := range dims {
		t.moveCenter(center, mu)
		center = mu

		res, err := t.truncateMode(mu, tr, delta, cfg.Rank)
		if err != nil {
			return nil, fmt.Errorf("%s: dimension %d: %w", op, mu, err)
		}
		log.Debug("truncated mode",
			"dim", mu,
			"rank", res.Rank,
			"size", t.shape[mu],
			"discarded", res.Discarded,
			"budget", delta,
			"algorithm", tr.Name())
	}
	return t.RanksTucker(), nil
}

func (t *Tensor) selectDims(op string, dims []int) ([]int, error) {
	if dims == nil {
		all := make([]int, t.Dim())
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	if len(dims) == 0 {
		return nil, fmt.Errorf("%s: %w: empty dimension list", op, ErrInvalidArgument)
	}
	seen := make(map[int]bool, len(dims))
	for _, mu := range dims {
		if mu < 0 || mu >= t.Dim() {
			return nil, &DimensionError{Op: op, Index: mu, Len: t.Dim()}
		}
		if seen[mu] {
			return nil, fmt.Errorf("%s: %w: dimension %d listed twice", op, ErrInvalidArgument, mu)
		}
		seen[mu] = true
	}
	return append([]int(nil), dims...), nil
}

// truncateMode truncates the mode unfolding (n, r0·r1) of core mu. The kept
// left vectors extend the Tucker factor; the remainder becomes the new
// core with middle axis of the truncated rank.
func (t *Tensor) truncateMode(mu int, tr linalg.Truncator, delta float64, rmax int) (*linalg.Truncation, error) {
	core := t.cores[mu]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)
	src := core.Data()

	unfolded := mat.NewDense(n, r0*r1, nil)
	for a := 0; a < r0; a++ {
		for j := 0; j < n; j++ {
			row := unfolded.RawRowView(j)
			copy(row[a*r1:(a+1)*r1], src[(a*n+j)*r1:(a*n+j+1)*r1])
		}
	}

	res, err := tr.Truncate(unfolded, delta, rmax)
	if err != nil {
		return nil, err
	}

	k := res.Rank
	folded := make([]float64, r0*k*r1)
	for a := 0; a < r0; a++ {
		for j := 0; j < k; j++ {
			row := res.Right.RawRowView(j)
			copy(folded[(a*k+j)*r1:(a*k+j+1)*r1], row[a*r1:(a+1)*r1])
		}
	}
	newCore, err := coreFromData(r0, k, r1, folded)
	if err != nil {
		return nil, err
	}

	if u := t.factors[mu]; u != nil {
		t.factors[mu] = linalg.Mul(u, res.Left)
	} else {
		t.factors[mu] = res.Left
	}
	t.cores[mu] = newCore
	return res, nil
}
