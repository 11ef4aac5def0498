package tt

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/born-ml/ttcore/internal/linalg"
	"github.com/born-ml/ttcore/internal/tensor"
)

// Algorithm selects the truncation backend used by the rounders.
type Algorithm int

// Supported truncation backends.
const (
	// SVD truncates each unfolding through its singular value decomposition.
	SVD Algorithm = iota
	// Eig truncates through the eigendecomposition of the unfolding's Gram
	// matrix: faster, less accurate on ill-conditioned inputs.
	Eig
)

// String returns "svd" or "eig".
func (a Algorithm) String() string {
	switch a {
	case SVD:
		return "svd"
	case Eig:
		return "eig"
	default:
		return "unknown"
	}
}

// ParseAlgorithm converts "svd" or "eig" to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(s) {
	case "svd":
		return SVD, nil
	case "eig", "eigen":
		return Eig, nil
	default:
		return 0, fmt.Errorf("%w: unknown algorithm %q (want svd or eig)", ErrInvalidArgument, s)
	}
}

func (a Algorithm) truncator() (linalg.Truncator, error) {
	switch a {
	case SVD:
		return linalg.SVD{}, nil
	case Eig:
		return linalg.Eig{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %d", ErrInvalidArgument, int(a))
	}
}

// RoundConfig controls TT rounding.
type RoundConfig struct {
	Eps       float64      // Target relative error; 0 keeps everything above round-off.
	Rank      int          // Cap on every bond rank; 0 means no cap.
	Algorithm Algorithm    // Truncation backend.
	Logger    *slog.Logger // Receives one Debug record per bond; nil discards.
}

// DefaultRoundConfig returns a near-lossless SVD configuration.
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Eps:       1e-14,
		Algorithm: SVD,
	}
}

func (cfg RoundConfig) validate(op string) error {
	if cfg.Eps < 0 || math.IsNaN(cfg.Eps) || math.IsInf(cfg.Eps, 0) {
		return fmt.Errorf("%s: %w: eps must be finite and >= 0, got %v", op, ErrInvalidArgument, cfg.Eps)
	}
	if cfg.Rank < 0 {
		return fmt.Errorf("%s: %w: rank must be >= 0, got %d", op, ErrInvalidArgument, cfg.Rank)
	}
	return nil
}

func logger(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}

// RoundTT compresses the TT bonds in place and returns the achieved bond
// ranks.
//
// The chain is right-orthogonalized, then swept left to right: at each bond
// the left unfolding of the current core is truncated with the per-bond
// budget eps·‖T‖/sqrt(N-1), the orthonormal part stays and the remainder is
// folded into the next core. With the SVD backend the relative error of the
// result never exceeds eps (up to round-off). A rank cap larger than the
// data supports leaves the bond at its natural rank.
func (t *Tensor) RoundTT(cfg RoundConfig) ([]int, error) {
	const op = "round tt"
	if err := cfg.validate(op); err != nil {
		return nil, err
	}
	tr, err := cfg.Algorithm.truncator()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := t.checkBonds(op); err != nil {
		return nil, err
	}

	n := t.Dim()
	if n == 1 {
		return t.RanksTT(), nil
	}

	t.sweepRight(0)
	norm := t.cores[0].Norm()
	delta := cfg.Eps / math.Sqrt(float64(n-1)) * norm
	log := logger(cfg.Logger)

	for mu := 0; mu < n-1; mu++ {
		res, err := t.truncateBond(mu, tr, delta, cfg.Rank)
		if err != nil {
			return nil, fmt.Errorf("%s: bond %d: %w", op, mu, err)
		}
		log.Debug("truncated bond",
			"bond", mu,
			"rank", res.Rank,
			"natural_rank", len(res.Values),
			"discarded", res.Discarded,
			"budget", delta,
			"algorithm", tr.Name())
	}
	return t.RanksTT(), nil
}

// truncateBond truncates the left unfolding of core mu and folds the
// remainder into core mu+1.
func (t *Tensor) truncateBond(mu int, tr linalg.Truncator, delta float64, rmax int) (*linalg.Truncation, error) {
	core := t.cores[mu]
	r0, n, r1 := core.Dim(0), core.Dim(1), core.Dim(2)

	res, err := tr.Truncate(mustMatrix(core, r0*n, r1), delta, rmax)
	if err != nil {
		return nil, err
	}
	t.cores[mu] = mustArray(res.Left, tensor.Shape{r0, n, res.Rank})
	t.absorbLeft(mu+1, res.Right)
	return res, nil
}

// Round compresses both the Tucker factors and the TT bonds, giving each
// step half of eps so the combined relative error stays within eps.
// cfg.Rank caps the TT ranks only.
func (t *Tensor) Round(cfg RoundConfig) error {
	if err := cfg.validate("round"); err != nil {
		return err
	}
	if _, err := t.RoundTucker(TuckerConfig{
		Eps:       cfg.Eps / 2,
		Algorithm: cfg.Algorithm,
		Logger:    cfg.Logger,
	}); err != nil {
		return err
	}
	half := cfg
	half.Eps = cfg.Eps / 2
	_, err := t.RoundTT(half)
	return err
}
