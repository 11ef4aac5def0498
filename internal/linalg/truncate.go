package linalg

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// Truncation is the result of a rank-revealing truncation m ≈ Left·Right.
type Truncation struct {
	Left      *mat.Dense // rows×Rank, orthonormal columns
	Right     *mat.Dense // Rank×cols
	Values    []float64  // all singular values, descending
	Rank      int        // number of kept values
	Discarded float64    // Frobenius norm of the discarded tail
}

// Truncator factors a matrix into an orthonormal basis and a remainder,
// keeping the fewest directions whose discarded energy stays within delta.
// A positive rmax additionally caps the kept rank.
type Truncator interface {
	Truncate(m *mat.Dense, delta float64, rmax int) (*Truncation, error)
	Name() string
}

// TruncationRank returns the smallest k ≥ 1 such that
// Σ_{i≥k} s[i]² ≤ delta², capped at rmax when rmax > 0.
// s must be sorted in descending order.
func TruncationRank(s []float64, delta float64, rmax int) int {
	budget := delta * delta
	tail := 0.0
	k := len(s)
	for k > 0 {
		next := tail + s[k-1]*s[k-1]
		if next > budget {
			break
		}
		tail = next
		k--
	}
	k = max(k, 1)
	if rmax > 0 && k > rmax {
		k = rmax
	}
	return min(k, len(s))
}

// roundoff scales the noise floor; 0x1p-52 is the float64 unit round-off.
const roundoff = 8 * 0x1p-52

// noiseFloor returns the magnitude below which a spectral value of a
// rows×cols matrix with leading value top is indistinguishable from
// round-off.
func noiseFloor(top float64, rows, cols int) float64 {
	return top * float64(rows+cols) * roundoff
}

// tailNorm returns sqrt(Σ_{i≥k} s[i]²).
func tailNorm(s []float64, k int) float64 {
	sum := 0.0
	for _, v := range s[k:] {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// descendingOrder returns the permutation sorting values by descending
// magnitude. Ties keep their original relative order.
func descendingOrder(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		va, vb := math.Abs(values[a]), math.Abs(values[b])
		switch {
		case va > vb:
			return -1
		case va < vb:
			return 1
		default:
			return 0
		}
	})
	return order
}

// pickColumns copies the columns of m listed in cols into a new matrix.
func pickColumns(m *mat.Dense, cols []int) *mat.Dense {
	rows, _ := m.Dims()
	out := mat.NewDense(rows, len(cols), nil)
	for j, c := range cols {
		for i := 0; i < rows; i++ {
			out.Set(i, j, m.At(i, c))
		}
	}
	return out
}

// finite reports whether every element of m is finite.
func finite(m *mat.Dense) bool {
	rows, cols := m.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}
