// Package tt implements tensors in Tensor Train (TT) format with optional
// Tucker factors, together with the algorithms that canonicalize and
// compress them.
//
// A Tensor of N dimensions stores N three-way cores. Core i has shape
// (r[i-1], n[i], r[i]) with boundary ranks r[-1] = r[N-1] = 1. When
// dimension i carries a Tucker factor U (shape[i]×n[i], orthonormal
// columns), the middle axis of core i is a compressed mode and U maps it
// back to the original size; otherwise n[i] == shape[i].
//
// Operations:
//   - Orthogonalize, OrthogonalizeLeft, OrthogonalizeRight: value-preserving
//     QR/LQ sweeps.
//   - RoundTT: TT-rank truncation to a relative error or a rank cap, through
//     either an SVD or a Gram eigendecomposition backend.
//   - RoundTucker: per-dimension truncated SVD of the mode unfoldings,
//     creating or shrinking Tucker factors.
//
// Mutating operations work in place and are not safe for concurrent use on
// the same Tensor. A call that fails mid-way leaves the Tensor unspecified.
//
// Example:
//
//	t, _ := tt.Random(tensor.Shape{8, 8, 8, 8}, tt.RandomConfig{RanksTT: []int{6}, Seed: 1})
//	ranks, err := t.RoundTT(tt.RoundConfig{Eps: 1e-6, Algorithm: tt.SVD})
package tt
