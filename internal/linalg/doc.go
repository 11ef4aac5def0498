// Package linalg provides the dense linear-algebra kernels used by the
// tensor-train engine: thin QR and LQ factorizations for orthogonalization
// sweeps, and rank-revealing truncation through either a singular value
// decomposition or a symmetric eigendecomposition of a Gram matrix.
//
// All kernels are thin wrappers over gonum.org/v1/gonum/mat. Truncation
// backends implement the Truncator interface and share TruncationRank, so
// both select ranks under the same error budget.
package linalg
