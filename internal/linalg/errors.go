package linalg

import (
	"errors"
	"fmt"
)

// ErrConvergence is the sentinel matched by ConvergenceError.
var ErrConvergence = errors.New("linalg: factorization did not converge")

// ConvergenceError reports a factorization that failed on its input.
type ConvergenceError struct {
	Op   string // Factorization that failed ("svd", "eigen")
	Rows int
	Cols int
}

// Error implements the error interface.
func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s: factorization of %dx%d matrix did not converge", e.Op, e.Rows, e.Cols)
}

// Unwrap returns ErrConvergence.
func (e *ConvergenceError) Unwrap() error {
	return ErrConvergence
}
