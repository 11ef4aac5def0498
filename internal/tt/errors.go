package tt

import (
	"errors"
	"fmt"

	"github.com/born-ml/ttcore/internal/linalg"
)

// Common errors.
var (
	ErrDimension       = errors.New("tt: dimension out of range")
	ErrShape           = errors.New("tt: inconsistent shape")
	ErrInvalidArgument = errors.New("tt: invalid argument")
	ErrConvergence     = linalg.ErrConvergence
)

// ConvergenceError reports a QR/SVD/eigen routine that failed on its input.
type ConvergenceError = linalg.ConvergenceError

// DimensionError reports a dimension or index outside its valid range.
type DimensionError struct {
	Op    string // Operation that rejected the value
	Index int    // Offending value
	Len   int    // Valid range is [0, Len)
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%s: index %d out of range [0, %d)", e.Op, e.Index, e.Len)
}

// Unwrap returns ErrDimension.
func (e *DimensionError) Unwrap() error {
	return ErrDimension
}

// ShapeError reports cores, factors or arguments whose sizes disagree.
type ShapeError struct {
	Op      string
	Details string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Details)
}

// Unwrap returns ErrShape.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

func shapeErrorf(op, format string, args ...any) error {
	return &ShapeError{Op: op, Details: fmt.Sprintf(format, args...)}
}
