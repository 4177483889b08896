package array

import (
	"errors"
	"fmt"
)

// Error categories. Every structured error below unwraps to one of these.
var (
	ErrTypeMismatch   = errors.New("type mismatch")
	ErrShapeMismatch  = errors.New("shape mismatch")
	ErrReshape        = errors.New("cannot reshape")
	ErrIndex          = errors.New("index error")
	ErrDivisionByZero = errors.New("integer division by zero")
)

// TypeMismatchError reports a scalar or buffer whose variant does not match.
type TypeMismatchError struct {
	Op     string // Operation that failed (e.g. "ingest", "add")
	Reason string // Set when the value has the wrong structure rather than the wrong variant
	Value  any    // Offending value, if any
	Want   DataType
	Got    DataType
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s, got %v (%T)", e.Op, e.Reason, e.Value, e.Value)
	}
	if e.Value != nil {
		return fmt.Sprintf("%s: unsupported value %v (%T) for %s array", e.Op, e.Value, e.Value, e.Want)
	}
	return fmt.Sprintf("%s: arrays don't have the same type: %s vs %s", e.Op, e.Want, e.Got)
}

// Unwrap returns ErrTypeMismatch.
func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// ShapeMismatchError reports two shapes that were required to be equal.
type ShapeMismatchError struct {
	Op    string
	Left  Shape
	Right Shape
}

// Error implements the error interface.
func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: arrays don't have the same shape: %v vs %v", e.Op, e.Left, e.Right)
}

// Unwrap returns ErrShapeMismatch.
func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

// ReshapeError reports a shape that fails the chain-divisibility check.
type ReshapeError struct {
	Shape Shape // Requested shape
	Len   int   // Element count of the source array
}

// Error implements the error interface.
func (e *ReshapeError) Error() string {
	return fmt.Sprintf("cannot reshape array of %d elements into shape %v", e.Len, e.Shape)
}

// Unwrap returns ErrReshape.
func (e *ReshapeError) Unwrap() error { return ErrReshape }

// Special IndexError axes.
const (
	IndexCount  = -1 // The number of indices is the problem
	IndexBuffer = -2 // The indexed position lies beyond the buffer
)

// IndexError reports too many indices, an index outside its axis, or a
// position the buffer does not hold.
type IndexError struct {
	Indices []int
	Rank    int
	Axis    int // Offending axis, IndexCount or IndexBuffer
	Dim     int
	Len     int // Buffer length, set with IndexBuffer
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	switch e.Axis {
	case IndexCount:
		return fmt.Sprintf("%d indices given for array of rank %d", len(e.Indices), e.Rank)
	case IndexBuffer:
		return fmt.Sprintf("indices %v reach past the %d elements held by the buffer", e.Indices, e.Len)
	}
	return fmt.Sprintf("index %d out of bounds for axis %d (size %d)", e.Indices[e.Axis], e.Axis, e.Dim)
}

// Unwrap returns ErrIndex.
func (e *IndexError) Unwrap() error { return ErrIndex }

// DivisionByZeroError reports the flat position of a zero integer divisor.
type DivisionByZeroError struct {
	Position int
}

// Error implements the error interface.
func (e *DivisionByZeroError) Error() string {
	return fmt.Sprintf("integer division by zero at position %d", e.Position)
}

// Unwrap returns ErrDivisionByZero.
func (e *DivisionByZeroError) Unwrap() error { return ErrDivisionByZero }
