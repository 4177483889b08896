// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/born-ml/ndarray/internal/array"
	"github.com/born-ml/ndarray/internal/parallel"
)

// Type aliases for public API

// Array is an N-dimensional homogeneous numeric array.
type Array = array.Array

// Buffer is the flat, typed storage behind an Array.
type Buffer = array.Buffer

// Shape represents the per-axis sizes of an array.
// Example: Shape{2, 3, 4} is a 3D array with dimensions 2×3×4.
type Shape = array.Shape

// DataType is the element variant of a buffer or Number.
type DataType = array.DataType

// Data type constants.
const (
	Float64 DataType = array.Float64
	Int64   DataType = array.Int64
)

// Number is a scalar tagged with its element variant.
type Number = array.Number

// Value is the result of Array.Get: either *Array or Number.
type Value = array.Value

// LinspaceOption configures Linspace.
type LinspaceOption = array.LinspaceOption

// ParallelConfig controls the fan-out of elementwise arithmetic.
type ParallelConfig = parallel.Config

// Error types.
type (
	TypeMismatchError   = array.TypeMismatchError
	ShapeMismatchError  = array.ShapeMismatchError
	ReshapeError        = array.ReshapeError
	IndexError          = array.IndexError
	DivisionByZeroError = array.DivisionByZeroError
)

// Special IndexError.Axis values.
const (
	IndexCount  = array.IndexCount
	IndexBuffer = array.IndexBuffer
)

// Error sentinels.
var (
	ErrTypeMismatch   = array.ErrTypeMismatch
	ErrShapeMismatch  = array.ErrShapeMismatch
	ErrReshape        = array.ErrReshape
	ErrIndex          = array.ErrIndex
	ErrDivisionByZero = array.ErrDivisionByZero
)

// DefaultLinspaceNum is the sample count Linspace uses when none is given.
const DefaultLinspaceNum = array.DefaultLinspaceNum

// New builds an Array from a nested slice literal.
//
// Example:
//
//	a, err := array.New([]any{[]any{1.0, 2.0}, []any{3.0, 4.0}}) // shape [2 2]
func New(literal any) (*Array, error) {
	return array.New(literal)
}

// FromInts creates an int64 Array from flat data and a shape.
func FromInts(data []int64, shape Shape) (*Array, error) {
	return array.FromInts(data, shape)
}

// FromFloats creates a float64 Array from flat data and a shape.
func FromFloats(data []float64, shape Shape) (*Array, error) {
	return array.FromFloats(data, shape)
}

// FromBuffer creates an Array from a typed buffer and a shape.
func FromBuffer(buf Buffer, shape Shape) (*Array, error) {
	return array.FromBuffer(buf, shape)
}

// IntBuffer creates an int64 buffer holding a copy of data.
func IntBuffer(data []int64) Buffer {
	return array.IntBuffer(data)
}

// FloatBuffer creates a float64 buffer holding a copy of data.
func FloatBuffer(data []float64) Buffer {
	return array.FloatBuffer(data)
}

// Int creates an int64 Number.
func Int(v int64) Number {
	return array.Int(v)
}

// Float creates a float64 Number.
func Float(v float64) Number {
	return array.Float(v)
}

// Linspace returns evenly spaced float64 samples between start and end.
//
// Example:
//
//	x := array.Linspace(array.Float(0), array.Float(1), array.WithNum(5), array.WithEndpoint(true))
func Linspace(start, end Number, opts ...LinspaceOption) *Array {
	return array.Linspace(start, end, opts...)
}

// WithNum sets the number of Linspace samples.
func WithNum(n int) LinspaceOption {
	return array.WithNum(n)
}

// WithEndpoint controls whether Linspace includes end.
func WithEndpoint(endpoint bool) LinspaceOption {
	return array.WithEndpoint(endpoint)
}

// Arange returns the int64 integers in [0, stop).
func Arange(stop Number) *Array {
	return array.Arange(stop)
}

// ArangeRange returns every step-th int64 integer in [start, stop).
func ArangeRange(start, stop Number, step int) *Array {
	return array.ArangeRange(start, stop, step)
}

// SetParallelConfig replaces the fan-out settings used by arithmetic.
func SetParallelConfig(cfg ParallelConfig) {
	array.SetParallelConfig(cfg)
}
