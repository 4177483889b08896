// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package array provides a minimal N-dimensional numeric array.
//
// # Overview
//
// An Array owns a shape and a flat row-major buffer that is either all
// int64 or all float64. This package provides:
//   - Construction from nested Go slices with shape and type inference
//   - Construction from a flat slice plus an explicit shape
//   - Reshape, full and partial indexing
//   - Elementwise Add, Sub, Mul, Div and Neg
//   - Linspace and Arange generators
//   - Saving and loading in the SafeTensors layout
//
// # Basic Usage
//
//	import "github.com/born-ml/ndarray/array"
//
//	func main() {
//	    x, _ := array.New([][]int{{1, 2}, {3, 4}})
//	    y, _ := array.New([][]int{{2, 1}, {3, -4}})
//
//	    z, _ := x.Sub(y)    // [-1 1 0 8], shape [2 2]
//	    v, _ := z.At(1, 1)  // 8
//	    row, _ := z.Get(0)  // *Array [-1 1]
//	}
//
// # Element Types
//
// The first leaf of a nested literal fixes the element type. Mixing ints
// and floats is a TypeMismatch error, and arithmetic between an int64 and
// a float64 array is also a TypeMismatch. Equal never fails: arrays of
// different element types simply compare unequal.
//
// # Shapes
//
// There is no broadcasting. Arithmetic requires identical shapes and
// reports ShapeMismatch otherwise.
//
// Reshape divides the element count by each requested dimension in turn
// and only requires every division to be exact. It does not require the
// new shape to cover every element:
//
//	a := array.Arange(array.Int(6))
//	b, err := a.Reshape(3) // succeeds; b's shape is [3]
//
// # Indexing
//
// Get with as many indices as axes returns a Number; with fewer it returns
// a copy of the trailing sub-array. Negative indices count from the end.
//
// # Errors
//
// Failures are typed: TypeMismatchError, ShapeMismatchError, ReshapeError,
// IndexError and DivisionByZeroError. Each unwraps to the matching Err*
// sentinel for use with errors.Is.
package array
