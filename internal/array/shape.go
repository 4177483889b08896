package array

import (
	"fmt"
	"math"
)

// Shape represents the per-axis sizes of an array, outermost axis first.
type Shape []int

// NumElements returns the product of all dimensions.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 1 // Scalar has 1 element
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// CheckedNumElements returns the product of all dimensions and false when
// that product does not fit in an int. Dimensions must be non-negative.
func (s Shape) CheckedNumElements() (int, bool) {
	n := 1
	for _, dim := range s {
		if dim == 0 {
			return 0, true
		}
	}
	for _, dim := range s {
		if n > math.MaxInt/dim {
			return 0, false
		}
		n *= dim
	}
	return n, true
}

// Validate checks that no dimension is negative.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim < 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be >= 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// stride[i] is the product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}
