package array

import "fmt"

// Array is an N-dimensional homogeneous numeric array.
// It owns its shape and buffer; every derived Array gets its own copy.
//
// Example:
//
//	a, _ := array.New([]any{[]any{1, 2}, []any{3, 4}})
//	a.Shape() // [2 2]
//	v, _ := a.At(1, 0) // 3
type Array struct {
	shape Shape
	buf   Buffer
}

// Value is the result of Get: either *Array or Number.
type Value interface {
	isValue()
}

func (*Array) isValue() {}

// FromBuffer creates an Array from flat storage and an explicit shape,
// skipping nested-literal inference.
func FromBuffer(buf Buffer, shape Shape) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if n, ok := shape.CheckedNumElements(); !ok || n != buf.Len() {
		return nil, &ShapeMismatchError{Op: "from buffer", Left: shape.Clone(), Right: Shape{buf.Len()}}
	}
	return &Array{shape: shape.Clone(), buf: buf.Clone()}, nil
}

// FromInts creates an Int64 Array from a flat slice.
func FromInts(data []int64, shape Shape) (*Array, error) {
	return FromBuffer(IntBuffer(data), shape)
}

// FromFloats creates a Float64 Array from a flat slice.
func FromFloats(data []float64, shape Shape) (*Array, error) {
	return FromBuffer(FloatBuffer(data), shape)
}

// newArray wraps an already-owned buffer without copying.
func newArray(buf Buffer, shape Shape) *Array {
	return &Array{shape: shape, buf: buf}
}

// Shape returns a copy of the array's shape.
func (a *Array) Shape() Shape {
	return a.shape.Clone()
}

// DType returns the element variant.
func (a *Array) DType() DataType {
	return a.buf.dtype
}

// NDim returns the number of axes.
func (a *Array) NDim() int {
	return len(a.shape)
}

// NumElements returns the number of elements held in the buffer.
func (a *Array) NumElements() int {
	return a.buf.Len()
}

// Len returns the size of the outermost axis, or 0 for a rank-0 array.
func (a *Array) Len() int {
	if len(a.shape) == 0 {
		return 0
	}
	return a.shape[0]
}

// Buffer returns a copy of the flat storage.
func (a *Array) Buffer() Buffer {
	return a.buf.Clone()
}

// Ints returns a copy of the elements of an Int64 array.
// Panics if the array is Float64.
func (a *Array) Ints() []int64 {
	return a.buf.Ints()
}

// Floats returns a copy of the elements of a Float64 array.
// Panics if the array is Int64.
func (a *Array) Floats() []float64 {
	return a.buf.Floats()
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return newArray(a.buf.Clone(), a.shape.Clone())
}

// String renders the flat buffer, e.g. "[1 2 3]".
func (a *Array) String() string {
	return a.buf.String()
}

// Repr renders the buffer together with the shape.
func (a *Array) Repr() string {
	return fmt.Sprintf("Array(%s, shape=%v, dtype=%s)", a.buf, []int(a.shape), a.buf.dtype)
}
