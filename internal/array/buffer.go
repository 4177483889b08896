package array

import "fmt"

// Buffer is the flat, homogeneous element storage of an Array.
// Exactly one of ints or floats is in use, selected by dtype.
// The zero value is an empty Float64 buffer.
type Buffer struct {
	dtype  DataType
	ints   []int64
	floats []float64
}

// IntBuffer creates an Int64 buffer holding a copy of data.
func IntBuffer(data []int64) Buffer {
	return Buffer{dtype: Int64, ints: append([]int64{}, data...)}
}

// FloatBuffer creates a Float64 buffer holding a copy of data.
func FloatBuffer(data []float64) Buffer {
	return Buffer{dtype: Float64, floats: append([]float64{}, data...)}
}

// DType returns the buffer's element variant.
func (b Buffer) DType() DataType {
	return b.dtype
}

// Len returns the number of elements.
func (b Buffer) Len() int {
	if b.dtype == Int64 {
		return len(b.ints)
	}
	return len(b.floats)
}

// At returns element i tagged with the buffer's variant.
// Panics if i is out of range.
func (b Buffer) At(i int) Number {
	if b.dtype == Int64 {
		return Int(b.ints[i])
	}
	return Float(b.floats[i])
}

// Slice returns a copy of elements [start, end).
func (b Buffer) Slice(start, end int) Buffer {
	if b.dtype == Int64 {
		return IntBuffer(b.ints[start:end])
	}
	return FloatBuffer(b.floats[start:end])
}

// Clone returns a deep copy of the buffer.
func (b Buffer) Clone() Buffer {
	return b.Slice(0, b.Len())
}

// Ints returns a copy of the Int64 elements.
// Panics if the buffer is not Int64.
func (b Buffer) Ints() []int64 {
	if b.dtype != Int64 {
		panic(fmt.Sprintf("buffer dtype is %s, not int64", b.dtype))
	}
	return append([]int64{}, b.ints...)
}

// Floats returns a copy of the Float64 elements.
// Panics if the buffer is not Float64.
func (b Buffer) Floats() []float64 {
	if b.dtype != Float64 {
		panic(fmt.Sprintf("buffer dtype is %s, not float64", b.dtype))
	}
	return append([]float64{}, b.floats...)
}

// equal reports whether both buffers share a variant and hold equal elements.
func (b Buffer) equal(other Buffer) bool {
	if b.dtype != other.dtype || b.Len() != other.Len() {
		return false
	}
	if b.dtype == Int64 {
		for i, v := range b.ints {
			if other.ints[i] != v {
				return false
			}
		}
		return true
	}
	for i, v := range b.floats {
		if other.floats[i] != v {
			return false
		}
	}
	return true
}

func (b Buffer) String() string {
	if b.dtype == Int64 {
		return fmt.Sprint(b.ints)
	}
	return fmt.Sprint(b.floats)
}
