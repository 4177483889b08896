package array

import "strconv"

// Number is a scalar tagged with its element variant.
// It is returned by full indexing and accepted as a generator bound.
type Number struct {
	kind DataType
	i    int64
	f    float64
}

// Int creates an Int64 Number.
func Int(v int64) Number {
	return Number{kind: Int64, i: v}
}

// Float creates a Float64 Number.
func Float(v float64) Number {
	return Number{kind: Float64, f: v}
}

// Kind returns the variant of the number.
func (n Number) Kind() DataType {
	return n.kind
}

// IsInt reports whether the number is an Int64.
func (n Number) IsInt() bool {
	return n.kind == Int64
}

// Int64 converts the number to an integer. Floats truncate toward zero.
func (n Number) Int64() int64 {
	if n.kind == Int64 {
		return n.i
	}
	return int64(n.f)
}

// Float64 converts the number to a float. Large integers lose precision.
func (n Number) Float64() float64 {
	if n.kind == Int64 {
		return float64(n.i)
	}
	return n.f
}

// Equal reports whether two numbers share a variant and a value.
func (n Number) Equal(other Number) bool {
	if n.kind != other.kind {
		return false
	}
	if n.kind == Int64 {
		return n.i == other.i
	}
	return n.f == other.f
}

func (n Number) String() string {
	if n.kind == Int64 {
		return strconv.FormatInt(n.i, 10)
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func (Number) isValue() {}
