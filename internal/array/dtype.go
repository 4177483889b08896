// Package array implements the N-dimensional numeric array engine.
package array

// DataType is the element variant of an array buffer or a scalar Number.
// A buffer is either all Int64 or all Float64, never a mix.
type DataType int

// Supported element variants.
const (
	Float64 DataType = iota
	Int64
)

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Int64:
		return "int64"
	default:
		return "unknown"
	}
}
