package array

import (
	"math"
	"reflect"
)

// elemKind tracks what the elements at one nesting depth have turned out to be.
type elemKind int

const (
	kindUnknown elemKind = iota
	kindSequence
	kindScalar
)

// New builds an Array from a nested sequence literal.
//
// Any Go slice or array counts as a sequence, so []any, [][]float64 and
// []int are all accepted. Leaves must be Go integers (Int64 array) or
// floats (Float64 array); the first leaf fixes the variant and every other
// leaf must match it. An empty literal yields shape [0] and an empty
// Float64 buffer.
//
// The literal is scanned level by level with an explicit queue: the first
// sequence at each depth records that axis, and every sibling at the same
// depth must have the same length.
//
// Example:
//
//	a, err := array.New([][]float64{{1, 2}, {3, 4}}) // shape [2 2], float64
func New(literal any) (*Array, error) {
	root := reflect.ValueOf(literal)
	if !isSequence(root) {
		return nil, &TypeMismatchError{Op: "ingest", Reason: "expected a sequence", Value: literal}
	}

	ing := ingester{}
	queue := []reflect.Value{root}
	var shape Shape

	remaining := 0 // sequences left to visit at the current depth
	queued := 1    // sequences queued for the next depth
	kind := kindUnknown

	for len(queue) > 0 {
		seq := queue[0]
		queue = queue[1:]

		if remaining == 0 {
			shape = append(shape, seq.Len())
			remaining = queued
			queued = 0
			kind = kindUnknown
		} else if want := shape[len(shape)-1]; seq.Len() != want {
			return nil, &ShapeMismatchError{Op: "ingest", Left: Shape{want}, Right: Shape{seq.Len()}}
		}
		remaining--

		for i := 0; i < seq.Len(); i++ {
			elem := unwrap(seq.Index(i))
			if isSequence(elem) {
				if kind == kindScalar {
					return nil, &TypeMismatchError{Op: "ingest", Reason: "expected a scalar", Value: elem.Interface()}
				}
				kind = kindSequence
				queue = append(queue, elem)
				queued++
				continue
			}
			if kind == kindSequence {
				return nil, &TypeMismatchError{Op: "ingest", Reason: "expected a sequence", Value: valueOf(elem)}
			}
			kind = kindScalar
			if err := ing.push(elem); err != nil {
				return nil, err
			}
		}
	}

	return newArray(ing.buffer(), shape), nil
}

// ingester accumulates leaves into a buffer whose variant is fixed by the first leaf.
type ingester struct {
	typed  bool
	dtype  DataType
	ints   []int64
	floats []float64
}

func (ing *ingester) push(v reflect.Value) error {
	var (
		dtype DataType
		i     int64
		f     float64
	)
	switch v.Kind() {
	case reflect.Invalid:
		return &TypeMismatchError{Op: "ingest", Reason: "nil element", Value: nil}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		dtype, i = Int64, v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := v.Uint()
		if u > math.MaxInt64 {
			return &TypeMismatchError{Op: "ingest", Reason: "integer overflows int64", Value: u}
		}
		dtype, i = Int64, int64(u)
	case reflect.Float32, reflect.Float64:
		dtype, f = Float64, v.Float()
	default:
		if !ing.typed {
			return &TypeMismatchError{Op: "ingest", Reason: "unsupported element", Value: valueOf(v)}
		}
		return &TypeMismatchError{Op: "ingest", Value: valueOf(v), Want: ing.dtype}
	}

	if !ing.typed {
		ing.typed = true
		ing.dtype = dtype
	} else if dtype != ing.dtype {
		return &TypeMismatchError{Op: "ingest", Value: valueOf(v), Want: ing.dtype, Got: dtype}
	}

	if dtype == Int64 {
		ing.ints = append(ing.ints, i)
	} else {
		ing.floats = append(ing.floats, f)
	}
	return nil
}

func (ing *ingester) buffer() Buffer {
	if ing.typed && ing.dtype == Int64 {
		return Buffer{dtype: Int64, ints: ing.ints}
	}
	if ing.floats == nil {
		ing.floats = []float64{}
	}
	return Buffer{dtype: Float64, floats: ing.floats}
}

func isSequence(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}

// unwrap strips interface and pointer layers, e.g. the any in []any.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func valueOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}
