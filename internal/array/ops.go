package array

import "github.com/born-ml/ndarray/internal/parallel"

// Add performs elementwise addition.
// Both arrays must have the same shape and the same element variant.
func (a *Array) Add(b *Array) (*Array, error) {
	return binaryOp("add", a, b,
		func(x, y int64) (int64, bool) { return x + y, true },
		func(x, y float64) float64 { return x + y })
}

// Sub performs elementwise subtraction.
func (a *Array) Sub(b *Array) (*Array, error) {
	return binaryOp("sub", a, b,
		func(x, y int64) (int64, bool) { return x - y, true },
		func(x, y float64) float64 { return x - y })
}

// Mul performs elementwise multiplication.
func (a *Array) Mul(b *Array) (*Array, error) {
	return binaryOp("mul", a, b,
		func(x, y int64) (int64, bool) { return x * y, true },
		func(x, y float64) float64 { return x * y })
}

// Div performs elementwise division.
// Integer division truncates toward zero; a zero integer divisor is a
// DivisionByZeroError. Float division follows IEEE 754.
func (a *Array) Div(b *Array) (*Array, error) {
	return binaryOp("div", a, b,
		func(x, y int64) (int64, bool) {
			if y == 0 {
				return 0, false
			}
			return x / y, true
		},
		func(x, y float64) float64 { return x / y })
}

// Neg negates every element. Shape and variant are unchanged.
func (a *Array) Neg() *Array {
	if a.buf.dtype == Int64 {
		out := make([]int64, len(a.buf.ints))
		for i, v := range a.buf.ints {
			out[i] = -v
		}
		return newArray(Buffer{dtype: Int64, ints: out}, a.shape.Clone())
	}
	out := make([]float64, len(a.buf.floats))
	for i, v := range a.buf.floats {
		out[i] = -v
	}
	return newArray(Buffer{dtype: Float64, floats: out}, a.shape.Clone())
}

// binaryOp checks shape then variant, then applies the kernel pairwise.
// The int kernel reports false when the pair has no defined result.
func binaryOp(
	op string,
	a, b *Array,
	intFn func(x, y int64) (int64, bool),
	floatFn func(x, y float64) float64,
) (*Array, error) {
	if !a.shape.Equal(b.shape) {
		return nil, &ShapeMismatchError{Op: op, Left: a.shape.Clone(), Right: b.shape.Clone()}
	}
	if a.buf.dtype != b.buf.dtype {
		return nil, &TypeMismatchError{Op: op, Want: a.buf.dtype, Got: b.buf.dtype}
	}

	cfg := ParallelConfig()
	n := min(a.buf.Len(), b.buf.Len())

	if a.buf.dtype == Int64 {
		x, y := a.buf.ints, b.buf.ints
		out := make([]int64, n)
		err := parallel.ForRange(n, func(start, end int) error {
			for i := start; i < end; i++ {
				v, ok := intFn(x[i], y[i])
				if !ok {
					return &DivisionByZeroError{Position: i}
				}
				out[i] = v
			}
			return nil
		}, cfg)
		if err != nil {
			return nil, err
		}
		return newArray(Buffer{dtype: Int64, ints: out}, a.shape.Clone()), nil
	}

	x, y := a.buf.floats, b.buf.floats
	out := make([]float64, n)
	parallel.For(n, func(i int) {
		out[i] = floatFn(x[i], y[i])
	}, cfg)
	return newArray(Buffer{dtype: Float64, floats: out}, a.shape.Clone()), nil
}

// Equal reports whether both arrays have the same shape, the same element
// variant and pairwise equal elements. A variant mismatch is not an error;
// it simply compares unequal.
func (a *Array) Equal(b *Array) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.shape.Equal(b.shape) && a.buf.equal(b.buf)
}
