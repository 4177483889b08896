package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, literal any) *Array {
	t.Helper()
	a, err := New(literal)
	require.NoError(t, err)
	return a
}

func TestFromBuffer(t *testing.T) {
	a, err := FromInts([]int64{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	require.NoError(t, err)
	assertEqualShape(t, Shape{2, 3}, a.Shape(), "FromInts")
	assert.Equal(t, Int64, a.DType())
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, 2, a.NDim())

	_, err = FromFloats([]float64{1, 2, 3}, Shape{2, 2})
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = FromFloats(nil, Shape{-1})
	assert.Error(t, err)
}

func TestFromBufferRejectsOverflowingShape(t *testing.T) {
	_, err := FromInts(nil, Shape{1 << 32, 1 << 32})
	var sm *ShapeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = FromFloats([]float64{}, Shape{1 << 62, 8})
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFromBufferCopiesInput(t *testing.T) {
	data := []int64{1, 2}
	a, err := FromInts(data, Shape{2})
	require.NoError(t, err)
	data[0] = 42
	assert.Equal(t, []int64{1, 2}, a.Ints())

	out := a.Ints()
	out[1] = 42
	assert.Equal(t, []int64{1, 2}, a.Ints(), "Ints must return a copy")
}

func TestScalarArray(t *testing.T) {
	a, err := FromFloats([]float64{3.5}, Shape{})
	require.NoError(t, err)
	assert.Equal(t, 0, a.Len())

	v, err := a.At()
	require.NoError(t, err)
	assert.Equal(t, Float(3.5), v)
}

func TestStringAndRepr(t *testing.T) {
	a := mustNew(t, []any{1, 2, 3})
	assert.Equal(t, "[1 2 3]", a.String())
	assert.Equal(t, "Array([1 2 3], shape=[3], dtype=int64)", a.Repr())
}

func TestCloneIsDeep(t *testing.T) {
	a := mustNew(t, []int64{1, 2})
	c := a.Clone()
	require.True(t, a.Equal(c))
	c.buf.ints[0] = 9
	assert.Equal(t, []int64{1, 2}, a.Ints())
}

func TestWrongAccessorPanics(t *testing.T) {
	a := mustNew(t, []float64{1})
	assert.Panics(t, func() { a.Ints() })
	assert.NotPanics(t, func() { a.Floats() })
}
