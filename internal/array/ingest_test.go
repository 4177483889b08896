package array

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShapeInference(t *testing.T) {
	tests := []struct {
		name    string
		literal any
		shape   Shape
		dtype   DataType
		count   int
	}{
		{"flat floats", []any{1.0, 2.0, 3.0}, Shape{3}, Float64, 3},
		{"single int", []any{1}, Shape{1}, Int64, 1},
		{"2x2 floats", []any{[]any{1.0, 2.0}, []any{3.0, 4.0}}, Shape{2, 2}, Float64, 4},
		{"typed 2x3", [][]int64{{1, 2, 3}, {4, 5, 6}}, Shape{2, 3}, Int64, 6},
		{"typed 3d", [][][]float64{{{1}, {2}}, {{3}, {4}}, {{5}, {6}}}, Shape{3, 2, 1}, Float64, 6},
		{"go array", [2][2]int{{1, 2}, {3, 4}}, Shape{2, 2}, Int64, 4},
		{"float32 leaves", []float32{0.5, 1.5}, Shape{2}, Float64, 2},
		{"uint leaves", []uint8{1, 2, 3}, Shape{3}, Int64, 3},
		{"empty", []any{}, Shape{0}, Float64, 0},
		{"empty inner", []any{[]any{}, []any{}}, Shape{2, 0}, Float64, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := New(tt.literal)
			require.NoError(t, err)
			assertEqualShape(t, tt.shape, a.Shape(), tt.name)
			assert.Equal(t, tt.dtype, a.DType())
			assert.Equal(t, tt.count, a.NumElements())
			assert.Equal(t, a.Shape().NumElements(), a.NumElements())
		})
	}
}

func TestNewRowMajorOrder(t *testing.T) {
	a, err := New([]any{
		[]any{[]any{1, 2}, []any{3, 4}},
		[]any{[]any{5, 6}, []any{7, 8}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7, 8}, a.Ints())
}

func TestNewMixedScalarTypes(t *testing.T) {
	_, err := New([]any{1, 2.5})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, 2.5, tm.Value)
	assert.Equal(t, Int64, tm.Want)
	assert.Equal(t, Float64, tm.Got)
}

func TestNewStructureMismatch(t *testing.T) {
	tests := []struct {
		name    string
		literal any
	}{
		{"scalar after sequence", []any{[]any{1}, 2}},
		{"sequence after scalar", []any{1, []any{2}}},
		{"deeper mismatch", []any{[]any{[]any{1}}, []any{2}}},
		{"unsupported leaf", []any{"a"}},
		{"bool leaf", []bool{true}},
		{"nil leaf", []any{nil}},
		{"top-level scalar", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.literal)
			assert.ErrorIs(t, err, ErrTypeMismatch)
		})
	}
}

func TestNewUnsupportedLeafMessage(t *testing.T) {
	_, err := New([]any{"x"})
	var tm *TypeMismatchError
	require.ErrorAs(t, err, &tm)
	assert.Equal(t, "unsupported element", tm.Reason)
	assert.NotContains(t, err.Error(), "float64")

	// Once a leaf fixed the variant, the message names it.
	_, err = New([]any{1, "x"})
	require.ErrorAs(t, err, &tm)
	assert.Empty(t, tm.Reason)
	assert.Contains(t, err.Error(), "int64 array")
}

func TestNewRaggedSiblings(t *testing.T) {
	_, err := New([]any{[]any{1, 2}, []any{3}})
	require.Error(t, err)

	var sm *ShapeMismatchError
	require.ErrorAs(t, err, &sm)
	assert.Equal(t, Shape{2}, sm.Left)
	assert.Equal(t, Shape{1}, sm.Right)
}

func TestNewUintOverflow(t *testing.T) {
	_, err := New([]uint64{1 << 63})
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNewDoesNotAliasInput(t *testing.T) {
	src := []float64{1, 2, 3}
	a, err := New(src)
	require.NoError(t, err)
	src[0] = 99
	assert.Equal(t, []float64{1, 2, 3}, a.Floats())
}
