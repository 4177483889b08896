package array

// Get indexes the array in row-major order.
//
// With as many indices as axes the result is a Number. With fewer, the
// result is a copy of the sub-array spanned by the trailing axes. Negative
// indices count from the end of their axis.
//
// A reshape may leave the shape describing more elements than the buffer
// holds; selecting any of those missing elements is an IndexError.
//
// Example:
//
//	a, _ := array.Arange(array.Int(10)).Reshape(2, 5)
//	row, _ := a.Get(1)     // *Array [5 6 7 8 9]
//	v, _ := a.Get(1, -1)   // Number 9
func (a *Array) Get(indices ...int) (Value, error) {
	offset, err := a.flatOffset(indices)
	if err != nil {
		return nil, err
	}

	if len(indices) == len(a.shape) {
		if offset >= a.buf.Len() {
			return nil, a.bufferError(indices)
		}
		return a.buf.At(offset), nil
	}

	trailing := a.shape[len(indices):].Clone()
	end := offset + trailing.NumElements()
	if end > a.buf.Len() {
		return nil, a.bufferError(indices)
	}
	return newArray(a.buf.Slice(offset, end), trailing), nil
}

// At returns the scalar at a full index.
func (a *Array) At(indices ...int) (Number, error) {
	if len(indices) < len(a.shape) {
		return Number{}, &IndexError{Indices: indices, Rank: len(a.shape), Axis: IndexCount}
	}
	v, err := a.Get(indices...)
	if err != nil {
		return Number{}, err
	}
	return v.(Number), nil
}

// SubArray returns the sub-array at a partial index.
// Fewer indices than axes are required.
func (a *Array) SubArray(indices ...int) (*Array, error) {
	if len(indices) >= len(a.shape) {
		return nil, &IndexError{Indices: indices, Rank: len(a.shape), Axis: IndexCount}
	}
	v, err := a.Get(indices...)
	if err != nil {
		return nil, err
	}
	return v.(*Array), nil
}

// flatOffset converts leading indices to a position in the flat buffer.
func (a *Array) flatOffset(indices []int) (int, error) {
	if len(indices) > len(a.shape) {
		return 0, &IndexError{Indices: indices, Rank: len(a.shape), Axis: IndexCount}
	}

	strides := a.shape.ComputeStrides()
	offset := 0
	for i, idx := range indices {
		dim := a.shape[i]
		if idx < 0 {
			idx += dim
		}
		if idx < 0 || idx >= dim {
			return 0, &IndexError{Indices: indices, Rank: len(a.shape), Axis: i, Dim: dim}
		}
		offset += idx * strides[i]
	}
	return offset, nil
}

func (a *Array) bufferError(indices []int) *IndexError {
	return &IndexError{Indices: indices, Rank: len(a.shape), Axis: IndexBuffer, Len: a.buf.Len()}
}
