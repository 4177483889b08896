package array

// Reshape returns a new Array with the same elements and the given shape.
// The receiver is left unchanged.
//
// Validation divides the element count by each requested dimension in
// turn and fails as soon as one division leaves a remainder. The final
// quotient is not required to be 1, so [6] reshaped to [3] is accepted
// and the result then holds more elements than its shape describes.
// A zero dimension divides only a count that is already zero, and a shape
// whose element count overflows an int is rejected.
func (a *Array) Reshape(dims ...int) (*Array, error) {
	shape := Shape(dims).Clone()
	n := a.buf.Len()
	if err := shape.Validate(); err != nil {
		return nil, &ReshapeError{Shape: shape, Len: n}
	}
	if _, ok := shape.CheckedNumElements(); !ok {
		return nil, &ReshapeError{Shape: shape, Len: n}
	}

	remaining := n
	for _, d := range shape {
		if d == 0 {
			if remaining != 0 {
				return nil, &ReshapeError{Shape: shape, Len: n}
			}
			continue
		}
		if remaining%d != 0 {
			return nil, &ReshapeError{Shape: shape, Len: n}
		}
		remaining /= d
	}

	return newArray(a.buf.Clone(), shape), nil
}
