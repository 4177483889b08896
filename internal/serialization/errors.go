package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch  = errors.New("checksum mismatch: file may be corrupted")
	ErrOffsetOverlap     = errors.New("array offsets overlap")
	ErrOutOfBounds       = errors.New("array extends beyond data section")
	ErrNegativeOffset    = errors.New("negative offset or size")
	ErrTooManyArrays     = errors.New("too many arrays in file")
	ErrInvalidArrayName  = errors.New("invalid array name")
	ErrHeaderTooLarge    = errors.New("header exceeds maximum size")
	ErrUnsupportedDType  = errors.New("unsupported dtype")
	ErrSizeMismatch      = errors.New("byte size does not match shape")
	ErrInconsistentArray = errors.New("array holds more elements than its shape describes")
	ErrNilArray          = errors.New("nil array")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Err     error  // One of the sentinel errors above
	Array   string // Primary array name involved
	Array2  string // Secondary array name (for overlap errors)
	Details string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Array2 != "" {
		return fmt.Sprintf("%v: arrays %q and %q: %s", e.Err, e.Array, e.Array2, e.Details)
	}
	if e.Array != "" {
		return fmt.Sprintf("%v: array %q: %s", e.Err, e.Array, e.Details)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Details)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error { return e.Err }
