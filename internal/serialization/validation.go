package serialization

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/born-ml/ndarray/internal/array"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize   = 100 * 1024 * 1024 // 100MB - maximum header size
	MaxArrayCount   = 100_000           // Maximum number of arrays in a file
	MaxArrayNameLen = 4096              // Maximum array name length
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict performs all validation checks (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names and per-array sizes but not offset overlap.
	ValidationNormal
	// ValidationNone skips validation. Use only with trusted input.
	ValidationNone
)

// ValidateOffsets checks for overlapping offsets and out-of-bounds ranges.
func ValidateOffsets(metas []ArrayMeta, dataSize int64) error {
	if len(metas) > MaxArrayCount {
		return &ValidationError{
			Err:     ErrTooManyArrays,
			Details: fmt.Sprintf("got %d, max %d", len(metas), MaxArrayCount),
		}
	}

	sorted := make([]ArrayMeta, len(metas))
	copy(sorted, metas)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, m := range sorted {
		if m.Offset < 0 || m.Size < 0 {
			return &ValidationError{
				Err:     ErrNegativeOffset,
				Array:   m.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", m.Offset, m.Size),
			}
		}

		if m.Size > dataSize-m.Offset {
			return &ValidationError{
				Err:     ErrOutOfBounds,
				Array:   m.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", m.Offset, m.Size, dataSize),
			}
		}

		if i < len(sorted)-1 {
			next := sorted[i+1]
			if m.Offset+m.Size > next.Offset {
				return &ValidationError{
					Err:     ErrOffsetOverlap,
					Array:   m.Name,
					Array2:  next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						m.Offset, m.Offset+m.Size, next.Offset, next.Offset+next.Size),
				}
			}
		}
	}

	return nil
}

// ValidateArrayName rejects empty, oversized and path-like names.
func ValidateArrayName(name string) error {
	switch {
	case name == "":
		return &ValidationError{Err: ErrInvalidArrayName, Details: "empty name"}
	case len(name) > MaxArrayNameLen:
		return &ValidationError{
			Err:     ErrInvalidArrayName,
			Array:   name[:32],
			Details: fmt.Sprintf("length %d > max %d", len(name), MaxArrayNameLen),
		}
	case name == MetadataKey:
		return &ValidationError{Err: ErrInvalidArrayName, Array: name, Details: "reserved name"}
	case strings.Contains(name, ".."):
		return &ValidationError{Err: ErrInvalidArrayName, Array: name, Details: "contains '..'"}
	case strings.ContainsAny(name, "/\\"):
		return &ValidationError{Err: ErrInvalidArrayName, Array: name, Details: "contains path separator (/ or \\)"}
	case strings.Contains(name, "\x00"):
		return &ValidationError{Err: ErrInvalidArrayName, Array: name, Details: "contains null byte"}
	}
	return nil
}

// ValidateMeta checks one array's dtype, shape and byte size.
func ValidateMeta(m ArrayMeta) error {
	if _, ok := safeTensorsToDType(m.DType); !ok {
		return &ValidationError{Err: ErrUnsupportedDType, Array: m.Name, Details: m.DType}
	}
	for _, d := range m.Shape {
		if d < 0 {
			return &ValidationError{Err: ErrSizeMismatch, Array: m.Name, Details: fmt.Sprintf("negative dimension in %v", m.Shape)}
		}
	}
	count, ok := array.Shape(m.Shape).CheckedNumElements()
	if !ok || int64(count) > math.MaxInt64/elemSize {
		return &ValidationError{Err: ErrSizeMismatch, Array: m.Name, Details: fmt.Sprintf("shape %v overflows", m.Shape)}
	}
	n := int64(count)
	if n*elemSize != m.Size {
		return &ValidationError{
			Err:     ErrSizeMismatch,
			Array:   m.Name,
			Details: fmt.Sprintf("shape %v needs %d bytes, header gives %d", m.Shape, n*elemSize, m.Size),
		}
	}
	return nil
}

// ValidateHeader validates every array entry at the given level.
func ValidateHeader(metas []ArrayMeta, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}

	if len(metas) > MaxArrayCount {
		return &ValidationError{
			Err:     ErrTooManyArrays,
			Details: fmt.Sprintf("got %d, max %d", len(metas), MaxArrayCount),
		}
	}

	for _, m := range metas {
		if err := ValidateArrayName(m.Name); err != nil {
			return err
		}
		if err := ValidateMeta(m); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		if err := ValidateOffsets(metas, dataSize); err != nil {
			return err
		}
	}
	return nil
}
