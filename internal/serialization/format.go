package serialization

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/born-ml/ndarray/internal/array"
)

// Format constants.
const (
	MetadataKey = "__metadata__"
	ChecksumKey = "ndarray.sha256"
	FileIDKey   = "ndarray.file_id" // Set on write unless the caller supplies one
	elemSize    = 8 // Both supported dtypes are 8 bytes wide
)

// SafeTensors dtype strings.
const (
	DTypeI64 = "I64"
	DTypeF64 = "F64"
)

// Options configures reading and writing.
type Options struct {
	Validation   ValidationLevel // Validation strictness level (readers only)
	SkipChecksum bool            // Do not verify the stored checksum
	Logger       *slog.Logger    // Debug events; nil discards them
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// SafeTensorHeader represents one array in the SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// ArrayMeta describes an array's byte range in the data section.
type ArrayMeta struct {
	Name   string
	DType  string
	Shape  []int
	Offset int64
	Size   int64
}

func dtypeToSafeTensors(dt array.DataType) string {
	if dt == array.Int64 {
		return DTypeI64
	}
	return DTypeF64
}

func safeTensorsToDType(s string) (array.DataType, bool) {
	switch s {
	case DTypeI64:
		return array.Int64, true
	case DTypeF64:
		return array.Float64, true
	default:
		return 0, false
	}
}

// ComputeChecksum returns the hex SHA-256 of data.
func ComputeChecksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ValidateChecksum compares the checksum of data against a stored hex digest.
func ValidateChecksum(data []byte, stored string) error {
	if ComputeChecksum(data) != stored {
		return ErrChecksumMismatch
	}
	return nil
}
