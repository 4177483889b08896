package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/google/uuid"

	"github.com/born-ml/ndarray/internal/array"
)

// WriteFile writes arrays to a SafeTensors file.
//
// Arrays are written in alphabetical order by name. metadata may be nil;
// a random FileIDKey entry is added when it has none.
func WriteFile(path string, arrays map[string]*array.Array, metadata map[string]string, opts Options) error {
	//nolint:gosec // G304: output path is supplied by the caller
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	n, err := Encode(file, arrays, metadata)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close file: %w", closeErr)
	}
	if err != nil {
		return err
	}

	opts.logger().Debug("wrote arrays", "path", path, "arrays", len(arrays), "bytes", n)
	return nil
}

// Encode writes arrays in SafeTensors layout to w and returns the byte count.
func Encode(w io.Writer, arrays map[string]*array.Array, metadata map[string]string) (int64, error) {
	names := make([]string, 0, len(arrays))
	for name := range arrays {
		if err := ValidateArrayName(name); err != nil {
			return 0, err
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var data bytes.Buffer
	header := make(map[string]any, len(names)+1)

	for _, name := range names {
		a := arrays[name]
		if a == nil {
			return 0, &ValidationError{Err: ErrNilArray, Array: name, Details: "nil array"}
		}
		shape := a.Shape()
		if shape.NumElements() != a.NumElements() {
			return 0, &ValidationError{
				Err:     ErrInconsistentArray,
				Array:   name,
				Details: fmt.Sprintf("shape %v with %d elements", shape, a.NumElements()),
			}
		}

		start := int64(data.Len())
		encodeBuffer(&data, a)

		shapeInt64 := make([]int64, len(shape))
		for i, dim := range shape {
			shapeInt64[i] = int64(dim)
		}
		header[name] = SafeTensorHeader{
			DType:       dtypeToSafeTensors(a.DType()),
			Shape:       shapeInt64,
			DataOffsets: [2]int64{start, int64(data.Len())},
		}
	}

	meta := make(map[string]string, len(metadata)+1)
	for k, v := range metadata {
		meta[k] = v
	}
	if meta[FileIDKey] == "" {
		meta[FileIDKey] = uuid.New().String()
	}
	meta[ChecksumKey] = ComputeChecksum(data.Bytes())
	header[MetadataKey] = meta

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return 0, fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return 0, fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return 0, fmt.Errorf("failed to write array data: %w", err)
	}

	return int64(8 + len(headerJSON) + data.Len()), nil
}

func encodeBuffer(dst *bytes.Buffer, a *array.Array) {
	var word [elemSize]byte
	if a.DType() == array.Int64 {
		for _, v := range a.Ints() {
			binary.LittleEndian.PutUint64(word[:], uint64(v))
			dst.Write(word[:])
		}
		return
	}
	for _, v := range a.Floats() {
		binary.LittleEndian.PutUint64(word[:], math.Float64bits(v))
		dst.Write(word[:])
	}
}
