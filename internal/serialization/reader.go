package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/born-ml/ndarray/internal/array"
)

// ReadFile loads every array from a SafeTensors file.
// The returned metadata excludes the checksum entry.
func ReadFile(path string, opts Options) (map[string]*array.Array, map[string]string, error) {
	//nolint:gosec // G304: input path is supplied by the caller
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close() // Read-only; close error carries no data loss
	}()

	arrays, meta, err := Decode(file, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	opts.logger().Debug("read arrays", "path", path, "arrays", len(arrays))
	return arrays, meta, nil
}

// Decode reads a SafeTensors stream and rebuilds each array from its flat data.
func Decode(r io.Reader, opts Options) (map[string]*array.Array, map[string]string, error) {
	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, fmt.Errorf("%w: %d bytes", ErrHeaderTooLarge, headerSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	metas, meta, err := parseHeader(headerJSON)
	if err != nil {
		return nil, nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read array data: %w", err)
	}

	if err := ValidateHeader(metas, int64(len(data)), opts.Validation); err != nil {
		return nil, nil, fmt.Errorf("validation failed: %w", err)
	}

	if sum, ok := meta[ChecksumKey]; ok {
		if !opts.SkipChecksum {
			if err := ValidateChecksum(data, sum); err != nil {
				return nil, nil, err
			}
		}
		delete(meta, ChecksumKey)
	}

	arrays := make(map[string]*array.Array, len(metas))
	for _, m := range metas {
		a, err := decodeArray(m, data)
		if err != nil {
			return nil, nil, err
		}
		arrays[m.Name] = a
	}

	opts.logger().Debug("decoded header", "arrays", len(metas), "data_bytes", len(data))
	return arrays, meta, nil
}

func parseHeader(headerJSON []byte) ([]ArrayMeta, map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(headerJSON, &raw); err != nil {
		return nil, nil, fmt.Errorf("failed to parse header: %w", err)
	}

	meta := map[string]string{}
	metas := make([]ArrayMeta, 0, len(raw))
	for name, entry := range raw {
		if name == MetadataKey {
			if err := json.Unmarshal(entry, &meta); err != nil {
				return nil, nil, fmt.Errorf("failed to parse metadata: %w", err)
			}
			continue
		}

		var h SafeTensorHeader
		if err := json.Unmarshal(entry, &h); err != nil {
			return nil, nil, fmt.Errorf("failed to parse entry %q: %w", name, err)
		}
		start, end := h.DataOffsets[0], h.DataOffsets[1]
		if start < 0 || end < start {
			return nil, nil, &ValidationError{
				Err:     ErrNegativeOffset,
				Array:   name,
				Details: fmt.Sprintf("data_offsets [%d, %d]", start, end),
			}
		}
		shape := make([]int, len(h.Shape))
		for i, d := range h.Shape {
			shape[i] = int(d)
		}
		metas = append(metas, ArrayMeta{
			Name:   name,
			DType:  h.DType,
			Shape:  shape,
			Offset: start,
			Size:   end - start,
		})
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].Name < metas[j].Name })
	return metas, meta, nil
}

func decodeArray(m ArrayMeta, data []byte) (*array.Array, error) {
	dtype, ok := safeTensorsToDType(m.DType)
	if !ok {
		return nil, &ValidationError{Err: ErrUnsupportedDType, Array: m.Name, Details: m.DType}
	}
	if m.Offset < 0 || m.Size < 0 || m.Size > int64(len(data))-m.Offset {
		return nil, &ValidationError{Err: ErrOutOfBounds, Array: m.Name, Details: fmt.Sprintf("offset %d size %d", m.Offset, m.Size)}
	}
	if m.Size%elemSize != 0 {
		return nil, &ValidationError{Err: ErrSizeMismatch, Array: m.Name, Details: fmt.Sprintf("%d bytes", m.Size)}
	}

	raw := data[m.Offset : m.Offset+m.Size]
	n := len(raw) / elemSize

	var buf array.Buffer
	if dtype == array.Int64 {
		ints := make([]int64, n)
		for i := range ints {
			ints[i] = int64(binary.LittleEndian.Uint64(raw[i*elemSize:]))
		}
		buf = array.IntBuffer(ints)
	} else {
		floats := make([]float64, n)
		for i := range floats {
			floats[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*elemSize:]))
		}
		buf = array.FloatBuffer(floats)
	}

	a, err := array.FromBuffer(buf, array.Shape(m.Shape))
	if err != nil {
		return nil, fmt.Errorf("array %q: %w", m.Name, err)
	}
	return a, nil
}
