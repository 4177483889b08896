package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"log/slog"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ndarray/internal/array"
)

func testArrays(t *testing.T) map[string]*array.Array {
	t.Helper()
	ints, err := array.Arange(array.Int(6)).Reshape(2, 3)
	require.NoError(t, err)
	floats := array.Linspace(array.Float(0), array.Float(1), array.WithNum(5), array.WithEndpoint(true))
	empty, err := array.New([]any{})
	require.NoError(t, err)
	return map[string]*array.Array{"ints": ints, "floats": floats, "empty": empty}
}

func TestRoundTripFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.safetensors")
	arrays := testArrays(t)

	var logs bytes.Buffer
	opts := Options{Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	require.NoError(t, WriteFile(path, arrays, map[string]string{"source": "test"}, opts))

	loaded, meta, err := ReadFile(path, opts)
	require.NoError(t, err)
	assert.Equal(t, "test", meta["source"])
	_, err = uuid.Parse(meta[FileIDKey])
	assert.NoError(t, err, "file id %q", meta[FileIDKey])
	assert.NotContains(t, meta, ChecksumKey)
	require.Len(t, loaded, len(arrays))
	for name, want := range arrays {
		assert.True(t, want.Equal(loaded[name]), "array %q", name)
	}
	assert.Contains(t, logs.String(), "wrote arrays")
	assert.Contains(t, logs.String(), "read arrays")
}

func TestEncodeLayout(t *testing.T) {
	a, err := array.FromInts([]int64{1, -2}, array.Shape{2})
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := Encode(&buf, map[string]*array.Array{"a": a}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	raw := buf.Bytes()
	headerSize := binary.LittleEndian.Uint64(raw[:8])
	var header map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw[8:8+headerSize], &header))

	var entry SafeTensorHeader
	require.NoError(t, json.Unmarshal(header["a"], &entry))
	assert.Equal(t, DTypeI64, entry.DType)
	assert.Equal(t, []int64{2}, entry.Shape)
	assert.Equal(t, [2]int64{0, 16}, entry.DataOffsets)

	data := raw[8+headerSize:]
	require.Len(t, data, 16)
	assert.Equal(t, int64(-2), int64(binary.LittleEndian.Uint64(data[8:])))
}

func TestEncodeKeepsCallerFileID(t *testing.T) {
	var first, second bytes.Buffer
	meta := map[string]string{FileIDKey: "fixed"}
	_, err := Encode(&first, testArrays(t), meta)
	require.NoError(t, err)
	_, err = Encode(&second, testArrays(t), meta)
	require.NoError(t, err)
	assert.Equal(t, first.Bytes(), second.Bytes())

	_, got, err := Decode(&first, Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{FileIDKey: "fixed"}, got)
	assert.Len(t, meta, 1, "caller metadata is not modified")
}

func TestEncodeRejects(t *testing.T) {
	a := array.Arange(array.Int(6))
	short, err := a.Reshape(3) // Accepted by reshape, but holds 6 elements
	require.NoError(t, err)

	_, err = Encode(&bytes.Buffer{}, map[string]*array.Array{"short": short}, nil)
	assert.ErrorIs(t, err, ErrInconsistentArray)

	for _, name := range []string{"", "../x", "a/b", MetadataKey} {
		_, err = Encode(&bytes.Buffer{}, map[string]*array.Array{name: a}, nil)
		assert.ErrorIs(t, err, ErrInvalidArrayName, "name %q", name)
	}
}

// encodeRaw builds a file from a hand-written header for tamper tests.
func encodeRaw(t *testing.T, header map[string]any, data []byte) *bytes.Reader {
	t.Helper()
	h, err := json.Marshal(header)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(h))))
	buf.Write(h)
	buf.Write(data)
	return bytes.NewReader(buf.Bytes())
}

func TestDecodeValidation(t *testing.T) {
	data := make([]byte, 32)
	tests := []struct {
		name   string
		header map[string]any
		want   error
	}{
		{"bad dtype", map[string]any{"a": SafeTensorHeader{DType: "F32", Shape: []int64{4}, DataOffsets: [2]int64{0, 16}}}, ErrUnsupportedDType},
		{"size mismatch", map[string]any{"a": SafeTensorHeader{DType: DTypeF64, Shape: []int64{3}, DataOffsets: [2]int64{0, 16}}}, ErrSizeMismatch},
		{"out of bounds", map[string]any{"a": SafeTensorHeader{DType: DTypeF64, Shape: []int64{8}, DataOffsets: [2]int64{0, 64}}}, ErrOutOfBounds},
		{"negative offset", map[string]any{"a": SafeTensorHeader{DType: DTypeI64, Shape: []int64{1}, DataOffsets: [2]int64{-8, 0}}}, ErrNegativeOffset},
		{"overlap", map[string]any{
			"a": SafeTensorHeader{DType: DTypeI64, Shape: []int64{2}, DataOffsets: [2]int64{0, 16}},
			"b": SafeTensorHeader{DType: DTypeI64, Shape: []int64{2}, DataOffsets: [2]int64{8, 24}},
		}, ErrOffsetOverlap},
		{"bad name", map[string]any{"../a": SafeTensorHeader{DType: DTypeI64, Shape: []int64{1}, DataOffsets: [2]int64{0, 8}}}, ErrInvalidArrayName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(encodeRaw(t, tt.header, data), Options{})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeOverlapAllowedWhenNotStrict(t *testing.T) {
	header := map[string]any{
		"a": SafeTensorHeader{DType: DTypeI64, Shape: []int64{2}, DataOffsets: [2]int64{0, 16}},
		"b": SafeTensorHeader{DType: DTypeI64, Shape: []int64{2}, DataOffsets: [2]int64{8, 24}},
	}
	data := make([]byte, 24)
	binary.LittleEndian.PutUint64(data[8:], 7)

	arrays, _, err := Decode(encodeRaw(t, header, data), Options{Validation: ValidationNormal})
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 7}, arrays["a"].Ints())
	assert.Equal(t, []int64{7, 0}, arrays["b"].Ints())
}

func TestDecodeChecksum(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, testArrays(t), nil)
	require.NoError(t, err)

	tampered := buf.Bytes()
	tampered[len(tampered)-1] ^= 0xFF

	_, _, err = Decode(bytes.NewReader(tampered), Options{})
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, _, err = Decode(bytes.NewReader(tampered), Options{SkipChecksum: true})
	assert.NoError(t, err)
}

func TestDecodeHeaderTooLarge(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(MaxHeaderSize+1)))
	_, _, err := Decode(&buf, Options{})
	assert.ErrorIs(t, err, ErrHeaderTooLarge)
}

func TestDecodeTruncated(t *testing.T) {
	_, _, err := Decode(bytes.NewReader([]byte{1, 2}), Options{})
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(100)))
	buf.WriteString("{}")
	_, _, err = Decode(&buf, Options{})
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)
}

func TestDecodeRejectsWrappingOffsets(t *testing.T) {
	// The end offset is what 16+(MaxInt64-7) wraps to.
	header := map[string]any{"a": SafeTensorHeader{
		DType:       DTypeF64,
		Shape:       []int64{(math.MaxInt64 - 7) / 8},
		DataOffsets: [2]int64{16, math.MinInt64 + 8},
	}}
	for _, level := range []ValidationLevel{ValidationStrict, ValidationNormal, ValidationNone} {
		_, _, err := Decode(encodeRaw(t, header, make([]byte, 32)), Options{Validation: level})
		assert.ErrorIs(t, err, ErrNegativeOffset, "level %d", level)
	}
}

func TestBoundsChecksDoNotOverflow(t *testing.T) {
	m := ArrayMeta{Name: "a", DType: DTypeF64, Shape: []int{(math.MaxInt64 - 7) / 8}, Offset: 16, Size: math.MaxInt64 - 7}

	err := ValidateOffsets([]ArrayMeta{m}, 32)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = decodeArray(m, make([]byte, 32))
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestDecodeRejectsOverflowingShape(t *testing.T) {
	header := map[string]any{"a": SafeTensorHeader{
		DType:       DTypeI64,
		Shape:       []int64{1 << 32, 1 << 32},
		DataOffsets: [2]int64{0, 0},
	}}

	_, _, err := Decode(encodeRaw(t, header, nil), Options{})
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, _, err = Decode(encodeRaw(t, header, nil), Options{Validation: ValidationNone})
	assert.ErrorIs(t, err, array.ErrShapeMismatch)

	err = ValidateMeta(ArrayMeta{Name: "a", DType: DTypeF64, Shape: []int{1 << 61, 2}, Size: 0})
	assert.ErrorIs(t, err, ErrSizeMismatch)
}

func TestEncodeRejectsNilArray(t *testing.T) {
	_, err := Encode(&bytes.Buffer{}, map[string]*array.Array{"a": nil}, nil)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, ErrNilArray)
	assert.Equal(t, "a", ve.Array)
}
