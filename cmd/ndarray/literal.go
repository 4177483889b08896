package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/born-ml/ndarray/array"
)

// parseLiteral decodes a JSON nested array and ingests it.
// JSON numbers written with '.', 'e' or 'E' become floats, all others ints.
func parseLiteral(src string) (*array.Array, error) {
	dec := json.NewDecoder(strings.NewReader(src))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON literal: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("invalid JSON literal: trailing data")
	}

	lit, err := convertNumbers(v)
	if err != nil {
		return nil, err
	}
	return array.New(lit)
}

func convertNumbers(v any) (any, error) {
	switch x := v.(type) {
	case []any:
		for i, elem := range x {
			conv, err := convertNumbers(elem)
			if err != nil {
				return nil, err
			}
			x[i] = conv
		}
		return x, nil
	case json.Number:
		n, err := parseNumber(x.String())
		if err != nil {
			return nil, err
		}
		if n.IsInt() {
			return n.Int64(), nil
		}
		return n.Float64(), nil
	default:
		return v, nil // Left for ingestion to reject
	}
}

// parseNumber parses s as an int when it has no fractional or exponent part.
// Such an int must fit in int64.
func parseNumber(s string) (array.Number, error) {
	if !strings.ContainsAny(s, ".eE") {
		i, err := strconv.ParseInt(s, 10, 64)
		if err == nil {
			return array.Int(i), nil
		}
		if errors.Is(err, strconv.ErrRange) {
			return array.Number{}, fmt.Errorf("integer %s out of int64 range", s)
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return array.Number{}, fmt.Errorf("invalid number %q", s)
	}
	return array.Float(f), nil
}

func printArray(w io.Writer, a *array.Array) error {
	_, err := fmt.Fprintf(w, "shape=%v dtype=%s data=%s\n", a.Shape(), a.DType(), a)
	return err
}

func printValue(w io.Writer, v array.Value) error {
	switch x := v.(type) {
	case *array.Array:
		return printArray(w, x)
	case array.Number:
		_, err := fmt.Fprintf(w, "%s (%s)\n", x, x.Kind())
		return err
	default:
		return fmt.Errorf("unexpected value %T", v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
