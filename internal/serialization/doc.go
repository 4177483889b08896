// Package serialization saves and loads named arrays in the SafeTensors layout.
//
//	Format Structure:
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON object, one entry per array plus optional "__metadata__"]
//	  [Array data: raw little-endian elements, in header order]
//
// Each header entry carries the dtype ("I64" or "F64"), the shape and the
// [begin, end) byte offsets of the array inside the data section. Arrays
// are written in alphabetical order by name. The writer stores a SHA-256
// of the data section under the "ndarray.sha256" metadata key; the reader
// verifies it when present.
//
// Example usage:
//
//	err := serialization.WriteFile("arrays.safetensors", map[string]*array.Array{"x": x}, nil, serialization.Options{})
//
//	arrays, meta, err := serialization.ReadFile("arrays.safetensors", serialization.Options{})
package serialization
