// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package array

import (
	"github.com/born-ml/ndarray/internal/serialization"
)

// Save writes named arrays to a SafeTensors file.
//
// Example:
//
//	err := array.Save("arrays.safetensors", map[string]*array.Array{"x": x}, nil)
func Save(path string, arrays map[string]*Array, metadata map[string]string) error {
	return serialization.WriteFile(path, arrays, metadata, serialization.Options{})
}

// Load reads every array from a SafeTensors file written by Save.
func Load(path string) (map[string]*Array, map[string]string, error) {
	return serialization.ReadFile(path, serialization.Options{})
}
