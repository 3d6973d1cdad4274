// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// alignedSize returns sizeof(T) for the fixed-width unsigned integer types
// GetAligned/PutAligned support, standing in for the C++ original's
// sizeof(T) inside its GetAligned<T>/PutAligned<T> templates.
func alignedSize[T constraints.Unsigned]() int {
	var v T
	return int(unsafe.Sizeof(v))
}

// bitmapGroupCount is the "bitmap size helper" of the external interfaces
// section: the number of 8-value groups needed to hold n bits.
func bitmapGroupCount(n int) int {
	return (n + 7) / 8
}
