// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants exposes tripwires that are compiled in only when this
// module is built with the "invariants" or "race" build tag. It mirrors the
// same-named package in github.com/cockroachdb/pebble, trimmed to what the
// rle and rleblk packages need.
package invariants

// Mangle overwrites b with a recognizable pattern when invariants are
// enabled, to surface bugs where a caller retains a reference to a buffer
// across a Clear/Init that's supposed to relinquish it.
func Mangle(b []byte) {
	if !Enabled {
		return
	}
	for i := range b {
		b[i] = 0xcd
	}
}
