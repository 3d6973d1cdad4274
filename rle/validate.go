// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import (
	"github.com/cockroachdb/errors"
)

// ValidateStream walks an untrusted byte string as if it were rle-encoded
// and confirms every run's indicator is well-formed, without materializing
// any of the decoded values: every literal run's group_count must fall in
// [1,63] (the same range Encoder ever emits), every repeated run's
// repeat_count must be at least 1, and the total number of values the
// stream claims to hold must not exceed maxValues.
//
// Decoder already guards against zero counts with a panic in invariant
// builds, but panicking is the wrong failure mode for data arriving over a
// network or from a file someone else wrote; ValidateStream exists for
// callers, like rleblk.Open, that need an error instead.
func ValidateStream(data []byte, maxValues int) error {
	br := NewBitReader(data, len(data))
	total := 0
	for br.BitsRemaining() > 0 {
		indicator, ok := br.GetVlqUint()
		if !ok {
			return errors.Errorf("rle: truncated run indicator")
		}
		if indicator&1 != 0 {
			groupCount := indicator >> 1
			if groupCount < 1 || groupCount > 63 {
				return errors.Errorf("rle: literal run group_count %d out of range [1,63]", groupCount)
			}
			for i := uint64(0); i < groupCount; i++ {
				if _, ok := GetAligned[byte](&br); !ok {
					return errors.Errorf("rle: literal run truncated")
				}
			}
			total += int(groupCount) * 8
		} else {
			repeatCount := indicator >> 1
			if repeatCount < 1 {
				return errors.Errorf("rle: repeated run repeat_count must be at least 1")
			}
			if _, ok := GetAligned[byte](&br); !ok {
				return errors.Errorf("rle: repeated run missing value byte")
			}
			total += int(repeatCount)
		}
		if total > maxValues {
			return errors.Errorf("rle: stream claims more than %d values", maxValues)
		}
	}
	return nil
}
