// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rle implements a hybrid run-length / bit-packed encoding for
// boolean values. It is intended for compactly representing sequences
// where long runs alternate with chaotic regions, and doubles as a compact
// bitmap encoding for columns that only need sequential scans.
//
// The encoding is a concatenation of runs, each preceded by a byte-aligned
// varint indicator whose low bit selects the run type:
//
//	encoded-stream  := run*
//	run             := literal-run | repeated-run
//	literal-run     := literal-indicator group*
//	repeated-run    := repeated-indicator value-byte
//	literal-indicator  := vlq(group_count<<1 | 1), group_count in [1,63]
//	repeated-indicator := vlq(repeat_count<<1),    repeat_count >= 1
//	group           := 8 bit-packed values, LSB-first, one byte
//
// Literal runs are always a multiple of 8 values so that every run ends on
// a byte boundary. When the values written don't fill a literal run's last
// group, the group is completed with zero bits, which a decoder reads back
// as false values. There's
// a break-even point past which run-length encoding is cheaper than
// bit-packing; for boolean values that point is 8 repetitions, which is
// why Encoder buffers up to 8 values before committing to either
// representation.
//
// The stream carries no length framing or terminator: the total encoded
// length is known out-of-band by the caller, and scans are sequential from
// the start of a buffer. See the sibling rleblk package for a length-
// framed, checksummed container built on top of this wire format.
package rle
