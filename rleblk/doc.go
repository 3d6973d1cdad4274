// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package rleblk wraps the sibling rle package's streaming codec in a
// self-describing, checksummed block, the way sstable/block frames a raw
// block with a handle and a trailer. Where rle carries no length framing
// and trusts its caller to know how many values it wrote, a block (the
// byte slice Writer.Finish returns) is a standalone byte string: it records its own value count so it can be
// stored, copied, and later opened without any side channel, and it
// carries a checksum so a reader can detect a corrupted block before ever
// handing it to the decoder.
//
// Wire format:
//
//	block  := header payload trailer
//	header := vlq(num_values) vlq(payload_length)
//	payload  = the rle wire format, payload_length bytes
//	trailer := checksum, 8 bytes, little-endian xxhash64 of header||payload
package rleblk
