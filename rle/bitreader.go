// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import "golang.org/x/exp/constraints"

// BitReader consumes a byte buffer as a stream of bits, least-significant
// bit first within each byte. It supports the handful of access patterns
// the RLE codec needs: single-bit reads, base-128 varint reads, aligned
// fixed-width reads, and a one-bit rewind.
//
// A BitReader does not allocate and borrows its backing buffer; the caller
// must keep the buffer alive for the BitReader's lifetime.
type BitReader struct {
	buf []byte
	// length is the number of bytes of buf that are considered in-bounds.
	// It may be less than len(buf) when the caller knows the logical buffer
	// is shorter than its backing array.
	length int
	// bitPos is the total number of bits consumed from buf so far.
	bitPos int
}

// NewBitReader constructs a BitReader over buf[:length]. length must not
// exceed len(buf).
func NewBitReader(buf []byte, length int) BitReader {
	return BitReader{buf: buf, length: length}
}

// Len returns the number of bytes this reader was constructed with.
func (r *BitReader) Len() int { return r.length }

// BitsRemaining returns the number of unread bits in the stream.
func (r *BitReader) BitsRemaining() int { return r.length*8 - r.bitPos }

// GetBool reads the next bit and reports whether it could be read. It
// returns false if the buffer has been exhausted.
func (r *BitReader) GetBool() (value bool, ok bool) {
	byteIdx := r.bitPos >> 3
	if byteIdx >= r.length {
		return false, false
	}
	bitIdx := uint(r.bitPos & 7)
	value = (r.buf[byteIdx]>>bitIdx)&1 != 0
	r.bitPos++
	return value, true
}

// RewindBool moves the cursor back one bit. It is defined only when called
// immediately after a successful GetBool, and is used by the decoder to
// peek at the next literal value without consuming it.
func (r *BitReader) RewindBool() {
	r.bitPos--
}

// align advances the cursor to the next byte boundary, discarding any
// unread bits in the current byte.
func (r *BitReader) align() {
	if r.bitPos&7 != 0 {
		r.bitPos = (r.bitPos + 7) &^ 7
	}
}

// GetVlqUint reads a base-128, little-endian varint starting at the current
// byte, first aligning to a byte boundary if called mid-byte. It returns
// false if the buffer is exhausted before a terminating byte is read.
func (r *BitReader) GetVlqUint() (value uint64, ok bool) {
	r.align()
	var shift uint
	for {
		byteIdx := r.bitPos >> 3
		if byteIdx >= r.length {
			return 0, false
		}
		b := r.buf[byteIdx]
		r.bitPos += 8
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, true
		}
		shift += 7
		if shift >= 64 {
			// A well-formed stream never needs more than ten bytes (nine
			// with the continuation bit set) for a 64-bit value; a tenth
			// continuation byte means the stream is corrupt.
			return 0, false
		}
	}
}

// GetAligned reads sizeof(T) little-endian bytes, aligning to the next byte
// boundary first. It returns false if the buffer is exhausted.
func GetAligned[T constraints.Unsigned](r *BitReader) (value T, ok bool) {
	r.align()
	size := alignedSize[T]()
	byteIdx := r.bitPos >> 3
	if byteIdx+size > r.length {
		return 0, false
	}
	for i := 0; i < size; i++ {
		value |= T(r.buf[byteIdx+i]) << uint(8*i)
	}
	r.bitPos += size * 8
	return value, true
}
