// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import "golang.org/x/exp/constraints"

// BitWriter appends bits, aligned integers, and varints into a growable
// byte buffer, least-significant bit first within each byte. It also
// supports reserving a byte slot for a value that's only known once more
// has been written (used by Encoder to back-patch a literal run's
// indicator byte).
type BitWriter struct {
	buf []byte
	// bitPos is the total number of bits appended so far. buf is always
	// sized to ceil(bitPos/8) bytes: PutBool lazily appends a new zero byte
	// the moment it starts filling it, so the backing buffer is never left
	// holding uninitialized bits.
	bitPos int
}

// NewBitWriter constructs a BitWriter that appends to buf (which may be
// nil, or a reused buffer with spare capacity from a previous Clear).
func NewBitWriter(buf []byte) BitWriter {
	return BitWriter{buf: buf[:0]}
}

// PutBool appends a single bit.
func (w *BitWriter) PutBool(v bool) {
	bitIdx := uint(w.bitPos & 7)
	if bitIdx == 0 {
		w.buf = append(w.buf, 0)
	}
	if v {
		w.buf[len(w.buf)-1] |= 1 << bitIdx
	}
	w.bitPos++
}

// align pads the current byte with zero bits up to the next byte boundary.
// Because buf is kept zero-padded as PutBool fills each byte, aligning is
// just advancing bitPos; no bytes need to be written.
func (w *BitWriter) align() {
	if w.bitPos&7 != 0 {
		w.bitPos = (w.bitPos + 7) &^ 7
	}
}

// PutVlqUint aligns to a byte boundary, then appends the minimum-length
// base-128, little-endian encoding of v.
func (w *BitWriter) PutVlqUint(v uint64) {
	w.align()
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		w.buf = append(w.buf, b)
		w.bitPos += 8
		if v == 0 {
			return
		}
	}
}

// PutAligned pads the current byte with zeros, then appends sizeof(T)
// little-endian bytes.
func PutAligned[T constraints.Unsigned](w *BitWriter, v T) {
	w.align()
	size := alignedSize[T]()
	for i := 0; i < size; i++ {
		w.buf = append(w.buf, byte(v>>uint(8*i)))
	}
	w.bitPos += size * 8
}

// ReserveByteSlot aligns to a byte boundary, appends one zero byte, and
// returns its index so the caller can overwrite it later via PatchByte.
// Exactly one PatchByte call is expected per reserved slot; failing to
// patch a slot that the format requires to be patched, or patching one
// twice, is a caller bug.
func (w *BitWriter) ReserveByteSlot() int {
	w.align()
	idx := len(w.buf)
	w.buf = append(w.buf, 0)
	w.bitPos += 8
	return idx
}

// PatchByte overwrites the byte previously reserved at idx.
func (w *BitWriter) PatchByte(idx int, v byte) {
	w.buf[idx] = v
}

// Finish flushes any partially-written byte (which is already zero-padded
// by construction) and returns the total number of bytes written. Finish
// is idempotent: calling it again without an intervening write returns the
// same count and leaves the buffer untouched.
func (w *BitWriter) Finish() int {
	return len(w.buf)
}

// Clear resets the writer to empty, retaining the backing array's capacity.
func (w *BitWriter) Clear() {
	w.buf = w.buf[:0]
	w.bitPos = 0
}

// Bytes returns the buffer written so far.
func (w *BitWriter) Bytes() []byte { return w.buf }
