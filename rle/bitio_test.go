// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitWriterBitReaderRoundTrip(t *testing.T) {
	w := NewBitWriter(nil)
	w.PutBool(true)
	w.PutBool(false)
	w.PutBool(true)
	w.PutVlqUint(300)
	PutAligned[uint16](&w, 0xBEEF)
	slot := w.ReserveByteSlot()
	w.PutBool(true)
	w.PatchByte(slot, 0x42)
	n := w.Finish()
	require.Equal(t, len(w.Bytes()), n)

	r := NewBitReader(w.Bytes(), n)
	for _, want := range []bool{true, false, true} {
		v, ok := r.GetBool()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
	vlq, ok := r.GetVlqUint()
	require.True(t, ok)
	require.Equal(t, uint64(300), vlq)
	u16, ok := GetAligned[uint16](&r)
	require.True(t, ok)
	require.Equal(t, uint16(0xBEEF), u16)

	patched, ok := GetAligned[byte](&r)
	require.True(t, ok)
	require.Equal(t, byte(0x42), patched)
	v, ok := r.GetBool()
	require.True(t, ok)
	require.True(t, v)

	// The reader's bounds are whole bytes, so the 7 zero-padding bits that
	// complete the last byte read back as false before the reader reports
	// exhaustion.
	for i := 0; i < 7; i++ {
		v, ok = r.GetBool()
		require.True(t, ok)
		require.False(t, v)
	}
	_, ok = r.GetBool()
	require.False(t, ok)
}

func TestBitReaderRewindBool(t *testing.T) {
	w := NewBitWriter(nil)
	w.PutBool(true)
	w.PutBool(false)
	n := w.Finish()

	r := NewBitReader(w.Bytes(), n)
	v, ok := r.GetBool()
	require.True(t, ok)
	require.True(t, v)

	r.RewindBool()
	v, ok = r.GetBool()
	require.True(t, ok)
	require.True(t, v)

	v, ok = r.GetBool()
	require.True(t, ok)
	require.False(t, v)
}

func TestBitReaderAlignmentDiscardsPartialByte(t *testing.T) {
	w := NewBitWriter(nil)
	w.PutBool(true)
	w.PutBool(true)
	w.PutBool(true)
	PutAligned[byte](&w, 0x7F)
	n := w.Finish()

	r := NewBitReader(w.Bytes(), n)
	b, ok := r.GetBool()
	require.True(t, ok)
	require.True(t, b)
	// Reading a byte-granular unit mid-byte discards the unread bits
	// remaining in that byte (the last two of the three trues above) and
	// jumps straight to the aligned payload.
	v, ok := GetAligned[byte](&r)
	require.True(t, ok)
	require.Equal(t, byte(0x7F), v)
}

func TestBitWriterVlqMinimalEncoding(t *testing.T) {
	for _, tc := range []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7F}},
		{128, []byte{0x80, 0x01}},
		{300, []byte{0xAC, 0x02}},
	} {
		w := NewBitWriter(nil)
		w.PutVlqUint(tc.v)
		require.Equal(t, tc.want, w.Bytes())
	}
}

func TestBitReaderVlqAcceptsNonMinimalEncoding(t *testing.T) {
	// 0x80, 0x00 is a non-minimal (padded) encoding of 0. The decoder is
	// required to accept it even though the encoder never produces it.
	r := NewBitReader([]byte{0x80, 0x00}, 2)
	v, ok := r.GetVlqUint()
	require.True(t, ok)
	require.Equal(t, uint64(0), v)
}

func TestBitReaderTruncatedVlq(t *testing.T) {
	r := NewBitReader([]byte{0x80, 0x80}, 2)
	_, ok := r.GetVlqUint()
	require.False(t, ok)
}

func TestBitWriterClear(t *testing.T) {
	w := NewBitWriter(nil)
	w.PutBool(true)
	w.PutVlqUint(42)
	w.Clear()
	require.Equal(t, 0, w.Finish())
	require.Empty(t, w.Bytes())

	w.PutBool(false)
	require.Equal(t, 1, w.Finish())
}
