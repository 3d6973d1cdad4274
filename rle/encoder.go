// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import (
	"fmt"

	"github.com/cgeorge-rms/kudu-1/internal/invariants"
)

// Encoder incrementally builds an RLE-encoded boolean stream (§3 of the
// format: a sequence of literal and repeated runs).
//
// The encoding has two modes: repeated runs and literal runs. Values are
// buffered eight at a time; once eight have accumulated, the encoder
// decides whether they're part of a repeated run (all equal to the current
// value, which has now repeated at least eight times) or a literal run (bit
// packed as-is). Put never fails; the backing buffer grows to accommodate
// whatever's written.
type Encoder struct {
	bw BitWriter

	// bufferedValues holds up to 8 values not yet committed to either run.
	bufferedValues [8]bool
	numBuffered    int

	// currentValue and repeatCount track the trailing run of equal values,
	// including values that may still only be sitting in bufferedValues.
	// Once repeatCount reaches 8, the run is promoted to a repeated run and
	// bufferedValues is discarded rather than flushed as literals.
	currentValue bool
	repeatCount  int

	// literalCount is the number of values already committed to the
	// currently open literal run, not counting bufferedValues. Always a
	// multiple of 8.
	literalCount int

	// literalIndicatorSlot is the index, in the writer's backing buffer, of
	// the byte reserved to hold the open literal run's indicator. -1 when
	// no literal run is open.
	literalIndicatorSlot int
}

// NewEncoder constructs an Encoder that appends to buf, which may be nil or
// a reused buffer with spare capacity.
func NewEncoder(buf []byte) *Encoder {
	e := &Encoder{}
	e.bw = NewBitWriter(buf)
	e.literalIndicatorSlot = -1
	return e
}

// Put encodes runLength copies of value. Callers encoding a single value
// pass 1; a runLength of 0 or less encodes nothing.
func (e *Encoder) Put(value bool, runLength int) {
	for ; runLength > 0; runLength-- {
		if value == e.currentValue {
			e.repeatCount++
			if e.repeatCount > 8 {
				// Already committed to a repeated run; nothing to buffer.
				continue
			}
		} else {
			if e.repeatCount >= 8 {
				// The previous value's run crossed the threshold and has
				// now ended: flush it as a repeated run.
				if invariants.Enabled && e.literalCount != 0 {
					panic(fmt.Sprintf("literalCount = %d, want 0", e.literalCount))
				}
				e.flushRepeatedRun()
			}
			e.repeatCount = 1
			e.currentValue = value
		}

		e.bufferedValues[e.numBuffered] = value
		e.numBuffered++
		if e.numBuffered == 8 {
			if invariants.Enabled && e.literalCount%8 != 0 {
				panic(fmt.Sprintf("literalCount = %d, not a multiple of 8", e.literalCount))
			}
			e.flushBufferedValues(false)
		}
	}
}

// flushBufferedValues decides, for the values currently buffered, whether
// they belong to a repeated run that has just crossed the threshold or to a
// literal run. Put calls it with done=false each time the buffer fills to 8;
// Flush handles the terminal case itself without calling it. When done is
// true and the values go to a literal run, that run is also closed and its
// indicator byte patched.
func (e *Encoder) flushBufferedValues(done bool) {
	if e.repeatCount >= 8 {
		// The buffered values are already subsumed by the repeated-run
		// counter; discard them rather than re-emitting as literals.
		e.numBuffered = 0
		if e.literalCount != 0 {
			// A literal run was open; its bytes are already written
			// (flushLiteralRun was called with false by a prior
			// buffer fill), so just close it out now.
			if invariants.Enabled && e.literalCount%8 != 0 {
				panic(fmt.Sprintf("literalCount = %d, not a multiple of 8", e.literalCount))
			}
			e.flushLiteralRun(true)
		}
		if invariants.Enabled && e.literalCount != 0 {
			panic("literal run failed to close")
		}
		return
	}

	e.literalCount += e.numBuffered
	numGroups := bitmapGroupCount(e.literalCount)
	if numGroups+1 >= (1 << 6) {
		// The reserved indicator byte can't express another group; close
		// the current literal run so a fresh one can open on the next Put.
		if invariants.Enabled && e.literalIndicatorSlot < 0 {
			panic("no literal indicator slot reserved")
		}
		e.flushLiteralRun(true)
	} else {
		e.flushLiteralRun(done)
	}
	// Rebuilt from the next identical value, if any.
	e.repeatCount = 0
}

// flushLiteralRun writes the buffered values into the open literal run. If
// updateIndicatorByte, the run is also closed: its indicator byte is
// patched with the final group count and the slot is released.
func (e *Encoder) flushLiteralRun(updateIndicatorByte bool) {
	if e.literalIndicatorSlot < 0 {
		e.literalIndicatorSlot = e.bw.ReserveByteSlot()
	}

	for i := 0; i < e.numBuffered; i++ {
		e.bw.PutBool(e.bufferedValues[i])
	}
	e.numBuffered = 0

	if updateIndicatorByte {
		numGroups := bitmapGroupCount(e.literalCount)
		if invariants.Enabled && numGroups >= 128 {
			panic(fmt.Sprintf("numGroups = %d, too large for a single indicator byte", numGroups))
		}
		indicator := byte(numGroups<<1) | 1
		e.bw.PatchByte(e.literalIndicatorSlot, indicator)
		e.literalIndicatorSlot = -1
		e.literalCount = 0
	}
}

// flushRepeatedRun emits the pending repeated run: a varint indicator
// followed by one value byte.
func (e *Encoder) flushRepeatedRun() {
	if invariants.Enabled && e.repeatCount <= 0 {
		panic(fmt.Sprintf("repeatCount = %d, want > 0", e.repeatCount))
	}
	e.bw.PutVlqUint(uint64(e.repeatCount) << 1)
	var value byte
	if e.currentValue {
		value = 1
	}
	PutAligned[byte](&e.bw, value)
	e.numBuffered = 0
	e.repeatCount = 0
}

// Flush writes out any pending state and returns the total number of bytes
// written so far. Calling Flush again without an intervening Put is a
// no-op that returns the same count.
func (e *Encoder) Flush() int {
	if e.literalCount > 0 || e.repeatCount > 0 || e.numBuffered > 0 {
		allRepeat := e.literalCount == 0 && (e.repeatCount == e.numBuffered || e.numBuffered == 0)
		if e.repeatCount > 0 && allRepeat {
			e.flushRepeatedRun()
		} else {
			e.literalCount += e.numBuffered
			e.flushLiteralRun(true)
			e.repeatCount = 0
		}
	}
	if invariants.Enabled {
		if e.numBuffered != 0 || e.literalCount != 0 || e.repeatCount != 0 {
			panic("Flush left pending state behind")
		}
	}
	return e.bw.Finish()
}

// Clear resets all encoder state, including the backing buffer, to that of
// a freshly constructed Encoder.
func (e *Encoder) Clear() {
	e.currentValue = false
	e.repeatCount = 0
	e.numBuffered = 0
	e.literalCount = 0
	e.literalIndicatorSlot = -1
	invariants.Mangle(e.bw.Bytes())
	e.bw.Clear()
}

// Buffer returns the buffer written to so far.
func (e *Encoder) Buffer() []byte { return e.bw.Bytes() }

// Len returns the number of bytes written so far (not counting anything
// still buffered and not yet Flushed).
func (e *Encoder) Len() int { return len(e.bw.Bytes()) }
