// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import (
	"fmt"

	"github.com/cgeorge-rms/kudu-1/internal/invariants"
)

// Decoder reads values back out of a stream written by Encoder. A Decoder
// borrows its backing byte range read-only; multiple Decoders may read the
// same immutable range concurrently, but the caller must keep the range
// alive for as long as any Decoder over it is in use.
//
// Decoder operations never allocate. Reaching the end of the stream at a
// run boundary is reported by a false "ok" return, not an error; malformed
// input (a zero-length run) is treated as corruption and, in builds with
// the invariants or race tag, panics rather than silently misreading.
type Decoder struct {
	br BitReader

	currentValue bool
	repeatCount  int
	literalCount int
}

// NewDecoder constructs a Decoder over data[:length].
func NewDecoder(data []byte, length int) *Decoder {
	return &Decoder{br: NewBitReader(data, length)}
}

// readHeader ensures a run is active, reading the next run's indicator if
// both repeatCount and literalCount are currently zero. It returns false
// when no run is active and no next run can be read: the data is exhausted,
// or (in builds without the invariants or race tag, which panic instead)
// the next run is malformed.
func (d *Decoder) readHeader() bool {
	if d.literalCount != 0 || d.repeatCount != 0 {
		return true
	}
	indicator, ok := d.br.GetVlqUint()
	if !ok {
		return false
	}
	if indicator&1 != 0 {
		groupCount := indicator >> 1
		if groupCount == 0 {
			if invariants.Enabled {
				panic("literal run with zero group count")
			}
			return false
		}
		d.literalCount = int(groupCount) * 8
	} else {
		repeatCount := indicator >> 1
		if repeatCount == 0 {
			if invariants.Enabled {
				panic("repeated run with zero repeat count")
			}
			return false
		}
		d.repeatCount = int(repeatCount)
		// The value byte is written aligned (a full, zero-padded byte) but
		// only its low bit is ever significant: the varint we just read
		// always ends byte-aligned, so this GetBool reads bit 0 of the
		// next byte without needing to align again.
		value, ok := d.br.GetBool()
		if !ok {
			if invariants.Enabled {
				panic("repeated run missing value byte")
			}
			return false
		}
		d.currentValue = value
	}
	return true
}

// Get returns the next value in the stream. ok is false once the stream is
// exhausted.
func (d *Decoder) Get() (value bool, ok bool) {
	if !d.readHeader() {
		return false, false
	}
	if d.repeatCount > 0 {
		value = d.currentValue
		d.repeatCount--
		return value, true
	}
	if invariants.Enabled && d.literalCount <= 0 {
		panic(fmt.Sprintf("literalCount = %d, want > 0", d.literalCount))
	}
	value, ok = d.br.GetBool()
	if !ok {
		if invariants.Enabled {
			panic("literal run truncated")
		}
		return false, false
	}
	d.literalCount--
	return value, true
}

// GetNextRun coalesces an arbitrarily long run of equal values that may
// straddle multiple underlying runs, including literal runs that happen to
// contain only equal values. ok is false only if no more values remain; a
// true result with runLength covering fewer values than remain in the
// stream means the run ended because the next value differs, not because
// the stream ended.
//
// GetNextRun never consumes bits past the run it returns: the next Get (or
// GetNextRun) call begins with the first value of the following run.
func (d *Decoder) GetNextRun() (value bool, runLength int, ok bool) {
	for d.readHeader() {
		if d.repeatCount > 0 {
			if runLength > 0 && value != d.currentValue {
				return value, runLength, true
			}
			value = d.currentValue
			runLength += d.repeatCount
			d.repeatCount = 0
			continue
		}

		if invariants.Enabled && d.literalCount <= 0 {
			panic(fmt.Sprintf("literalCount = %d, want > 0", d.literalCount))
		}

		if runLength == 0 {
			v, ok := d.br.GetBool()
			if !ok {
				if invariants.Enabled {
					panic("literal run truncated")
				}
				return value, runLength, runLength > 0
			}
			value = v
			d.literalCount--
			runLength++
		}

		for d.literalCount > 0 {
			v, ok := d.br.GetBool()
			if !ok {
				if invariants.Enabled {
					panic("literal run truncated")
				}
				return value, runLength, true
			}
			if v != value {
				d.br.RewindBool()
				return value, runLength, true
			}
			runLength++
			d.literalCount--
		}
	}
	return value, runLength, runLength > 0
}

// Skip skips the next n values and returns how many of them were true. It
// assumes n does not exceed the number of values remaining in the stream;
// in builds with the invariants or race tag, exceeding it panics. In other
// builds it returns the popcount of however many values could actually be
// skipped.
func (d *Decoder) Skip(n int) (popcount int) {
	for n > 0 {
		if !d.readHeader() {
			if invariants.Enabled {
				panic("Skip requested more values than remain in the stream")
			}
			return popcount
		}
		if d.repeatCount > 0 {
			nskip := min(d.repeatCount, n)
			d.repeatCount -= nskip
			n -= nskip
			if d.currentValue {
				popcount += nskip
			}
		} else {
			nskip := min(d.literalCount, n)
			d.literalCount -= nskip
			n -= nskip
			for i := 0; i < nskip; i++ {
				v, ok := d.br.GetBool()
				if !ok {
					if invariants.Enabled {
						panic("literal run truncated")
					}
					return popcount
				}
				if v {
					popcount++
				}
			}
		}
	}
	return popcount
}
