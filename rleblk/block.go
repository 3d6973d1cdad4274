// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rleblk

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/errors"

	"github.com/cgeorge-rms/kudu-1/internal/invariants"
	"github.com/cgeorge-rms/kudu-1/rle"
)

// trailerLen is the size in bytes of a block's checksum trailer.
const trailerLen = 8

// maxHeaderLen bounds the header: two varints, each at most 10 bytes for a
// uint64.
const maxHeaderLen = 2 * binary.MaxVarintLen64

// Writer accumulates values into a framed, checksummed block.
type Writer struct {
	enc       *rle.Encoder
	numValues int
}

// NewWriter constructs a Writer ready to accept Put calls.
func NewWriter() *Writer {
	return &Writer{enc: rle.NewEncoder(nil)}
}

// Put appends runLength copies of value, mirroring rle.Encoder.Put.
func (w *Writer) Put(value bool, runLength int) {
	w.enc.Put(value, runLength)
	w.numValues += runLength
}

// Finish flushes the underlying encoder and returns a complete block: a
// header recording the value count and payload length, the rle-encoded
// payload, and a trailing checksum. The Writer may be reused after Finish
// by calling Clear.
func (w *Writer) Finish() []byte {
	payloadLen := w.enc.Flush()
	payload := w.enc.Buffer()[:payloadLen]

	header := make([]byte, maxHeaderLen)
	n := binary.PutUvarint(header, uint64(w.numValues))
	n += binary.PutUvarint(header[n:], uint64(payloadLen))
	header = header[:n]

	block := make([]byte, 0, len(header)+payloadLen+trailerLen)
	block = append(block, header...)
	block = append(block, payload...)

	checksum := xxhash.Sum64(block)
	var trailer [trailerLen]byte
	binary.LittleEndian.PutUint64(trailer[:], checksum)
	block = append(block, trailer[:]...)
	return block
}

// Clear resets the Writer for reuse, as if newly constructed.
func (w *Writer) Clear() {
	w.enc.Clear()
	w.numValues = 0
}

// Reader reads values back out of a block produced by Writer. Unlike a bare
// rle.Decoder, a Reader knows exactly how many values the block holds and
// refuses to read past them, so it never exposes the zero-padding bits a
// literal run's last group may carry (see the rle package docs).
type Reader struct {
	dec       rle.Decoder
	numValues int
	read      int
}

// Open validates block's checksum and header, and returns a Reader
// positioned at the first value. maxValues bounds the value count the
// caller is willing to trust; Open rejects a block claiming more than that,
// which keeps a corrupted or adversarial header from causing a caller to
// size an allocation from an attacker-controlled count.
func Open(block []byte, maxValues int) (*Reader, error) {
	numValues, payload, err := Parse(block, maxValues)
	if err != nil {
		return nil, err
	}
	return &Reader{
		dec:       *rle.NewDecoder(payload, len(payload)),
		numValues: numValues,
	}, nil
}

// Parse validates block's checksum and header and returns its declared
// value count together with its rle payload, without constructing a
// Reader. It's exposed for tools, like cmd/rlebitmap, that want to walk the
// payload themselves rather than read it through Get/GetNextRun/Skip.
func Parse(block []byte, maxValues int) (numValues int, payload []byte, err error) {
	return validate(block, maxValues)
}

// NumValues returns the number of values the block holds.
func (r *Reader) NumValues() int {
	return r.numValues
}

// Get returns the next value. ok is false once all NumValues values have
// been read.
func (r *Reader) Get() (value, ok bool) {
	if r.read >= r.numValues {
		return false, false
	}
	value, ok = r.dec.Get()
	if !ok {
		if invariants.Enabled {
			panic("rleblk: block exhausted before its declared value count")
		}
		return false, false
	}
	r.read++
	return value, true
}

// GetNextRun coalesces the next run of equal values, never returning a run
// that extends past the block's declared value count.
func (r *Reader) GetNextRun() (value bool, runLength int, ok bool) {
	if r.read >= r.numValues {
		return false, 0, false
	}
	value, runLength, ok = r.dec.GetNextRun()
	if !ok {
		if invariants.Enabled {
			panic("rleblk: block exhausted before its declared value count")
		}
		return false, 0, false
	}
	if remaining := r.numValues - r.read; runLength > remaining {
		runLength = remaining
	}
	r.read += runLength
	return value, runLength, true
}

// Skip skips the next n values and returns how many were true. It panics in
// invariant builds if n exceeds the values remaining in the block.
func (r *Reader) Skip(n int) (popcount int) {
	if remaining := r.numValues - r.read; n > remaining {
		if invariants.Enabled {
			panic("rleblk: Skip requested more values than remain in the block")
		}
		n = remaining
	}
	popcount = r.dec.Skip(n)
	r.read += n
	return popcount
}

// validate parses and checksums block, and bounds-checks its declared value
// count against maxValues. It never trusts header fields before checking
// them against the actual length of block.
func validate(block []byte, maxValues int) (numValues int, payload []byte, err error) {
	if len(block) < trailerLen {
		return 0, nil, errors.Errorf("rleblk: block of %d bytes too short for a trailer", len(block))
	}
	body := block[:len(block)-trailerLen]
	wantChecksum := binary.LittleEndian.Uint64(block[len(block)-trailerLen:])
	gotChecksum := xxhash.Sum64(body)
	if gotChecksum != wantChecksum {
		return 0, nil, errors.Errorf("rleblk: checksum mismatch: got %x, want %x", gotChecksum, wantChecksum)
	}

	numValuesU, n1 := binary.Uvarint(body)
	if n1 <= 0 {
		return 0, nil, errors.Errorf("rleblk: malformed value-count varint")
	}
	payloadLenU, n2 := binary.Uvarint(body[n1:])
	if n2 <= 0 {
		return 0, nil, errors.Errorf("rleblk: malformed payload-length varint")
	}
	if numValuesU > uint64(maxValues) {
		return 0, nil, errors.Errorf("rleblk: block declares %d values, exceeding the caller's bound of %d", numValuesU, maxValues)
	}

	headerLen := n1 + n2
	payload = body[headerLen:]
	if uint64(len(payload)) != payloadLenU {
		return 0, nil, errors.Errorf("rleblk: header declares %d payload bytes, body has %d", payloadLenU, len(payload))
	}
	// The payload's last literal group may carry up to 7 zero-padding
	// values past the declared count, so they are allowed for here.
	if err := rle.ValidateStream(payload, maxValues+7); err != nil {
		return 0, nil, errors.WithDetail(err, "rleblk: payload failed validation")
	}
	return int(numValuesU), payload, nil
}
