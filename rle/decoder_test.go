// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package rle

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// encodeValues is a test helper that Puts each value individually (run
// length 1) and returns the flushed buffer.
func encodeValues(values []bool) []byte {
	e := NewEncoder(nil)
	for _, v := range values {
		e.Put(v, 1)
	}
	n := e.Flush()
	return e.Buffer()[:n]
}

func randomValues(rng *rand.Rand, n int) []bool {
	values := make([]bool, n)
	// Bias towards runs: flip a weighted coin for each value based on the
	// previous one, so the stream exercises both literal and repeated runs.
	prev := rng.Intn(2) == 1
	for i := range values {
		if rng.Intn(10) != 0 {
			values[i] = prev
		} else {
			values[i] = !prev
		}
		prev = values[i]
	}
	return values
}

// TestRoundTrip checks testable property 1: decode(encode(S)) == S for
// Get, across randomized inputs of varying size and run structure.
//
// It reads back exactly len(values) values, not until Get reports eof: a
// literal run's last group is rounded up to a full 8 values, so a stream
// whose tail is a literal run not itself a multiple of 8 in length can have
// a few decodable zero-padding bits past the caller's own data. The stream
// carries no length framing (see doc.go), so a caller is expected to know
// how many values it wrote and stop there, not rely on eof.
func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(500)
		values := randomValues(rng, n)
		buf := encodeValues(values)

		d := NewDecoder(buf, len(buf))
		for i, want := range values {
			got, ok := d.Get()
			require.True(t, ok, "trial %d value %d", trial, i)
			require.Equal(t, want, got, "trial %d value %d", trial, i)
		}
	}
}

// TestRoundTripWithRunLength exercises Put's run_length parameter directly,
// rather than decomposing runs into individual Put calls.
func TestRoundTripWithRunLength(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 100; trial++ {
		e := NewEncoder(nil)
		var want []bool
		numRuns := rng.Intn(20)
		for i := 0; i < numRuns; i++ {
			v := rng.Intn(2) == 1
			runLen := rng.Intn(40)
			e.Put(v, runLen)
			for j := 0; j < runLen; j++ {
				want = append(want, v)
			}
		}
		n := e.Flush()
		d := NewDecoder(e.Buffer(), n)
		for i, w := range want {
			got, ok := d.Get()
			require.True(t, ok, "trial %d value %d", trial, i)
			require.Equal(t, w, got, "trial %d value %d", trial, i)
		}
	}
}

// TestGetNextRunEquivalence checks testable property 2: reading a stream
// via GetNextRun, expanded, yields the same sequence as Get, up to the
// number of values the caller originally wrote (see TestRoundTrip for why
// reading past that count isn't meaningful).
func TestGetNextRunEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 200; trial++ {
		values := randomValues(rng, rng.Intn(500))
		buf := encodeValues(values)

		d := NewDecoder(buf, len(buf))
		var got []bool
		for len(got) < len(values) {
			v, n, ok := d.GetNextRun()
			require.True(t, ok, "trial %d", trial)
			require.Greater(t, n, 0, "trial %d", trial)
			for i := 0; i < n && len(got) < len(values); i++ {
				got = append(got, v)
			}
		}
		require.Equal(t, values, got, "trial %d", trial)
	}
}

// TestGetNextRunRewindSoundness checks testable property 4: GetNextRun
// never consumes bits past the run boundary it reports, whether the
// stream continues via Get or another GetNextRun.
func TestGetNextRunRewindSoundness(t *testing.T) {
	values := []bool{true, true, true, false, false, true, true, true, true, true, true, true, true, true}
	buf := encodeValues(values)

	d := NewDecoder(buf, len(buf))
	v, n, ok := d.GetNextRun()
	require.True(t, ok)
	require.True(t, v)
	require.Equal(t, 3, n)

	// The next Get must return the first value of the following run.
	next, ok := d.Get()
	require.True(t, ok)
	require.False(t, next)

	// And resuming with GetNextRun from there must pick up exactly where
	// Get left off.
	v2, n2, ok := d.GetNextRun()
	require.True(t, ok)
	require.False(t, v2)
	require.Equal(t, 1, n2)

	v3, n3, ok := d.GetNextRun()
	require.True(t, ok)
	require.True(t, v3)
	require.Equal(t, 9, n3)

	// The 14 values end in a literal run rounded up to 16 values, so the two
	// zero-padding bits of its last group come back as a run of falses
	// before the stream is exhausted.
	v4, n4, ok := d.GetNextRun()
	require.True(t, ok)
	require.False(t, v4)
	require.Equal(t, 2, n4)

	_, _, ok = d.GetNextRun()
	require.False(t, ok)
}

// TestSkipPopcount checks testable property 3: Skip(k) returns the
// popcount of the first k values and leaves the decoder positioned at k.
func TestSkipPopcount(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for trial := 0; trial < 200; trial++ {
		values := randomValues(rng, 1+rng.Intn(500))
		buf := encodeValues(values)
		k := rng.Intn(len(values) + 1)

		d := NewDecoder(buf, len(buf))
		want := 0
		for i := 0; i < k; i++ {
			if values[i] {
				want++
			}
		}
		got := d.Skip(k)
		require.Equal(t, want, got, "trial %d k=%d", trial, k)

		for i := k; i < len(values); i++ {
			v, ok := d.Get()
			require.True(t, ok, "trial %d value %d", trial, i)
			require.Equal(t, values[i], v, "trial %d value %d", trial, i)
		}
	}
}

// TestSkipAcrossRuns is scenario E from the format specification.
func TestSkipAcrossRuns(t *testing.T) {
	e := NewEncoder(nil)
	e.Put(true, 50)
	e.Put(false, 50)
	n := e.Flush()

	d := NewDecoder(e.Buffer(), n)
	popcount := d.Skip(75)
	require.Equal(t, 50, popcount)

	v, ok := d.Get()
	require.True(t, ok)
	require.False(t, v)
}

// TestIndicatorRange checks testable property 5: every literal indicator
// emitted satisfies group_count in [1,63].
func TestIndicatorRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 50; trial++ {
		values := randomValues(rng, rng.Intn(4000))
		buf := encodeValues(values)

		br := NewBitReader(buf, len(buf))
		for br.BitsRemaining() > 0 {
			indicator, ok := br.GetVlqUint()
			require.True(t, ok, "trial %d", trial)
			if indicator&1 != 0 {
				groupCount := indicator >> 1
				require.GreaterOrEqual(t, groupCount, uint64(1), "trial %d", trial)
				require.LessOrEqual(t, groupCount, uint64(63), "trial %d", trial)
				for i := uint64(0); i < groupCount; i++ {
					_, ok := GetAligned[byte](&br)
					require.True(t, ok, "trial %d", trial)
				}
			} else {
				_, ok := GetAligned[byte](&br)
				require.True(t, ok, "trial %d", trial)
			}
		}
	}
}
