// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	hexenc "encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cgeorge-rms/kudu-1/rle"
	"github.com/cgeorge-rms/kudu-1/rleblk"
)

var (
	decodeCount int
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "decode an rle (or, with --framed, rleblk) block read from stdin into a string of 0s and 1s",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE:  runDecode,
}

func init() {
	decodeCmd.Flags().IntVar(&decodeCount, "count", 0,
		"number of values to read; required for a bare rle stream, ignored for --framed")
}

func readBlock() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, err
	}
	if !hex {
		return data, nil
	}
	return hexenc.DecodeString(strings.TrimSpace(string(data)))
}

func runDecode(cmd *cobra.Command, args []string) error {
	block, err := readBlock()
	if err != nil {
		return err
	}

	var sb strings.Builder
	if framed {
		r, err := rleblk.Open(block, 1<<32)
		if err != nil {
			return err
		}
		for i := 0; i < r.NumValues(); i++ {
			v, ok := r.Get()
			if !ok {
				return errors.Errorf("block declared %d values but only %d were readable", r.NumValues(), i)
			}
			sb.WriteByte(boolByte(v))
		}
	} else {
		if decodeCount <= 0 {
			return errors.Errorf("--count is required when decoding a bare rle stream")
		}
		d := rle.NewDecoder(block, len(block))
		for i := 0; i < decodeCount; i++ {
			v, ok := d.Get()
			if !ok {
				return errors.Errorf("stream exhausted after %d of %d requested values", i, decodeCount)
			}
			sb.WriteByte(boolByte(v))
		}
	}

	fmt.Fprintln(os.Stdout, sb.String())
	return nil
}

func boolByte(v bool) byte {
	if v {
		return '1'
	}
	return '0'
}
