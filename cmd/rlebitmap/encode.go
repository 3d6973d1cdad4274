// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	hexenc "encoding/hex"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/cgeorge-rms/kudu-1/rle"
	"github.com/cgeorge-rms/kudu-1/rleblk"
)

var encodeCmd = &cobra.Command{
	Use:   "encode <pattern>",
	Short: "encode a string of 0s and 1s into an rle (or, with --framed, rleblk) block",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE:  runEncode,
}

func parsePattern(pattern string) ([]bool, error) {
	values := make([]bool, len(pattern))
	for i, c := range pattern {
		switch c {
		case '0':
			values[i] = false
		case '1':
			values[i] = true
		default:
			return nil, errors.Errorf("pattern must contain only 0s and 1s, found %q at position %d", c, i)
		}
	}
	return values, nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	values, err := parsePattern(args[0])
	if err != nil {
		return err
	}

	var out []byte
	if framed {
		w := rleblk.NewWriter()
		for _, v := range values {
			w.Put(v, 1)
		}
		out = w.Finish()
	} else {
		e := rle.NewEncoder(nil)
		for _, v := range values {
			e.Put(v, 1)
		}
		n := e.Flush()
		out = e.Buffer()[:n]
	}

	if hex {
		fmt.Fprintln(os.Stdout, hexenc.EncodeToString(out))
	} else {
		os.Stdout.Write(out)
	}
	return nil
}
