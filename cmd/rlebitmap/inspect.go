// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/cgeorge-rms/kudu-1/rle"
	"github.com/cgeorge-rms/kudu-1/rleblk"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "dump the run structure of an rle (or, with --framed, rleblk) block read from stdin",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	block, err := readBlock()
	if err != nil {
		return err
	}

	payload := block
	if framed {
		numValues, p, err := rleblk.Parse(block, 1<<32)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "declared values: %d, payload bytes: %d, block bytes: %d\n",
			numValues, len(p), len(block))
		payload = p
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"run", "type", "count", "value"})

	br := rle.NewBitReader(payload, len(payload))
	run := 0
	for br.BitsRemaining() > 0 {
		indicator, ok := br.GetVlqUint()
		if !ok {
			return errors.Errorf("truncated run indicator at run %d", run)
		}
		if indicator&1 != 0 {
			groupCount := indicator >> 1
			for i := uint64(0); i < groupCount; i++ {
				if _, ok := rle.GetAligned[byte](&br); !ok {
					return errors.Errorf("literal run truncated at run %d", run)
				}
			}
			tbl.Append([]string{
				fmt.Sprintf("%d", run), "literal", fmt.Sprintf("%d", groupCount*8), "-",
			})
		} else {
			repeatCount := indicator >> 1
			valueByte, ok := rle.GetAligned[byte](&br)
			if !ok {
				return errors.Errorf("repeated run missing value byte at run %d", run)
			}
			tbl.Append([]string{
				fmt.Sprintf("%d", run), "repeated", fmt.Sprintf("%d", repeatCount), boolString(valueByte&1 != 0),
			})
		}
		run++
	}
	tbl.Render()
	return nil
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
