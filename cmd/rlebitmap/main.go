// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command rlebitmap is an introspection tool for the rle and rleblk wire
// formats: it encodes a bit pattern given on the command line, decodes a
// previously encoded block, or dumps the run structure of one.
package main

import (
	"log"

	"github.com/spf13/cobra"
)

var (
	framed bool
	hex    bool
)

var rootCmd = &cobra.Command{
	Use:   "rlebitmap [command] (flags)",
	Short: "inspect rle/rleblk encoded boolean streams",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		encodeCmd,
		decodeCmd,
		inspectCmd,
	)

	for _, cmd := range []*cobra.Command{encodeCmd, decodeCmd, inspectCmd} {
		cmd.Flags().BoolVar(&framed, "framed", false,
			"treat the stream as a checksummed rleblk block rather than a bare rle stream")
		cmd.Flags().BoolVar(&hex, "hex", true,
			"read/write the wire bytes as hex on stdin/stdout rather than raw binary")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
