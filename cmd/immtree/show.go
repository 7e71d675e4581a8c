// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/immtree"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <key>...",
	Short: "insert integer keys in order and print the resulting trees",
	Long: `
Inserts the given keys, in order, into an empty map of each strategy and
prints the tree. A key prefixed with "-" is deleted instead; separate the
keys from the flags with "--" when using deletions:

  immtree show -- 3 1 2 -1
`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow(os.Stdout, strategies, args)
	},
}

func runShow(w io.Writer, strategies []immtree.Strategy, args []string) error {
	for _, s := range strategies {
		m := immtree.Empty[int, struct{}](s)
		for _, arg := range args {
			del := len(arg) > 1 && arg[0] == '-'
			if del {
				arg = arg[1:]
			}
			k, err := strconv.Atoi(arg)
			if err != nil {
				return errors.Wrapf(err, "parsing key %q", arg)
			}
			if del {
				m = m.Delete(k)
			} else {
				m = m.Insert(k, struct{}{})
			}
		}
		fmt.Fprintf(w, "%s: %d keys, height %d\n", s, m.Len(), m.Height())
		fmt.Fprintf(w, "%s\n%s", m.Diagram(), m.String())
	}
	return nil
}
