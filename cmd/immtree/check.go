// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/immtree"
	"github.com/cockroachdb/immtree/internal/randvar"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var checkConfig struct {
	keys   int
	rounds int
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "build maps from random keys and verify every version",
	Long: `
Builds --rounds maps of --num distinct random keys each. Every version is
verified as it is created; once a map is complete, every key is re-inserted
and every earlier version is checked to still hold exactly the keys it held
when it was created.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(os.Stdout, strategies, checkConfig.rounds, checkConfig.keys, seed)
	},
}

type checkStats struct {
	strategy  immtree.Strategy
	versions  int
	maxHeight int
	start     crtime.Mono
}

func runCheck(w io.Writer, strategies []immtree.Strategy, rounds, keys int, seed uint64) error {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"strategy", "rounds", "versions", "max height", "elapsed"})
	for _, s := range strategies {
		stats := checkStats{strategy: s, start: crtime.NowMono()}
		rng := randvar.NewSeededRand(seed)
		for r := 0; r < rounds; r++ {
			if err := checkRound(&stats, rng, keys); err != nil {
				return errors.Wrapf(err, "%s: round %d (seed %d)", s, r, seed)
			}
			if verbose {
				log.Printf("%s: round %d ok", s, r)
			}
		}
		tbl.Append([]string{
			s.String(),
			fmt.Sprint(rounds),
			fmt.Sprint(stats.versions),
			fmt.Sprint(stats.maxHeight),
			stats.start.Elapsed().String(),
		})
	}
	tbl.Render()
	return nil
}

func checkRound(stats *checkStats, rng *rand.Rand, n int) error {
	keys := make([]uint64, 0, n)
	versions := make([]immtree.Map[uint64, int], 0, n)
	m := immtree.Empty[uint64, int](stats.strategy)
	for len(keys) < n {
		k := rng.Uint64()
		if _, ok := m.Find(k); ok {
			continue
		}
		m = m.Insert(k, len(keys))
		keys = append(keys, k)
		if err := m.Verify(); err != nil {
			return err
		}
		if m.Len() != len(keys) {
			return errors.Newf("inserting %d: length %d, want %d", k, m.Len(), len(keys))
		}
		versions = append(versions, m)
	}
	stats.versions += len(versions)
	stats.maxHeight = max(stats.maxHeight, m.Height())

	// Replacing values never changes the length or the height.
	replaced := m
	for _, k := range keys {
		next := replaced.Insert(k, -1)
		if next.Len() != replaced.Len() || next.Height() != replaced.Height() {
			return errors.Newf("replacing %d changed length %d->%d or height %d->%d",
				k, replaced.Len(), next.Len(), replaced.Height(), next.Height())
		}
		replaced = next
	}
	if err := replaced.Verify(); err != nil {
		return err
	}

	for i, v := range versions {
		if v.Len() != i+1 {
			return errors.Newf("version %d: length %d", i, v.Len())
		}
		for j, k := range keys {
			got, ok := v.Find(k)
			switch {
			case j <= i && (!ok || got != j):
				return errors.Newf("version %d: find(%d) = %d, %t; want %d", i, k, got, ok, j)
			case j > i && ok:
				return errors.Newf("version %d: holds %d, inserted later", i, k)
			}
		}
	}
	return nil
}
