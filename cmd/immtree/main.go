// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Command immtree exercises persistent maps: it benchmarks them, checks their
// invariants over long randomized runs, and draws small trees.
package main

import (
	"log"
	"os"
	"time"

	"github.com/cockroachdb/immtree"
	"github.com/spf13/cobra"
)

var (
	concurrency int
	duration    time.Duration
	seed        uint64
	strategies  = strategyList{immtree.AVL, immtree.RedBlack}
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "immtree [command] (flags)",
	Short: "persistent map benchmarking/introspection tool",
	Long:  ``,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		benchCmd,
		checkCmd,
		showCmd,
	)

	for _, cmd := range []*cobra.Command{benchCmd, checkCmd, showCmd} {
		cmd.Flags().VarP(
			&strategies, "strategy", "s", "comma-separated balancing strategies (avl, redblack)")
		cmd.Flags().BoolVarP(
			&verbose, "verbose", "v", false, "enable verbose logging")
	}
	for _, cmd := range []*cobra.Command{benchCmd, checkCmd} {
		cmd.Flags().Uint64Var(
			&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	}

	benchCmd.Flags().IntVarP(
		&concurrency, "concurrency", "c", 1, "number of concurrent workers")
	benchCmd.Flags().DurationVarP(
		&duration, "duration", "d", 10*time.Second, "the duration to run")
	benchCmd.Flags().StringVar(
		&benchConfig.keys, "keys", "uniform:0-1000000",
		"key distribution, of the form [uniform|zipf|seq:]min[-max]")
	benchCmd.Flags().IntVarP(
		&benchConfig.initial, "num", "n", 100000, "number of keys loaded before the run")
	benchCmd.Flags().IntVar(
		&benchConfig.readPercent, "read-percent", 50,
		"Percent (0-100) of operations that are finds")
	benchCmd.Flags().IntVar(
		&benchConfig.deletePercent, "delete-percent", 10,
		"Percent (0-100) of the remaining operations that are deletes")

	checkCmd.Flags().IntVarP(
		&checkConfig.keys, "num", "n", 1000, "number of distinct keys to insert")
	checkCmd.Flags().IntVar(
		&checkConfig.rounds, "rounds", 10, "number of independent maps to build")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
