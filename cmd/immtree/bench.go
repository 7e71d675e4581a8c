// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/cockroachdb/crlib/crhumanize"
	"github.com/cockroachdb/crlib/crtime"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/immtree"
	"github.com/cockroachdb/immtree/internal/randvar"
	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var benchConfig struct {
	keys          string
	initial       int
	readPercent   int
	deletePercent int
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "run a mixed find/insert/delete workload",
	Long: `
Loads a map with --num keys, then runs --concurrency workers for --duration.
Every worker starts from the loaded map and derives its own versions from
it, so all workers read and extend a shared structure without locking.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if p := benchConfig.readPercent; p < 0 || p > 100 {
			return errors.Newf("--read-percent must be in [0, 100], got %d", p)
		}
		if p := benchConfig.deletePercent; p < 0 || p > 100 {
			return errors.Newf("--delete-percent must be in [0, 100], got %d", p)
		}
		for _, s := range strategies {
			res, err := runBench(context.Background(), s)
			if err != nil {
				return err
			}
			res.write(os.Stdout)
		}
		return nil
	},
}

const (
	opFind   = "find"
	opInsert = "insert"
	opDelete = "delete"
)

var benchOps = []string{opFind, opInsert, opDelete}

// benchMetrics holds the prometheus view of a run.
type benchMetrics struct {
	registry *prometheus.Registry
	latency  *prometheus.HistogramVec
	height   prometheus.Gauge
}

func newBenchMetrics(s immtree.Strategy) *benchMetrics {
	m := &benchMetrics{
		registry: prometheus.NewRegistry(),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "immtree",
			Name:        "op_duration_seconds",
			Help:        "Latency of map operations.",
			ConstLabels: prometheus.Labels{"strategy": s.String()},
			Buckets:     prometheus.ExponentialBuckets(1e-7, 4, 12),
		}, []string{"op"}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "immtree",
			Name:        "height",
			Help:        "Height of the most recent version.",
			ConstLabels: prometheus.Labels{"strategy": s.String()},
		}),
	}
	m.registry.MustRegister(m.latency, m.height)
	return m
}

type benchResult struct {
	strategy immtree.Strategy
	elapsed  time.Duration
	hists    map[string]*namedHistogram
	metrics  *benchMetrics
}

func runBench(ctx context.Context, s immtree.Strategy) (*benchResult, error) {
	rng := randvar.NewSeededRand(seed)
	keys, err := randvar.Parse(rng, benchConfig.keys)
	if err != nil {
		return nil, err
	}
	res := &benchResult{
		strategy: s,
		hists:    make(map[string]*namedHistogram),
		metrics:  newBenchMetrics(s),
	}
	for _, op := range benchOps {
		res.hists[op] = newNamedHistogram(op)
	}

	base := immtree.Empty[uint64, uint64](s)
	loadStart := crtime.NowMono()
	for i := 0; i < benchConfig.initial; i++ {
		k := keys.Uint64()
		base = base.Insert(k, k)
	}
	if verbose {
		log.Printf("%s: loaded %s keys (%s distinct) in %s, height %d",
			s, crhumanize.Count(int64(benchConfig.initial), crhumanize.Compact),
			crhumanize.Count(int64(base.Len()), crhumanize.Compact),
			loadStart.Elapsed(), base.Height())
	}

	ctx, cancel := context.WithTimeout(ctx, duration)
	defer cancel()
	start := crtime.NowMono()
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < concurrency; w++ {
		workerRng := randvar.NewSeededRand(seed + uint64(w) + 1)
		g.Go(func() error {
			return benchWorker(ctx, w, base, keys, workerRng.Intn, res)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	res.elapsed = start.Elapsed()
	return res, nil
}

func benchWorker(
	ctx context.Context,
	worker int,
	m immtree.Map[uint64, uint64],
	keys randvar.Static,
	intn func(int) int,
	res *benchResult,
) error {
	local := make(map[string]*hdrhistogram.Histogram, len(benchOps))
	observers := make(map[string]prometheus.Observer, len(benchOps))
	for _, op := range benchOps {
		local[op] = newHistogram()
		observers[op] = res.metrics.latency.WithLabelValues(op)
	}
	record := func(op string, start crtime.Mono) error {
		elapsed := min(max(start.Elapsed(), minLatency), maxLatency)
		observers[op].Observe(elapsed.Seconds())
		return local[op].RecordValue(elapsed.Nanoseconds())
	}

	var ops int
	for ; ctx.Err() == nil; ops++ {
		k := keys.Uint64()
		op := opFind
		if intn(100) >= benchConfig.readPercent {
			op = opInsert
			if intn(100) < benchConfig.deletePercent {
				op = opDelete
			}
		}
		start := crtime.NowMono()
		switch op {
		case opFind:
			m.Find(k)
		case opInsert:
			m = m.Insert(k, k)
		case opDelete:
			m = m.Delete(k)
		}
		if err := record(op, start); err != nil {
			return errors.Wrapf(err, "worker %d", worker)
		}
	}
	for _, op := range benchOps {
		res.hists[op].Merge(local[op])
	}
	res.metrics.height.Set(float64(m.Height()))
	if verbose {
		log.Printf("%s: worker %d: %d ops, final version holds %d keys",
			res.strategy, worker, ops, m.Len())
	}
	return nil
}

func (r *benchResult) write(w io.Writer) {
	fmt.Fprintf(w, "strategy=%s elapsed=%s\n", r.strategy, r.elapsed.Round(time.Millisecond))
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"op", "ops", "ops/sec", "p50(ns)", "p95(ns)", "p99(ns)", "pMax(ns)"})
	for _, op := range benchOps {
		h := r.hists[op].Snapshot()
		if h.TotalCount() == 0 {
			continue
		}
		tbl.Append([]string{
			op,
			string(crhumanize.Count(h.TotalCount(), crhumanize.Compact)),
			fmt.Sprintf("%.0f", float64(h.TotalCount())/r.elapsed.Seconds()),
			fmt.Sprint(h.ValueAtQuantile(50)),
			fmt.Sprint(h.ValueAtQuantile(95)),
			fmt.Sprint(h.ValueAtQuantile(99)),
			fmt.Sprint(h.Max()),
		})
	}
	tbl.Render()

	families, err := r.metrics.registry.Gather()
	if err != nil {
		fmt.Fprintf(w, "gathering metrics: %v\n", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(w, "%s{%s} %s\n", mf.GetName(), formatLabels(m.GetLabel()), formatValue(mf.GetType(), m))
		}
	}
}

func formatLabels(labels []*dto.LabelPair) string {
	var s string
	for i, l := range labels {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%s=%q", l.GetName(), l.GetValue())
	}
	return s
}

func formatValue(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("count=%d sum=%.6fs", h.GetSampleCount(), h.GetSampleSum())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%g", m.GetGauge().GetValue())
	default:
		return t.String()
	}
}
