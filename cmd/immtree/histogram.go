// Copyright 2018 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

const (
	minLatency = 10 * time.Nanosecond
	maxLatency = 10 * time.Second
)

func newHistogram() *hdrhistogram.Histogram {
	return hdrhistogram.New(minLatency.Nanoseconds(), maxLatency.Nanoseconds(), 1)
}

// namedHistogram accumulates the latencies of one kind of operation. It is
// safe for concurrent use.
type namedHistogram struct {
	name string
	mu   struct {
		sync.Mutex
		hist *hdrhistogram.Histogram
	}
}

func newNamedHistogram(name string) *namedHistogram {
	w := &namedHistogram{name: name}
	w.mu.hist = newHistogram()
	return w
}

// Merge folds the latencies of a worker-local histogram into w.
func (w *namedHistogram) Merge(h *hdrhistogram.Histogram) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.mu.hist.Merge(h)
}

// Snapshot returns a copy of the accumulated histogram.
func (w *namedHistogram) Snapshot() *hdrhistogram.Histogram {
	w.mu.Lock()
	defer w.mu.Unlock()
	return hdrhistogram.Import(w.mu.hist.Export())
}
