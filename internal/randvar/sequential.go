// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package randvar

import "sync/atomic"

// Sequential returns min, min+1, ..., max and then wraps around to min. It is
// the worst case for an unbalanced tree and exercises one rotation direction
// of a balanced one.
type Sequential struct {
	min, span uint64
	next      atomic.Uint64
}

var _ Static = (*Sequential)(nil)

// NewSequential constructs a new Sequential generator over [min, max].
func NewSequential(min, max uint64) *Sequential {
	return &Sequential{min: min, span: max - min + 1}
}

// Uint64 returns the next value of the sequence.
func (g *Sequential) Uint64() uint64 {
	i := g.next.Add(1) - 1
	if g.span == 0 {
		// The full uint64 range.
		return g.min + i
	}
	return g.min + i%g.span
}
