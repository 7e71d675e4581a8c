// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package immtree implements a persistent ordered map.
//
// A Map is an immutable value. Insert and Delete return a new Map that shares
// every subtree it did not need to change with the Map they were called on;
// the original Map remains valid and observably unchanged. Keeping an old
// version around costs O(1), which makes Maps suitable as the index of
// snapshot-able stores, undo logs and similar version-preserving structures.
//
// Two balancing strategies are available (see Strategy). They are
// interchangeable: call sites only deal with Map.
//
// # Concurrency
//
// Nodes are never modified once they are reachable from a Map that was
// returned to the caller. Any number of goroutines may therefore call Find,
// Insert and Delete concurrently, on the same Map or on Maps sharing
// structure, without synchronization. Unreachable nodes are reclaimed by the
// garbage collector once the last Map referencing them is dropped.
package immtree

import (
	"cmp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/immtree/internal/invariants"
)

// Map is one immutable version of a persistent ordered map from K to V.
//
// The zero Map is empty and can be read, but it has no comparer: use Empty or
// New to obtain a Map that can be inserted into.
type Map[K, V any] struct {
	cmp      func(a, b K) int
	root     tree[K, V]
	length   int
	strategy Strategy
}

// Empty returns an empty Map ordered by cmp.Compare, balanced with strategy
// s.
func Empty[K cmp.Ordered, V any](s Strategy) Map[K, V] {
	m, err := New[K, V](Options[K]{Compare: cmp.Compare[K], Strategy: s})
	if err != nil {
		panic(err)
	}
	return m
}

// New returns an empty Map configured by opts.
func New[K, V any](opts Options[K]) (Map[K, V], error) {
	o := (&opts).EnsureDefaults()
	if err := o.Validate(); err != nil {
		return Map[K, V]{}, err
	}
	return Map[K, V]{
		cmp:      o.Compare,
		root:     newTree[K, V](o.Strategy),
		strategy: o.Strategy,
	}, nil
}

// Len returns the number of keys in the map. It runs in constant time.
func (m Map[K, V]) Len() int {
	return m.length
}

// Strategy returns the balancing strategy of the map.
func (m Map[K, V]) Strategy() Strategy {
	return m.strategy
}

// Height returns the number of nodes on the longest path from the root to a
// leaf, or 0 for an empty map. AVL maps record heights and answer in constant
// time; RedBlack maps walk the whole tree.
func (m Map[K, V]) Height() int {
	if m.root == nil {
		return 0
	}
	return m.root.height()
}

// Find returns the value stored under key and true, or the zero value and
// false if key is absent. Find does not allocate.
func (m Map[K, V]) Find(key K) (V, bool) {
	if m.root == nil {
		var zero V
		return zero, false
	}
	return m.root.find(m.cmp, key)
}

// FindDefault returns the value stored under key, or def if key is absent.
func (m Map[K, V]) FindDefault(key K, def V) V {
	if v, ok := m.Find(key); ok {
		return v
	}
	return def
}

// Insert returns a map in which key is associated with value. If key is
// already present its value is replaced and Len is unchanged; otherwise Len
// grows by one. The receiver is not modified.
func (m Map[K, V]) Insert(key K, value V) Map[K, V] {
	if m.cmp == nil {
		panic(errorf("immtree: Insert called on a Map without a comparer"))
	}
	root, added := m.root.insert(m.cmp, key, value)
	n := m
	n.root = root
	if added {
		n.length++
	}
	n.maybeVerify()
	return n
}

// Delete returns a map without key. If key is absent the receiver is returned
// as is. The receiver is not modified.
func (m Map[K, V]) Delete(key K) Map[K, V] {
	if m.length == 0 {
		return m
	}
	root, removed := m.root.delete(m.cmp, key)
	if !removed {
		return m
	}
	n := m
	n.root = root
	n.length--
	n.maybeVerify()
	return n
}

// Verify checks every structural invariant of the map: key order, the
// balancing invariants of its strategy and the recorded length. It returns
// nil if the map is well formed. Verify runs in linear time; it exists for
// tests and for callers that supply their own comparer and want to detect a
// comparer that is not a total order.
func (m Map[K, V]) Verify() error {
	if m.root == nil {
		if m.length != 0 {
			return errorf("immtree: zero map reports length %d", m.length)
		}
		return nil
	}
	count, err := m.root.verify(m.cmp)
	if err != nil {
		return errors.Wrapf(err, "immtree: %s map", m.strategy)
	}
	if count != m.length {
		return errorf("immtree: %s map reports length %d but holds %d nodes", m.strategy, m.length, count)
	}
	return nil
}

// String returns an indented description of the tree, one node per line, the
// left child before the right child. An absent child is printed as "-" when
// its sibling exists. Every node is annotated with its balancing metadata.
func (m Map[K, V]) String() string {
	if m.root == nil || m.length == 0 {
		return "<empty>\n"
	}
	var b strings.Builder
	writeShape(&b, m.root.shape(), 0)
	return b.String()
}

// maybeVerify validates a newly built version in invariant builds. Large maps
// are only sampled since validation is linear in the size of the map.
func (m Map[K, V]) maybeVerify() {
	if invariants.Enabled && (m.length < 1024 || invariants.Sometimes(1)) {
		invariants.Check(m.Verify())
	}
}

func errorf(format string, args ...interface{}) error {
	return errors.AssertionFailedf(format, args...)
}
