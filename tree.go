// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import "strings"

// tree is the capability shared by the balancing engines. An implementation
// is a small immutable value wrapping a root node; every method that
// "modifies" the tree returns a new value and leaves the receiver, and every
// node reachable from it, untouched.
type tree[K, V any] interface {
	// find returns the value stored under key.
	find(cmp func(K, K) int, key K) (V, bool)
	// insert returns a tree containing key, and whether key was absent from
	// the receiver.
	insert(cmp func(K, K) int, key K, value V) (tree[K, V], bool)
	// delete returns a tree without key, and whether key was present in the
	// receiver. When key is absent the receiver itself is returned.
	delete(cmp func(K, K) int, key K) (tree[K, V], bool)
	// height returns the number of nodes on the longest root-to-leaf path.
	height() int
	// verify checks the engine's structural invariants and returns the
	// number of reachable nodes.
	verify(cmp func(K, K) int) (int, error)
	// shape returns the root of the tree in engine-neutral form, for
	// formatting. It returns nil for an empty tree.
	shape() shapeNode
}

// shapeNode is a read-only view of a node used by the debug formatters.
type shapeNode interface {
	label() string
	annotation() string
	children() (left, right shapeNode)
}

func newTree[K, V any](s Strategy) tree[K, V] {
	switch s {
	case AVL:
		return avlTree[K, V]{}
	case RedBlack:
		return rbTree[K, V]{}
	default:
		panic(errorf("immtree: unknown strategy %s", s))
	}
}

// writeShape writes the indented form of the subtree rooted at n to b. An
// absent child is written as "-" when its sibling is present.
func writeShape(b *strings.Builder, n shapeNode, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteByte(' ')
	}
	if n == nil {
		b.WriteString("-\n")
		return
	}
	b.WriteString(n.label())
	if a := n.annotation(); a != "" {
		b.WriteByte(' ')
		b.WriteString(a)
	}
	b.WriteByte('\n')
	l, r := n.children()
	if l == nil && r == nil {
		return
	}
	writeShape(b, l, depth+1)
	writeShape(b, r, depth+1)
}
