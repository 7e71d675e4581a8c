// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import (
	"cmp"
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/immtree/internal/treeshape"
)

// keysOf returns the keys of m in traversal order.
func keysOf[K, V any](m Map[K, V]) []K {
	var keys []K
	switch t := m.root.(type) {
	case avlTree[K, V]:
		var walk func(n *avlNode[K, V])
		walk = func(n *avlNode[K, V]) {
			if n != nil {
				walk(n.left)
				keys = append(keys, n.key)
				walk(n.right)
			}
		}
		walk(t.root)
	case rbTree[K, V]:
		var walk func(n *rbNode[K, V])
		walk = func(n *rbNode[K, V]) {
			if n != nil {
				walk(n.left)
				keys = append(keys, n.key)
				walk(n.right)
			}
		}
		walk(t.root)
	}
	return keys
}

// defineMap builds a Map[int, string] with exactly the given shape, without
// any balancing or validation. Node labels are keys; the value of key k is
// "vk". AVL nodes take their height from an h=N attribute when present and
// compute it otherwise. Red/black nodes are black unless marked red.
func defineMap(s Strategy, shape *treeshape.Node) (Map[int, string], error) {
	m := Map[int, string]{cmp: cmp.Compare[int], strategy: s}
	var err error
	switch s {
	case AVL:
		var root *avlNode[int, string]
		root, m.length, err = defineAVL(shape)
		m.root = avlTree[int, string]{root: root}
	case RedBlack:
		var root *rbNode[int, string]
		root, m.length, err = defineRB(shape)
		m.root = rbTree[int, string]{root: root}
	default:
		err = errors.Newf("unknown strategy %s", s)
	}
	return m, err
}

func defineAVL(n *treeshape.Node) (*avlNode[int, string], int, error) {
	if n == nil {
		return nil, 0, nil
	}
	k, err := strconv.Atoi(n.Label)
	if err != nil {
		return nil, 0, err
	}
	l, lc, err := defineAVL(n.Left)
	if err != nil {
		return nil, 0, err
	}
	r, rc, err := defineAVL(n.Right)
	if err != nil {
		return nil, 0, err
	}
	node := newAVLNode(k, fmt.Sprintf("v%d", k), l, r)
	if h, ok := n.Attr("h"); ok {
		height, err := strconv.Atoi(h)
		if err != nil {
			return nil, 0, err
		}
		node.height = int32(height)
	}
	return node, lc + rc + 1, nil
}

func defineRB(n *treeshape.Node) (*rbNode[int, string], int, error) {
	if n == nil {
		return nil, 0, nil
	}
	k, err := strconv.Atoi(n.Label)
	if err != nil {
		return nil, 0, err
	}
	l, lc, err := defineRB(n.Left)
	if err != nil {
		return nil, 0, err
	}
	r, rc, err := defineRB(n.Right)
	if err != nil {
		return nil, 0, err
	}
	c := black
	if n.HasAttr("red") {
		c = red
	}
	return mkRB(c, k, fmt.Sprintf("v%d", k), l, r), lc + rc + 1, nil
}
