// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import (
	"fmt"

	"github.com/cockroachdb/immtree/internal/invariants"
)

// avlNode is a node of a height-balanced tree. Once an avlNode is reachable
// from a Map returned to a caller it is never modified again; it may be a
// child of any number of trees.
type avlNode[K, V any] struct {
	key    K
	value  V
	height int32
	left   *avlNode[K, V]
	right  *avlNode[K, V]
}

func newAVLNode[K, V any](key K, value V, left, right *avlNode[K, V]) *avlNode[K, V] {
	n := &avlNode[K, V]{key: key, value: value, left: left, right: right}
	n.updateHeight()
	return n
}

func (n *avlNode[K, V]) getHeight() int32 {
	if n == nil {
		return 0
	}
	return n.height
}

// updateHeight recomputes the height of n from its children. It must only be
// called on nodes that have not been published yet.
func (n *avlNode[K, V]) updateHeight() {
	n.height = 1 + max(n.left.getHeight(), n.right.getHeight())
}

// avlPathInline is the number of ancestors recorded without allocating
// during an insert. An AVL tree of height 32 holds at least ~3.5 million
// keys; deeper trees spill the path onto the heap.
const avlPathInline = 32

// avlTree is the height-balanced engine.
type avlTree[K, V any] struct {
	root *avlNode[K, V]
}

var _ tree[int, int] = avlTree[int, int]{}

func (t avlTree[K, V]) find(cmp func(K, K) int, key K) (V, bool) {
	n := t.root
	for n != nil {
		c := cmp(key, n.key)
		switch {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.value, true
		}
	}
	var zero V
	return zero, false
}

func (t avlTree[K, V]) height() int {
	return int(t.root.getHeight())
}

// insert copies the search path top-down, then rebalances the copies
// bottom-up.
//
// During the descent every visited node is replaced by a copy whose child on
// the search side is left empty, to be filled in by the next step; the other
// child is shared with the original tree. path records the slots holding the
// copied ancestors so the ascent can revisit them without searching again.
// Only nodes allocated by this call are ever modified.
func (t avlTree[K, V]) insert(cmp func(K, K) int, key K, value V) (tree[K, V], bool) {
	var pathBuf [avlPathInline]**avlNode[K, V]
	path := pathBuf[:0]
	var root *avlNode[K, V]
	slot := &root

	for n := t.root; n != nil; {
		c := cmp(key, n.key)
		switch {
		case c < 0:
			cp := &avlNode[K, V]{key: n.key, value: n.value, height: n.height, right: n.right}
			*slot = cp
			path = append(path, slot)
			slot = &cp.left
			n = n.left
		case c > 0:
			cp := &avlNode[K, V]{key: n.key, value: n.value, height: n.height, left: n.left}
			*slot = cp
			path = append(path, slot)
			slot = &cp.right
			n = n.right
		default:
			// Replacing a value never changes the shape of the tree, so the
			// copied ancestors already carry the right heights.
			*slot = &avlNode[K, V]{
				key: key, value: value, height: n.height, left: n.left, right: n.right,
			}
			return avlTree[K, V]{root: root}, false
		}
	}

	*slot = &avlNode[K, V]{key: key, value: value, height: 1}
	avlRebalance(path)
	return avlTree[K, V]{root: root}, true
}

// avlRebalance walks the copied ancestors recorded in path from the deepest
// to the shallowest, recomputing heights and rotating where a node has become
// unbalanced. The walk stops as soon as a subtree's height is the same as it
// was before the insert, since nothing above it can have changed.
func avlRebalance[K, V any](path []**avlNode[K, V]) {
	for i := len(path) - 1; i >= 0; i-- {
		n := *path[i]
		oldHeight := n.height
		n.updateHeight()

		lh, rh := n.left.getHeight(), n.right.getHeight()
		switch {
		case lh > rh+1:
			l := n.left
			llh, lrh := l.left.getHeight(), l.right.getHeight()
			invariants.Assertf(llh != lrh, "avl: left child of unbalanced node has equal subtree heights")
			if llh > lrh {
				*path[i] = rotateLL(n, l)
			} else {
				*path[i] = rotateLR(n, l, l.right)
			}
		case rh > lh+1:
			r := n.right
			rlh, rrh := r.left.getHeight(), r.right.getHeight()
			invariants.Assertf(rlh != rrh, "avl: right child of unbalanced node has equal subtree heights")
			if rrh > rlh {
				*path[i] = rotateRR(n, r)
			} else {
				*path[i] = rotateRL(n, r, r.left)
			}
		}
		if (*path[i]).height == oldHeight {
			return
		}
	}
}

// The four rotations below re-link nodes that were copied onto the search
// path by the current insert; they never touch a published node. Each
// returns the new local root with the heights of the re-linked nodes
// recomputed bottom-up.
//
// rotateLL turns n(l(a, b), c) into l(a, n(b, c)).
func rotateLL[K, V any](n, l *avlNode[K, V]) *avlNode[K, V] {
	n.left = l.right
	n.updateHeight()
	l.right = n
	l.updateHeight()
	return l
}

// rotateLR turns n(l(a, lr(b, c)), d) into lr(l(a, b), n(c, d)).
func rotateLR[K, V any](n, l, lr *avlNode[K, V]) *avlNode[K, V] {
	n.left = lr.right
	n.updateHeight()
	l.right = lr.left
	l.updateHeight()
	lr.left = l
	lr.right = n
	lr.updateHeight()
	return lr
}

// rotateRL turns n(a, r(rl(b, c), d)) into rl(n(a, b), r(c, d)).
func rotateRL[K, V any](n, r, rl *avlNode[K, V]) *avlNode[K, V] {
	n.right = rl.left
	n.updateHeight()
	r.left = rl.right
	r.updateHeight()
	rl.left = n
	rl.right = r
	rl.updateHeight()
	return rl
}

// rotateRR turns n(a, r(b, c)) into r(n(a, b), c).
func rotateRR[K, V any](n, r *avlNode[K, V]) *avlNode[K, V] {
	n.right = r.left
	n.updateHeight()
	r.left = n
	r.updateHeight()
	return r
}

func (t avlTree[K, V]) delete(cmp func(K, K) int, key K) (tree[K, V], bool) {
	root, removed := avlDelete(t.root, cmp, key)
	if !removed {
		return t, false
	}
	return avlTree[K, V]{root: root}, true
}

// avlDelete removes key from the subtree rooted at n. Unlike insert, the
// rebalancing rotations here may involve the sibling subtree, which is
// shared with older versions, so every node whose children change is
// rebuilt rather than re-linked.
func avlDelete[K, V any](
	n *avlNode[K, V], cmp func(K, K) int, key K,
) (*avlNode[K, V], bool) {
	if n == nil {
		return nil, false
	}
	c := cmp(key, n.key)
	switch {
	case c < 0:
		l, ok := avlDelete(n.left, cmp, key)
		if !ok {
			return n, false
		}
		return avlJoin(n.key, n.value, l, n.right), true
	case c > 0:
		r, ok := avlDelete(n.right, cmp, key)
		if !ok {
			return n, false
		}
		return avlJoin(n.key, n.value, n.left, r), true
	}
	switch {
	case n.left == nil:
		return n.right, true
	case n.right == nil:
		return n.left, true
	}
	succ, r := avlDeleteMin(n.right)
	return avlJoin(succ.key, succ.value, n.left, r), true
}

// avlDeleteMin removes the leftmost node of the subtree rooted at n. It
// returns that node and the remaining subtree.
func avlDeleteMin[K, V any](n *avlNode[K, V]) (minNode, rest *avlNode[K, V]) {
	if n.left == nil {
		return n, n.right
	}
	minNode, l := avlDeleteMin(n.left)
	return minNode, avlJoin(n.key, n.value, l, n.right)
}

// avlJoin builds a node holding key and value over the subtrees l and r,
// whose heights differ by at most two, rotating if needed. All nodes it
// returns are freshly allocated; l and r are only read.
func avlJoin[K, V any](key K, value V, l, r *avlNode[K, V]) *avlNode[K, V] {
	lh, rh := l.getHeight(), r.getHeight()
	switch {
	case lh > rh+1:
		if l.left.getHeight() >= l.right.getHeight() {
			return newAVLNode(l.key, l.value, l.left, newAVLNode(key, value, l.right, r))
		}
		lr := l.right
		return newAVLNode(lr.key, lr.value,
			newAVLNode(l.key, l.value, l.left, lr.left),
			newAVLNode(key, value, lr.right, r))
	case rh > lh+1:
		if r.right.getHeight() >= r.left.getHeight() {
			return newAVLNode(r.key, r.value, newAVLNode(key, value, l, r.left), r.right)
		}
		rl := r.left
		return newAVLNode(rl.key, rl.value,
			newAVLNode(key, value, l, rl.left),
			newAVLNode(r.key, r.value, rl.right, r.right))
	}
	return newAVLNode(key, value, l, r)
}

func (t avlTree[K, V]) verify(cmp func(K, K) int) (int, error) {
	count, _, err := verifyAVL(t.root, cmp, nil, nil)
	return count, err
}

// verifyAVL checks the subtree rooted at n, whose keys must lie strictly
// between lo and hi when those are non-nil. It returns the number of nodes
// and the recomputed height of the subtree.
func verifyAVL[K, V any](
	n *avlNode[K, V], cmp func(K, K) int, lo, hi *K,
) (count int, height int32, err error) {
	if n == nil {
		return 0, 0, nil
	}
	if err := checkBounds(cmp, n.key, lo, hi); err != nil {
		return 0, 0, err
	}
	lc, lh, err := verifyAVL(n.left, cmp, lo, &n.key)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := verifyAVL(n.right, cmp, &n.key, hi)
	if err != nil {
		return 0, 0, err
	}
	height = 1 + max(lh, rh)
	if n.height != height {
		return 0, 0, errorf("node %v records height %d, computed %d", n.key, n.height, height)
	}
	if lh-rh > 1 || rh-lh > 1 {
		return 0, 0, errorf("node %v is unbalanced: left height %d, right height %d", n.key, lh, rh)
	}
	return lc + rc + 1, height, nil
}

// checkBounds verifies that lo < key < hi, ignoring absent bounds.
func checkBounds[K any](cmp func(K, K) int, key K, lo, hi *K) error {
	if lo != nil && cmp(*lo, key) >= 0 {
		return errorf("key %v is not greater than its ancestor %v", key, *lo)
	}
	if hi != nil && cmp(key, *hi) >= 0 {
		return errorf("key %v is not less than its ancestor %v", key, *hi)
	}
	return nil
}

func (t avlTree[K, V]) shape() shapeNode {
	return t.root.asShape()
}

func (n *avlNode[K, V]) asShape() shapeNode {
	if n == nil {
		return nil
	}
	return n
}

func (n *avlNode[K, V]) label() string      { return fmt.Sprint(n.key) }
func (n *avlNode[K, V]) annotation() string { return fmt.Sprintf("h=%d", n.height) }

func (n *avlNode[K, V]) children() (left, right shapeNode) {
	return n.left.asShape(), n.right.asShape()
}
