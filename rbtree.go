// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import "fmt"

type color uint8

const (
	red color = iota
	black
)

func (c color) String() string {
	if c == red {
		return "red"
	}
	return "black"
}

// rbNode is a node of a color-balanced tree. Like avlNode, it is immutable
// once published. Every operation below builds new nodes instead of
// re-linking existing ones: a red/black rebalance may recolor or rotate
// nodes that are not on the search path, and those are shared with older
// versions.
type rbNode[K, V any] struct {
	key   K
	value V
	color color
	left  *rbNode[K, V]
	right *rbNode[K, V]
}

func mkRB[K, V any](c color, key K, value V, left, right *rbNode[K, V]) *rbNode[K, V] {
	return &rbNode[K, V]{key: key, value: value, color: c, left: left, right: right}
}

func (n *rbNode[K, V]) isRed() bool {
	return n != nil && n.color == red
}

func (n *rbNode[K, V]) isBlack() bool {
	return n != nil && n.color == black
}

// withColor returns n painted c, copying n if its color differs.
func (n *rbNode[K, V]) withColor(c color) *rbNode[K, V] {
	if n == nil || n.color == c {
		return n
	}
	return mkRB(c, n.key, n.value, n.left, n.right)
}

// rbTree is the color-balanced engine.
type rbTree[K, V any] struct {
	root *rbNode[K, V]
}

var _ tree[int, int] = rbTree[int, int]{}

func (t rbTree[K, V]) find(cmp func(K, K) int, key K) (V, bool) {
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

func (t rbTree[K, V]) height() int {
	return rbHeight(t.root)
}

func rbHeight[K, V any](n *rbNode[K, V]) int {
	if n == nil {
		return 0
	}
	return 1 + max(rbHeight(n.left), rbHeight(n.right))
}

func (t rbTree[K, V]) insert(cmp func(K, K) int, key K, value V) (tree[K, V], bool) {
	root, added := rbInsert(t.root, cmp, key, value)
	// The root was allocated by rbInsert and is not reachable from any other
	// version yet, so it can be repainted in place.
	root.color = black
	return rbTree[K, V]{root: root}, added
}

// rbInsert copies the search path, placing a new red leaf at the bottom, and
// applies rbBalance to every copied ancestor on the way back up.
func rbInsert[K, V any](
	n *rbNode[K, V], cmp func(K, K) int, key K, value V,
) (*rbNode[K, V], bool) {
	if n == nil {
		return mkRB(red, key, value, nil, nil), true
	}
	c := cmp(key, n.key)
	switch {
	case c < 0:
		l, added := rbInsert(n.left, cmp, key, value)
		return rbBalance(n.color, n.key, n.value, l, n.right), added
	case c > 0:
		r, added := rbInsert(n.right, cmp, key, value)
		return rbBalance(n.color, n.key, n.value, n.left, r), added
	default:
		return mkRB(n.color, key, value, n.left, n.right), false
	}
}

// rbBalance builds a node of color c over l and r, resolving a red node with
// a red child directly below a black node. The four shapes
//
//	left-left:   c=black, l=red, l.left=red
//	left-right:  c=black, l=red, l.right=red
//	right-left:  c=black, r=red, r.left=red
//	right-right: c=black, r=red, r.right=red
//
// all become a red node with two black children, which keeps the black
// height of the subtree unchanged.
func rbBalance[K, V any](c color, key K, value V, l, r *rbNode[K, V]) *rbNode[K, V] {
	if c == black {
		if l.isRed() {
			if l.left.isRed() {
				return mkRB(red, l.key, l.value,
					l.left.withColor(black),
					mkRB(black, key, value, l.right, r))
			}
			if l.right.isRed() {
				lr := l.right
				return mkRB(red, lr.key, lr.value,
					mkRB(black, l.key, l.value, l.left, lr.left),
					mkRB(black, key, value, lr.right, r))
			}
		}
		if r.isRed() {
			if r.left.isRed() {
				rl := r.left
				return mkRB(red, rl.key, rl.value,
					mkRB(black, key, value, l, rl.left),
					mkRB(black, r.key, r.value, rl.right, r.right))
			}
			if r.right.isRed() {
				return mkRB(red, r.key, r.value,
					mkRB(black, key, value, l, r.left),
					r.right.withColor(black))
			}
		}
	}
	return mkRB(c, key, value, l, r)
}

func (t rbTree[K, V]) delete(cmp func(K, K) int, key K) (tree[K, V], bool) {
	if _, ok := t.find(cmp, key); !ok {
		return t, false
	}
	root := rbDelete(t.root, cmp, key)
	return rbTree[K, V]{root: root.withColor(black)}, true
}

// rbDelete removes key, which must be present, from the subtree rooted at n.
//
// When n is black the result has a black height one less than n; otherwise
// it keeps the black height of n. The result may be a red node with a red
// child; the caller repairs that (rbBalLeft, rbBalRight, or repainting the
// root).
func rbDelete[K, V any](n *rbNode[K, V], cmp func(K, K) int, key K) *rbNode[K, V] {
	if n == nil {
		return nil
	}
	c := cmp(key, n.key)
	switch {
	case c < 0:
		if n.left.isBlack() {
			return rbBalLeft(rbDelete(n.left, cmp, key), n.key, n.value, n.right)
		}
		return mkRB(red, n.key, n.value, rbDelete(n.left, cmp, key), n.right)
	case c > 0:
		if n.right.isBlack() {
			return rbBalRight(n.left, n.key, n.value, rbDelete(n.right, cmp, key))
		}
		return mkRB(red, n.key, n.value, n.left, rbDelete(n.right, cmp, key))
	default:
		return rbFuse(n.left, n.right)
	}
}

// rbBalLeft rebuilds a node over l and r where l's black height is one less
// than r's.
func rbBalLeft[K, V any](l *rbNode[K, V], key K, value V, r *rbNode[K, V]) *rbNode[K, V] {
	if l.isRed() {
		return mkRB(red, key, value, l.withColor(black), r)
	}
	if r.isBlack() {
		return rbBalanceRight(l, key, value, r.withColor(red))
	}
	if r.isRed() && r.left.isBlack() {
		rl := r.left
		return mkRB(red, rl.key, rl.value,
			mkRB(black, key, value, l, rl.left),
			rbBalanceRight(rl.right, r.key, r.value, r.right.withColor(red)))
	}
	panic(errorf("immtree: redblack: black height violation rebalancing left of %v", key))
}

// rbBalRight rebuilds a node over l and r where r's black height is one less
// than l's.
func rbBalRight[K, V any](l *rbNode[K, V], key K, value V, r *rbNode[K, V]) *rbNode[K, V] {
	if r.isRed() {
		return mkRB(red, key, value, l, r.withColor(black))
	}
	if l.isBlack() {
		return rbBalanceLeft(l.withColor(red), key, value, r)
	}
	if l.isRed() && l.right.isBlack() {
		lr := l.right
		return mkRB(red, lr.key, lr.value,
			rbBalanceLeft(l.left.withColor(red), l.key, l.value, lr.left),
			mkRB(black, key, value, lr.right, r))
	}
	panic(errorf("immtree: redblack: black height violation rebalancing right of %v", key))
}

// rbBalanceLeft builds a black node over l and r, rotating if l is red with a
// red child.
func rbBalanceLeft[K, V any](l *rbNode[K, V], key K, value V, r *rbNode[K, V]) *rbNode[K, V] {
	if l.isRed() {
		if l.left.isRed() {
			return mkRB(red, l.key, l.value,
				l.left.withColor(black),
				mkRB(black, key, value, l.right, r))
		}
		if l.right.isRed() {
			lr := l.right
			return mkRB(red, lr.key, lr.value,
				mkRB(black, l.key, l.value, l.left, lr.left),
				mkRB(black, key, value, lr.right, r))
		}
	}
	return mkRB(black, key, value, l, r)
}

// rbBalanceRight builds a black node over l and r, rotating if r is red with
// a red child. The right-right shape is checked first.
func rbBalanceRight[K, V any](l *rbNode[K, V], key K, value V, r *rbNode[K, V]) *rbNode[K, V] {
	if r.isRed() {
		if r.right.isRed() {
			return mkRB(red, r.key, r.value,
				mkRB(black, key, value, l, r.left),
				r.right.withColor(black))
		}
		if r.left.isRed() {
			rl := r.left
			return mkRB(red, rl.key, rl.value,
				mkRB(black, key, value, l, rl.left),
				mkRB(black, r.key, r.value, rl.right, r.right))
		}
	}
	return mkRB(black, key, value, l, r)
}

// rbFuse joins the two subtrees of a deleted node. Every key in l is less than
// every key in r, and both have the same black height.
func rbFuse[K, V any](l, r *rbNode[K, V]) *rbNode[K, V] {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	case l.color == red && r.color == red:
		m := rbFuse(l.right, r.left)
		if m.isRed() {
			return mkRB(red, m.key, m.value,
				mkRB(red, l.key, l.value, l.left, m.left),
				mkRB(red, r.key, r.value, m.right, r.right))
		}
		return mkRB(red, l.key, l.value, l.left, mkRB(red, r.key, r.value, m, r.right))
	case l.color == black && r.color == black:
		m := rbFuse(l.right, r.left)
		if m.isRed() {
			return mkRB(red, m.key, m.value,
				mkRB(black, l.key, l.value, l.left, m.left),
				mkRB(black, r.key, r.value, m.right, r.right))
		}
		return rbBalLeft(l.left, l.key, l.value, mkRB(black, r.key, r.value, m, r.right))
	case r.color == red:
		return mkRB(red, r.key, r.value, rbFuse(l, r.left), r.right)
	default:
		return mkRB(red, l.key, l.value, l.left, rbFuse(l.right, r))
	}
}

func (t rbTree[K, V]) verify(cmp func(K, K) int) (int, error) {
	if t.root.isRed() {
		return 0, errorf("root %v is red", t.root.key)
	}
	count, _, err := verifyRB(t.root, cmp, nil, nil)
	return count, err
}

// verifyRB checks the subtree rooted at n and returns its node count and
// black height (counting the nil leaves as one).
func verifyRB[K, V any](
	n *rbNode[K, V], cmp func(K, K) int, lo, hi *K,
) (count, blackHeight int, err error) {
	if n == nil {
		return 0, 1, nil
	}
	if err := checkBounds(cmp, n.key, lo, hi); err != nil {
		return 0, 0, err
	}
	if n.color == red && (n.left.isRed() || n.right.isRed()) {
		return 0, 0, errorf("red node %v has a red child", n.key)
	}
	lc, lbh, err := verifyRB(n.left, cmp, lo, &n.key)
	if err != nil {
		return 0, 0, err
	}
	rc, rbh, err := verifyRB(n.right, cmp, &n.key, hi)
	if err != nil {
		return 0, 0, err
	}
	if lbh != rbh {
		return 0, 0, errorf("node %v has black height %d on the left, %d on the right",
			n.key, lbh, rbh)
	}
	if n.color == black {
		lbh++
	}
	return lc + rc + 1, lbh, nil
}

func (t rbTree[K, V]) shape() shapeNode {
	return t.root.asShape()
}

func (n *rbNode[K, V]) asShape() shapeNode {
	if n == nil {
		return nil
	}
	return n
}

func (n *rbNode[K, V]) label() string      { return fmt.Sprint(n.key) }
func (n *rbNode[K, V]) annotation() string { return n.color.String() }

func (n *rbNode[K, V]) children() (left, right shapeNode) {
	return n.left.asShape(), n.right.asShape()
}
