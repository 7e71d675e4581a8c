// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import "github.com/cockroachdb/immtree/internal/ascii"

// Diagram returns a top-down drawing of the tree. Nodes are laid out in key
// order from left to right, one level per pair of rows:
//
//	  2
//	 / \
//	1   3
//
// Diagram is meant for debugging small maps; its output is proportional to
// the number of keys in both dimensions.
func (m Map[K, V]) Diagram() string {
	if m.root == nil || m.length == 0 {
		return "<empty>"
	}
	var d diagrammer
	d.board = ascii.Make(4*m.length, 2*m.Height())
	d.draw(m.root.shape(), 0)
	return d.board.String()
}

type diagrammer struct {
	board ascii.Board
	// col is the first free column, in key order.
	col int
}

// draw lays out the subtree rooted at n with its root on row 2*depth and
// returns the column of the center of n's label.
func (d *diagrammer) draw(n shapeNode, depth int) int {
	l, r := n.children()
	var lc, rc int
	if l != nil {
		lc = d.draw(l, depth+1)
	}
	label := n.label()
	start := d.col
	d.board.At(2*depth, start).WriteString(label)
	center := start + (len([]rune(label))-1)/2
	d.col = start + len([]rune(label)) + 1
	if r != nil {
		rc = d.draw(r, depth+1)
	}
	if l != nil {
		d.board.At(2*depth+1, (lc+center)/2).WriteString("/")
	}
	if r != nil {
		d.board.At(2*depth+1, (center+rc+1)/2).WriteString(`\`)
	}
	return center
}
