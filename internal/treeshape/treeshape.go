// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package treeshape parses binary tree shapes written with indentation, the
// format produced by Map.String. It is used by tests to build trees of an
// exact shape, including malformed ones.
//
// Each line holds one node: a label followed by optional space-separated
// attributes. The children of a node follow it, indented further, left child
// first. A node has either no children or exactly two lines of children; an
// absent child is written as "-":
//
//	4 black
//	 2 red
//	  1 black
//	  3 black
//	 5 black
//	  -
//	  6 red
package treeshape

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Node is a node of a parsed shape.
type Node struct {
	// Label is the first field of the node's line.
	Label string
	// Attrs holds the remaining fields of the node's line.
	Attrs []string
	// Left and Right are the children; nil when absent.
	Left, Right *Node
}

// Attr returns the value of the first attribute of the form name=value, and
// whether one exists.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if k, v, ok := strings.Cut(a, "="); ok && k == name {
			return v, true
		}
	}
	return "", false
}

// HasAttr returns true if the node carries the bare attribute name.
func (n *Node) HasAttr(name string) bool {
	return slices.Contains(n.Attrs, name)
}

// String returns the shape in the same indented form accepted by Parse.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat(" ", depth))
	if n == nil {
		b.WriteString("-\n")
		return
	}
	b.WriteString(strings.Join(append([]string{n.Label}, n.Attrs...), " "))
	b.WriteByte('\n')
	if n.Left == nil && n.Right == nil {
		return
	}
	n.Left.write(b, depth+1)
	n.Right.write(b, depth+1)
}

// Parse parses a multi-line shape with a single root. An input of "-" or
// "<empty>" denotes the empty tree and returns nil.
//
// The amount of indentation per level is arbitrary but must be consistent.
// Tabs cannot be used for indentation.
func Parse(input string) (*Node, error) {
	input = strings.TrimRight(input, "\n")
	switch strings.TrimSpace(input) {
	case "":
		return nil, errors.Errorf("empty input")
	case "-", "<empty>":
		return nil, nil
	}
	lines := strings.Split(input, "\n")
	indent := make([]int, len(lines))
	for i, line := range lines {
		level := len(line) - len(strings.TrimLeft(line, " "))
		if level == len(line) {
			return nil, errors.Errorf("empty line in input:\n%s", input)
		}
		if line[level] == '\t' {
			return nil, errors.Errorf("tab indentation in input:\n%s", input)
		}
		indent[i] = level
	}
	levels := slices.Clone(indent)
	slices.Sort(levels)
	levels = slices.Compact(levels)

	p := parser{input: input, lines: lines, indent: indent, levels: levels}
	root, next, err := p.parse(0, 0)
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.Errorf("root cannot be absent:\n%s", input)
	}
	if next != len(lines) {
		return nil, errors.Errorf("more than one root in input:\n%s", input)
	}
	return root, nil
}

type parser struct {
	input  string
	lines  []string
	indent []int
	levels []int
}

// parse parses the node on line i, which must be at levels[levelIdx], along
// with its children. It returns the index of the first line after the node's
// subtree.
func (p *parser) parse(levelIdx, i int) (*Node, int, error) {
	if levelIdx >= len(p.levels) || p.indent[i] != p.levels[levelIdx] {
		return nil, 0, errors.Errorf("inconsistent indentation on line %d in input:\n%s", i+1, p.input)
	}
	fields := strings.Fields(p.lines[i])
	if fields[0] == "-" {
		if len(fields) > 1 {
			return nil, 0, errors.Errorf("absent child with attributes on line %d", i+1)
		}
		return nil, i + 1, nil
	}
	n := &Node{Label: fields[0], Attrs: fields[1:]}
	next := i + 1
	var children []*Node
	for next < len(p.lines) && p.indent[next] > p.indent[i] {
		c, after, err := p.parse(levelIdx+1, next)
		if err != nil {
			return nil, 0, err
		}
		children = append(children, c)
		next = after
	}
	switch len(children) {
	case 0:
	case 2:
		n.Left, n.Right = children[0], children[1]
		if n.Left == nil && n.Right == nil {
			return nil, 0, errors.Errorf("node %q lists two absent children; omit them instead", n.Label)
		}
	default:
		return nil, 0, errors.Errorf("node %q has %d children; use - for an absent child", n.Label, len(children))
	}
	return n, next, nil
}
