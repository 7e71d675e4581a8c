// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree_test

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/immtree"
)

func Example() {
	m0 := immtree.Empty[int, string](immtree.AVL)
	m1 := m0.Insert(5, "a")
	m2 := m1.Insert(3, "b").Insert(5, "c")

	// Every version remains readable.
	fmt.Println(m0.Len(), m1.Len(), m2.Len())
	v, _ := m1.Find(5)
	fmt.Println(v, m2.FindDefault(5, "?"), m2.FindDefault(4, "?"))
	fmt.Print(m2)
	// Output:
	// 0 1 2
	// a c ?
	// 5 h=2
	//  3 h=1
	//  -
}

func ExampleNew() {
	m, err := immtree.New[string, int](immtree.Options[string]{
		Compare:  func(a, b string) int { return strings.Compare(strings.ToLower(a), strings.ToLower(b)) },
		Strategy: immtree.RedBlack,
	})
	if err != nil {
		panic(err)
	}
	m = m.Insert("Apple", 1).Insert("apple", 2).Insert("banana", 3)
	fmt.Println(m.Len(), m.FindDefault("APPLE", 0))
	// Output:
	// 2 2
}

func ExampleMap_Diagram() {
	m := immtree.Empty[int, struct{}](immtree.AVL)
	for _, k := range []int{1, 2, 3, 4, 5} {
		m = m.Insert(k, struct{}{})
	}
	fmt.Println(m.Diagram())
	// Output:
	//   2
	//  /  \
	// 1     4
	//      / \
	//     3   5
}
