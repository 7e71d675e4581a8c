// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func benchmarkMap(s Strategy, n int, rng *rand.Rand) (Map[uint64, uint64], []uint64) {
	keys := make([]uint64, n)
	m := Empty[uint64, uint64](s)
	for i := range keys {
		keys[i] = rng.Uint64()
		m = m.Insert(keys[i], keys[i])
	}
	return m, keys
}

func BenchmarkInsert(b *testing.B) {
	for _, s := range strategies {
		for _, n := range []int{1 << 10, 1 << 16} {
			b.Run(fmt.Sprintf("strategy=%s/size=%d", s, n), func(b *testing.B) {
				rng := rand.New(rand.NewPCG(0, 1))
				m, _ := benchmarkMap(s, n, rng)
				keys := make([]uint64, 1024)
				for i := range keys {
					keys[i] = rng.Uint64()
				}
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					k := keys[i%len(keys)]
					_ = m.Insert(k, k)
				}
			})
		}
	}
}

func BenchmarkFind(b *testing.B) {
	for _, s := range strategies {
		for _, n := range []int{1 << 10, 1 << 16} {
			b.Run(fmt.Sprintf("strategy=%s/size=%d", s, n), func(b *testing.B) {
				m, keys := benchmarkMap(s, n, rand.New(rand.NewPCG(0, 1)))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if _, ok := m.Find(keys[i%len(keys)]); !ok {
						b.Fatal("key not found")
					}
				}
			})
		}
	}
}

func BenchmarkDelete(b *testing.B) {
	for _, s := range strategies {
		b.Run(fmt.Sprintf("strategy=%s", s), func(b *testing.B) {
			m, keys := benchmarkMap(s, 1<<16, rand.New(rand.NewPCG(0, 1)))
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = m.Delete(keys[i%len(keys)])
			}
		})
	}
}
