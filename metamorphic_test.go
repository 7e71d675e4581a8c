// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import (
	"maps"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/cockroachdb/metamorphic"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

// snapshot pairs a version of a map with the contents it must hold forever.
type snapshot struct {
	m     Map[int, int]
	model map[int]int
}

// TestMetamorphic applies a random sequence of operations to a Map and to a
// Go map in lockstep. It occasionally rewinds to an older version, so
// operations are applied to versions that share structure with versions
// created later.
func TestMetamorphic(t *testing.T) {
	seed := time.Now().UnixNano()
	t.Logf("seed: %d", seed)
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		rng := rand.New(rand.NewSource(seed))
		const keySpace = 512

		m := Empty[int, int](s)
		model := map[int]int{}
		var snapshots []snapshot

		anyKey := func() int { return rng.Intn(keySpace) }
		existingKey := func() (int, bool) {
			if len(model) == 0 {
				return 0, false
			}
			keys := slices.Sorted(maps.Keys(model))
			return keys[rng.Intn(len(keys))], true
		}

		nextOp := metamorphic.Weighted[func()]{
			{Weight: 20, Item: func() {
				k, v := anyKey(), rng.Int()
				m = m.Insert(k, v)
				model[k] = v
			}},
			{Weight: 5, Item: func() {
				if k, ok := existingKey(); ok {
					v := rng.Int()
					n := m.Insert(k, v)
					require.Equal(t, m.Len(), n.Len())
					m = n
					model[k] = v
				}
			}},
			{Weight: 8, Item: func() {
				if k, ok := existingKey(); ok {
					m = m.Delete(k)
					delete(model, k)
				}
			}},
			{Weight: 3, Item: func() {
				k := anyKey()
				m = m.Delete(k)
				delete(model, k)
			}},
			{Weight: 10, Item: func() {
				k := anyKey()
				got, ok := m.Find(k)
				want, wantOK := model[k]
				require.Equal(t, wantOK, ok, "find(%d)", k)
				require.Equal(t, want, got, "find(%d)", k)
			}},
			{Weight: 2, Item: func() {
				snapshots = append(snapshots, snapshot{m: m, model: maps.Clone(model)})
			}},
			{Weight: 1, Item: func() {
				if len(snapshots) > 0 {
					snap := snapshots[rng.Intn(len(snapshots))]
					m, model = snap.m, maps.Clone(snap.model)
				}
			}},
		}.RandomDeck(rng)

		for i := 0; i < 5000; i++ {
			nextOp()()
			require.Equal(t, len(model), m.Len())
			if i%100 == 0 {
				require.NoError(t, m.Verify())
			}
		}
		require.NoError(t, m.Verify())
		checkContents(t, m, model)
		for _, snap := range snapshots {
			require.NoError(t, snap.m.Verify())
			checkContents(t, snap.m, snap.model)
		}
	})
}

func checkContents(t *testing.T, m Map[int, int], model map[int]int) {
	t.Helper()
	want := slices.Sorted(maps.Keys(model))
	got := keysOf(m)
	if diff := pretty.Diff(want, got); len(diff) > 0 {
		t.Fatalf("key sets differ:\n%s", diff)
	}
	for k, v := range model {
		require.Equal(t, v, m.FindDefault(k, -1))
	}
}
