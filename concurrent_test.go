// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// TestConcurrentVersions derives new versions from one shared base map on
// many goroutines at once. Run with -race to catch writes to shared nodes.
func TestConcurrentVersions(t *testing.T) {
	const (
		workers  = 8
		baseKeys = 1000
		perKey   = 200
	)
	forEachStrategy(t, func(t *testing.T, s Strategy) {
		base := Empty[int, int](s)
		for i := 0; i < baseKeys; i++ {
			base = base.Insert(i*2, i)
		}

		results := make([]Map[int, int], workers)
		g, ctx := errgroup.WithContext(context.Background())
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				m := base
				for i := 0; i < perKey; i++ {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					// Odd keys are new, even keys replace or delete base keys.
					m = m.Insert(2*(w*perKey+i)+1, w)
					m = m.Insert(2*i, -w)
					if i%3 == 0 {
						m = m.Delete(2 * (baseKeys - 1 - i))
					}
					if v, ok := base.Find(2 * i); !ok || v != i {
						return errors.Newf("worker %d: base changed under key %d", w, 2*i)
					}
				}
				results[w] = m
				return m.Verify()
			})
		}
		require.NoError(t, g.Wait())

		require.Equal(t, baseKeys, base.Len())
		require.NoError(t, base.Verify())
		for w, m := range results {
			deleted := (perKey + 2) / 3
			require.Equal(t, baseKeys+perKey-deleted, m.Len(), "worker %d", w)
			require.Equal(t, w, m.FindDefault(2*(w*perKey)+1, -1))
			_, ok := m.Find(2*(w*perKey+perKey) + 1)
			require.False(t, ok)
		}
	})
}
