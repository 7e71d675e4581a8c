// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import (
	"cmp"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	testCases := []struct {
		in      string
		want    Strategy
		wantErr bool
	}{
		{in: "avl", want: AVL},
		{in: "AVL", want: AVL},
		{in: "height", want: AVL},
		{in: "redblack", want: RedBlack},
		{in: " red-black ", want: RedBlack},
		{in: "rb", want: RedBlack},
		{in: "btree", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			s, err := ParseStrategy(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, s)
		})
	}
}

func TestStrategyString(t *testing.T) {
	require.Equal(t, "avl", AVL.String())
	require.Equal(t, "redblack", RedBlack.String())
	require.Equal(t, "unknown", numStrategies.String())

	// Strategy names are safe for redaction.
	require.Equal(t, redact.RedactableString("redblack"), redact.Sprint(RedBlack).Redact())

	for s := Strategy(0); s < numStrategies; s++ {
		parsed, err := ParseStrategy(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
	}
}

func TestOptionsValidate(t *testing.T) {
	var opts *Options[int]
	opts = opts.EnsureDefaults()
	require.Equal(t, AVL, opts.Strategy)

	err := opts.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "Compare must be set")

	opts.Compare = cmp.Compare[int]
	require.NoError(t, opts.Validate())

	opts.Strategy = -1
	err = opts.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid strategy -1")
	require.False(t, errors.IsAssertionFailure(err))
}
