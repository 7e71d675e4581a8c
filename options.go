// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package immtree

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Strategy selects the balancing policy used by a Map. Both strategies
// implement the same persistent ordered map contract; they differ only in
// tree shape and in the amount of work performed per mutation.
type Strategy int8

const (
	// AVL keeps the heights of the two subtrees of every node within one of
	// each other. Lookups are slightly faster than RedBlack because the tree
	// is shallower.
	AVL Strategy = iota
	// RedBlack maintains a two-color invariant. An insert performs at most
	// two rotations.
	RedBlack

	numStrategies
)

var strategyNames = [numStrategies]string{
	AVL:      "avl",
	RedBlack: "redblack",
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	if s < 0 || s >= numStrategies {
		return "unknown"
	}
	return strategyNames[s]
}

// SafeFormat implements redact.SafeFormatter.
func (s Strategy) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(s.String()))
}

// ParseStrategy parses the name of a balancing strategy. It accepts the
// names returned by Strategy.String along with the "rb" shorthand.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "avl", "height":
		return AVL, nil
	case "redblack", "red-black", "rb":
		return RedBlack, nil
	default:
		return 0, errors.Newf("immtree: unknown strategy %q", s)
	}
}

// Options configures a Map.
type Options[K any] struct {
	// Compare defines the total order over keys. It must return a negative
	// number when a < b, zero when a == b and a positive number when a > b.
	// A Compare that is not a strict weak ordering silently corrupts the
	// tree; only Map.Verify can detect the damage.
	Compare func(a, b K) int

	// Strategy selects the balancing engine. The zero value is AVL.
	Strategy Strategy
}

// EnsureDefaults ensures that the default values for all options are set if
// a valid value was not already specified. Returns the new options.
func (o *Options[K]) EnsureDefaults() *Options[K] {
	if o == nil {
		o = &Options[K]{}
	}
	// The zero Strategy is AVL, so the only remaining default is the
	// comparer, which cannot be derived for an arbitrary K.
	return o
}

// Validate verifies that the options are usable.
func (o *Options[K]) Validate() error {
	if o.Compare == nil {
		return errors.New("immtree: Options.Compare must be set")
	}
	if o.Strategy < 0 || o.Strategy >= numStrategies {
		return errors.Newf("immtree: invalid strategy %d", redact.Safe(int(o.Strategy)))
	}
	return nil
}
