// Copyright 2024 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants gates expensive consistency checks behind the
// "invariants" and "race" build tags. Tree versions produced in such builds
// are validated before they are handed back to the caller.
package invariants

import (
	"math/rand/v2"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/immtree/internal/buildtags"
)

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = buildtags.Invariants || buildtags.Race

// Sometimes returns true percent% of the time if we were built with the
// "invariants" or "race" build tags. Otherwise, always returns false.
func Sometimes(percent int) bool {
	return Enabled && rand.IntN(100) < percent
}

// Check panics with err if invariants are enabled and err is non-nil. It is a
// no-op in regular builds, where the error is not even inspected.
func Check(err error) {
	if Enabled && err != nil {
		panic(err)
	}
}

// Assertf panics with an assertion failure carrying the formatted message if
// invariants are enabled and cond is false.
func Assertf(cond bool, format string, args ...interface{}) {
	if Enabled && !cond {
		panic(errors.AssertionFailedf(format, args...))
	}
}
