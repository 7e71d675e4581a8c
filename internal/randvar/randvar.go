// Copyright 2019 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package randvar provides key distributions for driving maps in benchmarks
// and randomized tests.
package randvar

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
)

// Static models a random variable whose parameters do not change. Draws are
// safe for concurrent use.
type Static interface {
	Uint64() uint64
}

// NewRand creates a new random number generator seeded from the clock.
func NewRand() *rand.Rand {
	return NewSeededRand(uint64(time.Now().UnixNano()))
}

// NewSeededRand creates a new random number generator with a fixed seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return NewRand()
}

var specRE = regexp.MustCompile(`^(?:(uniform|zipf|seq):)?(\d+)(?:-(\d+))?$`)

// Parse parses a distribution spec of the form [uniform|zipf|seq:]min[-max].
// The distribution defaults to uniform and max defaults to min. rng may be
// nil, in which case a clock-seeded generator is used.
func Parse(rng *rand.Rand, spec string) (Static, error) {
	m := specRE.FindStringSubmatch(strings.ToLower(strings.TrimSpace(spec)))
	if m == nil {
		return nil, errors.Newf("invalid random var spec: %q", spec)
	}
	min, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid random var spec: %q", spec)
	}
	max := min
	if m[3] != "" {
		if max, err = strconv.ParseUint(m[3], 10, 64); err != nil {
			return nil, errors.Wrapf(err, "invalid random var spec: %q", spec)
		}
	}
	if min > max {
		return nil, errors.Newf("invalid random var spec: %q: min %d > max %d", spec, min, max)
	}

	switch m[1] {
	case "", "uniform":
		return NewUniform(rng, min, max), nil
	case "zipf":
		return NewZipf(rng, min, max, defaultTheta)
	case "seq":
		return NewSequential(min, max), nil
	default:
		return nil, errors.Newf("unknown distribution: %s", m[1])
	}
}
