// Copyright 2018 The Cockroach Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License. See the AUTHORS file
// for names of contributors.

package randvar

import (
	"sync"

	"golang.org/x/exp/rand"
)

// Uniform draws from a uniform distribution over [min, max].
type Uniform struct {
	min, max uint64
	mu       struct {
		sync.Mutex
		rng *rand.Rand
	}
}

var _ Static = (*Uniform)(nil)

// NewUniform constructs a new Uniform generator over [min, max].
func NewUniform(rng *rand.Rand, min, max uint64) *Uniform {
	g := &Uniform{min: min, max: max}
	g.mu.rng = ensureRand(rng)
	return g
}

// Uint64 returns a random value between min and max inclusive.
func (g *Uniform) Uint64() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	span := g.max - g.min + 1
	if span == 0 {
		// The full uint64 range.
		return g.mu.rng.Uint64()
	}
	return g.mu.rng.Uint64n(span) + g.min
}
