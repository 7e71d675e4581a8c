// Copyright 2017 The Cockroach Authors.
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
//
// Zipf implements the Incrementing Zipfian Random Number Generator from [1]:
// "Quickly Generating Billion-Record Synthetic Databases" by Gray, Sundaresan,
// Englert, Baclawski, and Weinberger, SIGMOD 1994.

package randvar

import (
	"math"
	"sync"

	"github.com/cockroachdb/errors"
	"golang.org/x/exp/rand"
)

const defaultTheta = 0.99

// Zipf draws from a Zipf distribution over [min, max], favoring small
// values. Unlike rand.Zipf it supports theta < 1.
type Zipf struct {
	theta        float64
	min, max     uint64
	alpha, zeta2 float64
	eta, zetaN   float64
	mu           struct {
		sync.Mutex
		rng *rand.Rand
	}
}

var _ Static = (*Zipf)(nil)

// NewZipf constructs a new Zipf generator with the given parameters. Returns
// an error if the parameters are outside the accepted range.
func NewZipf(rng *rand.Rand, min, max uint64, theta float64) (*Zipf, error) {
	if min > max {
		return nil, errors.Newf("min %d > max %d", min, max)
	}
	if theta < 0.0 || theta == 1.0 {
		return nil, errors.New("0 < theta, and theta != 1")
	}
	if max-min+1 == 0 {
		return nil, errors.New("zipf cannot span the full uint64 range")
	}
	z := &Zipf{theta: theta, min: min, max: max}
	z.mu.rng = ensureRand(rng)

	z.zeta2 = zeta(2, theta)
	z.zetaN = zeta(max+1-min, theta)
	z.alpha = 1.0 / (1.0 - theta)
	z.eta = (1 - math.Pow(2.0/float64(max+1-min), 1.0-theta)) / (1.0 - z.zeta2/z.zetaN)
	return z, nil
}

// zeta computes (1/1)^theta + (1/2)^theta + ... + (1/n)^theta.
func zeta(n uint64, theta float64) float64 {
	var sum float64
	for i := uint64(1); i <= n; i++ {
		sum += 1.0 / math.Pow(float64(i), theta)
	}
	return sum
}

// Uint64 draws a new value between min and max, with probabilities according
// to the Zipf distribution.
func (z *Zipf) Uint64() uint64 {
	z.mu.Lock()
	u := z.mu.rng.Float64()
	z.mu.Unlock()
	uz := u * z.zetaN
	switch {
	case uz < 1.0:
		return z.min
	case uz < 1.0+math.Pow(0.5, z.theta):
		return z.min + 1
	}
	spread := float64(z.max + 1 - z.min)
	result := z.min + uint64(spread*math.Pow(z.eta*u-z.eta+1.0, z.alpha))
	return min(result, z.max)
}
