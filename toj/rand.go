// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import (
	"math/rand"

	"github.com/emer/emergent/erand"
)

// Rand is the source of randomness for sequence generation. Every
// generation entry point takes one, so a seeded source makes the whole
// sequence reproducible. A nil *Rand (or one with a nil Src) draws from
// the process-global source instead, for callers that do not care about
// reproducibility.
type Rand struct {
	Src *rand.Rand `view:"-" desc:"underlying random source -- nil means use the global source"`
}

// NewRand returns a Rand seeded with the given seed.
func NewRand(seed int64) *Rand {
	return &Rand{Src: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform random int in [0, n).
func (rr *Rand) Intn(n int) int {
	if rr == nil || rr.Src == nil {
		return rand.Intn(n)
	}
	return rr.Src.Intn(n)
}

// Float64 returns a uniform random float64 in [0, 1).
func (rr *Rand) Float64() float64 {
	if rr == nil || rr.Src == nil {
		return rand.Float64()
	}
	return rr.Src.Float64()
}

// Perm returns a uniform random permutation of the ints [0, n).
func (rr *Rand) Perm(n int) []int {
	if rr == nil || rr.Src == nil {
		ord := make([]int, n)
		for i := range ord {
			ord[i] = i
		}
		erand.PermuteInts(ord)
		return ord
	}
	return rr.Src.Perm(n)
}

// ShuffleFloats shuffles vals in place.
func (rr *Rand) ShuffleFloats(vals []float64) {
	for i := len(vals) - 1; i > 0; i-- {
		j := rr.Intn(i + 1)
		vals[i], vals[j] = vals[j], vals[i]
	}
}
