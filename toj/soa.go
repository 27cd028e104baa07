// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import "log"

// soaKey identifies one SOA stratum: trials of one polarity at one rank of
// runs of one nominal length all draw from the same pool.
type soaKey struct {
	negated bool
	seqLen  int
	rank    int
}

// soaPool is the queue of SOA values for one stratum: a fixed list read
// through a cursor. The seed is SOAPasses complete passes through the SOA
// menu, each independently shuffled, so any aligned window of len(SOAs)
// draws is a permutation of the menu.
type soaPool struct {
	vals []float64
	cur  int
}

// soaPools holds the per-stratum queues for one generation.
type soaPools struct {
	dz      *Design
	pools   map[soaKey]*soaPool
	refills int
}

// newSOAPools builds and seeds the stratum queues for both polarities,
// all run lengths and all ranks.
func (dz *Design) newSOAPools(rnd *Rand) *soaPools {
	passes := dz.SOAPasses()
	sp := &soaPools{dz: dz, pools: make(map[soaKey]*soaPool)}
	for _, neg := range []bool{false, true} {
		for _, sl := range dz.RunLens {
			for r := 0; r < sl; r++ {
				ky := soaKey{negated: neg, seqLen: sl, rank: r}
				if sp.pools[ky] != nil { // duplicate run lengths share a stratum
					continue
				}
				pl := &soaPool{vals: make([]float64, 0, passes*len(dz.SOAs))}
				for p := 0; p < passes; p++ {
					pl.vals = append(pl.vals, sp.pass(rnd)...)
				}
				sp.pools[ky] = pl
			}
		}
	}
	return sp
}

// pass returns one freshly shuffled copy of the SOA menu.
func (sp *soaPools) pass(rnd *Rand) []float64 {
	ps := append([]float64(nil), sp.dz.SOAs...)
	rnd.ShuffleFloats(ps)
	return ps
}

// draw takes the next SOA for the given stratum, refilling the pool with a
// fresh shuffled pass when it runs dry. Refills are counted so callers can
// see when a sequence needed more than the seeded balance.
func (sp *soaPools) draw(negated bool, seqLen, rank int, rnd *Rand) float64 {
	pl := sp.pools[soaKey{negated: negated, seqLen: seqLen, rank: rank}]
	if pl.cur >= len(pl.vals) {
		pl.vals = append(pl.vals, sp.pass(rnd)...)
		sp.refills++
		if sp.dz.Debug {
			log.Printf("toj: design %s: SOA pool (%s, len %d, rank %d) ran dry, refilled", sp.dz.Name, polName(negated), seqLen, rank)
		}
	}
	v := pl.vals[pl.cur]
	pl.cur++
	return v
}
