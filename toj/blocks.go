// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import "log"

// Partition completes an interleaved trial list in place: it assigns each
// trial its SOA from the per-stratum pools, its overall session index, and
// its block numbers. Partitioning is soft: a block closes at the first run
// boundary at or past BlockSize, so blocks can run over by up to one run
// but never split one. StrictBlocks designs are rejected with
// ErrStrictBlocks. Returns the number of blocks and the number of SOA pool
// refills.
func (dz *Design) Partition(trials []*Trial, rnd *Rand) (nblocks, refills int, err error) {
	if dz.StrictBlocks {
		return 0, 0, ErrStrictBlocks
	}
	if len(trials) == 0 {
		return 0, 0, nil
	}
	sp := dz.newSOAPools(rnd)
	blk := 0
	inBlk := 0
	for i := 0; i < len(trials); {
		j := i + 1
		for j < len(trials) && trials[j].Rank > 0 {
			j++
		}
		if dz.Debug && j-i > dz.BlockSize {
			log.Printf("toj: design %s: %d-trial run exceeds block size %d, block %d runs over", dz.Name, j-i, dz.BlockSize, blk)
		}
		for k := i; k < j; k++ {
			tr := trials[k]
			tr.SOA = sp.draw(tr.Negated, tr.SeqLen, tr.Rank, rnd)
			tr.Index = k
			tr.Block = blk
			tr.IndexInBlock = inBlk
			inBlk++
		}
		if inBlk >= dz.BlockSize {
			blk++
			inBlk = 0
		}
		i = j
	}
	return trials[len(trials)-1].Block + 1, sp.refills, nil
}
