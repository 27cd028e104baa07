// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import "log"

// Interleave produces the full trial list in presentation order, without
// SOAs or block numbers (Partition assigns those). Each polarity gets its
// own independently shuffled pool holding the full crossing replicated
// Reps times per SOA and per run length, and the two pools are interleaved
// in strictly alternating runs whose lengths are drawn uniformly from
// RunLens. The starting polarity is random. A run is cut short when its
// pool runs out, and once one pool is empty the other drains in
// nominal-length chunks. Trials are tagged with the nominal run length and
// their 0-based rank within the run.
//
// When NoRepeat factors are specified, a repair pass then swaps condition
// payloads between same-polarity trials to break immediate repeats.
// The second return value is the number of repeats left unrepaired.
func (dz *Design) Interleave(rnd *Rand) ([]*Trial, int) {
	mult := dz.Reps * len(dz.SOAs) * len(dz.RunLens)
	fs := dz.Factors
	if dz.ProbeFactor {
		fs = append(fs.Clone(), Factor{Name: SideFactor, Levels: []string{"Left", "Right"}})
	}
	ast := fs.Expand(mult, rnd)
	neg := fs.Expand(mult, rnd)
	trials := make([]*Trial, 0, len(ast)+len(neg))
	curNeg := rnd.Intn(2) == 1
	for len(ast) > 0 || len(neg) > 0 {
		pool := &ast
		if curNeg {
			pool = &neg
		}
		if len(*pool) == 0 {
			curNeg = !curNeg
			continue
		}
		rl := dz.RunLens[rnd.Intn(len(dz.RunLens))]
		n := rl
		if n > len(*pool) {
			n = len(*pool)
			if dz.Debug {
				log.Printf("toj: design %s: %s pool ran out %d into a %d-trial run", dz.Name, polName(curNeg), n, rl)
			}
		}
		for r := 0; r < n; r++ {
			cnd := (*pool)[len(*pool)-1]
			*pool = (*pool)[:len(*pool)-1]
			trials = append(trials, dz.newTrial(cnd, curNeg, rl, r, rnd))
		}
		curNeg = !curNeg
	}
	misses := dz.repairRepeats(trials)
	return trials, misses
}

// newTrial builds a trial from a popped pool condition. When probe side is
// a factor it is lifted out of the condition map into the ProbeLeft field,
// otherwise it is a fresh coin flip.
func (dz *Design) newTrial(cnd Cond, negated bool, seqLen, rank int, rnd *Rand) *Trial {
	tr := &Trial{Cond: cnd, Negated: negated, SeqLen: seqLen, Rank: rank, Block: -1, Index: -1, IndexInBlock: -1}
	if dz.ProbeFactor {
		tr.ProbeLeft = cnd[SideFactor] == "Left"
		delete(cnd, SideFactor)
	} else {
		tr.ProbeLeft = rnd.Intn(2) == 1
	}
	return tr
}

func polName(negated bool) string {
	if negated {
		return "negated"
	}
	return "asserted"
}

// repeats returns true if a and b share a level on any of the given
// factors.
func repeats(a, b *Trial, facs []string) bool {
	for _, f := range facs {
		if a.Cond[f] == b.Cond[f] {
			return true
		}
	}
	return false
}

// violAt returns true if the trial at i repeats a NoRepeat factor level
// from the trial before it.
func (dz *Design) violAt(trials []*Trial, i int) bool {
	if i <= 0 || i >= len(trials) {
		return false
	}
	return repeats(trials[i-1], trials[i], dz.NoRepeat)
}

// swapPayload exchanges the condition payload (factor levels and probe
// side) between two trials, leaving the run and polarity structure in
// place.
func swapPayload(a, b *Trial) {
	a.Cond, b.Cond = b.Cond, a.Cond
	a.ProbeLeft, b.ProbeLeft = b.ProbeLeft, a.ProbeLeft
}

// repairRepeats enforces the NoRepeat constraint by best-effort payload
// swaps between same-polarity trials, so the per-polarity condition
// multisets are unchanged. Returns the number of repeats it could not
// clear.
func (dz *Design) repairRepeats(trials []*Trial) int {
	if len(dz.NoRepeat) == 0 {
		return 0
	}
	misses := 0
	for i := 1; i < len(trials); i++ {
		if !dz.violAt(trials, i) {
			continue
		}
		fixed := false
		for j := i + 1; j < len(trials); j++ {
			if trials[j].Negated != trials[i].Negated {
				continue
			}
			swapPayload(trials[i], trials[j])
			if !dz.violAt(trials, i) && !dz.violAt(trials, i+1) && !dz.violAt(trials, j) && !dz.violAt(trials, j+1) {
				fixed = true
				break
			}
			swapPayload(trials[i], trials[j])
		}
		if !fixed {
			misses++
			if dz.Debug {
				log.Printf("toj: design %s: unrepairable %v repeat at trial %d", dz.Name, dz.NoRepeat, i)
			}
		}
	}
	return misses
}
