// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package toj generates balanced, constrained, randomized trial sequences for
temporal-order judgement (TOJ) experiments.

A Design names the experimental factors and the sequencing parameters, and
Generate turns it into a concrete session: the full factorial crossing of
the free factors, replicated and shuffled, interleaved into alternating
runs of asserted-instruction and negated-instruction trials, with stimulus
onset asynchronies (SOAs) assigned from per-stratum shuffled pools so that
every combination of polarity, run length and within-run position sees a
balanced set of SOAs, and finally partitioned into presentation blocks that
never split a run.

The three stages (Expand, Interleave, Partition) are also callable on their
own, and all take an explicit random source so that sequences are exactly
reproducible from a seed.
*/
package toj

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
)

// ErrStrictBlocks is returned when a Design requests strict block sizing.
// Only soft partitioning is implemented: blocks close at run boundaries and
// can overshoot BlockSize by up to one run.
var ErrStrictBlocks = errors.New("toj: strict block sizing is not implemented -- only soft run-boundary partitioning is available")

// Design specifies a TOJ experiment: the free factors to cross, the SOA and
// run-length menus, and the sequencing parameters. Call Defaults for
// standard sequencing values, then Validate or Generate.
type Design struct {
	Name         string    `yaml:"name" desc:"name of the experiment, used in table metadata and log file names"`
	Factors      Factors   `yaml:"factors" desc:"free experimental factors -- the full crossing of their levels forms the condition set"`
	SOAs         []float64 `yaml:"soas" desc:"stimulus onset asynchronies in msec -- negative means the probe comes first"`
	RunLens      []int     `yaml:"runlens" desc:"allowed polarity run lengths -- each run's length is drawn uniformly from this menu"`
	Reps         int       `yaml:"reps" desc:"number of replications of the full crossing per polarity"`
	BlockSize    int       `yaml:"blocksize" desc:"soft target number of trials per block -- blocks close at the first run boundary at or past this size"`
	ProbeFactor  bool      `yaml:"probefactor" desc:"cross probe side into the factorial design instead of drawing it independently per trial"`
	StrictBlocks bool      `yaml:"strictblocks" desc:"require exact block sizes -- not implemented, rejected by Validate"`
	NoRepeat     []string  `yaml:"norepeat,omitempty" desc:"factors whose level must never repeat on consecutive trials -- enforced by best-effort payload swaps after interleaving"`
	Debug        bool      `yaml:"debug,omitempty" desc:"log generator boundary events: SOA pool refills, oversized runs, unrepairable repeats"`
}

// Defaults sets standard sequencing parameters: one replication, blocks of
// 40, and the classic 1 / 2 / 5 run-length menu. Factors and SOAs are left
// for the caller to fill in.
func (dz *Design) Defaults() {
	dz.Reps = 1
	dz.BlockSize = 40
	dz.RunLens = []int{1, 2, 5}
}

// Clone returns a deep copy of the design.
func (dz *Design) Clone() *Design {
	cd := *dz
	cd.Factors = dz.Factors.Clone()
	cd.SOAs = append([]float64(nil), dz.SOAs...)
	cd.RunLens = append([]int(nil), dz.RunLens...)
	cd.NoRepeat = append([]string(nil), dz.NoRepeat...)
	return &cd
}

// Validate checks the design for structural errors: strict block mode,
// non-positive replication or block size, empty SOA or run-length menus,
// duplicate or reserved factor names, and NoRepeat entries that do not name
// a factor. A factor with an empty level list is not an error -- it makes
// the crossing, and the generated sequence, empty.
func (dz *Design) Validate() error {
	if dz.StrictBlocks {
		return ErrStrictBlocks
	}
	if dz.Reps < 1 {
		return fmt.Errorf("toj: design %s: Reps is %d, must be at least 1", dz.Name, dz.Reps)
	}
	if dz.BlockSize < 1 {
		return fmt.Errorf("toj: design %s: BlockSize is %d, must be at least 1", dz.Name, dz.BlockSize)
	}
	if len(dz.SOAs) == 0 {
		return fmt.Errorf("toj: design %s: no SOAs specified", dz.Name)
	}
	if len(dz.RunLens) == 0 {
		return fmt.Errorf("toj: design %s: no run lengths specified", dz.Name)
	}
	for _, rl := range dz.RunLens {
		if rl < 1 {
			return fmt.Errorf("toj: design %s: run length %d, must be at least 1", dz.Name, rl)
		}
	}
	seen := map[string]bool{}
	for _, fc := range dz.Factors {
		if fc.Name == "" {
			return fmt.Errorf("toj: design %s: factor with empty name", dz.Name)
		}
		if fc.Name == SideFactor {
			return fmt.Errorf("toj: design %s: factor name %s is reserved for the probe-side factor", dz.Name, SideFactor)
		}
		if seen[fc.Name] {
			return fmt.Errorf("toj: design %s: duplicate factor name %s", dz.Name, fc.Name)
		}
		seen[fc.Name] = true
	}
	for _, nm := range dz.NoRepeat {
		if !seen[nm] {
			return fmt.Errorf("toj: design %s: NoRepeat names unknown factor %s", dz.Name, nm)
		}
	}
	return nil
}

// NComb returns the number of distinct conditions in the crossing,
// including the probe-side factor when ProbeFactor is on.
func (dz *Design) NComb() int {
	n := dz.Factors.NComb()
	if dz.ProbeFactor {
		n *= 2
	}
	return n
}

// TotalTrials returns the number of trials a generated sequence will have:
// both polarities of the full crossing, replicated Reps times per SOA and
// per run length.
func (dz *Design) TotalTrials() int {
	return 2 * dz.NComb() * dz.Reps * len(dz.SOAs) * len(dz.RunLens)
}

// SOAPasses returns the number of complete passes through the SOA menu
// that seed each per-stratum SOA pool.
func (dz *Design) SOAPasses() int {
	if dz.ProbeFactor {
		return 2 * dz.Reps
	}
	return dz.Reps
}

// SizeReport returns a string reporting the trial count and approximate
// memory footprint of a generated sequence.
func (dz *Design) SizeReport() string {
	var b strings.Builder
	ntr := dz.TotalTrials()
	condMem := 0
	for _, fc := range dz.Factors {
		lvlMem := 0
		for _, lv := range fc.Levels {
			lvlMem += len(lv)
		}
		if len(fc.Levels) > 0 {
			lvlMem /= len(fc.Levels)
		}
		condMem += len(fc.Name) + lvlMem + 2*int(unsafe.Sizeof(""))
	}
	trlMem := ntr * (int(unsafe.Sizeof(Trial{})) + condMem)
	nstrata := 0
	for _, rl := range dz.RunLens {
		nstrata += rl
	}
	soaMem := 2 * nstrata * dz.SOAPasses() * len(dz.SOAs) * 8
	fmt.Fprintf(&b, "%14s:\t Trials: %d\t TrialMem: %v\n", dz.Name, ntr, (datasize.ByteSize)(trlMem).HumanReadable())
	fmt.Fprintf(&b, "%14s:\t Strata: %d\t SOAPoolMem: %v\n", dz.Name, 2*nstrata, (datasize.ByteSize)(soaMem).HumanReadable())
	return b.String()
}

// Generate validates the design and produces a complete trial sequence:
// Interleave followed by Partition. nil rnd uses the global random source.
func (dz *Design) Generate(rnd *Rand) (*Sequence, error) {
	if err := dz.Validate(); err != nil {
		return nil, err
	}
	trials, misses := dz.Interleave(rnd)
	nblk, refills, err := dz.Partition(trials, rnd)
	if err != nil {
		return nil, err
	}
	sq := &Sequence{Des: dz.Clone(), Trials: trials, NBlocks: nblk, SOARefills: refills, NoRepeatMisses: misses}
	return sq, nil
}

// Sequence is a complete generated session: the trial list in presentation
// order, plus bookkeeping about how generation went.
type Sequence struct {
	Des            *Design  `desc:"copy of the design this sequence was generated from"`
	Trials         []*Trial `desc:"trials in presentation order"`
	NBlocks        int      `desc:"number of blocks in the sequence"`
	SOARefills     int      `desc:"number of times an SOA pool ran dry and was refilled with a fresh shuffled pass"`
	NoRepeatMisses int      `desc:"number of consecutive-repeat violations that could not be repaired by swapping"`
}

// NTrials returns the number of trials in the sequence.
func (sq *Sequence) NTrials() int {
	return len(sq.Trials)
}

// Block returns the trials of the given block, as a sub-slice of Trials.
func (sq *Sequence) Block(blk int) []*Trial {
	st := -1
	for i, tr := range sq.Trials {
		if tr.Block == blk {
			st = i
			break
		}
	}
	if st < 0 {
		return nil
	}
	ed := st
	for ed < len(sq.Trials) && sq.Trials[ed].Block == blk {
		ed++
	}
	return sq.Trials[st:ed]
}
