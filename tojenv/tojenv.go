// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package tojenv provides an environment that serves generated temporal-order
judgement trial sequences, one trial per Step, with standard Run / Epoch /
Block / Trial counters. A fresh randomized sequence is generated from the
design at the start of every epoch, so no two passes present the same
order.
*/
package tojenv

import (
	"fmt"
	"log"

	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
	"github.com/emer/etable/minmax"
	"github.com/emer/toj/toj"
)

// TOJEnv steps through trial sequences generated from a toj.Design.
// Call Config with the design, then Init, then Step.
type TOJEnv struct {
	Nm        string                      `desc:"name of this environment"`
	Dsc       string                      `desc:"description of this environment"`
	Des       *toj.Design                 `desc:"design that sequences are generated from -- copied during Config"`
	Rnd       *toj.Rand                   `view:"-" desc:"random source for sequence generation -- nil means the global source"`
	Seq       *toj.Sequence               `view:"-" desc:"current generated sequence, regenerated every epoch"`
	CurTrial  *toj.Trial                  `view:"inline" desc:"trial served by the last Step"`
	TrialName env.CurPrvString            `desc:"name of the current trial, from Trial.String()"`
	Polarity  etensor.Float64             `desc:"2-unit instruction polarity input: asserted, negated"`
	Side      etensor.Float64             `desc:"2-unit probe side input: left, right"`
	SOAVal    etensor.Float64             `desc:"1-unit SOA input, normalized to the design's SOA range"`
	FacStates map[string]*etensor.Float64 `desc:"one-hot input tensor per design factor"`
	SOARange  minmax.F64                  `desc:"SOA range of the design, for normalizing SOAVal"`
	Run       env.Ctr                     `view:"inline" desc:"current run of model as provided during Init"`
	Epoch     env.Ctr                     `view:"inline" desc:"number of complete passes through a generated sequence"`
	Block     env.Ctr                     `view:"inline" desc:"block number of the current trial within the sequence"`
	Trial     env.Ctr                     `view:"inline" desc:"trial index within the current sequence"`
}

func (ev *TOJEnv) Name() string { return ev.Nm }
func (ev *TOJEnv) Desc() string { return ev.Dsc }

// Config sets the design and random source and builds the state tensors.
// The design is deep-copied so later edits to the caller's copy do not
// affect the environment.
func (ev *TOJEnv) Config(dz *toj.Design, rnd *toj.Rand) {
	ev.Des = dz.Clone()
	ev.Rnd = rnd
	ev.Polarity.SetShape([]int{2}, nil, []string{"pol"})
	ev.Side.SetShape([]int{2}, nil, []string{"side"})
	ev.SOAVal.SetShape([]int{1}, nil, nil)
	ev.FacStates = make(map[string]*etensor.Float64, len(ev.Des.Factors))
	for _, fc := range ev.Des.Factors {
		ts := &etensor.Float64{}
		ts.SetShape([]int{len(fc.Levels)}, nil, []string{"level"})
		ev.FacStates[fc.Name] = ts
	}
	if len(ev.Des.SOAs) > 0 {
		mn, mx := ev.Des.SOAs[0], ev.Des.SOAs[0]
		for _, so := range ev.Des.SOAs {
			if so < mn {
				mn = so
			}
			if so > mx {
				mx = so
			}
		}
		ev.SOARange = minmax.F64{Min: mn, Max: mx}
	}
}

func (ev *TOJEnv) Validate() error {
	if ev.Des == nil {
		return fmt.Errorf("TOJEnv: %v has no Design set -- call Config", ev.Nm)
	}
	return ev.Des.Validate()
}

func (ev *TOJEnv) Counters() []env.TimeScales {
	return []env.TimeScales{env.Run, env.Epoch, env.Block, env.Trial}
}

func (ev *TOJEnv) States() env.Elements {
	els := env.Elements{
		{"Polarity", []int{2}, []string{"pol"}},
		{"ProbeSide", []int{2}, []string{"side"}},
		{"SOA", []int{1}, nil},
	}
	for _, fc := range ev.Des.Factors {
		els = append(els, env.Element{fc.Name, []int{len(fc.Levels)}, []string{"level"}})
	}
	return els
}

func (ev *TOJEnv) State(element string) etensor.Tensor {
	switch element {
	case "Polarity":
		return &ev.Polarity
	case "ProbeSide":
		return &ev.Side
	case "SOA":
		return &ev.SOAVal
	}
	if ts, ok := ev.FacStates[element]; ok {
		return ts
	}
	return nil
}

func (ev *TOJEnv) Actions() env.Elements {
	return nil
}

// String returns the current trial name and block.
func (ev *TOJEnv) String() string {
	if ev.CurTrial == nil {
		return ""
	}
	return fmt.Sprintf("%s_B%d", ev.CurTrial.String(), ev.CurTrial.Block)
}

func (ev *TOJEnv) Init(run int) {
	ev.Run.Scale = env.Run
	ev.Epoch.Scale = env.Epoch
	ev.Block.Scale = env.Block
	ev.Trial.Scale = env.Trial
	ev.Run.Init()
	ev.Epoch.Init()
	ev.Block.Init()
	ev.Trial.Init()
	ev.Run.Cur = run
	ev.NewSequence()
	ev.Trial.Cur = -1 // init state -- key so that first Step() = 0
}

// NewSequence generates a fresh randomized sequence from the design and
// resets the trial counter max to its length.
func (ev *TOJEnv) NewSequence() {
	sq, err := ev.Des.Generate(ev.Rnd)
	if err != nil {
		log.Println(err)
		return
	}
	ev.Seq = sq
	ev.Trial.Max = sq.NTrials()
	ev.Block.Max = sq.NBlocks
}

func (ev *TOJEnv) Step() bool {
	if ev.Seq == nil || ev.Seq.NTrials() == 0 {
		return false
	}
	ev.Epoch.Same() // good idea to just reset all non-inner-most counters at start
	ev.Block.Same()
	if ev.Trial.Incr() { // wraps after the last trial
		ev.NewSequence()
		ev.Epoch.Incr()
	}
	tr := ev.Seq.Trials[ev.Trial.Cur]
	ev.CurTrial = tr
	ev.Block.Set(tr.Block)
	ev.TrialName.Set(tr.String())
	ev.RenderState(tr)
	return true
}

// RenderState sets the state tensors from the given trial.
func (ev *TOJEnv) RenderState(tr *toj.Trial) {
	ev.Polarity.SetZeros()
	if tr.Negated {
		ev.Polarity.Set1D(1, 1)
	} else {
		ev.Polarity.Set1D(0, 1)
	}
	ev.Side.SetZeros()
	if tr.ProbeLeft {
		ev.Side.Set1D(0, 1)
	} else {
		ev.Side.Set1D(1, 1)
	}
	rng := ev.SOARange.Max - ev.SOARange.Min
	sv := 0.5
	if rng > 0 {
		sv = (tr.SOA - ev.SOARange.Min) / rng
	}
	ev.SOAVal.Set1D(0, sv)
	for _, fc := range ev.Des.Factors {
		ts := ev.FacStates[fc.Name]
		ts.SetZeros()
		for li, lv := range fc.Levels {
			if lv == tr.Cond[fc.Name] {
				ts.Set1D(li, 1)
				break
			}
		}
	}
}

func (ev *TOJEnv) Action(element string, input etensor.Tensor) {
	// nop
}

func (ev *TOJEnv) Counter(scale env.TimeScales) (cur, prv int, chg bool) {
	switch scale {
	case env.Run:
		return ev.Run.Query()
	case env.Epoch:
		return ev.Epoch.Query()
	case env.Block:
		return ev.Block.Query()
	case env.Trial:
		return ev.Trial.Query()
	}
	return -1, -1, false
}

// Compile-time check that implements Env interface
var _ env.Env = (*TOJEnv)(nil)
