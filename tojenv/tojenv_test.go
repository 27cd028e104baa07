// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tojenv

import (
	"testing"

	"github.com/emer/emergent/env"
	"github.com/emer/etable/etensor"
	"github.com/emer/toj/toj"
)

func testEnv() *TOJEnv {
	dz := &toj.Design{Name: "envtest"}
	dz.Defaults()
	dz.Factors = toj.Factors{{Name: "color", Levels: []string{"red", "green"}}}
	dz.SOAs = []float64{-100, 100}
	dz.BlockSize = 8
	ev := &TOJEnv{Nm: "TestEnv", Dsc: "counter and state test env"}
	ev.Config(dz, toj.NewRand(42))
	return ev
}

func TestStepCounters(t *testing.T) {
	ev := testEnv()
	if err := ev.Validate(); err != nil {
		t.Fatal(err)
	}
	ev.Init(0)
	ntr := ev.Seq.NTrials()
	if ntr != ev.Des.TotalTrials() {
		t.Fatalf("sequence length %d, want %d", ntr, ev.Des.TotalTrials())
	}
	firstSeq := ev.Seq
	for i := 0; i < ntr; i++ {
		if !ev.Step() {
			t.Fatalf("Step %d returned false", i)
		}
		cur, _, chg := ev.Counter(env.Trial)
		if cur != i || !chg {
			t.Errorf("trial counter at step %d: cur %d chg %v", i, cur, chg)
		}
		if ecur, _, echg := ev.Counter(env.Epoch); ecur != 0 || echg {
			t.Errorf("epoch advanced early at step %d: cur %d chg %v", i, ecur, echg)
		}
		if ev.CurTrial.Index != i {
			t.Errorf("step %d serves trial %d", i, ev.CurTrial.Index)
		}
		if bcur, _, _ := ev.Counter(env.Block); bcur != ev.CurTrial.Block {
			t.Errorf("block counter %d, trial block %d", bcur, ev.CurTrial.Block)
		}
		if ev.TrialName.Cur != ev.CurTrial.String() {
			t.Errorf("trial name %s, want %s", ev.TrialName.Cur, ev.CurTrial.String())
		}
	}
	if !ev.Step() {
		t.Fatal("wrap Step returned false")
	}
	if ecur, _, echg := ev.Counter(env.Epoch); ecur != 1 || !echg {
		t.Errorf("epoch after wrap: cur %d chg %v", ecur, echg)
	}
	if cur, _, _ := ev.Counter(env.Trial); cur != 0 {
		t.Errorf("trial counter after wrap: %d", cur)
	}
	if ev.Seq == firstSeq {
		t.Errorf("sequence not regenerated at epoch wrap")
	}
}

func TestStates(t *testing.T) {
	ev := testEnv()
	ev.Init(0)
	if !ev.Step() {
		t.Fatal("Step returned false")
	}
	tr := ev.CurTrial

	pol := ev.State("Polarity").(*etensor.Float64)
	negIdx := 0
	if tr.Negated {
		negIdx = 1
	}
	if pol.Values[negIdx] != 1 || pol.Values[1-negIdx] != 0 {
		t.Errorf("polarity state %v for negated %v", pol.Values, tr.Negated)
	}

	sd := ev.State("ProbeSide").(*etensor.Float64)
	lftIdx := 1
	if tr.ProbeLeft {
		lftIdx = 0
	}
	if sd.Values[lftIdx] != 1 || sd.Values[1-lftIdx] != 0 {
		t.Errorf("side state %v for probe-left %v", sd.Values, tr.ProbeLeft)
	}

	fs := ev.State("color").(*etensor.Float64)
	sum := 0.0
	hot := -1
	for i, v := range fs.Values {
		sum += v
		if v == 1 {
			hot = i
		}
	}
	if sum != 1 {
		t.Errorf("color state not one-hot: %v", fs.Values)
	}
	lvl := ev.Des.Factors[0].Levels[hot]
	if lvl != tr.Cond["color"] {
		t.Errorf("color state hot at %s, trial is %s", lvl, tr.Cond["color"])
	}

	sv := ev.State("SOA").(*etensor.Float64)
	want := 0.0
	if tr.SOA == 100 {
		want = 1
	}
	if sv.Values[0] != want {
		t.Errorf("SOA state %g for SOA %g", sv.Values[0], tr.SOA)
	}

	if ev.State("nosuch") != nil {
		t.Errorf("unknown state element not nil")
	}

	if len(ev.States()) != 3+len(ev.Des.Factors) {
		t.Errorf("States list has %d elements", len(ev.States()))
	}
}
