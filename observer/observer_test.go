// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package observer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/toj/toj"
)

// difTol is the numerical difference tolerance for comparing vs. target values
const difTol = float32(1.0e-6)

func TestProbeFirstP(t *testing.T) {
	ob := Observer{}
	ob.Defaults()

	if p := ob.ProbeFirstP(0, false); math32.Abs(p-0.5) > difTol {
		t.Errorf("P at PSS: %v, want 0.5", p)
	}
	prev := float32(1.1)
	for _, soa := range []float32{-200, -100, -50, 0, 50, 100, 200} {
		p := ob.ProbeFirstP(soa, false)
		if p >= prev {
			t.Errorf("P not decreasing in SOA: P(%g) = %v, previous %v", soa, p, prev)
		}
		prev = p
	}
	if p := ob.ProbeFirstP(-10000, false); math32.Abs(p-(1-ob.Lapse/2)) > difTol {
		t.Errorf("P at extreme probe-leading SOA: %v, want %v", p, 1-ob.Lapse/2)
	}
	if p := ob.ProbeFirstP(10000, false); math32.Abs(p-ob.Lapse/2) > difTol {
		t.Errorf("P at extreme probe-lagging SOA: %v, want %v", p, ob.Lapse/2)
	}
}

// Negated instructions flatten the psychometric function toward chance.
func TestNegCost(t *testing.T) {
	ob := Observer{}
	ob.Defaults()
	for _, soa := range []float32{-150, -50, 50, 150} {
		pa := ob.ProbeFirstP(soa, false)
		pn := ob.ProbeFirstP(soa, true)
		if math32.Abs(pn-0.5) >= math32.Abs(pa-0.5) {
			t.Errorf("negation did not move P(%g) toward chance: asserted %v, negated %v", soa, pa, pn)
		}
	}
	if p := ob.ProbeFirstP(0, true); math32.Abs(p-0.5) > difTol {
		t.Errorf("P at PSS under negation: %v, want 0.5", p)
	}
}

func TestRespond(t *testing.T) {
	ob := Observer{JND: 1} // steep and lapse-free: deterministic away from 0
	rnd := toj.NewRand(19)
	lead := &toj.Trial{SOA: -100}
	lag := &toj.Trial{SOA: 100}
	for i := 0; i < 100; i++ {
		jdg, correct := ob.Respond(lead, rnd)
		if jdg != ProbeFirst || !correct {
			t.Fatalf("probe-leading trial %d: %v correct %v", i, jdg, correct)
		}
		jdg, correct = ob.Respond(lag, rnd)
		if jdg != ReferentFirst || !correct {
			t.Fatalf("probe-lagging trial %d: %v correct %v", i, jdg, correct)
		}
	}
	zero := &toj.Trial{SOA: 0}
	ncor := 0
	for i := 0; i < 200; i++ {
		if _, correct := ob.Respond(zero, rnd); correct {
			ncor++
		}
	}
	if ncor == 0 || ncor == 200 {
		t.Errorf("zero-SOA scoring never varied: %d of 200", ncor)
	}
}

func TestJudgementString(t *testing.T) {
	if ProbeFirst.String() != "ProbeFirst" || ReferentFirst.String() != "ReferentFirst" {
		t.Errorf("judgement strings: %v, %v", ProbeFirst, ReferentFirst)
	}
}
