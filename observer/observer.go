// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package observer simulates a temporal-order judgement observer, for running
complete sessions over generated sequences without a human subject.

The response model is a lapse-mixed logistic psychometric function of SOA:
the probability of judging the probe first falls from near 1 at strongly
probe-leading SOAs to near 0 at strongly probe-lagging ones, with slope set
by the just-noticeable difference (JND) and centered on the point of
subjective simultaneity (PSS). Negated instructions add an extra lapse
component, modeling the accuracy cost of mapping responses through a
negated instruction.
*/
package observer

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/toj/toj"
	"github.com/goki/ki/kit"
)

// Judgement is the observer's temporal-order response category.
type Judgement int

const (
	// ProbeFirst = the probe was judged to appear before the referent
	ProbeFirst Judgement = iota

	// ReferentFirst = the referent was judged to appear before the probe
	ReferentFirst

	JudgementN
)

var KiT_Judgement = kit.Enums.AddEnum(JudgementN, kit.NotBitFlag, nil)

func (jg Judgement) String() string {
	switch jg {
	case ProbeFirst:
		return "ProbeFirst"
	case ReferentFirst:
		return "ReferentFirst"
	}
	return fmt.Sprintf("Judgement(%d)", int(jg))
}

// Observer parameterizes the simulated observer's psychometric function.
type Observer struct {
	PSS     float32 `def:"0" desc:"point of subjective simultaneity in msec -- the SOA at which both orders are judged equally often"`
	JND     float32 `min:"1" def:"45" desc:"just-noticeable difference in msec -- sets the slope of the psychometric function"`
	Lapse   float32 `min:"0" max:"1" def:"0.02" desc:"probability of a stimulus-independent random response"`
	NegCost float32 `min:"0" max:"1" def:"0.08" desc:"additional lapse probability on negated-instruction trials"`
}

func (ob *Observer) Defaults() {
	ob.PSS = 0
	ob.JND = 45
	ob.Lapse = 0.02
	ob.NegCost = 0.08
}

// ProbeFirstP returns the probability of judging the probe first at the
// given SOA under the given instruction polarity. Negative SOA means the
// probe really did come first.
func (ob *Observer) ProbeFirstP(soa float32, negated bool) float32 {
	lapse := ob.Lapse
	if negated {
		lapse += ob.NegCost
	}
	if lapse > 1 {
		lapse = 1
	}
	p := 1 / (1 + math32.Exp((soa-ob.PSS)/ob.JND))
	return 0.5*lapse + (1-lapse)*p
}

// Respond draws the observer's judgement for the trial and scores it
// against the true order. Zero-SOA trials have no true order and are
// scored by coin flip. nil rnd uses the global random source.
func (ob *Observer) Respond(tr *toj.Trial, rnd *toj.Rand) (jdg Judgement, correct bool) {
	p := ob.ProbeFirstP(float32(tr.SOA), tr.Negated)
	jdg = ReferentFirst
	if rnd.Float64() < float64(p) {
		jdg = ProbeFirst
	}
	switch {
	case tr.SOA == 0:
		correct = rnd.Intn(2) == 1
	case tr.SOA < 0:
		correct = jdg == ProbeFirst
	default:
		correct = jdg == ReferentFirst
	}
	return
}
