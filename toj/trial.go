// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import (
	"fmt"
	"strings"
)

// Trial is one fully-specified trial in a generated sequence. Trials are
// constructed by the generator and should be treated as read-only by
// consumers -- use Clone when a mutable copy is needed.
type Trial struct {
	Cond         Cond    `desc:"factor levels for this trial, keyed by factor name"`
	Negated      bool    `desc:"instruction polarity -- true = negated framing, false = asserted framing"`
	ProbeLeft    bool    `desc:"probe stimulus appears on the left"`
	SOA          float64 `desc:"stimulus onset asynchrony in msec -- negative means the probe comes first"`
	SeqLen       int     `desc:"nominal length of the polarity run this trial was drawn into -- the actual run can be shorter when a pool runs out"`
	Rank         int     `desc:"0-based position of this trial within its polarity run"`
	Block        int     `desc:"0-based block number, assigned during partitioning"`
	Index        int     `desc:"0-based overall trial index within the session"`
	IndexInBlock int     `desc:"0-based trial index within its block"`
}

// Clone returns a copy of the trial that shares no storage with the
// original.
func (tr *Trial) Clone() *Trial {
	ct := *tr
	ct.Cond = tr.Cond.Clone()
	return &ct
}

// Polarity returns the instruction polarity as a string label.
func (tr *Trial) Polarity() string {
	if tr.Negated {
		return "Neg"
	}
	return "Asrt"
}

// Side returns the probe side as a string label.
func (tr *Trial) Side() string {
	if tr.ProbeLeft {
		return "Left"
	}
	return "Right"
}

// String returns a compact label for the trial: condition levels, polarity,
// and SOA. Used for TrialName columns in logs.
func (tr *Trial) String() string {
	var b strings.Builder
	cs := tr.Cond.String()
	if cs != "" {
		b.WriteString(cs)
		b.WriteString("_")
	}
	b.WriteString(tr.Polarity())
	fmt.Fprintf(&b, "_%g", tr.SOA)
	return b.String()
}
