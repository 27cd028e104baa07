// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package toj

import (
	"fmt"
	"sort"
	"strings"
)

// Factor is one experimental factor: a name and the ordered list of levels
// it can take. Levels are plain strings -- numeric factors are represented
// by their string form so that all factors cross uniformly.
type Factor struct {
	Name   string   `yaml:"name" desc:"name of this factor, used as the condition key and table column name"`
	Levels []string `yaml:"levels" desc:"levels this factor can take, in definition order"`
}

// Factors is an ordered set of experimental factors. Order matters only for
// deterministic enumeration and table column layout -- the crossing itself
// is order-independent.
type Factors []Factor

// SideFactor is the name of the synthetic probe-side factor that is added
// to the crossing when Design.ProbeFactor is on. It is reserved and cannot
// be used as the name of a regular factor.
const SideFactor = "ProbeSide"

// Clone returns a deep copy of the factor set.
func (ft Factors) Clone() Factors {
	cf := make(Factors, len(ft))
	for i, fc := range ft {
		cf[i] = Factor{Name: fc.Name, Levels: append([]string(nil), fc.Levels...)}
	}
	return cf
}

// Names returns the factor names in definition order.
func (ft Factors) Names() []string {
	nms := make([]string, len(ft))
	for i, fc := range ft {
		nms[i] = fc.Name
	}
	return nms
}

// NComb returns the number of distinct combinations in the full crossing of
// all factors. An empty factor set has exactly one (empty) combination.
// Any factor with no levels makes the crossing empty.
func (ft Factors) NComb() int {
	n := 1
	for _, fc := range ft {
		n *= len(fc.Levels)
	}
	return n
}

// Expand returns the full Cartesian crossing of the factors, with each
// combination replicated reps times, in uniformly shuffled order.
// A factor with an empty level list produces an empty (nil) result.
// nil rnd uses the global random source.
func (ft Factors) Expand(reps int, rnd *Rand) []Cond {
	n := ft.NComb()
	if n == 0 || reps < 1 {
		return nil
	}
	base := make([]Cond, 0, n)
	idx := make([]int, len(ft))
	for {
		cnd := make(Cond, len(ft))
		for fi, fc := range ft {
			cnd[fc.Name] = fc.Levels[idx[fi]]
		}
		base = append(base, cnd)
		fi := len(ft) - 1
		for fi >= 0 {
			idx[fi]++
			if idx[fi] < len(ft[fi].Levels) {
				break
			}
			idx[fi] = 0
			fi--
		}
		if fi < 0 {
			break
		}
	}
	all := make([]Cond, 0, n*reps)
	for r := 0; r < reps; r++ {
		for _, cnd := range base {
			all = append(all, cnd.Clone())
		}
	}
	ord := rnd.Perm(len(all))
	out := make([]Cond, len(all))
	for i, oi := range ord {
		out[i] = all[oi]
	}
	return out
}

// Cond is one concrete combination of factor levels, keyed by factor name.
type Cond map[string]string

// Clone returns a copy of the condition that shares no storage with the
// original.
func (cd Cond) Clone() Cond {
	cc := make(Cond, len(cd))
	for k, v := range cd {
		cc[k] = v
	}
	return cc
}

// String returns the condition levels joined with underscores, with factor
// names in sorted order so the result is deterministic.
func (cd Cond) String() string {
	nms := make([]string, 0, len(cd))
	for nm := range cd {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	var b strings.Builder
	for i, nm := range nms {
		if i > 0 {
			b.WriteString("_")
		}
		b.WriteString(cd[nm])
	}
	return b.String()
}

// Key returns a canonical name=level listing of the condition, for use as a
// map key in tests and stats.
func (cd Cond) Key() string {
	nms := make([]string, 0, len(cd))
	for nm := range cd {
		nms = append(nms, nm)
	}
	sort.Strings(nms)
	var b strings.Builder
	for i, nm := range nms {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%s=%s", nm, cd[nm])
	}
	return b.String()
}
