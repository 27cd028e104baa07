// Copyright (c) 2021, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package toj is the overall repository for generating balanced, constrained,
randomized trial sequences for temporal-order judgement (TOJ) experiments,
implemented in the Go language (golang).

This top-level of the repository has no functional code -- everything is
organized into the following sub-repositories:

* toj: the core generator -- experiment designs, factorial expansion,
polarity-run interleaving, stratified SOA assignment, and soft block
partitioning, plus etable output and YAML design files.

* tojenv: an emergent env.Env that serves generated sequences one trial
per Step, with Run / Epoch / Block / Trial counters and one-hot state
tensors, for driving models from TOJ designs.

* observer: a simple parametric simulated observer (logistic psychometric
function with lapses and a negation cost), for exercising designs end to
end without a human in the loop.

* examples: these compile into runnable programs. examples/tojneg is the
place to start: it generates the standard negated-instruction color design
and can run simulated sessions over it. examples/tojdual audits a
dual-factor design with a crossed probe side and a no-repeat constraint.
*/
package toj
