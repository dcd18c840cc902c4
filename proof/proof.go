// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package proof records how each formula in a knowledge base came to be
// there: asserted as an axiom, or derived by a rule from earlier formulas.
// Steps share the knowledge base's indexing, so step i explains formula i.
// The premise references of a step always point at earlier steps, which
// keeps the dependency graph acyclic.
package proof

import (
	"fmt"

	"github.com/ebay/n3proof/kb"
	"github.com/ebay/n3proof/n3"
)

// AxiomRule is the rule name recorded for formulas asserted directly
// rather than derived.
const AxiomRule = "axiom"

// A Step describes the derivation of one formula.
type Step struct {
	// Conclusion is the formula this step added to the knowledge base.
	Conclusion *n3.Formula
	// Rule is the name of the rule that produced the conclusion, or
	// AxiomRule for direct assertions.
	Rule string
	// Premises holds the knowledge-base indexes of the formulas the rule
	// was applied to. Empty for axioms.
	Premises []kb.Index
	// Description is optional free text carried into renderings.
	Description string
}

func (s Step) String() string {
	str := fmt.Sprintf("Step using rule '%s' with %d premise(s)", s.Rule, len(s.Premises))
	if s.Description != "" {
		str += ": " + s.Description
	}
	return str
}

// A Proof is an append-only sequence of steps, optionally with a goal
// formula to check the steps against.
type Proof struct {
	steps []Step
	goal  *n3.Formula
}

// New returns an empty proof.
func New() *Proof {
	return &Proof{}
}

// AddStep appends the step and returns the index it now sits at. Every
// premise must refer to an earlier step; if one doesn't, AddStep returns a
// VerificationError and leaves the proof unchanged.
func (p *Proof) AddStep(step Step) (kb.Index, error) {
	idx := kb.Index(len(p.steps))
	for _, premise := range step.Premises {
		if premise >= idx {
			return 0, &VerificationError{Step: idx, Premise: premise}
		}
	}
	p.steps = append(p.steps, step)
	return idx, nil
}

// Len returns the number of steps.
func (p *Proof) Len() int {
	return len(p.steps)
}

// Steps returns the steps in order. Callers must not modify the returned
// slice.
func (p *Proof) Steps() []Step {
	return p.steps
}

// SetGoal attaches the target formula this proof is trying to establish.
// Passing nil clears it.
func (p *Proof) SetGoal(goal *n3.Formula) {
	p.goal = goal
}

// Goal returns the formula set by SetGoal, or nil.
func (p *Proof) Goal() *n3.Formula {
	return p.goal
}

// Validate re-checks that every step's premises precede it. Proofs built
// through AddStep alone always pass; this catches hand-assembled ones. It
// returns the first VerificationError found, and never mutates, so it can
// be re-run as the proof grows.
func (p *Proof) Validate() error {
	for i, step := range p.steps {
		for _, premise := range step.Premises {
			if premise >= kb.Index(i) {
				return &VerificationError{Step: kb.Index(i), Premise: premise}
			}
		}
	}
	return nil
}

// Establishes returns true if some step's conclusion is alpha-equivalent
// to the given formula.
func (p *Proof) Establishes(goal *n3.Formula) bool {
	for _, step := range p.steps {
		if step.Conclusion.Equivalent(goal) {
			return true
		}
	}
	return false
}

// VerificationError reports a step whose premise list refers to the step
// itself or to a later step.
type VerificationError struct {
	Step    kb.Index
	Premise kb.Index
}

func (e *VerificationError) Error() string {
	return fmt.Sprintf("proof: step %d depends on premise %d, which does not precede it",
		e.Step, e.Premise)
}
