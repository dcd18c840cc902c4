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

// Package reason derives new formulas from known ones by applying inference
// rules, and records every derivation as a proof step. The Engine type ties
// together a knowledge base, a rule table, and a growing proof; Rule holds
// a single inference rule and knows how to apply itself.
package reason

import (
	"context"
	"fmt"
	"time"

	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/unify"
	"github.com/ebay/n3proof/util/clocks"
	log "github.com/sirupsen/logrus"
)

// A Rule is an inference rule: if formulas matching every premise are
// known, the conclusion instantiated under the resulting bindings is
// derivable. Rule variables are shared by name across the premises and the
// conclusion, so `?x` in one premise and `?x` in the conclusion are the
// same variable even though each formula declares its own quantifiers.
type Rule struct {
	Name        string
	Description string
	Premises    []*n3.Formula
	Conclusion  *n3.Formula
}

// NewRule returns a validated rule. The description is free text for
// humans; it does not affect inference.
func NewRule(name, description string, premises []*n3.Formula, conclusion *n3.Formula) (*Rule, error) {
	rule := &Rule{
		Name:        name,
		Description: description,
		Premises:    premises,
		Conclusion:  conclusion,
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return rule, nil
}

func (r *Rule) String() string {
	s := fmt.Sprintf("rule '%s' with %d premise(s)", r.Name, len(r.Premises))
	if r.Description != "" {
		s += ": " + r.Description
	}
	return s
}

// Validate checks that the rule is well formed and safe: it must be named,
// have a conclusion, and every universal variable the conclusion uses must
// appear in at least one premise, where matching can bind it. Existential
// conclusion variables are exempt; Apply replaces them with fresh blank
// nodes.
func (r *Rule) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("reason: rule name must not be empty")
	}
	if r.Conclusion == nil {
		return fmt.Errorf("reason: rule '%s' has no conclusion", r.Name)
	}
	for i, premise := range r.Premises {
		if premise == nil {
			return fmt.Errorf("reason: rule '%s': premise %d is nil", r.Name, i)
		}
	}
	for _, name := range r.Conclusion.Vars() {
		if r.Conclusion.IsExistential(name) {
			continue
		}
		if !anyPremiseUses(r.Premises, name) {
			return &UnsafeRuleError{Rule: r.Name, Variable: name}
		}
	}
	return nil
}

func anyPremiseUses(premises []*n3.Formula, name string) bool {
	for _, premise := range premises {
		for _, used := range premise.Vars() {
			if used == name {
				return true
			}
		}
	}
	return false
}

// CanApply reports whether the rule could be applied to this many
// formulas. It checks arity only; Apply does the real matching.
func (r *Rule) CanApply(formulas []*n3.Formula) bool {
	return len(formulas) == len(r.Premises)
}

// ApplyOptions bound and support a single rule application. The zero value
// means no step limit, no deadline, no candidate indexes, and skolem labels
// that restart at "sk0".
type ApplyOptions struct {
	// MaxSteps caps the total unification attempts across all premises.
	// 0 means no limit.
	MaxSteps int
	// Deadline, if non-zero, aborts matching once Clock reaches it.
	Deadline time.Time
	// Clock is read when checking Deadline. Nil means clocks.Wall.
	Clock clocks.Source
	// Indexes[i], when present, narrows the candidate statements tried
	// for premise i. Missing or nil entries mean full scans.
	Indexes []unify.CandidateIndex
	// Skolem supplies labels for the blank nodes that replace existential
	// conclusion variables. The engine passes its own counter here.
	Skolem func() string
}

// Apply matches each premise against the corresponding formula, threading
// one shared set of bindings across all of them, then instantiates the
// conclusion under those bindings. Within each premise the first match in
// the documented search order wins; a binding chosen for an earlier premise
// is not revisited when a later premise fails. Returns the instantiated
// conclusion and the total unification steps spent. Failures wrap
// ErrArityMismatch, ErrNoMatch, ErrBudgetExhausted, or the context's error.
func (r *Rule) Apply(ctx context.Context, formulas []*n3.Formula, opts ApplyOptions) (*n3.Formula, int, error) {
	if !r.CanApply(formulas) {
		return nil, 0, fmt.Errorf("reason: rule '%s' takes %d premise(s), got %d: %w",
			r.Name, len(r.Premises), len(formulas), ErrArityMismatch)
	}
	bindings := unify.NewBindings()
	steps := 0
	for i, premise := range r.Premises {
		mopts := unify.Options{
			Deadline: opts.Deadline,
			Clock:    opts.Clock,
		}
		if i < len(opts.Indexes) {
			mopts.Index = opts.Indexes[i]
		}
		if opts.MaxSteps > 0 {
			mopts.MaxSteps = opts.MaxSteps - steps
			if mopts.MaxSteps <= 0 {
				return nil, steps, fmt.Errorf("reason: rule '%s': premise %d: %w",
					r.Name, i, ErrBudgetExhausted)
			}
		}
		out := unify.Match(ctx, premise, formulas[i], bindings, mopts)
		steps += out.Steps
		switch out.Kind {
		case unify.Matched:
			// bindings was extended in place
		case unify.NoMatch:
			return nil, steps, fmt.Errorf("reason: rule '%s': premise %d: %w",
				r.Name, i, ErrNoMatch)
		case unify.BudgetExceeded:
			if err := ctx.Err(); err != nil {
				return nil, steps, fmt.Errorf("reason: rule '%s': premise %d: %w",
					r.Name, i, err)
			}
			return nil, steps, fmt.Errorf("reason: rule '%s': premise %d: %w",
				r.Name, i, ErrBudgetExhausted)
		default:
			log.Panicf("reason: unexpected unification outcome %v", out.Kind)
		}
	}
	conclusion, err := r.instantiate(bindings, formulas, opts.Skolem)
	if err != nil {
		return nil, steps, err
	}
	return conclusion, steps, nil
}

// instantiate substitutes the bindings into the conclusion. Unbound
// existential variables become fresh blank nodes, one per variable per
// application. A candidate variable surviving into the conclusion keeps the
// quantifier class its source formula gave it.
func (r *Rule) instantiate(bindings *unify.Bindings, formulas []*n3.Formula, mint func() string) (*n3.Formula, error) {
	if mint == nil {
		namer := &skolemNamer{}
		mint = namer.next
	}
	b := n3.NewBuilder()
	skolems := make(map[string]*n3.BlankNode)
	substitute := func(term n3.Term) (n3.Term, error) {
		v, isVar := term.(*n3.Variable)
		if !isVar {
			return term, nil
		}
		if bound, ok := bindings.Get(v.Name); ok {
			if sv, ok := bound.(*n3.Variable); ok {
				declareAs(b, sv.Name, formulas)
			}
			return bound, nil
		}
		if r.Conclusion.IsExistential(v.Name) {
			node, ok := skolems[v.Name]
			if !ok {
				node = &n3.BlankNode{ID: mint()}
				skolems[v.Name] = node
			}
			return node, nil
		}
		return nil, fmt.Errorf("reason: rule '%s': conclusion variable ?%s is not bound and not existential",
			r.Name, v.Name)
	}
	for _, stmt := range r.Conclusion.Statements() {
		subject, err := substitute(stmt.Subject)
		if err != nil {
			return nil, err
		}
		predicate, err := substitute(stmt.Predicate)
		if err != nil {
			return nil, err
		}
		object, err := substitute(stmt.Object)
		if err != nil {
			return nil, err
		}
		b.Add(subject, predicate, object)
	}
	conclusion, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("reason: rule '%s': %v", r.Name, err)
	}
	return conclusion, nil
}

// declareAs declares name on the builder with the quantifier class the
// supplied formulas give it. The first formula declaring the name decides;
// an undeclared name defaults to universal.
func declareAs(b *n3.Builder, name string, formulas []*n3.Formula) {
	for _, f := range formulas {
		if f.IsUniversal(name) {
			b.ForAll(name)
			return
		}
		if f.IsExistential(name) {
			b.ForSome(name)
			return
		}
	}
	b.ForAll(name)
}
