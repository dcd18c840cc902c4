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

package reason

import (
	"context"
	"fmt"
	"time"

	"github.com/ebay/n3proof/kb"
	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/proof"
	"github.com/ebay/n3proof/unify"
	"github.com/ebay/n3proof/util/clocks"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

// DefaultSearchBudget is the per-application unification step limit used
// when Options.SearchBudget is zero.
const DefaultSearchBudget = 100000

// Options configure a new Engine. The zero value is usable.
type Options struct {
	// Clock is consulted for application deadlines. Nil means the wall
	// clock; tests substitute a mock.
	Clock clocks.Source
	// SearchBudget caps unification steps per rule application. 0 means
	// DefaultSearchBudget; negative means no limit.
	SearchBudget int
	// Timeout, if positive, bounds the wall-clock time of each rule
	// application.
	Timeout time.Duration
}

// An Engine owns a knowledge base, a rule table, and the proof that
// explains every knowledge base entry. Formulas only enter the knowledge
// base through AddAxiom or a successful rule application, so the proof
// always has exactly one step per entry.
//
// An Engine is single-writer: the caller must not invoke mutating
// operations concurrently. Independent engines share nothing and can run
// in parallel.
type Engine struct {
	options Options
	store   *kb.Store
	rules   []*Rule
	proof   *proof.Proof
	skolems skolemNamer
}

// NewEngine returns an empty engine.
func NewEngine(options Options) *Engine {
	if options.Clock == nil {
		options.Clock = clocks.Wall
	}
	switch {
	case options.SearchBudget == 0:
		options.SearchBudget = DefaultSearchBudget
	case options.SearchBudget < 0:
		options.SearchBudget = 0
	}
	return &Engine{
		options: options,
		store:   kb.NewStore(),
		proof:   proof.New(),
	}
}

// AddAxiom appends the formula to the knowledge base as given, recording a
// zero-premise proof step. Duplicates are appended like anything else.
// Returns the new entry's index.
func (e *Engine) AddAxiom(f *n3.Formula) kb.Index {
	idx := e.store.Append(f)
	e.recordStep(proof.Step{
		Conclusion:  f,
		Rule:        proof.AxiomRule,
		Description: "Axiom added to the proof",
	}, idx)
	metrics.kbFormulas.Set(float64(e.store.Len()))
	log.WithFields(log.Fields{"index": idx}).Debug("Added axiom")
	return idx
}

// AddRule validates the rule and appends it to the rule table, returning
// its index. Unsafe rules are rejected with an UnsafeRuleError.
func (e *Engine) AddRule(rule *Rule) (int, error) {
	if err := rule.Validate(); err != nil {
		return 0, err
	}
	e.rules = append(e.rules, rule)
	idx := len(e.rules) - 1
	log.WithFields(log.Fields{"rule": rule.Name, "index": idx}).Debug("Added rule")
	return idx, nil
}

// ApplyRule applies the rule at ruleIdx to the knowledge base formulas at
// premiseIdxs, in order. On success the instantiated conclusion is
// appended to the knowledge base, a proof step citing premiseIdxs is
// recorded, and the new entry's index is returned. On failure nothing is
// mutated; the error wraps one of the package's sentinel causes, or
// reports an out of range index.
func (e *Engine) ApplyRule(ctx context.Context, ruleIdx int, premiseIdxs []kb.Index) (kb.Index, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ApplyRule")
	defer span.Finish()
	metrics.applicationsStarted.Inc()
	if ruleIdx < 0 || ruleIdx >= len(e.rules) {
		metrics.applicationsFailed.Inc()
		return 0, fmt.Errorf("reason: invalid rule index %d (%d rules registered)",
			ruleIdx, len(e.rules))
	}
	rule := e.rules[ruleIdx]
	span.SetTag("rule", rule.Name)
	span.SetTag("premises", len(premiseIdxs))
	formulas, indexes, err := e.resolve(premiseIdxs)
	if err != nil {
		metrics.applicationsFailed.Inc()
		return 0, err
	}
	conclusion, steps, err := rule.Apply(ctx, formulas, e.applyOptions(indexes))
	metrics.searchSteps.Observe(float64(steps))
	span.SetTag("steps", steps)
	if err != nil {
		metrics.applicationsFailed.Inc()
		span.SetTag("outcome", "failed")
		log.WithFields(log.Fields{
			"rule":     rule.Name,
			"premises": premiseIdxs,
		}).Debugf("Rule application failed: %v", err)
		return 0, err
	}
	idx := e.commit(rule, conclusion, premiseIdxs)
	metrics.applicationsSucceeded.Inc()
	span.SetTag("outcome", "applied")
	log.WithFields(log.Fields{
		"rule":     rule.Name,
		"premises": premiseIdxs,
		"derived":  idx,
	}).Debug("Applied rule")
	return idx, nil
}

// resolve maps knowledge base indices to their formulas and candidate
// index views.
func (e *Engine) resolve(premiseIdxs []kb.Index) ([]*n3.Formula, []unify.CandidateIndex, error) {
	formulas := make([]*n3.Formula, len(premiseIdxs))
	indexes := make([]unify.CandidateIndex, len(premiseIdxs))
	for i, idx := range premiseIdxs {
		f, err := e.store.Get(idx)
		if err != nil {
			return nil, nil, fmt.Errorf("reason: invalid premise index %d: %w", idx, err)
		}
		formulas[i] = f
		indexes[i] = e.store.Candidate(idx)
	}
	return formulas, indexes, nil
}

func (e *Engine) applyOptions(indexes []unify.CandidateIndex) ApplyOptions {
	opts := ApplyOptions{
		MaxSteps: e.options.SearchBudget,
		Clock:    e.options.Clock,
		Indexes:  indexes,
		Skolem:   e.mintSkolem,
	}
	if e.options.Timeout > 0 {
		opts.Deadline = e.options.Clock.Now().Add(e.options.Timeout)
	}
	return opts
}

func (e *Engine) mintSkolem() string {
	metrics.skolemBlankNodes.Inc()
	return e.skolems.next()
}

// commit appends a derived conclusion and its proof step together.
func (e *Engine) commit(rule *Rule, conclusion *n3.Formula, premiseIdxs []kb.Index) kb.Index {
	idx := e.store.Append(conclusion)
	e.recordStep(proof.Step{
		Conclusion:  conclusion,
		Rule:        rule.Name,
		Premises:    append([]kb.Index(nil), premiseIdxs...),
		Description: fmt.Sprintf("Applied rule '%s'", rule.Name),
	}, idx)
	metrics.derivedFormulas.Inc()
	metrics.kbFormulas.Set(float64(e.store.Len()))
	return idx
}

// recordStep adds the step to the proof, which must assign it the same
// index the knowledge base just assigned the conclusion. Both structures
// are owned here and only ever grow together, so a mismatch is a bug.
func (e *Engine) recordStep(step proof.Step, want kb.Index) {
	idx, err := e.proof.AddStep(step)
	if err != nil {
		log.Panicf("reason: proof rejected step for knowledge base entry %d: %v", want, err)
	}
	if idx != want {
		log.Panicf("reason: proof step %d recorded for knowledge base entry %d", idx, want)
	}
}

// SetGoal attaches the formula the proof is trying to establish. A nil
// goal clears it.
func (e *Engine) SetGoal(goal *n3.Formula) {
	e.proof.SetGoal(goal)
}

// GoalProven reports whether some knowledge base formula is
// alpha-equivalent to the goal. False when no goal is set.
func (e *Engine) GoalProven() bool {
	goal := e.proof.Goal()
	if goal == nil {
		return false
	}
	return e.proof.Establishes(goal)
}

// Proof returns the engine's proof for inspection and rendering. The
// engine keeps appending to it on later derivations.
func (e *Engine) Proof() *proof.Proof {
	return e.proof
}

// KB returns the engine's knowledge base for read access.
func (e *Engine) KB() *kb.Store {
	return e.store
}

// Rules returns the registered rules in registration order. The returned
// slice must not be modified.
func (e *Engine) Rules() []*Rule {
	return e.rules
}
