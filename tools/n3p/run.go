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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ebay/n3proof/config"
	"github.com/ebay/n3proof/kb"
	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/parser"
	"github.com/ebay/n3proof/reason"
	"github.com/ebay/n3proof/util/graphviz"
)

// run executes the reasoning job described by a run spec file.
func run(ctx context.Context, options *options) error {
	spec, err := config.Load(options.RunSpecFile)
	if err != nil {
		return err
	}
	return execute(ctx, spec, options)
}

// execute runs one reasoning job: register the axioms and rules, attempt
// the explicit applications, saturate if asked, then report the proof.
// Both the run and demo commands end up here.
func execute(ctx context.Context, spec *config.RunSpec, options *options) error {
	if spec.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx,
			time.Duration(spec.TimeoutSeconds)*time.Second)
		defer cancel()
	}
	engine, err := assemble(spec)
	if err != nil {
		return err
	}

	start := time.Now()
	derived := 0
	for i, app := range spec.Applications {
		premises := make([]kb.Index, len(app.Premises))
		for j, p := range app.Premises {
			premises[j] = kb.Index(p)
		}
		idx, err := engine.ApplyRule(ctx, app.Rule, premises)
		if err != nil {
			return fmt.Errorf("application %d: %v", i, err)
		}
		conclusion, _ := engine.KB().Get(idx) // the entry was just appended
		fmt.Printf("%d: %v\n", idx, conclusion)
		derived++
	}
	if spec.Saturate {
		n, err := engine.Saturate(ctx, reason.SaturateOptions{})
		if err != nil {
			return err
		}
		derived += n
	}
	fmtr.Printf("\nDerived %d formulas in %v.\n\n", derived, time.Since(start))
	return report(engine, options.DotFile)
}

// assemble builds an engine holding the run spec's axioms, rules, and
// goal, with the formula texts parsed. Nothing is applied yet.
func assemble(spec *config.RunSpec) (*reason.Engine, error) {
	engine := reason.NewEngine(reason.Options{SearchBudget: spec.SearchBudget})
	for i, text := range spec.Axioms {
		f, err := parser.ParseFormula(text)
		if err != nil {
			return nil, fmt.Errorf("axiom %d: %v", i, err)
		}
		engine.AddAxiom(f)
	}
	for i, rule := range spec.Rules {
		compiled, err := compileRule(i, rule)
		if err != nil {
			return nil, err
		}
		if _, err := engine.AddRule(compiled); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %v", i, compiled.Name, err)
		}
	}
	if spec.Goal != "" {
		goal, err := parser.ParseFormula(spec.Goal)
		if err != nil {
			return nil, fmt.Errorf("goal: %v", err)
		}
		engine.SetGoal(goal)
	}
	return engine, nil
}

// compileRule parses the N3 texts of one run spec rule. An unnamed rule
// is named after its position.
func compileRule(i int, rule config.Rule) (*reason.Rule, error) {
	name := rule.Name
	if name == "" {
		name = fmt.Sprintf("rule%d", i)
	}
	premises := make([]*n3.Formula, len(rule.Premises))
	for j, text := range rule.Premises {
		f, err := parser.ParseFormula(text)
		if err != nil {
			return nil, fmt.Errorf("rule %d premise %d: %v", i, j, err)
		}
		premises[j] = f
	}
	conclusion, err := parser.ParseFormula(rule.Conclusion)
	if err != nil {
		return nil, fmt.Errorf("rule %d conclusion: %v", i, err)
	}
	return reason.NewRule(name, rule.Description, premises, conclusion)
}

// report prints the proof listing, optionally writes the proof graph, and
// fails if a goal was set but not proven.
func report(engine *reason.Engine, dotFile string) error {
	p := engine.Proof()
	if err := p.Validate(); err != nil {
		return err
	}
	fmtr.Printf("Knowledge base holds %d formulas.\n", engine.KB().Len())
	if err := p.WriteText(os.Stdout); err != nil {
		return err
	}
	if dotFile != "" {
		if err := graphviz.Create(dotFile, p.Graphviz, graphviz.Options{}); err != nil {
			return err
		}
		fmt.Printf("Wrote proof graph to %v.\n", dotFile)
	}
	if p.Goal() != nil && !engine.GoalProven() {
		return fmt.Errorf("goal not proven")
	}
	return nil
}
