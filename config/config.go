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

// Package config describes a reasoning run for the n3p command line tool.
// The run spec is typically loaded from a JSON file on disk. Formula valued
// fields hold N3 text; the tool parses them when it assembles the run.
package config

// A RunSpec describes one reasoning run: the axioms and rules to register,
// which rule applications to attempt, and the optional goal to check.
type RunSpec struct {
	// N3 text of the formulas asserted before any rule runs. Each entry is
	// parsed as one formula.
	Axioms []string `json:"axioms,omitempty"`

	// The implication rules available to the run, referenced from
	// Applications by position.
	Rules []Rule `json:"rules,omitempty"`

	// Explicit rule applications, attempted in order before any saturation.
	Applications []Application `json:"applications,omitempty"`

	// If true, the tool keeps applying rules until no rule derives anything
	// new (or a budget runs out) after the explicit applications.
	Saturate bool `json:"saturate,omitempty"`

	// N3 text of the goal formula the finished proof must entail. If empty,
	// the run has no goal.
	Goal string `json:"goal,omitempty"`

	// Caps the unification search steps per rule application. Zero uses the
	// engine default.
	SearchBudget int `json:"searchBudget,omitempty"`

	// Bounds the whole run in seconds. Zero means no timeout.
	TimeoutSeconds int `json:"timeoutSeconds,omitempty"`
}

// A Rule is one implication rule in N3 text form.
type Rule struct {
	// The name rule applications are reported under. If empty, the tool
	// names the rule after its position, e.g. "rule0".
	Name string `json:"name,omitempty"`

	// An optional human readable description, shown in proof listings.
	Description string `json:"description,omitempty"`

	// N3 text of the premise formulas, one conjunct each. May be empty for
	// an unconditional rule.
	Premises []string `json:"premises,omitempty"`

	// N3 text of the conclusion formula. Required.
	Conclusion string `json:"conclusion"`
}

// An Application names one rule application to attempt: a rule and the
// knowledge base positions to bind its premises to.
type Application struct {
	// The position of the rule in RunSpec.Rules.
	Rule int `json:"rule"`

	// The knowledge base positions of the premises, one per rule premise.
	// Positions count registered axioms and earlier conclusions from zero in
	// order.
	Premises []int `json:"premises"`
}
