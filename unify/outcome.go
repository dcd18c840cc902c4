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

package unify

import "fmt"

// Kind classifies the result of a Match call. A search that runs out of
// budget is reported as BudgetExceeded, which callers must treat differently
// from NoMatch: the premise may well match given a larger budget.
type Kind int

const (
	// NoMatch means the search space was exhausted without finding a
	// complete assignment.
	NoMatch Kind = iota
	// Matched means every premise statement was mapped to a distinct
	// candidate statement under a consistent substitution.
	Matched
	// BudgetExceeded means the search was aborted before reaching a
	// verdict: it hit the step limit or the deadline, or its context was
	// cancelled.
	BudgetExceeded
)

func (k Kind) String() string {
	switch k {
	case NoMatch:
		return "no match"
	case Matched:
		return "matched"
	case BudgetExceeded:
		return "budget exceeded"
	}
	return fmt.Sprintf("unify.Kind(%d)", int(k))
}

// Outcome is the result of a Match call.
type Outcome struct {
	Kind Kind
	// Bindings holds the substitution that completes the match. It is only
	// set when Kind is Matched; it is the same Bindings instance the caller
	// seeded the search with, extended with this premise's variables.
	Bindings *Bindings
	// Steps is the number of candidate statement attempts the search
	// consumed, including the attempts of any abandoned branches.
	Steps int
}
