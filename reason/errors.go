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
	"errors"
	"fmt"
)

// Sentinel causes for failed rule applications. Callers distinguish them
// with errors.Is; the returned errors wrap these with the rule name and
// premise position.
var (
	// ErrNoMatch reports that a premise could not be unified with the
	// formula supplied for it.
	ErrNoMatch = errors.New("premises do not match")

	// ErrBudgetExhausted reports that the unification search gave up
	// after hitting the step budget or the deadline.
	ErrBudgetExhausted = errors.New("search budget exhausted")

	// ErrArityMismatch reports a rule applied to the wrong number of
	// formulas.
	ErrArityMismatch = errors.New("premise count mismatch")
)

// An UnsafeRuleError reports a rule whose conclusion uses a universal
// variable that no premise can ever bind. Such a rule is rejected at
// registration; applying it could never produce a ground conclusion.
type UnsafeRuleError struct {
	Rule     string
	Variable string
}

func (e *UnsafeRuleError) Error() string {
	return fmt.Sprintf("reason: rule '%s' is unsafe: conclusion variable ?%s does not appear in any premise",
		e.Rule, e.Variable)
}
