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

import (
	"sort"
	"strings"

	"github.com/ebay/n3proof/n3"
)

// Bindings is a substitution: it maps variable names of premise formulas to
// terms taken from candidate formulas. Candidate variables are never bound;
// when a premise variable unifies with a candidate variable the candidate
// variable is what gets recorded as the value. A trail records the binding
// order so the search can undo back to any earlier point.
type Bindings struct {
	byName map[string]n3.Term
	trail  []string
}

// NewBindings returns an empty substitution.
func NewBindings() *Bindings {
	return &Bindings{byName: make(map[string]n3.Term)}
}

// Get returns the term bound to the named variable, or false if the variable
// is unbound.
func (b *Bindings) Get(name string) (n3.Term, bool) {
	term, exists := b.byName[name]
	return term, exists
}

// Len returns the number of bound variables.
func (b *Bindings) Len() int {
	return len(b.byName)
}

// Names returns the bound variable names in sorted order.
func (b *Bindings) Names() []string {
	names := make([]string, 0, len(b.byName))
	for name := range b.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the substitution for diagnostics, e.g. `{?x=<alice> ?y=?z}`.
func (b *Bindings) String() string {
	var buf strings.Builder
	buf.WriteByte('{')
	for i, name := range b.Names() {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte('?')
		buf.WriteString(name)
		buf.WriteByte('=')
		buf.WriteString(b.byName[name].String())
	}
	buf.WriteByte('}')
	return buf.String()
}

// bind records a new binding. The caller must have checked that the name is
// currently unbound.
func (b *Bindings) bind(name string, term n3.Term) {
	b.byName[name] = term
	b.trail = append(b.trail, name)
}

// mark returns a point in the trail that undo can later rewind to.
func (b *Bindings) mark() int {
	return len(b.trail)
}

// undo removes every binding recorded after the given mark.
func (b *Bindings) undo(mark int) {
	for i := len(b.trail) - 1; i >= mark; i-- {
		delete(b.byName, b.trail[i])
	}
	b.trail = b.trail[:mark]
}
