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

package n3

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ebay/n3proof/util/bytes"
)

// A Statement is one subject, predicate, object triple.
type Statement struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// Triple is shorthand for building a Statement.
func Triple(subject, predicate, object Term) Statement {
	return Statement{Subject: subject, Predicate: predicate, Object: object}
}

func (stmt Statement) String() string {
	return fmt.Sprintf("%v %v %v .", stmt.Subject, stmt.Predicate, stmt.Object)
}

// Equal returns true if both statements have structurally equal terms in
// all three positions.
func (stmt Statement) Equal(other Statement) bool {
	return stmt.Subject.Equal(other.Subject) &&
		stmt.Predicate.Equal(other.Predicate) &&
		stmt.Object.Equal(other.Object)
}

// A Formula is an ordered sequence of statements together with the
// variables quantified over them. Every variable that appears in a
// statement is declared either universal (@forAll) or existential
// (@forSome); Builder.Build checks this. Formulas are immutable once built.
//
// Variables inside a nested FormulaTerm are scoped to that inner formula
// and play no part in the outer formula's quantifiers.
type Formula struct {
	statements   []Statement
	universals   map[string]struct{}
	existentials map[string]struct{}
	// Variable names appearing in statements, sorted.
	vars []string
	// Computed once at build time; see canonicalize.
	canonical string
}

// Statements returns the formula's statements in order. Callers must not
// modify the returned slice.
func (f *Formula) Statements() []Statement {
	return f.statements
}

// Universals returns the sorted names of the universally quantified
// variables declared on this formula.
func (f *Formula) Universals() []string {
	return sortedNames(f.universals)
}

// Existentials returns the sorted names of the existentially quantified
// variables declared on this formula.
func (f *Formula) Existentials() []string {
	return sortedNames(f.existentials)
}

// IsUniversal returns true if the named variable is declared @forAll here.
func (f *Formula) IsUniversal(name string) bool {
	_, ok := f.universals[name]
	return ok
}

// IsExistential returns true if the named variable is declared @forSome
// here.
func (f *Formula) IsExistential(name string) bool {
	_, ok := f.existentials[name]
	return ok
}

// Vars returns the sorted names of the variables that actually occur in
// the formula's statements (declared-but-unused names are not included).
// Callers must not modify the returned slice.
func (f *Formula) Vars() []string {
	return f.vars
}

// Equal returns true if other has the same statements in the same order
// and the same quantifier declarations. Use Equivalent for equality up to
// variable renaming.
func (f *Formula) Equal(other *Formula) bool {
	if len(f.statements) != len(other.statements) ||
		len(f.universals) != len(other.universals) ||
		len(f.existentials) != len(other.existentials) {
		return false
	}
	for i := range f.statements {
		if !f.statements[i].Equal(other.statements[i]) {
			return false
		}
	}
	for name := range f.universals {
		if _, ok := other.universals[name]; !ok {
			return false
		}
	}
	for name := range f.existentials {
		if _, ok := other.existentials[name]; !ok {
			return false
		}
	}
	return true
}

func (f *Formula) String() string {
	var b strings.Builder
	b.WriteString("{")
	for _, stmt := range f.statements {
		b.WriteString(" ")
		b.WriteString(stmt.String())
	}
	b.WriteString(" }")
	return b.String()
}

// appendKey appends an exact encoding of the formula, mirroring Term.Key.
func (f *Formula) appendKey(b bytes.StringWriter) {
	for _, stmt := range f.statements {
		stmt.Subject.Key(b)
		stmt.Predicate.Key(b)
		stmt.Object.Key(b)
	}
	b.WriteString("A[")
	b.WriteString(strings.Join(f.Universals(), ","))
	b.WriteString("]E[")
	b.WriteString(strings.Join(f.Existentials(), ","))
	b.WriteString("]")
}

// A Builder accumulates statements and quantifier declarations for a new
// Formula. The zero value is not usable; call NewBuilder.
type Builder struct {
	statements   []Statement
	universals   map[string]struct{}
	existentials map[string]struct{}
}

// NewBuilder returns an empty formula builder.
func NewBuilder() *Builder {
	return &Builder{
		universals:   make(map[string]struct{}),
		existentials: make(map[string]struct{}),
	}
}

// Add appends the statement (subject, predicate, object).
func (b *Builder) Add(subject, predicate, object Term) *Builder {
	return b.AddStatement(Triple(subject, predicate, object))
}

// AddStatement appends the given statement.
func (b *Builder) AddStatement(stmt Statement) *Builder {
	b.statements = append(b.statements, stmt)
	return b
}

// ForAll declares the named variables universally quantified.
func (b *Builder) ForAll(names ...string) *Builder {
	for _, name := range names {
		b.universals[name] = struct{}{}
	}
	return b
}

// ForSome declares the named variables existentially quantified.
func (b *Builder) ForSome(names ...string) *Builder {
	for _, name := range names {
		b.existentials[name] = struct{}{}
	}
	return b
}

// Build validates the accumulated formula and returns it. It returns a
// ModelError if a declared variable name is empty, if a name is declared
// both universal and existential, or if a variable occurs in a statement
// without being declared. The builder may keep accumulating afterwards;
// the returned formula is an independent snapshot.
func (b *Builder) Build() (*Formula, error) {
	for name := range b.universals {
		if name == "" {
			return nil, &ModelError{Detail: "empty universal variable name"}
		}
		if _, ok := b.existentials[name]; ok {
			return nil, &ModelError{Detail: fmt.Sprintf(
				"variable ?%v declared both universal and existential", name)}
		}
	}
	for name := range b.existentials {
		if name == "" {
			return nil, &ModelError{Detail: "empty existential variable name"}
		}
	}
	used := collectVars(b.statements)
	for name := range used {
		_, isUniv := b.universals[name]
		_, isExist := b.existentials[name]
		if !isUniv && !isExist {
			return nil, &ModelError{Detail: fmt.Sprintf(
				"variable ?%v used but not quantified", name)}
		}
	}
	f := &Formula{
		statements:   make([]Statement, len(b.statements)),
		universals:   make(map[string]struct{}, len(b.universals)),
		existentials: make(map[string]struct{}, len(b.existentials)),
		vars:         sortedNames(used),
	}
	copy(f.statements, b.statements)
	for name := range b.universals {
		f.universals[name] = struct{}{}
	}
	for name := range b.existentials {
		f.existentials[name] = struct{}{}
	}
	f.canonical = canonicalize(f)
	return f, nil
}

// collectVars gathers the names of variables appearing directly in the
// given statements. It does not descend into nested formulas: their
// variables are quantified on the inner formula.
func collectVars(statements []Statement) map[string]struct{} {
	vars := make(map[string]struct{})
	for _, stmt := range statements {
		for _, term := range []Term{stmt.Subject, stmt.Predicate, stmt.Object} {
			if v, ok := term.(*Variable); ok {
				vars[v.Name] = struct{}{}
			}
		}
	}
	return vars
}

func sortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
