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

// Package n3 defines the value model for N3-style reasoning: terms,
// statements (subject predicate object triples), and formulas (quantified
// sets of statements). Values are built once and never mutated afterwards,
// so they are safe to share between rules, the knowledge base, and proofs.
package n3

import (
	"strconv"
	"strings"

	"github.com/ebay/n3proof/util/bytes"
)

// A Term is a single element of a Statement.
type Term interface {
	// String returns the term in N3 surface syntax, e.g. <http://a> or ?x.
	String() string
	// Key appends an exact encoding of the term to b. Two terms append the
	// same bytes iff they are structurally equal. The encoding sorts in a
	// stable (if arbitrary) order, which the knowledge base relies on for
	// its statement index. b is typically a strings.Builder or
	// bytes.Buffer; write errors are ignored.
	Key(b bytes.StringWriter)
	// Equal returns true if other is structurally equal to this term.
	// Nested formulas compare statement by statement; see
	// Formula.Equivalent for equality up to variable renaming.
	Equal(other Term) bool
	aTerm()
}

// Enumerate the types of Term. This is here to get a compile-time error if
// one of them doesn't implement Term.
var _ = []Term{
	&IRI{},
	&BlankNode{},
	&Literal{},
	&Variable{},
	&FormulaTerm{},
}

// An IRI is a global name for a resource, shown as <http://example.org/p>.
type IRI struct {
	Value string
}

func (iri *IRI) String() string {
	return "<" + iri.Value + ">"
}

// Key implements Term.Key.
func (iri *IRI) Key(b bytes.StringWriter) {
	b.WriteByte('I')
	keyString(b, iri.Value)
}

// Equal implements Term.Equal.
func (iri *IRI) Equal(other Term) bool {
	o, ok := other.(*IRI)
	return ok && iri.Value == o.Value
}

func (iri *IRI) aTerm() {}

// A BlankNode is an identifier local to the graph it appears in, shown as
// _:b1. Two blank nodes are the same node iff their identifiers are equal.
type BlankNode struct {
	ID string
}

func (node *BlankNode) String() string {
	return "_:" + node.ID
}

// Key implements Term.Key.
func (node *BlankNode) Key(b bytes.StringWriter) {
	b.WriteByte('B')
	keyString(b, node.ID)
}

// Equal implements Term.Equal.
func (node *BlankNode) Equal(other Term) bool {
	o, ok := other.(*BlankNode)
	return ok && node.ID == o.ID
}

func (node *BlankNode) aTerm() {}

// A Literal is a concrete value. Datatype and Language are optional: a
// literal with neither is a plain string. Language is only meaningful
// without a Datatype, as in RDF.
type Literal struct {
	Value    string
	Datatype IRI
	Language string
}

func (lit *Literal) String() string {
	quoted := strconv.Quote(lit.Value)
	switch {
	case lit.Datatype.Value != "":
		return quoted + "^^" + lit.Datatype.String()
	case lit.Language != "":
		return quoted + "@" + lit.Language
	}
	return quoted
}

// Key implements Term.Key.
func (lit *Literal) Key(b bytes.StringWriter) {
	b.WriteByte('L')
	keyString(b, lit.Value)
	keyString(b, lit.Datatype.Value)
	keyString(b, lit.Language)
}

// Equal implements Term.Equal.
func (lit *Literal) Equal(other Term) bool {
	o, ok := other.(*Literal)
	return ok && lit.Value == o.Value &&
		lit.Datatype.Value == o.Datatype.Value &&
		lit.Language == o.Language
}

func (lit *Literal) aTerm() {}

// A Variable is a named placeholder, shown as ?x. Which quantifier binds it
// is recorded by the enclosing Formula, not by the term itself.
type Variable struct {
	Name string
}

func (v *Variable) String() string {
	return "?" + v.Name
}

// Key implements Term.Key.
func (v *Variable) Key(b bytes.StringWriter) {
	b.WriteByte('V')
	keyString(b, v.Name)
}

// Equal implements Term.Equal.
func (v *Variable) Equal(other Term) bool {
	o, ok := other.(*Variable)
	return ok && v.Name == o.Name
}

func (v *Variable) aTerm() {}

// A FormulaTerm embeds a formula as a term, as in { ?x <knows> ?y . }.
// The formula is immutable and may be shared by any number of terms.
type FormulaTerm struct {
	Formula *Formula
}

func (ft *FormulaTerm) String() string {
	return ft.Formula.String()
}

// Key implements Term.Key.
func (ft *FormulaTerm) Key(b bytes.StringWriter) {
	b.WriteByte('F')
	ft.Formula.appendKey(b)
}

// Equal implements Term.Equal.
func (ft *FormulaTerm) Equal(other Term) bool {
	o, ok := other.(*FormulaTerm)
	return ok && ft.Formula.Equal(o.Formula)
}

func (ft *FormulaTerm) aTerm() {}

// keyString appends s with a length prefix, keeping the overall key
// encoding unambiguous.
func keyString(b bytes.StringWriter, s string) {
	b.WriteString(strconv.Itoa(len(s)))
	b.WriteByte(':')
	b.WriteString(s)
}

// TermKey returns the exact key encoding of the term as a string, for use
// as a map key or in the knowledge base's indexes.
func TermKey(term Term) string {
	var b strings.Builder
	term.Key(&b)
	return b.String()
}
