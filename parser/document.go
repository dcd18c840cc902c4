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

package parser

import (
	"fmt"
	"strings"

	"github.com/ebay/n3proof/n3"
)

// Well known IRIs the grammar expands shorthand tokens to.
const (
	rdfType    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	xsdInteger = "http://www.w3.org/2001/XMLSchema#integer"
	xsdDecimal = "http://www.w3.org/2001/XMLSchema#decimal"
)

// A Document is the result of parsing a full N3 document: the prefix
// bindings, the top level statements (one formula each), the implication
// rules, and the optional goal named by the n3p:goal pragma.
type Document struct {
	// Prefixes maps prefix names (without the colon) to the IRIs they
	// expand to, as bound at the end of the document.
	Prefixes map[string]string
	// Axioms holds one single-statement formula per top level statement,
	// in document order.
	Axioms []*n3.Formula
	// Rules holds the document's implication rules in document order.
	Rules []ParsedRule
	// Goal is the formula given by the n3p:goal pragma, or nil.
	Goal *n3.Formula
}

// A ParsedRule is one "{ premises } => { conclusion } ." line. Each top
// level statement inside the premise braces becomes its own premise
// formula, matching how the reasoning engine binds premises one at a time.
type ParsedRule struct {
	Premises   []*n3.Formula
	Conclusion *n3.Formula
}

// The types below form the syntax tree the grammar produces. Prefixed
// names stay unexpanded and variables carry no quantifier class yet; the
// resolver turns the tree into n3 values once the whole input is known.

type synTerm interface {
	aSynTerm()
	String() string
}

// Enumerate the types of synTerm. This is here to get a compile-time error
// if one of them doesn't implement synTerm.
var _ = []synTerm{
	&synIRI{},
	&synPrefixed{},
	&synVariable{},
	&synBlank{},
	&synLiteral{},
	&synFormula{},
}

// synItem is one entry in a document or formula body.
type synItem interface {
	aSynItem()
}

// Enumerate the types of synItem. This is here to get a compile-time error
// if one of them doesn't implement synItem.
var _ = []synItem{
	&synPrefix{},
	&synQuant{},
	&synTriple{},
	&synRule{},
	&synGoal{},
}

// synIRI is an IRI reference, e.g. <http://example.org/knows>.
type synIRI struct {
	value string
}

// synPrefixed is an unexpanded prefixed name, e.g. ex:knows.
type synPrefixed struct {
	prefix string
	local  string
}

// synVariable is a variable, e.g. ?x.
type synVariable struct {
	name string
}

// synBlank is a blank node label, e.g. _:b0.
type synBlank struct {
	id string
}

// synLiteral is a literal with an optional datatype or language tag. For
// bare numbers the grammar fills in the xsd datatype itself.
type synLiteral struct {
	value    string
	datatype synTerm
	language string
}

// synFormula is a braced formula body: quantifier headers and statements.
type synFormula struct {
	items []synItem
}

// synPrefix is a @prefix declaration.
type synPrefix struct {
	name string
	iri  string
}

// synQuant is a @forAll or @forSome header.
type synQuant struct {
	universal bool
	names     []string
}

// synTriple is a single subject predicate object statement.
type synTriple struct {
	subject   synTerm
	predicate synTerm
	object    synTerm
}

// synRule is an implication line, { premise } => { conclusion } .
type synRule struct {
	premise    *synFormula
	conclusion *synFormula
}

// synGoal is an n3p:goal pragma.
type synGoal struct {
	formula *synFormula
}

func (t *synIRI) aSynTerm()      {}
func (t *synPrefixed) aSynTerm() {}
func (t *synVariable) aSynTerm() {}
func (t *synBlank) aSynTerm()    {}
func (t *synLiteral) aSynTerm()  {}
func (t *synFormula) aSynTerm()  {}

func (i *synPrefix) aSynItem() {}
func (i *synQuant) aSynItem()  {}
func (i *synTriple) aSynItem() {}
func (i *synRule) aSynItem()   {}
func (i *synGoal) aSynItem()   {}

func (t *synIRI) String() string {
	return "<" + t.value + ">"
}

func (t *synPrefixed) String() string {
	return t.prefix + ":" + t.local
}

func (t *synVariable) String() string {
	return "?" + t.name
}

func (t *synBlank) String() string {
	return "_:" + t.id
}

func (t *synLiteral) String() string {
	str := fmt.Sprintf("%q", t.value)
	switch {
	case t.datatype != nil:
		return str + "^^" + t.datatype.String()
	case t.language != "":
		return str + "@" + t.language
	}
	return str
}

func (t *synFormula) String() string {
	parts := make([]string, 0, len(t.items))
	for _, item := range t.items {
		switch item := item.(type) {
		case *synQuant:
			parts = append(parts, item.String())
		case *synTriple:
			parts = append(parts, item.String())
		}
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

func (q *synQuant) String() string {
	keyword := "@forAll"
	if !q.universal {
		keyword = "@forSome"
	}
	vars := make([]string, len(q.names))
	for i, name := range q.names {
		vars[i] = "?" + name
	}
	return keyword + " " + strings.Join(vars, ", ") + " ."
}

func (t *synTriple) String() string {
	return fmt.Sprintf("%v %v %v .", t.subject, t.predicate, t.object)
}

// varClass says which quantifier binds a variable.
type varClass int

const (
	classUniversal varClass = iota
	classExistential
)

// A scope holds the quantifier headers in effect for one formula, chained
// to the scopes of the enclosing formulas and the document.
type scope struct {
	parent  *scope
	classes map[string]varClass
}

func newScope(parent *scope) *scope {
	return &scope{parent: parent, classes: make(map[string]varClass)}
}

// declare records a quantifier header. Re-declaring a name overrides the
// earlier class, so the last header for a name wins.
func (s *scope) declare(q *synQuant) {
	class := classUniversal
	if !q.universal {
		class = classExistential
	}
	for _, name := range q.names {
		s.classes[name] = class
	}
}

// classOf returns the class of the named variable, walking the scope
// chain innermost first. An undeclared variable is universal, matching
// N3's reading of a bare ?x.
func (s *scope) classOf(name string) varClass {
	for sc := s; sc != nil; sc = sc.parent {
		if class, ok := sc.classes[name]; ok {
			return class
		}
	}
	return classUniversal
}

// resolver turns the syntax tree into n3 values. It carries the prefix
// bindings, which accumulate sequentially over the input: a prefix applies
// to everything after its declaration.
type resolver struct {
	prefixes map[string]string
}

// document assembles a Document from the top level items.
func (r *resolver) document(items []synItem) (*Document, error) {
	doc := &Document{Prefixes: r.prefixes}
	sc := newScope(nil)
	for _, item := range items {
		switch item := item.(type) {
		case *synPrefix:
			r.prefixes[item.name] = item.iri
		case *synQuant:
			sc.declare(item)
		case *synTriple:
			axiom, err := r.conjunct(item, sc)
			if err != nil {
				return nil, err
			}
			doc.Axioms = append(doc.Axioms, axiom)
		case *synRule:
			rule, err := r.rule(item, sc)
			if err != nil {
				return nil, err
			}
			doc.Rules = append(doc.Rules, rule)
		case *synGoal:
			if doc.Goal != nil {
				return nil, fmt.Errorf("parser: multiple n3p:goal pragmas")
			}
			goal, err := r.formula(item.formula, sc)
			if err != nil {
				return nil, err
			}
			doc.Goal = goal
		default:
			panic(fmt.Sprintf("unsupported document item type: %T", item))
		}
	}
	return doc, nil
}

// rule builds a ParsedRule. Quantifier headers inside the premise braces
// scope all premise conjuncts; each top level statement there becomes its
// own single-statement premise formula declaring just the variables it
// uses.
func (r *resolver) rule(item *synRule, parent *scope) (ParsedRule, error) {
	sc := newScope(parent)
	for _, pi := range item.premise.items {
		if q, ok := pi.(*synQuant); ok {
			sc.declare(q)
		}
	}
	rule := ParsedRule{}
	for _, pi := range item.premise.items {
		t, ok := pi.(*synTriple)
		if !ok {
			continue
		}
		premise, err := r.conjunct(t, sc)
		if err != nil {
			return ParsedRule{}, err
		}
		rule.Premises = append(rule.Premises, premise)
	}
	conclusion, err := r.formula(item.conclusion, parent)
	if err != nil {
		return ParsedRule{}, err
	}
	rule.Conclusion = conclusion
	return rule, nil
}

// formula builds one n3.Formula from a formula body. Quantifier headers
// apply to the whole formula regardless of where they appear in it, and
// every name they declare is kept even when unused, so serialized
// formulas parse back equal.
func (r *resolver) formula(f *synFormula, parent *scope) (*n3.Formula, error) {
	sc := newScope(parent)
	for _, item := range f.items {
		if q, ok := item.(*synQuant); ok {
			sc.declare(q)
		}
	}
	b := n3.NewBuilder()
	used := make(map[string]struct{})
	for _, item := range f.items {
		switch item := item.(type) {
		case *synQuant:
		case *synPrefix:
			r.prefixes[item.name] = item.iri
		case *synTriple:
			stmt, err := r.triple(item, sc, used)
			if err != nil {
				return nil, err
			}
			b.AddStatement(stmt)
		default:
			panic(fmt.Sprintf("unsupported formula item type: %T", item))
		}
	}
	for name, class := range sc.classes {
		declareVar(b, name, class)
	}
	for name := range used {
		declareVar(b, name, sc.classOf(name))
	}
	built, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("parser: %v", err)
	}
	return built, nil
}

// conjunct builds a single-statement formula for one statement, declaring
// only the variables the statement uses.
func (r *resolver) conjunct(t *synTriple, sc *scope) (*n3.Formula, error) {
	b := n3.NewBuilder()
	used := make(map[string]struct{})
	stmt, err := r.triple(t, sc, used)
	if err != nil {
		return nil, err
	}
	b.AddStatement(stmt)
	for name := range used {
		declareVar(b, name, sc.classOf(name))
	}
	built, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("parser: %v", err)
	}
	return built, nil
}

// triple resolves one statement's terms, recording the names of variables
// used directly in it.
func (r *resolver) triple(t *synTriple, sc *scope, used map[string]struct{}) (n3.Statement, error) {
	terms := [3]n3.Term{}
	for i, st := range [3]synTerm{t.subject, t.predicate, t.object} {
		term, err := r.term(st, sc)
		if err != nil {
			return n3.Statement{}, err
		}
		if v, ok := term.(*n3.Variable); ok {
			used[v.Name] = struct{}{}
		}
		terms[i] = term
	}
	return n3.Triple(terms[0], terms[1], terms[2]), nil
}

// term resolves one term, expanding prefixed names and recursing into
// nested formulas. Variables inside a nested formula are quantified on
// that formula, not on the enclosing one.
func (r *resolver) term(t synTerm, sc *scope) (n3.Term, error) {
	switch t := t.(type) {
	case *synIRI:
		return &n3.IRI{Value: t.value}, nil
	case *synPrefixed:
		return r.expand(t)
	case *synVariable:
		return &n3.Variable{Name: t.name}, nil
	case *synBlank:
		return &n3.BlankNode{ID: t.id}, nil
	case *synLiteral:
		lit := &n3.Literal{Value: t.value, Language: t.language}
		if t.datatype != nil {
			dt, err := r.term(t.datatype, sc)
			if err != nil {
				return nil, err
			}
			lit.Datatype = *dt.(*n3.IRI)
		}
		return lit, nil
	case *synFormula:
		nested, err := r.formula(t, sc)
		if err != nil {
			return nil, err
		}
		return &n3.FormulaTerm{Formula: nested}, nil
	default:
		panic(fmt.Sprintf("unsupported term type: %T", t))
	}
}

// expand resolves a prefixed name against the prefixes declared so far.
func (r *resolver) expand(t *synPrefixed) (*n3.IRI, error) {
	base, ok := r.prefixes[t.prefix]
	if !ok {
		return nil, fmt.Errorf("parser: undeclared prefix '%s:'", t.prefix)
	}
	return &n3.IRI{Value: base + t.local}, nil
}

func declareVar(b *n3.Builder, name string, class varClass) {
	if class == classExistential {
		b.ForSome(name)
	} else {
		b.ForAll(name)
	}
}
