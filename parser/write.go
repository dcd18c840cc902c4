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
	"io"
	"strings"

	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/util/errors"
)

// WriteFormula writes f to w in the same text form the parser reads:
// quantifier declarations first, then one statement per line. Parsing the
// output with ParseFormula produces a formula equal to f.
func WriteFormula(w io.Writer, f *n3.Formula) error {
	var errs []error
	write := func(s string) {
		_, err := io.WriteString(w, s)
		errs = append(errs, err)
	}
	if names := f.Universals(); len(names) > 0 {
		write("@forAll " + varList(names) + " .\n")
	}
	if names := f.Existentials(); len(names) > 0 {
		write("@forSome " + varList(names) + " .\n")
	}
	for _, stmt := range f.Statements() {
		write(statementText(stmt) + "\n")
	}
	return errors.Any(errs...)
}

// FormulaString returns f serialized the same way WriteFormula writes it.
func FormulaString(f *n3.Formula) string {
	var b strings.Builder
	_ = WriteFormula(&b, f) // a Builder write can't fail
	return b.String()
}

func varList(names []string) string {
	vars := make([]string, len(names))
	for i, name := range names {
		vars[i] = "?" + name
	}
	return strings.Join(vars, ", ")
}

func statementText(stmt n3.Statement) string {
	return termText(stmt.Subject) + " " + termText(stmt.Predicate) + " " +
		termText(stmt.Object) + " ."
}

func termText(t n3.Term) string {
	switch t := t.(type) {
	case *n3.IRI:
		return "<" + t.Value + ">"
	case *n3.BlankNode:
		return "_:" + t.ID
	case *n3.Variable:
		return "?" + t.Name
	case *n3.Literal:
		return literalText(t)
	case *n3.FormulaTerm:
		return formulaText(t.Formula)
	default:
		panic(fmt.Sprintf("unsupported term type: %T", t))
	}
}

// literalText renders a literal in quoted form, so "42"^^xsd:integer and a
// bare 42 in the input read back as the same term. A datatype takes
// precedence over a language tag, as in RDF.
func literalText(l *n3.Literal) string {
	text := quoted(l.Value)
	switch {
	case l.Datatype.Value != "":
		return text + "^^<" + l.Datatype.Value + ">"
	case l.Language != "":
		return text + "@" + l.Language
	}
	return text
}

// quoted wraps value in double quotes, escaping quotes and backslashes.
// Everything else passes through as is, which is exactly the set of
// escapes the string literal parser undoes.
func quoted(value string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}

// formulaText renders a nested formula inline: declarations and statements
// separated by spaces inside braces.
func formulaText(f *n3.Formula) string {
	parts := []string{"{"}
	if names := f.Universals(); len(names) > 0 {
		parts = append(parts, "@forAll "+varList(names)+" .")
	}
	if names := f.Existentials(); len(names) > 0 {
		parts = append(parts, "@forSome "+varList(names)+" .")
	}
	for _, stmt := range f.Statements() {
		parts = append(parts, statementText(stmt))
	}
	parts = append(parts, "}")
	return strings.Join(parts, " ")
}
