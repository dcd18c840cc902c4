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
	p "github.com/vektah/goparsify"
)

var (
	// document is the parser function called by ParseDocument. It extracts
	// a whole N3 document: prefix declarations, quantifier declarations,
	// statements, rules, and the goal pragma, in any order.
	document p.Parser
	// formula is the parser function called by ParseFormula. It extracts a
	// bare formula body: quantifier declarations and statements, without
	// enclosing braces.
	formula p.Parser
)

func init() {
	// If you need to debug what the parser is doing, you can enable goparsify's
	// built in debug support by building with -tags debug. See the docs for
	// more details https://github.com/vektah/goparsify#debugging-parsers
	//
	// The parser_debug.go file will setup sending the parser debug output to
	// stdOut when the debug tag is used.

	iriRef := iriRefParser()     // <http://example.org/knows>
	variable := variableParser() // ?x

	// term and bracedFormula are mutually recursive, so bracedFormula gets
	// wired in by address and assigned below.
	var bracedFormula p.Parser
	term := p.Any(
		iriRef,
		blankNodeParser(),     // _:b0
		prefixedNameParser(),  // ex:knows
		variable,
		stringLiteralParser(), // "chat"@fr
		numericLiteralParser(), // 42 || 3.14
		&bracedFormula)
	predicate := p.Any(term, p.Exact("a").Map(rdfTypeKeyword))
	triple := p.Seq(term, predicate, term, ".").Map(statement) // ex:alice ex:knows ex:bob .

	vars := repeatOneOrMore(variable, p.Maybe(",")) // ?x, ?y || ?x ?y
	forAllDecl := p.Seq("@forAll", p.Cut(), vars, ".").Map(forAll)
	forSomeDecl := p.Seq("@forSome", p.Cut(), vars, ".").Map(forSome)
	prefixDecl := p.Seq("@prefix", p.Cut(), prefixNameParser(), iriRef, ".").Map(declarePrefix)

	braceLine := p.Any(forAllDecl, forSomeDecl, triple)
	bracedFormula = p.Seq("{", p.Cut(), repeatZeroOrMore(braceLine), "}").Map(braced)

	goalDecl := p.Seq("n3p:goal", p.Cut(), bracedFormula, ".").Map(goal) // n3p:goal { ... } .

	formula = repeatZeroOrMore(p.Any(prefixDecl, forAllDecl, forSomeDecl, triple)).Map(formulaBody)

	// A document line starting with a term can be a plain statement or a
	// rule, and both begin with the same braced formula parser, so the
	// split between them lives in statementLineParser rather than Any().
	statementLine := statementLineParser(term, term, predicate, bracedFormula)
	document = repeatZeroOrMore(p.Any(prefixDecl, forAllDecl, forSomeDecl, goalDecl, statementLine)).Map(documentBody)
}
