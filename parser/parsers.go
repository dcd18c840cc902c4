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
	"strconv"
	"strings"

	"github.com/ebay/n3proof/util/unicode"
	"github.com/vektah/goparsify"
)

// This file contains custom goparsify parsers for the N3 tokens that the
// stock combinators can't express cleanly, plus a few helpers that wrap up
// goparsify idioms.

// repeatZeroOrMore matches the parser zero or more times. This exists
// because the difference between Some & Many is not obvious from the name.
func repeatZeroOrMore(p goparsify.Parserish, sep ...goparsify.Parserish) goparsify.Parser {
	return goparsify.Some(p, sep...)
}

// repeatOneOrMore matches the parser one or more times. This exists
// because the difference between Some & Many is not obvious from the name.
func repeatOneOrMore(p goparsify.Parserish, sep ...goparsify.Parserish) goparsify.Parser {
	return goparsify.Many(p, sep...)
}

// n3WS is a goparsify whitespace parser that understands N3's whitespace
// rules. Whitespace chars are ' ' \t \r \n only. # starts a comment which
// runs to the end of the line.
func n3WS(s *goparsify.State) {
	for s.Pos < len(s.Input) {
		switch s.Input[s.Pos] {
		case ' ', '\t', '\r', '\n':
			s.Pos++

		case '#':
			s.Pos++
			// consume the rest of the line
			for s.Pos < len(s.Input) {
				c := s.Input[s.Pos]
				s.Pos++
				if c == '\n' || c == '\r' {
					break
				}
			}
		default:
			return
		}
	}
}

// isNameByte reports whether c can appear in a variable name, blank node
// label, or prefix name.
func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
		c >= '0' && c <= '9' || c == '_'
}

// isLocalByte reports whether c can appear in the local part of a prefixed
// name. '.' is deliberately excluded so that a statement terminator
// directly after a prefixed name stays a terminator.
func isLocalByte(c byte) bool {
	return isNameByte(c) || c == '-'
}

// isLangByte reports whether c can appear in a language tag.
func isLangByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '-'
}

// scanIRIRef scans an IRI reference in angle brackets starting at pos. The
// brackets themselves, quotes, braces, and whitespace are not allowed
// inside. Returns the IRI without the brackets and the position directly
// after the closing bracket.
func scanIRIRef(input string, pos int) (iri string, end int, ok bool) {
	if pos >= len(input) || input[pos] != '<' {
		return "", 0, false
	}
	end = pos + 1
	for end < len(input) {
		c := input[end]
		if c == '>' {
			return input[pos+1 : end], end + 1, true
		}
		switch c {
		case '<', '"', '{', '}', ' ', '\t', '\r', '\n':
			return "", 0, false
		}
		end++
	}
	return "", 0, false
}

// scanPrefixedName scans a prefixed name such as ex:knows starting at pos.
// Both parts must be non-empty and the colon attaches directly.
func scanPrefixedName(input string, pos int) (prefix, local string, end int, ok bool) {
	prefixEnd := pos
	for prefixEnd < len(input) && isNameByte(input[prefixEnd]) {
		prefixEnd++
	}
	if prefixEnd == pos || prefixEnd >= len(input) || input[prefixEnd] != ':' {
		return "", "", 0, false
	}
	localStart := prefixEnd + 1
	localEnd := localStart
	for localEnd < len(input) && isLocalByte(input[localEnd]) {
		localEnd++
	}
	if localEnd == localStart {
		return "", "", 0, false
	}
	return input[pos:prefixEnd], input[localStart:localEnd], localEnd, true
}

// iriRefParser parses an IRI reference in angle brackets, e.g.
// <http://example.org/knows>.
func iriRefParser() goparsify.Parser {
	return goparsify.NewParser("IRI reference", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		iri, end, ok := scanIRIRef(ps.Input, ps.Pos)
		if !ok {
			ps.ErrorHere("IRI reference")
			return
		}
		node.Token = iri
		node.Result = &synIRI{value: iri}
		ps.Pos = end
	})
}

// prefixedNameParser parses a prefixed name such as ex:knows. No
// whitespace is allowed around the colon, and the prefix part must be
// non-empty.
func prefixedNameParser() goparsify.Parser {
	return goparsify.NewParser("prefixed name", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		prefix, local, end, ok := scanPrefixedName(ps.Input, ps.Pos)
		if !ok {
			ps.ErrorHere("prefixed name")
			return
		}
		node.Token = ps.Input[ps.Pos:end]
		node.Result = &synPrefixed{prefix: prefix, local: local}
		ps.Pos = end
	})
}

// prefixNameParser parses the name part of a @prefix declaration: a
// non-empty name directly followed by a colon, e.g. "ex:". The result is
// the name without the colon.
func prefixNameParser() goparsify.Parser {
	return goparsify.NewParser("prefix name", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		input := ps.Input
		inputLen := len(input)
		nameEnd := ps.Pos
		for nameEnd < inputLen && isNameByte(input[nameEnd]) {
			nameEnd++
		}
		if nameEnd == ps.Pos || nameEnd >= inputLen || input[nameEnd] != ':' {
			ps.ErrorHere("prefix name")
			return
		}
		node.Token = input[ps.Pos:nameEnd]
		node.Result = node.Token
		ps.Pos = nameEnd + 1
	})
}

// variableParser parses a variable such as ?x. The name must directly
// follow the question mark.
func variableParser() goparsify.Parser {
	return goparsify.NewParser("variable", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		input := ps.Input
		inputLen := len(input)
		if ps.Pos >= inputLen || input[ps.Pos] != '?' {
			ps.ErrorHere("variable")
			return
		}
		nameEnd := ps.Pos + 1
		for nameEnd < inputLen && isNameByte(input[nameEnd]) {
			nameEnd++
		}
		if nameEnd == ps.Pos+1 {
			ps.ErrorHere("variable")
			return
		}
		node.Token = input[ps.Pos+1 : nameEnd]
		node.Result = &synVariable{name: node.Token}
		ps.Pos = nameEnd
	})
}

// blankNodeParser parses a blank node label such as _:b0.
func blankNodeParser() goparsify.Parser {
	return goparsify.NewParser("blank node", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		input := ps.Input
		inputLen := len(input)
		if ps.Pos+1 >= inputLen || input[ps.Pos] != '_' || input[ps.Pos+1] != ':' {
			ps.ErrorHere("blank node")
			return
		}
		idEnd := ps.Pos + 2
		for idEnd < inputLen && isNameByte(input[idEnd]) {
			idEnd++
		}
		if idEnd == ps.Pos+2 {
			ps.ErrorHere("blank node")
			return
		}
		node.Token = input[ps.Pos+2 : idEnd]
		node.Result = &synBlank{id: node.Token}
		ps.Pos = idEnd
	})
}

// numericLiteralParser parses bare integer and decimal literals, mapping
// them to xsd:integer and xsd:decimal. A '.' only starts a fraction when a
// digit follows it, so a statement terminator directly after a number
// ("... 42.") stays a terminator. goparsify's NumberLit would consume that
// trailing dot.
func numericLiteralParser() goparsify.Parser {
	return goparsify.NewParser("number", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		input := ps.Input
		inputLen := len(input)
		maxPos := ps.Pos
		if maxPos < inputLen && (input[maxPos] == '-' || input[maxPos] == '+') {
			maxPos++
		}
		digitsStart := maxPos
		for maxPos < inputLen && input[maxPos] >= '0' && input[maxPos] <= '9' {
			maxPos++
		}
		if maxPos == digitsStart {
			ps.ErrorHere("number")
			return
		}
		datatype := xsdInteger
		if maxPos+1 < inputLen && input[maxPos] == '.' &&
			input[maxPos+1] >= '0' && input[maxPos+1] <= '9' {
			datatype = xsdDecimal
			maxPos += 2
			for maxPos < inputLen && input[maxPos] >= '0' && input[maxPos] <= '9' {
				maxPos++
			}
		}
		node.Token = input[ps.Pos:maxPos]
		node.Result = &synLiteral{
			value:    node.Token,
			datatype: &synIRI{value: datatype},
		}
		ps.Pos = maxPos
	})
}

// stringLiteralParser parses a quoted string literal with its optional
// language tag or datatype suffix, e.g. "chat", "chat"@fr, or
// "42"^^<http://www.w3.org/2001/XMLSchema#integer>. Inside the quotes \c
// stands for c and \uXXXX for the code point XXXX; this mirrors what the
// serializer in write.go emits. A suffix attaches directly to the closing
// quote with no whitespace, so checking it here keeps a detached @prefix
// or @forAll on the next line out of the literal. Values are unicode
// normalized so that equal literals stay equal byte for byte.
func stringLiteralParser() goparsify.Parser {
	return goparsify.NewParser("string literal", func(ps *goparsify.State, node *goparsify.Result) {
		ps.WS(ps)
		input := ps.Input
		inputLen := len(input)
		if ps.Pos >= inputLen || input[ps.Pos] != '"' {
			ps.ErrorHere("string literal")
			return
		}
		var value strings.Builder
		end := ps.Pos + 1
	contents:
		for {
			if end >= inputLen {
				ps.ErrorHere("string literal")
				return
			}
			switch c := input[end]; c {
			case '"':
				end++
				break contents
			case '\\':
				if end+1 >= inputLen {
					ps.ErrorHere("string literal")
					return
				}
				if input[end+1] == 'u' {
					if end+6 > inputLen {
						ps.ErrorHere("string literal")
						return
					}
					r, err := strconv.ParseUint(input[end+2:end+6], 16, 32)
					if err != nil {
						ps.ErrorHere("string literal")
						return
					}
					value.WriteRune(rune(r))
					end += 6
					continue
				}
				value.WriteByte(input[end+1])
				end += 2
			default:
				value.WriteByte(c)
				end++
			}
		}
		lit := &synLiteral{value: unicode.Normalize(value.String())}
		switch {
		case end < inputLen && input[end] == '@':
			langEnd := end + 1
			for langEnd < inputLen && isLangByte(input[langEnd]) {
				langEnd++
			}
			if langEnd == end+1 {
				ps.ErrorHere("language tag")
				return
			}
			lit.language = input[end+1 : langEnd]
			end = langEnd

		case end+1 < inputLen && input[end] == '^' && input[end+1] == '^':
			if iri, iriEnd, ok := scanIRIRef(input, end+2); ok {
				lit.datatype = &synIRI{value: iri}
				end = iriEnd
			} else if prefix, local, pnameEnd, ok := scanPrefixedName(input, end+2); ok {
				lit.datatype = &synPrefixed{prefix: prefix, local: local}
				end = pnameEnd
			} else {
				ps.ErrorHere("datatype")
				return
			}
		}
		node.Token = lit.value
		node.Result = lit
		ps.Pos = end
	})
}

// statementLineParser parses a document line that starts with a term:
// either a plain statement ("s p o .") or, when the line starts with a
// braced formula, possibly a rule ("{ ... } => { ... } ."). Both shapes
// begin with the same formula parser and the formula body may Cut(), so
// Any() can't backtrack between them; this parser picks the branch by
// looking at what follows the leading term instead.
func statementLineParser(subject, object goparsify.Parserish, predicate, conclusion goparsify.Parser) goparsify.Parser {
	subjectParser := goparsify.Parsify(subject)
	objectParser := goparsify.Parsify(object)
	arrow := goparsify.Exact("=>")
	dot := goparsify.Exact(".")

	return goparsify.NewParser("statement", func(s *goparsify.State, r *goparsify.Result) {
		subj := goparsify.Result{}
		subjectParser(s, &subj)
		if s.Errored() {
			return
		}

		if premise, ok := subj.Result.(*synFormula); ok {
			mark := s.Pos
			arrow(s, goparsify.TrashResult)
			if !s.Errored() {
				// committed to a rule now
				s.Cut = s.Pos
				concl := goparsify.Result{}
				conclusion(s, &concl)
				if s.Errored() {
					return
				}
				dot(s, goparsify.TrashResult)
				if s.Errored() {
					return
				}
				r.Result = &synRule{
					premise:    premise,
					conclusion: concl.Result.(*synFormula),
				}
				return
			}
			s.Recover()
			s.Pos = mark
		}

		pred := goparsify.Result{}
		predicate(s, &pred)
		if s.Errored() {
			return
		}
		obj := goparsify.Result{}
		objectParser(s, &obj)
		if s.Errored() {
			return
		}
		dot(s, goparsify.TrashResult)
		if s.Errored() {
			return
		}
		r.Result = &synTriple{
			subject:   subj.Result.(synTerm),
			predicate: pred.Result.(synTerm),
			object:    obj.Result.(synTerm),
		}
	})
}
