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
	"unicode"
	"unicode/utf8"

	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/util/cmp"
	"github.com/sirupsen/logrus"
	"github.com/vektah/goparsify"
)

// MustParseFormula parses an N3 formula and panics if an error occurs. It
// simplifies variable initialization. This is primarily meant for writing
// unit tests.
func MustParseFormula(in string) *n3.Formula {
	f, err := ParseFormula(in)
	if err != nil {
		panic(fmt.Sprintf("unable to parse formula: '%s': %v", strings.Replace(in, "\n", "\\n", -1), err))
	}
	return f
}

// ParseFormula parses a bare formula body: @forAll and @forSome
// declarations and statements, without enclosing braces. Variables that
// appear in no declaration are universal.
func ParseFormula(in string) (*n3.Formula, error) {
	p := &parser{in: in}
	return p.parseFormula()
}

// ParseDocument parses a complete N3 document: prefix declarations,
// quantifier declarations, statements, rules, and at most one n3p:goal
// pragma.
func ParseDocument(in string) (*Document, error) {
	p := &parser{in: in}
	return p.parseDocument()
}

// parser implementation
type parser struct {
	in string
}

// parse reads the input with the supplied root parser. If its unable to
// fully parse the input a ParseError will be returned that includes the
// position of where it parsed to, and what the problem is.
func (p *parser) parse(typ string, parser goparsify.Parser) (*goparsify.Result, error) {
	// parse the input; see lang_def.go for the combinator semantics
	state := goparsify.NewState(p.in)
	state.WS = n3WS

	result := &goparsify.Result{}
	parser(state, result)
	if state.Errored() {
		line, col := coordinates(p.in, state.Error.Pos())
		exp := strings.TrimPrefix(fmt.Sprintf("%q", expectedText(&state.Error)), `"`)
		exp = strings.TrimSuffix(exp, `"`)
		return nil, &ParseError{
			ParseType: typ,
			Input:     p.in,
			Offset:    state.Error.Pos(),
			Line:      line,
			Column:    col,
			Details:   "expected " + exp,
		}
	}
	// consume tail whitespace and check for unparsed text
	state.WS(state)
	unparsed := state.Get()
	if unparsed != "" {
		line, col := coordinates(p.in, state.Pos)
		return nil, &ParseError{
			ParseType: typ,
			Input:     p.in,
			Offset:    state.Pos,
			Line:      line,
			Column:    col,
			Details:   fmt.Sprintf("unparsed text: '%s'", strings.TrimRightFunc(unparsed, unicode.IsSpace)),
		}
	}
	return result, nil
}

// parseDocument parses the entire document and resolves it into axioms,
// rules, and the goal.
func (p *parser) parseDocument() (*Document, error) {
	result, err := p.parse("document", document)
	if err != nil {
		return nil, err
	}
	items, ok := result.Result.([]synItem)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	r := &resolver{prefixes: map[string]string{}}
	return r.document(items)
}

// parseFormula parses a bare formula body and resolves it.
func (p *parser) parseFormula() (*n3.Formula, error) {
	result, err := p.parse("formula", formula)
	if err != nil {
		return nil, err
	}
	body, ok := result.Result.(*synFormula)
	if !ok {
		return nil, fmt.Errorf("invalid result type: %T", result.Result)
	}
	r := &resolver{prefixes: map[string]string{}}
	return r.formula(body, nil)
}

// ParseError captures more detailed information about a parsing error, and
// where it occurred.
type ParseError struct {
	// document or formula.
	ParseType string
	// The input string to the parser which resulted in this error.
	Input string
	// Offset is the byte offset into 'Input' at which the error ocurred.
	Offset int
	// Line is the line number in 'Input' at which the error ocurred.
	Line int
	// Column is the column (in runes) into the indicated Line that the error
	// ocurred. Line & Column represent the same point in 'Input' as 'Offset'.
	Column int
	// The specific parser error that ocurred.
	Details string
}

func (p *ParseError) Error() string {
	return fmt.Sprintf("unable to parse %s: line %d column %d: %s",
		p.ParseType, p.Line, p.Column, p.Details)
}

// coordinates returns the line & column of the supplied offset in the string
// 'input'. Offset is in bytes, the returned column value is in runes.
func coordinates(input string, atOffset int) (line, col int) {
	// Trim any trailing whitespace from the input, as most people wouldn't
	// consider it an expected place for an error.
	input = strings.TrimRightFunc(input, unicode.IsSpace)
	// Don't let atOffset be past the end of the input.
	atOffset = cmp.MinInt(atOffset, len(input))

	lines := strings.Split(input, "\n")
	current := 0
	line = 1
	for _, l := range lines {
		if current+len(l) >= atOffset {
			// offset is in bytes, but the reported column should be based on runes.
			col = utf8.RuneCountInString(l[:atOffset-current]) + 1
			return line, col
		}
		line++
		current += len(l) + 1 // remember to consume the \n
	}
	panic(fmt.Sprintf("shouldn't get here. Input was '%s' atOffset: %d", input, atOffset))
}

// expectedText extracts from the supplied goparsify Error the expected text
// i.e. the error from an unmatched parser. This relies on the format of the
// error message generated by goparsify.
func expectedText(e *goparsify.Error) string {
	msg := e.Error()
	expectedIdx := strings.Index(msg, "expected")
	if expectedIdx == -1 {
		logrus.WithField("err", msg).
			Warn("Got goparsify error with missing 'expected' string")
		return msg
	}
	expected := msg[expectedIdx+len("expected")+1:]
	return expected
}
