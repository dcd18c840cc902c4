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

package main

import (
	"fmt"
	"io/ioutil"
	"sort"
	"strings"

	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/parser"
)

// parseFile parses an N3 document and lists what it declares. It's a
// quick way to check a file before wiring it into a run spec.
func parseFile(options *options) error {
	data, err := ioutil.ReadFile(options.N3File)
	if err != nil {
		return err
	}
	doc, err := parser.ParseDocument(string(data))
	if err != nil {
		return err
	}
	fmtr.Printf("%d prefixes, %d axioms, %d rules.\n", len(doc.Prefixes),
		len(doc.Axioms), len(doc.Rules))

	names := make([]string, 0, len(doc.Prefixes))
	for name := range doc.Prefixes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("@prefix %s: <%s> .\n", name, doc.Prefixes[name])
	}

	for i, axiom := range doc.Axioms {
		fmt.Printf("\naxiom %d:\n%s\n", i, indented(axiom))
	}
	for i, rule := range doc.Rules {
		for j, premise := range rule.Premises {
			fmt.Printf("\nrule%d premise %d:\n%s\n", i, j, indented(premise))
		}
		fmt.Printf("\nrule%d conclusion:\n%s\n", i, indented(rule.Conclusion))
	}
	if doc.Goal != nil {
		fmt.Printf("\ngoal:\n%s\n", indented(doc.Goal))
	}
	return nil
}

// indented returns the formula's text form with each line indented.
func indented(f *n3.Formula) string {
	text := strings.TrimRight(parser.FormulaString(f), "\n")
	if text == "" {
		return "    (empty formula)"
	}
	return "    " + strings.ReplaceAll(text, "\n", "\n    ")
}
