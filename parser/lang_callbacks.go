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
	"github.com/vektah/goparsify"
)

func rdfTypeKeyword(n *goparsify.Result) {
	n.Result = &synIRI{value: rdfType}
}

func statement(n *goparsify.Result) {
	n.Result = &synTriple{
		subject:   n.Child[0].Result.(synTerm),
		predicate: n.Child[1].Result.(synTerm),
		object:    n.Child[2].Result.(synTerm),
	}
}

func forAll(n *goparsify.Result) {
	n.Result = &synQuant{universal: true, names: quantifiedNames(n)}
}

func forSome(n *goparsify.Result) {
	n.Result = &synQuant{universal: false, names: quantifiedNames(n)}
}

// quantifiedNames collects the variable names of a quantifier declaration.
func quantifiedNames(n *goparsify.Result) []string {
	vars := n.Child[2].Child
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Result.(*synVariable).name
	}
	return names
}

func declarePrefix(n *goparsify.Result) {
	n.Result = &synPrefix{
		name: n.Child[2].Result.(string),
		iri:  n.Child[3].Result.(*synIRI).value,
	}
}

func braced(n *goparsify.Result) {
	n.Result = &synFormula{items: items(n.Child[2].Child)}
}

func goal(n *goparsify.Result) {
	n.Result = &synGoal{formula: n.Child[2].Result.(*synFormula)}
}

func formulaBody(n *goparsify.Result) {
	n.Result = &synFormula{items: items(n.Child)}
}

func documentBody(n *goparsify.Result) {
	n.Result = items(n.Child)
}

// items collects the results of a repeated line parser.
func items(children []goparsify.Result) []synItem {
	out := make([]synItem, len(children))
	for i, c := range children {
		out[i] = c.Result.(synItem)
	}
	return out
}
