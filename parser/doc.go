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

// Package parser implements a parser combinator for the N3 fragment the n3
// package can represent: prefix declarations, quantifier headers, triples,
// nested formulas, and implication rules. Parsing produces n3 values and a
// Document that the reasoning engine consumes directly; write.go provides
// the matching serializer, so formulas round-trip through text.
//
// https://en.wikipedia.org/wiki/Parser_combinator
//
package parser
