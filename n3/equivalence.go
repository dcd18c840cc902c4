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
	"sort"
	"strconv"
	"strings"
)

// Equivalent returns true if other differs from f by at most a consistent,
// class-preserving renaming of quantified variables and a reordering of
// statements. This is the equality notion used for goal entailment and for
// unifying nested formulas.
//
// The decision compares canonical forms. Statements whose variable-blind
// renderings are identical keep their relative order during
// canonicalization, so formulas that differ only by permuting such
// statements AND renaming variables asymmetrically can compare unequal.
// The reasoner derives conclusions with a fixed statement order, so this
// does not come up for engine-produced formulas.
func (f *Formula) Equivalent(other *Formula) bool {
	return f.canonical == other.canonical
}

// CanonicalKey returns the canonical form Equivalent compares. Two
// formulas have the same CanonicalKey iff they are Equivalent, which makes
// it usable as a deduplication map key.
func (f *Formula) CanonicalKey() string {
	return f.canonical
}

// canonicalize renders the formula with its quantified variables renamed
// in order of first occurrence:
//
//  1. Sort statements by a variable-blind rendering (variables reduce to
//     their quantifier class), keeping the original order for ties.
//  2. Walk the sorted statements, assigning v0, v1, ... to each distinct
//     variable name as it is first seen.
//  3. Render the sorted statements with the assigned names, followed by
//     the quantifier sets mapped through the same assignment.
//
// Declared-but-unused variables get no assignment and are omitted: a
// quantifier over a variable that never occurs doesn't change meaning.
func canonicalize(f *Formula) string {
	ordered := make([]int, len(f.statements))
	blind := make([]string, len(f.statements))
	for i, stmt := range f.statements {
		ordered[i] = i
		var b strings.Builder
		appendBlindTerm(&b, stmt.Subject, f)
		appendBlindTerm(&b, stmt.Predicate, f)
		appendBlindTerm(&b, stmt.Object, f)
		blind[i] = b.String()
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return blind[ordered[i]] < blind[ordered[j]]
	})

	assigned := make(map[string]string)
	assign := func(term Term) {
		if v, ok := term.(*Variable); ok {
			if _, done := assigned[v.Name]; !done {
				assigned[v.Name] = "v" + strconv.Itoa(len(assigned))
			}
		}
	}
	for _, idx := range ordered {
		stmt := f.statements[idx]
		assign(stmt.Subject)
		assign(stmt.Predicate)
		assign(stmt.Object)
	}

	var out strings.Builder
	for _, idx := range ordered {
		stmt := f.statements[idx]
		appendCanonicalTerm(&out, stmt.Subject, assigned)
		appendCanonicalTerm(&out, stmt.Predicate, assigned)
		appendCanonicalTerm(&out, stmt.Object, assigned)
	}
	out.WriteString("A[")
	out.WriteString(strings.Join(mappedNames(f.universals, assigned), ","))
	out.WriteString("]E[")
	out.WriteString(strings.Join(mappedNames(f.existentials, assigned), ","))
	out.WriteString("]")
	return out.String()
}

// appendBlindTerm renders term with variables reduced to their quantifier
// class. Nested formulas render by their own canonical form, so that
// equivalent inner formulas blind to the same bytes.
func appendBlindTerm(b *strings.Builder, term Term, f *Formula) {
	switch t := term.(type) {
	case *Variable:
		if f.IsExistential(t.Name) {
			b.WriteString("?E")
		} else {
			b.WriteString("?U")
		}
	case *FormulaTerm:
		b.WriteString("F{")
		b.WriteString(t.Formula.canonical)
		b.WriteString("}")
	default:
		term.Key(b)
	}
}

func appendCanonicalTerm(b *strings.Builder, term Term, assigned map[string]string) {
	switch t := term.(type) {
	case *Variable:
		b.WriteByte('V')
		keyString(b, assigned[t.Name])
	case *FormulaTerm:
		b.WriteString("F{")
		b.WriteString(t.Formula.canonical)
		b.WriteString("}")
	default:
		term.Key(b)
	}
}

// mappedNames returns the sorted canonical names for the declared set,
// dropping names that never occur in a statement.
func mappedNames(declared map[string]struct{}, assigned map[string]string) []string {
	names := make([]string, 0, len(declared))
	for name := range declared {
		if canon, ok := assigned[name]; ok {
			names = append(names, canon)
		}
	}
	sort.Strings(names)
	return names
}
