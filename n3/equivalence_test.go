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
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Equivalent_ground(t *testing.T) {
	assert := assert.New(t)
	a := mustBuild(t, NewBuilder().
		Add(&IRI{Value: "alice"}, &IRI{Value: "knows"}, &IRI{Value: "bob"}))
	b := mustBuild(t, NewBuilder().
		Add(&IRI{Value: "alice"}, &IRI{Value: "knows"}, &IRI{Value: "bob"}))
	c := mustBuild(t, NewBuilder().
		Add(&IRI{Value: "bob"}, &IRI{Value: "knows"}, &IRI{Value: "alice"}))
	assert.True(a.Equivalent(b))
	assert.False(a.Equivalent(c))
}

func Test_Equivalent_renaming(t *testing.T) {
	assert := assert.New(t)
	a := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "knows"}, &Variable{Name: "y"}).
		ForAll("x", "y"))
	b := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "who"}, &IRI{Value: "knows"}, &Variable{Name: "whom"}).
		ForAll("who", "whom"))
	assert.True(a.Equivalent(b))
	assert.Equal(a.CanonicalKey(), b.CanonicalKey())
}

func Test_Equivalent_renamingMustBeBijective(t *testing.T) {
	assert := assert.New(t)
	// ?x p ?y  is not the same shape as  ?x p ?x.
	two := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &Variable{Name: "y"}).
		ForAll("x", "y"))
	one := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &Variable{Name: "x"}).
		ForAll("x"))
	assert.False(two.Equivalent(one))
}

func Test_Equivalent_classPreserving(t *testing.T) {
	assert := assert.New(t)
	forAll := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &IRI{Value: "o"}).
		ForAll("x"))
	forSome := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &IRI{Value: "o"}).
		ForSome("x"))
	assert.False(forAll.Equivalent(forSome))
}

func Test_Equivalent_statementOrder(t *testing.T) {
	assert := assert.New(t)
	a := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &Variable{Name: "y"}).
		Add(&Variable{Name: "y"}, &IRI{Value: "q"}, &Variable{Name: "x"}).
		ForAll("x", "y"))
	// Same statements in the opposite order, with the variables renamed in
	// the opposite roles.
	b := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "n"}, &IRI{Value: "q"}, &Variable{Name: "m"}).
		Add(&Variable{Name: "m"}, &IRI{Value: "p"}, &Variable{Name: "n"}).
		ForAll("m", "n"))
	assert.True(a.Equivalent(b))
}

func Test_Equivalent_unusedQuantifiersIgnored(t *testing.T) {
	assert := assert.New(t)
	plain := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &IRI{Value: "o"}).
		ForAll("x"))
	extra := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &IRI{Value: "o"}).
		ForAll("x", "ghost"))
	assert.True(plain.Equivalent(extra))
}

func Test_Equivalent_blankNodesNotRenamed(t *testing.T) {
	assert := assert.New(t)
	a := mustBuild(t, NewBuilder().
		Add(&BlankNode{ID: "b1"}, &IRI{Value: "p"}, &IRI{Value: "o"}))
	b := mustBuild(t, NewBuilder().
		Add(&BlankNode{ID: "b2"}, &IRI{Value: "p"}, &IRI{Value: "o"}))
	assert.False(a.Equivalent(b), "blank nodes compare by identifier")
}

func Test_Equivalent_nestedFormulas(t *testing.T) {
	assert := assert.New(t)
	inner := func(varName string) *Formula {
		return mustBuild(t, NewBuilder().
			Add(&Variable{Name: varName}, &IRI{Value: "knows"}, &IRI{Value: "bob"}).
			ForAll(varName))
	}
	a := mustBuild(t, NewBuilder().
		Add(&IRI{Value: "g"}, &IRI{Value: "says"}, &FormulaTerm{Formula: inner("x")}))
	b := mustBuild(t, NewBuilder().
		Add(&IRI{Value: "g"}, &IRI{Value: "says"}, &FormulaTerm{Formula: inner("y")}))
	assert.True(a.Equivalent(b), "nested formulas compare by alpha-equivalence")

	differentInner := mustBuild(t, NewBuilder().
		Add(&IRI{Value: "eve"}, &IRI{Value: "knows"}, &IRI{Value: "bob"}))
	c := mustBuild(t, NewBuilder().
		Add(&IRI{Value: "g"}, &IRI{Value: "says"}, &FormulaTerm{Formula: differentInner}))
	assert.False(a.Equivalent(c))
}

func Test_CanonicalKey_dedup(t *testing.T) {
	assert := assert.New(t)
	seen := make(map[string]struct{})
	add := func(f *Formula) bool {
		key := f.CanonicalKey()
		if _, ok := seen[key]; ok {
			return false
		}
		seen[key] = struct{}{}
		return true
	}
	a := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "x"}, &IRI{Value: "p"}, &IRI{Value: "o"}).
		ForAll("x"))
	b := mustBuild(t, NewBuilder().
		Add(&Variable{Name: "other"}, &IRI{Value: "p"}, &IRI{Value: "o"}).
		ForAll("other"))
	assert.True(add(a))
	assert.False(add(b), "alpha-equivalent formula should hit the dedup map")
}
