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

package proof

import (
	"testing"

	"github.com/ebay/n3proof/kb"
	"github.com/ebay/n3proof/n3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iri(v string) *n3.IRI {
	return &n3.IRI{Value: v}
}

func formula(t *testing.T, b *n3.Builder) *n3.Formula {
	t.Helper()
	f, err := b.Build()
	require.NoError(t, err)
	return f
}

func knows(t *testing.T, subject, object string) *n3.Formula {
	return formula(t, n3.NewBuilder().Add(iri(subject), iri("knows"), iri(object)))
}

func Test_StepString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("Step using rule 'axiom' with 0 premise(s): Axiom added to the proof",
		Step{Rule: AxiomRule, Description: "Axiom added to the proof"}.String())
	assert.Equal("Step using rule 'sym' with 2 premise(s)",
		Step{Rule: "sym", Premises: []kb.Index{0, 1}}.String())
}

func Test_AddStep(t *testing.T) {
	assert := assert.New(t)
	p := New()
	assert.Equal(0, p.Len())

	idx, err := p.AddStep(Step{Conclusion: knows(t, "alice", "bob"), Rule: AxiomRule})
	require.NoError(t, err)
	assert.Equal(kb.Index(0), idx)

	idx, err = p.AddStep(Step{
		Conclusion: knows(t, "bob", "alice"),
		Rule:       "sym",
		Premises:   []kb.Index{0},
	})
	require.NoError(t, err)
	assert.Equal(kb.Index(1), idx)
	assert.Equal(2, p.Len())
	assert.Equal("sym", p.Steps()[1].Rule)
}

func Test_AddStep_premiseMustPrecede(t *testing.T) {
	assert := assert.New(t)
	p := New()
	_, err := p.AddStep(Step{Conclusion: knows(t, "alice", "bob"), Rule: AxiomRule})
	require.NoError(t, err)

	// A step can't depend on itself.
	_, err = p.AddStep(Step{
		Conclusion: knows(t, "bob", "alice"),
		Rule:       "sym",
		Premises:   []kb.Index{1},
	})
	require.Error(t, err)
	assert.IsType(&VerificationError{}, err)
	assert.EqualError(err, "proof: step 1 depends on premise 1, which does not precede it")
	assert.Equal(1, p.Len(), "failed AddStep shouldn't append")

	// Nor on a step that doesn't exist yet.
	_, err = p.AddStep(Step{
		Conclusion: knows(t, "bob", "alice"),
		Rule:       "sym",
		Premises:   []kb.Index{0, 5},
	})
	assert.EqualError(err, "proof: step 1 depends on premise 5, which does not precede it")
}

func Test_Validate(t *testing.T) {
	assert := assert.New(t)
	p := New()
	p.AddStep(Step{Conclusion: knows(t, "alice", "bob"), Rule: AxiomRule})
	p.AddStep(Step{Conclusion: knows(t, "bob", "alice"), Rule: "sym", Premises: []kb.Index{0}})
	assert.NoError(p.Validate())

	// Hand-assembled proofs can be broken in ways AddStep would refuse.
	bad := &Proof{steps: []Step{
		{Conclusion: knows(t, "alice", "bob"), Rule: AxiomRule},
		{Conclusion: knows(t, "bob", "alice"), Rule: "sym", Premises: []kb.Index{2}},
	}}
	err := bad.Validate()
	require.Error(t, err)
	assert.EqualError(err, "proof: step 1 depends on premise 2, which does not precede it")
}

func Test_Establishes(t *testing.T) {
	assert := assert.New(t)
	p := New()
	p.AddStep(Step{
		Conclusion: formula(t, n3.NewBuilder().
			ForAll("x").
			Add(&n3.Variable{Name: "x"}, iri("knows"), iri("bob"))),
		Rule: AxiomRule,
	})

	// Alpha-equivalence, not literal equality, decides.
	assert.True(p.Establishes(formula(t, n3.NewBuilder().
		ForAll("y").
		Add(&n3.Variable{Name: "y"}, iri("knows"), iri("bob")))))
	assert.False(p.Establishes(knows(t, "alice", "bob")))
}

func Test_Goal(t *testing.T) {
	assert := assert.New(t)
	p := New()
	assert.Nil(p.Goal())
	goal := knows(t, "bob", "alice")
	p.SetGoal(goal)
	assert.Equal(goal, p.Goal())
	p.SetGoal(nil)
	assert.Nil(p.Goal())
}
