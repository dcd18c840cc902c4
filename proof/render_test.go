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
	"strings"
	"testing"

	"github.com/ebay/n3proof/kb"
	"github.com/ebay/n3proof/n3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func symmetryProof(t *testing.T) *Proof {
	t.Helper()
	p := New()
	_, err := p.AddStep(Step{
		Conclusion:  knows(t, "alice", "bob"),
		Rule:        AxiomRule,
		Description: "Axiom added to the proof",
	})
	require.NoError(t, err)
	_, err = p.AddStep(Step{
		Conclusion:  knows(t, "bob", "alice"),
		Rule:        "sym",
		Premises:    []kb.Index{0},
		Description: "Applied rule 'sym'",
	})
	require.NoError(t, err)
	return p
}

func Test_WriteText(t *testing.T) {
	assert := assert.New(t)
	p := symmetryProof(t)
	var buf strings.Builder
	require.NoError(t, p.WriteText(&buf))
	assert.Equal(`0. Step using rule 'axiom' with 0 premise(s): Axiom added to the proof
1. Step using rule 'sym' with 1 premise(s): Applied rule 'sym'
`, buf.String())

	p.SetGoal(knows(t, "bob", "alice"))
	buf.Reset()
	require.NoError(t, p.WriteText(&buf))
	assert.True(strings.HasSuffix(buf.String(), "Goal { <bob> <knows> <alice> . }: proven\n"))

	p.SetGoal(knows(t, "eve", "alice"))
	buf.Reset()
	require.NoError(t, p.WriteText(&buf))
	assert.True(strings.HasSuffix(buf.String(), "Goal { <eve> <knows> <alice> . }: not proven\n"))
}

func Test_Graphviz(t *testing.T) {
	assert := assert.New(t)
	p := symmetryProof(t)
	var buf strings.Builder
	p.Graphviz(&buf)
	str := buf.String()
	assert.Contains(str, "digraph proof {")
	assert.Contains(str, `s0 [label="0: axiom\n{ <alice> <knows> <bob> . }"];`)
	assert.Contains(str, "s0 -> s1;")
	// Not sure how much we can test here without having a dot parser.
}

func Test_Graphviz_escapesLabels(t *testing.T) {
	p := New()
	_, err := p.AddStep(Step{
		Conclusion: formula(t, n3.NewBuilder().
			Add(iri("alice"), iri("says"), &n3.Literal{Value: `hi "there"`})),
		Rule: AxiomRule,
	})
	require.NoError(t, err)
	var buf strings.Builder
	p.Graphviz(&buf)
	assert.Contains(t, buf.String(), `\"hi \\\"there\\\"\"`)
}
