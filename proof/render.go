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
	"fmt"
	"io"
	"strings"
)

// WriteText writes the proof as a listing with one line per step, numbered
// by knowledge-base index so premise references can be followed by eye.
// When a goal is set, a final line reports whether the steps establish it.
func (p *Proof) WriteText(w io.Writer) error {
	for i, step := range p.steps {
		if _, err := fmt.Fprintf(w, "%d. %v\n", i, step); err != nil {
			return err
		}
	}
	if p.goal != nil {
		status := "not proven"
		if p.Establishes(p.goal) {
			status = "proven"
		}
		if _, err := fmt.Fprintf(w, "Goal %v: %s\n", p.goal, status); err != nil {
			return err
		}
	}
	return nil
}

// Graphviz writes the proof's dependency graph as a dot digraph: one node
// per step, one edge from each premise to the step that used it. It's in
// the form needed by graphviz.Create.
func (p *Proof) Graphviz(w io.Writer) {
	fmt.Fprintln(w, "digraph proof {")
	fmt.Fprintln(w, "\tnode [shape=box];")
	for i, step := range p.steps {
		label := fmt.Sprintf("%d: %s\n%v", i, step.Rule, step.Conclusion)
		fmt.Fprintf(w, "\ts%d [label=\"%s\"];\n", i, escapeLabel(label))
		for _, premise := range step.Premises {
			fmt.Fprintf(w, "\ts%d -> s%d;\n", premise, i)
		}
	}
	fmt.Fprintln(w, "}")
}

// escapeLabel makes a string safe inside a double-quoted dot label.
func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}
