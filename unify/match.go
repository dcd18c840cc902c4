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

// Package unify matches a premise formula against a candidate formula,
// producing a substitution for the premise's variables. Only premise
// variables bind; the candidate formula is treated as data. Each premise
// statement must map to a distinct candidate statement, all under one
// consistent substitution, so matching is a backtracking search over the
// candidate's statements.
package unify

import (
	"context"
	"sort"
	"time"

	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/util/clocks"
)

// CandidateIndex answers posting lookups within a single candidate formula.
// Match uses it to narrow the candidate statements tried for premise
// statements whose predicate or subject is already ground. kb.CandidateView
// implements this.
type CandidateIndex interface {
	// PredicateOffsets returns the offsets of the candidate's statements
	// with this predicate, in statement order.
	PredicateOffsets(predicate n3.Term) []int
	// SubjectOffsets returns the offsets of the candidate's statements
	// with this subject, in statement order.
	SubjectOffsets(subject n3.Term) []int
}

// Options carries the optional knobs for a Match call. The zero value runs
// an unbounded, unpruned search.
type Options struct {
	// MaxSteps bounds how many candidate statement attempts the search may
	// make before giving up with BudgetExceeded. 0 means no limit.
	MaxSteps int
	// Deadline aborts the search with BudgetExceeded once the clock reaches
	// it. The zero time means no deadline.
	Deadline time.Time
	// Clock is the time source consulted for Deadline. Defaults to
	// clocks.Wall.
	Clock clocks.Source
	// Index, if set, prunes the candidate statements tried for premise
	// statements with a ground predicate or subject.
	Index CandidateIndex
}

// Match searches for an assignment of every statement of 'premise' onto a
// distinct statement of 'candidate' under one substitution. 'bindings' seeds
// the substitution and may be nil; passing the bindings from an earlier
// premise's match keeps a multi-premise rule consistent across formulas. On
// a Matched outcome the (possibly extended) substitution is returned in
// Outcome.Bindings; on any other outcome the seed bindings are restored to
// their state at entry.
//
// The search is deterministic: premise statements are tried
// most-constrained-first (fewest distinct unbound variables, ties in
// statement order), and candidate statements are tried in stored order. The
// first complete assignment wins. Cancelling ctx aborts the search the same
// way an exceeded budget does.
func Match(ctx context.Context, premise, candidate *n3.Formula, bindings *Bindings, opts Options) Outcome {
	if bindings == nil {
		bindings = NewBindings()
	}
	premStmts := premise.Statements()
	candStmts := candidate.Statements()
	if len(premStmts) == 0 {
		return Outcome{Kind: Matched, Bindings: bindings}
	}
	// Each premise statement needs its own candidate statement, so a
	// premise larger than the candidate can never match.
	if len(premStmts) > len(candStmts) {
		return Outcome{Kind: NoMatch}
	}
	candLists, ok := pruneCandidates(premStmts, len(candStmts), bindings, opts.Index)
	if !ok {
		return Outcome{Kind: NoMatch}
	}
	order := searchOrder(premStmts, bindings)

	clock := opts.Clock
	if clock == nil {
		clock = clocks.Wall
	}
	search := searcher{
		ctx:       ctx,
		premise:   premStmts,
		candidate: candStmts,
		order:     order,
		candLists: candLists,
		bindings:  bindings,
		used:      make([]bool, len(candStmts)),
		maxSteps:  opts.MaxSteps,
		deadline:  opts.Deadline,
		clock:     clock,
		entryMark: bindings.mark(),
	}
	return search.run()
}

// pruneCandidates builds the candidate offset list for each premise
// statement. A nil list means every candidate statement is eligible. Returns
// false if some premise statement provably has no candidate at all, in which
// case the whole match is a NoMatch.
func pruneCandidates(premStmts []n3.Statement, candLen int, bindings *Bindings, index CandidateIndex) ([][]int, bool) {
	lists := make([][]int, len(premStmts))
	if index == nil {
		return lists, true
	}
	for i, stmt := range premStmts {
		if pred := resolve(stmt.Predicate, bindings); isGround(pred) {
			offsets := index.PredicateOffsets(pred)
			if len(offsets) == 0 {
				return nil, false
			}
			lists[i] = offsets
			continue
		}
		if subj := resolve(stmt.Subject, bindings); isGround(subj) {
			offsets := index.SubjectOffsets(subj)
			if len(offsets) == 0 {
				return nil, false
			}
			lists[i] = offsets
		}
	}
	return lists, true
}

// searchOrder returns premise statement indexes ordered
// most-constrained-first: fewest distinct unbound variables, ties broken by
// statement order.
func searchOrder(premStmts []n3.Statement, bindings *Bindings) []int {
	counts := make([]int, len(premStmts))
	order := make([]int, len(premStmts))
	for i, stmt := range premStmts {
		counts[i] = unboundVarCount(stmt, bindings)
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return counts[order[a]] < counts[order[b]]
	})
	return order
}

func unboundVarCount(stmt n3.Statement, bindings *Bindings) int {
	distinct := make(map[string]struct{}, 3)
	for _, term := range []n3.Term{stmt.Subject, stmt.Predicate, stmt.Object} {
		if v, isVar := term.(*n3.Variable); isVar {
			if _, bound := bindings.Get(v.Name); !bound {
				distinct[v.Name] = struct{}{}
			}
		}
	}
	return len(distinct)
}

// resolve follows a variable to its binding, if it has one.
func resolve(term n3.Term, bindings *Bindings) n3.Term {
	if v, isVar := term.(*n3.Variable); isVar {
		if bound, exists := bindings.Get(v.Name); exists {
			return bound
		}
	}
	return term
}

func isGround(term n3.Term) bool {
	_, isVar := term.(*n3.Variable)
	return !isVar
}

// A frame is one choice point in the backtracking search: which premise
// statement (by position in the search order) it is placing, where in its
// candidate list to resume, the binding trail position to unwind to, and
// which candidate offset it currently holds (-1 for none).
type frame struct {
	pos   int
	next  int
	mark  int
	taken int
}

type frameStack []frame

func (s *frameStack) push(f frame) {
	*s = append(*s, f)
}

func (s *frameStack) pop() frame {
	f := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return f
}

type searcher struct {
	ctx       context.Context
	premise   []n3.Statement
	candidate []n3.Statement
	order     []int
	candLists [][]int
	bindings  *Bindings
	used      []bool
	maxSteps  int
	deadline  time.Time
	clock     clocks.Source
	entryMark int
	steps     int
}

func (s *searcher) run() Outcome {
	frames := make(frameStack, 0, len(s.order))
	frames.push(frame{pos: 0, mark: s.bindings.mark(), taken: -1})
	for len(frames) > 0 {
		cur := frames.pop()
		// Drop whatever this frame held from its previous attempt.
		if cur.taken != -1 {
			s.used[cur.taken] = false
			cur.taken = -1
		}
		s.bindings.undo(cur.mark)

		stmt := s.premise[s.order[cur.pos]]
		candidates := s.candLists[s.order[cur.pos]]
		advanced := false
		for cur.next < s.candidateCount(candidates) {
			offset := s.candidateAt(candidates, cur.next)
			cur.next++
			if s.used[offset] {
				continue
			}
			if s.overBudget() {
				s.bindings.undo(s.entryMark)
				return Outcome{Kind: BudgetExceeded, Steps: s.steps}
			}
			s.steps++
			if unifyStatement(stmt, s.candidate[offset], s.bindings) {
				cur.taken = offset
				s.used[offset] = true
				advanced = true
				break
			}
			s.bindings.undo(cur.mark)
		}
		if !advanced {
			// Dead end. The next iteration pops the previous frame and
			// resumes it at its next candidate.
			continue
		}
		frames.push(cur)
		if len(frames) == len(s.order) {
			return Outcome{Kind: Matched, Bindings: s.bindings, Steps: s.steps}
		}
		frames.push(frame{pos: len(frames), mark: s.bindings.mark(), taken: -1})
	}
	s.bindings.undo(s.entryMark)
	return Outcome{Kind: NoMatch, Steps: s.steps}
}

func (s *searcher) candidateCount(candidates []int) int {
	if candidates == nil {
		return len(s.candidate)
	}
	return len(candidates)
}

func (s *searcher) candidateAt(candidates []int, i int) int {
	if candidates == nil {
		return i
	}
	return candidates[i]
}

func (s *searcher) overBudget() bool {
	if s.maxSteps > 0 && s.steps >= s.maxSteps {
		return true
	}
	if s.ctx.Err() != nil {
		return true
	}
	if !s.deadline.IsZero() && !s.clock.Now().Before(s.deadline) {
		return true
	}
	return false
}

// unifyStatement extends the substitution so that the premise statement
// equals the candidate statement, or returns false. On false the bindings
// may hold partial additions; the caller unwinds them via the trail.
func unifyStatement(premise, candidate n3.Statement, bindings *Bindings) bool {
	return unifyTerm(premise.Subject, candidate.Subject, bindings) &&
		unifyTerm(premise.Predicate, candidate.Predicate, bindings) &&
		unifyTerm(premise.Object, candidate.Object, bindings)
}

// unifyTerm unifies one premise term against one candidate term. A premise
// variable binds to any candidate term, a nested formula matches any
// alpha-equivalent nested formula, and everything else must be structurally
// equal. Candidate variables never bind, so a ground premise term does not
// unify with a candidate variable.
func unifyTerm(premise, candidate n3.Term, bindings *Bindings) bool {
	switch p := premise.(type) {
	case *n3.Variable:
		if bound, exists := bindings.Get(p.Name); exists {
			return bound.Equal(candidate)
		}
		bindings.bind(p.Name, candidate)
		return true
	case *n3.FormulaTerm:
		c, isFormula := candidate.(*n3.FormulaTerm)
		return isFormula && p.Formula.Equivalent(c.Formula)
	default:
		return premise.Equal(candidate)
	}
}
