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

// Package kb implements the append-only knowledge base: formulas addressed
// by a stable position, plus a statement index over predicates and
// subjects that the reasoner uses to prune unification candidates.
package kb

import (
	"fmt"
	"sync"

	"github.com/ebay/n3proof/kb/keys"
	"github.com/ebay/n3proof/n3"
	"github.com/google/btree"
	log "github.com/sirupsen/logrus"
)

// Index is the stable position of a formula in a Store. Positions are
// assigned from 0 upwards and never reused; formulas are never removed or
// replaced. Axioms and derived formulas share the same position space.
type Index uint64

// A Location identifies one statement in the store: the formula holding it
// and the statement's offset within that formula.
type Location struct {
	Formula Index
	Offset  int
}

// A Store is the knowledge base. Appends take an exclusive lock, reads
// share one, so concurrent readers are fine alongside a single appender.
type Store struct {
	lock   sync.RWMutex
	locked struct {
		formulas []*n3.Formula
		// Holds indexItem values ordered by posting key; see package keys.
		index *btree.BTree
	}
}

// NewStore returns an empty knowledge base.
func NewStore() *Store {
	store := &Store{}
	store.locked.index = btree.New(16)
	return store
}

// Append stores the formula at the next position and returns that
// position. Append never fails and never deduplicates: appending the same
// formula twice yields two positions.
func (s *Store) Append(f *n3.Formula) Index {
	s.lock.Lock()
	defer s.lock.Unlock()
	idx := Index(len(s.locked.formulas))
	s.locked.formulas = append(s.locked.formulas, f)
	for off, stmt := range f.Statements() {
		s.locked.index.ReplaceOrInsert(indexItem{key: keys.Posting{
			Space:   keys.Predicate,
			Term:    stmt.Predicate,
			Formula: uint64(idx),
			Offset:  uint32(off),
		}.Bytes()})
		s.locked.index.ReplaceOrInsert(indexItem{key: keys.Posting{
			Space:   keys.Subject,
			Term:    stmt.Subject,
			Formula: uint64(idx),
			Offset:  uint32(off),
		}.Bytes()})
	}
	log.Debugf("kb: appended formula %v with %v statement(s)", idx, len(f.Statements()))
	return idx
}

// Get returns the formula at the given position, or an OutOfRangeError if
// no formula has been appended there yet.
func (s *Store) Get(idx Index) (*n3.Formula, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if idx >= Index(len(s.locked.formulas)) {
		return nil, &OutOfRangeError{Index: idx, Len: len(s.locked.formulas)}
	}
	return s.locked.formulas[idx], nil
}

// Len returns the number of formulas appended so far.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.locked.formulas)
}

// Snapshot returns the formulas in position order. The returned slice is a
// copy; the formulas themselves are shared and immutable.
func (s *Store) Snapshot() []*n3.Formula {
	s.lock.RLock()
	defer s.lock.RUnlock()
	formulas := make([]*n3.Formula, len(s.locked.formulas))
	copy(formulas, s.locked.formulas)
	return formulas
}

// An OutOfRangeError reports a formula position that hasn't been assigned.
type OutOfRangeError struct {
	Index Index
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("kb: index %v out of range (knowledge base holds %v formulas)",
		e.Index, e.Len)
}
