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

package kb

import (
	"bytes"

	"github.com/ebay/n3proof/kb/keys"
	"github.com/ebay/n3proof/n3"
	"github.com/google/btree"
	log "github.com/sirupsen/logrus"
)

// indexItem is one posting in the statement index.
type indexItem struct {
	key []byte
}

func (item indexItem) Less(than btree.Item) bool {
	return bytes.Compare(item.key, than.(indexItem).key) < 0
}

// PredicateLocations returns the locations of every statement whose
// predicate is structurally equal to the given term, ordered by position
// and then statement offset.
func (s *Store) PredicateLocations(term n3.Term) []Location {
	return s.scan(keys.TermPrefix{Space: keys.Predicate, Term: term}.Bytes())
}

// SubjectLocations is PredicateLocations for the subject position.
func (s *Store) SubjectLocations(term n3.Term) []Location {
	return s.scan(keys.TermPrefix{Space: keys.Subject, Term: term}.Bytes())
}

// scan returns the locations of the postings under the given key prefix.
func (s *Store) scan(prefix []byte) []Location {
	s.lock.RLock()
	defer s.lock.RUnlock()
	var locs []Location
	emit := func(btreeItem btree.Item) bool {
		item := btreeItem.(indexItem)
		formula, offset, err := keys.ParseLocation(item.key)
		if err != nil {
			log.Debugf("kb: skipping unparseable index key: %v", err)
			return true
		}
		locs = append(locs, Location{Formula: Index(formula), Offset: int(offset)})
		return true
	}
	if end := keys.PrefixEnd(prefix); end != nil {
		s.locked.index.AscendRange(indexItem{key: prefix}, indexItem{key: end}, emit)
	} else {
		s.locked.index.AscendGreaterOrEqual(indexItem{key: prefix}, func(btreeItem btree.Item) bool {
			if !bytes.HasPrefix(btreeItem.(indexItem).key, prefix) {
				return false
			}
			return emit(btreeItem)
		})
	}
	return locs
}

// A CandidateView narrows index lookups to a single formula's statements.
// The unification search uses one to skip candidate statements that can't
// match a ground premise term.
type CandidateView struct {
	store *Store
	idx   Index
}

// Candidate returns an index view over the formula at idx.
func (s *Store) Candidate(idx Index) *CandidateView {
	return &CandidateView{store: s, idx: idx}
}

// PredicateOffsets returns the statement offsets within this formula whose
// predicate equals the given term, in statement order.
func (v *CandidateView) PredicateOffsets(predicate n3.Term) []int {
	return v.offsets(keys.Predicate, predicate)
}

// SubjectOffsets returns the statement offsets within this formula whose
// subject equals the given term, in statement order.
func (v *CandidateView) SubjectOffsets(subject n3.Term) []int {
	return v.offsets(keys.Subject, subject)
}

func (v *CandidateView) offsets(space keys.Space, term n3.Term) []int {
	prefix := keys.FormulaPrefix{Space: space, Term: term, Formula: uint64(v.idx)}.Bytes()
	locs := v.store.scan(prefix)
	offsets := make([]int, len(locs))
	for i, loc := range locs {
		offsets[i] = loc.Offset
	}
	return offsets
}
