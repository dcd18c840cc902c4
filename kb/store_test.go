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
	"fmt"
	"testing"

	"github.com/ebay/n3proof/n3"
	"github.com/ebay/n3proof/util/parallel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFormula(t *testing.T, b *n3.Builder) *n3.Formula {
	t.Helper()
	f, err := b.Build()
	require.NoError(t, err)
	return f
}

func iri(v string) *n3.IRI {
	return &n3.IRI{Value: v}
}

func Test_AppendGet(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	assert.Equal(0, store.Len())

	a := mustFormula(t, n3.NewBuilder().Add(iri("alice"), iri("knows"), iri("bob")))
	b := mustFormula(t, n3.NewBuilder().Add(iri("bob"), iri("knows"), iri("eve")))
	assert.Equal(Index(0), store.Append(a))
	assert.Equal(Index(1), store.Append(b))
	assert.Equal(2, store.Len())

	got, err := store.Get(0)
	require.NoError(t, err)
	assert.True(a.Equal(got))
	got, err = store.Get(1)
	require.NoError(t, err)
	assert.True(b.Equal(got))
}

func Test_Get_outOfRange(t *testing.T) {
	store := NewStore()
	_, err := store.Get(0)
	require.Error(t, err)
	assert.IsType(t, &OutOfRangeError{}, err)
	assert.EqualError(t, err, "kb: index 0 out of range (knowledge base holds 0 formulas)")
}

func Test_Append_neverDeduplicates(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	f := mustFormula(t, n3.NewBuilder().Add(iri("alice"), iri("knows"), iri("bob")))
	assert.Equal(Index(0), store.Append(f))
	assert.Equal(Index(1), store.Append(f))
	assert.Equal(2, store.Len())
}

func Test_Snapshot(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	f := mustFormula(t, n3.NewBuilder().Add(iri("alice"), iri("knows"), iri("bob")))
	store.Append(f)
	snap := store.Snapshot()
	store.Append(f)
	assert.Len(snap, 1, "snapshot shouldn't see later appends")
	assert.Len(store.Snapshot(), 2)
}

func Test_PredicateLocations(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	store.Append(mustFormula(t, n3.NewBuilder().
		Add(iri("alice"), iri("knows"), iri("bob")).
		Add(iri("alice"), iri("type"), iri("Person"))))
	store.Append(mustFormula(t, n3.NewBuilder().
		Add(iri("bob"), iri("knows"), iri("eve"))))

	locs := store.PredicateLocations(iri("knows"))
	assert.Equal([]Location{
		{Formula: 0, Offset: 0},
		{Formula: 1, Offset: 0},
	}, locs)
	assert.Equal([]Location{{Formula: 0, Offset: 1}},
		store.PredicateLocations(iri("type")))
	assert.Empty(store.PredicateLocations(iri("nothing")))
}

func Test_SubjectLocations(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	store.Append(mustFormula(t, n3.NewBuilder().
		Add(iri("alice"), iri("knows"), iri("bob")).
		Add(iri("bob"), iri("knows"), iri("eve"))))
	assert.Equal([]Location{{Formula: 0, Offset: 1}},
		store.SubjectLocations(iri("bob")))
}

func Test_Locations_storedOrder(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	// Interleave predicates across many formulas; locations must come back
	// ordered by formula then offset.
	for i := 0; i < 300; i++ {
		store.Append(mustFormula(t, n3.NewBuilder().
			Add(iri(fmt.Sprintf("s%d", i)), iri("p"), iri("o"))))
	}
	locs := store.PredicateLocations(iri("p"))
	require.Len(t, locs, 300)
	for i, loc := range locs {
		assert.Equal(Index(i), loc.Formula)
		assert.Equal(0, loc.Offset)
	}
}

func Test_CandidateView(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	store.Append(mustFormula(t, n3.NewBuilder().
		Add(iri("alice"), iri("knows"), iri("bob")).
		Add(iri("alice"), iri("type"), iri("Person")).
		Add(iri("eve"), iri("knows"), iri("alice"))))
	store.Append(mustFormula(t, n3.NewBuilder().
		Add(iri("x"), iri("knows"), iri("y"))))

	view := store.Candidate(0)
	assert.Equal([]int{0, 2}, view.PredicateOffsets(iri("knows")))
	assert.Equal([]int{1}, view.PredicateOffsets(iri("type")))
	assert.Empty(view.PredicateOffsets(iri("absent")))
	assert.Equal([]int{0, 1}, view.SubjectOffsets(iri("alice")))
}

func Test_ConcurrentReaders(t *testing.T) {
	assert := assert.New(t)
	store := NewStore()
	f := mustFormula(t, n3.NewBuilder().Add(iri("alice"), iri("knows"), iri("bob")))
	store.Append(f)

	wait := make([]func() error, 4)
	for i := range wait {
		wait[i] = parallel.GoCaptureError(func() error {
			for j := 0; j < 100; j++ {
				if _, err := store.Get(0); err != nil {
					return err
				}
				if locs := store.PredicateLocations(iri("knows")); len(locs) == 0 {
					return fmt.Errorf("missing postings")
				}
			}
			return nil
		})
	}
	done := parallel.Go(func() {
		for j := 0; j < 50; j++ {
			store.Append(f)
		}
	})
	for _, w := range wait {
		assert.NoError(w())
	}
	done()
	assert.Equal(51, store.Len())
}
