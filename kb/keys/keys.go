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

// Package keys builds and parses the binary key format that the knowledge
// base's statement index is ordered by. A posting key is
//
//	[space_1][term key][formula_8][offset_4]
//
// with the formula index and statement offset big-endian, so that keys
// sharing a term sort by knowledge base position. Term keys are
// self-delimiting (see n3.Term.Key), which keeps prefix scans exact: no
// term's key is a proper prefix of another's.
package keys

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/ebay/n3proof/n3"
	pbytes "github.com/ebay/n3proof/util/bytes"
)

// Space selects the section of the index a key lives in.
type Space byte

const (
	// Predicate is the space of postings keyed by predicate term.
	Predicate Space = 'p'
	// Subject is the space of postings keyed by subject term.
	Subject Space = 's'
)

// The tail of a posting key is the formula index and statement offset.
const locationSize = 8 + 4

// Spec is a common interface that all key types implement.
type Spec interface {
	isKeySpec()
	// Bytes returns the raw bytes version of this key.
	Bytes() []byte
}

// A Posting locates one statement: the formula holding it and the
// statement's offset within that formula, filed under the term found at
// the space's position.
type Posting struct {
	Space   Space
	Term    n3.Term
	Formula uint64
	Offset  uint32
}

func (p Posting) isKeySpec() {}

// Bytes returns the full posting key.
func (p Posting) Bytes() []byte {
	var b bytes.Buffer
	b.WriteByte(byte(p.Space))
	p.Term.Key(&b)
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], p.Formula)
	b.Write(tmp[:])
	binary.BigEndian.PutUint32(tmp[:4], p.Offset)
	b.Write(tmp[:4])
	return b.Bytes()
}

// TermPrefix is the common prefix of every posting for one term in one
// space.
type TermPrefix struct {
	Space Space
	Term  n3.Term
}

func (p TermPrefix) isKeySpec() {}

// Bytes returns the prefix key.
func (p TermPrefix) Bytes() []byte {
	var b bytes.Buffer
	b.WriteByte(byte(p.Space))
	p.Term.Key(&b)
	return b.Bytes()
}

// FormulaPrefix narrows a TermPrefix to the postings of a single formula.
type FormulaPrefix struct {
	Space   Space
	Term    n3.Term
	Formula uint64
}

func (p FormulaPrefix) isKeySpec() {}

// Bytes returns the prefix key.
func (p FormulaPrefix) Bytes() []byte {
	var b bytes.Buffer
	b.WriteByte(byte(p.Space))
	p.Term.Key(&b)
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], p.Formula)
	b.Write(tmp[:])
	return b.Bytes()
}

// ParseLocation extracts the formula index and statement offset from a
// posting key.
func ParseLocation(key []byte) (formula uint64, offset uint32, err error) {
	if len(key) < 1+locationSize {
		return 0, 0, fmt.Errorf("keys: posting key too short: %d bytes", len(key))
	}
	l := len(key)
	formula = binary.BigEndian.Uint64(key[l-locationSize : l-4])
	offset = binary.BigEndian.Uint32(key[l-4:])
	return formula, offset, nil
}

// PrefixEnd returns the smallest key greater than every key that starts
// with the given prefix, for use as the exclusive end of a range scan. It
// returns nil if no such key exists (the prefix is empty or all 0xff).
func PrefixEnd(prefix []byte) []byte {
	end := pbytes.Copy(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
