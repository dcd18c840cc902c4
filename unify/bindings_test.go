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

package unify

import (
	"testing"

	"github.com/ebay/n3proof/n3"
	"github.com/stretchr/testify/assert"
)

func Test_Bindings(t *testing.T) {
	assert := assert.New(t)
	b := NewBindings()
	assert.Equal(0, b.Len())
	_, exists := b.Get("x")
	assert.False(exists)

	b.bind("x", &n3.IRI{Value: "alice"})
	b.bind("y", &n3.IRI{Value: "bob"})
	assert.Equal(2, b.Len())
	term, exists := b.Get("x")
	assert.True(exists)
	assert.Equal("<alice>", term.String())
	assert.Equal([]string{"x", "y"}, b.Names())
}

func Test_Bindings_undo(t *testing.T) {
	assert := assert.New(t)
	b := NewBindings()
	b.bind("x", &n3.IRI{Value: "alice"})
	mark := b.mark()
	b.bind("y", &n3.IRI{Value: "bob"})
	b.bind("z", &n3.IRI{Value: "eve"})
	assert.Equal(3, b.Len())

	b.undo(mark)
	assert.Equal(1, b.Len())
	_, exists := b.Get("y")
	assert.False(exists)
	_, exists = b.Get("z")
	assert.False(exists)
	_, exists = b.Get("x")
	assert.True(exists)

	b.undo(0)
	assert.Equal(0, b.Len())
}

func Test_Bindings_String(t *testing.T) {
	b := NewBindings()
	assert.Equal(t, "{}", b.String())
	b.bind("y", &n3.Variable{Name: "w"})
	b.bind("x", &n3.IRI{Value: "alice"})
	assert.Equal(t, "{?x=<alice> ?y=?w}", b.String())
}
