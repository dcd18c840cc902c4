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

package cmp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Int(t *testing.T) {
	ints := []int{-1, 0, 1, 1234, math.MaxInt32 - 1, math.MaxInt32}
	testintValues(t, ints)
}

// values must be in ascending order, the test helper checks every pairing.

func testintValues(t *testing.T, values []int) {
	for i, a := range values {
		for _, b := range values[i:] {
			assert.Equal(t, a, MinInt(a, b))
			assert.Equal(t, a, MinInt(b, a))
			assert.Equal(t, b, MaxInt(a, b))
			assert.Equal(t, b, MaxInt(b, a))
		}
	}
}
