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

package clocks

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ExampleMock() {
	source := NewMock()
	fmt.Printf("start: %v\n", source.Now().UnixNano())
	source.Advance(time.Second)
	fmt.Printf("then: %v\n", source.Now().UnixNano())
	// Output:
	// start: 0
	// then: 1000000000
}

func TestMock_advance(t *testing.T) {
	assert := assert.New(t)
	source := NewMock()
	assert.Equal(time.Unix(0, 0), source.Now())
	source.Advance(time.Minute)
	assert.Equal(time.Unix(60, 0), source.Now())
	source.Advance(time.Nanosecond)
	assert.Equal(time.Unix(60, 1), source.Now())
}
