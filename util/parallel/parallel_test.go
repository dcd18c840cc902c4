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

package parallel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Go(t *testing.T) {
	assert := assert.New(t)
	x := 3
	assert.Equal(3, x)
	wait := Go(func() {
		x++
	})
	wait()
	assert.Equal(4, x)
	// Extra calls to wait are ok.
	wait()
	wait()
	assert.Equal(4, x)
}

func Test_GoCaptureError(t *testing.T) {
	e := errors.New("something went wrong")
	wait := GoCaptureError(func() error {
		return nil
	})
	assert.Nil(t, wait())
	assert.Nil(t, wait())
	ch := make(chan string)
	wait = GoCaptureError(func() error {
		ch <- "started"
		defer func() { ch <- "stopped" }()
		return e
	})
	// GoCaptureError should return before the started routine has finished
	assert.Equal(t, "started", <-ch)
	assert.Equal(t, "stopped", <-ch)
	// Extra calls to wait are ok.
	assert.Equal(t, e, wait())
	assert.Equal(t, e, wait())
}
