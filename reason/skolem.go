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

package reason

import "fmt"

// A skolemNamer mints the blank node labels that stand in for existential
// conclusion variables. Each engine owns one so labels never repeat within
// a knowledge base.
type skolemNamer struct {
	count int
}

// next returns a label no earlier call has returned ("sk0", "sk1", ...).
func (s *skolemNamer) next() string {
	label := fmt.Sprintf("sk%d", s.count)
	s.count++
	return label
}
