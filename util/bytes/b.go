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

// Package bytes aids in building byte keys and copying byte slices.
package bytes

// StringWriter is the set of write functions that key encoders target.
// bytes.Buffer and strings.Builder both implement it, so the same encoder
// can fill an index key or a map key string.
//
// Although these methods expose the standard Go writer semantics of
// returning errors, key encoders do not check them: both implementations
// above only fail by panicking on out of memory.
type StringWriter interface {
	Write([]byte) (int, error)
	WriteByte(byte) error
	WriteRune(r rune) (int, error)
	WriteString(s string) (int, error)
}

// Copy returns a new byte slice with a copy of 'src's contents, so the
// caller can modify the result without aliasing src. A nil src stays nil.
func Copy(src []byte) []byte {
	if src == nil {
		return nil
	}
	r := make([]byte, len(src))
	copy(r, src)
	return r
}
