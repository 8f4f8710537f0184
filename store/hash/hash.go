// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// This file incorporates work covered by the following copyright and
// permission notice:
//
// Copyright 2016 Attic Labs, Inc. All rights reserved.
// Licensed under the Apache License, version 2.0:
// http://www.apache.org/licenses/LICENSE-2.0

// Package hash implements the content address used across the storage
// layer: the first 20 bytes of the sha512 of a byte sequence, rendered
// as 32 characters of base32.
package hash

import (
	"bytes"
	"crypto/sha512"
	"fmt"
	"regexp"

	"github.com/dolthub/manifest/store/d"
)

const (
	// ByteLen is the number of bytes used to represent a Hash.
	ByteLen = 20

	// StringLen is the number of characters in the string representation
	// of a Hash.
	StringLen = 32 // 20 * 8 / 5
)

var pattern = regexp.MustCompile("^([0-9a-v]{" + fmt.Sprintf("%d", StringLen) + "})$")

// Hash is the content address of a sequence of bytes. The zero value is
// the hash of no data, and is reserved to mean "no hash".
type Hash [ByteLen]byte

// IsEmpty determines whether the Hash has no value.
func (h Hash) IsEmpty() bool {
	return h == Hash{}
}

// String returns the base32-encoded version of h.
func (h Hash) String() string {
	return encode(h[:])
}

// Of computes the address of data.
func Of(data []byte) Hash {
	r := sha512.Sum512(data)
	h := Hash{}
	copy(h[:], r[:ByteLen])
	return h
}

// New creates a new Hash backed by data. data must be ByteLen long.
func New(data []byte) Hash {
	d.PanicIfFalse(len(data) == ByteLen)
	h := Hash{}
	copy(h[:], data)
	return h
}

// MaybeParse parses a string representing a hash as a base32-encoded
// byte array. If the string can be parsed, then ok is true.
func MaybeParse(s string) (Hash, bool) {
	match := pattern.FindStringSubmatch(s)
	if match == nil {
		return Hash{}, false
	}
	return New(decode(s)), true
}

// Parse parses a string representing a hash as a base32-encoded byte
// array. If the string cannot be parsed, Parse panics.
func Parse(s string) Hash {
	r, ok := MaybeParse(s)
	if !ok {
		d.PanicIfError(fmt.Errorf("could not parse hash: %s", s))
	}
	return r
}

// Less compares two hashes by their byte order.
func (h Hash) Less(other Hash) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

// Compare returns -1, 0 or 1 depending on the byte order of h relative
// to other.
func (h Hash) Compare(other Hash) int {
	return bytes.Compare(h[:], other[:])
}
