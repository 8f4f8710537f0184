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

package hash

// HashSlice is a sortable slice of Hashes.
type HashSlice []Hash

func (hs HashSlice) Len() int { return len(hs) }

func (hs HashSlice) Less(i, j int) bool { return hs[i].Less(hs[j]) }

func (hs HashSlice) Swap(i, j int) { hs[i], hs[j] = hs[j], hs[i] }

// HashSet is a set of Hashes.
type HashSet map[Hash]struct{}

// NewHashSet returns a HashSet initialized with hashes.
func NewHashSet(hashes ...Hash) HashSet {
	out := make(HashSet, len(hashes))
	for _, h := range hashes {
		out.Insert(h)
	}
	return out
}

// Insert adds a Hash to the set.
func (hs HashSet) Insert(h Hash) {
	hs[h] = struct{}{}
}

// Has returns true if the HashSet contains h.
func (hs HashSet) Has(h Hash) bool {
	_, has := hs[h]
	return has
}

// Remove removes h from the HashSet.
func (hs HashSet) Remove(h Hash) {
	delete(hs, h)
}

// Copy returns a copy of the set.
func (hs HashSet) Copy() HashSet {
	out := make(HashSet, len(hs))
	for h := range hs {
		out[h] = struct{}{}
	}
	return out
}

// ToSlice returns the members of the set in unspecified order.
func (hs HashSet) ToSlice() HashSlice {
	out := make(HashSlice, 0, len(hs))
	for h := range hs {
		out = append(out, h)
	}
	return out
}
