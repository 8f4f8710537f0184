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

package manifest

import (
	"sort"

	"github.com/dolthub/manifest/store/hash"
)

// Node is one directory of a manifest: an ordered set of named entries
// plus the directory's Summary. Nodes are immutable and addressed by
// the hash of their serialized form.
type Node struct {
	entries []NamedEntry
	sum     Summary
	addr    hash.Hash
	data    []byte
}

// Count returns the number of direct entries.
func (n Node) Count() int {
	return len(n.entries)
}

// GetEntry returns the i'th entry in sorted-by-name order.
func (n Node) GetEntry(i int) NamedEntry {
	return n.entries[i]
}

// Get finds the entry with the given name.
func (n Node) Get(name string) (NamedEntry, bool) {
	i := sort.Search(len(n.entries), func(i int) bool {
		return n.entries[i].Name >= name
	})
	if i < len(n.entries) && n.entries[i].Name == name {
		return n.entries[i], true
	}
	return NamedEntry{}, false
}

// Summary returns the directory's aggregate.
func (n Node) Summary() Summary {
	return n.sum
}

// HashOf returns the node's address.
func (n Node) HashOf() hash.Hash {
	return n.addr
}

// Bytes returns the node's canonical serialization. Callers must not
// mutate the returned slice.
func (n Node) Bytes() []byte {
	return n.data
}

// Size returns the length of the node's serialization.
func (n Node) Size() int {
	return len(n.data)
}

// IsEmpty returns true for a directory with no entries.
func (n Node) IsEmpty() bool {
	return len(n.entries) == 0
}
