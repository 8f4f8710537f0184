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
	"sync"

	"github.com/dolthub/manifest/store/hash"
)

type leafKey struct {
	content ContentId
	ftype   FileType
}

// parentCache indexes entries observed in parent manifests during one
// derivation: a first-seen map from (content, type) to a representative
// LeafEntry, and a first-seen map from subtree address to a
// representative TreeEntry. Lookups let the merge reuse parent values
// verbatim without re-fetching metadata or re-hashing subtrees.
//
// Only the direct entries of each visited directory level are indexed;
// deeper levels are indexed lazily as the merge descends into them. The
// cache is owned by a single derivation (or a linear stack of them) and
// is safe for the merge's sibling concurrency.
type parentCache struct {
	mu    sync.RWMutex
	files map[leafKey]LeafEntry
	dirs  map[hash.Hash]TreeEntry
}

func newParentCache() *parentCache {
	return &parentCache{
		files: map[leafKey]LeafEntry{},
		dirs:  map[hash.Hash]TreeEntry{},
	}
}

// indexLevel records the direct entries of one directory level from
// each parent. First-seen wins, so representatives come from the
// earliest parent that exhibited a value.
func (pc *parentCache) indexLevel(parents []Node) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	for _, p := range parents {
		for i := 0; i < p.Count(); i++ {
			e := p.GetEntry(i)
			if e.IsFile() {
				k := leafKey{content: e.Leaf.Content, ftype: e.Leaf.Type}
				if _, ok := pc.files[k]; !ok {
					pc.files[k] = *e.Leaf
				}
			} else {
				if _, ok := pc.dirs[e.Tree.Ref]; !ok {
					pc.dirs[e.Tree.Ref] = *e.Tree
				}
			}
		}
	}
}

func (pc *parentCache) lookupFile(content ContentId, ftype FileType) (LeafEntry, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	l, ok := pc.files[leafKey{content: content, ftype: ftype}]
	return l, ok
}

func (pc *parentCache) lookupDir(ref hash.Hash) (TreeEntry, bool) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	t, ok := pc.dirs[ref]
	return t, ok
}
