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
	"context"

	"github.com/pkg/errors"

	"github.com/dolthub/manifest/store/chunks"
	"github.com/dolthub/manifest/store/hash"
)

const defaultCacheSize = 64 * 1024 * 1024

// NodeStore reads and writes manifest nodes.
type NodeStore interface {
	// Read reads the node addressed by ref. Returns ErrNodeNotFound if
	// the store has no chunk at ref.
	Read(ctx context.Context, ref hash.Hash) (Node, error)

	// Write persists nd synchronously and returns its address.
	Write(ctx context.Context, nd Node) (hash.Hash, error)

	// PurgeCaches drops any decoded nodes cached by this store.
	PurgeCaches()
}

type nodeStore struct {
	store chunks.ChunkStore
	cache nodeCache
}

var _ NodeStore = nodeStore{}

// NewNodeStore makes a NodeStore over cs with a per-store decoded-node
// cache.
func NewNodeStore(cs chunks.ChunkStore) NodeStore {
	return nodeStore{
		store: cs,
		cache: newNodeCache(defaultCacheSize),
	}
}

// Read implements NodeStore.
func (ns nodeStore) Read(ctx context.Context, ref hash.Hash) (Node, error) {
	if n, ok := ns.cache.get(ref); ok {
		return n, nil
	}

	c, err := ns.store.Get(ctx, ref)
	if err != nil {
		return Node{}, errors.Wrapf(err, "reading manifest node %s", ref)
	}
	if c.IsEmpty() {
		return Node{}, errors.Wrapf(ErrNodeNotFound, "%s", ref)
	}

	n, err := NodeFromBytes(c.Data())
	if err != nil {
		return Node{}, errors.Wrapf(err, "decoding manifest node %s", ref)
	}
	ns.cache.insert(ref, n)
	return n, nil
}

// Write implements NodeStore.
func (ns nodeStore) Write(ctx context.Context, nd Node) (hash.Hash, error) {
	c := chunks.NewChunkWithHash(nd.HashOf(), nd.Bytes())
	if err := ns.store.Put(ctx, c); err != nil {
		return hash.Hash{}, errors.Wrapf(err, "writing manifest node %s", nd.HashOf())
	}
	ns.cache.insert(nd.HashOf(), nd)
	return nd.HashOf(), nil
}

// PurgeCaches implements NodeStore.
func (ns nodeStore) PurgeCaches() {
	ns.cache.purge()
}

// cacheNode makes a freshly built node readable without a store round
// trip while its write is still in flight.
func (ns nodeStore) cacheNode(nd Node) {
	ns.cache.insert(nd.HashOf(), nd)
}
