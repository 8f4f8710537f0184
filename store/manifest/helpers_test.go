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
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dolthub/manifest/store/chunks"
	"github.com/dolthub/manifest/store/hash"
)

func hashOf(s string) hash.Hash {
	return hash.Of([]byte(s))
}

// countingStore wraps a ChunkStore and counts Get and Put calls per
// address.
type countingStore struct {
	chunks.ChunkStore
	mu   sync.Mutex
	gets map[hash.Hash]int
	puts map[hash.Hash]int
}

func newCountingStore(cs chunks.ChunkStore) *countingStore {
	return &countingStore{
		ChunkStore: cs,
		gets:       map[hash.Hash]int{},
		puts:       map[hash.Hash]int{},
	}
}

func (cs *countingStore) Get(ctx context.Context, h hash.Hash) (chunks.Chunk, error) {
	cs.mu.Lock()
	cs.gets[h]++
	cs.mu.Unlock()
	return cs.ChunkStore.Get(ctx, h)
}

func (cs *countingStore) Put(ctx context.Context, c chunks.Chunk) error {
	cs.mu.Lock()
	cs.puts[c.Hash()]++
	cs.mu.Unlock()
	return cs.ChunkStore.Put(ctx, c)
}

func (cs *countingStore) getCount(h hash.Hash) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.gets[h]
}

func (cs *countingStore) putCount(h hash.Hash) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.puts[h]
}

// failingStore fails every Put with a fixed error.
type failingStore struct {
	chunks.ChunkStore
	err error
}

func (fs *failingStore) Put(ctx context.Context, c chunks.Chunk) error {
	return fs.err
}

// testEnv bundles a deriver over a counting memory store with its
// metadata store.
type testEnv struct {
	t    *testing.T
	cs   *countingStore
	meta *MemoryMetadataStore
	dr   *Deriver
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	cs := newCountingStore(chunks.NewMemoryStore())
	meta := NewMemoryMetadataStore()
	return &testEnv{
		t:    t,
		cs:   cs,
		meta: meta,
		dr:   NewDeriver(cs, meta, opts...),
	}
}

// freshDeriver makes a new Deriver over the same stores with an empty
// node cache, so reads hit the chunk store again.
func (te *testEnv) freshDeriver(opts ...Option) *Deriver {
	return NewDeriver(te.cs, te.meta, opts...)
}

// newPartialStore returns a memory store holding only the chunk at
// root, simulating a store that lost the rest of the manifest.
func newPartialStore(t *testing.T, te *testEnv, root hash.Hash) *chunks.MemoryStore {
	ctx := context.Background()
	c, err := te.cs.Get(ctx, root)
	require.NoError(t, err)
	require.False(t, c.IsEmpty())

	ms := chunks.NewMemoryStore()
	require.NoError(t, ms.Put(ctx, c))
	return ms
}

func (te *testEnv) addContent(data string) ContentId {
	return te.meta.AddContent([]byte(data))
}

// put returns a change setting path to a regular file with the given
// content, registering the content's metadata as a side effect.
func (te *testEnv) put(path, content string) PathChange {
	return te.putTyped(path, content, Regular)
}

func (te *testEnv) putTyped(path, content string, ft FileType) PathChange {
	id := te.addContent(content)
	return PathChange{Path: ParsePath(path), Change: &FileChange{Content: id, Type: ft}}
}

func del(path string) PathChange {
	return PathChange{Path: ParsePath(path)}
}

func (te *testEnv) derive(parents []hash.Hash, changes ...PathChange) hash.Hash {
	root, err := te.dr.DeriveManifest(context.Background(), parents, changes)
	require.NoError(te.t, err)
	return root
}

func (te *testEnv) readNode(ref hash.Hash) Node {
	nd, err := te.dr.NodeStore().Read(context.Background(), ref)
	require.NoError(te.t, err)
	return nd
}

// lookup walks path from root and returns the entry there, or ok false
// if any element is absent.
func (te *testEnv) lookup(root hash.Hash, path string) (Entry, bool) {
	nd := te.readNode(root)
	p := ParsePath(path)
	for i, elem := range p {
		e, ok := nd.Get(elem)
		if !ok {
			return Entry{}, false
		}
		if i == len(p)-1 {
			return e.Entry, true
		}
		if !e.IsTree() {
			return Entry{}, false
		}
		nd = te.readNode(e.Tree.Ref)
	}
	return Entry{}, false
}

func (te *testEnv) requireFile(root hash.Hash, path string, content ContentId, ft FileType) {
	te.t.Helper()
	e, ok := te.lookup(root, path)
	require.True(te.t, ok, "expected file at %q", path)
	require.True(te.t, e.IsFile(), "expected file at %q", path)
	require.Equal(te.t, content, e.Leaf.Content)
	require.Equal(te.t, ft, e.Leaf.Type)
}

func (te *testEnv) requireAbsent(root hash.Hash, path string) {
	te.t.Helper()
	_, ok := te.lookup(root, path)
	require.False(te.t, ok, "expected nothing at %q", path)
}
