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

package chunks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/dustin/go-humanize"

	"github.com/dolthub/manifest/store/hash"
)

// MemoryStore is an in-memory ChunkStore. It is the default backing
// store for tests and for derivations whose output is inspected rather
// than persisted.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[hash.Hash]Chunk
}

var _ ChunkStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[hash.Hash]Chunk{}}
}

// Get implements ChunkStore.
func (ms *MemoryStore) Get(ctx context.Context, h hash.Hash) (Chunk, error) {
	if err := ctx.Err(); err != nil {
		return EmptyChunk, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if c, ok := ms.data[h]; ok {
		return c, nil
	}
	return EmptyChunk, nil
}

// GetMany implements ChunkStore.
func (ms *MemoryStore) GetMany(ctx context.Context, hashes hash.HashSet, found func(*Chunk)) error {
	for h := range hashes {
		c, err := ms.Get(ctx, h)
		if err != nil {
			return err
		}
		if !c.IsEmpty() {
			found(&c)
		}
	}
	return nil
}

// Has implements ChunkStore.
func (ms *MemoryStore) Has(ctx context.Context, h hash.Hash) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()
	_, ok := ms.data[h]
	return ok, nil
}

// HasMany implements ChunkStore.
func (ms *MemoryStore) HasMany(ctx context.Context, hashes hash.HashSet) (hash.HashSet, error) {
	absent := hash.HashSet{}
	for h := range hashes {
		ok, err := ms.Has(ctx, h)
		if err != nil {
			return nil, err
		}
		if !ok {
			absent.Insert(h)
		}
	}
	return absent, nil
}

// Put implements ChunkStore.
func (ms *MemoryStore) Put(ctx context.Context, c Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data[c.Hash()] = c
	return nil
}

// Len returns the number of chunks in the store.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.data)
}

// Version implements ChunkStore.
func (ms *MemoryStore) Version() string {
	return StorageVersion
}

// StatsSummary implements ChunkStore.
func (ms *MemoryStore) StatsSummary() string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	physLen := uint64(0)
	for _, c := range ms.data {
		physLen += uint64(c.Size())
	}
	return fmt.Sprintf("Chunk Count: %d; Physical Bytes: %s", len(ms.data), humanize.Bytes(physLen))
}

// Close implements ChunkStore.
func (ms *MemoryStore) Close() error {
	return nil
}

// Snapshot serializes every chunk in the store to w using the
// compressed chunk stream format. Iteration order is unspecified.
func (ms *MemoryStore) Snapshot(w io.Writer) error {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	sw := NewStreamWriter(w)
	for _, c := range ms.data {
		if err := sw.Write(c); err != nil {
			return err
		}
	}
	return sw.Close()
}

// Restore reads a compressed chunk stream from r, previously produced
// by Snapshot, into the store.
func (ms *MemoryStore) Restore(ctx context.Context, r io.Reader) error {
	return ReadChunkStream(r, func(c Chunk) error {
		return ms.Put(ctx, c)
	})
}
