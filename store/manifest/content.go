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
	"crypto/sha1"
	"crypto/sha256"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dolthub/manifest/store/hash"
)

// ContentMetadata is the size and checksum record the content store
// keeps for a file's raw bytes.
type ContentMetadata struct {
	Size   uint64
	Sha1   [sha1.Size]byte
	Sha256 [sha256.Size]byte
}

// ContentMetadataStore supplies ContentMetadata for content addresses.
// It is an external collaborator; the engine only reads from it.
type ContentMetadataStore interface {
	// GetMetadata returns the metadata for id. ok is false if the store
	// has no record for id; that is not an error at this layer.
	GetMetadata(ctx context.Context, id ContentId) (md ContentMetadata, ok bool, err error)
}

// prefetchMetadata bulk-fetches metadata for every id in ids with
// bounded parallelism. Absent ids are simply left out of the result;
// they only become errors if a leaf later needs them.
func prefetchMetadata(ctx context.Context, ms ContentMetadataStore, ids hash.HashSet, concurrency int) (map[ContentId]ContentMetadata, error) {
	out := make(map[ContentId]ContentMetadata, len(ids))
	mu := &sync.Mutex{}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for id := range ids {
		id := id
		eg.Go(func() error {
			md, ok, err := ms.GetMetadata(ctx, id)
			if err != nil {
				return err
			}
			if ok {
				mu.Lock()
				out[id] = md
				mu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// MemoryMetadataStore is an in-memory ContentMetadataStore for tests
// and embedding.
type MemoryMetadataStore struct {
	mu   sync.RWMutex
	data map[ContentId]ContentMetadata
}

var _ ContentMetadataStore = (*MemoryMetadataStore)(nil)

// NewMemoryMetadataStore creates an empty MemoryMetadataStore.
func NewMemoryMetadataStore() *MemoryMetadataStore {
	return &MemoryMetadataStore{data: map[ContentId]ContentMetadata{}}
}

// GetMetadata implements ContentMetadataStore.
func (ms *MemoryMetadataStore) GetMetadata(ctx context.Context, id ContentId) (ContentMetadata, bool, error) {
	if err := ctx.Err(); err != nil {
		return ContentMetadata{}, false, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()
	md, ok := ms.data[id]
	return md, ok, nil
}

// PutMetadata records metadata for id.
func (ms *MemoryMetadataStore) PutMetadata(id ContentId, md ContentMetadata) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data[id] = md
}

// AddContent computes and records the metadata for data, returning the
// content address the engine will know the bytes by.
func (ms *MemoryMetadataStore) AddContent(data []byte) ContentId {
	id := hash.Of(data)
	ms.PutMetadata(id, ContentMetadata{
		Size:   uint64(len(data)),
		Sha1:   sha1.Sum(data),
		Sha256: sha256.Sum256(data),
	})
	return id
}
