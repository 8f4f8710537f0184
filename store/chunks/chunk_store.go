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

	"github.com/dolthub/manifest/store/hash"
)

// StorageVersion is the version of the on-disk chunk encoding this
// package reads and writes.
const StorageVersion = "1"

// ChunkStore is the core storage abstraction. It is a content-addressed
// map from hash.Hash to immutable byte sequences. Put of the same
// address twice is a no-op; stored chunks are never mutated.
type ChunkStore interface {
	// Get the Chunk for the value of the hash in the store. If the hash
	// is absent from the store EmptyChunk is returned.
	Get(ctx context.Context, h hash.Hash) (Chunk, error)

	// GetMany gets the Chunks with |hashes| from the store. On return,
	// |found| will have been called for each chunk which was present.
	// Absent chunks are silently ignored.
	GetMany(ctx context.Context, hashes hash.HashSet, found func(*Chunk)) error

	// Has returns true iff the value at the address |h| is contained in
	// the store.
	Has(ctx context.Context, h hash.Hash) (bool, error)

	// HasMany returns a new HashSet containing any members of |hashes|
	// that are absent from the store.
	HasMany(ctx context.Context, hashes hash.HashSet) (absent hash.HashSet, err error)

	// Put writes c into the store. Upon return, c must be visible to
	// subsequent Get and Has calls. Put may be called concurrently with
	// other calls to Put(), Get(), GetMany(), Has() and HasMany().
	Put(ctx context.Context, c Chunk) error

	// Version returns the storage version with which this store is
	// compatible.
	Version() string

	// StatsSummary may return a string containing summarized statistics
	// for this store. It must return "Unsupported" if this operation is
	// not supported.
	StatsSummary() string

	// Close tears down any resources in use by the implementation. After
	// Close(), the ChunkStore may not be used again. It is NOT SAFE to
	// call Close() concurrently with any other ChunkStore method.
	Close() error
}
