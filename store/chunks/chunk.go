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
	"github.com/dolthub/manifest/store/hash"
)

// Chunk is a unit of stored data. A chunk is addressed by the hash of
// its bytes and is immutable once created.
type Chunk struct {
	r    hash.Hash
	data []byte
}

// EmptyChunk is what a ChunkSource returns for an absent address.
var EmptyChunk = NewChunk([]byte{})

// Hash returns the chunk's address.
func (c Chunk) Hash() hash.Hash {
	return c.r
}

// Data returns the chunk's bytes. Callers must not mutate the returned
// slice.
func (c Chunk) Data() []byte {
	return c.data
}

// Size returns the length of the chunk's bytes.
func (c Chunk) Size() int {
	return len(c.data)
}

// IsEmpty returns true if the chunk contains no bytes.
func (c Chunk) IsEmpty() bool {
	return len(c.data) == 0
}

// NewChunk creates a new Chunk backed by data. This means that the
// returned Chunk has ownership of this slice of memory.
func NewChunk(data []byte) Chunk {
	return Chunk{hash.Of(data), data}
}

// NewChunkWithHash creates a new chunk with a known hash. The hash is
// trusted to be the hash of data, sparing a rehash when the caller has
// already addressed the bytes.
func NewChunkWithHash(r hash.Hash, data []byte) Chunk {
	return Chunk{r, data}
}
