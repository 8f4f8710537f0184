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

package chunks

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/manifest/store/hash"
)

// flakyStore fails every operation until |failures| calls have been
// absorbed, then delegates.
type flakyStore struct {
	ChunkStore
	failures int
	calls    int
}

var errTransient = errors.New("transient store failure")

func (fs *flakyStore) Get(ctx context.Context, h hash.Hash) (Chunk, error) {
	fs.calls++
	if fs.calls <= fs.failures {
		return EmptyChunk, errTransient
	}
	return fs.ChunkStore.Get(ctx, h)
}

func (fs *flakyStore) Put(ctx context.Context, c Chunk) error {
	fs.calls++
	if fs.calls <= fs.failures {
		return errTransient
	}
	return fs.ChunkStore.Put(ctx, c)
}

func TestRetryingStoreRecovers(t *testing.T) {
	ctx := context.Background()
	inner := &flakyStore{ChunkStore: NewMemoryStore(), failures: 2}
	rs := NewRetryingChunkStore(inner, 3)

	c := NewChunk([]byte("abc"))
	require.NoError(t, rs.Put(ctx, c))

	inner.calls = 0
	inner.failures = 2
	got, err := rs.Get(ctx, c.Hash())
	require.NoError(t, err)
	assert.Equal(t, c.Data(), got.Data())
}

func TestRetryingStoreGivesUp(t *testing.T) {
	ctx := context.Background()
	inner := &flakyStore{ChunkStore: NewMemoryStore(), failures: 100}
	rs := NewRetryingChunkStore(inner, 2)

	err := rs.Put(ctx, NewChunk([]byte("abc")))
	assert.ErrorIs(t, err, errTransient)
	// 1 initial attempt + 2 retries
	assert.Equal(t, 3, inner.calls)
}
