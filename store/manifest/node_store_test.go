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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/manifest/store/chunks"
	"github.com/dolthub/manifest/store/hash"
)

func TestNodeStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	cs := newCountingStore(chunks.NewMemoryStore())
	ns := NewNodeStore(cs)

	nd := nodeWithFile("f", "node store bytes")
	ref, err := ns.Write(ctx, nd)
	require.NoError(t, err)
	assert.Equal(t, nd.HashOf(), ref)

	got, err := ns.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, nd.HashOf(), got.HashOf())
	assert.Equal(t, nd.Bytes(), got.Bytes())

	// the write primed the cache; no store read happened
	assert.Equal(t, 0, cs.getCount(ref))

	ns.PurgeCaches()
	_, err = ns.Read(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.getCount(ref))
}

func TestNodeStoreReadMissing(t *testing.T) {
	ns := NewNodeStore(chunks.NewMemoryStore())

	_, err := ns.Read(context.Background(), hash.Of([]byte("absent")))
	assert.ErrorIs(t, err, ErrNodeNotFound)
}

func TestNodeStoreReadCorrupt(t *testing.T) {
	ctx := context.Background()
	cs := chunks.NewMemoryStore()

	c := chunks.NewChunk([]byte("not a manifest node"))
	require.NoError(t, cs.Put(ctx, c))

	ns := NewNodeStore(cs)
	_, err := ns.Read(ctx, c.Hash())
	assert.ErrorIs(t, err, ErrCorruptNode)
}
