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

package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/dolthub/manifest/store/chunks"
)

func TestBoltDBStoreSuite(t *testing.T) {
	s := &chunks.ChunkStoreTestSuite{Make: func() chunks.ChunkStore {
		store, err := NewBoltDBChunkStore(filepath.Join(t.TempDir(), "chunks.db"))
		require.NoError(t, err)
		return store
	}}
	suite.Run(t, s)
}

func TestBoltDBStorePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "chunks.db")

	store, err := NewBoltDBChunkStore(path)
	require.NoError(t, err)

	c := chunks.NewChunk([]byte("persistent bytes"))
	require.NoError(t, store.Put(ctx, c))
	require.NoError(t, store.Close())

	store, err = NewBoltDBChunkStore(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, c.Hash())
	require.NoError(t, err)
	require.Equal(t, c.Data(), got.Data())
}
