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

	"github.com/stretchr/testify/suite"

	"github.com/dolthub/manifest/store/hash"
)

// ChunkStoreTestSuite is a reusable conformance suite for ChunkStore
// implementations. It lives outside the _test.go files so store
// packages elsewhere in the module can embed it in their own tests.
// Embed it and set Make in SetupTest.
type ChunkStoreTestSuite struct {
	suite.Suite
	Make func() ChunkStore
}

func (suite *ChunkStoreTestSuite) TestChunkStorePut() {
	ctx := context.Background()
	store := suite.Make()
	defer store.Close()

	input := "abc"
	c := NewChunk([]byte(input))
	suite.NoError(store.Put(ctx, c))

	got, err := store.Get(ctx, c.Hash())
	suite.NoError(err)
	suite.Equal(input, string(got.Data()))
	suite.Equal(c.Hash(), got.Hash())

	ok, err := store.Has(ctx, c.Hash())
	suite.NoError(err)
	suite.True(ok)
}

func (suite *ChunkStoreTestSuite) TestChunkStorePutIdempotent() {
	ctx := context.Background()
	store := suite.Make()
	defer store.Close()

	c := NewChunk([]byte("abc"))
	suite.NoError(store.Put(ctx, c))
	suite.NoError(store.Put(ctx, c))

	got, err := store.Get(ctx, c.Hash())
	suite.NoError(err)
	suite.Equal(c.Data(), got.Data())
}

func (suite *ChunkStoreTestSuite) TestChunkStoreGetNonExisting() {
	ctx := context.Background()
	store := suite.Make()
	defer store.Close()

	h := hash.Parse("11111111111111111111111111111111")
	c, err := store.Get(ctx, h)
	suite.NoError(err)
	suite.True(c.IsEmpty())

	ok, err := store.Has(ctx, h)
	suite.NoError(err)
	suite.False(ok)
}

func (suite *ChunkStoreTestSuite) TestChunkStoreGetMany() {
	ctx := context.Background()
	store := suite.Make()
	defer store.Close()

	c1 := NewChunk([]byte("abc"))
	c2 := NewChunk([]byte("def"))
	suite.NoError(store.Put(ctx, c1))
	suite.NoError(store.Put(ctx, c2))

	bogus := hash.Parse("11111111111111111111111111111111")
	got := hash.HashSet{}
	err := store.GetMany(ctx, hash.NewHashSet(c1.Hash(), c2.Hash(), bogus), func(c *Chunk) {
		got.Insert(c.Hash())
	})
	suite.NoError(err)
	suite.Len(got, 2)
	suite.True(got.Has(c1.Hash()))
	suite.True(got.Has(c2.Hash()))
}

func (suite *ChunkStoreTestSuite) TestChunkStoreHasMany() {
	ctx := context.Background()
	store := suite.Make()
	defer store.Close()

	present := NewChunk([]byte("abc"))
	suite.NoError(store.Put(ctx, present))

	bogus := hash.Parse("11111111111111111111111111111111")
	absent, err := store.HasMany(ctx, hash.NewHashSet(present.Hash(), bogus))
	suite.NoError(err)
	suite.Len(absent, 1)
	suite.True(absent.Has(bogus))
}

func (suite *ChunkStoreTestSuite) TestChunkStoreVersion() {
	store := suite.Make()
	defer store.Close()
	suite.Equal(StorageVersion, store.Version())
}
