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
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestMemoryStoreSuite(t *testing.T) {
	s := &ChunkStoreTestSuite{Make: func() ChunkStore {
		return NewMemoryStore()
	}}
	suite.Run(t, s)
}

func TestMemoryStoreSnapshotRestore(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()

	chks := []Chunk{
		NewChunk([]byte("alpha")),
		NewChunk([]byte("beta")),
		NewChunk([]byte("gamma")),
	}
	for _, c := range chks {
		require.NoError(t, src.Put(ctx, c))
	}

	buf := &bytes.Buffer{}
	require.NoError(t, src.Snapshot(buf))

	dst := NewMemoryStore()
	require.NoError(t, dst.Restore(ctx, buf))
	require.Equal(t, src.Len(), dst.Len())

	for _, c := range chks {
		got, err := dst.Get(ctx, c.Hash())
		require.NoError(t, err)
		require.Equal(t, c.Data(), got.Data())
	}
}
