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
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dolthub/manifest/store/hash"
)

const defaultRetries = 5

// RetryingChunkStore decorates a ChunkStore with exponential-backoff
// retries on Get and Put. Retry policy belongs at this layer; callers
// above the store never retry.
type RetryingChunkStore struct {
	ChunkStore
	retries uint64
}

var _ ChunkStore = (*RetryingChunkStore)(nil)

// NewRetryingChunkStore wraps cs with retry behavior. If retries is 0
// a default of 5 attempts is used.
func NewRetryingChunkStore(cs ChunkStore, retries uint64) *RetryingChunkStore {
	if retries == 0 {
		retries = defaultRetries
	}
	return &RetryingChunkStore{ChunkStore: cs, retries: retries}
}

func (rs *RetryingChunkStore) backOff(ctx context.Context) backoff.BackOff {
	ret := backoff.NewExponentialBackOff()
	ret.InitialInterval = 10 * time.Millisecond
	return backoff.WithContext(backoff.WithMaxRetries(ret, rs.retries), ctx)
}

// Get implements ChunkStore.
func (rs *RetryingChunkStore) Get(ctx context.Context, h hash.Hash) (Chunk, error) {
	var c Chunk
	op := func() (err error) {
		c, err = rs.ChunkStore.Get(ctx, h)
		return err
	}
	if err := backoff.Retry(op, rs.backOff(ctx)); err != nil {
		return EmptyChunk, err
	}
	return c, nil
}

// Put implements ChunkStore.
func (rs *RetryingChunkStore) Put(ctx context.Context, c Chunk) error {
	op := func() error {
		return rs.ChunkStore.Put(ctx, c)
	}
	return backoff.Retry(op, rs.backOff(ctx))
}
