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
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/dolthub/manifest/store/chunks"
	"github.com/dolthub/manifest/utils/async"
)

// defaultWriteConcurrency caps the number of chunk-store writes in
// flight per derivation.
const defaultWriteConcurrency = 1024

// writeSink decouples node hashing from storage latency: enqueue never
// blocks on the store, writes drain with a concurrency cap, and drain
// reports the first failure. A derivation is only complete once drain
// returns nil for every node it enqueued.
type writeSink struct {
	exec *async.ActionExecutor[chunks.Chunk]
}

func newWriteSink(ctx context.Context, cs chunks.ChunkStore, concurrency uint32, stats *DerivationStats) *writeSink {
	ws := &writeSink{}
	ws.exec = async.NewActionExecutor(ctx, func(ctx context.Context, c chunks.Chunk) error {
		if err := cs.Put(ctx, c); err != nil {
			return errors.Wrapf(err, "persisting manifest node %s", c.Hash())
		}
		atomic.AddUint64(&stats.BytesWritten, uint64(c.Size()))
		return nil
	}, concurrency, 0)
	return ws
}

func (ws *writeSink) enqueue(nd Node) {
	ws.exec.Execute(chunks.NewChunkWithHash(nd.HashOf(), nd.Bytes()))
}

func (ws *writeSink) drain() error {
	return ws.exec.WaitForEmpty()
}
