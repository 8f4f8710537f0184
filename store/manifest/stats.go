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
	"fmt"
	"sync/atomic"

	"github.com/dustin/go-humanize"
)

// DerivationStats counts the work one derivation (or stack) performed.
// Fields are updated atomically while the derivation runs; read them
// through Snapshot.
type DerivationStats struct {
	// NodesBuilt is the number of new directory nodes hashed and
	// persisted.
	NodesBuilt uint64

	// SubtreesReused counts parent subtrees carried into the result
	// without recursion, rehashing, or store traffic.
	SubtreesReused uint64

	// LeavesReused counts authored files whose (content, type) already
	// existed in a parent.
	LeavesReused uint64

	// FilesAdded counts leaves materialized from prefetched metadata.
	FilesAdded uint64

	// MetadataPrefetched is the number of content ids found by the
	// prefetch pass.
	MetadataPrefetched uint64

	// BytesWritten is the total serialized size of persisted nodes.
	BytesWritten uint64
}

// Snapshot returns a consistent copy of the counters.
func (s *DerivationStats) Snapshot() DerivationStats {
	return DerivationStats{
		NodesBuilt:         atomic.LoadUint64(&s.NodesBuilt),
		SubtreesReused:     atomic.LoadUint64(&s.SubtreesReused),
		LeavesReused:       atomic.LoadUint64(&s.LeavesReused),
		FilesAdded:         atomic.LoadUint64(&s.FilesAdded),
		MetadataPrefetched: atomic.LoadUint64(&s.MetadataPrefetched),
		BytesWritten:       atomic.LoadUint64(&s.BytesWritten),
	}
}

// String implements fmt.Stringer.
func (s DerivationStats) String() string {
	return fmt.Sprintf("built %s nodes (%s), reused %s subtrees, added %s files",
		humanize.Comma(int64(s.NodesBuilt)),
		humanize.Bytes(s.BytesWritten),
		humanize.Comma(int64(s.SubtreesReused)),
		humanize.Comma(int64(s.FilesAdded)))
}
