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

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"github.com/dolthub/manifest/store/chunks"
	"github.com/dolthub/manifest/store/hash"
)

const (
	defaultFanOut              = 16
	defaultPrefetchConcurrency = 64
	defaultMaxDepth            = 4096
)

// Deriver derives manifests over a chunk store and a content metadata
// store. A Deriver is safe for concurrent use; each derivation call
// owns its transient caches.
type Deriver struct {
	ns     nodeStore
	cs     chunks.ChunkStore
	meta   ContentMetadataStore
	logger *logrus.Logger

	fanOut              int64
	writeConcurrency    uint32
	prefetchConcurrency int
	maxDepth            int

	stats DerivationStats
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithLogger sets the logger derivations report progress to.
func WithLogger(logger *logrus.Logger) Option {
	return func(dr *Deriver) { dr.logger = logger }
}

// WithFanOut bounds how many sibling subtrees may be merged
// concurrently.
func WithFanOut(n int64) Option {
	return func(dr *Deriver) { dr.fanOut = n }
}

// WithWriteConcurrency bounds how many node writes may be in flight.
func WithWriteConcurrency(n uint32) Option {
	return func(dr *Deriver) { dr.writeConcurrency = n }
}

// WithPrefetchConcurrency bounds parallelism of the metadata prefetch.
// Non-positive values fall back to the default; errgroup.SetLimit(0)
// would block every fetch forever.
func WithPrefetchConcurrency(n int) Option {
	return func(dr *Deriver) {
		if n <= 0 {
			n = defaultPrefetchConcurrency
		}
		dr.prefetchConcurrency = n
	}
}

// WithMaxDepth bounds manifest depth, guarding stack usage against
// pathological trees.
func WithMaxDepth(n int) Option {
	return func(dr *Deriver) { dr.maxDepth = n }
}

// NewDeriver creates a Deriver over cs and meta.
func NewDeriver(cs chunks.ChunkStore, meta ContentMetadataStore, opts ...Option) *Deriver {
	dr := &Deriver{
		ns:                  nodeStore{store: cs, cache: newNodeCache(defaultCacheSize)},
		cs:                  cs,
		meta:                meta,
		logger:              logrus.StandardLogger(),
		fanOut:              defaultFanOut,
		writeConcurrency:    defaultWriteConcurrency,
		prefetchConcurrency: defaultPrefetchConcurrency,
		maxDepth:            defaultMaxDepth,
	}
	for _, opt := range opts {
		opt(dr)
	}
	return dr
}

// NodeStore returns the read path for manifests this Deriver produces.
func (dr *Deriver) NodeStore() NodeStore {
	return dr.ns
}

// Stats returns a snapshot of the cumulative derivation counters.
func (dr *Deriver) Stats() DerivationStats {
	return dr.stats.Snapshot()
}

// DeriveManifest computes the manifest root for a changeset with the
// given parent manifest roots and file changes. On success every node
// of the new manifest is durably persisted; on error the manifest must
// be treated as not derived.
func (dr *Deriver) DeriveManifest(ctx context.Context, parents []hash.Hash, changes []PathChange) (hash.Hash, error) {
	trie, err := buildChangeTrie(changes)
	if err != nil {
		return hash.Hash{}, err
	}

	meta, err := dr.prefetch(ctx, changes)
	if err != nil {
		return hash.Hash{}, err
	}

	parentNodes, err := dr.loadParents(ctx, parents)
	if err != nil {
		return hash.Hash{}, err
	}

	// The sink's context is canceled when merging fails so that
	// in-flight writes abort instead of racing a dead derivation.
	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := newWriteSink(sctx, dr.cs, dr.writeConcurrency, &dr.stats)
	ds := &deriveState{
		ns:          dr.ns,
		meta:        meta,
		caches:      newParentCache(),
		sink:        sink,
		sem:         semaphore.NewWeighted(dr.fanOut),
		stats:       &dr.stats,
		maxDepth:    dr.maxDepth,
		parentCount: len(parents),
	}

	root, err := ds.deriveRoot(sctx, parentNodes, trie)
	if err != nil {
		cancel()
		_ = sink.drain()
		return hash.Hash{}, err
	}
	if err := sink.drain(); err != nil {
		return hash.Hash{}, err
	}

	dr.logger.WithFields(logrus.Fields{
		"root":    root,
		"parents": len(parents),
		"changes": len(changes),
	}).Debug("derived manifest")

	return root, nil
}

// ChangesetId identifies a changeset in a stack derivation.
type ChangesetId = hash.Hash

// StackEntry is one changeset of a linear stack: its id and its file
// changes against the previous entry's result.
type StackEntry struct {
	Id      ChangesetId
	Changes []PathChange
}

// DeriveManifestStack derives manifests for a linear run of changesets,
// each child of the previous entry's result (the first is a child of
// initialParent, or a root changeset if initialParent is nil). The
// parent caches and the write sink are shared across the whole stack,
// and success requires every node of every step to be durably
// persisted.
func (dr *Deriver) DeriveManifestStack(ctx context.Context, initialParent *hash.Hash, stack []StackEntry) (map[ChangesetId]hash.Hash, error) {
	seen := hash.HashSet{}
	var all []PathChange
	for _, entry := range stack {
		if seen.Has(entry.Id) {
			return nil, invalidBonsaif(nil, "duplicate changeset %s in stack", entry.Id)
		}
		seen.Insert(entry.Id)
		all = append(all, entry.Changes...)
	}

	// one prefetch pass covers every step
	meta, err := dr.prefetch(ctx, all)
	if err != nil {
		return nil, err
	}

	sctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sink := newWriteSink(sctx, dr.cs, dr.writeConcurrency, &dr.stats)
	caches := newParentCache()
	sem := semaphore.NewWeighted(dr.fanOut)

	var parents []hash.Hash
	if initialParent != nil {
		parents = []hash.Hash{*initialParent}
	}

	results := make(map[ChangesetId]hash.Hash, len(stack))
	for _, entry := range stack {
		trie, err := buildChangeTrie(entry.Changes)
		if err != nil {
			cancel()
			_ = sink.drain()
			return nil, err
		}

		parentNodes, err := dr.loadParents(ctx, parents)
		if err != nil {
			cancel()
			_ = sink.drain()
			return nil, err
		}

		ds := &deriveState{
			ns:          dr.ns,
			meta:        meta,
			caches:      caches,
			sink:        sink,
			sem:         sem,
			stats:       &dr.stats,
			maxDepth:    dr.maxDepth,
			parentCount: len(parents),
		}

		root, err := ds.deriveRoot(sctx, parentNodes, trie)
		if err != nil {
			cancel()
			_ = sink.drain()
			return nil, err
		}
		results[entry.Id] = root
		parents = []hash.Hash{root}
	}

	if err := sink.drain(); err != nil {
		return nil, err
	}

	dr.logger.WithFields(logrus.Fields{
		"changesets": len(stack),
	}).Debug("derived manifest stack")

	return results, nil
}

// deriveRoot merges the root directory and always materializes a root
// node, including the fully-empty case the generic recursion cannot
// reach (zero parents and zero surviving entries is still a valid,
// empty manifest).
func (ds *deriveState) deriveRoot(ctx context.Context, parentNodes []Node, trie *changeTrie) (hash.Hash, error) {
	entries, err := ds.mergeDirectory(ctx, Path{}, parentNodes, trie, 0)
	if err != nil {
		return hash.Hash{}, err
	}
	te := ds.buildDirectory(entries)
	return te.Ref, nil
}

// prefetch bulk-loads metadata for every content id the change list
// introduces.
func (dr *Deriver) prefetch(ctx context.Context, changes []PathChange) (map[ContentId]ContentMetadata, error) {
	ids := hash.HashSet{}
	for _, ch := range changes {
		if ch.Change != nil {
			ids.Insert(ch.Change.Content)
		}
	}
	if len(ids) == 0 {
		return map[ContentId]ContentMetadata{}, nil
	}

	meta, err := prefetchMetadata(ctx, dr.meta, ids, dr.prefetchConcurrency)
	if err != nil {
		return nil, err
	}
	atomic.AddUint64(&dr.stats.MetadataPrefetched, uint64(len(meta)))
	return meta, nil
}

// loadParents loads each declared parent's root node. A missing parent
// is a structural storage fault, distinct from an invalid changeset.
func (dr *Deriver) loadParents(ctx context.Context, parents []hash.Hash) ([]Node, error) {
	nodes := make([]Node, 0, len(parents))
	for _, ref := range parents {
		n, err := dr.ns.Read(ctx, ref)
		if isNotFound(err) {
			return nil, MissingParentError{Ref: ref}
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
