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
	"sort"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/dolthub/manifest/store/hash"
)

// changeTrie organizes a changeset's flat change list by directory
// level: changes terminating at this level keyed by name (nil value is
// a deletion), and subtries for changes lying below a named child.
type changeTrie struct {
	files map[string]*FileChange
	dirs  map[string]*changeTrie
}

func newChangeTrie() *changeTrie {
	return &changeTrie{
		files: map[string]*FileChange{},
		dirs:  map[string]*changeTrie{},
	}
}

func buildChangeTrie(changes []PathChange) (*changeTrie, error) {
	root := newChangeTrie()
	for _, ch := range changes {
		if len(ch.Path) == 0 {
			return nil, invalidBonsaif(ch.Path, "change targets the tree root")
		}
		t := root
		for _, elem := range ch.Path[:len(ch.Path)-1] {
			if elem == "" {
				return nil, invalidBonsaif(ch.Path, "empty path element")
			}
			next, ok := t.dirs[elem]
			if !ok {
				next = newChangeTrie()
				t.dirs[elem] = next
			}
			t = next
		}
		name := ch.Path[len(ch.Path)-1]
		if name == "" {
			return nil, invalidBonsaif(ch.Path, "empty path element")
		}
		if _, dup := t.files[name]; dup {
			return nil, invalidBonsaif(ch.Path, "duplicate change for path")
		}
		t.files[name] = ch.Change
	}
	if err := root.validate(Path{}); err != nil {
		return nil, err
	}
	return root, nil
}

// validate rejects change lists where a path is simultaneously written
// as a file and descended through as a directory. Deleting the file and
// descending is fine; that is how a file becomes a directory.
func (t *changeTrie) validate(p Path) error {
	for name, sub := range t.dirs {
		if ch, ok := t.files[name]; ok && ch != nil {
			return invalidBonsaif(p.Child(name), "path is both a file and a directory in the change list")
		}
		if err := sub.validate(p.Child(name)); err != nil {
			return err
		}
	}
	return nil
}

// deriveState carries the per-derivation collaborators: the prefetched
// metadata table, the parent entry caches, the write sink, and the
// sibling-concurrency gate. It is owned by one derivation call (or one
// linear stack) and discarded at its end.
type deriveState struct {
	ns          nodeStore
	meta        map[ContentId]ContentMetadata
	caches      *parentCache
	sink        *writeSink
	sem         *semaphore.Weighted
	stats       *DerivationStats
	maxDepth    int
	parentCount int
}

// mergeDirectory computes the final entry set for one directory from
// the corresponding directory nodes in each parent and the changes at
// or below this level. Entries untouched by changes and agreed on by
// all parents holding them are reused verbatim; everything else is
// resolved or recursively re-derived.
func (ds *deriveState) mergeDirectory(ctx context.Context, p Path, parents []Node, changes *changeTrie, depth int) ([]NamedEntry, error) {
	if depth > ds.maxDepth {
		return nil, errors.Errorf("manifest exceeds maximum depth %d at %q", ds.maxDepth, p.String())
	}

	ds.caches.indexLevel(parents)

	names := childNames(parents, changes)
	results := make([]*NamedEntry, len(names))

	// Sibling children are independent. Extra goroutines are taken from
	// a bounded pool when available; otherwise the child is merged
	// inline, which keeps recursive levels from deadlocking on the gate.
	eg, gctx := errgroup.WithContext(ctx)
	var inlineErr error
	for i, name := range names {
		i, name := i, name
		compute := func(ctx context.Context) error {
			e, ok, err := ds.mergeChild(ctx, p, name, parents, changes, depth)
			if err != nil {
				return err
			}
			if ok {
				results[i] = &e
			}
			return nil
		}

		if ds.sem != nil && ds.sem.TryAcquire(1) {
			eg.Go(func() error {
				defer ds.sem.Release(1)
				return compute(gctx)
			})
			continue
		}
		if inlineErr = compute(gctx); inlineErr != nil {
			break
		}
	}
	if err := eg.Wait(); inlineErr != nil {
		return nil, inlineErr
	} else if err != nil {
		return nil, err
	}

	entries := make([]NamedEntry, 0, len(results))
	for _, e := range results {
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, nil
}

// childNames returns the sorted union of names present in any parent's
// direct entries or referenced by a change at or below this level.
func childNames(parents []Node, changes *changeTrie) []string {
	seen := map[string]struct{}{}
	for _, p := range parents {
		for i := 0; i < p.Count(); i++ {
			seen[p.GetEntry(i).Name] = struct{}{}
		}
	}
	if changes != nil {
		for name := range changes.files {
			seen[name] = struct{}{}
		}
		for name := range changes.dirs {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// mergeChild decides the disposition of a single child name. ok is
// false when the child does not exist in the result.
func (ds *deriveState) mergeChild(ctx context.Context, dir Path, name string, parents []Node, changes *changeTrie, depth int) (NamedEntry, bool, error) {
	p := dir.Child(name)

	var fileChange *FileChange
	hasFileChange := false
	var subChanges *changeTrie
	if changes != nil {
		fileChange, hasFileChange = changes.files[name]
		subChanges = changes.dirs[name]
	}

	// Partition parent values at this name, preserving parent order.
	// When parents conflict on the kind of a child and no change settles
	// it, the earliest-listed parent's kind wins; the losing kind's
	// entries are dropped. This makes merge results sensitive to parent
	// order, which is intentional and covered by tests.
	var pFiles []LeafEntry
	var pDirs []TreeEntry
	firstIsFile := false
	for _, pn := range parents {
		e, ok := pn.Get(name)
		if !ok {
			continue
		}
		if e.IsFile() {
			if len(pFiles) == 0 && len(pDirs) == 0 {
				firstIsFile = true
			}
			pFiles = append(pFiles, *e.Leaf)
		} else {
			pDirs = append(pDirs, *e.Tree)
		}
	}

	if hasFileChange && fileChange != nil {
		// An authored value wins unconditionally.
		l, err := ds.materializeLeaf(p, *fileChange)
		if err != nil {
			return NamedEntry{}, false, err
		}
		return NamedEntry{Name: name, Entry: Entry{Leaf: &l}}, true, nil
	}

	if subChanges != nil {
		// Some change lies strictly below this child: re-derive the
		// subdirectory. A parent file at this name is either explicitly
		// deleted alongside (hasFileChange) or shadowed by the new
		// directory.
		return ds.deriveDirChild(ctx, p, name, pDirs, subChanges, depth)
	}

	if hasFileChange {
		// Explicit deletion, nothing below. The file is gone; a
		// directory may still survive on parent values alone.
		if len(pDirs) == 0 {
			return NamedEntry{}, false, nil
		}
		return ds.deriveDirChild(ctx, p, name, pDirs, nil, depth)
	}

	// No change at or below this name: implicit carry-forward.
	if len(pFiles) == 0 && len(pDirs) == 0 {
		return NamedEntry{}, false, nil
	}
	if firstIsFile {
		if ds.parentCount >= 2 {
			l, err := resolveImplicitLeaf(p, pFiles, ds.parentCount)
			if err != nil {
				return NamedEntry{}, false, err
			}
			return NamedEntry{Name: name, Entry: Entry{Leaf: &l}}, true, nil
		}
		// a single parent's value is carried forward verbatim
		l := pFiles[0]
		return NamedEntry{Name: name, Entry: Entry{Leaf: &l}}, true, nil
	}
	return ds.deriveDirChild(ctx, p, name, pDirs, nil, depth)
}

// deriveDirChild produces the entry for a child directory, reusing a
// parent subtree verbatim when nothing below it changed and all parents
// agree on it, and otherwise loading the parent subtrees and merging
// them recursively. An empty merged directory yields no entry.
func (ds *deriveState) deriveDirChild(ctx context.Context, p Path, name string, pDirs []TreeEntry, subChanges *changeTrie, depth int) (NamedEntry, bool, error) {
	if subChanges == nil && len(pDirs) > 0 && allSameRef(pDirs) {
		te := pDirs[0]
		if cached, ok := ds.caches.lookupDir(te.Ref); ok {
			te = cached
		}
		atomic.AddUint64(&ds.stats.SubtreesReused, 1)
		return NamedEntry{Name: name, Entry: Entry{Tree: &te}}, true, nil
	}
	if len(pDirs) == 0 && subChanges == nil {
		return NamedEntry{}, false, nil
	}

	nodes, err := ds.loadSubtrees(ctx, name, pDirs)
	if err != nil {
		return NamedEntry{}, false, err
	}

	entries, err := ds.mergeDirectory(ctx, p, nodes, subChanges, depth+1)
	if err != nil {
		return NamedEntry{}, false, err
	}
	if len(entries) == 0 {
		// all files below were deleted; the directory ceases to exist
		return NamedEntry{}, false, nil
	}

	te := ds.buildDirectory(entries)
	return NamedEntry{Name: name, Entry: Entry{Tree: &te}}, true, nil
}

// loadSubtrees fetches the distinct parent subtrees at one child name.
func (ds *deriveState) loadSubtrees(ctx context.Context, name string, pDirs []TreeEntry) ([]Node, error) {
	seen := hash.HashSet{}
	nodes := make([]Node, 0, len(pDirs))
	for _, te := range pDirs {
		if seen.Has(te.Ref) {
			continue
		}
		seen.Insert(te.Ref)

		n, err := ds.ns.Read(ctx, te.Ref)
		if isNotFound(err) {
			return nil, MissingSubentryError{Name: name, Ref: te.Ref}
		}
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// buildDirectory runs the node builder on a final entry set and
// schedules persistence; it never waits on the store.
func (ds *deriveState) buildDirectory(entries []NamedEntry) TreeEntry {
	nd := buildNode(entries)
	ds.ns.cacheNode(nd)
	ds.sink.enqueue(nd)
	atomic.AddUint64(&ds.stats.NodesBuilt, 1)
	return TreeEntry{Ref: nd.HashOf(), Sum: nd.Summary()}
}

// materializeLeaf constructs the LeafEntry for an authored file value,
// preferring a representative already present in a parent over the
// prefetched metadata table.
func (ds *deriveState) materializeLeaf(p Path, ch FileChange) (LeafEntry, error) {
	if l, ok := ds.caches.lookupFile(ch.Content, ch.Type); ok {
		atomic.AddUint64(&ds.stats.LeavesReused, 1)
		return l, nil
	}
	md, ok := ds.meta[ch.Content]
	if !ok {
		return LeafEntry{}, MissingContentError{Content: ch.Content}
	}
	atomic.AddUint64(&ds.stats.FilesAdded, 1)
	return LeafEntry{
		Content:       ch.Content,
		Type:          ch.Type,
		Size:          md.Size,
		ContentSha1:   md.Sha1,
		ContentSha256: md.Sha256,
	}, nil
}

func allSameRef(dirs []TreeEntry) bool {
	for _, t := range dirs[1:] {
		if t.Ref != dirs[0].Ref {
			return false
		}
	}
	return true
}
