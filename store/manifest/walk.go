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

	"github.com/dolthub/manifest/store/hash"
)

// WalkEntries loads the manifest rooted at root and calls cb for every
// entry, depth-first in sorted name order. Directory entries are
// visited before their contents. Returning an error from cb aborts the
// walk.
func WalkEntries(ctx context.Context, ns NodeStore, root hash.Hash, cb func(p Path, e NamedEntry) error) error {
	nd, err := ns.Read(ctx, root)
	if err != nil {
		return err
	}
	return walkNode(ctx, ns, Path{}, nd, cb)
}

func walkNode(ctx context.Context, ns NodeStore, p Path, nd Node, cb func(p Path, e NamedEntry) error) error {
	for i := 0; i < nd.Count(); i++ {
		e := nd.GetEntry(i)
		if err := cb(p, e); err != nil {
			return err
		}
		if e.IsTree() {
			child, err := ns.Read(ctx, e.Tree.Ref)
			if err != nil {
				return err
			}
			if err := walkNode(ctx, ns, p.Child(e.Name), child, cb); err != nil {
				return err
			}
		}
	}
	return nil
}

// PathEntry is one enumerated member of a manifest: the full path of
// the entry and the entry itself.
type PathEntry struct {
	Path  Path
	Entry Entry
}

// ListEntries enumerates every entry of the manifest rooted at root,
// depth-first in sorted name order, with full paths.
func ListEntries(ctx context.Context, ns NodeStore, root hash.Hash) ([]PathEntry, error) {
	var out []PathEntry
	err := WalkEntries(ctx, ns, root, func(p Path, e NamedEntry) error {
		out = append(out, PathEntry{Path: p.Child(e.Name), Entry: e.Entry})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
