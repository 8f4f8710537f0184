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

// Package manifest implements the manifest derivation engine: given a
// changeset's per-path file changes and the manifest roots of its
// parents, it computes the content-addressed directory tree describing
// the changeset's full file state. Unchanged subtrees are reused from
// the parents without re-hashing, and every new node is persisted
// through a bounded-concurrency write sink.
package manifest

import (
	"crypto/sha1"
	"crypto/sha256"

	"github.com/dolthub/manifest/store/hash"
)

// ContentId is the content address of a file's raw bytes, assigned by
// the external content store.
type ContentId = hash.Hash

// FileType describes how a manifest leaf is materialized in a working
// copy.
type FileType uint8

const (
	Regular FileType = iota
	Executable
	Symlink
)

// String implements fmt.Stringer.
func (t FileType) String() string {
	switch t {
	case Regular:
		return "regular"
	case Executable:
		return "executable"
	case Symlink:
		return "symlink"
	default:
		return "unknown"
	}
}

// digestTag is the type marker fed into the simple-format digests.
func (t FileType) digestTag() string {
	switch t {
	case Executable:
		return " exec "
	case Symlink:
		return " link "
	default:
		return " file "
	}
}

// treeDigestTag marks directory entries in the simple-format digests.
const treeDigestTag = " tree "

// LeafEntry is a file within a directory node. Size and the content
// hashes are derived deterministically from Content, so two leaves are
// the same file iff they agree on (Content, Type).
type LeafEntry struct {
	Content       ContentId
	Type          FileType
	Size          uint64
	ContentSha1   [sha1.Size]byte
	ContentSha256 [sha256.Size]byte
}

// SameIdentity returns true if l and o refer to the same file content
// with the same type.
func (l LeafEntry) SameIdentity(o LeafEntry) bool {
	return l.Content == o.Content && l.Type == o.Type
}

// TreeEntry is a subdirectory within a directory node: the address of
// the child node plus its aggregate Summary.
type TreeEntry struct {
	Ref hash.Hash
	Sum Summary
}

// Entry is a single directory member, either a file or a subdirectory.
// Exactly one of Leaf and Tree is set.
type Entry struct {
	Leaf *LeafEntry
	Tree *TreeEntry
}

// IsFile returns true if the entry is a file.
func (e Entry) IsFile() bool {
	return e.Leaf != nil
}

// IsTree returns true if the entry is a subdirectory.
func (e Entry) IsTree() bool {
	return e.Tree != nil
}

// NamedEntry pairs an entry with its path element within its parent
// directory.
type NamedEntry struct {
	Name string
	Entry
}
