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
	"crypto/sha1"
	"crypto/sha256"
)

// Summary is the aggregate a directory node carries about its contents:
// two order-sensitive digests of the recursive structure, direct child
// counts, and recursive descendant totals. The digests allow two
// manifests to be compared path-by-path without fetching file content.
type Summary struct {
	// SimpleFormatSha1 and SimpleFormatSha256 are running hashes over
	// the directory's sorted entries. For each entry they absorb the
	// child's content hash as hex text (file content hashes for files,
	// the child's own simple-format digests for subdirectories), a type
	// tag, the raw name bytes, and a NUL byte.
	SimpleFormatSha1   [sha1.Size]byte
	SimpleFormatSha256 [sha256.Size]byte

	ChildFilesCount     uint64
	ChildFilesTotalSize uint64
	ChildDirsCount      uint64

	DescendantFilesCount     uint64
	DescendantFilesTotalSize uint64
}
