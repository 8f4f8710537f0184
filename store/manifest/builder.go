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
	"encoding/hex"
	"io"

	"github.com/dolthub/manifest/store/d"
	"github.com/dolthub/manifest/store/hash"
)

// computeSummary folds a directory's sorted entries into its Summary.
// Children are final by the time this runs, so directory descendants
// aggregate by simple addition of each child's own totals.
//
// The simple-format digests absorb, per entry: the child's content hash
// as lowercase hex (file content hashes for files, the child's own
// simple-format digests for subdirectories), a type tag, the raw name
// bytes, and a NUL. The two digests run independently over sha1 and
// sha256 child hashes respectively.
func computeSummary(entries []NamedEntry) Summary {
	h1 := sha1.New()
	h2 := sha256.New()
	s := Summary{}

	for i, e := range entries {
		d.PanicIfFalse(i == 0 || entries[i-1].Name < e.Name)

		var tag string
		if e.IsFile() {
			l := e.Leaf
			writeHex(h1, l.ContentSha1[:])
			writeHex(h2, l.ContentSha256[:])
			tag = l.Type.digestTag()

			s.ChildFilesCount++
			s.ChildFilesTotalSize += l.Size
			s.DescendantFilesCount++
			s.DescendantFilesTotalSize += l.Size
		} else {
			t := e.Tree
			writeHex(h1, t.Sum.SimpleFormatSha1[:])
			writeHex(h2, t.Sum.SimpleFormatSha256[:])
			tag = treeDigestTag

			s.ChildDirsCount++
			s.DescendantFilesCount += t.Sum.DescendantFilesCount
			s.DescendantFilesTotalSize += t.Sum.DescendantFilesTotalSize
		}

		h1.Write([]byte(tag))
		h1.Write([]byte(e.Name))
		h1.Write([]byte{0})
		h2.Write([]byte(tag))
		h2.Write([]byte(e.Name))
		h2.Write([]byte{0})
	}

	h1.Sum(s.SimpleFormatSha1[:0])
	h2.Sum(s.SimpleFormatSha256[:0])
	return s
}

func writeHex(w io.Writer, digest []byte) {
	enc := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(enc, digest)
	_, _ = w.Write(enc)
}

// buildNode assembles a directory node from its final sorted entry
// set: Summary, canonical serialization, and address.
func buildNode(entries []NamedEntry) Node {
	sum := computeSummary(entries)
	data := serializeNode(entries, sum)
	return Node{
		entries: entries,
		sum:     sum,
		addr:    hash.Of(data),
		data:    data,
	}
}
