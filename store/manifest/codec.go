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
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/dolthub/manifest/store/hash"
)

// Canonical node encoding. The address of a node is the hash of these
// bytes, so the encoding must be a deterministic, order-sensitive
// function of the sorted entries and the Summary. Changing it
// invalidates every stored address.
//
//   header:  'M' formatVersion
//   count:   uvarint
//   entry:   uvarint(len(name)) name kind payload
//     file:  content[20] type uvarint(size) sha1[20] sha256[32]
//     tree:  ref[20] summary
//   summary: sfSha1[20] sfSha256[32] uvarint{childFiles, childFilesSize,
//            childDirs, descFiles, descFilesSize}

const (
	formatMagic   = byte('M')
	formatVersion = byte(1)

	entryKindFile = byte(0)
	entryKindTree = byte(1)
)

// ErrCorruptNode is returned when node bytes cannot be decoded.
var ErrCorruptNode = errors.New("corrupt manifest node")

func serializeNode(entries []NamedEntry, sum Summary) []byte {
	buf := make([]byte, 0, 64+len(entries)*96)
	buf = append(buf, formatMagic, formatVersion)
	buf = binary.AppendUvarint(buf, uint64(len(entries)))
	for _, e := range entries {
		buf = binary.AppendUvarint(buf, uint64(len(e.Name)))
		buf = append(buf, e.Name...)
		if e.IsFile() {
			l := e.Leaf
			buf = append(buf, entryKindFile)
			buf = append(buf, l.Content[:]...)
			buf = append(buf, byte(l.Type))
			buf = binary.AppendUvarint(buf, l.Size)
			buf = append(buf, l.ContentSha1[:]...)
			buf = append(buf, l.ContentSha256[:]...)
		} else {
			t := e.Tree
			buf = append(buf, entryKindTree)
			buf = append(buf, t.Ref[:]...)
			buf = appendSummary(buf, t.Sum)
		}
	}
	buf = appendSummary(buf, sum)
	return buf
}

func appendSummary(buf []byte, s Summary) []byte {
	buf = append(buf, s.SimpleFormatSha1[:]...)
	buf = append(buf, s.SimpleFormatSha256[:]...)
	buf = binary.AppendUvarint(buf, s.ChildFilesCount)
	buf = binary.AppendUvarint(buf, s.ChildFilesTotalSize)
	buf = binary.AppendUvarint(buf, s.ChildDirsCount)
	buf = binary.AppendUvarint(buf, s.DescendantFilesCount)
	buf = binary.AppendUvarint(buf, s.DescendantFilesTotalSize)
	return buf
}

type nodeReader struct {
	buf []byte
	off int
	err error
}

func (r *nodeReader) fail() {
	if r.err == nil {
		r.err = ErrCorruptNode
	}
}

func (r *nodeReader) readBytes(n int) []byte {
	if r.err != nil || n < 0 || n > len(r.buf)-r.off {
		r.fail()
		return nil
	}
	out := r.buf[r.off : r.off+n]
	r.off += n
	return out
}

func (r *nodeReader) readByte() byte {
	b := r.readBytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *nodeReader) readUvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.buf[r.off:])
	if n <= 0 {
		r.fail()
		return 0
	}
	r.off += n
	return v
}

func (r *nodeReader) readHash() hash.Hash {
	b := r.readBytes(hash.ByteLen)
	if b == nil {
		return hash.Hash{}
	}
	return hash.New(b)
}

func (r *nodeReader) readSummary() (s Summary) {
	copy(s.SimpleFormatSha1[:], r.readBytes(sha1.Size))
	copy(s.SimpleFormatSha256[:], r.readBytes(sha256.Size))
	s.ChildFilesCount = r.readUvarint()
	s.ChildFilesTotalSize = r.readUvarint()
	s.ChildDirsCount = r.readUvarint()
	s.DescendantFilesCount = r.readUvarint()
	s.DescendantFilesTotalSize = r.readUvarint()
	return s
}

// NodeFromBytes decodes a canonical node serialization. The returned
// Node retains data.
func NodeFromBytes(data []byte) (Node, error) {
	r := &nodeReader{buf: data}

	if r.readByte() != formatMagic || r.readByte() != formatVersion {
		return Node{}, ErrCorruptNode
	}

	count := r.readUvarint()
	if r.err != nil {
		return Node{}, r.err
	}
	// every entry takes several bytes, so a count beyond the remaining
	// buffer cannot be honest; it also bounds the preallocation below
	if count > uint64(len(data)-r.off) {
		return Node{}, ErrCorruptNode
	}

	entries := make([]NamedEntry, 0, count)
	prevName := ""
	for i := uint64(0); i < count; i++ {
		nameLen := r.readUvarint()
		if nameLen > uint64(len(r.buf)-r.off) {
			return Node{}, ErrCorruptNode
		}
		name := string(r.readBytes(int(nameLen)))
		kind := r.readByte()
		if r.err != nil {
			return Node{}, r.err
		}
		if i > 0 && name <= prevName {
			return Node{}, ErrCorruptNode
		}
		prevName = name

		switch kind {
		case entryKindFile:
			l := &LeafEntry{}
			l.Content = r.readHash()
			ft := r.readByte()
			if ft > byte(Symlink) {
				return Node{}, ErrCorruptNode
			}
			l.Type = FileType(ft)
			l.Size = r.readUvarint()
			copy(l.ContentSha1[:], r.readBytes(sha1.Size))
			copy(l.ContentSha256[:], r.readBytes(sha256.Size))
			entries = append(entries, NamedEntry{Name: name, Entry: Entry{Leaf: l}})
		case entryKindTree:
			t := &TreeEntry{}
			t.Ref = r.readHash()
			t.Sum = r.readSummary()
			entries = append(entries, NamedEntry{Name: name, Entry: Entry{Tree: t}})
		default:
			return Node{}, ErrCorruptNode
		}
	}

	sum := r.readSummary()
	if r.err != nil {
		return Node{}, r.err
	}
	if r.off != len(data) {
		return Node{}, ErrCorruptNode
	}

	return Node{
		entries: entries,
		sum:     sum,
		addr:    hash.Of(data),
		data:    data,
	}, nil
}
