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
//
// This file incorporates work covered by the following copyright and
// permission notice:
//
// Copyright 2016 Attic Labs, Inc. All rights reserved.
// Licensed under the Apache License, version 2.0:
// http://www.apache.org/licenses/LICENSE-2.0

package chunks

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/dolthub/manifest/store/hash"
)

/*
  Chunk stream format:
    Chunk 0
    Chunk 1
     ..
    Chunk N

  Chunk:
    Hash  // 20-byte address of the uncompressed bytes
    Len   // 4-byte big-endian length of the compressed bytes
    Data  // snappy-compressed bytes, len(Data) == Len
*/

// StreamWriter serializes chunks to an io.Writer in the chunk stream
// format. Close must be called when no more chunks will be written.
type StreamWriter struct {
	w io.Writer
}

// NewStreamWriter creates a StreamWriter writing to w.
func NewStreamWriter(w io.Writer) *StreamWriter {
	return &StreamWriter{w: w}
}

// Write serializes c to the underlying writer.
func (sw *StreamWriter) Write(c Chunk) error {
	cc := Compress(c)

	if _, err := sw.w.Write(cc.H[:]); err != nil {
		return errors.Wrap(err, "writing chunk address")
	}
	if err := binary.Write(sw.w, binary.BigEndian, uint32(len(cc.CompressedData))); err != nil {
		return errors.Wrap(err, "writing chunk length")
	}
	if _, err := sw.w.Write(cc.CompressedData); err != nil {
		return errors.Wrap(err, "writing chunk data")
	}
	return nil
}

// Close implements io.Closer. The stream format needs no trailer, so
// Close only flushes if the underlying writer wants it.
func (sw *StreamWriter) Close() error {
	if f, ok := sw.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// ReadChunkStream reads chunks from r until EOF, calling found for each
// decoded chunk. Chunks failing address verification abort the read.
func ReadChunkStream(r io.Reader, found func(Chunk) error) error {
	for {
		digest := hash.Hash{}
		if _, err := io.ReadFull(r, digest[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return errors.Wrap(err, "reading chunk address")
		}

		var chunkSize uint32
		if err := binary.Read(r, binary.BigEndian, &chunkSize); err != nil {
			return errors.Wrap(err, "reading chunk length")
		}

		data := make([]byte, chunkSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return errors.Wrap(err, "reading chunk data")
		}

		c, err := CompressedChunk{H: digest, CompressedData: data}.ToChunk()
		if err != nil {
			return err
		}
		if err := found(c); err != nil {
			return err
		}
	}
}
