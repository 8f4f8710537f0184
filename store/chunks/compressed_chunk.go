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

package chunks

import (
	"errors"

	"github.com/golang/snappy"

	"github.com/dolthub/manifest/store/hash"
)

// ErrInvalidCompressedChunk is returned when a compressed chunk's bytes
// do not decompress to the bytes its address claims.
var ErrInvalidCompressedChunk = errors.New("invalid compressed chunk")

// CompressedChunk is a chunk in its storage encoding: snappy-compressed
// bytes paired with the address of the uncompressed data.
type CompressedChunk struct {
	// H is the address of the uncompressed chunk bytes.
	H hash.Hash

	// CompressedData is the snappy-compressed chunk bytes.
	CompressedData []byte
}

// Compress returns the CompressedChunk encoding of c.
func Compress(c Chunk) CompressedChunk {
	return CompressedChunk{
		H:              c.Hash(),
		CompressedData: snappy.Encode(nil, c.Data()),
	}
}

// ToChunk decompresses cc and verifies its address before returning the
// chunk.
func (cc CompressedChunk) ToChunk() (Chunk, error) {
	data, err := snappy.Decode(nil, cc.CompressedData)
	if err != nil {
		return EmptyChunk, err
	}
	if data == nil {
		// snappy decodes an empty payload to nil; an empty chunk must
		// round-trip to empty bytes, not nil
		data = []byte{}
	}
	if hash.Of(data) != cc.H {
		return EmptyChunk, ErrInvalidCompressedChunk
	}
	return NewChunkWithHash(cc.H, data), nil
}
