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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressedChunkRoundTrip(t *testing.T) {
	c := NewChunk([]byte("some chunk bytes that compress"))
	cc := Compress(c)

	got, err := cc.ToChunk()
	require.NoError(t, err)
	assert.Equal(t, c.Hash(), got.Hash())
	assert.Equal(t, c.Data(), got.Data())
}

func TestCompressedChunkRoundTripEmpty(t *testing.T) {
	c := NewChunk([]byte{})
	got, err := Compress(c).ToChunk()
	require.NoError(t, err)

	assert.Equal(t, c.Hash(), got.Hash())
	// empty must come back as empty bytes, never nil
	assert.Equal(t, []byte{}, got.Data())
	assert.NotNil(t, got.Data())
}

func TestCompressedChunkBadAddress(t *testing.T) {
	cc := Compress(NewChunk([]byte("abc")))
	cc.H = NewChunk([]byte("def")).Hash()

	_, err := cc.ToChunk()
	assert.ErrorIs(t, err, ErrInvalidCompressedChunk)
}

func TestChunkStreamRoundTrip(t *testing.T) {
	chks := []Chunk{
		NewChunk([]byte("chunk one")),
		NewChunk([]byte("chunk two")),
		NewChunk([]byte{}),
		NewChunk(bytes.Repeat([]byte("x"), 1<<16)),
	}

	buf := &bytes.Buffer{}
	sw := NewStreamWriter(buf)
	for _, c := range chks {
		require.NoError(t, sw.Write(c))
	}
	require.NoError(t, sw.Close())

	var got []Chunk
	err := ReadChunkStream(buf, func(c Chunk) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, len(chks))
	for i := range chks {
		assert.Equal(t, chks[i].Hash(), got[i].Hash())
		assert.Equal(t, chks[i].Data(), got[i].Data())
	}
}

func TestChunkStreamTruncated(t *testing.T) {
	buf := &bytes.Buffer{}
	sw := NewStreamWriter(buf)
	require.NoError(t, sw.Write(NewChunk([]byte("abc"))))

	trunc := buf.Bytes()[:buf.Len()-2]
	err := ReadChunkStream(bytes.NewReader(trunc), func(Chunk) error { return nil })
	assert.Error(t, err)
}
