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

// Package boltdb provides a persistent ChunkStore backed by a single
// boltdb file.
package boltdb

import (
	"context"
	"fmt"

	"github.com/boltdb/bolt"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"github.com/dolthub/manifest/store/chunks"
	"github.com/dolthub/manifest/store/hash"
)

var chunksBucket = []byte("chunks")

// BoltDBChunkStore is a ChunkStore persisted in a boltdb file. Writes
// are durable once Put returns.
type BoltDBChunkStore struct {
	db *bolt.DB
}

var _ chunks.ChunkStore = (*BoltDBChunkStore)(nil)

// NewBoltDBChunkStore opens (creating if necessary) the boltdb file at
// path.
func NewBoltDBChunkStore(path string) (*BoltDBChunkStore, error) {
	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "opening chunk store at %s", path)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(chunksBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating chunks bucket")
	}

	return &BoltDBChunkStore{db: db}, nil
}

// Get implements chunks.ChunkStore.
func (b *BoltDBChunkStore) Get(ctx context.Context, h hash.Hash) (chunks.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return chunks.EmptyChunk, err
	}

	c := chunks.EmptyChunk
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(chunksBucket).Get(h[:])
		if data == nil {
			return nil
		}
		// |data| is only valid for the life of the transaction.
		cp := make([]byte, len(data))
		copy(cp, data)
		var err error
		c, err = chunks.CompressedChunk{H: h, CompressedData: cp}.ToChunk()
		return err
	})
	return c, err
}

// GetMany implements chunks.ChunkStore.
func (b *BoltDBChunkStore) GetMany(ctx context.Context, hashes hash.HashSet, found func(*chunks.Chunk)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chunksBucket)
		for h := range hashes {
			data := bkt.Get(h[:])
			if data == nil {
				continue
			}
			cp := make([]byte, len(data))
			copy(cp, data)
			c, err := chunks.CompressedChunk{H: h, CompressedData: cp}.ToChunk()
			if err != nil {
				return err
			}
			found(&c)
		}
		return nil
	})
}

// Has implements chunks.ChunkStore.
func (b *BoltDBChunkStore) Has(ctx context.Context, h hash.Hash) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	has := false
	err := b.db.View(func(tx *bolt.Tx) error {
		has = tx.Bucket(chunksBucket).Get(h[:]) != nil
		return nil
	})
	return has, err
}

// HasMany implements chunks.ChunkStore.
func (b *BoltDBChunkStore) HasMany(ctx context.Context, hashes hash.HashSet) (hash.HashSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	absent := hash.HashSet{}
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chunksBucket)
		for h := range hashes {
			if bkt.Get(h[:]) == nil {
				absent.Insert(h)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return absent, nil
}

// Put implements chunks.ChunkStore.
func (b *BoltDBChunkStore) Put(ctx context.Context, c chunks.Chunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	h := c.Hash()
	err := b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chunksBucket)
		if bkt.Get(h[:]) != nil {
			return nil // content-addressed, rewrite is a no-op
		}
		cc := chunks.Compress(c)
		return bkt.Put(h[:], cc.CompressedData)
	})
	return errors.Wrapf(err, "putting chunk %s", h)
}

// Version implements chunks.ChunkStore.
func (b *BoltDBChunkStore) Version() string {
	return chunks.StorageVersion
}

// StatsSummary implements chunks.ChunkStore.
func (b *BoltDBChunkStore) StatsSummary() string {
	cnt := 0
	physLen := uint64(0)
	_ = b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(chunksBucket)
		return bkt.ForEach(func(k, v []byte) error {
			cnt++
			physLen += uint64(len(v))
			return nil
		})
	})
	return fmt.Sprintf("Chunk Count: %d; Physical Bytes: %s", cnt, humanize.Bytes(physLen))
}

// Close implements chunks.ChunkStore.
func (b *BoltDBChunkStore) Close() error {
	return b.db.Close()
}
