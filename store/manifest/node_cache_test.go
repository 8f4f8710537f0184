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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeEvictsLeastRecentlyUsed(t *testing.T) {
	// same name and content lengths, so every node serializes to the
	// same size
	n1 := nodeWithFile("a", "11111")
	n2 := nodeWithFile("b", "22222")
	n3 := nodeWithFile("c", "33333")
	n4 := nodeWithFile("d", "44444")
	require.Equal(t, n1.Size(), n2.Size())
	require.Equal(t, n1.Size(), n3.Size())

	s := newStripe(2 * n1.Size())
	s.insert(n1.HashOf(), n1)
	s.insert(n2.HashOf(), n2)
	s.insert(n3.HashOf(), n3)

	_, ok := s.get(n1.HashOf())
	assert.False(t, ok, "oldest node should have been evicted")
	_, ok = s.get(n2.HashOf())
	assert.True(t, ok)
	_, ok = s.get(n3.HashOf())
	assert.True(t, ok)

	// touching n2 makes n3 the eviction candidate
	s.get(n2.HashOf())
	s.insert(n4.HashOf(), n4)

	_, ok = s.get(n3.HashOf())
	assert.False(t, ok)
	_, ok = s.get(n2.HashOf())
	assert.True(t, ok)
	_, ok = s.get(n4.HashOf())
	assert.True(t, ok)
}

func TestStripeReinsertDoesNotGrow(t *testing.T) {
	n1 := nodeWithFile("a", "11111")
	n2 := nodeWithFile("b", "22222")

	s := newStripe(2 * n1.Size())
	s.insert(n1.HashOf(), n1)
	s.insert(n2.HashOf(), n2)
	s.insert(n1.HashOf(), n1)
	s.insert(n1.HashOf(), n1)

	_, ok := s.get(n1.HashOf())
	assert.True(t, ok)
	_, ok = s.get(n2.HashOf())
	assert.True(t, ok)
	assert.Equal(t, 2*n1.Size(), s.sz)
}

func TestNodeCachePurge(t *testing.T) {
	c := newNodeCache(1 << 20)
	nodes := []Node{
		nodeWithFile("a", "1"),
		nodeWithFile("b", "2"),
		nodeWithFile("c", "3"),
	}
	for _, n := range nodes {
		c.insert(n.HashOf(), n)
	}
	for _, n := range nodes {
		got, ok := c.get(n.HashOf())
		require.True(t, ok)
		assert.Equal(t, n.HashOf(), got.HashOf())
	}

	c.purge()
	for _, n := range nodes {
		_, ok := c.get(n.HashOf())
		assert.False(t, ok)
	}
}
