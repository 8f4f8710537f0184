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
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/dolthub/manifest/store/hash"
)

const numStripes = 64

// nodeCache is a striped LRU over decoded nodes, keyed by address.
// Stripes are selected by xxhash of the address so lock contention
// spreads evenly regardless of address distribution.
type nodeCache struct {
	stripes [numStripes]*stripe
}

func newNodeCache(maxSize int) (c nodeCache) {
	sz := maxSize / numStripes
	for i := range c.stripes {
		c.stripes[i] = newStripe(sz)
	}
	return
}

func (c nodeCache) stripeFor(addr hash.Hash) *stripe {
	return c.stripes[xxhash.Sum64(addr[:])%numStripes]
}

func (c nodeCache) get(addr hash.Hash) (Node, bool) {
	return c.stripeFor(addr).get(addr)
}

func (c nodeCache) insert(addr hash.Hash, node Node) {
	c.stripeFor(addr).insert(addr, node)
}

func (c nodeCache) purge() {
	for _, s := range c.stripes {
		s.purge()
	}
}

type centry struct {
	a    hash.Hash
	n    Node
	prev *centry
	next *centry
}

type stripe struct {
	mu    sync.Mutex
	nodes map[hash.Hash]*centry
	head  *centry
	sz    int
	maxSz int
}

func newStripe(maxSize int) *stripe {
	return &stripe{
		nodes: make(map[hash.Hash]*centry),
		maxSz: maxSize,
	}
}

func removeFromList(e *centry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = e
	e.next = e
}

func (s *stripe) moveToFront(e *centry) {
	if s.head == e {
		return
	}
	if s.head != nil {
		removeFromList(e)
		e.next = s.head
		e.prev = s.head.prev
		s.head.prev = e
		e.prev.next = e
	}
	s.head = e
}

func (s *stripe) get(h hash.Hash) (Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.nodes[h]; ok {
		s.moveToFront(e)
		return e.n, true
	}
	return Node{}, false
}

func (s *stripe) insert(addr hash.Hash, node Node) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.nodes[addr]; ok {
		s.moveToFront(e)
		return
	}

	e := &centry{a: addr, n: node}
	e.next = e
	e.prev = e
	s.moveToFront(e)
	s.nodes[addr] = e
	s.sz += node.Size()
	s.shrinkToMaxSz()
}

func (s *stripe) shrinkToMaxSz() {
	for s.sz > s.maxSz && s.head != nil {
		t := s.head.prev
		removeFromList(t)
		if t == s.head {
			s.head = nil
		}
		delete(s.nodes, t.a)
		s.sz -= t.n.Size()
	}
}

func (s *stripe) purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = make(map[hash.Hash]*centry)
	s.head = nil
	s.sz = 0
}
