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

package async

import "sync"

// WaitGroup is like sync.WaitGroup, except that Add may be called
// concurrently with Wait. Wait returns whenever the counter reaches
// zero; a counter that rises again after that is observed by later
// Wait calls.
type WaitGroup struct {
	mu    sync.Mutex
	cond  *sync.Cond
	count int64
}

func (wg *WaitGroup) init() {
	if wg.cond == nil {
		wg.cond = sync.NewCond(&wg.mu)
	}
}

// Add adds delta, which may be negative, to the counter.
func (wg *WaitGroup) Add(delta int64) {
	wg.mu.Lock()
	defer wg.mu.Unlock()
	wg.init()

	wg.count += delta
	if wg.count < 0 {
		panic("async: negative WaitGroup counter")
	}
	if wg.count == 0 {
		wg.cond.Broadcast()
	}
}

// Done decrements the counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Wait blocks until the counter is zero.
func (wg *WaitGroup) Wait() {
	wg.mu.Lock()
	defer wg.mu.Unlock()
	wg.init()

	for wg.count > 0 {
		wg.cond.Wait()
	}
}
