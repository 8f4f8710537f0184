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

// Package async provides concurrency helpers for asynchronous
// workloads that drain queued work with bounded parallelism.
package async

import (
	"container/list"
	"context"
	"fmt"
	"sync"
)

// Action is the function called by an ActionExecutor on each queued
// value.
type Action[T any] func(ctx context.Context, val T) error

// ActionExecutor runs an Action over queued values with a concurrency
// cap. Workers spin up on demand as values arrive and exit when the
// queue empties, so the queue never needs to be closed. Execute never
// blocks (unless a max buffer is set), which lets producers outrun the
// consumers; WaitForEmpty is the only point that observes completion
// and the first error.
type ActionExecutor[T any] struct {
	action      Action[T]
	ctx         context.Context
	concurrency uint32
	err         error
	finished    *WaitGroup
	queue       *list.List
	running     uint32
	maxBuffer   uint64
	syncCond    *sync.Cond
}

// NewActionExecutor returns an ActionExecutor running action with up to
// concurrency goroutines. A concurrency of 0 is treated as 1. If
// maxBuffer is 0 the queue is unbounded; otherwise Execute blocks while
// the queue holds maxBuffer values. Panics on a nil action.
func NewActionExecutor[T any](ctx context.Context, action Action[T], concurrency uint32, maxBuffer uint64) *ActionExecutor[T] {
	if action == nil {
		panic("action cannot be nil")
	}
	if concurrency == 0 {
		concurrency = 1
	}
	return &ActionExecutor[T]{
		action:      action,
		ctx:         ctx,
		concurrency: concurrency,
		finished:    &WaitGroup{},
		queue:       list.New(),
		maxBuffer:   maxBuffer,
		syncCond:    sync.NewCond(&sync.Mutex{}),
	}
}

// Execute adds the value to the end of the queue. If any action
// returned an error before this call, the value is dropped and Execute
// returns immediately.
func (aq *ActionExecutor[T]) Execute(val T) {
	aq.syncCond.L.Lock()
	defer aq.syncCond.L.Unlock()

	if aq.err != nil {
		return
	}

	for aq.maxBuffer != 0 && uint64(aq.queue.Len()) >= aq.maxBuffer {
		aq.syncCond.Wait()
	}
	aq.finished.Add(1)
	aq.queue.PushBack(val)

	if aq.running < aq.concurrency {
		aq.running++
		go aq.work()
	}
}

// WaitForEmpty waits until every accepted value has been processed,
// then returns the first error any action encountered, if any.
func (aq *ActionExecutor[T]) WaitForEmpty() error {
	aq.finished.Wait()

	aq.syncCond.L.Lock()
	defer aq.syncCond.L.Unlock()
	return aq.err
}

func (aq *ActionExecutor[T]) work() {
	for {
		aq.syncCond.L.Lock()

		element := aq.queue.Front()
		if element == nil {
			aq.running--
			aq.syncCond.L.Unlock()
			return
		}
		aq.queue.Remove(element)
		failed := aq.err != nil

		aq.syncCond.Signal() // wake a producer blocked on a full buffer
		aq.syncCond.L.Unlock()

		// After the first failure remaining values are drained without
		// running the action.
		if !failed {
			err := aq.run(element.Value.(T))
			if err != nil {
				aq.syncCond.L.Lock()
				if aq.err == nil {
					aq.err = err
				}
				aq.syncCond.L.Unlock()
			}
		}

		aq.finished.Done()
	}
}

// run invokes the action, converting a panic into an error so one bad
// value cannot take down the process.
func (aq *ActionExecutor[T]) run(val T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in ActionExecutor:\n%v", r)
		}
	}()
	return aq.action(aq.ctx, val)
}
