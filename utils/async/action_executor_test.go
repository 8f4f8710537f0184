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

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionExecutorRunsEverything(t *testing.T) {
	var sum int64
	exec := NewActionExecutor(context.Background(), func(ctx context.Context, val int64) error {
		atomic.AddInt64(&sum, val)
		return nil
	}, 8, 0)

	var expected int64
	for i := int64(1); i <= 1000; i++ {
		expected += i
		exec.Execute(i)
	}
	require.NoError(t, exec.WaitForEmpty())
	assert.Equal(t, expected, atomic.LoadInt64(&sum))
}

func TestActionExecutorBoundsConcurrency(t *testing.T) {
	var active, peak int64
	exec := NewActionExecutor(context.Background(), func(ctx context.Context, val int) error {
		cur := atomic.AddInt64(&active, 1)
		for {
			p := atomic.LoadInt64(&peak)
			if cur <= p || atomic.CompareAndSwapInt64(&peak, p, cur) {
				break
			}
		}
		atomic.AddInt64(&active, -1)
		return nil
	}, 4, 0)

	for i := 0; i < 500; i++ {
		exec.Execute(i)
	}
	require.NoError(t, exec.WaitForEmpty())
	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(4))
}

func TestActionExecutorPropagatesFirstError(t *testing.T) {
	boom := errors.New("boom")
	var ran int64
	exec := NewActionExecutor(context.Background(), func(ctx context.Context, val int) error {
		atomic.AddInt64(&ran, 1)
		if val == 3 {
			return boom
		}
		return nil
	}, 1, 0)

	for i := 0; i < 10; i++ {
		exec.Execute(i)
	}
	assert.ErrorIs(t, exec.WaitForEmpty(), boom)
	// values after the failure are drained, not run
	assert.Equal(t, int64(4), atomic.LoadInt64(&ran))
}

func TestActionExecutorCapturesPanic(t *testing.T) {
	exec := NewActionExecutor(context.Background(), func(ctx context.Context, val int) error {
		panic("surprise")
	}, 2, 0)
	exec.Execute(1)

	err := exec.WaitForEmpty()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surprise")
}

func TestWaitGroupConcurrentAddWait(t *testing.T) {
	wg := &WaitGroup{}
	wg.Add(1)

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	wg.Add(1)
	wg.Done()
	wg.Done()
	<-done
}
