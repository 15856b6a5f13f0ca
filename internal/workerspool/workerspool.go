// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package workerspool runs independent tasks on a bounded number of goroutines.
package workerspool

import (
	"runtime"
	"sync"
)

// Pool limits the number of tasks running in parallel.
type Pool struct {
	// maxParallelism is the limit of tasks running at the same time.
	maxParallelism int
	mu             sync.Mutex
	cond           sync.Cond // Signaled whenever numRunning is decreased.
	numRunning     int
}

// New returns a new Pool running at most maxParallelism tasks at the same time.
// If maxParallelism < 1 it defaults to runtime.NumCPU().
func New(maxParallelism int) *Pool {
	if maxParallelism < 1 {
		maxParallelism = runtime.NumCPU()
	}
	w := &Pool{maxParallelism: maxParallelism}
	w.cond = sync.Cond{L: &w.mu}
	return w
}

// WaitToStart waits until the number of running tasks is below the limit, and then runs task
// in a new goroutine. It's up to the caller to synchronize the end of the task.
func (w *Pool) WaitToStart(task func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.numRunning >= w.maxParallelism {
		w.cond.Wait()
	}
	w.numRunning++
	go func() {
		defer func() {
			w.mu.Lock()
			w.numRunning--
			w.cond.Signal()
			w.mu.Unlock()
		}()
		task()
	}()
}

// ForEach calls fn(i) for i in [0, n) using the pool, and returns when all calls are finished.
// Results should be written by index, so their order doesn't depend on scheduling.
func (w *Pool) ForEach(n int, fn func(i int)) {
	var wg sync.WaitGroup
	wg.Add(n)
	for i := range n {
		w.WaitToStart(func() {
			defer wg.Done()
			fn(i)
		})
	}
	wg.Wait()
}
