// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package workerspool

import (
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// runTracked runs n tasks on pool and returns the results and the peak number of tasks running at once.
func runTracked(pool *Pool, n int) (results []int, peak int32) {
	var running, maxRunning atomic.Int32
	results = make([]int, n)
	pool.ForEach(n, func(i int) {
		current := running.Add(1)
		for {
			old := maxRunning.Load()
			if current <= old || maxRunning.CompareAndSwap(old, current) {
				break
			}
		}
		runtime.Gosched()
		results[i] = i * i
		running.Add(-1)
	})
	return results, maxRunning.Load()
}

func TestForEach(t *testing.T) {
	for _, parallelism := range []int{1, 3} {
		results, peak := runTracked(New(parallelism), 50)
		assert.LessOrEqual(t, int(peak), parallelism)
		for i, r := range results {
			assert.Equal(t, i*i, r)
		}
	}
}

func TestNewDefault(t *testing.T) {
	for _, parallelism := range []int{0, -1} {
		results, peak := runTracked(New(parallelism), 20)
		assert.LessOrEqual(t, int(peak), runtime.NumCPU())
		assert.Equal(t, 361, results[19])
	}
}
