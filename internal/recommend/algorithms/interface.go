// Cinerank - Collaborative Filtering Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerank

package algorithms

import (
	"context"
	"sync"
	"time"
)

// BaseAlgorithm provides bookkeeping shared by trainers.
type BaseAlgorithm struct {
	name          string
	trainCount    int
	lastTrainedAt time.Time
	mu            sync.RWMutex
}

// NewBaseAlgorithm creates a new base algorithm with the given name.
func NewBaseAlgorithm(name string) BaseAlgorithm {
	return BaseAlgorithm{
		name: name,
	}
}

// Name returns the algorithm identifier.
func (b *BaseAlgorithm) Name() string {
	return b.name
}

// TrainCount returns how many models this trainer has produced.
func (b *BaseAlgorithm) TrainCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.trainCount
}

// LastTrainedAt returns when the last model finished training.
func (b *BaseAlgorithm) LastTrainedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastTrainedAt
}

// markTrained records a completed training run.
func (b *BaseAlgorithm) markTrained() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.trainCount++
	b.lastTrainedAt = time.Now()
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// parallelRange splits [0, n) into contiguous chunks and runs fn on each chunk
// in its own goroutine, returning when all chunks are done.
func parallelRange(n, workers int, fn func(start, end int)) {
	if n == 0 {
		return
	}
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	chunkSize := (n + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}

	wg.Wait()
}
