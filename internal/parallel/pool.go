// Package parallel provides a small fixed worker pool for fanning out
// independent geometry queries (per-cell and per-line classification).
//
// Tasks are uniform and results land in caller-owned slots addressed by
// index, so the pool needs no work stealing and no result channel: workers
// pull indices from a shared counter and write into disjoint slots.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool fans indexed work out across a fixed number of goroutines.
//
// Thread safety: a Pool is stateless between calls; For may be called
// concurrently from multiple goroutines.
type Pool struct {
	workers int
}

// New creates a pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the number of goroutines For will use.
func (p *Pool) Workers() int { return p.workers }

// For runs fn(i) for every i in [0, n), distributing indices across the
// pool's workers, and returns when all calls have finished.
//
// fn must not panic; calls for distinct indices must be independent. With
// one worker (or n < 2) the loop runs inline on the caller's goroutine,
// which keeps single-threaded callers allocation-free.
func (p *Pool) For(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if p.workers == 1 || n == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers := p.workers
	if workers > n {
		workers = n
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}
