// Package parallel provides chunked parallel execution for elementwise kernels.
package parallel

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 4096, // Below this, goroutine startup outweighs the arithmetic.
	}
}

// Sequential returns a config that never spawns goroutines.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// chunkSize returns the span each goroutine handles, or 0 to run sequentially.
func (cfg Config) chunkSize(n int) int {
	if !cfg.Enabled || cfg.NumWorkers < 2 || n < cfg.MinChunkSize || n < 2 {
		return 0
	}
	return max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize, 1)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	chunk := cfg.chunkSize(n)
	if chunk == 0 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForRange splits [0, n) into contiguous chunks and runs f on each.
// It returns the error of the lowest-numbered chunk that failed, so the
// result does not depend on goroutine scheduling.
func ForRange(n int, f func(start, end int) error, cfg Config) error {
	chunk := cfg.chunkSize(n)
	if chunk == 0 {
		if n == 0 {
			return nil
		}
		return f(0, n)
	}

	numChunks := (n + chunk - 1) / chunk
	errs := make([]error, numChunks)

	var g errgroup.Group
	g.SetLimit(cfg.NumWorkers)
	for c := 0; c < numChunks; c++ {
		start := c * chunk
		end := min(start+chunk, n)
		g.Go(func() error {
			errs[c] = f(start, end)
			return nil
		})
	}
	_ = g.Wait() // Chunk errors are collected in errs.

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
