package array

import (
	"sync/atomic"

	"github.com/born-ml/ndarray/internal/parallel"
)

var parallelConfig atomic.Pointer[parallel.Config]

func init() {
	cfg := parallel.DefaultConfig()
	parallelConfig.Store(&cfg)
}

// SetParallelConfig replaces the fan-out settings used by elementwise arithmetic.
// Safe to call concurrently with running operations.
func SetParallelConfig(cfg parallel.Config) {
	parallelConfig.Store(&cfg)
}

// ParallelConfig returns the current elementwise fan-out settings.
func ParallelConfig() parallel.Config {
	return *parallelConfig.Load()
}
