package combo

import (
	"context"
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
)

type driverOptions struct {
	segmentSize int
	workers     int
	produced    *atomic.Int64
	remaining   *atomic.Int64
	seed        *uint64
}

// DriverOption configures ForEachCombination.
type DriverOption func(*driverOptions)

// WithSegmentSize sets the sampler segment size.
func WithSegmentSize(n int) DriverOption {
	return func(o *driverOptions) { o.segmentSize = n }
}

// WithWorkers overrides the worker count (default GOMAXPROCS).
func WithWorkers(n int) DriverOption {
	return func(o *driverOptions) { o.workers = n }
}

// WithProgress attaches the produced counter read by the progress reporter.
func WithProgress(c *atomic.Int64) DriverOption {
	return func(o *driverOptions) { o.produced = c }
}

// WithRemainingCounter attaches a counter decremented per combination. The
// caller initializes it, usually to the total.
func WithRemainingCounter(c *atomic.Int64) DriverOption {
	return func(o *driverOptions) { o.remaining = c }
}

// WithSeed makes the segment visiting order reproducible.
func WithSeed(seed uint64) DriverOption {
	return func(o *driverOptions) { o.seed = &seed }
}

// ForEachCombination calls fn exactly once for every tuple of the cartesian
// product of pools, in unspecified order, from a pool of worker goroutines.
//
// fn must be safe for concurrent use. The slice passed to fn is owned by the
// calling worker and reused for the next tuple; copy it to retain it.
//
// Cancelling ctx stops workers between pulls; the returned error is ctx.Err().
func ForEachCombination[T any](ctx context.Context, pools [][]T, fn func([]T), opts ...DriverOption) error {
	o := driverOptions{
		segmentSize: DefaultSegmentSize,
		workers:     runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 {
		o.workers = 1
	}

	total := TotalCombinations(pools)
	if total == 0 {
		return ctx.Err()
	}
	radix := radixOf(pools)

	var sopts []SamplerOption
	if o.produced != nil {
		sopts = append(sopts, WithProduced(o.produced))
	}
	if o.remaining != nil {
		sopts = append(sopts, WithRemaining(o.remaining))
	}
	if o.seed != nil {
		sopts = append(sopts, WithRand(rand.New(rand.NewPCG(*o.seed, *o.seed^0x9e3779b97f4a7c15))))
	}
	// the sampler range is inclusive
	sampler := NewSampler(total-1, o.segmentSize, sopts...)

	var wg sync.WaitGroup
	for w := 0; w < o.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			idx := make([]int, len(pools))
			tuple := make([]T, len(pools))
			for ctx.Err() == nil {
				i, ok := sampler.Next()
				if !ok {
					return
				}
				UnrankInto(idx, radix, i)
				for slot, j := range idx {
					tuple[slot] = pools[slot][j]
				}
				fn(tuple)
			}
		}()
	}
	wg.Wait()
	return ctx.Err()
}
