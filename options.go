package adjust

// Option configures an Engine during creation.
//
// Example:
//
//	// Sequential engine (same as the package-level Apply)
//	e := adjust.NewEngine()
//
//	// Row-parallel engine on all CPUs
//	e := adjust.NewEngine(adjust.WithWorkers(0))
//	defer e.Close()
type Option func(*engineOptions)

type engineOptions struct {
	// workers is the pool size; 1 disables the pool, <= 0 means GOMAXPROCS.
	workers int

	// parallelThreshold is the minimum pixel count for a parallel run.
	parallelThreshold int

	// bandsPerWorker controls how finely rows are split.
	bandsPerWorker int

	// centeredContrast pivots contrast on mid-gray instead of zero.
	centeredContrast bool
}

// Defaults for engine options.
const (
	defaultParallelThreshold = 256 * 256
	defaultBandsPerWorker    = 4
)

func defaultOptions() engineOptions {
	return engineOptions{
		workers:           1,
		parallelThreshold: defaultParallelThreshold,
		bandsPerWorker:    defaultBandsPerWorker,
	}
}

// WithWorkers sets the number of goroutines used for the per-pixel loop.
// 1 (the default) runs on the calling goroutine; 0 or negative uses
// GOMAXPROCS. An engine with more than one worker must be closed.
func WithWorkers(n int) Option {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// WithParallelThreshold sets the minimum number of pixels an image needs
// before it is split across workers. Smaller images run sequentially.
func WithParallelThreshold(pixels int) Option {
	return func(o *engineOptions) {
		if pixels < 0 {
			pixels = 0
		}
		o.parallelThreshold = pixels
	}
}

// WithBandsPerWorker sets how many row bands each worker gets per image.
// Values below 1 are treated as 1.
func WithBandsPerWorker(n int) Option {
	return func(o *engineOptions) {
		if n < 1 {
			n = 1
		}
		o.bandsPerWorker = n
	}
}

// WithCenteredContrast makes contrast pivot on mid-gray (128) instead of
// zero. This deviates from the default zero-pivot contract and is off
// unless requested.
func WithCenteredContrast(enabled bool) Option {
	return func(o *engineOptions) {
		o.centeredContrast = enabled
	}
}
