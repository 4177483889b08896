package array

// DefaultLinspaceNum is the sample count Linspace uses when none is given.
const DefaultLinspaceNum = 50

// LinspaceOption configures Linspace.
type LinspaceOption func(*linspaceConfig)

type linspaceConfig struct {
	num      int
	endpoint bool
}

// WithNum sets the number of samples.
func WithNum(n int) LinspaceOption {
	return func(c *linspaceConfig) { c.num = n }
}

// WithEndpoint controls whether end is included as the last sample.
// Without it the spacing is (end-start)/num and end itself is never reached.
func WithEndpoint(endpoint bool) LinspaceOption {
	return func(c *linspaceConfig) { c.endpoint = endpoint }
}

// Linspace returns evenly spaced Float64 samples between start and end.
// By default it produces DefaultLinspaceNum samples and excludes end.
//
// Example:
//
//	x := array.Linspace(array.Float(0), array.Float(1), array.WithNum(5), array.WithEndpoint(true))
//	// [0 0.25 0.5 0.75 1]
func Linspace(start, end Number, opts ...LinspaceOption) *Array {
	cfg := linspaceConfig{num: DefaultLinspaceNum}
	for _, opt := range opts {
		opt(&cfg)
	}
	num := max(cfg.num, 0)

	denom := float64(num)
	if cfg.endpoint {
		denom = float64(num - 1)
	}
	lo, hi := start.Float64(), end.Float64()

	data := make([]float64, num)
	for m := range data {
		if denom == 0 {
			data[m] = lo // Single inclusive sample
			continue
		}
		// Explicit conversion keeps the compiler from fusing into an FMA.
		data[m] = lo + float64(float64(m)/denom*(hi-lo))
	}
	return newArray(Buffer{dtype: Float64, floats: data}, Shape{num})
}

// Arange returns the Int64 integers in [0, stop).
// stop is truncated toward zero.
func Arange(stop Number) *Array {
	return ArangeRange(Int(0), stop, 1)
}

// ArangeRange returns every step-th Int64 integer in [start, stop).
// Both bounds are truncated toward zero. The range only ascends: a
// descending request or a step below 1 yields an empty array.
//
// Example:
//
//	array.ArangeRange(array.Int(0), array.Int(10), 2) // [0 2 4 6 8]
func ArangeRange(start, stop Number, step int) *Array {
	lo, hi := start.Int64(), stop.Int64()
	data := []int64{}
	if step >= 1 && lo < hi {
		span := uint64(hi - lo) // Exact even when hi-lo overflows int64
		data = make([]int64, 0, (span+uint64(step)-1)/uint64(step))
		for v := lo; v < hi; v += int64(step) {
			data = append(data, v)
			if uint64(hi-v) <= uint64(step) {
				break // Next step would reach or pass stop
			}
		}
	}
	return newArray(Buffer{dtype: Int64, ints: data}, Shape{len(data)})
}
