package sieve

// Config tunes the engine's internal buffer sizes and thresholds. The
// zero value is not valid; use DefaultConfig.
type Config struct {
	// SegmentBytes is the size, in mod-30 bytes, of each segment the
	// interval is swept in.
	SegmentBytes uint64

	// BucketPrimes is the capacity of each prime-set bucket.
	BucketPrimes int

	// SmallThreshold is the prime value below which a sieving prime is
	// tracked in the small[] array instead of the per-segment lists.
	SmallThreshold uint64

	// PresievePrimes is how many of {11,13,17,19,23,29} to fold into the
	// pre-sieve pattern, in addition to 7 which is always pre-sieved.
	PresievePrimes int
}

// DefaultConfig returns the tuning used by the cmd/yase binary.
func DefaultConfig() Config {
	const segmentBytes = 32 * 1024
	return Config{
		SegmentBytes:   segmentBytes,
		BucketPrimes:   1024,
		SmallThreshold: segmentBytes / 64,
		PresievePrimes: MaxPresievePrimes,
	}
}

// Engine owns the per-run pre-sieve pattern and working buffer; the wheel
// tables and the popcount table are package-level, filled once at init and
// shared read-only by every Engine. The pre-sieve pattern is rebuilt per
// Engine since PresievePrimes is configurable; its length is 7 times the
// product of the configured pre-sieve primes (215,656,441 bytes with all
// six), so building an Engine is not cheap.
type Engine struct {
	cfg      Config
	presieve *presieve
	buf      []byte
}

// NewEngine builds an Engine ready to Count over any interval.
func NewEngine(cfg Config) *Engine {
	if cfg.SegmentBytes == 0 {
		panic("sieve: SegmentBytes must be positive")
	}
	if cfg.BucketPrimes <= 0 {
		panic("sieve: BucketPrimes must be positive")
	}
	return &Engine{
		cfg:      cfg,
		presieve: newPresieve(cfg.PresievePrimes),
		buf:      make([]byte, cfg.SegmentBytes),
	}
}
