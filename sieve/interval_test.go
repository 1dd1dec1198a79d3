package sieve

import (
	"fmt"
	"testing"
)

func TestCalculateIntervalStartsPastOne(t *testing.T) {
	for _, min := range []uint64{0, 1} {
		startByte, _, startBit, _ := calculateInterval(min, 1000)
		if startByte != 0 || startBit != 1 {
			t.Errorf("calculateInterval(%d, 1000) start = (%d,%d), want (0,1)", min, startByte, startBit)
		}
	}
}

func TestCalculateIntervalEndByteCoversMax(t *testing.T) {
	tests := []uint64{30, 31, 59, 60, 61, 1000, 1000000}
	for _, max := range tests {
		_, endByte, _, endBit := calculateInterval(0, max)
		lastByte := endByte - 1
		lastRepresented := lastByte*30 + uint64(offs30[7])
		// A multiple of 30 has no bit of its own; the largest represented
		// integer not above it is max-1.
		reach := max
		if max%30 == 0 {
			reach = max - 1
		}
		if lastRepresented < reach {
			t.Errorf("calculateInterval(0,%d): endByte=%d doesn't reach max", max, endByte)
		}
		if endBit > 7 {
			t.Errorf("calculateInterval(0,%d): endBit=%d out of range", max, endBit)
		}
	}
}

func TestIsqrt(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{2, 1},
		{3, 1},
		{4, 2},
		{8, 2},
		{9, 3},
		{99, 9},
		{100, 10},
		{1000000, 1000},
		{1000000000000, 1000000},
	}
	for _, tt := range tests {
		if got := isqrt(tt.n); got != tt.want {
			t.Errorf("isqrt(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestCountSmallRanges(t *testing.T) {
	tests := []struct {
		min, max uint64
		want     uint64
	}{
		{0, 0, 0},
		{0, 1, 0},
		{0, 2, 1},
		{2, 2, 1},
		{0, 10, 4},
		{0, 29, 10},
		{0, 30, 10},
		{10, 29, 6},
		{18, 18, 0},
	}

	engine := NewEngine(DefaultConfig())
	for _, tt := range tests {
		t.Run(fmt.Sprintf("[%d,%d]", tt.min, tt.max), func(t *testing.T) {
			got, err := engine.Count(tt.min, tt.max, nil)
			if err != nil {
				t.Fatalf("Count(%d,%d) error: %v", tt.min, tt.max, err)
			}
			if got != tt.want {
				t.Errorf("Count(%d,%d) = %d, want %d", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

func TestCountAcrossSegmentedRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max uint64
		want     uint64
	}{
		{"pi(100)", 0, 100, 25},
		{"pi(1000)", 0, 1000, 168},
		{"pi(10000)", 0, 10000, 1229},
		{"pi(1000000)", 0, 1000000, 78498},
		{"[100,200]", 100, 200, 21},
		{"single prime", 999983, 999983, 1},
		{"gap near 10^9", 1000000000, 1000000000 + 1000, 49},
	}

	engine := NewEngine(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.Count(tt.min, tt.max, nil)
			if err != nil {
				t.Fatalf("Count(%d,%d) error: %v", tt.min, tt.max, err)
			}
			if got != tt.want {
				t.Errorf("Count(%d,%d) = %d, want %d", tt.min, tt.max, got, tt.want)
			}
		})
	}
}

// A min inside [0,30) must only deduct primes the engine counts manually
// (the wheel primes plus the configured pre-sieve primes); primes under 30
// left out of the pre-sieve pattern are already handled by the start-bit
// trim on the first segment.
func TestCountNonzeroMinUnderThirty(t *testing.T) {
	tests := []struct {
		name           string
		presievePrimes int
		min, max       uint64
		want           uint64
	}{
		{"full presieve min=7", MaxPresievePrimes, 7, 100, 22},
		{"full presieve min=29", MaxPresievePrimes, 29, 100, 16},
		{"partial presieve min=12", 4, 12, 100, 20},
		{"partial presieve min=25", 4, 25, 100, 16},
		{"no presieve min=25", 0, 25, 100, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.PresievePrimes = tt.presievePrimes
			engine := NewEngine(cfg)
			got, err := engine.Count(tt.min, tt.max, nil)
			if err != nil {
				t.Fatalf("Count(%d,%d) error: %v", tt.min, tt.max, err)
			}
			if got != tt.want {
				t.Errorf("Count(%d,%d) with %d presieve primes = %d, want %d",
					tt.min, tt.max, tt.presievePrimes, got, tt.want)
			}
		})
	}
}

func TestCountRespectsMinGreaterThanMax(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	if _, err := engine.Count(100, 50, nil); err == nil {
		t.Error("Count(100, 50) expected an error, got nil")
	}
}

func TestCountInvokesProgress(t *testing.T) {
	engine := NewEngine(Config{
		SegmentBytes:   64,
		BucketPrimes:   32,
		SmallThreshold: 1,
		PresievePrimes: MaxPresievePrimes,
	})

	calls := 0
	_, err := engine.Count(0, 100000, func(done, total uint64) {
		calls++
		if done > total {
			t.Errorf("progress done=%d exceeds total=%d", done, total)
		}
	})
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if calls == 0 {
		t.Error("progress callback was never called")
	}
}

func TestCountWithSmallSegmentsMatchesDefault(t *testing.T) {
	small := NewEngine(Config{
		SegmentBytes:   64,
		BucketPrimes:   32,
		SmallThreshold: 4,
		PresievePrimes: 2,
	})
	large := NewEngine(DefaultConfig())

	const max = 200000
	gotSmall, err := small.Count(0, max, nil)
	if err != nil {
		t.Fatalf("small engine Count error: %v", err)
	}
	gotLarge, err := large.Count(0, max, nil)
	if err != nil {
		t.Fatalf("large engine Count error: %v", err)
	}
	if gotSmall != gotLarge {
		t.Errorf("Count(0,%d) with small segments = %d, with default segments = %d", max, gotSmall, gotLarge)
	}
}
