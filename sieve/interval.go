package sieve

import (
	"errors"
	"math"
	"math/bits"
)

// wheelPrimes are the primes the wheel never represents at all: 2, 3, 5
// (excluded by the mod-30 wheel) and 7 (excluded by the mod-210 wheel and
// always folded into the pre-sieve pattern).
var wheelPrimes = [4]uint64{2, 3, 5, 7}

// isqrt returns floor(sqrt(n)), computed without precision loss for n up
// to the full uint64 range.
func isqrt(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	r := uint64(math.Sqrt(float64(n)))
	for {
		hi, lo := bits.Mul64(r, r)
		if hi != 0 || lo > n {
			r--
			continue
		}
		hi1, lo1 := bits.Mul64(r+1, r+1)
		if hi1 == 0 && lo1 <= n {
			r++
			continue
		}
		return r
	}
}

// calculateInterval converts [min, max] into byte/bit boundaries over the
// mod-30 bitmap: [startByte, endByte) is the byte range to sieve, with
// startBit the first bit of startByte that is in range and endBit the
// first bit of the last byte that is out of range (0 meaning the whole
// last byte is in range).
func calculateInterval(min, max uint64) (startByte, endByte uint64, startBit, endBit uint) {
	if min <= 1 {
		startByte, startBit = 0, 1
	} else {
		startByte = min / 30
		startBit = uint(findIdx30[min%30])
	}

	endByte = ((max + 1) + 28) / 30
	if max%30 != 0 {
		endBit = uint(lastIdx30[max%30]+1) % 8
	}

	return startByte, endByte, startBit, endBit
}

// calculateSeedInterval computes the byte/bit boundary for the seed
// sieve: every prime up to floor(sqrt(max)) must be discovered for the
// segmented sieve to have a complete set of sieving primes.
func calculateSeedInterval(max uint64) (seedEndByte uint64, seedEndBit uint) {
	seedMax := isqrt(max)
	seedEndByte = ((seedMax + 1) + 28) / 30
	if seedMax%30 != 0 {
		seedEndBit = uint(lastIdx30[seedMax%30]+1) % 8
	}
	return seedEndByte, seedEndBit
}

// Count returns the number of primes in [min, max], inclusive.
func (e *Engine) Count(min, max uint64, progress func(done, total uint64)) (uint64, error) {
	if min > max {
		return 0, errors.New("sieve: min must not exceed max")
	}

	if max < 30 {
		count := piUnder30[max]
		if min != 0 {
			count -= piUnder30[min-1]
		}
		return uint64(count), nil
	}

	// The bitmap never yields the wheel primes or the configured pre-sieve
	// primes (their bits are marked composite by the pre-sieve pattern),
	// so count those manually. Primes under 30 outside the pre-sieve set
	// keep unset bits and fall out of the ordinary popcount.
	var count uint64
	if min < 30 {
		for _, p := range wheelPrimes {
			if p >= min {
				count++
			}
		}
		for _, p := range presievePrimes[:e.cfg.PresievePrimes] {
			if p >= min {
				count++
			}
		}
	}

	startByte, endByte, startBit, endBit := calculateInterval(min, max)
	seedEndByte, seedEndBit := calculateSeedInterval(max)

	set := newPrimeSet(startByte, endByte, isqrt(max), e.cfg.SegmentBytes, e.cfg.SmallThreshold, e.cfg.BucketPrimes)
	e.runSeedSieve(seedEndByte, seedEndBit, set)

	total := endByte - startByte
	next := startByte
	for next < endByte {
		segEnd := next + e.cfg.SegmentBytes
		segStartBit := uint(0)
		segEndBit := uint(0)

		if next == startByte {
			segStartBit = startBit
		}
		if segEnd >= endByte {
			segEnd = endByte
			segEndBit = endBit
		}

		count += e.sieveSegment(set, next, segEnd, segStartBit, segEndBit)

		next = segEnd
		set.advance()

		if progress != nil {
			progress(next-startByte, total)
		}
	}

	return count, nil
}
