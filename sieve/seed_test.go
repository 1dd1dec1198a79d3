package sieve

import "testing"

// TestRunSeedSieveSubmitsKnownPrimes checks that the seed sieve submits to
// the prime set every sieving prime up to sqrt(max) that the pre-sieve does
// not already cover, and no prime beyond sqrt(max).
func TestRunSeedSieveSubmitsKnownPrimes(t *testing.T) {
	engine := NewEngine(Config{
		SegmentBytes:   1024,
		BucketPrimes:   64,
		SmallThreshold: 10000,
		PresievePrimes: MaxPresievePrimes,
	})

	const max = 10000
	seedEndByte, seedEndBit := calculateSeedInterval(max)
	startByte, endByte, _, _ := calculateInterval(0, max)

	set := newPrimeSet(startByte, endByte, isqrt(max), engine.cfg.SegmentBytes, engine.cfg.SmallThreshold, engine.cfg.BucketPrimes)
	engine.runSeedSieve(seedEndByte, seedEndBit, set)

	submitted := 0
	for _, b := range set.small {
		for cur := b; cur != nil; cur = cur.next {
			submitted += cur.count
		}
	}
	for i := 0; i < set.listsAlloc; i++ {
		idx := set.listPhysicalIdx(i)
		for cur := set.lists[idx]; cur != nil; cur = cur.next {
			submitted += cur.count
		}
	}
	for cur := set.inactiveHead; cur != nil; cur = cur.next {
		submitted += cur.count
	}
	for cur := set.unused; cur != nil; cur = cur.next {
		submitted += cur.count
	}

	// Every sieving prime up to sqrt(10000)=100 past the pre-sieved ones
	// should be submitted: the 15 primes 31, 37, ..., 97.
	if submitted != 15 {
		t.Errorf("submitted %d sieving primes, want 15", submitted)
	}
}

func TestMarkSeedPrimeMarksMultiplesOfPrime(t *testing.T) {
	buf := make([]byte, 100)
	markSeedPrime(buf, 31, primeSpoke(31))

	for b := uint64(0); b < uint64(len(buf)); b++ {
		for bit := 0; bit < 8; bit++ {
			if buf[b]&(1<<uint(bit)) == 0 {
				continue
			}
			value := b*30 + uint64(offs30[bit])
			if value%31 != 0 {
				t.Errorf("byte %d bit %d (value %d) marked but not a multiple of 31", b, bit, value)
			}
		}
	}
}
