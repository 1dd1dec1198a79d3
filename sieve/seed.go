package sieve

// runSeedSieve runs a one-shot, unsegmented sieve over [0, seedEndByte) to
// discover every sieving prime needed for the segmented sweep: every prime
// up to sqrt(max). Each prime inside the seed range (i.e. bit index < the
// absolute end bit of the seed range) is submitted to set as a sieving
// prime; the seed sieve itself counts nothing, since primes inside
// [min, max] are counted by the segmented sweep.
//
// Submission order is strictly increasing in prime value, a precondition
// the prime set relies on for its inactive-list FIFO ordering.
func (e *Engine) runSeedSieve(seedEndByte uint64, seedEndBit uint, set *primeSet) {
	if seedEndByte == 0 {
		return
	}

	buf := make([]byte, seedEndByte)
	e.presieve.copy(buf, 0, seedEndByte)

	var endBitAbsolute uint64
	if seedEndBit == 0 {
		endBitAbsolute = seedEndByte * 8
	} else {
		endBitAbsolute = (seedEndByte-1)*8 + uint64(seedEndBit)
	}

	totalBits := seedEndByte * 8
	start := uint64(e.cfg.PresievePrimes + 2)
	for i := start; i < totalBits; i++ {
		byteIdx := i / 8
		bitIdx := uint8(i % 8)
		if buf[byteIdx]&(1<<bitIdx) != 0 {
			continue
		}

		prime := byteIdx*30 + uint64(offs30[bitIdx])

		if i < endBitAbsolute {
			var wheelIdx uint32
			if prime < e.cfg.SmallThreshold {
				wheelIdx = uint32(bitIdx)*wheel30Spokes + uint32(bitIdx)
			} else {
				wheelIdx = uint32(bitIdx)*wheel210Spokes + uint32(lastIdx210[prime%210])
			}
			firstMultipleByte := prime * prime / 30
			set.add(prime, firstMultipleByte, wheelIdx)
		}

		markSeedPrime(buf, prime, bitIdx)
	}
}

// markSeedPrime marks every mod-210-wheel-aligned multiple of prime,
// starting at prime*prime, in the seed buffer.
func markSeedPrime(buf []byte, prime uint64, primeSpokeIdx uint8) {
	primeAdj := prime / 30
	wi := uint32(primeSpokeIdx)*wheel210Spokes + uint32(lastIdx210[prime%210])

	b := prime * prime / 30
	n := uint64(len(buf))
	for b < n {
		e := &wheel210Tab[wi]
		buf[b] |= e.mask
		b += uint64(e.deltaF)*primeAdj + uint64(e.deltaC)
		wi = wheelStep(wi, e.next)
	}
}
