package sieve

// presievePrimes lists the primes (after 2, 3, 5) available for baking into
// the pre-sieve pattern, in the order they're folded in. 7 is always
// pre-sieved separately via the mod-30 wheel since the mod-210 wheel
// already excludes it; the rest are folded in via the mod-210 wheel.
var presievePrimes = [6]uint64{11, 13, 17, 19, 23, 29}

// MaxPresievePrimes bounds the PresievePrimes config knob.
const MaxPresievePrimes = len(presievePrimes)

// presieve is a cyclic pattern of composite bits for 7 and the configured
// subset of presievePrimes, copied into every fresh segment so the segment
// sieve never has to mark those primes' multiples itself.
type presieve struct {
	pattern []byte
	length  uint64
}

func newPresieve(count int) *presieve {
	if count < 0 || count > MaxPresievePrimes {
		panic("sieve: presieve prime count out of range")
	}

	// 7 is always folded in alongside whichever of presievePrimes[0:count]
	// is configured, so the period must always carry a factor of 7 even
	// when count is 0 — otherwise the pattern's cyclic period wouldn't
	// match 7's own periodicity and copy() would tile a too-short pattern.
	length := uint64(30 * 7)
	for i := 0; i < count; i++ {
		length *= presievePrimes[i]
	}
	length /= 30

	p := &presieve{
		pattern: make([]byte, length),
		length:  length,
	}

	markPresievePrime(p.pattern, 7, wheel30Tab[:], wheel30Spokes)
	for i := 0; i < count; i++ {
		markPresievePrime(p.pattern, presievePrimes[i], wheel210Tab[:], wheel210Spokes)
	}

	return p
}

// markPresievePrime marks every wheel-aligned multiple of prime in buf,
// starting from the prime's own position (multiplier 1), using the given wheel
// table. This intentionally marks the prime's own bit composite: the
// interval driver compensates with a manual baseline count for primes
// under 30, exactly mirroring how the reference tool's presieve does it.
func markPresievePrime(buf []byte, prime uint64, tab []wheelElem, spokes int) {
	primeAdj := prime / 30
	i := primeSpoke(prime)
	wi := uint32(i)*uint32(spokes) + 0

	b := uint64(0)
	n := uint64(len(buf))
	for b < n {
		e := &tab[wi]
		buf[b] |= e.mask
		b += uint64(e.deltaF)*primeAdj + uint64(e.deltaC)
		wi = wheelStep(wi, e.next)
	}
}

// copy fills dst[0:end-start] with the pre-sieve pattern, wrapping around
// the cyclic buffer as needed.
func (p *presieve) copy(dst []byte, start, end uint64) {
	dstLen := end - start
	psIdx := start % p.length
	dstIdx := uint64(0)
	for dstIdx < dstLen {
		n := p.length - psIdx
		if n > dstLen-dstIdx {
			n = dstLen - dstIdx
		}
		copy(dst[dstIdx:dstIdx+n], p.pattern[psIdx:psIdx+n])
		psIdx = 0
		dstIdx += n
	}
}
