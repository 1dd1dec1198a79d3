package sieve

// sieveSegment sieves [start, end) — a byte range no larger than
// cfg.SegmentBytes — and returns the number of primes found in bits
// [startBit, (end-start-1)*8 + endBit) of it (endBit == 0 keeping the
// whole last byte), i.e. honoring the caller's bit-level trim at the very
// first and very last segment of an interval.
func (e *Engine) sieveSegment(set *primeSet, start, end uint64, startBit, endBit uint) uint64 {
	length := end - start
	buf := e.buf[:length]

	e.presieve.copy(buf, start, end)
	e.markSmallPrimes(set, buf, length)
	e.markLargePrimes(set, buf, length)

	return popcount(buf, startBit, endBit)
}

// markSmallPrimes drains every small[] bucket, marks each prime's
// multiples through the end of the segment, and reinserts the prime
// (keyed by its new wheel index) for the next segment.
//
// A prime's wheel index can advance to a higher slot within its own row
// (the wheel-30 cycle doesn't always step backward before wrapping), so
// the drained buckets are snapshotted up front: inserting a reprocessed
// prime back into set.small must never feed it into a slot this same
// pass has yet to visit, or it would be marked twice against one buffer.
func (e *Engine) markSmallPrimes(set *primeSet, buf []byte, length uint64) {
	heads := set.small
	set.small = [wheel30Spokes * wheel30Spokes]*bucket{}

	for _, head := range heads {
		for b := head; b != nil; b = b.next {
			for i := 0; i < b.count; i++ {
				rec := b.primes[i]
				newByte, newWheelIdx := markSmallMultiples(buf, length, rec.primeAdj, rec.nextByte, rec.wheelIdx)
				set.insertSmall(newWheelIdx, primeRecord{primeAdj: rec.primeAdj, nextByte: newByte, wheelIdx: newWheelIdx})
			}
		}
		for head != nil {
			next := head.next
			set.pool.put(head)
			head = next
		}
	}
}

// markSmallMultiples marks multiples of a small prime (primeAdj =
// prime/30) starting at byte b with wheel index wi, using the mod-30
// wheel, until past length. It unrolls eight marking steps at a time
// (one full cycle of the mod-30 wheel) while a conservative bound
// guarantees none of the eight steps can overrun the buffer, falling back
// to a single bounds-checked step near the end. Returns the overshoot
// byte position (relative to length) and the wheel index to resume from
// next segment.
func markSmallMultiples(buf []byte, length, primeAdj, b uint64, wi uint32) (uint64, uint32) {
	const stridesPerCycle = 8

	stepUB := 6*primeAdj + 6
	eightUB := stridesPerCycle * stepUB

	for b+eightUB < length {
		for k := 0; k < stridesPerCycle; k++ {
			e := &wheel30Tab[wi]
			buf[b] |= e.mask
			b += uint64(e.deltaF)*primeAdj + uint64(e.deltaC)
			wi = wheelStep(wi, e.next)
		}
	}

	for b < length {
		e := &wheel30Tab[wi]
		buf[b] |= e.mask
		b += uint64(e.deltaF)*primeAdj + uint64(e.deltaC)
		wi = wheelStep(wi, e.next)
	}

	return b - length, wi
}

// markLargePrimes pops the current segment's large-prime bucket list and
// marks each prime's multiples through the end of the segment, processing
// two primes at a time for instruction-level parallelism, then saves each
// back into the prime set at its new position.
func (e *Engine) markLargePrimes(set *primeSet, buf []byte, length uint64) {
	head := set.popList0()
	for bkt := head; bkt != nil; {
		i := 0
		for i+1 < bkt.count {
			r0 := bkt.primes[i]
			r1 := bkt.primes[i+1]

			b0, wi0 := r0.nextByte, r0.wheelIdx
			b1, wi1 := r1.nextByte, r1.wheelIdx

			for b0 < length && b1 < length {
				e0 := &wheel210Tab[wi0]
				buf[b0] |= e0.mask
				b0 += uint64(e0.deltaF)*r0.primeAdj + uint64(e0.deltaC)
				wi0 = wheelStep(wi0, e0.next)

				e1 := &wheel210Tab[wi1]
				buf[b1] |= e1.mask
				b1 += uint64(e1.deltaF)*r1.primeAdj + uint64(e1.deltaC)
				wi1 = wheelStep(wi1, e1.next)
			}
			for b0 < length {
				e0 := &wheel210Tab[wi0]
				buf[b0] |= e0.mask
				b0 += uint64(e0.deltaF)*r0.primeAdj + uint64(e0.deltaC)
				wi0 = wheelStep(wi0, e0.next)
			}
			for b1 < length {
				e1 := &wheel210Tab[wi1]
				buf[b1] |= e1.mask
				b1 += uint64(e1.deltaF)*r1.primeAdj + uint64(e1.deltaC)
				wi1 = wheelStep(wi1, e1.next)
			}

			set.save(primeRecord{primeAdj: r0.primeAdj, nextByte: b0 - length, wheelIdx: wi0})
			set.save(primeRecord{primeAdj: r1.primeAdj, nextByte: b1 - length, wheelIdx: wi1})
			i += 2
		}

		if i < bkt.count {
			r := bkt.primes[i]
			b, wi := r.nextByte, r.wheelIdx
			for b < length {
				e := &wheel210Tab[wi]
				buf[b] |= e.mask
				b += uint64(e.deltaF)*r.primeAdj + uint64(e.deltaC)
				wi = wheelStep(wi, e.next)
			}
			set.save(primeRecord{primeAdj: r.primeAdj, nextByte: b - length, wheelIdx: wi})
		}

		next := bkt.next
		set.pool.put(bkt)
		bkt = next
	}
}
