package sieve

// primeRecord is the fixed-shape record for one sieving prime. Its
// next_byte field means different things depending on which list holds it:
// relative to the current segment's start for small[] entries, relative to
// the start of segment current+k for lists[k] entries, and absolute for
// inactive and unused entries.
type primeRecord struct {
	primeAdj uint64
	nextByte uint64
	wheelIdx uint32
}

// bucket is a fixed-capacity array of sieving primes chained into a
// singly linked list. Buckets are never grown past their configured
// capacity; full buckets are chained via next.
type bucket struct {
	primes []primeRecord
	count  int
	next   *bucket
}

// bucketPool is a free list of emptied buckets, avoiding per-segment
// allocation in steady state.
type bucketPool struct {
	free     *bucket
	capacity int
}

func newBucketPool(capacity int) *bucketPool {
	return &bucketPool{capacity: capacity}
}

func (p *bucketPool) get() *bucket {
	if p.free != nil {
		b := p.free
		p.free = b.next
		b.next = nil
		b.count = 0
		return b
	}
	return &bucket{primes: make([]primeRecord, p.capacity)}
}

func (p *bucketPool) put(b *bucket) {
	b.count = 0
	b.next = p.free
	p.free = b
}

// primeSet is the bucket-sorted container of sieving primes described in
// the design's data model: per-segment lists for the near future, a
// small[] array for primes whose stride never leaves a single segment,
// an inactive FIFO for primes not yet reachable, and an unused list for
// primes that will never fire again on this interval.
type primeSet struct {
	start, end uint64
	current    uint64

	segmentBytes   uint64
	smallThreshold uint64
	listsAlloc     int

	lists []*bucket // ring buffer; physical index (current+k) % listsAlloc == logical lists[k]
	small [wheel30Spokes * wheel30Spokes]*bucket

	inactiveHead, inactiveTail *bucket
	unused                     *bucket

	pool *bucketPool
}

func newPrimeSet(start, end, maxPrime uint64, segmentBytes uint64, smallThreshold uint64, bucketPrimes int) *primeSet {
	listsAlloc := int(ceilDiv(maxPrime*10, segmentBytes)) + 1
	if listsAlloc < 2 {
		listsAlloc = 2
	}
	return &primeSet{
		start:          start,
		end:            end,
		segmentBytes:   segmentBytes,
		smallThreshold: smallThreshold,
		listsAlloc:     listsAlloc,
		lists:          make([]*bucket, listsAlloc),
		pool:           newBucketPool(bucketPrimes),
	}
}

func ceilDiv(a, b uint64) uint64 {
	return (a + b - 1) / b
}

// add inserts a newly discovered sieving prime. primeValue is the actual
// prime (used only for the small-threshold comparison); nextByte/wheelIdx
// describe its first multiple, computed either by the seed sieve (absolute
// byte address of prime*prime/30) or by a caller re-deriving a later
// starting point.
func (s *primeSet) add(primeValue, nextByte uint64, wheelIdx uint32) {
	isSmall := primeValue < s.smallThreshold

	if nextByte < s.start {
		spec := &wheel210Spec
		if isSmall {
			spec = &wheel30Spec
		}
		nextByte, wheelIdx = fastForward(primeValue, s.start, spec)
	}

	primeAdj := primeValue / 30

	if isSmall {
		s.insertSmall(wheelIdx, primeRecord{primeAdj: primeAdj, nextByte: nextByte - s.start, wheelIdx: wheelIdx})
		return
	}

	if nextByte >= s.end {
		s.unused = s.prepend(s.unused, primeRecord{primeAdj: primeAdj, nextByte: nextByte, wheelIdx: wheelIdx})
		return
	}

	seg := (nextByte - s.start) / s.segmentBytes
	if seg < uint64(s.listsAlloc) {
		rel := (nextByte - s.start) % s.segmentBytes
		s.insertList(int(seg), primeRecord{primeAdj: primeAdj, nextByte: rel, wheelIdx: wheelIdx})
	} else {
		s.appendInactive(primeRecord{primeAdj: primeAdj, nextByte: nextByte, wheelIdx: wheelIdx})
	}
}

func (s *primeSet) prepend(head *bucket, rec primeRecord) *bucket {
	if head == nil || head.count == len(head.primes) {
		b := s.pool.get()
		b.next = head
		head = b
	}
	head.primes[head.count] = rec
	head.count++
	return head
}

func (s *primeSet) insertSmall(wheelIdx uint32, rec primeRecord) {
	s.small[wheelIdx] = s.prepend(s.small[wheelIdx], rec)
}

func (s *primeSet) listPhysicalIdx(k int) int {
	n := s.listsAlloc
	idx := (int(s.current%uint64(n)) + k) % n
	if idx < 0 {
		idx += n
	}
	return idx
}

func (s *primeSet) insertList(k int, rec primeRecord) {
	idx := s.listPhysicalIdx(k)
	s.lists[idx] = s.prepend(s.lists[idx], rec)
}

func (s *primeSet) appendInactive(rec primeRecord) {
	if s.inactiveTail == nil || s.inactiveTail.count == len(s.inactiveTail.primes) {
		b := s.pool.get()
		if s.inactiveTail != nil {
			s.inactiveTail.next = b
		} else {
			s.inactiveHead = b
		}
		s.inactiveTail = b
	}
	s.inactiveTail.primes[s.inactiveTail.count] = rec
	s.inactiveTail.count++
}

// popList0 detaches and returns the bucket chain for the current segment's
// large-prime list, leaving the (now logically shifted-out) slot empty for
// reuse by a future segment.
func (s *primeSet) popList0() *bucket {
	idx := s.listPhysicalIdx(0)
	head := s.lists[idx]
	s.lists[idx] = nil
	return head
}

// save re-inserts a large sieving prime after the segment sieve has marked
// it through the end of the current segment. rec.nextByte is relative to
// the *next* segment's start (the current segment's length has already
// been subtracted by the caller) and may be several segments' worth beyond
// SEGMENT_BYTES. Since save runs before advance() moves current forward,
// the target slot is one past rec.nextByte's own segment count.
func (s *primeSet) save(rec primeRecord) {
	seg := rec.nextByte/s.segmentBytes + 1
	rel := rec.nextByte % s.segmentBytes
	s.insertList(int(seg), primeRecord{primeAdj: rec.primeAdj, nextByte: rel, wheelIdx: rec.wheelIdx})
}

// advance moves the current segment forward by one and unloads any
// inactive primes that have become reachable.
func (s *primeSet) advance() {
	s.current++

	for s.inactiveHead != nil {
		b := s.inactiveHead
		i := 0
		for i < b.count {
			rec := b.primes[i]
			actSeg := (rec.nextByte - s.start) / s.segmentBytes
			if actSeg > s.current {
				break
			}
			relSeg := actSeg - s.current
			rel := (rec.nextByte - s.start) % s.segmentBytes
			s.insertList(int(relSeg), primeRecord{primeAdj: rec.primeAdj, nextByte: rel, wheelIdx: rec.wheelIdx})
			i++
		}

		if i == b.count {
			next := b.next
			s.pool.put(b)
			s.inactiveHead = next
			if s.inactiveHead == nil {
				s.inactiveTail = nil
			}
			continue
		}

		copy(b.primes[:b.count-i], b.primes[i:b.count])
		b.count -= i
		break
	}
}
