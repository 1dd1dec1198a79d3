package sieve

// piUnder30[n] is the number of primes <= n, for n in [0, 29]. The
// segmented engine cannot represent any of these directly (2, 3, 5 are
// wheel-skipped; 7 and the configured presieve primes are marked
// composite by the pre-sieve itself), so ranges that never reach a full
// mod-30 byte are answered from this table instead.
var piUnder30 = [30]uint32{
	0, 0, 1, 2, 2, 3, 3, 4, 4, 4,
	4, 5, 5, 6, 6, 6, 6, 7, 7, 8,
	8, 8, 8, 9, 9, 9, 9, 9, 9, 10,
}
