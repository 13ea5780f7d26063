// Package xorfuse implements static approximate-membership filters: the xor
// filter (8, 16 and N-bit fingerprints) and the binary fuse filter.
//
// A filter is built once from a fixed set of 64-bit keys and is immutable
// afterwards. Contains never returns false for a key that was in the build
// set; for other keys it returns true with probability about 2^-b for b-bit
// fingerprints (1/256 for the 8-bit variants). Compared to a Bloom filter of
// the same false-positive rate, xor filters use less memory and touch exactly
// three table slots per query; binary fuse filters tighten the memory
// overhead further (about 1.125 bytes per key for BinaryFuse8) and keep the
// three slots within a small window for cache locality.
//
// Construction can fail: the underlying hypergraph peeling retries with fresh
// seeds up to a fixed bound and then reports ErrTooManyIterations. With
// distinct keys failure is vanishingly rare; duplicate keys make peeling
// impossible and always exhaust the bound. Deduplicate before building.
//
// A populated filter is safe for concurrent readers without locking.
package xorfuse
