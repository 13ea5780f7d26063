package xorfuse

import "math/bits"

// murmur64 is the murmur3 fmix64 finalizer: a multiply-xor-shift avalanche,
// so flipping any input bit flips about half the output bits.
// https://github.com/aappleby/smhasher/blob/master/src/MurmurHash3.cpp
func murmur64(h uint64) uint64 {
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return h
}

// mixsplit derives the per-key 64-bit hash for one construction seed.
// All positions and the fingerprint are slices of this one value.
func mixsplit(key, seed uint64) uint64 {
	return murmur64(key + seed)
}

// splitmix64 steps the seed sequence used for construction retries.
func splitmix64(seed *uint64) uint64 {
	*seed += 0x9E3779B97F4A7C15
	z := *seed
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

func rotl64(n uint64, c int) uint64 {
	return bits.RotateLeft64(n, c)
}

// reduce maps x uniformly onto [0, n) without a modulo.
// http://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
func reduce(x, n uint32) uint32 {
	return uint32((uint64(x) * uint64(n)) >> 32)
}

// fingerprint folds the hash onto itself so the result does not trivially
// correlate with the 32-bit slices the position derivations use.
func fingerprint(hash uint64) uint64 {
	return hash ^ (hash >> 32)
}
