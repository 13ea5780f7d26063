package xorfuse

import "github.com/cespare/xxhash/v2"

// KeyFromBytes maps arbitrary bytes onto the 64-bit key universe the filters
// consume.
func KeyFromBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// KeyFromString is KeyFromBytes for strings, without copying to a []byte.
func KeyFromString(s string) uint64 {
	return xxhash.Sum64String(s)
}

// KeysFromStrings hashes every string in ss. Duplicate inputs (and 64-bit
// hash collisions) produce duplicate keys, which construction rejects.
func KeysFromStrings(ss []string) []uint64 {
	keys := make([]uint64, len(ss))
	for i, s := range ss {
		keys[i] = xxhash.Sum64String(s)
	}
	return keys
}
