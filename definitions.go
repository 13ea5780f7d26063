package xorfuse

import (
	"errors"
	"math"
)

// MaxIterations bounds the seed-retry loop during construction. The bound is
// what guarantees Populate terminates; exhausting it is terminal, never
// retried internally.
const MaxIterations = 100

var (
	// ErrTooManyIterations is returned when peeling failed for every seed.
	// With random seeds and distinct keys this is vanishingly rare; in
	// practice it means the key set contains duplicates.
	ErrTooManyIterations = errors.New("too many iterations, you probably have duplicate keys")

	// ErrTooManyKeys is returned when the requested key count overflows the
	// 32-bit table sizing.
	ErrTooManyKeys = errors.New("key count overflows filter sizing")

	// ErrNilFilter is returned by Populate on a nil handle.
	ErrNilFilter = errors.New("nil filter handle")

	// ErrFingerprintBits is returned by PopulateN for widths outside 9..32.
	ErrFingerprintBits = errors.New("fingerprint bits must be in 9..32")
)

// Filter is the read side shared by every variant.
type Filter interface {
	Contains(key uint64) bool
}

// XorFilterCommon holds the fields shared by the fixed-width and N-bit xor
// filters. The table is three contiguous blocks of BlockLength slots; a key's
// three positions land in one block each, so they are pairwise distinct by
// construction.
type XorFilterCommon struct {
	Seed        uint64
	BlockLength uint32
}

// xorset is one slot of the construction arena: the XOR of the hashes of all
// incident keys and their count. When count drops to 1, xormask is exactly
// the hash of the sole remaining key.
type xorset struct {
	xormask uint64
	count   uint32
}

type hashes struct {
	h  uint64
	h0 uint32
	h1 uint32
	h2 uint32
}

// keyindex records a peeled key (by hash) and the slot that resolved it.
type keyindex struct {
	hash  uint64
	index uint32
}

func (filter *XorFilterCommon) geth0(hash uint64) uint32 {
	return reduce(uint32(hash), filter.BlockLength)
}

func (filter *XorFilterCommon) geth1(hash uint64) uint32 {
	return reduce(uint32(rotl64(hash, 21)), filter.BlockLength)
}

func (filter *XorFilterCommon) geth2(hash uint64) uint32 {
	return reduce(uint32(rotl64(hash, 42)), filter.BlockLength)
}

func (filter *XorFilterCommon) makeKeyHashes(k uint64) hashes {
	hash := mixsplit(k, filter.Seed)
	return hashes{
		h:  hash,
		h0: filter.geth0(hash),
		h1: filter.geth1(hash) + filter.BlockLength,
		h2: filter.geth2(hash) + 2*filter.BlockLength,
	}
}

// xorCapacity is the xor table sizing: ceil(1.23*size) plus slack, rounded
// down to a multiple of 3 so the three blocks are equal.
func xorCapacity(size int) uint32 {
	capacity := 32 + uint32(math.Ceil(1.23*float64(size)))
	return capacity / 3 * 3
}

// maxXorKeys is the largest key count whose xor table still fits in uint32
// indexing.
const maxXorKeys = (1<<32 - 33) * 100 / 123
