package xorfuse

import (
	"math"
	"math/bits"
	"unsafe"
)

// Unsigned is the fingerprint storage width of a binary fuse filter.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32
}

// BinaryFuse is a binary fuse filter with 3-wise hashing and T-wide
// fingerprints. It needs roughly 1.125 slots per key, against the xor
// filter's 1.23, and a key's three slots all fall inside a window of three
// consecutive power-of-two segments, which keeps queries cache-friendly.
// https://arxiv.org/abs/2201.01174
type BinaryFuse[T Unsigned] struct {
	Seed               uint64
	SegmentLength      uint32
	SegmentLengthMask  uint32
	SegmentCount       uint32
	SegmentCountLength uint32

	Fingerprints []T
}

const binaryFuseArity = 3

// binaryFuseHeaderBytes is the fixed state beside the table: Seed plus the
// four segment layout fields.
const binaryFuseHeaderBytes = 8 + 4*4

// maxBinaryFuseKeys keeps capacity inside uint32 indexing, with headroom for
// the two trailing segments.
const maxBinaryFuseKeys = (1<<32-1)/9*8 - 3*262144

// NewBinaryFuse builds a binary fuse filter from the provided keys. Keys
// must be distinct; duplicates make construction fail with
// ErrTooManyIterations.
func NewBinaryFuse[T Unsigned](keys []uint64) (*BinaryFuse[T], error) {
	if uint64(len(keys)) > maxBinaryFuseKeys {
		return nil, ErrTooManyKeys
	}
	filter := new(BinaryFuse[T])
	filter.initializeParameters(uint32(len(keys)))
	var bld Builder
	if err := populateBinaryFuse(&bld, filter, keys); err != nil {
		return nil, err
	}
	return filter, nil
}

// AllocateBinaryFuse sizes a filter for an expected key count without
// populating it. Returns nil when the count overflows the sizing.
func AllocateBinaryFuse[T Unsigned](expected uint64) *BinaryFuse[T] {
	if expected > maxBinaryFuseKeys {
		return nil
	}
	filter := new(BinaryFuse[T])
	filter.initializeParameters(uint32(expected))
	return filter
}

// Populate fills an allocated filter in place. The filter must have been
// allocated for at least len(keys) keys; an undersized table shows up as
// construction failure. A nil handle reports ErrNilFilter.
func (filter *BinaryFuse[T]) Populate(keys []uint64) error {
	if filter == nil {
		return ErrNilFilter
	}
	if uint64(len(keys)) > maxBinaryFuseKeys {
		return ErrTooManyKeys
	}
	if filter.Fingerprints == nil {
		filter.initializeParameters(uint32(len(keys)))
	}
	var bld Builder
	return populateBinaryFuse(&bld, filter, keys)
}

// Contains tells you whether the key is likely part of the set. A nil or
// freed filter contains nothing.
func (filter *BinaryFuse[T]) Contains(key uint64) bool {
	if filter == nil || len(filter.Fingerprints) == 0 {
		return false
	}
	hash := mixsplit(key, filter.Seed)
	f := T(fingerprint(hash))
	h0, h1, h2 := filter.getHashFromHash(hash)
	f ^= filter.Fingerprints[h0] ^ filter.Fingerprints[h1] ^ filter.Fingerprints[h2]
	return f == 0
}

// SizeInBytes reports the exact in-memory footprint of the filter state: the
// fixed header fields plus the table. Zero for a nil handle.
func (filter *BinaryFuse[T]) SizeInBytes() uint64 {
	if filter == nil {
		return 0
	}
	var z T
	return binaryFuseHeaderBytes + uint64(len(filter.Fingerprints))*uint64(unsafe.Sizeof(z))
}

// Free releases the fingerprint table. The handle stays usable but inert:
// Contains reports false for every key. No-op on a nil handle.
func (filter *BinaryFuse[T]) Free() {
	if filter == nil {
		return
	}
	*filter = BinaryFuse[T]{}
}

func calculateSegmentLength(arity uint32, size uint32) uint32 {
	if size == 0 {
		// log(0) is not a segment length
		return 4
	}
	switch arity {
	case 3:
		return uint32(2) << int(math.Round(0.831*math.Log(float64(size))+0.75+0.5))
	case 4:
		return uint32(1) << int(math.Round(0.936*math.Log(float64(size))-1+0.5))
	default:
		return 65536
	}
}

func calculateSizeFactor(arity uint32, size uint32) float64 {
	switch arity {
	case 3:
		return math.Max(1.125, 0.4+9.3/math.Log(float64(size)))
	case 4:
		return math.Max(1.075, 0.77+4.06/math.Log(float64(size)))
	default:
		return 2.0
	}
}

// initializeParameters derives the segment layout for size keys and
// allocates the table: SegmentCount live segments plus arity-1 trailing ones
// so every segment window fits.
func (filter *BinaryFuse[T]) initializeParameters(size uint32) {
	arity := uint32(binaryFuseArity)
	filter.SegmentLength = calculateSegmentLength(arity, size)
	if filter.SegmentLength > 262144 {
		filter.SegmentLength = 262144
	}
	filter.SegmentLengthMask = filter.SegmentLength - 1

	capacity := uint32(0)
	if size > 1 {
		capacity = uint32(math.Round(float64(size) * calculateSizeFactor(arity, size)))
	}
	initSegmentCount := (capacity + filter.SegmentLength - 1) / filter.SegmentLength
	if initSegmentCount > arity-1 {
		initSegmentCount -= arity - 1
	} else {
		initSegmentCount = 1
	}
	arrayLength := (initSegmentCount + arity - 1) * filter.SegmentLength
	filter.SegmentCount = (arrayLength + filter.SegmentLength - 1) / filter.SegmentLength
	if filter.SegmentCount <= arity-1 {
		filter.SegmentCount = 1
	} else {
		filter.SegmentCount = filter.SegmentCount - (arity - 1)
	}
	arrayLength = (filter.SegmentCount + arity - 1) * filter.SegmentLength

	filter.SegmentCountLength = filter.SegmentCount * filter.SegmentLength
	filter.Fingerprints = make([]T, arrayLength)
}

// getHashFromHash picks the segment window by the high word of
// hash*SegmentCountLength, then places one position per segment, h1 and h2
// perturbed inside their segment by independent hash slices.
func (filter *BinaryFuse[T]) getHashFromHash(hash uint64) (uint32, uint32, uint32) {
	hi, _ := bits.Mul64(hash, uint64(filter.SegmentCountLength))
	h0 := uint32(hi)
	h1 := h0 + filter.SegmentLength
	h2 := h1 + filter.SegmentLength
	h1 ^= uint32(hash>>18) & filter.SegmentLengthMask
	h2 ^= uint32(hash) & filter.SegmentLengthMask
	return h0, h1, h2
}

func populateBinaryFuse[T Unsigned](bld *Builder, filter *BinaryFuse[T], keys []uint64) error {
	size := uint32(len(keys))
	capacity := uint32(len(filter.Fingerprints))
	sets, alone, hashes, revOrder, revH := bld.binaryFuseScratch(capacity, len(keys))

	rngcounter := uint64(1)
	filter.Seed = splitmix64(&rngcounter)

	blockBits := 1
	for (1 << blockBits) < int(filter.SegmentCount) {
		blockBits++
	}
	startPos := make([]int, 1<<blockBits)

	for iterations := 1; ; iterations++ {
		if iterations > MaxIterations {
			return ErrTooManyIterations
		}

		// Bucket keys by hash prefix so the counting pass walks the table
		// roughly front to back instead of at random.
		for i := range startPos {
			startPos[i] = 0
		}
		for i, key := range keys {
			hash := mixsplit(key, filter.Seed)
			hashes[i] = hash
			startPos[hash>>(64-blockBits)]++
		}
		for i := 1; i < len(startPos); i++ {
			startPos[i] += startPos[i-1]
		}
		for _, hash := range hashes {
			idx := hash >> (64 - blockBits)
			startPos[idx]--
			revOrder[startPos[idx]] = hash
		}

		for i := uint32(0); i < size; i++ {
			hash := revOrder[i]
			h0, h1, h2 := filter.getHashFromHash(hash)
			for _, h := range [binaryFuseArity]uint32{h0, h1, h2} {
				sets[h].xormask ^= hash
				sets[h].count++
			}
		}

		qsize := 0
		for i := uint32(0); i < capacity; i++ {
			if sets[i].count == 1 {
				alone[qsize] = i
				qsize++
			}
		}

		// Peel, reusing revOrder for the resolution order and revH for
		// which of the three slots resolved each key.
		stacksize := uint32(0)
		for qsize > 0 {
			qsize--
			index := alone[qsize]
			if sets[index].count != 1 {
				continue
			}
			hash := sets[index].xormask
			h0, h1, h2 := filter.getHashFromHash(hash)
			revOrder[stacksize] = hash
			switch index {
			case h0:
				revH[stacksize] = 0
			case h1:
				revH[stacksize] = 1
			default:
				revH[stacksize] = 2
			}
			stacksize++
			for _, h := range [binaryFuseArity]uint32{h0, h1, h2} {
				sets[h].xormask ^= hash
				sets[h].count--
				if sets[h].count == 1 {
					alone[qsize] = h
					qsize++
				}
			}
		}

		if stacksize == size {
			break
		}

		// Stuck residual subgraph. Rebuild from scratch with a fresh seed.
		for i := range sets {
			sets[i] = xorset{}
		}
		filter.Seed = splitmix64(&rngcounter)
	}

	for i := range filter.Fingerprints {
		filter.Fingerprints[i] = 0
	}
	for i := int(size) - 1; i >= 0; i-- {
		hash := revOrder[i]
		fp := T(fingerprint(hash))
		h0, h1, h2 := filter.getHashFromHash(hash)
		switch revH[i] {
		case 0:
			filter.Fingerprints[h0] = fp ^ filter.Fingerprints[h1] ^ filter.Fingerprints[h2]
		case 1:
			filter.Fingerprints[h1] = fp ^ filter.Fingerprints[h0] ^ filter.Fingerprints[h2]
		default:
			filter.Fingerprints[h2] = fp ^ filter.Fingerprints[h0] ^ filter.Fingerprints[h1]
		}
	}
	return nil
}
