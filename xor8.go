package xorfuse

// Xor8 offers a 0.3% false-positive probability.
type Xor8 struct {
	XorFilterCommon
	Fingerprints []uint8
}

// xor8HeaderBytes is the fixed per-filter state beside the table: Seed and
// BlockLength. SizeInBytes and the Save format both account it this way.
const xor8HeaderBytes = 8 + 4

// Populate builds an Xor8 from the provided keys. Keys must be distinct;
// duplicates make construction fail with ErrTooManyIterations.
func Populate(keys []uint64) (*Xor8, error) {
	var bld Builder
	return bld.Populate(keys)
}

// Populate builds an Xor8, reusing the builder's scratch arrays.
func (bld *Builder) Populate(keys []uint64) (*Xor8, error) {
	filter := new(Xor8)
	filter.allocate(len(keys))
	if err := bld.populateXor8(keys, filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// AllocateXor8 sizes a filter for an expected key count without populating
// it, for callers that split allocation from population. Returns nil when the
// count overflows the 32-bit table sizing.
func AllocateXor8(expected uint64) *Xor8 {
	if expected > maxXorKeys {
		return nil
	}
	filter := new(Xor8)
	filter.allocate(int(expected))
	return filter
}

// Populate fills an allocated filter in place. The filter must have been
// allocated for at least len(keys) keys; an undersized table shows up as
// construction failure. A nil handle reports ErrNilFilter.
func (filter *Xor8) Populate(keys []uint64) error {
	if filter == nil {
		return ErrNilFilter
	}
	if filter.Fingerprints == nil {
		filter.allocate(len(keys))
	}
	var bld Builder
	return bld.populateXor8(keys, filter)
}

// Contains tells you whether the key is likely part of the set. A nil or
// freed filter contains nothing.
func (filter *Xor8) Contains(key uint64) bool {
	if filter == nil || len(filter.Fingerprints) == 0 {
		return false
	}
	hash := mixsplit(key, filter.Seed)
	f := uint8(fingerprint(hash))
	h0 := filter.geth0(hash)
	h1 := filter.geth1(hash) + filter.BlockLength
	h2 := filter.geth2(hash) + 2*filter.BlockLength
	return f == (filter.Fingerprints[h0] ^ filter.Fingerprints[h1] ^ filter.Fingerprints[h2])
}

// SizeInBytes reports the exact in-memory footprint of the filter state:
// the fixed header fields plus one byte per slot. Zero for a nil handle.
func (filter *Xor8) SizeInBytes() uint64 {
	if filter == nil {
		return 0
	}
	return xor8HeaderBytes + uint64(len(filter.Fingerprints))
}

// Free releases the fingerprint table. The handle stays usable but inert:
// Contains reports false for every key. No-op on a nil handle.
func (filter *Xor8) Free() {
	if filter == nil {
		return
	}
	filter.Fingerprints = nil
	filter.BlockLength = 0
	filter.Seed = 0
}

func (filter *Xor8) allocate(size int) {
	capacity := xorCapacity(size)
	// slice capacity defaults to length
	filter.Fingerprints = make([]uint8, capacity)
	filter.BlockLength = capacity / 3
}

func (bld *Builder) populateXor8(keys []uint64, filter *Xor8) error {
	stack, err := bld.populateCommon(keys, &filter.XorFilterCommon)
	if err != nil {
		return err
	}

	stacksize := len(keys)
	for stacksize > 0 {
		stacksize--
		ki := stack[stacksize]
		val := uint8(fingerprint(ki.hash))
		if ki.index < filter.BlockLength {
			val ^= filter.Fingerprints[filter.geth1(ki.hash)+filter.BlockLength] ^ filter.Fingerprints[filter.geth2(ki.hash)+2*filter.BlockLength]
		} else if ki.index < 2*filter.BlockLength {
			val ^= filter.Fingerprints[filter.geth0(ki.hash)] ^ filter.Fingerprints[filter.geth2(ki.hash)+2*filter.BlockLength]
		} else {
			val ^= filter.Fingerprints[filter.geth0(ki.hash)] ^ filter.Fingerprints[filter.geth1(ki.hash)+filter.BlockLength]
		}
		filter.Fingerprints[ki.index] = val
	}
	return nil
}
