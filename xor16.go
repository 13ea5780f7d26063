package xorfuse

// Xor16 offers a false-positive probability < 20/1,000,000
type Xor16 struct {
	XorFilterCommon
	Fingerprints []uint16
}

const xor16HeaderBytes = 8 + 4

// Populate16 builds an Xor16 from the provided keys.
func Populate16(keys []uint64) (*Xor16, error) {
	var bld Builder
	return bld.Populate16(keys)
}

// Populate16 builds an Xor16, reusing the builder's scratch arrays.
func (bld *Builder) Populate16(keys []uint64) (*Xor16, error) {
	filter := new(Xor16)
	filter.allocate(len(keys))
	if err := bld.populateXor16(keys, filter); err != nil {
		return nil, err
	}
	return filter, nil
}

// AllocateXor16 sizes a filter for an expected key count without populating
// it. Returns nil when the count overflows the 32-bit table sizing.
func AllocateXor16(expected uint64) *Xor16 {
	if expected > maxXorKeys {
		return nil
	}
	filter := new(Xor16)
	filter.allocate(int(expected))
	return filter
}

// Populate fills an allocated filter in place. A nil handle reports
// ErrNilFilter.
func (filter *Xor16) Populate(keys []uint64) error {
	if filter == nil {
		return ErrNilFilter
	}
	if filter.Fingerprints == nil {
		filter.allocate(len(keys))
	}
	var bld Builder
	return bld.populateXor16(keys, filter)
}

// Contains tells you whether the key is likely part of the set. A nil or
// freed filter contains nothing.
func (filter *Xor16) Contains(key uint64) bool {
	if filter == nil || len(filter.Fingerprints) == 0 {
		return false
	}
	hash := mixsplit(key, filter.Seed)
	f := uint16(fingerprint(hash))
	h0 := filter.geth0(hash)
	h1 := filter.geth1(hash) + filter.BlockLength
	h2 := filter.geth2(hash) + 2*filter.BlockLength
	return f == (filter.Fingerprints[h0] ^ filter.Fingerprints[h1] ^ filter.Fingerprints[h2])
}

// SizeInBytes reports the exact in-memory footprint: the fixed header fields
// plus two bytes per slot. Zero for a nil handle.
func (filter *Xor16) SizeInBytes() uint64 {
	if filter == nil {
		return 0
	}
	return xor16HeaderBytes + 2*uint64(len(filter.Fingerprints))
}

// Free releases the fingerprint table. No-op on a nil handle.
func (filter *Xor16) Free() {
	if filter == nil {
		return
	}
	filter.Fingerprints = nil
	filter.BlockLength = 0
	filter.Seed = 0
}

func (filter *Xor16) allocate(size int) {
	capacity := xorCapacity(size)
	// slice capacity defaults to length
	filter.Fingerprints = make([]uint16, capacity)
	filter.BlockLength = capacity / 3
}

func (bld *Builder) populateXor16(keys []uint64, filter *Xor16) error {
	stack, err := bld.populateCommon(keys, &filter.XorFilterCommon)
	if err != nil {
		return err
	}

	stacksize := len(keys)
	for stacksize > 0 {
		stacksize--
		ki := stack[stacksize]
		val := uint16(fingerprint(ki.hash))
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
