package xorfuse

// XorN offers a configurable false-positive probability of about 2^-Bits.
type XorN struct {
	XorFilterCommon

	// Bits in 9..32
	Bits int

	// Fingerprints keep only the low Bits of each entry. Callers that
	// serialize an XorN should pack them accordingly; this package does not
	// pick a packed layout for it.
	Fingerprints []uint32
}

// PopulateN builds an XorN with bits-wide fingerprints, bits in 9..32.
// Use Populate for 8-bit and Populate16 for 16-bit fingerprints; those store
// their natural width.
func PopulateN(keys []uint64, bits int) (*XorN, error) {
	var bld Builder
	return bld.PopulateN(keys, bits)
}

// PopulateN builds an XorN, reusing the builder's scratch arrays.
func (bld *Builder) PopulateN(keys []uint64, bits int) (*XorN, error) {
	if bits < 9 || bits > 32 {
		return nil, ErrFingerprintBits
	}
	filter := new(XorN)
	filter.Bits = bits
	filter.allocate(len(keys))

	stack, err := bld.populateCommon(keys, &filter.XorFilterCommon)
	if err != nil {
		return nil, err
	}

	mask := filter.mask()
	stacksize := len(keys)
	for stacksize > 0 {
		stacksize--
		ki := stack[stacksize]
		val := uint32(fingerprint(ki.hash)) & mask
		if ki.index < filter.BlockLength {
			val ^= filter.Fingerprints[filter.geth1(ki.hash)+filter.BlockLength] ^ filter.Fingerprints[filter.geth2(ki.hash)+2*filter.BlockLength]
		} else if ki.index < 2*filter.BlockLength {
			val ^= filter.Fingerprints[filter.geth0(ki.hash)] ^ filter.Fingerprints[filter.geth2(ki.hash)+2*filter.BlockLength]
		} else {
			val ^= filter.Fingerprints[filter.geth0(ki.hash)] ^ filter.Fingerprints[filter.geth1(ki.hash)+filter.BlockLength]
		}
		filter.Fingerprints[ki.index] = val
	}
	return filter, nil
}

func (filter *XorN) mask() uint32 {
	return uint32(0x00000000ffffffff >> (32 - filter.Bits))
}

// Contains tells you whether the key is likely part of the set. A nil or
// freed filter contains nothing.
func (filter *XorN) Contains(key uint64) bool {
	if filter == nil || len(filter.Fingerprints) == 0 {
		return false
	}
	hash := mixsplit(key, filter.Seed)
	f := uint32(fingerprint(hash)) & filter.mask()
	h0 := filter.geth0(hash)
	h1 := filter.geth1(hash) + filter.BlockLength
	h2 := filter.geth2(hash) + 2*filter.BlockLength
	return f == (filter.Fingerprints[h0] ^ filter.Fingerprints[h1] ^ filter.Fingerprints[h2])
}

// SizeInBytes reports the in-memory footprint: header fields (Seed,
// BlockLength, Bits) plus the four bytes each slot occupies in memory,
// regardless of how few of its bits are meaningful.
func (filter *XorN) SizeInBytes() uint64 {
	if filter == nil {
		return 0
	}
	return 8 + 4 + 4 + 4*uint64(len(filter.Fingerprints))
}

// Free releases the fingerprint table. No-op on a nil handle.
func (filter *XorN) Free() {
	if filter == nil {
		return
	}
	filter.Fingerprints = nil
	filter.BlockLength = 0
	filter.Seed = 0
}

func (filter *XorN) allocate(size int) {
	capacity := xorCapacity(size)
	// slice capacity defaults to length
	filter.Fingerprints = make([]uint32, capacity)
	filter.BlockLength = capacity / 3
}
