package xorfuse

import "io"

// BinaryFuse8 stores 8-bit fingerprints for a <0.4% false-positive
// probability, at about 9 bits per key.
type BinaryFuse8 BinaryFuse[uint8]

// BinaryFuse16 stores 16-bit fingerprints for a ~0.0015% false-positive
// probability.
type BinaryFuse16 BinaryFuse[uint16]

// PopulateBinaryFuse8 builds a BinaryFuse8 from the provided keys. Keys must
// be distinct; duplicates make construction fail with ErrTooManyIterations.
func PopulateBinaryFuse8(keys []uint64) (*BinaryFuse8, error) {
	filter, err := NewBinaryFuse[uint8](keys)
	if err != nil {
		return nil, err
	}
	return (*BinaryFuse8)(filter), nil
}

// AllocateBinaryFuse8 sizes a filter for an expected key count without
// populating it. Returns nil when the count overflows the sizing.
func AllocateBinaryFuse8(expected uint64) *BinaryFuse8 {
	return (*BinaryFuse8)(AllocateBinaryFuse[uint8](expected))
}

// Populate fills an allocated filter in place.
func (filter *BinaryFuse8) Populate(keys []uint64) error {
	return (*BinaryFuse[uint8])(filter).Populate(keys)
}

// Contains tells you whether the key is likely part of the set.
func (filter *BinaryFuse8) Contains(key uint64) bool {
	return (*BinaryFuse[uint8])(filter).Contains(key)
}

// SizeInBytes reports the exact in-memory footprint of the filter state.
func (filter *BinaryFuse8) SizeInBytes() uint64 {
	return (*BinaryFuse[uint8])(filter).SizeInBytes()
}

// Free releases the fingerprint table. No-op on a nil handle.
func (filter *BinaryFuse8) Free() {
	(*BinaryFuse[uint8])(filter).Free()
}

// Save writes the filter to w in little-endian format.
func (filter *BinaryFuse8) Save(w io.Writer) error {
	return (*BinaryFuse[uint8])(filter).Save(w)
}

// LoadBinaryFuse8 reads a filter saved by Save.
func LoadBinaryFuse8(r io.Reader) (*BinaryFuse8, error) {
	filter, err := LoadBinaryFuse[uint8](r)
	if err != nil {
		return nil, err
	}
	return (*BinaryFuse8)(filter), nil
}

// PopulateBinaryFuse16 builds a BinaryFuse16 from the provided keys.
func PopulateBinaryFuse16(keys []uint64) (*BinaryFuse16, error) {
	filter, err := NewBinaryFuse[uint16](keys)
	if err != nil {
		return nil, err
	}
	return (*BinaryFuse16)(filter), nil
}

// AllocateBinaryFuse16 sizes a filter for an expected key count without
// populating it. Returns nil when the count overflows the sizing.
func AllocateBinaryFuse16(expected uint64) *BinaryFuse16 {
	return (*BinaryFuse16)(AllocateBinaryFuse[uint16](expected))
}

// Populate fills an allocated filter in place.
func (filter *BinaryFuse16) Populate(keys []uint64) error {
	return (*BinaryFuse[uint16])(filter).Populate(keys)
}

// Contains tells you whether the key is likely part of the set.
func (filter *BinaryFuse16) Contains(key uint64) bool {
	return (*BinaryFuse[uint16])(filter).Contains(key)
}

// SizeInBytes reports the exact in-memory footprint of the filter state.
func (filter *BinaryFuse16) SizeInBytes() uint64 {
	return (*BinaryFuse[uint16])(filter).SizeInBytes()
}

// Free releases the fingerprint table. No-op on a nil handle.
func (filter *BinaryFuse16) Free() {
	(*BinaryFuse[uint16])(filter).Free()
}

// Save writes the filter to w in little-endian format.
func (filter *BinaryFuse16) Save(w io.Writer) error {
	return (*BinaryFuse[uint16])(filter).Save(w)
}

// LoadBinaryFuse16 reads a filter saved by Save.
func LoadBinaryFuse16(r io.Reader) (*BinaryFuse16, error) {
	filter, err := LoadBinaryFuse[uint16](r)
	if err != nil {
		return nil, err
	}
	return (*BinaryFuse16)(filter), nil
}
