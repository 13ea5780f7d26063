package xorfuse

import (
	"encoding/binary"
	"io"
)

// The wire format is a compatibility boundary: little-endian header fields
// in declaration order, a uint32 slot count, then the raw fingerprint table.
// It matches the SizeInBytes accounting plus the 4-byte count.

// Save writes the filter to w in little-endian format.
func (filter *BinaryFuse[T]) Save(w io.Writer) error {
	if filter == nil {
		return ErrNilFilter
	}
	hdr := []any{
		filter.Seed,
		filter.SegmentLength,
		filter.SegmentLengthMask,
		filter.SegmentCount,
		filter.SegmentCountLength,
		uint32(len(filter.Fingerprints)),
	}
	for _, v := range hdr {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, filter.Fingerprints)
}

// LoadBinaryFuse reads a filter saved by Save.
func LoadBinaryFuse[T Unsigned](r io.Reader) (*BinaryFuse[T], error) {
	filter := new(BinaryFuse[T])
	var count uint32
	hdr := []any{
		&filter.Seed,
		&filter.SegmentLength,
		&filter.SegmentLengthMask,
		&filter.SegmentCount,
		&filter.SegmentCountLength,
		&count,
	}
	for _, v := range hdr {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	filter.Fingerprints = make([]T, count)
	if err := binary.Read(r, binary.LittleEndian, filter.Fingerprints); err != nil {
		return nil, err
	}
	return filter, nil
}

// Save writes the filter to w in little-endian format.
func (filter *Xor8) Save(w io.Writer) error {
	if filter == nil {
		return ErrNilFilter
	}
	if err := binary.Write(w, binary.LittleEndian, filter.Seed); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, filter.BlockLength); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(filter.Fingerprints))); err != nil {
		return err
	}
	_, err := w.Write(filter.Fingerprints)
	return err
}

// LoadXor8 reads a filter saved by Save.
func LoadXor8(r io.Reader) (*Xor8, error) {
	filter := new(Xor8)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &filter.Seed); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &filter.BlockLength); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	filter.Fingerprints = make([]uint8, count)
	if _, err := io.ReadFull(r, filter.Fingerprints); err != nil {
		return nil, err
	}
	return filter, nil
}

// Save writes the filter to w in little-endian format.
func (filter *Xor16) Save(w io.Writer) error {
	if filter == nil {
		return ErrNilFilter
	}
	if err := binary.Write(w, binary.LittleEndian, filter.Seed); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, filter.BlockLength); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(filter.Fingerprints))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, filter.Fingerprints)
}

// LoadXor16 reads a filter saved by Save.
func LoadXor16(r io.Reader) (*Xor16, error) {
	filter := new(Xor16)
	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &filter.Seed); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &filter.BlockLength); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	filter.Fingerprints = make([]uint16, count)
	if err := binary.Read(r, binary.LittleEndian, filter.Fingerprints); err != nil {
		return nil, err
	}
	return filter, nil
}
