package xorfuse

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serializeTestKeys(n int) []uint64 {
	ctr := uint64(0xfeed)
	keys := make([]uint64, n)
	for i := range keys {
		keys[i] = splitmix64(&ctr)
	}
	return keys
}

func TestSaveLoadXor8(t *testing.T) {
	keys := serializeTestKeys(1000)
	filter, err := Populate(keys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, filter.Save(&buf))
	// header + table + the 4-byte slot count
	assert.EqualValues(t, filter.SizeInBytes()+4, buf.Len())

	loaded, err := LoadXor8(&buf)
	require.NoError(t, err)
	assert.Equal(t, filter.Seed, loaded.Seed)
	assert.Equal(t, filter.BlockLength, loaded.BlockLength)
	assert.Equal(t, filter.Fingerprints, loaded.Fingerprints)
	for _, v := range keys {
		assert.Equal(t, true, loaded.Contains(v))
	}
}

func TestSaveLoadXor16(t *testing.T) {
	keys := serializeTestKeys(1000)
	filter, err := Populate16(keys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, filter.Save(&buf))
	assert.EqualValues(t, filter.SizeInBytes()+4, buf.Len())

	loaded, err := LoadXor16(&buf)
	require.NoError(t, err)
	assert.Equal(t, filter.Fingerprints, loaded.Fingerprints)
	for _, v := range keys {
		assert.Equal(t, true, loaded.Contains(v))
	}
}

func TestSaveLoadBinaryFuse8(t *testing.T) {
	keys := serializeTestKeys(1000)
	filter, err := PopulateBinaryFuse8(keys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, filter.Save(&buf))
	assert.EqualValues(t, filter.SizeInBytes()+4, buf.Len())

	loaded, err := LoadBinaryFuse8(&buf)
	require.NoError(t, err)
	assert.Equal(t, (*BinaryFuse[uint8])(filter), (*BinaryFuse[uint8])(loaded))
	for _, v := range keys {
		assert.Equal(t, true, loaded.Contains(v))
	}
}

func TestLoadTruncated(t *testing.T) {
	keys := serializeTestKeys(100)
	filter, err := PopulateBinaryFuse8(keys)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, filter.Save(&buf))
	short := buf.Bytes()[:buf.Len()/2]
	_, err = LoadBinaryFuse8(bytes.NewReader(short))
	assert.Error(t, err)

	_, err = LoadXor8(bytes.NewReader(nil))
	assert.Error(t, err)
}
