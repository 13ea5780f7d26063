package xorfuse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicN(t *testing.T) {
	var bld Builder
	testPopulateN := func(keys []uint64, bits int) (Filter, error) {
		return bld.PopulateN(keys, bits)
	}
	for _, bits := range []int{9, 13, 16, 21, 32} {
		t.Run(fmt.Sprintf("bits=%d", bits), func(t *testing.T) {
			_testBasicN(t, bits, testPopulateN)
		})
	}
}

func TestNBitsRange(t *testing.T) {
	ctr := uint64(3)
	keys := make([]uint64, 100)
	for i := range keys {
		keys[i] = splitmix64(&ctr)
	}
	for _, bits := range []int{0, 8, 33, -1} {
		_, err := PopulateN(keys, bits)
		require.ErrorIs(t, err, ErrFingerprintBits, "bits=%d", bits)
	}
	filter, err := PopulateN(keys, 9)
	require.NoError(t, err)
	assert.EqualValues(t, 0x1ff, filter.mask())
}

func BenchmarkPopulateN10000Builder(b *testing.B) {
	var bu Builder
	innerBenchmarkPopulate10000(b, func(keys []uint64) (Filter, error) {
		return bu.PopulateN(keys, 13)
	})
}
