package xorfuse

import (
	"math"
	"runtime/debug"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rng = uint64(time.Now().UnixNano())

// _testBasicN builds a filter over 10000 fresh keys, checks that every
// inserted key is reported present, and that the false-positive rate over a
// million non-member probes is in the neighborhood of 2^-bits.
func _testBasicN(t *testing.T, bits int, populatef func(keys []uint64, bits int) (Filter, error)) {
	testsize := 10000
	keys := make([]uint64, testsize)
	for i := range keys {
		keys[i] = splitmix64(&rng)
	}
	filter, err := populatef(keys, bits)
	require.NoError(t, err)
	for _, v := range keys {
		assert.Equal(t, true, filter.Contains(v))
	}

	falsesize := 1000000
	matches := 0
	for i := 0; i < falsesize; i++ {
		if filter.Contains(splitmix64(&rng)) {
			matches++
		}
	}
	expected := float64(falsesize) * math.Pow(2, -float64(bits))
	assert.LessOrEqual(t, float64(matches), 2.5*expected+10,
		"false-positive rate too far above 2^-%d", bits)
}

func TestBasic8(t *testing.T) {
	var bld Builder
	testPopulateN := func(keys []uint64, bits int) (Filter, error) {
		return bld.Populate(keys)
	}
	_testBasicN(t, 8, testPopulateN)
}

func TestOne(t *testing.T) {
	testsize := 1
	keys := make([]uint64, testsize)
	for i := range keys {
		keys[i] = 12043587783372603620 //splitmix64(&rng)
	}
	filter, err := Populate(keys)
	assert.NoError(t, err)
	for _, v := range keys {
		assert.Equal(t, true, filter.Contains(v))
	}
}

func TestZero(t *testing.T) {
	testsize := 0
	keys := make([]uint64, testsize)
	for i := range keys {
		keys[i] = splitmix64(&rng)
	}
	filter, err := Populate(keys)
	assert.NoError(t, err)
	for _, v := range keys {
		assert.Equal(t, true, filter.Contains(v))
	}
}

func TestManyOneBuilder(t *testing.T) {
	var g int
	var keys []uint64
	defer func() {
		x := recover()
		if x != nil {
			t.Logf("panic @%d with key %d %x : %v %s", g, keys[0], keys[0], x, debug.Stack())
			panic(x)
		}
	}()
	testsize := 1
	var b Builder
	for g = 0; g < 1000000; g++ {
		keys = make([]uint64, testsize)
		for i := range keys {
			keys[i] = splitmix64(&rng)
		}
		filter, err := b.Populate(keys)
		assert.NoError(t, err)
		for _, v := range keys {
			assert.Equal(t, true, filter.Contains(v))
		}
	}
}

// credit: el10savio
func Test_DuplicateKeys(t *testing.T) {
	keys := []uint64{1, 77, 31, 241, 303, 303}
	_, err := Populate(keys)
	require.ErrorIs(t, err, ErrTooManyIterations)
}

// Same seed, same keys, same order: bit-identical filters.
func TestDeterministic8(t *testing.T) {
	ctr := uint64(7)
	keys := make([]uint64, 5000)
	for i := range keys {
		keys[i] = splitmix64(&ctr)
	}
	f1, err := Populate(keys)
	require.NoError(t, err)
	f2, err := Populate(keys)
	require.NoError(t, err)
	assert.Equal(t, f1.Seed, f2.Seed)
	assert.Equal(t, f1.BlockLength, f2.BlockLength)
	assert.Equal(t, f1.Fingerprints, f2.Fingerprints)
}

// The 8-bit fingerprint rate should converge to about 1/256; over a million
// probes anything outside [1/512, 1/128] means the fingerprint correlates
// with the positions.
func TestFalsePositiveRate8(t *testing.T) {
	ctr := uint64(0xdecafbad)
	keys := make([]uint64, 10000)
	for i := range keys {
		keys[i] = splitmix64(&ctr)
	}
	filter, err := Populate(keys)
	require.NoError(t, err)

	falsesize := 1000000
	matches := 0
	for i := 0; i < falsesize; i++ {
		if filter.Contains(splitmix64(&ctr)) {
			matches++
		}
	}
	rate := float64(matches) / float64(falsesize)
	assert.Greater(t, rate, 1.0/512)
	assert.Less(t, rate, 1.0/128)
}

func BenchmarkPopulate10000(b *testing.B) {
	innerBenchmarkPopulate10000(b, func(keys []uint64) (Filter, error) {
		return Populate(keys)
	})
}

func BenchmarkPopulate10000Builder(b *testing.B) {
	var bu Builder
	innerBenchmarkPopulate10000(b, func(keys []uint64) (Filter, error) {
		return bu.Populate(keys)
	})
}

func innerBenchmarkPopulate10000(b *testing.B, populatef func([]uint64) (Filter, error)) {
	testsize := 10000
	keys := make([]uint64, testsize)

	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		for i := range keys {
			keys[i] = splitmix64(&rng)
		}
		b.StartTimer()
		populatef(keys)
	}
}

func BenchmarkContains10000(b *testing.B) {
	innerBenchmarkContains10000(b, func(keys []uint64) (Filter, error) {
		return Populate(keys)
	})
}

func innerBenchmarkContains10000(b *testing.B, populatef func([]uint64) (Filter, error)) {
	testsize := 10000
	keys := make([]uint64, testsize)
	for i := range keys {
		keys[i] = splitmix64(&rng)
	}
	filter, _ := populatef(keys)

	b.ReportAllocs()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		filter.Contains(keys[n%len(keys)])
	}
}
