package xorfuse

// Builder amortizes construction scratch across populates. The zero value is
// ready to use; the package-level Populate functions create a throwaway one.
// A Builder is not safe for concurrent use, but the filters it produces are.
type Builder struct {
	sets  []xorset
	queue []keyindex
	stack []keyindex

	// binary fuse scratch
	alone    []uint32
	hashes   []uint64
	revOrder []uint64
	revH     []uint8
}

func (bld *Builder) xorScratch(capacity uint32, size int) (sets []xorset, queue []keyindex, stack []keyindex) {
	if uint32(cap(bld.sets)) < capacity {
		bld.sets = make([]xorset, capacity)
	}
	sets = bld.sets[:capacity]
	for i := range sets {
		sets[i] = xorset{}
	}
	if uint32(cap(bld.queue)) < capacity {
		bld.queue = make([]keyindex, capacity)
	}
	queue = bld.queue[:capacity]
	if cap(bld.stack) < size {
		bld.stack = make([]keyindex, size)
	}
	stack = bld.stack[:size]
	return sets, queue, stack
}

func (bld *Builder) binaryFuseScratch(capacity uint32, size int) (sets []xorset, alone []uint32, hashes, revOrder []uint64, revH []uint8) {
	if uint32(cap(bld.sets)) < capacity {
		bld.sets = make([]xorset, capacity)
	}
	sets = bld.sets[:capacity]
	for i := range sets {
		sets[i] = xorset{}
	}
	if uint32(cap(bld.alone)) < capacity {
		bld.alone = make([]uint32, capacity)
	}
	alone = bld.alone[:capacity]
	if cap(bld.hashes) < size {
		bld.hashes = make([]uint64, size)
		bld.revOrder = make([]uint64, size)
		bld.revH = make([]uint8, size)
	}
	return sets, alone, bld.hashes[:size], bld.revOrder[:size], bld.revH[:size]
}

// populateCommon runs the peeling solver for the three-block xor layout.
//
// Each key is a hyperedge over the three slots makeKeyHashes assigns it. The
// solver repeatedly finds a slot of degree 1, records (key hash, slot) on the
// resolution stack, and removes the key from its other two slots. If every
// key is peeled it returns the stack, resolved last-to-first; the caller's
// assignment pass walks it in reverse. If peeling stalls (a cyclic or
// over-dense residue), it retries with the next seed, up to MaxIterations.
//
// filter must already be sized: BlockLength set and the table allocated. On
// success filter.Seed is the seed the stack was produced under.
func (bld *Builder) populateCommon(keys []uint64, filter *XorFilterCommon) ([]keyindex, error) {
	size := len(keys)
	capacity := 3 * filter.BlockLength
	sets, queue, stack := bld.xorScratch(capacity, size)

	rngcounter := uint64(1)
	filter.Seed = splitmix64(&rngcounter)

	for iterations := 1; ; iterations++ {
		if iterations > MaxIterations {
			return nil, ErrTooManyIterations
		}

		for _, key := range keys {
			hs := filter.makeKeyHashes(key)
			sets[hs.h0].xormask ^= hs.h
			sets[hs.h0].count++
			sets[hs.h1].xormask ^= hs.h
			sets[hs.h1].count++
			sets[hs.h2].xormask ^= hs.h
			sets[hs.h2].count++
		}

		// Seed the queue with every degree-1 slot.
		qsize := 0
		for i := uint32(0); i < capacity; i++ {
			if sets[i].count == 1 {
				queue[qsize] = keyindex{hash: sets[i].xormask, index: i}
				qsize++
			}
		}

		stacksize := 0
		for qsize > 0 {
			qsize--
			ki := queue[qsize]
			if sets[ki.index].count == 0 {
				// Resolved through one of its other slots since being queued.
				continue
			}
			stack[stacksize] = ki
			stacksize++

			hash := ki.hash
			h0 := filter.geth0(hash)
			h1 := filter.geth1(hash) + filter.BlockLength
			h2 := filter.geth2(hash) + 2*filter.BlockLength
			for _, h := range [3]uint32{h0, h1, h2} {
				sets[h].xormask ^= hash
				sets[h].count--
				if sets[h].count == 1 {
					queue[qsize] = keyindex{hash: sets[h].xormask, index: h}
					qsize++
				}
			}
		}

		if stacksize == size {
			return stack, nil
		}

		// Stuck residual subgraph. Rebuild from scratch with a fresh seed.
		for i := range sets {
			sets[i] = xorset{}
		}
		filter.Seed = splitmix64(&rngcounter)
	}
}
