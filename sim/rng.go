package sim

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

// StreamSet derives a fixed number of mutually independent sub-seeds from a
// single base seed. Each sub-seed drives exactly one distribution for the
// lifetime of one replication.
//
// Derivation is a counter-based hash of (baseSeed, streamIndex), so:
//   - the same base seed always yields the same sub-seeds,
//   - distinct base seeds yield unrelated sub-seed sets,
//   - re-deriving for the next replication shares no state with any other
//     replication.
type StreamSet struct {
	baseSeed int64
	seeds    []int64
}

// NewStreamSet derives exactly nStreams sub-seeds from baseSeed.
func NewStreamSet(baseSeed int64, nStreams int) (*StreamSet, error) {
	if nStreams <= 0 {
		return nil, fmt.Errorf("stream set requires at least one stream, got %d", nStreams)
	}
	s := &StreamSet{
		baseSeed: baseSeed,
		seeds:    make([]int64, nStreams),
	}
	for i := range s.seeds {
		s.seeds[i] = deriveSeed(baseSeed, i)
	}
	return s, nil
}

// Seed returns the sub-seed for stream i. Asking for a stream outside the
// derived set means a distribution was starved of a seed; that is a
// configuration bug and fails fast.
func (s *StreamSet) Seed(i int) int64 {
	if i < 0 || i >= len(s.seeds) {
		panic(fmt.Sprintf("stream index %d out of range [0, %d)", i, len(s.seeds)))
	}
	return s.seeds[i]
}

// Len returns the number of derived streams.
func (s *StreamSet) Len() int {
	return len(s.seeds)
}

// BaseSeed returns the seed the set was derived from.
func (s *StreamSet) BaseSeed() int64 {
	return s.baseSeed
}

// deriveSeed hashes (baseSeed, index) with FNV-1a to produce a sub-seed.
// Hash-based derivation keeps streams order-independent: stream i's seed does
// not depend on how many other streams exist or in which order they are read.
func deriveSeed(baseSeed int64, index int) int64 {
	h := fnv.New64a()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(baseSeed))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(index))
	h.Write(buf[:])
	return int64(h.Sum64())
}
