package sim

import "testing"

func TestStreamSet_SameSeedSameStreams(t *testing.T) {
	a, err := NewStreamSet(42, 4)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewStreamSet(42, 4)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		if a.Seed(i) != b.Seed(i) {
			t.Errorf("stream %d differs: %d vs %d", i, a.Seed(i), b.Seed(i))
		}
	}
}

func TestStreamSet_DistinctSeedsDistinctStreams(t *testing.T) {
	a, _ := NewStreamSet(0, 4)
	b, _ := NewStreamSet(1, 4)
	same := 0
	for i := 0; i < 4; i++ {
		if a.Seed(i) == b.Seed(i) {
			same++
		}
	}
	if same > 0 {
		t.Errorf("%d of 4 streams collide across distinct base seeds", same)
	}
}

func TestStreamSet_StreamsWithinSetDiffer(t *testing.T) {
	s, _ := NewStreamSet(7, 4)
	seen := map[int64]int{}
	for i := 0; i < 4; i++ {
		seen[s.Seed(i)]++
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct sub-seeds, got %d", len(seen))
	}
}

func TestStreamSet_RejectsNonPositiveCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := NewStreamSet(42, n); err == nil {
			t.Errorf("NewStreamSet(42, %d) should fail", n)
		}
	}
}

func TestStreamSet_OutOfRangeIndexPanics(t *testing.T) {
	s, _ := NewStreamSet(42, 2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic on out-of-range stream index")
		}
	}()
	s.Seed(2)
}
