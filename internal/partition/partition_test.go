package partition

import (
	"sort"
	"testing"
)

func blockElems(p *Partition, x int, n int) []int {
	rep := p.Representative(x)
	var out []int
	for y := 0; y < n; y++ {
		if p.Representative(y) == rep {
			out = append(out, y)
		}
	}
	return out
}

func TestInitialSingleBlock(t *testing.T) {
	p := New(5)
	if p.NumBlocks() != 1 {
		t.Fatalf("NumBlocks() = %d, want 1", p.NumBlocks())
	}
	for x := 1; x < 5; x++ {
		if !p.SameBlock(0, x) {
			t.Errorf("0 and %d not in same block", x)
		}
	}
	if _, ok := p.PollUnprocessed(); ok {
		t.Error("fresh partition has pending work")
	}
}

func TestRefineSplits(t *testing.T) {
	p := New(6)
	p.Refine([]int{1, 3, 5})

	if p.NumBlocks() != 2 {
		t.Fatalf("NumBlocks() = %d, want 2", p.NumBlocks())
	}
	odd := blockElems(p, 1, 6)
	even := blockElems(p, 0, 6)
	sort.Ints(odd)
	sort.Ints(even)
	if !equalInts(odd, []int{1, 3, 5}) || !equalInts(even, []int{0, 2, 4}) {
		t.Errorf("blocks = %v / %v", even, odd)
	}

	// One split pushes exactly one (smaller) block.
	if _, ok := p.PollUnprocessed(); !ok {
		t.Fatal("no pending block after split")
	}
	if _, ok := p.PollUnprocessed(); ok {
		t.Error("more than one pending block after single split")
	}
}

func TestRefineWholeBlockNoSplit(t *testing.T) {
	p := New(4)
	p.Refine([]int{0, 1, 2, 3})
	if p.NumBlocks() != 1 {
		t.Errorf("NumBlocks() = %d, want 1 after trivial refine", p.NumBlocks())
	}
	if _, ok := p.PollUnprocessed(); ok {
		t.Error("trivial refine queued work")
	}
}

func TestRefineQueuedBlockQueuesBothHalves(t *testing.T) {
	p := New(8)
	p.Refine([]int{0, 1, 2}) // queues the smaller half {0,1,2}
	p.Refine([]int{0, 1})    // splits a queued block: both halves stay queued

	if p.NumBlocks() != 3 {
		t.Fatalf("NumBlocks() = %d, want 3", p.NumBlocks())
	}
	polled := 0
	for {
		if _, ok := p.PollUnprocessed(); !ok {
			break
		}
		polled++
	}
	if polled != 2 {
		t.Errorf("polled %d blocks, want 2", polled)
	}
}

func TestRepresentativeCanonical(t *testing.T) {
	p := New(10)
	p.Refine([]int{2, 4, 6})
	p.Refine([]int{4})

	for x := 0; x < 10; x++ {
		rep := p.Representative(x)
		if !p.SameBlock(x, rep) {
			t.Errorf("Representative(%d) = %d not in same block", x, rep)
		}
		if p.Representative(rep) != rep {
			t.Errorf("representative of %d not idempotent", x)
		}
	}
}

func TestPollCopiesElements(t *testing.T) {
	p := New(6)
	p.Refine([]int{0, 1})
	elems, ok := p.PollUnprocessed()
	if !ok {
		t.Fatal("no pending block")
	}
	// Mutating the returned slice must not corrupt the partition.
	for i := range elems {
		elems[i] = -1
	}
	sort.Ints(elems)
	got := blockElems(p, 0, 6)
	sort.Ints(got)
	if !equalInts(got, []int{0, 1}) {
		t.Errorf("partition corrupted by mutating polled slice: %v", got)
	}
}

func TestRefinementSequence(t *testing.T) {
	// Partition {0..7} by parity, then by value < 4; expect the four
	// quadrant blocks.
	p := New(8)
	p.Refine([]int{1, 3, 5, 7})
	p.Refine([]int{0, 1, 2, 3})

	if p.NumBlocks() != 4 {
		t.Fatalf("NumBlocks() = %d, want 4", p.NumBlocks())
	}
	wantGroups := [][]int{{0, 2}, {1, 3}, {4, 6}, {5, 7}}
	for _, grp := range wantGroups {
		for _, x := range grp[1:] {
			if !p.SameBlock(grp[0], x) {
				t.Errorf("%d and %d should share a block", grp[0], x)
			}
		}
	}
	for _, pair := range [][2]int{{0, 1}, {0, 4}, {1, 5}, {4, 5}} {
		if p.SameBlock(pair[0], pair[1]) {
			t.Errorf("%d and %d should be separated", pair[0], pair[1])
		}
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
