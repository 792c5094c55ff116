// Package partition implements a refinement partition of {0..n-1} with a
// worklist, the core data structure of Hopcroft's DFA minimisation.
//
// The partition starts as a single block containing every element. Refine
// splits blocks against an arbitrary set in time linear in that set, and the
// worklist tracks blocks that still need processing, always preferring the
// smaller half of a split.
package partition

// A block is a contiguous range [start, end) of the element permutation.
//
// Splitting carves the sibling off the tail of the range, so both halves
// remain contiguous. An emptied block is kept as a zero-width dead range so
// block indices stay stable; dead blocks own no elements and are skipped
// when stale worklist entries are popped.
type block struct {
	start, end int
	inWorklist bool
	sibling    int // block carved off during the current Refine, or -1
	fresh      bool
	dead       bool
}

// Partition maintains a partition of {0..n-1} into contiguous blocks of a
// permutation array, supporting linear-time refinement against arbitrary
// element sets.
type Partition struct {
	arr     []int // permutation of 0..n-1
	indices []int // inverse of arr
	blockOf []int // element -> index of its block
	blocks  []block

	unprocessed []int // stack of block indices; may contain stale entries
	touched     []int // blocks split during the current Refine
	numBlocks   int
}

// New creates a partition of {0..n-1} with all elements in one block.
// The initial block is not on the worklist.
func New(n int) *Partition {
	p := &Partition{
		arr:       make([]int, n),
		indices:   make([]int, n),
		blockOf:   make([]int, n),
		blocks:    []block{{start: 0, end: n, sibling: -1}},
		numBlocks: 1,
	}
	for i := 0; i < n; i++ {
		p.arr[i] = i
		p.indices[i] = i
	}
	return p
}

// NumBlocks returns the number of live blocks.
func (p *Partition) NumBlocks() int {
	return p.numBlocks
}

// Representative returns a canonical element of x's block.
// Two elements have the same representative iff they share a block.
func (p *Partition) Representative(x int) int {
	return p.arr[p.blocks[p.blockOf[x]].start]
}

// SameBlock reports whether x and y are currently in the same block.
func (p *Partition) SameBlock(x, y int) bool {
	return p.blockOf[x] == p.blockOf[y]
}

// Refine splits every block that partially intersects s into the part
// inside s and the part outside. For each real split, the smaller half is
// pushed onto the worklist unless the original block was already queued, in
// which case both halves are queued. Cost is O(len(s)).
//
// s must not contain duplicates.
func (p *Partition) Refine(s []int) {
	for _, x := range s {
		bi := p.blockOf[x]
		b := &p.blocks[bi]
		if b.fresh {
			// x already moved into a sibling carved off this round.
			continue
		}
		if b.sibling < 0 {
			si := len(p.blocks)
			p.blocks = append(p.blocks, block{
				start:      b.end,
				end:        b.end,
				inWorklist: b.inWorklist,
				sibling:    -1,
				fresh:      true,
			})
			b = &p.blocks[bi] // append may have moved the backing array
			b.sibling = si
			if b.inWorklist {
				p.unprocessed = append(p.unprocessed, si)
			}
			p.touched = append(p.touched, bi)
		}
		sib := &p.blocks[b.sibling]
		// Swap x with the last element still in b, then shrink b by one;
		// the vacated slot becomes the sibling's new first slot.
		lastPos := b.end - 1
		xPos := p.indices[x]
		other := p.arr[lastPos]
		p.arr[xPos], p.arr[lastPos] = other, x
		p.indices[x], p.indices[other] = lastPos, xPos
		b.end--
		sib.start--
		p.blockOf[x] = b.sibling
	}

	for _, bi := range p.touched {
		b := &p.blocks[bi]
		si := b.sibling
		sib := &p.blocks[si]
		b.sibling = -1
		sib.fresh = false
		if b.start == b.end {
			// Every element moved: the sibling simply replaced the block.
			b.dead = true
			b.inWorklist = false
			continue
		}
		p.numBlocks++
		if !b.inWorklist {
			smaller := bi
			if sib.end-sib.start < b.end-b.start {
				smaller = si
			}
			p.blocks[smaller].inWorklist = true
			p.unprocessed = append(p.unprocessed, smaller)
		}
	}
	p.touched = p.touched[:0]
}

// PollUnprocessed pops the next pending block from the worklist and returns
// a copy of its elements. Stale entries (blocks already dequeued or emptied)
// are skipped. The second result is false when the worklist is exhausted.
func (p *Partition) PollUnprocessed() ([]int, bool) {
	for len(p.unprocessed) > 0 {
		bi := p.unprocessed[len(p.unprocessed)-1]
		p.unprocessed = p.unprocessed[:len(p.unprocessed)-1]
		b := &p.blocks[bi]
		if !b.inWorklist || b.dead {
			continue
		}
		b.inWorklist = false
		elems := make([]int, b.end-b.start)
		copy(elems, p.arr[b.start:b.end])
		return elems, true
	}
	return nil, false
}
