package gridrex

import (
	"fmt"
	"math/rand"

	"github.com/coregx/gridrex/internal/conv"
	"github.com/coregx/gridrex/internal/sparse"
)

// stateArray is a flat array of automaton states stored at the smallest
// unsigned width that holds the automaton's state count.
type stateArray interface {
	get(i int) int
	set(i, v int)
}

type states8 []uint8
type states16 []uint16
type states32 []uint32

func (a states8) get(i int) int  { return int(a[i]) }
func (a states8) set(i, v int)   { a[i] = conv.ToUint8(v) }
func (a states16) get(i int) int { return int(a[i]) }
func (a states16) set(i, v int)  { a[i] = conv.ToUint16(v) }
func (a states32) get(i int) int { return int(a[i]) }
func (a states32) set(i, v int)  { a[i] = conv.ToUint32(v) }

func newStateArray(n, numStates int) stateArray {
	switch {
	case numStates <= 1<<8:
		return make(states8, n)
	case numStates <= 1<<16:
		return make(states16, n)
	default:
		return make(states32, n)
	}
}

// MatcherState binds a compiled Matcher to one mutable grid and maintains,
// for every pattern, the set of positions where it currently matches.
//
// rowStates[x+y*w] is the row automaton's state after reading row y right
// to left down to column x; colStates[x+y*w] is the column automaton's
// state after reading column x's row accept-set IDs bottom to top up to row
// y. A pattern matches at a cell exactly when the column automaton accepts
// its label there. The arrays and indices are updated incrementally by
// recompute, the sole mutator, driven by grid edits.
//
// A MatcherState is single-threaded: no operation may run concurrently with
// another on the same state.
type MatcherState struct {
	matcher *Matcher
	grid    *Grid

	rowStates stateArray
	colStates stateArray
	matches   []*sparse.Set

	rng *rand.Rand
}

// NewState creates a MatcherState over a fresh w x h grid with every cell
// set to symbol 0, with all match indices fully materialised.
func (m *Matcher) NewState(w, h int) (*MatcherState, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadDimensions, w, h)
	}
	s := &MatcherState{
		matcher:   m,
		grid:      newGrid(w, h, m.alphabet.Len()),
		rowStates: newStateArray(w*h, m.rowDFA.NumStates()),
		colStates: newStateArray(w*h, m.colDFA.NumStates()),
		matches:   make([]*sparse.Set, len(m.patterns)),
		rng:       rand.New(rand.NewSource(rand.Int63())),
	}
	for i := range s.matches {
		s.matches[i] = sparse.NewSet(w * h)
	}
	s.grid.onChange = s.recompute
	s.recompute(0, 0, w, h)
	return s, nil
}

// Matcher returns the compiled matcher backing this state.
func (s *MatcherState) Matcher() *Matcher {
	return s.matcher
}

// Grid returns the state's grid. Edits through it update the match indices
// incrementally.
func (s *MatcherState) Grid() *Grid {
	return s.grid
}

// CountMatches returns the number of positions where the pattern currently
// matches. O(1).
func (s *MatcherState) CountMatches(patternID int) (int, error) {
	if patternID < 0 || patternID >= len(s.matches) {
		return 0, ErrUnknownPattern
	}
	return s.matches[patternID].Len(), nil
}

// RandomMatch returns a uniformly random position where the pattern
// currently matches. The second result is false when there is none. O(1).
func (s *MatcherState) RandomMatch(patternID int) (Position, bool, error) {
	if patternID < 0 || patternID >= len(s.matches) {
		return Position{}, false, ErrUnknownPattern
	}
	i, ok := s.matches[patternID].Sample(s.rng)
	if !ok {
		return Position{}, false, nil
	}
	return Position{X: int(i) % s.grid.w, Y: int(i) / s.grid.w}, true, nil
}

// Matches returns the current match positions of the pattern, in
// unspecified order.
func (s *MatcherState) Matches(patternID int) ([]Position, error) {
	if patternID < 0 || patternID >= len(s.matches) {
		return nil, ErrUnknownPattern
	}
	vals := s.matches[patternID].Values()
	out := make([]Position, len(vals))
	for j, i := range vals {
		out[j] = Position{X: int(i) % s.grid.w, Y: int(i) / s.grid.w}
	}
	return out, nil
}

// Seed reseeds the random source used by RandomMatch, for reproducible
// sampling.
func (s *MatcherState) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

// recompute re-establishes the state invariants after the cells inside
// [startX, endX) x [startY, endY) changed.
//
// Phase 1 re-runs the row automaton right to left over each affected row,
// starting from the memoised state just right of the range. The scan
// continues left of the edit until it re-synchronises with the stored
// states, tracking the leftmost column that changed. Phase 2 re-runs the
// column automaton bottom to top over each column from that leftmost change
// to the range's right edge; whenever a stored column state changes, the
// precomputed accept-set difference table yields exactly the matches to
// drop and to add.
func (s *MatcherState) recompute(startX, startY, endX, endY int) {
	w, h := s.grid.w, s.grid.h
	startX = clamp(startX, 0, w)
	endX = clamp(endX, startX, w)
	startY = clamp(startY, 0, h)
	endY = clamp(endY, startY, h)

	rowDFA, colDFA := s.matcher.rowDFA, s.matcher.colDFA
	cells := s.grid.cells

	minChangedX := startX
	for y := startY; y < endY; y++ {
		state := 0
		if endX < w {
			state = s.rowStates.get(endX + y*w)
		}
		for x := endX - 1; x >= 0; x-- {
			i := x + y*w
			state = rowDFA.StepUnchecked(state, int(cells[i]))
			if s.rowStates.get(i) != state {
				s.rowStates.set(i, state)
				if x < minChangedX {
					minChangedX = x
				}
			} else if x < startX {
				break
			}
		}
	}

	k := s.matcher.k
	for x := minChangedX; x < endX; x++ {
		state := 0
		if endY < h {
			state = s.colStates.get(x + endY*w)
		}
		for y := endY - 1; y >= 0; y-- {
			i := x + y*w
			letter := rowDFA.AcceptSetID(s.rowStates.get(i))
			state = colDFA.StepUnchecked(state, letter)
			old := s.colStates.get(i)
			if state != old {
				s.colStates.set(i, state)
				oldSet := colDFA.AcceptSetID(old)
				newSet := colDFA.AcceptSetID(state)
				if oldSet != newSet {
					for _, pid := range s.matcher.diffs[oldSet*k+newSet] {
						s.matches[pid].Remove(uint32(i))
					}
					for _, pid := range s.matcher.diffs[newSet*k+oldSet] {
						s.matches[pid].Insert(uint32(i))
					}
				}
			} else if y < startY {
				break
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
