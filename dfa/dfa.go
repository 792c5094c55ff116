package dfa

import (
	"github.com/coregx/gridrex/internal/conv"
	"github.com/coregx/gridrex/nfa"
)

// DFA is a dense table-driven deterministic automaton.
//
// State 0 is the start state. transitions is row-major:
// transitions[s*alphabetSize+c] is the successor of state s on symbol c.
// Every state has a transition for every symbol (the automaton is complete;
// the empty NFA subset acts as the dead state).
//
// acceptSets is the interned table of distinct accept-label sets observed
// across states, each materialised as a sorted slice; acceptSetIDs[s] indexes
// into it. A DFA is immutable after compilation and safe to share.
type DFA struct {
	alphabetSize int
	acceptCount  int
	transitions  []uint32
	acceptSetIDs []uint32
	acceptSets   [][]int
}

// Compile builds the minimal DFA for re: Thompson construction, subset
// construction, then Hopcroft minimisation.
//
// maxStates bounds the subset construction; 0 means no bound. Exceeding it
// reports ErrTooComplex.
func Compile(alphabetSize, acceptCount int, re nfa.Regex, maxStates int) (*DFA, error) {
	n, err := nfa.Compile(alphabetSize, acceptCount, re)
	if err != nil {
		return nil, err
	}
	d, err := Determinize(n, maxStates)
	if err != nil {
		return nil, err
	}
	return Minimize(d), nil
}

// NumStates returns the number of DFA states.
func (d *DFA) NumStates() int {
	return len(d.acceptSetIDs)
}

// AlphabetSize returns the input alphabet size.
func (d *DFA) AlphabetSize() int {
	return d.alphabetSize
}

// AcceptCount returns the number of distinct accept labels the DFA was
// compiled with.
func (d *DFA) AcceptCount() int {
	return d.acceptCount
}

// NumAcceptSets returns the number of distinct accept-sets across states.
func (d *DFA) NumAcceptSets() int {
	return len(d.acceptSets)
}

// Step returns the successor of state on symbol c.
// Reports ErrInvalidState when state or c is out of range.
func (d *DFA) Step(state, c int) (int, error) {
	if state < 0 || state >= len(d.acceptSetIDs) || c < 0 || c >= d.alphabetSize {
		return 0, ErrInvalidState
	}
	return int(d.transitions[state*d.alphabetSize+c]), nil
}

// step is the unchecked hot-path variant of Step. Callers guarantee ranges.
func (d *DFA) step(state, c int) int {
	return int(d.transitions[state*d.alphabetSize+c])
}

// StepUnchecked returns the successor of state on symbol c without range
// checks. Both arguments must be in range; this is the inner-loop entry
// point for callers that validated their inputs once up front.
func (d *DFA) StepUnchecked(state, c int) int {
	return d.step(state, c)
}

// AcceptSetID returns the dense ID of state's accept-set.
func (d *DFA) AcceptSetID(state int) int {
	return int(d.acceptSetIDs[state])
}

// AcceptSet returns the sorted accept labels of the accept-set with the
// given ID. The returned slice is shared; callers must not mutate it.
func (d *DFA) AcceptSet(setID int) []int {
	return d.acceptSets[setID]
}

// Accepts returns the sorted accept labels of state.
func (d *DFA) Accepts(state int) []int {
	return d.acceptSets[d.acceptSetIDs[state]]
}

// AcceptsLabel reports whether state accepts the given label.
func (d *DFA) AcceptsLabel(state, label int) bool {
	for _, l := range d.Accepts(state) {
		if l == label {
			return true
		}
		if l > label {
			break
		}
	}
	return false
}

// newDFA assembles a DFA from construction-time tables, narrowing the
// transition targets through checked conversion.
func newDFA(alphabetSize, acceptCount int, transitions []int, acceptSetIDs []int, acceptSets [][]int) *DFA {
	d := &DFA{
		alphabetSize: alphabetSize,
		acceptCount:  acceptCount,
		transitions:  make([]uint32, len(transitions)),
		acceptSetIDs: make([]uint32, len(acceptSetIDs)),
		acceptSets:   acceptSets,
	}
	for i, t := range transitions {
		d.transitions[i] = conv.ToUint32(t)
	}
	for i, a := range acceptSetIDs {
		d.acceptSetIDs[i] = conv.ToUint32(a)
	}
	return d
}
