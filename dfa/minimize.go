package dfa

import (
	"strconv"

	"github.com/coregx/gridrex/internal/idmap"
	"github.com/coregx/gridrex/internal/partition"
)

// Minimize returns the Hopcroft-minimal equivalent of d.
//
// The initial partition separates states by accept behaviour: starting from
// one block, it is refined by the preimage of every accept label. The
// worklist loop then refines by inverse transitions until fixpoint. If the
// partition ever reaches one block per state the input was already minimal
// and is returned unchanged.
//
// The quotient automaton keeps d's accept-set table, so accept-set IDs are
// stable across minimisation.
func Minimize(d *DFA) *DFA {
	n := d.NumStates()
	if n <= 1 {
		return d
	}

	p := partition.New(n)

	// Split by accept label: states sharing a block must agree on every
	// label they accept.
	byLabel := make([][]int, d.acceptCount)
	for s := 0; s < n; s++ {
		for _, label := range d.Accepts(s) {
			byLabel[label] = append(byLabel[label], s)
		}
	}
	for _, states := range byLabel {
		if len(states) > 0 {
			p.Refine(states)
			if p.NumBlocks() == n {
				return d
			}
		}
	}

	// Inverse transition lists: inv[c*n+t] holds the states s with
	// step(s, c) == t.
	inv := make([][]int, d.alphabetSize*n)
	for s := 0; s < n; s++ {
		for c := 0; c < d.alphabetSize; c++ {
			t := d.step(s, c)
			inv[c*n+t] = append(inv[c*n+t], s)
		}
	}

	var preimage []int
	for {
		block, ok := p.PollUnprocessed()
		if !ok {
			break
		}
		for c := 0; c < d.alphabetSize; c++ {
			preimage = preimage[:0]
			for _, t := range block {
				preimage = append(preimage, inv[c*n+t]...)
			}
			if len(preimage) == 0 {
				continue
			}
			p.Refine(preimage)
			if p.NumBlocks() == n {
				return d
			}
		}
	}

	if p.NumBlocks() == n {
		return d
	}

	// Build the quotient over block representatives. The representative of
	// state 0's block is interned first so the new start state is 0.
	reps := idmap.New(strconv.Itoa)
	reps.GetOrCreateID(p.Representative(0))
	for s := 0; s < n; s++ {
		reps.GetOrCreateID(p.Representative(s))
	}

	m := reps.Len()
	transitions := make([]int, m*d.alphabetSize)
	acceptSetIDs := make([]int, m)
	for id := 0; id < m; id++ {
		rep := reps.ByID(id)
		acceptSetIDs[id] = int(d.acceptSetIDs[rep])
		for c := 0; c < d.alphabetSize; c++ {
			t := d.step(rep, c)
			tid, err := reps.GetID(p.Representative(t))
			if err != nil {
				// Every state's representative was interned above.
				panic("dfa: minimisation lost a block representative")
			}
			transitions[id*d.alphabetSize+c] = tid
		}
	}

	return newDFA(d.alphabetSize, d.acceptCount, transitions, acceptSetIDs, d.acceptSets)
}
