package dfa

import (
	"github.com/coregx/gridrex/internal/idmap"
	"github.com/coregx/gridrex/internal/intset"
	"github.com/coregx/gridrex/nfa"
)

// Determinize runs subset construction over n.
//
// DFA states are epsilon-closed sets of NFA states, interned by their
// canonical bit-set key so each subset is materialised once. The closure of
// the NFA start state is interned first and therefore becomes state 0. The
// empty subset, if reachable, becomes an ordinary dead state whose
// transitions all loop back to it.
//
// maxStates bounds the number of DFA states; 0 means no bound.
func Determinize(n *nfa.NFA, maxStates int) (*DFA, error) {
	alpha := n.AlphabetSize()
	subsets := idmap.New(func(s *intset.Set) string { return s.Key() })
	acceptSetMap := idmap.New(func(s *intset.Set) string { return s.Key() })

	start := intset.New(n.NumStates())
	start.Insert(n.Start())
	n.EpsilonClosure(start)
	subsets.GetOrCreateID(start)

	var transitions []int
	var acceptSetIDs []int
	var acceptSets [][]int

	// Subsets are processed in ID order; GetOrCreateID appends newly
	// discovered subsets, so this is a breadth-ish frontier walk.
	for id := 0; id < subsets.Len(); id++ {
		if maxStates > 0 && subsets.Len() > maxStates {
			return nil, ErrTooComplex
		}
		set := subsets.ByID(id)

		accepts := intset.New(n.AcceptCount())
		set.ForEach(func(s int) {
			for _, label := range n.Accepts(s) {
				accepts.Insert(label)
			}
		})
		asID := acceptSetMap.GetOrCreateID(accepts)
		if asID == len(acceptSets) {
			acceptSets = append(acceptSets, accepts.Elements())
		}
		acceptSetIDs = append(acceptSetIDs, asID)

		for c := 0; c < alpha; c++ {
			next := intset.New(n.NumStates())
			set.ForEach(func(s int) {
				if t, ok := n.Consumes(s, c); ok {
					next.Insert(t)
				}
			})
			n.EpsilonClosure(next)
			transitions = append(transitions, subsets.GetOrCreateID(next))
		}
	}

	return newDFA(alpha, n.AcceptCount(), transitions, acceptSetIDs, acceptSets), nil
}

// sortedDiff returns the elements of a not present in b; both inputs are
// sorted ascending.
func sortedDiff(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) {
		switch {
		case j >= len(b) || a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] == b[j]:
			i++
			j++
		default:
			j++
		}
	}
	return out
}

// DiffAcceptSets returns, for every ordered pair of accept-set IDs (p, q),
// the sorted labels in p but not in q, indexed diff[p*K+q] with
// K = NumAcceptSets. The table lets a caller enumerate the matches created
// and destroyed by a state change in time proportional to the difference.
func (d *DFA) DiffAcceptSets() [][]int {
	k := len(d.acceptSets)
	diffs := make([][]int, k*k)
	for p := 0; p < k; p++ {
		for q := 0; q < k; q++ {
			if p == q {
				continue
			}
			diffs[p*k+q] = sortedDiff(d.acceptSets[p], d.acceptSets[q])
		}
	}
	return diffs
}
