package nfa

import "github.com/coregx/gridrex/internal/intset"

// StateID identifies an NFA state. IDs are dense, assigned in construction
// order.
type StateID = int

// state is a single NFA node.
//
// A node may carry any number of epsilon edges plus at most one
// symbol-consuming edge: when the current input symbol is in letters, the
// automaton moves to next. accepts lists the accept labels attached to the
// node.
type state struct {
	epsilons []StateID
	letters  *intset.Set // nil when the node has no consuming edge
	next     StateID
	accepts  []int
}

// NFA is an immutable Thompson automaton over a dense symbol alphabet.
type NFA struct {
	states       []state
	start        StateID
	alphabetSize int
	acceptCount  int
}

// NumStates returns the number of NFA states.
func (n *NFA) NumStates() int {
	return len(n.states)
}

// Start returns the designated start state.
func (n *NFA) Start() StateID {
	return n.start
}

// AlphabetSize returns the input alphabet size the NFA was compiled for.
func (n *NFA) AlphabetSize() int {
	return n.alphabetSize
}

// AcceptCount returns the number of distinct accept labels.
func (n *NFA) AcceptCount() int {
	return n.acceptCount
}

// Epsilons returns the epsilon successors of id.
// The returned slice is the NFA's backing store; callers must not mutate it.
func (n *NFA) Epsilons(id StateID) []StateID {
	return n.states[id].epsilons
}

// Consumes reports whether id has a symbol-consuming edge on symbol c, and
// if so the target state.
func (n *NFA) Consumes(id StateID, c int) (StateID, bool) {
	s := &n.states[id]
	if s.letters == nil || !s.letters.Contains(c) {
		return 0, false
	}
	return s.next, true
}

// Accepts returns the accept labels attached to id.
func (n *NFA) Accepts(id StateID) []int {
	return n.states[id].accepts
}

// EpsilonClosure grows set to its closure under epsilon edges, in place.
func (n *NFA) EpsilonClosure(set *intset.Set) {
	stack := set.Elements()
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range n.states[id].epsilons {
			if !set.Contains(e) {
				set.Insert(e)
				stack = append(stack, e)
			}
		}
	}
}
