// Package dfa provides dense deterministic automata compiled from the
// engine's regex syntax: subset construction over a Thompson NFA followed by
// Hopcroft minimisation.
//
// A DFA is a flat transition table over a dense symbol alphabet. Each state
// carries the ID of its accept-set, an interned set of accept labels, so
// comparing the accept behaviour of two states is one integer compare and
// the distinct accept-sets form a small dense alphabet of their own. The
// two-dimensional matcher exploits that: the column automaton's input
// alphabet is exactly the row automaton's accept-set ID space.
package dfa

import "errors"

// ErrInvalidState indicates a Step call with an out-of-range state or symbol.
var ErrInvalidState = errors.New("dfa: invalid state or symbol")

// ErrTooComplex indicates determinisation exceeded the configured state
// limit.
var ErrTooComplex = errors.New("dfa: too many states")
