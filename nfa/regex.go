package nfa

import "github.com/coregx/gridrex/internal/intset"

// Regex is the abstract syntax of the pattern-row regular expressions the
// engine compiles. It is a closed sum: the only implementations are the node
// types in this package.
//
// Expressions are built over a dense symbol alphabet [0, alphabetSize) and
// carry integer accept labels in [0, acceptCount) that identify which of
// several simultaneously-compiled patterns matched.
type Regex interface {
	regexNode()
}

// Letters matches a single input symbol drawn from Set.
type Letters struct {
	Set *intset.Set // symbol IDs this atom accepts
}

// Wildcard matches any single input symbol.
type Wildcard struct{}

// Concat matches its parts in sequence.
type Concat struct {
	Parts []Regex
}

// Union matches any one of its alternatives.
type Union struct {
	Alts []Regex
}

// Star matches zero or more repetitions of Inner.
type Star struct {
	Inner Regex
}

// Accept consumes no input and tags the current position with Label.
// A state reached through Accept reports Label in its accept set.
type Accept struct {
	Label int
}

func (Letters) regexNode()  {}
func (Wildcard) regexNode() {}
func (Concat) regexNode()   {}
func (Union) regexNode()    {}
func (Star) regexNode()     {}
func (Accept) regexNode()   {}

// Symbol returns a Letters atom matching exactly one symbol.
func Symbol(alphabetSize, id int) Letters {
	s := intset.New(alphabetSize)
	s.Insert(id)
	return Letters{Set: s}
}
