// Package gridrex is an incremental two-dimensional pattern matching engine.
//
// Given a fixed alphabet of symbols and a catalogue of rectangular patterns
// (with optional wildcards), gridrex maintains, for every pattern, the set of
// positions in a mutable grid where that pattern currently occurs. Edits to
// the grid are incremental: the work per edit is proportional to the edited
// area padded by the largest pattern dimension, plus the number of matches
// created or destroyed.
//
// The engine compiles the catalogue into two deterministic automata. A row
// automaton reads grid rows right to left and accepts, at each cell, the set
// of pattern rows starting there. A column automaton reads the row
// automaton's accept-set IDs bottom to top and accepts, at each cell, the
// patterns whose top-left corner is there. Both automata are minimised with
// Hopcroft's algorithm, so per-cell state fits in small integers and a state
// change maps to match additions and removals through a precomputed
// accept-set difference table.
//
// Basic usage:
//
//	alphabet, _ := gridrex.NewAlphabet("BW")
//	square := gridrex.MustParsePattern(alphabet, "WW/WW")
//	m, err := gridrex.NewMatcher(alphabet, []*gridrex.Pattern{square})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, _ := m.NewState(64, 64)
//	s.Grid().Set(3, 4, 1)
//	n, _ := s.CountMatches(0)
//	pos, ok, _ := s.RandomMatch(0)
//
// A Matcher is immutable and may back any number of states; each
// MatcherState owns its grid and match indices and is single-threaded.
package gridrex

// Position is a grid coordinate. X is the column (0 = leftmost), Y the row
// (0 = topmost). A match position names the top-left corner of the matched
// pattern.
type Position struct {
	X, Y int
}

// Config controls matcher compilation.
type Config struct {
	// MaxDFAStates bounds subset construction for each of the two automata.
	// Compilation fails with dfa.ErrTooComplex, wrapped in a CompileError,
	// when exceeded. 0 means no bound.
	MaxDFAStates int

	// DisablePrefilter skips building the Aho-Corasick row prefilter used
	// by Matcher.Scan. Incremental matching is unaffected.
	DisablePrefilter bool
}

// DefaultConfig returns the configuration used by NewMatcher.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates: 1 << 20,
	}
}

// Validate checks the configuration for nonsensical values.
func (c Config) Validate() error {
	if c.MaxDFAStates < 0 {
		return ErrInvalidConfig
	}
	return nil
}
