package gridrex

import (
	"github.com/coregx/gridrex/dfa"
	"github.com/coregx/gridrex/internal/idmap"
	"github.com/coregx/gridrex/internal/intset"
	"github.com/coregx/gridrex/nfa"
	"github.com/coregx/gridrex/prefilter"
)

// Matcher is a compiled pattern catalogue. It is immutable and safe to
// share: any number of MatcherStates can be built from one Matcher.
//
// Compilation decomposes every pattern into rows, compiles a row automaton
// over the symbol alphabet that recognises reversed rows, then a column
// automaton over the row automaton's accept-set IDs that recognises
// reversed columns of row matches. Reading both automata backwards makes
// them accept at the leftmost column and topmost row of a match, so a match
// is keyed by its top-left corner.
type Matcher struct {
	alphabet *Alphabet
	patterns []*Pattern

	rowDFA *dfa.DFA
	colDFA *dfa.DFA

	// diffs[p*k+q] lists the accept labels in colDFA accept-set p but not
	// in q, for turning a column-state change into match index updates.
	diffs [][]int
	k     int

	scanner *prefilter.RowScanner
	// literalRowOf[pid] is the row offset of a wildcard-free row of pattern
	// pid usable as a scan anchor, or -1.
	literalRowOf []int
}

// NewMatcher compiles a pattern catalogue with the default configuration.
// Patterns are deduplicated by canonical key; IDs follow first occurrence.
func NewMatcher(alphabet *Alphabet, patterns []*Pattern) (*Matcher, error) {
	return NewMatcherWithConfig(alphabet, patterns, DefaultConfig())
}

// NewMatcherWithConfig compiles a pattern catalogue with an explicit
// configuration.
func NewMatcherWithConfig(alphabet *Alphabet, patterns []*Pattern, cfg Config) (*Matcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	unique := idmap.New(func(p *Pattern) string { return p.key })
	for _, p := range patterns {
		if p.alphabet != alphabet {
			return nil, &CompileError{Pattern: p.key, Err: ErrAlphabetMismatch}
		}
		unique.GetOrCreateID(p)
	}
	catalogue := unique.Values()

	m := &Matcher{
		alphabet: alphabet,
		patterns: catalogue,
	}

	// Row automaton: the distinct rows of every pattern, each compiled as
	// its reversed raster so the automaton accepts at a row match's
	// leftmost cell when fed right to left.
	rowMap := idmap.New(func(p *Pattern) string { return p.key })
	rowIDs := make([][]int, len(catalogue))
	for pid, p := range catalogue {
		for _, row := range p.rows() {
			rowIDs[pid] = append(rowIDs[pid], rowMap.GetOrCreateID(row))
		}
	}
	numRows := rowMap.Len()

	rowAlts := make([]nfa.Regex, numRows)
	for rid, row := range rowMap.Values() {
		rowAlts[rid] = reversedAtoms(alphabet.Len(), row, rid)
	}
	rowDFA, err := dfa.Compile(alphabet.Len(), numRows, searchRegex(rowAlts), cfg.MaxDFAStates)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	m.rowDFA = rowDFA

	// acceptingSets[rid] inverts the row automaton's accept-set table: the
	// column-alphabet letters whose accept-set contains rid.
	colAlpha := rowDFA.NumAcceptSets()
	acceptingSets := make([]*intset.Set, numRows)
	for rid := range acceptingSets {
		acceptingSets[rid] = intset.New(colAlpha)
	}
	for k := 0; k < colAlpha; k++ {
		for _, rid := range rowDFA.AcceptSet(k) {
			acceptingSets[rid].Insert(k)
		}
	}

	// Column automaton: each pattern is the bottom-to-top sequence of its
	// rows' accepting sets.
	colAlts := make([]nfa.Regex, len(catalogue))
	for pid, p := range catalogue {
		parts := make([]nfa.Regex, 0, p.h+1)
		for j := p.h - 1; j >= 0; j-- {
			parts = append(parts, nfa.Letters{Set: acceptingSets[rowIDs[pid][j]]})
		}
		parts = append(parts, nfa.Accept{Label: pid})
		colAlts[pid] = nfa.Concat{Parts: parts}
	}
	colDFA, err := dfa.Compile(colAlpha, len(catalogue), searchRegex(colAlts), cfg.MaxDFAStates)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	m.colDFA = colDFA
	m.k = colDFA.NumAcceptSets()
	m.diffs = colDFA.DiffAcceptSets()

	if err := m.buildPrefilter(cfg, rowIDs, rowMap.Values()); err != nil {
		return nil, &CompileError{Err: err}
	}
	return m, nil
}

// searchRegex wraps pattern alternatives in a leading Star(Wildcard) so the
// automaton matches at every position of a right-to-left scan.
func searchRegex(alts []nfa.Regex) nfa.Regex {
	return nfa.Concat{Parts: []nfa.Regex{
		nfa.Star{Inner: nfa.Wildcard{}},
		nfa.Union{Alts: alts},
	}}
}

// reversedAtoms compiles a single pattern row into the reversed sequence of
// its cell atoms followed by its accept label.
func reversedAtoms(alphabetSize int, row *Pattern, label int) nfa.Regex {
	parts := make([]nfa.Regex, 0, row.w+1)
	for x := row.w - 1; x >= 0; x-- {
		if c, ok := row.At(x, 0); ok {
			parts = append(parts, nfa.Symbol(alphabetSize, c))
		} else {
			parts = append(parts, nfa.Wildcard{})
		}
	}
	parts = append(parts, nfa.Accept{Label: label})
	return nfa.Concat{Parts: parts}
}

// buildPrefilter assembles the Aho-Corasick scanner over the catalogue's
// wildcard-free rows. Patterns without such a row fall back to exhaustive
// verification in Scan.
func (m *Matcher) buildPrefilter(cfg Config, rowIDs [][]int, rows []*Pattern) error {
	m.literalRowOf = make([]int, len(m.patterns))
	for pid := range m.literalRowOf {
		m.literalRowOf[pid] = -1
	}
	if cfg.DisablePrefilter {
		return nil
	}

	literal := make([]bool, len(rows))
	var literals [][]byte
	for rid, row := range rows {
		if len(row.writes) != row.w {
			continue
		}
		literal[rid] = true
		lit := make([]byte, row.w)
		for x := 0; x < row.w; x++ {
			c, _ := row.At(x, 0)
			lit[x] = byte(c)
		}
		literals = append(literals, lit)
	}
	for pid, ids := range rowIDs {
		for j, rid := range ids {
			if literal[rid] {
				m.literalRowOf[pid] = j
				break
			}
		}
	}

	scanner, err := prefilter.NewRowScanner(literals)
	if err != nil {
		return err
	}
	m.scanner = scanner
	return nil
}

// Alphabet returns the alphabet the matcher was compiled for.
func (m *Matcher) Alphabet() *Alphabet {
	return m.alphabet
}

// NumPatterns returns the number of distinct patterns in the catalogue.
func (m *Matcher) NumPatterns() int {
	return len(m.patterns)
}

// Pattern returns the pattern with the given ID.
func (m *Matcher) Pattern(id int) (*Pattern, error) {
	if id < 0 || id >= len(m.patterns) {
		return nil, ErrUnknownPattern
	}
	return m.patterns[id], nil
}

// PatternID returns the ID of the catalogue pattern with p's canonical key.
func (m *Matcher) PatternID(p *Pattern) (int, error) {
	for id, q := range m.patterns {
		if q.key == p.key {
			return id, nil
		}
	}
	return 0, ErrUnknownPattern
}

// RowDFASize and ColDFASize report the state counts of the two compiled
// automata, for diagnostics and capacity planning.
func (m *Matcher) RowDFASize() int { return m.rowDFA.NumStates() }

// ColDFASize reports the column automaton's state count.
func (m *Matcher) ColDFASize() int { return m.colDFA.NumStates() }
