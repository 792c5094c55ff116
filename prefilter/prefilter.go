// Package prefilter accelerates bulk grid scans with a multi-literal
// Aho-Corasick automaton over the catalogue's wildcard-free pattern rows.
//
// The scanner reports every column where some literal row begins; callers
// verify full patterns only at those candidates. Rows containing wildcards
// cannot anchor a literal scan and are handled by exhaustive verification
// instead.
package prefilter

import "github.com/coregx/ahocorasick"

// RowScanner finds the start columns of literal pattern rows inside a grid
// row. It is immutable and safe to share.
type RowScanner struct {
	auto *ahocorasick.Automaton
}

// NewRowScanner builds a scanner over the given literal rows, each a
// sequence of symbol IDs. Returns nil (and no error) when there are no
// literals to scan for.
func NewRowScanner(literals [][]byte) (*RowScanner, error) {
	if len(literals) == 0 {
		return nil, nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &RowScanner{auto: auto}, nil
}

// FindStarts returns, in ascending order, every column of row where at
// least one literal begins. Overlapping occurrences are all reported.
func (s *RowScanner) FindStarts(row []byte) []int {
	var starts []int
	at := 0
	for at <= len(row) {
		m := s.auto.Find(row, at)
		if m == nil {
			break
		}
		starts = append(starts, m.Start)
		at = m.Start + 1
	}
	return starts
}
