package gridrex

// Scan finds every match of every pattern in g in one pass, without
// incremental state. The result is indexed by pattern ID; positions are in
// row-major order.
//
// Patterns with at least one wildcard-free row are located through the
// Aho-Corasick row scanner: the scanner yields candidate columns per grid
// row and only those candidates are verified cell by cell. Patterns whose
// rows all contain wildcards are verified exhaustively.
func (m *Matcher) Scan(g *Grid) [][]Position {
	results := make([][]Position, len(m.patterns))

	// Candidate columns per grid row, computed lazily: a row is scanned at
	// most once even when several patterns anchor to it.
	var rowStarts [][]int
	candidates := func(y int) []int {
		if rowStarts == nil {
			rowStarts = make([][]int, g.h)
		}
		if rowStarts[y] == nil {
			starts := m.scanner.FindStarts(g.Row(y))
			if starts == nil {
				starts = []int{}
			}
			rowStarts[y] = starts
		}
		return rowStarts[y]
	}

	for pid, p := range m.patterns {
		if p.w > g.w || p.h > g.h {
			continue
		}
		anchor := m.literalRowOf[pid]
		for y := 0; y+p.h <= g.h; y++ {
			if m.scanner != nil && anchor >= 0 {
				for _, x := range candidates(y + anchor) {
					if p.MatchesAt(g, x, y) {
						results[pid] = append(results[pid], Position{X: x, Y: y})
					}
				}
			} else {
				for x := 0; x+p.w <= g.w; x++ {
					if p.MatchesAt(g, x, y) {
						results[pid] = append(results[pid], Position{X: x, Y: y})
					}
				}
			}
		}
	}
	return results
}
