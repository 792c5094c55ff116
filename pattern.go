package gridrex

import (
	"fmt"
	"strings"
)

// wildcardCell marks a raster cell that matches any symbol and writes
// nothing on SetPattern.
const wildcardCell = -1

// WildcardRune is the wildcard marker in the pattern string form.
const WildcardRune = '*'

// rowSeparator splits rows in the pattern string form.
const rowSeparator = "/"

// CellWrite is one non-wildcard cell of a pattern: writing the pattern at
// (x, y) stores Symbol at (x+DX, y+DY).
type CellWrite struct {
	DX, DY int
	Symbol int
}

// Pattern is an immutable rectangular raster of symbols and wildcards.
//
// The raster is row-major over width*height cells, each a symbol ID or the
// wildcard marker. The write plan lists the non-wildcard cells; the
// bounding box covers exactly those cells, collapsing to the single point
// (0, 0) when the pattern is all wildcards. The canonical key is the string
// form, used to deduplicate patterns and close symmetry orbits.
type Pattern struct {
	alphabet *Alphabet
	w, h     int
	raster   []int
	writes   []CellWrite
	key      string

	minX, minY, maxX, maxY int
}

// ParsePattern parses the string form of a pattern: rows separated by '/',
// '*' for wildcards, every other rune a symbol of a. All rows must have
// equal length.
func ParsePattern(a *Alphabet, s string) (*Pattern, error) {
	rows := strings.Split(s, rowSeparator)
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrMalformedPattern)
	}
	raster := make([]int, 0, width*len(rows))
	for _, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: %q", ErrMalformedPattern, s)
		}
		for _, r := range runes {
			if r == WildcardRune {
				raster = append(raster, wildcardCell)
				continue
			}
			id, err := a.ID(r)
			if err != nil {
				return nil, err
			}
			raster = append(raster, id)
		}
	}
	return newPattern(a, width, len(rows), raster), nil
}

// MustParsePattern is ParsePattern panicking on error, for fixed catalogues.
func MustParsePattern(a *Alphabet, s string) *Pattern {
	p, err := ParsePattern(a, s)
	if err != nil {
		panic(err)
	}
	return p
}

// newPattern derives the redundant views (write plan, key, bounding box)
// from a raster. The raster is owned by the new pattern.
func newPattern(a *Alphabet, w, h int, raster []int) *Pattern {
	p := &Pattern{
		alphabet: a,
		w:        w,
		h:        h,
		raster:   raster,
	}
	first := true
	for i, c := range raster {
		if c == wildcardCell {
			continue
		}
		dx, dy := i%w, i/w
		p.writes = append(p.writes, CellWrite{DX: dx, DY: dy, Symbol: c})
		if first || dx < p.minX {
			p.minX = dx
		}
		if first || dy < p.minY {
			p.minY = dy
		}
		if first || dx > p.maxX {
			p.maxX = dx
		}
		if first || dy > p.maxY {
			p.maxY = dy
		}
		first = false
	}
	p.key = p.format()
	return p
}

func (p *Pattern) format() string {
	var b strings.Builder
	for y := 0; y < p.h; y++ {
		if y > 0 {
			b.WriteString(rowSeparator)
		}
		for x := 0; x < p.w; x++ {
			c := p.raster[x+y*p.w]
			if c == wildcardCell {
				b.WriteRune(WildcardRune)
			} else {
				b.WriteRune(p.alphabet.Symbol(c))
			}
		}
	}
	return b.String()
}

// Width returns the pattern width.
func (p *Pattern) Width() int { return p.w }

// Height returns the pattern height.
func (p *Pattern) Height() int { return p.h }

// String returns the canonical string form. Two patterns over the same
// alphabet are equal iff their String forms are.
func (p *Pattern) String() string { return p.key }

// Writes returns the write plan: one entry per non-wildcard cell.
// The returned slice is shared; callers must not mutate it.
func (p *Pattern) Writes() []CellWrite { return p.writes }

// Bounds returns the bounding box of the non-wildcard cells as
// (minX, minY, maxX, maxY), inclusive. An all-wildcard pattern reports the
// single point (0, 0).
func (p *Pattern) Bounds() (minX, minY, maxX, maxY int) {
	return p.minX, p.minY, p.maxX, p.maxY
}

// At returns the symbol ID at (x, y) and whether the cell is a non-wildcard.
func (p *Pattern) At(x, y int) (int, bool) {
	c := p.raster[x+y*p.w]
	return c, c != wildcardCell
}

// rows decomposes the pattern into its rows, each a width x 1 pattern.
func (p *Pattern) rows() []*Pattern {
	out := make([]*Pattern, p.h)
	for y := 0; y < p.h; y++ {
		raster := make([]int, p.w)
		copy(raster, p.raster[y*p.w:(y+1)*p.w])
		out[y] = newPattern(p.alphabet, p.w, 1, raster)
	}
	return out
}

// Rotate90 returns the pattern rotated a quarter turn clockwise.
func (p *Pattern) Rotate90() *Pattern {
	raster := make([]int, len(p.raster))
	// new (x, y) <- old (y, h-1-x); the new raster is h wide, w tall.
	for ny := 0; ny < p.w; ny++ {
		for nx := 0; nx < p.h; nx++ {
			raster[nx+ny*p.h] = p.raster[ny+(p.h-1-nx)*p.w]
		}
	}
	return newPattern(p.alphabet, p.h, p.w, raster)
}

// FlipX returns the pattern mirrored left-to-right.
func (p *Pattern) FlipX() *Pattern {
	raster := make([]int, len(p.raster))
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			raster[x+y*p.w] = p.raster[(p.w-1-x)+y*p.w]
		}
	}
	return newPattern(p.alphabet, p.w, p.h, raster)
}

// FlipY returns the pattern mirrored top-to-bottom.
func (p *Pattern) FlipY() *Pattern {
	raster := make([]int, len(p.raster))
	for y := 0; y < p.h; y++ {
		copy(raster[y*p.w:(y+1)*p.w], p.raster[(p.h-1-y)*p.w:(p.h-y)*p.w])
	}
	return newPattern(p.alphabet, p.w, p.h, raster)
}

// Symmetries returns the orbit of the pattern under rotation and mirroring:
// the four rotations and their horizontal mirrors, deduplicated by canonical
// key. The pattern itself is always first.
func (p *Pattern) Symmetries() []*Pattern {
	seen := map[string]bool{}
	var orbit []*Pattern
	cur := p
	for i := 0; i < 4; i++ {
		for _, q := range []*Pattern{cur, cur.FlipX()} {
			if !seen[q.key] {
				seen[q.key] = true
				orbit = append(orbit, q)
			}
		}
		cur = cur.Rotate90()
	}
	return orbit
}

// MatchesAt reports whether the pattern occurs in g with its top-left
// corner at (x, y): every non-wildcard cell agrees with the grid.
// Positions where the pattern overhangs the grid do not match.
func (p *Pattern) MatchesAt(g *Grid, x, y int) bool {
	if x < 0 || y < 0 || x+p.w > g.w || y+p.h > g.h {
		return false
	}
	for _, wr := range p.writes {
		if int(g.cells[(x+wr.DX)+(y+wr.DY)*g.w]) != wr.Symbol {
			return false
		}
	}
	return true
}
