package gridrex

import (
	"fmt"

	"github.com/coregx/gridrex/internal/conv"
)

// ListenerFunc observes grid edits. It receives the half-open rectangle
// [minX, maxX) x [minY, maxY) covering the changed cells; the rectangle
// always covers every changed cell but is not necessarily tight.
type ListenerFunc func(minX, minY, maxX, maxY int)

// Grid is a mutable rectangular field of symbol IDs.
//
// Grids are created by Matcher.NewState with every cell set to symbol 0.
// Listeners registered with Listen fire after cells change but before the
// owning state's match indices are updated, so a listener sees the edit and
// must not query match counts for the edited region.
type Grid struct {
	w, h       int
	numSymbols int
	cells      []uint8

	listeners []ListenerFunc
	onChange  func(minX, minY, maxX, maxY int)
}

func newGrid(w, h, numSymbols int) *Grid {
	return &Grid{
		w:          w,
		h:          h,
		numSymbols: numSymbols,
		cells:      make([]uint8, w*h),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Get returns the symbol ID at (x, y).
func (g *Grid) Get(x, y int) (int, error) {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return 0, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return int(g.cells[x+y*g.w]), nil
}

// Set stores symbol ID v at (x, y) and notifies listeners with the 1x1
// rectangle around the cell. Storing the value a cell already holds still
// notifies.
func (g *Grid) Set(x, y, v int) error {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	if v < 0 || v >= g.numSymbols {
		return fmt.Errorf("%w: symbol ID %d", ErrUnknownSymbol, v)
	}
	g.cells[x+y*g.w] = conv.ToUint8(v)
	g.notify(x, y, x+1, y+1)
	return nil
}

// SetPattern writes every non-wildcard cell of p with the pattern's
// top-left corner at (x, y). The whole pattern rectangle must lie inside
// the grid. Listeners are notified once, with the bounding box of p's
// non-wildcard cells; an all-wildcard pattern writes nothing and does not
// notify.
func (g *Grid) SetPattern(x, y int, p *Pattern) error {
	if x < 0 || y < 0 || x+p.w > g.w || y+p.h > g.h {
		return fmt.Errorf("%w: pattern %dx%d at (%d, %d)", ErrOutOfBounds, p.w, p.h, x, y)
	}
	if len(p.writes) == 0 {
		return nil
	}
	for _, wr := range p.writes {
		if wr.Symbol >= g.numSymbols {
			return fmt.Errorf("%w: symbol ID %d", ErrUnknownSymbol, wr.Symbol)
		}
	}
	for _, wr := range p.writes {
		g.cells[(x+wr.DX)+(y+wr.DY)*g.w] = conv.ToUint8(wr.Symbol)
	}
	g.notify(x+p.minX, y+p.minY, x+p.maxX+1, y+p.maxY+1)
	return nil
}

// Listen registers fn to run after every edit. Listeners run in
// registration order, before the matcher state recomputes.
func (g *Grid) Listen(fn ListenerFunc) {
	g.listeners = append(g.listeners, fn)
}

func (g *Grid) notify(minX, minY, maxX, maxY int) {
	for _, fn := range g.listeners {
		fn(minX, minY, maxX, maxY)
	}
	if g.onChange != nil {
		g.onChange(minX, minY, maxX, maxY)
	}
}

// Row returns the symbol IDs of row y as a shared sub-slice of the cell
// array. Callers must not mutate it.
func (g *Grid) Row(y int) []uint8 {
	return g.cells[y*g.w : (y+1)*g.w]
}
