package tilesolver

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// maxDim is the largest width or height a Grid can hold: coordinates are
// packed into 16 bits each (see Point), so any larger grid can't be
// addressed by the representation.
const maxDim = 1<<16 - 1

// Grid is an immutable-for-the-solve description of one puzzle instance: its
// blocked/empty mask, the precomputed max-square-at-point table, and the
// list of points eligible to seed a square (N >= 2). All fields are safe for
// concurrent read by multiple Islands; nothing here is mutated after
// NewGrid returns.
type Grid struct {
	W, H uint16

	blocked *bitset.BitSet // bit i = y*W+x is set when (x,y) is blocked

	// n holds N(x,y) for every cell, row-major (index y*W+x): the side of
	// the largest square with top-left (x,y) that stays in-grid and empty.
	n []uint16

	// Eligible lists every (x,y) with N(x,y) >= 2, in row-major order. Its
	// length is the permutation length for every Genome over this grid.
	Eligible []Point

	EmptyCount int
}

// NewGrid builds a Grid from a blocked/empty mask. mask[y][x] == true means
// blocked. Every row must have the same length. Returns ErrBadGrid if the
// dimensions don't fit in a packed Point, the mask is ragged, or there are
// no empty cells.
func NewGrid(mask [][]bool) (*Grid, error) {
	h := len(mask)
	if h == 0 || h > maxDim {
		return nil, fmt.Errorf("%w: height %d out of range", ErrBadGrid, h)
	}
	w := len(mask[0])
	if w == 0 || w > maxDim {
		return nil, fmt.Errorf("%w: width %d out of range", ErrBadGrid, w)
	}
	for y, row := range mask {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrBadGrid, y, len(row), w)
		}
	}

	g := &Grid{
		W:       uint16(w),
		H:       uint16(h),
		blocked: bitset.New(uint(w * h)),
		n:       make([]uint16, w*h),
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask[y][x] {
				g.blocked.Set(uint(y*w + x))
			} else {
				g.EmptyCount++
			}
		}
	}
	if g.EmptyCount == 0 {
		return nil, fmt.Errorf("%w: no empty cells", ErrBadGrid)
	}

	g.computeN()
	g.computeEligible()
	return g, nil
}

func (g *Grid) idx(x, y uint16) int { return int(y)*int(g.W) + int(x) }

// IsBlocked reports whether (x,y) is a blocked cell.
func (g *Grid) IsBlocked(x, y uint16) bool {
	return g.blocked.Test(uint(g.idx(x, y)))
}

// N returns N(x,y): the side of the largest square with top-left (x,y) that
// fits entirely in-grid over empty cells.
func (g *Grid) N(x, y uint16) uint16 {
	return g.n[g.idx(x, y)]
}

// computeN fills the N-table with the standard reverse-scan dynamic program:
// N[x,y] = 0 if blocked, else 1 + min(N[x+1,y], N[x,y+1], N[x+1,y+1]).
func (g *Grid) computeN() {
	w, h := int(g.W), int(g.H)
	for y := h - 1; y >= 0; y-- {
		for x := w - 1; x >= 0; x-- {
			i := y*w + x
			if g.blocked.Test(uint(i)) {
				g.n[i] = 0
				continue
			}
			if x == w-1 || y == h-1 {
				g.n[i] = 1
				continue
			}
			right := g.n[y*w+x+1]
			down := g.n[(y+1)*w+x]
			diag := g.n[(y+1)*w+x+1]
			m := right
			if down < m {
				m = down
			}
			if diag < m {
				m = diag
			}
			g.n[i] = m + 1
		}
	}
}

func (g *Grid) computeEligible() {
	w, h := int(g.W), int(g.H)
	g.Eligible = make([]Point, 0, g.EmptyCount)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if g.n[y*w+x] >= 2 {
				g.Eligible = append(g.Eligible, PackPoint(uint16(x), uint16(y)))
			}
		}
	}
}

// GenomeLen is the length every valid permutation over this grid must have.
func (g *Grid) GenomeLen() int { return len(g.Eligible) }
