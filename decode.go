package tilesolver

import "github.com/bits-and-blooms/bitset"

// Square is one axis-aligned filled square in a decomposition: a size x size
// block with top-left corner (X, Y).
type Square struct {
	X, Y, Size uint16
}

// decodeScratch is the reusable coverage bitmap the greedy decoder writes
// into. One is owned per Island and cleared (not reallocated) before every
// evaluation.
type decodeScratch struct {
	cov *bitset.BitSet
	w   int
}

func newDecodeScratch(g *Grid) *decodeScratch {
	return &decodeScratch{cov: bitset.New(uint(int(g.W) * int(g.H))), w: int(g.W)}
}

func (s *decodeScratch) reset() { s.cov.ClearAll() }

func (s *decodeScratch) index(x, y uint16) uint { return uint(int(y)*s.w + int(x)) }

// growSquare returns the largest side s <= N(x,y) such that the s x s block
// with top-left (x,y) lies entirely over cells not yet marked in cov. Cells
// up to N(x,y) are already known to be in-grid and unblocked, so only
// coverage needs checking at each expanding border.
func growSquare(g *Grid, cov *bitset.BitSet, x, y uint16) uint16 {
	maxN := g.N(x, y)
	invariant(maxN >= 1, "growSquare called on a blocked point")

	w := int(g.W)
	n := uint16(1)
	for n < maxN {
		blocked := false
		for k := uint16(0); k <= n; k++ {
			row := uint(int(y+n)*w + int(x+k))
			col := uint(int(y+k)*w + int(x+n))
			if cov.Test(row) || cov.Test(col) {
				blocked = true
				break
			}
		}
		if blocked {
			break
		}
		n++
	}
	return n
}

func markBlock(cov *bitset.BitSet, w uint16, x, y, n uint16) {
	for dy := uint16(0); dy < n; dy++ {
		base := uint(int(y+dy)*int(w) + int(x))
		for dx := uint16(0); dx < n; dx++ {
			cov.Set(base + uint(dx))
		}
	}
}

// FastCount decodes genome against grid and returns only the resulting
// square count. It is the hot-loop path used to score every child every
// generation: no output list, no second cleanup pass over the grid — the
// count of leftover 1x1 cells is derived arithmetically from the total area
// the drawn squares cover.
//
// genome must be a bijection on grid.Eligible; this is trusted, not checked
// (see Genome).
func FastCount(g *Grid, genome []Point, scratch *decodeScratch) int {
	scratch.reset()
	squares := 0
	totalCovered := 0

	for _, p := range genome {
		x, y := p.X(), p.Y()
		idx := scratch.index(x, y)
		if scratch.cov.Test(idx) {
			continue
		}
		n := growSquare(g, scratch.cov, x, y)
		if n < 2 {
			continue // reject 1x1 in pass 1: cleaner to draw it later
		}
		markBlock(scratch.cov, g.W, x, y, n)
		squares++
		totalCovered += int(n) * int(n)
	}

	return squares + (g.EmptyCount - totalCovered)
}

// Expand decodes genome against grid into a concrete, non-overlapping
// decomposition covering every empty cell: pass 1 draws the greedy squares
// FastCount would count, pass 2 fills every cell pass 1 left uncovered with
// a 1x1 square.
func Expand(g *Grid, genome []Point) []Square {
	scratch := newDecodeScratch(g)
	var squares []Square

	for _, p := range genome {
		x, y := p.X(), p.Y()
		idx := scratch.index(x, y)
		if scratch.cov.Test(idx) {
			continue
		}
		n := growSquare(g, scratch.cov, x, y)
		if n < 2 {
			continue
		}
		markBlock(scratch.cov, g.W, x, y, n)
		squares = append(squares, Square{X: x, Y: y, Size: n})
	}

	for y := uint16(0); y < g.H; y++ {
		for x := uint16(0); x < g.W; x++ {
			if g.IsBlocked(x, y) {
				continue
			}
			if !scratch.cov.Test(scratch.index(x, y)) {
				squares = append(squares, Square{X: x, Y: y, Size: 1})
			}
		}
	}
	return squares
}
