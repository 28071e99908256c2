package tilesolver

// lineCoeffs is the integer line a*x + b*y + c used by crossover to split
// the grid into "above" and "not-above" halves. Coordinates fit in 16 bits,
// so a*x+b*y+c is computed in int64 and can never overflow for any
// coefficient magnitude a caller would reasonably choose.
type lineCoeffs struct{ a, b, c int64 }

func randomLine(w, h uint16, coeffRange int, rng *Rand) lineCoeffs {
	if coeffRange < 1 {
		coeffRange = 1
	}
	a := rng.Intn(2*coeffRange+1) - coeffRange
	b := rng.Intn(2*coeffRange+1) - coeffRange
	maxDimI := int(w)
	if int(h) > maxDimI {
		maxDimI = int(h)
	}
	maxC := coeffRange * maxDimI
	if maxC < 1 {
		maxC = 1
	}
	c := rng.Intn(2*maxC+1) - maxC
	return lineCoeffs{a: int64(a), b: int64(b), c: int64(c)}
}

// above is the branch-free integer predicate a point falls on one side of.
func (l lineCoeffs) above(p Point) bool {
	return l.a*int64(p.X())+l.b*int64(p.Y())+l.c > 0
}

// pushWriter drives the single-pass fused write shared by CrossoverMutate
// and CopyMutate: points are appended to dst in traversal order, except the
// point that lands on output position fwd is diverted to the front and the
// point landing on position back is diverted to the end. fwd and back are
// each consumed at most once — after a diversion fires, the corresponding
// field is set to 0, a position outIdx (which only ever increases from 1)
// can never revisit.
type pushWriter struct {
	dst    []Point
	outIdx int
	fwd    int
	back   int
}

func newPushWriter(dst []Point, rng *Rand) *pushWriter {
	size := len(dst)
	// Size <= 1 has no front/back split to speak of: the lone write (if
	// any) goes straight to slot 0, so outIdx starts there instead of 1
	// and fwd/back are left at 0, a value outIdx never reaches again.
	if size <= 1 {
		return &pushWriter{dst: dst, outIdx: 0}
	}
	span := size - 1
	return &pushWriter{
		dst:    dst,
		outIdx: 1,
		fwd:    rng.Intn(span) + 1,
		back:   rng.Intn(span) + 1,
	}
}

func (w *pushWriter) write(p Point) {
	switch {
	case w.outIdx == w.fwd:
		w.dst[0] = p
		w.fwd = 0
	case w.outIdx == w.back:
		w.dst[len(w.dst)-1] = p
		w.back = 0
	default:
		w.dst[w.outIdx] = p
		w.outIdx++
	}
}

// CopyMutate copies src into dst applying the push-to-front/push-to-back
// mutation (spec 4.5) in the same pass, fusing copy and mutate into one
// linear scan with no intermediate materialization.
func CopyMutate(dst, src []Point, rng *Rand) {
	invariant(len(dst) == len(src), "CopyMutate: length mismatch")
	w := newPushWriter(dst, rng)
	for _, p := range src {
		w.write(p)
	}
}

// CrossoverMutate builds dst from parents a and b by drawing a random line
// across the grid and taking, in a single pass, every point of a strictly
// above the line followed by every point of b not above it, then applying
// the push-to-front/push-to-back mutation to the result. Every point of E
// lies on exactly one side of the line and both parents contain every point
// of E exactly once, so dst is a bijection on E without a post-check.
func CrossoverMutate(dst, a, b []Point, w16, h16 uint16, coeffRange int, rng *Rand) {
	invariant(len(dst) == len(a) && len(dst) == len(b), "CrossoverMutate: length mismatch")
	line := randomLine(w16, h16, coeffRange, rng)
	pw := newPushWriter(dst, rng)
	for _, p := range a {
		if line.above(p) {
			pw.write(p)
		}
	}
	for _, p := range b {
		if !line.above(p) {
			pw.write(p)
		}
	}
}
