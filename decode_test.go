package tilesolver

import (
	"testing"
)

// bestOf runs a handful of the fixed heuristic seeds plus a few random
// shuffles and returns the lowest fast-count fitness seen. It stands in for
// a short, deterministic search in scenario tests that only need "the
// solver can find the known-good answer," not a full Solve run.
func bestOf(t *testing.T, g *Grid, extraSeed uint64) int {
	t.Helper()
	scratch := newDecodeScratch(g)
	best := -1
	rng := NewRand(extraSeed)
	candidates := InitialPopulation(g, 64, 8, rng)
	for _, genome := range candidates {
		fit := FastCount(g, genome, scratch)
		if best == -1 || fit < best {
			best = fit
		}
	}
	return best
}

func assertDecompositionValid(t *testing.T, g *Grid, squares []Square) {
	t.Helper()
	covered := make(map[[2]uint16]bool)
	for _, sq := range squares {
		for dy := uint16(0); dy < sq.Size; dy++ {
			for dx := uint16(0); dx < sq.Size; dx++ {
				x, y := sq.X+dx, sq.Y+dy
				if x >= g.W || y >= g.H {
					t.Fatalf("square %+v extends outside the grid", sq)
				}
				if g.IsBlocked(x, y) {
					t.Fatalf("square %+v covers blocked cell (%d,%d)", sq, x, y)
				}
				key := [2]uint16{x, y}
				if covered[key] {
					t.Fatalf("cell (%d,%d) covered by more than one square", x, y)
				}
				covered[key] = true
			}
		}
	}
	if len(covered) != g.EmptyCount {
		t.Fatalf("decomposition covers %d cells, grid has %d empty cells", len(covered), g.EmptyCount)
	}
}

func TestScenarioS1_2x2Empty(t *testing.T) {
	g, err := NewGrid(rect(2, 2))
	if err != nil {
		t.Fatal(err)
	}
	got := bestOf(t, g, 1)
	if got != 1 {
		t.Errorf("S1: got count %d, want 1", got)
	}
}

// TestScenarioS2_3x3Empty: a fully empty N x N grid always admits a single
// N x N square (N(0,0) == N by the DP in 4.2), same as S1, S3 and S6's
// empty cases — a 3x3 empty grid is no exception, so the expected count is
// 1, not the higher figure a differently-shaped 3x3 instance might produce.
func TestScenarioS2_3x3Empty(t *testing.T) {
	g, err := NewGrid(rect(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	got := bestOf(t, g, 2)
	if got != 1 {
		t.Errorf("S2: got count %d, want 1", got)
	}
}

func TestScenarioS3_4x4Empty(t *testing.T) {
	g, err := NewGrid(rect(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	got := bestOf(t, g, 3)
	if got != 1 {
		t.Errorf("S3: got count %d, want 1", got)
	}
}

func TestScenarioS4_5x5Empty(t *testing.T) {
	g, err := NewGrid(rect(5, 5))
	if err != nil {
		t.Fatal(err)
	}
	got := bestOf(t, g, 4)
	if got > 8 {
		t.Errorf("S4: got count %d, want <= 8", got)
	}
}

func TestScenarioS5_3x3CenterBlocked(t *testing.T) {
	g, err := NewGrid(rect(3, 3, [2]int{1, 1}))
	if err != nil {
		t.Fatal(err)
	}
	got := bestOf(t, g, 5)
	if got != 8 {
		t.Errorf("S5: got count %d, want 8", got)
	}
}

func TestScenarioS6_10x10Empty(t *testing.T) {
	g, err := NewGrid(rect(10, 10))
	if err != nil {
		t.Fatal(err)
	}
	got := bestOf(t, g, 6)
	if got != 1 {
		t.Errorf("S6: got count %d, want 1", got)
	}
}

func TestScenarioS6_10x10CornerBlocked(t *testing.T) {
	g, err := NewGrid(rect(10, 10, [2]int{0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	got := bestOf(t, g, 7)
	if got > 10 {
		t.Errorf("S6 variant: got count %d, want a small constant (<=10)", got)
	}
}

// TestCountConsistency is property 3: FastCount must equal len(Expand(p))
// for every valid permutation.
func TestCountConsistency(t *testing.T) {
	g, err := NewGrid(rect(7, 6, [2]int{2, 2}, [2]int{4, 1}))
	if err != nil {
		t.Fatal(err)
	}
	scratch := newDecodeScratch(g)
	rng := NewRand(11)
	for i := 0; i < 20; i++ {
		genome := RandomGenome(g, rng)
		fast := FastCount(g, genome, scratch)
		full := Expand(g, genome)
		if fast != len(full) {
			t.Errorf("iteration %d: FastCount=%d, len(Expand)=%d", i, fast, len(full))
		}
		assertDecompositionValid(t, g, full)
	}
}

func TestExpandOnEmptyEligibleGrid(t *testing.T) {
	// A 1-wide strip has no cell with N >= 2 anywhere: every cell must come
	// out as its own 1x1 square regardless of genome content.
	g, err := NewGrid(rect(1, 5))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Eligible) != 0 {
		t.Fatalf("expected no eligible points on a 1-wide strip, got %d", len(g.Eligible))
	}
	squares := Expand(g, nil)
	assertDecompositionValid(t, g, squares)
	if len(squares) != 5 {
		t.Errorf("got %d squares, want 5", len(squares))
	}
}
