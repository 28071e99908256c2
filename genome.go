package tilesolver

import "sort"

// ValidGenome reports whether genome is a bijection on grid.Eligible. The
// hot loop never calls this — copy+mutate and crossover+mutate are
// constructed to preserve the bijection by construction (see operator.go) —
// but it's used at the boundary to validate peer-injected permutations and
// in tests to check that invariant holds.
func ValidGenome(g *Grid, genome []Point) bool {
	if len(genome) != len(g.Eligible) {
		return false
	}
	seen := make(map[Point]bool, len(genome))
	for _, p := range genome {
		if seen[p] {
			return false
		}
		seen[p] = true
	}
	for _, p := range g.Eligible {
		if !seen[p] {
			return false
		}
	}
	return true
}

type weightTriple struct{ a, b, c int }

// weightedSeeds are the small discrete (alpha, beta, gamma) triples spec.md
// 4.9 calls for in the alpha*X + beta*Y + gamma*N key.
var weightedSeeds = []weightTriple{
	{1, 1, -1}, {1, -1, 1}, {-1, 1, 1},
	{2, 1, -1}, {1, 2, -1}, {1, 1, -2},
}

func cloneEligible(g *Grid) []Point {
	seed := make([]Point, len(g.Eligible))
	copy(seed, g.Eligible)
	return seed
}

func sortedByKey(g *Grid, key func(p Point) int) []Point {
	seed := cloneEligible(g)
	sort.Slice(seed, func(i, j int) bool { return key(seed[i]) < key(seed[j]) })
	return seed
}

// baseSeeds builds the ascend/descend sorts on X, Y, N and the weighted-sum
// seeds from spec.md 4.9.
func baseSeeds(g *Grid) [][]Point {
	seeds := make([][]Point, 0, 6+len(weightedSeeds))

	seeds = append(seeds,
		sortedByKey(g, func(p Point) int { return int(p.X()) }),
		sortedByKey(g, func(p Point) int { return -int(p.X()) }),
		sortedByKey(g, func(p Point) int { return int(p.Y()) }),
		sortedByKey(g, func(p Point) int { return -int(p.Y()) }),
		sortedByKey(g, func(p Point) int { return int(g.N(p.X(), p.Y())) }),
		sortedByKey(g, func(p Point) int { return -int(g.N(p.X(), p.Y())) }),
	)

	for _, w := range weightedSeeds {
		w := w
		seeds = append(seeds, sortedByKey(g, func(p Point) int {
			return w.a*int(p.X()) + w.b*int(p.Y()) + w.c*int(g.N(p.X(), p.Y()))
		}))
	}
	return seeds
}

// AngleSeeds generalizes baseSeeds' weighted sum into the sweep the original
// solver used (original_source/initialize.py: make_angle_heuristic): for
// `samples` evenly spaced splits of the X/Y weight and 5 discrete N-weight
// ratios, sort E by split*X + (1-split)*Y - ratio*N. This supplements
// spec.md's fixed handful of seeds with a denser structured family before
// falling back to random shuffles.
func AngleSeeds(g *Grid, samples int) [][]Point {
	if samples < 2 {
		samples = 2
	}
	seeds := make([][]Point, 0, samples*5)
	for i := 0; i < samples; i++ {
		split := float64(i) / float64(samples-1)
		for ratio := 0; ratio < 5; ratio++ {
			split, ratio := split, ratio
			seeds = append(seeds, sortedByKey(g, func(p Point) int {
				key := split*float64(p.X()) + (1-split)*float64(p.Y())
				key -= float64(ratio) * float64(g.N(p.X(), p.Y()))
				return int(key * 1000) // stable integer ordering
			}))
		}
	}
	return seeds
}

// RandomGenome returns a uniform-random shuffle of grid.Eligible.
func RandomGenome(g *Grid, rng *Rand) []Point {
	seed := cloneEligible(g)
	rng.Shuffle(len(seed), func(i, j int) { seed[i], seed[j] = seed[j], seed[i] })
	return seed
}

// InitialPopulation builds count genomes: spec.md's fixed heuristic sorts
// and weighted-sum seeds, then as many AngleSeeds as fit, then uniform
// random shuffles for whatever's left. If the heuristic families alone
// exceed count, the result is truncated (small grids can have very few
// eligible points, so this triggers more often than it might seem).
func InitialPopulation(g *Grid, count, angleSamples int, rng *Rand) [][]Point {
	seeds := baseSeeds(g)
	seeds = append(seeds, AngleSeeds(g, angleSamples)...)

	if len(seeds) > count {
		return seeds[:count]
	}
	for len(seeds) < count {
		seeds = append(seeds, RandomGenome(g, rng))
	}
	return seeds
}
