package tilesolver

// Population holds 2K genomes and their fitness (square count, lower is
// better) side by side in parallel slices: Genomes[i] scores Fitness[i].
// The slices' length (2K) is capacity, not necessarily how many slots are
// meaningful at any moment — Select reorders both slices in place so the K best occupy
// slots [0, K).
type Population struct {
	Genomes []Genome
	Fitness []int
	K       int
}

// Genome is one permutation of a Grid's Eligible points.
type Genome = []Point

// NewPopulation allocates a population of 2*k genomes of length genomeLen.
// Every genome slice is preallocated once; operators write into existing
// backing arrays for the lifetime of an Island, never appending.
func NewPopulation(k, genomeLen int) *Population {
	p := &Population{
		Genomes: make([]Genome, 2*k),
		Fitness: make([]int, 2*k),
		K:       k,
	}
	for i := range p.Genomes {
		p.Genomes[i] = make(Genome, genomeLen)
	}
	return p
}

func (p *Population) swap(i, j int) {
	p.Genomes[i], p.Genomes[j] = p.Genomes[j], p.Genomes[i]
	p.Fitness[i], p.Fitness[j] = p.Fitness[j], p.Fitness[i]
}

// Select performs a partial partition (quickselect over a Lomuto-scheme
// partition, grounded on
// the original solver's partition_population/divide_population) so that
// after it returns, slots [0, K) hold the K individuals with the lowest
// fitness, in no particular order within that range, and slots [K, len)
// hold the rest. This is the elitist truncation step between generations:
// O(n) expected instead of a full O(n log n) sort, since only membership in
// the top K matters, not the internal order.
func (p *Population) Select() {
	if p.K <= 0 || p.K >= len(p.Genomes) {
		return
	}
	p.quickselect(0, len(p.Genomes)-1, p.K)
}

// quickselect partitions lo..hi (inclusive) so the k smallest-by-Fitness
// elements (0-indexed from lo) end up in lo..lo+k-1.
func (p *Population) quickselect(lo, hi, k int) {
	for lo < hi {
		pivotIdx := p.partition(lo, hi, lo+(hi-lo)/2)
		rank := pivotIdx - lo + 1
		switch {
		case k == rank:
			return
		case k < rank:
			hi = pivotIdx - 1
		default:
			k -= rank
			lo = pivotIdx + 1
		}
	}
}

// partition is a Lomuto-scheme partition around p.Fitness[pivotIdx],
// returning the pivot's final resting index.
func (p *Population) partition(lo, hi, pivotIdx int) int {
	pivot := p.Fitness[pivotIdx]
	p.swap(pivotIdx, hi)
	store := lo
	for i := lo; i < hi; i++ {
		if p.Fitness[i] < pivot {
			p.swap(i, store)
			store++
		}
	}
	p.swap(store, hi)
	return store
}

// Best returns the index of the lowest-fitness individual among the first n
// slots (typically K, after Select).
func (p *Population) Best(n int) int {
	best := 0
	for i := 1; i < n; i++ {
		if p.Fitness[i] < p.Fitness[best] {
			best = i
		}
	}
	return best
}
