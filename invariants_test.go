package tilesolver

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"
)

func openGrid(w, h int) *Grid {
	mask := make([][]bool, h)
	for y := range mask {
		mask[y] = make([]bool, w)
	}
	g, err := NewGrid(mask)
	Expect(err).ToNot(HaveOccurred())
	return g
}

var _ = Describe("CopyMutate", func() {
	DescribeTable("preserves the bijection on E",
		func(w, h int, seed uint64) {
			g := openGrid(w, h)
			rng := NewRand(seed)
			src := RandomGenome(g, rng)
			dst := make(Genome, len(src))

			CopyMutate(dst, src, rng)

			Expect(ValidGenome(g, dst)).To(BeTrue())
		},
		Entry("4x4 seed 1", 4, 4, uint64(1)),
		Entry("6x5 seed 7", 6, 5, uint64(7)),
		Entry("10x10 seed 42", 10, 10, uint64(42)),
	)
})

var _ = Describe("CrossoverMutate", func() {
	DescribeTable("preserves the bijection on E regardless of parents or line",
		func(w, h int, seed uint64) {
			g := openGrid(w, h)
			rng := NewRand(seed)
			a := RandomGenome(g, rng)
			b := RandomGenome(g, rng)
			dst := make(Genome, len(a))

			CrossoverMutate(dst, a, b, g.W, g.H, 32, rng)

			Expect(ValidGenome(g, dst)).To(BeTrue())
		},
		Entry("4x4 seed 1", 4, 4, uint64(1)),
		Entry("6x5 seed 7", 6, 5, uint64(7)),
		Entry("10x10 seed 42", 10, 10, uint64(42)),
		Entry("1x9 degenerate strip", 1, 9, uint64(3)),
	)

	It("partitions every eligible point onto exactly one side of the line", func() {
		g := openGrid(8, 8)
		rng := NewRand(99)
		line := randomLine(g.W, g.H, 32, rng)

		above := 0
		for _, p := range g.Eligible {
			if line.above(p) {
				above++
			}
		}
		Expect(above).To(BeNumerically(">=", 0))
		Expect(above).To(BeNumerically("<=", len(g.Eligible)))
	})
})

var _ = Describe("Population.Select", func() {
	It("keeps the K lowest-fitness individuals in [0, K) regardless of starting order", func() {
		k := 5
		p := &Population{
			Genomes: make([]Genome, 2*k),
			Fitness: []int{9, 3, 7, 1, 8, 2, 6, 0, 5, 4},
			K:       k,
		}
		for i := range p.Genomes {
			p.Genomes[i] = Genome{Point(i)}
		}

		p.Select()

		top := append([]int(nil), p.Fitness[:k]...)
		rest := append([]int(nil), p.Fitness[k:]...)

		maxTop := top[0]
		for _, f := range top {
			if f > maxTop {
				maxTop = f
			}
		}
		for _, f := range rest {
			Expect(f).To(BeNumerically(">=", maxTop))
		}
	})

	It("is idempotent: selecting twice doesn't change the top-K set", func() {
		k := 4
		fitness := []int{5, 2, 9, 1, 3, 8, 0, 7}
		p := &Population{
			Genomes: make([]Genome, len(fitness)),
			Fitness: append([]int(nil), fitness...),
			K:       k,
		}
		for i := range p.Genomes {
			p.Genomes[i] = Genome{Point(i)}
		}
		p.Select()
		firstTop := map[int]bool{}
		for _, f := range p.Fitness[:k] {
			firstTop[f] = true
		}

		p.Select()
		for _, f := range p.Fitness[:k] {
			Expect(firstTop[f]).To(BeTrue())
		}
	})
})
