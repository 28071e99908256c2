package tilesolver

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Island runs one independent generational search: a 2K-wide population, a
// private Rand and decode scratch, and periodic contact with a Mailbox to
// exchange bests with its peers. Nothing on an Island is shared with any
// other Island — every field it touches during Run is owned exclusively by
// it, which is what lets an Orchestrator run many Islands concurrently with
// no locking anywhere but the Mailbox.
type Island struct {
	id       int
	grid     *Grid
	cfg      Config
	puzzleID string

	rng     *Rand
	pop     *Population
	scratch *decodeScratch
	mailbox Mailbox
	log     zerolog.Logger
}

// NewIsland builds an Island with its own population, seeded and evaluated,
// ready for Run. seed should differ across islands in the same Orchestrator.
func NewIsland(id int, grid *Grid, cfg Config, puzzleID string, mailbox Mailbox, seed uint64, log zerolog.Logger) *Island {
	isl := &Island{
		id:       id,
		grid:     grid,
		cfg:      cfg,
		puzzleID: puzzleID,
		rng:      NewRand(seed),
		pop:      NewPopulation(cfg.PopulationSize, grid.GenomeLen()),
		scratch:  newDecodeScratch(grid),
		mailbox:  mailbox,
		log:      log.With().Int("island", id).Logger(),
	}
	isl.seedPopulation()
	return isl
}

func (isl *Island) seedPopulation() {
	seeds := InitialPopulation(isl.grid, len(isl.pop.Genomes), isl.cfg.AngleSeedSamples, isl.rng)
	for i, s := range seeds {
		copy(isl.pop.Genomes[i], s)
		isl.pop.Fitness[i] = FastCount(isl.grid, isl.pop.Genomes[i], isl.scratch)
	}
}

// Run drives generations until ctx is done, returning the best genome found
// and its fitness. It periodically offers its current best to isl.mailbox
// and, if a peer has published something better for this puzzle, splices
// that genome into the working population so the island's next generation
// builds on it.
func (isl *Island) Run(ctx context.Context) (Genome, int) {
	interval := isl.cfg.PeerShareInterval
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	generations := 0
	for {
		isl.pop.Select()
		best := isl.pop.Best(isl.pop.K)

		select {
		case <-ctx.Done():
			isl.log.Info().Int("generations", generations).Int("best", isl.pop.Fitness[best]).Msg("island stopped")
			return isl.pop.Genomes[best], isl.pop.Fitness[best]
		case <-ticker.C:
			isl.exchangeWithPeers(best)
		default:
		}

		isl.spawnOffspring()
		generations++
		if isl.cfg.Metrics != nil {
			isl.cfg.Metrics.Generations.Inc()
		}
	}
}

func (isl *Island) exchangeWithPeers(bestIdx int) {
	off := Offering{PuzzleID: isl.puzzleID, Genome: isl.pop.Genomes[bestIdx], Fitness: isl.pop.Fitness[bestIdx]}
	isl.mailbox.Offer(off)

	worst := isl.worstOf(isl.pop.K)
	peer, ok := isl.mailbox.Best(isl.puzzleID)
	if !ok || peer.Fitness >= isl.pop.Fitness[worst] {
		return
	}
	if !ValidGenome(isl.grid, peer.Genome) {
		isl.log.Warn().Err(ErrPeerInjectInvalid).Msg("rejected peer offering")
		return
	}
	copy(isl.pop.Genomes[worst], peer.Genome)
	isl.pop.Fitness[worst] = peer.Fitness
	isl.log.Info().Int("fitness", peer.Fitness).Msg("adopted peer offering")
	if isl.cfg.Metrics != nil {
		isl.cfg.Metrics.Adoptions.Inc()
	}
}

func (isl *Island) worstOf(n int) int {
	worst := 0
	for i := 1; i < n; i++ {
		if isl.pop.Fitness[i] > isl.pop.Fitness[worst] {
			worst = i
		}
	}
	return worst
}

// spawnOffspring fills slots [K, 2K) from parents drawn out of [0, K),
// choosing crossover+mutate or copy+mutate at random (50/50) for each child.
func (isl *Island) spawnOffspring() {
	k := isl.pop.K
	for i := k; i < len(isl.pop.Genomes); i++ {
		child := isl.pop.Genomes[i]
		if isl.rng.Intn(2) == 0 {
			a := isl.pop.Genomes[isl.rng.Intn(k)]
			b := isl.pop.Genomes[isl.rng.Intn(k)]
			CrossoverMutate(child, a, b, isl.grid.W, isl.grid.H, isl.cfg.LineCoefficientRange, isl.rng)
		} else {
			parent := isl.pop.Genomes[isl.rng.Intn(k)]
			CopyMutate(child, parent, isl.rng)
		}
		isl.pop.Fitness[i] = FastCount(isl.grid, child, isl.scratch)
	}
}
