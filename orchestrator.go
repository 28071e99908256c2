package tilesolver

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of Solve: the best genome found across every
// island, its fitness (square count), and how long the search ran.
type Result struct {
	Genome  Genome
	Fitness int
	Elapsed time.Duration
	Squares []Square
}

// Solve runs Config.Workers islands (default GOMAXPROCS) against grid
// concurrently, each with an independently seeded Rand, sharing bests
// through mailbox. It returns once every island has stopped — either
// because cfg.Deadline elapsed or ctx was canceled by the caller — with the
// best genome any island produced, decoded into its concrete decomposition.
//
// puzzleID scopes the mailbox exchange: islands solving different puzzles
// against the same mailbox never adopt each other's offerings.
func Solve(ctx context.Context, grid *Grid, cfg Config, puzzleID string, mailbox Mailbox, log zerolog.Logger) (Result, error) {
	start := time.Now()

	if cfg.Deadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Deadline)
		defer cancel()
	}
	if mailbox == nil {
		mailbox = newLocalMailbox()
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	type outcome struct {
		genome  Genome
		fitness int
	}
	outcomes := make([]outcome, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			island := NewIsland(w, grid, cfg, puzzleID, mailbox, cfg.Seed+uint64(w)*0x9E3779B97F4A7C15, log)
			genome, fitness := island.Run(gctx)
			outcomes[w] = outcome{genome: genome, fitness: fitness}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if cfg.Metrics != nil {
			cfg.Metrics.SolveTotal.WithLabelValues("error").Inc()
		}
		return Result{}, err
	}

	best := 0
	for i := 1; i < len(outcomes); i++ {
		if outcomes[i].fitness < outcomes[best].fitness {
			best = i
		}
	}

	res := Result{
		Genome:  outcomes[best].genome,
		Fitness: outcomes[best].fitness,
		Elapsed: time.Since(start),
	}
	res.Squares = Expand(grid, res.Genome)
	log.Info().Int("fitness", res.Fitness).Dur("elapsed", res.Elapsed).Int("workers", workers).Msg("solve complete")
	if cfg.Metrics != nil {
		cfg.Metrics.BestSquares.Set(float64(res.Fitness))
		cfg.Metrics.SolveTotal.WithLabelValues("ok").Inc()
	}
	return res, nil
}
