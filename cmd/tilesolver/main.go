// Command tilesolver reads a puzzle document and searches it for a
// minimal-square decomposition.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cimpress/tilesolver"
	"github.com/cimpress/tilesolver/internal/broadcast"
	"github.com/cimpress/tilesolver/internal/challenge"
	"github.com/cimpress/tilesolver/internal/puzzle"
)

const usage = `Usage: tilesolver <puzzle.json>

Positional arguments:
  puzzle.json   Path to a puzzle document (see internal/puzzle for the schema)

Flags:
`

func main() {
	jsonOut := flag.Bool("json", false, "Output the result as JSON")
	verbose := flag.Bool("verbose", false, "Log info-level progress (island stop, peer adoption, solve summary)")
	population := flag.Int("population", tilesolver.DefaultConfig().PopulationSize, "Survivors kept per generation (per island)")
	workers := flag.Int("workers", 0, "Number of islands to run (0 = GOMAXPROCS)")
	deadline := flag.Duration("deadline", tilesolver.DefaultConfig().Deadline, "Wall-clock search budget")
	seed := flag.Uint64("seed", tilesolver.DefaultConfig().Seed, "Random seed")
	submit := flag.String("submit", "", "Challenge API key: submit the result instead of printing it")
	challengeURL := flag.String("challenge-url", "", "Challenge API base URL, required with -submit")
	listen := flag.String("listen", "", "Address to accept peer broadcast connections on (e.g. :7100)")
	peer := flag.String("peer", "", "Peer broadcast address to dial (e.g. host:7100)")
	metricsAddr := flag.String("metrics-addr", "", "Address to serve Prometheus metrics on (e.g. :9090); empty disables metrics")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		flag.Usage()
		os.Exit(1)
	}

	level := zerolog.InfoLevel
	if !*verbose {
		level = zerolog.WarnLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	pz, err := puzzle.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("puzzle", pz.ID).Uint16("width", pz.Grid.W).Uint16("height", pz.Grid.H).
		Int("eligible", pz.Grid.GenomeLen()).Msg("puzzle loaded")

	cfg := tilesolver.DefaultConfig()
	cfg.PopulationSize = *population
	cfg.Workers = *workers
	cfg.Deadline = *deadline
	cfg.Seed = *seed

	if *metricsAddr != "" {
		reg := prometheus.NewRegistry()
		cfg.Metrics = tilesolver.NewMetrics(reg)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Warn().Err(err).Msg("metrics server stopped")
			}
		}()
		defer srv.Close()
		log.Info().Str("addr", *metricsAddr).Msg("serving metrics")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var mailbox tilesolver.Mailbox
	if *listen != "" || *peer != "" {
		bm := broadcast.New("", log)
		if *listen != "" {
			go func() {
				if err := bm.Listen(*listen, ctx.Done()); err != nil {
					log.Warn().Err(err).Msg("broadcast listen failed")
				}
			}()
		}
		if *peer != "" {
			if err := bm.Dial(*peer); err != nil {
				log.Warn().Err(err).Msg("broadcast dial failed")
			}
		}
		mailbox = bm
	}

	res, err := tilesolver.Solve(ctx, pz.Grid, cfg, pz.ID, mailbox, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *submit != "" {
		client := challenge.New(*challengeURL, *submit)
		squares := make([]challenge.Square, len(res.Squares))
		for i, sq := range res.Squares {
			squares[i] = challenge.Square{X: sq.X, Y: sq.Y, Size: sq.Size}
		}
		result, err := client.Submit(ctx, pz.ID, squares)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		log.Info().Bool("accepted", result.Accepted).Int("rank", result.Rank).Str("message", result.Message).Msg("submitted")
		return
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
	} else {
		fmt.Println(tilesolver.FormatResult(res))
	}
}
