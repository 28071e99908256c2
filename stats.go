package tilesolver

import "github.com/prometheus/client_golang/prometheus"

// Metrics is the Prometheus surface a long-running process (see
// cmd/tilesolver's -metrics-addr flag) registers once and passes down to
// Solve callers so generations, adoptions, and outcomes are
// observable without threading a logger through every hot-loop call.
type Metrics struct {
	Generations prometheus.Counter
	Adoptions   prometheus.Counter
	BestSquares prometheus.Gauge
	SolveTotal  *prometheus.CounterVec
}

// NewMetrics registers a Metrics set on reg and returns it. Passing a fresh
// prometheus.NewRegistry() per test keeps concurrent test runs from
// colliding on the default global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tilesolver_generations_total",
			Help: "Generations evaluated across all islands.",
		}),
		Adoptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tilesolver_peer_adoptions_total",
			Help: "Times an island replaced a population member with a peer's offering.",
		}),
		BestSquares: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tilesolver_best_squares",
			Help: "Square count of the best decomposition found by the most recent solve.",
		}),
		SolveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tilesolver_solves_total",
			Help: "Completed solves, partitioned by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.Generations, m.Adoptions, m.BestSquares, m.SolveTotal)
	return m
}
