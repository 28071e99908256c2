package tilesolver

import "time"

// Config controls one Solve call: population shape, worker count, the
// mutation operator's line-coefficient range, and how often islands trade
// their current best. Mirrors the teacher's package-level cfg struct
// pattern, just promoted to a value so multiple concurrent Solve calls
// (e.g. the Lambda handler serving concurrent invocations) don't share
// mutable global state.
type Config struct {
	// PopulationSize is K: the number of survivors kept each generation.
	// The working population is 2*K individuals.
	PopulationSize int

	// Workers is the number of islands run concurrently. Zero means use
	// runtime.GOMAXPROCS(0).
	Workers int

	// Deadline bounds total wall-clock search time. Zero means run until
	// ctx is canceled by the caller.
	Deadline time.Duration

	// Seed derives every island's private Rand. Islands offset it so no
	// two islands share a stream.
	Seed uint64

	// LineCoefficientRange bounds the |a|, |b| coefficients CrossoverMutate
	// draws its splitting line from.
	LineCoefficientRange int

	// AngleSeedSamples is the number of angle-sweep splits AngleSeeds
	// generates per island's initial population.
	AngleSeedSamples int

	// PeerShareInterval is how often an island offers its current best to
	// its Mailbox and checks for a better peer offering. Grounded on the
	// original solver's wall-clock share cadence (network.py/run.py), which
	// checked in on a fixed period rather than every generation to keep
	// broadcast traffic off the hot path.
	PeerShareInterval time.Duration

	// Metrics, if non-nil, receives generation/adoption counters from every
	// island. Nil is safe and simply means no metrics are recorded.
	Metrics *Metrics
}

// DefaultConfig returns the configuration used when a caller doesn't
// override a field: population 200 (working set 400), one island per CPU,
// a ten second deadline, line coefficients in [-64, 64], 12 angle-seed
// samples, and a half-second peer-share cadence.
func DefaultConfig() Config {
	return Config{
		PopulationSize:       200,
		Workers:              0,
		Deadline:             10 * time.Second,
		Seed:                 1,
		LineCoefficientRange: 64,
		AngleSeedSamples:     12,
		PeerShareInterval:    500 * time.Millisecond,
	}
}
