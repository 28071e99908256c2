package tilesolver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// stubMailbox always answers Best with a fixed offering, ignoring Offer.
type stubMailbox struct {
	off Offering
	ok  bool
}

func (s *stubMailbox) Offer(Offering) {}

func (s *stubMailbox) Best(string) (Offering, bool) { return s.off, s.ok }

func newTestIsland(t *testing.T, mailbox Mailbox) *Island {
	t.Helper()
	g, err := NewGrid(rect(6, 6))
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig()
	cfg.PopulationSize = 4
	return NewIsland(0, g, cfg, "peer-test", mailbox, 1, zerolog.Nop())
}

func TestExchangeWithPeersComparesAgainstWorstParentNotBest(t *testing.T) {
	isl := newTestIsland(t, nil)
	isl.pop.Select()
	best := isl.pop.Best(isl.pop.K)
	worst := isl.worstOf(isl.pop.K)

	// A peer fitness between the island's best and its worst-of-K must be
	// adopted: it beats the worst parent even though it doesn't beat the
	// island's current best.
	if isl.pop.Fitness[worst] <= isl.pop.Fitness[best] {
		t.Skip("fixture population too small a spread to exercise this case")
	}
	peerFitness := isl.pop.Fitness[worst] - 1
	peerGenome := append(Genome(nil), isl.pop.Genomes[best]...)
	isl.mailbox = &stubMailbox{off: Offering{PuzzleID: "peer-test", Genome: peerGenome, Fitness: peerFitness}, ok: true}

	isl.exchangeWithPeers(best)

	if isl.pop.Fitness[worst] != peerFitness {
		t.Fatalf("expected peer offering beating the worst parent to be adopted into slot %d, fitness stayed %d", worst, isl.pop.Fitness[worst])
	}
}

func TestExchangeWithPeersRejectsInvalidGenomeAndLogsSentinel(t *testing.T) {
	var buf bytes.Buffer
	isl := newTestIsland(t, nil)
	isl.log = zerolog.New(&buf)

	best := 0
	worst := isl.worstOf(isl.pop.K)
	before := append(Genome(nil), isl.pop.Genomes[worst]...)

	badGenome := make(Genome, len(isl.pop.Genomes[best])-1) // wrong length, not a bijection
	isl.mailbox = &stubMailbox{off: Offering{PuzzleID: "peer-test", Genome: badGenome, Fitness: -1}, ok: true}

	isl.exchangeWithPeers(best)

	for i := range before {
		if isl.pop.Genomes[worst][i] != before[i] {
			t.Fatalf("invalid peer offering must not be adopted, slot %d changed", worst)
		}
	}
	if !strings.Contains(buf.String(), ErrPeerInjectInvalid.Error()) {
		t.Fatalf("expected log to report %v, got %q", ErrPeerInjectInvalid, buf.String())
	}
}
