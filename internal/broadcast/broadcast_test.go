package broadcast

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cimpress/tilesolver"
)

func TestOfferAndBestRoundTripLocally(t *testing.T) {
	m := New("shh", zerolog.Nop())
	m.Offer(tilesolver.Offering{PuzzleID: "p", Genome: tilesolver.Genome{1, 2, 3}, Fitness: 9})

	got, ok := m.Best("p")
	if !ok {
		t.Fatal("expected a best offering after Offer")
	}
	if got.Fitness != 9 {
		t.Errorf("Fitness = %d, want 9", got.Fitness)
	}
}

func TestBestKeepsLowestFitness(t *testing.T) {
	m := New("shh", zerolog.Nop())
	m.Offer(tilesolver.Offering{PuzzleID: "p", Fitness: 9})
	m.Offer(tilesolver.Offering{PuzzleID: "p", Fitness: 4})
	m.Offer(tilesolver.Offering{PuzzleID: "p", Fitness: 20})

	got, _ := m.Best("p")
	if got.Fitness != 4 {
		t.Errorf("Fitness = %d, want 4 (lowest offered)", got.Fitness)
	}
}

func TestOfferCopiesGenomeInsteadOfAliasing(t *testing.T) {
	m := New("shh", zerolog.Nop())
	genome := tilesolver.Genome{1, 2, 3}
	m.Offer(tilesolver.Offering{PuzzleID: "p", Genome: genome, Fitness: 5})

	genome[0] = 99 // mutate the caller's backing array after Offer returns

	got, _ := m.Best("p")
	if got.Genome[0] != 1 {
		t.Fatalf("Best returned a genome aliasing the caller's array: got %v, want first element 1", got.Genome)
	}
}

func TestResetClearsBest(t *testing.T) {
	m := New("shh", zerolog.Nop())
	m.Offer(tilesolver.Offering{PuzzleID: "p", Fitness: 1})
	m.Reset("p")
	if _, ok := m.Best("p"); ok {
		t.Fatal("expected no best offering after Reset")
	}
}

func TestDialAndListenExchangeOfferings(t *testing.T) {
	server := New("shh", zerolog.Nop())
	done := make(chan struct{})
	defer close(done)
	go server.Listen("127.0.0.1:18732", done)
	time.Sleep(20 * time.Millisecond) // let the listener bind

	client := New("shh", zerolog.Nop())
	if err := client.Dial("127.0.0.1:18732"); err != nil {
		t.Fatal(err)
	}

	client.Offer(tilesolver.Offering{PuzzleID: "net", Genome: tilesolver.Genome{7}, Fitness: 2})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if off, ok := server.Best("net"); ok && off.Fitness == 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server never received the client's offering")
}
