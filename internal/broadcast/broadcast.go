// Package broadcast implements a tilesolver.Mailbox that shares offerings
// across processes over plain TCP, newline-delimited JSON connections. It
// generalizes the original solver's Twisted-based GrideaProtocol/GlobalBest
// pair (a shared-secret line protocol broadcasting the current best to every
// connected peer) onto goroutines and net.Conn.
package broadcast

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cimpress/tilesolver"
)

// wireOffering is the JSON line exchanged between peers.
type wireOffering struct {
	Secret   string          `json:"secret"`
	PuzzleID string          `json:"puzzle_id"`
	Genome   []tilesolver.Point `json:"genome"`
	Fitness  int             `json:"fitness"`
}

// Mailbox is a tilesolver.Mailbox backed by a set of TCP peer connections.
// Offer broadcasts to every connected peer; Best returns the best offering
// received so far, from any peer or from a local Offer call, whichever is
// lowest. Peers whose offering fails the shared secret check are dropped.
type Mailbox struct {
	secret string
	log    zerolog.Logger

	mu    sync.Mutex
	best  map[string]tilesolver.Offering
	peers []net.Conn
}

// New builds an empty Mailbox. Secret is the shared password every peer
// must present, matching PROTO_PASSWORD's role in the original protocol.
func New(secret string, log zerolog.Logger) *Mailbox {
	return &Mailbox{
		secret: secret,
		log:    log,
		best:   make(map[string]tilesolver.Offering),
	}
}

// Listen accepts peer connections on addr until ctxDone is closed.
func (m *Mailbox) Listen(addr string, ctxDone <-chan struct{}) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("broadcast: listen %s: %w", addr, err)
	}
	go func() {
		<-ctxDone
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			return nil
		}
		m.adopt(conn)
	}
}

// Dial connects to a peer's Listen address and adds it to the broadcast set.
func (m *Mailbox) Dial(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("broadcast: dial %s: %w", addr, err)
	}
	m.adopt(conn)
	return nil
}

func (m *Mailbox) adopt(conn net.Conn) {
	m.mu.Lock()
	m.peers = append(m.peers, conn)
	m.mu.Unlock()

	go m.readLoop(conn)
}

func (m *Mailbox) readLoop(conn net.Conn) {
	defer conn.Close()
	sc := bufio.NewScanner(conn)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for sc.Scan() {
		var w wireOffering
		if err := json.Unmarshal(sc.Bytes(), &w); err != nil {
			m.log.Warn().Err(err).Msg("broadcast: malformed offering, dropping peer")
			return
		}
		if w.Secret != m.secret {
			m.log.Warn().Msg("broadcast: bad secret, dropping peer")
			return
		}
		m.recordBest(tilesolver.Offering{PuzzleID: w.PuzzleID, Genome: w.Genome, Fitness: w.Fitness})
	}
}

func (m *Mailbox) recordBest(off tilesolver.Offering) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.best[off.PuzzleID]
	if !ok || off.Fitness < cur.Fitness {
		off.Genome = append([]tilesolver.Point(nil), off.Genome...)
		m.best[off.PuzzleID] = off
	}
}

// Offer records off locally and broadcasts it to every connected peer. off.Genome
// is only read here (recordBest copies it, json.Marshal below copies its
// contents onto the wire), so the caller's live population is never touched
// after Offer returns.
func (m *Mailbox) Offer(off tilesolver.Offering) {
	m.recordBest(off)

	line, err := json.Marshal(wireOffering{
		Secret: m.secret, PuzzleID: off.PuzzleID, Genome: off.Genome, Fitness: off.Fitness,
	})
	if err != nil {
		return
	}
	line = append(line, '\n')

	m.mu.Lock()
	peers := append([]net.Conn(nil), m.peers...)
	m.mu.Unlock()

	for _, p := range peers {
		if _, err := p.Write(line); err != nil {
			m.log.Warn().Err(err).Msg("broadcast: write failed, peer will be dropped on next read error")
		}
	}
}

// Best returns the best offering seen for puzzleID, from a peer or from a
// local Offer call, and false if none has arrived yet.
func (m *Mailbox) Best(puzzleID string) (tilesolver.Offering, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	off, ok := m.best[puzzleID]
	return off, ok
}

// Reset clears the recorded best for puzzleID, mirroring GlobalBest.reset:
// starting a new puzzle must not let a stale best from the previous one
// leak into the new search.
func (m *Mailbox) Reset(puzzleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.best, puzzleID)
}
