package tilesolver

import (
	"errors"
	"fmt"
)

// ErrBadGrid is returned by NewGrid when the mask is non-rectangular, its
// dimensions exceed the packed coordinate range, or it has no empty cells.
var ErrBadGrid = errors.New("tilesolver: bad grid")

// ErrPeerInjectInvalid identifies a peer-offered permutation that cannot be
// adopted: wrong length, or not a bijection on the grid's eligible points.
// Island.exchangeWithPeers logs it rather than returning it, since a bad
// peer offering isn't a reason to fail the island's own search.
var ErrPeerInjectInvalid = errors.New("tilesolver: invalid peer offering")

// InvariantError reports a violated internal invariant: a bug in the engine,
// never a consequence of caller input. Callers should not attempt recovery;
// the process is expected to crash so the failure surfaces immediately.
type InvariantError struct {
	Check string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("tilesolver: internal invariant violated: %s", e.Check)
}

func invariant(ok bool, check string) {
	if !ok {
		panic(&InvariantError{Check: check})
	}
}
