// Package puzzle loads challenge-API puzzle documents into a
// tilesolver.Grid. It is the one place in the module that knows the
// on-disk/over-the-wire JSON shape; everything downstream of Load only
// ever sees a Grid.
package puzzle

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/cimpress/tilesolver"
)

// Puzzle is a loaded puzzle document: an identifier (used to scope Mailbox
// exchange and challenge-API submission) and the Grid built from its mask.
type Puzzle struct {
	ID   string
	Grid *tilesolver.Grid
}

// Load parses a puzzle document of the form the challenge API serves it in:
//
//	{
//	  "id": "puzzle-42",
//	  "puzzle": [[1,1,0,1], [0,1,1,1], ...]
//	}
//
// puzzle[y] is one grid row; 0 marks a blocked cell, any nonzero value is
// empty. Rows may vary in length in the raw document (the API pads ragged
// rows itself); Load requires every row to already be the same length,
// since a ragged mask has no well-defined width for NewGrid.
func Load(data []byte) (*Puzzle, error) {
	root := gjson.ParseBytes(data)
	if !root.Exists() {
		return nil, fmt.Errorf("puzzle: empty or invalid JSON document")
	}

	id := root.Get("id").String()
	if id == "" {
		return nil, fmt.Errorf("puzzle: missing id field")
	}

	rowsResult := root.Get("puzzle")
	if !rowsResult.IsArray() {
		return nil, fmt.Errorf("puzzle: missing puzzle array")
	}

	var mask [][]bool
	var width int
	var parseErr error
	rowsResult.ForEach(func(_, row gjson.Result) bool {
		if !row.IsArray() {
			parseErr = fmt.Errorf("puzzle: row %d is not an array", len(mask))
			return false
		}
		cells := row.Array()
		if len(mask) == 0 {
			width = len(cells)
		} else if len(cells) != width {
			parseErr = fmt.Errorf("puzzle: row %d has length %d, want %d", len(mask), len(cells), width)
			return false
		}
		r := make([]bool, len(cells))
		for x, cell := range cells {
			r[x] = cell.Int() == 0
		}
		mask = append(mask, r)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(mask) == 0 {
		return nil, fmt.Errorf("puzzle: puzzle array has no rows")
	}

	grid, err := tilesolver.NewGrid(mask)
	if err != nil {
		return nil, fmt.Errorf("puzzle %s: %w", id, err)
	}
	return &Puzzle{ID: id, Grid: grid}, nil
}
