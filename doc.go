// Package tilesolver implements an evolutionary search that partitions the
// empty cells of a rectangular grid into the smallest possible number of
// axis-aligned filled squares.
//
// A solution is represented as a permutation of the grid's eligible points
// (see Point and Grid); Island runs one independent search over that
// representation, and Solve runs several Islands in parallel and keeps the
// best result any of them finds within a deadline.
package tilesolver
