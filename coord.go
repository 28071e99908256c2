package tilesolver

import "fmt"

// Point is a grid coordinate packed into a single 32-bit word: the high 16
// bits hold Y, the low 16 bits hold X. Packing Y into the high bits makes
// ascending Point order equal row-major (Y, X) order, which the decoder and
// initial-population heuristics both rely on.
type Point uint32

// PackPoint encodes a coordinate as a Point. x and y must each fit in 16 bits.
func PackPoint(x, y uint16) Point {
	return Point(y)<<16 | Point(x)
}

// X returns the packed point's X coordinate.
func (p Point) X() uint16 {
	return uint16(p & 0xffff)
}

// Y returns the packed point's Y coordinate.
func (p Point) Y() uint16 {
	return uint16(p >> 16)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X(), p.Y())
}
