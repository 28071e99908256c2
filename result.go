package tilesolver

import (
	"fmt"
	"sort"
	"strings"
)

// FormatResult renders a Result as a plain-text table: the square count and
// elapsed time, followed by a size histogram of the decomposition sorted
// largest first. Mirrors the teacher's table-formatting style (fixed-width
// columns, a rule row of dashes) rather than a structured encoding, since
// this is meant for terminal/log output — JSON callers should marshal
// Result directly instead.
func FormatResult(res Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-12s %8s\n", "Squares", "Elapsed")
	fmt.Fprintf(&b, "%-12s %8s\n", "------------", "--------")
	fmt.Fprintf(&b, "%-12d %7.2fs\n\n", res.Fitness, res.Elapsed.Seconds())

	hist := sizeHistogram(res.Squares)
	fmt.Fprintf(&b, "%-8s %8s\n", "Size", "Count")
	fmt.Fprintf(&b, "%-8s %8s\n", "--------", "--------")
	for _, size := range sortedSizesDesc(hist) {
		fmt.Fprintf(&b, "%-8d %8d\n", size, hist[size])
	}
	return b.String()
}

func sizeHistogram(squares []Square) map[uint16]int {
	hist := make(map[uint16]int)
	for _, sq := range squares {
		hist[sq.Size]++
	}
	return hist
}

func sortedSizesDesc(hist map[uint16]int) []uint16 {
	sizes := make([]uint16, 0, len(hist))
	for size := range hist {
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] > sizes[j] })
	return sizes
}
