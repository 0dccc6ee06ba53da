package stats

import "sort"

// Quantile returns the q-quantile of values using linear interpolation
// between closest ranks. q must be in [0, 1]. Returns 0 for empty input.
func Quantile(values []float64, q float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return values[0]
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	// Position between closest ranks
	h := float64(n-1) * q
	lo := int(h)
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Binning is the result of a quantile cut: the bin count actually
// achieved after duplicate edges collapse, and the 1-based bin
// assignment for every input value in original order.
type Binning struct {
	Bins        int
	Edges       []float64 // deduplicated, ascending, length Bins+1
	Assignments []int     // per value, in [1, Bins]
}

// QCut partitions values into up to bins equal-population groups by
// quantile edges. Repeated boundary values collapse adjacent edges and
// reduce the achieved bin count instead of failing; the minimum result
// is a single bin covering everything.
func QCut(values []float64, bins int) Binning {
	n := len(values)
	if n == 0 || bins < 1 {
		return Binning{Bins: 0}
	}

	// Quantile edges at i/bins, then drop duplicates
	edges := make([]float64, 0, bins+1)
	for i := 0; i <= bins; i++ {
		edges = append(edges, Quantile(values, float64(i)/float64(bins)))
	}
	unique := edges[:1]
	for _, e := range edges[1:] {
		if e != unique[len(unique)-1] {
			unique = append(unique, e)
		}
	}

	// Degenerate distribution: everything in one bin
	if len(unique) < 2 {
		assignments := make([]int, n)
		for i := range assignments {
			assignments[i] = 1
		}
		return Binning{
			Bins:        1,
			Edges:       []float64{unique[0], unique[0]},
			Assignments: assignments,
		}
	}

	result := Binning{
		Bins:        len(unique) - 1,
		Edges:       unique,
		Assignments: make([]int, n),
	}

	// Intervals are (edge[i-1], edge[i]], the lowest extended to
	// include the minimum
	for i, v := range values {
		bin := sort.SearchFloat64s(unique[1:], v) + 1
		if bin > result.Bins {
			bin = result.Bins
		}
		result.Assignments[i] = bin
	}

	return result
}

// RankFirst assigns ranks 1..n ascending by value, breaking ties by
// original position so that equal values receive distinct ranks.
func RankFirst(values []float64) []float64 {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	ranks := make([]float64, n)
	for pos, idx := range order {
		ranks[idx] = float64(pos + 1)
	}
	return ranks
}
