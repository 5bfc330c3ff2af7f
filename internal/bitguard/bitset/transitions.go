package bitset

import "fmt"

// EnumerateTransitions walks the 2^d assignments over d ordered
// positions (typically the divergent bit positions between a data
// block and its backup), ordered by number of transitions ns = 0, 1,
// 2, ..., d-1, where ns is the count of positions where the chosen bit
// differs from the previous chosen bit. Bursty, contiguous damage
// reconstructs at small ns, so restore tries those first.
//
// For each transition-point tuple, two candidate assignments are
// produced (starting bit 0, starting bit 1) and passed to visit in
// that order. visit returns false to stop the entire enumeration
// (e.g. because the caller's brute-force budget is exhausted).
func EnumerateTransitions(d int, visit func(assignment []bool) bool) error {
	if d < 0 {
		return fmt.Errorf("bitset: negative transition width %d", d)
	}
	if d > maxFrameWidth {
		return fmt.Errorf("bitset: transition width %d exceeds supported maximum %d", d, maxFrameWidth)
	}
	if d == 0 {
		return nil
	}

	for ns := 0; ns < d; ns++ {
		stop := false
		transitionTuples(d, ns, func(points []int) bool {
			for _, start := range []bool{false, true} {
				assignment := buildAssignment(d, points, start)
				if !visit(assignment) {
					stop = true
					return false
				}
			}
			return true
		})
		if stop {
			return nil
		}
	}
	return nil
}

// buildAssignment turns a set of transition points into a bit
// assignment of length d: it begins at start and flips at every
// position named in points.
func buildAssignment(d int, points []int, start bool) []bool {
	assignment := make([]bool, d)
	cur := start
	pi := 0
	for pos := 0; pos < d; pos++ {
		if pi < len(points) && points[pi] == pos {
			cur = !cur
			pi++
		}
		assignment[pos] = cur
	}
	return assignment
}

// transitionTuples enumerates every strictly increasing tuple of
// length ns drawn from [0, d) in lexicographic order, calling visit
// for each. visit returning false stops enumeration early.
func transitionTuples(d, ns int, visit func(points []int) bool) {
	if ns == 0 {
		visit(nil)
		return
	}
	if ns > d {
		return
	}

	idx := make([]int, ns)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !visit(idx) {
			return
		}
		i := ns - 1
		for i >= 0 && idx[i] == d-ns+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < ns; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
