// Package levenshtein provides edit distance calculations for fuzzy
// string matching.
//
// Distance is a true metric (non-negative, symmetric, satisfies the
// triangle inequality), which is what makes BK-tree pruning correct.
package levenshtein

// Distance returns the Levenshtein edit distance between a and b:
// the minimum number of single-rune insertions, deletions and
// substitutions needed to transform a into b.
//
// No normalization (case folding, accent stripping) is performed;
// callers must pre-normalize if desired.
func Distance(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)

	la := len(ra)
	lb := len(rb)

	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	// Keep b the shorter string so the rows are as small as possible.
	if la < lb {
		ra, rb = rb, ra
		la, lb = lb, la
	}

	// Two-row DP instead of the full (la+1) x (lb+1) table.
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)

	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i

		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[lb]
}

// DistanceThreshold returns Distance(a, b) if it does not exceed
// threshold, and threshold+1 otherwise. The length pre-check lets
// linear scans skip hopeless candidates without running the DP.
func DistanceThreshold(a, b string, threshold int) int {
	la := len([]rune(a))
	lb := len([]rune(b))

	diff := la - lb
	if diff < 0 {
		diff = -diff
	}
	if diff > threshold {
		return threshold + 1
	}

	d := Distance(a, b)
	if d > threshold {
		return threshold + 1
	}
	return d
}
