// Package linear provides a brute-force fuzzy matcher over a term
// slice. It exists as the comparison baseline for the BK-tree index
// and as the correctness oracle in differential tests.
package linear

import (
	"cmp"
	"slices"

	"github.com/hupe1980/bkgo/bktree"
	"github.com/hupe1980/bkgo/levenshtein"
)

// Scanner scans a fixed term slice. The zero value is empty and usable.
type Scanner struct {
	terms []string
}

// NewScanner creates a scanner over terms. The slice is not copied;
// callers must not mutate it while the scanner is in use.
func NewScanner(terms []string) *Scanner {
	return &Scanner{terms: terms}
}

// Len returns the number of terms the scanner covers.
func (s *Scanner) Len() int {
	return len(s.terms)
}

// Search returns every term within maxDistance of query, with the same
// ordering contract as bktree.Tree.Search: ascending distance, ties
// broken lexicographically.
func (s *Scanner) Search(query string, maxDistance int) []bktree.Match {
	if maxDistance < 0 {
		return nil
	}

	var results []bktree.Match
	for _, term := range s.terms {
		d := levenshtein.DistanceThreshold(query, term, maxDistance)
		if d <= maxDistance {
			results = append(results, bktree.Match{Term: term, Distance: d})
		}
	}

	slices.SortFunc(results, func(a, b bktree.Match) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})

	return results
}

// Best returns the single nearest term to query, breaking distance
// ties lexicographically. ok is false for an empty scanner.
func (s *Scanner) Best(query string) (match bktree.Match, ok bool) {
	for _, term := range s.terms {
		d := levenshtein.Distance(query, term)
		if !ok || d < match.Distance || (d == match.Distance && term < match.Term) {
			match = bktree.Match{Term: term, Distance: d}
			ok = true
		}
	}
	return match, ok
}
