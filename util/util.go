package util

import (
	"math/rand"
	"strings"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// RandomTerm generates a single random term over the given alphabet
// with a length in [minLen, maxLen].
func (r *RNG) RandomTerm(alphabet string, minLen, maxLen int) string {
	n := minLen + r.rand.Intn(maxLen-minLen+1)

	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(alphabet[r.rand.Intn(len(alphabet))])
	}

	return sb.String()
}

// RandomTerms generates num distinct random terms using the given RNG.
func (r *RNG) RandomTerms(num int, alphabet string, minLen, maxLen int) []string {
	seen := make(map[string]struct{}, num)
	terms := make([]string, 0, num)
	for len(terms) < num {
		term := r.RandomTerm(alphabet, minLen, maxLen)
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	return terms
}

// Perm returns a random permutation of the integers [0, n).
func (r *RNG) Perm(n int) []int {
	return r.rand.Perm(n)
}
