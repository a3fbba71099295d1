package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomTerms(t *testing.T) {
	rng := NewRNG(4711)

	terms := rng.RandomTerms(64, "abcd", 1, 8)

	assert.Equal(t, 64, len(terms))

	seen := make(map[string]struct{})
	for _, term := range terms {
		assert.GreaterOrEqual(t, len(term), 1)
		assert.LessOrEqual(t, len(term), 8)
		_, dup := seen[term]
		assert.False(t, dup, "terms must be distinct")
		seen[term] = struct{}{}
	}
}

func TestRandomTermsDeterministic(t *testing.T) {
	a := NewRNG(42).RandomTerms(16, "abc", 2, 5)
	b := NewRNG(42).RandomTerms(16, "abc", 2, 5)

	assert.Equal(t, a, b)
}
