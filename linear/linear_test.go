package linear

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bkgo/bktree"
)

func TestSearch(t *testing.T) {
	s := NewScanner([]string{"Carditis", "Cardiitis", "Arthritis"})

	assert.Equal(t, []bktree.Match{{Term: "Carditis", Distance: 0}}, s.Search("Carditis", 0))
	assert.Equal(t, []bktree.Match{
		{Term: "Carditis", Distance: 0},
		{Term: "Cardiitis", Distance: 1},
	}, s.Search("Carditis", 1))
	assert.Empty(t, s.Search("Carditis", -1))
}

func TestSearchOrdering(t *testing.T) {
	s := NewScanner([]string{"bat", "cat", "hat", "rat"})

	results := s.Search("mat", 1)
	require.Len(t, results, 4)
	assert.Equal(t, []bktree.Match{
		{Term: "bat", Distance: 1},
		{Term: "cat", Distance: 1},
		{Term: "hat", Distance: 1},
		{Term: "rat", Distance: 1},
	}, results)
}

func TestBest(t *testing.T) {
	s := NewScanner([]string{"kitten", "mitten", "sitting"})

	best, ok := s.Best("bitten")
	require.True(t, ok)
	assert.Equal(t, bktree.Match{Term: "kitten", Distance: 1}, best)
}

func TestBestEmptyScanner(t *testing.T) {
	_, ok := NewScanner(nil).Best("anything")
	assert.False(t, ok)
}
