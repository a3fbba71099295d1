package bkgo

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/bkgo/bktree"
	"github.com/hupe1980/bkgo/blobstore"
	"github.com/hupe1980/bkgo/corpus"
)

func scenarioMatcher() *Matcher {
	m := New()
	for _, term := range []string{"Carditis", "Cardiitis", "Arthritis"} {
		m.Insert(term)
	}
	return m
}

func TestMatcherSearch(t *testing.T) {
	ctx := context.Background()
	m := scenarioMatcher()

	results, err := m.Search(ctx, "Carditis", 1)
	require.NoError(t, err)
	assert.Equal(t, []bktree.Match{
		{Term: "Carditis", Distance: 0},
		{Term: "Cardiitis", Distance: 1},
	}, results)
}

func TestMatcherSearchNotLoaded(t *testing.T) {
	_, err := New().Search(context.Background(), "x", 1)
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestMatcherSearchNegativeDistance(t *testing.T) {
	_, err := scenarioMatcher().Search(context.Background(), "x", -1)
	assert.ErrorIs(t, err, ErrInvalidMaxDistance)
}

func TestMatcherLinearAgreesWithTree(t *testing.T) {
	ctx := context.Background()
	m := scenarioMatcher()

	for _, query := range []string{"Carditis", "Arthritis", "zzz"} {
		for maxDistance := 0; maxDistance <= 4; maxDistance++ {
			treeResults, err := m.Search(ctx, query, maxDistance)
			require.NoError(t, err)
			linearResults, err := m.LinearSearch(ctx, query, maxDistance)
			require.NoError(t, err)
			assert.Equal(t, treeResults, linearResults)
		}
	}
}

func TestMatcherBestLinear(t *testing.T) {
	best, err := scenarioMatcher().BestLinear(context.Background(), "Carditi")
	require.NoError(t, err)
	assert.Equal(t, "Carditis", best.Term)
	assert.Equal(t, 1, best.Distance)

	_, err = New().BestLinear(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestMatcherInsertDuplicate(t *testing.T) {
	m := New()
	m.Insert("hello")
	m.Insert("hello")

	assert.Equal(t, 1, m.Len())
	assert.Len(t, m.Terms(), 1)
}

func TestMatcherSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "terms.bkt")

	m := scenarioMatcher()
	require.NoError(t, m.SaveToFile(path))

	loaded, err := LoadMatcherFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, m.Len(), loaded.Len())

	want, err := m.Search(ctx, "Carditis", 4)
	require.NoError(t, err)
	got, err := loaded.Search(ctx, "Carditis", 4)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The linear baseline must work after a reload too.
	linearGot, err := loaded.LinearSearch(ctx, "Carditis", 4)
	require.NoError(t, err)
	assert.Equal(t, want, linearGot)
}

func TestMatcherExportRecords(t *testing.T) {
	m := scenarioMatcher()

	data, err := m.ExportRecords()
	require.NoError(t, err)
	assert.Contains(t, string(data), "Carditis")

	_, err = New().ExportRecords()
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func rrfRow(term string) string {
	cols := make([]string, 18)
	cols[0] = "C0000001"
	cols[1] = "ENG"
	cols[14] = term
	return strings.Join(cols, "|") + "\n"
}

func TestMatcherLoadCorpus(t *testing.T) {
	store := blobstore.NewMemoryStore()
	store.Put("terms.rrf", []byte(rrfRow("Carditis")+rrfRow("Arthritis")))

	m := New()
	stats, err := m.LoadCorpus(context.Background(), store, []string{"terms.rrf"}, corpus.DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Terms)
	assert.Equal(t, 2, m.Len())
}

func TestMatcherLoadCorpusDuplicateTerms(t *testing.T) {
	ctx := context.Background()

	store := blobstore.NewMemoryStore()
	store.Put("terms.rrf", []byte(rrfRow("Carditis")+rrfRow("Carditis")+rrfRow("Arthritis")))

	m := New()
	_, err := m.LoadCorpus(ctx, store, []string{"terms.rrf"}, corpus.DefaultOptions)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())

	// Repeated corpus rows must not skew the linear baseline: both
	// engines see one copy of each term.
	treeResults, err := m.Search(ctx, "Carditis", 0)
	require.NoError(t, err)
	linearResults, err := m.LinearSearch(ctx, "Carditis", 0)
	require.NoError(t, err)

	assert.Equal(t, []bktree.Match{{Term: "Carditis", Distance: 0}}, treeResults)
	assert.Equal(t, treeResults, linearResults)
}

func TestMatcherLoadCorpusErrorKeepsContents(t *testing.T) {
	m := scenarioMatcher()

	_, err := m.LoadCorpus(context.Background(), blobstore.NewMemoryStore(), []string{"missing.rrf"}, corpus.DefaultOptions)
	require.Error(t, err)
	assert.Equal(t, 3, m.Len())
}
