package bkgo

import (
	"context"
	"sync"

	"github.com/hupe1980/bkgo/bktree"
	"github.com/hupe1980/bkgo/blobstore"
	"github.com/hupe1980/bkgo/codec"
	"github.com/hupe1980/bkgo/corpus"
	"github.com/hupe1980/bkgo/linear"
)

// Matcher owns a BK-tree index plus the raw term slice the linear
// baseline scans. Searches may run concurrently; insertion and corpus
// loading take the write lock.
type Matcher struct {
	mu    sync.RWMutex
	tree  *bktree.Tree
	terms []string

	logger *Logger
	codec  codec.Codec
}

// New creates an empty Matcher.
func New(optFns ...Option) *Matcher {
	opts := options{
		logger: NoopLogger(),
		codec:  codec.Default,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Matcher{
		tree:   bktree.New(),
		logger: opts.logger,
		codec:  opts.codec,
	}
}

// Len returns the number of distinct indexed terms.
func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Len()
}

// Insert adds a single term. Duplicates are dropped silently.
func (m *Matcher) Insert(term string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.tree.Len()
	m.tree.Insert(term)
	if m.tree.Len() > before {
		m.terms = append(m.terms, term)
	}
}

// Search returns all terms within maxDistance of query via the
// BK-tree, ordered by ascending distance then term.
func (m *Matcher) Search(ctx context.Context, query string, maxDistance int) ([]bktree.Match, error) {
	if maxDistance < 0 {
		return nil, ErrInvalidMaxDistance
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.tree.Len() == 0 {
		return nil, ErrNotLoaded
	}

	results := m.tree.Search(query, maxDistance)
	m.logger.LogSearch(ctx, query, maxDistance, len(results))
	return results, nil
}

// LinearSearch answers the same query by brute-force scan over the
// term slice. It exists for comparison benchmarks; results are
// identical to Search.
func (m *Matcher) LinearSearch(ctx context.Context, query string, maxDistance int) ([]bktree.Match, error) {
	if maxDistance < 0 {
		return nil, ErrInvalidMaxDistance
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.terms) == 0 {
		return nil, ErrNotLoaded
	}

	results := linear.NewScanner(m.terms).Search(query, maxDistance)
	m.logger.LogSearch(ctx, query, maxDistance, len(results))
	return results, nil
}

// BestLinear returns the single nearest indexed term by brute-force
// scan, ties broken lexicographically.
func (m *Matcher) BestLinear(ctx context.Context, query string) (bktree.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	best, ok := linear.NewScanner(m.terms).Best(query)
	if !ok {
		return bktree.Match{}, ErrNotLoaded
	}
	return best, nil
}

// Terms returns a copy of the indexed term slice.
func (m *Matcher) Terms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.terms))
	copy(out, m.terms)
	return out
}

// Records returns the flattened snapshot of the index.
func (m *Matcher) Records() []bktree.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Records()
}

// ExportRecords encodes the flattened snapshot with the configured
// codec, for transport through caller-controlled boundaries. An empty
// matcher returns ErrNotLoaded.
func (m *Matcher) ExportRecords() ([]byte, error) {
	records := m.Records()
	if len(records) == 0 {
		return nil, ErrNotLoaded
	}
	return m.codec.Marshal(records)
}

// LoadCorpus replaces the matcher's contents with terms extracted from
// the named blobs. On error the previous contents are kept.
func (m *Matcher) LoadCorpus(ctx context.Context, store blobstore.Store, names []string, opts corpus.Options) (corpus.Stats, error) {
	if opts.Logger == nil {
		opts.Logger = m.logger.Logger
	}

	tree, terms, stats, err := corpus.LoadAll(ctx, store, names, opts)
	m.logger.LogLoad(ctx, stats.Terms, stats.Skipped, err)
	if err != nil {
		return stats, err
	}

	m.mu.Lock()
	m.tree = tree
	m.terms = terms
	m.mu.Unlock()

	return stats, nil
}

// SaveToFile persists the index to a binary artifact, atomically.
func (m *Matcher) SaveToFile(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	err := m.tree.SaveToFile(path)
	m.logger.LogSnapshot(context.Background(), path, err)
	return err
}

// LoadMatcherFromFile loads a matcher from a binary artifact. The term
// slice for the linear baseline is recovered from the tree itself.
func LoadMatcherFromFile(path string, optFns ...Option) (*Matcher, error) {
	m := New(optFns...)

	tree, err := bktree.LoadFromFile(path)
	if err != nil {
		return nil, err
	}

	m.tree = tree
	m.terms = tree.Terms()
	return m, nil
}
