package corpus

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/bkgo/bktree"
	"github.com/hupe1980/bkgo/blobstore"
)

// LoadAll extracts terms from every named blob concurrently and builds
// a single BK-tree from them.
//
// The tree itself does not support concurrent insertion, so readers
// feed a staging channel that one goroutine drains into the tree — a
// single build pass, not lock-striping. Term order across blobs is
// therefore not deterministic; the search contract does not depend on
// it.
func LoadAll(ctx context.Context, store blobstore.Store, names []string, opts Options) (*bktree.Tree, []string, Stats, error) {
	tree := bktree.New()

	if len(names) == 0 {
		return tree, nil, Stats{}, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	staged := make(chan string, 1024)

	fileStats := make([]Stats, len(names))
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			blob, err := store.Open(ctx, name)
			if err != nil {
				return err
			}
			defer blob.Close()

			r, closeFunc, err := decompressor(name, blob)
			if err != nil {
				return err
			}
			if closeFunc != nil {
				defer closeFunc()
			}

			fileStats[i], err = scan(ctx, name, r, opts, func(term string) bool {
				select {
				case staged <- term:
					return true
				case <-ctx.Done():
					return false
				}
			})
			if err != nil {
				return err
			}
			return ctx.Err()
		})
	}

	done := make(chan struct{})
	var terms []string
	go func() {
		defer close(done)
		for term := range staged {
			if opts.MaxTerms > 0 && len(terms) >= opts.MaxTerms {
				continue // drain so readers don't block
			}
			// Corpora repeat strings across rows; keep the term slice in
			// lockstep with the tree so both engines see one copy.
			before := tree.Len()
			tree.Insert(term)
			if tree.Len() > before {
				terms = append(terms, term)
			}
		}
	}()

	err := g.Wait()
	close(staged)
	<-done

	var total Stats
	for _, s := range fileStats {
		total.Lines += s.Lines
		total.Terms += s.Terms
		total.Skipped += s.Skipped
	}

	if err != nil {
		return nil, nil, total, err
	}
	return tree, terms, total, nil
}
