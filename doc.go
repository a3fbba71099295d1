// Package bkgo provides fuzzy string matching over large reference
// vocabularies, backed by a BK-tree index under Levenshtein edit
// distance.
//
// # Quick Start
//
//	m := bkgo.New()
//	m.Insert("Carditis")
//	m.Insert("Cardiitis")
//	m.Insert("Arthritis")
//
//	matches, _ := m.Search(ctx, "Carditis", 1)
//	// [{Carditis 0} {Cardiitis 1}]
//
// Populated matchers can be persisted to a compact binary artifact and
// reloaded without re-reading the source corpus:
//
//	_ = m.SaveToFile("terms.bkt")
//	m, _ = bkgo.LoadMatcherFromFile("terms.bkt")
//
// # Loading a corpus
//
// The corpus package streams pipe-delimited term files (such as UMLS
// MRCONSO.RRF) from a blobstore, with transparent gzip/lz4
// decompression:
//
//	store := blobstore.NewLocalStore("./data")
//	stats, err := m.LoadCorpus(ctx, store, []string{"MRCONSO.RRF"}, corpus.DefaultOptions)
//
// # Concurrency
//
// Search is safe to run concurrently. Insertion and corpus loading are
// serialized against searches by the Matcher; the underlying tree
// itself is single-writer (build-then-freeze).
package bkgo
