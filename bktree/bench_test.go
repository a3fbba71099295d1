package bktree_test

import (
	"fmt"
	"testing"

	"github.com/hupe1980/bkgo/bktree"
	"github.com/hupe1980/bkgo/linear"
	"github.com/hupe1980/bkgo/util"
)

func benchTerms(n int) []string {
	return util.NewRNG(4711).RandomTerms(n, "abcdefghij", 4, 12)
}

func BenchmarkInsert(b *testing.B) {
	terms := benchTerms(10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree := bktree.New()
		for _, term := range terms {
			tree.Insert(term)
		}
	}
}

func BenchmarkSearch(b *testing.B) {
	sizes := []int{1000, 10000, 50000}
	maxDistances := []int{1, 2}

	for _, size := range sizes {
		terms := benchTerms(size)

		tree := bktree.New()
		for _, term := range terms {
			tree.Insert(term)
		}
		scanner := linear.NewScanner(terms)

		queries := util.NewRNG(1).RandomTerms(64, "abcdefghij", 4, 12)

		for _, maxDistance := range maxDistances {
			b.Run(fmt.Sprintf("BKTree/%d/max%d", size, maxDistance), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					tree.Search(queries[i%len(queries)], maxDistance)
				}
			})

			b.Run(fmt.Sprintf("Linear/%d/max%d", size, maxDistance), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					scanner.Search(queries[i%len(queries)], maxDistance)
				}
			})
		}
	}
}

func BenchmarkRecords(b *testing.B) {
	tree := bktree.New()
	for _, term := range benchTerms(10000) {
		tree.Insert(term)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		records := tree.Records()
		if len(records) != tree.Len() {
			b.Fatal("record count mismatch")
		}
	}
}
