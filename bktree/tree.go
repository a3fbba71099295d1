// Package bktree provides a Burkhard-Keller tree for approximate string
// matching under Levenshtein edit distance.
//
// Each node's children are keyed by their exact distance to that node,
// so the triangle inequality lets Search prune whole subtrees whose
// edge distance cannot fall within the query's tolerance.
package bktree

import (
	"cmp"
	"math"
	"slices"

	"github.com/hupe1980/bkgo/levenshtein"
)

// Match is a single search result.
type Match struct {
	// Term is the indexed string.
	Term string `json:"term"`

	// Distance is the edit distance between the query and Term.
	Distance int `json:"distance"`
}

type edge struct {
	distance int
	child    *node
}

type node struct {
	term string
	// children holds at most one entry per distinct distance. Order is
	// insertion order; lookups are linear since fan-out stays small for
	// natural-language terms.
	children []edge
}

func (n *node) childAt(distance int) *node {
	for _, e := range n.children {
		if e.distance == distance {
			return e.child
		}
	}
	return nil
}

// Tree is a BK-tree over strings.
//
// A Tree is safe for concurrent Search calls as long as no Insert runs
// concurrently. Callers that populate a shared tree from multiple
// goroutines must serialize insertion (build-then-freeze); the tree has
// no natural partitioning for finer-grained locking.
type Tree struct {
	root *node
	size int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Len returns the number of distinct terms in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Insert adds term to the tree. Inserting a term that is already
// present is a no-op.
func (t *Tree) Insert(term string) {
	if t.root == nil {
		t.root = &node{term: term}
		t.size++
		return
	}

	curr := t.root
	for {
		d := levenshtein.Distance(curr.term, term)
		if d == 0 {
			return // duplicate
		}

		next := curr.childAt(d)
		if next == nil {
			curr.children = append(curr.children, edge{distance: d, child: &node{term: term}})
			t.size++
			return
		}
		curr = next
	}
}

// Search returns every indexed term within maxDistance of query,
// sorted by ascending distance and then lexicographically by term.
// A negative maxDistance yields no results.
func (t *Tree) Search(query string, maxDistance int) []Match {
	if t.root == nil || maxDistance < 0 {
		return nil
	}

	var results []Match

	// Explicit stack instead of recursion; a chain of distance-1
	// inserts can make the tree arbitrarily deep.
	stack := []*node{t.root}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		d := levenshtein.Distance(curr.term, query)
		if d <= maxDistance {
			results = append(results, Match{Term: curr.term, Distance: d})
		}

		// Any matching descendant behind an edge of distance e must
		// satisfy e in [d-maxDistance, d+maxDistance].
		lo := d - maxDistance
		hi := d + maxDistance
		if hi < d { // overflow for huge tolerances
			hi = math.MaxInt
		}
		for _, e := range curr.children {
			if e.distance >= lo && e.distance <= hi {
				stack = append(stack, e.child)
			}
		}
	}

	slices.SortFunc(results, func(a, b Match) int {
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return cmp.Compare(a.Term, b.Term)
	})

	return results
}

// Terms returns all indexed terms in flatten (breadth-first) order.
func (t *Tree) Terms() []string {
	nodes := t.collect()
	terms := make([]string, len(nodes))
	for i, n := range nodes {
		terms[i] = n.term
	}
	return terms
}
