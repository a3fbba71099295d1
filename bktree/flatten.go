package bktree

import "fmt"

// ChildRef is a flattened edge: the edge distance plus the index of the
// child's record within the same record list.
type ChildRef struct {
	Distance uint32 `json:"distance"`
	Index    uint32 `json:"index"`
}

// Record is one node of a flattened tree. The first record is the root.
type Record struct {
	Term     string     `json:"term"`
	Children []ChildRef `json:"children,omitempty"`
}

// ErrInvalidChildRef indicates a flattened record referencing a child
// index outside the record list. The tree cannot be reconstructed from
// such input; no partial tree is returned.
type ErrInvalidChildRef struct {
	Record int    // index of the offending record
	Child  uint32 // the out-of-range child index
	Count  int    // number of records in the list
}

func (e *ErrInvalidChildRef) Error() string {
	return fmt.Sprintf("invalid child ref: record %d references child %d of %d", e.Record, e.Child, e.Count)
}

// collect returns all nodes in breadth-first order starting at the
// root, assigning each node its flatten index by discovery order.
// Nodes are recorded on first discovery only, so a tree rebuilt from
// adversarial records cannot loop the traversal.
func (t *Tree) collect() []*node {
	if t.root == nil {
		return nil
	}

	seen := map[*node]struct{}{t.root: {}}
	nodes := []*node{t.root}
	for i := 0; i < len(nodes); i++ {
		for _, e := range nodes[i].children {
			if _, ok := seen[e.child]; ok {
				continue
			}
			seen[e.child] = struct{}{}
			nodes = append(nodes, e.child)
		}
	}
	return nodes
}

// Records converts the tree into an index-addressed record list. The
// result is an independent snapshot; mutating it does not alias the
// live tree.
func (t *Tree) Records() []Record {
	nodes := t.collect()
	if len(nodes) == 0 {
		return nil
	}

	idx := make(map[*node]uint32, len(nodes))
	for i, n := range nodes {
		idx[n] = uint32(i)
	}

	records := make([]Record, len(nodes))
	for i, n := range nodes {
		rec := Record{Term: n.term}
		if len(n.children) > 0 {
			rec.Children = make([]ChildRef, len(n.children))
			for j, e := range n.children {
				rec.Children[j] = ChildRef{
					Distance: uint32(e.distance),
					Index:    idx[e.child],
				}
			}
		}
		records[i] = rec
	}
	return records
}

// FromRecords reconstructs a tree from a flattened record list. All
// nodes are allocated before edges are wired, so forward and backward
// references both resolve. An empty list yields an empty tree.
func FromRecords(records []Record) (*Tree, error) {
	if len(records) == 0 {
		return New(), nil
	}

	nodes := make([]*node, len(records))
	for i, rec := range records {
		nodes[i] = &node{term: rec.Term}
	}

	for i, rec := range records {
		if len(rec.Children) == 0 {
			continue
		}
		children := make([]edge, len(rec.Children))
		for j, ref := range rec.Children {
			if int(ref.Index) >= len(records) {
				return nil, &ErrInvalidChildRef{Record: i, Child: ref.Index, Count: len(records)}
			}
			children[j] = edge{distance: int(ref.Distance), child: nodes[ref.Index]}
		}
		nodes[i].children = children
	}

	return &Tree{root: nodes[0], size: len(nodes)}, nil
}
